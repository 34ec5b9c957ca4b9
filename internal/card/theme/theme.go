// Package theme resolves partial template color and font configuration into
// a fully populated theme used for rendering.
package theme

import (
	"encoding/json"
	"fmt"
	"strings"
)

// System defaults applied to every blank slot.
const (
	DefaultPrimary     = "#1f2937"
	DefaultSecondary   = "#6b7280"
	DefaultAccent      = "#3b82f6"
	DefaultBackground  = "#ffffff"
	DefaultText        = "#111827"
	DefaultHeadingFont = "Inter"
	DefaultBodyFont    = "Inter"
)

// Colors holds the five color slots of a theme.
type Colors struct {
	Primary    string `json:"primary"    firestore:"primary"    doc:"Primary color"    example:"#1f2937"`
	Secondary  string `json:"secondary"  firestore:"secondary"  doc:"Secondary color"  example:"#6b7280"`
	Accent     string `json:"accent"     firestore:"accent"     doc:"Accent color"     example:"#3b82f6"`
	Background string `json:"background" firestore:"background" doc:"Background color" example:"#ffffff"`
	Text       string `json:"text"       firestore:"text"       doc:"Text color"       example:"#111827"`
}

// Fonts holds the heading and body font families.
type Fonts struct {
	Heading string `json:"heading" firestore:"heading" doc:"Heading font family" example:"Inter"`
	Body    string `json:"body"    firestore:"body"    doc:"Body font family"    example:"Inter"`
}

// Theme is a resolved theme. Every field is non-blank.
type Theme struct {
	Colors Colors `json:"colors"`
	Fonts  Fonts  `json:"fonts"`
}

// Partial is theme configuration as stored on a template. Any slot may be blank.
type Partial struct {
	Colors PartialColors `json:"colors" firestore:"colors"`
	Fonts  PartialFonts  `json:"fonts"  firestore:"fonts"`
}

// PartialColors decodes from either a JSON object or a JSON string holding
// an encoded object, which is how the card platform API stores it.
type PartialColors Colors

// PartialFonts decodes like PartialColors.
type PartialFonts Fonts

// UnmarshalJSON implements json.Unmarshaler.
func (c *PartialColors) UnmarshalJSON(data []byte) error {
	var v Colors
	if err := decodeLenient(data, &v); err != nil {
		return fmt.Errorf("decoding colors: %w", err)
	}
	*c = PartialColors(v)
	return nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (f *PartialFonts) UnmarshalJSON(data []byte) error {
	var v Fonts
	if err := decodeLenient(data, &v); err != nil {
		return fmt.Errorf("decoding fonts: %w", err)
	}
	*f = PartialFonts(v)
	return nil
}

// decodeLenient accepts null, an object, or a string containing an object.
// A string that is not a JSON object is treated as absent.
func decodeLenient(data []byte, target any) error {
	s := strings.TrimSpace(string(data))
	if s == "" || s == "null" {
		return nil
	}
	if s[0] == '"' {
		var inner string
		if err := json.Unmarshal(data, &inner); err != nil {
			return err
		}
		inner = strings.TrimSpace(inner)
		if !strings.HasPrefix(inner, "{") {
			return nil
		}
		return json.Unmarshal([]byte(inner), target)
	}
	return json.Unmarshal(data, target)
}

// Resolve fills every blank slot of p with its system default. It never
// fails and never modifies p.
func Resolve(p Partial) Theme {
	return Theme{
		Colors: Colors{
			Primary:    pick(p.Colors.Primary, DefaultPrimary),
			Secondary:  pick(p.Colors.Secondary, DefaultSecondary),
			Accent:     pick(p.Colors.Accent, DefaultAccent),
			Background: pick(p.Colors.Background, DefaultBackground),
			Text:       pick(p.Colors.Text, DefaultText),
		},
		Fonts: Fonts{
			Heading: pick(p.Fonts.Heading, DefaultHeadingFont),
			Body:    pick(p.Fonts.Body, DefaultBodyFont),
		},
	}
}

// Default returns the theme made only of system defaults.
func Default() Theme {
	return Resolve(Partial{})
}

// Partial converts a resolved theme back into its stored form.
func (t Theme) Partial() Partial {
	return Partial{
		Colors: PartialColors(t.Colors),
		Fonts:  PartialFonts(t.Fonts),
	}
}

func pick(value, fallback string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return fallback
}
