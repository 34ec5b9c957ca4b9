// Package social classifies social link platforms for the profile editor.
package social

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/janisto/cardfolio/internal/card/social"
)

// ClassifyInput for POST /social/classify
type ClassifyInput struct {
	Body struct {
		Platform string `json:"platform"         doc:"Platform name as entered"                      maxLength:"50"  example:"WhatsApp"`
		Handle   string `json:"handle,omitempty" doc:"Display text, or a phone number for messaging" maxLength:"100" example:"+63 912 345 6789"`
		URL      string `json:"url,omitempty"    doc:"Link target; ignored for messaging platforms"  maxLength:"2048"`
	}
}

// Classification describes how the profile editor should treat a link.
type Classification struct {
	Platform    string `json:"platform"               example:"WhatsApp"`
	Kind        string `json:"kind"                   example:"whatsapp"`
	IsMessaging bool   `json:"is_messaging"           doc:"Whether the platform takes a phone number"`
	Icon        string `json:"icon"                   example:"whatsapp"`
	DisplayName string `json:"display_name,omitempty" doc:"Normalized handle; phone digits for messaging" example:"63912345678"`
	URL         string `json:"url,omitempty"          doc:"Link target; derived for messaging platforms" example:"https://wa.me/63912345678"`
}

// ClassifyOutput for POST /social/classify
type ClassifyOutput struct {
	Body Classification
}

// Register wires the social routes.
func Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "classify-social-link",
		Method:      http.MethodPost,
		Path:        "/social/classify",
		Summary:     "Classify a social link",
		Description: "Reports whether the platform is a messaging app. Messaging links keep only phone digits and get a derived deep link.",
		Tags:        []string{"Social"},
	}, func(_ context.Context, input *ClassifyInput) (*ClassifyOutput, error) {
		l := social.Link{Platform: input.Body.Platform}
		l.SetHandle(input.Body.Handle)
		l.SetURL(input.Body.URL)

		p := l.Kind()
		return &ClassifyOutput{Body: Classification{
			Platform:    p.Name,
			Kind:        p.Kind.String(),
			IsMessaging: p.IsMessaging(),
			Icon:        p.Icon(),
			DisplayName: l.DisplayName,
			URL:         l.URL,
		}}, nil
	})
}
