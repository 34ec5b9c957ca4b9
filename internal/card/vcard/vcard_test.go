package vcard

import (
	"errors"
	"strings"
	"testing"

	"github.com/janisto/cardfolio/internal/card/social"
)

func TestBuildMinimalCard(t *testing.T) {
	card, err := Build(
		User{DisplayName: "Jane Doe", Email: "jane@x.com"},
		Profile{Phone: "09170001111"},
		nil,
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{"FN:Jane Doe", "TEL;TYPE=CELL:09170001111", "EMAIL;TYPE=INTERNET:jane@x.com"} {
		if n := strings.Count(card.Text, want); n != 1 {
			t.Errorf("expected exactly one %q, found %d", want, n)
		}
	}
	if strings.Contains(card.Text, "X-SOCIALPROFILE") {
		t.Error("did not expect social profile lines")
	}
	for _, absent := range []string{"URL:", "ADR", "NOTE"} {
		if strings.Contains(card.Text, absent) {
			t.Errorf("expected %q to be omitted", absent)
		}
	}
	if !strings.HasPrefix(card.Text, "BEGIN:VCARD\r\nVERSION:3.0\r\n") || !strings.HasSuffix(card.Text, "END:VCARD") {
		t.Fatalf("unexpected envelope:\n%s", card.Text)
	}
	if card.Filename != "Jane Doe.vcf" {
		t.Fatalf("unexpected filename %q", card.Filename)
	}
}

func TestBuildFullCard(t *testing.T) {
	links := []social.Link{
		{Platform: "GitHub", URL: "https://github.com/jane", IsVisible: true},
		{Platform: "Hidden", URL: "https://hidden.example"},
		{Platform: "Whats App", URL: "https://wa.me/0917", IsVisible: true},
		{Platform: "!!!", URL: "https://x.example", IsVisible: true},
	}
	card, err := Build(
		User{Name: "Jane", Username: "jane"},
		Profile{Website: "https://jane.dev", Location: "Cebu City", Bio: "Designer"},
		links,
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := strings.Join([]string{
		"BEGIN:VCARD",
		"VERSION:3.0",
		"FN:Jane",
		"URL:https://jane.dev",
		"ADR;TYPE=HOME:;;;Cebu City;;;",
		"NOTE:Designer",
		"X-SOCIALPROFILE;TYPE=github:https://github.com/jane",
		"X-SOCIALPROFILE;TYPE=whatsapp:https://wa.me/0917",
		"X-SOCIALPROFILE;TYPE=social:https://x.example",
		"END:VCARD",
	}, "\r\n")
	if card.Text != want {
		t.Fatalf("unexpected card:\n%q\nwant:\n%q", card.Text, want)
	}
	if card.Filename != "jane.vcf" {
		t.Fatalf("unexpected filename %q", card.Filename)
	}
}

func TestBuildEscapesText(t *testing.T) {
	card, err := Build(
		User{DisplayName: "Doe, Jane; PhD"},
		Profile{Bio: "line one\nline two\r\nback\\slash\x07", Website: "https://x.example/\npath"},
		nil,
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(card.Text, `FN:Doe\, Jane\; PhD`) {
		t.Errorf("expected escaped FN in:\n%s", card.Text)
	}
	if !strings.Contains(card.Text, `NOTE:line one\nline two\nback\\slash`+"\r\n") {
		t.Errorf("expected escaped NOTE in:\n%q", card.Text)
	}
	if !strings.Contains(card.Text, "URL:https://x.example/path\r\n") {
		t.Errorf("expected control characters stripped from URL in:\n%q", card.Text)
	}
	for _, l := range strings.Split(card.Text, "\r\n") {
		if strings.ContainsAny(l, "\r\n") {
			t.Fatalf("record structure broken by %q", l)
		}
	}
}

func TestBuildRequiresName(t *testing.T) {
	_, err := Build(User{Email: "x@y.z", DisplayName: "  "}, Profile{Phone: "1"}, nil)
	if !errors.Is(err, ErrNoName) {
		t.Fatalf("expected ErrNoName, got %v", err)
	}
}

func TestBuildDeterministic(t *testing.T) {
	u := User{DisplayName: "Jane"}
	p := Profile{Bio: "a,b"}
	links := []social.Link{{Platform: "GitHub", URL: "https://github.com/jane", IsVisible: true}}
	a, _ := Build(u, p, links)
	b, _ := Build(u, p, links)
	if a != b {
		t.Fatal("expected byte-identical output")
	}
}

func TestFilename(t *testing.T) {
	tests := []struct {
		user User
		want string
	}{
		{User{DisplayName: "Jane"}, "Jane.vcf"},
		{User{Name: "Jane Full", Username: "jane"}, "jane.vcf"},
		{User{Name: "Only Name"}, "contact.vcf"},
		{User{DisplayName: `a/b\"c`}, "abc.vcf"},
	}
	for _, tt := range tests {
		if got := Filename(tt.user); got != tt.want {
			t.Errorf("Filename(%+v) = %q, want %q", tt.user, got, tt.want)
		}
	}
}

func TestEscapeTextUnicode(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"multibyte kept", "José, 東京", `José\, 東京`},
		{"line and paragraph separators dropped", "a\u2028b\u2029c", "abc"},
		{"next line dropped", "a\u0085b", "ab"},
		{"c1 control dropped", "a\u009bb", "ab"},
		{"lone carriage return", "a\rb", `a\nb`},
		{"invalid utf-8 dropped", "a\xffb", "ab"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := escapeText(tt.in); got != tt.want {
				t.Fatalf("escapeText(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestBuildDropsUnicodeSeparatorsFromURLs(t *testing.T) {
	card, err := Build(
		User{DisplayName: "Jane"},
		Profile{Website: "https://x.example/\u2028path\u0085"},
		nil,
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(card.Text, "URL:https://x.example/path\r\n") {
		t.Errorf("expected separators stripped from URL in:\n%q", card.Text)
	}
}
