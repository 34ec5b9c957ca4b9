// Package contact provides an HTTP Cloud Function that turns a posted
// contact into a vCard download without touching any store.
package contact

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"

	"github.com/GoogleCloudPlatform/functions-framework-go/functions"

	"github.com/janisto/cardfolio/internal/card/social"
	"github.com/janisto/cardfolio/internal/card/vcard"
)

// maxBody bounds the request body.
const maxBody = 64 << 10

func init() {
	functions.HTTP("Contact", handleContact)
}

// Request is the contact to export.
type Request struct {
	DisplayName string        `json:"display_name"`
	Name        string        `json:"name"`
	Username    string        `json:"username"`
	Email       string        `json:"email"`
	Phone       string        `json:"phone"`
	Website     string        `json:"website"`
	Location    string        `json:"location"`
	Bio         string        `json:"bio"`
	SocialLinks []social.Link `json:"social_links"`
}

type problem struct {
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func handleContact(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeProblem(w, http.StatusMethodNotAllowed, "")
		return
	}

	var req Request
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "invalid contact body")
		return
	}

	card, err := vcard.Build(
		vcard.User{DisplayName: req.DisplayName, Name: req.Name, Username: req.Username, Email: req.Email},
		vcard.Profile{Phone: req.Phone, Website: req.Website, Location: req.Location, Bio: req.Bio},
		social.Normalize(req.SocialLinks),
	)
	if errors.Is(err, vcard.ErrNoName) {
		writeProblem(w, http.StatusUnprocessableEntity, "contact needs a display name, name or username")
		return
	}
	if err != nil {
		writeProblem(w, http.StatusInternalServerError, "")
		return
	}

	w.Header().Set("Content-Type", vcard.MIMEType+"; charset=utf-8")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": card.Filename}))
	_, _ = w.Write([]byte(card.Text))
}

func writeProblem(w http.ResponseWriter, status int, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(problem{Title: http.StatusText(status), Status: status, Detail: detail})
}
