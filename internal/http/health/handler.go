// Package health serves the liveness probe.
package health

import (
	"encoding/json"
	"net/http"
)

// Response is the payload for the health endpoint.
type Response struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Store   string `json:"store"`
}

// Handler reports liveness with the running version and store backend.
func Handler(version, store string) http.HandlerFunc {
	body, _ := json.Marshal(Response{Status: "healthy", Version: version, Store: store})
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(body)
	}
}
