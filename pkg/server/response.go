package server

import (
	"net/http"

	json "github.com/goccy/go-json"

	"github.com/matzehuels/questgraph/pkg/errors"
)

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Error string      `json:"error"`
	Code  errors.Code `json:"code,omitempty"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes err as a JSON error response. Coded errors choose the
// status; anything else is a 500.
func writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	writeJSON(w, errors.HTTPStatus(code), errorBody{Error: errors.UserMessage(err), Code: code})
}
