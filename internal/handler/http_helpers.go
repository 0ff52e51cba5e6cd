package handler

import (
	"encoding/json"
	"net/http"

	apperrors "doc-ingest/pkg/errors"
)

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Detail string `json:"detail"`
}

// writeJSON writes data as a JSON response
func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes an error response (helper function)
func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, errorBody{Detail: message})
}

// writeAppError maps err onto its status code and client message.
func writeAppError(w http.ResponseWriter, err error) {
	writeError(w, apperrors.GetStatusCode(err), apperrors.ClientMessage(err))
}
