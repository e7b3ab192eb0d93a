package middleware

import (
	"encoding/json"
	"net/http"
)

// errorResponse writes {"error": message} and, once RequestID has run, the
// request id the client can quote back.
func errorResponse(w http.ResponseWriter, status int, message string) {
	body := map[string]any{"error": message}
	if id := w.Header().Get(RequestIDHeader); id != "" {
		body["request_id"] = id
	}

	js, err := json.Marshal(body)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(js)
}
