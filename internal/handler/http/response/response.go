package response

import (
	"encoding/json"
	"net/http"
)

// Every reply carries an "ok" flag; extra fields sit beside it at the top
// level ({ok:true, token:...}, {ok:false, error:...}).
type Envelope map[string]any

func writeJSON(w http.ResponseWriter, statusCode int, payload Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		_ = json.NewEncoder(w).Encode(Envelope{
			"ok":    false,
			"error": "Failed to encode response",
		})
	}
}

// Success responses
func OK(w http.ResponseWriter, fields Envelope) {
	payload := Envelope{"ok": true}
	for k, v := range fields {
		payload[k] = v
	}
	writeJSON(w, http.StatusOK, payload)
}

func Message(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusOK, Envelope{
		"ok":      true,
		"message": message,
	})
}

// Error responses.
// Business and validation rejections answer 200 with ok:false; HTTP status
// codes are reserved for auth, missing resources, conflicts and crashes.
func Fail(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusOK, Envelope{
		"ok":    false,
		"error": message,
	})
}

func FailWithDetails(w http.ResponseWriter, message string, details map[string]string) {
	writeJSON(w, http.StatusOK, Envelope{
		"ok":      false,
		"error":   message,
		"details": details,
	})
}

func Unauthorized(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusUnauthorized, Envelope{
		"ok":    false,
		"error": message,
	})
}

func NotFound(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusNotFound, Envelope{
		"ok":    false,
		"error": message,
	})
}

func Conflict(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusConflict, Envelope{
		"ok":    false,
		"error": message,
	})
}

func InternalServerError(w http.ResponseWriter) {
	writeJSON(w, http.StatusInternalServerError, Envelope{
		"ok":    false,
		"error": "An unexpected error occurred",
	})
}
