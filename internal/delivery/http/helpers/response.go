package helpers

import (
	"encoding/json"
	"net/http"
	"time"
)

// API response codes returned in the envelope's code field.
const (
	CodeRegistrationSuccess = "REGISTRATION_SUCCESS"
	CodeValidationFailed    = "VALIDATION_FAILED"
	CodeDuplicateEmail      = "DUPLICATE_EMAIL"
	CodeDatabaseError       = "DATABASE_ERROR"
	CodeSystemError         = "SYSTEM_ERROR"
	CodeMethodNotAllowed    = "METHOD_NOT_ALLOWED"
	CodeContactSuccess      = "CONTACT_SUCCESS"
	CodeContactError        = "CONTACT_ERROR"
	CodeStatsSuccess        = "STATS_SUCCESS"
	CodeStatsError          = "STATS_ERROR"
)

// APIResponse is the envelope carried by every response, success or not.
// swagger:model APIResponse
type APIResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Data      any    `json:"data"`
	Timestamp string `json:"timestamp"`
	Code      string `json:"code,omitempty"`
}

// WriteJSON writes the envelope with the given fields. A nil data is
// serialized as an empty object so clients never see a missing body.
func WriteJSON(w http.ResponseWriter, statusCode int, success bool, message string, data any, code string) {
	if data == nil {
		data = map[string]any{}
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(APIResponse{
		Success:   success,
		Message:   message,
		Data:      data,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Code:      code,
	})
}

// WriteSuccess writes a success envelope.
func WriteSuccess(w http.ResponseWriter, statusCode int, message string, data any, code string) {
	WriteJSON(w, statusCode, true, message, data, code)
}

// WriteError writes a failure envelope with an empty data object.
func WriteError(w http.ResponseWriter, statusCode int, message, code string) {
	WriteJSON(w, statusCode, false, message, nil, code)
}

// WriteErrorData writes a failure envelope carrying data, e.g. the
// field-level validation error map.
func WriteErrorData(w http.ResponseWriter, statusCode int, message string, data any, code string) {
	WriteJSON(w, statusCode, false, message, data, code)
}
