package utils

import (
	"encoding/json"
	"net/http"
)

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func Error(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, map[string]string{"error": msg})
}

// FieldError reports a validation failure tied to one input field.
func FieldError(w http.ResponseWriter, field, msg string) {
	JSON(w, http.StatusBadRequest, map[string]string{"error": msg, "field": field})
}
