package response

import (
	"encoding/json"
	"net/http"
)

// Envelope is the uniform wrapper returned by every endpoint. Errors is
// always an array, never null or absent, so clients can rely on its shape.
type Envelope struct {
	Success    bool        `json:"success"`
	Message    string      `json:"message,omitempty"`
	Errors     []string    `json:"errors"`
	Data       interface{} `json:"data,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

// Pagination describes the slice of a listing that was returned
type Pagination struct {
	Total  int `json:"total"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// JSON writes a JSON response. Envelope bodies get a non-nil Errors slice
// so the field serializes as [] instead of null.
func JSON(w http.ResponseWriter, statusCode int, body interface{}) {
	if envelope, ok := body.(Envelope); ok && envelope.Errors == nil {
		envelope.Errors = []string{}
		body = envelope
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(body)
}

// Success writes a success envelope with data
func Success(w http.ResponseWriter, message string, data interface{}) {
	JSON(w, http.StatusOK, Envelope{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Created writes a created envelope and, when location is non-empty, a Location header
func Created(w http.ResponseWriter, location string, data interface{}) {
	if location != "" {
		w.Header().Set("Location", location)
	}
	JSON(w, http.StatusCreated, Envelope{
		Success: true,
		Message: "created",
		Data:    data,
	})
}

// Error writes a failure envelope
func Error(w http.ResponseWriter, statusCode int, message string, errs ...string) {
	JSON(w, statusCode, Envelope{
		Success: false,
		Message: message,
		Errors:  errs,
	})
}

// Paginated writes a success envelope with pagination metadata
func Paginated(w http.ResponseWriter, data interface{}, total, limit, offset int) {
	JSON(w, http.StatusOK, Envelope{
		Success: true,
		Data:    data,
		Pagination: &Pagination{
			Total:  total,
			Limit:  limit,
			Offset: offset,
		},
	})
}
