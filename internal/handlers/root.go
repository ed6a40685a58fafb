package handlers

import (
	"encoding/json"
	"net/http"
)

// RootResponse represents the welcome payload of the service root
// swagger:model RootResponse
type RootResponse struct {
	// Welcome message
	// example: Welcome to User Management API
	Message string `json:"message"`
}

// NewRootHandler returns the welcome endpoint.
// @Summary Service root
// @Description Returns a welcome message.
// @Tags root
// @Produce json
// @Success 200 {object} handlers.RootResponse "Welcome message"
// @Router / [get]
func NewRootHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(RootResponse{
			Message: "Welcome to User Management API",
		})
	}
}
