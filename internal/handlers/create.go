package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/dhatchu14/user-management-api/internal/logger"
	"github.com/dhatchu14/user-management-api/internal/models"
	"github.com/dhatchu14/user-management-api/internal/services"
)

// Creator defines the interface that the create service must implement.
type Creator interface {
	Create(ctx context.Context, user models.UserCreate) (*models.UserDB, error)
}

// NewCreateUserHandler returns an HTTP handler for creating a user.
// @Summary Create a new user
// @Description Creates a new user with the provided information. Email must be unique.
// @Tags users
// @Accept json
// @Produce json
// @Param userCreate body models.UserCreate true "User creation request"
// @Success 201 {object} models.UserDB "User successfully created"
// @Failure 400 {object} models.ErrorResponse "Validation error or email already exists"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /api/users/ [post]
func NewCreateUserHandler(svc Creator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.UserCreate

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(models.ErrorResponse{
				Error: "invalid request body",
			})
			return
		}

		if err := req.Validate(); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(models.ErrorResponse{
				Error: err.Error(),
			})
			return
		}

		user, err := svc.Create(r.Context(), req)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrEmailAlreadyExists):
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(models.ErrorResponse{
					Error: fmt.Sprintf("User with email '%s' already exists", req.Email),
				})
			default:
				logger.Log.Errorw("internal server error", "err", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(models.ErrorResponse{
					Error: "An error occurred while creating the user",
				})
			}
			return
		}

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(user)
	}
}
