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

// Updater defines the interface that the update service must implement.
type Updater interface {
	Update(ctx context.Context, id int64, upd models.UserUpdate) (*models.UserDB, error)
}

// NewUpdateUserHandler returns an HTTP handler for partially updating a user.
// Mounted for both PUT and PATCH; only the supplied fields are applied.
// @Summary Update a user
// @Description Updates the supplied fields of a user. At least one field is required.
// @Tags users
// @Accept json
// @Produce json
// @Param id path int true "User ID" minimum(1)
// @Param userUpdate body models.UserUpdate true "Fields to update"
// @Success 200 {object} models.UserDB "User successfully updated"
// @Failure 400 {object} models.ErrorResponse "Validation error, empty update, or email already in use"
// @Failure 404 {object} models.ErrorResponse "User not found"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /api/users/{id} [patch]
func NewUpdateUserHandler(svc Updater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseUserID(r)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(models.ErrorResponse{
				Error: err.Error(),
			})
			return
		}

		var req models.UserUpdate
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

		user, err := svc.Update(r.Context(), id, req)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrUserNotFound):
				w.WriteHeader(http.StatusNotFound)
				json.NewEncoder(w).Encode(models.ErrorResponse{
					Error: fmt.Sprintf("User with ID %d not found", id),
				})
			case errors.Is(err, services.ErrEmailAlreadyExists):
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(models.ErrorResponse{
					Error: fmt.Sprintf("Email '%s' is already in use", *req.Email),
				})
			default:
				logger.Log.Errorw("internal server error", "err", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(models.ErrorResponse{
					Error: "An error occurred while updating the user",
				})
			}
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(user)
	}
}
