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

// Deleter defines the interface that the delete service must implement.
type Deleter interface {
	Delete(ctx context.Context, id int64) error
}

// NewDeleteUserHandler returns an HTTP handler for deleting a user.
// @Summary Delete a user
// @Description Permanently removes a user by ID.
// @Tags users
// @Produce json
// @Param id path int true "User ID" minimum(1)
// @Success 200 {object} models.DeleteResponse "User successfully deleted"
// @Failure 400 {object} models.ErrorResponse "Invalid user id"
// @Failure 404 {object} models.ErrorResponse "User not found"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /api/users/{id} [delete]
func NewDeleteUserHandler(svc Deleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseUserID(r)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(models.ErrorResponse{
				Error: err.Error(),
			})
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			switch {
			case errors.Is(err, services.ErrUserNotFound):
				w.WriteHeader(http.StatusNotFound)
				json.NewEncoder(w).Encode(models.ErrorResponse{
					Error: fmt.Sprintf("User with ID %d not found", id),
				})
			default:
				logger.Log.Errorw("internal server error", "err", err)
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(models.ErrorResponse{
					Error: "An error occurred while deleting the user",
				})
			}
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(models.DeleteResponse{
			Message: fmt.Sprintf("User with ID %d deleted successfully", id),
		})
	}
}
