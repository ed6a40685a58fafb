package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/dhatchu14/user-management-api/internal/logger"
	"github.com/dhatchu14/user-management-api/internal/models"
)

// Pagination defaults and bounds.
const (
	defaultSkip  = 0
	defaultLimit = 100
	maxLimit     = 100
)

// Lister defines the interface that the list service must implement.
type Lister interface {
	List(ctx context.Context, skip, limit int) ([]models.UserDB, int64, error)
}

// NewListUsersHandler returns an HTTP handler for listing users.
// @Summary List users
// @Description Retrieves a page of users plus the total count.
// @Tags users
// @Produce json
// @Param skip query int false "Number of users to skip" minimum(0) default(0)
// @Param limit query int false "Maximum number of users to return" minimum(1) maximum(100) default(100)
// @Success 200 {object} models.UserListResponse "Page of users"
// @Failure 400 {object} models.ErrorResponse "Invalid pagination parameters"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /api/users/ [get]
func NewListUsersHandler(svc Lister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		skip := defaultSkip
		if raw := r.URL.Query().Get("skip"); raw != "" {
			v, err := strconv.Atoi(raw)
			if err != nil || v < 0 {
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(models.ErrorResponse{
					Error: "skip must be a non-negative integer",
				})
				return
			}
			skip = v
		}

		limit := defaultLimit
		if raw := r.URL.Query().Get("limit"); raw != "" {
			v, err := strconv.Atoi(raw)
			if err != nil || v < 1 || v > maxLimit {
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(models.ErrorResponse{
					Error: "limit must be an integer between 1 and 100",
				})
				return
			}
			limit = v
		}

		users, count, err := svc.List(r.Context(), skip, limit)
		if err != nil {
			logger.Log.Errorw("internal server error", "err", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(models.ErrorResponse{
				Error: "An error occurred while fetching users",
			})
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(models.UserListResponse{
			Users: users,
			Count: count,
		})
	}
}
