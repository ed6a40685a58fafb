package services

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/dhatchu14/user-management-api/internal/logger"
	"github.com/dhatchu14/user-management-api/internal/models"
	"github.com/dhatchu14/user-management-api/internal/repositories"
)

// Error variables
var (
	ErrEmailAlreadyExists = errors.New("user with this email already exists")
	ErrUserNotFound       = errors.New("user not found")
)

// UserReader defines read-only operations for users.
type UserReader interface {
	GetByID(ctx context.Context, id int64) (*models.UserDB, error)
	GetByEmail(ctx context.Context, email string) (*models.UserDB, error)
	List(ctx context.Context, skip, limit int) ([]models.UserDB, int64, error)
}

// UserWriter defines write operations for users.
type UserWriter interface {
	Save(ctx context.Context, user models.UserCreate) (*models.UserDB, error)
	Update(ctx context.Context, id int64, upd models.UserUpdate) (*models.UserDB, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// EventWriter defines a Kafka writer abstraction.
type EventWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error // Writes messages to Kafka
	Close() error                                                   // Closes the Kafka writer
}

// UserService orchestrates user persistence and enforces email uniqueness
// at the application level, on top of the store-level constraint.
type UserService struct {
	reader UserReader
	writer UserWriter
	events EventWriter
}

// NewUserService creates a new UserService instance. The event writer may be
// nil, in which case no events are published.
func NewUserService(reader UserReader, writer UserWriter, events EventWriter) *UserService {
	return &UserService{
		reader: reader,
		writer: writer,
		events: events,
	}
}

// publishEvent publishes a user change event to Kafka. Publish failures are
// logged and never surfaced to the caller.
func (svc *UserService) publishEvent(ctx context.Context, event string, user *models.UserDB) {
	if svc.events == nil {
		return
	}

	payload := models.UserEvent{
		Event:     event,
		UserID:    user.ID,
		Email:     user.Email,
		Timestamp: time.Now().Unix(),
	}

	data, err := json.Marshal(payload)
	if err != nil {
		logger.Log.Errorw("failed to marshal user event", "event", event, "user_id", user.ID, "error", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(strconv.FormatInt(user.ID, 10)),
		Value: data,
	}

	if err := svc.events.WriteMessages(ctx, msg); err != nil {
		logger.Log.Errorw("failed to publish user event", "event", event, "user_id", user.ID, "error", err)
	} else {
		logger.Log.Infow("user event published", "event", event, "user_id", user.ID)
	}
}

// Create inserts a new user. The lookup by email is a fast-path for a better
// error message only; the store's unique constraint is the actual guarantee,
// so a duplicate reported by the insert itself maps to the same error.
func (svc *UserService) Create(ctx context.Context, user models.UserCreate) (*models.UserDB, error) {
	existing, err := svc.reader.GetByEmail(ctx, user.Email)
	if err != nil {
		logger.Log.Errorw("failed to check email exists", "email", user.Email, "error", err)
		return nil, err
	}
	if existing != nil {
		logger.Log.Warnw("user with email already exists", "email", user.Email)
		return nil, ErrEmailAlreadyExists
	}

	saved, err := svc.writer.Save(ctx, user)
	if err != nil {
		if errors.Is(err, repositories.ErrEmailExists) {
			logger.Log.Warnw("duplicate email on insert", "email", user.Email)
			return nil, ErrEmailAlreadyExists
		}
		logger.Log.Errorw("failed to save user", "email", user.Email, "error", err)
		return nil, err
	}

	svc.publishEvent(ctx, "user.created", saved)

	return saved, nil
}

// List returns one page of users plus the total count.
func (svc *UserService) List(ctx context.Context, skip, limit int) ([]models.UserDB, int64, error) {
	users, count, err := svc.reader.List(ctx, skip, limit)
	if err != nil {
		logger.Log.Errorw("failed to list users", "skip", skip, "limit", limit, "error", err)
		return nil, 0, err
	}
	return users, count, nil
}

// GetByID returns the user with the given id.
func (svc *UserService) GetByID(ctx context.Context, id int64) (*models.UserDB, error) {
	user, err := svc.reader.GetByID(ctx, id)
	if err != nil {
		logger.Log.Errorw("failed to get user", "id", id, "error", err)
		return nil, err
	}
	if user == nil {
		logger.Log.Warnw("user not found", "id", id)
		return nil, ErrUserNotFound
	}
	return user, nil
}

// Update applies a partial update to an existing user. When the email is
// being changed to a different value, uniqueness is re-checked first,
// excluding the user's own record.
func (svc *UserService) Update(ctx context.Context, id int64, upd models.UserUpdate) (*models.UserDB, error) {
	existing, err := svc.reader.GetByID(ctx, id)
	if err != nil {
		logger.Log.Errorw("failed to get user for update", "id", id, "error", err)
		return nil, err
	}
	if existing == nil {
		logger.Log.Warnw("user not found for update", "id", id)
		return nil, ErrUserNotFound
	}

	if upd.Email != nil && *upd.Email != existing.Email {
		conflict, err := svc.reader.GetByEmail(ctx, *upd.Email)
		if err != nil {
			logger.Log.Errorw("failed to check email exists", "email", *upd.Email, "error", err)
			return nil, err
		}
		if conflict != nil && conflict.ID != id {
			logger.Log.Warnw("email already in use", "email", *upd.Email, "id", id)
			return nil, ErrEmailAlreadyExists
		}
	}

	updated, err := svc.writer.Update(ctx, id, upd)
	if err != nil {
		if errors.Is(err, repositories.ErrEmailExists) {
			logger.Log.Warnw("duplicate email on update", "id", id)
			return nil, ErrEmailAlreadyExists
		}
		logger.Log.Errorw("failed to update user", "id", id, "error", err)
		return nil, err
	}
	if updated == nil {
		// Row vanished between the fetch and the update.
		logger.Log.Warnw("user not found for update", "id", id)
		return nil, ErrUserNotFound
	}

	svc.publishEvent(ctx, "user.updated", updated)

	return updated, nil
}

// Delete removes the user with the given id. The fetch distinguishes a
// missing record from a zero-effect delete.
func (svc *UserService) Delete(ctx context.Context, id int64) error {
	existing, err := svc.reader.GetByID(ctx, id)
	if err != nil {
		logger.Log.Errorw("failed to get user for delete", "id", id, "error", err)
		return err
	}
	if existing == nil {
		logger.Log.Warnw("user not found for delete", "id", id)
		return ErrUserNotFound
	}

	deleted, err := svc.writer.Delete(ctx, id)
	if err != nil {
		logger.Log.Errorw("failed to delete user", "id", id, "error", err)
		return err
	}
	if !deleted {
		logger.Log.Warnw("user not found for delete", "id", id)
		return ErrUserNotFound
	}

	svc.publishEvent(ctx, "user.deleted", existing)

	return nil
}
