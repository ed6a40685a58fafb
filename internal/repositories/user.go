package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"

	"github.com/dhatchu14/user-management-api/internal/logger"
	"github.com/dhatchu14/user-management-api/internal/models"
)

// ErrEmailExists is returned when the unique constraint on users.email fires.
var ErrEmailExists = errors.New("email already exists")

const userColumns = "id, name, email, address, phone, created_at, updated_at"

// isUniqueViolation reports whether err is the store's native
// duplicate-conflict signal (PostgreSQL error code 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// UserReadRepository handles user read operations
type UserReadRepository struct {
	db *sqlx.DB
}

func NewUserReadRepository(db *sqlx.DB) *UserReadRepository {
	return &UserReadRepository{db: db}
}

// GetByID returns the user with the given id, or nil if no such row exists.
func (r *UserReadRepository) GetByID(ctx context.Context, id int64) (*models.UserDB, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	var user models.UserDB
	err := r.db.GetContext(ctx, &user, query, id)

	logger.Log.Infow("query executed",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{id},
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByEmail returns the user with the given email, or nil if no such row
// exists. This is a lookup helper only; uniqueness is guaranteed by the
// constraint, not by callers of this method.
func (r *UserReadRepository) GetByEmail(ctx context.Context, email string) (*models.UserDB, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	var user models.UserDB
	err := r.db.GetContext(ctx, &user, query, email)

	logger.Log.Infow("query executed",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{email},
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// List returns one page of users in creation order plus the total row count.
// The count is computed by a separate query, independent of the page.
func (r *UserReadRepository) List(ctx context.Context, skip, limit int) ([]models.UserDB, int64, error) {
	pageQuery := `SELECT ` + userColumns + ` FROM users ORDER BY id OFFSET $1 LIMIT $2`

	users := make([]models.UserDB, 0, limit)
	err := r.db.SelectContext(ctx, &users, pageQuery, skip, limit)

	logger.Log.Infow("query executed",
		"query", strings.Join(strings.Fields(pageQuery), " "),
		"args", []any{skip, limit},
		"rows", len(users),
		"error", err,
	)

	if err != nil {
		return nil, 0, err
	}

	countQuery := `SELECT COUNT(*) FROM users`

	var count int64
	err = r.db.GetContext(ctx, &count, countQuery)

	logger.Log.Infow("query executed",
		"query", countQuery,
		"result", count,
		"error", err,
	)

	if err != nil {
		return nil, 0, err
	}
	return users, count, nil
}

// UserWriteRepository handles user write operations
type UserWriteRepository struct {
	db       *sqlx.DB
	txGetter func(ctx context.Context) *sqlx.Tx
}

func NewUserWriteRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *UserWriteRepository {
	return &UserWriteRepository{db: db, txGetter: txGetter}
}

// executor returns the transaction bound to the request context when one is
// present, otherwise the pooled connection.
func (r *UserWriteRepository) executor(ctx context.Context) sqlx.ExtContext {
	if r.txGetter != nil {
		if tx := r.txGetter(ctx); tx != nil {
			return tx
		}
	}
	return r.db
}

// Save inserts a new user row. The database assigns id and created_at.
// A duplicate email surfaces as ErrEmailExists.
func (r *UserWriteRepository) Save(ctx context.Context, user models.UserCreate) (*models.UserDB, error) {
	query := `
		INSERT INTO users (name, email, address, phone)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + userColumns
	args := []any{user.Name, user.Email, user.Address, user.Phone}

	var saved models.UserDB
	err := sqlx.GetContext(ctx, r.executor(ctx), &saved, query, args...)

	logger.Log.Infow("query executed",
		"query", strings.Join(strings.Fields(query), " "),
		"args", args,
		"error", err,
	)

	if isUniqueViolation(err) {
		return nil, ErrEmailExists
	}
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

// Update applies only the supplied fields and refreshes updated_at.
// Returns nil when no row has the given id; a duplicate email surfaces as
// ErrEmailExists.
func (r *UserWriteRepository) Update(ctx context.Context, id int64, upd models.UserUpdate) (*models.UserDB, error) {
	sets := make([]string, 0, 5)
	args := make([]any, 0, 5)

	if upd.Name != nil {
		args = append(args, *upd.Name)
		sets = append(sets, fmt.Sprintf("name = $%d", len(args)))
	}
	if upd.Email != nil {
		args = append(args, *upd.Email)
		sets = append(sets, fmt.Sprintf("email = $%d", len(args)))
	}
	if upd.Address != nil {
		args = append(args, *upd.Address)
		sets = append(sets, fmt.Sprintf("address = $%d", len(args)))
	}
	if upd.Phone != nil {
		args = append(args, *upd.Phone)
		sets = append(sets, fmt.Sprintf("phone = $%d", len(args)))
	}
	sets = append(sets, "updated_at = NOW()")

	args = append(args, id)
	query := fmt.Sprintf(
		"UPDATE users SET %s WHERE id = $%d RETURNING %s",
		strings.Join(sets, ", "), len(args), userColumns,
	)

	var updated models.UserDB
	err := sqlx.GetContext(ctx, r.executor(ctx), &updated, query, args...)

	logger.Log.Infow("query executed",
		"query", strings.Join(strings.Fields(query), " "),
		"args", args,
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if isUniqueViolation(err) {
		return nil, ErrEmailExists
	}
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes the user row with the given id. Returns true when a row was
// actually deleted.
func (r *UserWriteRepository) Delete(ctx context.Context, id int64) (bool, error) {
	query := `DELETE FROM users WHERE id = $1`

	res, err := r.executor(ctx).ExecContext(ctx, query, id)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logger.Log.Infow("query executed",
		"query", query,
		"args", []any{id},
		"result", rowsAffected,
		"error", err,
	)

	if err != nil {
		return false, err
	}
	return rowsAffected > 0, nil
}
