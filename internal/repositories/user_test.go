package repositories

import (
	"context"
	"fmt"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/dhatchu14/user-management-api/internal/models"
)

func setupUserPostgresContainer(t *testing.T) (*sqlx.DB, func()) {
	t.Helper()

	req := tc.ContainerRequest{
		Image:        "postgres:15-alpine",
		Env:          map[string]string{"POSTGRES_PASSWORD": "password", "POSTGRES_DB": "testdb", "POSTGRES_USER": "postgres"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForListeningPort("5432/tcp"),
	}

	container, err := tc.GenericContainer(context.Background(), tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	assert.NoError(t, err)

	host, _ := container.Host(context.Background())
	port, _ := container.MappedPort(context.Background(), "5432")

	dsn := fmt.Sprintf("postgres://postgres:password@%s:%d/testdb?sslmode=disable", host, port.Int())

	var db *sqlx.DB
	for i := 0; i < 10; i++ {
		db, err = sqlx.Connect("pgx", dsn)
		if err == nil {
			break
		}
		time.Sleep(time.Second)
	}
	assert.NoError(t, err)

	schema := `
	CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(100) NOT NULL,
		email VARCHAR(255) NOT NULL UNIQUE,
		address TEXT,
		phone VARCHAR(50),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ
	);
	`
	_, err = db.Exec(schema)
	assert.NoError(t, err)

	teardown := func() {
		db.Close()
		container.Terminate(context.Background())
	}

	return db, teardown
}

func strPtr(s string) *string { return &s }

func TestUserWriteRepository_Save(t *testing.T) {
	db, teardown := setupUserPostgresContainer(t)
	defer teardown()

	repo := NewUserWriteRepository(db, nil)
	readRepo := NewUserReadRepository(db)
	ctx := context.Background()

	saved, err := repo.Save(ctx, models.UserCreate{
		Name:    "John Doe",
		Email:   "john@example.com",
		Address: strPtr("123 Main St"),
	})
	assert.NoError(t, err)
	assert.NotNil(t, saved)
	assert.Equal(t, "John Doe", saved.Name)
	assert.Equal(t, "john@example.com", saved.Email)
	assert.NotNil(t, saved.Address)
	assert.Nil(t, saved.Phone)
	assert.False(t, saved.CreatedAt.IsZero())
	assert.Nil(t, saved.UpdatedAt)

	// id is stable on a subsequent fetch
	fetched, err := readRepo.GetByID(ctx, saved.ID)
	assert.NoError(t, err)
	assert.NotNil(t, fetched)
	assert.Equal(t, saved.ID, fetched.ID)
	assert.Equal(t, "John Doe", fetched.Name)
}

func TestUserWriteRepository_Save_DuplicateEmail(t *testing.T) {
	db, teardown := setupUserPostgresContainer(t)
	defer teardown()

	repo := NewUserWriteRepository(db, nil)
	ctx := context.Background()

	first, err := repo.Save(ctx, models.UserCreate{Name: "John Doe", Email: "a@x.com"})
	assert.NoError(t, err)

	second, err := repo.Save(ctx, models.UserCreate{Name: "Jane Doe", Email: "a@x.com"})
	assert.ErrorIs(t, err, ErrEmailExists)
	assert.Nil(t, second)

	// first row is unaffected and remains the only one for that email
	var count int
	err = db.Get(&count, "SELECT COUNT(*) FROM users WHERE email = $1", "a@x.com")
	assert.NoError(t, err)
	assert.Equal(t, 1, count)

	var name string
	err = db.Get(&name, "SELECT name FROM users WHERE id = $1", first.ID)
	assert.NoError(t, err)
	assert.Equal(t, "John Doe", name)
}

func TestUserReadRepository_GetByEmail(t *testing.T) {
	db, teardown := setupUserPostgresContainer(t)
	defer teardown()

	writeRepo := NewUserWriteRepository(db, nil)
	readRepo := NewUserReadRepository(db)
	ctx := context.Background()

	_, err := writeRepo.Save(ctx, models.UserCreate{Name: "Charlie", Email: "charlie@example.com"})
	assert.NoError(t, err)

	t.Run("Found", func(t *testing.T) {
		user, err := readRepo.GetByEmail(ctx, "charlie@example.com")
		assert.NoError(t, err)
		assert.NotNil(t, user)
		assert.Equal(t, "Charlie", user.Name)
	})

	t.Run("NotFound", func(t *testing.T) {
		user, err := readRepo.GetByEmail(ctx, "nobody@example.com")
		assert.NoError(t, err)
		assert.Nil(t, user)
	})

	t.Run("CaseSensitive", func(t *testing.T) {
		user, err := readRepo.GetByEmail(ctx, "Charlie@example.com")
		assert.NoError(t, err)
		assert.Nil(t, user)
	})
}

func TestUserReadRepository_GetByID_NotFound(t *testing.T) {
	db, teardown := setupUserPostgresContainer(t)
	defer teardown()

	readRepo := NewUserReadRepository(db)

	user, err := readRepo.GetByID(context.Background(), 9999)
	assert.NoError(t, err)
	assert.Nil(t, user)
}

func TestUserWriteRepository_Update_Partial(t *testing.T) {
	db, teardown := setupUserPostgresContainer(t)
	defer teardown()

	writeRepo := NewUserWriteRepository(db, nil)
	ctx := context.Background()

	saved, err := writeRepo.Save(ctx, models.UserCreate{
		Name:  "John Doe",
		Email: "john@example.com",
		Phone: strPtr("+1234567890"),
	})
	assert.NoError(t, err)

	updated, err := writeRepo.Update(ctx, saved.ID, models.UserUpdate{Address: strPtr("New St")})
	assert.NoError(t, err)
	assert.NotNil(t, updated)

	// only address changed; updated_at is now set
	assert.Equal(t, "John Doe", updated.Name)
	assert.Equal(t, "john@example.com", updated.Email)
	assert.NotNil(t, updated.Phone)
	assert.Equal(t, "+1234567890", *updated.Phone)
	assert.NotNil(t, updated.Address)
	assert.Equal(t, "New St", *updated.Address)
	assert.NotNil(t, updated.UpdatedAt)
}

func TestUserWriteRepository_Update_NotFound(t *testing.T) {
	db, teardown := setupUserPostgresContainer(t)
	defer teardown()

	writeRepo := NewUserWriteRepository(db, nil)

	updated, err := writeRepo.Update(context.Background(), 12345, models.UserUpdate{Address: strPtr("New St")})
	assert.NoError(t, err)
	assert.Nil(t, updated)
}

func TestUserWriteRepository_Update_DuplicateEmail(t *testing.T) {
	db, teardown := setupUserPostgresContainer(t)
	defer teardown()

	writeRepo := NewUserWriteRepository(db, nil)
	ctx := context.Background()

	_, err := writeRepo.Save(ctx, models.UserCreate{Name: "Alice", Email: "alice@example.com"})
	assert.NoError(t, err)
	bob, err := writeRepo.Save(ctx, models.UserCreate{Name: "Bob", Email: "bob@example.com"})
	assert.NoError(t, err)

	updated, err := writeRepo.Update(ctx, bob.ID, models.UserUpdate{Email: strPtr("alice@example.com")})
	assert.ErrorIs(t, err, ErrEmailExists)
	assert.Nil(t, updated)

	// failed update left the row unchanged
	var email string
	err = db.Get(&email, "SELECT email FROM users WHERE id = $1", bob.ID)
	assert.NoError(t, err)
	assert.Equal(t, "bob@example.com", email)
}

func TestUserWriteRepository_Delete(t *testing.T) {
	db, teardown := setupUserPostgresContainer(t)
	defer teardown()

	writeRepo := NewUserWriteRepository(db, nil)
	ctx := context.Background()

	saved, err := writeRepo.Save(ctx, models.UserCreate{Name: "John Doe", Email: "john@example.com"})
	assert.NoError(t, err)

	deleted, err := writeRepo.Delete(ctx, saved.ID)
	assert.NoError(t, err)
	assert.True(t, deleted)

	// second delete finds nothing
	deleted, err = writeRepo.Delete(ctx, saved.ID)
	assert.NoError(t, err)
	assert.False(t, deleted)
}

func TestUserReadRepository_List(t *testing.T) {
	db, teardown := setupUserPostgresContainer(t)
	defer teardown()

	writeRepo := NewUserWriteRepository(db, nil)
	readRepo := NewUserReadRepository(db)
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		_, err := writeRepo.Save(ctx, models.UserCreate{
			Name:  fmt.Sprintf("User %d", i),
			Email: fmt.Sprintf("user%d@example.com", i),
		})
		assert.NoError(t, err)
	}

	t.Run("PageWithTotalCount", func(t *testing.T) {
		users, count, err := readRepo.List(ctx, 0, 2)
		assert.NoError(t, err)
		assert.Len(t, users, 2)
		assert.Equal(t, int64(5), count)
		assert.Equal(t, "User 1", users[0].Name)
		assert.Equal(t, "User 2", users[1].Name)
	})

	t.Run("Skip", func(t *testing.T) {
		users, count, err := readRepo.List(ctx, 4, 2)
		assert.NoError(t, err)
		assert.Len(t, users, 1)
		assert.Equal(t, int64(5), count)
		assert.Equal(t, "User 5", users[0].Name)
	})

	t.Run("EmptyPageBeyondEnd", func(t *testing.T) {
		users, count, err := readRepo.List(ctx, 10, 2)
		assert.NoError(t, err)
		assert.Len(t, users, 0)
		assert.Equal(t, int64(5), count)
	})
}
