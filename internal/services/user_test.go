package services

import (
	"context"
	"testing"
	"time"

	"github.com/circleshq/circles-api/internal/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupUserService(t *testing.T) (*UserService, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })

	return NewUserService(&database.DB{Pool: mock}), mock
}

func TestUserService_Create(t *testing.T) {
	svc, mock := setupUserService(t)
	ctx := context.Background()
	userID := uuid.New()
	now := time.Now()

	rows := pgxmock.NewRows([]string{"id", "email", "first_name", "last_name", "created_at", "updated_at"}).
		AddRow(userID, "a@x.com", "Alice", "Adams", now, now)
	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("a@x.com", "Alice", "Adams").
		WillReturnRows(rows)

	user, err := svc.Create(ctx, "a@x.com", "Alice", "Adams")

	require.NoError(t, err)
	assert.Equal(t, userID, user.ID)
	assert.Equal(t, "a@x.com", user.Email)
	assert.Equal(t, "Alice", user.FirstName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserService_Create_DuplicateEmail(t *testing.T) {
	svc, mock := setupUserService(t)
	ctx := context.Background()

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("a@x.com", "Alice", "Adams").
		WillReturnError(uniqueViolation())

	_, err := svc.Create(ctx, "a@x.com", "Alice", "Adams")

	assert.ErrorIs(t, err, ErrEmailTaken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserService_GetByID(t *testing.T) {
	svc, mock := setupUserService(t)
	ctx := context.Background()
	userID := uuid.New()
	now := time.Now()

	rows := pgxmock.NewRows([]string{"id", "email", "first_name", "last_name", "created_at", "updated_at"}).
		AddRow(userID, "a@x.com", "Alice", "Adams", now, now)
	mock.ExpectQuery(`SELECT .+ FROM users WHERE id`).
		WithArgs(userID).
		WillReturnRows(rows)

	user, err := svc.GetByID(ctx, userID)

	require.NoError(t, err)
	assert.Equal(t, userID, user.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserService_GetByID_NotFound(t *testing.T) {
	svc, mock := setupUserService(t)
	ctx := context.Background()
	userID := uuid.New()

	mock.ExpectQuery(`SELECT .+ FROM users WHERE id`).
		WithArgs(userID).
		WillReturnError(pgx.ErrNoRows)

	_, err := svc.GetByID(ctx, userID)

	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserService_GetByEmail(t *testing.T) {
	svc, mock := setupUserService(t)
	ctx := context.Background()
	userID := uuid.New()
	now := time.Now()

	rows := pgxmock.NewRows([]string{"id", "email", "first_name", "last_name", "created_at", "updated_at"}).
		AddRow(userID, "a@x.com", "Alice", "Adams", now, now)
	mock.ExpectQuery(`SELECT .+ FROM users WHERE email`).
		WithArgs("a@x.com").
		WillReturnRows(rows)

	user, err := svc.GetByEmail(ctx, "a@x.com")

	require.NoError(t, err)
	assert.Equal(t, "a@x.com", user.Email)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserService_Update(t *testing.T) {
	svc, mock := setupUserService(t)
	ctx := context.Background()
	userID := uuid.New()
	now := time.Now()

	rows := pgxmock.NewRows([]string{"id", "email", "first_name", "last_name", "created_at", "updated_at"}).
		AddRow(userID, "a@x.com", "Alicia", "Adams", now, now)
	mock.ExpectQuery(`UPDATE users SET first_name`).
		WithArgs("Alicia", "Adams", userID).
		WillReturnRows(rows)

	user, err := svc.Update(ctx, userID, "Alicia", "Adams")

	require.NoError(t, err)
	assert.Equal(t, "Alicia", user.FirstName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserService_Update_NotFound(t *testing.T) {
	svc, mock := setupUserService(t)
	ctx := context.Background()
	userID := uuid.New()

	mock.ExpectQuery(`UPDATE users SET first_name`).
		WithArgs("Alicia", "Adams", userID).
		WillReturnError(pgx.ErrNoRows)

	_, err := svc.Update(ctx, userID, "Alicia", "Adams")

	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
