package repository_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"dms-web-server/config"
	"dms-web-server/internal/model"
	"dms-web-server/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
)

func newMockDatabase(t *testing.T) (*config.Database, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return &config.Database{DB: sqlx.NewDb(db, "sqlmock")}, mock
}

func userColumns() []string {
	return []string{"national_id", "first_name", "last_name", "email", "password_digest", "created_at", "updated_at"}
}

func TestUserRepository_CreateUser(t *testing.T) {
	database, mock := newMockDatabase(t)
	repo := repository.NewUserRepository(database)

	now := time.Now()
	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("29805241234567", "Ivan", "Petrov", "ivan@example.com", "digest").
		WillReturnRows(sqlmock.NewRows(userColumns()).
			AddRow("29805241234567", "Ivan", "Petrov", "ivan@example.com", "digest", now, now))

	created, err := repo.CreateUser(context.Background(), &model.User{
		NationalID:     "29805241234567",
		FirstName:      "Ivan",
		LastName:       "Petrov",
		Email:          "ivan@example.com",
		PasswordDigest: "digest",
	})

	assert.NoError(t, err)
	assert.Equal(t, "ivan@example.com", created.Email)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_FindByEmail(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		database, mock := newMockDatabase(t)
		repo := repository.NewUserRepository(database)

		now := time.Now()
		mock.ExpectQuery(`SELECT national_id, first_name, last_name, email, password_digest, created_at, updated_at`).
			WithArgs("ivan@example.com").
			WillReturnRows(sqlmock.NewRows(userColumns()).
				AddRow("29805241234567", "Ivan", "Petrov", "ivan@example.com", "digest", now, now))

		user, err := repo.FindByEmail(context.Background(), "ivan@example.com")
		assert.NoError(t, err)
		assert.Equal(t, "29805241234567", user.NationalID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found passes through ErrNoRows", func(t *testing.T) {
		database, mock := newMockDatabase(t)
		repo := repository.NewUserRepository(database)

		mock.ExpectQuery(`SELECT national_id`).
			WithArgs("missing@example.com").
			WillReturnError(sql.ErrNoRows)

		user, err := repo.FindByEmail(context.Background(), "missing@example.com")
		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.Nil(t, user)
	})
}

func TestUserRepository_EmailExists(t *testing.T) {
	database, mock := newMockDatabase(t)
	repo := repository.NewUserRepository(database)

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("ivan@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.EmailExists(context.Background(), "ivan@example.com")
	assert.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_ListUsers(t *testing.T) {
	database, mock := newMockDatabase(t)
	repo := repository.NewUserRepository(database)

	now := time.Now()
	mock.ExpectQuery(`SELECT national_id.*ORDER BY created_at ASC`).
		WillReturnRows(sqlmock.NewRows(userColumns()).
			AddRow("1", "A", "A", "a@example.com", "d", now, now).
			AddRow("2", "B", "B", "b@example.com", "d", now, now))

	users, err := repo.ListUsers(context.Background())
	assert.NoError(t, err)
	assert.Len(t, users, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_DeleteUser(t *testing.T) {
	t.Run("deleted row returned", func(t *testing.T) {
		database, mock := newMockDatabase(t)
		repo := repository.NewUserRepository(database)

		now := time.Now()
		mock.ExpectQuery(`DELETE FROM users`).
			WithArgs("ivan@example.com").
			WillReturnRows(sqlmock.NewRows(userColumns()).
				AddRow("29805241234567", "Ivan", "Petrov", "ivan@example.com", "digest", now, now))

		deleted, err := repo.DeleteUser(context.Background(), "ivan@example.com")
		assert.NoError(t, err)
		assert.Equal(t, "ivan@example.com", deleted.Email)
	})

	t.Run("missing user passes through ErrNoRows", func(t *testing.T) {
		database, mock := newMockDatabase(t)
		repo := repository.NewUserRepository(database)

		mock.ExpectQuery(`DELETE FROM users`).
			WithArgs("missing@example.com").
			WillReturnError(sql.ErrNoRows)

		deleted, err := repo.DeleteUser(context.Background(), "missing@example.com")
		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.Nil(t, deleted)
	})
}
