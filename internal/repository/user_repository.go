package repository

import (
	"context"
	"database/sql"
	"errors"

	"dms-web-server/config"
	"dms-web-server/internal/model"
	"dms-web-server/internal/util"
)

type UserRepository struct {
	*config.Database
}

func NewUserRepository(database *config.Database) *UserRepository {
	return &UserRepository{database}
}

// CreateUser : сохраняет нового пользователя
func (r *UserRepository) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	query := `
	INSERT INTO users (national_id, first_name, last_name, email, password_digest)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING national_id, first_name, last_name, email, password_digest, created_at, updated_at
	`

	createdUser := &model.User{}
	err := r.DB.QueryRowxContext(ctx, query,
		user.NationalID,
		user.FirstName,
		user.LastName,
		user.Email,
		user.PasswordDigest,
	).StructScan(createdUser)

	if err != nil {
		return nil, util.LogError("[UserRepo] ошибка вставки данных в БД", err)
	}

	return createdUser, nil
}

// FindByEmail : ищет пользователя по email
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `
	SELECT national_id, first_name, last_name, email, password_digest, created_at, updated_at
	FROM users WHERE email = $1
	`

	var user model.User
	err := r.DB.GetContext(ctx, &user, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, util.LogError("[UserRepo] не удалось найти пользователя по email", err)
	}
	return &user, nil
}

// EmailExists : проверяет, зарегистрирован ли email
func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`
	err := r.DB.GetContext(ctx, &exists, query, email)
	if err != nil {
		return false, util.LogError("[UserRepo] ошибка проверки существования email", err)
	}
	return exists, nil
}

// ListUsers : возвращает всех пользователей
func (r *UserRepository) ListUsers(ctx context.Context) ([]*model.User, error) {
	query := `
	SELECT national_id, first_name, last_name, email, password_digest, created_at, updated_at
	FROM users ORDER BY created_at ASC
	`

	var users []*model.User
	err := r.DB.SelectContext(ctx, &users, query)
	if err != nil {
		return nil, util.LogError("[UserRepo] не удалось получить список пользователей", err)
	}
	return users, nil
}

// DeleteUser : удаляет пользователя по email, возвращает удалённую строку
func (r *UserRepository) DeleteUser(ctx context.Context, email string) (*model.User, error) {
	query := `
	DELETE FROM users WHERE email = $1
	RETURNING national_id, first_name, last_name, email, password_digest, created_at, updated_at
	`

	deletedUser := &model.User{}
	err := r.DB.QueryRowxContext(ctx, query, email).StructScan(deletedUser)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, util.LogError("[UserRepo] не удалось удалить пользователя", err)
	}
	return deletedUser, nil
}
