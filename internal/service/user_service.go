package service

import (
	"context"
	"database/sql"
	"errors"
	"log"

	"dms-web-server/internal/apperror"
	"dms-web-server/internal/model"
	"dms-web-server/internal/model/requestresponse"
	"dms-web-server/internal/ports"
	"dms-web-server/internal/security"
)

type UserService struct {
	userRepository ports.UserRepository
	jwtService     ports.TokenGenerator
}

func NewUserService(userRepository ports.UserRepository, jwtService ports.TokenGenerator) *UserService {
	return &UserService{
		userRepository: userRepository,
		jwtService:     jwtService,
	}
}

// Register : регистрирует пользователя и сразу выдаёт токен
func (s *UserService) Register(ctx context.Context, req *requestresponse.RegisterRequest) (*requestresponse.AuthResponse, error) {
	exists, err := s.userRepository.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, apperror.DatabaseConnection(err)
	}
	if exists {
		return nil, apperror.UserAlreadyExists()
	}

	hash, err := security.HashPassword(req.Password)
	if err != nil {
		return nil, apperror.UserCreation(req.Email, err)
	}

	user := &model.User{
		NationalID:     req.NationalID,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		PasswordDigest: hash,
	}

	created, err := s.userRepository.CreateUser(ctx, user)
	if err != nil {
		return nil, apperror.UserCreation(req.Email, err)
	}

	token, err := s.jwtService.GenerateToken(created.NationalID, created.Email, created.FirstName, created.LastName)
	if err != nil {
		return nil, apperror.UserCreation(req.Email, err)
	}

	log.Printf("[UserService] пользователь %s успешно зарегистрирован", created.Email)

	return &requestresponse.AuthResponse{
		Token:      token,
		Email:      created.Email,
		NationalID: created.NationalID,
		FirstName:  created.FirstName,
		LastName:   created.LastName,
	}, nil
}

// Login : аутентифицирует по email и паролю
func (s *UserService) Login(ctx context.Context, email, password string) (*requestresponse.AuthResponse, error) {
	user, err := s.userRepository.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.UserNotFound(email)
		}
		return nil, apperror.DatabaseConnection(err)
	}

	if !security.CheckPassword(user.PasswordDigest, password) {
		return nil, apperror.InvalidPassword()
	}

	token, err := s.jwtService.GenerateToken(user.NationalID, user.Email, user.FirstName, user.LastName)
	if err != nil {
		return nil, apperror.DatabaseConnection(err)
	}

	return &requestresponse.AuthResponse{
		Token:      token,
		Email:      user.Email,
		NationalID: user.NationalID,
		FirstName:  user.FirstName,
		LastName:   user.LastName,
	}, nil
}

// ListUsers : возвращает всех пользователей
func (s *UserService) ListUsers(ctx context.Context) ([]*model.User, error) {
	users, err := s.userRepository.ListUsers(ctx)
	if err != nil {
		return nil, apperror.DatabaseConnection(err)
	}
	if len(users) == 0 {
		return nil, apperror.NoUsers()
	}
	return users, nil
}

// GetUserByEmail : данные пользователя по email
func (s *UserService) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	user, err := s.userRepository.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.UserNotFound(email)
		}
		return nil, apperror.DatabaseConnection(err)
	}
	return user, nil
}

// DeleteUser : пользователь может удалить только собственный аккаунт
func (s *UserService) DeleteUser(ctx context.Context, callerEmail, email string) (*model.User, error) {
	if callerEmail != email {
		return nil, apperror.Forbidden("Unauthorized to delete this user")
	}

	deleted, err := s.userRepository.DeleteUser(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.UserNotFound(email)
		}
		return nil, apperror.UserDeletion(email, err)
	}

	log.Printf("[UserService] пользователь %s удалён", email)
	return deleted, nil
}
