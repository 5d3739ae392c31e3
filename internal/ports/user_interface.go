package ports

import (
	"context"

	"dms-web-server/internal/model"
	"dms-web-server/internal/model/requestresponse"
)

// UserRepository : SQL слой пользователей
type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	ListUsers(ctx context.Context) ([]*model.User, error)
	DeleteUser(ctx context.Context, email string) (*model.User, error)
}

type UserService interface {
	Register(ctx context.Context, req *requestresponse.RegisterRequest) (*requestresponse.AuthResponse, error)
	Login(ctx context.Context, email, password string) (*requestresponse.AuthResponse, error)
	ListUsers(ctx context.Context) ([]*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	DeleteUser(ctx context.Context, callerEmail, email string) (*model.User, error)
}
