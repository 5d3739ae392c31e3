package ports

import (
	"context"

	"dms-web-server/internal/model"
	"dms-web-server/internal/security"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FavoriteRepository : Mongo слой избранного
type FavoriteRepository interface {
	Add(ctx context.Context, favorite *model.Favorite) (bool, error)
	Remove(ctx context.Context, userID string, workspaceID primitive.ObjectID) (bool, error)
	ListByUser(ctx context.Context, userID string) ([]model.Favorite, error)
	Exists(ctx context.Context, userID string, workspaceID primitive.ObjectID) (bool, error)
}

type FavoriteService interface {
	Add(ctx context.Context, claims *security.Claims, workspaceID string) error
	Remove(ctx context.Context, claims *security.Claims, workspaceID string) error
	ListMine(ctx context.Context, claims *security.Claims) ([]model.Workspace, error)
	Check(ctx context.Context, claims *security.Claims, workspaceID string) (bool, error)
}
