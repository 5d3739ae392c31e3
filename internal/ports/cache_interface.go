package ports

import (
	"context"

	"dms-web-server/internal/model"
)

// CacheRepository : Redis слой
type CacheRepository interface {
	SetWorkspace(ctx context.Context, workspace *model.Workspace) error
	GetWorkspace(ctx context.Context, id string) (*model.Workspace, error)
	DeleteWorkspace(ctx context.Context, id string) error
}
