package ports

import (
	"context"

	"dms-web-server/internal/model"
	"dms-web-server/internal/model/requestresponse"
	"dms-web-server/internal/security"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WorkspaceRepository : Mongo слой workspace
// Мутации списков выполняются атомарными условными update, без read-modify-write
type WorkspaceRepository interface {
	Create(ctx context.Context, workspace *model.Workspace) (*model.Workspace, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.Workspace, error)
	ListByOwner(ctx context.Context, userID string, deleted bool) ([]model.Workspace, error)
	ListPublicRanked(ctx context.Context) ([]model.RankedWorkspace, error)
	ListRecent(ctx context.Context, userID string, limit int64) ([]model.Workspace, error)
	ListByIDs(ctx context.Context, ids []primitive.ObjectID) ([]model.Workspace, error)
	UpdateMeta(ctx context.Context, id primitive.ObjectID, name, description string, isPublic *bool) error
	SetDeleted(ctx context.Context, id primitive.ObjectID, deleted bool) error
	DeleteByID(ctx context.Context, id primitive.ObjectID) error
	AddGrant(ctx context.Context, id primitive.ObjectID, userEmail, permission string) (bool, error)
	RemoveGrant(ctx context.Context, id primitive.ObjectID, userEmail string) (bool, error)
	AddDocument(ctx context.Context, id, documentID primitive.ObjectID) error
	RemoveDocument(ctx context.Context, id, documentID primitive.ObjectID) error
}

// PermissionRepository : нормализованные grants для обратного поиска
type PermissionRepository interface {
	Upsert(ctx context.Context, userEmail string, workspaceID primitive.ObjectID, permission string) error
	Remove(ctx context.Context, userEmail string, workspaceID primitive.ObjectID) error
	ListByEmail(ctx context.Context, userEmail string) ([]model.Permission, error)
}

type WorkspaceService interface {
	Create(ctx context.Context, claims *security.Claims, req *requestresponse.CreateWorkspaceRequest) (*model.Workspace, error)
	ListMine(ctx context.Context, claims *security.Claims) ([]model.WorkspaceView, error)
	ListPublic(ctx context.Context) ([]model.RankedWorkspace, error)
	GetByID(ctx context.Context, claims *security.Claims, workspaceID, nameFilter, sortBy, order string) (*model.WorkspaceView, error)
	Update(ctx context.Context, claims *security.Claims, workspaceID string, req *requestresponse.UpdateWorkspaceRequest) (*model.Workspace, error)
	SoftDelete(ctx context.Context, claims *security.Claims, workspaceID string) error
	Restore(ctx context.Context, claims *security.Claims, workspaceID string) error
	ListDeleted(ctx context.Context, claims *security.Claims) ([]model.Workspace, error)
	PermanentDelete(ctx context.Context, claims *security.Claims, workspaceID string) error
	Share(ctx context.Context, claims *security.Claims, workspaceID, userEmail, permission string) error
	RevokeShare(ctx context.Context, claims *security.Claims, workspaceID, userEmail string) error
	Recent(ctx context.Context, claims *security.Claims) ([]model.Workspace, error)
	SharedWithMe(ctx context.Context, claims *security.Claims) ([]model.Workspace, error)
}
