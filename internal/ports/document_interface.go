package ports

import (
	"context"
	"io"

	"dms-web-server/internal/model"
	"dms-web-server/internal/security"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DocumentRepository : Mongo слой документов
type DocumentRepository interface {
	Create(ctx context.Context, document *model.Document) (*model.Document, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.Document, error)
	ListByOwner(ctx context.Context, userID string, deleted bool) ([]model.Document, error)
	ListByIDs(ctx context.Context, ids []primitive.ObjectID, deleted bool) ([]model.Document, error)
	ListByWorkspace(ctx context.Context, workspaceID primitive.ObjectID) ([]model.Document, error)
	SetDeleted(ctx context.Context, id primitive.ObjectID, deleted bool) error
	DeleteByID(ctx context.Context, id primitive.ObjectID) error
	DeleteByWorkspace(ctx context.Context, workspaceID primitive.ObjectID) error
}

// FileUpload : разобранный multipart-файл с мета-данными
type FileUpload struct {
	DocumentName     string
	OriginalFileName string
	MimeType         string
	Size             int64
	Tags             []string
	Body             io.Reader
}

type DocumentService interface {
	UploadToWorkspace(ctx context.Context, claims *security.Claims, workspaceID string, upload *FileUpload) (*model.Document, error)
	ListMine(ctx context.Context, claims *security.Claims) ([]model.Document, error)
	GetByID(ctx context.Context, claims *security.Claims, documentID string) (*model.Document, error)
	Filter(ctx context.Context, claims *security.Claims, nameFilter, sortBy, order string) ([]model.Document, error)
	RecycleBin(ctx context.Context, claims *security.Claims) ([]model.Document, error)
	SoftDelete(ctx context.Context, claims *security.Claims, documentID string) error
	Restore(ctx context.Context, claims *security.Claims, documentID string) error
	PermanentDelete(ctx context.Context, claims *security.Claims, documentID string) error
	Download(ctx context.Context, claims *security.Claims, documentID string) (*model.Document, io.ReadCloser, error)
	Preview(ctx context.Context, claims *security.Claims, documentID string) (*model.Document, []byte, error)
	RemoveFromWorkspace(ctx context.Context, claims *security.Claims, workspaceID, documentID string) error
}
