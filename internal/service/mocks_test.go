package service_test

import (
	"context"
	"io"

	"dms-web-server/internal/model"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) ListUsers(ctx context.Context) ([]*model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.User), args.Error(1)
}

func (m *MockUserRepository) DeleteUser(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

type MockTokenGenerator struct {
	mock.Mock
}

func (m *MockTokenGenerator) GenerateToken(nationalID, email, firstName, lastName string) (string, error) {
	args := m.Called(nationalID, email, firstName, lastName)
	return args.String(0), args.Error(1)
}

type MockOTPRepository struct {
	mock.Mock
}

func (m *MockOTPRepository) Upsert(ctx context.Context, otp *model.UserOTP) error {
	args := m.Called(ctx, otp)
	return args.Error(0)
}

func (m *MockOTPRepository) FindUnused(ctx context.Context, email, code string) (*model.UserOTP, error) {
	args := m.Called(ctx, email, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.UserOTP), args.Error(1)
}

func (m *MockOTPRepository) MarkUsed(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOTPRepository) DeleteExpired(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) Send(to, subject, body string) error {
	args := m.Called(to, subject, body)
	return args.Error(0)
}

type MockWorkspaceRepository struct {
	mock.Mock
}

func (m *MockWorkspaceRepository) Create(ctx context.Context, workspace *model.Workspace) (*model.Workspace, error) {
	args := m.Called(ctx, workspace)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Workspace), args.Error(1)
}

func (m *MockWorkspaceRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Workspace, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Workspace), args.Error(1)
}

func (m *MockWorkspaceRepository) ListByOwner(ctx context.Context, userID string, deleted bool) ([]model.Workspace, error) {
	args := m.Called(ctx, userID, deleted)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Workspace), args.Error(1)
}

func (m *MockWorkspaceRepository) ListPublicRanked(ctx context.Context) ([]model.RankedWorkspace, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.RankedWorkspace), args.Error(1)
}

func (m *MockWorkspaceRepository) ListRecent(ctx context.Context, userID string, limit int64) ([]model.Workspace, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Workspace), args.Error(1)
}

func (m *MockWorkspaceRepository) ListByIDs(ctx context.Context, ids []primitive.ObjectID) ([]model.Workspace, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Workspace), args.Error(1)
}

func (m *MockWorkspaceRepository) UpdateMeta(ctx context.Context, id primitive.ObjectID, name, description string, isPublic *bool) error {
	args := m.Called(ctx, id, name, description, isPublic)
	return args.Error(0)
}

func (m *MockWorkspaceRepository) SetDeleted(ctx context.Context, id primitive.ObjectID, deleted bool) error {
	args := m.Called(ctx, id, deleted)
	return args.Error(0)
}

func (m *MockWorkspaceRepository) DeleteByID(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockWorkspaceRepository) AddGrant(ctx context.Context, id primitive.ObjectID, userEmail, permission string) (bool, error) {
	args := m.Called(ctx, id, userEmail, permission)
	return args.Bool(0), args.Error(1)
}

func (m *MockWorkspaceRepository) RemoveGrant(ctx context.Context, id primitive.ObjectID, userEmail string) (bool, error) {
	args := m.Called(ctx, id, userEmail)
	return args.Bool(0), args.Error(1)
}

func (m *MockWorkspaceRepository) AddDocument(ctx context.Context, id, documentID primitive.ObjectID) error {
	args := m.Called(ctx, id, documentID)
	return args.Error(0)
}

func (m *MockWorkspaceRepository) RemoveDocument(ctx context.Context, id, documentID primitive.ObjectID) error {
	args := m.Called(ctx, id, documentID)
	return args.Error(0)
}

type MockDocumentRepository struct {
	mock.Mock
}

func (m *MockDocumentRepository) Create(ctx context.Context, document *model.Document) (*model.Document, error) {
	args := m.Called(ctx, document)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Document), args.Error(1)
}

func (m *MockDocumentRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Document, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Document), args.Error(1)
}

func (m *MockDocumentRepository) ListByOwner(ctx context.Context, userID string, deleted bool) ([]model.Document, error) {
	args := m.Called(ctx, userID, deleted)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Document), args.Error(1)
}

func (m *MockDocumentRepository) ListByIDs(ctx context.Context, ids []primitive.ObjectID, deleted bool) ([]model.Document, error) {
	args := m.Called(ctx, ids, deleted)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Document), args.Error(1)
}

func (m *MockDocumentRepository) ListByWorkspace(ctx context.Context, workspaceID primitive.ObjectID) ([]model.Document, error) {
	args := m.Called(ctx, workspaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Document), args.Error(1)
}

func (m *MockDocumentRepository) SetDeleted(ctx context.Context, id primitive.ObjectID, deleted bool) error {
	args := m.Called(ctx, id, deleted)
	return args.Error(0)
}

func (m *MockDocumentRepository) DeleteByID(ctx context.Context, id primitive.ObjectID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockDocumentRepository) DeleteByWorkspace(ctx context.Context, workspaceID primitive.ObjectID) error {
	args := m.Called(ctx, workspaceID)
	return args.Error(0)
}

type MockPermissionRepository struct {
	mock.Mock
}

func (m *MockPermissionRepository) Upsert(ctx context.Context, userEmail string, workspaceID primitive.ObjectID, permission string) error {
	args := m.Called(ctx, userEmail, workspaceID, permission)
	return args.Error(0)
}

func (m *MockPermissionRepository) Remove(ctx context.Context, userEmail string, workspaceID primitive.ObjectID) error {
	args := m.Called(ctx, userEmail, workspaceID)
	return args.Error(0)
}

func (m *MockPermissionRepository) ListByEmail(ctx context.Context, userEmail string) ([]model.Permission, error) {
	args := m.Called(ctx, userEmail)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Permission), args.Error(1)
}

type MockFavoriteRepository struct {
	mock.Mock
}

func (m *MockFavoriteRepository) Add(ctx context.Context, favorite *model.Favorite) (bool, error) {
	args := m.Called(ctx, favorite)
	return args.Bool(0), args.Error(1)
}

func (m *MockFavoriteRepository) Remove(ctx context.Context, userID string, workspaceID primitive.ObjectID) (bool, error) {
	args := m.Called(ctx, userID, workspaceID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFavoriteRepository) ListByUser(ctx context.Context, userID string) ([]model.Favorite, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Favorite), args.Error(1)
}

func (m *MockFavoriteRepository) Exists(ctx context.Context, userID string, workspaceID primitive.ObjectID) (bool, error) {
	args := m.Called(ctx, userID, workspaceID)
	return args.Bool(0), args.Error(1)
}

type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) SetWorkspace(ctx context.Context, workspace *model.Workspace) error {
	args := m.Called(ctx, workspace)
	return args.Error(0)
}

func (m *MockCacheRepository) GetWorkspace(ctx context.Context, id string) (*model.Workspace, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Workspace), args.Error(1)
}

func (m *MockCacheRepository) DeleteWorkspace(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockFileStorage struct {
	mock.Mock
}

func (m *MockFileStorage) Upload(ctx context.Context, key string, body io.Reader, size int64, contentType string) error {
	args := m.Called(ctx, key, body, size, contentType)
	return args.Error(0)
}

func (m *MockFileStorage) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.ReadCloser), args.Error(1)
}

func (m *MockFileStorage) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}
