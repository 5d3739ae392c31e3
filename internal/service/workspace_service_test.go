package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"dms-web-server/internal/apperror"
	"dms-web-server/internal/model"
	"dms-web-server/internal/model/requestresponse"
	"dms-web-server/internal/security"
	srv "dms-web-server/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func newWorkspaceService() (*srv.WorkspaceService, *MockWorkspaceRepository, *MockDocumentRepository, *MockPermissionRepository, *MockCacheRepository, *MockFileStorage) {
	wsRepo := new(MockWorkspaceRepository)
	docRepo := new(MockDocumentRepository)
	permRepo := new(MockPermissionRepository)
	cacheRepo := new(MockCacheRepository)
	storage := new(MockFileStorage)
	service := srv.NewWorkspaceService(wsRepo, docRepo, permRepo, cacheRepo, storage)
	return service, wsRepo, docRepo, permRepo, cacheRepo, storage
}

func ownerClaims() *security.Claims {
	return &security.Claims{NationalID: "owner-1", Email: "owner@example.com"}
}

func TestWorkspaceService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("name required", func(t *testing.T) {
		service, _, _, _, _, _ := newWorkspaceService()

		ws, err := service.Create(ctx, ownerClaims(), &requestresponse.CreateWorkspaceRequest{})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "workspaceName is required")
		assert.Equal(t, http.StatusBadRequest, apperror.Status(err))
		assert.Nil(t, ws)
	})

	t.Run("success", func(t *testing.T) {
		service, wsRepo, _, _, _, _ := newWorkspaceService()

		wsRepo.On("Create", ctx, mock.Anything).Return(&model.Workspace{
			ID:            primitive.NewObjectID(),
			WorkspaceName: "Research",
			UserID:        "owner-1",
			UserEmail:     "owner@example.com",
		}, nil)

		ws, err := service.Create(ctx, ownerClaims(), &requestresponse.CreateWorkspaceRequest{WorkspaceName: "Research"})
		assert.NoError(t, err)
		assert.Equal(t, "Research", ws.WorkspaceName)
		assert.Equal(t, "owner-1", ws.UserID)
		wsRepo.AssertExpectations(t)
	})
}

func TestWorkspaceService_GetByID(t *testing.T) {
	ctx := context.Background()
	wsID := primitive.NewObjectID()

	tests := []struct {
		name         string
		claims       *security.Claims
		workspace    *model.Workspace
		expectRole   string
		expectError  string
		expectStatus int
	}{
		{
			name:   "owner sees own workspace",
			claims: ownerClaims(),
			workspace: &model.Workspace{
				ID: wsID, WorkspaceName: "Research",
				UserID: "owner-1", UserEmail: "owner@example.com",
			},
			expectRole: model.RoleOwner,
		},
		{
			name:   "stranger denied on private workspace",
			claims: &security.Claims{NationalID: "user-2", Email: "stranger@example.com"},
			workspace: &model.Workspace{
				ID: wsID, WorkspaceName: "Research",
				UserID: "owner-1", UserEmail: "owner@example.com",
			},
			expectError:  "Not authorized to view this workspace",
			expectStatus: http.StatusForbidden,
		},
		{
			name:   "stranger allowed on public workspace",
			claims: &security.Claims{NationalID: "user-2", Email: "stranger@example.com"},
			workspace: &model.Workspace{
				ID: wsID, WorkspaceName: "Research", IsPublic: true,
				UserID: "owner-1", UserEmail: "owner@example.com",
			},
			expectRole: model.RoleNone,
		},
		{
			name:   "grant resolves to viewer",
			claims: &security.Claims{NationalID: "user-2", Email: "viewer@example.com"},
			workspace: &model.Workspace{
				ID: wsID, WorkspaceName: "Research",
				UserID: "owner-1", UserEmail: "owner@example.com",
				Permissions: []model.WorkspacePermission{
					{UserEmail: "viewer@example.com", Permission: model.RoleViewer},
				},
			},
			expectRole: model.RoleViewer,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, wsRepo, docRepo, _, cacheRepo, _ := newWorkspaceService()

			cacheRepo.On("GetWorkspace", ctx, wsID.Hex()).Return(nil, nil)
			wsRepo.On("FindByID", ctx, wsID).Return(tt.workspace, nil)
			cacheRepo.On("SetWorkspace", ctx, tt.workspace).Return(nil)
			docRepo.On("ListByIDs", ctx, mock.Anything, false).Return([]model.Document{}, nil).Maybe()

			view, err := service.GetByID(ctx, tt.claims, wsID.Hex(), "", "", "")

			if tt.expectError != "" {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectError)
				assert.Equal(t, tt.expectStatus, apperror.Status(err))
				assert.Nil(t, view)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectRole, view.Role)
			}
		})
	}

	t.Run("missing workspace", func(t *testing.T) {
		service, wsRepo, _, _, cacheRepo, _ := newWorkspaceService()

		cacheRepo.On("GetWorkspace", ctx, wsID.Hex()).Return(nil, nil)
		wsRepo.On("FindByID", ctx, wsID).Return(nil, mongo.ErrNoDocuments)

		view, err := service.GetByID(ctx, ownerClaims(), wsID.Hex(), "", "", "")
		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, apperror.Status(err))
		assert.Nil(t, view)
	})

	t.Run("invalid id", func(t *testing.T) {
		service, _, _, _, _, _ := newWorkspaceService()

		view, err := service.GetByID(ctx, ownerClaims(), "not-an-id", "", "", "")
		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, apperror.Status(err))
		assert.Nil(t, view)
	})
}

func TestWorkspaceService_Share(t *testing.T) {
	ctx := context.Background()
	wsID := primitive.NewObjectID()

	workspace := func() *model.Workspace {
		return &model.Workspace{
			ID: wsID, WorkspaceName: "Research",
			UserID: "owner-1", UserEmail: "owner@example.com",
		}
	}

	t.Run("invalid permission", func(t *testing.T) {
		service, _, _, _, _, _ := newWorkspaceService()

		err := service.Share(ctx, ownerClaims(), wsID.Hex(), "friend@example.com", "admin")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Permission must be either editor or viewer")
		assert.Equal(t, http.StatusBadRequest, apperror.Status(err))
	})

	t.Run("grant to owner rejected", func(t *testing.T) {
		service, wsRepo, _, _, cacheRepo, _ := newWorkspaceService()

		cacheRepo.On("GetWorkspace", ctx, wsID.Hex()).Return(nil, nil)
		wsRepo.On("FindByID", ctx, wsID).Return(workspace(), nil)
		cacheRepo.On("SetWorkspace", ctx, mock.Anything).Return(nil)

		err := service.Share(ctx, ownerClaims(), wsID.Hex(), "owner@example.com", model.RoleViewer)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Cannot grant access to the workspace owner")
	})

	t.Run("viewer cannot share", func(t *testing.T) {
		service, wsRepo, _, _, cacheRepo, _ := newWorkspaceService()

		ws := workspace()
		ws.Permissions = []model.WorkspacePermission{{UserEmail: "viewer@example.com", Permission: model.RoleViewer}}

		cacheRepo.On("GetWorkspace", ctx, wsID.Hex()).Return(nil, nil)
		wsRepo.On("FindByID", ctx, wsID).Return(ws, nil)
		cacheRepo.On("SetWorkspace", ctx, mock.Anything).Return(nil)

		claims := &security.Claims{NationalID: "user-2", Email: "viewer@example.com"}
		err := service.Share(ctx, claims, wsID.Hex(), "friend@example.com", model.RoleViewer)
		assert.Error(t, err)
		assert.Equal(t, http.StatusForbidden, apperror.Status(err))
	})

	t.Run("duplicate grant rejected", func(t *testing.T) {
		service, wsRepo, _, _, cacheRepo, _ := newWorkspaceService()

		cacheRepo.On("GetWorkspace", ctx, wsID.Hex()).Return(nil, nil)
		wsRepo.On("FindByID", ctx, wsID).Return(workspace(), nil)
		cacheRepo.On("SetWorkspace", ctx, mock.Anything).Return(nil)
		wsRepo.On("AddGrant", ctx, wsID, "friend@example.com", model.RoleViewer).Return(false, nil)

		err := service.Share(ctx, ownerClaims(), wsID.Hex(), "friend@example.com", model.RoleViewer)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "User already has access to this workspace")
		assert.Equal(t, http.StatusBadRequest, apperror.Status(err))
	})

	t.Run("success", func(t *testing.T) {
		service, wsRepo, _, permRepo, cacheRepo, _ := newWorkspaceService()

		cacheRepo.On("GetWorkspace", ctx, wsID.Hex()).Return(nil, nil)
		wsRepo.On("FindByID", ctx, wsID).Return(workspace(), nil)
		cacheRepo.On("SetWorkspace", ctx, mock.Anything).Return(nil)
		wsRepo.On("AddGrant", ctx, wsID, "friend@example.com", model.RoleEditor).Return(true, nil)
		permRepo.On("Upsert", ctx, "friend@example.com", wsID, model.RoleEditor).Return(nil)
		cacheRepo.On("DeleteWorkspace", ctx, wsID.Hex()).Return(nil)

		err := service.Share(ctx, ownerClaims(), wsID.Hex(), "friend@example.com", model.RoleEditor)
		assert.NoError(t, err)
		wsRepo.AssertExpectations(t)
		permRepo.AssertExpectations(t)
	})
}

func TestWorkspaceService_RevokeShare(t *testing.T) {
	ctx := context.Background()
	wsID := primitive.NewObjectID()

	t.Run("missing grant", func(t *testing.T) {
		service, wsRepo, _, _, cacheRepo, _ := newWorkspaceService()

		cacheRepo.On("GetWorkspace", ctx, wsID.Hex()).Return(nil, nil)
		wsRepo.On("FindByID", ctx, wsID).Return(&model.Workspace{
			ID: wsID, UserID: "owner-1", UserEmail: "owner@example.com",
		}, nil)
		cacheRepo.On("SetWorkspace", ctx, mock.Anything).Return(nil)
		wsRepo.On("RemoveGrant", ctx, wsID, "friend@example.com").Return(false, nil)

		err := service.RevokeShare(ctx, ownerClaims(), wsID.Hex(), "friend@example.com")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Grant not found")
		assert.Equal(t, http.StatusNotFound, apperror.Status(err))
	})

	t.Run("success", func(t *testing.T) {
		service, wsRepo, _, permRepo, cacheRepo, _ := newWorkspaceService()

		cacheRepo.On("GetWorkspace", ctx, wsID.Hex()).Return(nil, nil)
		wsRepo.On("FindByID", ctx, wsID).Return(&model.Workspace{
			ID: wsID, UserID: "owner-1", UserEmail: "owner@example.com",
		}, nil)
		cacheRepo.On("SetWorkspace", ctx, mock.Anything).Return(nil)
		wsRepo.On("RemoveGrant", ctx, wsID, "friend@example.com").Return(true, nil)
		permRepo.On("Remove", ctx, "friend@example.com", wsID).Return(nil)
		cacheRepo.On("DeleteWorkspace", ctx, wsID.Hex()).Return(nil)

		err := service.RevokeShare(ctx, ownerClaims(), wsID.Hex(), "friend@example.com")
		assert.NoError(t, err)
	})
}

func TestWorkspaceService_DeleteLifecycle(t *testing.T) {
	ctx := context.Background()
	wsID := primitive.NewObjectID()

	t.Run("soft delete twice rejected", func(t *testing.T) {
		service, wsRepo, _, _, cacheRepo, _ := newWorkspaceService()

		cacheRepo.On("GetWorkspace", ctx, wsID.Hex()).Return(nil, nil)
		wsRepo.On("FindByID", ctx, wsID).Return(&model.Workspace{
			ID: wsID, UserID: "owner-1", UserEmail: "owner@example.com", Deleted: true,
		}, nil)
		cacheRepo.On("SetWorkspace", ctx, mock.Anything).Return(nil)

		err := service.SoftDelete(ctx, ownerClaims(), wsID.Hex())
		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, apperror.Status(err))
	})

	t.Run("restore rejected when not deleted", func(t *testing.T) {
		service, wsRepo, _, _, cacheRepo, _ := newWorkspaceService()

		cacheRepo.On("GetWorkspace", ctx, wsID.Hex()).Return(nil, nil)
		wsRepo.On("FindByID", ctx, wsID).Return(&model.Workspace{
			ID: wsID, UserID: "owner-1", UserEmail: "owner@example.com",
		}, nil)
		cacheRepo.On("SetWorkspace", ctx, mock.Anything).Return(nil)

		err := service.Restore(ctx, ownerClaims(), wsID.Hex())
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Workspace is not deleted")
		assert.Equal(t, http.StatusBadRequest, apperror.Status(err))
	})

	t.Run("permanent delete requires soft delete first", func(t *testing.T) {
		service, wsRepo, _, _, cacheRepo, _ := newWorkspaceService()

		cacheRepo.On("GetWorkspace", ctx, wsID.Hex()).Return(nil, nil)
		wsRepo.On("FindByID", ctx, wsID).Return(&model.Workspace{
			ID: wsID, UserID: "owner-1", UserEmail: "owner@example.com",
		}, nil)
		cacheRepo.On("SetWorkspace", ctx, mock.Anything).Return(nil)

		err := service.PermanentDelete(ctx, ownerClaims(), wsID.Hex())
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Workspace must be soft-deleted first")
		assert.Equal(t, http.StatusBadRequest, apperror.Status(err))
	})

	t.Run("permanent delete cascades documents and files", func(t *testing.T) {
		service, wsRepo, docRepo, _, cacheRepo, storage := newWorkspaceService()

		cacheRepo.On("GetWorkspace", ctx, wsID.Hex()).Return(nil, nil)
		wsRepo.On("FindByID", ctx, wsID).Return(&model.Workspace{
			ID: wsID, UserID: "owner-1", UserEmail: "owner@example.com", Deleted: true,
		}, nil)
		cacheRepo.On("SetWorkspace", ctx, mock.Anything).Return(nil)
		docRepo.On("ListByWorkspace", ctx, wsID).Return([]model.Document{
			{FilePath: "users/owner-1/documents/a.txt"},
			{FilePath: "users/owner-1/documents/b.txt"},
		}, nil)
		storage.On("Delete", ctx, "users/owner-1/documents/a.txt").Return(nil)
		storage.On("Delete", ctx, "users/owner-1/documents/b.txt").Return(nil)
		docRepo.On("DeleteByWorkspace", ctx, wsID).Return(nil)
		wsRepo.On("DeleteByID", ctx, wsID).Return(nil)
		cacheRepo.On("DeleteWorkspace", ctx, wsID.Hex()).Return(nil)

		err := service.PermanentDelete(ctx, ownerClaims(), wsID.Hex())
		assert.NoError(t, err)
		storage.AssertExpectations(t)
		docRepo.AssertExpectations(t)
		wsRepo.AssertExpectations(t)
	})

	t.Run("partial cascade reported after row deletion", func(t *testing.T) {
		service, wsRepo, docRepo, _, cacheRepo, storage := newWorkspaceService()

		cacheRepo.On("GetWorkspace", ctx, wsID.Hex()).Return(nil, nil)
		wsRepo.On("FindByID", ctx, wsID).Return(&model.Workspace{
			ID: wsID, UserID: "owner-1", UserEmail: "owner@example.com", Deleted: true,
		}, nil)
		cacheRepo.On("SetWorkspace", ctx, mock.Anything).Return(nil)
		docRepo.On("ListByWorkspace", ctx, wsID).Return([]model.Document{
			{FilePath: "users/owner-1/documents/a.txt"},
		}, nil)
		storage.On("Delete", ctx, "users/owner-1/documents/a.txt").Return(errors.New("s3 unavailable"))
		docRepo.On("DeleteByWorkspace", ctx, wsID).Return(nil)
		wsRepo.On("DeleteByID", ctx, wsID).Return(nil)
		cacheRepo.On("DeleteWorkspace", ctx, wsID.Hex()).Return(nil)

		err := service.PermanentDelete(ctx, ownerClaims(), wsID.Hex())
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "users/owner-1/documents/a.txt")
		assert.Equal(t, http.StatusInternalServerError, apperror.Status(err))

		// строки удалены несмотря на сбой хранилища
		docRepo.AssertCalled(t, "DeleteByWorkspace", ctx, wsID)
		wsRepo.AssertCalled(t, "DeleteByID", ctx, wsID)
	})
}
