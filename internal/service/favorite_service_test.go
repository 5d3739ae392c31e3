package service_test

import (
	"context"
	"net/http"
	"testing"

	"dms-web-server/internal/apperror"
	"dms-web-server/internal/model"
	srv "dms-web-server/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestFavoriteService_Add(t *testing.T) {
	ctx := context.Background()
	wsID := primitive.NewObjectID()

	t.Run("workspace not found", func(t *testing.T) {
		favRepo := new(MockFavoriteRepository)
		wsRepo := new(MockWorkspaceRepository)
		service := srv.NewFavoriteService(favRepo, wsRepo)

		wsRepo.On("FindByID", ctx, wsID).Return(nil, mongo.ErrNoDocuments)

		err := service.Add(ctx, ownerClaims(), wsID.Hex())
		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, apperror.Status(err))
	})

	t.Run("duplicate favorite rejected", func(t *testing.T) {
		favRepo := new(MockFavoriteRepository)
		wsRepo := new(MockWorkspaceRepository)
		service := srv.NewFavoriteService(favRepo, wsRepo)

		wsRepo.On("FindByID", ctx, wsID).Return(&model.Workspace{ID: wsID}, nil)
		favRepo.On("Add", ctx, mock.Anything).Return(false, nil)

		err := service.Add(ctx, ownerClaims(), wsID.Hex())
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Workspace already favorited")
		assert.Equal(t, http.StatusBadRequest, apperror.Status(err))
	})

	t.Run("success", func(t *testing.T) {
		favRepo := new(MockFavoriteRepository)
		wsRepo := new(MockWorkspaceRepository)
		service := srv.NewFavoriteService(favRepo, wsRepo)

		wsRepo.On("FindByID", ctx, wsID).Return(&model.Workspace{ID: wsID}, nil)
		favRepo.On("Add", ctx, mock.MatchedBy(func(f *model.Favorite) bool {
			return f.UserID == "owner-1" && f.WorkspaceID == wsID
		})).Return(true, nil)

		err := service.Add(ctx, ownerClaims(), wsID.Hex())
		assert.NoError(t, err)
		favRepo.AssertExpectations(t)
	})
}

func TestFavoriteService_Remove(t *testing.T) {
	ctx := context.Background()
	wsID := primitive.NewObjectID()

	t.Run("absent favorite reported as not found", func(t *testing.T) {
		favRepo := new(MockFavoriteRepository)
		service := srv.NewFavoriteService(favRepo, new(MockWorkspaceRepository))

		favRepo.On("Remove", ctx, "owner-1", wsID).Return(false, nil)

		err := service.Remove(ctx, ownerClaims(), wsID.Hex())
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Favorite not found")
		assert.Equal(t, http.StatusNotFound, apperror.Status(err))
	})

	t.Run("success", func(t *testing.T) {
		favRepo := new(MockFavoriteRepository)
		service := srv.NewFavoriteService(favRepo, new(MockWorkspaceRepository))

		favRepo.On("Remove", ctx, "owner-1", wsID).Return(true, nil)

		err := service.Remove(ctx, ownerClaims(), wsID.Hex())
		assert.NoError(t, err)
	})
}

func TestFavoriteService_ListMine(t *testing.T) {
	ctx := context.Background()
	first := primitive.NewObjectID()
	second := primitive.NewObjectID()

	favRepo := new(MockFavoriteRepository)
	wsRepo := new(MockWorkspaceRepository)
	service := srv.NewFavoriteService(favRepo, wsRepo)

	favRepo.On("ListByUser", ctx, "owner-1").Return([]model.Favorite{
		{UserID: "owner-1", WorkspaceID: first},
		{UserID: "owner-1", WorkspaceID: second},
	}, nil)
	wsRepo.On("ListByIDs", ctx, []primitive.ObjectID{first, second}).Return([]model.Workspace{
		{ID: first}, {ID: second},
	}, nil)

	workspaces, err := service.ListMine(ctx, ownerClaims())
	assert.NoError(t, err)
	assert.Len(t, workspaces, 2)
}

func TestFavoriteService_Check(t *testing.T) {
	ctx := context.Background()
	wsID := primitive.NewObjectID()

	favRepo := new(MockFavoriteRepository)
	service := srv.NewFavoriteService(favRepo, new(MockWorkspaceRepository))

	favRepo.On("Exists", ctx, "owner-1", wsID).Return(true, nil)

	exists, err := service.Check(ctx, ownerClaims(), wsID.Hex())
	assert.NoError(t, err)
	assert.True(t, exists)
}
