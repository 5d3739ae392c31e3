package service

import (
	"context"
	"errors"

	"dms-web-server/internal/apperror"
	"dms-web-server/internal/model"
	"dms-web-server/internal/ports"
	"dms-web-server/internal/security"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type FavoriteService struct {
	favoriteRepository  ports.FavoriteRepository
	workspaceRepository ports.WorkspaceRepository
}

func NewFavoriteService(favoriteRepository ports.FavoriteRepository, workspaceRepository ports.WorkspaceRepository) *FavoriteService {
	return &FavoriteService{
		favoriteRepository:  favoriteRepository,
		workspaceRepository: workspaceRepository,
	}
}

// Add : добавляет workspace в избранное, повторное добавление отклоняется
func (s *FavoriteService) Add(ctx context.Context, claims *security.Claims, workspaceID string) error {
	id, err := primitive.ObjectIDFromHex(workspaceID)
	if err != nil {
		return apperror.Validation("Invalid workspace id")
	}

	if _, err := s.workspaceRepository.FindByID(ctx, id); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return apperror.NotFound("Workspace")
		}
		return apperror.DatabaseConnection(err)
	}

	added, err := s.favoriteRepository.Add(ctx, &model.Favorite{
		UserID:      claims.NationalID,
		WorkspaceID: id,
	})
	if err != nil {
		return apperror.DatabaseConnection(err)
	}
	if !added {
		return apperror.Duplicate("Workspace already favorited")
	}
	return nil
}

// Remove : убирает workspace из избранного
func (s *FavoriteService) Remove(ctx context.Context, claims *security.Claims, workspaceID string) error {
	id, err := primitive.ObjectIDFromHex(workspaceID)
	if err != nil {
		return apperror.Validation("Invalid workspace id")
	}

	removed, err := s.favoriteRepository.Remove(ctx, claims.NationalID, id)
	if err != nil {
		return apperror.DatabaseConnection(err)
	}
	if !removed {
		return apperror.NotFound("Favorite")
	}
	return nil
}

// ListMine : workspace из избранного вызывающего
func (s *FavoriteService) ListMine(ctx context.Context, claims *security.Claims) ([]model.Workspace, error) {
	favorites, err := s.favoriteRepository.ListByUser(ctx, claims.NationalID)
	if err != nil {
		return nil, apperror.DatabaseConnection(err)
	}

	ids := make([]primitive.ObjectID, 0, len(favorites))
	for _, favorite := range favorites {
		ids = append(ids, favorite.WorkspaceID)
	}

	workspaces, err := s.workspaceRepository.ListByIDs(ctx, ids)
	if err != nil {
		return nil, apperror.DatabaseConnection(err)
	}
	return workspaces, nil
}

// Check : находится ли workspace в избранном у вызывающего
func (s *FavoriteService) Check(ctx context.Context, claims *security.Claims, workspaceID string) (bool, error) {
	id, err := primitive.ObjectIDFromHex(workspaceID)
	if err != nil {
		return false, apperror.Validation("Invalid workspace id")
	}

	exists, err := s.favoriteRepository.Exists(ctx, claims.NationalID, id)
	if err != nil {
		return false, apperror.DatabaseConnection(err)
	}
	return exists, nil
}
