package service

import (
	"context"
	"errors"
	"log"
	"sort"
	"strings"

	"dms-web-server/internal/apperror"
	"dms-web-server/internal/model"
	"dms-web-server/internal/model/requestresponse"
	"dms-web-server/internal/ports"
	"dms-web-server/internal/security"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const recentWorkspacesLimit = 5

type WorkspaceService struct {
	workspaceRepository  ports.WorkspaceRepository
	documentRepository   ports.DocumentRepository
	permissionRepository ports.PermissionRepository
	cacheRepository      ports.CacheRepository
	storage              ports.FileStorage
}

func NewWorkspaceService(
	workspaceRepository ports.WorkspaceRepository,
	documentRepository ports.DocumentRepository,
	permissionRepository ports.PermissionRepository,
	cacheRepository ports.CacheRepository,
	storage ports.FileStorage,
) *WorkspaceService {
	return &WorkspaceService{
		workspaceRepository:  workspaceRepository,
		documentRepository:   documentRepository,
		permissionRepository: permissionRepository,
		cacheRepository:      cacheRepository,
		storage:              storage,
	}
}

// Create : создаёт workspace с вызывающим в роли владельца
func (s *WorkspaceService) Create(ctx context.Context, claims *security.Claims, req *requestresponse.CreateWorkspaceRequest) (*model.Workspace, error) {
	if req.WorkspaceName == "" {
		return nil, apperror.Validation("workspaceName is required")
	}

	workspace := &model.Workspace{
		WorkspaceName: req.WorkspaceName,
		Description:   req.Description,
		UserID:        claims.NationalID,
		UserEmail:     claims.Email,
		IsPublic:      req.IsPublic,
	}

	created, err := s.workspaceRepository.Create(ctx, workspace)
	if err != nil {
		return nil, apperror.DatabaseConnection(err)
	}

	log.Printf("[WorkspaceService] workspace %s успешно создан", created.WorkspaceName)
	return created, nil
}

// ListMine : не удалённые workspace вызывающего вместе с их документами
func (s *WorkspaceService) ListMine(ctx context.Context, claims *security.Claims) ([]model.WorkspaceView, error) {
	workspaces, err := s.workspaceRepository.ListByOwner(ctx, claims.NationalID, false)
	if err != nil {
		return nil, apperror.DatabaseConnection(err)
	}

	views := make([]model.WorkspaceView, 0, len(workspaces))
	for i := range workspaces {
		workspace := workspaces[i]
		documents, err := s.documentRepository.ListByIDs(ctx, workspace.Documents, false)
		if err != nil {
			return nil, apperror.DatabaseConnection(err)
		}
		views = append(views, model.WorkspaceView{
			Workspace: &workspace,
			Documents: documents,
			Role:      model.RoleOwner,
		})
	}
	return views, nil
}

// ListPublic : публичные workspace по убыванию числа добавлений в избранное
func (s *WorkspaceService) ListPublic(ctx context.Context) ([]model.RankedWorkspace, error) {
	ranked, err := s.workspaceRepository.ListPublicRanked(ctx)
	if err != nil {
		return nil, apperror.DatabaseConnection(err)
	}
	return ranked, nil
}

// GetByID : workspace с документами и ролью вызывающего
// Поддерживает фильтр по подстроке имени документа и сортировку по полю
func (s *WorkspaceService) GetByID(ctx context.Context, claims *security.Claims, workspaceID, nameFilter, sortBy, order string) (*model.WorkspaceView, error) {
	workspace, err := s.getWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	if workspace.Deleted {
		return nil, apperror.NotFound("Workspace")
	}

	role := workspace.ResolveRole(claims.NationalID, claims.Email)
	if role == model.RoleNone && !workspace.IsPublic {
		return nil, apperror.Forbidden("Not authorized to view this workspace")
	}

	documents, err := s.documentRepository.ListByIDs(ctx, workspace.Documents, false)
	if err != nil {
		return nil, apperror.DatabaseConnection(err)
	}

	if nameFilter != "" {
		filtered := documents[:0]
		for _, doc := range documents {
			if strings.Contains(strings.ToLower(doc.DocumentName), strings.ToLower(nameFilter)) {
				filtered = append(filtered, doc)
			}
		}
		documents = filtered
	}

	sortDocuments(documents, sortBy, order)

	return &model.WorkspaceView{
		Workspace: workspace,
		Documents: documents,
		Role:      role,
	}, nil
}

// Update : менять имя, описание и публичность может только владелец
func (s *WorkspaceService) Update(ctx context.Context, claims *security.Claims, workspaceID string, req *requestresponse.UpdateWorkspaceRequest) (*model.Workspace, error) {
	workspace, err := s.getWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, err
	}

	if workspace.ResolveRole(claims.NationalID, claims.Email) != model.RoleOwner {
		return nil, apperror.Forbidden("Not authorized to update this workspace")
	}

	if err := s.workspaceRepository.UpdateMeta(ctx, workspace.ID, req.WorkspaceName, req.Description, req.IsPublic); err != nil {
		return nil, apperror.DatabaseConnection(err)
	}

	s.invalidateCache(ctx, workspace.ID)

	updated, err := s.workspaceRepository.FindByID(ctx, workspace.ID)
	if err != nil {
		return nil, apperror.DatabaseConnection(err)
	}
	return updated, nil
}

// SoftDelete : помечает workspace удалённым
func (s *WorkspaceService) SoftDelete(ctx context.Context, claims *security.Claims, workspaceID string) error {
	workspace, err := s.getWorkspace(ctx, workspaceID)
	if err != nil {
		return err
	}

	if workspace.ResolveRole(claims.NationalID, claims.Email) != model.RoleOwner {
		return apperror.Forbidden("Not authorized to delete this workspace")
	}
	if workspace.Deleted {
		return apperror.Duplicate("Workspace already deleted")
	}

	if err := s.workspaceRepository.SetDeleted(ctx, workspace.ID, true); err != nil {
		return apperror.DatabaseConnection(err)
	}

	s.invalidateCache(ctx, workspace.ID)
	return nil
}

// Restore : снимает флаг удаления, отклоняется для не удалённого workspace
func (s *WorkspaceService) Restore(ctx context.Context, claims *security.Claims, workspaceID string) error {
	workspace, err := s.getWorkspace(ctx, workspaceID)
	if err != nil {
		return err
	}

	if workspace.ResolveRole(claims.NationalID, claims.Email) != model.RoleOwner {
		return apperror.Forbidden("Not authorized to restore this workspace")
	}
	if !workspace.Deleted {
		return apperror.Duplicate("Workspace is not deleted")
	}

	if err := s.workspaceRepository.SetDeleted(ctx, workspace.ID, false); err != nil {
		return apperror.DatabaseConnection(err)
	}

	s.invalidateCache(ctx, workspace.ID)
	return nil
}

// ListDeleted : корзина workspace вызывающего
func (s *WorkspaceService) ListDeleted(ctx context.Context, claims *security.Claims) ([]model.Workspace, error) {
	workspaces, err := s.workspaceRepository.ListByOwner(ctx, claims.NationalID, true)
	if err != nil {
		return nil, apperror.DatabaseConnection(err)
	}
	return workspaces, nil
}

// PermanentDelete : физическое удаление workspace вместе с документами
// Сначала файлы (ошибки собираются, каскад не прерывается), затем строки
// документов, затем сам workspace. Ошибки файлового хранилища выходят
// отдельной ошибкой частичного каскада уже после удаления строк
func (s *WorkspaceService) PermanentDelete(ctx context.Context, claims *security.Claims, workspaceID string) error {
	workspace, err := s.getWorkspace(ctx, workspaceID)
	if err != nil {
		return err
	}

	if workspace.ResolveRole(claims.NationalID, claims.Email) != model.RoleOwner {
		return apperror.Forbidden("Not authorized to delete this workspace")
	}
	if !workspace.Deleted {
		return apperror.Duplicate("Workspace must be soft-deleted first")
	}

	documents, err := s.documentRepository.ListByWorkspace(ctx, workspace.ID)
	if err != nil {
		return apperror.DatabaseConnection(err)
	}

	var failedKeys []string
	for _, doc := range documents {
		if doc.FilePath == "" {
			continue
		}
		if err := s.storage.Delete(ctx, doc.FilePath); err != nil {
			log.Printf("[WorkspaceService] не удалось удалить файл %s: %v", doc.FilePath, err)
			failedKeys = append(failedKeys, doc.FilePath)
		}
	}

	if err := s.documentRepository.DeleteByWorkspace(ctx, workspace.ID); err != nil {
		return apperror.DatabaseConnection(err)
	}
	if err := s.workspaceRepository.DeleteByID(ctx, workspace.ID); err != nil {
		return apperror.DatabaseConnection(err)
	}

	s.invalidateCache(ctx, workspace.ID)
	log.Printf("[WorkspaceService] workspace %s окончательно удалён", workspace.WorkspaceName)

	if len(failedKeys) > 0 {
		return apperror.PartialCascade(failedKeys)
	}
	return nil
}

// Share : выдаёт grant на workspace
// Повторный grant тому же email отклоняется, не повышается
func (s *WorkspaceService) Share(ctx context.Context, claims *security.Claims, workspaceID, userEmail, permission string) error {
	if userEmail == "" {
		return apperror.Validation("userEmail is required")
	}
	if permission != model.RoleEditor && permission != model.RoleViewer {
		return apperror.Validation("Permission must be either editor or viewer")
	}

	workspace, err := s.getWorkspace(ctx, workspaceID)
	if err != nil {
		return err
	}
	if workspace.Deleted {
		return apperror.NotFound("Workspace")
	}

	role := workspace.ResolveRole(claims.NationalID, claims.Email)
	if role != model.RoleOwner && role != model.RoleEditor {
		return apperror.Forbidden("Not authorized to share this workspace")
	}

	// владелец никогда не попадает в grant-список
	if userEmail == workspace.UserEmail {
		return apperror.Validation("Cannot grant access to the workspace owner")
	}

	added, err := s.workspaceRepository.AddGrant(ctx, workspace.ID, userEmail, permission)
	if err != nil {
		return apperror.DatabaseConnection(err)
	}
	if !added {
		return apperror.Duplicate("User already has access to this workspace")
	}

	if err := s.permissionRepository.Upsert(ctx, userEmail, workspace.ID, permission); err != nil {
		return apperror.DatabaseConnection(err)
	}

	s.invalidateCache(ctx, workspace.ID)
	return nil
}

// RevokeShare : отзывает grant по email
func (s *WorkspaceService) RevokeShare(ctx context.Context, claims *security.Claims, workspaceID, userEmail string) error {
	if userEmail == "" {
		return apperror.Validation("userEmail is required")
	}

	workspace, err := s.getWorkspace(ctx, workspaceID)
	if err != nil {
		return err
	}

	role := workspace.ResolveRole(claims.NationalID, claims.Email)
	if role != model.RoleOwner && role != model.RoleEditor {
		return apperror.Forbidden("Not authorized to share this workspace")
	}

	removed, err := s.workspaceRepository.RemoveGrant(ctx, workspace.ID, userEmail)
	if err != nil {
		return apperror.DatabaseConnection(err)
	}
	if !removed {
		return apperror.NotFound("Grant")
	}

	if err := s.permissionRepository.Remove(ctx, userEmail, workspace.ID); err != nil {
		return apperror.DatabaseConnection(err)
	}

	s.invalidateCache(ctx, workspace.ID)
	return nil
}

// Recent : недавние workspace вызывающего
func (s *WorkspaceService) Recent(ctx context.Context, claims *security.Claims) ([]model.Workspace, error) {
	workspaces, err := s.workspaceRepository.ListRecent(ctx, claims.NationalID, recentWorkspacesLimit)
	if err != nil {
		return nil, apperror.DatabaseConnection(err)
	}
	return workspaces, nil
}

// SharedWithMe : workspace, на которые вызывающему выдали grant
func (s *WorkspaceService) SharedWithMe(ctx context.Context, claims *security.Claims) ([]model.Workspace, error) {
	permissions, err := s.permissionRepository.ListByEmail(ctx, claims.Email)
	if err != nil {
		return nil, apperror.DatabaseConnection(err)
	}

	ids := make([]primitive.ObjectID, 0, len(permissions))
	for _, p := range permissions {
		ids = append(ids, p.WorkspaceID)
	}

	workspaces, err := s.workspaceRepository.ListByIDs(ctx, ids)
	if err != nil {
		return nil, apperror.DatabaseConnection(err)
	}
	return workspaces, nil
}

// getWorkspace : чтение workspace, сначала из кэша, затем из Mongo
func (s *WorkspaceService) getWorkspace(ctx context.Context, workspaceID string) (*model.Workspace, error) {
	id, err := primitive.ObjectIDFromHex(workspaceID)
	if err != nil {
		return nil, apperror.Validation("Invalid workspace id")
	}

	cached, err := s.cacheRepository.GetWorkspace(ctx, workspaceID)
	if err != nil {
		log.Printf("[WorkspaceService] ошибка кэширования: %v", err)
	}
	if cached != nil {
		return cached, nil
	}

	workspace, err := s.workspaceRepository.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperror.NotFound("Workspace")
		}
		return nil, apperror.DatabaseConnection(err)
	}

	if err := s.cacheRepository.SetWorkspace(ctx, workspace); err != nil {
		log.Printf("[WorkspaceService] ошибка кэширования workspace: %v", err)
	}

	return workspace, nil
}

func (s *WorkspaceService) invalidateCache(ctx context.Context, id primitive.ObjectID) {
	if err := s.cacheRepository.DeleteWorkspace(ctx, id.Hex()); err != nil {
		log.Printf("[WorkspaceService] ошибка удаления workspace из кэша: %v", err)
	}
}

// sortDocuments : сортировка по одному полю, "desc" переворачивает порядок
func sortDocuments(documents []model.Document, sortBy, order string) {
	if sortBy == "" {
		sortBy = "documentName"
	}
	desc := order == "desc"

	sort.SliceStable(documents, func(i, j int) bool {
		// для убывания индексы переставлены, а не отрицается less:
		// отрицание даёт true для равных ключей и ломает стабильность
		if desc {
			i, j = j, i
		}
		switch sortBy {
		case "createdAt":
			return documents[i].CreatedAt.Before(documents[j].CreatedAt)
		case "updatedAt":
			return documents[i].UpdatedAt.Before(documents[j].UpdatedAt)
		case "fileSize":
			return documents[i].FileSize < documents[j].FileSize
		case "version":
			return documents[i].Version < documents[j].Version
		default:
			return strings.ToLower(documents[i].DocumentName) < strings.ToLower(documents[j].DocumentName)
		}
	})
}
