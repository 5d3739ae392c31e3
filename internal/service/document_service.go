package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"dms-web-server/internal/apperror"
	"dms-web-server/internal/model"
	"dms-web-server/internal/ports"
	"dms-web-server/internal/security"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type DocumentService struct {
	documentRepository  ports.DocumentRepository
	workspaceRepository ports.WorkspaceRepository
	cacheRepository     ports.CacheRepository
	storage             ports.FileStorage
}

func NewDocumentService(
	documentRepository ports.DocumentRepository,
	workspaceRepository ports.WorkspaceRepository,
	cacheRepository ports.CacheRepository,
	storage ports.FileStorage,
) *DocumentService {
	return &DocumentService{
		documentRepository:  documentRepository,
		workspaceRepository: workspaceRepository,
		cacheRepository:     cacheRepository,
		storage:             storage,
	}
}

// UploadToWorkspace : загружает файл в хранилище и создаёт документ в workspace
// Загружать могут владелец workspace и пользователи с ролью editor
func (s *DocumentService) UploadToWorkspace(ctx context.Context, claims *security.Claims, workspaceID string, upload *ports.FileUpload) (*model.Document, error) {
	if upload.DocumentName == "" {
		return nil, apperror.Validation("documentName is required")
	}

	wsID, err := primitive.ObjectIDFromHex(workspaceID)
	if err != nil {
		return nil, apperror.Validation("Invalid workspace id")
	}

	workspace, err := s.workspaceRepository.FindByID(ctx, wsID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperror.NotFound("Workspace")
		}
		return nil, apperror.DatabaseConnection(err)
	}
	if workspace.Deleted {
		return nil, apperror.NotFound("Workspace")
	}

	role := workspace.ResolveRole(claims.NationalID, claims.Email)
	if role != model.RoleOwner && role != model.RoleEditor {
		return nil, apperror.Forbidden("Not authorized to upload to this workspace")
	}

	key := fmt.Sprintf("users/%s/documents/%s-%s", claims.NationalID, uuid.New().String(), upload.OriginalFileName)
	if err := s.storage.Upload(ctx, key, upload.Body, upload.Size, upload.MimeType); err != nil {
		return nil, fmt.Errorf("[DocumentService] ошибка загрузки файла: %w", err)
	}

	now := time.Now()
	document := &model.Document{
		DocumentName:     upload.DocumentName,
		Workspace:        workspace.ID,
		UserID:           claims.NationalID,
		UserEmail:        claims.Email,
		FilePath:         key,
		FileType:         upload.MimeType,
		OriginalFileName: upload.OriginalFileName,
		FileSize:         upload.Size,
		Tags:             upload.Tags,
		Version:          1,
		VersionHistory: []model.DocumentVersion{
			{Version: 1, UpdatedAt: now, UpdatedBy: claims.Email},
		},
		Permissions: []model.DocumentPermission{
			{UserEmail: claims.Email, Permission: model.DocPermAdmin},
		},
	}

	created, err := s.documentRepository.Create(ctx, document)
	if err != nil {
		// документ не создан, файл в хранилище не оставляем
		if delErr := s.storage.Delete(ctx, key); delErr != nil {
			log.Printf("[DocumentService] не удалось удалить файл %s после сбоя: %v", key, delErr)
		}
		return nil, apperror.DatabaseConnection(err)
	}

	if err := s.workspaceRepository.AddDocument(ctx, workspace.ID, created.ID); err != nil {
		return nil, apperror.DatabaseConnection(err)
	}
	s.invalidateWorkspaceCache(ctx, workspace.ID)

	log.Printf("[DocumentService] документ %s загружен в workspace %s", created.DocumentName, workspace.WorkspaceName)
	return created, nil
}

// ListMine : не удалённые документы вызывающего
func (s *DocumentService) ListMine(ctx context.Context, claims *security.Claims) ([]model.Document, error) {
	documents, err := s.documentRepository.ListByOwner(ctx, claims.NationalID, false)
	if err != nil {
		return nil, apperror.DatabaseConnection(err)
	}
	return documents, nil
}

// GetByID : метаданные документа, доступны только владельцу
func (s *DocumentService) GetByID(ctx context.Context, claims *security.Claims, documentID string) (*model.Document, error) {
	document, err := s.getDocument(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if document.UserID != claims.NationalID {
		return nil, apperror.Forbidden("Not authorized to view this document")
	}
	return document, nil
}

// Filter : документы вызывающего с фильтром по подстроке имени и сортировкой
func (s *DocumentService) Filter(ctx context.Context, claims *security.Claims, nameFilter, sortBy, order string) ([]model.Document, error) {
	documents, err := s.documentRepository.ListByOwner(ctx, claims.NationalID, false)
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
	return documents, nil
}

// RecycleBin : удалённые документы вызывающего
func (s *DocumentService) RecycleBin(ctx context.Context, claims *security.Claims) ([]model.Document, error) {
	documents, err := s.documentRepository.ListByOwner(ctx, claims.NationalID, true)
	if err != nil {
		return nil, apperror.DatabaseConnection(err)
	}
	return documents, nil
}

// SoftDelete : помечает документ удалённым
func (s *DocumentService) SoftDelete(ctx context.Context, claims *security.Claims, documentID string) error {
	document, err := s.getDocument(ctx, documentID)
	if err != nil {
		return err
	}
	if document.UserID != claims.NationalID {
		return apperror.Forbidden("Not authorized to delete this document")
	}
	if document.Deleted {
		return apperror.Duplicate("Document already deleted")
	}

	if err := s.documentRepository.SetDeleted(ctx, document.ID, true); err != nil {
		return apperror.DatabaseConnection(err)
	}
	return nil
}

// Restore : возвращает документ из корзины
func (s *DocumentService) Restore(ctx context.Context, claims *security.Claims, documentID string) error {
	document, err := s.getDocument(ctx, documentID)
	if err != nil {
		return err
	}
	if document.UserID != claims.NationalID {
		return apperror.Forbidden("Not authorized to restore this document")
	}
	if !document.Deleted {
		return apperror.Duplicate("Document is not deleted")
	}

	if err := s.documentRepository.SetDeleted(ctx, document.ID, false); err != nil {
		return apperror.DatabaseConnection(err)
	}
	return nil
}

// PermanentDelete : удаляет файл из хранилища и строку документа
// Требует предварительного мягкого удаления
func (s *DocumentService) PermanentDelete(ctx context.Context, claims *security.Claims, documentID string) error {
	document, err := s.getDocument(ctx, documentID)
	if err != nil {
		return err
	}
	if document.UserID != claims.NationalID {
		return apperror.Forbidden("Not authorized to delete this document")
	}
	if !document.Deleted {
		return apperror.Duplicate("Document must be soft-deleted first")
	}

	if document.FilePath != "" {
		if err := s.storage.Delete(ctx, document.FilePath); err != nil {
			log.Printf("[DocumentService] не удалось удалить файл %s: %v", document.FilePath, err)
		}
	}

	if err := s.documentRepository.DeleteByID(ctx, document.ID); err != nil {
		return apperror.DatabaseConnection(err)
	}

	if err := s.workspaceRepository.RemoveDocument(ctx, document.Workspace, document.ID); err != nil {
		return apperror.DatabaseConnection(err)
	}
	s.invalidateWorkspaceCache(ctx, document.Workspace)

	return nil
}

// Download : поток содержимого файла вместе с метаданными документа
func (s *DocumentService) Download(ctx context.Context, claims *security.Claims, documentID string) (*model.Document, io.ReadCloser, error) {
	document, err := s.getDocument(ctx, documentID)
	if err != nil {
		return nil, nil, err
	}
	if err := s.checkReadAccess(ctx, claims, document); err != nil {
		return nil, nil, err
	}

	body, err := s.storage.Download(ctx, document.FilePath)
	if err != nil {
		log.Printf("[DocumentService] файл %s недоступен в хранилище: %v", document.FilePath, err)
		return nil, nil, apperror.NotFound("File")
	}
	return document, body, nil
}

// Preview : содержимое файла для предпросмотра, только для владельца
// Тип содержимого берётся из сохранённого fileType документа
func (s *DocumentService) Preview(ctx context.Context, claims *security.Claims, documentID string) (*model.Document, []byte, error) {
	document, err := s.getDocument(ctx, documentID)
	if err != nil {
		return nil, nil, err
	}
	if document.UserID != claims.NationalID {
		return nil, nil, apperror.Forbidden("Not authorized to preview this document")
	}

	body, err := s.storage.Download(ctx, document.FilePath)
	if err != nil {
		log.Printf("[DocumentService] файл %s недоступен в хранилище: %v", document.FilePath, err)
		return nil, nil, apperror.NotFound("File")
	}
	defer body.Close()

	content, err := io.ReadAll(body)
	if err != nil {
		return nil, nil, fmt.Errorf("[DocumentService] ошибка чтения файла: %w", err)
	}
	return document, content, nil
}

// RemoveFromWorkspace : убирает документ из workspace и удаляет его вместе с файлом
func (s *DocumentService) RemoveFromWorkspace(ctx context.Context, claims *security.Claims, workspaceID, documentID string) error {
	wsID, err := primitive.ObjectIDFromHex(workspaceID)
	if err != nil {
		return apperror.Validation("Invalid workspace id")
	}

	workspace, err := s.workspaceRepository.FindByID(ctx, wsID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return apperror.NotFound("Workspace")
		}
		return apperror.DatabaseConnection(err)
	}

	role := workspace.ResolveRole(claims.NationalID, claims.Email)
	if role != model.RoleOwner && role != model.RoleEditor {
		return apperror.Forbidden("Not authorized to modify this workspace")
	}

	document, err := s.getDocument(ctx, documentID)
	if err != nil {
		return err
	}
	if document.Workspace != workspace.ID {
		return apperror.NotFound("Document")
	}

	if err := s.workspaceRepository.RemoveDocument(ctx, workspace.ID, document.ID); err != nil {
		return apperror.DatabaseConnection(err)
	}

	if document.FilePath != "" {
		if err := s.storage.Delete(ctx, document.FilePath); err != nil {
			log.Printf("[DocumentService] не удалось удалить файл %s: %v", document.FilePath, err)
		}
	}
	if err := s.documentRepository.DeleteByID(ctx, document.ID); err != nil {
		return apperror.DatabaseConnection(err)
	}
	s.invalidateWorkspaceCache(ctx, workspace.ID)

	return nil
}

func (s *DocumentService) getDocument(ctx context.Context, documentID string) (*model.Document, error) {
	id, err := primitive.ObjectIDFromHex(documentID)
	if err != nil {
		return nil, apperror.Validation("Invalid document id")
	}

	document, err := s.documentRepository.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperror.NotFound("Document")
		}
		return nil, apperror.DatabaseConnection(err)
	}
	return document, nil
}

// checkReadAccess : читать файл могут владелец документа, владелец workspace,
// пользователи с grant и любой пользователь для публичного workspace
func (s *DocumentService) checkReadAccess(ctx context.Context, claims *security.Claims, document *model.Document) error {
	if document.UserID == claims.NationalID {
		return nil
	}

	workspace, err := s.workspaceRepository.FindByID(ctx, document.Workspace)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return apperror.Forbidden("Not authorized to access this document")
		}
		return apperror.DatabaseConnection(err)
	}

	if workspace.IsPublic || workspace.ResolveRole(claims.NationalID, claims.Email) != model.RoleNone {
		return nil
	}
	return apperror.Forbidden("Not authorized to access this document")
}

func (s *DocumentService) invalidateWorkspaceCache(ctx context.Context, id primitive.ObjectID) {
	if err := s.cacheRepository.DeleteWorkspace(ctx, id.Hex()); err != nil {
		log.Printf("[DocumentService] ошибка удаления workspace из кэша: %v", err)
	}
}
