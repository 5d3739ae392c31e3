package handler

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"dms-web-server/internal/model/requestresponse"
	"dms-web-server/internal/ports"
	"dms-web-server/internal/security"
	"dms-web-server/internal/util"

	"github.com/go-chi/chi/v5"
)

const maxUploadMemory = 32 << 20

type DocumentHandler struct {
	ports.DocumentService
}

func NewDocumentHandler(documentService ports.DocumentService) *DocumentHandler {
	return &DocumentHandler{documentService}
}

// UploadDocument godoc
// @Summary Загрузка документа в workspace
// @Description Принимает multipart/form-data: файл, ID workspace, имя
// документа и теги через запятую
// @Tags Documents
// @Accept multipart/form-data
// @Produce json
// @Param workspaceId formData string false "ID workspace (если не задан в пути)"
// @Param documentName formData string true "Имя документа"
// @Param tags formData string false "Теги через запятую"
// @Param file formData file true "Файл документа"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 201 {object} model.Document
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse "Workspace не найден"
// @Router /api/v1/documents/upload [post]
// @Router /api/v1/workspaces/{workspace_id}/documents [post]
// @Security BearerAuth
func (h *DocumentHandler) UploadDocument(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	claims, ok := ctx.Value(security.UserContextKey).(*security.Claims)
	if ok == false || claims == nil {
		util.HandleError(w, "Authentication invalid", http.StatusUnauthorized)
		return
	}

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		util.HandleError(w, "Invalid multipart request", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		util.HandleError(w, "File is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	documentName := r.FormValue("documentName")
	if documentName == "" {
		documentName = header.Filename
	}

	var tags []string
	if raw := r.FormValue("tags"); raw != "" {
		for _, tag := range strings.Split(raw, ",") {
			if trimmed := strings.TrimSpace(tag); trimmed != "" {
				tags = append(tags, trimmed)
			}
		}
	}

	upload := &ports.FileUpload{
		DocumentName:     documentName,
		OriginalFileName: header.Filename,
		MimeType:         util.DetectMimeType(header.Header.Get("Content-Type"), header.Filename),
		Size:             header.Size,
		Tags:             tags,
		Body:             file,
	}

	// workspace задаётся либо в пути, либо полем формы
	workspaceID := chi.URLParam(r, "workspace_id")
	if workspaceID == "" {
		workspaceID = r.FormValue("workspaceId")
	}

	document, err := h.DocumentService.UploadToWorkspace(ctx, claims, workspaceID, upload)
	if err != nil {
		util.HandleAppError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusCreated, document)
}

// ListDocuments godoc
// @Summary Документы вызывающего
// @Tags Documents
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {array} model.Document
// @Failure 401 {object} requestresponse.ErrorResponse
// @Router /api/v1/documents [get]
// @Security BearerAuth
func (h *DocumentHandler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	claims, ok := r.Context().Value(security.UserContextKey).(*security.Claims)
	if ok == false || claims == nil {
		util.HandleError(w, "Authentication invalid", http.StatusUnauthorized)
		return
	}

	documents, err := h.DocumentService.ListMine(r.Context(), claims)
	if err != nil {
		util.HandleAppError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusOK, documents)
}

// FilterDocuments godoc
// @Summary Фильтрация документов вызывающего
// @Tags Documents
// @Produce json
// @Param name query string false "Фильтр по подстроке имени"
// @Param sortBy query string false "Поле сортировки" Enums(documentName, createdAt, updatedAt, fileSize, version)
// @Param order query string false "Порядок сортировки" Enums(asc, desc)
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {array} model.Document
// @Failure 401 {object} requestresponse.ErrorResponse
// @Router /api/v1/documents/filter [get]
// @Security BearerAuth
func (h *DocumentHandler) FilterDocuments(w http.ResponseWriter, r *http.Request) {
	claims, ok := r.Context().Value(security.UserContextKey).(*security.Claims)
	if ok == false || claims == nil {
		util.HandleError(w, "Authentication invalid", http.StatusUnauthorized)
		return
	}

	documents, err := h.DocumentService.Filter(
		r.Context(),
		claims,
		r.URL.Query().Get("name"),
		r.URL.Query().Get("sortBy"),
		r.URL.Query().Get("order"),
	)
	if err != nil {
		util.HandleAppError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusOK, documents)
}

// RecycleBin godoc
// @Summary Корзина документов вызывающего
// @Tags Documents
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {array} model.Document
// @Failure 401 {object} requestresponse.ErrorResponse
// @Router /api/v1/documents/recycle-bin [get]
// @Security BearerAuth
func (h *DocumentHandler) RecycleBin(w http.ResponseWriter, r *http.Request) {
	claims, ok := r.Context().Value(security.UserContextKey).(*security.Claims)
	if ok == false || claims == nil {
		util.HandleError(w, "Authentication invalid", http.StatusUnauthorized)
		return
	}

	documents, err := h.DocumentService.RecycleBin(r.Context(), claims)
	if err != nil {
		util.HandleAppError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusOK, documents)
}

// GetDocument godoc
// @Summary Документ по ID
// @Description Метаданные доступны только владельцу документа
// @Tags Documents
// @Produce json
// @Param document_id path string true "ID документа"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} model.Document
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Router /api/v1/documents/{document_id} [get]
// @Security BearerAuth
func (h *DocumentHandler) GetDocument(w http.ResponseWriter, r *http.Request) {
	claims, ok := r.Context().Value(security.UserContextKey).(*security.Claims)
	if ok == false || claims == nil {
		util.HandleError(w, "Authentication invalid", http.StatusUnauthorized)
		return
	}

	document, err := h.DocumentService.GetByID(r.Context(), claims, chi.URLParam(r, "document_id"))
	if err != nil {
		util.HandleAppError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusOK, document)
}

// SoftDeleteDocument godoc
// @Summary Мягкое удаление документа
// @Tags Documents
// @Produce json
// @Param document_id path string true "ID документа"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.MessageResponse
// @Failure 400 {object} requestresponse.ErrorResponse "Документ уже удалён"
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Router /api/v1/documents/{document_id} [delete]
// @Security BearerAuth
func (h *DocumentHandler) SoftDeleteDocument(w http.ResponseWriter, r *http.Request) {
	claims, ok := r.Context().Value(security.UserContextKey).(*security.Claims)
	if ok == false || claims == nil {
		util.HandleError(w, "Authentication invalid", http.StatusUnauthorized)
		return
	}

	if err := h.DocumentService.SoftDelete(r.Context(), claims, chi.URLParam(r, "document_id")); err != nil {
		util.HandleAppError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusOK, requestresponse.MessageResponse{Message: "Document moved to recycle bin"})
}

// RestoreDocument godoc
// @Summary Восстановление документа из корзины
// @Tags Documents
// @Produce json
// @Param document_id path string true "ID документа"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.MessageResponse
// @Failure 400 {object} requestresponse.ErrorResponse "Документ не удалён"
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Router /api/v1/documents/{document_id}/restore [post]
// @Security BearerAuth
func (h *DocumentHandler) RestoreDocument(w http.ResponseWriter, r *http.Request) {
	claims, ok := r.Context().Value(security.UserContextKey).(*security.Claims)
	if ok == false || claims == nil {
		util.HandleError(w, "Authentication invalid", http.StatusUnauthorized)
		return
	}

	if err := h.DocumentService.Restore(r.Context(), claims, chi.URLParam(r, "document_id")); err != nil {
		util.HandleAppError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusOK, requestresponse.MessageResponse{Message: "Document restored successfully"})
}

// PermanentDeleteDocument godoc
// @Summary Окончательное удаление документа
// @Description Удаляет файл из хранилища и сам документ. Требует
// предварительного мягкого удаления.
// @Tags Documents
// @Produce json
// @Param document_id path string true "ID документа"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.MessageResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Router /api/v1/documents/{document_id}/permanent [delete]
// @Security BearerAuth
func (h *DocumentHandler) PermanentDeleteDocument(w http.ResponseWriter, r *http.Request) {
	claims, ok := r.Context().Value(security.UserContextKey).(*security.Claims)
	if ok == false || claims == nil {
		util.HandleError(w, "Authentication invalid", http.StatusUnauthorized)
		return
	}

	if err := h.DocumentService.PermanentDelete(r.Context(), claims, chi.URLParam(r, "document_id")); err != nil {
		util.HandleAppError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusOK, requestresponse.MessageResponse{Message: "Document deleted permanently"})
}

// DownloadDocument godoc
// @Summary Скачивание файла документа
// @Description Отдаёт файл как attachment с сохранённым MIME-типом
// @Tags Documents
// @Produce octet-stream
// @Param document_id path string true "ID документа"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {file} binary
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse "Документ или файл не найден"
// @Router /api/v1/documents/{document_id}/download [get]
// @Security BearerAuth
func (h *DocumentHandler) DownloadDocument(w http.ResponseWriter, r *http.Request) {
	claims, ok := r.Context().Value(security.UserContextKey).(*security.Claims)
	if ok == false || claims == nil {
		util.HandleError(w, "Authentication invalid", http.StatusUnauthorized)
		return
	}

	document, body, err := h.DocumentService.Download(r.Context(), claims, chi.URLParam(r, "document_id"))
	if err != nil {
		util.HandleAppError(w, err)
		return
	}
	defer body.Close()

	w.Header().Set("Content-Type", document.FileType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", document.OriginalFileName))
	if document.FileSize > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(document.FileSize, 10))
	}

	if _, err := io.Copy(w, body); err != nil {
		log.Printf("[DocumentHandler] ошибка отдачи файла %s: %v", document.FilePath, err)
	}
}

// PreviewDocument godoc
// @Summary Предпросмотр документа
// @Description Аудио и видео отдаются потоком с сохранённым MIME-типом,
// остальные файлы возвращаются в base64
// @Tags Documents
// @Produce json
// @Param document_id path string true "ID документа"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.PreviewResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Router /api/v1/documents/{document_id}/preview [get]
// @Security BearerAuth
func (h *DocumentHandler) PreviewDocument(w http.ResponseWriter, r *http.Request) {
	claims, ok := r.Context().Value(security.UserContextKey).(*security.Claims)
	if ok == false || claims == nil {
		util.HandleError(w, "Authentication invalid", http.StatusUnauthorized)
		return
	}

	document, content, err := h.DocumentService.Preview(r.Context(), claims, chi.URLParam(r, "document_id"))
	if err != nil {
		util.HandleAppError(w, err)
		return
	}

	if util.IsStreamableMime(document.FileType) {
		w.Header().Set("Content-Type", document.FileType)
		w.Header().Set("Content-Length", strconv.Itoa(len(content)))
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(content); err != nil {
			log.Printf("[DocumentHandler] ошибка отдачи файла %s: %v", document.FilePath, err)
		}
		return
	}

	util.WriteJSON(w, http.StatusOK, requestresponse.PreviewResponse{
		Content:  base64.StdEncoding.EncodeToString(content),
		MimeType: document.FileType,
	})
}

// RemoveDocumentFromWorkspace godoc
// @Summary Удаление документа из workspace
// @Description Убирает документ из workspace и удаляет его вместе с файлом.
// Доступно владельцу workspace и пользователям с ролью editor.
// @Tags Documents
// @Produce json
// @Param workspace_id path string true "ID workspace"
// @Param document_id path string true "ID документа"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.MessageResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Router /api/v1/workspaces/{workspace_id}/documents/{document_id} [delete]
// @Security BearerAuth
func (h *DocumentHandler) RemoveDocumentFromWorkspace(w http.ResponseWriter, r *http.Request) {
	claims, ok := r.Context().Value(security.UserContextKey).(*security.Claims)
	if ok == false || claims == nil {
		util.HandleError(w, "Authentication invalid", http.StatusUnauthorized)
		return
	}

	err := h.DocumentService.RemoveFromWorkspace(r.Context(), claims, chi.URLParam(r, "workspace_id"), chi.URLParam(r, "document_id"))
	if err != nil {
		util.HandleAppError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusOK, requestresponse.MessageResponse{Message: "Document removed from workspace"})
}
