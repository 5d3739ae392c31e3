package handler

import (
	"encoding/json"
	"net/http"

	"dms-web-server/internal/model/requestresponse"
	"dms-web-server/internal/ports"
	"dms-web-server/internal/security"
	"dms-web-server/internal/util"

	"github.com/go-chi/chi/v5"
)

type WorkspaceHandler struct {
	ports.WorkspaceService
}

func NewWorkspaceHandler(workspaceService ports.WorkspaceService) *WorkspaceHandler {
	return &WorkspaceHandler{workspaceService}
}

// CreateWorkspace godoc
// @Summary Создание workspace
// @Tags Workspaces
// @Accept json
// @Produce json
// @Param body body requestresponse.CreateWorkspaceRequest true "Данные workspace"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 201 {object} model.Workspace
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Router /api/v1/workspaces [post]
// @Security BearerAuth
func (h *WorkspaceHandler) CreateWorkspace(w http.ResponseWriter, r *http.Request) {
	claims, ok := r.Context().Value(security.UserContextKey).(*security.Claims)
	if ok == false || claims == nil {
		util.HandleError(w, "Authentication invalid", http.StatusUnauthorized)
		return
	}

	var req requestresponse.CreateWorkspaceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		util.HandleError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	workspace, err := h.WorkspaceService.Create(r.Context(), claims, &req)
	if err != nil {
		util.HandleAppError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusCreated, workspace)
}

// ListWorkspaces godoc
// @Summary Workspace вызывающего с документами
// @Tags Workspaces
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {array} model.WorkspaceView
// @Failure 401 {object} requestresponse.ErrorResponse
// @Router /api/v1/workspaces [get]
// @Security BearerAuth
func (h *WorkspaceHandler) ListWorkspaces(w http.ResponseWriter, r *http.Request) {
	claims, ok := r.Context().Value(security.UserContextKey).(*security.Claims)
	if ok == false || claims == nil {
		util.HandleError(w, "Authentication invalid", http.StatusUnauthorized)
		return
	}

	views, err := h.WorkspaceService.ListMine(r.Context(), claims)
	if err != nil {
		util.HandleAppError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusOK, views)
}

// ListPublicWorkspaces godoc
// @Summary Публичные workspace
// @Description Отсортированы по числу добавлений в избранное
// @Tags Workspaces
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {array} model.RankedWorkspace
// @Failure 401 {object} requestresponse.ErrorResponse
// @Router /api/v1/workspaces/public [get]
// @Security BearerAuth
func (h *WorkspaceHandler) ListPublicWorkspaces(w http.ResponseWriter, r *http.Request) {
	ranked, err := h.WorkspaceService.ListPublic(r.Context())
	if err != nil {
		util.HandleAppError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusOK, ranked)
}

// ListRecentWorkspaces godoc
// @Summary Недавние workspace вызывающего
// @Tags Workspaces
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {array} model.Workspace
// @Failure 401 {object} requestresponse.ErrorResponse
// @Router /api/v1/workspaces/recent [get]
// @Security BearerAuth
func (h *WorkspaceHandler) ListRecentWorkspaces(w http.ResponseWriter, r *http.Request) {
	claims, ok := r.Context().Value(security.UserContextKey).(*security.Claims)
	if ok == false || claims == nil {
		util.HandleError(w, "Authentication invalid", http.StatusUnauthorized)
		return
	}

	workspaces, err := h.WorkspaceService.Recent(r.Context(), claims)
	if err != nil {
		util.HandleAppError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusOK, workspaces)
}

// ListSharedWorkspaces godoc
// @Summary Workspace, которыми поделились с вызывающим
// @Tags Workspaces
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {array} model.Workspace
// @Failure 401 {object} requestresponse.ErrorResponse
// @Router /api/v1/workspaces/shared [get]
// @Security BearerAuth
func (h *WorkspaceHandler) ListSharedWorkspaces(w http.ResponseWriter, r *http.Request) {
	claims, ok := r.Context().Value(security.UserContextKey).(*security.Claims)
	if ok == false || claims == nil {
		util.HandleError(w, "Authentication invalid", http.StatusUnauthorized)
		return
	}

	workspaces, err := h.WorkspaceService.SharedWithMe(r.Context(), claims)
	if err != nil {
		util.HandleAppError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusOK, workspaces)
}

// ListDeletedWorkspaces godoc
// @Summary Корзина workspace вызывающего
// @Tags Workspaces
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {array} model.Workspace
// @Failure 401 {object} requestresponse.ErrorResponse
// @Router /api/v1/workspaces/deleted [get]
// @Security BearerAuth
func (h *WorkspaceHandler) ListDeletedWorkspaces(w http.ResponseWriter, r *http.Request) {
	claims, ok := r.Context().Value(security.UserContextKey).(*security.Claims)
	if ok == false || claims == nil {
		util.HandleError(w, "Authentication invalid", http.StatusUnauthorized)
		return
	}

	workspaces, err := h.WorkspaceService.ListDeleted(r.Context(), claims)
	if err != nil {
		util.HandleAppError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusOK, workspaces)
}

// GetWorkspace godoc
// @Summary Workspace по ID
// @Description Возвращает workspace, его документы и роль вызывающего.
// Параметры name, sortBy и order фильтруют и сортируют документы.
// @Tags Workspaces
// @Produce json
// @Param workspace_id path string true "ID workspace"
// @Param name query string false "Фильтр документов по подстроке имени"
// @Param sortBy query string false "Поле сортировки документов" Enums(documentName, createdAt, updatedAt, fileSize, version)
// @Param order query string false "Порядок сортировки" Enums(asc, desc)
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} model.WorkspaceView
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Router /api/v1/workspaces/{workspace_id} [get]
// @Security BearerAuth
func (h *WorkspaceHandler) GetWorkspace(w http.ResponseWriter, r *http.Request) {
	claims, ok := r.Context().Value(security.UserContextKey).(*security.Claims)
	if ok == false || claims == nil {
		util.HandleError(w, "Authentication invalid", http.StatusUnauthorized)
		return
	}

	workspaceID := chi.URLParam(r, "workspace_id")
	nameFilter := r.URL.Query().Get("name")
	sortBy := r.URL.Query().Get("sortBy")
	order := r.URL.Query().Get("order")

	view, err := h.WorkspaceService.GetByID(r.Context(), claims, workspaceID, nameFilter, sortBy, order)
	if err != nil {
		util.HandleAppError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusOK, view)
}

// UpdateWorkspace godoc
// @Summary Обновление workspace
// @Description Доступно только владельцу
// @Tags Workspaces
// @Accept json
// @Produce json
// @Param workspace_id path string true "ID workspace"
// @Param body body requestresponse.UpdateWorkspaceRequest true "Новые значения"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} model.Workspace
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Router /api/v1/workspaces/{workspace_id} [put]
// @Security BearerAuth
func (h *WorkspaceHandler) UpdateWorkspace(w http.ResponseWriter, r *http.Request) {
	claims, ok := r.Context().Value(security.UserContextKey).(*security.Claims)
	if ok == false || claims == nil {
		util.HandleError(w, "Authentication invalid", http.StatusUnauthorized)
		return
	}

	var req requestresponse.UpdateWorkspaceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		util.HandleError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	workspace, err := h.WorkspaceService.Update(r.Context(), claims, chi.URLParam(r, "workspace_id"), &req)
	if err != nil {
		util.HandleAppError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusOK, workspace)
}

// SoftDeleteWorkspace godoc
// @Summary Мягкое удаление workspace
// @Tags Workspaces
// @Produce json
// @Param workspace_id path string true "ID workspace"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.MessageResponse
// @Failure 400 {object} requestresponse.ErrorResponse "Workspace уже удалён"
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Router /api/v1/workspaces/{workspace_id} [delete]
// @Security BearerAuth
func (h *WorkspaceHandler) SoftDeleteWorkspace(w http.ResponseWriter, r *http.Request) {
	claims, ok := r.Context().Value(security.UserContextKey).(*security.Claims)
	if ok == false || claims == nil {
		util.HandleError(w, "Authentication invalid", http.StatusUnauthorized)
		return
	}

	if err := h.WorkspaceService.SoftDelete(r.Context(), claims, chi.URLParam(r, "workspace_id")); err != nil {
		util.HandleAppError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusOK, requestresponse.MessageResponse{Message: "Workspace moved to recycle bin"})
}

// RestoreWorkspace godoc
// @Summary Восстановление workspace из корзины
// @Tags Workspaces
// @Produce json
// @Param workspace_id path string true "ID workspace"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.MessageResponse
// @Failure 400 {object} requestresponse.ErrorResponse "Workspace не удалён"
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Router /api/v1/workspaces/{workspace_id}/restore [post]
// @Security BearerAuth
func (h *WorkspaceHandler) RestoreWorkspace(w http.ResponseWriter, r *http.Request) {
	claims, ok := r.Context().Value(security.UserContextKey).(*security.Claims)
	if ok == false || claims == nil {
		util.HandleError(w, "Authentication invalid", http.StatusUnauthorized)
		return
	}

	if err := h.WorkspaceService.Restore(r.Context(), claims, chi.URLParam(r, "workspace_id")); err != nil {
		util.HandleAppError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusOK, requestresponse.MessageResponse{Message: "Workspace restored successfully"})
}

// PermanentDeleteWorkspace godoc
// @Summary Окончательное удаление workspace
// @Description Удаляет workspace, его документы и их файлы. Требует
// предварительного мягкого удаления.
// @Tags Workspaces
// @Produce json
// @Param workspace_id path string true "ID workspace"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.MessageResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Failure 500 {object} requestresponse.ErrorResponse "Частичный сбой каскада"
// @Router /api/v1/workspaces/{workspace_id}/permanent [delete]
// @Security BearerAuth
func (h *WorkspaceHandler) PermanentDeleteWorkspace(w http.ResponseWriter, r *http.Request) {
	claims, ok := r.Context().Value(security.UserContextKey).(*security.Claims)
	if ok == false || claims == nil {
		util.HandleError(w, "Authentication invalid", http.StatusUnauthorized)
		return
	}

	if err := h.WorkspaceService.PermanentDelete(r.Context(), claims, chi.URLParam(r, "workspace_id")); err != nil {
		util.HandleAppError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusOK, requestresponse.MessageResponse{Message: "Workspace deleted permanently"})
}

// ShareWorkspace godoc
// @Summary Предоставление доступа к workspace
// @Description Выдаёт роль editor или viewer по email. Повторная выдача
// тому же email отклоняется.
// @Tags Workspaces
// @Accept json
// @Produce json
// @Param workspace_id path string true "ID workspace"
// @Param body body requestresponse.ShareWorkspaceRequest true "Email и роль"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.MessageResponse
// @Failure 400 {object} requestresponse.ErrorResponse "Доступ уже выдан или роль неверна"
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Router /api/v1/workspaces/{workspace_id}/share [post]
// @Security BearerAuth
func (h *WorkspaceHandler) ShareWorkspace(w http.ResponseWriter, r *http.Request) {
	claims, ok := r.Context().Value(security.UserContextKey).(*security.Claims)
	if ok == false || claims == nil {
		util.HandleError(w, "Authentication invalid", http.StatusUnauthorized)
		return
	}

	var req requestresponse.ShareWorkspaceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		util.HandleError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.WorkspaceService.Share(r.Context(), claims, chi.URLParam(r, "workspace_id"), req.UserEmail, req.Permission); err != nil {
		util.HandleAppError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusOK, requestresponse.MessageResponse{Message: "Workspace shared successfully"})
}

// RevokeWorkspaceShare godoc
// @Summary Отзыв доступа к workspace
// @Tags Workspaces
// @Accept json
// @Produce json
// @Param workspace_id path string true "ID workspace"
// @Param body body requestresponse.RevokeShareRequest true "Email пользователя"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.MessageResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse "Grant не найден"
// @Router /api/v1/workspaces/{workspace_id}/share [delete]
// @Security BearerAuth
func (h *WorkspaceHandler) RevokeWorkspaceShare(w http.ResponseWriter, r *http.Request) {
	claims, ok := r.Context().Value(security.UserContextKey).(*security.Claims)
	if ok == false || claims == nil {
		util.HandleError(w, "Authentication invalid", http.StatusUnauthorized)
		return
	}

	var req requestresponse.RevokeShareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		util.HandleError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.WorkspaceService.RevokeShare(r.Context(), claims, chi.URLParam(r, "workspace_id"), req.UserEmail); err != nil {
		util.HandleAppError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusOK, requestresponse.MessageResponse{Message: "Workspace access revoked"})
}
