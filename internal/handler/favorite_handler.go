package handler

import (
	"net/http"

	"dms-web-server/internal/model/requestresponse"
	"dms-web-server/internal/ports"
	"dms-web-server/internal/security"
	"dms-web-server/internal/util"

	"github.com/go-chi/chi/v5"
)

type FavoriteHandler struct {
	ports.FavoriteService
}

func NewFavoriteHandler(favoriteService ports.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{favoriteService}
}

// AddFavorite godoc
// @Summary Добавление workspace в избранное
// @Description Повторное добавление того же workspace отклоняется
// @Tags Favorites
// @Produce json
// @Param workspace_id path string true "ID workspace"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 201 {object} requestresponse.MessageResponse
// @Failure 400 {object} requestresponse.ErrorResponse "Workspace уже в избранном"
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse "Workspace не найден"
// @Router /api/v1/favorites/{workspace_id} [post]
// @Security BearerAuth
func (h *FavoriteHandler) AddFavorite(w http.ResponseWriter, r *http.Request) {
	claims, ok := r.Context().Value(security.UserContextKey).(*security.Claims)
	if ok == false || claims == nil {
		util.HandleError(w, "Authentication invalid", http.StatusUnauthorized)
		return
	}

	if err := h.FavoriteService.Add(r.Context(), claims, chi.URLParam(r, "workspace_id")); err != nil {
		util.HandleAppError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusCreated, requestresponse.MessageResponse{Message: "Workspace added to favorites"})
}

// RemoveFavorite godoc
// @Summary Удаление workspace из избранного
// @Tags Favorites
// @Produce json
// @Param workspace_id path string true "ID workspace"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.MessageResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse "Workspace не в избранном"
// @Router /api/v1/favorites/{workspace_id} [delete]
// @Security BearerAuth
func (h *FavoriteHandler) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	claims, ok := r.Context().Value(security.UserContextKey).(*security.Claims)
	if ok == false || claims == nil {
		util.HandleError(w, "Authentication invalid", http.StatusUnauthorized)
		return
	}

	if err := h.FavoriteService.Remove(r.Context(), claims, chi.URLParam(r, "workspace_id")); err != nil {
		util.HandleAppError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusOK, requestresponse.MessageResponse{Message: "Workspace removed from favorites"})
}

// ListFavorites godoc
// @Summary Избранные workspace вызывающего
// @Tags Favorites
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {array} model.Workspace
// @Failure 401 {object} requestresponse.ErrorResponse
// @Router /api/v1/favorites [get]
// @Security BearerAuth
func (h *FavoriteHandler) ListFavorites(w http.ResponseWriter, r *http.Request) {
	claims, ok := r.Context().Value(security.UserContextKey).(*security.Claims)
	if ok == false || claims == nil {
		util.HandleError(w, "Authentication invalid", http.StatusUnauthorized)
		return
	}

	workspaces, err := h.FavoriteService.ListMine(r.Context(), claims)
	if err != nil {
		util.HandleAppError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusOK, workspaces)
}

// CheckFavorite godoc
// @Summary Проверка, находится ли workspace в избранном
// @Tags Favorites
// @Produce json
// @Param workspace_id path string true "ID workspace"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.FavoriteCheckResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Router /api/v1/favorites/{workspace_id}/check [get]
// @Security BearerAuth
func (h *FavoriteHandler) CheckFavorite(w http.ResponseWriter, r *http.Request) {
	claims, ok := r.Context().Value(security.UserContextKey).(*security.Claims)
	if ok == false || claims == nil {
		util.HandleError(w, "Authentication invalid", http.StatusUnauthorized)
		return
	}

	isFavorited, err := h.FavoriteService.Check(r.Context(), claims, chi.URLParam(r, "workspace_id"))
	if err != nil {
		util.HandleAppError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusOK, requestresponse.FavoriteCheckResponse{IsFavorited: isFavorited})
}
