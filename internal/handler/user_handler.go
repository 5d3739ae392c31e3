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

type UserHandler struct {
	ports.UserService
}

func NewUserHandler(userService ports.UserService) *UserHandler {
	return &UserHandler{userService}
}

// Register godoc
// @Summary Регистрация пользователя
// @Description Создаёт пользователя и сразу возвращает JWT
// @Tags Users
// @Accept json
// @Produce json
// @Param body body requestresponse.RegisterRequest true "Данные пользователя"
// @Success 201 {object} requestresponse.AuthResponse
// @Failure 400 {object} requestresponse.ErrorResponse "Неверный формат запроса"
// @Failure 409 {object} requestresponse.ErrorResponse "Email уже занят"
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/v1/users/register [post]
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req requestresponse.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		util.HandleError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if msg := req.Validate(); msg != "" {
		util.HandleError(w, msg, http.StatusBadRequest)
		return
	}

	resp, err := h.UserService.Register(r.Context(), &req)
	if err != nil {
		util.HandleAppError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusCreated, resp)
}

// Login godoc
// @Summary Вход пользователя
// @Description Проверяет email и пароль, возвращает JWT
// @Tags Users
// @Accept json
// @Produce json
// @Param body body requestresponse.LoginRequest true "Учётные данные"
// @Success 200 {object} requestresponse.AuthResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 401 {object} requestresponse.ErrorResponse "Неверный пароль"
// @Failure 404 {object} requestresponse.ErrorResponse "Пользователь не найден"
// @Router /api/v1/users/login [post]
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req requestresponse.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		util.HandleError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Email == "" || req.Password == "" {
		util.HandleError(w, "Email and password are required", http.StatusBadRequest)
		return
	}

	resp, err := h.UserService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		util.HandleAppError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusOK, resp)
}

// ListUsers godoc
// @Summary Список пользователей
// @Tags Users
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {array} model.User
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse "Пользователей нет"
// @Router /api/v1/users [get]
// @Security BearerAuth
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.UserService.ListUsers(r.Context())
	if err != nil {
		util.HandleAppError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusOK, users)
}

// GetUser godoc
// @Summary Пользователь по email
// @Tags Users
// @Produce json
// @Param email path string true "Email пользователя"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} model.User
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Router /api/v1/users/{email} [get]
// @Security BearerAuth
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")
	if email == "" {
		util.HandleError(w, "Email is required", http.StatusBadRequest)
		return
	}

	user, err := h.UserService.GetUserByEmail(r.Context(), email)
	if err != nil {
		util.HandleAppError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusOK, user)
}

// DeleteUser godoc
// @Summary Удаление собственной учётной записи
// @Description Пользователь может удалить только себя
// @Tags Users
// @Produce json
// @Param email path string true "Email пользователя"
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.MessageResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Router /api/v1/users/{email} [delete]
// @Security BearerAuth
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")
	if email == "" {
		util.HandleError(w, "Email is required", http.StatusBadRequest)
		return
	}

	claims, ok := r.Context().Value(security.UserContextKey).(*security.Claims)
	if ok == false || claims == nil {
		util.HandleError(w, "Authentication invalid", http.StatusUnauthorized)
		return
	}

	if _, err := h.UserService.DeleteUser(r.Context(), claims.Email, email); err != nil {
		util.HandleAppError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusOK, requestresponse.MessageResponse{Message: "User deleted successfully"})
}
