package handler

import (
	"encoding/json"
	"net/http"

	"dms-web-server/internal/model/requestresponse"
	"dms-web-server/internal/ports"
	"dms-web-server/internal/util"
)

type OTPHandler struct {
	ports.OTPService
}

func NewOTPHandler(otpService ports.OTPService) *OTPHandler {
	return &OTPHandler{otpService}
}

// GenerateOTP godoc
// @Summary Отправка OTP на email
// @Description Генерирует одноразовый код и отправляет его письмом.
// Для уже зарегистрированного email код не выдаётся.
// @Tags OTP
// @Accept json
// @Produce json
// @Param body body requestresponse.GenerateOTPRequest true "Email получателя"
// @Success 200 {object} requestresponse.MessageResponse
// @Failure 400 {object} requestresponse.ErrorResponse "Email занят или отсутствует"
// @Failure 500 {object} requestresponse.ErrorResponse
// @Router /api/v1/otp/generate [post]
func (h *OTPHandler) GenerateOTP(w http.ResponseWriter, r *http.Request) {
	var req requestresponse.GenerateOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		util.HandleError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Email == "" {
		util.HandleError(w, "Email is required", http.StatusBadRequest)
		return
	}

	if _, err := h.OTPService.Generate(r.Context(), req.Email); err != nil {
		util.HandleAppError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusOK, requestresponse.MessageResponse{Message: "OTP sent successfully"})
}

// VerifyOTP godoc
// @Summary Проверка OTP
// @Description Код одноразовый, повторная проверка того же кода отклоняется
// @Tags OTP
// @Accept json
// @Produce json
// @Param body body requestresponse.VerifyOTPRequest true "Email и код"
// @Success 200 {object} requestresponse.MessageResponse
// @Failure 400 {object} requestresponse.ErrorResponse "Код неверен или истёк"
// @Router /api/v1/otp/verify [post]
func (h *OTPHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req requestresponse.VerifyOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		util.HandleError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Email == "" || req.OTP == "" {
		util.HandleError(w, "Email and OTP are required", http.StatusBadRequest)
		return
	}

	if err := h.OTPService.Verify(r.Context(), req.Email, req.OTP); err != nil {
		util.HandleAppError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusOK, requestresponse.MessageResponse{Message: "OTP verified successfully"})
}
