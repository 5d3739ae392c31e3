package requestresponse

// GenerateOTPRequest : тело запроса генерации OTP
type GenerateOTPRequest struct {
	Email string `json:"email" example:"user@example.com"`
}

// VerifyOTPRequest : тело запроса проверки OTP
type VerifyOTPRequest struct {
	Email string `json:"email" example:"user@example.com"`
	OTP   string `json:"otp" example:"483921"`
}
