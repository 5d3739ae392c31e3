package requestresponse

// RegisterRequest : тело запроса регистрации
type RegisterRequest struct {
	NationalID string `json:"national_id" example:"29805241234567"`
	FirstName  string `json:"first_name" example:"Ivan"`
	LastName   string `json:"last_name" example:"Petrov"`
	Email      string `json:"email" example:"user@example.com"`
	Password   string `json:"password" example:"P@ssw0rd123"`
}

// Validate : проверка обязательных полей
func (r *RegisterRequest) Validate() string {
	switch {
	case r.NationalID == "":
		return "national_id is required"
	case r.FirstName == "":
		return "first_name is required"
	case r.LastName == "":
		return "last_name is required"
	case r.Email == "":
		return "email is required"
	case r.Password == "":
		return "password is required"
	}
	return ""
}

// LoginRequest : тело запроса на аутентификацию
type LoginRequest struct {
	Email    string `json:"email" example:"user@example.com"`
	Password string `json:"password" example:"P@ssw0rd123"`
}

// AuthResponse : ответ на успешную регистрацию или вход
type AuthResponse struct {
	Token      string `json:"token" example:"eyJhbGciOiJIUzUxMiIsInR5cCI6IkpXVCJ9..."`
	Email      string `json:"email" example:"user@example.com"`
	NationalID string `json:"national_id" example:"29805241234567"`
	FirstName  string `json:"first_name" example:"Ivan"`
	LastName   string `json:"last_name" example:"Petrov"`
}

// ErrorResponse : стандартная структура ошибки
type ErrorResponse struct {
	Error string `json:"error" example:"Workspace not found"`
}

// MessageResponse : стандартный ответ с сообщением
type MessageResponse struct {
	Message string `json:"message" example:"OTP sent to email"`
}
