package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Error : ошибка с фиксированным HTTP-статусом
// Маппер односторонний и без восстановления: только классифицирует и отвечает
type Error struct {
	Code    int
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func UserNotFound(email string) *Error {
	return &Error{Code: http.StatusNotFound, Message: fmt.Sprintf("User with email %q not found", email)}
}

func NoUsers() *Error {
	return &Error{Code: http.StatusNotFound, Message: "No users available"}
}

func InvalidPassword() *Error {
	return &Error{Code: http.StatusUnauthorized, Message: "The provided password is incorrect"}
}

func UserAlreadyExists() *Error {
	return &Error{Code: http.StatusConflict, Message: "Email already exists"}
}

func DatabaseConnection(err error) *Error {
	return &Error{Code: http.StatusInternalServerError, Message: "There was an issue connecting to the database", Err: err}
}

func UserCreation(email string, err error) *Error {
	return &Error{Code: http.StatusInternalServerError, Message: fmt.Sprintf("Error creating %s", email), Err: err}
}

func UserUpdate(email string, err error) *Error {
	return &Error{Code: http.StatusInternalServerError, Message: fmt.Sprintf("Unable to update user %q", email), Err: err}
}

func UserDeletion(email string, err error) *Error {
	return &Error{Code: http.StatusInternalServerError, Message: fmt.Sprintf("Unable to delete user %q", email), Err: err}
}

// NotFound : ресурс (workspace, документ, избранное) не найден
func NotFound(resource string) *Error {
	return &Error{Code: http.StatusNotFound, Message: resource + " not found"}
}

func OTPExpired() *Error {
	return &Error{Code: http.StatusBadRequest, Message: "OTP has expired"}
}

func OTPInvalid() *Error {
	return &Error{Code: http.StatusBadRequest, Message: "Invalid OTP"}
}

// Validation : неверное тело запроса или параметр
func Validation(message string) *Error {
	return &Error{Code: http.StatusBadRequest, Message: message}
}

func Unauthorized(message string) *Error {
	return &Error{Code: http.StatusUnauthorized, Message: message}
}

func Forbidden(message string) *Error {
	return &Error{Code: http.StatusForbidden, Message: message}
}

// Duplicate : повторный grant, повторное избранное, restore не-удалённого
func Duplicate(message string) *Error {
	return &Error{Code: http.StatusBadRequest, Message: message}
}

// PartialCascade : каскадное удаление завершилось с ошибками файлового хранилища
// Строки БД при этом уже удалены, перечисляются неудалённые ключи
func PartialCascade(keys []string) *Error {
	return &Error{
		Code:    http.StatusInternalServerError,
		Message: "Partial cascade failure, undeleted file keys: " + strings.Join(keys, ", "),
	}
}

// Status : HTTP-статус для ошибки, нераспознанная ошибка уходит в 500
func Status(err error) int {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return http.StatusInternalServerError
}

// MessageOf : пользовательское сообщение ошибки
func MessageOf(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}
