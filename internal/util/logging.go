package util

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"dms-web-server/internal/apperror"
)

func LogError(message string, err error) error {
	log.Printf("%s: %v", message, err)
	return fmt.Errorf("%s: %w", message, err)
}

func HandleError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	errorResponse := struct {
		Error string `json:"error"`
	}{
		Error: message,
	}

	json.NewEncoder(w).Encode(errorResponse)
}

// HandleAppError : маппинг внутренней ошибки в HTTP-ответ
func HandleAppError(w http.ResponseWriter, err error) {
	HandleError(w, apperror.MessageOf(err), apperror.Status(err))
}

// WriteJSON : сериализует payload в тело ответа
func WriteJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if payload != nil {
		json.NewEncoder(w).Encode(payload)
	}
}
