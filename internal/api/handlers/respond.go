// Package handlers содержит общие помощники HTTP-обработчиков
package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Машиночитаемые коды ошибок API
const (
	CodeInvalidInput      = "INVALID_INPUT"
	CodeInvalidDateRange  = "INVALID_DATE_RANGE"
	CodeOverlapConflict   = "OVERLAP_CONFLICT"
	CodeInvalidTransition = "INVALID_TRANSITION"
	CodeCutoffViolation   = "CUTOFF_VIOLATION"
	CodeAlreadyRequested  = "ALREADY_REQUESTED"
	CodeAlreadySettled    = "ALREADY_SETTLED"
	CodeCapacityExceeded  = "CAPACITY_EXCEEDED"
	CodeNotFound          = "NOT_FOUND"
	CodeUnauthorized      = "UNAUTHORIZED"
	CodeForbidden         = "FORBIDDEN"
	CodeRateLimited       = "RATE_LIMITED"
	CodeInternalError     = "INTERNAL_ERROR"
)

// ErrorBody тело ошибки API
type ErrorBody struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	DaysUntil *int   `json:"daysUntil,omitempty"`
}

// ErrorResponse обёртка тела ошибки
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// DecodeJSON декодирует тело запроса в v
// Неизвестные поля считаются ошибкой клиента
func DecodeJSON(r *http.Request, v interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(v); err != nil {
		return fmt.Errorf("failed to decode request body: %w", err)
	}
	return nil
}

// RespondJSON отправляет JSON-ответ с указанным статусом
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

// RespondError отправляет ошибку с машиночитаемым кодом
func RespondError(w http.ResponseWriter, status int, code, message string) {
	RespondJSON(w, status, ErrorResponse{Error: ErrorBody{Code: code, Message: message}})
}

// RespondErrorWithDays отправляет ошибку политики отмены с числом
// оставшихся полных дней до опорной даты
func RespondErrorWithDays(w http.ResponseWriter, status int, code, message string, daysUntil int) {
	RespondJSON(w, status, ErrorResponse{Error: ErrorBody{Code: code, Message: message, DaysUntil: &daysUntil}})
}

// RespondBadRequest отправляет 400 Bad Request
func RespondBadRequest(w http.ResponseWriter, code, message string) {
	RespondError(w, http.StatusBadRequest, code, message)
}

// RespondNotFound отправляет 404 Not Found
func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, CodeNotFound, message)
}

// RespondConflict отправляет 409 Conflict
func RespondConflict(w http.ResponseWriter, code, message string) {
	RespondError(w, http.StatusConflict, code, message)
}

// RespondUnauthorized отправляет 401 Unauthorized
func RespondUnauthorized(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusUnauthorized, CodeUnauthorized, message)
}

// RespondForbidden отправляет 403 Forbidden
func RespondForbidden(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusForbidden, CodeForbidden, message)
}

// RespondInternalError отправляет 500 Internal Server Error
func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, CodeInternalError, "внутренняя ошибка сервера")
}
