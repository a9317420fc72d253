package services

import (
	"errors"
	"fmt"
)

// AppError membawa status code HTTP supaya controller bisa membedakan
// input salah (400), referensi basi (404), dan konflik data (409).
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

func ValidationError(message string) *AppError {
	return &AppError{Code: 400, Message: message}
}

func NotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message}
}

func ConflictError(message string) *AppError {
	return &AppError{Code: 409, Message: message}
}

// AsAppError mengembalikan AppError kalau err memang AppError
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
