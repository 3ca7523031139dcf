package serverutils

import (
	"github.com/go-playground/validator/v10"
)

type Response[T any] struct {
	Success bool   `json:"success"`
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    T      `json:"data,omitempty"`
}

func SuccessResponse[T any](message string, data T) Response[T] {
	return Response[T]{
		Success: true,
		Code:    200,
		Message: message,
		Data:    data,
	}
}

func ErrorResponse(code int, message string) Response[any] {
	return Response[any]{
		Success: false,
		Code:    code,
		Message: message,
	}
}

var validate = validator.New()

// ValidateRequest checks `validate` struct tags on a bound request body.
func ValidateRequest(req interface{}) error {
	return validate.Struct(req)
}
