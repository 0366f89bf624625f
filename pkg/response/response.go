package response

import (
	"net/http"

	"motelhub/pkg/apperror"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Response represents a standard API response format
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorBody  `json:"error,omitempty"`
}

// ErrorBody carries the machine-readable part of a failure
type ErrorBody struct {
	Code    apperror.Code          `json:"code"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// Success returns a standard success response wrapping the data
func Success(message string, data interface{}) Response {
	return Response{
		Success: true,
		Message: message,
		Data:    data,
	}
}

// Error returns a standard error response
func Error(code apperror.Code, message string, details map[string]interface{}) Response {
	return Response{
		Success: false,
		Message: message,
		Error:   &ErrorBody{Code: code, Details: details},
	}
}

// OK writes a 200 success envelope
func OK(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Success(message, data))
}

// Created writes a 201 success envelope
func Created(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, Success(message, data))
}

// BadRequest reports a payload that failed binding
func BadRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, Error(apperror.CodeValidation, "Invalid request payload", map[string]interface{}{
		"reason": err.Error(),
	}))
}

// Fail maps a service error to its envelope. Anything that is not an
// *apperror.Error is logged and reported as INTERNAL_ERROR without its text.
func Fail(c *gin.Context, err error) {
	if appErr, ok := apperror.As(err); ok {
		c.JSON(appErr.HTTPStatus(), Error(appErr.Code, appErr.Message, appErr.Details))
		return
	}

	zap.L().Error("request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Error(err),
	)
	c.JSON(http.StatusInternalServerError, Error(apperror.CodeInternal, "Internal server error", nil))
}
