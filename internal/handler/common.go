package handler

import (
	"time"

	"motelhub/internal/middleware"
	"motelhub/internal/service"
	"motelhub/pkg/apperror"
	"motelhub/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// RegisterValidators adds the custom binding tags used by request DTOs.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return v.RegisterValidation("billing_month", func(fl validator.FieldLevel) bool {
		_, err := time.Parse("2006-01", fl.Field().String())
		return err == nil
	})
}

// actor reads the caller set by middleware.RequireRole. It writes a 401 when missing.
func actor(c *gin.Context) (service.Actor, bool) {
	id, role, ok := middleware.CurrentUser(c)
	if !ok {
		response.Fail(c, apperror.Unauthorized("User ID not found in context"))
		return service.Actor{}, false
	}
	return service.Actor{UserID: id, Role: role}, true
}

// pathID parses the :id path parameter. It writes a 400 when malformed.
func pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, apperror.Validation("id", "id must be a UUID"))
		return uuid.Nil, false
	}
	return id, true
}

// queryID parses an optional UUID query parameter.
func queryID(c *gin.Context, key string) (*uuid.UUID, bool) {
	raw := c.Query(key)
	if raw == "" {
		return nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		response.Fail(c, apperror.Validation(key, key+" must be a UUID"))
		return nil, false
	}
	return &id, true
}
