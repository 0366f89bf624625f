package service

import (
	"context"
	"encoding/json"
	"fmt"

	"motelhub/internal/model"
	"motelhub/internal/repository"
	"motelhub/pkg/apperror"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// auditWriter records who did what inside the caller's transaction.
type auditWriter struct {
	repo repository.AuditRepository
}

func (w auditWriter) write(ctx context.Context, userID *uuid.UUID, action, entityID, entityName string, details map[string]interface{}) error {
	payload, err := json.Marshal(details)
	if err != nil {
		return fmt.Errorf("failed to encode audit details: %w", err)
	}
	entry := &model.AuditLog{
		UserID:     userID,
		Action:     action,
		EntityID:   entityID,
		EntityName: entityName,
		Details:    datatypes.JSON(payload),
	}
	if err := w.repo.Log(ctx, entry); err != nil {
		return fmt.Errorf("failed to write audit log: %w", err)
	}
	return nil
}

// AuditService exposes the history of one billing entity to operators.
type AuditService interface {
	ListByEntity(ctx context.Context, actor Actor, entityID string) ([]model.AuditLog, error)
}

type auditService struct {
	repo repository.AuditRepository
}

func NewAuditService(repo repository.AuditRepository) AuditService {
	return &auditService{repo: repo}
}

func (s *auditService) ListByEntity(ctx context.Context, actor Actor, entityID string) ([]model.AuditLog, error) {
	if !actor.Unrestricted() {
		return nil, apperror.Forbidden("audit history is restricted to operators")
	}
	if entityID == "" {
		return nil, apperror.Validation("entity_id", "entity_id is required")
	}
	logs, err := s.repo.ListByEntity(ctx, entityID)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit logs: %w", err)
	}
	return logs, nil
}
