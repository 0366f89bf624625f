package service

import (
	"context"
	"encoding/json"
	"fmt"

	"motelhub/internal/events"
	"motelhub/internal/model"
	"motelhub/internal/repository"
	"motelhub/pkg/apperror"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

// Notifier pushes a message to the live connections of a user.
type Notifier interface {
	SendToUser(userID string, payload []byte)
}

// Outbound is a notification written in a transaction and published after commit.
type Outbound struct {
	Notification model.Notification
	Event        events.BillingEvent
}

// NotificationService persists notifications and fans them out.
type NotificationService interface {
	// Notify writes the row using the transaction in ctx, if any.
	Notify(ctx context.Context, out *Outbound) error
	// Publish delivers already committed notifications. Failures are logged only.
	Publish(ctx context.Context, outs ...Outbound)
	List(ctx context.Context, userID uuid.UUID, unreadOnly bool, offset, limit int) ([]model.Notification, int64, error)
	MarkRead(ctx context.Context, userID, id uuid.UUID) error
}

type notificationService struct {
	repo      repository.NotificationRepository
	notifier  Notifier
	publisher events.Publisher
	log       *zap.Logger
}

func NewNotificationService(repo repository.NotificationRepository, notifier Notifier, publisher events.Publisher, log *zap.Logger) NotificationService {
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &notificationService{repo: repo, notifier: notifier, publisher: publisher, log: log}
}

func (s *notificationService) Notify(ctx context.Context, out *Outbound) error {
	if out.Notification.UserID == uuid.Nil {
		return nil
	}
	if err := s.repo.Create(ctx, &out.Notification); err != nil {
		return fmt.Errorf("failed to save notification: %w", err)
	}
	out.Event.RecipientID = out.Notification.UserID.String()
	return nil
}

func (s *notificationService) Publish(ctx context.Context, outs ...Outbound) {
	for _, out := range outs {
		if out.Notification.ID != uuid.Nil && s.notifier != nil {
			payload, err := json.Marshal(out.Notification)
			if err != nil {
				s.log.Warn("encode notification", zap.Error(err))
			} else {
				s.notifier.SendToUser(out.Notification.UserID.String(), payload)
			}
		}
		if out.Event.Type == "" {
			continue
		}
		if err := s.publisher.Publish(ctx, out.Event.InvoiceID, out.Event); err != nil {
			s.log.Warn("publish billing event",
				zap.String("type", out.Event.Type),
				zap.String("invoice_id", out.Event.InvoiceID),
				zap.Error(err),
			)
		}
	}
}

func (s *notificationService) List(ctx context.Context, userID uuid.UUID, unreadOnly bool, offset, limit int) ([]model.Notification, int64, error) {
	items, total, err := s.repo.ListByUser(ctx, userID, unreadOnly, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list notifications: %w", err)
	}
	return items, total, nil
}

func (s *notificationService) MarkRead(ctx context.Context, userID, id uuid.UUID) error {
	found, err := s.repo.MarkRead(ctx, id, userID)
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	if !found {
		return apperror.NotFound("notification")
	}
	return nil
}

// notificationData encodes the structured part of a notification.
func notificationData(v map[string]interface{}) datatypes.JSON {
	payload, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return datatypes.JSON(payload)
}
