package services

import (
	"context"
	"fmt"

	"github.com/campusboard/core/internal/domain/entities"
	"github.com/campusboard/core/internal/infrastructure/logger"
	"github.com/campusboard/core/internal/ports"
)

// NotificationService proxies reminder scheduling to the notify backend.
// Events that opted out of reminders are rejected before the network call.
type NotificationService struct {
	gateway ports.NotificationGateway
	logger  *logger.Logger
}

// NewNotificationService creates a new notification service.
func NewNotificationService(gateway ports.NotificationGateway, logger *logger.Logger) *NotificationService {
	return &NotificationService{gateway: gateway, logger: logger}
}

// Schedule registers a reminder for the event.
func (s *NotificationService) Schedule(ctx context.Context, userID string, event entities.CalendarEvent) error {
	if !event.ReminderEligible() {
		return entities.ErrReminderIneligible
	}
	if err := s.gateway.Schedule(ctx, userID, event); err != nil {
		return fmt.Errorf("failed to schedule reminder: %w", err)
	}
	s.logger.Info("Reminder scheduled", "user_id", userID, "event_id", event.ID)
	return nil
}

// Scheduled lists the events with pending reminders for the user.
func (s *NotificationService) Scheduled(ctx context.Context, userID string) ([]entities.CalendarEvent, error) {
	events, err := s.gateway.Scheduled(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list scheduled reminders: %w", err)
	}
	return events, nil
}

// Cancel removes a pending reminder.
func (s *NotificationService) Cancel(ctx context.Context, eventID string) error {
	if err := s.gateway.Cancel(ctx, eventID); err != nil {
		return fmt.Errorf("failed to cancel reminder: %w", err)
	}
	s.logger.Info("Reminder cancelled", "event_id", eventID)
	return nil
}
