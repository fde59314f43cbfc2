package services

import (
	"context"
	"fmt"

	"github.com/campusboard/core/internal/domain/entities"
	"github.com/campusboard/core/internal/infrastructure/logger"
	"github.com/campusboard/core/internal/ports"
)

// PreferenceService manages notification preferences. Loading always yields
// a fully populated record: stored partial records merge over the hard-coded
// defaults, and the account email is seeded in once if the stored email is
// empty.
type PreferenceService struct {
	repo   ports.PreferenceRepository
	logger *logger.Logger
}

// NewPreferenceService creates a new preference service.
func NewPreferenceService(repo ports.PreferenceRepository, logger *logger.Logger) *PreferenceService {
	return &PreferenceService{repo: repo, logger: logger}
}

// Load returns the user's preferences, applying defaults and one-time email
// seeding from the account email.
func (s *PreferenceService) Load(ctx context.Context, userID, accountEmail string) (entities.NotificationPreferences, error) {
	prefs, found, err := s.repo.Load(ctx, userID)
	if err != nil {
		return entities.NotificationPreferences{}, fmt.Errorf("failed to load preferences: %w", err)
	}
	if !found {
		prefs = entities.DefaultNotificationPreferences()
	}

	if prefs.Email == "" && accountEmail != "" {
		prefs.Email = accountEmail
		if err := s.repo.Save(ctx, userID, prefs); err != nil {
			return entities.NotificationPreferences{}, fmt.Errorf("failed to seed preferences: %w", err)
		}
		s.logger.Info("Seeded notification email from account", "user_id", userID)
	}

	return prefs, nil
}

// Update applies a partial update over the current preferences, persists the
// result and returns it.
func (s *PreferenceService) Update(ctx context.Context, userID string, req ports.UpdatePreferencesRequest) (entities.NotificationPreferences, error) {
	prefs, found, err := s.repo.Load(ctx, userID)
	if err != nil {
		return entities.NotificationPreferences{}, fmt.Errorf("failed to load preferences: %w", err)
	}
	if !found {
		prefs = entities.DefaultNotificationPreferences()
	}

	if req.Method != nil {
		if !req.Method.IsValid() {
			return entities.NotificationPreferences{}, fmt.Errorf("invalid delivery method %q", *req.Method)
		}
		prefs.Method = *req.Method
	}
	if req.Email != nil {
		prefs.Email = *req.Email
	}
	if req.Phone != nil {
		prefs.Phone = *req.Phone
	}
	if req.Timing != nil {
		prefs.Timing = *req.Timing
	}
	if req.EventTypes != nil {
		prefs.EventTypes = *req.EventTypes
	}

	if err := s.repo.Save(ctx, userID, prefs); err != nil {
		return entities.NotificationPreferences{}, fmt.Errorf("failed to persist preferences: %w", err)
	}

	s.logger.Info("Notification preferences updated", "user_id", userID, "method", prefs.Method)

	return prefs, nil
}
