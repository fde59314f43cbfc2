package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusboard/core/internal/domain/entities"
	"github.com/campusboard/core/internal/infrastructure/logger"
)

func TestScheduleRequiresEligibility(t *testing.T) {
	gw := &stubNotify{}
	svc := NewNotificationService(gw, logger.NewNop())

	event := entities.CalendarEvent{ID: "user-1", Date: "2026-09-20"}
	err := svc.Schedule(context.Background(), "u1", event)
	assert.ErrorIs(t, err, entities.ErrReminderIneligible)
	assert.Empty(t, gw.scheduled)

	event.Notify = eligibleNotify()
	require.NoError(t, svc.Schedule(context.Background(), "u1", event))
	assert.Equal(t, []string{"user-1"}, gw.scheduled)
}

func TestScheduleNeedsChannelAndTiming(t *testing.T) {
	gw := &stubNotify{}
	svc := NewNotificationService(gw, logger.NewNop())

	// Enabled but no channel selected.
	ev := entities.CalendarEvent{ID: "user-1", Notify: entities.EventNotify{Enabled: true, OneDay: true}}
	assert.ErrorIs(t, svc.Schedule(context.Background(), "u1", ev), entities.ErrReminderIneligible)

	// Enabled with a channel but no timing offset.
	ev.Notify = entities.EventNotify{Enabled: true, SMS: true}
	assert.ErrorIs(t, svc.Schedule(context.Background(), "u1", ev), entities.ErrReminderIneligible)
}

func TestCancelForwards(t *testing.T) {
	gw := &stubNotify{}
	svc := NewNotificationService(gw, logger.NewNop())

	require.NoError(t, svc.Cancel(context.Background(), "user-1"))
	assert.Equal(t, []string{"user-1"}, gw.cancelled)
}
