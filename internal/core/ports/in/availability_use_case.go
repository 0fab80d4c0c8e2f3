package in

import (
	"context"
	"time"

	"github.com/suchimauz/pharmacy-booking-availability/internal/core/domain"
)

type AvailabilityUseCase interface {
	// Override-adjusted calendar for a tenant and service, for rendering
	// the date picker
	GetAvailability(ctx context.Context, tenantID, serviceID string) (domain.Calendar, []domain.DebugInfo, error)

	// Ordered bookable slots of one selected date
	GetBookableSlots(ctx context.Context, tenantID, serviceID, selectedDate string) ([]domain.TimeSlot, []domain.DebugInfo, error)

	// Pure pipeline stages, exposed for callers that already hold a calendar
	ApplyOverrides(calendar domain.Calendar, tenantID, serviceID string) domain.Calendar
	SelectSlots(selectedDate string, calendar domain.Calendar, now time.Time) []domain.TimeSlot

	// Cache invalidation, driven by the HTTP surface and the RabbitMQ listener
	InvalidateCalendarCache(ctx context.Context, tenantID string)
	InvalidateAllCalendars(ctx context.Context)
}
