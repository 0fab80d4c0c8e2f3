package out

import (
	"context"

	"github.com/suchimauz/pharmacy-booking-availability/internal/core/domain"
)

type CachePort interface {
	// Caching of override-adjusted calendars, keyed by tenant and service
	GetCalendar(ctx context.Context, tenantID, serviceID string) (domain.Calendar, bool)
	StoreCalendar(ctx context.Context, tenantID, serviceID string, calendar domain.Calendar)

	// Invalidation, per tenant (all services) or everything at once
	InvalidateCalendar(ctx context.Context, tenantID string)
	InvalidateAll(ctx context.Context)
}
