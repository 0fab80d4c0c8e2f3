package out

import (
	"context"
	"encoding/json"
	"time"

	"github.com/suchimauz/pharmacy-booking-availability/internal/core/domain"
)

// PharmacyPort fetches the raw advertised availability of one tenant
// from the pharmacy data service. The calendar comes back unfiltered,
// override rules are applied by the core.
type PharmacyPort interface {
	GetAvailabilityCalendar(ctx context.Context, tenantID string, startDate, endDate time.Time) (domain.Calendar, error)
}

// PharmacyCalendarResponse is the upstream envelope around a calendar.
type PharmacyCalendarResponse struct {
	TenantID     string          `json:"tenantId"`
	Availability json.RawMessage `json:"availability"`
}
