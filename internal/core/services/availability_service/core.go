package availability_service

import (
	"context"
	"fmt"
	"time"

	"github.com/suchimauz/pharmacy-booking-availability/internal/config"
	"github.com/suchimauz/pharmacy-booking-availability/internal/core/domain"
	"github.com/suchimauz/pharmacy-booking-availability/internal/core/ports/out"
	"github.com/suchimauz/pharmacy-booking-availability/internal/utils"
)

type AvailabilityService struct {
	pharmacyPort out.PharmacyPort
	cachePort    out.CachePort
	logger       out.LoggerPort
	cfg          *config.Config
	rules        *domain.RuleSet

	// Injected clock, overridden in tests
	now func() time.Time
}

func NewAvailabilityService(
	pharmacyPort out.PharmacyPort,
	cachePort out.CachePort,
	logger out.LoggerPort,
	cfg *config.Config,
	rules *domain.RuleSet,
) *AvailabilityService {
	return &AvailabilityService{
		pharmacyPort: pharmacyPort,
		cachePort:    cachePort,
		logger:       logger.WithModule("AvailabilityService"),
		cfg:          cfg,
		rules:        rules,
		now:          time.Now,
	}
}

// GetAvailability returns the override-adjusted calendar of one tenant
// and service. The adjusted calendar is cacheable because the override
// rules depend only on slot times, not on the current instant; the
// same-day cutoff runs per request in the selector.
func (s *AvailabilityService) GetAvailability(ctx context.Context, tenantID, serviceID string) (domain.Calendar, []domain.DebugInfo, error) {
	debugInfo := AvailabilityServiceDebug{
		data: make([]domain.DebugInfo, 0),
	}
	s.logger.Info("availability.get.started", out.LogFields{
		"tenantId":  tenantID,
		"serviceId": serviceID,
	})

	// Check the cache only when it is enabled
	if s.cachePort != nil && s.cfg.Cache.Enabled {
		if calendar, exists := s.cachePort.GetCalendar(ctx, tenantID, serviceID); exists {
			s.logger.Debug("availability.get.cache.hit", out.LogFields{
				"tenantId":  tenantID,
				"daysCount": len(calendar),
			})
			return calendar, debugInfo.data, nil
		}
	}

	s.logger.Debug("availability.get.cache.miss", out.LogFields{
		"tenantId": tenantID,
	})

	fetch_calendar_debug := domain.DebugInfo{
		Event: "availability.get.calendar.fetch",
	}
	fetch_calendar_debug.Start()

	// Fetch the raw calendar for the booking horizon, starting today in
	// pharmacy-local time
	startDate := utils.StartCurrentDay(s.now().In(s.rules.Location))
	endDate := startDate.AddDate(0, 0, s.cfg.Booking.HorizonDays)

	rawCalendar, err := s.pharmacyPort.GetAvailabilityCalendar(ctx, tenantID, startDate, endDate)
	if err != nil {
		s.logger.Error("availability.get.calendar.fetch_failed", out.LogFields{
			"tenantId": tenantID,
			"error":    err.Error(),
		})
		return nil, nil, fmt.Errorf("availability.get.calendar.fetch_failed: %w", err)
	}
	fetch_calendar_debug.Elapse()
	fetch_calendar_debug.AddOption("daysCount", fmt.Sprintf("%d", len(rawCalendar)))
	debugInfo.AddDebugInfo(fetch_calendar_debug)

	apply_overrides_debug := domain.DebugInfo{
		Event: "availability.get.overrides.apply",
	}
	apply_overrides_debug.Start()
	calendar := applyOverrides(s.rules, rawCalendar, tenantID, serviceID)
	apply_overrides_debug.Elapse()
	debugInfo.AddDebugInfo(apply_overrides_debug)

	// Store in the cache only when it is enabled
	if s.cachePort != nil && s.cfg.Cache.Enabled {
		s.cachePort.StoreCalendar(ctx, tenantID, serviceID, calendar)
	}

	return calendar, debugInfo.data, nil
}

// GetBookableSlots runs the full pipeline for one selected date:
// adjusted calendar -> selector, ordered earliest to latest.
func (s *AvailabilityService) GetBookableSlots(ctx context.Context, tenantID, serviceID, selectedDate string) ([]domain.TimeSlot, []domain.DebugInfo, error) {
	calendar, debugData, err := s.GetAvailability(ctx, tenantID, serviceID)
	if err != nil {
		return nil, nil, err
	}

	debugInfo := AvailabilityServiceDebug{data: debugData}

	select_slots_debug := domain.DebugInfo{
		Event: "availability.slots.select",
	}
	select_slots_debug.Start()
	slots := selectSlots(selectedDate, calendar, s.now(), s.rules.Location)
	select_slots_debug.Elapse()
	select_slots_debug.AddOption("selectedDate", selectedDate)
	select_slots_debug.AddOption("slotsCount", fmt.Sprintf("%d", len(slots)))
	debugInfo.AddDebugInfo(select_slots_debug)

	s.logger.Info("availability.slots.selected", out.LogFields{
		"tenantId":     tenantID,
		"serviceId":    serviceID,
		"selectedDate": selectedDate,
		"slotsCount":   len(slots),
	})

	return slots, debugInfo.data, nil
}

// ApplyOverrides applies the holiday and tenant-recurring rule tables to
// a caller-supplied calendar. Pure, the input is never mutated.
func (s *AvailabilityService) ApplyOverrides(calendar domain.Calendar, tenantID, serviceID string) domain.Calendar {
	return applyOverrides(s.rules, calendar, tenantID, serviceID)
}

// SelectSlots extracts the bookable slots of one selected date from a
// calendar, relative to the supplied instant. Pure.
func (s *AvailabilityService) SelectSlots(selectedDate string, calendar domain.Calendar, now time.Time) []domain.TimeSlot {
	return selectSlots(selectedDate, calendar, now, s.rules.Location)
}

func (s *AvailabilityService) InvalidateCalendarCache(ctx context.Context, tenantID string) {
	if s.cachePort == nil {
		return
	}

	s.logger.Info("availability.cache.invalidate", out.LogFields{
		"tenantId": tenantID,
	})
	s.cachePort.InvalidateCalendar(ctx, tenantID)
}

func (s *AvailabilityService) InvalidateAllCalendars(ctx context.Context) {
	if s.cachePort == nil {
		return
	}

	s.logger.Info("availability.cache.invalidate_all", out.LogFields{})
	s.cachePort.InvalidateAll(ctx)
}
