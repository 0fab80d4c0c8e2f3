package cache

import (
	"context"
	"testing"
	"time"

	"github.com/suchimauz/pharmacy-booking-availability/internal/config"
	"github.com/suchimauz/pharmacy-booking-availability/internal/core/domain"
	"github.com/suchimauz/pharmacy-booking-availability/internal/core/json_types"
	"github.com/suchimauz/pharmacy-booking-availability/internal/core/ports/out"
)

type nopLogger struct{}

func (l nopLogger) Debug(event string, fields out.LogFields) {}
func (l nopLogger) Info(event string, fields out.LogFields)  {}
func (l nopLogger) Warn(event string, fields out.LogFields)  {}
func (l nopLogger) Error(event string, fields out.LogFields) {}
func (l nopLogger) WithFields(fields out.LogFields) out.LoggerPort {
	return l
}
func (l nopLogger) WithModule(module string) out.LoggerPort {
	return l
}

func newTestAdapter(t *testing.T) *CacheAdapter {
	t.Helper()
	cfg := &config.Config{}
	cfg.Cache.Enabled = true
	cfg.Cache.Size = 16

	adapter, err := NewCacheAdapter(cfg, nopLogger{})
	if err != nil {
		t.Fatalf("NewCacheAdapter error: %v", err)
	}
	return adapter
}

func testCalendar() domain.Calendar {
	start := time.Date(2026, time.June, 3, 9, 0, 0, 0, time.UTC)
	return domain.Calendar{
		{
			Date: json_types.Date{Date: start},
			TimeSlots: []domain.TimeSlot{{
				StartTime: json_types.DateTime{Date: start},
				EndTime:   json_types.DateTime{Date: start.Add(15 * time.Minute)},
				Available: true,
			}},
		},
	}
}

func TestCacheDisabledReturnsNil(t *testing.T) {
	cfg := &config.Config{}
	cfg.Cache.Enabled = false

	adapter, err := NewCacheAdapter(cfg, nopLogger{})
	if err != nil {
		t.Fatalf("NewCacheAdapter error: %v", err)
	}
	if adapter != nil {
		t.Fatalf("expected nil adapter when cache is disabled")
	}
}

func TestStoreAndGetCalendar(t *testing.T) {
	adapter := newTestAdapter(t)
	ctx := context.Background()

	if _, exists := adapter.GetCalendar(ctx, "unite-pharmacy", "advice"); exists {
		t.Fatalf("expected miss on empty cache")
	}

	adapter.StoreCalendar(ctx, "unite-pharmacy", "advice", testCalendar())

	calendar, exists := adapter.GetCalendar(ctx, "unite-pharmacy", "advice")
	if !exists {
		t.Fatalf("expected hit after store")
	}
	if len(calendar) != 1 {
		t.Fatalf("expected 1 day, got %d", len(calendar))
	}

	// Service id is part of the key
	if _, exists := adapter.GetCalendar(ctx, "unite-pharmacy", "flu-vaccination"); exists {
		t.Fatalf("expected miss for a different service")
	}
}

func TestStoreEmptyCalendarIsSkipped(t *testing.T) {
	adapter := newTestAdapter(t)
	ctx := context.Background()

	adapter.StoreCalendar(ctx, "unite-pharmacy", "advice", domain.Calendar{})
	if _, exists := adapter.GetCalendar(ctx, "unite-pharmacy", "advice"); exists {
		t.Fatalf("expected empty calendars not to be cached")
	}
}

func TestInvalidateCalendarEvictsAllServices(t *testing.T) {
	adapter := newTestAdapter(t)
	ctx := context.Background()

	adapter.StoreCalendar(ctx, "unite-pharmacy", "advice", testCalendar())
	adapter.StoreCalendar(ctx, "unite-pharmacy", "flu-vaccination", testCalendar())
	adapter.StoreCalendar(ctx, "city-health", "advice", testCalendar())

	adapter.InvalidateCalendar(ctx, "unite-pharmacy")

	if _, exists := adapter.GetCalendar(ctx, "unite-pharmacy", "advice"); exists {
		t.Fatalf("expected tenant entry to be evicted")
	}
	if _, exists := adapter.GetCalendar(ctx, "unite-pharmacy", "flu-vaccination"); exists {
		t.Fatalf("expected all service variants to be evicted")
	}
	if _, exists := adapter.GetCalendar(ctx, "city-health", "advice"); !exists {
		t.Fatalf("expected other tenants to survive")
	}
}

func TestInvalidateAll(t *testing.T) {
	adapter := newTestAdapter(t)
	ctx := context.Background()

	adapter.StoreCalendar(ctx, "unite-pharmacy", "advice", testCalendar())
	adapter.StoreCalendar(ctx, "city-health", "advice", testCalendar())

	adapter.InvalidateAll(ctx)

	if _, exists := adapter.GetCalendar(ctx, "unite-pharmacy", "advice"); exists {
		t.Fatalf("expected cache to be empty after purge")
	}
	if _, exists := adapter.GetCalendar(ctx, "city-health", "advice"); exists {
		t.Fatalf("expected cache to be empty after purge")
	}
}
