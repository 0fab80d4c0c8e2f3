package cache

import (
	"context"
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/suchimauz/pharmacy-booking-availability/internal/config"
	"github.com/suchimauz/pharmacy-booking-availability/internal/core/domain"
	"github.com/suchimauz/pharmacy-booking-availability/internal/core/ports/out"
)

// CacheAdapter keeps override-adjusted calendars in an LRU, keyed by
// tenant and service. Entries are evicted by the RabbitMQ listener when
// upstream data changes and swept wholesale at local midnight, when
// "today" moves on.
type CacheAdapter struct {
	calendars *lru.Cache[string, domain.Calendar]
	mu        sync.RWMutex
	logger    out.LoggerPort
}

func NewCacheAdapter(cfg *config.Config, logger out.LoggerPort) (*CacheAdapter, error) {
	if !cfg.Cache.Enabled {
		logger.Info("cache.disabled", out.LogFields{
			"message": "Cache is disabled",
		})
		return nil, nil
	}

	calendars, err := lru.New[string, domain.Calendar](cfg.Cache.Size)
	if err != nil {
		logger.Error("cache.init.failed", out.LogFields{
			"error": err.Error(),
			"size":  cfg.Cache.Size,
		})
		return nil, err
	}

	return &CacheAdapter{
		calendars: calendars,
		logger:    logger.WithModule("CacheAdapter"),
	}, nil
}

func cacheKey(tenantID, serviceID string) string {
	return tenantID + "|" + serviceID
}

func (c *CacheAdapter) GetCalendar(ctx context.Context, tenantID, serviceID string) (domain.Calendar, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	calendar, exists := c.calendars.Get(cacheKey(tenantID, serviceID))
	if !exists {
		c.logger.Debug("cache.get.miss", out.LogFields{
			"tenantId":  tenantID,
			"serviceId": serviceID,
		})
		return nil, false
	}

	c.logger.Debug("cache.get.hit", out.LogFields{
		"tenantId":  tenantID,
		"serviceId": serviceID,
		"daysCount": len(calendar),
	})
	return calendar, true
}

func (c *CacheAdapter) StoreCalendar(ctx context.Context, tenantID, serviceID string, calendar domain.Calendar) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.logger.Debug("cache.store", out.LogFields{
		"tenantId":  tenantID,
		"serviceId": serviceID,
		"daysCount": len(calendar),
	})

	if len(calendar) == 0 {
		return
	}

	c.calendars.Add(cacheKey(tenantID, serviceID), calendar)
}

// InvalidateCalendar evicts every cached service variant of one tenant.
func (c *CacheAdapter) InvalidateCalendar(ctx context.Context, tenantID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	prefix := tenantID + "|"
	removed := 0
	for _, key := range c.calendars.Keys() {
		if strings.HasPrefix(key, prefix) {
			c.calendars.Remove(key)
			removed++
		}
	}

	c.logger.Debug("cache.invalidate", out.LogFields{
		"tenantId":     tenantID,
		"removedCount": removed,
	})
}

func (c *CacheAdapter) InvalidateAll(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.calendars.Purge()
	c.logger.Debug("cache.invalidate_all", out.LogFields{})
}
