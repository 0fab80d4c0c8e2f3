package pharmacy

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	nurl "net/url"
	"time"

	"github.com/suchimauz/pharmacy-booking-availability/internal/config"
	"github.com/suchimauz/pharmacy-booking-availability/internal/core/domain"
	"github.com/suchimauz/pharmacy-booking-availability/internal/core/ports/out"
)

// PharmacyAdapter fetches raw advertised availability from the pharmacy
// data service. It never filters anything, override rules belong to the
// core.
type PharmacyAdapter struct {
	client   *http.Client
	baseURL  string
	username string
	password string
	logger   out.LoggerPort
}

func NewPharmacyAdapter(cfg *config.Config, logger out.LoggerPort) *PharmacyAdapter {
	return &PharmacyAdapter{
		client:   &http.Client{Timeout: 10 * time.Second},
		baseURL:  cfg.PharmacyAPI.URL,
		username: cfg.PharmacyAPI.Username,
		password: cfg.PharmacyAPI.Password,
		logger:   logger,
	}
}

func (a *PharmacyAdapter) GetAvailabilityCalendar(ctx context.Context, tenantID string, startDate, endDate time.Time) (domain.Calendar, error) {
	a.logger.Info("pharmacy.calendar.fetch", out.LogFields{
		"tenantId": tenantID,
	})

	url := fmt.Sprintf("%s/api/tenants/%s/availability", a.baseURL, nurl.PathEscape(tenantID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		a.logger.Error("pharmacy.calendar.fetch_failed", out.LogFields{
			"tenantId": tenantID,
			"error":    err.Error(),
		})
		return nil, err
	}

	query := nurl.Values{}
	query.Add("start", startDate.Format("2006-01-02"))
	query.Add("end", endDate.Format("2006-01-02"))
	req.URL.RawQuery = query.Encode()

	req.SetBasicAuth(a.username, a.password)

	resp, err := a.client.Do(req)
	if err != nil {
		a.logger.Error("pharmacy.calendar.fetch_failed", out.LogFields{
			"tenantId": tenantID,
			"error":    err.Error(),
		})
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		a.logger.Error("pharmacy.calendar.fetch_failed", out.LogFields{
			"tenantId": tenantID,
			"status":   resp.StatusCode,
		})
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var envelope out.PharmacyCalendarResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		a.logger.Error("pharmacy.calendar.decode_response_failed", out.LogFields{
			"tenantId": tenantID,
			"error":    err.Error(),
		})
		return nil, err
	}

	var calendar domain.Calendar
	if len(envelope.Availability) > 0 {
		if err := json.Unmarshal(envelope.Availability, &calendar); err != nil {
			a.logger.Error("pharmacy.calendar.decode_days_failed", out.LogFields{
				"tenantId": tenantID,
				"error":    err.Error(),
			})
			return nil, err
		}
	}

	a.logger.Debug("pharmacy.calendar.fetch_success", out.LogFields{
		"tenantId":  tenantID,
		"daysCount": len(calendar),
	})

	return calendar, nil
}
