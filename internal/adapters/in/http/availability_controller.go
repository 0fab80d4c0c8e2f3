package http

import (
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/suchimauz/pharmacy-booking-availability/internal/config"
	"github.com/suchimauz/pharmacy-booking-availability/internal/core/domain"
	"github.com/suchimauz/pharmacy-booking-availability/internal/core/ports/in"
	"github.com/suchimauz/pharmacy-booking-availability/internal/core/ports/out"
	"github.com/suchimauz/pharmacy-booking-availability/internal/core/services/availability_service"
	"github.com/suchimauz/pharmacy-booking-availability/internal/utils"
)

type AvailabilityController struct {
	useCase in.AvailabilityUseCase
	cfg     *config.Config
	logger  out.LoggerPort
}

func NewAvailabilityController(useCase in.AvailabilityUseCase, cfg *config.Config, logger out.LoggerPort) *AvailabilityController {
	return &AvailabilityController{
		useCase: useCase,
		cfg:     cfg,
		logger:  logger,
	}
}

func (c *AvailabilityController) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api/v1")
	api.Use(c.basicAuth())
	{
		api.GET("/tenants/:tenantId/slots", c.getSlots)
		api.GET("/tenants/:tenantId/availability", c.getAvailability)
		api.POST("/tenants/:tenantId/cache/invalidate", c.invalidateCache)
	}
}

// SlotResponse is one bookable slot plus its display strings, already
// rendered in the pharmacy timezone for the booking widget.
type SlotResponse struct {
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	Display   struct {
		Time string `json:"time"`
		Date string `json:"date"`
	} `json:"display"`
}

func (c *AvailabilityController) location() *time.Location {
	if config.TimeZone != nil {
		return config.TimeZone
	}
	return time.UTC
}

func (c *AvailabilityController) getSlots(ctx *gin.Context) {
	requestID := uuid.New()
	tenantID := ctx.Param("tenantId")
	serviceID := ctx.Query("serviceId")
	selectedDate := ctx.Query("date")

	// An absent date is a valid "nothing selected yet" state and yields
	// an empty list, but a malformed one is a client bug
	if selectedDate != "" {
		if _, err := time.Parse(utils.DayKeyLayout, selectedDate); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format, expected YYYY-MM-DD"})
			return
		}
	}

	c.logger.Debug("http.slots.requested", out.LogFields{
		"requestId":    requestID,
		"tenantId":     tenantID,
		"serviceId":    serviceID,
		"selectedDate": selectedDate,
	})

	slots, debugInfo, err := c.useCase.GetBookableSlots(ctx.Request.Context(), tenantID, serviceID, selectedDate)
	if err != nil {
		c.logger.Error("http.slots.failed", out.LogFields{
			"requestId": requestID,
			"tenantId":  tenantID,
			"error":     err.Error(),
		})
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	response := gin.H{
		"tenantId":  tenantID,
		"serviceId": serviceID,
		"date":      selectedDate,
		"slots":     c.renderSlots(slots),
	}
	if ctx.Query("debug") == "true" {
		response["debug"] = debugInfo
	}

	ctx.JSON(http.StatusOK, response)
}

func (c *AvailabilityController) getAvailability(ctx *gin.Context) {
	requestID := uuid.New()
	tenantID := ctx.Param("tenantId")
	serviceID := ctx.Query("serviceId")

	c.logger.Debug("http.availability.requested", out.LogFields{
		"requestId": requestID,
		"tenantId":  tenantID,
		"serviceId": serviceID,
	})

	calendar, debugInfo, err := c.useCase.GetAvailability(ctx.Request.Context(), tenantID, serviceID)
	if err != nil {
		c.logger.Error("http.availability.failed", out.LogFields{
			"requestId": requestID,
			"tenantId":  tenantID,
			"error":     err.Error(),
		})
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	response := gin.H{
		"tenantId":     tenantID,
		"serviceId":    serviceID,
		"availability": calendar,
	}
	if ctx.Query("debug") == "true" {
		response["debug"] = debugInfo
	}

	ctx.JSON(http.StatusOK, response)
}

func (c *AvailabilityController) invalidateCache(ctx *gin.Context) {
	tenantID := ctx.Param("tenantId")

	c.useCase.InvalidateCalendarCache(ctx.Request.Context(), tenantID)

	ctx.JSON(http.StatusOK, gin.H{
		"tenantId":    tenantID,
		"invalidated": true,
	})
}

func (c *AvailabilityController) renderSlots(slots []domain.TimeSlot) []SlotResponse {
	loc := c.location()

	rendered := make([]SlotResponse, 0, len(slots))
	for _, slot := range slots {
		item := SlotResponse{
			StartTime: slot.StartTime.Date,
			EndTime:   slot.EndTime.Date,
		}
		item.Display.Time = availability_service.FormatClockTime(slot.StartTime.Date, loc)
		item.Display.Date = availability_service.FormatLongDate(slot.StartTime.Date, loc)
		rendered = append(rendered, item)
	}

	return rendered
}

func (c *AvailabilityController) basicAuth() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		username, password, hasAuth := ctx.Request.BasicAuth()
		if !hasAuth {
			ctx.Header("WWW-Authenticate", "Basic realm=Authorization Required")
			ctx.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		for _, client := range c.cfg.Auth.BasicClients {
			usernameMatch := subtle.ConstantTimeCompare([]byte(username), []byte(client.Username)) == 1
			passwordMatch := subtle.ConstantTimeCompare([]byte(password), []byte(client.Password)) == 1
			if usernameMatch && passwordMatch {
				ctx.Next()
				return
			}
		}

		ctx.Header("WWW-Authenticate", "Basic realm=Authorization Required")
		ctx.AbortWithStatus(http.StatusUnauthorized)
	}
}
