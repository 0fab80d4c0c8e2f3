package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/suchimauz/pharmacy-booking-availability/internal/config"
	"github.com/suchimauz/pharmacy-booking-availability/internal/core/ports/in"
	"github.com/suchimauz/pharmacy-booking-availability/internal/core/ports/out"
)

// CalendarListener consumes cache messages published by the pharmacy
// platform and evicts stale calendar entries, so the next request
// refetches and re-applies overrides against fresh upstream data.
type CalendarListener struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	useCase in.AvailabilityUseCase
	cfg     *config.Config
	logger  out.LoggerPort
}

type (
	CacheHitType         string
	CacheHitResourceType string
)

type CacheMessageRoutingKey struct {
	Source       string
	Receiver     string
	ResourceType CacheHitResourceType
	CacheHitType CacheHitType
}

const (
	CacheHitResourceTypeCalendar CacheHitResourceType = "calendar"
	CacheHitResourceTypeHoliday  CacheHitResourceType = "holiday"
)

const (
	CacheHitTypeStore      CacheHitType = "store"
	CacheHitTypeInvalidate CacheHitType = "invalidate"
)

// CalendarCacheMessage is the body of calendar.* messages.
type CalendarCacheMessage struct {
	TenantID string `json:"tenantId"`
}

func NewCalendarListener(useCase in.AvailabilityUseCase, cfg *config.Config, logger out.LoggerPort) (*CalendarListener, error) {
	if !cfg.RabbitMQ.Enabled {
		logger.Info("rabbitmq.disabled", out.LogFields{
			"message": "RabbitMQ is disabled, listener will not be started",
		})
		return nil, nil
	}

	conn, err := amqp.Dial(cfg.RabbitMQ.URL)
	if err != nil {
		logger.Error("rabbitmq.connect.failed", out.LogFields{
			"error": err.Error(),
			"url":   cfg.RabbitMQ.URL,
		})
		return nil, err
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		logger.Error("rabbitmq.channel.failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}

	return &CalendarListener{
		conn:    conn,
		channel: channel,
		useCase: useCase,
		cfg:     cfg,
		logger:  logger.WithModule("CalendarListener"),
	}, nil
}

func (l *CalendarListener) Start(ctx context.Context) error {
	queue, err := l.channel.QueueDeclare(
		l.cfg.RabbitMQ.Queue,
		true,  // durable
		true,  // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return err
	}
	err = l.channel.QueueBind(
		queue.Name,
		l.cfg.RabbitMQ.Binding,
		l.cfg.RabbitMQ.Exchange,
		false,
		nil,
	)
	if err != nil {
		return err
	}

	msgs, err := l.channel.Consume(
		queue.Name,
		fmt.Sprintf("availability-svc-%s", uuid.New()), // consumer
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		return err
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case msg := <-msgs:
				if err := l.processMessage(ctx, msg); err != nil {
					msg.Nack(false, true) // requeue message
					continue
				}
				msg.Ack(false)
			}
		}
	}()

	l.logger.Info("calendar.queue.started", out.LogFields{
		"queue": queue.Name,
	})

	return nil
}

func (l *CalendarListener) Stop() error {
	if l == nil || l.channel == nil {
		return nil
	}

	if err := l.channel.Close(); err != nil {
		return err
	}
	return l.conn.Close()
}

func (l *CalendarListener) processMessage(ctx context.Context, msg amqp.Delivery) error {
	routingKey, err := parseCacheMessageRoutingKey(msg.RoutingKey)
	if err != nil {
		l.logger.Warn("calendar.message.skipped", out.LogFields{
			"routingKey": msg.RoutingKey,
			"error":      err.Error(),
		})
		// Malformed keys are not retryable, ack them away
		return nil
	}

	switch routingKey.ResourceType {
	case CacheHitResourceTypeCalendar:
		return l.processCalendarMessage(ctx, routingKey, msg)
	case CacheHitResourceTypeHoliday:
		return l.processHolidayMessage(ctx, routingKey)
	default:
		return nil
	}
}

// Calendar changes only affect one tenant, both store and invalidate
// evict so the next request picks the change up.
func (l *CalendarListener) processCalendarMessage(ctx context.Context, routingKey CacheMessageRoutingKey, msg amqp.Delivery) error {
	var message CalendarCacheMessage
	if err := json.Unmarshal(msg.Body, &message); err != nil {
		return err
	}
	if message.TenantID == "" {
		return fmt.Errorf("calendar cache message without tenantId")
	}

	l.useCase.InvalidateCalendarCache(ctx, message.TenantID)

	l.logger.Info("calendar.message.invalidated", out.LogFields{
		"tenantId": message.TenantID,
		"hitType":  routingKey.CacheHitType,
	})
	return nil
}

// Holiday schedule changes cut across every tenant's calendar.
func (l *CalendarListener) processHolidayMessage(ctx context.Context, routingKey CacheMessageRoutingKey) error {
	l.useCase.InvalidateAllCalendars(ctx)

	l.logger.Info("holiday.message.invalidated", out.LogFields{
		"hitType": routingKey.CacheHitType,
	})
	return nil
}

// Example routingKey:
// pharmacy.availability-svc.calendar.store
// pharmacy.availability-svc.calendar.invalidate
// pharmacy.availability-svc.holiday.invalidate
func parseCacheMessageRoutingKey(routingKey string) (CacheMessageRoutingKey, error) {
	parts := strings.Split(routingKey, ".")

	if len(parts) < 4 {
		return CacheMessageRoutingKey{}, fmt.Errorf("invalid routing key: %s", routingKey)
	}

	return CacheMessageRoutingKey{
		Source:       parts[0],
		Receiver:     parts[1],
		ResourceType: CacheHitResourceType(parts[2]),
		CacheHitType: CacheHitType(parts[3]),
	}, nil
}
