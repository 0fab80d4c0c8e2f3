package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/suchimauz/pharmacy-booking-availability/internal/adapters/in/http"
	"github.com/suchimauz/pharmacy-booking-availability/internal/adapters/in/rabbitmq"
	"github.com/suchimauz/pharmacy-booking-availability/internal/adapters/out/cache"
	"github.com/suchimauz/pharmacy-booking-availability/internal/adapters/out/logger"
	"github.com/suchimauz/pharmacy-booking-availability/internal/adapters/out/pharmacy"
	"github.com/suchimauz/pharmacy-booking-availability/internal/config"
	"github.com/suchimauz/pharmacy-booking-availability/internal/core/domain"
	"github.com/suchimauz/pharmacy-booking-availability/internal/core/ports/out"
	"github.com/suchimauz/pharmacy-booking-availability/internal/core/services/availability_service"
)

func main() {
	// A local .env is optional, environment variables win
	_ = godotenv.Load()

	cfg, err := config.NewConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	mainLogger, err := logger.NewConsoleLogger(cfg.App.Timezone)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	logger := mainLogger.WithModule("Main")

	logger.Info("app.starting", out.LogFields{
		"version":          cfg.App.Version,
		"env":              cfg.App.Env,
		"timezone":         cfg.App.Timezone,
		"designatedTenant": cfg.Rules.DesignatedTenant,
		"rabbitmqEnabled":  cfg.RabbitMQ.Enabled,
		"cacheEnabled":     cfg.Cache.Enabled,
	})

	if cfg.IsNotLocal() {
		gin.SetMode(gin.ReleaseMode)
	}

	rules := &domain.RuleSet{
		Location: config.TimeZone,
		Holidays: domain.DefaultHolidaySchedule(cfg.Rules.DesignatedTenant),
		Tenants: domain.TenantRules{
			Designated:       cfg.Rules.DesignatedTenant,
			LunchWindows:     domain.DefaultLunchWindows(),
			SaturdayServices: cfg.Rules.SaturdayServices,
		},
	}

	pharmacyAdapter := pharmacy.NewPharmacyAdapter(cfg, logger.WithModule("PharmacyAdapter"))

	var cachePort out.CachePort
	if cfg.Cache.Enabled {
		cacheAdapter, err := cache.NewCacheAdapter(cfg, logger.WithModule("CacheAdapter"))
		if err != nil {
			logger.Error("app.cache.init_failed", out.LogFields{
				"error": err.Error(),
			})
			os.Exit(1)
		}
		cachePort = cacheAdapter
	}

	availabilityService := availability_service.NewAvailabilityService(
		pharmacyAdapter,
		cachePort,
		logger.WithModule("AvailabilityService"),
		cfg,
		rules,
	)

	router := gin.Default()
	controller := http.NewAvailabilityController(
		availabilityService,
		cfg,
		logger.WithModule("HttpController"),
	)
	controller.RegisterRoutes(router)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.RabbitMQ.Enabled {
		listener, err := rabbitmq.NewCalendarListener(
			availabilityService,
			cfg,
			logger.WithModule("RabbitMQListener"),
		)
		if err != nil {
			logger.Error("app.rabbitmq.init_failed", out.LogFields{
				"error": err.Error(),
			})
			os.Exit(1)
		}

		if err := listener.Start(ctx); err != nil {
			logger.Error("app.rabbitmq.start_failed", out.LogFields{
				"error": err.Error(),
			})
			os.Exit(1)
		}

		defer func() {
			if err := listener.Stop(); err != nil {
				logger.Error("app.rabbitmq.stop_failed", out.LogFields{
					"error": err.Error(),
				})
			}
		}()
	}

	// Cached calendars are anchored to "today", sweep them when the local
	// day rolls over
	if cfg.Cache.Enabled {
		scheduler := cron.New(cron.WithLocation(config.TimeZone))
		_, err := scheduler.AddFunc("0 0 * * *", func() {
			logger.Info("app.cache.midnight_sweep", out.LogFields{})
			availabilityService.InvalidateAllCalendars(ctx)
		})
		if err != nil {
			logger.Error("app.cron.init_failed", out.LogFields{
				"error": err.Error(),
			})
			os.Exit(1)
		}
		scheduler.Start()
		defer scheduler.Stop()
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info("app.http.starting", out.LogFields{
			"host": cfg.HTTP.Host,
			"port": cfg.HTTP.Port,
		})

		if err := router.Run(cfg.HTTP.Host + ":" + cfg.HTTP.Port); err != nil {
			logger.Error("app.http.failed", out.LogFields{
				"error": err.Error(),
			})
			sigChan <- syscall.SIGTERM
		}
	}()

	sig := <-sigChan
	logger.Info("app.shutdown.initiated", out.LogFields{
		"signal": sig.String(),
	})

	if cfg.IsLocal() {
		logger.Debug("app.config.debug", out.LogFields{
			"config": map[string]interface{}{
				"http": map[string]string{
					"host": cfg.HTTP.Host,
					"port": cfg.HTTP.Port,
				},
				"pharmacyApi": map[string]string{
					"url":      cfg.PharmacyAPI.URL,
					"username": cfg.PharmacyAPI.Username,
				},
				"rabbitmq": map[string]interface{}{
					"enabled": cfg.RabbitMQ.Enabled,
					"url":     cfg.RabbitMQ.URL,
					"queue":   cfg.RabbitMQ.Queue,
				},
				"cache": map[string]interface{}{
					"enabled": cfg.Cache.Enabled,
					"size":    cfg.Cache.Size,
				},
				"rules": map[string]interface{}{
					"designatedTenant": cfg.Rules.DesignatedTenant,
					"saturdayServices": cfg.Rules.SaturdayServices,
					"horizonDays":      cfg.Booking.HorizonDays,
				},
			},
		})
	}
}
