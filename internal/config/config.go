package config

import (
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/suchimauz/pharmacy-booking-availability/internal/core/json_types"
)

type Environment string

const (
	EnvLocal      Environment = "local"
	EnvDev        Environment = "dev"
	EnvStage      Environment = "stage"
	EnvProduction Environment = "production"
)

// TimeZone is the pharmacy's fixed operating timezone, loaded once in
// NewConfig. Slot classification and display formatting always happen
// in this zone, regardless of where the booking request originates.
var TimeZone *time.Location

type ConfigBasicClient struct {
	Username string
	Password string
}

type Config struct {
	App struct {
		Version  string      `env:"APP_VERSION" envDefault:"local"`
		Env      Environment `env:"APP_ENV" envDefault:"local"`
		Timezone string      `env:"APP_TIMEZONE" envDefault:"Pacific/Auckland"`
	}

	HTTP struct {
		Port string `env:"HTTP_SERVER_PORT" envDefault:"8080"`
		Host string `env:"HTTP_SERVER_HOST" envDefault:"localhost"`
	}

	PharmacyAPI struct {
		URL      string `env:"PHARMACY_API_URL"`
		Username string `env:"PHARMACY_API_USERNAME"`
		Password string `env:"PHARMACY_API_PASSWORD"`
	}

	Auth struct {
		BasicClientsString string `env:"AUTH_BASIC_CLIENTS" envDefault:"booking_widget:booking_widget"`
		BasicClients       []ConfigBasicClient
	}

	RabbitMQ struct {
		Enabled  bool   `env:"RABBITMQ_ENABLED"`
		URL      string `env:"RABBITMQ_URL"`
		Exchange string `env:"RABBITMQ_EXCHANGE" envDefault:"pharmacy"`
		Queue    string `env:"RABBITMQ_QUEUE" envDefault:"availability-svc.cache-hits"`
		Binding  string `env:"RABBITMQ_BINDING" envDefault:"pharmacy.availability-svc.#"`
	}

	Cache struct {
		Enabled bool `env:"CACHE_ENABLED"`
		Size    int  `env:"CACHE_SIZE" envDefault:"500"`
	}

	Booking struct {
		// How many days of availability a single upstream fetch covers
		HorizonDays int `env:"BOOKING_HORIZON_DAYS" envDefault:"28"`
	}

	Rules struct {
		DesignatedTenant       string `env:"RULES_DESIGNATED_TENANT" envDefault:"unite-pharmacy"`
		SaturdayServicesString string `env:"RULES_SATURDAY_SERVICES" envDefault:"flu-vaccination,covid-vaccination"`
		SaturdayServices       []string
	}
}

func NewConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	// Lowercase the environment for uniformity
	cfg.App.Env = Environment(strings.ToLower(string(cfg.App.Env)))

	loc, err := time.LoadLocation(cfg.App.Timezone)
	if err != nil {
		return nil, err
	}
	TimeZone = loc
	json_types.SetLocation(loc)

	// Split the basic auth clients
	if cfg.Auth.BasicClients == nil {
		cfg.Auth.BasicClients = []ConfigBasicClient{}
	}
	clientPairs := strings.Split(cfg.Auth.BasicClientsString, ",")
	for _, pair := range clientPairs {
		parts := strings.Split(pair, ":")
		if len(parts) == 2 {
			cfg.Auth.BasicClients = append(cfg.Auth.BasicClients, ConfigBasicClient{
				Username: parts[0],
				Password: parts[1],
			})
		}
	}

	// Split the Saturday service allow-list
	cfg.Rules.SaturdayServices = []string{}
	for _, service := range strings.Split(cfg.Rules.SaturdayServicesString, ",") {
		service = strings.TrimSpace(service)
		if service != "" {
			cfg.Rules.SaturdayServices = append(cfg.Rules.SaturdayServices, service)
		}
	}

	// Without RabbitMQ there is no invalidation feed, so no cache either
	if !cfg.RabbitMQ.Enabled {
		cfg.Cache.Enabled = false
	}

	return cfg, nil
}

func (c *Config) IsLocal() bool {
	return c.App.Env == EnvLocal
}

func (c *Config) IsNotLocal() bool {
	return c.App.Env == EnvDev || c.App.Env == EnvStage || c.App.Env == EnvProduction
}
