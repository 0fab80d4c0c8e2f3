package config

import "testing"

func TestNewConfigDefaults(t *testing.T) {
	cfg, err := NewConfig()
	if err != nil {
		t.Fatalf("NewConfig error: %v", err)
	}

	if cfg.App.Timezone != "Pacific/Auckland" {
		t.Fatalf("expected default timezone Pacific/Auckland, got %s", cfg.App.Timezone)
	}
	if TimeZone == nil || TimeZone.String() != "Pacific/Auckland" {
		t.Fatalf("expected TimeZone to be loaded, got %v", TimeZone)
	}
	if cfg.Rules.DesignatedTenant != "unite-pharmacy" {
		t.Fatalf("unexpected designated tenant: %s", cfg.Rules.DesignatedTenant)
	}
	if len(cfg.Rules.SaturdayServices) != 2 {
		t.Fatalf("expected 2 Saturday services, got %v", cfg.Rules.SaturdayServices)
	}
	if cfg.Booking.HorizonDays != 28 {
		t.Fatalf("expected 28 day horizon, got %d", cfg.Booking.HorizonDays)
	}
}

func TestNewConfigCacheRequiresRabbit(t *testing.T) {
	t.Setenv("CACHE_ENABLED", "true")
	t.Setenv("RABBITMQ_ENABLED", "false")

	cfg, err := NewConfig()
	if err != nil {
		t.Fatalf("NewConfig error: %v", err)
	}
	if cfg.Cache.Enabled {
		t.Fatalf("expected cache to be forced off without RabbitMQ")
	}
}

func TestNewConfigBasicClients(t *testing.T) {
	t.Setenv("AUTH_BASIC_CLIENTS", "widget:s3cret,kiosk:pa55,malformed")

	cfg, err := NewConfig()
	if err != nil {
		t.Fatalf("NewConfig error: %v", err)
	}
	if len(cfg.Auth.BasicClients) != 2 {
		t.Fatalf("expected 2 parsed clients, got %d", len(cfg.Auth.BasicClients))
	}
	if cfg.Auth.BasicClients[1].Username != "kiosk" || cfg.Auth.BasicClients[1].Password != "pa55" {
		t.Fatalf("unexpected client: %+v", cfg.Auth.BasicClients[1])
	}
}

func TestNewConfigBadTimezone(t *testing.T) {
	t.Setenv("APP_TIMEZONE", "Pacific/Nowhere")

	if _, err := NewConfig(); err == nil {
		t.Fatalf("expected error for unknown timezone")
	}
}
