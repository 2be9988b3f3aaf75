package config

import (
	"errors"
	"testing"
)

func validConfig() Config {
	return Config{
		Port:         8080,
		LogLevel:     "info",
		MaxPages:     10,
		EverclearURL: "https://scan.everclear.org/api/v2/addresses",
		TronscanURL:  "https://apilist.tronscanapi.com/api/account/resourcev2",
		MayanURL:     "https://price-api.mayan.finance/v3/quote",
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"port zero", func(c *Config) { c.Port = 0 }, true},
		{"port too large", func(c *Config) { c.Port = 70000 }, true},
		{"max pages zero", func(c *Config) { c.MaxPages = 0 }, true},
		{"empty everclear url", func(c *Config) { c.EverclearURL = "" }, true},
		{"empty tronscan url", func(c *Config) { c.TronscanURL = "" }, true},
		{"empty mayan url", func(c *Config) { c.MayanURL = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("error %v is not ErrInvalidConfig", err)
			}
		})
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Port != 8080 {
		t.Errorf("default port = %d, want 8080", cfg.Port)
	}
	if cfg.MaxPages != 10 {
		t.Errorf("default max pages = %d, want 10", cfg.MaxPages)
	}
	if cfg.EverclearURL == "" || cfg.TronscanURL == "" || cfg.MayanURL == "" {
		t.Error("default integration URLs should be populated")
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("FININT_PORT", "9090")
	t.Setenv("FININT_MAX_PAGES", "3")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Port != 9090 {
		t.Errorf("port = %d, want 9090", cfg.Port)
	}
	if cfg.MaxPages != 3 {
		t.Errorf("max pages = %d, want 3", cfg.MaxPages)
	}
}

func TestLoad_InvalidEnv(t *testing.T) {
	t.Setenv("FININT_PORT", "0")

	if _, err := Load(); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Load() error = %v, want ErrInvalidConfig", err)
	}
}
