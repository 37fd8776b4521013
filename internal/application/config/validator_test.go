package config

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/metekarasubasi/notiva/internal/domain"
)

func TestValidate(t *testing.T) {
	valid := func() domain.Config {
		var cfg domain.Config
		cfg.Chat = domain.ChatSettings{HistorySize: 5, MaxAttempts: 2, BackoffBase: "1s", ErrorCooldown: "30m", Mode: "auto"}
		cfg.HTTP = domain.HTTPSettings{ConnectTimeout: "30s", ReadTimeout: "30s", WriteTimeout: "30s"}
		cfg.Backends.Weather.Endpoint = domain.DefaultWeatherEndpoint
		cfg.Storage.CacheTTL = "24h"
		cfg.Logging.Level = "info"
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*domain.Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*domain.Config) {}},
		{name: "zero config", mutate: func(c *domain.Config) { *c = domain.Config{} }},
		{name: "negative history", mutate: func(c *domain.Config) { c.Chat.HistorySize = -1 }, wantErr: "history_size"},
		{name: "bad cooldown", mutate: func(c *domain.Config) { c.Chat.ErrorCooldown = "soon" }, wantErr: "error_cooldown"},
		{name: "negative timeout", mutate: func(c *domain.Config) { c.HTTP.ReadTimeout = "-1s" }, wantErr: "read_timeout"},
		{name: "relative endpoint", mutate: func(c *domain.Config) { c.Backends.Encyclopedia.Endpoint = "wiki/summary" }, wantErr: "encyclopedia.endpoint"},
		{name: "unknown level", mutate: func(c *domain.Config) { c.Logging.Level = "loud" }, wantErr: "logging.level"},
		{name: "unknown mode", mutate: func(c *domain.Config) { c.Chat.Mode = "radio" }, wantErr: "routing mode"},
		{name: "unknown provider", mutate: func(c *domain.Config) { c.Backends.Generative.Provider = "bard" }, wantErr: "provider"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := Validate(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
