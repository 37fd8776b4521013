package doctor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/metekarasubasi/notiva/internal/domain"
	"github.com/metekarasubasi/notiva/internal/ports"
)

// StatusSource exposes the availability registry to diagnostics.
type StatusSource interface {
	Snapshot() []domain.BackendStatus
	Cooldown() time.Duration
}

// Service runs environment diagnostics.
type Service struct {
	ConfigProvider ports.ConfigProvider
	Registry       StatusSource
	Transcript     ports.TranscriptRepository
	Clock          ports.Clock
	// Getenv resolves credential env vars; nil means os.Getenv.
	Getenv func(string) string
}

// Run executes checks and returns a report.
func (s *Service) Run(ctx context.Context) (domain.HealthReport, error) {
	var checks []domain.HealthCheck

	cfg, err := s.ConfigProvider.Load(ctx)
	if err != nil {
		checks = append(checks, fail("Config file", fmt.Sprintf("load failed: %v", err)))
		return domain.HealthReport{Checks: checks}, err
	}
	checks = append(checks, ok("Config file", fmt.Sprintf("loaded format %s", cfg.ConfigFormatVersion)))

	if err := cfg.ValidateConsistency(); err != nil {
		checks = append(checks, fail("Config values", err.Error()))
	} else {
		checks = append(checks, ok("Config values", fmt.Sprintf("mode %s, provider %s", cfg.GetRoutingMode(), cfg.GetGenerativeProvider())))
	}

	checks = append(checks, credentialChecks(cfg, s.getenv())...)

	if s.Registry != nil {
		checks = append(checks, s.cooldownChecks()...)
	}

	if s.Transcript != nil {
		if n, err := s.Transcript.Count(ctx); err != nil {
			checks = append(checks, fail("Transcript", err.Error()))
		} else {
			checks = append(checks, ok("Transcript", fmt.Sprintf("%d messages stored (%s)", n, cfg.GetTranscriptDriver())))
		}
	} else {
		checks = append(checks, warn("Transcript", "store not initialized"))
	}

	checks = append(checks, cacheDirCheck(cfg.Storage.CacheDir))

	return domain.HealthReport{Checks: checks}, nil
}

func (s *Service) getenv() func(string) string {
	if s.Getenv != nil {
		return s.Getenv
	}
	return os.Getenv
}

func credentialChecks(cfg domain.Config, getenv func(string) string) []domain.HealthCheck {
	creds := cfg.ResolveCredentials(getenv)
	var checks []domain.HealthCheck
	for _, backend := range domain.Backends {
		name := fmt.Sprintf("Credential (%s)", backend)
		switch {
		case !backend.RequiresCredential():
			checks = append(checks, ok(name, "not required"))
		case creds.For(backend) == "":
			checks = append(checks, warn(name, "missing; backend will not be routed to"))
		default:
			checks = append(checks, ok(name, "configured"))
		}
	}
	return checks
}

func (s *Service) cooldownChecks() []domain.HealthCheck {
	now := time.Now()
	if s.Clock != nil {
		now = s.Clock.Now()
	}
	cooldown := s.Registry.Cooldown()
	var checks []domain.HealthCheck
	for _, status := range s.Registry.Snapshot() {
		name := fmt.Sprintf("Backend (%s)", status.Backend)
		if status.InCooldown(now, cooldown) {
			remaining := cooldown - now.Sub(status.LastErrorTime)
			checks = append(checks, warn(name, fmt.Sprintf("cooling down for %s after %d errors", remaining.Round(time.Second), status.ErrorCount)))
			continue
		}
		if status.Available {
			checks = append(checks, ok(name, "available"))
		} else {
			checks = append(checks, warn(name, "unavailable"))
		}
	}
	return checks
}

func cacheDirCheck(dir string) domain.HealthCheck {
	if dir == "" {
		return warn("Geocode cache", "cache_dir not set; caching disabled")
	}
	info, err := os.Stat(dir)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return warn("Geocode cache", fmt.Sprintf("%s will be created on first lookup", dir))
	case err != nil:
		return fail("Geocode cache", err.Error())
	case !info.IsDir():
		return fail("Geocode cache", fmt.Sprintf("%s is not a directory", dir))
	default:
		return ok("Geocode cache", dir)
	}
}

func ok(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthOK, Details: details}
}

func warn(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthWarn, Details: details}
}

func fail(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthError, Details: details}
}
