package doctor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/metekarasubasi/notiva/internal/domain"
)

type stubConfig struct {
	cfg domain.Config
	err error
}

func (s stubConfig) Load(context.Context) (domain.Config, error) { return s.cfg, s.err }

type stubRegistry struct {
	statuses []domain.BackendStatus
}

func (s stubRegistry) Snapshot() []domain.BackendStatus { return s.statuses }
func (s stubRegistry) Cooldown() time.Duration          { return 30 * time.Minute }

type stubClock struct{ now time.Time }

func (c stubClock) Now() time.Time { return c.now }

type stubTranscript struct {
	count int
	err   error
}

func (s stubTranscript) Insert(context.Context, domain.Message) error { return nil }
func (s stubTranscript) List(context.Context, int) ([]domain.Message, error) {
	return nil, nil
}
func (s stubTranscript) Clear(context.Context) error        { return nil }
func (s stubTranscript) Count(context.Context) (int, error) { return s.count, s.err }

func find(t *testing.T, report domain.HealthReport, name string) domain.HealthCheck {
	t.Helper()
	for _, check := range report.Checks {
		if check.Name == name {
			return check
		}
	}
	t.Fatalf("check %q not found in %+v", name, report.Checks)
	return domain.HealthCheck{}
}

func TestRun_ConfigLoadFailure(t *testing.T) {
	svc := &Service{ConfigProvider: stubConfig{err: errors.New("boom")}}

	report, err := svc.Run(context.Background())

	require.Error(t, err)
	assert.True(t, report.Failed())
}

func TestRun_ReportsCredentialsCooldownAndStorage(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	cfg := domain.Config{ConfigFormatVersion: "1"}
	cfg.Credentials.WeatherAPIKey = "wx"
	cfg.Storage.CacheDir = t.TempDir()

	svc := &Service{
		ConfigProvider: stubConfig{cfg: cfg},
		Registry: stubRegistry{statuses: []domain.BackendStatus{
			{Backend: domain.BackendWeather, HasCredential: true, Available: true},
			{Backend: domain.BackendEncyclopedia, HasRecentError: true, LastErrorTime: now.Add(-10 * time.Minute), ErrorCount: 1},
			{Backend: domain.BackendGenerativeChat},
		}},
		Transcript: stubTranscript{count: 7},
		Clock:      stubClock{now: now},
		Getenv:     func(string) string { return "" },
	}

	report, err := svc.Run(context.Background())
	require.NoError(t, err)
	assert.False(t, report.Failed())

	assert.Equal(t, domain.HealthOK, find(t, report, "Credential (weather)").Status)
	assert.Equal(t, domain.HealthOK, find(t, report, "Credential (encyclopedia)").Status)
	assert.Equal(t, domain.HealthWarn, find(t, report, "Credential (generative)").Status)

	cooling := find(t, report, "Backend (encyclopedia)")
	assert.Equal(t, domain.HealthWarn, cooling.Status)
	assert.Contains(t, cooling.Details, "20m0s")

	assert.Contains(t, find(t, report, "Transcript").Details, "7 messages")
	assert.Equal(t, domain.HealthOK, find(t, report, "Geocode cache").Status)
}

func TestRun_InvalidValuesAndBrokenTranscript(t *testing.T) {
	cfg := domain.Config{}
	cfg.Chat.Mode = "sideways"

	svc := &Service{
		ConfigProvider: stubConfig{cfg: cfg},
		Transcript:     stubTranscript{err: errors.New("database is locked")},
	}

	report, err := svc.Run(context.Background())
	require.NoError(t, err)
	assert.True(t, report.Failed())
	assert.Equal(t, domain.HealthError, find(t, report, "Config values").Status)
	assert.Equal(t, domain.HealthError, find(t, report, "Transcript").Status)
	assert.Equal(t, domain.HealthWarn, find(t, report, "Geocode cache").Status)
}
