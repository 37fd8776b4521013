package app

import (
	"context"
	"io"
	"os"

	"github.com/metekarasubasi/notiva/internal/application/availability"
	"github.com/metekarasubasi/notiva/internal/application/classify"
	"github.com/metekarasubasi/notiva/internal/application/doctor"
	"github.com/metekarasubasi/notiva/internal/application/history"
	"github.com/metekarasubasi/notiva/internal/application/query"
	"github.com/metekarasubasi/notiva/internal/domain"
	"github.com/metekarasubasi/notiva/internal/infrastructure/backends"
	"github.com/metekarasubasi/notiva/internal/infrastructure/cache"
	"github.com/metekarasubasi/notiva/internal/infrastructure/config"
	"github.com/metekarasubasi/notiva/internal/infrastructure/rulewatch"
	"github.com/metekarasubasi/notiva/internal/infrastructure/transcript"
	"github.com/metekarasubasi/notiva/internal/pkg/clock"
	"github.com/metekarasubasi/notiva/internal/pkg/logger"
	"github.com/metekarasubasi/notiva/internal/ports"
)

// Container wires up application services with infrastructure adapters.
type Container struct {
	Config         domain.Config
	QueryService   *query.Service
	ConfigProvider ports.ConfigProvider
	ConfigLoader   *config.FileLoader
	DoctorService  *doctor.Service
	Registry       *availability.Registry
	History        *history.Tracker
	Transcript     ports.TranscriptRepository
	Locations      *cache.LocationCache
	// RulesWatcher is nil when no rules file is configured.
	RulesWatcher *rulewatch.Watcher
	Clock        ports.Clock
	Logger       ports.Logger
}

// BuildContainer constructs the dependency graph.
func BuildContainer(ctx context.Context, verbose bool) (*Container, error) {
	cfgLoader := config.NewFileLoader("")
	cfg, err := cfgLoader.Load(ctx)
	if err != nil {
		return nil, err
	}

	level := cfg.Logging.Level
	if verbose {
		level = "debug"
	}
	log := logger.New(os.Stderr, level)

	creds, err := cfgLoader.Credentials(ctx)
	if err != nil {
		return nil, err
	}
	sysClock := clock.System{}
	registry := availability.NewRegistry(sysClock, cfg.GetErrorCooldown())
	registry.LoadCredentials(creds)

	rules, err := classify.LoadRuleBook(cfg.Chat.RulesFile)
	if err != nil {
		log.Warn("rules file unusable, using built-in rules", map[string]interface{}{
			"path":  cfg.Chat.RulesFile,
			"error": err.Error(),
		})
		rules = classify.DefaultRuleBook()
	}

	clients, err := backends.NewSet(cfg, nil)
	if err != nil {
		return nil, err
	}

	store, fallback, err := transcript.Open(cfg.GetTranscriptDriver(), cfg.Storage.TranscriptPath)
	if err != nil {
		return nil, err
	}
	if fallback {
		log.Warn("sqlite transcript unavailable, using jsonl file", map[string]interface{}{
			"path": cfg.Storage.TranscriptPath,
		})
	}

	locations := cache.NewLocationCache(cfg.Storage.CacheDir, cfg.GetCacheTTL(), cfg.GetCacheMaxEntries(), sysClock)
	tracker := history.NewTracker(cfg.GetHistorySize())

	classifier := classify.New(rules, log)
	var watcher *rulewatch.Watcher
	if cfg.Chat.RulesFile != "" {
		watcher = rulewatch.New(cfg.Chat.RulesFile, classifier.SetRules, log)
	}

	queryService := &query.Service{
		Registry:     registry,
		History:      tracker,
		Classifier:   classifier,
		Weather:      clients.Weather,
		Geocoder:     clients.Geocoder,
		Locations:    locations,
		Encyclopedia: clients.Encyclopedia,
		Generative:   clients.Generative,
		Transcript:   store,
		Clock:        sysClock,
		Sleeper:      clock.Sleeper{},
		Logger:       log,
		MaxAttempts:  cfg.GetMaxAttempts(),
		BackoffBase:  cfg.GetBackoffBase(),
		Country:      cfg.Backends.Geocoding.Country,
	}
	queryService.SetMode(cfg.GetRoutingMode())

	doctorService := &doctor.Service{
		ConfigProvider: cfgLoader,
		Registry:       registry,
		Transcript:     store,
		Clock:          sysClock,
	}

	return &Container{
		Config:         cfg,
		QueryService:   queryService,
		ConfigProvider: cfgLoader,
		ConfigLoader:   cfgLoader,
		DoctorService:  doctorService,
		Registry:       registry,
		History:        tracker,
		Transcript:     store,
		Locations:      locations,
		RulesWatcher:   watcher,
		Clock:          sysClock,
		Logger:         log,
	}, nil
}

// Close releases the rules watcher and the transcript store.
func (c *Container) Close() error {
	if c.RulesWatcher != nil {
		_ = c.RulesWatcher.Close()
	}
	if closer, ok := c.Transcript.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
