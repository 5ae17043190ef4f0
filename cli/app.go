package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"ahorro-energia/config"
	"ahorro-energia/logging"
	"ahorro-energia/repository"
	"ahorro-energia/service"
)

const redisPingTimeout = 2 * time.Second

// App holds the services built from one configuration.
type App struct {
	Config         config.Config
	Logger         zerolog.Logger
	Municipalities *service.MunicipalityService
	Savings        *service.SavingsService
	Comparison     *service.ComparisonService
	closers        []io.Closer
}

func (o *rootOptions) buildApp(cmd *cobra.Command) (*App, error) {
	cfg, err := config.Load(o.configPath, o.lookupEnv)
	if err != nil {
		return nil, err
	}
	if o.logLevel != "" {
		cfg.Logging.Level = o.logLevel
	}
	if o.debug {
		cfg.Logging.Level = "debug"
	}

	logger := logging.New(cfg.Logging.Level, cfg.Logging.Format, cmd.ErrOrStderr())
	return NewApp(cmd.Context(), cfg, logger)
}

// NewApp loads the municipality seed, selects the cache backend and builds
// the services.
func NewApp(ctx context.Context, cfg config.Config, logger zerolog.Logger) (*App, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	seed := repository.DefaultMunicipalities()
	if cfg.SeedFile != "" {
		loaded, err := repository.LoadSeedFile(cfg.SeedFile)
		if err != nil {
			return nil, err
		}
		seed = loaded
	}
	repo, err := repository.NewMunicipalityRepositoryMemory(seed)
	if err != nil {
		return nil, fmt.Errorf("load municipalities: %w", err)
	}

	app := &App{Config: cfg, Logger: logger}

	var cache repository.CacheRepository
	switch cfg.Cache.Backend {
	case config.CacheRedis:
		redisCache := repository.NewRedisCache(cfg.Cache.RedisAddr, cfg.Cache.KeyPrefix, cfg.Cache.TTL)
		pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
		err := redisCache.Ping(pingCtx)
		cancel()
		if err != nil {
			logger.Warn().Err(err).Str("addr", cfg.Cache.RedisAddr).Msg("redis no disponible, usando cache en memoria")
			_ = redisCache.Close()
			cache = repository.NewMemoryCache(cfg.Cache.TTL, cfg.Cache.MaxEntries)
		} else {
			cache = redisCache
			app.closers = append(app.closers, redisCache)
		}
	case config.CacheMemory:
		cache = repository.NewMemoryCache(cfg.Cache.TTL, cfg.Cache.MaxEntries)
	}

	app.Municipalities = service.NewMunicipalityService(repo, logger)
	benefits := service.NewBenefitService(service.AIOptions{
		APIKey:  cfg.AI.APIKey,
		URL:     cfg.AI.URL,
		Model:   cfg.AI.Model,
		Timeout: cfg.AI.Timeout,
	}, logger)
	app.Savings = service.NewSavingsService(app.Municipalities, cache, benefits, service.ComputeOptions{
		IncludeCO2:     cfg.Savings.IncludeCO2,
		EmissionFactor: cfg.Savings.EmissionFactor,
	}, logger)
	app.Comparison = service.NewComparisonService(app.Municipalities, app.Savings, logger)

	logger.Debug().
		Int("municipios", len(app.Municipalities.AllKeys())).
		Str("cache", cfg.Cache.Backend).
		Bool("co2", cfg.Savings.IncludeCO2).
		Msg("aplicación inicializada")

	return app, nil
}

// Close releases external connections.
func (a *App) Close() error {
	var first error
	for _, c := range a.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	a.closers = nil
	return first
}
