package main

import (
	"context"
	"fmt"
	"time"

	"channel-pricer/internal/config"
	"channel-pricer/internal/form"
	"channel-pricer/internal/pricing"
	"channel-pricer/internal/settings"
	"channel-pricer/internal/storage"
	redisstore "channel-pricer/internal/storage/redis"
	"channel-pricer/pkg/api"
	"channel-pricer/pkg/redis"

	"go.uber.org/zap"
)

const (
	draftTTL  = 30 * 24 * time.Hour
	pingLimit = 3 * time.Second
)

type deps struct {
	store  settings.Store
	cache  *redis.Client
	closer []func()
}

func (d *deps) Close() {
	for i := len(d.closer) - 1; i >= 0; i-- {
		d.closer[i]()
	}
}

// unavailableStore stands in for a backend that could not be opened. Every
// call fails, so the manager serves defaults and logs failed saves.
type unavailableStore struct {
	err error
}

func (s unavailableStore) Load(context.Context) (settings.Settings, error) {
	return settings.Settings{}, s.err
}

func (s unavailableStore) Save(context.Context, settings.Settings) error {
	return s.err
}

func (s unavailableStore) Reset(context.Context) error {
	return s.err
}

// openDeps connects the settings store selected by SETTINGS_BACKEND and,
// when enabled, the Redis cache. A positive maxConnectWait caps how long
// Postgres is retried. An unreachable backend is logged and replaced by
// unavailableStore so a quote can still be computed.
func openDeps(ctx context.Context, cfg *config.Config, zapLogger *zap.Logger, maxConnectWait time.Duration) (*deps, error) {
	d := &deps{}

	if cfg.RedisCache || cfg.SettingsBackend == config.BackendRedis {
		d.cache = redis.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, draftTTL)
		d.closer = append(d.closer, d.cache.Close)
		pingCtx, cancel := context.WithTimeout(ctx, pingLimit)
		err := d.cache.Ping(pingCtx)
		cancel()
		if err != nil {
			zapLogger.Warn("Redis is unavailable, continuing without cache", zap.Error(err))
			d.Close()
			d.closer = nil
			d.cache = nil
		}
	}

	switch cfg.SettingsBackend {
	case config.BackendFile:
		d.store = storage.NewFileStorage(cfg.SettingsPath)
		zapLogger.Info("Using file settings store", zap.String("path", cfg.SettingsPath))

	case config.BackendRedis:
		rs := redisstore.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		d.closer = append(d.closer, rs.Close)
		d.store = rs
		zapLogger.Info("Using redis settings store", zap.String("addr", cfg.RedisAddr))

	case config.BackendPostgres:
		pgCfg := postgresConfig(cfg)
		if maxConnectWait > 0 && (pgCfg.ConnectTimeout <= 0 || pgCfg.ConnectTimeout > maxConnectWait) {
			pgCfg.ConnectTimeout = maxConnectWait
		}

		pg, err := storage.NewPostgresStorage(ctx, pgCfg, d.cache, zapLogger)
		if err != nil {
			zapLogger.Warn("PostgreSQL is unavailable, using default settings", zap.Error(err))
			d.store = unavailableStore{err: fmt.Errorf("failed to init PostgreSQL storage: %w", err)}
			break
		}
		if err := storage.RunMigrations(ctx, pg.DB(), zapLogger); err != nil {
			zapLogger.Warn("Settings migrations failed, using default settings", zap.Error(err))
			_ = pg.Close()
			d.store = unavailableStore{err: err}
			break
		}
		d.closer = append(d.closer, func() { _ = pg.Close() })
		d.store = pg

	default:
		return nil, fmt.Errorf("unknown settings backend %q", cfg.SettingsBackend)
	}

	return d, nil
}

func postgresConfig(cfg *config.Config) storage.Config {
	return storage.Config{
		Host:            cfg.DBHost,
		Port:            cfg.DBPort,
		User:            cfg.DBUser,
		Password:        cfg.DBPassword,
		DBName:          cfg.DBName,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
		ConnMaxIdleTime: cfg.DBConnMaxIdleTime,
		ConnectTimeout:  cfg.DBConnectTimeout,
	}
}

// loadCatalog returns the built-in presets merged with the remote catalog.
// A failed fetch only logs.
func loadCatalog(ctx context.Context, cfg *config.Config, zapLogger *zap.Logger) *settings.Catalog {
	catalog := settings.NewCatalog()
	if cfg.PresetsURL == "" {
		return catalog
	}

	client := api.NewClient(cfg.PresetsURL, cfg.PresetsToken, cfg.HTTPRequestTimeout, zapLogger)
	remote, err := client.GetPresets(ctx)
	if err != nil {
		zapLogger.Warn("Failed to fetch preset catalog, using built-ins", zap.Error(err))
		return catalog
	}

	presets := make([]settings.Preset, 0, len(remote))
	for _, p := range remote {
		presets = append(presets, settings.Preset{
			Key:        p.Key,
			Name:       p.Name,
			LossRate:   p.LossRate,
			RiskRate:   p.RiskRate,
			ProfitRate: p.ProfitRate,
		})
	}
	for _, err := range catalog.Merge(presets) {
		zapLogger.Warn("Skipping invalid preset", zap.Error(err))
	}

	zapLogger.Info("Preset catalog loaded", zap.Int("remote", len(presets)))
	return catalog
}

func pricingQuote(f form.Form, s settings.Settings) pricing.Quote {
	return pricing.Calculate(f.CostInput(s), s.PricingConfig())
}
