package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"channel-pricer/internal/settings"
	"channel-pricer/pkg/redis"

	"github.com/cenkalti/backoff/v4"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

type Config struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	ConnectTimeout  time.Duration
}

const settingsCacheKey = "pricer:settings:pg"

// PostgresStorage keeps the settings record in a single-row table. When a
// Redis client is given, reads go through it as a cache.
type PostgresStorage struct {
	db     *sqlx.DB
	cache  *redis.Client
	logger *zap.Logger
}

type settingsRow struct {
	LossRate     *float64 `db:"loss_rate"`
	RiskRate     *float64 `db:"risk_rate"`
	ProfitRate   *float64 `db:"profit_rate"`
	TargetPrice  *float64 `db:"target_price"`
	TaxRate      *float64 `db:"tax_rate"`
	GrabAdFee    *float64 `db:"grab_ad_fee"`
	ShopeeAdFee  *float64 `db:"shopee_ad_fee"`
	OfflineAdFee *float64 `db:"offline_ad_fee"`
	PriceStyle   *string  `db:"price_style"`
	PricingMode  *string  `db:"pricing_mode"`
	IsDetailMode *bool    `db:"is_detail_mode"`
}

func (r settingsRow) patch() settings.Patch {
	return settings.Patch{
		LossRate:     r.LossRate,
		RiskRate:     r.RiskRate,
		ProfitRate:   r.ProfitRate,
		TargetPrice:  r.TargetPrice,
		TaxRate:      r.TaxRate,
		GrabAdFee:    r.GrabAdFee,
		ShopeeAdFee:  r.ShopeeAdFee,
		OfflineAdFee: r.OfflineAdFee,
		PriceStyle:   r.PriceStyle,
		PricingMode:  r.PricingMode,
		IsDetailMode: r.IsDetailMode,
	}
}

func NewPostgresStorage(ctx context.Context, cfg Config, cache *redis.Client, logger *zap.Logger) (*PostgresStorage, error) {
	const operation = "storage.NewPostgresStorage"

	connStr := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		cfg.Host,
		cfg.Port,
		cfg.User,
		cfg.Password,
		cfg.DBName,
	)

	var db *sqlx.DB
	var err error

	retryPolicy := backoff.NewExponentialBackOff()
	retryPolicy.MaxElapsedTime = cfg.ConnectTimeout
	if retryPolicy.MaxElapsedTime <= 0 {
		retryPolicy.MaxElapsedTime = 2 * time.Minute
	}
	retryPolicy.MaxInterval = 15 * time.Second

	connectCtx, cancel := context.WithTimeout(ctx, retryPolicy.MaxElapsedTime)
	defer cancel()

	logger.Info("Connecting to PostgreSQL...")

	err = backoff.RetryNotify(
		func() error {
			db, err = sqlx.ConnectContext(connectCtx, "postgres", connStr)
			if err != nil {
				return fmt.Errorf("connect: %w", err)
			}

			if err = db.PingContext(connectCtx); err != nil {
				_ = db.Close()
				return fmt.Errorf("ping: %w", err)
			}
			return nil
		},
		backoff.WithContext(retryPolicy, connectCtx),
		func(err error, duration time.Duration) {
			logger.Warn("PostgreSQL connection failed, retrying...",
				zap.Error(err),
				zap.Duration("next_attempt_in", duration))
		},
	)

	if err != nil {
		return nil, fmt.Errorf("%s: failed to connect after retries: %w", operation, err)
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	logger.Info("Successfully connected to PostgreSQL")
	return &PostgresStorage{
		db:     db,
		cache:  cache,
		logger: logger,
	}, nil
}

// DB exposes the underlying handle for migrations.
func (s *PostgresStorage) DB() *sql.DB {
	return s.db.DB
}

func (s *PostgresStorage) Load(ctx context.Context) (settings.Settings, error) {
	const operation = "storage.PostgresStorage.Load"

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, settingsCacheKey)
		if err == nil {
			var p settings.Patch
			if err := json.Unmarshal(cached, &p); err == nil {
				return settings.FromStored(p), nil
			}
		} else if !errors.Is(err, redis.ErrNotFound) {
			s.logger.Debug("Settings cache unavailable", zap.Error(err))
		}
	}

	const query = `
        SELECT loss_rate, risk_rate, profit_rate, target_price, tax_rate,
               grab_ad_fee, shopee_ad_fee, offline_ad_fee,
               price_style, pricing_mode, is_detail_mode
        FROM settings
        WHERE id = 1
    `

	var row settingsRow
	err := s.db.GetContext(ctx, &row, query)
	if errors.Is(err, sql.ErrNoRows) {
		return settings.Defaults(), nil
	}
	if err != nil {
		return settings.Settings{}, fmt.Errorf("%s: failed to get settings: %w", operation, err)
	}

	p := row.patch()
	if s.cache != nil {
		if data, err := json.Marshal(p); err == nil {
			if err := s.cache.SetTTL(ctx, settingsCacheKey, data, time.Hour); err != nil {
				s.logger.Debug("Failed to cache settings", zap.Error(err))
			}
		}
	}

	return settings.FromStored(p), nil
}

func (s *PostgresStorage) Save(ctx context.Context, st settings.Settings) error {
	const operation = "storage.PostgresStorage.Save"

	const query = `
        INSERT INTO settings (
            id, loss_rate, risk_rate, profit_rate, target_price, tax_rate,
            grab_ad_fee, shopee_ad_fee, offline_ad_fee,
            price_style, pricing_mode, is_detail_mode, updated_at
        ) VALUES (1, :loss_rate, :risk_rate, :profit_rate, :target_price, :tax_rate,
            :grab_ad_fee, :shopee_ad_fee, :offline_ad_fee,
            :price_style, :pricing_mode, :is_detail_mode, NOW())
        ON CONFLICT (id) DO UPDATE SET
            loss_rate      = EXCLUDED.loss_rate,
            risk_rate      = EXCLUDED.risk_rate,
            profit_rate    = EXCLUDED.profit_rate,
            target_price   = EXCLUDED.target_price,
            tax_rate       = EXCLUDED.tax_rate,
            grab_ad_fee    = EXCLUDED.grab_ad_fee,
            shopee_ad_fee  = EXCLUDED.shopee_ad_fee,
            offline_ad_fee = EXCLUDED.offline_ad_fee,
            price_style    = EXCLUDED.price_style,
            pricing_mode   = EXCLUDED.pricing_mode,
            is_detail_mode = EXCLUDED.is_detail_mode,
            updated_at     = NOW()
    `

	if _, err := s.db.NamedExecContext(ctx, query, st); err != nil {
		return fmt.Errorf("%s: failed to save settings: %w", operation, err)
	}

	s.invalidateCache(ctx)
	return nil
}

func (s *PostgresStorage) Reset(ctx context.Context) error {
	const operation = "storage.PostgresStorage.Reset"

	if _, err := s.db.ExecContext(ctx, `DELETE FROM settings WHERE id = 1`); err != nil {
		return fmt.Errorf("%s: failed to delete settings: %w", operation, err)
	}

	s.invalidateCache(ctx)
	return nil
}

func (s *PostgresStorage) invalidateCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, settingsCacheKey); err != nil {
		s.logger.Warn("Failed to invalidate settings cache", zap.Error(err))
	}
}

func (s *PostgresStorage) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

var _ settings.Store = (*PostgresStorage)(nil)
