package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/pricebook/backend/internal/domain/pricebook"
	"github.com/pricebook/backend/internal/infrastructure/config"
	"github.com/pricebook/backend/internal/infrastructure/logger"
	"github.com/pricebook/backend/internal/infrastructure/persistence"
	"github.com/pricebook/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// Open builds the snapshot store selected by cfg.Storage.Driver.
func Open(ctx context.Context, cfg *config.Config, log *zap.Logger) (pricebook.SnapshotStore, error) {
	switch cfg.Storage.Driver {
	case "memory":
		return NewMemoryStore(), nil
	case "bolt":
		return NewBoltStore(cfg.Storage.BoltPath, cfg.Storage.Bucket)
	case "sqlite":
		db, err := persistence.NewSQLiteDatabase(cfg.Storage.SQLite, gormLogger(cfg, log))
		if err != nil {
			return nil, err
		}
		return openSQL(db, "sqlite", cfg, log)
	case "postgres":
		db, err := persistence.NewPostgresDatabase(&cfg.Database, gormLogger(cfg, log))
		if err != nil {
			return nil, err
		}
		return openSQL(db, "postgresql", cfg, log)
	case "redis":
		return NewRedisStore(ctx, RedisConfig{
			Addr:      cfg.Redis.Addr(),
			Password:  cfg.Redis.Password,
			DB:        cfg.Redis.DB,
			KeyPrefix: cfg.Redis.KeyPrefix,
		})
	case "s3":
		store, err := NewS3Store(ctx, &cfg.S3, WithLogger(log))
		if err != nil {
			return nil, err
		}
		if err := store.EnsureBucket(ctx); err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.Storage.Driver)
	}
}

func gormLogger(cfg *config.Config, log *zap.Logger) *logger.GormLogger {
	return logger.NewGormLogger(log, logger.GormLevel(cfg.Log.Level), 200*time.Millisecond)
}

func openSQL(db *persistence.Database, system string, cfg *config.Config, log *zap.Logger) (pricebook.SnapshotStore, error) {
	tracing := telemetry.NewDBTracingPlugin(telemetry.DBTracingConfig{
		Enabled:    cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
		LogFullSQL: cfg.App.Env == "development",
		DBSystem:   system,
	}, log)
	if err := tracing.RegisterOtelGorm(db.DB); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to register database tracing: %w", err)
	}

	store := persistence.NewSQLSnapshotStore(db)
	if err := store.Migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}
