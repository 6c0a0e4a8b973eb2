package storage

import (
	"context"
	"fmt"

	"rewardsprint/internal/config"
	"rewardsprint/internal/database"
	"rewardsprint/migrations"
)

// Open builds the backend selected by cfg.StorageDriver. SQL backends are
// migrated before they are returned.
func Open(ctx context.Context, cfg *config.Config) (Storage, error) {
	switch cfg.StorageDriver {
	case "memory":
		return NewMemoryStorage(), nil
	case "file":
		return NewFileStorage(cfg.DataDir)
	case "sqlite", "postgres", "mysql":
		db, err := database.Open(cfg.StorageDriver, database.DialectConfig{
			Path: cfg.DatabasePath,
			URL:  cfg.DatabaseURL,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		if err := db.RunMigrations(ctx, migrations.FS); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		return NewSQLStorage(db), nil
	case "redis":
		return NewRedisStorage(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	case "s3":
		return NewS3Storage(ctx, cfg.S3Endpoint, cfg.S3AccessKey, cfg.S3SecretKey, cfg.S3Bucket, cfg.S3Region)
	default:
		return nil, fmt.Errorf("unsupported storage driver: %s", cfg.StorageDriver)
	}
}
