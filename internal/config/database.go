package config

import (
	"context"
	"fmt"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"alfredoptarigan/cv-screener/internal/models"
)

// InitDatabase opens the candidate store, sizes its pool, checks that the
// server answers and migrates the schema.
func InitDatabase(ctx context.Context, cfg *Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.GetDatabaseDSN()), &gorm.Config{
		Logger: logger.Default.LogMode(gormLogLevel(cfg.Server.Env)),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.Database.MaxConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.MaxConnLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.Database.MaxConnIdleTime)

	pingCtx, cancel := context.WithTimeout(ctx, cfg.Database.HealthTimeout)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("database health check failed: %w", err)
	}

	log.Println("✅ Database connected successfully")

	if err := db.WithContext(ctx).AutoMigrate(&models.Candidate{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	log.Println("✅ Database migration completed")

	return db, nil
}

func gormLogLevel(env string) logger.LogLevel {
	switch env {
	case "development":
		return logger.Warn
	case "debug":
		return logger.Info
	}
	return logger.Silent
}
