package pkg

import (
	"context"
	"fmt"
	"time"

	"github.com/SAP-F-2025/admission-service/internal/config"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// InitDatabase opens the postgres connection described by cfg and checks that
// it is reachable
func InitDatabase(ctx context.Context, cfg *config.Config) (*gorm.DB, error) {
	logLevel := logger.Warn
	switch {
	case cfg.IsProduction():
		logLevel = logger.Error
	case cfg.LogLevel == "debug":
		logLevel = logger.Info
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database handle: %w", err)
	}
	// one connection per evaluation worker plus headroom for the writer
	sqlDB.SetMaxOpenConns(cfg.Admission.Workers + 2)

	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	return db, nil
}
