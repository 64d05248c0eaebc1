// Package sqlite содержит подключение к встраиваемой базе и репозитории
// хранения истории заданий.
package sqlite

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/iwtcode/grblService/internal/config"
	"github.com/iwtcode/grblService/internal/domain/entities"
	"github.com/iwtcode/grblService/internal/middleware/logging"
)

// NewDatabase открывает файл базы и применяет миграции схемы.
func NewDatabase(cfg *config.AppConfig, logger *logging.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(cfg.DBPath), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("не удалось открыть базу данных %s: %w", cfg.DBPath, err)
	}

	if err := db.AutoMigrate(&entities.EngraveJob{}); err != nil {
		return nil, fmt.Errorf("не удалось применить миграции: %w", err)
	}

	logger.WithPrefix("Database").Info("Database ready", "path", cfg.DBPath)
	return db, nil
}
