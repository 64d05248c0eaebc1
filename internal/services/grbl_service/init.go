// Package grbl_service реализует протокольный слой работы с контроллерами
// GRBL: пул сессий последовательных портов, обнаружение прошивки,
// ack-управляемую передачу программ, джоггинг и компиляцию растров.
package grbl_service

import (
	"sync"

	"github.com/iwtcode/grblService/internal/config"
	"github.com/iwtcode/grblService/internal/interfaces"
	"github.com/iwtcode/grblService/internal/middleware/logging"
)

// Service - единая реализация interfaces.GrblService.
type Service struct {
	cfg    *config.AppConfig
	logger *logging.Logger
	repo   interfaces.EngraveJobRepository
	raster *rasterCompiler
	macros *macroStore

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewGrblService собирает сервис: загружает макросы и готовит кэш растров.
func NewGrblService(cfg *config.AppConfig, logger *logging.Logger, repo interfaces.EngraveJobRepository) (interfaces.GrblService, error) {
	serviceLogger := logger.WithPrefix("GrblService")

	macros, err := newMacroStore(cfg.MacrosPath, serviceLogger)
	if err != nil {
		return nil, err
	}

	return &Service{
		cfg:      cfg,
		logger:   serviceLogger,
		repo:     repo,
		raster:   newRasterCompiler(serviceLogger),
		macros:   macros,
		sessions: make(map[string]*Session),
	}, nil
}
