// Package usecases связывает транспортный слой с сервисом контроллеров
// и хранилищем истории заданий.
package usecases

import (
	"github.com/iwtcode/grblService/internal/interfaces"
	"github.com/iwtcode/grblService/internal/middleware/logging"
)

type grblUsecase struct {
	service interfaces.GrblService
	repo    interfaces.EngraveJobRepository
	logger  *logging.Logger
}

func NewGrblUsecase(service interfaces.GrblService, repo interfaces.EngraveJobRepository, logger *logging.Logger) interfaces.GrblUsecase {
	return &grblUsecase{
		service: service,
		repo:    repo,
		logger:  logger.WithPrefix("GrblUsecase"),
	}
}
