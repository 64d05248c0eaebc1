package engrave_job

import (
	"gorm.io/gorm"

	"github.com/iwtcode/grblService/internal/interfaces"
	"github.com/iwtcode/grblService/internal/middleware/logging"
)

// Repository реализует interfaces.EngraveJobRepository поверх gorm.
type Repository struct {
	db     *gorm.DB
	logger *logging.Logger
}

func NewEngraveJobRepository(db *gorm.DB, logger *logging.Logger) interfaces.EngraveJobRepository {
	return &Repository{
		db:     db,
		logger: logger.WithPrefix("EngraveJobRepo"),
	}
}
