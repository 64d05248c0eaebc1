package interfaces

import "github.com/iwtcode/grblService/internal/domain/entities"

// EngraveJobRepository - хранилище истории передач программ.
type EngraveJobRepository interface {
	Create(job *entities.EngraveJob) error
	// Finish фиксирует итог передачи: статус, число строк и длительность.
	Finish(jobID string, status string, linesSent int, errorText string) error
	GetAll() ([]entities.EngraveJob, error)
	GetBySessionID(sessionID string) ([]entities.EngraveJob, error)
}
