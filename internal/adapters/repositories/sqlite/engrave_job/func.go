package engrave_job

import (
	"time"

	"github.com/iwtcode/grblService/internal/domain/entities"
)

// Create заводит запись о запущенной передаче программы.
func (r *Repository) Create(job *entities.EngraveJob) error {
	if err := r.db.Create(job).Error; err != nil {
		r.logger.Error("Failed to create job record", "job_id", job.JobID, "error", err)
		return err
	}
	r.logger.Debug("Job record created", "job_id", job.JobID, "total_lines", job.TotalLines)
	return nil
}

// Finish фиксирует итог передачи: статус, число подтвержденных строк,
// текст ошибки и фактическую длительность.
func (r *Repository) Finish(jobID string, status string, linesSent int, errorText string) error {
	var job entities.EngraveJob
	if err := r.db.First(&job, "job_id = ?", jobID).Error; err != nil {
		r.logger.Error("Failed to load job record", "job_id", jobID, "error", err)
		return err
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":      status,
		"lines_sent":  linesSent,
		"error_text":  errorText,
		"finished_at": now,
		"duration_ms": now.Sub(job.StartedAt).Milliseconds(),
	}

	if err := r.db.Model(&entities.EngraveJob{}).Where("job_id = ?", jobID).Updates(updates).Error; err != nil {
		r.logger.Error("Failed to finish job record", "job_id", jobID, "error", err)
		return err
	}
	return nil
}

// GetAll возвращает историю всех передач, новые записи первыми.
func (r *Repository) GetAll() ([]entities.EngraveJob, error) {
	var jobs []entities.EngraveJob
	if err := r.db.Order("started_at DESC").Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}

// GetBySessionID возвращает историю передач одной сессии.
func (r *Repository) GetBySessionID(sessionID string) ([]entities.EngraveJob, error) {
	var jobs []entities.EngraveJob
	if err := r.db.Where("session_id = ?", sessionID).Order("started_at DESC").Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}
