package grbl_service

import (
	"github.com/google/uuid"

	"github.com/iwtcode/grblService/internal/domain/models"
)

const (
	SourceConsole = "console"
	SourceRaster  = "raster"
	SourceMacro   = "macro"
)

// GetStatus возвращает последний разобранный статус станка и хвост консоли.
func (s *Service) GetStatus(sessionID string) (*models.StatusInfo, error) {
	session, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	return session.Status(), nil
}

// SendCommand отправляет одиночную команду вне очереди передачи.
func (s *Service) SendCommand(sessionID, command string) error {
	session, err := s.session(sessionID)
	if err != nil {
		return err
	}
	return session.SendCommand(command)
}

// EnqueueBatch ставит программу в очередь ack-управляемой передачи и
// заводит запись в истории заданий.
func (s *Service) EnqueueBatch(sessionID string, lines []string, source string) (*models.EnqueueResult, error) {
	session, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	if source == "" {
		source = SourceConsole
	}

	jobID := uuid.New().String()
	total, err := session.EnqueueBatch(jobID, lines)
	if err != nil {
		return nil, err
	}

	s.createJobRecord(jobID, sessionID, session.PortPath, source, total)
	return &models.EnqueueResult{JobID: jobID, TotalLines: total}, nil
}

// GetProgress возвращает снимок прогресса текущей или последней передачи.
func (s *Service) GetProgress(sessionID string) (*models.ProgressInfo, error) {
	session, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	progress := session.Progress()
	return &progress, nil
}

// Jog выполняет относительное перемещение.
func (s *Service) Jog(sessionID string, dx, dy, dz float64) error {
	session, err := s.session(sessionID)
	if err != nil {
		return err
	}
	return session.Jog(dx, dy, dz)
}

// SetLaserPower включает лазер с мощностью 1..1000 или выключает при 0.
func (s *Service) SetLaserPower(sessionID string, power int) error {
	session, err := s.session(sessionID)
	if err != nil {
		return err
	}
	return session.SetLaserPower(power)
}

// SetFeedRate задает скорость подачи для последующих перемещений.
func (s *Service) SetFeedRate(sessionID string, feed int) error {
	session, err := s.session(sessionID)
	if err != nil {
		return err
	}
	return session.SetFeedRate(feed)
}

// SetOrigin объявляет текущую позицию нулем рабочей системы координат.
func (s *Service) SetOrigin(sessionID string) error {
	session, err := s.session(sessionID)
	if err != nil {
		return err
	}
	return session.SetOrigin()
}

// SoftReset немедленно прерывает выполнение и очищает очередь передачи.
func (s *Service) SoftReset(sessionID string) error {
	session, err := s.session(sessionID)
	if err != nil {
		return err
	}
	return session.SoftReset()
}
