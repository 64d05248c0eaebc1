package grbl_service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/iwtcode/grblService/internal/domain/entities"
	"github.com/iwtcode/grblService/internal/domain/models"
	apperrors "github.com/iwtcode/grblService/pkg/errors"
)

// ListPorts возвращает кандидатов последовательных портов на хосте.
func (s *Service) ListPorts() []string {
	return ListSerialPorts()
}

// CreateConnection открывает порт, проводит обнаружение контроллера и
// регистрирует сессию в пуле. При любой ошибке порт освобождается.
func (s *Service) CreateConnection(ctx context.Context, req *models.ConnectionRequest) (*models.ConnectionInfo, error) {
	transport, err := OpenSerial(req.PortPath, s.cfg.Serial.Baud)
	if err != nil {
		s.logger.Error("Failed to open serial port", "port", req.PortPath, "error", err)
		return nil, err
	}

	sessionID := uuid.New().String()
	session := newSession(sessionID, req.PortPath, transport, s.cfg.Serial, s.logger, s.recordJobResult)

	timeout := time.Duration(s.cfg.Serial.DetectTimeoutMs) * time.Millisecond
	if _, err := session.Detect(ctx, timeout); err != nil {
		s.logger.Warn("Controller detection failed", "port", req.PortPath, "error", err)
		_ = session.Close()
		return nil, err
	}

	s.mu.Lock()
	s.sessions[sessionID] = session
	poolSize := len(s.sessions)
	s.mu.Unlock()

	s.logger.Info("Session registered", "session_id", sessionID, "port", req.PortPath, "pool_size", poolSize)
	return session.Info(), nil
}

// GetAllConnections возвращает снимки всех активных сессий.
func (s *Service) GetAllConnections() []*models.ConnectionInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	infos := make([]*models.ConnectionInfo, 0, len(s.sessions))
	for _, session := range s.sessions {
		infos = append(infos, session.Info())
	}
	return infos
}

// DeleteConnection закрывает сессию и убирает ее из пула.
func (s *Service) DeleteConnection(sessionID string) error {
	s.mu.Lock()
	session, ok := s.sessions[sessionID]
	if ok {
		delete(s.sessions, sessionID)
	}
	s.mu.Unlock()

	if !ok {
		return apperrors.ErrSessionNotFound
	}

	if err := session.Close(); err != nil {
		s.logger.Warn("Error while closing session", "session_id", sessionID, "error", err)
	}
	s.logger.Info("Session closed", "session_id", sessionID)
	return nil
}

// CloseAll закрывает все сессии. Вызывается при остановке приложения.
func (s *Service) CloseAll() {
	s.mu.Lock()
	sessions := make([]*Session, 0, len(s.sessions))
	for _, session := range s.sessions {
		sessions = append(sessions, session)
	}
	s.sessions = make(map[string]*Session)
	s.mu.Unlock()

	for _, session := range sessions {
		_ = session.Close()
	}
	if len(sessions) > 0 {
		s.logger.Info("All sessions closed", "count", len(sessions))
	}
}

func (s *Service) session(sessionID string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, apperrors.ErrSessionNotFound
	}
	return session, nil
}

// recordJobResult фиксирует итог передачи в истории. Ошибки хранилища не
// влияют на протокольный слой, только попадают в лог.
func (s *Service) recordJobResult(jobID, status string, linesSent int, errText string) {
	if s.repo == nil {
		return
	}
	if err := s.repo.Finish(jobID, status, linesSent, errText); err != nil {
		s.logger.Error("Failed to record job result", "job_id", jobID, "error", err)
	}
}

// createJobRecord заводит запись истории при постановке программы в очередь.
func (s *Service) createJobRecord(jobID, sessionID, portPath, source string, totalLines int) {
	if s.repo == nil {
		return
	}
	job := &entities.EngraveJob{
		JobID:      jobID,
		SessionID:  sessionID,
		PortPath:   portPath,
		Source:     source,
		TotalLines: totalLines,
		Status:     entities.JobStatusRunning,
		StartedAt:  time.Now(),
	}
	if err := s.repo.Create(job); err != nil {
		s.logger.Error("Failed to create job record", "job_id", jobID, "error", err)
	}
}
