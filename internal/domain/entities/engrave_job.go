package entities

import "time"

const (
	JobStatusRunning   = "running"
	JobStatusCompleted = "completed"
	JobStatusFailed    = "failed"
	JobStatusAborted   = "aborted"
)

// EngraveJob - запись истории передачи одной программы.
type EngraveJob struct {
	JobID      string     `gorm:"primaryKey;not null" json:"job_id"`
	SessionID  string     `gorm:"not null;index" json:"session_id"`
	PortPath   string     `json:"port_path"`
	Source     string     `gorm:"not null" json:"source"` // console / raster / macro
	TotalLines int        `json:"total_lines"`
	LinesSent  int        `json:"lines_sent"`
	Status     string     `gorm:"not null" json:"status"` // running / completed / failed / aborted
	ErrorText  string     `json:"error_text,omitempty"`
	StartedAt  time.Time  `json:"started_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
	DurationMs int64      `json:"duration_ms"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}
