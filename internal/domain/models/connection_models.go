package models

import "time"

// ConnectionRequest определяет структуру для нового запроса на подключение.
type ConnectionRequest struct {
	PortPath string `json:"port_path" binding:"required"` // "/dev/ttyUSB0"
}

// SessionRequest определяет структуру для запросов, использующих SessionID.
type SessionRequest struct {
	SessionID string `json:"session_id" binding:"required"`
}

// ConnectionInfo представляет активное подключение в пуле.
type ConnectionInfo struct {
	SessionID       string          `json:"session_id"`
	PortPath        string          `json:"port_path"`
	FirmwareVersion string          `json:"firmware_version"`
	State           ConnectionState `json:"state"`
	CreatedAt       time.Time       `json:"created_at"`
}
