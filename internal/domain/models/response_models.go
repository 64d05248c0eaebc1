package models

// ErrorResponse представляет стандартный ответ с ошибкой.
type ErrorResponse struct {
	Status string `json:"status" example:"error"`
	Error  struct {
		Code    int    `json:"code" example:"404"`
		Message string `json:"message" example:"Сессия не найдена"`
	} `json:"error"`
}

// MessageResponse представляет стандартный успешный ответ с сообщением.
type MessageResponse struct {
	Status  string `json:"status" example:"ok"`
	Message string `json:"message" example:"Command sent successfully"`
}

// CreateConnectionResponse представляет ответ при успешном подключении к контроллеру.
type CreateConnectionResponse struct {
	Status         string          `json:"status" example:"ok"`
	ConnectionInfo *ConnectionInfo `json:"connection_info"`
}

// GetConnectionsResponse представляет ответ со списком всех подключений.
type GetConnectionsResponse struct {
	Status      string            `json:"status" example:"ok"`
	PoolSize    int               `json:"pool_size" example:"1"`
	Connections []*ConnectionInfo `json:"connections"`
}

// PortsResponse представляет список обнаруженных последовательных портов.
type PortsResponse struct {
	Status string   `json:"status" example:"ok"`
	Ports  []string `json:"ports"`
}

// ProgramResponse представляет скомпилированную программу гравировки.
type ProgramResponse struct {
	Status     string   `json:"status" example:"ok"`
	TotalLines int      `json:"total_lines" example:"2502"`
	Lines      []string `json:"lines"`
}
