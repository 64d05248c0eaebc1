package models

// RunMode - режим работы контроллера GRBL из телеграммы статуса.
type RunMode string

const (
	ModeIdle    RunMode = "Idle"
	ModeRun     RunMode = "Run"
	ModeHold    RunMode = "Hold"
	ModeJog     RunMode = "Jog"
	ModeAlarm   RunMode = "Alarm"
	ModeCheck   RunMode = "Check"
	ModeDoor    RunMode = "Door"
	ModeHome    RunMode = "Home"
	ModeSleep   RunMode = "Sleep"
	ModeUnknown RunMode = "Unknown"
)

// ConnectionState - состояние подключения сессии.
type ConnectionState string

const (
	StateDisconnected ConnectionState = "disconnected"
	StateDetecting    ConnectionState = "detecting"
	StateConnected    ConnectionState = "connected"
)

// Position - рабочие координаты (WPos) в миллиметрах.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// MachineStatus - последнее известное состояние станка.
// Поля "липкие": телеграмма без соответствующего поля не сбрасывает значение.
type MachineStatus struct {
	Mode RunMode  `json:"mode"`
	WPos Position `json:"wpos"`
}

// StatusInfo - снимок состояния сессии для презентационного слоя.
type StatusInfo struct {
	SessionID       string          `json:"session_id"`
	State           ConnectionState `json:"state"`
	FirmwareVersion string          `json:"firmware_version"`
	Machine         MachineStatus   `json:"machine"`
	Console         []string        `json:"console"` // хвост ответов контроллера
}

// ProgressInfo - снимок прогресса передачи программы.
type ProgressInfo struct {
	JobID       string `json:"job_id,omitempty"`
	Active      bool   `json:"active"`
	TotalLines  int    `json:"total_lines"`
	LinesSent   int    `json:"lines_sent"`
	CurrentLine int    `json:"current_line"` // индекс последней отправленной строки, -1 если нет
	Percent     int    `json:"percent"`
	Elapsed     string `json:"elapsed"`
	Estimated   string `json:"estimated"` // HH:MM:SS, "Calculating..." или "--:--:--"
	CompletedIn string `json:"completed_in,omitempty"`
	LastError   string `json:"last_error,omitempty"`
}

// EnqueueResult - результат постановки программы в очередь передачи.
type EnqueueResult struct {
	JobID      string `json:"job_id"`
	TotalLines int    `json:"total_lines"`
}

// Macro - именованная быстрая команда.
type Macro struct {
	Name        string `yaml:"name" json:"name"`
	Command     string `yaml:"command" json:"command"`
	Description string `yaml:"description" json:"description,omitempty"`
}
