package models

// CommandRequest - одиночная команда вне очереди передачи.
type CommandRequest struct {
	SessionID string `json:"session_id" binding:"required"`
	Command   string `json:"command" binding:"required"`
}

// BatchRequest - программа для последовательной передачи с подтверждениями.
type BatchRequest struct {
	SessionID string   `json:"session_id" binding:"required"`
	Lines     []string `json:"lines" binding:"required"`
	Source    string   `json:"source"` // console / raster / macro, по умолчанию console
}

// JogRequest - относительное перемещение. Хотя бы одна из осей должна быть ненулевой.
type JogRequest struct {
	SessionID string  `json:"session_id" binding:"required"`
	DX        float64 `json:"dx"`
	DY        float64 `json:"dy"`
	DZ        float64 `json:"dz"`
}

// LaserRequest - установка мощности лазера (0 выключает лазер).
type LaserRequest struct {
	SessionID string `json:"session_id" binding:"required"`
	Power     *int   `json:"power" binding:"required"` // 0..1000
}

// FeedRequest - установка скорости подачи.
type FeedRequest struct {
	SessionID string `json:"session_id" binding:"required"`
	Rate      int    `json:"rate" binding:"required"` // 100..5000 мм/мин
}

// MacroRunRequest - запуск именованной быстрой команды.
type MacroRunRequest struct {
	SessionID string `json:"session_id" binding:"required"`
	Name      string `json:"name" binding:"required"`
}

// PreviewRequest - программа для проекции в отрезки предпросмотра.
type PreviewRequest struct {
	Lines []string `json:"lines" binding:"required"`
}

// RasterParams - параметры преобразования изображения в программу гравировки.
type RasterParams struct {
	WidthMM     float64 `form:"width_mm" json:"width_mm" binding:"required"`
	HeightMM    float64 `form:"height_mm" json:"height_mm" binding:"required"`
	PixelsPerMM int     `form:"pixels_per_mm,default=5" json:"pixels_per_mm"`
	Threshold   int     `form:"threshold,default=128" json:"threshold"`
	FeedRate    int     `form:"feed_rate,default=1000" json:"feed_rate"`
}
