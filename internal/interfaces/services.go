package interfaces

import (
	"context"

	"github.com/iwtcode/grblService/internal/domain/models"
	"github.com/iwtcode/grblService/pkg/engrave"
)

// ConnectionManager управляет пулом сессий последовательных портов.
type ConnectionManager interface {
	// ListPorts возвращает пути кандидатов последовательных портов на хосте.
	ListPorts() []string
	// CreateConnection открывает порт, проводит обнаружение контроллера и
	// регистрирует сессию в пуле.
	CreateConnection(ctx context.Context, req *models.ConnectionRequest) (*models.ConnectionInfo, error)
	// GetAllConnections возвращает снимки всех активных сессий.
	GetAllConnections() []*models.ConnectionInfo
	// DeleteConnection закрывает сессию и освобождает порт.
	DeleteConnection(sessionID string) error
	// CloseAll закрывает все сессии при остановке сервиса.
	CloseAll()
}

// CommandStreamer передает команды контроллеру и отслеживает прогресс.
type CommandStreamer interface {
	// GetStatus возвращает последний разобранный статус станка и хвост консоли.
	GetStatus(sessionID string) (*models.StatusInfo, error)
	// SendCommand отправляет одиночную команду вне очереди передачи.
	SendCommand(sessionID, command string) error
	// EnqueueBatch ставит программу в очередь ack-управляемой передачи.
	EnqueueBatch(sessionID string, lines []string, source string) (*models.EnqueueResult, error)
	// GetProgress возвращает снимок прогресса текущей или последней передачи.
	GetProgress(sessionID string) (*models.ProgressInfo, error)
	// Jog выполняет относительное перемещение, допустимое только в Idle и Jog.
	Jog(sessionID string, dx, dy, dz float64) error
	// SetLaserPower включает лазер с мощностью 1..1000 или выключает при 0.
	SetLaserPower(sessionID string, power int) error
	// SetFeedRate задает скорость подачи для последующих перемещений.
	SetFeedRate(sessionID string, rate int) error
	// SetOrigin объявляет текущую позицию нулем рабочей системы координат.
	SetOrigin(sessionID string) error
	// SoftReset немедленно прерывает выполнение и очищает очередь.
	SoftReset(sessionID string) error
}

// RasterConverter компилирует изображения в программы гравировки.
type RasterConverter interface {
	// Convert декодирует изображение и строит программу по параметрам задания.
	// Повторные преобразования одного файла отдаются из кэша.
	Convert(data []byte, params *models.RasterParams) ([]string, error)
	// Preview проецирует программу в отрезки траектории.
	Preview(lines []string) []engrave.Segment
}

// MacroManager хранит именованные быстрые команды.
type MacroManager interface {
	ListMacros() []models.Macro
	// RunMacro отправляет строки макроса в очередь передачи сессии.
	RunMacro(sessionID, name string) (*models.EnqueueResult, error)
}

// GrblService объединяет все операции работы с контроллером.
type GrblService interface {
	ConnectionManager
	CommandStreamer
	RasterConverter
	MacroManager
}
