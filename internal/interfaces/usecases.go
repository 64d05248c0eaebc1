package interfaces

import (
	"context"

	"github.com/iwtcode/grblService/internal/domain/entities"
	"github.com/iwtcode/grblService/internal/domain/models"
	"github.com/iwtcode/grblService/pkg/engrave"
)

// GrblUsecase определяет операции уровня приложения над контроллером.
type GrblUsecase interface {
	ListPorts() []string
	CreateConnection(ctx context.Context, req *models.ConnectionRequest) (*models.ConnectionInfo, error)
	GetAllConnections() []*models.ConnectionInfo
	DeleteConnection(sessionID string) error

	GetStatus(sessionID string) (*models.StatusInfo, error)
	SendCommand(sessionID, command string) error
	EnqueueBatch(sessionID string, lines []string, source string) (*models.EnqueueResult, error)
	GetProgress(sessionID string) (*models.ProgressInfo, error)
	Jog(sessionID string, dx, dy, dz float64) error
	SetLaserPower(sessionID string, power int) error
	SetFeedRate(sessionID string, rate int) error
	SetOrigin(sessionID string) error
	SoftReset(sessionID string) error

	ConvertRaster(data []byte, params *models.RasterParams) ([]string, error)
	PreviewProgram(lines []string) []engrave.Segment

	ListMacros() []models.Macro
	RunMacro(sessionID, name string) (*models.EnqueueResult, error)

	GetJobs(sessionID string) ([]entities.EngraveJob, error)
}
