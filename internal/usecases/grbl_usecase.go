package usecases

import (
	"context"

	"github.com/iwtcode/grblService/internal/domain/entities"
	"github.com/iwtcode/grblService/internal/domain/models"
	"github.com/iwtcode/grblService/pkg/engrave"
)

func (u *grblUsecase) ListPorts() []string {
	return u.service.ListPorts()
}

func (u *grblUsecase) CreateConnection(ctx context.Context, req *models.ConnectionRequest) (*models.ConnectionInfo, error) {
	u.logger.Info("Creating connection", "port", req.PortPath)
	return u.service.CreateConnection(ctx, req)
}

func (u *grblUsecase) GetAllConnections() []*models.ConnectionInfo {
	return u.service.GetAllConnections()
}

func (u *grblUsecase) DeleteConnection(sessionID string) error {
	u.logger.Info("Deleting connection", "session_id", sessionID)
	return u.service.DeleteConnection(sessionID)
}

func (u *grblUsecase) GetStatus(sessionID string) (*models.StatusInfo, error) {
	return u.service.GetStatus(sessionID)
}

func (u *grblUsecase) SendCommand(sessionID, command string) error {
	return u.service.SendCommand(sessionID, command)
}

func (u *grblUsecase) EnqueueBatch(sessionID string, lines []string, source string) (*models.EnqueueResult, error) {
	return u.service.EnqueueBatch(sessionID, lines, source)
}

func (u *grblUsecase) GetProgress(sessionID string) (*models.ProgressInfo, error) {
	return u.service.GetProgress(sessionID)
}

func (u *grblUsecase) Jog(sessionID string, dx, dy, dz float64) error {
	return u.service.Jog(sessionID, dx, dy, dz)
}

func (u *grblUsecase) SetLaserPower(sessionID string, power int) error {
	return u.service.SetLaserPower(sessionID, power)
}

func (u *grblUsecase) SetFeedRate(sessionID string, rate int) error {
	return u.service.SetFeedRate(sessionID, rate)
}

func (u *grblUsecase) SetOrigin(sessionID string) error {
	return u.service.SetOrigin(sessionID)
}

func (u *grblUsecase) SoftReset(sessionID string) error {
	return u.service.SoftReset(sessionID)
}

func (u *grblUsecase) ConvertRaster(data []byte, params *models.RasterParams) ([]string, error) {
	return u.service.Convert(data, params)
}

func (u *grblUsecase) PreviewProgram(lines []string) []engrave.Segment {
	return u.service.Preview(lines)
}

func (u *grblUsecase) ListMacros() []models.Macro {
	return u.service.ListMacros()
}

func (u *grblUsecase) RunMacro(sessionID, name string) (*models.EnqueueResult, error) {
	return u.service.RunMacro(sessionID, name)
}

// GetJobs возвращает историю передач: всю при пустом sessionID, иначе
// только по указанной сессии.
func (u *grblUsecase) GetJobs(sessionID string) ([]entities.EngraveJob, error) {
	if sessionID == "" {
		return u.repo.GetAll()
	}
	return u.repo.GetBySessionID(sessionID)
}
