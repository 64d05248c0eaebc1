package errors

import (
	"errors"
	"fmt"
)

const (
	InternalServerError = "internal server error"
	BadRequest          = "bad request"
	NotFound            = "not_found"

	InvalidDataCode         = 402
	InternalServerErrorCode = 500
	NotFoundErrorCode       = 404
)

// AppError представляет собой стандартизированную структуру ошибки для API.
type AppError struct {
	Code         int    `json:"code"`    // HTTP статус код
	Message      string `json:"message"` // Сообщение для клиента
	Err          error  `json:"-"`       // Внутренняя ошибка, не для клиента
	IsUserFacing bool   `json:"-"`       // Флаг, указывающий, можно ли показывать `Err`
}

func (a *AppError) Error() string {
	if a == nil {
		return ""
	}
	if a.Err != nil {
		return fmt.Sprintf("%s (code: %d): %v", a.Message, a.Code, a.Err)
	}
	return fmt.Sprintf("%s (code: %d)", a.Message, a.Code)
}

// NewAppError создает новый экземпляр AppError.
func NewAppError(httpCode int, message string, err error, isUserFacing bool) *AppError {
	return &AppError{
		Code:         httpCode,
		Message:      message,
		Err:          err,
		IsUserFacing: isUserFacing,
	}
}

// Ошибки протокольного уровня. Сервисы и хендлеры различают их через errors.Is.
var (
	ErrDataNotFound    = errors.New("data not found")
	ErrNotConnected    = errors.New("grbl: транспорт не открыт")
	ErrDetectionFailed = errors.New("grbl: контроллер GRBL не обнаружен на порту")
	ErrEmptyCommand    = errors.New("grbl: пустая команда")
	ErrEmptyProgram    = errors.New("grbl: программа не содержит исполняемых строк")
	ErrJogNotAllowed   = errors.New("grbl: джоггинг возможен только в состояниях Idle или Jog")
	ErrJogRateExceeded = errors.New("grbl: слишком частые команды джоггинга")
	ErrTransferActive  = errors.New("grbl: передача программы уже выполняется")
	ErrInvalidArgument = errors.New("недопустимый аргумент")
	ErrSessionNotFound = errors.New("сессия не найдена")
	ErrInternal        = errors.New("internal error")
)
