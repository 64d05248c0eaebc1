package grbl_service

import (
	"strings"
	"sync"
	"time"

	"github.com/iwtcode/grblService/internal/domain/entities"
	"github.com/iwtcode/grblService/internal/domain/models"
	"github.com/iwtcode/grblService/internal/middleware/logging"
	apperrors "github.com/iwtcode/grblService/pkg/errors"
	"github.com/iwtcode/grblService/pkg/engrave"
)

// scheduleFunc планирует отложенный вызов и возвращает функцию отмены.
// Вынесена в зависимость, чтобы тесты управляли временем сами.
type scheduleFunc func(d time.Duration, fn func()) (cancel func() bool)

func afterFuncSchedule(d time.Duration, fn func()) func() bool {
	return time.AfterFunc(d, fn).Stop
}

// finishFunc вызывается один раз по завершении передачи в любом исходе.
type finishFunc func(jobID, status string, linesSent int, errorText string)

// streamEngine реализует ack-управляемую передачу программы: в полете не
// более одной строки, следующая уходит после "ok" с паузой dispatch delay.
// Ответ "error:N" немедленно прерывает всю передачу и очищает очередь.
type streamEngine struct {
	writeLine func(string) error
	schedule  scheduleFunc
	delay     time.Duration
	onFinish  finishFunc
	logger    *logging.Logger

	mu            sync.Mutex
	jobID         string
	queue         []string
	totalLines    int
	linesSent     int
	lastIndex     int // индекс последней отправленной строки, -1 до первой
	startedAt     time.Time
	finishedAt    time.Time
	active        bool
	awaitingAck   bool
	cancelPending func() bool
	lastError     string
	completedIn   string
	everRan       bool
}

func newStreamEngine(writeLine func(string) error, schedule scheduleFunc, delay time.Duration, onFinish finishFunc, logger *logging.Logger) *streamEngine {
	return &streamEngine{
		writeLine: writeLine,
		schedule:  schedule,
		delay:     delay,
		onFinish:  onFinish,
		logger:    logger,
	}
}

// PrepareProgram отбрасывает пустые строки и комментарии и возвращает
// строки, которые реально поедут в контроллер.
func PrepareProgram(lines []string) []string {
	prepared := make([]string, 0, len(lines))
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, ";") || strings.HasPrefix(trimmed, "(") {
			continue
		}
		prepared = append(prepared, trimmed)
	}
	return prepared
}

// EnqueueBatch ставит программу в очередь и запускает передачу.
// Одновременно может идти только одна передача на сессию.
func (e *streamEngine) EnqueueBatch(jobID string, lines []string) (int, error) {
	prepared := PrepareProgram(lines)
	if len(prepared) == 0 {
		return 0, apperrors.ErrEmptyProgram
	}

	e.mu.Lock()
	if e.active {
		e.mu.Unlock()
		return 0, apperrors.ErrTransferActive
	}
	e.jobID = jobID
	e.queue = prepared
	e.totalLines = len(prepared)
	e.linesSent = 0
	e.lastIndex = -1
	e.startedAt = time.Now()
	e.finishedAt = time.Time{}
	e.active = true
	e.awaitingAck = false
	e.lastError = ""
	e.completedIn = ""
	e.everRan = true
	total := e.totalLines
	e.mu.Unlock()

	e.logger.Info("Batch enqueued", "job_id", jobID, "total_lines", total)

	// Первая строка уходит сразу, пауза диспетчеризации нужна только
	// между подтверждением и следующей строкой.
	e.dispatchNext()
	return total, nil
}

// dispatchNext снимает строку с головы очереди и пишет ее в порт.
// Пока не пришло подтверждение предыдущей строки, вызов бездействует.
func (e *streamEngine) dispatchNext() {
	e.mu.Lock()
	if !e.active || e.awaitingAck || len(e.queue) == 0 {
		e.mu.Unlock()
		return
	}
	line := e.queue[0]
	e.queue = e.queue[1:]
	e.lastIndex++
	e.awaitingAck = true
	e.cancelPending = nil
	jobID := e.jobID
	e.mu.Unlock()

	if err := e.writeLine(line); err != nil {
		// Ошибка записи не прерывает передачу, это делает только ответ
		// "error" от контроллера. Строка считается недоставленной, движок
		// останавливается до явного решения оператора (сброс или отключение).
		e.logger.Error("Failed to write queued line", "job_id", jobID, "line", line, "error", err)
		e.mu.Lock()
		e.awaitingAck = false
		e.lastError = err.Error()
		e.mu.Unlock()
	}
}

// HandleAck обрабатывает ответ контроллера на очередную строку:
// пустой errText соответствует "ok", непустой - тексту "error:N".
func (e *streamEngine) HandleAck(errText string) {
	if errText != "" {
		e.fail(errText)
		return
	}

	e.mu.Lock()
	if !e.active {
		e.mu.Unlock()
		return
	}
	e.awaitingAck = false
	e.linesSent++

	if e.linesSent >= e.totalLines && len(e.queue) == 0 {
		e.active = false
		e.finishedAt = time.Now()
		e.completedIn = engrave.FormatDuration(e.finishedAt.Sub(e.startedAt))
		jobID, sent := e.jobID, e.linesSent
		done := e.completedIn
		e.mu.Unlock()

		e.logger.Info("Batch completed", "job_id", jobID, "lines_sent", sent, "completed_in", done)
		e.finish(jobID, entities.JobStatusCompleted, sent, "")
		return
	}

	e.cancelPending = e.schedule(e.delay, e.dispatchNext)
	e.mu.Unlock()
}

// fail прерывает передачу по ответу "error:N" контроллера. Очередь
// очищается, счетчик отправленных строк обнуляется: частично переданная
// программа считается не переданной вовсе.
func (e *streamEngine) fail(errText string) {
	e.mu.Lock()
	if !e.active {
		e.mu.Unlock()
		return
	}
	e.active = false
	e.awaitingAck = false
	e.queue = nil
	e.linesSent = 0
	e.lastError = errText
	e.finishedAt = time.Now()
	cancel := e.cancelPending
	e.cancelPending = nil
	jobID := e.jobID
	e.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	e.logger.Warn("Batch failed", "job_id", jobID, "error", errText)
	e.finish(jobID, entities.JobStatusFailed, 0, errText)
}

// Abort останавливает передачу без ошибки, например при мягком сбросе
// или закрытии сессии. Уже подтвержденные строки остаются в счетчике.
func (e *streamEngine) Abort() {
	e.mu.Lock()
	if !e.active {
		e.mu.Unlock()
		return
	}
	e.active = false
	e.awaitingAck = false
	e.queue = nil
	e.finishedAt = time.Now()
	cancel := e.cancelPending
	e.cancelPending = nil
	jobID, sent := e.jobID, e.linesSent
	e.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	e.logger.Info("Batch aborted", "job_id", jobID, "lines_sent", sent)
	e.finish(jobID, entities.JobStatusAborted, sent, "")
}

// Active сообщает, идет ли передача прямо сейчас.
func (e *streamEngine) Active() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.active
}

// Progress возвращает снимок прогресса текущей или последней передачи.
func (e *streamEngine) Progress() models.ProgressInfo {
	e.mu.Lock()
	defer e.mu.Unlock()

	info := models.ProgressInfo{
		JobID:       e.jobID,
		Active:      e.active,
		TotalLines:  e.totalLines,
		LinesSent:   e.linesSent,
		CurrentLine: e.lastIndex,
		CompletedIn: e.completedIn,
		LastError:   e.lastError,
	}

	if !e.everRan {
		info.CurrentLine = -1
		info.Elapsed = "00:00:00"
		info.Estimated = "--:--:--"
		return info
	}

	if e.totalLines > 0 {
		info.Percent = e.linesSent * 100 / e.totalLines
	}

	elapsed := time.Since(e.startedAt)
	if !e.active && !e.finishedAt.IsZero() {
		elapsed = e.finishedAt.Sub(e.startedAt)
	}
	info.Elapsed = engrave.FormatDuration(elapsed)

	if total, ok := engrave.EstimateTotal(elapsed, e.linesSent, e.totalLines-e.linesSent); ok {
		info.Estimated = engrave.FormatDuration(total)
	} else {
		info.Estimated = "Calculating..."
	}

	return info
}

func (e *streamEngine) finish(jobID, status string, linesSent int, errText string) {
	if e.onFinish != nil {
		e.onFinish(jobID, status, linesSent, errText)
	}
}
