package grbl_service

import (
	"io"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/iwtcode/grblService/internal/domain/entities"
	"github.com/iwtcode/grblService/internal/middleware/logging"
	apperrors "github.com/iwtcode/grblService/pkg/errors"
)

func testLogger() *logging.Logger {
	return logging.NewLogger(&logging.Config{Enabled: false}, "test")
}

// fakeScheduler копит отложенные вызовы, тест запускает их вручную.
type fakeScheduler struct {
	mu      sync.Mutex
	pending []func()
}

func (f *fakeScheduler) schedule(_ time.Duration, fn func()) func() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pending = append(f.pending, fn)
	return func() bool { return true }
}

// fire выполняет один отложенный вызов, самый ранний.
func (f *fakeScheduler) fire(t *testing.T) {
	t.Helper()
	f.mu.Lock()
	require.NotEmpty(t, f.pending, "ожидался запланированный вызов")
	fn := f.pending[0]
	f.pending = f.pending[1:]
	f.mu.Unlock()
	fn()
}

func (f *fakeScheduler) pendingCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.pending)
}

type finishRecord struct {
	jobID     string
	status    string
	linesSent int
	errorText string
}

type engineHarness struct {
	engine    *streamEngine
	scheduler *fakeScheduler

	mu       sync.Mutex
	written  []string
	finishes []finishRecord
}

func newEngineHarness() *engineHarness {
	h := &engineHarness{scheduler: &fakeScheduler{}}
	h.engine = newStreamEngine(
		func(line string) error {
			h.mu.Lock()
			defer h.mu.Unlock()
			h.written = append(h.written, line)
			return nil
		},
		h.scheduler.schedule,
		5*time.Millisecond,
		func(jobID, status string, linesSent int, errorText string) {
			h.mu.Lock()
			defer h.mu.Unlock()
			h.finishes = append(h.finishes, finishRecord{jobID, status, linesSent, errorText})
		},
		testLogger(),
	)
	return h
}

func (h *engineHarness) writtenLines() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]string, len(h.written))
	copy(out, h.written)
	return out
}

func (h *engineHarness) finishRecords() []finishRecord {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]finishRecord, len(h.finishes))
	copy(out, h.finishes)
	return out
}

func TestPrepareProgramFiltersNonExecutableLines(t *testing.T) {
	prepared := PrepareProgram([]string{
		"G21",
		"",
		"   ",
		"; комментарий",
		"(еще комментарий)",
		"  G0 X1 Y1  ",
	})
	require.Equal(t, []string{"G21", "G0 X1 Y1"}, prepared)
}

func TestEnqueueBatchRejectsEmptyProgram(t *testing.T) {
	h := newEngineHarness()

	_, err := h.engine.EnqueueBatch("job-1", []string{"", "; только комментарии"})
	require.ErrorIs(t, err, apperrors.ErrEmptyProgram)
}

func TestEngineStreamsOneLineAtATime(t *testing.T) {
	h := newEngineHarness()

	total, err := h.engine.EnqueueBatch("job-1", []string{"G21", "G90", "G0 X1 Y1"})
	require.NoError(t, err)
	require.Equal(t, 3, total)

	// Первая строка уходит сразу при постановке в очередь.
	require.Equal(t, []string{"G21"}, h.writtenLines())

	// Без подтверждения вторая строка не отправляется.
	require.Zero(t, h.scheduler.pendingCount())

	h.engine.HandleAck("")
	h.scheduler.fire(t)
	require.Equal(t, []string{"G21", "G90"}, h.writtenLines())

	h.engine.HandleAck("")
	h.scheduler.fire(t)
	require.Equal(t, []string{"G21", "G90", "G0 X1 Y1"}, h.writtenLines())

	h.engine.HandleAck("")
	require.False(t, h.engine.Active(), "после подтверждения всех строк передача должна завершиться")

	records := h.finishRecords()
	require.Len(t, records, 1)
	require.Equal(t, "job-1", records[0].jobID)
	require.Equal(t, entities.JobStatusCompleted, records[0].status)
	require.Equal(t, 3, records[0].linesSent, "счетчик должен равняться числу строк программы")
}

func TestEngineErrorAckAbortsWholeBatch(t *testing.T) {
	h := newEngineHarness()

	_, err := h.engine.EnqueueBatch("job-2", []string{"G21", "G90", "G0 X1 Y1", "G0 X2 Y2"})
	require.NoError(t, err)

	h.engine.HandleAck("")
	h.scheduler.fire(t)

	// Вторая строка отклонена контроллером.
	h.engine.HandleAck("error:20")

	require.False(t, h.engine.Active())
	require.Equal(t, []string{"G21", "G90"}, h.writtenLines(), "после ошибки ничего не досылается")

	records := h.finishRecords()
	require.Len(t, records, 1)
	require.Equal(t, entities.JobStatusFailed, records[0].status)
	require.Equal(t, 0, records[0].linesSent, "ошибка обнуляет счетчик отправленных строк")
	require.Equal(t, "error:20", records[0].errorText)

	progress := h.engine.Progress()
	require.False(t, progress.Active)
	require.Equal(t, 0, progress.LinesSent)
	require.Equal(t, "error:20", progress.LastError)
}

func TestEngineRejectsSecondBatchWhileActive(t *testing.T) {
	h := newEngineHarness()

	_, err := h.engine.EnqueueBatch("job-3", []string{"G21"})
	require.NoError(t, err)

	_, err = h.engine.EnqueueBatch("job-4", []string{"G90"})
	require.ErrorIs(t, err, apperrors.ErrTransferActive)
}

func TestEngineAbortKeepsSentCount(t *testing.T) {
	h := newEngineHarness()

	_, err := h.engine.EnqueueBatch("job-5", []string{"G21", "G90", "G17"})
	require.NoError(t, err)

	h.engine.HandleAck("")

	h.engine.Abort()
	require.False(t, h.engine.Active())

	records := h.finishRecords()
	require.Len(t, records, 1)
	require.Equal(t, entities.JobStatusAborted, records[0].status)
	require.Equal(t, 1, records[0].linesSent, "прерывание сохраняет число подтвержденных строк")

	// Повторное прерывание уже завершенной передачи молча игнорируется.
	h.engine.Abort()
	require.Len(t, h.finishRecords(), 1)
}

func TestEngineProgressSnapshots(t *testing.T) {
	h := newEngineHarness()

	progress := h.engine.Progress()
	require.False(t, progress.Active)
	require.Equal(t, -1, progress.CurrentLine)
	require.Equal(t, "--:--:--", progress.Estimated, "до первой передачи оценка недоступна")

	_, err := h.engine.EnqueueBatch("job-6", []string{"G21", "G90"})
	require.NoError(t, err)

	progress = h.engine.Progress()
	require.True(t, progress.Active)
	require.Equal(t, 2, progress.TotalLines)
	require.Equal(t, 0, progress.LinesSent)
	require.Equal(t, "Calculating...", progress.Estimated, "до первого подтверждения оценка еще считается")
	require.Equal(t, 0, progress.CurrentLine, "первая строка уже отправлена")

	h.engine.HandleAck("")

	progress = h.engine.Progress()
	require.Equal(t, 1, progress.LinesSent)
	require.Equal(t, 50, progress.Percent)
	require.NotEqual(t, "Calculating...", progress.Estimated)

	h.scheduler.fire(t)
	h.engine.HandleAck("")

	progress = h.engine.Progress()
	require.False(t, progress.Active)
	require.Equal(t, 100, progress.Percent)
	require.NotEmpty(t, progress.CompletedIn)
}

func TestEngineWriteErrorDoesNotAbortBatch(t *testing.T) {
	scheduler := &fakeScheduler{}
	var finishes []finishRecord

	engine := newStreamEngine(
		func(string) error { return io.ErrClosedPipe },
		scheduler.schedule,
		5*time.Millisecond,
		func(jobID, status string, linesSent int, errorText string) {
			finishes = append(finishes, finishRecord{jobID, status, linesSent, errorText})
		},
		testLogger(),
	)

	_, err := engine.EnqueueBatch("job-7", []string{"G21", "G90"})
	require.NoError(t, err)

	// Строка не доставлена, но передачу прерывает только ответ контроллера.
	require.True(t, engine.Active(), "ошибка записи не должна прерывать передачу")
	require.Empty(t, finishes)

	progress := engine.Progress()
	require.NotEmpty(t, progress.LastError)
	require.Equal(t, 0, progress.LinesSent)

	// Оператор разрешает ситуацию явно.
	engine.Abort()
	require.Len(t, finishes, 1)
	require.Equal(t, entities.JobStatusAborted, finishes[0].status)
}
