package grbl_service

import (
	"bytes"
	"context"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/iwtcode/grblService/internal/config"
	"github.com/iwtcode/grblService/internal/domain/models"
	apperrors "github.com/iwtcode/grblService/pkg/errors"
)

// fakePort имитирует последовательный порт: тест скармливает ответы
// контроллера через feed и читает все записанное сессией.
type fakePort struct {
	reader *io.PipeReader
	writer *io.PipeWriter

	mu     sync.Mutex
	wrote  bytes.Buffer
	closed bool
}

func newFakePort() *fakePort {
	r, w := io.Pipe()
	return &fakePort{reader: r, writer: w}
}

func (f *fakePort) Read(p []byte) (int, error) { return f.reader.Read(p) }

func (f *fakePort) Write(p []byte) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return 0, io.ErrClosedPipe
	}
	return f.wrote.Write(p)
}

func (f *fakePort) Close() error {
	f.mu.Lock()
	f.closed = true
	f.mu.Unlock()
	f.writer.Close()
	return f.reader.Close()
}

func (f *fakePort) feed(line string) {
	_, _ = f.writer.Write([]byte(line + "\r\n"))
}

func (f *fakePort) written() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.wrote.String()
}

func testSerialConfig() config.SerialConfig {
	return config.SerialConfig{
		Baud:            115200,
		DetectTimeoutMs: 2000,
		PollIntervalMs:  60000, // опрос фактически выключен, чтобы не шумел в буфере записи
		DispatchDelayMs: 1,
		JogRatePerSec:   100,
	}
}

func startDetectedSession(t *testing.T) (*Session, *fakePort) {
	t.Helper()

	port := newFakePort()
	session := newSession("11112222-3333-4444-5555-666677778888", "/dev/ttyUSB0", port, testSerialConfig(), testLogger(), nil)
	t.Cleanup(func() { _ = session.Close() })

	// Короткое окно обнаружения, чтобы тесты не ждали полные две секунды:
	// баннер скармливается сразу после wake-up, а решение принимается
	// по истечении окна.
	done := make(chan error, 1)
	go func() {
		_, err := session.Detect(context.Background(), 200*time.Millisecond)
		done <- err
	}()

	// Баннер приходит в ответ на wake-up перевод строки.
	require.Eventually(t, func() bool {
		return strings.Contains(port.written(), "\n")
	}, time.Second, 5*time.Millisecond, "сессия должна разбудить контроллер переводом строки")

	port.feed("Grbl 1.1h ['$' for help]")
	require.NoError(t, <-done)

	return session, port
}

func waitForMode(t *testing.T, session *Session, port *fakePort, telegram string, mode models.RunMode) {
	t.Helper()
	port.feed(telegram)
	require.Eventually(t, func() bool {
		return session.Status().Machine.Mode == mode
	}, time.Second, 5*time.Millisecond, "телеграмма должна быть разобрана приемным циклом")
}

func TestSessionDetectSuccess(t *testing.T) {
	session, port := startDetectedSession(t)

	info := session.Info()
	require.Equal(t, models.StateConnected, info.State)
	require.Equal(t, "1.1h", info.FirmwareVersion)

	// После обнаружения сессия запрашивает диагностику контроллера.
	require.Eventually(t, func() bool {
		out := port.written()
		return strings.Contains(out, "$$\n") && strings.Contains(out, "$G\n")
	}, time.Second, 5*time.Millisecond)
}

func TestSessionDetectTimeout(t *testing.T) {
	port := newFakePort()
	session := newSession("99990000-aaaa-bbbb-cccc-ddddeeeeffff", "/dev/ttyUSB1", port, testSerialConfig(), testLogger(), nil)
	defer session.Close()

	_, err := session.Detect(context.Background(), 50*time.Millisecond)
	require.ErrorIs(t, err, apperrors.ErrDetectionFailed, "без баннера обнаружение должно истечь")
}

func TestSessionJogRejectedOutsideIdleAndJog(t *testing.T) {
	session, port := startDetectedSession(t)

	waitForMode(t, session, port, "<Alarm|WPos:0.000,0.000,0.000>", models.ModeAlarm)

	before := port.written()
	err := session.Jog(1, 0, 0)
	require.ErrorIs(t, err, apperrors.ErrJogNotAllowed)
	require.Equal(t, before, port.written(), "отклоненный джоггинг не должен писать в порт")
}

func TestSessionJogBuildsRelativeCommand(t *testing.T) {
	session, port := startDetectedSession(t)

	waitForMode(t, session, port, "<Idle|WPos:0.000,0.000,0.000>", models.ModeIdle)

	require.NoError(t, session.Jog(1.5, -2, 0))
	require.Contains(t, port.written(), "$J=G91 G21 X1.500 Y-2.000 F1000\n", "нулевые оси не попадают в команду")

	err := session.Jog(0, 0, 0)
	require.Error(t, err, "перемещение без осей не имеет смысла")
}

func TestSessionStickyStatusAcrossTelegrams(t *testing.T) {
	session, port := startDetectedSession(t)

	waitForMode(t, session, port, "<Run|WPos:3.000,4.000,5.000>", models.ModeRun)
	require.Equal(t, models.Position{X: 3, Y: 4, Z: 5}, session.Status().Machine.WPos)

	// Телеграмма без координат не должна их сбрасывать.
	waitForMode(t, session, port, "<Idle|FS:0,0>", models.ModeIdle)
	require.Equal(t, models.Position{X: 3, Y: 4, Z: 5}, session.Status().Machine.WPos)
}

func TestSessionConsoleCollectsResponses(t *testing.T) {
	session, port := startDetectedSession(t)

	port.feed("[MSG:Check Door]")
	port.feed("ok")

	require.Eventually(t, func() bool {
		console := session.Status().Console
		return len(console) >= 2
	}, time.Second, 5*time.Millisecond)

	console := session.Status().Console
	require.Contains(t, console, "[MSG:Check Door]")
	require.Contains(t, console, "ok")
	for _, line := range console {
		require.False(t, strings.HasPrefix(line, "<"), "телеграммы статуса не должны попадать в консоль: %s", line)
	}
}

func TestSessionSendCommandValidation(t *testing.T) {
	session, port := startDetectedSession(t)

	require.ErrorIs(t, session.SendCommand("   "), apperrors.ErrEmptyCommand)

	require.NoError(t, session.SendCommand("$X"))
	require.Contains(t, port.written(), "$X\n")
}

func TestSessionSoftResetSendsControlByte(t *testing.T) {
	session, port := startDetectedSession(t)

	require.NoError(t, session.SoftReset())
	require.Contains(t, port.written(), string(rune(0x18)), "мягкий сброс уходит одним управляющим байтом")
}

func TestSessionLaserAndFeedCommands(t *testing.T) {
	session, port := startDetectedSession(t)

	require.NoError(t, session.SetLaserPower(450))
	require.NoError(t, session.SetLaserPower(0))
	require.Error(t, session.SetLaserPower(1001))

	require.NoError(t, session.SetFeedRate(1200))
	require.Error(t, session.SetFeedRate(99))
	require.Error(t, session.SetFeedRate(5001))

	out := port.written()
	require.Contains(t, out, "M3 S450\n")
	require.Contains(t, out, "M5 S0\n")
	require.Contains(t, out, "G1 F1200\n")

	// Новая скорость подачи подхватывается джоггингом.
	waitForMode(t, session, port, "<Idle|WPos:0.000,0.000,0.000>", models.ModeIdle)
	require.NoError(t, session.Jog(0, 0, 1))
	require.Contains(t, port.written(), "$J=G91 G21 Z1.000 F1200\n")
}

func TestSessionSetOrigin(t *testing.T) {
	session, port := startDetectedSession(t)

	require.NoError(t, session.SetOrigin())
	out := port.written()
	require.Contains(t, out, "G10 P0 L20 X0 Y0 Z0\n")
	require.Contains(t, out, "G92 X0 Y0 Z0\n")
}

func TestSessionWriteAfterCloseFails(t *testing.T) {
	session, _ := startDetectedSession(t)

	require.NoError(t, session.Close())
	require.ErrorIs(t, session.SendCommand("$X"), apperrors.ErrNotConnected)

	_, err := session.EnqueueBatch("job-x", []string{"G21"})
	require.ErrorIs(t, err, apperrors.ErrNotConnected)
}
