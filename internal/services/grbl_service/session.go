package grbl_service

import (
	"bufio"
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/iwtcode/grblService/internal/config"
	"github.com/iwtcode/grblService/internal/domain/models"
	"github.com/iwtcode/grblService/internal/middleware/logging"
	apperrors "github.com/iwtcode/grblService/pkg/errors"
)

const (
	softResetByte   = 0x18 // Ctrl-X, обрабатывается контроллером немедленно
	statusPollByte  = '?'  // однобайтовый запрос статуса вне очереди команд
	consoleCapacity = 200  // сколько последних ответов хранит сессия

	minFeedRate     = 100
	maxFeedRate     = 5000
	defaultFeedRate = 1000
)

type sessionPhase int

const (
	phaseDetecting sessionPhase = iota
	phaseConnected
	phaseClosed
)

// Session владеет одним открытым портом: приемным циклом, опросом статуса
// и движком передачи. Все записи в порт идут через writeMu, поэтому байты
// разных команд никогда не перемешиваются.
type Session struct {
	ID        string
	PortPath  string
	CreatedAt time.Time

	transport Transport
	logger    *logging.Logger
	engine    *streamEngine

	writeMu sync.Mutex

	mu         sync.Mutex
	phase      sessionPhase
	firmware   string
	machine    models.MachineStatus
	console    []string
	feedRate   int
	jogLimiter *rate.Limiter

	detectCh  chan string
	stopPoll  chan struct{}
	pollOnce  sync.Once
	closeOnce sync.Once
	closed    chan struct{}

	pollInterval time.Duration
}

func newSession(id, portPath string, transport Transport, serialCfg config.SerialConfig, logger *logging.Logger, onFinish finishFunc) *Session {
	s := &Session{
		ID:           id,
		PortPath:     portPath,
		CreatedAt:    time.Now(),
		transport:    transport,
		logger:       logger.WithPrefix("Session " + shortID(id)),
		phase:        phaseDetecting,
		machine:      models.MachineStatus{Mode: models.ModeUnknown},
		feedRate:     defaultFeedRate,
		jogLimiter:   rate.NewLimiter(rate.Limit(serialCfg.JogRatePerSec), serialCfg.JogRatePerSec),
		detectCh:     make(chan string, 1),
		stopPoll:     make(chan struct{}),
		closed:       make(chan struct{}),
		pollInterval: time.Duration(serialCfg.PollIntervalMs) * time.Millisecond,
	}
	s.engine = newStreamEngine(
		s.writeLine,
		afterFuncSchedule,
		time.Duration(serialCfg.DispatchDelayMs)*time.Millisecond,
		onFinish,
		s.logger.WithPrefix("Engine"),
	)

	go s.readLoop()
	return s
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// Detect будит контроллер переводом строки, копит ответы в течение всего
// окна обнаружения и лишь затем проверяет, пришел ли приветственный баннер.
// Контроллер может слать мусор до баннера, поэтому окно выдерживается целиком.
func (s *Session) Detect(ctx context.Context, timeout time.Duration) (string, error) {
	if err := s.writeRaw([]byte{'\n'}); err != nil {
		return "", err
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-timer.C:
	case <-ctx.Done():
		return "", ctx.Err()
	case <-s.closed:
		return "", apperrors.ErrNotConnected
	}

	select {
	case version := <-s.detectCh:
		s.mu.Lock()
		s.phase = phaseConnected
		s.firmware = version
		s.mu.Unlock()

		s.startPolling()
		s.requestDiagnostics()
		s.logger.Info("Controller detected", "port", s.PortPath, "version", version)
		return version, nil
	default:
		return "", apperrors.ErrDetectionFailed
	}
}

// requestDiagnostics запрашивает настройки и состояние парсера сразу после
// обнаружения, чтобы консоль сессии начиналась с паспорта контроллера.
func (s *Session) requestDiagnostics() {
	for _, cmd := range []string{"$$", "$G"} {
		if err := s.writeLine(cmd); err != nil {
			s.logger.Warn("Failed to request diagnostics", "command", cmd, "error", err)
		}
	}
}

func (s *Session) startPolling() {
	s.pollOnce.Do(func() {
		go func() {
			ticker := time.NewTicker(s.pollInterval)
			defer ticker.Stop()
			for {
				select {
				case <-ticker.C:
					if err := s.writeRaw([]byte{statusPollByte}); err != nil {
						return
					}
				case <-s.stopPoll:
					return
				}
			}
		}()
	})
}

// readLoop - единственный читатель порта. Разбирает телеграммы статуса,
// баннер обнаружения и подтверждения строк, остальное складывает в консоль.
func (s *Session) readLoop() {
	scanner := bufio.NewScanner(s.transport)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		s.handleLine(line)
	}
	if err := scanner.Err(); err != nil {
		s.logger.Debug("Read loop stopped", "error", err)
	}
	s.markClosed()
}

func (s *Session) handleLine(line string) {
	// Телеграммы приходят пять раз в секунду, в консоль их не пишем.
	s.mu.Lock()
	if machine, ok := ParseStatus(line, s.machine); ok {
		s.machine = machine
		s.mu.Unlock()
		return
	}

	detecting := s.phase == phaseDetecting
	s.console = append(s.console, line)
	if len(s.console) > consoleCapacity {
		s.console = s.console[len(s.console)-consoleCapacity:]
	}
	s.mu.Unlock()

	switch {
	case detecting && ContainsSignature(line):
		select {
		case s.detectCh <- ExtractVersion(line):
		default:
		}
	case line == "ok":
		s.engine.HandleAck("")
	case strings.HasPrefix(line, "error:"):
		s.engine.HandleAck(line)
	case strings.HasPrefix(line, "ALARM:"):
		s.logger.Warn("Controller alarm", "message", line)
	}
}

func (s *Session) markClosed() {
	s.mu.Lock()
	alreadyClosed := s.phase == phaseClosed
	s.phase = phaseClosed
	s.mu.Unlock()

	if !alreadyClosed {
		close(s.closed)
		s.engine.Abort()
	}
}

// writeRaw пишет байты как есть, без завершающего перевода строки.
// Используется для управляющих байтов протокола ('?', Ctrl-X, wake-up).
func (s *Session) writeRaw(data []byte) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if s.isClosed() {
		return apperrors.ErrNotConnected
	}
	n, err := s.transport.Write(data)
	if err != nil {
		return err
	}
	if n != len(data) {
		return fmt.Errorf("короткая запись в порт: %d из %d байт", n, len(data))
	}
	return nil
}

// writeLine отправляет одну команду с завершающим '\n'.
func (s *Session) writeLine(line string) error {
	err := s.writeRaw([]byte(line + "\n"))
	if err == nil {
		s.logger.Debug("Line sent", "line", line)
	}
	return err
}

func (s *Session) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase == phaseClosed
}

// SendCommand отправляет одиночную команду немедленно, в обход очереди
// передачи. Команда из одного байта Ctrl-X трактуется как мягкий сброс.
func (s *Session) SendCommand(command string) error {
	trimmed := strings.TrimSpace(command)
	if trimmed == "" {
		return apperrors.ErrEmptyCommand
	}
	if trimmed == string(rune(softResetByte)) {
		return s.SoftReset()
	}
	return s.writeLine(trimmed)
}

// EnqueueBatch передает программу движку ack-управляемой передачи.
func (s *Session) EnqueueBatch(jobID string, lines []string) (int, error) {
	if s.isClosed() {
		return 0, apperrors.ErrNotConnected
	}
	return s.engine.EnqueueBatch(jobID, lines)
}

// Progress возвращает снимок прогресса передачи.
func (s *Session) Progress() models.ProgressInfo {
	return s.engine.Progress()
}

// Jog выполняет относительное перемещение. Контроллер принимает джоггинг
// только в состояниях Idle и Jog, в остальных команда отклоняется еще тут.
func (s *Session) Jog(dx, dy, dz float64) error {
	if dx == 0 && dy == 0 && dz == 0 {
		return fmt.Errorf("%w: хотя бы одна ось перемещения должна быть ненулевой", apperrors.ErrInvalidArgument)
	}

	s.mu.Lock()
	mode := s.machine.Mode
	feed := s.feedRate
	limiter := s.jogLimiter
	s.mu.Unlock()

	if mode != models.ModeIdle && mode != models.ModeJog {
		return apperrors.ErrJogNotAllowed
	}
	if !limiter.Allow() {
		return apperrors.ErrJogRateExceeded
	}

	var b strings.Builder
	b.WriteString("$J=G91 G21")
	if dx != 0 {
		fmt.Fprintf(&b, " X%.3f", dx)
	}
	if dy != 0 {
		fmt.Fprintf(&b, " Y%.3f", dy)
	}
	if dz != 0 {
		fmt.Fprintf(&b, " Z%.3f", dz)
	}
	fmt.Fprintf(&b, " F%d", feed)

	return s.writeLine(b.String())
}

// SetLaserPower включает лазер с заданной мощностью или гасит его при нуле.
func (s *Session) SetLaserPower(power int) error {
	if power < 0 || power > 1000 {
		return fmt.Errorf("%w: мощность должна быть от 0 до 1000, получено %d", apperrors.ErrInvalidArgument, power)
	}
	if power == 0 {
		return s.writeLine("M5 S0")
	}
	return s.writeLine(fmt.Sprintf("M3 S%d", power))
}

// SetFeedRate задает скорость подачи для последующих перемещений.
func (s *Session) SetFeedRate(feed int) error {
	if feed < minFeedRate || feed > maxFeedRate {
		return fmt.Errorf("%w: скорость подачи должна быть от %d до %d мм/мин, получено %d", apperrors.ErrInvalidArgument, minFeedRate, maxFeedRate, feed)
	}
	if err := s.writeLine(fmt.Sprintf("G1 F%d", feed)); err != nil {
		return err
	}
	s.mu.Lock()
	s.feedRate = feed
	s.mu.Unlock()
	return nil
}

// SetOrigin объявляет текущую позицию нулем рабочей системы координат:
// G10 L20 сохраняет смещение в контроллере, G92 применяет его немедленно.
func (s *Session) SetOrigin() error {
	if err := s.writeLine("G10 P0 L20 X0 Y0 Z0"); err != nil {
		return err
	}
	return s.writeLine("G92 X0 Y0 Z0")
}

// SoftReset немедленно прерывает выполнение на контроллере и останавливает
// текущую передачу.
func (s *Session) SoftReset() error {
	if err := s.writeRaw([]byte{softResetByte}); err != nil {
		return err
	}
	s.engine.Abort()
	s.logger.Info("Soft reset sent")
	return nil
}

// Status возвращает снимок состояния сессии и хвост консоли.
func (s *Session) Status() *models.StatusInfo {
	s.mu.Lock()
	defer s.mu.Unlock()

	console := make([]string, len(s.console))
	copy(console, s.console)

	return &models.StatusInfo{
		SessionID:       s.ID,
		State:           s.stateLocked(),
		FirmwareVersion: s.firmware,
		Machine:         s.machine,
		Console:         console,
	}
}

// Info возвращает краткую карточку подключения для пула.
func (s *Session) Info() *models.ConnectionInfo {
	s.mu.Lock()
	defer s.mu.Unlock()

	return &models.ConnectionInfo{
		SessionID:       s.ID,
		PortPath:        s.PortPath,
		FirmwareVersion: s.firmware,
		State:           s.stateLocked(),
		CreatedAt:       s.CreatedAt,
	}
}

func (s *Session) stateLocked() models.ConnectionState {
	switch s.phase {
	case phaseDetecting:
		return models.StateDetecting
	case phaseConnected:
		return models.StateConnected
	default:
		return models.StateDisconnected
	}
}

// Close останавливает опрос, прерывает передачу и закрывает порт.
func (s *Session) Close() error {
	s.closeOnce.Do(func() { close(s.stopPoll) })
	s.markClosed()
	return s.transport.Close()
}
