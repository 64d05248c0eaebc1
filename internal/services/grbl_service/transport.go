package grbl_service

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tarm/serial"
)

// Transport - байтовый канал до контроллера. В тестах подменяется на
// канал в памяти, в проде это открытый последовательный порт.
type Transport interface {
	io.ReadWriteCloser
}

// portPatterns - шаблоны имен последовательных портов, за которыми обычно
// скрываются USB-адаптеры контроллеров (Linux и macOS).
var portPatterns = []string{
	"/dev/ttyUSB*",
	"/dev/ttyACM*",
	"/dev/tty.usbserial*",
	"/dev/tty.usbmodem*",
}

// OpenSerial открывает порт в режиме 8N1 без таймаута чтения: приемный
// цикл живет столько же, сколько сессия, и завершается закрытием порта.
func OpenSerial(portPath string, baud int) (Transport, error) {
	port, err := serial.OpenPort(&serial.Config{
		Name:     portPath,
		Baud:     baud,
		Size:     8,
		Parity:   serial.ParityNone,
		StopBits: serial.Stop1,
	})
	if err != nil {
		return nil, classifyOpenError(portPath, err)
	}
	return port, nil
}

// classifyOpenError переводит низкоуровневую ошибку открытия порта в
// сообщение, пригодное для показа пользователю.
func classifyOpenError(portPath string, err error) error {
	text := strings.ToLower(err.Error())
	switch {
	case strings.Contains(text, "permission denied"), strings.Contains(text, "access is denied"):
		return fmt.Errorf("нет прав доступа к порту %s: %w", portPath, err)
	case strings.Contains(text, "no such file"), strings.Contains(text, "cannot find"):
		return fmt.Errorf("порт %s не найден: %w", portPath, err)
	case strings.Contains(text, "busy"), strings.Contains(text, "in use"):
		return fmt.Errorf("порт %s занят другим процессом: %w", portPath, err)
	default:
		return fmt.Errorf("не удалось открыть порт %s: %w", portPath, err)
	}
}

// ListSerialPorts возвращает отсортированный список кандидатов портов.
func ListSerialPorts() []string {
	ports := make([]string, 0, 4)
	for _, pattern := range portPatterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			continue
		}
		ports = append(ports, matches...)
	}
	sort.Strings(ports)
	return ports
}
