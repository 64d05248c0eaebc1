package logging

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
)

type Config struct {
	Enabled    bool   // Включено ли логирование
	Level      string // DEBUG, INFO, WARN, ERROR
	LogsDir    string // Директория для логов
	SavingDays uint   // Сколько дней хранить логи
}

// Logger - тонкая обертка над logrus, добавляющая префиксы компонентов
// и ежедневную ротацию файла логов.
type Logger struct {
	config *Config
	base   *logrus.Logger
	file   *os.File
	prefix string
}

func NewLogger(cfg *Config, prefix string) *Logger {
	base := logrus.New()

	if !cfg.Enabled {
		base.SetOutput(io.Discard)
	} else {
		level, err := logrus.ParseLevel(cfg.Level)
		if err != nil {
			level = logrus.InfoLevel
		}
		base.SetLevel(level)
		base.SetOutput(os.Stdout)
	}

	// Настраиваем форматтер с понятным форматом времени
	base.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	l := &Logger{
		config: cfg,
		base:   base,
		prefix: "[" + prefix + "]",
	}

	if cfg.Enabled && cfg.LogsDir != "" {
		if err := os.MkdirAll(cfg.LogsDir, 0755); err == nil {
			logFile := filepath.Join(cfg.LogsDir, time.Now().Format("2006-01-02")+".log")
			if file, err := os.OpenFile(logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644); err == nil {
				l.file = file
				base.SetOutput(io.MultiWriter(os.Stdout, file))
			}
		}
	}

	if cfg.SavingDays > 0 {
		go l.cleanOldLogs()
	}

	return l
}

// WithPrefix возвращает логгер с дочерним префиксом, разделяющий вывод с родителем.
func (l *Logger) WithPrefix(prefix string) *Logger {
	return &Logger{
		config: l.config,
		base:   l.base,
		file:   l.file,
		prefix: l.prefix + " [" + prefix + "]",
	}
}

func (l *Logger) cleanOldLogs() {
	for range time.Tick(24 * time.Hour) {
		files, err := os.ReadDir(l.config.LogsDir)
		if err != nil {
			l.Error("Failed to read logs directory", "error", err)
			continue
		}

		cutoff := time.Now().AddDate(0, 0, int(-l.config.SavingDays))
		for _, file := range files {
			if info, err := file.Info(); err == nil && !file.IsDir() && info.ModTime().Before(cutoff) {
				if err := os.Remove(filepath.Join(l.config.LogsDir, file.Name())); err != nil {
					l.Error("Failed to delete old log file", "file", file.Name(), "error", err)
				}
			}
		}
	}
}

func (l *Logger) entry(fields ...interface{}) *logrus.Entry {
	lf := logrus.Fields{}
	for i := 0; i < len(fields); i += 2 {
		key, ok := fields[i].(string)
		if !ok {
			continue
		}
		var val interface{} = "?"
		if i+1 < len(fields) {
			val = fields[i+1]
		}
		lf[key] = val
	}
	return l.base.WithFields(lf)
}

func (l *Logger) Debug(msg string, fields ...interface{}) {
	l.entry(fields...).Debug(l.prefix + " " + msg)
}

func (l *Logger) Info(msg string, fields ...interface{}) {
	l.entry(fields...).Info(l.prefix + " " + msg)
}

func (l *Logger) Warn(msg string, fields ...interface{}) {
	l.entry(fields...).Warn(l.prefix + " " + msg)
}

func (l *Logger) Error(msg string, fields ...interface{}) {
	l.entry(fields...).Error(l.prefix + " " + msg)
}

func (l *Logger) Close() error {
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}
