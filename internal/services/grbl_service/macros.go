package grbl_service

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/iwtcode/grblService/internal/domain/models"
	"github.com/iwtcode/grblService/internal/middleware/logging"
	apperrors "github.com/iwtcode/grblService/pkg/errors"
)

// defaultMacros используются, когда файл макросов отсутствует.
var defaultMacros = []models.Macro{
	{Name: "unlock", Command: "$X", Description: "Снять блокировку после тревоги"},
	{Name: "home", Command: "$H", Description: "Поиск базовых позиций"},
	{Name: "settings", Command: "$$", Description: "Показать настройки контроллера"},
	{Name: "parser-state", Command: "$G", Description: "Показать состояние парсера"},
	{Name: "laser-off", Command: "M5 S0", Description: "Погасить лазер"},
}

// macroStore хранит именованные быстрые команды, загруженные из YAML.
type macroStore struct {
	macros []models.Macro
	byName map[string]models.Macro
}

func newMacroStore(path string, logger *logging.Logger) (*macroStore, error) {
	macros := defaultMacros

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		var loaded struct {
			Macros []models.Macro `yaml:"macros"`
		}
		if err := yaml.Unmarshal(data, &loaded); err != nil {
			return nil, fmt.Errorf("не удалось разобрать файл макросов %s: %w", path, err)
		}
		if len(loaded.Macros) > 0 {
			macros = loaded.Macros
		}
		logger.Info("Macros loaded", "path", path, "count", len(macros))
	case os.IsNotExist(err):
		logger.Info("Macros file not found, using defaults", "path", path, "count", len(macros))
	default:
		return nil, fmt.Errorf("не удалось прочитать файл макросов %s: %w", path, err)
	}

	byName := make(map[string]models.Macro, len(macros))
	for _, m := range macros {
		if m.Name == "" || m.Command == "" {
			return nil, fmt.Errorf("макрос должен иметь имя и команду: %+v", m)
		}
		byName[m.Name] = m
	}

	return &macroStore{macros: macros, byName: byName}, nil
}

func (m *macroStore) list() []models.Macro {
	out := make([]models.Macro, len(m.macros))
	copy(out, m.macros)
	return out
}

func (m *macroStore) get(name string) (models.Macro, bool) {
	macro, ok := m.byName[name]
	return macro, ok
}

// ListMacros возвращает все доступные быстрые команды.
func (s *Service) ListMacros() []models.Macro {
	return s.macros.list()
}

// RunMacro отправляет строки макроса в очередь передачи сессии.
// Многострочные макросы разделяются переводами строк.
func (s *Service) RunMacro(sessionID, name string) (*models.EnqueueResult, error) {
	macro, ok := s.macros.get(name)
	if !ok {
		return nil, fmt.Errorf("%w: макрос %q не найден", apperrors.ErrDataNotFound, name)
	}
	return s.EnqueueBatch(sessionID, strings.Split(macro.Command, "\n"), SourceMacro)
}
