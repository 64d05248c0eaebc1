package grbl_service

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iwtcode/grblService/internal/domain/models"
)

func TestParseStatusBasicTelegram(t *testing.T) {
	prev := models.MachineStatus{Mode: models.ModeUnknown}

	status, ok := ParseStatus("<Idle|WPos:1.000,2.500,-0.250|FS:0,0>", prev)
	require.True(t, ok, "валидная телеграмма должна распознаваться")
	require.Equal(t, models.ModeIdle, status.Mode)
	require.Equal(t, 1.0, status.WPos.X)
	require.Equal(t, 2.5, status.WPos.Y)
	require.Equal(t, -0.25, status.WPos.Z)
}

func TestParseStatusStickyFields(t *testing.T) {
	prev := models.MachineStatus{
		Mode: models.ModeRun,
		WPos: models.Position{X: 5, Y: 6, Z: 7},
	}

	// Телеграмма без WPos не должна сбрасывать координаты.
	status, ok := ParseStatus("<Hold:0|FS:0,0>", prev)
	require.True(t, ok)
	require.Equal(t, models.ModeHold, status.Mode, "подсостояние после двоеточия должно отбрасываться")
	require.Equal(t, prev.WPos, status.WPos, "координаты должны сохраняться между телеграммами")
}

func TestParseStatusUnknownModeKeepsPrevious(t *testing.T) {
	prev := models.MachineStatus{Mode: models.ModeIdle}

	status, ok := ParseStatus("<Quux|WPos:0.000,0.000,0.000>", prev)
	require.True(t, ok)
	require.Equal(t, models.ModeIdle, status.Mode, "нераспознанный режим не должен менять прежний")
}

func TestParseStatusMalformedWPosIgnored(t *testing.T) {
	prev := models.MachineStatus{WPos: models.Position{X: 1, Y: 2, Z: 3}}

	status, ok := ParseStatus("<Idle|WPos:abc,def>", prev)
	require.True(t, ok)
	require.Equal(t, prev.WPos, status.WPos, "нечитаемые координаты не должны портить прежние")
}

func TestParseStatusRejectsNonTelegrams(t *testing.T) {
	prev := models.MachineStatus{Mode: models.ModeIdle}

	for _, line := range []string{"", "ok", "error:20", "Grbl 1.1h ['$' for help]", "<Idle"} {
		status, ok := ParseStatus(line, prev)
		require.False(t, ok, "строка %q не является телеграммой", line)
		require.Equal(t, prev, status, "при отказе состояние должно возвращаться без изменений")
	}
}

func TestContainsSignatureAndVersion(t *testing.T) {
	require.True(t, ContainsSignature("Grbl 1.1h ['$' for help]"))
	require.True(t, ContainsSignature("\r\nGrbl 0.9j ['$' for help]"))
	require.False(t, ContainsSignature("ok"))
	require.False(t, ContainsSignature("<Idle|WPos:0.000,0.000,0.000>"))

	require.Equal(t, "1.1h", ExtractVersion("Grbl 1.1h ['$' for help]"))
	require.Equal(t, "0.9j", ExtractVersion("Grbl 0.9j ['$' for help]"))
	require.Equal(t, UnknownVersion, ExtractVersion("Grbl"), "баннер без версии должен давать заглушку")
	require.Equal(t, UnknownVersion, ExtractVersion("ok"))
}
