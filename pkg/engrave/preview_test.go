package engrave

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestProjectStartsAtOriginAndHoldsAxes(t *testing.T) {
	segments := Project([]string{
		"G0 X5.000 Y0.000",
		"G1 Y3.000", // X не указан и должен сохраниться
	})

	require.Len(t, segments, 2)
	require.Equal(t, 0.0, segments[0].X0, "курсор должен стартовать из начала координат")
	require.Equal(t, 0.0, segments[0].Y0)
	require.Equal(t, 5.0, segments[0].X1)
	require.Equal(t, 5.0, segments[1].X0, "ось без слова в строке должна удерживаться")
	require.Equal(t, 5.0, segments[1].X1)
	require.Equal(t, 3.0, segments[1].Y1)
}

func TestProjectEnergizedFlag(t *testing.T) {
	segments := Project([]string{
		"M3 S800 G1 X1.000 Y0.000",
		"M5 S0 G0 X2.000 Y0.000",
		"G1 X3.000", // без M3 в строке отрезок холостой
	})

	require.Len(t, segments, 3)
	require.True(t, segments[0].Energized, "M3 с мощностью должен давать прожигающий отрезок")
	require.False(t, segments[1].Energized, "M5 должен давать холостой отрезок")
	require.False(t, segments[2].Energized)
}

func TestProjectSkipsLinesWithoutMotion(t *testing.T) {
	segments := Project([]string{
		"G21",
		"F1000",
		"M5 S0",
		"$H",
		"",
		"; комментарий",
		"G0 X1.000 Y1.000",
	})

	require.Len(t, segments, 1, "отрезки должны строиться только по строкам с перемещением")
	require.Equal(t, 1.0, segments[0].X1)
	require.Equal(t, 1.0, segments[0].Y1)
}

func TestProjectEmptyProgram(t *testing.T) {
	require.Empty(t, Project(nil))
	require.Empty(t, Project([]string{"G21", "M5 S0"}))
}
