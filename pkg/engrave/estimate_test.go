package engrave

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestEstimateTotalBeforeFirstAck(t *testing.T) {
	_, ok := EstimateTotal(5*time.Second, 0, 100)
	require.False(t, ok, "до первого подтверждения оценка недоступна")
}

func TestEstimateTotalExtrapolatesLinearly(t *testing.T) {
	// 10 строк за 10 секунд, осталось 90: всего должно выйти 100 секунд.
	total, ok := EstimateTotal(10*time.Second, 10, 90)
	require.True(t, ok)
	require.Equal(t, 100*time.Second, total)
}

func TestEstimateTotalCompletedJob(t *testing.T) {
	total, ok := EstimateTotal(42*time.Second, 200, 0)
	require.True(t, ok)
	require.Equal(t, 42*time.Second, total, "после завершения оценка равна фактическому времени")
}

func TestFormatDuration(t *testing.T) {
	require.Equal(t, "00:00:00", FormatDuration(0))
	require.Equal(t, "00:00:59", FormatDuration(59*time.Second+900*time.Millisecond))
	require.Equal(t, "00:01:05", FormatDuration(65*time.Second))
	require.Equal(t, "02:03:04", FormatDuration(2*time.Hour+3*time.Minute+4*time.Second))
	require.Equal(t, "00:00:00", FormatDuration(-time.Second))
}
