package memory

import (
	"testing"

	"filter-viewer/internal/logger"
	"filter-viewer/internal/opencv/safe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"
)

func TestTrackAndRelease(t *testing.T) {
	m := NewManager(logger.NewNop(), 0)

	mat, err := safe.Wrap(gocv.NewMatWithSize(10, 20, gocv.MatTypeCV8UC3), "test")
	require.NoError(t, err)

	m.Track(mat)
	m.Track(mat)
	stats := m.GetStats()
	assert.Equal(t, int64(1), stats.ActiveMats)
	assert.Equal(t, int64(600), stats.InUse())
	assert.Equal(t, int64(600), stats.PeakBytes)

	m.Release(mat)
	stats = m.GetStats()
	assert.Equal(t, int64(0), stats.ActiveMats)
	assert.Equal(t, int64(0), stats.InUse())
	assert.Equal(t, int64(600), stats.PeakBytes)
	assert.False(t, mat.IsValid())
}

func TestReserveRespectsBudget(t *testing.T) {
	m := NewManager(logger.NewNop(), 1000)

	require.NoError(t, m.Reserve(10, 10, gocv.MatTypeCV8UC3))
	assert.ErrorIs(t, m.Reserve(20, 20, gocv.MatTypeCV8UC3), ErrBudgetExceeded)

	mat, err := safe.Wrap(gocv.NewMatWithSize(10, 30, gocv.MatTypeCV8UC3), "test")
	require.NoError(t, err)
	m.Track(mat)
	defer m.Release(mat)

	assert.ErrorIs(t, m.Reserve(1, 200, gocv.MatTypeCV8UC1), ErrBudgetExceeded)
	assert.NoError(t, m.Reserve(1, 100, gocv.MatTypeCV8UC1))
}

func TestReleaseUntrackedClosesMat(t *testing.T) {
	m := NewManager(logger.NewNop(), 0)
	mat, err := safe.Wrap(gocv.NewMatWithSize(2, 2, gocv.MatTypeCV8UC1), "test")
	require.NoError(t, err)

	m.Release(mat)
	assert.False(t, mat.IsValid())
	assert.Equal(t, int64(0), m.GetStats().TotalReleased)
}

func TestCleanupForgetsLiveRecords(t *testing.T) {
	m := NewManager(logger.NewNop(), 0)
	mat, err := safe.Wrap(gocv.NewMatWithSize(4, 4, gocv.MatTypeCV8UC1), "test")
	require.NoError(t, err)
	defer mat.Close()

	m.Track(mat)
	m.Cleanup()
	assert.Equal(t, int64(0), m.GetStats().ActiveMats)
	assert.Equal(t, int64(0), m.GetStats().InUse())
}

func TestMatTypeSize(t *testing.T) {
	assert.Equal(t, 1, MatTypeSize(gocv.MatTypeCV8UC1))
	assert.Equal(t, 3, MatTypeSize(gocv.MatTypeCV8UC3))
	assert.Equal(t, 12, MatTypeSize(gocv.MatTypeCV32FC3))
}
