package safe

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocv.io/x/gocv"
)

func newTestMat(t *testing.T, rows, cols int, matType gocv.MatType) *Mat {
	t.Helper()
	m, err := Wrap(gocv.NewMatWithSize(rows, cols, matType), "test")
	require.NoError(t, err)
	return m
}

func TestWrapAndClose(t *testing.T) {
	m, err := Wrap(gocv.NewMatWithSize(4, 6, gocv.MatTypeCV8UC3), "test")
	require.NoError(t, err)

	assert.True(t, m.IsValid())
	assert.Equal(t, "test", m.Tag())
	assert.Equal(t, 4, m.Rows())
	assert.Equal(t, 6, m.Cols())
	assert.Equal(t, 3, m.Channels())
	assert.NoError(t, ValidateBGR(m, "test"))

	m.Close()
	m.Close()
	assert.False(t, m.IsValid())
	assert.True(t, m.Empty())
	assert.Zero(t, m.Rows())
}

func TestValidateDimensions(t *testing.T) {
	assert.NoError(t, ValidateDimensions(5, 1, "test"))
	assert.Error(t, ValidateDimensions(0, 5, "test"))
	assert.Error(t, ValidateDimensions(40000, 5, "test"))
}

func TestWrapEmpty(t *testing.T) {
	_, err := Wrap(gocv.NewMat(), "empty")
	assert.True(t, errors.Is(err, ErrEmptyMat))
}

func TestCloneIsIndependent(t *testing.T) {
	m := newTestMat(t, 2, 2, gocv.MatTypeCV8UC1)
	defer m.Close()

	c, err := m.Clone()
	require.NoError(t, err)
	defer c.Close()
	assert.NotEqual(t, m.ID(), c.ID())

	m.Close()
	assert.True(t, c.IsValid())
}

func TestValidateBGRRejectsGray(t *testing.T) {
	m := newTestMat(t, 2, 2, gocv.MatTypeCV8UC1)
	defer m.Close()

	assert.Error(t, ValidateBGR(m, "test"))
	assert.Error(t, ValidateMatForOperation(nil, "test"))
}
