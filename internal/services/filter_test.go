package services

import (
	"bytes"
	"context"
	"errors"
	"image"
	"testing"
	"time"

	"filter-viewer/internal/logger"
	"filter-viewer/internal/models"
	"filter-viewer/internal/opencv/memory"
	"filter-viewer/internal/opencv/safe"
	"filter-viewer/internal/processing/filters"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEngine() *FilterEngine {
	return NewFilterEngine(filters.NewRegistry(), nil, logger.NewNop())
}

func TestApplyNoneIsPlainDecode(t *testing.T) {
	data := pngBytes(t, 32, 24)
	want, _, err := image.Decode(bytes.NewReader(data))
	require.NoError(t, err)

	got, err := newEngine().Apply(context.Background(), data, models.FilterNone)
	require.NoError(t, err)
	assert.Equal(t, models.FilterNone, got.Kind)
	assert.True(t, samePixels(t, want, got.Image))
}

func TestApplyFiltersChangePixels(t *testing.T) {
	data := pngBytes(t, 32, 24)
	engine := newEngine()
	plain, err := engine.Apply(context.Background(), data, models.FilterNone)
	require.NoError(t, err)

	for _, kind := range models.FilterCatalog() {
		got, err := engine.Apply(context.Background(), data, kind)
		require.NoError(t, err, kind.ID())
		assert.Equal(t, kind, got.Kind)
		assert.Equal(t, plain.Bounds().Size(), got.Bounds().Size())
		assert.False(t, samePixels(t, plain.Image, got.Image), kind.ID())
	}
}

func TestApplyIsDeterministicAndNonCompositional(t *testing.T) {
	data := pngBytes(t, 20, 20)
	original := append([]byte(nil), data...)
	engine := newEngine()
	ctx := context.Background()

	for _, k1 := range models.FilterCatalog() {
		for _, k2 := range models.FilterCatalog() {
			_, err := engine.Apply(ctx, data, k1)
			require.NoError(t, err)
			afterK1, err := engine.Apply(ctx, data, k2)
			require.NoError(t, err)

			fresh, err := newEngine().Apply(ctx, data, k2)
			require.NoError(t, err)
			assert.True(t, samePixels(t, fresh.Image, afterK1.Image), "%s then %s", k1.ID(), k2.ID())
		}
	}
	assert.Equal(t, original, data, "input bytes must not be modified")
}

func TestApplyJPEG(t *testing.T) {
	got, err := newEngine().Apply(context.Background(), jpegBytes(t, 16, 12), models.FilterSepia)
	require.NoError(t, err)
	assert.Equal(t, image.Pt(16, 12), got.Bounds().Size())
}

func TestApplyDecodeFailure(t *testing.T) {
	engine := newEngine()
	for _, kind := range append(models.FilterCatalog(), models.FilterNone) {
		_, err := engine.Apply(context.Background(), []byte("definitely not an image"), kind)
		assert.ErrorIs(t, err, ErrDecodeFailed, kind.ID())
		assert.ErrorIs(t, err, ErrFilter)
	}
	assert.Equal(t, 5, engine.Stats().TotalFailed)
}

type emptyFilter struct{}

func (emptyFilter) Name() string { return "empty" }

func (emptyFilter) Apply(ctx context.Context, input *safe.Mat, params map[string]interface{}) (*safe.Mat, error) {
	return nil, nil
}

type failingFilter struct{}

func (failingFilter) Name() string { return "failing" }

func (failingFilter) Apply(ctx context.Context, input *safe.Mat, params map[string]interface{}) (*safe.Mat, error) {
	return nil, safe.ErrEmptyMat
}

func TestApplyRenderFailure(t *testing.T) {
	reg := filters.NewRegistry()
	reg.Register(models.FilterSepia, emptyFilter{})
	reg.Register(models.FilterBlur, failingFilter{})
	engine := NewFilterEngine(reg, nil, logger.NewNop())
	data := pngBytes(t, 8, 8)

	_, err := engine.Apply(context.Background(), data, models.FilterSepia)
	assert.ErrorIs(t, err, ErrRenderFailed)

	_, err = engine.Apply(context.Background(), data, models.FilterBlur)
	assert.ErrorIs(t, err, ErrRenderFailed)
	assert.True(t, errors.Is(err, safe.ErrEmptyMat))

	_, err = engine.Apply(context.Background(), data, models.FilterKind(42))
	assert.ErrorIs(t, err, ErrRenderFailed)
}

func TestApplyCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := newEngine().Apply(ctx, pngBytes(t, 4, 4), models.FilterBlur)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStats(t *testing.T) {
	engine := newEngine()
	data := pngBytes(t, 8, 8)
	_, err := engine.Apply(context.Background(), data, models.FilterNone)
	require.NoError(t, err)
	_, err = engine.Apply(context.Background(), data, models.FilterMonochrome)
	require.NoError(t, err)

	stats := engine.Stats()
	assert.Equal(t, 2, stats.TotalRendered)
	assert.Zero(t, stats.TotalFailed)
	assert.GreaterOrEqual(t, stats.AverageTime(), time.Duration(0))
}

func TestApplyReleasesMats(t *testing.T) {
	engine := newEngine()
	data := pngBytes(t, 16, 16)

	for _, kind := range models.FilterCatalog() {
		_, err := engine.Apply(context.Background(), data, kind)
		require.NoError(t, err, kind.ID())
	}

	mem := engine.MemoryStats()
	assert.Zero(t, mem.ActiveMats)
	assert.Zero(t, mem.InUse())
	assert.Equal(t, int64(2*16*16*3), mem.PeakBytes)
}

func TestApplyRespectsMemoryBudget(t *testing.T) {
	engine := NewFilterEngine(filters.NewRegistry(), memory.NewManager(logger.NewNop(), 100), logger.NewNop())
	data := pngBytes(t, 8, 8)

	_, err := engine.Apply(context.Background(), data, models.FilterSepia)
	assert.ErrorIs(t, err, ErrRenderFailed)
	assert.ErrorIs(t, err, memory.ErrBudgetExceeded)

	got, err := engine.Apply(context.Background(), data, models.FilterNone)
	require.NoError(t, err)
	assert.Equal(t, image.Pt(8, 8), got.Bounds().Size())
}
