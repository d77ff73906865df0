package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"sync"
	"time"

	"filter-viewer/internal/logger"
	"filter-viewer/internal/models"
	"filter-viewer/internal/opencv/conversion"
	"filter-viewer/internal/opencv/memory"
	"filter-viewer/internal/processing/filters"

	"gocv.io/x/gocv"
)

var (
	ErrFilter = errors.New("filter failed")
	// ErrDecodeFailed is returned when the input bytes are not a decodable image.
	ErrDecodeFailed = fmt.Errorf("%w: decode failed", ErrFilter)
	// ErrRenderFailed is returned when the transform produced no output.
	ErrRenderFailed = fmt.Errorf("%w: render failed", ErrFilter)
)

// RenderedImage is what the display surface shows. It is derived from the
// document's original bytes and is never fed back into the engine.
type RenderedImage struct {
	Kind       models.FilterKind
	Image      image.Image
	RenderTime time.Duration
}

// Bounds is a convenience for callers sizing the display.
func (r *RenderedImage) Bounds() image.Rectangle {
	if r == nil || r.Image == nil {
		return image.Rectangle{}
	}
	return r.Image.Bounds()
}

// FilterEngine turns encoded bytes plus a FilterKind into a RenderedImage.
// It keeps no per-image state: every call decodes the bytes it is given, so
// results never depend on what was rendered before.
type FilterEngine struct {
	registry *filters.Registry
	memory   *memory.Manager
	logger   logger.Logger

	mu    sync.Mutex
	stats FilterStats
}

// FilterStats summarises engine activity for diagnostics.
type FilterStats struct {
	TotalRendered int
	TotalFailed   int
	TotalTime     time.Duration
}

func (s FilterStats) AverageTime() time.Duration {
	if s.TotalRendered == 0 {
		return 0
	}
	return s.TotalTime / time.Duration(s.TotalRendered)
}

func NewFilterEngine(registry *filters.Registry, mem *memory.Manager, log logger.Logger) *FilterEngine {
	if registry == nil {
		registry = filters.NewRegistry()
	}
	if mem == nil {
		mem = memory.NewManager(log, memory.DefaultMaxBytes)
	}
	return &FilterEngine{registry: registry, memory: mem, logger: log}
}

// Apply renders data with kind. FilterNone returns the plain decode.
func (fe *FilterEngine) Apply(ctx context.Context, data []byte, kind models.FilterKind) (*RenderedImage, error) {
	start := time.Now()

	rendered, err := fe.render(ctx, data, kind)
	if err != nil {
		fe.record(0, false)
		fe.logger.Error("FilterEngine", err, map[string]interface{}{
			"filter": kind.ID(),
			"bytes":  len(data),
		})
		return nil, err
	}

	rendered.RenderTime = time.Since(start)
	fe.record(rendered.RenderTime, true)
	fe.logger.Debug("FilterEngine", "image rendered", map[string]interface{}{
		"filter":    kind.ID(),
		"width":     rendered.Bounds().Dx(),
		"height":    rendered.Bounds().Dy(),
		"render_ms": rendered.RenderTime.Milliseconds(),
	})
	return rendered, nil
}

func (fe *FilterEngine) render(ctx context.Context, data []byte, kind models.FilterKind) (*RenderedImage, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if !kind.Valid() {
		return nil, fmt.Errorf("%w: unknown filter kind %d", ErrRenderFailed, int(kind))
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecodeFailed, err)
	}

	if kind == models.FilterNone {
		return &RenderedImage{Kind: kind, Image: img}, nil
	}

	filter, ok := fe.registry.Lookup(kind)
	if !ok {
		return nil, fmt.Errorf("%w: no implementation for %s", ErrRenderFailed, kind.ID())
	}

	b := img.Bounds()
	if err := fe.memory.Reserve(b.Dy(), b.Dx(), gocv.MatTypeCV8UC3); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRenderFailed, err)
	}

	input, err := conversion.ImageToMat(img)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecodeFailed, err)
	}
	fe.memory.Track(input)
	defer fe.memory.Release(input)

	output, err := filter.Apply(ctx, input, kind.Params())
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %s: %w", ErrRenderFailed, filter.Name(), err)
	}
	if output == nil {
		return nil, fmt.Errorf("%w: %s returned no output", ErrRenderFailed, filter.Name())
	}
	fe.memory.Track(output)
	defer fe.memory.Release(output)

	result, err := conversion.MatToImage(output)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRenderFailed, err)
	}

	return &RenderedImage{Kind: kind, Image: result}, nil
}

func (fe *FilterEngine) record(d time.Duration, ok bool) {
	fe.mu.Lock()
	defer fe.mu.Unlock()

	if !ok {
		fe.stats.TotalFailed++
		return
	}
	fe.stats.TotalRendered++
	fe.stats.TotalTime += d
}

// MemoryStats reports Mat accounting for renders in flight and the peak so far.
func (fe *FilterEngine) MemoryStats() memory.Stats {
	return fe.memory.GetStats()
}

// Shutdown drops any Mat records still held.
func (fe *FilterEngine) Shutdown() {
	fe.memory.Cleanup()
}

// Stats returns a snapshot of engine counters.
func (fe *FilterEngine) Stats() FilterStats {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.stats
}
