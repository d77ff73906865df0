// Package filters holds the OpenCV implementations of the viewer's fixed
// filter set. Every filter reads a BGR Mat and returns a new BGR Mat of the
// same size; the input is never modified.
package filters

import (
	"context"
	"fmt"

	"filter-viewer/internal/models"
	"filter-viewer/internal/opencv/safe"
)

type Filter interface {
	Name() string
	Apply(ctx context.Context, input *safe.Mat, params map[string]interface{}) (*safe.Mat, error)
}

// Registry maps each non-identity FilterKind to its implementation.
type Registry struct {
	filters map[models.FilterKind]Filter
}

// NewRegistry returns a registry populated for every kind in the catalog.
func NewRegistry() *Registry {
	return &Registry{
		filters: map[models.FilterKind]Filter{
			models.FilterMonochrome: NewMonochromeFilter(),
			models.FilterSepia:      NewSepiaFilter(),
			models.FilterBlur:       NewBlurFilter(),
			models.FilterComic:      NewComicFilter(),
		},
	}
}

func (r *Registry) Lookup(kind models.FilterKind) (Filter, bool) {
	f, ok := r.filters[kind]
	return f, ok
}

// Register replaces the implementation for kind.
func (r *Registry) Register(kind models.FilterKind, f Filter) {
	r.filters[kind] = f
}

func floatParam(params map[string]interface{}, key string, fallback float64) float64 {
	switch v := params[key].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	default:
		return fallback
	}
}

func checkInput(ctx context.Context, input *safe.Mat, name string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if err := safe.ValidateBGR(input, name); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}
