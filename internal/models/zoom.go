package models

import (
	"fmt"
	"math"
)

const (
	MinZoom  = 0.25
	MaxZoom  = 5.0
	ZoomStep = 0.25
)

// ZoomAction is the closed set of zoom commands exposed to menus and the
// toolbar's quick-zoom control.
type ZoomAction int

const (
	ZoomX4 ZoomAction = iota
	ZoomX2
	ZoomXHalf
	ZoomXQuarter
	ZoomIn
	ZoomOut
	ZoomFit
)

var zoomActions = []ZoomAction{ZoomX4, ZoomX2, ZoomXHalf, ZoomXQuarter, ZoomIn, ZoomOut, ZoomFit}

// QuickZoomActions are the multiplier presets, in toolbar order.
func QuickZoomActions() []ZoomAction {
	return []ZoomAction{ZoomX4, ZoomX2, ZoomXHalf, ZoomXQuarter}
}

func (a ZoomAction) ID() string {
	switch a {
	case ZoomX4:
		return "zoomX4"
	case ZoomX2:
		return "zoomX2"
	case ZoomXHalf:
		return "zoomX0.5"
	case ZoomXQuarter:
		return "zoomX0.25"
	case ZoomIn:
		return "zoomIn"
	case ZoomOut:
		return "zoomOut"
	case ZoomFit:
		return "zoomFit"
	default:
		return fmt.Sprintf("zoom(%d)", int(a))
	}
}

func (a ZoomAction) Title() string {
	switch a {
	case ZoomX4:
		return "x4"
	case ZoomX2:
		return "x2"
	case ZoomXHalf:
		return "x0.5"
	case ZoomXQuarter:
		return "x0.25"
	case ZoomIn:
		return "Zoom In"
	case ZoomOut:
		return "Zoom Out"
	case ZoomFit:
		return "Fit"
	default:
		return a.ID()
	}
}

func (a ZoomAction) String() string {
	return a.ID()
}

// Factor returns the multiplier for quick-zoom presets and false otherwise.
func (a ZoomAction) Factor() (float64, bool) {
	switch a {
	case ZoomX4:
		return 4.0, true
	case ZoomX2:
		return 2.0, true
	case ZoomXHalf:
		return 0.5, true
	case ZoomXQuarter:
		return 0.25, true
	default:
		return 0, false
	}
}

func ParseZoomAction(id string) (ZoomAction, error) {
	for _, a := range zoomActions {
		if a.ID() == id {
			return a, nil
		}
	}
	return ZoomFit, fmt.Errorf("unknown zoom identifier %q", id)
}

// Zoom holds the magnification of the display surface, always within
// [MinZoom, MaxZoom].
type Zoom struct {
	scale float64
}

func NewZoom() *Zoom {
	return &Zoom{scale: 1.0}
}

func (z *Zoom) Scale() float64 {
	return z.scale
}

// Set assigns an absolute scale, clamped to the allowed range.
func (z *Zoom) Set(scale float64) float64 {
	z.scale = clampZoom(scale)
	return z.scale
}

func (z *Zoom) Multiply(factor float64) float64 {
	return z.Set(z.scale * factor)
}

func (z *Zoom) ZoomIn() float64 {
	return z.Set(z.scale + ZoomStep)
}

func (z *Zoom) ZoomOut() float64 {
	return z.Set(z.scale - ZoomStep)
}

// Fit picks the largest scale at which content fits inside viewport.
// Degenerate sizes leave the scale unchanged.
func (z *Zoom) Fit(contentW, contentH, viewportW, viewportH float64) float64 {
	if contentW <= 0 || contentH <= 0 || viewportW <= 0 || viewportH <= 0 {
		return z.scale
	}
	return z.Set(math.Min(viewportW/contentW, viewportH/contentH))
}

func (z *Zoom) Reset() {
	z.scale = 1.0
}

// Apply performs a non-fit action. ZoomFit needs sizes and is handled by Fit.
func (z *Zoom) Apply(action ZoomAction) float64 {
	if factor, ok := action.Factor(); ok {
		return z.Multiply(factor)
	}
	switch action {
	case ZoomIn:
		return z.ZoomIn()
	case ZoomOut:
		return z.ZoomOut()
	default:
		return z.scale
	}
}

func clampZoom(scale float64) float64 {
	if math.IsNaN(scale) {
		return 1.0
	}
	return math.Max(MinZoom, math.Min(MaxZoom, scale))
}
