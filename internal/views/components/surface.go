package components

import (
	"image"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

const placeholderText = "Right-click or use File > Open to load an image"

// ImageSurface shows a single image at a given scale inside a scroll
// container. Right-click and the mouse wheel are reported to the owner.
// Wheel events are taken by the scroll content, since fyne hands them to
// the innermost Scrollable under the pointer.
type ImageSurface struct {
	widget.BaseWidget

	image       *canvas.Image
	placeholder *widget.Label
	background  *canvas.Rectangle
	content     *wheelArea
	scroll      *container.Scroll

	source image.Image
	scale  float64

	onSecondaryTap func(pos fyne.Position)
}

func NewImageSurface() *ImageSurface {
	s := &ImageSurface{scale: 1.0}

	s.image = canvas.NewImageFromImage(nil)
	s.image.FillMode = canvas.ImageFillStretch
	s.image.ScaleMode = canvas.ImageScaleSmooth
	s.image.Hide()

	s.placeholder = widget.NewLabel(placeholderText)
	s.placeholder.Alignment = fyne.TextAlignCenter

	s.background = canvas.NewRectangle(color.NRGBA{R: 252, G: 252, B: 252, A: 255})

	s.content = newWheelArea(container.NewCenter(s.image))
	s.scroll = container.NewScroll(s.content)
	s.scroll.Direction = container.ScrollBoth

	s.ExtendBaseWidget(s)
	return s
}

func (s *ImageSurface) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(container.NewStack(s.background, s.scroll, s.placeholder))
}

// SetImage replaces the displayed image. nil shows the placeholder.
func (s *ImageSurface) SetImage(img image.Image) {
	s.source = img
	if img == nil {
		s.image.Image = nil
		s.image.Hide()
		s.placeholder.Show()
	} else {
		s.image.Image = img
		s.image.Show()
		s.placeholder.Hide()
	}
	s.applyScale()
}

func (s *ImageSurface) Image() image.Image {
	return s.source
}

// SetScale sizes the image at scale times its pixel dimensions.
func (s *ImageSurface) SetScale(scale float64) {
	s.scale = scale
	s.applyScale()
}

func (s *ImageSurface) Scale() float64 {
	return s.scale
}

func (s *ImageSurface) applyScale() {
	if s.source == nil {
		s.image.SetMinSize(fyne.NewSize(0, 0))
	} else {
		b := s.source.Bounds()
		s.image.SetMinSize(fyne.NewSize(
			float32(float64(b.Dx())*s.scale),
			float32(float64(b.Dy())*s.scale),
		))
	}
	s.image.Refresh()
	s.content.Refresh()
	s.scroll.Refresh()
}

// DisplaySize is the on-screen size of the scaled image.
func (s *ImageSurface) DisplaySize() fyne.Size {
	return s.image.MinSize()
}

// ViewportSize is the visible area of the scroll container.
func (s *ImageSurface) ViewportSize() fyne.Size {
	return s.scroll.Size()
}

func (s *ImageSurface) SetOnSecondaryTap(fn func(pos fyne.Position)) {
	s.onSecondaryTap = fn
}

// SetOnWheel receives true for wheel-up and false for wheel-down. While set,
// the wheel zooms instead of scrolling.
func (s *ImageSurface) SetOnWheel(fn func(up bool)) {
	s.content.onWheel = fn
}

// TappedSecondary reports right-clicks inside the surface.
func (s *ImageSurface) TappedSecondary(ev *fyne.PointEvent) {
	if s.onSecondaryTap == nil {
		return
	}

	// Reject clicks outside the widget bounds.
	size := s.Size()
	if ev.Position.X < 0 || ev.Position.Y < 0 ||
		ev.Position.X > size.Width || ev.Position.Y > size.Height {
		return
	}
	s.onSecondaryTap(ev.AbsolutePosition)
}

// wheelArea is the scroll content; it fills at least the viewport.
type wheelArea struct {
	widget.BaseWidget
	content fyne.CanvasObject
	onWheel func(up bool)
}

func newWheelArea(content fyne.CanvasObject) *wheelArea {
	w := &wheelArea{content: content}
	w.ExtendBaseWidget(w)
	return w
}

func (w *wheelArea) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(w.content)
}

// Scrolled turns the mouse wheel into zoom steps.
func (w *wheelArea) Scrolled(ev *fyne.ScrollEvent) {
	if w.onWheel == nil {
		return
	}
	if ev.Scrolled.DY > 0 {
		w.onWheel(true)
	} else if ev.Scrolled.DY < 0 {
		w.onWheel(false)
	}
}
