package components

import (
	"fmt"

	"filter-viewer/internal/models"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// StatusBar displays the last status message and details about the
// displayed image.
type StatusBar struct {
	container   *fyne.Container
	statusLabel *widget.Label
	imageInfo   *widget.Label
	filterInfo  *widget.Label
}

func NewStatusBar() *StatusBar {
	sb := &StatusBar{}
	sb.createComponents()
	sb.buildLayout()
	return sb
}

func (sb *StatusBar) createComponents() {
	sb.statusLabel = widget.NewLabel("Ready")
	sb.imageInfo = widget.NewLabel("No image loaded")
	sb.filterInfo = widget.NewLabel("")
}

func (sb *StatusBar) buildLayout() {
	sb.container = container.NewHBox(
		sb.statusLabel,
		widget.NewSeparator(),
		sb.imageInfo,
		widget.NewSeparator(),
		sb.filterInfo,
	)
}

func (sb *StatusBar) SetStatus(status string) {
	sb.statusLabel.SetText(status)
}

func (sb *StatusBar) GetStatus() string {
	return sb.statusLabel.Text
}

// SetImageInfo shows the pixel size of the displayed image; zero clears it.
func (sb *StatusBar) SetImageInfo(width, height int) {
	if width <= 0 || height <= 0 {
		sb.imageInfo.SetText("No image loaded")
		return
	}
	sb.imageInfo.SetText(fmt.Sprintf("Image: %dx%d", width, height))
}

func (sb *StatusBar) SetViewerState(state models.ViewerState) {
	if !state.Loaded {
		sb.filterInfo.SetText("")
		return
	}
	if state.Filter == models.FilterNone {
		sb.filterInfo.SetText("Original")
		return
	}
	sb.filterInfo.SetText("Filter: " + state.Filter.Title())
}

func (sb *StatusBar) GetContainer() *fyne.Container {
	return sb.container
}
