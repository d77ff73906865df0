package controllers

import (
	"image"

	"filter-viewer/internal/models"
)

// View is the display surface driven by the ViewerController. All methods
// are called from the UI goroutine.
type View interface {
	// ShowImage replaces the displayed image; nil clears the surface.
	ShowImage(img image.Image)
	SetContextMenu(items []models.MenuItem)
	SetFilterMenu(items []models.MenuItem)
	// SetToolbarFilters rebuilds the toolbar filter popup from scratch.
	SetToolbarFilters(items []models.MenuItem)
	SetViewerState(state models.ViewerState)
	SetZoom(scale float64)
	// ViewportSize is the visible area of the surface, used by fit-to-view.
	ViewportSize() (width, height float64)
	// ShowOpenDialog presents a file chooser; onChosen receives "" on cancel.
	ShowOpenDialog(extensions []string, onChosen func(path string))
	// ShowSaveDialog asks for a destination in dir whose name ends in
	// extension. The file must not be created or truncated before onChosen
	// runs; onChosen receives "" on cancel.
	ShowSaveDialog(dir, extension string, onChosen func(path string))
	ShowError(title string, err error)
	UpdateStatus(status string)
}
