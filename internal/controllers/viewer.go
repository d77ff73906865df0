package controllers

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"filter-viewer/internal/logger"
	"filter-viewer/internal/models"
	"filter-viewer/internal/services"
)

const renderTimeout = 30 * time.Second

// ErrNoImage is returned by operations that need a loaded document.
var ErrNoImage = errors.New("no image loaded")

// ViewerController keeps the ImageStore, the displayed image and every menu
// surface in step. It is not safe for concurrent use; all calls must come
// from the UI goroutine.
type ViewerController struct {
	store  *models.ImageStore
	images *services.ImageService
	engine *services.FilterEngine
	zoom   *models.Zoom
	logger logger.Logger

	view View

	state     models.ViewerState
	displayed *services.RenderedImage

	toolbarPopulated bool

	ctx    context.Context
	cancel context.CancelFunc
}

func NewViewerController(
	store *models.ImageStore,
	images *services.ImageService,
	engine *services.FilterEngine,
	log logger.Logger,
) *ViewerController {
	ctx, cancel := context.WithCancel(context.Background())
	return &ViewerController{
		store:  store,
		images: images,
		engine: engine,
		zoom:   models.NewZoom(),
		logger: log,
		ctx:    ctx,
		cancel: cancel,
	}
}

// SetView attaches the display surface and builds the menus for the current
// state.
func (c *ViewerController) SetView(view View) {
	c.view = view
	if view == nil {
		return
	}
	view.SetFilterMenu(models.FilterMenuItems())
	view.SetContextMenu(models.ContextMenuItems(c.state.Loaded))
	view.SetViewerState(c.state)
	view.SetZoom(c.zoom.Scale())
}

// Present runs when the window is first shown. The toolbar popup is filled
// from the filter catalog exactly once.
func (c *ViewerController) Present() {
	if c.toolbarPopulated || c.view == nil {
		return
	}
	c.view.SetToolbarFilters(models.FilterMenuItems())
	c.toolbarPopulated = true
}

func (c *ViewerController) State() models.ViewerState {
	return c.state
}

// Displayed returns the image currently on screen, or nil when empty.
func (c *ViewerController) Displayed() *services.RenderedImage {
	return c.displayed
}

func (c *ViewerController) ZoomScale() float64 {
	return c.zoom.Scale()
}

// Open loads path and shows it unfiltered, scaled to fit the viewport. On
// any failure the previous document and display are kept.
func (c *ViewerController) Open(path string) error {
	candidate, err := c.images.Read(path)
	if err != nil {
		c.handleError("Open failed", err)
		return err
	}

	rendered, err := c.render(candidate.Data, models.FilterNone)
	if err != nil {
		err = fmt.Errorf("%w: %w", models.ErrLoad, err)
		c.handleError("Open failed", err)
		return err
	}

	if err := c.images.Commit(candidate); err != nil {
		c.handleError("Open failed", err)
		return err
	}

	c.show(rendered)
	c.setState(models.LoadedWith(models.FilterNone))
	c.fitToView()
	c.updateStatus(fmt.Sprintf("Opened %s (%dx%d)", candidate.Path, candidate.Size.X, candidate.Size.Y))
	return nil
}

// SelectFilter renders the original bytes with kind. FilterNone behaves as
// RemoveFilter. Ignored when no image is loaded.
func (c *ViewerController) SelectFilter(kind models.FilterKind) error {
	if !c.state.Loaded {
		c.logger.Debug("ViewerController", "filter ignored without image", map[string]interface{}{
			"filter": kind.ID(),
		})
		return ErrNoImage
	}

	data, ok := c.store.CurrentBytes()
	if !ok {
		return ErrNoImage
	}

	rendered, err := c.render(data, kind)
	if err != nil {
		c.handleError("Filter failed", err)
		// The toolbar popup already shows the rejected choice.
		if c.view != nil {
			c.view.SetViewerState(c.state)
		}
		return err
	}

	c.show(rendered)
	c.setState(models.LoadedWith(kind))
	if kind == models.FilterNone {
		c.updateStatus("Filter removed")
	} else {
		c.updateStatus(kind.Title() + " applied")
	}
	return nil
}

// RemoveFilter shows the original image again.
func (c *ViewerController) RemoveFilter() error {
	return c.SelectFilter(models.FilterNone)
}

// Dismiss discards the document and returns to the empty state.
func (c *ViewerController) Dismiss() {
	if !c.state.Loaded {
		return
	}

	c.store.Clear()
	c.displayed = nil
	c.zoom.Reset()
	if c.view != nil {
		c.view.ShowImage(nil)
		c.view.SetZoom(c.zoom.Scale())
	}
	c.setState(models.StateEmpty)
	c.updateStatus("Image removed")
}

// Save writes the displayed image to path. State is unchanged either way.
func (c *ViewerController) Save(path string) error {
	if !c.state.Loaded || c.displayed == nil {
		c.handleError("Save failed", fmt.Errorf("%w: %w", models.ErrSave, ErrNoImage))
		return ErrNoImage
	}

	if err := c.images.SaveDisplayed(c.displayed.Image, path); err != nil {
		c.handleError("Save failed", err)
		return err
	}

	c.updateStatus("Saved " + path)
	return nil
}

// Zoom applies action to the display scale.
func (c *ViewerController) Zoom(action models.ZoomAction) float64 {
	if action == models.ZoomFit {
		return c.fitToView()
	}

	scale := c.zoom.Apply(action)
	if c.view != nil {
		c.view.SetZoom(scale)
	}
	return scale
}

// SetZoom assigns an absolute scale.
func (c *ViewerController) SetZoom(scale float64) float64 {
	scale = c.zoom.Set(scale)
	if c.view != nil {
		c.view.SetZoom(scale)
	}
	return scale
}

func (c *ViewerController) fitToView() float64 {
	if c.view == nil || c.displayed == nil {
		return c.zoom.Scale()
	}

	size := c.displayed.Bounds().Size()
	vw, vh := c.view.ViewportSize()
	scale := c.zoom.Fit(float64(size.X), float64(size.Y), vw, vh)
	c.view.SetZoom(scale)
	return scale
}

// Dispatch performs the operation a menu item stands for.
func (c *ViewerController) Dispatch(item models.MenuItem) {
	switch item.Action {
	case models.ActionNone:
	case models.ActionOpen:
		c.RequestOpen()
	case models.ActionSave:
		c.RequestSave()
	case models.ActionApplyFilter:
		_ = c.SelectFilter(item.Filter)
	case models.ActionRemoveFilter:
		_ = c.RemoveFilter()
	case models.ActionZoom:
		c.Zoom(item.Zoom)
	case models.ActionDismiss:
		c.Dismiss()
	default:
		c.logger.Warning("ViewerController", "unhandled menu action", map[string]interface{}{
			"id":     item.ID,
			"action": int(item.Action),
		})
	}
}

// RequestOpen asks the view for a file and opens it. Cancelling does nothing.
func (c *ViewerController) RequestOpen() {
	if c.view == nil {
		return
	}
	c.view.ShowOpenDialog(services.AcceptedExtensions(), func(path string) {
		if path == "" {
			return
		}
		_ = c.Open(path)
	})
}

// RequestSave asks the view for a destination limited to the opened
// extension, starting in the opened file's folder, and saves the displayed
// image there.
func (c *ViewerController) RequestSave() {
	if c.view == nil || !c.state.Loaded {
		return
	}
	doc, ok := c.store.Document()
	if !ok {
		return
	}
	c.view.ShowSaveDialog(filepath.Dir(doc.Path), doc.Extension, func(path string) {
		if path == "" {
			return
		}
		_ = c.Save(path)
	})
}

// Diagnostics summarises filter engine activity for display.
func (c *ViewerController) Diagnostics() string {
	stats := c.engine.Stats()
	mem := c.engine.MemoryStats()
	return fmt.Sprintf("State: %s\nRendered: %d\nFailed: %d\nAverage render time: %s\nLive Mats: %d\nPeak Mat memory: %d KiB",
		c.state, stats.TotalRendered, stats.TotalFailed, stats.AverageTime().Round(time.Microsecond),
		mem.ActiveMats, mem.PeakBytes/1024)
}

// Shutdown cancels in-flight renders and drops the document.
func (c *ViewerController) Shutdown() {
	c.cancel()
	c.store.Clear()
	c.displayed = nil
	c.logger.Info("ViewerController", "controller shut down", nil)
}

func (c *ViewerController) render(data []byte, kind models.FilterKind) (*services.RenderedImage, error) {
	ctx, cancel := context.WithTimeout(c.ctx, renderTimeout)
	defer cancel()
	return c.engine.Apply(ctx, data, kind)
}

func (c *ViewerController) show(rendered *services.RenderedImage) {
	c.displayed = rendered
	if c.view != nil {
		c.view.ShowImage(rendered.Image)
	}
}

// setState records the new state and rebuilds the context menu whenever
// the viewer moves between empty and loaded.
func (c *ViewerController) setState(next models.ViewerState) {
	prev := c.state
	c.state = next

	c.logger.Debug("ViewerController", "state changed", map[string]interface{}{
		"from": prev.String(),
		"to":   next.String(),
	})

	if c.view == nil {
		return
	}
	if prev.Loaded != next.Loaded {
		c.view.SetContextMenu(models.ContextMenuItems(next.Loaded))
	}
	c.view.SetViewerState(next)
}

func (c *ViewerController) updateStatus(status string) {
	if c.view != nil {
		c.view.UpdateStatus(status)
	}
}

func (c *ViewerController) handleError(title string, err error) {
	c.logger.Error("ViewerController", err, map[string]interface{}{
		"operation": title,
		"state":     c.state.String(),
	})
	if c.view != nil {
		c.view.ShowError(title, err)
	}
}
