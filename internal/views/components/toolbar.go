package components

import (
	"fmt"

	"filter-viewer/internal/models"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// Toolbar holds the file buttons, the filter popup and the zoom controls.
// Every control reports the models.MenuItem it stands for.
type Toolbar struct {
	container    *fyne.Container
	openButton   *widget.Button
	saveButton   *widget.Button
	filterSelect *widget.Select
	zoomButtons  []*widget.Button
	zoomLabel    *widget.Label

	filterItems map[string]models.MenuItem
	syncing     bool

	actionHandler func(models.MenuItem)
}

func NewToolbar() *Toolbar {
	t := &Toolbar{filterItems: make(map[string]models.MenuItem)}
	t.createComponents()
	t.buildLayout()
	return t
}

func (t *Toolbar) createComponents() {
	t.openButton = widget.NewButtonWithIcon("Open", theme.FolderOpenIcon(), func() {
		t.emit(models.MenuItem{ID: "open", Action: models.ActionOpen})
	})
	t.openButton.Importance = widget.HighImportance

	t.saveButton = widget.NewButtonWithIcon("Save", theme.DocumentSaveIcon(), func() {
		t.emit(models.MenuItem{ID: "save", Action: models.ActionSave})
	})
	t.saveButton.Disable()

	t.filterSelect = widget.NewSelect(nil, t.onFilterChanged)
	t.filterSelect.PlaceHolder = "Filter"
	t.filterSelect.Disable()

	for _, item := range models.QuickZoomMenuItems() {
		t.zoomButtons = append(t.zoomButtons, t.newItemButton(item, nil))
	}
	t.zoomButtons = append(t.zoomButtons,
		t.newItemButton(zoomItem(models.ZoomIn), theme.ZoomInIcon()),
		t.newItemButton(zoomItem(models.ZoomOut), theme.ZoomOutIcon()),
		t.newItemButton(zoomItem(models.ZoomFit), theme.ZoomFitIcon()),
	)

	t.zoomLabel = widget.NewLabel(formatZoom(1.0))
}

func zoomItem(action models.ZoomAction) models.MenuItem {
	return models.MenuItem{ID: action.ID(), Label: action.Title(), Action: models.ActionZoom, Zoom: action}
}

func (t *Toolbar) newItemButton(item models.MenuItem, icon fyne.Resource) *widget.Button {
	label := item.Label
	if icon != nil {
		label = ""
	}
	b := widget.NewButtonWithIcon(label, icon, func() {
		t.emit(item)
	})
	b.Disable()
	return b
}

func (t *Toolbar) buildLayout() {
	zoomRow := container.NewHBox()
	for _, b := range t.zoomButtons {
		zoomRow.Add(b)
	}
	zoomRow.Add(t.zoomLabel)

	t.container = container.NewHBox(
		t.openButton,
		t.saveButton,
		widget.NewSeparator(),
		widget.NewLabel("Filter"),
		t.filterSelect,
		widget.NewSeparator(),
		zoomRow,
	)
}

func (t *Toolbar) SetActionHandler(handler func(models.MenuItem)) {
	t.actionHandler = handler
}

func (t *Toolbar) emit(item models.MenuItem) {
	if t.actionHandler != nil {
		t.actionHandler(item)
	}
}

// SetFilters replaces the filter popup entries. Separators are skipped and
// previous entries are discarded, so repeated calls never duplicate options.
func (t *Toolbar) SetFilters(items []models.MenuItem) {
	t.filterItems = make(map[string]models.MenuItem, len(items))
	options := make([]string, 0, len(items))
	for _, item := range items {
		if item.Separator {
			continue
		}
		t.filterItems[item.Label] = item
		options = append(options, item.Label)
	}

	t.syncing = true
	t.filterSelect.Options = options
	t.filterSelect.ClearSelected()
	t.syncing = false
	t.filterSelect.Refresh()
}

// FilterOptions returns the labels currently offered by the filter popup.
func (t *Toolbar) FilterOptions() []string {
	out := make([]string, len(t.filterSelect.Options))
	copy(out, t.filterSelect.Options)
	return out
}

func (t *Toolbar) onFilterChanged(label string) {
	if t.syncing {
		return
	}
	if item, ok := t.filterItems[label]; ok {
		t.emit(item)
	}
}

// SetViewerState enables image controls and mirrors the active filter
// without re-triggering a selection.
func (t *Toolbar) SetViewerState(state models.ViewerState) {
	t.syncing = true
	defer func() { t.syncing = false }()

	if !state.Loaded {
		t.saveButton.Disable()
		t.filterSelect.ClearSelected()
		t.filterSelect.Disable()
		for _, b := range t.zoomButtons {
			b.Disable()
		}
		return
	}

	t.saveButton.Enable()
	t.filterSelect.Enable()
	for _, b := range t.zoomButtons {
		b.Enable()
	}
	if state.Filter == models.FilterNone {
		t.filterSelect.ClearSelected()
	} else {
		t.filterSelect.SetSelected(state.Filter.Title())
	}
}

// SelectedFilter is the label shown in the filter popup.
func (t *Toolbar) SelectedFilter() string {
	return t.filterSelect.Selected
}

func (t *Toolbar) SetZoom(scale float64) {
	t.zoomLabel.SetText(formatZoom(scale))
}

func (t *Toolbar) ZoomText() string {
	return t.zoomLabel.Text
}

func formatZoom(scale float64) string {
	return fmt.Sprintf("%.0f%%", scale*100)
}

func (t *Toolbar) GetContainer() *fyne.Container {
	return t.container
}
