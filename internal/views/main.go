package views

import (
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"filter-viewer/internal/controllers"
	"filter-viewer/internal/models"
	"filter-viewer/internal/views/components"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

var _ controllers.View = (*MainView)(nil)

// MainView is the single viewer window: toolbar on top, the image surface
// in the middle and a status bar at the bottom.
type MainView struct {
	window        fyne.Window
	mainContainer *fyne.Container
	toolbar       *components.Toolbar
	surface       *components.ImageSurface
	statusBar     *components.StatusBar

	mainMenu     *fyne.MainMenu
	fileMenu     *fyne.Menu
	filtersMenu  *fyne.Menu
	viewMenu     *fyne.Menu
	saveItem     *fyne.MenuItem
	contextItems []models.MenuItem
	loaded       bool

	actionHandler func(models.MenuItem)
	statsProvider func() string
	quitHandler   func()
}

func NewMainView(window fyne.Window) *MainView {
	view := &MainView{window: window}

	view.initializeComponents()
	view.buildLayout()
	view.buildMainMenu()
	view.setupEventHandlers()

	return view
}

func (mv *MainView) initializeComponents() {
	mv.toolbar = components.NewToolbar()
	mv.surface = components.NewImageSurface()
	mv.statusBar = components.NewStatusBar()
}

func (mv *MainView) buildLayout() {
	mv.mainContainer = container.NewBorder(
		mv.toolbar.GetContainer(),
		mv.statusBar.GetContainer(),
		nil,
		nil,
		mv.surface,
	)
	mv.window.SetContent(mv.mainContainer)
}

func (mv *MainView) buildMainMenu() {
	mv.saveItem = fyne.NewMenuItem("Save Image...", func() {
		mv.dispatch(models.MenuItem{ID: "save", Action: models.ActionSave})
	})
	mv.saveItem.Disabled = true

	quit := fyne.NewMenuItem("Quit", func() {
		if mv.quitHandler != nil {
			mv.quitHandler()
		}
	})
	quit.IsQuit = true

	mv.fileMenu = fyne.NewMenu("File",
		fyne.NewMenuItem("Open Image...", func() {
			mv.dispatch(models.MenuItem{ID: "open", Action: models.ActionOpen})
		}),
		fyne.NewMenuItemSeparator(),
		mv.saveItem,
		fyne.NewMenuItemSeparator(),
		quit,
	)

	mv.filtersMenu = fyne.NewMenu("Filters")

	viewItems := append(models.ZoomMenuItems(), models.SeparatorItem())
	viewItems = append(viewItems, models.QuickZoomMenuItems()...)
	mv.viewMenu = toFyneMenu("View", viewItems, mv.dispatch)
	mv.setViewMenuEnabled(false)

	diagnostics := fyne.NewMenu("Diagnostics",
		fyne.NewMenuItem("Render Statistics", func() {
			if mv.statsProvider != nil {
				dialog.ShowInformation("Render Statistics", mv.statsProvider(), mv.window)
			}
		}),
	)

	mv.mainMenu = fyne.NewMainMenu(mv.fileMenu, mv.filtersMenu, mv.viewMenu, diagnostics)
	mv.window.SetMainMenu(mv.mainMenu)
}

func (mv *MainView) setupEventHandlers() {
	mv.toolbar.SetActionHandler(mv.dispatch)

	mv.surface.SetOnSecondaryTap(func(pos fyne.Position) {
		if len(mv.contextItems) == 0 {
			return
		}
		menu := toFyneMenu("", mv.contextItems, mv.dispatch)
		widget.ShowPopUpMenuAtPosition(menu, mv.window.Canvas(), pos)
	})

	mv.surface.SetOnWheel(func(up bool) {
		if !mv.loaded {
			return
		}
		action := models.ZoomOut
		if up {
			action = models.ZoomIn
		}
		mv.dispatch(models.MenuItem{ID: action.ID(), Action: models.ActionZoom, Zoom: action})
	})
}

// SetActionHandler connects every menu, toolbar and context menu entry to
// handler.
func (mv *MainView) SetActionHandler(handler func(models.MenuItem)) {
	mv.actionHandler = handler
}

// SetStatsProvider supplies the text shown by Diagnostics > Render Statistics.
func (mv *MainView) SetStatsProvider(provider func() string) {
	mv.statsProvider = provider
}

func (mv *MainView) SetQuitHandler(handler func()) {
	mv.quitHandler = handler
}

func (mv *MainView) dispatch(item models.MenuItem) {
	if mv.actionHandler != nil {
		mv.actionHandler(item)
	}
}

func (mv *MainView) ShowImage(img image.Image) {
	mv.surface.SetImage(img)
	if img == nil {
		mv.statusBar.SetImageInfo(0, 0)
		return
	}
	b := img.Bounds()
	mv.statusBar.SetImageInfo(b.Dx(), b.Dy())
}

func (mv *MainView) SetContextMenu(items []models.MenuItem) {
	mv.contextItems = items
}

func (mv *MainView) SetFilterMenu(items []models.MenuItem) {
	mv.filtersMenu.Items = toFyneItems(items, mv.dispatch)
	mv.mainMenu.Refresh()
}

func (mv *MainView) SetToolbarFilters(items []models.MenuItem) {
	mv.toolbar.SetFilters(items)
}

func (mv *MainView) SetViewerState(state models.ViewerState) {
	mv.toolbar.SetViewerState(state)
	mv.statusBar.SetViewerState(state)
	mv.loaded = state.Loaded
	mv.saveItem.Disabled = !state.Loaded
	mv.setViewMenuEnabled(state.Loaded)
	mv.mainMenu.Refresh()
}

func (mv *MainView) setViewMenuEnabled(enabled bool) {
	for _, item := range mv.viewMenu.Items {
		if !item.IsSeparator {
			item.Disabled = !enabled
		}
	}
}

func (mv *MainView) SetZoom(scale float64) {
	mv.surface.SetScale(scale)
	mv.toolbar.SetZoom(scale)
}

func (mv *MainView) ViewportSize() (float64, float64) {
	size := mv.surface.ViewportSize()
	if size.Width <= 0 || size.Height <= 0 {
		size = mv.window.Canvas().Size()
	}
	return float64(size.Width), float64(size.Height)
}

func (mv *MainView) ShowOpenDialog(extensions []string, onChosen func(path string)) {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			mv.ShowError("Open failed", err)
			return
		}
		if reader == nil {
			onChosen("")
			return
		}
		path := reader.URI().Path()
		reader.Close()
		onChosen(path)
	}, mv.window)
	fd.SetFilter(storage.NewExtensionFileFilter(dotted(extensions)))
	fd.Show()
}

// ShowSaveDialog asks for a folder and a file name ending in .extension.
// fyne's own save dialog opens and truncates the file before handing it
// over, so the path is collected with a form and only written by the
// caller once the save is known to be valid.
func (mv *MainView) ShowSaveDialog(dir, extension string, onChosen func(path string)) {
	folder := widget.NewLabel(dir)
	folder.Truncation = fyne.TextTruncateEllipsis
	choose := widget.NewButtonWithIcon("", theme.FolderOpenIcon(), func() {
		fd := dialog.NewFolderOpen(func(uri fyne.ListableURI, err error) {
			if err != nil {
				mv.ShowError("Save failed", err)
				return
			}
			if uri != nil {
				folder.SetText(uri.Path())
			}
		}, mv.window)
		if start, err := storage.ListerForURI(storage.NewFileURI(folder.Text)); err == nil {
			fd.SetLocation(start)
		}
		fd.Show()
	})

	name := widget.NewEntry()
	name.SetText("untitled." + extension)
	name.Validator = func(text string) error {
		return validateSaveName(text, extension)
	}

	items := []*widget.FormItem{
		widget.NewFormItem("Folder", container.NewBorder(nil, nil, nil, choose, folder)),
		widget.NewFormItem("Name", name),
	}
	form := dialog.NewForm("Save Image", "Save", "Cancel", items, func(ok bool) {
		if !ok {
			onChosen("")
			return
		}
		mv.confirmOverwrite(filepath.Join(folder.Text, strings.TrimSpace(name.Text)), onChosen)
	}, mv.window)
	form.Show()
}

// confirmOverwrite passes path on directly when nothing exists there and
// asks first otherwise.
func (mv *MainView) confirmOverwrite(path string, onChosen func(path string)) {
	if _, err := os.Stat(path); err != nil {
		onChosen(path)
		return
	}
	msg := fmt.Sprintf("%s already exists. Do you want to replace it?", filepath.Base(path))
	dialog.ShowConfirm("Replace File", msg, func(replace bool) {
		if replace {
			onChosen(path)
			return
		}
		onChosen("")
	}, mv.window)
}

func validateSaveName(name, extension string) error {
	name = strings.TrimSpace(name)
	if name == "" || strings.ContainsAny(name, `/\`) {
		return errors.New("enter a file name")
	}
	if models.ExtensionOf(name) != extension {
		return fmt.Errorf("the name must end in .%s", extension)
	}
	return nil
}

func dotted(extensions []string) []string {
	out := make([]string, 0, len(extensions))
	for _, ext := range extensions {
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		out = append(out, ext)
	}
	return out
}

func (mv *MainView) ShowError(title string, err error) {
	fyne.Do(func() {
		mv.statusBar.SetStatus(title)
		dialog.ShowError(err, mv.window)
	})
}

func (mv *MainView) UpdateStatus(status string) {
	fyne.Do(func() {
		mv.statusBar.SetStatus(status)
	})
}

// Show resizes, centers and displays the window.
func (mv *MainView) Show(width, height float32) {
	mv.window.Resize(fyne.NewSize(width, height))
	mv.window.CenterOnScreen()
	mv.window.Show()
}

func (mv *MainView) GetWindow() fyne.Window {
	return mv.window
}

func (mv *MainView) Toolbar() *components.Toolbar {
	return mv.toolbar
}

func (mv *MainView) Surface() *components.ImageSurface {
	return mv.surface
}

func (mv *MainView) StatusBar() *components.StatusBar {
	return mv.statusBar
}

func (mv *MainView) MainMenu() *fyne.MainMenu {
	return mv.mainMenu
}

// ContextMenu returns the entries the surface shows on right-click.
func (mv *MainView) ContextMenu() []models.MenuItem {
	return mv.contextItems
}
