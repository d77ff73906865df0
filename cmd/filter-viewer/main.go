package main

import (
	"fmt"
	"log"
	"runtime"

	"filter-viewer/internal/config"
	"filter-viewer/internal/controllers"
	"filter-viewer/internal/logger"
	"filter-viewer/internal/models"
	"filter-viewer/internal/opencv/memory"
	"filter-viewer/internal/processing/filters"
	"filter-viewer/internal/services"
	"filter-viewer/internal/shutdown"
	"filter-viewer/internal/views"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
)

const (
	AppName    = "Filter Viewer"
	AppID      = "com.imageprocessing.filter-viewer"
	AppVersion = "1.0.0"
)

// Application wires the store, services, controller and window together.
type Application struct {
	fyneApp fyne.App
	window  fyne.Window
	logger  logger.Logger
	config  *config.Config

	controller *controllers.ViewerController
	view       *views.MainView

	store    *models.ImageStore
	shutdown *shutdown.Manager
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Configuration failed: %v", err)
	}

	application := NewApplication(cfg)
	application.Run()
}

func NewApplication(cfg *config.Config) *Application {
	fyneApp := app.NewWithID(AppID)
	fyneApp.SetMetadata(&fyne.AppMetadata{
		ID:      AppID,
		Name:    AppName,
		Version: AppVersion,
	})

	window := fyneApp.NewWindow(AppName)

	appLogger := cfg.NewLogger()
	appLogger.Info("Application", "starting", map[string]interface{}{
		"version":      AppVersion,
		"window_size":  fmt.Sprintf("%.0fx%.0f", cfg.WindowWidth, cfg.WindowHeight),
		"go_version":   runtime.Version(),
		"log_level":    cfg.LogLevel.String(),
		"jpeg_quality": cfg.JPEGQuality,
	})

	store := models.NewImageStore()
	imageService := services.NewImageService(store, appLogger, cfg.JPEGQuality)
	engine := services.NewFilterEngine(filters.NewRegistry(), memory.NewManager(appLogger, memory.DefaultMaxBytes), appLogger)

	controller := controllers.NewViewerController(store, imageService, engine, appLogger)
	view := views.NewMainView(window)

	view.SetActionHandler(controller.Dispatch)
	view.SetStatsProvider(controller.Diagnostics)
	view.SetQuitHandler(fyneApp.Quit)
	controller.SetView(view)

	manager := shutdown.NewManager(appLogger)
	manager.Register("image store", shutdown.Func(store.Clear))
	manager.Register("filter engine", engine)
	manager.RegisterInline("viewer controller", controller)

	application := &Application{
		fyneApp:    fyneApp,
		window:     window,
		logger:     appLogger,
		config:     cfg,
		controller: controller,
		view:       view,
		store:      store,
		shutdown:   manager,
	}
	application.setupLifecycle()

	return application
}

func (a *Application) setupLifecycle() {
	a.fyneApp.Lifecycle().SetOnStarted(func() {
		a.controller.Present()
	})

	a.window.SetOnClosed(func() {
		a.logger.Info("Application", "window closed", nil)
		a.shutdown.Shutdown()
	})

	// Quitting ends Run, which shuts down on the main goroutine.
	a.shutdown.Listen(func() {
		fyne.Do(a.fyneApp.Quit)
	})
}

// Run shows the window and blocks until the application exits.
func (a *Application) Run() {
	a.view.Show(a.config.WindowWidth, a.config.WindowHeight)
	a.fyneApp.Run()

	a.shutdown.Shutdown()
	a.logger.Info("Application", "terminated", nil)
}
