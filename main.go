package main

import (
	"BakeryPOS/app/config"
	"BakeryPOS/app/database"
	"BakeryPOS/app/services"
	"BakeryPOS/app/websocket"
	"context"
	"embed"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"
	"github.com/wailsapp/wails/v2/pkg/options/windows"
	"github.com/wailsapp/wails/v2/pkg/runtime"
)

//go:embed all:frontend/dist
var assets embed.FS

// App struct
type App struct {
	ctx                      context.Context
	cfg                      *config.AppConfig
	host                     *services.WailsHost
	LoggerService            *services.LoggerService
	ConfigManagerService     *services.ConfigManagerService
	InvoiceService           *services.InvoiceService
	DisplayManagementService *services.DisplayManagementService
	DisplayServer            *websocket.Server
}

// NewApp creates a new App application struct
func NewApp() *App {
	return &App{host: services.NewWailsHost()}
}

// startup is called when the app starts. The context is handed to the host
// bridge so services can reach the clipboard, dialogs and print.
func (a *App) startup(ctx context.Context) {
	a.ctx = ctx
	a.host.SetContext(ctx)

	runtime.WindowMaximise(a.ctx)

	if a.DisplayServer != nil {
		a.LoggerService.LogInfo("Starting customer display server", "Port: "+a.DisplayServer.GetPort())
		go func() {
			defer a.LoggerService.RecoverPanic()
			if err := a.DisplayServer.Start(); err != nil {
				a.LoggerService.LogError("Customer display server error", err)
			}
		}()
	}
}

// beforeClose is called when the application is about to quit,
// either by clicking the window close button or calling runtime.Quit.
func (a *App) beforeClose(ctx context.Context) (prevent bool) {
	a.LoggerService.LogInfo("Application closing")

	// Dismissing the preview releases the print-mode marker
	if a.InvoiceService != nil {
		a.InvoiceService.Close()
	}

	if a.DisplayServer != nil {
		a.LoggerService.LogInfo("Stopping customer display server")
		a.DisplayServer.Stop()
	}

	if err := database.Close(); err != nil {
		a.LoggerService.LogError("Error closing database", err)
	} else {
		a.LoggerService.LogInfo("Database connection closed successfully")
	}

	a.LoggerService.LogInfo("Application shutdown complete")
	return false
}

// shutdown is called at application termination
func (a *App) shutdown(ctx context.Context) {
	if a.InvoiceService != nil {
		a.InvoiceService.Close()
	}
}

// GetShopName returns the configured shop name for the window header
func (a *App) GetShopName() string {
	if a.cfg == nil {
		return ""
	}
	return a.cfg.Business.Name
}

// loadConfig reads config.json, creating it with defaults on first run
func loadConfig(manager *services.ConfigManagerService, logger *services.LoggerService) *config.AppConfig {
	exists, err := manager.ConfigExists()
	if err != nil {
		logger.LogWarning("Could not check config file", err.Error())
	}

	var cfg *config.AppConfig
	if exists {
		cfg, err = manager.GetConfig()
		if err != nil {
			logger.LogError("Error loading config, falling back to defaults", err)
		}
	} else {
		logger.LogInfo("First run detected - writing default configuration")
		cfg, err = manager.CreateDefaultConfig()
		if err != nil {
			logger.LogError("Failed to write default config", err)
		}
	}

	if cfg == nil {
		cfg = config.Defaults()
	}
	cfg.ApplyEnvOverrides()
	return cfg
}

func main() {
	// Initialize logger FIRST to catch all errors
	loggerService := services.NewLoggerService()
	if loggerService == nil {
		fmt.Println("CRITICAL: Logger service failed to initialize")
		os.Exit(1)
	}
	defer loggerService.Close()

	defer func() {
		if r := recover(); r != nil {
			loggerService.LogPanic(r)
			os.Exit(1)
		}
	}()

	loggerService.LogInfo("Application starting", "Bakery POS")

	// Load environment variables from .env file in project root (for development)
	if err := godotenv.Load(".env"); err != nil {
		loggerService.LogWarning(".env file not found, will use config.json if available")
	}

	app := NewApp()
	app.LoggerService = loggerService
	app.ConfigManagerService = services.NewConfigManagerService()
	app.cfg = loadConfig(app.ConfigManagerService, loggerService)

	loggerService.LogInfo("Initializing invoice journal", "Driver: "+app.cfg.Database.Driver)
	if err := database.InitializeWithConfig(app.cfg); err != nil {
		// The preview still works without the journal
		loggerService.LogError("Failed to initialize database with config", err)
	}

	if err := loggerService.CleanOldLogs(30); err != nil {
		loggerService.LogWarning("Failed to clean old logs", err.Error())
	}

	app.InvoiceService = services.NewInvoiceService(
		services.InvoiceSettingsFromConfig(app.cfg),
		app.host,
		loggerService,
		services.NewInvoiceJournalService(loggerService),
		services.NewGoogleSheetsService(app.cfg.GoogleSheets),
	)

	if app.cfg.Display.Enabled {
		app.DisplayServer = websocket.NewServer(app.cfg.Display.Port, app.cfg.Display.Announce)
		app.InvoiceService.SetDisplay(app.DisplayServer)
	}
	app.DisplayManagementService = services.NewDisplayManagementService(app.DisplayServer)

	bindList := []interface{}{
		app,
		app.LoggerService,
		app.ConfigManagerService,
		app.InvoiceService,
		app.DisplayManagementService,
	}

	err := wails.Run(&options.App{
		Title:  app.cfg.Business.Name,
		Width:  1200,
		Height: 860,
		AssetServer: &assetserver.Options{
			Assets: assets,
		},
		BackgroundColour: &options.RGBA{R: 255, G: 255, B: 255, A: 1},
		OnStartup:        app.startup,
		OnBeforeClose:    app.beforeClose,
		OnShutdown:       app.shutdown,
		Bind:             bindList,
		Windows: &windows.Options{
			WebviewIsTransparent: false,
			WindowIsTranslucent:  false,
			DisableWindowIcon:    false,
		},
		Menu: nil,
	})

	if err != nil {
		loggerService.LogError("Wails application error", err)
		println("Error:", err.Error())
	}
}
