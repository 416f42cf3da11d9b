package application

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/SluberskiHomeLab/panelcss/internal/api"
	"github.com/SluberskiHomeLab/panelcss/internal/buildcfg"
	"github.com/SluberskiHomeLab/panelcss/internal/config"
	"github.com/SluberskiHomeLab/panelcss/internal/store"
	"github.com/SluberskiHomeLab/panelcss/internal/watch"
)

// App encapsulates the application dependencies and HTTP server.
type App struct {
	store   store.Store
	handler *api.Handler
	router  http.Handler
	watcher *watch.Watcher
	logger  *zap.Logger
	server  *http.Server
}

// New initializes the application with all dependencies from the provided
// configuration. The build config file is loaded if it exists; otherwise the
// service starts from the built-in scaffold record.
func New(cfg config.Config, logger *zap.Logger) (*App, error) {
	st := store.NewMemoryStore()

	if _, err := os.Stat(cfg.BuildConfigPath); err == nil {
		record, loadErr := buildcfg.Load(cfg.BuildConfigPath)
		if loadErr != nil {
			return nil, fmt.Errorf("load build config: %w", loadErr)
		}
		if replaceErr := st.Replace(record); replaceErr != nil {
			return nil, fmt.Errorf("apply build config: %w", replaceErr)
		}
		logger.Info("build config loaded",
			zap.String("path", cfg.BuildConfigPath),
			zap.Int("content_globs", len(record.Content)),
		)
	} else {
		logger.Info("build config not found, starting from scaffold",
			zap.String("path", cfg.BuildConfigPath),
		)
	}

	handler := api.NewHandler(st)
	router := api.NewRouter(handler, logger,
		api.WithLogging(cfg.EnableRequestLogging),
		api.WithRateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst),
	)

	app := &App{
		store:   st,
		handler: handler,
		router:  router,
		logger:  logger,
		server:  NewServer(cfg, router),
	}

	if cfg.Watch {
		watcher, err := watch.New(cfg.BuildConfigPath, cfg.WatchDebounce, st, logger,
			watch.WithOnReload(func(reloadErr error) {
				if reloadErr == nil {
					handler.MarkConfigUpdated()
				}
			}),
		)
		if err != nil {
			logger.Warn("build config watch disabled", zap.Error(err))
		} else {
			app.watcher = watcher
		}
	}

	return app, nil
}

// NewServer creates and configures an HTTP server from the provided configuration.
func NewServer(cfg config.Config, handler http.Handler) *http.Server {
	addr := cfg.Port
	if !strings.Contains(addr, ":") {
		addr = ":" + addr
	}

	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}
}

// Start launches the build config watcher (when enabled) and the HTTP server.
func (a *App) Start() error {
	if a.watcher != nil {
		a.watcher.Start()
	}
	go func() {
		a.logger.Info("server listening", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Fatal("server error", zap.Error(err))
		}
	}()
	return nil
}

// Stop releases background resources (the file watcher). The HTTP server is
// shut down separately so callers control the grace period.
func (a *App) Stop() {
	if a.watcher == nil {
		return
	}
	if err := a.watcher.Close(); err != nil {
		a.logger.Warn("close watcher", zap.Error(err))
	}
}

// Server returns the HTTP server instance for shutdown handling.
func (a *App) Server() *http.Server {
	return a.server
}
