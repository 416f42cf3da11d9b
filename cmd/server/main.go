package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"go.uber.org/zap"

	"github.com/SluberskiHomeLab/panelcss/internal/application"
	"github.com/SluberskiHomeLab/panelcss/internal/config"
	"github.com/SluberskiHomeLab/panelcss/internal/logging"
)

var signalNotify = signal.Notify

type cliFlags struct {
	configFile      string
	port            string
	buildConfigPath string
	watch           bool
	watchSet        bool
	rateLimitRPS    float64
	rateLimitBurst  int
	debug           bool
}

func main() {
	kingpinApp := kingpin.New("panelcss", "Build configuration service - serves the utility-CSS content globs, theme extension, and resolved design tokens")
	configFile := kingpinApp.Flag("config", "Path to YAML service configuration file").String()
	port := kingpinApp.Flag("port", "HTTP port exposed by the service").String()
	buildConfigPath := kingpinApp.Flag("build-config", "Path to the build configuration record (YAML or JSON)").String()
	watchFlag := kingpinApp.Flag("watch", "Reload the build configuration when its file changes").Bool()
	noWatchFlag := kingpinApp.Flag("no-watch", "Disable build configuration reloading").Bool()
	rateLimitRPSFlag := kingpinApp.Flag("rate-limit-rps", "Requests per second allowed (set 0 to disable)").Default("-1").Float64()
	rateLimitBurstFlag := kingpinApp.Flag("rate-limit-burst", "Burst capacity for rate limiter (set 0 to disable)").Default("-1").Int()
	debugFlag := kingpinApp.Flag("debug", "Log to console at debug level").Bool()

	kingpin.MustParse(kingpinApp.Parse(os.Args[1:]))

	flags := cliFlags{
		configFile:      *configFile,
		port:            *port,
		buildConfigPath: *buildConfigPath,
		watch:           *watchFlag && !*noWatchFlag,
		watchSet:        *watchFlag || *noWatchFlag,
		rateLimitRPS:    *rateLimitRPSFlag,
		rateLimitBurst:  *rateLimitBurstFlag,
		debug:           *debugFlag,
	}

	cfg, err := config.Load(buildOverrides(flags))
	if err != nil {
		panic(fmt.Sprintf("failed to load configuration: %v", err))
	}

	logger, err := newLogger(flags.debug)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer func() {
		_ = logger.Sync()
	}()

	app, err := application.New(cfg, logger)
	if err != nil {
		logger.Fatal("failed to initialize application", zap.Error(err))
	}

	if err := app.Start(); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}

	shutdown(app.Server(), cfg.ShutdownGracePeriod, logger)
	app.Stop()
}

// buildOverrides translates parsed CLI flags into config overrides; unset
// flags stay nil so lower-precedence sources apply.
func buildOverrides(flags cliFlags) *config.CLIOverrides {
	overrides := &config.CLIOverrides{
		ConfigFile: flags.configFile,
	}

	if flags.port != "" {
		overrides.Port = &flags.port
	}

	if flags.buildConfigPath != "" {
		overrides.BuildConfigPath = &flags.buildConfigPath
	}

	if flags.watchSet {
		overrides.Watch = &flags.watch
	}

	if flags.rateLimitRPS >= 0 {
		overrides.RateLimitRPS = &flags.rateLimitRPS
	}

	if flags.rateLimitBurst >= 0 {
		overrides.RateLimitBurst = &flags.rateLimitBurst
	}

	return overrides
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return logging.NewDevelopment()
	}
	return logging.New()
}

func shutdown(server *http.Server, timeout time.Duration, logger *zap.Logger) {
	quit := make(chan os.Signal, 1)
	signalNotify(quit, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Warn("graceful shutdown failed", zap.Error(err))
		if closeErr := server.Close(); closeErr != nil {
			logger.Error("forced close failed", zap.Error(closeErr))
		}
	}
}
