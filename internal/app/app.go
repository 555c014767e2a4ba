package app

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/simp-lee/logger"
	"gorm.io/gorm"

	"github.com/simp-lee/gohotel/internal/config"
	"github.com/simp-lee/gohotel/internal/domain"
	"github.com/simp-lee/gohotel/internal/metrics"
	"github.com/simp-lee/gohotel/internal/middleware"
	"github.com/simp-lee/gohotel/internal/module/auth"
	"github.com/simp-lee/gohotel/internal/module/chambre"
	"github.com/simp-lee/gohotel/internal/module/client"
	"github.com/simp-lee/gohotel/internal/module/reservation"
	"github.com/simp-lee/gohotel/web"
)

// defaultServerTimeout bounds request reads and response writes when
// server.timeout is unset.
const defaultServerTimeout = 30 * time.Second

// App holds the core application dependencies and the HTTP server.
type App struct {
	engine   *gin.Engine
	db       *gorm.DB
	logger   *logger.Logger
	cfg      *config.Config
	registry *prometheus.Registry
	authSvc  auth.Service
}

type httpServer interface {
	ListenAndServe() error
	Shutdown(ctx context.Context) error
}

var newHTTPServer = func(addr string, handler http.Handler, timeout time.Duration) httpServer {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       timeout,
		WriteTimeout:      2 * timeout,
		IdleTimeout:       120 * time.Second,
	}
}

var notifyContext = func(parent context.Context, signals ...os.Signal) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, signals...)
}

// New creates and wires a fully configured App from the given Config.
//
// It sets up logging, the database, metrics, repositories, services,
// handlers, middleware, template rendering and routes.
func New(cfg *config.Config) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	success := false

	// 1. Logger.
	log, err := config.SetupLogger(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}

	if cfg.Server.Mode == gin.DebugMode && cfg.Server.Host == "0.0.0.0" {
		log.Warn("insecure server config: debug mode on 0.0.0.0 may expose debug behavior and permissive CORS")
	}
	defer func() {
		if success {
			return
		}
		if err := log.Close(); err != nil {
			slog.Error("logger close error", slog.Any("error", err))
		}
	}()

	// 2. Database.
	db, err := config.SetupDatabase(&cfg.Database, log.Logger)
	if err != nil {
		return nil, fmt.Errorf("setup database: %w", err)
	}
	defer func() {
		if success {
			return
		}
		sqlDB, err := db.DB()
		if err != nil {
			return
		}
		if err := sqlDB.Close(); err != nil {
			slog.Error("database close error", slog.Any("error", err))
		}
	}()

	// 3. Schema.
	if cfg.Server.Mode == gin.DebugMode || cfg.Database.AutoMigrate {
		if err := db.AutoMigrate(domain.Models()...); err != nil {
			return nil, fmt.Errorf("auto migrate: %w", err)
		}
		log.Info("auto migration completed")
	}

	// 4. Metrics.
	registry := prometheus.NewRegistry()
	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		m = metrics.New(registry)
	}

	// 5. Manual dependency injection: repository → service → handler.
	clientRepo := client.NewClientRepository(db)
	chambreRepo := chambre.NewChambreRepository(db)
	reservationRepo := reservation.NewReservationRepository(db)

	clientSvc := client.NewClientService(clientRepo, m)
	chambreSvc := chambre.NewChambreService(chambreRepo, m)
	horizon := cfg.Booking.HorizonYears
	if horizon <= 0 {
		horizon = config.DefaultHorizonYears
	}
	reservationSvc := reservation.NewReservationService(
		reservationRepo, clientRepo, chambreRepo,
		reservation.NewValidator(time.Now, horizon),
		m,
	)

	modules := []Module{
		client.NewModule(client.NewClientHandler(clientSvc), client.NewClientPageHandler(clientSvc)),
		chambre.NewModule(chambre.NewChambreHandler(chambreSvc), chambre.NewChambrePageHandler(chambreSvc)),
		reservation.NewModule(
			reservation.NewReservationHandler(reservationSvc),
			reservation.NewReservationPageHandler(reservationSvc, clientSvc, chambreSvc),
		),
	}

	// 6. Bearer guard for API mutations.
	var (
		authSvc       auth.Service
		publicModules []Module
		apiGuard      gin.HandlerFunc
	)
	if cfg.Auth.Enabled {
		authSvc = auth.NewService(auth.Options{
			Secret:            []byte(cfg.Auth.JWTSecret),
			TokenTTL:          cfg.Auth.TokenTTL(),
			AdminUsername:     cfg.Auth.AdminUsername,
			AdminPasswordHash: cfg.Auth.AdminPasswordHash,
		})
		publicModules = append(publicModules, auth.NewModule(auth.NewHandler(authSvc)))
		apiGuard = middleware.MutationsOnly(middleware.BearerAuth(authSvc))
	}

	// 7. Gin engine with explicit middleware (not gin.Default()).
	if err := validateGinMode(cfg.Server.Mode); err != nil {
		return nil, err
	}
	gin.SetMode(cfg.Server.Mode)
	engine := gin.New()

	engine.Use(
		middleware.Recovery(log.Logger),
		middleware.RequestID(middleware.RequestIDConfig{TrustUpstream: false}),
		middleware.Logger(log.Logger, "/health", cfg.Metrics.Path),
	)
	if m != nil {
		engine.Use(middleware.Metrics(m))
	}
	engine.Use(middleware.CORS(resolveCORSConfig(cfg.Server.Mode, cfg.Server.CORS)))

	// 8. Templates: live files in debug mode, the embedded copy otherwise.
	var fsys fs.FS
	if cfg.Server.Mode == gin.DebugMode {
		fsys, err = resolveDebugWebFS()
		if err != nil {
			return nil, fmt.Errorf("resolve debug template fs: %w", err)
		}
	} else {
		fsys = web.EmbeddedFS
	}

	renderer, err := NewTemplateRenderer(fsys, cfg.Server.Mode == gin.DebugMode)
	if err != nil {
		return nil, fmt.Errorf("setup template renderer: %w", err)
	}
	engine.HTMLRender = renderer

	// 9. CSRF secret.
	csrfSecret := cfg.Server.CSRFSecret
	if isPlaceholderCSRFSecret(csrfSecret) {
		if cfg.Server.Mode == gin.ReleaseMode {
			return nil, errors.New("csrf_secret must be a non-placeholder value in release mode")
		}

		b := make([]byte, 32)
		if _, err := rand.Read(b); err != nil {
			return nil, fmt.Errorf("generate csrf secret: %w", err)
		}
		csrfSecret = hex.EncodeToString(b)
		log.Warn("no csrf_secret configured, using random secret in non-release mode (will change on restart)")
	} else if cfg.Server.Mode == gin.ReleaseMode {
		csrfSecret = strings.TrimSpace(csrfSecret)
		if len(csrfSecret) < 32 {
			return nil, errors.New("csrf_secret must be at least 32 characters in release mode")
		}
		if config.CountSecretClasses(csrfSecret) < 3 {
			return nil, errors.New("csrf_secret must include at least 3 character classes (lowercase, uppercase, digit, symbol) in release mode")
		}
	}

	// 10. Routes.
	deps := &RouteDeps{
		Modules:       modules,
		PublicModules: publicModules,
		APIGuard:      apiGuard,
		DB:            db,
		Mode:          cfg.Server.Mode,
		CSRFSecret:    csrfSecret,
	}
	if m != nil {
		deps.MetricsPath = cfg.Metrics.Path
		deps.MetricsGatherer = registry
	}
	if err := RegisterRoutes(engine, deps); err != nil {
		return nil, fmt.Errorf("register routes: %w", err)
	}

	success = true
	return &App{
		engine:   engine,
		db:       db,
		logger:   log,
		cfg:      cfg,
		registry: registry,
		authSvc:  authSvc,
	}, nil
}

func isPlaceholderCSRFSecret(secret string) bool {
	trimmed := strings.TrimSpace(secret)
	if trimmed == "" {
		return true
	}

	switch strings.ToLower(trimmed) {
	case "change-me-to-a-random-secret", "change-me-in-env":
		return true
	default:
		return false
	}
}

// resolveCORSConfig overlays the configured CORS settings on the defaults.
// In release mode an empty allowlist denies every cross-origin request.
func resolveCORSConfig(mode string, configured config.CORSConfig) middleware.CORSConfig {
	corsConfig := middleware.DefaultCORSConfig()

	if len(configured.AllowMethods) > 0 {
		corsConfig.AllowMethods = configured.AllowMethods
	}
	if len(configured.AllowHeaders) > 0 {
		corsConfig.AllowHeaders = configured.AllowHeaders
	}
	corsConfig.AllowCredentials = configured.AllowCredentials
	if d, err := time.ParseDuration(configured.MaxAge); err == nil && d > 0 {
		corsConfig.MaxAge = d
	}

	switch {
	case len(configured.AllowOrigins) > 0:
		corsConfig.AllowOrigins = configured.AllowOrigins
	case mode == gin.ReleaseMode:
		corsConfig.AllowOrigins = []string{}
	}

	return corsConfig
}

func validateGinMode(mode string) error {
	switch mode {
	case gin.DebugMode, gin.ReleaseMode, gin.TestMode:
		return nil
	default:
		return fmt.Errorf("invalid server.mode %q: must be one of %q, %q, %q", mode, gin.DebugMode, gin.ReleaseMode, gin.TestMode)
	}
}

// serverTimeout returns the configured server.timeout, or the default when
// it is unset or unparsable.
func serverTimeout(raw string) time.Duration {
	d, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil || d <= 0 {
		return defaultServerTimeout
	}
	return d
}

func resolveDebugWebFS() (fs.FS, error) {
	if _, file, _, ok := runtime.Caller(0); ok {
		webDir := filepath.Clean(filepath.Join(filepath.Dir(file), "..", "..", "web"))
		if stat, err := os.Stat(webDir); err == nil && stat.IsDir() {
			return os.DirFS(webDir), nil
		}
	}

	exePath, err := os.Executable()
	if err == nil {
		webDir := filepath.Join(filepath.Dir(exePath), "web")
		if stat, err := os.Stat(webDir); err == nil && stat.IsDir() {
			return os.DirFS(webDir), nil
		}
	}

	return nil, errors.New("debug web directory not found")
}

// Run starts the HTTP server and blocks until a shutdown signal is received.
// It shuts down gracefully with a 5-second timeout, then closes the database
// and the logger.
func (a *App) Run() error {
	if a == nil {
		return errors.New("app is nil")
	}
	if a.cfg == nil {
		return errors.New("app config is nil")
	}
	if a.engine == nil {
		return errors.New("app engine is nil")
	}

	addr := fmt.Sprintf("%s:%d", a.cfg.Server.Host, a.cfg.Server.Port)
	srv := newHTTPServer(addr, a.engine, serverTimeout(a.cfg.Server.Timeout))
	log := a.log()

	ctx, stop := notifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("server started", slog.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	var runErr error

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
	case err := <-errCh:
		runErr = fmt.Errorf("server error: %w", err)
	}

	if runErr == nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("server shutdown error", slog.Any("error", err))
		}
	}

	if a.db != nil {
		if sqlDB, err := a.db.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				log.Error("database close error", slog.Any("error", err))
			} else {
				log.Info("database connection closed")
			}
		}
	}

	log.Info("server stopped")
	if a.logger != nil {
		if err := a.logger.Close(); err != nil {
			slog.Error("logger close error", slog.Any("error", err))
		}
	}

	return runErr
}

func (a *App) log() *slog.Logger {
	if a.logger != nil {
		return a.logger.Logger
	}
	return slog.Default()
}
