package main

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/cgpa-api/api/swagger"
	"github.com/noah-isme/cgpa-api/internal/handler"
	"github.com/noah-isme/cgpa-api/internal/middleware"
	"github.com/noah-isme/cgpa-api/internal/models"
	"github.com/noah-isme/cgpa-api/internal/repository"
	"github.com/noah-isme/cgpa-api/internal/service"
	"github.com/noah-isme/cgpa-api/pkg/cache"
	"github.com/noah-isme/cgpa-api/pkg/config"
	"github.com/noah-isme/cgpa-api/pkg/database"
	"github.com/noah-isme/cgpa-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/cgpa-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/cgpa-api/pkg/middleware/requestid"
	"github.com/noah-isme/cgpa-api/pkg/scalefile"
)

type sessionBackend interface {
	Get(ctx context.Context, id string) (*models.Session, error)
	Save(ctx context.Context, session *models.Session, ttl time.Duration) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
	Close() error
}

type application struct {
	router  *gin.Engine
	logger  *zap.Logger
	closers []func() error
}

// Close releases resources in reverse acquisition order.
func (a *application) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.logger.Warn("close failed", zap.Error(err))
		}
	}
}

func bootstrap(ctx context.Context, cfg *config.Config, logr *zap.Logger) (*application, error) {
	app := &application{logger: logr}
	metrics := service.NewMetricsService()
	validate := validator.New()
	checks := map[string]handler.ReadinessCheck{}

	sessions, err := openSessions(ctx, cfg, logr, checks)
	if err != nil {
		return nil, err
	}
	app.closers = append(app.closers, sessions.Close)

	var catalog *repository.GradeScaleRepository
	if cfg.Scales.CatalogEnabled {
		db, err := openCatalog(ctx, cfg.Database)
		if err != nil {
			app.Close()
			return nil, err
		}
		app.closers = append(app.closers, db.Close)
		checks["catalog"] = func(ctx context.Context) error { return db.PingContext(ctx) }
		catalog = repository.NewGradeScaleRepository(db)
	}

	var scales *service.GradeScaleService
	if catalog != nil {
		scales = service.NewGradeScaleService(catalog, cfg.Scales.DefaultCode, logr)
		scales.EnableCatalogCache(cfg.Scales.CacheTTL, metrics)
	} else {
		scales = service.NewGradeScaleService(nil, cfg.Scales.DefaultCode, logr)
	}

	if cfg.Scales.File != "" {
		tables, err := scalefile.Load(cfg.Scales.File)
		if err != nil {
			app.Close()
			return nil, err
		}
		scales.ReplaceFileScales(tables)
		if cfg.Scales.Watch {
			watcher, err := scalefile.NewWatcher(cfg.Scales.File, scales.ReplaceFileScales, logr)
			if err != nil {
				app.Close()
				return nil, err
			}
			watcher.Start()
			app.closers = append(app.closers, func() error { watcher.Stop(); return nil })
		}
	}
	if _, err := scales.Resolve(ctx, ""); err != nil {
		app.Close()
		return nil, fmt.Errorf("default grade scale %s: %w", scales.DefaultCode(), err)
	}

	limiter := middleware.NewRateLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window)
	limiterCtx, stopLimiter := context.WithCancel(context.Background())
	go limiter.Run(limiterCtx)
	app.closers = append(app.closers, func() error { stopLimiter(); return nil })

	transcripts := service.NewTranscriptService(sessions, scales, metrics, validate, cfg.Sessions.TTL, logr)
	calculator := service.NewCalculatorService(scales, metrics, validate)

	app.router = newRouter(cfg, logr, routes{
		metrics:     metrics,
		limiter:     limiter,
		observe:     handler.NewMetricsHandler(metrics, checks),
		transcripts: handler.NewTranscriptHandler(transcripts),
		calculator:  handler.NewCalculatorHandler(calculator),
		scales: handler.NewGradeScaleHandler(scales, handler.SheetOptions{
			Enabled: cfg.GradeSheet.Enabled,
			Title:   cfg.GradeSheet.Title,
		}),
	})
	return app, nil
}

func openSessions(ctx context.Context, cfg *config.Config, logr *zap.Logger, checks map[string]handler.ReadinessCheck) (sessionBackend, error) {
	if cfg.Sessions.Store == config.SessionStoreRedis {
		client, err := cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		checks["sessions"] = cache.Ping(client)
		return repository.NewRedisSessionRepository(client, cfg.Redis.Prefix, cfg.Breaker, logr), nil
	}
	store := repository.NewMemorySessionRepository(logr)
	store.StartJanitor(cfg.Sessions.SweepInterval)
	return store, nil
}

func openCatalog(ctx context.Context, cfg config.DatabaseConfig) (*sqlx.DB, error) {
	db, err := database.NewPostgres(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := database.EnsureCatalogSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

type routes struct {
	metrics     *service.MetricsService
	limiter     *middleware.RateLimiter
	observe     *handler.MetricsHandler
	transcripts *handler.TranscriptHandler
	calculator  *handler.CalculatorHandler
	scales      *handler.GradeScaleHandler
}

func newRouter(cfg *config.Config, logr *zap.Logger, h routes) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(h.metrics, "/metrics", "/health", "/ready"))

	r.GET("/health", h.observe.Health)
	r.GET("/ready", h.observe.Ready)
	r.GET("/metrics", h.observe.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.Use(h.limiter.Middleware())
	api.GET("/metrics/summary", h.observe.Summary)
	h.transcripts.Register(api)
	h.calculator.Register(api)
	h.scales.Register(api)

	return r
}
