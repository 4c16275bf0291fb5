package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"reflect"
	"strings"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/hibiken/asynq"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/adityamakwana707/globetrotter-sub000/core/cache"
	"github.com/adityamakwana707/globetrotter-sub000/core/config"
	"github.com/adityamakwana707/globetrotter-sub000/core/database"
	"github.com/adityamakwana707/globetrotter-sub000/core/logger"
	"github.com/adityamakwana707/globetrotter-sub000/core/middleware"
	"github.com/adityamakwana707/globetrotter-sub000/modules/auth"
	"github.com/adityamakwana707/globetrotter-sub000/modules/itinerary"
	"github.com/adityamakwana707/globetrotter-sub000/modules/suggestion"
	sugservice "github.com/adityamakwana707/globetrotter-sub000/modules/suggestion/service"
	"github.com/adityamakwana707/globetrotter-sub000/modules/trip"
)

// requestValidator adapts go-playground/validator to echo's Validator.
type requestValidator struct {
	v *validator.Validate
}

func newRequestValidator() *requestValidator {
	v := validator.New()
	// Report field names as they appear on the wire
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return &requestValidator{v: v}
}

func (rv *requestValidator) Validate(i any) error {
	return rv.v.Struct(i)
}

// Run wires the whole application and blocks until shutdown.
func Run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(cfg.Log.Level, cfg.Log.Format)

	db, err := database.InitDB(cfg.Database)
	if err != nil {
		return err
	}

	var redisCache *cache.Cache
	if cfg.Redis.Addr != "" {
		redisCache, err = cache.Init(cfg.Redis)
		if err != nil {
			logger.Warn("Redis unavailable, continuing without cache and background tasks", "error", err)
			redisCache = nil
		}
	}

	mw := middleware.New(cfg)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = newRequestValidator()
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(echomw.CORS())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// Module wiring: the itinerary module owns the draft registry, the
	// trip and suggestion modules borrow it.
	auth.Init(e, db, cfg.Auth)
	drafts := itinerary.Init(e, mw)
	trip.Init(e, db, mw, drafts)

	var (
		asynqClient *asynq.Client
		asynqServer *asynq.Server
		enqueuer    sugservice.TaskEnqueuer
		sugCache    sugservice.SuggestionCache
	)
	if redisCache != nil {
		redisOpt := asynq.RedisClientOpt{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}
		asynqClient = asynq.NewClient(redisOpt)
		asynqServer = asynq.NewServer(redisOpt, asynq.Config{Concurrency: 5})
		enqueuer = asynqClient
		sugCache = redisCache
	}

	processor := suggestion.Init(e, mw, drafts, sugCache, enqueuer, cfg.Suggestion)

	if asynqServer != nil {
		mux := asynq.NewServeMux()
		mux.Handle(sugservice.TaskTypeActivityEnrich, processor)
		go func() {
			if err := asynqServer.Run(mux); err != nil {
				logger.Error("task server stopped", err)
			}
		}()
	}

	go func() {
		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		logger.Info("Server listening", "addr", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Error("server stopped", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if asynqServer != nil {
		asynqServer.Shutdown()
	}
	if asynqClient != nil {
		if err := asynqClient.Close(); err != nil {
			logger.Warn("Failed to close task client", "error", err)
		}
	}
	if redisCache != nil {
		if err := redisCache.Close(); err != nil {
			logger.Warn("Failed to close redis", "error", err)
		}
	}
	if err := e.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	return nil
}
