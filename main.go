package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"golang.org/x/crypto/acme/autocert"

	"github.com/somup27/mlbPropModel/board"
	"github.com/somup27/mlbPropModel/config"
	"github.com/somup27/mlbPropModel/db"
	"github.com/somup27/mlbPropModel/draftkings"
	"github.com/somup27/mlbPropModel/evaluate"
	"github.com/somup27/mlbPropModel/handlers"
	"github.com/somup27/mlbPropModel/httpx"
	"github.com/somup27/mlbPropModel/ledger"
	applog "github.com/somup27/mlbPropModel/logger"
	"github.com/somup27/mlbPropModel/mlbstats"
	"github.com/somup27/mlbPropModel/statcast"
)

func main() {
	cfg := config.Load()
	logger, err := applog.New(cfg.Debug)
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	bdb := db.Setup(cfg)
	defer bdb.Close()

	if err := db.CreateTables(context.Background(), bdb); err != nil {
		logger.Fatal("create tables failed", zap.Error(err))
	}

	profile, err := evaluate.ProfileByName(cfg.ThresholdProfile)
	if err != nil {
		logger.Fatal("threshold profile", zap.Error(err))
	}

	dk := draftkings.NewClient(httpx.New(httpx.Options{
		Name:              "draftkings",
		Timeout:           cfg.HTTPTimeout,
		RequestsPerSecond: cfg.DKRequestsPerSecond,
		Header:            draftkings.BrowserHeaders(),
		Logger:            logger,
	}), "", logger)

	var store draftkings.Store = draftkings.NewMemoryStore()
	if cfg.RedisURL != "" {
		rs, err := draftkings.NewRedisStore(cfg.RedisURL)
		if err != nil {
			logger.Fatal("redis store", zap.Error(err))
		}
		defer rs.Close()
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err = rs.Ping(ctx)
		cancel()
		if err != nil {
			logger.Fatal("redis ping failed", zap.Error(err))
		}
		store = rs
		logger.Info("line cache backed by redis")
	}
	lines := draftkings.NewCache(dk, store, cfg.LinesCacheTTL, logger)

	players := mlbstats.NewResolver(
		mlbstats.NewClient(httpx.New(httpx.Options{
			Name:    "mlbstats",
			Timeout: cfg.HTTPTimeout,
			Logger:  logger,
		}), ""),
		mlbstats.NewDBCache(bdb),
		logger,
	)

	boards := board.New(lines, players, statcast.NewStore(bdb), evaluate.NewEngine(profile),
		board.Window{From: cfg.SeasonStart, To: cfg.SeasonEnd}, logger)

	h := handlers.New(handlers.NewDBUsers(bdb), boards, lines, ledger.NewStore(bdb), cfg.JWTKey(), logger)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod: true,
		LogURI:    true,
		LogStatus: true,
		LogError:  true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.Int("status", v.Status),
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
			}
			if v.Error != nil {
				fields = append(fields, zap.Error(v.Error))
			}
			switch {
			case v.Status >= 500:
				logger.Error("http request", fields...)
			case v.Status >= 400:
				logger.Warn("http request", fields...)
			default:
				logger.Info("http request", fields...)
			}
			return nil
		},
	}))
	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:     []string{"*", "Authorization"},
		AllowCredentials: true,
	}))

	h.Register(e)

	logger.Info("evaluation settings",
		zap.String("profile", profile.Name),
		zap.String("season_start", cfg.SeasonStart.Format(config.DateLayout)),
		zap.Duration("lines_ttl", cfg.LinesCacheTTL),
	)

	if cfg.Debug {
		logger.Info("starting server", zap.String("mode", "debug"), zap.String("addr", cfg.Port))
		if err := e.Start(cfg.Port); err != nil {
			logger.Fatal("server exited", zap.Error(err))
		}
		return
	}

	autoTLS := &autocert.Manager{
		Prompt:     autocert.AcceptTOS,
		Cache:      autocert.DirCache(".cache"),
		HostPolicy: autocert.HostWhitelist(cfg.TLSDomains...),
	}

	s := &http.Server{
		Addr:         ":443",
		Handler:      e,
		TLSConfig:    autoTLS.TLSConfig(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  15 * time.Second,
	}

	if err := s.ListenAndServeTLS("", ""); err != http.ErrServerClosed {
		logger.Error("tls server exited", zap.Error(err))
		os.Exit(1)
	}
}
