package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pedidos/cmd"
	"pedidos/internal/adapters/in/http/middleware"
	"pedidos/internal/adapters/out/postgres/orderrepo"

	"github.com/caarlos0/env/v11"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		log.Fatalf("Service stopped: %v", err)
	}
}

func run(logger *slog.Logger) error {
	// A missing .env is fine in containerized deployments where the
	// environment is injected directly.
	if err := godotenv.Load(".env"); err != nil {
		logger.Info("No .env file loaded", "error", err)
	}

	config, err := env.ParseAs[cmd.Config]()
	if err != nil {
		return err
	}

	gormDB, err := gorm.Open(gormpostgres.Open(config.PostgresDSN()), &gorm.Config{})
	if err != nil {
		return err
	}
	if err = gormDB.AutoMigrate(&orderrepo.OrderDTO{}); err != nil {
		return err
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     config.RedisAddr,
		Password: config.RedisPassword,
	})
	defer redisClient.Close()

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err = redisClient.Ping(pingCtx).Err(); err != nil {
		return err
	}

	root := cmd.NewCompositionRoot(config, gormDB, redisClient, logger)

	jobManager := root.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			logger.Info("Request",
				"method", v.Method, "uri", v.URI, "status", v.Status)
			return nil
		},
	}))

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	server := root.CreateHTTPServer()
	server.RegisterRoutes(e, middleware.BearerAuth(root.TokenVerifier()))

	errCh := make(chan error, 1)
	go func() {
		errCh <- e.Start("0.0.0.0:" + config.HTTPPort)
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err = <-errCh:
		return err
	case sig := <-stop:
		logger.Info("Shutting down", "signal", sig.String())
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	return e.Shutdown(shutdownCtx)
}
