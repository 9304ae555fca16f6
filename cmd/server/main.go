package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"inkpost/internal/adapters/cache"
	inkhttp "inkpost/internal/adapters/http"
	"inkpost/internal/adapters/mailer"
	"inkpost/internal/adapters/postgres"
	"inkpost/internal/adapters/services"
	"inkpost/internal/adapters/storage"
	"inkpost/internal/app"
	"inkpost/internal/config"
	db "inkpost/pkg/db/postgres"
	"inkpost/pkg/logger"
	"inkpost/pkg/shutdown"
)

// Константы для переменных окружения.
const (
	EnvLoggerMode  = "LOGGER_MODE"
	EnvLoggerLevel = "LOGGER_LEVEL"
)

// Константы для сообщений об ошибках.
const (
	ErrInitLogger           = "failed to initialize logger"
	ErrSyncLogger           = "failed to sync logger"
	ErrLoadConfig           = "failed to load configuration"
	ErrInitLoggerWithConfig = "failed to initialize logger with configuration settings"
	ErrConnectDatabase      = "failed to connect to database"
	ErrApplyMigrations      = "failed to apply database migrations"
	ErrCreateRedisClient    = "failed to create Redis client"
	ErrCreateStorage        = "failed to create object storage client"
	ErrParseTokenKeys       = "failed to parse token signing keys"
	ErrStartHTTPServer      = "failed to start HTTP server"
)

// Константы для игнорируемых ошибок.
const (
	ErrSyncStderr = "sync /dev/stderr: invalid argument"
	ErrSyncStdout = "sync /dev/stdout: invalid argument"
)

// Константы для сообщений сервиса.
const (
	LogServiceStarted      = "inkpost service started"
	LogServiceShutdownDone = "inkpost service shutdown complete"
	LogInitDatabase        = "initializing database"
	LogInitCache           = "initializing cache"
	LogInitStorage         = "initializing object storage"
	LogInitServices        = "initializing services"
	LogInitHTTPServer      = "initializing HTTP server"
	LogStartingHTTP        = "starting HTTP server"
	LogStoppingHTTP        = "stopping HTTP server"
)

// migrationsPath - путь к файлам миграций базы данных.
const migrationsPath = "file://migrations"

func main() {
	env := logger.Development
	if strings.ToLower(os.Getenv(EnvLoggerMode)) == "production" {
		env = logger.Production
	}

	log, err := logger.NewLogger(env, os.Getenv(EnvLoggerLevel))
	if err != nil {
		panic(ErrInitLogger + ": " + err.Error())
	}

	logger.SetGlobalLogger(log)

	ctx := logger.NewRequestIDContext(context.Background(), "")

	var exitCode int

	func() {
		defer func() {
			if err := log.Sync(); err != nil {
				errMsg := err.Error()
				if strings.Contains(errMsg, ErrSyncStderr) || strings.Contains(errMsg, ErrSyncStdout) {
					return
				}
				if _, writeErr := fmt.Fprintf(os.Stderr, "%s: %v\n", ErrSyncLogger, err); writeErr != nil {
					panic(writeErr)
				}
			}
		}()

		cfg, err := config.Load(ctx)
		if err != nil {
			log.Error(ctx, ErrLoadConfig, zap.Error(err))
			exitCode = 1
			return
		}

		finalLogger, err := logger.NewLogger(cfg.Logging.GetEnvironment(), cfg.Logging.Level)
		if err != nil {
			log.Error(ctx, ErrInitLoggerWithConfig, zap.Error(err))
			exitCode = 1
			return
		}
		logger.SetGlobalLogger(finalLogger)
		log = finalLogger

		log.Info(ctx, LogServiceStarted,
			zap.String("environment", string(cfg.Logging.GetEnvironment())),
			zap.String("log_level", cfg.Logging.Level),
			zap.String("startup_time", time.Now().Format(time.RFC3339)))

		log.Info(ctx, LogInitDatabase)
		database, err := db.New(ctx, cfg.Postgres.GetDSN(), cfg.Postgres.MinConn, cfg.Postgres.MaxConn)
		if err != nil {
			log.Error(ctx, ErrConnectDatabase, zap.Error(err))
			exitCode = 1
			return
		}

		if err := db.MigrateDSN(ctx, cfg.Postgres.GetConnectionURL(), migrationsPath); err != nil {
			log.Error(ctx, ErrApplyMigrations, zap.Error(err))
			exitCode = 1
			return
		}

		log.Info(ctx, LogInitCache)
		redisCache, err := cache.NewRedisCache(ctx, &cfg.Redis)
		if err != nil {
			log.Error(ctx, ErrCreateRedisClient, zap.Error(err))
			exitCode = 1
			return
		}

		log.Info(ctx, LogInitStorage)
		fileStorage, err := storage.NewS3Storage(ctx, &cfg.Storage)
		if err != nil {
			log.Error(ctx, ErrCreateStorage, zap.Error(err))
			exitCode = 1
			return
		}

		accessKey, err := cfg.Tokens.GetAccessPrivateKey()
		if err != nil {
			log.Error(ctx, ErrParseTokenKeys, zap.Error(err))
			exitCode = 1
			return
		}

		log.Info(ctx, LogInitServices)
		repos := postgres.NewRepositories(database.Pool())

		tokenService := services.NewJWT(services.TokenKeys{
			AccessPrivateKey:   accessKey,
			RefreshSecret:      []byte(cfg.Tokens.RefreshSecret),
			VerificationSecret: []byte(cfg.Tokens.VerificationSecret),
			AccessTTL:          cfg.Tokens.GetAccessTokenTTL(),
			RefreshTTL:         cfg.Tokens.GetRefreshTokenTTL(),
			VerificationTTL:    cfg.Tokens.GetVerificationTTL(),
		}, repos.Users)
		passwordService := services.NewBcrypt(cfg.Tokens.BCryptCost)
		smtpMailer := mailer.NewSMTPMailer(&cfg.SMTP)

		authUseCase := app.NewAuthUseCase(repos.Users, passwordService, tokenService, fileStorage)
		userUseCase := app.NewUserUseCase(repos.Users, fileStorage)
		verificationUseCase := app.NewVerificationUseCase(repos.Users, tokenService, smtpMailer, cfg.HTTP.BaseURL)
		postUseCase := app.NewPostUseCase(repos.Posts, fileStorage, redisCache)

		log.Info(ctx, LogInitHTTPServer)
		production := cfg.Logging.IsProduction()
		fiberApp := fiber.New(fiber.Config{
			ReadTimeout:  cfg.HTTP.ReadTimeout,
			WriteTimeout: cfg.HTTP.WriteTimeout,
			BodyLimit:    cfg.HTTP.BodyLimit,
			ErrorHandler: inkhttp.NewErrorHandler(production),
		})

		inkhttp.SetupRouter(fiberApp, inkhttp.Deps{
			Auth:         authUseCase,
			Users:        userUseCase,
			Verification: verificationUseCase,
			Posts:        postUseCase,
			Tokens:       tokenService,
			UserRepo:     repos.Users,
			Production:   production,
		})

		log.Info(ctx, LogStartingHTTP, zap.String("address", cfg.HTTP.GetAddress()))
		go func() {
			if err := fiberApp.Listen(cfg.HTTP.GetAddress()); err != nil {
				log.Error(ctx, ErrStartHTTPServer, zap.Error(err))
			}
		}()

		shutdown.Wait(ctx, cfg.Shutdown.GetTimeout(),
			// Остановка HTTP сервера.
			func(ctx context.Context) error {
				log.Info(ctx, LogStoppingHTTP)
				return fiberApp.Shutdown()
			},
			// Закрытие Redis соединения.
			func(ctx context.Context) error {
				return redisCache.Close()
			},
			// Закрытие пула Postgres.
			func(ctx context.Context) error {
				database.Close(ctx)
				return nil
			},
		)

		log.Info(ctx, LogServiceShutdownDone)
	}()

	if exitCode != 0 {
		os.Exit(exitCode)
	}
}
