package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	sdkresource "go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/edsg/edsg/internal/config"
	"github.com/edsg/edsg/internal/infra/database"
	"github.com/edsg/edsg/internal/infra/gateway"
	"github.com/edsg/edsg/internal/infra/repository"
	"github.com/edsg/edsg/internal/present/rest"
	"github.com/edsg/edsg/internal/present/rest/middleware"
	"github.com/edsg/edsg/internal/service"
	"github.com/edsg/edsg/internal/usecase"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to config file")
	flag.Parse()

	conf, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	db, err := database.NewPostgres(conf.Server.PostgresDsn)
	if err != nil {
		slog.Error("failed to connect database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if err := database.MigratePostgres(db); err != nil {
		slog.Error("failed to migrate database", slog.String("error", err.Error()))
		os.Exit(1)
	}

	rdb := database.NewRedis(conf.Server.RedisAddr, conf.Server.RedisDB)
	mc := database.NewMemcached(conf.Server.MemcachedAddr)

	if conf.Server.EnableTrace {
		shutdown, err := setupTraceProvider(conf.Server.TraceEndpoint)
		if err != nil {
			slog.Error("failed to set up tracing", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer shutdown()
	}

	userRepo := repository.NewUserRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	requestRepo := repository.NewRequestRepository(db)
	ratingRepo := repository.NewRatingRepository(db)
	offeringRepo := repository.NewOfferingRepository(db)
	favoriteRepo := repository.NewFavoriteRepository(db)
	reportRepo := repository.NewReportRepository(db)
	adminRepo := repository.NewAdminRepository(db)
	dashboardRepo := repository.NewDashboardRepository(db)
	directoryRepo := gateway.NewDirectoryCache(repository.NewDirectoryRepository(db), mc)

	authService := service.NewAuthService(conf.Server.JwtSecret)
	signalService := service.NewSignalService(rdb)
	mailer := service.NewMailer(conf.SMTP)

	searchUC := usecase.NewSearchUsecase(directoryRepo, ratingRepo)
	ratingUC := usecase.NewRatingUsecase(ratingRepo)
	conversationUC := usecase.NewConversationUsecase(messageRepo, userRepo, signalService)
	requestUC := usecase.NewRequestUsecase(requestRepo, ratingRepo, userRepo, mailer, directoryRepo)
	dashboardUC := usecase.NewDashboardUsecase(dashboardRepo)
	catalogUC := usecase.NewCatalogUsecase(offeringRepo, userRepo)
	accountUC := usecase.NewAccountUsecase(userRepo, favoriteRepo, directoryRepo)
	adminUC := usecase.NewAdminUsecase(userRepo, reportRepo, adminRepo, directoryRepo)

	handler := rest.NewHandler(
		searchUC,
		ratingUC,
		conversationUC,
		requestUC,
		dashboardUC,
		catalogUC,
		accountUC,
		adminUC,
		authService,
		signalService,
	)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	if conf.Server.EnableTrace {
		e.Use(otelecho.Middleware("edsg"))
	}

	authMiddleware := middleware.NewAuthMiddleware(authService)
	e.Use(authMiddleware.IdentifyIdentity)

	handler.RegisterRoutes(e, authMiddleware)

	e.Logger.Fatal(e.Start(conf.Server.ListenAddr))
}

func setupTraceProvider(endpoint string) (func(), error) {
	ctx := context.Background()

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpoint(endpoint),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		return nil, err
	}

	resource := sdkresource.NewSchemaless()

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(resource),
	)
	otel.SetTracerProvider(provider)

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := provider.Shutdown(ctx); err != nil {
			slog.Warn("trace provider shutdown failed", slog.String("error", err.Error()))
		}
	}, nil
}
