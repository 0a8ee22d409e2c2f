package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/shenikar/pilgrim_path/internal/config"
	v1 "github.com/shenikar/pilgrim_path/internal/handler/http/v1"
	"github.com/shenikar/pilgrim_path/internal/realtime"
	"github.com/shenikar/pilgrim_path/internal/repository"
	"github.com/shenikar/pilgrim_path/internal/service"
	"github.com/shenikar/pilgrim_path/internal/webhook"
	"github.com/shenikar/pilgrim_path/pkg/logger"
	"github.com/shenikar/pilgrim_path/pkg/postgres"
	redisclient "github.com/shenikar/pilgrim_path/pkg/redis"
	"github.com/sirupsen/logrus"

	_ "github.com/shenikar/pilgrim_path/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const rateLimiterCleanupInterval = time.Minute

// @title PilgrimPath API
// @version 1.0
// @description Crowd management backend for pilgrimage events: incidents, analytics, notifications, accommodation, bookings and public health.
// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Загрузка конфигурации
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	// Инициализация логгера
	log := logger.New(cfg.LogLevel)

	// Контекст для graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Запуск миграций
	log.Info("Running database migrations...")
	if err := postgres.Migrate(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run database migrations: %v", err)
	}
	log.Info("Database migrations applied successfully")

	// Подключение к PostgreSQL
	dbpool, err := postgres.NewPostgresDB(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}
	defer dbpool.Close()
	log.Info("Successfully connected to PostgreSQL")

	// Инициализация Redis клиента
	redisClient, err := redisclient.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()
	log.Info("Successfully connected to Redis")

	// Канал событий реального времени
	hub := realtime.NewHub(log)
	events := newEventPublisher(ctx, cfg, hub, redisClient, log)

	// Инициализация издателя и воркера вебхуков эскалации
	escalations := webhook.NewRedisPublisher(redisClient)
	webhook.NewWorker(redisClient, log, cfg).Start(ctx)

	// Инициализация репозиториев
	incidentRepo := repository.NewIncidentRepository(dbpool, redisClient, cfg.CacheTTL)
	analyticsRepo := repository.NewAnalyticsRepository(dbpool)
	notificationRepo := repository.NewNotificationRepository(dbpool)
	roomRepo := repository.NewRoomRepository(dbpool)
	bookingRepo := repository.NewBookingRepository(dbpool)
	healthRepo := repository.NewHealthRepository(dbpool)

	// Инициализация сервисов
	services := v1.Services{
		Incidents:     service.NewIncidentService(incidentRepo, events, escalations, log),
		Analytics:     service.NewAnalyticsService(analyticsRepo, log),
		Notifications: service.NewNotificationService(notificationRepo, events, log),
		Rooms:         service.NewRoomService(roomRepo, log),
		Bookings:      service.NewBookingService(bookingRepo, log),
		Health:        service.NewHealthService(healthRepo, log),
	}

	// Инициализация хэндлеров
	handler := v1.NewHandler(services, log, cfg)
	wsHandler := realtime.NewHandler(hub, log, cfg.CORSOrigins)

	limiter := v1.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, 10*time.Minute, log)
	go limiter.Cleanup(ctx, rateLimiterCleanupInterval)

	// Настройка Gin роутера
	router := gin.New()
	router.Use(gin.Recovery(), v1.RequestLogger(log), limiter.Middleware())

	api := router.Group("/api")
	handler.RegisterRoutes(api)
	api.GET("/ws", wsHandler.Connect)

	// Добавление маршрута для Swagger UI
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Запуск HTTP-сервера
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Запуск сервера в горутине
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Error starting HTTP server: %v", err)
		}
	}()
	log.Infof("HTTP server started on port %s", cfg.HTTPPort)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Received shutdown signal, shutting down server...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Info("Server gracefully stopped")
}

// newEventPublisher выбирает транспорт событий: при нескольких инстансах
// события идут через Redis pub/sub и раздаются локальному хабу каждого инстанса
func newEventPublisher(ctx context.Context, cfg *config.Config, hub *realtime.Hub, redisClient *redis.Client, log *logrus.Logger) realtime.Publisher {
	if cfg.EventsBackend != config.EventsBackendRedis {
		return hub
	}
	relay := realtime.NewRedisRelay(redisClient, cfg.EventsChannel, hub, log)
	relay.Start(ctx)
	log.WithField("channel", cfg.EventsChannel).Info("Real-time events relayed through Redis")
	return relay
}
