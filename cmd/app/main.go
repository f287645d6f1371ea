package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/suchimauz/booking-slot-discovery/internal/adapters/in/http"
	"github.com/suchimauz/booking-slot-discovery/internal/adapters/in/rabbitmq"
	"github.com/suchimauz/booking-slot-discovery/internal/adapters/out/cache"
	"github.com/suchimauz/booking-slot-discovery/internal/adapters/out/logger"
	"github.com/suchimauz/booking-slot-discovery/internal/adapters/out/schedule"
	"github.com/suchimauz/booking-slot-discovery/internal/config"
	"github.com/suchimauz/booking-slot-discovery/internal/core/ports/out"
	"github.com/suchimauz/booking-slot-discovery/internal/core/services/activity_feed_service"
	"github.com/suchimauz/booking-slot-discovery/internal/core/services/calendar_service"
	"github.com/suchimauz/booking-slot-discovery/internal/core/services/recommendation_service"
	"github.com/suchimauz/booking-slot-discovery/internal/core/services/schedule_snapshot"
	"github.com/suchimauz/booking-slot-discovery/internal/core/services/stats_service"
)

func main() {
	// Загрузка конфигурации
	cfg, err := config.NewConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализация логгера с таймзоной
	mainLogger, err := logger.NewConsoleLogger(cfg.App.Timezone)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	log := mainLogger.WithModule("Main")

	log.Info("app.starting", out.LogFields{
		"version":         cfg.App.Version,
		"env":             cfg.App.Env,
		"timezone":        cfg.App.Timezone,
		"rabbitmqEnabled": cfg.RabbitMq.Enabled,
		"cacheEnabled":    cfg.Cache.Enabled,
	})

	// Настройка Gin в зависимости от окружения
	if cfg.IsNotLocal() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Инициализация адаптеров
	scheduleAdapter := schedule.NewScheduleAdapter(cfg, mainLogger.WithModule("ScheduleAdapter"))

	var cacheAdapter out.CachePort
	if cfg.Cache.Enabled {
		adapter, err := cache.NewCacheAdapter(cfg, mainLogger.WithModule("CacheAdapter"))
		if err != nil {
			log.Error("app.cache.init_failed", out.LogFields{
				"error": err.Error(),
			})
			os.Exit(1)
		}
		cacheAdapter = adapter
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Инициализация сервисов
	loader := schedule_snapshot.NewLoader(scheduleAdapter, cacheAdapter, mainLogger)

	recommendationService := recommendation_service.NewRecommendationService(loader, mainLogger)
	calendarService := calendar_service.NewCalendarService(loader, mainLogger)
	statsService := stats_service.NewStatsService(loader, mainLogger)
	activityFeedService := activity_feed_service.NewActivityFeedService(mainLogger)
	defer activityFeedService.Shutdown()

	// Активный вид календаря с периодическим обновлением
	refresher := calendar_service.NewCalendarRefresher(calendarService, mainLogger)
	refresher.Start(ctx)
	defer refresher.Stop()

	// Настройка HTTP сервера
	router := gin.Default()
	controller := http.NewDiscoveryController(
		recommendationService,
		calendarService,
		activityFeedService,
		statsService,
		refresher,
		cfg,
	)
	controller.RegisterRoutes(router)

	// Настройка RabbitMQ слушателя только если он включен
	if cfg.RabbitMq.Enabled {
		listener, err := rabbitmq.NewBookingListener(
			cacheAdapter,
			cfg,
			mainLogger.WithModule("RabbitMQListener"),
		)
		if err != nil {
			log.Error("app.rabbitmq.init_failed", out.LogFields{
				"error": err.Error(),
			})
			os.Exit(1)
		}

		if err := listener.Start(ctx); err != nil {
			log.Error("app.rabbitmq.start_failed", out.LogFields{
				"error": err.Error(),
			})
			os.Exit(1)
		}

		defer func() {
			if err := listener.Stop(); err != nil {
				log.Error("app.rabbitmq.stop_failed", out.LogFields{
					"error": err.Error(),
				})
			}
		}()
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Info("app.http.starting", out.LogFields{
			"host": cfg.HTTP.Host,
			"port": cfg.HTTP.Port,
		})

		if err := router.Run(cfg.HTTP.Host + ":" + cfg.HTTP.Port); err != nil {
			log.Error("app.http.failed", out.LogFields{
				"error": err.Error(),
			})
			sigChan <- syscall.SIGTERM
		}
	}()

	sig := <-sigChan
	log.Info("app.shutdown.initiated", out.LogFields{
		"signal": sig.String(),
	})
}
