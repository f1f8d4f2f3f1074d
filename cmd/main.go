package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	bookSlotHandler "github.com/m04kA/SMC-ArenaSlots/internal/api/handlers/book_slot"
	cancelBookingHandler "github.com/m04kA/SMC-ArenaSlots/internal/api/handlers/cancel_booking"
	clearBookingHandler "github.com/m04kA/SMC-ArenaSlots/internal/api/handlers/clear_booking"
	createSlotsHandler "github.com/m04kA/SMC-ArenaSlots/internal/api/handlers/create_slots"
	deleteSlotHandler "github.com/m04kA/SMC-ArenaSlots/internal/api/handlers/delete_slot"
	deleteSlotsByDateHandler "github.com/m04kA/SMC-ArenaSlots/internal/api/handlers/delete_slots_by_date"
	getAllBookingsHandler "github.com/m04kA/SMC-ArenaSlots/internal/api/handlers/get_all_bookings"
	getAvailableSlotsHandler "github.com/m04kA/SMC-ArenaSlots/internal/api/handlers/get_available_slots"
	getUserBookingsHandler "github.com/m04kA/SMC-ArenaSlots/internal/api/handlers/get_user_bookings"
	healthHandler "github.com/m04kA/SMC-ArenaSlots/internal/api/handlers/health"
	"github.com/m04kA/SMC-ArenaSlots/internal/api/middleware"
	"github.com/m04kA/SMC-ArenaSlots/internal/access"
	"github.com/m04kA/SMC-ArenaSlots/internal/config"
	bookingRepo "github.com/m04kA/SMC-ArenaSlots/internal/infra/storage/booking"
	"github.com/m04kA/SMC-ArenaSlots/internal/infra/storage/migrator"
	slotRepo "github.com/m04kA/SMC-ArenaSlots/internal/infra/storage/slot"
	bookingsService "github.com/m04kA/SMC-ArenaSlots/internal/service/bookings"
	slotsService "github.com/m04kA/SMC-ArenaSlots/internal/service/slots"
	bookSlotUC "github.com/m04kA/SMC-ArenaSlots/internal/usecase/book_slot"
	getAvailableSlotsUC "github.com/m04kA/SMC-ArenaSlots/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-ArenaSlots/internal/worker/reaper"
	"github.com/m04kA/SMC-ArenaSlots/pkg/dbmetrics"
	"github.com/m04kA/SMC-ArenaSlots/pkg/logger"
	"github.com/m04kA/SMC-ArenaSlots/pkg/metrics"
	"github.com/m04kA/SMC-ArenaSlots/pkg/txmanager"
)

const rateLimitVisitorTTL = 3 * time.Minute

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-ArenaSlots...")
	log.Info("Configuration loaded from config.toml")

	// Фоновые задачи живут до сигнала завершения
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Инициализируем метрики (если включены)
	var (
		metricsCollector *metrics.Metrics
		dbRecorder       dbmetrics.Recorder
	)
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		dbRecorder = metricsCollector
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Применяем миграции
	if cfg.Database.AutoMigrate {
		if err := migrator.Up(cfg.Database.MigrationsPath, cfg.Database.URL(), log); err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.PingContext(ctx); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Обёртка считает запросы в метриках, если recorder задан
	wrappedDB := dbmetrics.WrapWithDefault(db, dbRecorder, stopMetricsCh)
	txManager := txmanager.NewTransactionManager(wrappedDB)

	// Инициализируем репозитории
	slotRepository := slotRepo.NewRepository(wrappedDB)
	bookingRepository := bookingRepo.NewRepository(wrappedDB)

	// Таблица ролей загружается один раз
	policy, err := access.NewPolicy(cfg.Roles, log)
	if err != nil {
		log.Fatal("Failed to build access policy: %v", err)
	}
	log.Info("Access policy loaded: %d roles", len(cfg.Roles))

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(bookingRepository, policy, log)
	slotSvc := slotsService.NewService(
		slotRepository,
		bookingRepository,
		txManager,
		policy,
		log,
		cfg.Booking.DefaultMaxBookings,
	)

	// Инициализируем use cases
	bookSlotUseCase := bookSlotUC.NewUseCase(
		slotRepository,
		bookingRepository,
		txManager,
		metricsCollector,
		log,
		cfg.Booking.DefaultMaxBookings,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(slotRepository, txManager, log)

	// Запускаем очистку просроченных слотов и бронирований
	slotReaper := reaper.New(
		slotRepository,
		bookingRepository,
		metricsCollector,
		log,
		cfg.Booking.Retention(),
		cfg.Booking.ReaperInterval(),
	)
	go slotReaper.Run(ctx)
	log.Info("Reaper started (retention=%s, interval=%s)", cfg.Booking.Retention(), cfg.Booking.ReaperInterval())

	// Инициализируем handlers
	bookSlot := bookSlotHandler.NewHandler(bookSlotUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	createSlots := createSlotsHandler.NewHandler(slotSvc, log)
	deleteSlot := deleteSlotHandler.NewHandler(slotSvc, log)
	deleteSlotsByDate := deleteSlotsByDateHandler.NewHandler(slotSvc, log)
	getAllBookings := getAllBookingsHandler.NewHandler(bookingSvc, log)
	clearBooking := clearBookingHandler.NewHandler(bookingSvc, log)
	health := healthHandler.NewHandler(db, log)

	authenticator, err := middleware.NewAuthenticator(cfg.Auth.JWTSecret, cfg.Auth.Issuer, policy, log)
	if err != nil {
		log.Fatal("Failed to initialize authenticator: %v", err)
	}

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")
	}

	// Ограничение частоты запросов по IP клиента
	if cfg.RateLimit.Enabled {
		trustedProxies, err := cfg.RateLimit.TrustedPrefixes()
		if err != nil {
			log.Fatal("Failed to parse trusted proxies: %v", err)
		}
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst, rateLimitVisitorTTL, trustedProxies, log)
		go limiter.RunCleanup(ctx)
		r.Use(limiter.Middleware)
		log.Info("Rate limiting enabled (rps=%.1f, burst=%d, trusted_proxies=%d)",
			cfg.RateLimit.RPS, cfg.RateLimit.Burst, len(trustedProxies))
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/health", health.Handle).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Список слотов с занятостью
	api.HandleFunc("/users/get-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют Bearer token)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(authenticator.Middleware)

	// --- Бронирования пользователя ---
	protected.HandleFunc("/users/book-slot", bookSlot.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/users/view-slots", getUserBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/users/delete-slot/{bookingId}", cancelBooking.Handle).Methods(http.MethodDelete)

	// --- Администрирование (права проверяются по роли) ---
	protected.HandleFunc("/admin/create-slot", createSlots.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/admin/delete-slot/{slotId}", deleteSlot.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/admin/delete-slot", deleteSlotsByDate.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/admin/get-bookings", getAllBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/admin/delete-booking/{bookingId}", clearBooking.Handle).Methods(http.MethodDelete)

	// CORS
	corsHandler := cors.New(cors.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
		MaxAge:         300,
	}).Handler(r)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      corsHandler,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем reaper и очистку rate limiter
	cancel()

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	shutdownCtx, shutdownCancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
