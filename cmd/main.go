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

	cancelBookingHandler "github.com/m04kA/CHB-BookingService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/CHB-BookingService/internal/api/handlers/create_booking"
	getAvailableSlotsHandler "github.com/m04kA/CHB-BookingService/internal/api/handlers/get_available_slots"
	getBookedDatesHandler "github.com/m04kA/CHB-BookingService/internal/api/handlers/get_booked_dates"
	getBookingHandler "github.com/m04kA/CHB-BookingService/internal/api/handlers/get_booking"
	getUserBookingsHandler "github.com/m04kA/CHB-BookingService/internal/api/handlers/get_user_bookings"
	getVenueBookingsHandler "github.com/m04kA/CHB-BookingService/internal/api/handlers/get_venue_bookings"
	getVenueConfigHandler "github.com/m04kA/CHB-BookingService/internal/api/handlers/get_venue_config"
	getVenuesHandler "github.com/m04kA/CHB-BookingService/internal/api/handlers/get_venues"
	updateBookingStatusHandler "github.com/m04kA/CHB-BookingService/internal/api/handlers/update_booking_status"
	updateVenueConfigHandler "github.com/m04kA/CHB-BookingService/internal/api/handlers/update_venue_config"
	"github.com/m04kA/CHB-BookingService/internal/api/middleware"
	"github.com/m04kA/CHB-BookingService/internal/config"
	bookingRepo "github.com/m04kA/CHB-BookingService/internal/infra/storage/booking"
	configRepo "github.com/m04kA/CHB-BookingService/internal/infra/storage/config"
	venueRepo "github.com/m04kA/CHB-BookingService/internal/infra/storage/venue"
	directoryClient "github.com/m04kA/CHB-BookingService/internal/integrations/directory"
	notifyClient "github.com/m04kA/CHB-BookingService/internal/integrations/notify"
	bookingsService "github.com/m04kA/CHB-BookingService/internal/service/bookings"
	venuesService "github.com/m04kA/CHB-BookingService/internal/service/venues"
	createBookingUC "github.com/m04kA/CHB-BookingService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/CHB-BookingService/internal/usecase/get_available_slots"
	getBookedDatesUC "github.com/m04kA/CHB-BookingService/internal/usecase/get_booked_dates"
	"github.com/m04kA/CHB-BookingService/pkg/dbmetrics"
	"github.com/m04kA/CHB-BookingService/pkg/logger"
	"github.com/m04kA/CHB-BookingService/pkg/metrics"
	"github.com/m04kA/CHB-BookingService/pkg/simpletxmanager"
	"github.com/m04kA/CHB-BookingService/pkg/txmanager"
)

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

	log.Info("Starting CHB-BookingService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
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
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Инициализируем интеграционных клиентов
	dirClient := directoryClient.NewClient(
		cfg.DirectoryService.URL,
		time.Duration(cfg.DirectoryService.Timeout)*time.Second,
		log,
	)
	mailClient := notifyClient.NewClient(
		cfg.NotifyService.URL,
		time.Duration(cfg.NotifyService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (DirectoryService=%s timeout=%ds, NotifyService=%s timeout=%ds)",
		cfg.DirectoryService.URL, cfg.DirectoryService.Timeout, cfg.NotifyService.URL, cfg.NotifyService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository *bookingRepo.Repository
		venueRepository   *venueRepo.Repository
		configRepository  *configRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		venueRepository = venueRepo.NewRepository(wrappedDB)
		configRepository = configRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		venueRepository = venueRepo.NewRepository(db)
		configRepository = configRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		venueRepository,
		dirClient,
		mailClient,
		log,
	)
	venueSvc := venuesService.NewService(
		venueRepository,
		configRepository,
		dirClient,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		venueRepository,
		configRepository,
		dirClient,
		mailClient,
		txMgr,
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		venueRepository,
		configRepository,
		log,
	)

	getBookedDatesUseCase := getBookedDatesUC.NewUseCase(
		bookingRepository,
		venueRepository,
		configRepository,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getBookedDates := getBookedDatesHandler.NewHandler(getBookedDatesUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getVenueBookings := getVenueBookingsHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	getVenues := getVenuesHandler.NewHandler(venueSvc, log)
	getVenueConfig := getVenueConfigHandler.NewHandler(venueSvc, log)
	updateVenueConfig := updateVenueConfigHandler.NewHandler(venueSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Каталог площадок
	api.HandleFunc("/venues", getVenues.Handle).Methods(http.MethodGet)

	// Слоты сетки с признаком доступности на дату
	api.HandleFunc("/venues/{venueId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// Полностью занятые даты месяца (для календаря)
	api.HandleFunc("/venues/{venueId}/booked-dates",
		getBookedDates.Handle).Methods(http.MethodGet)

	// Действующая конфигурация слотов площадки
	api.HandleFunc("/venues/{venueId}/config",
		getVenueConfig.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	// Создание бронирования
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Отмена бронирования (soft delete)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// История бронирований пользователя
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// --- Администрирование ---
	// Изменение статуса бронирования (подтверждение, отклонение, завершение)
	protected.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)

	// Список бронирований площадки
	protected.HandleFunc("/venues/{venueId}/bookings", getVenueBookings.Handle).Methods(http.MethodGet)

	// Обновление конфигурации площадки
	protected.HandleFunc("/venues/{venueId}/config", updateVenueConfig.Handle).Methods(http.MethodPut)

	// Сброс конфигурации площадки к общей конфигурации кампуса
	protected.HandleFunc("/venues/{venueId}/config", updateVenueConfig.HandleReset).Methods(http.MethodDelete)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
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

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
