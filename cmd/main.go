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

	checkInHandler "github.com/m04kA/HMS-ReservationService/internal/api/handlers/check_in"
	checkOutHandler "github.com/m04kA/HMS-ReservationService/internal/api/handlers/check_out"
	confirmBookingHandler "github.com/m04kA/HMS-ReservationService/internal/api/handlers/confirm_booking"
	createBookingHandler "github.com/m04kA/HMS-ReservationService/internal/api/handlers/create_booking"
	createTravelBookingHandler "github.com/m04kA/HMS-ReservationService/internal/api/handlers/create_travel_booking"
	decideRefundHandler "github.com/m04kA/HMS-ReservationService/internal/api/handlers/decide_refund"
	decideTravelRefundHandler "github.com/m04kA/HMS-ReservationService/internal/api/handlers/decide_travel_refund"
	getBookingHandler "github.com/m04kA/HMS-ReservationService/internal/api/handlers/get_booking"
	getCustomerBookingsHandler "github.com/m04kA/HMS-ReservationService/internal/api/handlers/get_customer_bookings"
	getCustomerTravelBookingsHandler "github.com/m04kA/HMS-ReservationService/internal/api/handlers/get_customer_travel_bookings"
	getTravelBookingHandler "github.com/m04kA/HMS-ReservationService/internal/api/handlers/get_travel_booking"
	listAvailableRoomsHandler "github.com/m04kA/HMS-ReservationService/internal/api/handlers/list_available_rooms"
	requestCancellationHandler "github.com/m04kA/HMS-ReservationService/internal/api/handlers/request_cancellation"
	requestTravelCancellationHandler "github.com/m04kA/HMS-ReservationService/internal/api/handlers/request_travel_cancellation"
	"github.com/m04kA/HMS-ReservationService/internal/api/middleware"
	"github.com/m04kA/HMS-ReservationService/internal/config"
	bookingRepo "github.com/m04kA/HMS-ReservationService/internal/infra/storage/booking"
	roomRepo "github.com/m04kA/HMS-ReservationService/internal/infra/storage/room"
	travelRepo "github.com/m04kA/HMS-ReservationService/internal/infra/storage/travel"
	catalogServiceClient "github.com/m04kA/HMS-ReservationService/internal/integrations/catalogservice"
	customerServiceClient "github.com/m04kA/HMS-ReservationService/internal/integrations/customerservice"
	bookingsService "github.com/m04kA/HMS-ReservationService/internal/service/bookings"
	cancellationService "github.com/m04kA/HMS-ReservationService/internal/service/cancellation"
	travelService "github.com/m04kA/HMS-ReservationService/internal/service/travel"
	checkOutUC "github.com/m04kA/HMS-ReservationService/internal/usecase/check_out"
	createBookingUC "github.com/m04kA/HMS-ReservationService/internal/usecase/create_booking"
	listAvailableRoomsUC "github.com/m04kA/HMS-ReservationService/internal/usecase/list_available_rooms"
	"github.com/m04kA/HMS-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/HMS-ReservationService/pkg/logger"
	"github.com/m04kA/HMS-ReservationService/pkg/metrics"
	"github.com/m04kA/HMS-ReservationService/pkg/simpletxmanager"
	"github.com/m04kA/HMS-ReservationService/pkg/txmanager"
)

// TxManager общий интерфейс обоих менеджеров транзакций
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

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

	log.Info("Starting HMS-ReservationService...")
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
	customerClient := customerServiceClient.NewClient(
		cfg.CustomerService.URL,
		time.Duration(cfg.CustomerService.Timeout)*time.Second,
		log,
	)
	catalogClient := catalogServiceClient.NewClient(
		cfg.CatalogService.URL,
		time.Duration(cfg.CatalogService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (CustomerService=%s timeout=%ds, CatalogService=%s timeout=%ds)",
		cfg.CustomerService.URL, cfg.CustomerService.Timeout, cfg.CatalogService.URL, cfg.CatalogService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository *bookingRepo.Repository
		roomRepository    *roomRepo.Repository
		travelRepository  *travelRepo.Repository
		txMgr             TxManager
	)

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		roomRepository = roomRepo.NewRepository(wrappedDB)
		travelRepository = travelRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		roomRepository = roomRepo.NewRepository(db)
		travelRepository = travelRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		roomRepository,
		txMgr,
		log,
	)
	cancellationSvc := cancellationService.NewService(
		bookingRepository,
		travelRepository,
		roomRepository,
		txMgr,
		metricsCollector,
		log,
	)
	travelSvc := travelService.NewService(
		travelRepository,
		customerClient,
		catalogClient,
		txMgr,
		metricsCollector,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		roomRepository,
		customerClient,
		txMgr,
		metricsCollector,
		log,
	)
	checkOutUseCase := checkOutUC.NewUseCase(
		bookingRepository,
		roomRepository,
		txMgr,
		metricsCollector,
		log,
	)
	listAvailableRoomsUseCase := listAvailableRoomsUC.NewUseCase(roomRepository, log)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	listAvailableRooms := listAvailableRoomsHandler.NewHandler(listAvailableRoomsUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getCustomerBookings := getCustomerBookingsHandler.NewHandler(bookingSvc, log)
	confirmBooking := confirmBookingHandler.NewHandler(bookingSvc, log)
	checkIn := checkInHandler.NewHandler(bookingSvc, log)
	checkOut := checkOutHandler.NewHandler(checkOutUseCase, log)
	requestCancellation := requestCancellationHandler.NewHandler(cancellationSvc, log)
	decideRefund := decideRefundHandler.NewHandler(cancellationSvc, log)
	createTravelBooking := createTravelBookingHandler.NewHandler(travelSvc, log)
	getTravelBooking := getTravelBookingHandler.NewHandler(travelSvc, log)
	getCustomerTravelBookings := getCustomerTravelBookingsHandler.NewHandler(travelSvc, log)
	requestTravelCancellation := requestTravelCancellationHandler.NewHandler(cancellationSvc, log)
	decideTravelRefund := decideTravelRefundHandler.NewHandler(cancellationSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Metrics middleware и endpoint (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// Rate limiting (если включен)
	if cfg.RateLimit.Enabled {
		r.Use(middleware.RateLimit(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
		log.Info("Rate limiting enabled (rps=%.1f, burst=%d)", cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Подбор доступных номеров
	api.HandleFunc("/rooms/available", listAvailableRooms.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования номеров ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/confirm", confirmBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}/check-in", checkIn.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}/check-out", checkOut.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}/cancellation-requests", requestCancellation.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}/refund-decision", decideRefund.Handle).Methods(http.MethodPost)

	// --- История бронирований клиента ---
	protected.HandleFunc("/customers/{customerId}/bookings", getCustomerBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/customers/{customerId}/travel-bookings", getCustomerTravelBookings.Handle).Methods(http.MethodGet)

	// --- Бронирования экскурсий ---
	protected.HandleFunc("/travel-bookings", createTravelBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/travel-bookings/{bookingId}", getTravelBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/travel-bookings/{bookingId}/cancellation-requests", requestTravelCancellation.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/travel-bookings/{bookingId}/refund-decision", decideTravelRefund.Handle).Methods(http.MethodPost)

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
