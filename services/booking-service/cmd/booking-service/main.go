package main

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/gymslot/gymslot/libs/auth"
	"github.com/gymslot/gymslot/libs/config"
	"github.com/gymslot/gymslot/libs/db"
	"github.com/gymslot/gymslot/libs/httpx"
	"github.com/gymslot/gymslot/libs/kafkax"
	otelx "github.com/gymslot/gymslot/libs/otel"
	"github.com/gymslot/gymslot/libs/runtime"
	"github.com/gymslot/gymslot/services/booking-service/internal/booking"
	"github.com/gymslot/gymslot/services/booking-service/internal/directory"
	"github.com/gymslot/gymslot/services/booking-service/internal/handlers"
	"github.com/gymslot/gymslot/services/booking-service/internal/outbox"
	"github.com/gymslot/gymslot/services/booking-service/internal/reminders"
	"github.com/gymslot/gymslot/services/booking-service/internal/storage"
)

func main() {
	service := config.String("SERVICE_NAME", "booking-service")
	port, err := config.Port("PORT", "8083")
	if err != nil {
		panic(err)
	}
	logger := runtime.NewLogger(service)

	ctx, stop := runtime.SignalContext()
	defer stop()

	otelShutdown, err := otelx.Setup(ctx, otelx.ConfigFromEnv(service))
	if err != nil {
		logger.Error("otel setup failed", "err", err)
	} else {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = otelShutdown(shutdownCtx)
		}()
	}

	dbURL, err := config.RequiredString("DATABASE_URL")
	if err != nil {
		panic(err)
	}
	pool, err := db.Open(ctx, dbURL)
	if err != nil {
		logger.Error("db connection failed", "err", err)
		panic(err)
	}
	defer pool.Close()

	facilityTZ := config.String("FACILITY_TIMEZONE", "UTC")
	loc, err := time.LoadLocation(facilityTZ)
	if err != nil {
		logger.Error("invalid facility timezone, using UTC", "tz", facilityTZ, "err", err)
		loc = time.UTC
	}

	reminderLead := 24 * time.Hour
	if v, err := strconv.Atoi(config.String("REMINDER_LEAD_MINUTES", "1440")); err == nil && v > 0 {
		reminderLead = time.Duration(v) * time.Minute
	}

	outboxRepo := outbox.NewRepository(pool)
	remindersRepo := reminders.NewRepository()
	repo := storage.NewAppointmentRepository(pool, outboxRepo, remindersRepo, reminderLead, nil)

	dir, err := directory.NewGRPCProvider(config.String("DIRECTORY_GRPC_ADDR", ""))
	if err != nil {
		logger.Error("directory grpc provider init failed; using local tables", "err", err)
		dir = nil
	}
	if dir == nil {
		dir = directory.NewPGProvider(pool)
	}

	normalizer := booking.NewNormalizer(loc, nil)
	svc := booking.NewService(repo, dir, normalizer, logger, nil)

	outboxPublisher := outbox.NewPublisher(pool, outboxRepo, logger, outbox.PublisherConfig{
		Brokers:   config.String("KAFKA_BROKERS", ""),
		PollEvery: 2 * time.Second,
		BatchSize: 50,
	})
	go outboxPublisher.Run(ctx)

	reminderWorker := reminders.NewWorker(pool, remindersRepo, outboxRepo, logger, reminders.WorkerConfig{})
	go reminderWorker.Run(ctx)

	var jwksClient *auth.JWKSClient
	if jwksURL := strings.TrimSpace(config.String("JWKS_URL", "")); jwksURL != "" {
		ttl := 300
		if v, err := strconv.Atoi(config.String("JWKS_CACHE_SECONDS", "300")); err == nil && v > 0 {
			ttl = v
		}
		jwksClient = auth.NewJWKSClient(jwksURL, time.Duration(ttl)*time.Second)
	}
	authn := handlers.NewAuthenticator(config.String("JWT_SECRET", "dev-secret"), jwksClient)
	bookingHandler := handlers.NewBookingHandler(svc, authn, logger)

	mux := runtime.NewBaseMuxWithReady(
		runtime.ReadyCheck{Name: "db", Check: db.ReadyCheck(pool)},
		runtime.ReadyCheck{Name: "kafka", Check: kafkax.ReadyCheck(config.String("KAFKA_BROKERS", ""))},
	)
	mux.HandleFunc("/api/v1/appointments/slots", bookingHandler.Slots)
	mux.HandleFunc("/api/v1/appointments/trainer", bookingHandler.BookTrainer)
	mux.HandleFunc("/api/v1/appointments/nutritionist", bookingHandler.BookNutritionist)
	mux.HandleFunc("/api/v1/appointments/cancel", bookingHandler.Cancel)
	mux.HandleFunc("/api/v1/appointments", bookingHandler.ListMine)
	mux.HandleFunc("/api/v1/admin/appointments/update", bookingHandler.AdminUpdate)
	mux.HandleFunc("/api/v1/admin/appointments/delete", bookingHandler.AdminDelete)
	mux.HandleFunc("/api/v1/admin/appointments", adminDispatch(bookingHandler))

	limitPerMinute := 60
	if v, err := strconv.Atoi(config.String("RATE_LIMIT_PER_MINUTE", "60")); err == nil && v > 0 {
		limitPerMinute = v
	}
	var rateLimitMW httpx.Middleware
	if addr := strings.TrimSpace(config.String("REDIS_ADDR", "")); addr != "" {
		redisDB := 0
		if v, err := strconv.Atoi(config.String("REDIS_DB", "0")); err == nil && v >= 0 {
			redisDB = v
		}
		rdb := redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: config.String("REDIS_PASSWORD", ""),
			DB:       redisDB,
		})
		defer func() { _ = rdb.Close() }()

		rl := httpx.NewRedisRateLimiter(rdb, limitPerMinute, time.Minute, config.String("RATE_LIMIT_PREFIX", "rl"))
		rateLimitMW = rl.Middleware(logger, true)
		logger.Info("rate limiting enabled (redis)", "per_minute", limitPerMinute, "redis_addr", addr)
	} else {
		rl := httpx.NewRateLimiter(limitPerMinute, time.Minute)
		rateLimitMW = rl.Middleware()
		logger.Info("rate limiting enabled (in-memory)", "per_minute", limitPerMinute)
	}

	httpHandler := httpx.Chain(mux,
		httpx.WithCORS(httpx.CORSPolicy{
			AllowedOrigins:   parseList(config.String("CORS_ALLOWED_ORIGINS", "")),
			AllowedMethods:   parseList(config.String("CORS_ALLOWED_METHODS", "GET,POST,OPTIONS")),
			AllowedHeaders:   parseList(config.String("CORS_ALLOWED_HEADERS", "Authorization,Content-Type,X-Request-Id")),
			AllowCredentials: false,
			MaxAge:           10 * time.Minute,
		}),
		httpx.WithRequestID,
		httpx.WithAccessLog(logger),
		httpx.WithBodyLimit(1<<20),
		rateLimitMW,
	)
	httpHandler = otelhttp.NewHandler(httpHandler, "booking")
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           httpHandler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("http server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server error", "err", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "err", err)
	}
	logger.Info("http server stopped")
}

func parseList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// adminDispatch routes the shared /api/v1/admin/appointments path: GET lists
// by day, POST creates.
func adminDispatch(h *handlers.BookingHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			h.AdminListByDay(w, r)
		case http.MethodPost:
			h.AdminCreate(w, r)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	}
}
