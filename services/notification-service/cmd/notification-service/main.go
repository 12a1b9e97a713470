package main

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/gymslot/gymslot/libs/config"
	"github.com/gymslot/gymslot/libs/db"
	"github.com/gymslot/gymslot/libs/httpx"
	"github.com/gymslot/gymslot/libs/kafkax"
	otelx "github.com/gymslot/gymslot/libs/otel"
	"github.com/gymslot/gymslot/libs/runtime"
	"github.com/gymslot/gymslot/services/notification-service/internal/consumer"
	"github.com/gymslot/gymslot/services/notification-service/internal/email"
	"github.com/gymslot/gymslot/services/notification-service/internal/inbox"
	"github.com/gymslot/gymslot/services/notification-service/internal/notify"
	"github.com/gymslot/gymslot/services/notification-service/internal/outbox"
	"github.com/gymslot/gymslot/services/notification-service/internal/sms"
	"github.com/gymslot/gymslot/services/notification-service/internal/storage"
)

var bookingTopics = []string{
	"booking.appointment.booked.v1",
	"booking.appointment.rescheduled.v1",
	"booking.appointment.cancelled.v1",
	"booking.reminder.due.v1",
}

func writeDeliveryEvent(ctx context.Context, pool *db.Pool, outboxRepo *outbox.Repository, evt notify.BookingEvent, channel, topic, status, reason string) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	body := map[string]any{
		"appointment_id": evt.AppointmentID,
		"user_id":        evt.UserID,
		"channel":        channel,
		"source_event":   topic,
		"at":             time.Now().UTC().Format(time.RFC3339),
	}
	eventType := outbox.TopicSent
	if status != "sent" {
		eventType = outbox.TopicFailed
		body["error_reason"] = reason
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	if err := outboxRepo.Insert(ctx, tx, outbox.Event{
		AggregateType: "notification",
		AggregateID:   evt.AppointmentID,
		EventType:     eventType,
		Payload:       payload,
	}); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func main() {
	service := config.String("SERVICE_NAME", "notification-service")
	port, err := config.Port("PORT", "8085")
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

	inboxRepo := inbox.NewRepository(pool)
	notificationsRepo := storage.NewRepository(pool)
	outboxRepo := outbox.NewRepository(pool)
	outboxPublisher := outbox.NewPublisher(pool, outboxRepo, logger, outbox.PublisherConfig{
		Brokers:   config.String("KAFKA_BROKERS", ""),
		PollEvery: 2 * time.Second,
		BatchSize: 50,
	})
	go outboxPublisher.Run(ctx)

	smtpHost := config.String("SMTP_HOST", "mailpit")
	smtpPort := config.String("SMTP_PORT", "1025")
	smtpFrom := config.String("SMTP_FROM", "no-reply@gymslot.local")
	emailSender := email.NewSMTPSender(smtpHost, smtpPort, smtpFrom)

	smsProvider := strings.ToLower(config.String("SMS_PROVIDER", "noop"))
	smsWebhookURL := config.String("SMS_WEBHOOK_URL", "")
	smsWebhookToken := config.String("SMS_WEBHOOK_TOKEN", "")
	var smsSender sms.Sender
	switch smsProvider {
	case "webhook":
		smsSender = sms.NewWebhookSender(smsWebhookURL, smsWebhookToken)
	default:
		smsSender = sms.NewNoopSender()
	}

	consumerCfg := consumer.Config{
		Brokers: config.String("KAFKA_BROKERS", ""),
		GroupID: config.String("KAFKA_GROUP_ID", "notification-service"),
		Topics:  bookingTopics,
	}
	eventConsumer := consumer.New(logger, inboxRepo, consumerCfg, func(ctx context.Context, msg kafka.Message) error {
		evt, err := notify.Decode(msg.Value)
		if err != nil {
			// Malformed payloads are dropped, not retried.
			logger.Error("invalid booking event", "topic", msg.Topic, "err", err)
			return nil
		}
		message, err := notify.Compose(msg.Topic, evt)
		if err != nil {
			logger.Error("unroutable booking event", "topic", msg.Topic, "err", err)
			return nil
		}

		if evt.UserEmail != "" {
			status, reason := "sent", ""
			if err := emailSender.Send(evt.UserEmail, message.Subject, message.Body); err != nil {
				status, reason = "failed", err.Error()
				logger.Error("email send failed", "err", err, "appointment_id", evt.AppointmentID)
			}
			if err := notificationsRepo.Insert(ctx, storage.Notification{
				AppointmentID: evt.AppointmentID,
				UserID:        evt.UserID,
				EventType:     msg.Topic,
				Channel:       "email",
				Recipient:     evt.UserEmail,
				Body:          message.Body,
				Status:        status,
			}); err != nil {
				logger.Error("failed to persist notification", "err", err)
				return err
			}
			if err := writeDeliveryEvent(ctx, pool, outboxRepo, evt, "email", msg.Topic, status, reason); err != nil {
				logger.Error("failed to enqueue delivery event", "err", err)
				return err
			}
		}

		if evt.UserPhone != "" {
			status, reason := "sent", ""
			if err := smsSender.Send(ctx, evt.UserPhone, message.SMSBody); err != nil {
				status, reason = "failed", err.Error()
				logger.Error("sms send failed", "err", err, "appointment_id", evt.AppointmentID)
			}
			if err := notificationsRepo.Insert(ctx, storage.Notification{
				AppointmentID: evt.AppointmentID,
				UserID:        evt.UserID,
				EventType:     msg.Topic,
				Channel:       "sms",
				Recipient:     evt.UserPhone,
				Body:          message.SMSBody,
				Status:        status,
			}); err != nil {
				logger.Error("failed to persist notification", "err", err)
				return err
			}
			if err := writeDeliveryEvent(ctx, pool, outboxRepo, evt, "sms", msg.Topic, status, reason); err != nil {
				logger.Error("failed to enqueue delivery event", "err", err)
				return err
			}
		}

		logger.Info("booking event processed", "topic", msg.Topic, "appointment_id", evt.AppointmentID)
		return nil
	})
	go eventConsumer.Run(ctx)

	mux := runtime.NewBaseMuxWithReady(
		runtime.ReadyCheck{Name: "db", Check: db.ReadyCheck(pool)},
		runtime.ReadyCheck{Name: "kafka", Check: kafkax.ReadyCheck(config.String("KAFKA_BROKERS", ""))},
	)
	handler := httpx.Chain(mux,
		httpx.WithRequestID,
		httpx.WithAccessLog(logger),
	)
	handler = otelhttp.NewHandler(handler, "notification")
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           handler,
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
