package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/mvribas/order-freight-service/internal/application"
	"github.com/mvribas/order-freight-service/internal/config"
	"github.com/mvribas/order-freight-service/internal/ingest"
	"github.com/mvribas/order-freight-service/internal/kafka"
	"github.com/mvribas/order-freight-service/internal/logger"
	"github.com/mvribas/order-freight-service/internal/notify"
	"github.com/mvribas/order-freight-service/internal/presentation"
	"github.com/mvribas/order-freight-service/internal/scheduler"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Init("")
		logger.Warn("config load failed", "err", err)
		os.Exit(1)
	}
	logger.Init(cfg.LOG_FILE)
	defer logger.Sync()

	reader, err := ingest.NewCSVReader(cfg.CSV_INPUT)
	if err != nil {
		logger.Warn("input file check failed", "err", err)
		os.Exit(1)
	}

	// Real SMTP only when fully configured, simulated delivery otherwise.
	var notifier notify.Notifier = notify.LogNotifier{}
	if cfg.SMTPConfigured() {
		n, err := notify.NewEmailNotifier(cfg.SMTP_HOST, cfg.SMTP_PORT, cfg.SMTP_FROM, cfg.SMTP_PASSWORD)
		if err != nil {
			logger.Warn("smtp notifier init failed", "err", err)
			os.Exit(1)
		}
		notifier = n
		logger.Info("smtp notifier enabled", "host", cfg.SMTP_HOST)
	}

	var events application.EventPublisher
	if cfg.KafkaConfigured() {
		prod := kafka.NewProducer(cfg.KAFKA_BROKERS, cfg.KAFKA_TOPIC)
		defer prod.Close()
		events = prod
		logger.Info("kafka publisher enabled", "topic", cfg.KAFKA_TOPIC)
	}

	svc := application.NewPipelineService(reader, notifier, events, application.Options{
		OutputDir:    cfg.OUTPUT_DIR,
		LeadTimeDays: cfg.LeadTimeDays,
		ReportEmail:  cfg.ReportEmail,
		AlertEmail:   cfg.AlertEmail,
	})

	if _, err := svc.Run(context.Background()); err != nil {
		logger.Warn("pipeline run failed", "err", err)
		os.Exit(1)
	}

	sched := scheduler.New()
	if cfg.ScheduleEnabled {
		err := sched.Every(cfg.ScheduleInterval, "pipeline", func() {
			if _, err := svc.Run(context.Background()); err != nil {
				logger.Warn("scheduled pipeline run failed", "err", err)
			}
		})
		if err != nil {
			logger.Warn("schedule registration failed", "err", err)
			os.Exit(1)
		}
		sched.Start()
	}

	var srv *http.Server
	if cfg.HTTP_PORT != "" {
		r := chi.NewRouter()
		r.Use(middleware.RequestID)
		r.Use(middleware.RealIP)
		r.Use(middleware.Logger)
		r.Use(middleware.Recoverer)
		r.Use(middleware.Timeout(60 * time.Second))

		h := presentation.NewPipelineHandler(svc)
		h.Register(r)
		presentation.MountReports(r, cfg.OUTPUT_DIR)

		srv = &http.Server{Addr: ":" + cfg.HTTP_PORT, Handler: r}
		go func() {
			logger.Info("starting http", "addr", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Warn("http server crashed", "err", err)
				os.Exit(1)
			}
		}()
	}

	// Nothing left to wait for: behave like a plain one-shot CLI run.
	if !cfg.ScheduleEnabled && srv == nil {
		logger.Info("single run finished")
		return
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	logger.Info("shutting down")

	if cfg.ScheduleEnabled {
		sched.Stop()
	}
	if srv != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.Warn("http shutdown failed", "err", err)
		}
	}
}
