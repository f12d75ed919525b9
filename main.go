package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/inngest/inngestgo"
	"github.com/mauv0809/padel-matchmaker/internal/club"
	"github.com/mauv0809/padel-matchmaker/internal/config"
	"github.com/mauv0809/padel-matchmaker/internal/database"
	server "github.com/mauv0809/padel-matchmaker/internal/http"
	"github.com/mauv0809/padel-matchmaker/internal/inngest"
	"github.com/mauv0809/padel-matchmaker/internal/matchmaking"
	"github.com/mauv0809/padel-matchmaker/internal/metrics"
	"github.com/mauv0809/padel-matchmaker/internal/notifier/slack"
	"github.com/mauv0809/padel-matchmaker/internal/playtomic"
	"github.com/mauv0809/padel-matchmaker/internal/pubsub"
	"github.com/mauv0809/padel-matchmaker/internal/ratings"
)

func main() {
	startTime := time.Now()
	log.SetFormatter(log.JSONFormatter)
	cfg := config.Load()
	db, dbTeardown, err := database.InitDB(cfg.DBName, cfg.Turso.PrimaryURL, cfg.Turso.AuthToken, cfg.MigrationsDir)
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	log.Info("Database initialization time recorded", "duration_ms", time.Since(startTime).Milliseconds())
	defer func() {
		log.Info("Closing database connection")
		dbTeardown()
	}()

	clubStore := club.New(db)
	metricsSvc := metrics.NewService()
	metricsHandler := metrics.NewMetricsHandler()
	metricsStore := metrics.New(db)
	notifier := slack.NewNotifier(cfg.Slack.Token, cfg.Slack.ChannelID, metricsSvc)
	matchmakingService := matchmaking.NewStore(db, clubStore, matchmaking.WithDefaultLimit(cfg.Matchmaking.DefaultLimit))
	syncer := ratings.New(clubStore, playtomic.NewClient(), metricsSvc, metricsStore)

	// The loopback client hands events to the server, which is built below.
	var s *server.Server
	var ps pubsub.PubSubClient
	if cfg.ProjectID != "" {
		ps, err = pubsub.New(context.Background(), cfg.ProjectID)
		if err != nil {
			log.Fatalf("Failed to initialize pubsub: %s", err)
		}
	} else {
		log.Info("No GCP project configured, delivering events in process")
		ps = pubsub.NewLoopback(func(ctx context.Context, topic pubsub.EventType, data []byte) error {
			return s.HandleEvent(ctx, topic, data)
		})
	}
	defer ps.Close()

	var inngestClient inngest.InngestClient
	if cfg.Inngest.Enabled() {
		options := inngestgo.ClientOpts{
			AppID:      cfg.Inngest.AppID,
			SigningKey: &cfg.Inngest.SigningKey,
			EventKey:   &cfg.Inngest.EventKey,
		}
		inngestProvider, err := inngestgo.NewClient(options)
		if err != nil {
			log.Fatalf("Failed to initialize inngest: %s", err)
		}
		inngestClient, err = inngest.New(inngestProvider, matchmakingService, syncer, ps)
		if err != nil {
			log.Fatalf("Failed to register inngest functions: %s", err)
		}
	}

	s = server.NewServer(
		clubStore,
		matchmakingService,
		metricsSvc,
		metricsStore,
		metricsHandler,
		cfg,
		notifier,
		syncer,
		ps,
		inngestClient,
	)

	if cfg.Playtomic.SyncSchedule != "" {
		scheduler, err := ratings.NewScheduler(syncer, cfg.Playtomic.SyncSchedule)
		if err != nil {
			log.Fatalf("Failed to schedule rating sync: %s", err)
		}
		scheduler.Start()
		defer scheduler.Stop()
		log.Info("Rating sync scheduled", "schedule", cfg.Playtomic.SyncSchedule, "next", scheduler.Next())
	}

	startupDuration := time.Since(startTime)
	metricsSvc.SetStartupTime(startupDuration.Seconds())
	log.Info("Startup time recorded", "duration_ms", startupDuration.Milliseconds())

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.Info("Server started", "port", cfg.Port)
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-shutdown:
		log.Info("Shutdown signal received", "signal", sig)

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Server shutdown failed", "error", err)
		} else {
			log.Info("Server gracefully stopped")
		}
	}

	log.Info("Server process shutting down")
}
