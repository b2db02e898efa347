package main

import (
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"vessel-alert-service/internal/alert"
	"vessel-alert-service/internal/api"
	"vessel-alert-service/internal/config"
	"vessel-alert-service/internal/db"
	"vessel-alert-service/internal/kafka"
	"vessel-alert-service/internal/logging"
	"vessel-alert-service/internal/providers"
	"vessel-alert-service/internal/scheduler"
	"vessel-alert-service/internal/ws"
)

func main() {
	// Load config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.Logging.Dir, cfg.Logging.Level)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}

	// Connect to database
	dbConn, err := db.New(cfg.DB.DSN)
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}
	defer dbConn.Close()

	// Messaging providers
	emailClient := providers.NewEmailClient(cfg.Email.APIURL, cfg.Email.APIKey, cfg.Email.From)
	whatsappClient := providers.NewWhatsAppClient(cfg.WhatsApp.APIURL, cfg.WhatsApp.APIToken, cfg.WhatsApp.PhoneNumberID)

	// Alerting core
	hub := ws.NewHub(logger)
	dispatcher := alert.NewDispatcher(dbConn, emailClient, whatsappClient, logger,
		cfg.Alerts.MaxAttempts, cfg.Alerts.BaseDelay).WithPusher(hub)

	if cfg.Telegram.BotToken != "" {
		tg, err := providers.NewTelegramClient(cfg.Telegram.BotToken)
		if err != nil {
			log.Fatalf("Telegram init failed: %v", err)
		}
		dispatcher.WithTelegram(tg)
		logger.Infof("Telegram channel enabled")
	}
	if cfg.Kafka.Broker != "" {
		producer := kafka.NewProducer(cfg.Kafka.Broker, cfg.Kafka.Topic, logger)
		defer producer.Close()
		dispatcher.WithPublisher(producer)
		logger.Infof("Kafka alert events enabled on topic %s", cfg.Kafka.Topic)
	}

	runner := alert.NewRunner(dbConn, dispatcher, logger)

	// Recurring runs
	var wg sync.WaitGroup
	sched := scheduler.New(runner, cfg.Alerts.Interval, logger)
	sched.Start(&wg)

	// Start API server
	handler := api.NewHandler(dbConn, runner, hub, logger)
	router := api.NewRouter(handler, logger, cfg)
	go func() {
		logger.Infof("Starting API server on %s", cfg.API.Port)
		if err := router.Run(cfg.API.Port); err != nil {
			logger.Errorf("API server failed: %v", err)
		}
	}()

	// Handle graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c
	logger.Infof("Shutting down...")
	sched.Stop()
	wg.Wait()
	logger.Infof("Service stopped")
}
