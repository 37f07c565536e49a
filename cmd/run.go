package cmd

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"casinobot/application"
	"casinobot/bot"
	"casinobot/config"
	"casinobot/database"
	"casinobot/domain/services"
	"casinobot/events"
	"casinobot/infrastructure"
	"casinobot/infrastructure/observability"
	"casinobot/repository"

	log "github.com/sirupsen/logrus"
)

// EventStreamName is the JetStream stream that carries casino events
const EventStreamName = "CASINO_EVENTS"

// ledgerBackend is the chosen account store and how to release it
type ledgerBackend struct {
	factory interface {
		application.UnitOfWorkFactory
		application.LedgerSnapshotter
	}
	close func()
}

// Run initializes and starts the application
func Run(ctx context.Context) error {
	cfg := config.Get()

	logCloser, err := ConfigureLogging(cfg)
	if err != nil {
		return err
	}
	defer logCloser.Close()

	log.WithFields(log.Fields{
		"environment": cfg.Environment,
		"backend":     cfg.LedgerBackend,
	}).Info("Starting casino bot...")

	eventBus := events.NewBus()
	eventBus.SubscribeAll(infrastructure.LogEvent)

	backend, err := openLedger(ctx, cfg, eventBus)
	if err != nil {
		return err
	}
	defer backend.close()

	if err := observability.InitializeGlobalMetrics(ctx, cfg); err != nil {
		return fmt.Errorf("failed to initialize metrics: %w", err)
	}
	metrics := observability.GetMetrics()
	eventBus.SubscribeAll(metrics.HandleEvent)

	natsClient, err := connectEventPublisher(ctx, cfg, eventBus, metrics)
	if err != nil {
		return err
	}

	rng := services.NewRandomizer()
	casino := application.NewCasino(backend.factory, rng)
	table := application.NewBlackjackTable(backend.factory, rng, eventBus, cfg.BlackjackSessionTTL)
	if err := metrics.RegisterActiveSessionsGauge(table.ActiveSessions); err != nil {
		log.WithError(err).Warn("Failed to register active session gauge")
	}

	var debugServer *http.Server
	if cfg.DebugAPIAddr != "" {
		debugServer = bot.NewDebugAPI(backend.factory, table).Start(cfg.DebugAPIAddr)
	}

	log.Info("Initializing Discord bot...")
	discordBot, err := bot.New(bot.Config{
		Token:             cfg.DiscordToken,
		GuildID:           cfg.GuildID,
		CommandPrefix:     cfg.CommandPrefix,
		CasinoChannelName: cfg.CasinoChannelName,
		MintRoleName:      cfg.MintRoleName,
	}, casino, table, rng, metrics)
	if err != nil {
		return fmt.Errorf("failed to initialize Discord bot: %w", err)
	}
	if err := discordBot.Open(); err != nil {
		return err
	}
	log.Info("Discord bot connected")

	log.Infof("Bot is running in %s mode...", cfg.Environment)
	<-ctx.Done()

	log.Info("Shutting down bot...")
	if err := discordBot.Close(); err != nil {
		log.WithError(err).Error("Error closing Discord bot")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if debugServer != nil {
		if err := debugServer.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Error("Error stopping debug API")
		}
	}
	if natsClient != nil {
		if err := natsClient.Close(); err != nil {
			log.WithError(err).Error("Error closing NATS connection")
		}
	}
	if err := observability.ShutdownGlobalMetrics(shutdownCtx); err != nil {
		log.WithError(err).Error("Error shutting down metrics")
	}

	log.Info("Shutdown completed")
	return nil
}

// openLedger opens the configured account store
func openLedger(ctx context.Context, cfg *config.Config, eventBus *events.Bus) (*ledgerBackend, error) {
	switch cfg.LedgerBackend {
	case config.LedgerBackendPostgres:
		log.Info("Connecting to database...")
		db, err := database.NewConnection(ctx, cfg.GetDatabaseURL())
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		log.Info("Database connection established successfully")
		return &ledgerBackend{
			factory: repository.NewPostgresUnitOfWorkFactory(db, eventBus),
			close:   db.Close,
		}, nil

	default:
		ledger, err := repository.OpenFileLedger(cfg.LedgerPath, cfg.StartingBalance, cfg.LedgerFailOpen)
		if err != nil {
			return nil, fmt.Errorf("failed to open ledger: %w", err)
		}
		log.WithField("path", ledger.Path()).Info("File ledger opened")
		return &ledgerBackend{
			factory: repository.NewFileUnitOfWorkFactory(ledger, eventBus),
			close:   func() {},
		}, nil
	}
}

// connectEventPublisher forwards every committed event to NATS when NATS_URL is set
func connectEventPublisher(ctx context.Context, cfg *config.Config, eventBus *events.Bus, metrics *observability.MetricsProvider) (*infrastructure.NATSClient, error) {
	if cfg.NATSURL == "" {
		log.Info("NATS_URL not set, events stay in process")
		return nil, nil
	}

	client := infrastructure.NewNATSClient(cfg.NATSURL)
	if err := client.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	publisher := infrastructure.NewNATSEventPublisher(client,
		infrastructure.NewEventSubjectMapper(cfg.NATSSubjectPrefix),
		metrics.RecordNATSMessagePublished)
	if err := publisher.EnsureEventStream(client, EventStreamName); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ensure event stream: %w", err)
	}
	eventBus.SubscribeAll(publisher.HandleEvent)

	return client, nil
}
