package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/time/rate"

	"github.com/FACorreiaa/splitmint/internal/api"
	"github.com/FACorreiaa/splitmint/internal/domain/budget"
	"github.com/FACorreiaa/splitmint/internal/domain/categorization"
	"github.com/FACorreiaa/splitmint/internal/domain/extraction"
	"github.com/FACorreiaa/splitmint/internal/domain/split"
	"github.com/FACorreiaa/splitmint/internal/domain/transactions"
	"github.com/FACorreiaa/splitmint/internal/mail"
	"github.com/FACorreiaa/splitmint/internal/pipeline"
	"github.com/FACorreiaa/splitmint/pkg/config"
	"github.com/FACorreiaa/splitmint/pkg/cron"
	"github.com/FACorreiaa/splitmint/pkg/db"
)

// Dependencies holds all application dependencies
type Dependencies struct {
	Config *config.Config
	Logger *slog.Logger

	Pool  *pgxpool.Pool
	Mongo *mongo.Client

	// Repositories
	TxRepo     transactions.Repository
	BudgetRepo budget.Repository
	SplitRepo  split.Repository

	// Services
	TxService     *transactions.Service
	BudgetService *budget.Service
	SplitService  *split.Service
	Categorizer   *categorization.Service
	Fetcher       mail.Fetcher
	Pipeline      *pipeline.Pipeline
	Scheduler     *cron.Scheduler

	// Observability
	Registry        *prometheus.Registry
	PipelineMetrics *pipeline.Metrics
	HTTPMetrics     *api.HTTPMetrics
	RateLimiter     *rate.Limiter
}

// InitDependencies initializes all application dependencies
func InitDependencies(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Config: cfg,
		Logger: logger,
	}

	if err := deps.initStorage(ctx); err != nil {
		return nil, fmt.Errorf("failed to init storage: %w", err)
	}

	if err := deps.initServices(ctx); err != nil {
		return nil, fmt.Errorf("failed to init services: %w", err)
	}

	deps.initObservability()
	deps.initPipeline()

	logger.Info("all dependencies initialized successfully")
	return deps, nil
}

// initStorage connects the configured driver and wires the repositories.
func (d *Dependencies) initStorage(ctx context.Context) error {
	switch d.Config.Storage.Driver {
	case "postgres":
		pool, err := db.NewPostgresPool(ctx, d.Config.Storage.Postgres)
		if err != nil {
			return err
		}
		d.Pool = pool

		if err := db.RunMigrations(d.Config.Storage.Postgres, d.Logger); err != nil {
			return err
		}

		d.TxRepo = transactions.NewPostgresRepository(pool)
		d.BudgetRepo = budget.NewPostgresRepository(pool)
		d.SplitRepo = split.NewPostgresRepository(pool)

	case "mongo":
		client, err := db.NewMongoClient(ctx, d.Config.Storage)
		if err != nil {
			return err
		}
		d.Mongo = client
		database := client.Database(d.Config.Storage.MongoDB)

		txRepo := transactions.NewMongoRepository(database)
		budgetRepo := budget.NewMongoRepository(database)
		splitRepo := split.NewMongoRepository(database)
		if err := txRepo.EnsureIndexes(ctx); err != nil {
			return err
		}
		if err := budgetRepo.EnsureIndexes(ctx); err != nil {
			return err
		}
		if err := splitRepo.EnsureIndexes(ctx); err != nil {
			return err
		}

		d.TxRepo = txRepo
		d.BudgetRepo = budgetRepo
		d.SplitRepo = splitRepo

	default:
		return fmt.Errorf("unknown storage driver %q", d.Config.Storage.Driver)
	}

	d.Logger.Info("storage initialized", slog.String("driver", d.Config.Storage.Driver))
	return nil
}

// initServices builds the domain services and the external collaborators.
func (d *Dependencies) initServices(ctx context.Context) error {
	d.TxService = transactions.NewService(d.TxRepo, d.Logger)
	d.BudgetService = budget.NewService(d.BudgetRepo, d.Logger)
	d.SplitService = split.NewService(d.SplitRepo, newTransactionSource(d.TxService), d.Logger)

	// Without a Gemini key the categorizer runs on keywords only.
	var classifier categorization.Classifier
	if d.Config.Gemini.APIKey != "" {
		gemini, err := categorization.NewGeminiClassifier(ctx, d.Config.Gemini.APIKey, d.Config.Gemini.Model)
		if err != nil {
			return fmt.Errorf("failed to init gemini classifier: %w", err)
		}
		classifier = gemini
		d.Logger.Info("gemini classifier enabled", slog.String("model", d.Config.Gemini.Model))
	} else {
		d.Logger.Warn("GEMINI_API_KEY not set, categorization uses keyword matching only")
	}
	d.Categorizer = categorization.NewService(classifier, d.Config.Gemini.Timeout, d.Logger)

	fetcher, err := mail.NewGmailFetcher(ctx, d.Config.Gmail.CredentialsPath, d.Config.Gmail.TokenPath, d.Logger)
	if err != nil {
		d.Logger.Warn("gmail fetcher unavailable, email ingestion disabled", slog.Any("error", err))
		d.Fetcher = mail.Disabled{Err: err}
	} else {
		d.Fetcher = fetcher
	}

	d.Logger.Info("services initialized")
	return nil
}

func (d *Dependencies) initObservability() {
	d.Registry = prometheus.NewRegistry()
	d.PipelineMetrics = pipeline.NewMetrics(d.Registry)
	d.HTTPMetrics = api.NewHTTPMetrics(d.Registry)
	d.RateLimiter = rate.NewLimiter(
		rate.Limit(d.Config.Server.RateLimitPerSecond),
		d.Config.Server.RateLimitBurst,
	)
}

func (d *Dependencies) initPipeline() {
	d.Pipeline = pipeline.New(
		d.Fetcher,
		extraction.NewExtractor(),
		d.Categorizer,
		d.TxService,
		pipeline.Options{
			MaxEmails:    d.Config.Monitor.MaxEmails,
			LookbackDays: d.Config.Monitor.LookbackDays,
		},
		d.PipelineMetrics,
		d.Logger,
	)

	if d.Config.Monitor.Enabled {
		d.Scheduler = cron.NewScheduler(d.Pipeline, d.Config.Monitor, d.Logger)
	}
}

// Cleanup closes all resources
func (d *Dependencies) Cleanup() {
	if d.Pool != nil {
		d.Pool.Close()
	}
	if d.Mongo != nil {
		_ = d.Mongo.Disconnect(context.Background())
	}
	d.Logger.Info("cleanup completed")
}
