// Command ingest runs one email ingestion pass and prints the summary.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/FACorreiaa/splitmint/internal/domain/categorization"
	"github.com/FACorreiaa/splitmint/internal/domain/extraction"
	"github.com/FACorreiaa/splitmint/internal/domain/transactions"
	"github.com/FACorreiaa/splitmint/internal/mail"
	"github.com/FACorreiaa/splitmint/internal/pipeline"
	"github.com/FACorreiaa/splitmint/pkg/config"
	"github.com/FACorreiaa/splitmint/pkg/db"
)

func main() {
	userID := flag.String("user", "", "user to ingest for (defaults to DEFAULT_USER_ID)")
	maxEmails := flag.Int("max-emails", 0, "emails to fetch (defaults to MONITOR_MAX_EMAILS)")
	lookback := flag.Int("lookback-days", 0, "how far back to search (defaults to MONITOR_LOOKBACK_DAYS)")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	if err := run(logger, *userID, *maxEmails, *lookback); err != nil {
		logger.Error("ingest failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(logger *slog.Logger, userID string, maxEmails, lookbackDays int) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if userID == "" {
		userID = cfg.Monitor.DefaultUserID
	}
	if maxEmails == 0 {
		maxEmails = cfg.Monitor.MaxEmails
	}
	if lookbackDays == 0 {
		lookbackDays = cfg.Monitor.LookbackDays
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	repo, cleanup, err := openRepository(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	fetcher, err := mail.NewGmailFetcher(ctx, cfg.Gmail.CredentialsPath, cfg.Gmail.TokenPath, logger)
	if err != nil {
		return fmt.Errorf("setting up gmail: %w", err)
	}

	var classifier categorization.Classifier
	if cfg.Gemini.APIKey != "" {
		classifier, err = categorization.NewGeminiClassifier(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model)
		if err != nil {
			return fmt.Errorf("setting up gemini: %w", err)
		}
	}

	p := pipeline.New(
		fetcher,
		extraction.NewExtractor(),
		categorization.NewService(classifier, cfg.Gemini.Timeout, logger),
		transactions.NewService(repo, logger),
		pipeline.Options{MaxEmails: maxEmails, LookbackDays: lookbackDays},
		nil,
		logger,
	)

	summary, err := p.Run(ctx, userID)
	if err != nil {
		return err
	}

	return json.NewEncoder(os.Stdout).Encode(summary)
}

func openRepository(ctx context.Context, cfg *config.Config, logger *slog.Logger) (transactions.Repository, func(), error) {
	switch cfg.Storage.Driver {
	case "mongo":
		client, err := db.NewMongoClient(ctx, cfg.Storage)
		if err != nil {
			return nil, nil, err
		}
		repo := transactions.NewMongoRepository(client.Database(cfg.Storage.MongoDB))
		if err := repo.EnsureIndexes(ctx); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, nil, err
		}
		return repo, func() { _ = client.Disconnect(context.Background()) }, nil
	default:
		pool, err := db.NewPostgresPool(ctx, cfg.Storage.Postgres)
		if err != nil {
			return nil, nil, err
		}
		if err := db.RunMigrations(cfg.Storage.Postgres, logger); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return transactions.NewPostgresRepository(pool), pool.Close, nil
	}
}
