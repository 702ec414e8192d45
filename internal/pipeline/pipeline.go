// Package pipeline orchestrates the email ingestion flow: fetch, extract,
// de-duplicate, categorize, store.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/splitmint/internal/domain/categorization"
	"github.com/FACorreiaa/splitmint/internal/domain/extraction"
	"github.com/FACorreiaa/splitmint/internal/domain/transactions"
	"github.com/FACorreiaa/splitmint/internal/mail"
)

const tracerName = "splitmint/pipeline"

// Summary reports one pipeline run. Processed counts fetched emails; every
// email ends up in exactly one of Parsed-then-inserted, Duplicates or Failed.
type Summary struct {
	Processed  int `json:"processed"`
	Parsed     int `json:"parsed"`
	Duplicates int `json:"duplicates"`
	Inserted   int `json:"inserted"`
	Failed     int `json:"failed"`
}

// Options tune a pipeline run.
type Options struct {
	MaxEmails    int
	LookbackDays int
}

// Metrics are the prometheus counters the pipeline reports into.
type Metrics struct {
	Runs     *prometheus.CounterVec
	Emails   *prometheus.CounterVec
	Inserted prometheus.Counter
}

// NewMetrics registers the pipeline counters on the given registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "splitmint_pipeline_runs_total",
			Help: "Pipeline runs by outcome.",
		}, []string{"outcome"}),
		Emails: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "splitmint_pipeline_emails_total",
			Help: "Emails handled by the pipeline, by result.",
		}, []string{"result"}),
		Inserted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "splitmint_pipeline_transactions_inserted_total",
			Help: "Transactions inserted by the pipeline.",
		}),
	}
	reg.MustRegister(m.Runs, m.Emails, m.Inserted)
	return m
}

// Pipeline runs the ingestion flow for one user at a time.
type Pipeline struct {
	fetcher     mail.Fetcher
	extractor   *extraction.Extractor
	categorizer *categorization.Service
	txs         *transactions.Service
	opts        Options
	metrics     *Metrics
	logger      *slog.Logger
}

func New(fetcher mail.Fetcher, extractor *extraction.Extractor, categorizer *categorization.Service,
	txs *transactions.Service, opts Options, metrics *Metrics, logger *slog.Logger) *Pipeline {
	return &Pipeline{
		fetcher:     fetcher,
		extractor:   extractor,
		categorizer: categorizer,
		txs:         txs,
		opts:        opts,
		metrics:     metrics,
		logger:      logger,
	}
}

// Run fetches candidate emails and turns them into stored transactions.
// Mail and storage failures abort the run; an email the extractor cannot
// parse only increments Failed. Duplicates are detected before the
// categorizer is consulted, so known emails never trigger a remote call.
func (p *Pipeline) Run(ctx context.Context, userID string) (*Summary, error) {
	tracer := otel.Tracer(tracerName)
	ctx, span := tracer.Start(ctx, "pipeline.Run",
		trace.WithAttributes(attribute.String("user_id", userID)))
	defer span.End()

	summary := &Summary{}

	emails, err := p.fetcher.FetchCandidates(ctx, p.opts.MaxEmails, p.opts.LookbackDays)
	if err != nil {
		p.countRun("fetch_error")
		return nil, fmt.Errorf("fetching emails: %w", err)
	}
	summary.Processed = len(emails)

	for _, email := range emails {
		candidate, err := p.extractor.Extract(email.Subject, email.Body)
		if err != nil {
			if !errors.Is(err, extraction.ErrNoMatch) {
				p.countRun("error")
				return nil, fmt.Errorf("extracting transaction: %w", err)
			}
			summary.Failed++
			p.countEmail("no_match")
			p.logger.Debug("no transaction in email", slog.String("subject", email.Subject))
			continue
		}
		summary.Parsed++

		dup, err := p.txs.IsDuplicate(ctx, userID, candidate.Merchant, candidate.Amount, candidate.Date)
		if err != nil {
			p.countRun("error")
			return nil, fmt.Errorf("checking duplicate: %w", err)
		}
		if dup {
			summary.Duplicates++
			p.countEmail("duplicate")
			continue
		}

		category := p.categorizer.Categorize(ctx, candidate.Merchant)

		_, err = p.txs.Add(ctx, transactions.AddInput{
			UserID:       userID,
			Merchant:     candidate.Merchant,
			Amount:       candidate.Amount,
			Category:     string(category),
			Date:         candidate.Date,
			EmailSubject: email.Subject,
		})
		switch {
		case errors.Is(err, transactions.ErrDuplicate):
			summary.Duplicates++
			p.countEmail("duplicate")
			continue
		case err != nil:
			p.countRun("error")
			return nil, fmt.Errorf("storing transaction: %w", err)
		}

		summary.Inserted++
		p.countEmail("inserted")
		if p.metrics != nil {
			p.metrics.Inserted.Inc()
		}
	}

	p.countRun("ok")
	span.SetAttributes(
		attribute.Int("emails.processed", summary.Processed),
		attribute.Int("transactions.inserted", summary.Inserted))
	p.logger.Info("pipeline run finished",
		slog.String("user_id", userID),
		slog.Int("processed", summary.Processed),
		slog.Int("parsed", summary.Parsed),
		slog.Int("duplicates", summary.Duplicates),
		slog.Int("inserted", summary.Inserted),
		slog.Int("failed", summary.Failed))
	return summary, nil
}

func (p *Pipeline) countRun(outcome string) {
	if p.metrics != nil {
		p.metrics.Runs.WithLabelValues(outcome).Inc()
	}
}

func (p *Pipeline) countEmail(result string) {
	if p.metrics != nil {
		p.metrics.Emails.WithLabelValues(result).Inc()
	}
}
