package categorization

import (
	"context"
	"log/slog"
	"time"
)

// Service categorizes merchants. It never fails outward: any remote problem
// degrades to the keyword fallback.
type Service struct {
	classifier Classifier // nil when no credential is configured
	timeout    time.Duration
	logger     *slog.Logger
}

func NewService(classifier Classifier, timeout time.Duration, logger *slog.Logger) *Service {
	return &Service{classifier: classifier, timeout: timeout, logger: logger}
}

// Categorize returns a category for the merchant. Without a configured
// classifier it goes straight to keyword matching; no network call is made.
func (s *Service) Categorize(ctx context.Context, merchant string) Category {
	if s.classifier == nil {
		return classifyByKeywords(merchant)
	}

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	text, err := s.classifier.Classify(callCtx, merchant)
	if err != nil {
		s.logger.Warn("remote classifier failed, using keyword fallback",
			slog.String("merchant", merchant),
			slog.Any("error", err))
	}

	return resolve(remoteAttempt{text: text, err: err}, merchant)
}
