package mail

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

const (
	// candidateQuery narrows the inbox to bank-style notifications.
	candidateQuery = `subject:(transaction OR payment OR spent OR debited OR credited OR "bank alert")`

	// bodyLimit keeps extraction input small; the rupee line sits near the
	// top of every notification mail.
	bodyLimit = 1000
)

// GmailFetcher reads candidate emails through the Gmail API with a readonly
// scope. The OAuth token must already exist on disk; there is no interactive
// flow.
type GmailFetcher struct {
	svc    *gmail.Service
	logger *slog.Logger
	now    func() time.Time
}

func NewGmailFetcher(ctx context.Context, credentialsPath, tokenPath string, logger *slog.Logger) (*GmailFetcher, error) {
	credBytes, err := os.ReadFile(credentialsPath)
	if err != nil {
		return nil, fmt.Errorf("reading gmail credentials: %w", err)
	}
	oauthConfig, err := google.ConfigFromJSON(credBytes, gmail.GmailReadonlyScope)
	if err != nil {
		return nil, fmt.Errorf("parsing gmail credentials: %w", err)
	}

	tokenBytes, err := os.ReadFile(tokenPath)
	if err != nil {
		return nil, fmt.Errorf("reading gmail token: %w", err)
	}
	var token oauth2.Token
	if err := json.Unmarshal(tokenBytes, &token); err != nil {
		return nil, fmt.Errorf("parsing gmail token: %w", err)
	}

	svc, err := gmail.NewService(ctx, option.WithHTTPClient(oauthConfig.Client(ctx, &token)))
	if err != nil {
		return nil, fmt.Errorf("creating gmail service: %w", err)
	}

	return &GmailFetcher{svc: svc, logger: logger, now: time.Now}, nil
}

func (f *GmailFetcher) FetchCandidates(ctx context.Context, maxResults, lookbackDays int) ([]Email, error) {
	query := buildQuery(f.now().AddDate(0, 0, -lookbackDays))

	list, err := f.svc.Users.Messages.List("me").
		Q(query).
		MaxResults(int64(maxResults)).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("listing gmail messages: %w", err)
	}

	emails := make([]Email, 0, len(list.Messages))
	for _, m := range list.Messages {
		msg, err := f.svc.Users.Messages.Get("me", m.Id).Format("full").Context(ctx).Do()
		if err != nil {
			return nil, fmt.Errorf("getting gmail message %s: %w", m.Id, err)
		}
		emails = append(emails, Email{
			ID:      m.Id,
			Subject: headerValue(msg.Payload, "Subject"),
			Body:    extractBody(msg.Payload),
		})
	}

	f.logger.Info("fetched candidate emails",
		slog.String("query", query),
		slog.Int("count", len(emails)))
	return emails, nil
}

func buildQuery(after time.Time) string {
	return fmt.Sprintf("%s after:%s", candidateQuery, after.Format("2006/01/02"))
}

func headerValue(payload *gmail.MessagePart, name string) string {
	if payload == nil {
		return ""
	}
	for _, h := range payload.Headers {
		if h.Name == name {
			return h.Value
		}
	}
	return ""
}

// extractBody returns the plain-text body, preferring the message body and
// falling back to the first text/plain part of a multipart message.
func extractBody(payload *gmail.MessagePart) string {
	if payload == nil {
		return ""
	}

	if payload.Body != nil && payload.Body.Data != "" {
		return truncate(decodeBody(payload.Body.Data), bodyLimit)
	}

	for _, part := range payload.Parts {
		if part.MimeType != "text/plain" || part.Body == nil || part.Body.Data == "" {
			continue
		}
		return truncate(decodeBody(part.Body.Data), bodyLimit)
	}
	return ""
}

func decodeBody(data string) string {
	decoded, err := base64.URLEncoding.DecodeString(data)
	if err != nil {
		decoded, err = base64.RawURLEncoding.DecodeString(data)
		if err != nil {
			return ""
		}
	}
	return string(decoded)
}

// truncate cuts at a character boundary so multi-byte runes near the limit
// are never split.
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
