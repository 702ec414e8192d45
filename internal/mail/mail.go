// Package mail fetches candidate bank-notification emails for the pipeline.
package mail

import "context"

// Email is one fetched message. Body is plain text, truncated.
type Email struct {
	ID      string
	Subject string
	Body    string
}

// Fetcher retrieves candidate transaction emails.
type Fetcher interface {
	FetchCandidates(ctx context.Context, maxResults, lookbackDays int) ([]Email, error)
}

// Disabled is the Fetcher wired in when the Gmail client could not be set up.
// Every fetch reports the original setup error.
type Disabled struct {
	Err error
}

func (d Disabled) FetchCandidates(ctx context.Context, maxResults, lookbackDays int) ([]Email, error) {
	return nil, d.Err
}
