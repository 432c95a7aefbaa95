package model

import (
	"context"
	"time"
)

type FeedbackKind string

const (
	FeedbackPositive FeedbackKind = "positive"
	FeedbackNegative FeedbackKind = "negative"

	MaxFeedbackEntries = 100
)

type Feedback struct {
	Kind      FeedbackKind `json:"feedback"`
	Message   string       `json:"message"`
	Response  string       `json:"response"`
	Timestamp time.Time    `json:"timestamp"`
}

type FeedbackSummary struct {
	Total            int        `json:"total"`
	Positive         int        `json:"positive"`
	Negative         int        `json:"negative"`
	SatisfactionRate float64    `json:"satisfaction_rate"`
	Recent           []Feedback `json:"recent"`
}

// FeedbackRepository stores feedback append-only, keeping at most limit entries.
type FeedbackRepository interface {
	Append(ctx context.Context, fb Feedback, limit int) error
	List(ctx context.Context) ([]Feedback, error)
}
