// Package feedback records visitor thumbs-up/down and summarises them.
package feedback

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/OFTGNOV/Sa-helper-bot/internal/agent/model"
	logx "github.com/OFTGNOV/Sa-helper-bot/pkg/logger"
)

const recentCount = 5

type Service struct {
	repo model.FeedbackRepository
	now  func() time.Time
}

func NewService(repo model.FeedbackRepository) *Service {
	return &Service{repo: repo, now: func() time.Time { return time.Now().UTC() }}
}

// Submit validates and stores one entry; only the last 100 are kept.
func (s *Service) Submit(ctx context.Context, fb model.Feedback) error {
	fb.Kind = model.FeedbackKind(strings.ToLower(strings.TrimSpace(string(fb.Kind))))
	if fb.Kind != model.FeedbackPositive && fb.Kind != model.FeedbackNegative {
		return fmt.Errorf("%w: %q", model.ErrInvalidFeedback, fb.Kind)
	}
	fb.Message = strings.TrimSpace(fb.Message)
	fb.Response = strings.TrimSpace(fb.Response)
	fb.Timestamp = s.now()

	if err := s.repo.Append(ctx, fb, model.MaxFeedbackEntries); err != nil {
		return fmt.Errorf("store feedback: %w", err)
	}
	logx.Debug().Str("feedback", string(fb.Kind)).Msg("feedback recorded")
	return nil
}

// Summary reports totals, satisfaction percentage, and the newest entries first.
func (s *Service) Summary(ctx context.Context) (model.FeedbackSummary, error) {
	entries, err := s.repo.List(ctx)
	if err != nil {
		return model.FeedbackSummary{}, fmt.Errorf("list feedback: %w", err)
	}

	sum := model.FeedbackSummary{Total: len(entries), Recent: []model.Feedback{}}
	for _, e := range entries {
		switch e.Kind {
		case model.FeedbackPositive:
			sum.Positive++
		case model.FeedbackNegative:
			sum.Negative++
		}
	}
	if sum.Total > 0 {
		sum.SatisfactionRate = math.Round(float64(sum.Positive)/float64(sum.Total)*1000) / 10
	}
	for i := len(entries) - 1; i >= 0 && len(sum.Recent) < recentCount; i-- {
		sum.Recent = append(sum.Recent, entries[i])
	}
	return sum, nil
}
