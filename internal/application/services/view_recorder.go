package services

import (
	"context"
	"time"

	"github.com/mhbaltimore/directory/internal/domain/providers"
	"github.com/mhbaltimore/directory/internal/domain/repositories"
	"github.com/mhbaltimore/directory/internal/infrastructure/observability"
	apperrors "github.com/mhbaltimore/directory/pkg/errors"
	"github.com/mhbaltimore/directory/pkg/retry"
)

const writeBackTimeout = 5 * time.Second

// MarkResultsViewed applies the write-back with a short retry budget. A
// missing response is permanent and not retried. Shared by the inline
// recorder and the queue worker.
func MarkResultsViewed(ctx context.Context, repo repositories.NavigatorResponseRepository, responseID string, resultsCount int) error {
	return retry.Do(ctx, retry.QuickConfig(), func(ctx context.Context) error {
		err := repo.MarkResultsViewed(ctx, responseID, resultsCount)
		if apperrors.IsNotFound(err) {
			return retry.Permanent(err)
		}
		return err
	})
}

// InlineViewRecorder applies the write-back on a detached goroutine
type InlineViewRecorder struct {
	repo    repositories.NavigatorResponseRepository
	metrics *observability.Metrics
	done    func()
}

// NewInlineViewRecorder creates a recorder that writes in-process
func NewInlineViewRecorder(repo repositories.NavigatorResponseRepository, metrics *observability.Metrics) providers.ResultsViewRecorder {
	return &InlineViewRecorder{repo: repo, metrics: metrics}
}

// RecordResultsViewed returns immediately; the update runs on its own context
// so a finished or cancelled request does not abort it.
func (r *InlineViewRecorder) RecordResultsViewed(ctx context.Context, responseID string, resultsCount int) {
	logger := observability.LoggerFromContext(ctx).With().
		Str("response_id", responseID).
		Int("results_count", resultsCount).
		Logger()

	go func() {
		if r.done != nil {
			defer r.done()
		}
		bgCtx, cancel := context.WithTimeout(context.Background(), writeBackTimeout)
		defer cancel()

		if err := MarkResultsViewed(bgCtx, r.repo, responseID, resultsCount); err != nil {
			observability.RecordWriteBack(bgCtx, r.metrics, "inline", false)
			logger.Warn().Err(err).Msg("failed to record results viewed")
			return
		}
		observability.RecordWriteBack(bgCtx, r.metrics, "inline", true)
		logger.Debug().Msg("recorded results viewed")
	}()
}
