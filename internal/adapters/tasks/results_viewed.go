package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"github.com/mhbaltimore/directory/internal/infrastructure/observability"
	"github.com/mhbaltimore/directory/pkg/config"
	apperrors "github.com/mhbaltimore/directory/pkg/errors"
)

// TypeResultsViewed is the task type of the results-viewed write-back
const TypeResultsViewed = "navigator:results_viewed"

const (
	enqueueTimeout = 2 * time.Second
	maxRetry       = 3
	taskTimeout    = 10 * time.Second
)

// ResultsViewedPayload is the queued write-back
type ResultsViewedPayload struct {
	ResponseID   string `json:"response_id"`
	ResultsCount int    `json:"results_count"`
}

// NewResultsViewedTask builds the task and its delivery options
func NewResultsViewedTask(payload ResultsViewedPayload) (*asynq.Task, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeResultsViewed, b, asynq.MaxRetry(maxRetry), asynq.Timeout(taskTimeout)), nil
}

// Enqueuer is the subset of *asynq.Client the recorder needs
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// QueueViewRecorder hands the results-viewed write-back to the worker queue
type QueueViewRecorder struct {
	client  Enqueuer
	metrics *observability.Metrics
}

// NewQueueViewRecorder creates a recorder backed by an asynq client
func NewQueueViewRecorder(client Enqueuer, metrics *observability.Metrics) *QueueViewRecorder {
	return &QueueViewRecorder{client: client, metrics: metrics}
}

// RecordResultsViewed enqueues the update. The enqueue outlives request
// cancellation; failures are logged only.
func (r *QueueViewRecorder) RecordResultsViewed(ctx context.Context, responseID string, resultsCount int) {
	logger := observability.LoggerFromContext(ctx).With().
		Str("response_id", responseID).
		Int("results_count", resultsCount).
		Logger()

	task, err := NewResultsViewedTask(ResultsViewedPayload{ResponseID: responseID, ResultsCount: resultsCount})
	if err != nil {
		logger.Error().Err(err).Msg("failed to build results viewed task")
		return
	}

	enqueueCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), enqueueTimeout)
	defer cancel()

	info, err := r.client.EnqueueContext(enqueueCtx, task)
	if err != nil {
		observability.RecordWriteBack(enqueueCtx, r.metrics, "queue", false)
		logger.Warn().Err(err).Msg("failed to enqueue results viewed task")
		return
	}
	observability.RecordWriteBack(enqueueCtx, r.metrics, "queue", true)
	logger.Debug().Str("task_id", info.ID).Str("queue", info.Queue).Msg("enqueued results viewed task")
}

// MarkFunc applies a results-viewed update
type MarkFunc func(ctx context.Context, responseID string, resultsCount int) error

// NewResultsViewedHandler returns the worker handler for TypeResultsViewed.
// Malformed payloads and deleted responses are dropped without retry.
func NewResultsViewedHandler(mark MarkFunc) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p ResultsViewedPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			return fmt.Errorf("invalid %s payload: %v: %w", TypeResultsViewed, err, asynq.SkipRetry)
		}
		if p.ResponseID == "" {
			return fmt.Errorf("%s payload without response_id: %w", TypeResultsViewed, asynq.SkipRetry)
		}

		logger := observability.LoggerFromContext(ctx).With().
			Str("response_id", p.ResponseID).
			Logger()

		err := mark(ctx, p.ResponseID, p.ResultsCount)
		if apperrors.IsNotFound(err) {
			logger.Info().Msg("navigator response gone, dropping results viewed task")
			return nil
		}
		if err != nil {
			logger.Warn().Err(err).Msg("results viewed update failed")
			return err
		}
		return nil
	}
}

// RedisOpt maps the Redis configuration onto asynq connection options
func RedisOpt(cfg *config.RedisConfig) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	}
}
