package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mhbaltimore/directory/internal/domain/entities"
	apperrors "github.com/mhbaltimore/directory/pkg/errors"
)

// stubNavigatorRepo fails the first failures calls with err
type stubNavigatorRepo struct {
	mu       sync.Mutex
	err      error
	failures int
	calls    int
	viewed   map[string]int
}

func (s *stubNavigatorRepo) Create(context.Context, *entities.NavigatorResponse) error { return nil }

func (s *stubNavigatorRepo) GetByID(context.Context, string) (*entities.NavigatorResponse, error) {
	return nil, apperrors.NewNotFoundError("navigator response not found")
}

func (s *stubNavigatorRepo) MarkResultsViewed(_ context.Context, id string, count int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.calls <= s.failures {
		return s.err
	}
	if s.viewed == nil {
		s.viewed = map[string]int{}
	}
	s.viewed[id] = count
	return nil
}

func recordAndWait(t *testing.T, repo *stubNavigatorRepo, id string, count int) {
	t.Helper()
	finished := make(chan struct{})
	recorder := &InlineViewRecorder{repo: repo, done: func() { close(finished) }}

	recorder.RecordResultsViewed(context.Background(), id, count)

	select {
	case <-finished:
	case <-time.After(3 * time.Second):
		t.Fatal("write-back did not finish")
	}
}

func TestInlineViewRecorder_Success(t *testing.T) {
	repo := &stubNavigatorRepo{}
	recordAndWait(t, repo, "r1", 12)

	assert.Equal(t, 1, repo.calls)
	assert.Equal(t, map[string]int{"r1": 12}, repo.viewed)
}

func TestInlineViewRecorder_OutlivesCancelledRequest(t *testing.T) {
	repo := &stubNavigatorRepo{}
	finished := make(chan struct{})
	recorder := &InlineViewRecorder{repo: repo, done: func() { close(finished) }}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	recorder.RecordResultsViewed(ctx, "r1", 3)

	select {
	case <-finished:
	case <-time.After(3 * time.Second):
		t.Fatal("write-back did not finish")
	}
	assert.Equal(t, map[string]int{"r1": 3}, repo.viewed)
}

func TestInlineViewRecorder_TransientFailureRetried(t *testing.T) {
	repo := &stubNavigatorRepo{err: errors.New("connection reset"), failures: 1}
	recordAndWait(t, repo, "r1", 4)

	assert.Equal(t, 2, repo.calls)
	assert.Equal(t, 4, repo.viewed["r1"])
}

func TestMarkResultsViewed_NotFoundIsPermanent(t *testing.T) {
	repo := &stubNavigatorRepo{err: apperrors.NewNotFoundError("navigator response not found"), failures: 10}

	err := MarkResultsViewed(context.Background(), repo, "deleted", 1)

	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
	assert.Equal(t, 1, repo.calls)
}
