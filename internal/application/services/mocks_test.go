package services_test

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/mhbaltimore/directory/internal/domain/entities"
)

type MockProviderRepository struct {
	mock.Mock
}

func (m *MockProviderRepository) Match(ctx context.Context, criteria entities.MatchCriteria) ([]*entities.Provider, int, error) {
	args := m.Called(ctx, criteria)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*entities.Provider), args.Int(1), args.Error(2)
}

func (m *MockProviderRepository) GetByID(ctx context.Context, id string) (*entities.Provider, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Provider), args.Error(1)
}

type MockOrganizationRepository struct {
	mock.Mock
}

func (m *MockOrganizationRepository) Match(ctx context.Context, criteria entities.MatchCriteria) ([]*entities.Organization, int, error) {
	args := m.Called(ctx, criteria)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*entities.Organization), args.Int(1), args.Error(2)
}

func (m *MockOrganizationRepository) GetByID(ctx context.Context, id string) (*entities.Organization, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Organization), args.Error(1)
}

type MockRatingRepository struct {
	mock.Mock
}

func (m *MockRatingRepository) GetByProviderIDs(ctx context.Context, ids []string) (map[string]*entities.ProviderRating, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]*entities.ProviderRating), args.Error(1)
}

type MockNavigatorResponseRepository struct {
	mock.Mock
}

func (m *MockNavigatorResponseRepository) Create(ctx context.Context, response *entities.NavigatorResponse) error {
	return m.Called(ctx, response).Error(0)
}

func (m *MockNavigatorResponseRepository) GetByID(ctx context.Context, id string) (*entities.NavigatorResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.NavigatorResponse), args.Error(1)
}

func (m *MockNavigatorResponseRepository) MarkResultsViewed(ctx context.Context, id string, count int) error {
	return m.Called(ctx, id, count).Error(0)
}

// recordedView is one RecordResultsViewed call
type recordedView struct {
	ResponseID string
	Count      int
}

// FakeViewRecorder records calls synchronously
type FakeViewRecorder struct {
	mu    sync.Mutex
	calls []recordedView
}

func (f *FakeViewRecorder) RecordResultsViewed(_ context.Context, responseID string, count int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, recordedView{ResponseID: responseID, Count: count})
}

func (f *FakeViewRecorder) Calls() []recordedView {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]recordedView(nil), f.calls...)
}

type MockDirectoryIndex struct {
	mock.Mock
}

func (m *MockDirectoryIndex) EnsureCollection(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockDirectoryIndex) Upsert(ctx context.Context, entries []*entities.DirectoryEntry) error {
	return m.Called(ctx, entries).Error(0)
}

func (m *MockDirectoryIndex) Suggest(ctx context.Context, query string, limit int) ([]*entities.DirectoryEntry, error) {
	args := m.Called(ctx, query, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.DirectoryEntry), args.Error(1)
}

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }
