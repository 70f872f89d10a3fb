package handlers_test

import (
	"context"
	"net/url"

	"github.com/stretchr/testify/mock"

	"github.com/mhbaltimore/directory/internal/domain/entities"
)

type MockResultsFinder struct {
	mock.Mock
}

func (m *MockResultsFinder) GetResults(ctx context.Context, params url.Values) (*entities.ResultsResponse, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.ResultsResponse), args.Error(1)
}

type MockNavigatorSubmitter struct {
	mock.Mock
}

func (m *MockNavigatorSubmitter) Submit(ctx context.Context, submission entities.NavigatorSubmission) (*entities.NavigatorResponse, error) {
	args := m.Called(ctx, submission)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.NavigatorResponse), args.Error(1)
}

type MockDirectoryService struct {
	mock.Mock
}

func (m *MockDirectoryService) GetProviderCard(ctx context.Context, id string) (*entities.ProviderCard, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.ProviderCard), args.Error(1)
}

func (m *MockDirectoryService) GetOrganizationCard(ctx context.Context, id string) (*entities.OrganizationCard, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.OrganizationCard), args.Error(1)
}

func (m *MockDirectoryService) SuggestEnabled() bool {
	return m.Called().Bool(0)
}

func (m *MockDirectoryService) Suggest(ctx context.Context, query string, limit int) ([]*entities.DirectoryEntry, error) {
	args := m.Called(ctx, query, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.DirectoryEntry), args.Error(1)
}

type stubPinger struct {
	err error
}

func (s stubPinger) Ping(context.Context) error { return s.err }
