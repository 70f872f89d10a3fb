package providers

import "context"

// ResultsViewRecorder records that a navigator response's results were viewed.
// Implementations must not block the caller on the write and report failures
// only through logs.
type ResultsViewRecorder interface {
	RecordResultsViewed(ctx context.Context, responseID string, resultsCount int)
}
