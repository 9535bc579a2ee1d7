package integration

import "context"

// MockFetcher provides customizable hooks for testing Fetcher behavior.
type MockFetcher struct {
	ListItemsFunc func(ctx context.Context, credentials string) ([]Item, error)
}

// Ensure MockFetcher implements Fetcher
var _ Fetcher = (*MockFetcher)(nil)

// ListItems calls ListItemsFunc if set, otherwise returns nil, nil
func (m *MockFetcher) ListItems(ctx context.Context, credentials string) ([]Item, error) {
	if m.ListItemsFunc != nil {
		return m.ListItemsFunc(ctx, credentials)
	}
	return nil, nil
}
