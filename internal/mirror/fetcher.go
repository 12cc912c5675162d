package mirror

import (
	"context"
	"io"
)

// Fetcher retrieves the root document.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// AssetSource opens a streaming body for one asset. Implementations return an
// error for transport failures and non-2xx statuses.
type AssetSource interface {
	Open(ctx context.Context, url string) (io.ReadCloser, error)
}

func (m *Mirror) fetch(ctx context.Context) ([]byte, error) {
	body, err := m.fetcher.Fetch(ctx, m.target.String())
	if err != nil {
		return nil, &FetchError{URL: m.target.String(), Err: err}
	}
	return body, nil
}
