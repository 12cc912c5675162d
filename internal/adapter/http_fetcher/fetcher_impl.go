package http_fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/user/salon-service/internal/proxy"
)

// StatusError is returned for any response outside the 2xx range.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d for %s", e.StatusCode, e.URL)
}

// Fetcher serves both the root document fetch and streaming asset downloads.
type Fetcher struct {
	client   *resty.Client
	rotation *proxy.Manager
}

// NewFetcher builds a resty client. A zero timeout means no per-request
// timeout. When rotation carries proxies, every request picks the next one.
func NewFetcher(timeout time.Duration, rotation *proxy.Manager) *Fetcher {
	client := resty.New()
	if timeout > 0 {
		client.SetTimeout(timeout)
	}
	if rotation.HasProxies() {
		transport := http.DefaultTransport.(*http.Transport).Clone()
		transport.Proxy = rotation.ProxyFunc()
		client.SetTransport(transport)
	}
	return &Fetcher{client: client, rotation: rotation}
}

func (f *Fetcher) request(ctx context.Context) *resty.Request {
	return f.client.R().
		SetContext(ctx).
		SetHeader("User-Agent", f.rotation.GetUserAgent())
}

// Fetch returns the full body of url.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	resp, err := f.request(ctx).Get(url)
	if err != nil {
		return nil, err
	}
	if !resp.IsSuccess() {
		return nil, &StatusError{URL: url, StatusCode: resp.StatusCode()}
	}
	return resp.Body(), nil
}

// Open returns the unread response body of url. The caller closes it.
func (f *Fetcher) Open(ctx context.Context, url string) (io.ReadCloser, error) {
	resp, err := f.request(ctx).SetDoNotParseResponse(true).Get(url)
	if err != nil {
		return nil, err
	}
	body := resp.RawBody()
	if !resp.IsSuccess() {
		body.Close()
		return nil, &StatusError{URL: url, StatusCode: resp.StatusCode()}
	}
	return body, nil
}
