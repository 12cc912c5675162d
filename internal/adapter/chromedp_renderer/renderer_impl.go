package chromedp_renderer

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
)

// Renderer fetches a page through headless Chrome and returns the outer HTML
// after scripts have run.
type Renderer struct {
	allocCtx context.Context
	cancel   context.CancelFunc
	timeout  time.Duration
	logger   *zap.Logger
}

func NewRenderer(pageLoadTimeout time.Duration, userAgent string, logger *zap.Logger) *Renderer {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if userAgent != "" {
		opts = append(opts, chromedp.UserAgent(userAgent))
	}
	allocCtx, cancel := chromedp.NewExecAllocator(context.Background(), opts...)

	return &Renderer{
		allocCtx: allocCtx,
		cancel:   cancel,
		timeout:  pageLoadTimeout,
		logger:   logger,
	}
}

// Fetch navigates to url and returns the rendered document. A main document
// response of 400 or above is reported as an error.
func (r *Renderer) Fetch(ctx context.Context, url string) ([]byte, error) {
	taskCtx, cancel := chromedp.NewContext(r.allocCtx, chromedp.WithLogf(r.logger.Sugar().Debugf))
	defer cancel()

	if r.timeout > 0 {
		var cancelTimeout context.CancelFunc
		taskCtx, cancelTimeout = context.WithTimeout(taskCtx, r.timeout)
		defer cancelTimeout()
	}
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	var status atomic.Int64
	chromedp.ListenTarget(taskCtx, func(ev interface{}) {
		if e, ok := ev.(*network.EventResponseReceived); ok && e.Type == network.ResourceTypeDocument {
			status.CompareAndSwap(0, e.Response.Status)
		}
	})

	start := time.Now()
	var html string
	err := chromedp.Run(taskCtx,
		network.Enable(),
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", url, err)
	}
	if code := status.Load(); code >= 400 {
		return nil, fmt.Errorf("render %s: unexpected status %d", url, code)
	}

	r.logger.Info("Rendered page",
		zap.String("url", url),
		zap.Int64("status", status.Load()),
		zap.Duration("elapsed", time.Since(start)),
	)
	return []byte(html), nil
}

// Close shuts down the browser allocator.
func (r *Renderer) Close() {
	r.cancel()
}
