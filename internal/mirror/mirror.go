// Package mirror makes a single-page offline copy of a web page: the root
// document plus its same-origin stylesheets, scripts and images, with the
// document's references rewritten to the downloaded files.
package mirror

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

type State string

const (
	StateIdle        State = "idle"
	StateFetching    State = "fetching"
	StateExtracting  State = "extracting"
	StateDownloading State = "downloading"
	StateWriting     State = "writing"
	StateDone        State = "done"
	StateFailed      State = "failed"
)

const defaultIndexFile = "index.html"

// Options configures one run.
type Options struct {
	TargetURL string
	OutputDir string
	IndexFile string
	// MaxConcurrency caps in-flight asset downloads. Zero means one goroutine
	// per asset with no cap.
	MaxConcurrency int
	// DedupByURL downloads each distinct URL once and rewrites every element
	// that referenced it.
	DedupByURL bool
	// RewriteOnSuccess leaves the attributes of failed assets untouched.
	RewriteOnSuccess bool
	// StrictOrigin compares parsed scheme and host instead of a string prefix.
	StrictOrigin bool
}

// Result summarizes a run.
type Result struct {
	State        State
	TargetURL    string
	DocumentPath string
	Assets       []AssetResult
	Downloaded   int
	Failed       int
	Duration     time.Duration
}

type Mirror struct {
	opts     Options
	target   *url.URL
	resolver *Resolver
	fetcher  Fetcher
	assets   AssetSource
	logger   *zap.Logger
	state    State
}

func New(opts Options, fetcher Fetcher, assets AssetSource, logger *zap.Logger) (*Mirror, error) {
	if opts.OutputDir == "" {
		return nil, fmt.Errorf("output directory is required")
	}
	if opts.IndexFile == "" {
		opts.IndexFile = defaultIndexFile
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	resolver, err := NewResolver(opts.TargetURL, opts.StrictOrigin)
	if err != nil {
		return nil, err
	}
	target, _ := url.Parse(opts.TargetURL)
	return &Mirror{
		opts:     opts,
		target:   target,
		resolver: resolver,
		fetcher:  fetcher,
		assets:   assets,
		logger:   logger,
		state:    StateIdle,
	}, nil
}

func (m *Mirror) setState(s State) {
	m.logger.Debug("state transition", zap.String("from", string(m.state)), zap.String("to", string(s)))
	m.state = s
}

func (m *Mirror) fail(res *Result, err error) (*Result, error) {
	m.setState(StateFailed)
	res.State = StateFailed
	m.logger.Error("An error occurred", zap.String("target", m.opts.TargetURL), zap.Error(err))
	return res, err
}

// Run executes the pipeline once. A root fetch failure, an unparsable document
// or a failed document write fails the run; asset failures are only reported
// in the Result. The output root is created before the fetch, so it exists
// even when the fetch fails.
func (m *Mirror) Run(ctx context.Context) (*Result, error) {
	start := time.Now()
	res := &Result{State: m.state, TargetURL: m.opts.TargetURL}
	defer func() { res.Duration = time.Since(start) }()

	if err := os.MkdirAll(m.opts.OutputDir, 0o755); err != nil {
		return m.fail(res, fmt.Errorf("%w: create output root: %v", ErrWrite, err))
	}

	m.setState(StateFetching)
	body, err := m.fetch(ctx)
	if err != nil {
		return m.fail(res, err)
	}

	m.setState(StateExtracting)
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return m.fail(res, fmt.Errorf("%w: %v", ErrExtract, err))
	}
	refs := Collect(doc, m.resolver)
	m.logger.Info("Assets found",
		zap.String("origin", m.resolver.Origin()),
		zap.Int("refs", len(refs)),
	)

	m.setState(StateDownloading)
	res.Assets = m.download(ctx, refs)
	for _, a := range res.Assets {
		if a.Err != nil {
			res.Failed++
		} else {
			res.Downloaded++
		}
	}

	m.setState(StateWriting)
	dest, err := m.writeDocument(doc)
	if err != nil {
		return m.fail(res, err)
	}
	res.DocumentPath = dest

	m.setState(StateDone)
	res.State = StateDone
	m.logger.Info("Page and assets downloaded successfully",
		zap.String("document", dest),
		zap.Int("downloaded", res.Downloaded),
		zap.Int("failed", res.Failed),
	)
	return res, nil
}
