package mirror

import (
	"context"
	"io"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// AssetResult is the outcome of one download job.
type AssetResult struct {
	URL       string
	LocalPath string
	Refs      int
	Err       error
}

type job struct {
	url      string
	refs     []AssetRef
	fullPath string
	relPath  string
}

// LocalPath maps an absolute asset URL to a file under root. Only the URL
// path is used; query and fragment are dropped. Dot segments are cleaned so
// the result cannot leave root, and directory URLs map to index.html.
func LocalPath(root, rawURL string) (full, rel string, err error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", "", err
	}
	p := u.Path
	if p == "" || strings.HasSuffix(p, "/") {
		p += "index.html"
	}
	p = path.Clean("/" + p)
	full = filepath.Join(root, filepath.FromSlash(p))
	rel, err = filepath.Rel(root, full)
	if err != nil {
		return "", "", err
	}
	return full, filepath.ToSlash(rel), nil
}

// plan groups refs into download jobs. Without dedup every ref gets its own
// job, so a URL referenced twice is downloaded twice.
func (m *Mirror) plan(refs []AssetRef) []*job {
	var jobs []*job
	byURL := make(map[string]*job)
	for _, ref := range refs {
		if m.opts.DedupByURL {
			if j, ok := byURL[ref.OriginalURL]; ok {
				j.refs = append(j.refs, ref)
				continue
			}
		}
		j := &job{url: ref.OriginalURL, refs: []AssetRef{ref}}
		byURL[ref.OriginalURL] = j
		jobs = append(jobs, j)
	}
	return jobs
}

// download fans out one goroutine per job and waits for all of them.
// Individual failures are logged and recorded, never returned.
func (m *Mirror) download(ctx context.Context, refs []AssetRef) []AssetResult {
	jobs := m.plan(refs)
	results := make([]AssetResult, len(jobs))

	var g errgroup.Group
	if m.opts.MaxConcurrency > 0 {
		g.SetLimit(m.opts.MaxConcurrency)
	}

	for i, j := range jobs {
		results[i] = AssetResult{URL: j.url, Refs: len(j.refs)}

		full, rel, err := LocalPath(m.opts.OutputDir, j.url)
		if err == nil {
			err = os.MkdirAll(filepath.Dir(full), 0o755)
		}
		if err != nil {
			results[i].Err = &AssetDownloadError{URL: j.url, LocalPath: full, Err: err}
			m.logger.Error("Error preparing asset path", zap.String("url", j.url), zap.Error(err))
			continue
		}
		j.fullPath, j.relPath = full, rel
		results[i].LocalPath = full

		if !m.opts.RewriteOnSuccess {
			rewrite(j.refs, rel)
		}

		g.Go(func() error {
			if err := m.fetchAsset(ctx, j); err != nil {
				results[i].Err = err
				m.logger.Error("Error downloading "+j.url, zap.String("path", j.fullPath), zap.Error(err))
				return nil
			}
			m.logger.Info("Downloaded: "+j.url, zap.String("path", j.fullPath))
			return nil
		})
	}
	_ = g.Wait()

	if m.opts.RewriteOnSuccess {
		for i, j := range jobs {
			if results[i].Err == nil {
				rewrite(j.refs, j.relPath)
			}
		}
	}
	return results
}

func rewrite(refs []AssetRef, rel string) {
	for _, ref := range refs {
		ref.Node.SetAttr(ref.Attr, rel)
	}
}

// fetchAsset streams the body into a temp file next to the destination and
// renames it into place, so a failed or concurrent download never leaves a
// partial file at the final path.
func (m *Mirror) fetchAsset(ctx context.Context, j *job) error {
	body, err := m.assets.Open(ctx, j.url)
	if err != nil {
		return &AssetDownloadError{URL: j.url, LocalPath: j.fullPath, Err: err}
	}
	defer body.Close()

	tmp, err := os.CreateTemp(filepath.Dir(j.fullPath), "."+filepath.Base(j.fullPath)+".*.part")
	if err != nil {
		return &AssetDownloadError{URL: j.url, LocalPath: j.fullPath, Err: err}
	}
	tmpName := tmp.Name()

	if _, err := io.Copy(tmp, body); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return &AssetDownloadError{URL: j.url, LocalPath: j.fullPath, Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return &AssetDownloadError{URL: j.url, LocalPath: j.fullPath, Err: err}
	}
	if err := os.Rename(tmpName, j.fullPath); err != nil {
		os.Remove(tmpName)
		return &AssetDownloadError{URL: j.url, LocalPath: j.fullPath, Err: err}
	}
	return nil
}
