package mirror

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/user/salon-service/pkg/utils"
)

// Resolver turns raw reference strings into absolute URLs and decides
// whether they belong to the target's origin.
type Resolver struct {
	target *url.URL
	origin string
	strict bool
}

// NewResolver builds a Resolver for target. With strict set, origins are
// compared on parsed scheme and host; otherwise a resolved URL is same-origin
// when it starts with the target's origin string, so
// "http://example.com.evil.io" passes for "http://example.com".
func NewResolver(target string, strict bool) (*Resolver, error) {
	u, err := url.Parse(target)
	if err != nil {
		return nil, fmt.Errorf("invalid target url %q: %w", target, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid target url %q: scheme and host are required", target)
	}
	return &Resolver{target: u, origin: utils.Origin(u), strict: strict}, nil
}

func (r *Resolver) Origin() string { return r.origin }

// Absolute applies the reference precedence: protocol-relative, then
// anything starting with "http" as-is, then relative to the target URL.
func (r *Resolver) Absolute(ref string) (string, error) {
	switch {
	case strings.HasPrefix(ref, "//"):
		return r.target.Scheme + ":" + ref, nil
	case strings.HasPrefix(ref, "http"):
		return ref, nil
	default:
		return utils.ToAbsoluteURL(r.target, ref)
	}
}

// Resolve returns the absolute URL for ref and whether it is retained.
func (r *Resolver) Resolve(ref string) (string, bool) {
	abs, err := r.Absolute(ref)
	if err != nil {
		return "", false
	}
	if !r.strict {
		return abs, strings.HasPrefix(abs, r.origin)
	}
	u, err := url.Parse(abs)
	if err != nil {
		return "", false
	}
	return abs, utils.SameOrigin(u, r.target)
}
