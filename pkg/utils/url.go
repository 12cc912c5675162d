package utils

import (
	"net/url"
	"strings"
)

// ToAbsoluteURL converts a relative URL to an absolute URL given a base URL.
func ToAbsoluteURL(base *url.URL, relative string) (string, error) {
	relURL, err := url.Parse(relative)
	if err != nil {
		return "", err
	}
	return base.ResolveReference(relURL).String(), nil
}

// Origin returns "scheme://host[:port]" for u.
func Origin(u *url.URL) string {
	return u.Scheme + "://" + u.Host
}

// SameOrigin reports whether a and b share scheme and host, port included.
func SameOrigin(a, b *url.URL) bool {
	return strings.EqualFold(a.Scheme, b.Scheme) && strings.EqualFold(a.Host, b.Host)
}
