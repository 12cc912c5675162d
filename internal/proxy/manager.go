package proxy

import (
	"fmt"
	"math/rand/v2"
	"net/http"
	"net/url"
	"sync"
)

var defaultUserAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/127.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/127.0.0.0 Safari/537.36",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/127.0.0.0 Safari/537.36",
}

// Manager handles the rotation of proxies and user agents.
type Manager struct {
	proxies    []*url.URL
	userAgents []string
	mu         sync.Mutex
	proxyIndex int
}

// NewManager parses the proxy list up front. An empty user agent list falls
// back to a built-in set of desktop browsers.
func NewManager(proxies, userAgents []string) (*Manager, error) {
	m := &Manager{userAgents: userAgents}
	if len(m.userAgents) == 0 {
		m.userAgents = defaultUserAgents
	}
	for _, raw := range proxies {
		u, err := url.Parse(raw)
		if err != nil || u.Host == "" {
			return nil, fmt.Errorf("invalid proxy url %q", raw)
		}
		m.proxies = append(m.proxies, u)
	}
	return m, nil
}

func (m *Manager) HasProxies() bool { return len(m.proxies) > 0 }

// GetProxy returns a proxy URL from the list, rotating sequentially.
func (m *Manager) GetProxy() *url.URL {
	if len(m.proxies) == 0 {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	p := m.proxies[m.proxyIndex]
	m.proxyIndex = (m.proxyIndex + 1) % len(m.proxies)
	return p
}

// ProxyFunc adapts the rotation to http.Transport.Proxy.
func (m *Manager) ProxyFunc() func(*http.Request) (*url.URL, error) {
	return func(*http.Request) (*url.URL, error) {
		return m.GetProxy(), nil
	}
}

// GetUserAgent returns a random user agent string.
func (m *Manager) GetUserAgent() string {
	return m.userAgents[rand.IntN(len(m.userAgents))]
}
