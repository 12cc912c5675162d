package proxy

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetProxyRotates(t *testing.T) {
	m, err := NewManager([]string{"http://p1:8000", "http://p2:8000"}, nil)
	require.NoError(t, err)

	assert.Equal(t, "p1:8000", m.GetProxy().Host)
	assert.Equal(t, "p2:8000", m.GetProxy().Host)
	assert.Equal(t, "p1:8000", m.GetProxy().Host)
}

func TestNoProxies(t *testing.T) {
	m, err := NewManager(nil, nil)
	require.NoError(t, err)

	assert.False(t, m.HasProxies())
	assert.Nil(t, m.GetProxy())

	u, err := m.ProxyFunc()(&http.Request{})
	assert.NoError(t, err)
	assert.Nil(t, u)
}

func TestInvalidProxy(t *testing.T) {
	_, err := NewManager([]string{"not a proxy"}, nil)
	assert.Error(t, err)
}

func TestGetUserAgent(t *testing.T) {
	m, err := NewManager(nil, []string{"salon-mirror/1.0"})
	require.NoError(t, err)
	assert.Equal(t, "salon-mirror/1.0", m.GetUserAgent())

	m, err = NewManager(nil, nil)
	require.NoError(t, err)
	assert.Contains(t, defaultUserAgents, m.GetUserAgent())
}
