package mirror

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const extractPage = `<!DOCTYPE html>
<html><head>
<link rel="stylesheet" href="/css/site.css">
<link rel="icon" href="/favicon.ico">
<link rel="stylesheet">
<script src="/js/app.js"></script>
<script>console.log("inline")</script>
<script src="  "></script>
</head><body>
<img src="images/a.png">
<img alt="no source">
<img src="https://cdn.example.org/b.png">
</body></html>`

func parse(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestExtract(t *testing.T) {
	got := Extract(parse(t, extractPage))
	require.Len(t, got, 4)

	assert.Equal(t, "href", got[0].Attr)
	assert.Equal(t, "/css/site.css", got[0].Raw)
	assert.Equal(t, "src", got[1].Attr)
	assert.Equal(t, "/js/app.js", got[1].Raw)
	assert.Equal(t, "images/a.png", got[2].Raw)
	assert.Equal(t, "https://cdn.example.org/b.png", got[3].Raw)
}

func TestCollectDropsForeignOrigins(t *testing.T) {
	r, err := NewResolver("https://example.com/", false)
	require.NoError(t, err)

	refs := Collect(parse(t, extractPage), r)
	require.Len(t, refs, 3)
	assert.Equal(t, "https://example.com/css/site.css", refs[0].OriginalURL)
	assert.Equal(t, "https://example.com/js/app.js", refs[1].OriginalURL)
	assert.Equal(t, "https://example.com/images/a.png", refs[2].OriginalURL)
}

func TestCollectKeepsDuplicateElements(t *testing.T) {
	r, err := NewResolver("https://example.com/", false)
	require.NoError(t, err)

	refs := Collect(parse(t, `<img src="/x.png"><img src="/x.png">`), r)
	require.Len(t, refs, 2)
	assert.Equal(t, refs[0].OriginalURL, refs[1].OriginalURL)
}
