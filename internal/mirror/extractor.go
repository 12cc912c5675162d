package mirror

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const assetSelector = `link[rel="stylesheet"], script[src], img[src]`

// AssetRef is one reference attribute on one element. Two refs with the same
// URL on different elements are distinct.
type AssetRef struct {
	OriginalURL string
	Node        *goquery.Selection
	Attr        string
}

// Candidate is an element attribute found by the extractor, before URL
// resolution.
type Candidate struct {
	Node *goquery.Selection
	Attr string
	Raw  string
}

// Extract scans doc for stylesheet links, script sources and image sources.
// Elements whose reference attribute is missing or blank are skipped. The
// document is not modified.
func Extract(doc *goquery.Document) []Candidate {
	var out []Candidate
	doc.Find(assetSelector).Each(func(_ int, s *goquery.Selection) {
		attr := "src"
		if goquery.NodeName(s) == "link" {
			attr = "href"
		}
		raw, ok := s.Attr(attr)
		raw = strings.TrimSpace(raw)
		if !ok || raw == "" {
			return
		}
		out = append(out, Candidate{Node: s, Attr: attr, Raw: raw})
	})
	return out
}

// Collect extracts candidates from doc and keeps those the resolver retains.
func Collect(doc *goquery.Document, r *Resolver) []AssetRef {
	var refs []AssetRef
	for _, c := range Extract(doc) {
		abs, ok := r.Resolve(c.Raw)
		if !ok {
			continue
		}
		refs = append(refs, AssetRef{OriginalURL: abs, Node: c.Node, Attr: c.Attr})
	}
	return refs
}
