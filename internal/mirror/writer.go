package mirror

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/PuerkitoBio/goquery"
)

// writeDocument serializes doc, including every attribute rewrite made so
// far, to <OutputDir>/<IndexFile>.
func (m *Mirror) writeDocument(doc *goquery.Document) (string, error) {
	html, err := doc.Html()
	if err != nil {
		return "", fmt.Errorf("%w: serialize document: %v", ErrWrite, err)
	}
	dest := filepath.Join(m.opts.OutputDir, m.opts.IndexFile)
	if err := os.WriteFile(dest, []byte(html), 0o644); err != nil {
		return "", fmt.Errorf("%w: %v", ErrWrite, err)
	}
	return dest, nil
}
