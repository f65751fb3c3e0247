package engine

import (
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// DOMService wraps goquery parsing plus the small extraction helpers sources
// share.
type DOMService struct{}

// Parse parses HTML from a reader into a queryable document
func (d *DOMService) Parse(r io.Reader) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(r)
}

// ParseString parses an HTML string into a queryable document
func (d *DOMService) ParseString(content string) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(strings.NewReader(content))
}

// Text returns the trimmed text of the first element matching selector, or ""
func (d *DOMService) Text(sel *goquery.Selection, selector string) string {
	return strings.TrimSpace(sel.Find(selector).First().Text())
}

// FirstAttr returns the first non-empty value among the named attributes of
// the selection's first node.
func (d *DOMService) FirstAttr(sel *goquery.Selection, names ...string) string {
	for _, name := range names {
		if val, ok := sel.Attr(name); ok && strings.TrimSpace(val) != "" {
			return strings.TrimSpace(val)
		}
	}
	return ""
}
