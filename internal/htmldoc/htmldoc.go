// Package htmldoc wraps goquery with a small document-tree abstraction.
// Extraction code asks for the first match or all matches of a selector and
// receives typed, optional-returning accessors instead of raw selections, so
// "element not there" is an explicit bool rather than a silent empty value.
package htmldoc

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Document is a parsed HTML page.
type Document struct {
	doc *goquery.Document
}

// Parse builds a Document from raw HTML bytes.
func Parse(body []byte) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return &Document{doc: doc}, nil
}

// First returns the first element matching selector, reporting whether one
// exists.
func (d *Document) First(selector string) (Element, bool) {
	sel := d.doc.Find(selector).First()
	if sel.Length() == 0 {
		return Element{}, false
	}
	return Element{sel: sel}, true
}

// All returns every element matching selector in document order.
func (d *Document) All(selector string) []Element {
	var out []Element
	d.doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
		out = append(out, Element{sel: s})
	})
	return out
}

// Element is a single node in the document tree.
type Element struct {
	sel *goquery.Selection
}

// Attr returns the value of the named attribute, reporting whether it is set.
func (e Element) Attr(name string) (string, bool) {
	if e.sel == nil {
		return "", false
	}
	return e.sel.Attr(name)
}

// Text returns the element's text content with surrounding whitespace trimmed.
func (e Element) Text() string {
	if e.sel == nil {
		return ""
	}
	return strings.TrimSpace(e.sel.Text())
}
