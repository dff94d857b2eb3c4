// Package extractor turns raw markup into the ordered list of cleaned text
// paragraphs that the classifier consumes.
package extractor

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/dtnitsch/recipe-web-parser/models"
)

// DefaultMainSelector matches the containers sites use to mark their
// primary content. The first match in document order wins.
const DefaultMainSelector = `main, [role="main"]`

// excludedParents are tags whose direct text children are never content.
var excludedParents = map[string]struct{}{
	"html": {}, "head": {}, "meta": {}, "title": {}, "header": {},
	"input": {}, "img": {}, "script": {}, "style": {}, "noscript": {},
}

// excludedAncestors drop every text node below them, however deep.
var excludedAncestors = map[string]struct{}{
	"script": {}, "style": {}, "noscript": {}, "template": {},
}

// defaultInline are wrappers replaced by their own text so a sentence split
// across them stays one paragraph.
var defaultInline = []string{
	"span", "a", "b", "strong", "i", "em", "u", "small", "mark", "font", "abbr",
	"sup", "sub", "code", "q", "cite",
}

// defaultBoilerplate are exact strings dropped after normalization.
var defaultBoilerplate = []string{
	"Ingredients", "Instructions", "Method", "Directions", "Advertisement", ",",
}

// Extractor is read-only after New and safe for concurrent use.
type Extractor struct {
	mainSelector string
	inline       map[string]struct{}
	boilerplate  map[string]struct{}
}

// Option customises an Extractor.
type Option func(*Extractor)

// WithMainSelector overrides the selector used to find the content region.
func WithMainSelector(sel string) Option {
	return func(e *Extractor) { e.mainSelector = sel }
}

// WithInlineTags replaces the set of collapsed inline wrappers.
func WithInlineTags(tags ...string) Option {
	return func(e *Extractor) { e.inline = toSet(tags) }
}

// WithBoilerplate adds exact-match strings to drop.
func WithBoilerplate(words ...string) Option {
	return func(e *Extractor) {
		for _, w := range words {
			e.boilerplate[w] = struct{}{}
		}
	}
}

// New returns an Extractor with the default selector, inline tags and
// boilerplate, adjusted by opts.
func New(opts ...Option) *Extractor {
	e := &Extractor{
		mainSelector: DefaultMainSelector,
		inline:       toSet(defaultInline),
		boilerplate:  toSet(defaultBoilerplate),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract returns the page's paragraphs in document order with zero-based,
// contiguous indices. Markup without usable text yields an empty slice.
func (e *Extractor) Extract(markup string) []models.Paragraph {
	paragraphs := []models.Paragraph{}
	if strings.TrimSpace(markup) == "" {
		return paragraphs
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return paragraphs
	}

	for _, root := range e.region(doc).Nodes {
		e.collapseInline(root)
		walkText(root, func(n *html.Node) {
			cleaned := Normalize(n.Data)
			if e.isBoilerplate(cleaned) {
				return
			}
			paragraphs = append(paragraphs, models.Paragraph{
				Index:   len(paragraphs),
				Raw:     n.Data,
				Cleaned: cleaned,
			})
		})
	}
	return paragraphs
}

// region picks the main content container, or the whole document when the
// page does not declare one.
func (e *Extractor) region(doc *goquery.Document) *goquery.Selection {
	if e.mainSelector != "" {
		if main := doc.Find(e.mainSelector).First(); main.Length() > 0 {
			return main
		}
	}
	return doc.Selection
}

func (e *Extractor) isBoilerplate(cleaned string) bool {
	if cleaned == "" {
		return true
	}
	_, ok := e.boilerplate[cleaned]
	return ok
}

// collapseInline replaces inline wrappers below n with text nodes and merges
// the resulting runs of adjacent text. Comments are dropped so they do not
// split a run. Children are handled before parents, and a wrapper that
// still holds a block element after that is left in place.
func (e *Extractor) collapseInline(n *html.Node) {
	var children []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		children = append(children, c)
	}
	for _, c := range children {
		if c.Type == html.CommentNode {
			n.RemoveChild(c)
			continue
		}
		if c.Type != html.ElementNode {
			continue
		}
		e.collapseInline(c)
		if _, ok := e.inline[c.Data]; ok && n.Type == html.ElementNode && !holdsBlock(c) {
			n.InsertBefore(&html.Node{Type: html.TextNode, Data: textContent(c)}, c)
			n.RemoveChild(c)
		}
	}
	mergeText(n)
}

// holdsBlock reports whether n has an element child other than a
// script-like one. Inline children are already collapsed to text by then.
func holdsBlock(n *html.Node) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		if _, ok := excludedAncestors[c.Data]; !ok {
			return true
		}
	}
	return false
}

// textContent concatenates the text below n, skipping script-like subtrees.
func textContent(n *html.Node) string {
	var b strings.Builder
	var visit func(*html.Node)
	visit = func(cur *html.Node) {
		if cur.Type == html.TextNode {
			b.WriteString(cur.Data)
			return
		}
		if cur.Type == html.ElementNode {
			if _, ok := excludedAncestors[cur.Data]; ok {
				return
			}
		}
		for c := cur.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	visit(n)
	return b.String()
}

func mergeText(n *html.Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		for c.Type == html.TextNode && c.NextSibling != nil && c.NextSibling.Type == html.TextNode {
			next := c.NextSibling
			c.Data += next.Data
			n.RemoveChild(next)
		}
	}
}

// walkText calls fn for every text node below root, in document order,
// whose parent and ancestry mark it as content.
func walkText(root *html.Node, fn func(*html.Node)) {
	var visit func(*html.Node)
	visit = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			if isContentText(n) {
				fn(n)
			}
			return
		case html.ElementNode:
			if _, ok := excludedAncestors[n.Data]; ok {
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	visit(root)
}

func isContentText(n *html.Node) bool {
	p := n.Parent
	if p == nil || p.Type == html.DocumentNode {
		return false
	}
	if _, ok := excludedParents[p.Data]; ok {
		return false
	}
	for a := p; a != nil; a = a.Parent {
		if a.Type != html.ElementNode {
			continue
		}
		if _, ok := excludedAncestors[a.Data]; ok {
			return false
		}
	}
	return true
}

// Normalize collapses whitespace runs (including newlines, tabs and
// non-breaking spaces) to one space and trims the ends.
func Normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func toSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, it := range items {
		set[it] = struct{}{}
	}
	return set
}
