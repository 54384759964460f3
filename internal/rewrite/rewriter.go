// Package rewrite splices keyword anchors into rendered HTML. Matching is
// restricted to text nodes; markup structure, existing anchors, and
// preformatted regions pass through untouched.
package rewrite

import (
	"sort"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/goliatone/go-keywords/internal/matchindex"
	"github.com/goliatone/go-keywords/internal/terms"
)

// DefaultAnchorClass is the class attribute stamped on generated anchors so
// stylesheets can target machine-inserted keyword links.
const DefaultAnchorClass = "keyword-link"

// skipElements are subtrees whose text must never be linked: existing
// anchors (no nested links), preformatted and code regions, and elements
// whose character data is not prose.
var skipElements = map[atom.Atom]struct{}{
	atom.A:        {},
	atom.Code:     {},
	atom.Pre:      {},
	atom.Script:   {},
	atom.Style:    {},
	atom.Textarea: {},
	atom.Title:    {},
}

// Rewriter applies match results to HTML content.
type Rewriter struct {
	anchorClass string
}

// Option configures a Rewriter.
type Option func(*Rewriter)

// WithAnchorClass overrides the class attribute on generated anchors. An
// empty string omits the attribute entirely.
func WithAnchorClass(class string) Option {
	return func(r *Rewriter) {
		r.anchorClass = class
	}
}

// New constructs a rewriter with the default anchor class.
func New(opts ...Option) *Rewriter {
	r := &Rewriter{anchorClass: DefaultAnchorClass}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// segment is one eligible text node mapped into the concatenated normalized
// buffer. offsets translates node-local normalized byte positions back to
// positions in the node's raw data.
type segment struct {
	node      *html.Node
	normStart int
	normEnd   int
	offsets   []int
}

// splice is one accepted match localized to a single text node.
type splice struct {
	rawStart int
	rawEnd   int
	term     terms.Term
}

// Rewrite scans the content with the supplied index and wraps every
// qualifying mention in an anchor. Mentions owned by excludeOwner are left
// as plain text. On parse or serialization failure the original content is
// returned together with the error; the caller decides how loudly to warn.
func (r *Rewriter) Rewrite(content string, idx *matchindex.Index, excludeOwner uuid.UUID) (string, error) {
	if idx == nil || idx.Len() == 0 || content == "" {
		return content, nil
	}

	container := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	nodes, err := html.ParseFragment(strings.NewReader(content), &html.Node{
		Type:     html.ElementNode,
		Data:     "div",
		DataAtom: atom.Div,
	})
	if err != nil {
		return content, err
	}
	for _, n := range nodes {
		container.AppendChild(n)
	}

	var (
		segments []segment
		buf      strings.Builder
	)
	for c := container.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, &segments, &buf)
	}
	if len(segments) == 0 {
		return content, nil
	}

	splices := r.localize(idx.FindAll(buf.String()), idx, segments, excludeOwner)
	if len(splices) == 0 {
		return content, nil
	}

	for node, spans := range splices {
		spliceNode(node, spans, r.anchorClass)
	}

	var out strings.Builder
	for c := container.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&out, c); err != nil {
			return content, err
		}
	}
	return out.String(), nil
}

// collectText walks the tree in document order, appending the normalized
// text of every eligible text node to buf and recording its segment.
func collectText(n *html.Node, segments *[]segment, buf *strings.Builder) {
	switch n.Type {
	case html.TextNode:
		normalized, offsets := terms.NormalizeTracked(n.Data)
		if normalized == "" {
			return
		}
		// NUL separates segments; no normalized term contains it, so a
		// match can never span unrelated text nodes.
		if buf.Len() > 0 {
			buf.WriteByte(0x00)
		}
		start := buf.Len()
		buf.WriteString(normalized)
		*segments = append(*segments, segment{
			node:      n,
			normStart: start,
			normEnd:   buf.Len(),
			offsets:   offsets,
		})
		return
	case html.ElementNode:
		if _, skip := skipElements[n.DataAtom]; skip {
			return
		}
	case html.CommentNode, html.DoctypeNode:
		return
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, segments, buf)
	}
}

// localize maps accepted matches back onto individual text nodes. Matches
// that straddle a node boundary are dropped: correctness of the markup
// outranks exhaustive linking. Matches resolving to excludeOwner are
// suppressed so a page never links to itself.
func (r *Rewriter) localize(matches []matchindex.Match, idx *matchindex.Index, segments []segment, excludeOwner uuid.UUID) map[*html.Node][]splice {
	if len(matches) == 0 {
		return nil
	}

	result := make(map[*html.Node][]splice)
	for _, m := range matches {
		term := idx.Term(m.TermIndex)
		if excludeOwner != uuid.Nil && term.OwnerEntityID == excludeOwner {
			continue
		}

		i := sort.Search(len(segments), func(i int) bool {
			return segments[i].normEnd > m.Start
		})
		if i == len(segments) {
			continue
		}
		seg := segments[i]
		if m.Start < seg.normStart || m.End > seg.normEnd {
			continue
		}

		localStart := m.Start - seg.normStart
		localEnd := m.End - seg.normStart
		result[seg.node] = append(result[seg.node], splice{
			rawStart: seg.offsets[localStart],
			rawEnd:   seg.offsets[localEnd],
			term:     term,
		})
	}

	if len(result) == 0 {
		return nil
	}
	return result
}

// spliceNode replaces a text node with the interleaving of plain text runs
// and anchor elements. The visible link text is the raw substring, so the
// original casing and width survive normalization.
func spliceNode(node *html.Node, spans []splice, anchorClass string) {
	parent := node.Parent
	if parent == nil {
		return
	}

	raw := node.Data
	cursor := 0
	for _, sp := range spans {
		if sp.rawStart < cursor {
			continue
		}
		if sp.rawStart > cursor {
			parent.InsertBefore(textNode(raw[cursor:sp.rawStart]), node)
		}
		parent.InsertBefore(anchorNode(sp.term, raw[sp.rawStart:sp.rawEnd], anchorClass), node)
		cursor = sp.rawEnd
	}
	if cursor < len(raw) {
		parent.InsertBefore(textNode(raw[cursor:]), node)
	}
	parent.RemoveChild(node)
}

func textNode(data string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: data}
}

func anchorNode(term terms.Term, surface, anchorClass string) *html.Node {
	a := &html.Node{
		Type:     html.ElementNode,
		Data:     "a",
		DataAtom: atom.A,
		Attr: []html.Attribute{
			{Key: "href", Val: term.TargetURL},
		},
	}
	if anchorClass != "" {
		a.Attr = append(a.Attr, html.Attribute{Key: "class", Val: anchorClass})
	}
	a.AppendChild(textNode(surface))
	return a
}
