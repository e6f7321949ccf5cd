// Package outline keeps a markdown syntax tree in step with the document and
// lists its headings. Classified change events let it reparse incrementally.
package outline

import (
	"context"
	"fmt"
	"strings"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
	markdown "github.com/smacker/go-tree-sitter/markdown/tree-sitter-markdown"

	"github.com/bethropolis/tidemark/internal/change"
	"github.com/bethropolis/tidemark/internal/logger"
)

// Heading is one ATX or setext heading. Line is 1-based.
type Heading struct {
	Level int
	Line  int
	Title string
}

// Outline owns a parser and the last tree it produced.
type Outline struct {
	mu       sync.Mutex
	parser   *sitter.Parser
	tree     *sitter.Tree
	source   []byte
	headings []Heading

	fullParses        int
	incrementalParses int
}

// New creates an empty outline.
func New() *Outline {
	parser := sitter.NewParser()
	parser.SetLanguage(markdown.GetLanguage())
	return &Outline{parser: parser}
}

// Update reparses source. A batch containing a reset or an unclassified
// event, or an outline with no tree yet, gets a full parse; otherwise the
// old tree is edited starting at the smallest changed line and reused.
func (o *Outline) Update(ctx context.Context, source []byte, events []change.IncrementalEvent) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	full := o.tree == nil
	firstLine := 0
	for _, ev := range events {
		if ev.NeedsFullReparse() {
			full = true
			break
		}
		if l := ev.FirstLine(); firstLine == 0 || l < firstLine {
			firstLine = l
		}
	}

	var old *sitter.Tree
	if !full {
		edit, changed := diffEdit(o.source, source, firstLine)
		if !changed {
			logger.DebugTagf("outline", "Source unchanged, keeping tree")
			return nil
		}
		o.tree.Edit(edit)
		old = o.tree
		logger.DebugTagf("outline", "Incremental parse from line %d, bytes %d-%d -> %d",
			firstLine, edit.StartIndex, edit.OldEndIndex, edit.NewEndIndex)
	}

	tree, err := o.parser.ParseCtx(ctx, old, source)
	if err != nil {
		return fmt.Errorf("parse markdown: %w", err)
	}
	if o.tree != nil {
		o.tree.Close()
	}
	o.tree = tree
	o.source = source
	o.headings = collectHeadings(tree.RootNode(), source)

	if full {
		o.fullParses++
	} else {
		o.incrementalParses++
	}
	logger.DebugTagf("outline", "Parsed %d bytes, %d headings", len(source), len(o.headings))
	return nil
}

// Headings returns the headings in document order.
func (o *Outline) Headings() []Heading {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]Heading(nil), o.headings...)
}

// HeadingAt returns the heading of the section containing line (1-based).
func (o *Outline) HeadingAt(line int) (Heading, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	var found Heading
	ok := false
	for _, h := range o.headings {
		if h.Line > line {
			break
		}
		found, ok = h, true
	}
	return found, ok
}

// Parses reports how many full and incremental parses have run.
func (o *Outline) Parses() (full, incremental int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.fullParses, o.incrementalParses
}

// Close releases the tree and the parser.
func (o *Outline) Close() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.tree != nil {
		o.tree.Close()
		o.tree = nil
	}
	o.parser.Close()
}

func collectHeadings(root *sitter.Node, source []byte) []Heading {
	var headings []Heading
	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		switch n.Type() {
		case "atx_heading":
			headings = append(headings, atxHeading(n, source))
			return
		case "setext_heading":
			headings = append(headings, setextHeading(n, source))
			return
		}
		for i := 0; i < int(n.NamedChildCount()); i++ {
			walk(n.NamedChild(i))
		}
	}
	walk(root)
	return headings
}

func atxHeading(n *sitter.Node, source []byte) Heading {
	text := firstLine(n.Content(source))
	text = strings.TrimLeft(text, " ")
	level := len(text) - len(strings.TrimLeft(text, "#"))
	title := strings.TrimSpace(text[level:])
	// optional closing sequence
	if trimmed := strings.TrimRight(title, "#"); trimmed == "" || strings.HasSuffix(trimmed, " ") {
		title = strings.TrimSpace(trimmed)
	}
	return Heading{Level: level, Line: int(n.StartPoint().Row) + 1, Title: title}
}

func setextHeading(n *sitter.Node, source []byte) Heading {
	lines := strings.Split(strings.TrimRight(n.Content(source), "\r\n"), "\n")
	level := 2
	if strings.HasPrefix(strings.TrimSpace(lines[len(lines)-1]), "=") {
		level = 1
	}
	parts := make([]string, 0, len(lines)-1)
	for _, l := range lines[:len(lines)-1] {
		parts = append(parts, strings.TrimSpace(l))
	}
	return Heading{Level: level, Line: int(n.StartPoint().Row) + 1, Title: strings.Join(parts, " ")}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimRight(s, "\r")
}
