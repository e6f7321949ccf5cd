// Package wordcount adds a command that reports word, line and character
// counts for the selection or the whole document.
package wordcount

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/bethropolis/tidemark/internal/commands"
	"github.com/bethropolis/tidemark/internal/plugin"
)

// CommandName is the command the plugin registers.
const CommandName = "wordCount"

var _ plugin.Plugin = (*WordCount)(nil)

// Stats are the counts the command reports.
type Stats struct {
	Lines int
	Words int
	Chars int // runes, line breaks included
}

// WordCount is the plugin.
type WordCount struct {
	api plugin.API
}

// New creates the plugin.
func New() *WordCount {
	return &WordCount{}
}

// Name implements plugin.Plugin.
func (p *WordCount) Name() string {
	return "wordcount"
}

// Initialize registers the command.
func (p *WordCount) Initialize(api plugin.API) error {
	p.api = api
	if err := api.RegisterCommand(CommandName, p.execute); err != nil {
		return fmt.Errorf("failed to register '%s' command: %w", CommandName, err)
	}
	return nil
}

// Shutdown implements plugin.Plugin.
func (p *WordCount) Shutdown() error {
	return nil
}

func (p *WordCount) execute(t commands.Target, _ commands.Options) error {
	text, scope := documentText(t), "Document"
	if sel := t.ListSelections()[0]; !sel.Empty() {
		from, to := sel.Ordered()
		text, scope = rangeText(t, from.Line, from.Col, to.Line, to.Col), "Selection"
	}
	s := Count(text)
	p.api.SetStatusMessage("%s: %d words, %d lines, %d chars", scope, s.Words, s.Lines, s.Chars)
	return nil
}

// Count computes the stats of text. Empty text has zero lines.
func Count(text string) Stats {
	if text == "" {
		return Stats{}
	}
	return Stats{
		Lines: strings.Count(text, "\n") + 1,
		Words: len(strings.Fields(text)),
		Chars: utf8.RuneCountInString(text),
	}
}

func documentText(t commands.Target) string {
	lines := make([]string, t.LineCount())
	for i := range lines {
		lines[i] = t.GetLine(i + 1)
	}
	return strings.Join(lines, "\n")
}

// rangeText extracts [from, to) given as 0-based lines and rune columns.
func rangeText(t commands.Target, fromLine, fromCol, toLine, toCol int) string {
	var sb strings.Builder
	for line := fromLine; line <= toLine; line++ {
		runes := []rune(t.GetLine(line + 1))
		start, end := 0, len(runes)
		if line == fromLine {
			start = min(fromCol, end)
		}
		if line == toLine {
			end = min(toCol, end)
		}
		if line > fromLine {
			sb.WriteByte('\n')
		}
		if start < end {
			sb.WriteString(string(runes[start:end]))
		}
	}
	return sb.String()
}
