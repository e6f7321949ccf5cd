package commands

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/bethropolis/tidemark/internal/types"
)

// heading sets, cycles or clears the ATX heading prefix of the cursor line.
// Level 0 cycles 1..6 and then off; asking for the current level clears it.
func heading(t Target, opts Options) error {
	if opts.Level < 0 || opts.Level > 6 {
		return fmt.Errorf("heading level %d out of range 1-6", opts.Level)
	}
	pos := t.GetCursorPosition()
	line := t.GetLine(pos.Line + 1)
	level, prefix := headingPrefix(line)

	target := opts.Level
	switch {
	case target == 0:
		target = (level + 1) % 7
	case target == level:
		target = 0
	}

	newPrefix := ""
	if target > 0 {
		newPrefix = strings.Repeat("#", target) + " "
	}
	if newPrefix == prefix {
		return nil
	}
	return t.ReplaceRange(newPrefix,
		types.Position{Line: pos.Line},
		types.Position{Line: pos.Line, Col: utf8.RuneCountInString(prefix)},
		originFor(newPrefix))
}

// headingPrefix returns the level and the marker text ("## ") of an ATX heading line.
func headingPrefix(line string) (int, string) {
	n := 0
	for n < len(line) && line[n] == '#' {
		n++
	}
	if n == 0 || n > 6 {
		return 0, ""
	}
	if n == len(line) {
		return n, line
	}
	if line[n] == ' ' || line[n] == '\t' {
		return n, line[:n+1]
	}
	return 0, ""
}

// wrapInline toggles marker around every selection. Markers already inside
// or directly around a selection are removed instead. An empty selection
// gets an empty pair with the cursor in between.
func wrapInline(marker string) Func {
	return func(t Target, _ Options) error {
		m := utf8.RuneCountInString(marker)
		sels := bottomUp(t.ListSelections())
		single := len(sels) == 1

		for _, s := range sels {
			from, to := s.Ordered()
			text := textBetween(t, from, to)

			if len(text) >= 2*len(marker) && strings.HasPrefix(text, marker) && strings.HasSuffix(text, marker) {
				inner := text[len(marker) : len(text)-len(marker)]
				if err := t.ReplaceRange(inner, from, to, originFor(inner)); err != nil {
					return err
				}
				if single {
					selectRange(t, from, endOf(from, inner))
				}
				continue
			}

			if from.Line == to.Line {
				line := []rune(t.GetLine(from.Line + 1))
				if from.Col >= m && to.Col+m <= len(line) &&
					string(line[from.Col-m:from.Col]) == marker && string(line[to.Col:to.Col+m]) == marker {
					outerFrom := types.Position{Line: from.Line, Col: from.Col - m}
					outerTo := types.Position{Line: to.Line, Col: to.Col + m}
					if err := t.ReplaceRange(text, outerFrom, outerTo, originFor(text)); err != nil {
						return err
					}
					if single {
						selectRange(t, outerFrom, endOf(outerFrom, text))
					}
					continue
				}
			}

			if err := t.ReplaceRange(marker+text+marker, from, to, types.OriginInput); err != nil {
				return err
			}
			if single {
				innerFrom := types.Position{Line: from.Line, Col: from.Col + m}
				selectRange(t, innerFrom, endOf(innerFrom, text))
			}
		}
		return nil
	}
}

// codeBlock fences the lines of the primary selection, or removes the fence
// when the selection already spans a fenced block.
func codeBlock(t Target, opts Options) error {
	from, to := primary(t).Ordered()
	lines := wholeLines(t, from.Line, to.Line)
	start := types.Position{Line: from.Line}
	end := types.Position{Line: to.Line, Col: utf8.RuneCountInString(lines[len(lines)-1])}

	const fence = "```"
	if len(lines) >= 2 && strings.HasPrefix(lines[0], fence) && strings.TrimSpace(lines[len(lines)-1]) == fence {
		inner := strings.Join(lines[1:len(lines)-1], "\n")
		if err := t.ReplaceRange(inner, start, end, originFor(inner)); err != nil {
			return err
		}
		selectRange(t, start, endOf(start, inner))
		return nil
	}

	body := strings.Join(lines, "\n")
	text := fence + opts.Language + "\n" + body + "\n" + fence
	if err := t.ReplaceRange(text, start, end, types.OriginInput); err != nil {
		return err
	}
	bodyEnd := endOf(types.Position{Line: from.Line + 1}, body)
	selectRange(t, bodyEnd, bodyEnd)
	return nil
}

// blockquote toggles the "> " prefix on every line of the primary selection.
func blockquote(t Target, _ Options) error {
	from, to := primary(t).Ordered()
	lines := wholeLines(t, from.Line, to.Line)

	quoted := true
	for _, l := range lines {
		if !strings.HasPrefix(l, ">") {
			quoted = false
			break
		}
	}

	out := make([]string, len(lines))
	for i, l := range lines {
		if quoted {
			out[i] = strings.TrimPrefix(strings.TrimPrefix(l, ">"), " ")
		} else {
			out[i] = "> " + l
		}
	}

	text := strings.Join(out, "\n")
	return t.ReplaceRange(text,
		types.Position{Line: from.Line},
		types.Position{Line: to.Line, Col: utf8.RuneCountInString(lines[len(lines)-1])},
		originFor(text))
}

// link replaces the primary selection with a markdown link or image and
// selects the URL. The URL comes from the options, then from the clipboard
// when it holds one, then a placeholder.
func (r *Registry) link(image bool) Func {
	return func(t Target, opts Options) error {
		from, to := primary(t).Ordered()

		label := textBetween(t, from, to)
		if label == "" {
			label = opts.Text
		}
		if label == "" {
			label = "link text"
			if image {
				label = "alt text"
			}
		}

		target := opts.URL
		if target == "" {
			if clip, err := r.clipboard.Read(); err == nil && looksLikeURL(clip) {
				target = strings.TrimSpace(clip)
			}
		}
		if target == "" {
			target = "https://"
		}

		opening := "["
		if image {
			opening = "!["
		}
		head := opening + label + "]("
		if err := t.ReplaceRange(head+target+")", from, to, types.OriginInput); err != nil {
			return err
		}
		urlStart := endOf(from, head)
		selectRange(t, urlStart, endOf(urlStart, target))
		return nil
	}
}

// table inserts an empty pipe table below the cursor line.
func table(t Target, opts Options) error {
	rows, cols := opts.Rows, opts.Cols
	if rows <= 0 {
		rows = 2
	}
	if cols <= 0 {
		cols = 2
	}

	headers := make([]string, cols)
	rules := make([]string, cols)
	blanks := make([]string, cols)
	for i := range headers {
		headers[i] = fmt.Sprintf("Column %d", i+1)
		rules[i] = strings.Repeat("-", len(headers[i]))
		blanks[i] = strings.Repeat(" ", len(headers[i]))
	}

	row := func(cells []string) string {
		return "| " + strings.Join(cells, " | ") + " |"
	}
	out := []string{row(headers), row(rules)}
	for i := 0; i < rows; i++ {
		out = append(out, row(blanks))
	}
	return insertBlock(t, strings.Join(out, "\n"))
}

func thematicBreak(t Target, _ Options) error {
	return insertBlock(t, "---")
}

// insertBlock puts block on the cursor line when it is blank, otherwise
// after it with a blank line in between. The cursor ends after the block.
func insertBlock(t Target, block string) error {
	pos := t.GetCursorPosition()
	line := t.GetLine(pos.Line + 1)
	lineEnd := types.Position{Line: pos.Line, Col: utf8.RuneCountInString(line)}

	start, text := types.Position{Line: pos.Line}, block
	if strings.TrimSpace(line) != "" {
		start, text = lineEnd, "\n\n"+block
	}
	if err := t.ReplaceRange(text, start, lineEnd, types.OriginInput); err != nil {
		return err
	}
	end := endOf(start, text)
	selectRange(t, end, end)
	return nil
}

func looksLikeURL(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" || strings.ContainsAny(s, " \n") {
		return false
	}
	u, err := url.Parse(s)
	return err == nil && u.Scheme != "" && (u.Host != "" || u.Scheme == "mailto")
}

// originFor tags a command edit: pure removals are deletes, anything that
// types text is input.
func originFor(text string) types.Origin {
	if text == "" {
		return types.OriginDelete
	}
	return types.OriginInput
}

func primary(t Target) types.Selection {
	sels := t.ListSelections()
	if len(sels) == 0 {
		pos := t.GetCursorPosition()
		return types.Selection{Anchor: pos, Head: pos}
	}
	return sels[0]
}

// bottomUp orders selections last-first so earlier edits do not shift later ones.
func bottomUp(sels []types.Selection) []types.Selection {
	sels = append([]types.Selection(nil), sels...)
	sort.Slice(sels, func(i, j int) bool {
		a, _ := sels[i].Ordered()
		b, _ := sels[j].Ordered()
		return b.Before(a)
	})
	return sels
}

func selectRange(t Target, anchor, head types.Position) {
	if s, ok := t.(selector); ok {
		s.SetSelection(anchor, head)
	}
}

func selectedText(t Target) string {
	from, to := primary(t).Ordered()
	return textBetween(t, from, to)
}

// textBetween rebuilds the text between two positions from whole lines.
func textBetween(t Target, from, to types.Position) string {
	if from == to {
		return ""
	}
	if from.Line == to.Line {
		return sliceRunes(t.GetLine(from.Line+1), from.Col, to.Col)
	}
	lines := wholeLines(t, from.Line, to.Line)
	lines[0] = sliceRunes(lines[0], from.Col, -1)
	last := len(lines) - 1
	lines[last] = sliceRunes(lines[last], 0, to.Col)
	return strings.Join(lines, "\n")
}

// wholeLines returns lines first..last (0-based, inclusive).
func wholeLines(t Target, first, last int) []string {
	lines := make([]string, 0, last-first+1)
	for i := first; i <= last; i++ {
		lines = append(lines, t.GetLine(i+1))
	}
	return lines
}

// sliceRunes returns runes [from, to) of s; to < 0 means the end.
func sliceRunes(s string, from, to int) string {
	runes := []rune(s)
	if to < 0 || to > len(runes) {
		to = len(runes)
	}
	if from > to {
		from = to
	}
	return string(runes[from:to])
}

// endOf is the position just after text inserted at start.
func endOf(start types.Position, text string) types.Position {
	idx := strings.LastIndexByte(text, '\n')
	if idx < 0 {
		return types.Position{Line: start.Line, Col: start.Col + utf8.RuneCountInString(text)}
	}
	return types.Position{
		Line: start.Line + strings.Count(text, "\n"),
		Col:  utf8.RuneCountInString(text[idx+1:]),
	}
}
