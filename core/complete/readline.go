package complete

import (
	"strings"
	"unicode"

	"github.com/coalfish/gosh/core/parse"
)

// Word boundaries for completion. Redirect operators delimit words so
// `echo hi >fi<TAB>` completes the target path.
func isDelimiter(r rune) bool {
	return r == '>' || r == '<' || unicode.IsSpace(r)
}

// Completer adapts the engine to the line editor's AutoCompleter
// interface: Do receives the whole line buffer plus the cursor position
// and returns replacement candidates for the current word.
type Completer struct {
	engine *Engine
}

// NewCompleter wraps an engine for use as a readline AutoCompleter.
func NewCompleter(engine *Engine) *Completer {
	return &Completer{engine: engine}
}

// contextAt finds the word under the cursor by replaying the quoting
// rules, so delimiters inside quotes or behind a backslash don't split.
// It returns the completion context plus the raw (still quoted/escaped)
// word text.
func contextAt(line []rune, pos int) (Context, string) {
	if pos > len(line) {
		pos = len(line)
	}

	wordStart := 0
	type scanState int
	const (
		normal scanState = iota
		single
		double
		escaped
	)
	state := normal
	for i := 0; i < pos; i++ {
		r := line[i]
		switch state {
		case escaped:
			state = normal
		case normal:
			switch {
			case r == '\\':
				state = escaped
			case r == '\'':
				state = single
			case r == '"':
				state = double
			case isDelimiter(r):
				wordStart = i + 1
			}
		case single:
			if r == '\'' {
				state = normal
			}
		case double:
			switch r {
			case '"':
				state = normal
			case '\\':
				i++
			}
		}
	}

	raw := string(line[wordStart:pos])
	ctx := Context{
		FullLine:          string(line),
		CursorOffset:      pos,
		Prefix:            parse.Literal(raw),
		IsCommandPosition: strings.TrimSpace(string(line[:wordStart])) == "",
	}
	return ctx, raw
}

// Do implements readline.AutoCompleter. The editor appends the returned
// text at the cursor, so each candidate is handed back as the suffix
// remaining after the typed word; length reports how many runes of that
// word precede the cursor.
func (c *Completer) Do(line []rune, pos int) ([][]rune, int) {
	ctx, raw := contextAt(line, pos)

	candidates := c.engine.Complete(ctx)

	// Candidates render without the word's opening quote; match past it.
	typed := raw
	if strings.HasPrefix(typed, `'`) || strings.HasPrefix(typed, `"`) {
		typed = typed[1:]
	}

	var out [][]rune
	for _, cand := range candidates {
		if strings.HasPrefix(cand, typed) {
			out = append(out, []rune(cand[len(typed):]))
		}
	}
	if len(out) == 0 {
		return nil, 0
	}
	return out, len([]rune(raw))
}
