package complete

import (
	"os"
	"sort"
	"strings"

	"github.com/spf13/afero"

	"github.com/coalfish/gosh/core/parse"
)

// Context describes one completion request.
type Context struct {
	// FullLine is the entire line buffer.
	FullLine string
	// CursorOffset is the rune offset of the cursor within FullLine.
	CursorOffset int
	// Prefix is the literal (unquoted, unescaped) text of the word being
	// completed.
	Prefix string
	// IsCommandPosition holds iff everything before the word is whitespace.
	IsCommandPosition bool
}

// Engine produces completion candidates from the builtin-name set, the
// startup executable snapshot, and live filesystem globbing.
type Engine struct {
	fs       afero.Fs
	index    *ExecIndex
	builtins []string

	// Injection points for tests.
	homeDir func() (string, error)
}

// NewEngine builds a completion engine over the given filesystem,
// executable snapshot, and builtin command names.
func NewEngine(fsys afero.Fs, index *ExecIndex, builtins []string) *Engine {
	return &Engine{
		fs:       fsys,
		index:    index,
		builtins: builtins,
		homeDir:  os.UserHomeDir,
	}
}

// Complete returns all candidates for the request, sorted. A unique
// candidate that does not end in a path separator carries a trailing
// space so the next word can be typed immediately.
func (e *Engine) Complete(ctx Context) []string {
	if ctx.IsCommandPosition && !hasPathPrefix(ctx.Prefix) {
		return e.completeCommand(ctx.Prefix)
	}
	return e.completePath(ctx)
}

// hasPathPrefix reports whether the word is being completed as a path
// even in command position (./prog, /usr/bin/prog, ~/bin/prog).
func hasPathPrefix(prefix string) bool {
	return strings.HasPrefix(prefix, "/") ||
		strings.HasPrefix(prefix, "./") ||
		strings.HasPrefix(prefix, "../") ||
		strings.HasPrefix(prefix, "~")
}

func (e *Engine) completeCommand(prefix string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, name := range e.builtins {
		if strings.HasPrefix(name, prefix) && !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}
	for _, name := range e.index.Names() {
		if strings.HasPrefix(name, prefix) && !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}
	sort.Strings(out)

	if len(out) == 1 && !strings.HasSuffix(out[0], "/") {
		out[0] += " "
	}
	return out
}

func (e *Engine) completePath(ctx Context) []string {
	prefix := ctx.Prefix

	// Expand a leading ~ for matching, remember how to undo it for
	// rendering.
	expanded := prefix
	var home string
	if strings.HasPrefix(prefix, "~") {
		h, err := e.homeDir()
		if err != nil || h == "" {
			return nil
		}
		home = strings.TrimSuffix(h, "/")
		expanded = home + strings.TrimPrefix(prefix, "~")
	}

	matches, err := afero.Glob(e.fs, escapeGlob(expanded)+"*")
	if err != nil || len(matches) == 0 {
		return nil
	}
	sort.Strings(matches)

	quoted := parse.ScanQuoteState(sliceRunes(ctx.FullLine, ctx.CursorOffset)) != parse.QuoteNone

	out := make([]string, 0, len(matches))
	for _, match := range matches {
		isDir := false
		if fi, err := e.fs.Stat(match); err == nil && fi.IsDir() {
			isDir = true
		}

		rendered := match
		if home != "" && strings.HasPrefix(match, home) {
			rendered = "~" + strings.TrimPrefix(match, home)
		}
		if isDir {
			rendered += "/"
		}
		if !quoted {
			rendered = strings.ReplaceAll(rendered, " ", `\ `)
		}
		out = append(out, rendered)
	}

	if len(out) == 1 && !strings.HasSuffix(out[0], "/") {
		out[0] += " "
	}
	return out
}

// escapeGlob neutralizes glob metacharacters in the literal prefix so
// only the appended wildcard globs.
func escapeGlob(s string) string {
	var sb strings.Builder
	for _, r := range s {
		switch r {
		case '*', '?', '[', '\\':
			sb.WriteRune('\\')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// sliceRunes returns the first n runes of s.
func sliceRunes(s string, n int) string {
	runes := []rune(s)
	if n > len(runes) {
		n = len(runes)
	}
	return string(runes[:n])
}
