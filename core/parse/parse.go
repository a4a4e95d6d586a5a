// Package parse turns raw input lines into shell tokens and commands.
package parse

import (
	"errors"
	"strings"
	"unicode"
)

// ErrUnclosedQuote is returned when input ends inside a quoted region.
var ErrUnclosedQuote = errors.New("unclosed quote")

// RedirectMode selects how a redirect target file is opened.
type RedirectMode int

const (
	Truncate RedirectMode = iota
	Append
)

// TokenType tags a Token as an ordinary word or a redirection operator.
type TokenType int

const (
	TokenWord TokenType = iota
	TokenRedirect
)

// Token is one element of a tokenized input line. Words carry their text;
// redirection operators carry a mode and the file descriptor they target.
type Token struct {
	Type TokenType
	Text string
	Mode RedirectMode
	FD   int
}

// String renders the token back in shell syntax.
func (t Token) String() string {
	if t.Type == TokenWord {
		return t.Text
	}
	var sb strings.Builder
	if t.FD == 2 {
		sb.WriteByte('2')
	}
	sb.WriteByte('>')
	if t.Mode == Append {
		sb.WriteByte('>')
	}
	return sb.String()
}

// Lexer states. Escaped is transient: it consumes exactly one character
// and drops back to normal.
type lexState int

const (
	stateNormal lexState = iota
	stateSingleQuote
	stateDoubleQuote
	stateEscaped
)

// Tokenize splits line into words and redirection operators.
//
// Outside quotes a backslash makes the next character literal, single
// quotes preserve everything verbatim, and inside double quotes a
// backslash escapes only \, ", $, backtick and newline. A `>` or `>>`
// in normal state becomes a redirect token; a word buffer holding just
// "1" or "2" immediately before it is consumed as the fd prefix.
//
// A command literally named "2" followed by `>` with no space is
// indistinguishable from an fd-2 redirect prefix and reads as one.
func Tokenize(line string) ([]Token, error) {
	var tokens []Token
	var buf strings.Builder

	flush := func() {
		if buf.Len() > 0 {
			tokens = append(tokens, Token{Type: TokenWord, Text: buf.String()})
			buf.Reset()
		}
	}

	state := stateNormal
	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch state {
		case stateEscaped:
			buf.WriteRune(r)
			state = stateNormal

		case stateNormal:
			switch {
			case r == '\\':
				state = stateEscaped
			case r == '\'':
				state = stateSingleQuote
			case r == '"':
				state = stateDoubleQuote
			case r == '>':
				fd := 1
				switch w := buf.String(); {
				case w == "1":
					buf.Reset()
				case w == "2":
					fd = 2
					buf.Reset()
				default:
					// Longer digit runs are ordinary words, not fds.
					flush()
				}
				mode := Truncate
				if i+1 < len(runes) && runes[i+1] == '>' {
					mode = Append
					i++
				}
				tokens = append(tokens, Token{Type: TokenRedirect, Mode: mode, FD: fd})
			case unicode.IsSpace(r):
				flush()
			default:
				buf.WriteRune(r)
			}

		case stateSingleQuote:
			if r == '\'' {
				state = stateNormal
			} else {
				buf.WriteRune(r)
			}

		case stateDoubleQuote:
			switch r {
			case '"':
				state = stateNormal
			case '\\':
				if i+1 < len(runes) {
					switch next := runes[i+1]; next {
					case '\\', '"', '$', '`', '\n':
						buf.WriteRune(next)
						i++
					default:
						buf.WriteRune('\\')
					}
				} else {
					buf.WriteRune('\\')
				}
			default:
				buf.WriteRune(r)
			}
		}
	}

	switch state {
	case stateSingleQuote, stateDoubleQuote:
		return nil, ErrUnclosedQuote
	case stateEscaped:
		// A trailing lone backslash is a literal backslash.
		buf.WriteRune('\\')
	}
	flush()

	return tokens, nil
}
