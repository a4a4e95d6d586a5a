package parse

import "errors"

// ErrDanglingRedirect is returned when a redirection operator is the last
// token on the line.
var ErrDanglingRedirect = errors.New("unexpected end of redirection")

// RedirectTarget is a resolved redirection: one path plus its open mode.
type RedirectTarget struct {
	Path string
	Mode RedirectMode
}

// Command is a fully resolved input line. Argv holds only ordinary words,
// in their original relative order; redirect syntax has been stripped into
// the per-stream targets.
type Command struct {
	Argv   []string
	Stdout *RedirectTarget
	Stderr *RedirectTarget
}

// Resolve strips redirection operator/target pairs out of the token
// stream. Each operator consumes the very next token verbatim as its
// target path; if two operators name the same stream the last one wins.
func Resolve(tokens []Token) (*Command, error) {
	cmd := &Command{}
	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		if tok.Type == TokenWord {
			cmd.Argv = append(cmd.Argv, tok.Text)
			continue
		}

		if i+1 >= len(tokens) {
			return nil, ErrDanglingRedirect
		}
		i++
		target := &RedirectTarget{Path: tokens[i].String(), Mode: tok.Mode}
		if tok.FD == 2 {
			cmd.Stderr = target
		} else {
			cmd.Stdout = target
		}
	}
	return cmd, nil
}

// Parse tokenizes and resolves a raw input line.
func Parse(line string) (*Command, error) {
	tokens, err := Tokenize(line)
	if err != nil {
		return nil, err
	}
	return Resolve(tokens)
}
