// Package shell implements the interactive read-eval loop, the builtin
// command table, and command dispatch.
package shell

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/abiosoft/readline"
	"github.com/spf13/afero"

	"github.com/coalfish/gosh/core/complete"
	"github.com/coalfish/gosh/core/config"
	"github.com/coalfish/gosh/core/parse"
)

// Shell is one interactive session. The zero value is not usable, use New.
type Shell struct {
	Config   *config.Configuration
	Readline *readline.Instance

	fs    afero.Fs
	index *complete.ExecIndex

	stdin io.Reader

	// Active output destinations; swapped for the duration of a
	// redirected command and always restored afterward.
	stdout io.Writer
	stderr io.Writer

	// The session's original streams. Parse errors and redirect-open
	// failures report here even when a redirect was requested.
	baseStdout io.Writer
	baseStderr io.Writer

	history []string
	quit    bool
}

// New builds a shell session over the given filesystem. The executable
// snapshot used by completion is taken here, once; it is never refreshed.
func New(configuration *config.Configuration, fsys afero.Fs) *Shell {
	s := &Shell{
		Config: configuration,
		fs:     fsys,
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
	s.baseStdout = s.stdout
	s.baseStderr = s.stderr
	s.index = complete.NewExecIndex(fsys, s.searchPath())
	return s
}

// Stdout returns the currently active standard output destination.
func (s *Shell) Stdout() io.Writer {
	return s.stdout
}

// Stderr returns the currently active standard error destination.
func (s *Shell) Stderr() io.Writer {
	return s.stderr
}

// historyFile expands the configured history path's leading ~.
func (s *Shell) historyFile() string {
	path := s.Config.HistoryFile
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		path = home + strings.TrimPrefix(path, "~")
	}
	return path
}

// Run reads and interprets lines until end of input or exit.
func (s *Shell) Run() error {
	engine := complete.NewEngine(s.fs, s.index, Names())
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          s.Config.Prompt,
		HistoryFile:     s.historyFile(),
		HistoryLimit:    s.Config.HistoryLimit,
		AutoComplete:    complete.NewCompleter(engine),
		InterruptPrompt: "^C",
	})
	if err != nil {
		return err
	}
	defer rl.Close()
	s.Readline = rl

	for {
		rl.SetPrompt(s.Config.Prompt)
		line, err := rl.Readline()
		switch {
		case err == io.EOF:
			return nil // input closed, same as exit
		case err == readline.ErrInterrupt:
			continue
		case err != nil:
			return err
		}

		s.Interpret(line)
		if s.quit {
			return nil
		}
	}
}

// Interpret runs a single input line to completion. Errors are reported
// and the session continues; only exit or end of input stop it.
func (s *Shell) Interpret(line string) {
	if strings.TrimSpace(line) == "" {
		return
	}
	s.history = append(s.history, line)

	cmd, err := parse.Parse(line)
	if err != nil {
		fmt.Fprintf(s.baseStderr, "gosh: %v\n", err)
		return
	}

	s.dispatch(cmd)
}
