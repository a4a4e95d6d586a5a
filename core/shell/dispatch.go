package shell

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"

	"github.com/spf13/afero"

	"github.com/coalfish/gosh/core/parse"
)

func (s *Shell) dispatch(cmd *parse.Command) {
	if len(cmd.Argv) == 0 {
		return
	}

	// exit ends the session regardless of arguments or redirects; it is
	// intercepted before the table lookup so no target file is opened.
	if cmd.Argv[0] == "exit" {
		Exit(s, cmd.Argv)
		return
	}

	if builtin, ok := AllBuiltins[cmd.Argv[0]]; ok {
		s.runBuiltin(builtin, cmd)
		return
	}

	s.runExternal(cmd)
}

// applyRedirects opens the command's redirect targets and swaps them in
// as the active destinations. The returned restore closes the files and
// reinstates the previous destinations; callers must invoke it on every
// exit path.
func (s *Shell) applyRedirects(cmd *parse.Command) (restore func(), err error) {
	savedOut, savedErr := s.stdout, s.stderr
	var opened []io.Closer
	restore = func() {
		for _, f := range opened {
			f.Close()
		}
		s.stdout, s.stderr = savedOut, savedErr
	}

	open := func(target *parse.RedirectTarget) (afero.File, error) {
		flag := os.O_CREATE | os.O_WRONLY
		if target.Mode == parse.Append {
			flag |= os.O_APPEND
		} else {
			flag |= os.O_TRUNC
		}
		f, err := s.fs.OpenFile(target.Path, flag, 0644)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", target.Path, err)
		}
		return f, nil
	}

	if cmd.Stdout != nil {
		f, err := open(cmd.Stdout)
		if err != nil {
			restore()
			return nil, err
		}
		opened = append(opened, f)
		s.stdout = f
	}
	if cmd.Stderr != nil {
		f, err := open(cmd.Stderr)
		if err != nil {
			restore()
			return nil, err
		}
		opened = append(opened, f)
		s.stderr = f
	}

	return restore, nil
}

func (s *Shell) runBuiltin(builtin Builtin, cmd *parse.Command) {
	restore, err := s.applyRedirects(cmd)
	if err != nil {
		// The requested destination is itself unusable, report on the
		// original stream.
		fmt.Fprintf(s.baseStderr, "gosh: %v\n", err)
		return
	}
	defer restore()

	builtin.Main(s, cmd.Argv)
}

func (s *Shell) runExternal(cmd *parse.Command) {
	restore, err := s.applyRedirects(cmd)
	if err != nil {
		fmt.Fprintf(s.baseStderr, "gosh: %v\n", err)
		return
	}
	defer restore()

	name := cmd.Argv[0]

	// Resolution is fresh per invocation, unlike the completion snapshot.
	path, err := s.lookPath(name)
	switch {
	case errors.Is(err, fs.ErrPermission):
		fmt.Fprintf(s.stderr, "%s: permission denied\n", name)
		return
	case err != nil:
		fmt.Fprintf(s.stderr, "%s: command not found\n", name)
		return
	}

	proc := &exec.Cmd{
		Path:   path,
		Args:   cmd.Argv, // argv[0] stays the name the user typed
		Stdin:  s.stdin,
		Stdout: s.stdout,
		Stderr: s.stderr,
	}

	err = proc.Run()
	var exitErr *exec.ExitError
	switch {
	case err == nil, errors.As(err, &exitErr):
		// Exit status is observed but not retained.
	case errors.Is(err, fs.ErrPermission):
		fmt.Fprintf(s.stderr, "%s: permission denied\n", name)
	default:
		fmt.Fprintf(s.stderr, "%s: failed to execute (%v)\n", name, err)
	}
}
