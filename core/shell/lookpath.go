package shell

import (
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// ErrNotFound is the error resulting if a path search failed to find an
// executable file.
var ErrNotFound = exec.ErrNotFound

func findExecutable(fsys afero.Fs, file string) error {
	d, err := fsys.Stat(file)
	if err != nil {
		return err
	}
	if m := d.Mode(); !m.IsDir() && m&0111 != 0 {
		return nil
	}
	return fs.ErrPermission
}

// searchPath returns the lookup directories in order. The config override
// wins when set, otherwise PATH is read fresh on every call.
func (s *Shell) searchPath() []string {
	path := s.Config.Path
	if path == "" {
		path = os.Getenv("PATH")
	}
	return filepath.SplitList(path)
}

// lookPath searches for an executable named file in the search path
// directories. If file contains a slash, it is tried directly and the
// search path is not consulted. The result may be an absolute path or a
// path relative to the current directory.
func (s *Shell) lookPath(file string) (string, error) {
	if strings.Contains(file, "/") {
		if err := findExecutable(s.fs, file); err != nil {
			return "", err
		}
		return file, nil
	}
	for _, dir := range s.searchPath() {
		if dir == "" {
			// Unix shell semantics: path element "" means "."
			dir = "."
		}
		candidate := filepath.Join(dir, file)
		if err := findExecutable(s.fs, candidate); err == nil {
			return candidate, nil
		}
	}
	return "", ErrNotFound
}
