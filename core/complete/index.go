// Package complete generates tab-completion candidates for command names
// and filesystem paths.
package complete

import (
	"sort"

	"github.com/spf13/afero"
)

// ExecIndex is a snapshot of the executable basenames reachable through
// the search path. It is built once at startup and only ever read; later
// changes to PATH or its directories are not reflected (command dispatch
// re-resolves fresh each time, completion does not).
type ExecIndex struct {
	names  map[string]bool
	sorted []string
}

// NewExecIndex scans each search path directory for executable files.
// Unreadable directories are skipped.
func NewExecIndex(fsys afero.Fs, searchPath []string) *ExecIndex {
	names := make(map[string]bool)
	for _, dir := range searchPath {
		if dir == "" {
			dir = "."
		}
		infos, err := afero.ReadDir(fsys, dir)
		if err != nil {
			continue
		}
		for _, fi := range infos {
			if fi.IsDir() || fi.Mode()&0111 == 0 {
				continue
			}
			names[fi.Name()] = true
		}
	}

	sorted := make([]string, 0, len(names))
	for name := range names {
		sorted = append(sorted, name)
	}
	sort.Strings(sorted)

	return &ExecIndex{names: names, sorted: sorted}
}

// Contains reports whether name was an executable basename at startup.
func (ix *ExecIndex) Contains(name string) bool {
	return ix.names[name]
}

// Names returns the snapshot's basenames in sorted order.
func (ix *ExecIndex) Names() []string {
	return ix.sorted
}
