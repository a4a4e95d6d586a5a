package complete

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testBuiltins = []string{"cd", "echo", "exit", "help", "history", "ls", "pwd", "type"}

func testFs(t *testing.T) afero.Fs {
	t.Helper()
	fsys := afero.NewMemMapFs()

	mkExec := func(path string) {
		require.NoError(t, afero.WriteFile(fsys, path, []byte("#!/bin/sh\n"), 0755))
		require.NoError(t, fsys.Chmod(path, 0755))
	}
	mkExec("/usr/bin/git")
	mkExec("/usr/bin/grep")
	mkExec("/bin/cat")
	// Not executable, must not be indexed.
	require.NoError(t, afero.WriteFile(fsys, "/bin/README", []byte("docs"), 0644))

	require.NoError(t, fsys.MkdirAll("/home/user/docs", 0755))
	require.NoError(t, afero.WriteFile(fsys, "/home/user/data.txt", []byte("x"), 0644))
	require.NoError(t, afero.WriteFile(fsys, "/home/user/my file.txt", []byte("x"), 0644))

	return fsys
}

func testEngine(t *testing.T) *Engine {
	t.Helper()
	fsys := testFs(t)
	index := NewExecIndex(fsys, []string{"/usr/bin", "/bin"})
	engine := NewEngine(fsys, index, testBuiltins)
	engine.homeDir = func() (string, error) { return "/home/user", nil }
	return engine
}

func TestExecIndex(t *testing.T) {
	fsys := testFs(t)
	index := NewExecIndex(fsys, []string{"/usr/bin", "/bin", "/nonexistent"})

	assert.Equal(t, []string{"cat", "git", "grep"}, index.Names())
	assert.True(t, index.Contains("git"))
	assert.False(t, index.Contains("README"))
	assert.False(t, index.Contains("nope"))
}

func TestCompleteCommandUnique(t *testing.T) {
	engine := testEngine(t)

	got := engine.Complete(Context{
		FullLine:          "ec",
		CursorOffset:      2,
		Prefix:            "ec",
		IsCommandPosition: true,
	})
	// Unique match gets a trailing space.
	assert.Equal(t, []string{"echo "}, got)
}

func TestCompleteCommandAmbiguous(t *testing.T) {
	engine := testEngine(t)

	got := engine.Complete(Context{
		FullLine:          "g",
		CursorOffset:      1,
		Prefix:            "g",
		IsCommandPosition: true,
	})
	assert.Equal(t, []string{"git", "grep"}, got)
}

func TestCompleteCommandMergesBuiltinsAndIndex(t *testing.T) {
	engine := testEngine(t)

	got := engine.Complete(Context{
		FullLine:          "c",
		CursorOffset:      1,
		Prefix:            "c",
		IsCommandPosition: true,
	})
	assert.Equal(t, []string{"cat", "cd"}, got)
}

func TestCompleteArgumentIsPath(t *testing.T) {
	engine := testEngine(t)

	got := engine.Complete(Context{
		FullLine:          "cat /home/user/d",
		CursorOffset:      16,
		Prefix:            "/home/user/d",
		IsCommandPosition: false,
	})
	assert.Equal(t, []string{"/home/user/data.txt", "/home/user/docs/"}, got)
}

func TestCompletePathUniqueFile(t *testing.T) {
	engine := testEngine(t)

	got := engine.Complete(Context{
		FullLine:          "cat /home/user/da",
		CursorOffset:      17,
		Prefix:            "/home/user/da",
		IsCommandPosition: false,
	})
	assert.Equal(t, []string{"/home/user/data.txt "}, got)
}

func TestCompletePathUniqueDirNoSpace(t *testing.T) {
	engine := testEngine(t)

	got := engine.Complete(Context{
		FullLine:          "ls /home/user/do",
		CursorOffset:      16,
		Prefix:            "/home/user/do",
		IsCommandPosition: false,
	})
	assert.Equal(t, []string{"/home/user/docs/"}, got)
}

func TestCompleteTildeRendering(t *testing.T) {
	engine := testEngine(t)

	got := engine.Complete(Context{
		FullLine:          "cat ~/do",
		CursorOffset:      8,
		Prefix:            "~/do",
		IsCommandPosition: false,
	})
	assert.Equal(t, []string{"~/docs/"}, got)

	// ~ in command position delegates to path completion too.
	got = engine.Complete(Context{
		FullLine:          "~/do",
		CursorOffset:      4,
		Prefix:            "~/do",
		IsCommandPosition: true,
	})
	assert.Equal(t, []string{"~/docs/"}, got)
}

func TestCompleteEscapesSpaces(t *testing.T) {
	engine := testEngine(t)

	got := engine.Complete(Context{
		FullLine:          "cat /home/user/my",
		CursorOffset:      17,
		Prefix:            "/home/user/my",
		IsCommandPosition: false,
	})
	assert.Equal(t, []string{`/home/user/my\ file.txt `}, got)
}

func TestCompleteNoEscapeInsideOpenQuote(t *testing.T) {
	engine := testEngine(t)

	line := `cat "/home/user/my`
	got := engine.Complete(Context{
		FullLine:          line,
		CursorOffset:      len([]rune(line)),
		Prefix:            "/home/user/my",
		IsCommandPosition: false,
	})
	assert.Equal(t, []string{"/home/user/my file.txt "}, got)
}

func TestCompleteNoMatches(t *testing.T) {
	engine := testEngine(t)

	got := engine.Complete(Context{
		FullLine:          "cat /nope/xyz",
		CursorOffset:      13,
		Prefix:            "/nope/xyz",
		IsCommandPosition: false,
	})
	assert.Empty(t, got)
}
