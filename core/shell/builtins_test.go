package shell

import (
	"os"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/sebdah/goldie/v2"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	// Keep builtin output byte-stable for the golden files.
	color.NoColor = true
}

func golden(t *testing.T) *goldie.Goldie {
	t.Helper()
	return goldie.New(t, goldie.WithFixtureDir("testdata/golden"))
}

func TestHelpGolden(t *testing.T) {
	s, out, _ := newTestShell(t, afero.NewMemMapFs())

	s.Interpret("help")

	golden(t).Assert(t, "help", out.Bytes())
}

func TestEchoGolden(t *testing.T) {
	s, out, _ := newTestShell(t, afero.NewMemMapFs())

	s.Interpret("echo Hello World")
	s.Interpret(`echo  "a  b"  c`)
	s.Interpret(`echo a\ b`)
	s.Interpret("echo -n no newline")

	golden(t).Assert(t, "echo", out.Bytes())
}

func TestTypeGolden(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/bin/tool", []byte("x"), 0755))
	s, out, _ := newTestShell(t, fsys)

	s.Interpret("type echo tool nosuchzz")

	golden(t).Assert(t, "type", out.Bytes())
}

func TestTypeMissingOperand(t *testing.T) {
	s, out, errOut := newTestShell(t, afero.NewMemMapFs())

	s.Interpret("type")

	assert.Empty(t, out.String())
	assert.Equal(t, "type: missing operand\n", errOut.String())
}

func TestBuiltinNames(t *testing.T) {
	assert.Equal(t,
		[]string{"cd", "echo", "exit", "help", "history", "ls", "pwd", "type"},
		Names())
}

func TestCdAndPwd(t *testing.T) {
	orig, err := os.Getwd()
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.Chdir(orig) })

	dir := t.TempDir()
	s, out, errOut := newTestShell(t, afero.NewOsFs())

	s.Interpret("cd " + dir)
	require.Empty(t, errOut.String())

	wd, err := os.Getwd()
	require.NoError(t, err)

	s.Interpret("pwd")
	assert.Equal(t, wd+"\n", out.String())
}

func TestCdErrors(t *testing.T) {
	s, _, errOut := newTestShell(t, afero.NewOsFs())

	s.Interpret("cd /definitely/not/a/dir")
	assert.Contains(t, errOut.String(), "cd: ")

	errOut.Reset()
	s.Interpret("cd a b c")
	assert.Equal(t, "cd: too many arguments\n", errOut.String())
}

func TestLs(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, fsys.MkdirAll("/work/sub", 0755))
	require.NoError(t, afero.WriteFile(fsys, "/work/plain.txt", []byte("x"), 0644))
	require.NoError(t, afero.WriteFile(fsys, "/work/run.sh", []byte("x"), 0755))
	require.NoError(t, afero.WriteFile(fsys, "/work/.hidden", []byte("x"), 0644))

	s, out, _ := newTestShell(t, fsys)

	s.Interpret("ls /work")
	assert.Equal(t, "plain.txt\nrun.sh\nsub/\n", out.String())

	out.Reset()
	s.Interpret("ls -a /work")
	assert.Equal(t, ".hidden\nplain.txt\nrun.sh\nsub/\n", out.String())
}

func TestLsMissingDir(t *testing.T) {
	s, _, errOut := newTestShell(t, afero.NewMemMapFs())

	s.Interpret("ls /nope")
	assert.Contains(t, errOut.String(), "ls: ")
}

func TestHistory(t *testing.T) {
	s, out, _ := newTestShell(t, afero.NewMemMapFs())

	s.Interpret("echo one")
	s.Interpret("history")

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Len(t, lines, 3) // echo output plus two history entries
	assert.Equal(t, "one", lines[0])
	assert.Contains(t, lines[1], "1  echo one")
	assert.Contains(t, lines[2], "2  history")
}

func TestHistoryClear(t *testing.T) {
	s, out, _ := newTestShell(t, afero.NewMemMapFs())

	s.Interpret("echo one")
	s.Interpret("history -c")
	out.Reset()

	s.Interpret("history")
	assert.Contains(t, out.String(), "1  history")
	assert.NotContains(t, out.String(), "echo one")
}

func TestExitBuiltinSetsQuit(t *testing.T) {
	s, out, _ := newTestShell(t, afero.NewMemMapFs())

	status := AllBuiltins["exit"].Main(s, []string{"exit"})

	assert.Zero(t, status)
	assert.True(t, s.quit)
	assert.Empty(t, out.String())
}

func TestExitSkipsRedirects(t *testing.T) {
	fsys := afero.NewMemMapFs()
	s, _, _ := newTestShell(t, fsys)

	s.Interpret("exit > out.txt")

	assert.True(t, s.quit)
	_, err := fsys.Stat("out.txt")
	assert.True(t, os.IsNotExist(err))
}

func TestHistoryGrowsPerLine(t *testing.T) {
	s, _, _ := newTestShell(t, afero.NewMemMapFs())

	s.Interpret("echo one")
	s.Interpret("nosuchcmd")
	assert.Equal(t, []string{"echo one", "nosuchcmd"}, s.history)
}
