package shell

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/pborman/getopt/v2"
	"github.com/spf13/afero"
)

// AllBuiltins holds every registered shell builtin keyed by name.
var AllBuiltins = make(map[string]Builtin)

// Builtin is a command implemented inside the shell process. Main gets
// the full argument vector, name included, and writes to the shell's
// currently active output destinations.
type Builtin interface {
	Main(s *Shell, args []string) int
}

// BuiltinFunc adapts a plain function to the Builtin interface.
type BuiltinFunc func(s *Shell, args []string) int

func (f BuiltinFunc) Main(s *Shell, args []string) int {
	return f(s, args)
}

var _ Builtin = (BuiltinFunc)(nil)

// Names returns the builtin names in sorted order.
func Names() []string {
	var names []string
	for name := range AllBuiltins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Echo writes its arguments separated by single spaces.
func Echo(s *Shell, args []string) int {
	opts := getopt.New()
	noNewline := opts.Bool('n', "do not output the trailing newline")

	if err := opts.Getopt(args, nil); err != nil {
		fmt.Fprintln(s.Stderr(), err)
		return 1
	}

	fmt.Fprint(s.Stdout(), strings.Join(opts.Args(), " "))
	if !*noNewline {
		fmt.Fprintln(s.Stdout())
	}
	return 0
}

// Pwd prints the working directory.
func Pwd(s *Shell, args []string) int {
	wd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(s.Stderr(), "%s: %v\n", args[0], err)
		return 1
	}
	fmt.Fprintln(s.Stdout(), wd)
	return 0
}

// Cd changes the working directory; with no operand it goes home.
func Cd(s *Shell, args []string) int {
	switch len(args) {
	case 1:
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(s.Stderr(), "%s: %v\n", args[0], err)
			return 1
		}
		args = append(args, home)
		fallthrough
	case 2:
		if err := os.Chdir(args[1]); err != nil {
			fmt.Fprintf(s.Stderr(), "%s: %v\n", args[0], err)
			return 1
		}
	default:
		fmt.Fprintf(s.Stderr(), "%s: too many arguments\n", args[0])
		return 1
	}
	return 0
}

// Type reports how each operand would be resolved: builtin first, then a
// fresh search-path scan.
func Type(s *Shell, args []string) int {
	if len(args) < 2 {
		fmt.Fprintf(s.Stderr(), "%s: missing operand\n", args[0])
		return 1
	}

	status := 0
	for _, name := range args[1:] {
		if _, ok := AllBuiltins[name]; ok {
			fmt.Fprintf(s.Stdout(), "%s is a shell builtin\n", name)
			continue
		}
		if path, err := s.lookPath(name); err == nil {
			fmt.Fprintf(s.Stdout(), "%s is %s\n", name, path)
			continue
		}
		fmt.Fprintf(s.Stdout(), "%s: not found\n", name)
		status = 1
	}
	return status
}

// Help lists the builtin commands.
func Help(s *Shell, args []string) int {
	w := s.Stdout()
	fmt.Fprintln(w, "These shell commands are defined internally.  Type `help' to see this list.")
	fmt.Fprintln(w)
	for _, name := range Names() {
		fmt.Fprintln(w, name)
	}
	return 0
}

// History displays or clears the session history.
func History(s *Shell, args []string) int {
	opts := getopt.New()
	clear := opts.Bool('c', "clear the history by deleting all entries")
	helpOpt := opts.BoolLong("help", 'h', "show help and exit")

	if err := opts.Getopt(args, nil); err != nil || *helpOpt {
		w := s.Stderr()
		if err != nil {
			fmt.Fprintln(w, err)
		}
		fmt.Fprintln(w, "Display or manipulate the history list.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Options:")
		opts.PrintOptions(w)
		if err != nil {
			return 1
		}
		return 0
	}

	if *clear {
		if s.Readline != nil {
			s.Readline.Operation.ResetHistory()
		}
		s.history = nil
		return 0
	}

	for i, line := range s.history {
		fmt.Fprintf(s.Stdout(), "% 5d  %s\n", i+1, line)
	}
	return 0
}

// Ls lists directory entries, one per line, dotfiles excluded by default.
func Ls(s *Shell, args []string) int {
	opts := getopt.New()
	all := opts.Bool('a', "do not ignore entries starting with .")

	if err := opts.Getopt(args, nil); err != nil {
		fmt.Fprintln(s.Stderr(), err)
		return 1
	}

	dirs := opts.Args()
	if len(dirs) == 0 {
		dirs = []string{"."}
	}

	dirColor := color.New(color.FgBlue, color.Bold)
	execColor := color.New(color.FgGreen)
	if s.stdout != s.baseStdout {
		// No escape codes into redirect targets.
		dirColor.DisableColor()
		execColor.DisableColor()
	}

	status := 0
	for i, dir := range dirs {
		infos, err := afero.ReadDir(s.fs, dir)
		if err != nil {
			fmt.Fprintf(s.Stderr(), "%s: %v\n", args[0], err)
			status = 1
			continue
		}

		if len(dirs) > 1 {
			if i > 0 {
				fmt.Fprintln(s.Stdout())
			}
			fmt.Fprintf(s.Stdout(), "%s:\n", dir)
		}

		for _, fi := range infos {
			name := fi.Name()
			if !*all && strings.HasPrefix(name, ".") {
				continue
			}
			switch {
			case fi.IsDir():
				dirColor.Fprintln(s.Stdout(), name+"/")
			case fi.Mode()&0111 != 0:
				execColor.Fprintln(s.Stdout(), name)
			default:
				fmt.Fprintln(s.Stdout(), name)
			}
		}
	}
	return status
}

// Exit quits the shell. Arguments are ignored.
func Exit(s *Shell, args []string) int {
	s.quit = true
	return 0
}

func init() {
	AllBuiltins["echo"] = BuiltinFunc(Echo)
	AllBuiltins["pwd"] = BuiltinFunc(Pwd)
	AllBuiltins["cd"] = BuiltinFunc(Cd)
	AllBuiltins["type"] = BuiltinFunc(Type)
	AllBuiltins["help"] = BuiltinFunc(Help)
	AllBuiltins["history"] = BuiltinFunc(History)
	AllBuiltins["ls"] = BuiltinFunc(Ls)
	AllBuiltins["exit"] = BuiltinFunc(Exit)
}
