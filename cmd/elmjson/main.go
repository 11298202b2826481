// Command elmjson resolves, installs, and inspects dependencies for
// Elm application and package manifests.
package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/elmtooling/elm-json-go/internal/applog"
	"github.com/elmtooling/elm-json-go/internal/clierr"
)

// command is one elmjson subcommand.
type command interface {
	Name() string
	Args() string
	ShortHelp() string
	LongHelp() string
	Register(*flag.FlagSet)
	Run(ctx *runContext, args []string) error
}

// runContext carries the ambient state every subcommand needs: a
// leveled logger, the offline flag, and the stream to write results
// to.
type runContext struct {
	log     *applog.Logger
	offline bool
	stdout  io.Writer
	stderr  io.Writer
}

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) (exitCode int) {
	commands := []command{
		&solveCommand{},
		&installCommand{},
		&uninstallCommand{},
		&upgradeCommand{},
		&newCommand{},
		&treeCommand{},
		&completionsCommand{},
	}

	errLogger := func(format string, a ...interface{}) { fmt.Fprintf(stderr, format, a...) }

	usage := func() {
		errLogger("elmjson is a dependency resolver and installer for Elm manifests\n\n")
		errLogger("Usage: elmjson <command>\n\nCommands:\n\n")
		w := tabwriter.NewWriter(stderr, 0, 4, 2, ' ', 0)
		for _, c := range commands {
			fmt.Fprintf(w, "\t%s\t%s\n", c.Name(), c.ShortHelp())
		}
		w.Flush()
		errLogger("\nGlobal flags: -v (repeatable), --offline\n")
	}

	if len(args) < 2 || strings.EqualFold(args[1], "help") || args[1] == "-h" {
		usage()
		return 1
	}

	restoreCursorOnInterrupt()

	cmdName := args[1]
	for _, c := range commands {
		if c.Name() != cmdName {
			continue
		}

		fs := flag.NewFlagSet(cmdName, flag.ContinueOnError)
		fs.SetOutput(stderr)
		verbosity := 0
		fs.BoolFunc("v", "verbosity (repeat or pass a count: -v, -v=2, -v=3)", func(s string) error {
			if s == "true" {
				verbosity++
				return nil
			}
			n, err := strconv.Atoi(s)
			if err != nil {
				return err
			}
			verbosity = n
			return nil
		})
		offline := fs.Bool("offline", false, "do not access the network")
		c.Register(fs)
		resetUsage(stderr, fs, cmdName, c.Args(), c.LongHelp())

		if err := fs.Parse(args[2:]); err != nil {
			return 1
		}

		ctx := &runContext{
			log:     applog.New(stderr, applog.ParseLevel(verbosity)),
			offline: *offline,
			stdout:  stdout,
			stderr:  stderr,
		}

		if err := c.Run(ctx, fs.Args()); err != nil {
			renderError(stderr, err)
			return 1
		}
		return 0
	}

	errLogger("elmjson: %s: no such command\n", cmdName)
	usage()
	return 1
}

// renderError prints err, using clierr's header+message+cause
// rendering when err is (or wraps) a *clierr.CLIError, falling back
// to a plain one-liner otherwise.
func renderError(w io.Writer, err error) {
	var ce *clierr.CLIError
	if errors.As(err, &ce) {
		fmt.Fprintln(w, ce.Render())
		return
	}
	fmt.Fprintf(w, "elmjson: %v\n", err)
}

// restoreCursorOnInterrupt installs the one cooperative cancellation
// signal the tool recognises: on SIGINT, re-show the terminal cursor
// (in case a subcommand hid it for a progress indicator) and exit.
// No in-flight I/O is rolled back; partially-written cache files are
// acceptable because the version store's exclusive lock guarantees at
// most one writer.
func restoreCursorOnInterrupt() {
	sigch := make(chan os.Signal, 1)
	signal.Notify(sigch, os.Interrupt)
	go func() {
		<-sigch
		fmt.Fprint(os.Stderr, "\x1b[?25h")
		os.Exit(1)
	}()
}

func resetUsage(stderr io.Writer, fs *flag.FlagSet, name, args, longHelp string) {
	var flagBlock bytes.Buffer
	flagWriter := tabwriter.NewWriter(&flagBlock, 0, 4, 2, ' ', 0)
	var hasFlags bool
	fs.VisitAll(func(f *flag.Flag) {
		hasFlags = true
		fmt.Fprintf(flagWriter, "\t-%s\t%s\n", f.Name, f.Usage)
	})
	flagWriter.Flush()

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: elmjson %s %s\n\n", name, args)
		fmt.Fprintln(stderr, strings.TrimSpace(longHelp))
		if hasFlags {
			fmt.Fprintln(stderr, "\nFlags:\n")
			fmt.Fprintln(stderr, flagBlock.String())
		}
	}
}
