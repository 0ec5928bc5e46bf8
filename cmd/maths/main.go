package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/zephyrtronium/maths"
)

// errFailed is returned when some expressions failed. Their errors have
// already been printed.
var errFailed = errors.New("some expressions failed")

type options struct {
	quiet bool
	hex   bool
	bin   bool
	file  string
	given []string
}

func newRootCmd() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:   "maths [expression]",
		Short: "Do simple mathematics from the command line",
		Long: `maths evaluates arithmetic expressions.

Expressions come from the argument, from a file given with --file, or from
standard input, one per line. A line ending in \ continues on the next line.
After each line, its result is available as ans.

  maths '1 + 2 * 3'
  maths -x '0b1100 | 0x3'
  echo 'log_2(1024)' | maths -q`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, &opts)
		},
	}
	f := cmd.Flags()
	f.BoolVarP(&opts.quiet, "quiet", "q", false, "print only results")
	f.BoolVarP(&opts.hex, "hex", "x", false, "print results in hexadecimal, e.g. 12.1875 as 0xc.3")
	f.BoolVarP(&opts.bin, "bin", "b", false, "print results in binary, e.g. 5.25 as 0b101.01")
	f.StringVarP(&opts.file, "file", "f", "", "read expressions from `file`")
	f.StringArrayVar(&opts.given, "given", nil, "name=value variable definition (any number of times)")
	cmd.MarkFlagsMutuallyExclusive("hex", "bin")
	return cmd
}

func main() {
	log.SetFlags(0)
	err := newRootCmd().Execute()
	switch {
	case errors.Is(err, errFailed):
		os.Exit(1)
	case err != nil:
		log.Fatal(err)
	}
}

func run(cmd *cobra.Command, args []string, opts *options) error {
	if len(args) > 0 && opts.file != "" {
		return errors.New("cannot use both an expression argument and --file")
	}
	ctx, err := givens(opts.given)
	if err != nil {
		return err
	}
	s := newSession(ctx, cmd.OutOrStdout(), cmd.ErrOrStderr())
	s.quiet = opts.quiet
	switch {
	case opts.hex:
		s.radix = maths.Hexadecimal
	case opts.bin:
		s.radix = maths.Binary
	}

	switch in := cmd.InOrStdin(); {
	case len(args) > 0:
		err = s.lines(strings.NewReader(args[0]))
	case opts.file != "":
		err = readFile(s, opts.file)
	case isTerminal(in):
		// Mistakes at a prompt don't make the session fail.
		return s.repl()
	default:
		err = s.lines(in)
	}
	if err != nil {
		return err
	}
	if s.failed > 0 {
		return errFailed
	}
	return nil
}

func readFile(s *session, name string) error {
	f, err := os.Open(name)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := s.lines(f); err != nil {
		return fmt.Errorf("reading %s: %w", name, err)
	}
	return nil
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// givens creates a context with variables from name=value definitions. Each
// value is an expression which can use the definitions before it.
func givens(defs []string) (*maths.Context, error) {
	ctx := maths.NewContext()
	for _, d := range defs {
		name, val, ok := strings.Cut(d, "=")
		if !ok {
			return nil, fmt.Errorf(`variable definitions must be "name=value", not %q`, d)
		}
		name = strings.TrimSpace(name)
		if err := checkName(name); err != nil {
			return nil, err
		}
		e, err := maths.Parse(val)
		if err != nil {
			return nil, fmt.Errorf("setting %s: %w", name, err)
		}
		r, err := ctx.Eval(e)
		if err != nil {
			return nil, fmt.Errorf("setting %s: %w", name, err)
		}
		ctx.Set(name, r)
	}
	return ctx, nil
}

// checkName checks that a variable can be set with the given name.
func checkName(name string) error {
	if !maths.IsName(name) {
		return fmt.Errorf("invalid variable name %q", name)
	}
	if _, ok := maths.Constant(name); ok {
		return fmt.Errorf("cannot set constant %s", name)
	}
	return nil
}
