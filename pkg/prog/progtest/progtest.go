// Package progtest contains utilities for testing subprograms in pkg/prog.
package progtest

import (
	"io"
	"os"
	"strconv"
	"strings"
	"testing"

	"src.frdlisp.dev/pkg/must"
	"src.frdlisp.dev/pkg/prog"
)

// Case is a test case that can be used in Test.
type Case struct {
	args  []string
	stdin string
	want  result
}

type result struct {
	exit   int
	stdout output
	stderr output
}

type output struct {
	content  string
	partial  bool
	wantSome bool
}

func (o output) String() string {
	if o.partial {
		return "text containing " + strconv.Quote(o.content)
	}
	return strconv.Quote(o.content)
}

// ThatFrdlisp returns a new Case with the specified CLI arguments. The
// program name is prepended.
//
// The new Case expects the program run to exit with 0, and write nothing to
// stdout or stderr.
//
// When combined with subsequent method calls, a test case reads like English.
// For example, a test for the fact that "frdlisp -c hello" writes "hello\n"
// to stdout reads:
//
//	ThatFrdlisp("-c", "hello").WritesStdout("hello\n")
func ThatFrdlisp(args ...string) Case {
	return Case{args: append([]string{"frdlisp"}, args...)}
}

// WithStdin returns an altered Case that provides the given input to stdin
// of the program.
func (c Case) WithStdin(s string) Case {
	c.stdin = s
	return c
}

// DoesNothing returns c itself. It is useful to mark tests that otherwise
// don't have any expectations, for example:
//
//	ThatFrdlisp("-norc").DoesNothing()
func (c Case) DoesNothing() Case {
	return c
}

// ExitsWith returns an altered Case that requires the program run to return
// with the given exit status.
func (c Case) ExitsWith(code int) Case {
	c.want.exit = code
	return c
}

// WritesStdout returns an altered Case that requires the program run to write
// exactly the given text to stdout.
func (c Case) WritesStdout(s string) Case {
	c.want.stdout = output{content: s, wantSome: true}
	return c
}

// WritesStdoutContaining returns an altered Case that requires the program run
// to write output to stdout that contains the given text as a substring.
func (c Case) WritesStdoutContaining(s string) Case {
	c.want.stdout = output{content: s, partial: true, wantSome: true}
	return c
}

// WritesStderr returns an altered Case that requires the program run to write
// exactly the given text to stderr.
func (c Case) WritesStderr(s string) Case {
	c.want.stderr = output{content: s, wantSome: true}
	return c
}

// WritesStderrContaining returns an altered Case that requires the program run
// to write output to stderr that contains the given text as a substring.
func (c Case) WritesStderrContaining(s string) Case {
	c.want.stderr = output{content: s, partial: true, wantSome: true}
	return c
}

// Test runs test cases against a given program.
func Test(t *testing.T, p prog.Program, cases ...Case) {
	t.Helper()
	for _, c := range cases {
		t.Run(strings.Join(c.args, " "), func(t *testing.T) {
			t.Helper()
			r := run(p, c.args, c.stdin)
			if r.exit != c.want.exit {
				t.Errorf("got exit %v, want %v", r.exit, c.want.exit)
			}
			if !matchOutput(r.stdout, c.want.stdout) {
				t.Errorf("got stdout %q, want %s", r.stdout, c.want.stdout)
			}
			if !matchOutput(r.stderr, c.want.stderr) {
				t.Errorf("got stderr %q, want %s", r.stderr, c.want.stderr)
			}
		})
	}
}

type runResult struct {
	exit           int
	stdout, stderr string
}

// Run runs a Program with the given arguments and stdin, and returns its exit
// status and outputs.
func Run(p prog.Program, args []string, stdin string) (exit int, stdout, stderr string) {
	r := run(p, args, stdin)
	return r.exit, r.stdout, r.stderr
}

func run(p prog.Program, args []string, stdin string) runResult {
	r0, w0 := must.Pipe()
	go func() {
		// The program may exit without reading all of stdin.
		w0.WriteString(stdin)
		w0.Close()
	}()
	defer r0.Close()

	r1, w1 := must.Pipe()
	stdout := readAllAsync(r1)
	r2, w2 := must.Pipe()
	stderr := readAllAsync(r2)

	exit := prog.Run([3]*os.File{r0, w1, w2}, args, p)
	w1.Close()
	w2.Close()
	return runResult{exit, <-stdout, <-stderr}
}

func readAllAsync(r *os.File) <-chan string {
	ch := make(chan string, 1)
	go func() {
		defer r.Close()
		ch <- string(must.OK1(io.ReadAll(r)))
	}()
	return ch
}

func matchOutput(got string, want output) bool {
	if !want.wantSome {
		return got == ""
	}
	if want.partial {
		return strings.Contains(got, want.content)
	}
	return got == want.content
}
