package progtest

import (
	"fmt"
	"io"
	"os"
	"testing"

	"src.frdlisp.dev/pkg/prog"
)

type echoProgram struct{}

func (echoProgram) Run(fds [3]*os.File, _ *prog.Flags, args []string) error {
	in, _ := io.ReadAll(fds[0])
	fmt.Fprint(fds[1], string(in))
	for _, arg := range args {
		fmt.Fprintln(fds[2], arg)
	}
	if len(args) > 0 && args[0] == "fail" {
		return prog.Exit(5)
	}
	return nil
}

func TestCase(t *testing.T) {
	Test(t, echoProgram{},
		ThatFrdlisp().DoesNothing(),
		ThatFrdlisp().WithStdin("input").WritesStdout("input"),
		ThatFrdlisp().WithStdin("some input").WritesStdoutContaining("input"),
		ThatFrdlisp("a").WritesStderr("a\n"),
		ThatFrdlisp("fail").ExitsWith(5).WritesStderrContaining("fail"),
	)
}

func TestRun(t *testing.T) {
	exit, stdout, stderr := Run(echoProgram{}, []string{"frdlisp", "x"}, "in")
	if exit != 0 || stdout != "in" || stderr != "x\n" {
		t.Errorf("got (%v, %q, %q)", exit, stdout, stderr)
	}
}
