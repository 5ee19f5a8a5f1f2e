package buildinfo

import (
	"fmt"
	"testing"

	. "src.frdlisp.dev/pkg/prog/progtest"
	"src.frdlisp.dev/pkg/testutil"
)

func TestProgram(t *testing.T) {
	info := Value()
	Test(t, Program,
		ThatFrdlisp("-version").WritesStdout(info.Version+"\n"),
		ThatFrdlisp("-version", "-json").WritesStdout(mustToJSON(info.Version)+"\n"),

		ThatFrdlisp("-buildinfo").WritesStdout(
			fmt.Sprintf(
				"Version: %v\nGo version: %v\nReproducible build: %v\n",
				info.Version, info.GoVersion, info.Reproducible)),
		ThatFrdlisp("-buildinfo", "-json").WritesStdout(mustToJSON(info)+"\n"),

		ThatFrdlisp().ExitsWith(2).WritesStderr("internal error: no suitable subprogram\n"),
	)
}

func TestValue(t *testing.T) {
	testutil.Set(t, &VersionSuffix, "-test")
	if got := Value().Version; got != Version+"-test" {
		t.Errorf("got version %q", got)
	}
}
