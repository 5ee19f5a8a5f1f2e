// Package buildinfo contains build information.
//
// Build information should be set during compilation by passing
// -ldflags "-X src.frdlisp.dev/pkg/buildinfo.Var=value" to "go build".
package buildinfo

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"

	"src.frdlisp.dev/pkg/prog"
)

// Version identifies the version of frdlisp. On development commits, it
// identifies the next release.
const Version = "v0.3.0"

// VersionSuffix is appended to Version in the output of "frdlisp -version"
// and "frdlisp -buildinfo" to build the full version string.
var VersionSuffix = "-dev.unknown"

// Reproducible identifies whether the build is reproducible.
var Reproducible = "false"

// Info is the build information, as written by "frdlisp -buildinfo -json".
type Info struct {
	Version      string `json:"version"`
	GoVersion    string `json:"goversion"`
	Reproducible bool   `json:"reproducible"`
}

// Value returns the build information of the running binary.
func Value() Info {
	return Info{Version + VersionSuffix, runtime.Version(), Reproducible == "true"}
}

// Program is the buildinfo subprogram.
var Program prog.Program = program{}

type program struct{}

func (program) Run(fds [3]*os.File, f *prog.Flags, _ []string) error {
	if !f.Version && !f.BuildInfo {
		return prog.ErrNotSuitable
	}
	info := Value()
	if f.Version {
		if f.JSON {
			fmt.Fprintln(fds[1], mustToJSON(info.Version))
		} else {
			fmt.Fprintln(fds[1], info.Version)
		}
		return nil
	}
	if f.JSON {
		fmt.Fprintln(fds[1], mustToJSON(info))
	} else {
		fmt.Fprintln(fds[1], "Version:", info.Version)
		fmt.Fprintln(fds[1], "Go version:", info.GoVersion)
		fmt.Fprintln(fds[1], "Reproducible build:", info.Reproducible)
	}
	return nil
}

func mustToJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return string(b)
}
