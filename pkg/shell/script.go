package shell

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"src.frdlisp.dev/pkg/diag"
	"src.frdlisp.dev/pkg/eval"
	"src.frdlisp.dev/pkg/parse"
)

// Configuration for the script mode.
type scriptCfg struct {
	Cmd         bool
	CompileOnly bool
	JSON        bool
}

// Runs a script from a file, or from the argument when cfg.Cmd is set, and
// returns the exit status. Extra arguments are ignored.
func script(ev *eval.Evaler, fds [3]*os.File, args []string, cfg *scriptCfg) int {
	arg0 := args[0]

	var name, code string
	if cfg.Cmd {
		name = "code from -c"
		code = arg0
	} else {
		var err error
		name, err = filepath.Abs(arg0)
		if err != nil {
			fmt.Fprintf(fds[2],
				"cannot get full path of script %q: %v\n", arg0, err)
			return 2
		}
		code, err = readFileUTF8(name)
		if err != nil {
			fmt.Fprintf(fds[2], "cannot read script %q: %v\n", name, err)
			return 2
		}
	}
	return runScript(ev, fds, parse.Source{Name: name, Code: code, IsFile: !cfg.Cmd}, cfg)
}

// Exit status is 2 when the source doesn't compile, 1 when any top-level
// expression fails, and 0 otherwise.
func runScript(ev *eval.Evaler, fds [3]*os.File, src parse.Source, cfg *scriptCfg) int {
	if cfg.CompileOnly {
		_, err := ev.Compile(src)
		if cfg.JSON {
			fmt.Fprintf(fds[1], "%s\n", errorsToJSON(err))
		} else if err != nil {
			diag.ShowError(fds[2], err)
		}
		if err != nil {
			return 2
		}
		return 0
	}

	results, err := ev.Eval(src)
	if err != nil {
		diag.ShowError(fds[2], err)
		return 2
	}
	if !printResults(fds[1], fds[2], results) {
		return 1
	}
	return 0
}

var errSourceNotUTF8 = errors.New("source is not UTF-8")

func readFileUTF8(fname string) (string, error) {
	bytes, err := os.ReadFile(fname)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(bytes) {
		return "", errSourceNotUTF8
	}
	return string(bytes), nil
}

// An auxiliary struct for converting errors with diagnostics information to JSON.
type errorInJSON struct {
	FileName string `json:"fileName"`
	Start    int    `json:"start"`
	End      int    `json:"end"`
	Phase    string `json:"phase"`
	Message  string `json:"message"`
}

// Converts compilation errors into JSON.
func errorsToJSON(err error) []byte {
	converted := []errorInJSON{}
	for _, e := range eval.UnpackCompilationErrors(err) {
		converted = append(converted,
			errorInJSON{e.Context.Name, e.Context.From, e.Context.To, e.Phase, e.Message})
	}

	jsonError, errMarshal := json.Marshal(converted)
	if errMarshal != nil {
		return []byte(`[{"message":"Unable to convert the errors to JSON"}]`)
	}
	return jsonError
}
