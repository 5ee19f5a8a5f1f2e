// Package shell is the entry point for the terminal interface of frdlisp. It
// runs scripts, and runs the REPL when there is no script.
package shell

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"src.frdlisp.dev/pkg/diag"
	"src.frdlisp.dev/pkg/eval"
	"src.frdlisp.dev/pkg/logutil"
	"src.frdlisp.dev/pkg/parse"
	"src.frdlisp.dev/pkg/prog"
	"src.frdlisp.dev/pkg/rc"
	"src.frdlisp.dev/pkg/store"
)

var logger = logutil.GetLogger("[shell] ")

// Program is the shell subprogram.
var Program prog.Program = program{}

type program struct{}

func (program) Run(fds [3]*os.File, f *prog.Flags, args []string) error {
	if f.CodeInArg && len(args) == 0 {
		return prog.BadUsage("-c requires an argument")
	}
	cfg := rc.LoadOrWarn(fds[2], f.RC, f.NoRc)
	useColor := cfg.UseColor(isTerminal(fds[1]))
	diag.SetColor(useColor)
	color.NoColor = !useColor

	ev := eval.NewEvaler()
	if depth := cfg.ResolveMaxDepth(f.MaxDepth); depth > 0 {
		ev.MaxDepth = depth
	}

	sc := &scriptCfg{CompileOnly: f.CompileOnly, JSON: f.JSON}
	if len(args) > 0 {
		sc.Cmd = f.CodeInArg
		return prog.Exit(script(ev, fds, args, sc))
	}
	if f.CompileOnly || !isTerminal(fds[0]) {
		logger.Println("stdin is not a terminal, running it as a script")
		code, err := io.ReadAll(fds[0])
		if err != nil {
			fmt.Fprintln(fds[2], "cannot read stdin:", err)
			return prog.Exit(2)
		}
		src := parse.Source{Name: "[stdin]", Code: string(code)}
		return prog.Exit(runScript(ev, fds, src, sc))
	}

	preload(fds, ev, cfg.Preload)
	ic := &interactCfg{Prompt: cfg.Prompt}
	if !cfg.History.Disable {
		st, err := openHistory(f.DB, cfg.History.DB)
		if err != nil {
			fmt.Fprintln(fds[2], "Warning: cannot open history:", err)
		} else {
			defer st.Close()
			ic.Store = st
		}
	}
	interact(fds, ev, ic)
	return nil
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Opens the history database. The path from -db takes precedence over the one
// from the rc file.
func openHistory(flagDB, rcDB string) (store.DBStore, error) {
	path := flagDB
	if path == "" {
		path = rcDB
	}
	if path == "" {
		var err error
		path, err = rc.DefaultDBPath()
		if err != nil {
			return nil, err
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, err
	}
	logger.Printf("opening history database %s", path)
	return store.NewStore(path)
}

// Evaluates each file into the session, showing errors but not values.
func preload(fds [3]*os.File, ev *eval.Evaler, files []string) {
	for _, file := range files {
		results, err := ev.EvalFile(file)
		if err != nil {
			diag.ShowError(fds[2], err)
			continue
		}
		for _, r := range results {
			if r.Err != nil {
				diag.ShowError(fds[2], r.Err)
			}
		}
	}
}

var valuePrefix = color.New(color.FgHiBlack)

// Prints the results of evaluation, values on out and errors on errOut. It
// returns whether all results are values.
func printResults(out, errOut io.Writer, results []eval.Result) bool {
	ok := true
	for _, r := range results {
		if r.Err != nil {
			diag.ShowError(errOut, r.Err)
			ok = false
		} else {
			fmt.Fprintln(out, valuePrefix.Sprint("▶ ")+eval.Repr(r.Value))
		}
	}
	return ok
}
