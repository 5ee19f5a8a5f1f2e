// Frdlisp is a minimal Lisp. It runs scripts, an interactive REPL, a language
// server and an HTTP evaluation endpoint.
package main

import (
	"os"

	"src.frdlisp.dev/pkg/buildinfo"
	"src.frdlisp.dev/pkg/lsp"
	"src.frdlisp.dev/pkg/prog"
	"src.frdlisp.dev/pkg/shell"
	"src.frdlisp.dev/pkg/web"
)

func main() {
	os.Exit(prog.Run(
		[3]*os.File{os.Stdin, os.Stdout, os.Stderr}, os.Args,
		prog.Composite(buildinfo.Program, lsp.Program, web.Program, shell.Program)))
}
