package shell

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"src.frdlisp.dev/pkg/diag"
	"src.frdlisp.dev/pkg/eval"
	"src.frdlisp.dev/pkg/parse"
	"src.frdlisp.dev/pkg/store/storedefs"
)

// Configuration for the interactive mode.
type interactCfg struct {
	Prompt string
	// Store records each input. If nil, history is disabled.
	Store storedefs.Store
}

// Runs the REPL until stdin is exhausted.
func interact(fds [3]*os.File, ev *eval.Evaler, cfg *interactCfg) {
	in := bufio.NewReader(fds[0])
	cont := strings.Repeat(" ", utf8.RuneCountInString(cfg.Prompt))
	cmdNum := 0

	for {
		cmdNum++
		name := fmt.Sprintf("[tty %v]", cmdNum)
		code, err := readCode(in, fds[2], ev, name, cfg.Prompt, cont)
		if code == "" && err != nil {
			if err != io.EOF {
				logger.Println("cannot read input:", err)
			}
			fmt.Fprintln(fds[2])
			return
		}
		if strings.TrimSpace(code) == "" {
			continue
		}
		if cmd := strings.TrimSpace(code); strings.HasPrefix(cmd, ":") {
			metaCommand(fds, cfg.Store, cmd)
			continue
		}
		if cfg.Store != nil {
			if _, err := cfg.Store.AddCmd(strings.TrimRight(code, "\n")); err != nil {
				logger.Println("cannot add to history:", err)
			}
		}

		results, err := ev.Eval(parse.Source{Name: name, Code: code})
		if err != nil {
			diag.ShowError(fds[2], err)
			continue
		}
		printResults(fds[1], fds[2], results)
	}
}

// Reads one input. Continuation lines are read as long as the input so far
// fails to compile only because it ends too early. A non-nil error is only
// returned with whatever was read before it.
func readCode(in *bufio.Reader, w io.Writer, ev *eval.Evaler, name, prompt, cont string) (string, error) {
	var sb strings.Builder
	fmt.Fprint(w, prompt)
	for {
		line, err := in.ReadString('\n')
		sb.WriteString(line)
		if err != nil {
			return sb.String(), err
		}
		code := sb.String()
		if strings.TrimSpace(code) == "" || strings.HasPrefix(strings.TrimSpace(code), ":") {
			return code, nil
		}
		_, err = ev.Compile(parse.Source{Name: name, Code: code})
		if !parse.IsPartial(err) {
			return code, nil
		}
		fmt.Fprint(w, cont)
	}
}

func metaCommand(fds [3]*os.File, st storedefs.Store, cmd string) {
	switch fields := strings.Fields(cmd); fields[0] {
	case ":history":
		if st == nil {
			diag.Complain(fds[2], "history is disabled")
			return
		}
		args := strings.TrimSpace(strings.TrimPrefix(cmd, ":history"))
		if err := history(fds[1], st, args); err != nil {
			diag.Complain(fds[2], err.Error())
		}
	default:
		diag.Complainf(fds[2], "unknown command %s; available commands: :history", fields[0])
	}
}

// Implements the :history meta command:
//
//	:history                 lists all inputs
//	:history PREFIX          lists inputs starting with PREFIX
//	:history -last [PREFIX]  shows the last input starting with PREFIX
//	:history -delete SEQ     deletes the input numbered SEQ
func history(w io.Writer, st storedefs.Store, args string) error {
	opt, rest, _ := strings.Cut(args, " ")
	rest = strings.TrimSpace(rest)
	switch {
	case opt == "-last":
		return showLast(w, st, rest)
	case opt == "-delete":
		return deleteHistory(st, rest)
	case strings.HasPrefix(opt, "-"):
		return fmt.Errorf("unknown option %s; available options: -last -delete", opt)
	case args == "":
		return showHistory(w, st)
	default:
		return showHistoryWithPrefix(w, st, args)
	}
}

func showHistory(w io.Writer, st storedefs.Store) error {
	next, err := st.NextCmdSeq()
	if err != nil {
		return err
	}
	cmds, err := st.CmdsWithSeq(0, next)
	if err != nil && !errors.Is(err, storedefs.ErrNoMatchingCmd) {
		return err
	}
	for _, cmd := range cmds {
		printCmd(w, cmd)
	}
	return nil
}

func showHistoryWithPrefix(w io.Writer, st storedefs.Store, prefix string) error {
	for from := 0; ; {
		cmd, err := st.NextCmd(from, prefix)
		if errors.Is(err, storedefs.ErrNoMatchingCmd) {
			return nil
		} else if err != nil {
			return err
		}
		printCmd(w, cmd)
		from = cmd.Seq + 1
	}
}

func showLast(w io.Writer, st storedefs.Store, prefix string) error {
	next, err := st.NextCmdSeq()
	if err != nil {
		return err
	}
	cmd, err := st.PrevCmd(next, prefix)
	if errors.Is(err, storedefs.ErrNoMatchingCmd) {
		return fmt.Errorf("no input starts with %q", prefix)
	} else if err != nil {
		return err
	}
	printCmd(w, cmd)
	return nil
}

func deleteHistory(st storedefs.Store, arg string) error {
	seq, err := strconv.Atoi(arg)
	if err != nil {
		return fmt.Errorf("-delete needs a sequence number, got %q", arg)
	}
	if _, err := st.Cmd(seq); errors.Is(err, storedefs.ErrNoMatchingCmd) {
		return fmt.Errorf("no input numbered %d", seq)
	} else if err != nil {
		return err
	}
	return st.DelCmd(seq)
}

func printCmd(w io.Writer, cmd storedefs.Cmd) {
	text := strings.ReplaceAll(cmd.Text, "\n", "\n      ")
	fmt.Fprintf(w, "%5d %s\n", cmd.Seq, text)
}
