// Package storetest keeps test suites against storedefs.Store.
package storetest

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"src.frdlisp.dev/pkg/store/storedefs"
)

var (
	cmdInit = []string{"(define x 1)", "(+ x 1)", "(define (f)\n  x)", "(f)"}
	// Sequence numbers start at 1.
	cmdSeqs = []int{1, 2, 3, 4}
)

// TestCmd tests the command history functionality of a Store, which must be
// empty.
func TestCmd(t *testing.T, store storedefs.Store) {
	t.Helper()

	startSeq, err := store.NextCmdSeq()
	if startSeq != 1 || err != nil {
		t.Errorf("store.NextCmdSeq() -> %v, %v, want 1, nil", startSeq, err)
	}

	for i, cmd := range cmdInit {
		seq, err := store.AddCmd(cmd)
		if seq != cmdSeqs[i] || err != nil {
			t.Errorf("store.AddCmd(%q) -> %v, %v, want %v, nil",
				cmd, seq, err, cmdSeqs[i])
		}
	}

	endSeq, err := store.NextCmdSeq()
	if endSeq != 5 || err != nil {
		t.Errorf("store.NextCmdSeq() -> %v, %v, want 5, nil", endSeq, err)
	}

	for i, seq := range cmdSeqs {
		cmd, err := store.Cmd(seq)
		if cmd != cmdInit[i] || err != nil {
			t.Errorf("store.Cmd(%v) -> %q, %v, want %q, nil",
				seq, cmd, err, cmdInit[i])
		}
	}
	if _, err := store.Cmd(100); err != storedefs.ErrNoMatchingCmd {
		t.Errorf("store.Cmd(100) -> error %v, want ErrNoMatchingCmd", err)
	}

	cmds, err := store.CmdsWithSeq(2, 4)
	want := []storedefs.Cmd{{Text: cmdInit[1], Seq: 2}, {Text: cmdInit[2], Seq: 3}}
	if err != nil {
		t.Errorf("store.CmdsWithSeq(2, 4) -> error %v", err)
	} else if diff := cmp.Diff(want, cmds); diff != "" {
		t.Errorf("store.CmdsWithSeq(2, 4) (-want +got):\n%s", diff)
	}

	nextTests := []struct {
		from    int
		prefix  string
		wantSeq int
		wantErr error
	}{
		{1, "(define", 1, nil},
		{2, "(define", 3, nil},
		{1, "(+", 2, nil},
		{3, "(+", 0, storedefs.ErrNoMatchingCmd},
		{1, "", 1, nil},
	}
	for _, tc := range nextTests {
		cmd, err := store.NextCmd(tc.from, tc.prefix)
		if err != tc.wantErr || (err == nil && cmd.Seq != tc.wantSeq) {
			t.Errorf("store.NextCmd(%v, %q) -> %v, %v, want seq %v, %v",
				tc.from, tc.prefix, cmd, err, tc.wantSeq, tc.wantErr)
		}
	}

	prevTests := []struct {
		upto    int
		prefix  string
		wantSeq int
		wantErr error
	}{
		{5, "(define", 3, nil},
		{3, "(define", 1, nil},
		{100, "(f", 4, nil},
		{2, "(+", 0, storedefs.ErrNoMatchingCmd},
		{1, "", 0, storedefs.ErrNoMatchingCmd},
	}
	for _, tc := range prevTests {
		cmd, err := store.PrevCmd(tc.upto, tc.prefix)
		if err != tc.wantErr || (err == nil && cmd.Seq != tc.wantSeq) {
			t.Errorf("store.PrevCmd(%v, %q) -> %v, %v, want seq %v, %v",
				tc.upto, tc.prefix, cmd, err, tc.wantSeq, tc.wantErr)
		}
	}

	if err := store.DelCmd(1); err != nil {
		t.Errorf("store.DelCmd(1) -> %v", err)
	}
	if _, err := store.Cmd(1); err != storedefs.ErrNoMatchingCmd {
		t.Errorf("store.Cmd(1) after deletion -> error %v, want ErrNoMatchingCmd", err)
	}
	// Deleting doesn't reuse sequence numbers.
	if seq, _ := store.NextCmdSeq(); seq != 5 {
		t.Errorf("store.NextCmdSeq() after deletion -> %v, want 5", seq)
	}
}
