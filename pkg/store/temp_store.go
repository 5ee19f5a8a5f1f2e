package store

import (
	"path/filepath"

	"src.frdlisp.dev/pkg/testutil"
)

// MustTempStore returns a Store backed by a database in a temporary directory.
// The Store is closed when the test ends.
func MustTempStore(c testutil.Cleanuper) DBStore {
	st, err := NewStore(filepath.Join(testutil.TempDir(c), "history.db"))
	if err != nil {
		panic(err)
	}
	c.Cleanup(func() { st.Close() })
	return st
}
