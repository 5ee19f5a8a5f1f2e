// Package fsutil provides filesystem utilities.
package fsutil

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"src.frdlisp.dev/pkg/env"
)

// GetHome finds the home directory of the current user. $HOME takes
// precedence over the user database.
func GetHome() (string, error) {
	if home := os.Getenv(env.HOME); home != "" {
		return strings.TrimRight(home, pathSep), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("can't find home directory: %w", err)
	}
	return home, nil
}

var pathSep = string(filepath.Separator)

// TildeAbbr abbreviates the user's home directory to ~.
func TildeAbbr(path string) string {
	home, err := GetHome()
	if err != nil || home == "" || home == "/" {
		// Abbreviating "/" would make the path longer.
		return path
	}
	if path == home {
		return "~"
	} else if strings.HasPrefix(path, home+"/") ||
		(runtime.GOOS == "windows" && strings.HasPrefix(path, home+"\\")) {
		return "~" + path[len(home):]
	}
	return path
}
