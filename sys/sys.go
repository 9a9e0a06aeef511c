// Package sys holds small process and file name helpers for the commands.
package sys

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Extension returns the lowercase suffix after the last dot of the final
// path element, or "" when there is none. Trailing separators are ignored.
func Extension(path string) string {
	path = strings.TrimRightFunc(path, func(r rune) bool {
		return r < 0x80 && os.IsPathSeparator(uint8(r))
	})
	if path == "" {
		return ""
	}
	name := filepath.Base(path)
	i := strings.LastIndexByte(name, '.')
	if i < 0 {
		return ""
	}
	return strings.ToLower(name[i+1:])
}

var exit = os.Exit

// Die logs the formatted message and terminates the process with status.
func Die(status int, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if status == 0 {
		slog.Info(msg)
	} else {
		slog.Error(msg, "status", status)
	}
	exit(status)
}
