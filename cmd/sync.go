package cmd

import (
	"log"
	"os"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/term"
)

// syncLogger flushes l when stderr can be synced. Pipes and character
// devices other than terminals reject fsync with EINVAL.
func syncLogger(l *zap.Logger) {
	if !term.IsTerminal(int(os.Stderr.Fd())) && !isRegularFile(os.Stderr) {
		return
	}
	if err := l.Sync(); err != nil {
		if !strings.Contains(strings.ToLower(err.Error()), "invalid argument") {
			log.Printf("logger sync failed: %v", err)
		}
	}
}

// isRegularFile checks if the given file is a regular file.
func isRegularFile(f *os.File) bool {
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return fi.Mode().IsRegular()
}
