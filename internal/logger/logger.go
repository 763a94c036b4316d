package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
)

var (
	std     = log.New(os.Stderr, "", log.Ldate|log.Ltime|log.Lmicroseconds)
	logFile *os.File
)

// Init redirects output to the file at path, creating parent directories
// and opening the file in append mode. An empty path keeps stderr.
func Init(path string) error {
	if path == "" {
		return nil
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	logFile = f
	std.SetOutput(f)
	return nil
}

// Close closes the log file, if one was opened, and restores stderr.
func Close() error {
	if logFile == nil {
		return nil
	}
	std.SetOutput(os.Stderr)
	err := logFile.Close()
	logFile = nil
	return err
}

// SetOutput redirects log output. Tests use it to capture diagnostics.
func SetOutput(w io.Writer) { std.SetOutput(w) }

// Infof logs informational messages.
func Infof(format string, args ...any) { write("INFO", format, args...) }

// Warnf logs warnings.
func Warnf(format string, args ...any) { write("WARN", format, args...) }

// Errorf logs errors.
func Errorf(format string, args ...any) { write("ERROR", format, args...) }

func write(level string, format string, args ...any) {
	std.Printf("[%s] %s", level, fmt.Sprintf(format, args...))
}
