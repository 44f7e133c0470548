// Package debug provides optional file-based debug logging.
//
// When the FLEXUI_DEBUG environment variable is set to a file path, messages
// are appended to that file. Otherwise logging is a no-op. A terminal UI owns
// stdout and stderr while the screen is active, so nothing is written there.
package debug

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// EnvVar names the environment variable holding the log path.
const EnvVar = "FLEXUI_DEBUG"

var (
	mu     sync.Mutex
	out    io.Writer
	closer io.Closer
	inited bool
)

// Init opens path for appending and directs all log output to it.
func Init(path string) error {
	mu.Lock()
	defer mu.Unlock()
	return initLocked(path)
}

// initLocked does the actual init work. Caller must hold mu.
func initLocked(path string) error {
	inited = true
	if path == "" {
		return nil
	}
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create log directory: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("open debug log: %w", err)
	}
	out, closer = f, f
	return nil
}

// SetOutput directs log output to w. A nil writer disables logging.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	inited = true
	out, closer = w, nil
}

// Close closes the debug log file.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	out = nil
	if closer != nil {
		err := closer.Close()
		closer = nil
		return err
	}
	return nil
}

// Enabled reports whether messages are written anywhere.
func Enabled() bool {
	mu.Lock()
	defer mu.Unlock()
	lazyInit()
	return out != nil
}

func lazyInit() {
	if !inited {
		_ = initLocked(os.Getenv(EnvVar))
	}
}

func write(level, format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	lazyInit()
	if out == nil {
		return
	}
	timestamp := time.Now().Format("15:04:05.000")
	fmt.Fprintf(out, "[%s] %s %s\n", timestamp, level, fmt.Sprintf(format, args...))
}

// Log writes a message to the debug log with a timestamp.
func Log(format string, args ...any) {
	write("DEBUG", format, args...)
}

// Warnf records a recoverable layout problem such as a rejected style.
func Warnf(format string, args ...any) {
	write("WARN", format, args...)
}
