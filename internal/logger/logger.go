package logger

import (
	"fmt"
	"sync"
	"time"

	"fortio.org/log"
)

// DefaultCapacity is how many recent lines a Logger keeps for on-screen display.
const DefaultCapacity = 64

// Logger forwards viewer activity to the process log and keeps the most recent lines
// in memory (timestamped) so the HUD can show them. Safe for concurrent use.
type Logger struct {
	mu    sync.Mutex
	lines []string
	max   int
	now   func() time.Time
}

// New returns a Logger keeping at most capacity lines (DefaultCapacity when <= 0).
func New(capacity int) *Logger {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Logger{lines: make([]string, 0, capacity), max: capacity, now: time.Now}
}

// SetLevel sets the process-wide log level ("debug", "info", "warning", "error", ...).
func SetLevel(level string) error {
	if level == "" {
		return nil
	}
	if err := log.SetLogLevelStr(level); err != nil {
		return fmt.Errorf("logger: level %q: %w", level, err)
	}
	return nil
}

// Log records line at info level. Each entry is prefixed with [hh:mm:ss] local time.
func (l *Logger) Log(line string) {
	log.Infof("%s", line)
	l.append(line)
}

// Logf is Log with formatting.
func (l *Logger) Logf(format string, args ...any) {
	l.Log(fmt.Sprintf(format, args...))
}

// Warnf records a warning. Warnings are kept on screen with a "warning:" prefix.
func (l *Logger) Warnf(format string, args ...any) {
	line := fmt.Sprintf(format, args...)
	log.Warnf("%s", line)
	l.append("warning: " + line)
}

// Debugf goes to the process log only.
func (l *Logger) Debugf(format string, args ...any) {
	log.Debugf(format, args...)
}

func (l *Logger) append(line string) {
	stamped := "[" + l.now().Format("15:04:05") + "] " + line
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.lines) == l.max {
		copy(l.lines, l.lines[1:])
		l.lines = l.lines[:l.max-1]
	}
	l.lines = append(l.lines, stamped)
}

// Lines returns a copy of all stored lines, oldest first.
func (l *Logger) Lines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.lines))
	copy(out, l.lines)
	return out
}

// Tail returns up to n of the newest lines, oldest first. n <= 0 yields nil.
func (l *Logger) Tail(n int) []string {
	if n <= 0 {
		return nil
	}
	lines := l.Lines()
	if n < len(lines) {
		lines = lines[len(lines)-n:]
	}
	return lines
}
