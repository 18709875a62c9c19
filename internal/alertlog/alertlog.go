// Package alertlog persists alerts as an append-only text file, one line per
// alert. The file is never rewritten or truncated by the monitor; rotation
// is an external concern. A single monitor process per host is assumed — no
// file locking coordinates concurrent writers.
package alertlog

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/playok/healthmon/internal/model"
)

const (
	timeLayout = "2006-01-02 15:04:05"
	fileMode   = 0o644
)

// Log appends alert lines to a fixed path.
type Log struct {
	path string
	now  func() time.Time
}

func New(path string) *Log {
	return &Log{path: path, now: time.Now}
}

// Append writes one `YYYY-MM-DD HH:MM:SS - [LEVEL] message` line, creating
// the file if absent. The line is assembled up front and handed to a single
// write call so a concurrent tail reader never sees a partial line.
func (l *Log) Append(level model.Severity, message string) error {
	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, fileMode)
	if err != nil {
		return fmt.Errorf("open alert log: %w", err)
	}
	defer f.Close()

	line := fmt.Sprintf("%s - [%s] %s\n", l.now().Format(timeLayout), level, message)
	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("append alert: %w", err)
	}
	return nil
}

// Tail returns the most recent n lines, oldest first. A missing file means
// no alerts have ever fired and is not an error.
func (l *Log) Tail(n int) ([]string, error) {
	data, err := os.ReadFile(l.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read alert log: %w", err)
	}

	text := strings.TrimRight(string(data), "\n")
	if text == "" {
		return nil, nil
	}
	lines := strings.Split(text, "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return lines, nil
}
