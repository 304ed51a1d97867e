package logger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// LogFilePath is the default log file, relative to the working directory (project root when run
// via go run ./cmd/rubik).
const LogFilePath = "logs/rubik.log"

// timeFormat stamps every record with local computer time.
const timeFormat = "2006-01-02 15:04:05"

// Logger is a structured logger that writes text records to an optional console writer and
// appends them to a file on disk. Close releases the file.
type Logger struct {
	*slog.Logger
	mu   sync.Mutex
	file *os.File
}

// New opens (or creates) the log file at path, ensuring its directory exists, and returns a
// logger writing to it and to console. An empty path logs to console only; a nil console logs
// to the file only.
func New(path string, console io.Writer, level slog.Leveler) (*Logger, error) {
	l := &Logger{}
	var writers []io.Writer
	if console != nil {
		writers = append(writers, console)
	}
	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, err
		}
		f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return nil, err
		}
		l.file = f
		writers = append(writers, f)
	}
	w := io.Discard
	if len(writers) > 0 {
		w = io.MultiWriter(writers...)
	}
	l.Logger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: stampTime,
	}))
	return l, nil
}

func stampTime(groups []string, a slog.Attr) slog.Attr {
	if len(groups) == 0 && a.Key == slog.TimeKey && a.Value.Kind() == slog.KindTime {
		return slog.String(slog.TimeKey, a.Value.Time().Format(timeFormat))
	}
	return a
}

// Close closes the log file. Safe to call more than once.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

// Since logs msg at info level with the elapsed time since start.
func (l *Logger) Since(msg string, start time.Time, args ...any) {
	l.Info(msg, append(args, "elapsed", time.Since(start).Round(time.Microsecond))...)
}
