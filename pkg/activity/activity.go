// Package activity persists the user-visible operation log: one JSON line
// per save, delete, or failure, written through zap.
package activity

import (
	"bufio"
	"encoding/json"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log appends structured activity entries to a file. It satisfies the
// view-model layer's Logger boundary.
type Log struct {
	logger *zap.Logger
	path   string
}

// Open creates or appends to the activity log at path.
func Open(path string) (*Log, error) {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	cfg.DisableCaller = true
	cfg.DisableStacktrace = true
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return &Log{logger: logger, path: path}, nil
}

// Path returns the backing file.
func (l *Log) Path() string { return l.path }

// Info records a successful operation.
func (l *Log) Info(source, action, summary, detail string) {
	l.logger.Info(summary,
		zap.String("source", source),
		zap.String("action", action),
		zap.String("detail", detail))
}

// Error records a failed operation.
func (l *Log) Error(source, action, summary, detail string) {
	l.logger.Error(summary,
		zap.String("source", source),
		zap.String("action", action),
		zap.String("detail", detail))
}

// Close flushes buffered entries.
func (l *Log) Close() error {
	return l.logger.Sync()
}

// Entry is one decoded activity record.
type Entry struct {
	Timestamp time.Time `json:"-"`
	TS        string    `json:"ts"`
	Level     string    `json:"level"`
	Summary   string    `json:"msg"`
	Source    string    `json:"source"`
	Action    string    `json:"action"`
	Detail    string    `json:"detail"`
}

// Tail reads the newest n entries from the activity log at path, oldest
// first. A missing file yields no entries, matching a store that has not
// logged anything yet.
func Tail(path string, n int) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	var entries []Entry
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		var e Entry
		if err := json.Unmarshal(scanner.Bytes(), &e); err != nil {
			// Skip lines that are not activity records.
			continue
		}
		if ts, err := time.Parse("2006-01-02T15:04:05.000Z0700", e.TS); err == nil {
			e.Timestamp = ts
		}
		entries = append(entries, e)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if n > 0 && len(entries) > n {
		entries = entries[len(entries)-n:]
	}
	return entries, nil
}
