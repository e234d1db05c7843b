// Package logging builds the hclog loggers shared by shikidesk's packages.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-hclog"
)

// LevelEnv overrides the configured level when set.
const LevelEnv = "SHIKIDESK_LOG_LEVEL"

// Options configures New.
type Options struct {
	Name  string
	Level string
	// Output receives log lines. When nil and File is set, the file is
	// opened for append; when both are empty, stderr is used.
	Output io.Writer
	File   string
	JSON   bool
}

// New returns a leveled logger and a closer for the file it opened, if any.
func New(opts Options) (hclog.Logger, io.Closer, error) {
	level := ParseLevel(opts.Level)
	if env := strings.TrimSpace(os.Getenv(LevelEnv)); env != "" {
		level = ParseLevel(env)
	}

	out := opts.Output
	var closer io.Closer = nopCloser{}
	if out == nil && strings.TrimSpace(opts.File) != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
			return nil, nil, fmt.Errorf("create log dir: %w", err)
		}
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		out, closer = f, f
	}
	if out == nil {
		out = os.Stderr
	}

	name := opts.Name
	if name == "" {
		name = "shikidesk"
	}
	logger := hclog.New(&hclog.LoggerOptions{
		Name:       name,
		Level:      level,
		Output:     out,
		JSONFormat: opts.JSON,
	})
	return logger, closer, nil
}

// ParseLevel maps a level name to an hclog level. Unknown names yield Info.
func ParseLevel(name string) hclog.Level {
	level := hclog.LevelFromString(strings.TrimSpace(name))
	if level == hclog.NoLevel {
		return hclog.Info
	}
	return level
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
