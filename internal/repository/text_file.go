package repository

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/natefinch/atomic"
	"github.com/rs/zerolog/log"

	"github.com/yasinhessnawi1/jcadmin/internal/constants"
	"github.com/yasinhessnawi1/jcadmin/internal/metrics"
	"github.com/yasinhessnawi1/jcadmin/internal/utils"
)

// Operation names recorded on file errors
const (
	OpRead   = "read"
	OpWrite  = "write"
	OpAppend = "append"
	OpStat   = "stat"
)

// TextFile defines methods for reading and writing one of the jcblock files
type TextFile interface {
	Path() string
	Read(ctx context.Context) (string, error)
	Write(ctx context.Context, content string) error
	Append(ctx context.Context, content string) error
	ModTime(ctx context.Context) (time.Time, error)
}

// LocalTextFile is a TextFile on the local filesystem
type LocalTextFile struct {
	path string
}

// NewTextFile creates a TextFile for path
func NewTextFile(path string) TextFile {
	return &LocalTextFile{
		path: path,
	}
}

// Path returns the file's location
func (f *LocalTextFile) Path() string {
	return f.path
}

// Read returns the whole file
func (f *LocalTextFile) Read(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	startTime := time.Now()
	data, err := os.ReadFile(f.path)
	utils.LogFileIO(OpRead, f.path, len(data), time.Since(startTime), err)

	if err != nil {
		return "", f.fail(OpRead, err)
	}
	return string(data), nil
}

// Write replaces the whole file. The new content is written to a temporary
// file in the same directory and renamed over the old one, so readers see
// either the old or the new file, never a partial one.
func (f *LocalTextFile) Write(ctx context.Context, content string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	startTime := time.Now()
	err := atomic.WriteFile(f.path, strings.NewReader(content))
	utils.LogFileIO(OpWrite, f.path, len(content), time.Since(startTime), err)

	if err != nil {
		return f.fail(OpWrite, err)
	}
	return nil
}

// Append adds content to the end of the file, creating it if needed
func (f *LocalTextFile) Append(ctx context.Context, content string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	startTime := time.Now()
	err := appendFile(f.path, content)
	utils.LogFileIO(OpAppend, f.path, len(content), time.Since(startTime), err)

	if err != nil {
		return f.fail(OpAppend, err)
	}
	return nil
}

// ModTime returns the file's last-modified time
func (f *LocalTextFile) ModTime(ctx context.Context) (time.Time, error) {
	if err := ctx.Err(); err != nil {
		return time.Time{}, err
	}

	info, err := os.Stat(f.path)
	if err != nil {
		return time.Time{}, f.fail(OpStat, err)
	}
	return info.ModTime(), nil
}

func (f *LocalTextFile) fail(op string, err error) error {
	metrics.FileErrors.WithLabelValues(op).Inc()

	event := log.Error()
	if errors.Is(err, fs.ErrNotExist) {
		event = log.Warn()
	}
	event.Err(err).Str("op", op).Str(constants.LogFieldFile, f.path).Msg("jcblock file access failed")

	return utils.NewIOError(op, f.path, err)
}

func appendFile(path, content string) error {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	if _, err := file.WriteString(content); err != nil {
		file.Close()
		return err
	}
	if err := file.Sync(); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
