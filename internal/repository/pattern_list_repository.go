package repository

import (
	"context"
	"fmt"

	"github.com/yasinhessnawi1/jcadmin/internal/patternlist"
)

// PatternListRepository defines read-modify-write operations on one pattern
// list. Every mutation reads the file as it is now; nothing is cached here.
type PatternListRepository interface {
	Name() string
	File() TextFile
	Remove(ctx context.Context, number string) (bool, error)
	AppendIfAbsent(ctx context.Context, number, comment string) (bool, error)
}

// FilePatternListRepository is a PatternListRepository over a jcblock list file
type FilePatternListRepository struct {
	name string
	file TextFile
}

// NewPatternListRepository creates a PatternListRepository named name (safe or blocked)
func NewPatternListRepository(name string, file TextFile) PatternListRepository {
	return &FilePatternListRepository{
		name: name,
		file: file,
	}
}

// Name returns the list name
func (r *FilePatternListRepository) Name() string {
	return r.name
}

// File returns the backing file
func (r *FilePatternListRepository) File() TextFile {
	return r.file
}

// Remove drops every record for number and rewrites the file. The file is
// left untouched when there was nothing to remove.
func (r *FilePatternListRepository) Remove(ctx context.Context, number string) (bool, error) {
	text, err := r.file.Read(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to read %s list: %w", r.name, err)
	}

	updated, changed := patternlist.Remove(text, number)
	if !changed {
		return false, nil
	}

	if err := r.file.Write(ctx, updated); err != nil {
		return false, fmt.Errorf("failed to rewrite %s list: %w", r.name, err)
	}
	return true, nil
}

// AppendIfAbsent adds a record for number at the end of the file unless one
// exists. The record is appended in place, like the device's own editor.
func (r *FilePatternListRepository) AppendIfAbsent(ctx context.Context, number, comment string) (bool, error) {
	text, err := r.file.Read(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to read %s list: %w", r.name, err)
	}

	if patternlist.Contains(text, number) {
		return false, nil
	}

	if err := r.file.Append(ctx, patternlist.Suffix(text, number, comment)); err != nil {
		return false, fmt.Errorf("failed to append to %s list: %w", r.name, err)
	}
	return true, nil
}
