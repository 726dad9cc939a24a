package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/yasinhessnawi1/jcadmin/internal/constants"
	"github.com/yasinhessnawi1/jcadmin/internal/models"
	"github.com/yasinhessnawi1/jcadmin/internal/parser"
	"github.com/yasinhessnawi1/jcadmin/internal/utils"
)

// ErrUnsupportedSchema is returned when the name database was written by a newer jcadmin
var ErrUnsupportedSchema = errors.New("unsupported name database schema version")

// NameRepository defines methods for the caller name store
type NameRepository interface {
	Load(ctx context.Context) (bool, error)
	Get(number string) string
	Set(ctx context.Context, number, name string) error
	Replace(ctx context.Context, names map[string]string) error
	Snapshot() map[string]string
	File() TextFile
}

// FileNameRepository keeps the name database in memory and rewrites the whole
// JSON file after every change.
type FileNameRepository struct {
	mu   sync.RWMutex
	file TextFile
	db   *models.NameDatabase
}

// NewNameRepository creates an empty NameRepository backed by file
func NewNameRepository(file TextFile) NameRepository {
	return &FileNameRepository{
		file: file,
		db:   models.NewNameDatabase(),
	}
}

// File returns the backing file
func (r *FileNameRepository) File() TextFile {
	return r.file
}

// Load reads the database file. It returns false, with no error, when the
// file does not exist yet so the caller can bootstrap it.
func (r *FileNameRepository) Load(ctx context.Context) (bool, error) {
	text, err := r.file.Read(ctx)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read name database: %w", err)
	}

	db := &models.NameDatabase{}
	if err := json.Unmarshal([]byte(text), db); err != nil {
		return false, fmt.Errorf("failed to parse name database %s: %w", r.file.Path(), err)
	}
	if db.SchemaVersion > constants.NameDatabaseSchemaVersion {
		return false, fmt.Errorf("%w: %d", ErrUnsupportedSchema, db.SchemaVersion)
	}
	db.Normalize()

	r.mu.Lock()
	r.db = db
	r.mu.Unlock()

	log.Info().
		Str(constants.LogFieldFile, r.file.Path()).
		Int("names", len(db.CallerName)).
		Msg("Name database loaded")

	return true, nil
}

// Get returns the stored name for number, or ""
func (r *FileNameRepository) Get(number string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.db.CallerName[number]
}

// Set stores name for number, or removes the entry when name is empty, and
// flushes the database. The in-memory entry is restored if the flush fails.
func (r *FileNameRepository) Set(ctx context.Context, number, name string) error {
	if !parser.IsPhoneNumber(number) {
		return utils.NewInvalidNumberError(number)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	previous, existed := r.db.CallerName[number]
	if name == "" {
		delete(r.db.CallerName, number)
	} else {
		r.db.CallerName[number] = name
	}

	if err := r.flushLocked(ctx); err != nil {
		if existed {
			r.db.CallerName[number] = previous
		} else {
			delete(r.db.CallerName, number)
		}
		return err
	}
	return nil
}

// Replace swaps in a whole new set of names and flushes it
func (r *FileNameRepository) Replace(ctx context.Context, names map[string]string) error {
	db := models.NewNameDatabase()
	for number, name := range names {
		if name != "" && parser.IsPhoneNumber(number) {
			db.CallerName[number] = name
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	previous := r.db
	r.db = db
	if err := r.flushLocked(ctx); err != nil {
		r.db = previous
		return err
	}
	return nil
}

// Snapshot returns a copy of every stored name
func (r *FileNameRepository) Snapshot() map[string]string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make(map[string]string, len(r.db.CallerName))
	for number, name := range r.db.CallerName {
		names[number] = name
	}
	return names
}

func (r *FileNameRepository) flushLocked(ctx context.Context) error {
	r.db.SchemaVersion = constants.NameDatabaseSchemaVersion

	data, err := json.MarshalIndent(r.db, "", "  ")
	if err != nil {
		return utils.NewInternalServerError(err)
	}

	if err := r.file.Write(ctx, string(data)+"\n"); err != nil {
		return fmt.Errorf("failed to flush name database: %w", err)
	}
	return nil
}
