package models

import (
	"github.com/yasinhessnawi1/jcadmin/internal/constants"
)

// NameDatabase is the on-disk form of the caller name store.
// A number is present in CallerName only when a non-empty name was set for it.
type NameDatabase struct {
	SchemaVersion int               `json:"schemaVersion"`
	CallerName    map[string]string `json:"callername"`
}

// NewNameDatabase creates an empty database at the current schema version.
func NewNameDatabase() *NameDatabase {
	return &NameDatabase{
		SchemaVersion: constants.NameDatabaseSchemaVersion,
		CallerName:    make(map[string]string),
	}
}

// Normalize upgrades a legacy file (no schema version) in memory and drops
// entries with empty names.
func (db *NameDatabase) Normalize() {
	if db.SchemaVersion == 0 {
		db.SchemaVersion = constants.NameDatabaseSchemaVersion
	}
	if db.CallerName == nil {
		db.CallerName = make(map[string]string)
	}
	for number, name := range db.CallerName {
		if name == "" {
			delete(db.CallerName, number)
		}
	}
}
