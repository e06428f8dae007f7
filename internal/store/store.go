// Package store provides the catalog index interface and SQLite implementation.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/rcliao/paper-catalog/internal/model"
)

// ErrEmpty is returned when no catalog has been imported yet.
var ErrEmpty = errors.New("no catalog imported")

// ImportParams holds parameters for importing a papers document.
type ImportParams struct {
	Doc    *model.Document
	Source string // where the document came from, recorded on the import
}

// ImportRecord describes one import run.
type ImportRecord struct {
	ID         string    `json:"id"`
	Source     string    `json:"source"`
	ImportedAt time.Time `json:"imported_at"`
	Years      int       `json:"years"`
	Papers     int       `json:"papers"`
	Specimens  int       `json:"specimens"`
}

// Store defines the catalog index.
type Store interface {
	// Import replaces the indexed catalog with p.Doc.
	Import(ctx context.Context, p ImportParams) (*ImportRecord, error)

	// Document rebuilds the papers document from the index.
	// Returns ErrEmpty before the first import.
	Document(ctx context.Context) (*model.Document, error)

	// LastImport returns the most recent import run.
	LastImport(ctx context.Context) (*ImportRecord, error)

	// Close closes the store.
	Close() error
}
