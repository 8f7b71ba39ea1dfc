package storage

import (
	"context"

	"github.com/poiesic/researchit/core"
)

// Repository provides common storage operations shared across all repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// FindSimilar finds documents similar to the given vector.
	// If section is non-empty, only documents in that section are considered.
	// Returns documents with similarity >= minSimilarity, up to limit results,
	// ordered by similarity score (highest first) with Score populated.
	FindSimilar(ctx context.Context, vector []float32, section string, minSimilarity float32, limit int) ([]*core.Document, error)

	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the storage backend and releases resources.
	Close() error
}

// DocumentRepository provides operations for managing documents.
type DocumentRepository interface {
	Repository

	// AddDocuments adds one or more documents to storage.
	// For documents with ID=0, derives a content-based ID.
	// Sets InsertedAt and UpdatedAt timestamps.
	// Returns the documents with IDs and timestamps populated.
	AddDocuments(ctx context.Context, docs ...*core.Document) ([]*core.Document, error)

	// DeleteDocuments removes documents by their IDs.
	// Also removes associated section index entries.
	// Returns ErrNotFound if any document doesn't exist.
	DeleteDocuments(ctx context.Context, ids ...core.ID) error

	// GetDocument retrieves a single document by ID.
	// Returns ErrNotFound if the document doesn't exist.
	GetDocument(ctx context.Context, id core.ID) (*core.Document, error)

	// GetDocuments retrieves multiple documents by their IDs.
	// Returns only the documents that exist (no error for missing documents).
	GetDocuments(ctx context.Context, ids ...core.ID) ([]*core.Document, error)

	// GetAllDocuments retrieves every document in storage.
	GetAllDocuments(ctx context.Context) ([]*core.Document, error)

	// GetDocumentsBySection retrieves all documents belonging to a section.
	GetDocumentsBySection(ctx context.Context, section string) ([]*core.Document, error)

	// CountDocuments returns the number of stored documents.
	CountDocuments(ctx context.Context) (int, error)
}
