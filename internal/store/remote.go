package store

import (
	"context"
	"errors"

	"github.com/roach88/habitflow/internal/model"
)

// ErrNotFound reports that no document exists for the user id.
// A first-time user triggers the bootstrap write.
var ErrNotFound = errors.New("document not found")

// ErrPermissionDenied reports that the remote refused access. The sync
// engine logs it and abandons the attempt; the next mutation carries the
// latest state forward.
var ErrPermissionDenied = errors.New("permission denied")

// Remote is the document store consumed by the sync engine.
type Remote interface {
	// Get fetches the user's document, or ErrNotFound.
	Get(ctx context.Context, userID string) (model.Document, error)

	// Set writes the document. With merge true the document's top-level
	// fields overlay the stored document; with merge false the stored
	// document is replaced.
	Set(ctx context.Context, userID string, doc model.Document, merge bool) error
}
