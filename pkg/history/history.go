// Package history records completed draws so they can be listed and
// re-rendered later.
//
// A Draw is immutable once saved: it embeds the full ladder, so re-rendering
// a stored draw reproduces the exact rungs and mapping of the original run
// rather than sampling a new ladder. Backends:
//   - file: JSON files under the user config directory, for CLI usage
//   - mongo: MongoDB collection, for server deployments
package history

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/amidalab/amidakuji/pkg/errors"
	"github.com/amidalab/amidakuji/pkg/ladder"
)

// Draw is a stored record of one completed lottery run.
type Draw struct {
	ID         string         `json:"id" bson:"_id"`
	CreatedAt  time.Time      `json:"created_at" bson:"created_at"`
	Ladder     *ladder.Ladder `json:"ladder" bson:"ladder"`
	LadderHash string         `json:"ladder_hash" bson:"ladder_hash"`
}

// New wraps a generated ladder in a Draw with a fresh ID.
func New(l *ladder.Ladder, ladderHash string) *Draw {
	return &Draw{
		ID:         uuid.NewString(),
		CreatedAt:  time.Now().UTC(),
		Ladder:     l,
		LadderHash: ladderHash,
	}
}

// Store is the interface for draw storage backends.
type Store interface {
	// Save stores a draw. Saving an existing ID overwrites it.
	Save(ctx context.Context, d *Draw) error

	// Get retrieves a draw by ID. A missing draw returns an error with
	// code ErrCodeDrawNotFound.
	Get(ctx context.Context, id string) (*Draw, error)

	// List returns up to limit draws, most recent first. A limit of zero
	// or less returns all draws.
	List(ctx context.Context, limit int) ([]*Draw, error)

	// Delete removes a draw. Deleting a missing ID is not an error.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close(ctx context.Context) error
}

// notFound builds the standard missing-draw error.
func notFound(id string) error {
	return errors.New(errors.ErrCodeDrawNotFound, "draw %q not found", id)
}
