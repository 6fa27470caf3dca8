// Package snapshot persists assembled schemas to disk, so generation can be
// re-run without a live database connection.
package snapshot

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/syssam/autostruct/schema"
)

// ErrVersionMismatch indicates a snapshot written by an incompatible
// encoding version.
var ErrVersionMismatch = errors.New("snapshot: incompatible snapshot version")

// Version is the current snapshot encoding version.
const Version = 1

// A Snapshot is one assembled schema together with the metadata of the run
// that produced it.
type Snapshot struct {
	Version   int              `msgpack:"version"`
	ID        uuid.UUID        `msgpack:"id"`
	Dialect   string           `msgpack:"dialect"`
	CreatedAt time.Time        `msgpack:"created_at"`
	Schema    *schema.Database `msgpack:"schema"`
}

// New wraps an assembled schema in a Snapshot with a fresh run id.
func New(dialect string, db *schema.Database) *Snapshot {
	return &Snapshot{
		Version:   Version,
		ID:        uuid.New(),
		Dialect:   dialect,
		CreatedAt: time.Now().UTC(),
		Schema:    db,
	}
}

// Save encodes the snapshot to the given path.
func (s *Snapshot) Save(path string) error {
	buf, err := msgpack.Marshal(s)
	if err != nil {
		return fmt.Errorf("snapshot: encode: %w", err)
	}
	if err := os.WriteFile(path, buf, 0o644); err != nil {
		return fmt.Errorf("snapshot: write %s: %w", path, err)
	}
	return nil
}

// Load decodes a snapshot from the given path.
func Load(path string) (*Snapshot, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("snapshot: read %s: %w", path, err)
	}
	var s Snapshot
	if err := msgpack.Unmarshal(buf, &s); err != nil {
		return nil, fmt.Errorf("snapshot: decode %s: %w", path, err)
	}
	if s.Version != Version {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrVersionMismatch, s.Version, Version)
	}
	return &s, nil
}
