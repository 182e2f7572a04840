// Package audit records who did what to which resource. Entries are
// append-only; large metadata payloads are stored zstd-compressed.
package audit

import (
	"context"
	"encoding/json"

	"ledgerpro/internal/core/id"
)

// CompressionAlgo names the compression applied to an entry's metadata.
type CompressionAlgo string

const (
	CompressionNone CompressionAlgo = "none"
	CompressionZstd CompressionAlgo = "zstd"
)

// Entry is one audit record.
type Entry struct {
	ID             id.ID           `db:"id" json:"id"`
	UserID         id.ID           `db:"user_id" json:"-"`
	Action         string          `db:"action" json:"action"`
	Resource       string          `db:"resource" json:"resource"`
	ResourceID     string          `db:"resource_id" json:"resourceId"`
	Meta           json.RawMessage `db:"meta" json:"meta,omitempty"`
	MetaCompressed []byte          `db:"meta_compressed" json:"-"`
	Compression    CompressionAlgo `db:"compression_algo" json:"-"`
	CreatedAt      string          `db:"created_at" json:"createdAt"`
}

// Repository persists audit entries, scoped per user.
type Repository interface {
	Insert(ctx context.Context, e *Entry) error
	ListByUser(ctx context.Context, userID id.ID, limit int) ([]Entry, error)
}
