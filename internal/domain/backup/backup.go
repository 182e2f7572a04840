// Package backup exports and restores a user's complete book as a single
// JSON snapshot, optionally zstd-compressed.
package backup

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/klauspost/compress/zstd"

	"ledgerpro/internal/core/apperror"
	"ledgerpro/internal/core/id"
	"ledgerpro/internal/core/types"
	"ledgerpro/internal/domain/bills"
	"ledgerpro/internal/domain/catalogs/entities"
	"ledgerpro/internal/domain/catalogs/products"
	"ledgerpro/internal/domain/transactions"
	"ledgerpro/pkg/logger"
)

// snapshotVersion guards restores against snapshots from incompatible
// releases.
const snapshotVersion = 1

// zstdMagic is the frame header every zstd stream starts with.
var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

// Snapshot is the full export payload.
type Snapshot struct {
	Version      int                        `json:"version"`
	ExportedAt   string                     `json:"exportedAt"`
	Entities     []entities.Entity          `json:"entities"`
	Products     []products.Product         `json:"products"`
	Transactions []transactions.Transaction `json:"transactions"`
	Bills        []bills.Bill               `json:"bills"`
}

// Store is the persistence surface the backup service needs: bulk read
// for export, wipe-and-load for restore, all inside one transaction.
type Store interface {
	ReadAll(ctx context.Context, userID id.ID) (*Snapshot, error)
	ReplaceAll(ctx context.Context, userID id.ID, snap *Snapshot) error
}

// Service exports and restores snapshots.
type Service struct {
	store   Store
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

// NewService creates a new backup service.
func NewService(store Store) (*Service, error) {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("create zstd encoder: %w", err)
	}
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}
	return &Service{store: store, encoder: encoder, decoder: decoder}, nil
}

// Export serializes the user's book. With compress set the result is a
// zstd frame, otherwise plain JSON.
func (s *Service) Export(ctx context.Context, userID id.ID, compress bool) ([]byte, error) {
	snap, err := s.store.ReadAll(ctx, userID)
	if err != nil {
		return nil, err
	}
	snap.Version = snapshotVersion
	snap.ExportedAt = types.NowISO()

	raw, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}
	if compress {
		return s.encoder.EncodeAll(raw, nil), nil
	}
	return raw, nil
}

// Restore replaces the user's book with the snapshot. Compressed input is
// detected by the zstd frame header.
func (s *Service) Restore(ctx context.Context, userID id.ID, data []byte) error {
	if len(data) == 0 {
		return apperror.NewInvalidInput("Backup file is empty.")
	}
	if bytes.HasPrefix(data, zstdMagic) {
		raw, err := s.decoder.DecodeAll(data, nil)
		if err != nil {
			return apperror.NewInvalidInput("Backup file is corrupted.").WithCause(err)
		}
		data = raw
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return apperror.NewInvalidInput("Backup file is not a valid snapshot.").WithCause(err)
	}
	if snap.Version != snapshotVersion {
		return apperror.NewInvalidInput("Backup file version is not supported.").
			WithDetail("version", snap.Version)
	}

	// Every restored record is re-owned by the restoring user.
	for i := range snap.Entities {
		snap.Entities[i].UserID = userID
	}
	for i := range snap.Products {
		snap.Products[i].UserID = userID
	}
	for i := range snap.Transactions {
		snap.Transactions[i].UserID = userID
	}
	for i := range snap.Bills {
		snap.Bills[i].UserID = userID
	}

	if err := s.store.ReplaceAll(ctx, userID, &snap); err != nil {
		return err
	}
	logger.Info(ctx, "snapshot restored",
		"entities", len(snap.Entities),
		"products", len(snap.Products),
		"transactions", len(snap.Transactions),
		"bills", len(snap.Bills),
	)
	return nil
}
