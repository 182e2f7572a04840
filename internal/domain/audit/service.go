package audit

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/klauspost/compress/zstd"

	"ledgerpro/internal/core/apperror"
	"ledgerpro/internal/core/id"
	"ledgerpro/internal/core/types"
	"ledgerpro/pkg/logger"
)

// listLimit caps how many entries List returns, newest first.
const listLimit = 200

// compressThreshold is the metadata size above which entries are stored
// zstd-compressed.
const compressThreshold = 10 * 1024

// Service writes and reads the audit trail.
type Service struct {
	repo    Repository
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

// NewService creates a new audit service.
func NewService(repo Repository) (*Service, error) {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("create zstd encoder: %w", err)
	}
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}
	return &Service{repo: repo, encoder: encoder, decoder: decoder}, nil
}

// Log records an action against a resource. Action and resource are
// required; metadata is optional and compressed when large.
func (s *Service) Log(ctx context.Context, userID id.ID, action, resource, resourceID string, meta map[string]any) error {
	if action == "" || resource == "" {
		return apperror.NewInvalidInput("Audit action and resource are required.")
	}

	e := &Entry{
		ID:          id.New(),
		UserID:      userID,
		Action:      action,
		Resource:    resource,
		ResourceID:  resourceID,
		Compression: CompressionNone,
		CreatedAt:   types.NowISO(),
	}
	if len(meta) > 0 {
		raw, err := json.Marshal(meta)
		if err != nil {
			return fmt.Errorf("marshal audit meta: %w", err)
		}
		if len(raw) > compressThreshold {
			e.MetaCompressed = s.encoder.EncodeAll(raw, nil)
			e.Compression = CompressionZstd
		} else {
			e.Meta = raw
		}
	}

	if err := s.repo.Insert(ctx, e); err != nil {
		// Audit failures never abort the business operation.
		logger.Error(ctx, "audit insert failed", "error", err, "action", action, "resource", resource)
		return err
	}
	return nil
}

// List returns the user's most recent entries, decompressing metadata
// where needed.
func (s *Service) List(ctx context.Context, userID id.ID) ([]Entry, error) {
	entries, err := s.repo.ListByUser(ctx, userID, listLimit)
	if err != nil {
		return nil, err
	}
	for i := range entries {
		e := &entries[i]
		if e.Compression == CompressionZstd && len(e.MetaCompressed) > 0 {
			raw, err := s.decoder.DecodeAll(e.MetaCompressed, nil)
			if err != nil {
				return nil, fmt.Errorf("decompress audit meta: %w", err)
			}
			e.Meta = raw
			e.MetaCompressed = nil
			e.Compression = CompressionNone
		}
	}
	return entries, nil
}
