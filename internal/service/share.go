package service

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/kfenner/roadtrip-planner/internal/domain"
)

// maxShareTokenBytes caps the decompressed size of a share token.
// Tokens come from untrusted input, so the gzip stream must not be allowed
// to expand without bound.
const maxShareTokenBytes = 1 << 20

// ShareService turns trips into compact URL-safe tokens and back.
// A token is the trip's portable document, gzipped and base64url-encoded —
// small enough to live in a URL fragment or a pasted message.
type ShareService struct {
	importer *ImportService
}

// NewShareService constructs a ShareService on top of the ImportService.
func NewShareService(importer *ImportService) *ShareService {
	return &ShareService{importer: importer}
}

// Encode renders the trip as a share token.
// Returns domain.ErrNotFound if the trip does not exist.
func (s *ShareService) Encode(ctx context.Context, tripID uuid.UUID) (string, error) {
	doc, err := s.importer.Document(ctx, tripID)
	if err != nil {
		return "", fmt.Errorf("service.ShareService.Encode: %w", err)
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("service.ShareService.Encode: marshal: %w", err)
	}

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(raw); err != nil {
		return "", fmt.Errorf("service.ShareService.Encode: compress: %w", err)
	}
	if err := zw.Close(); err != nil {
		return "", fmt.Errorf("service.ShareService.Encode: compress: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(buf.Bytes()), nil
}

// Redeem decodes a share token and imports it as a new trip.
// Returns domain.ErrValidation for tokens that do not decode to a valid
// trip document.
func (s *ShareService) Redeem(ctx context.Context, token string) (domain.Trip, error) {
	doc, err := decodeToken(token)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	trip, err := s.importer.Import(ctx, doc)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.ShareService.Redeem: %w", err)
	}
	return trip, nil
}

func decodeToken(token string) (TripDocument, error) {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return TripDocument{}, fmt.Errorf("decode token: %w", err)
	}

	zr, err := gzip.NewReader(bytes.NewReader(raw))
	if err != nil {
		return TripDocument{}, fmt.Errorf("decompress token: %w", err)
	}
	defer zr.Close()

	decompressed, err := io.ReadAll(io.LimitReader(zr, maxShareTokenBytes))
	if err != nil {
		return TripDocument{}, fmt.Errorf("decompress token: %w", err)
	}

	var doc TripDocument
	if err := json.Unmarshal(decompressed, &doc); err != nil {
		return TripDocument{}, fmt.Errorf("parse token: %w", err)
	}
	return doc, nil
}
