package app

import (
	"context"
	"encoding/json"
	"fmt"

	"scaleshift/internal/domain"
)

// Keys the two records are stored under, before any prefix is applied.
const (
	EntriesKey = "entries"
	ProfileKey = "profile"
)

// Gateway persists the entry log and the profile as JSON values in a
// key-value store. Every save rewrites the whole record.
type Gateway struct {
	kv         domain.KeyValueStore
	entriesKey string
	profileKey string
}

var _ domain.Gateway = (*Gateway)(nil)

// NewGateway creates a Gateway over kv. A non-empty prefix namespaces both keys.
func NewGateway(kv domain.KeyValueStore, prefix string) *Gateway {
	return &Gateway{
		kv:         kv,
		entriesKey: prefix + EntriesKey,
		profileKey: prefix + ProfileKey,
	}
}

// LoadEntries returns the stored entry log, or an empty slice if none exists.
func (g *Gateway) LoadEntries(ctx context.Context) ([]domain.WeightEntry, error) {
	raw, ok, err := g.kv.Get(ctx, g.entriesKey)
	if err != nil {
		return nil, &domain.StorageIOError{Op: "get", Key: g.entriesKey, Err: err}
	}
	if !ok || raw == "" {
		return []domain.WeightEntry{}, nil
	}
	var entries []domain.WeightEntry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil, &domain.StorageCorruptionError{Key: g.entriesKey, Err: err}
	}
	if entries == nil {
		entries = []domain.WeightEntry{}
	}
	return entries, nil
}

// SaveEntries overwrites the stored entry log.
func (g *Gateway) SaveEntries(ctx context.Context, entries []domain.WeightEntry) error {
	if entries == nil {
		entries = []domain.WeightEntry{}
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encode %s: %w", g.entriesKey, err)
	}
	if err := g.kv.Set(ctx, g.entriesKey, string(data)); err != nil {
		return &domain.StorageIOError{Op: "set", Key: g.entriesKey, Err: err}
	}
	return nil
}

// LoadProfile returns the stored profile, or nil if none has been saved. A
// stored profile that decodes but fails validation is reported as corrupt.
func (g *Gateway) LoadProfile(ctx context.Context) (*domain.UserProfile, error) {
	raw, ok, err := g.kv.Get(ctx, g.profileKey)
	if err != nil {
		return nil, &domain.StorageIOError{Op: "get", Key: g.profileKey, Err: err}
	}
	if !ok || raw == "" || raw == "null" {
		return nil, nil
	}
	var p domain.UserProfile
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return nil, &domain.StorageCorruptionError{Key: g.profileKey, Err: err}
	}
	if err := p.Validate(); err != nil {
		return nil, &domain.StorageCorruptionError{Key: g.profileKey, Err: err}
	}
	return &p, nil
}

// SaveProfile overwrites the stored profile.
func (g *Gateway) SaveProfile(ctx context.Context, profile domain.UserProfile) error {
	data, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("encode %s: %w", g.profileKey, err)
	}
	if err := g.kv.Set(ctx, g.profileKey, string(data)); err != nil {
		return &domain.StorageIOError{Op: "set", Key: g.profileKey, Err: err}
	}
	return nil
}
