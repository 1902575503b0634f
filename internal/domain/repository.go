// Package domain contains the core business entities, the BMI engine and the
// ports implemented by adapters.
package domain

import "context"

// KeyValueStore is the port for device-local storage: string values under
// string keys.
type KeyValueStore interface {
	// Get returns ok=false when no value exists under key.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
}

// Gateway loads and saves the two persisted records.
type Gateway interface {
	LoadEntries(ctx context.Context) ([]WeightEntry, error)
	SaveEntries(ctx context.Context, entries []WeightEntry) error
	// LoadProfile returns nil, nil when no profile has been saved.
	LoadProfile(ctx context.Context) (*UserProfile, error)
	SaveProfile(ctx context.Context, profile UserProfile) error
}
