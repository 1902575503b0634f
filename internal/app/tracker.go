package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"scaleshift/internal/domain"
)

// State is the lifecycle state of a Tracker.
type State int

const (
	StateUninitialized State = iota
	StateLoading
	StateReady
	// StateDegraded is ready, but at least one record failed to load. The
	// record that failed cannot be overwritten.
	StateDegraded
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateDegraded:
		return "degraded"
	}
	return "unknown"
}

// Tracker owns the in-memory profile and entry log and writes every mutation
// through to the Gateway. Mutations are serialised.
type Tracker struct {
	gw    domain.Gateway
	now   func() time.Time
	newID func() string

	// writeMu serialises mutations, including the save that follows them.
	writeMu sync.Mutex

	mu         sync.RWMutex
	state      State
	entries    []domain.WeightEntry
	profile    *domain.UserProfile
	entriesErr error
	profileErr error
	loaded     chan struct{}
}

// TrackerOption configures a Tracker.
type TrackerOption func(*Tracker)

// WithClock overrides the clock used for default entry dates.
func WithClock(now func() time.Time) TrackerOption {
	return func(t *Tracker) { t.now = now }
}

// WithIDGenerator overrides how entry ids are generated. Generated ids must
// never repeat.
func WithIDGenerator(newID func() string) TrackerOption {
	return func(t *Tracker) { t.newID = newID }
}

// NewTracker creates an uninitialized Tracker backed by gw. Call Load before
// mutating it.
func NewTracker(gw domain.Gateway, opts ...TrackerOption) *Tracker {
	t := &Tracker{
		gw:      gw,
		now:     time.Now,
		newID:   uuid.NewString,
		entries: []domain.WeightEntry{},
		loaded:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Load reads the entry log and the profile concurrently and moves the tracker
// to ready, or degraded if either read failed. An absent profile and an empty
// log are a normal first run. Only the first call loads; later calls wait for
// it and return the same error.
func (t *Tracker) Load(ctx context.Context) error {
	t.mu.Lock()
	if t.state != StateUninitialized {
		t.mu.Unlock()
		select {
		case <-t.loaded:
			return t.LoadErr()
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	t.state = StateLoading
	t.mu.Unlock()

	var (
		entries    []domain.WeightEntry
		profile    *domain.UserProfile
		entriesErr error
		profileErr error
	)
	var g errgroup.Group
	g.Go(func() error {
		entries, entriesErr = t.gw.LoadEntries(ctx)
		return entriesErr
	})
	g.Go(func() error {
		profile, profileErr = t.gw.LoadProfile(ctx)
		return profileErr
	})
	_ = g.Wait()

	t.mu.Lock()
	if entriesErr == nil && entries != nil {
		t.entries = entries
	}
	if profileErr == nil {
		t.profile = profile
	}
	t.entriesErr = entriesErr
	t.profileErr = profileErr
	if entriesErr != nil || profileErr != nil {
		t.state = StateDegraded
	} else {
		t.state = StateReady
	}
	state, n, hasProfile := t.state, len(t.entries), t.profile != nil
	t.mu.Unlock()
	close(t.loaded)

	if state == StateDegraded {
		log.Printf("[store] loaded degraded: entries=%v profile=%v", entriesErr, profileErr)
	} else {
		log.Printf("[store] loaded %d entries, profile configured: %t", n, hasProfile)
	}
	return t.LoadErr()
}

// Loaded is closed once Load has completed.
func (t *Tracker) Loaded() <-chan struct{} {
	return t.loaded
}

// State returns the current lifecycle state.
func (t *Tracker) State() State {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.state
}

// Loading reports whether the tracker has not finished loading yet.
func (t *Tracker) Loading() bool {
	s := t.State()
	return s == StateUninitialized || s == StateLoading
}

// LoadErr returns the errors encountered while loading, joined, or nil.
func (t *Tracker) LoadErr() error {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return errors.Join(t.entriesErr, t.profileErr)
}

// Entries returns a copy of the entry log, newest first.
func (t *Tracker) Entries() []domain.WeightEntry {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]domain.WeightEntry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Entry returns the entry with the given id.
func (t *Tracker) Entry(id string) (domain.WeightEntry, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for _, e := range t.entries {
		if e.ID == id {
			return e, true
		}
	}
	return domain.WeightEntry{}, false
}

// Profile returns a copy of the profile, or nil if none is configured.
func (t *Tracker) Profile() *domain.UserProfile {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.profile == nil {
		return nil
	}
	p := t.profile.Clone()
	return &p
}

func (t *Tracker) checkReadyLocked() error {
	switch t.state {
	case StateReady, StateDegraded:
		return nil
	}
	return domain.ErrStoreNotReady
}

// AddEntry records a weight in kilograms. A zero date means now. The BMI is
// computed from the current height and frozen on the entry. The entry is
// prepended regardless of its date. If saving fails the entry stays in
// memory and the save error is returned.
func (t *Tracker) AddEntry(ctx context.Context, weightKg float64, date time.Time) (domain.WeightEntry, error) {
	t.writeMu.Lock()
	defer t.writeMu.Unlock()

	t.mu.Lock()
	if err := t.checkReadyLocked(); err != nil {
		t.mu.Unlock()
		return domain.WeightEntry{}, err
	}
	if err := domain.ValidateWeight(weightKg); err != nil {
		t.mu.Unlock()
		return domain.WeightEntry{}, err
	}
	if t.entriesErr != nil || t.profileErr != nil {
		t.mu.Unlock()
		return domain.WeightEntry{}, domain.ErrStoreDegraded
	}
	if t.profile == nil {
		t.mu.Unlock()
		return domain.WeightEntry{}, domain.ErrProfileRequired
	}

	if date.IsZero() {
		date = t.now()
	}
	entry := domain.WeightEntry{
		ID:       t.newID(),
		Date:     date.UTC().Truncate(time.Millisecond),
		WeightKg: weightKg,
		BMI:      domain.CalculateBMI(weightKg, t.profile.HeightMeters),
	}
	updated := make([]domain.WeightEntry, 0, len(t.entries)+1)
	updated = append(updated, entry)
	updated = append(updated, t.entries...)
	t.entries = updated
	t.mu.Unlock()

	if err := t.gw.SaveEntries(ctx, updated); err != nil {
		log.Printf("[store] entry %s kept in memory, save failed: %v", entry.ID, err)
		return entry, fmt.Errorf("save entries: %w", err)
	}
	log.Printf("[store] added entry %s: %.1f kg, bmi %.1f", entry.ID, entry.WeightKg, entry.BMI)
	return entry, nil
}

// DeleteEntry removes the entry with the given id. An unknown id is a no-op
// and reports false without writing.
func (t *Tracker) DeleteEntry(ctx context.Context, id string) (bool, error) {
	t.writeMu.Lock()
	defer t.writeMu.Unlock()

	t.mu.Lock()
	if err := t.checkReadyLocked(); err != nil {
		t.mu.Unlock()
		return false, err
	}
	if t.entriesErr != nil {
		t.mu.Unlock()
		return false, domain.ErrStoreDegraded
	}
	idx := -1
	for i, e := range t.entries {
		if e.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		t.mu.Unlock()
		return false, nil
	}
	updated := make([]domain.WeightEntry, 0, len(t.entries)-1)
	updated = append(updated, t.entries[:idx]...)
	updated = append(updated, t.entries[idx+1:]...)
	t.entries = updated
	t.mu.Unlock()

	if err := t.gw.SaveEntries(ctx, updated); err != nil {
		log.Printf("[store] entry %s removed from memory, save failed: %v", id, err)
		return true, fmt.Errorf("save entries: %w", err)
	}
	log.Printf("[store] deleted entry %s", id)
	return true, nil
}

// UpdateProfile validates and replaces the profile. Existing entries keep
// the BMI they were created with.
func (t *Tracker) UpdateProfile(ctx context.Context, p domain.UserProfile) error {
	return t.UpdateProfileFunc(ctx, func(*domain.UserProfile) domain.UserProfile { return p })
}

// UpdateProfileFunc replaces the profile with the result of fn applied to a
// copy of the current one (nil when none is configured). fn runs while other
// mutations are held off, so a read-modify-write cannot lose an update. fn
// must not call back into the tracker's mutating methods.
func (t *Tracker) UpdateProfileFunc(ctx context.Context, fn func(cur *domain.UserProfile) domain.UserProfile) error {
	t.writeMu.Lock()
	defer t.writeMu.Unlock()

	t.mu.RLock()
	err := t.checkReadyLocked()
	var cur *domain.UserProfile
	if t.profile != nil {
		c := t.profile.Clone()
		cur = &c
	}
	t.mu.RUnlock()
	if err != nil {
		return err
	}
	p := fn(cur)

	t.mu.Lock()
	if err := p.Validate(); err != nil {
		t.mu.Unlock()
		return err
	}
	if t.profileErr != nil {
		t.mu.Unlock()
		return domain.ErrStoreDegraded
	}
	stored := p.Clone()
	t.profile = &stored
	t.mu.Unlock()

	if err := t.gw.SaveProfile(ctx, stored); err != nil {
		log.Printf("[store] profile kept in memory, save failed: %v", err)
		return fmt.Errorf("save profile: %w", err)
	}
	log.Printf("[store] profile updated: height %.2f m, units %s", stored.HeightMeters, stored.UnitSystem)
	return nil
}
