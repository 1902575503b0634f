package app_test

import (
	"context"
	"errors"
	"math"
	"strings"
	"sync"
	"testing"
	"time"

	"scaleshift/internal/app"
	"scaleshift/internal/domain"
)

// mapKV is a map-backed KeyValueStore with injectable failures.
type mapKV struct {
	mu    sync.Mutex
	data  map[string]string
	getFn func(key string) error
	setFn func(key, value string) error
	sets  int
}

func newMapKV() *mapKV {
	return &mapKV{data: map[string]string{}}
}

func (m *mapKV) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getFn != nil {
		if err := m.getFn(key); err != nil {
			return "", false, err
		}
	}
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *mapKV) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sets++
	if m.setFn != nil {
		if err := m.setFn(key, value); err != nil {
			return err
		}
	}
	m.data[key] = value
	return nil
}

func TestGateway_EmptyStore(t *testing.T) {
	gw := app.NewGateway(newMapKV(), "")
	ctx := context.Background()

	entries, err := gw.LoadEntries(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entries == nil || len(entries) != 0 {
		t.Fatalf("expected empty non-nil slice, got %v", entries)
	}

	p, err := gw.LoadProfile(ctx)
	if err != nil || p != nil {
		t.Fatalf("expected absent profile, got %v, %v", p, err)
	}
}

func TestGateway_RoundTrip(t *testing.T) {
	kv := newMapKV()
	gw := app.NewGateway(kv, "vl_")
	ctx := context.Background()

	in := []domain.WeightEntry{
		{ID: "b", Date: time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC), WeightKg: 71, BMI: 23.2},
		{ID: "a", Date: time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC), WeightKg: 70, BMI: 22.9},
	}
	if err := gw.SaveEntries(ctx, in); err != nil {
		t.Fatalf("SaveEntries: %v", err)
	}
	if _, ok := kv.data["vl_entries"]; !ok {
		t.Fatalf("expected prefixed key, have %v", kv.data)
	}
	out, err := gw.LoadEntries(ctx)
	if err != nil {
		t.Fatalf("LoadEntries: %v", err)
	}
	if len(out) != 2 || out[0].ID != "b" || !out[0].Date.Equal(in[0].Date) || out[1].BMI != 22.9 {
		t.Fatalf("unexpected entries: %+v", out)
	}

	age := 33
	if err := gw.SaveProfile(ctx, domain.UserProfile{HeightMeters: 1.75, UnitSystem: domain.Imperial, Age: &age}); err != nil {
		t.Fatalf("SaveProfile: %v", err)
	}
	p, err := gw.LoadProfile(ctx)
	if err != nil || p == nil {
		t.Fatalf("LoadProfile: %v, %v", p, err)
	}
	if p.HeightMeters != 1.75 || p.UnitSystem != domain.Imperial || p.Age == nil || *p.Age != 33 || p.Gender != nil {
		t.Fatalf("unexpected profile: %+v", p)
	}
}

func TestGateway_WireFormat(t *testing.T) {
	kv := newMapKV()
	gw := app.NewGateway(kv, "")
	ctx := context.Background()

	_ = gw.SaveEntries(ctx, nil)
	if kv.data[app.EntriesKey] != "[]" {
		t.Fatalf("nil log should be stored as [], got %q", kv.data[app.EntriesKey])
	}

	_ = gw.SaveEntries(ctx, []domain.WeightEntry{
		{ID: "1", Date: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC), WeightKg: 70, BMI: 22.9},
	})
	want := `[{"id":"1","date":"2026-01-02T03:04:05Z","weightKg":70,"bmi":22.9}]`
	if got := kv.data[app.EntriesKey]; got != want {
		t.Fatalf("got %s\nwant %s", got, want)
	}

	_ = gw.SaveProfile(ctx, domain.UserProfile{HeightMeters: 1.8, UnitSystem: domain.Metric})
	if got := kv.data[app.ProfileKey]; got != `{"heightMeters":1.8,"unitSystem":"metric"}` {
		t.Fatalf("unexpected profile json %s", got)
	}
}

func TestGateway_ReadsMillisecondTimestamps(t *testing.T) {
	kv := newMapKV()
	kv.data["entries"] = `[{"id":"1712345678901","date":"2024-04-05T19:34:38.901Z","weightKg":82.5,"bmi":26.9}]`
	kv.data["profile"] = `{"heightMeters":1.75,"unitSystem":"metric","gender":"male"}`
	gw := app.NewGateway(kv, "")

	entries, err := gw.LoadEntries(context.Background())
	if err != nil || len(entries) != 1 || entries[0].ID != "1712345678901" || entries[0].Date.Nanosecond() != 901000000 {
		t.Fatalf("unexpected: %+v, %v", entries, err)
	}
	p, err := gw.LoadProfile(context.Background())
	if err != nil || p.Gender == nil || *p.Gender != domain.Male {
		t.Fatalf("unexpected: %+v, %v", p, err)
	}
}

func TestGateway_Corruption(t *testing.T) {
	kv := newMapKV()
	kv.data["entries"] = "{not json"
	kv.data["profile"] = "[1,2]"
	gw := app.NewGateway(kv, "")

	_, err := gw.LoadEntries(context.Background())
	var ce *domain.StorageCorruptionError
	if !errors.As(err, &ce) || ce.Key != "entries" {
		t.Fatalf("expected corruption error for entries, got %v", err)
	}
	_, err = gw.LoadProfile(context.Background())
	if !errors.As(err, &ce) || ce.Key != "profile" {
		t.Fatalf("expected corruption error for profile, got %v", err)
	}
}

func TestGateway_InvalidStoredProfile(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"no height", `{"unitSystem":"metric"}`},
		{"height out of range", `{"heightMeters":4.2,"unitSystem":"metric"}`},
		{"unknown unit system", `{"heightMeters":1.75,"unitSystem":"stone"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv := newMapKV()
			kv.data["profile"] = tt.raw
			_, err := app.NewGateway(kv, "").LoadProfile(context.Background())
			var ce *domain.StorageCorruptionError
			if !errors.As(err, &ce) || ce.Key != "profile" || !domain.IsValidation(err) {
				t.Fatalf("expected corruption error wrapping a validation error, got %v", err)
			}
		})
	}
}

func TestGateway_EncodeError(t *testing.T) {
	kv := newMapKV()
	gw := app.NewGateway(kv, "")

	err := gw.SaveEntries(context.Background(), []domain.WeightEntry{{ID: "1", WeightKg: 70, BMI: math.Inf(1)}})
	if err == nil || !strings.Contains(err.Error(), "encode entries") {
		t.Fatalf("expected encode error, got %v", err)
	}
	var ie *domain.StorageIOError
	if errors.As(err, &ie) {
		t.Fatalf("encode failure must not look like an io error: %v", err)
	}
	if kv.sets != 0 {
		t.Fatalf("nothing should be written, got %d sets", kv.sets)
	}
}

func TestGateway_IOError(t *testing.T) {
	boom := errors.New("device storage unavailable")
	kv := newMapKV()
	kv.getFn = func(string) error { return boom }
	kv.setFn = func(string, string) error { return boom }
	gw := app.NewGateway(kv, "")

	var ie *domain.StorageIOError
	if _, err := gw.LoadEntries(context.Background()); !errors.As(err, &ie) || !errors.Is(err, boom) {
		t.Fatalf("expected io error, got %v", err)
	}
	if _, err := gw.LoadProfile(context.Background()); !errors.As(err, &ie) {
		t.Fatalf("expected io error, got %v", err)
	}
	if err := gw.SaveEntries(context.Background(), nil); !errors.As(err, &ie) || ie.Op != "set" {
		t.Fatalf("expected io error, got %v", err)
	}
	if err := gw.SaveProfile(context.Background(), domain.UserProfile{}); !errors.As(err, &ie) {
		t.Fatalf("expected io error, got %v", err)
	}
}
