package app_test

import (
	"context"
	"testing"
	"time"

	"scaleshift/internal/app"
	"scaleshift/internal/domain"
)

func TestBuildSummary_Onboarding(t *testing.T) {
	s := app.BuildSummary(nil, nil)
	if !s.Onboarding || s.Latest != nil || s.HealthyRange != nil || s.Display != nil {
		t.Fatalf("unexpected onboarding summary %+v", s)
	}
}

func TestBuildSummary_NoEntries(t *testing.T) {
	p := &domain.UserProfile{HeightMeters: 1.75, UnitSystem: domain.Metric}
	s := app.BuildSummary(p, nil)
	if s.Onboarding || s.Latest != nil {
		t.Fatalf("unexpected summary %+v", s)
	}
	if s.HealthyRange == nil || s.HealthyRange.MinKg != 56.7 {
		t.Fatalf("expected healthy range, got %+v", s.HealthyRange)
	}
	if s.Display.Weight != "" || s.Display.Height != "175 cm" {
		t.Fatalf("unexpected display %+v", s.Display)
	}
}

func TestBuildSummary_Metric(t *testing.T) {
	p := &domain.UserProfile{HeightMeters: 1.75, UnitSystem: domain.Metric}
	entries := []domain.WeightEntry{
		{ID: "2", Date: time.Now(), WeightKg: 70, BMI: 22.9},
		{ID: "1", Date: time.Now(), WeightKg: 90, BMI: 29.4},
	}
	s := app.BuildSummary(p, entries)
	if s.Latest == nil || s.Latest.ID != "2" || s.EntryCount != 2 {
		t.Fatalf("expected newest entry as latest, got %+v", s.Latest)
	}
	if s.Category != domain.Normal || s.Color != "#4CAF50" {
		t.Fatalf("unexpected category %s %s", s.Category, s.Color)
	}
	want := app.SummaryDisplay{Weight: "70 kg", Height: "175 cm", HealthyRange: "56.7–76.3 kg"}
	if *s.Display != want {
		t.Fatalf("got %+v, want %+v", *s.Display, want)
	}
}

func TestBuildSummary_Imperial(t *testing.T) {
	p := &domain.UserProfile{HeightMeters: 1.75, UnitSystem: domain.Imperial}
	s := app.BuildSummary(p, []domain.WeightEntry{{ID: "1", WeightKg: 70, BMI: 22.9}})
	want := app.SummaryDisplay{Weight: "154.3 lbs", Height: `5'9"`, HealthyRange: "125–168.2 lbs"}
	if *s.Display != want {
		t.Fatalf("got %+v, want %+v", *s.Display, want)
	}
}

func TestBuildHistory(t *testing.T) {
	p := &domain.UserProfile{HeightMeters: 1.70, UnitSystem: domain.Metric}
	entries := []domain.WeightEntry{
		{ID: "b", WeightKg: 120, BMI: 41.5},
		{ID: "a", WeightKg: 50, BMI: 17.3},
	}
	items := app.BuildHistory(p, entries)
	if len(items) != 2 || items[0].ID != "b" || items[1].ID != "a" {
		t.Fatalf("unexpected order %+v", items)
	}
	if items[0].Category != domain.Obese || items[0].Color != "#F44336" || items[0].DisplayWeight != "120 kg" {
		t.Fatalf("unexpected row %+v", items[0])
	}
	if items[1].Category != domain.Underweight {
		t.Fatalf("unexpected row %+v", items[1])
	}

	items = app.BuildHistory(nil, entries[:1])
	if items[0].DisplayWeight != "264.6 lbs" {
		t.Fatalf("expected pounds without a profile, got %s", items[0].DisplayWeight)
	}
}

func TestTracker_SummaryAndHistory(t *testing.T) {
	tr, _ := newReadyTracker(t, 1.75)
	if _, err := tr.AddEntry(context.Background(), 70, time.Time{}); err != nil {
		t.Fatal(err)
	}
	s := tr.Summary()
	if s.Latest == nil || s.Latest.BMI != 22.9 || s.Category != domain.Normal {
		t.Fatalf("unexpected summary %+v", s)
	}
	if h := tr.History(); len(h) != 1 || h[0].DisplayWeight != "70 kg" {
		t.Fatalf("unexpected history %+v", h)
	}
}

func TestFormatHeight(t *testing.T) {
	if got := app.FormatHeight(1.8288, domain.Imperial); got != `6'0"` {
		t.Errorf("got %s", got)
	}
	if got := app.FormatHeight(1.6, domain.Metric); got != "160 cm" {
		t.Errorf("got %s", got)
	}
}
