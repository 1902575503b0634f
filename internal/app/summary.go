package app

import (
	"fmt"
	"math"
	"strconv"

	"scaleshift/internal/domain"
)

// Summary is the data behind the home screen: the latest measurement, its
// classification and the healthy range for the current height.
type Summary struct {
	// Onboarding is true until a profile has been configured.
	Onboarding   bool                `json:"onboarding"`
	Profile      *domain.UserProfile `json:"profile"`
	EntryCount   int                 `json:"entryCount"`
	Latest       *domain.WeightEntry `json:"latest"`
	Category     domain.Category     `json:"category,omitempty"`
	Color        string              `json:"color,omitempty"`
	HealthyRange *domain.WeightRange `json:"healthyRange,omitempty"`
	Display      *SummaryDisplay     `json:"display,omitempty"`
}

// SummaryDisplay holds the summary values formatted in the user's units.
type SummaryDisplay struct {
	Weight       string `json:"weight,omitempty"`
	Height       string `json:"height"`
	HealthyRange string `json:"healthyRange"`
}

// HistoryItem is one row of the history list.
type HistoryItem struct {
	domain.WeightEntry
	Category      domain.Category `json:"category"`
	Color         string          `json:"color"`
	DisplayWeight string          `json:"displayWeight"`
}

// BuildSummary derives the home screen data from a profile and an entry log
// ordered newest first.
func BuildSummary(profile *domain.UserProfile, entries []domain.WeightEntry) Summary {
	s := Summary{Onboarding: profile == nil, Profile: profile, EntryCount: len(entries)}
	if profile == nil {
		return s
	}
	r := domain.HealthyWeightRange(profile.HeightMeters)
	s.HealthyRange = &r
	s.Display = &SummaryDisplay{
		Height:       FormatHeight(profile.HeightMeters, profile.UnitSystem),
		HealthyRange: formatRange(r, profile.UnitSystem),
	}
	if len(entries) == 0 {
		return s
	}
	latest := entries[0]
	s.Latest = &latest
	s.Category = domain.Categorize(latest.BMI)
	s.Color = s.Category.Color()
	s.Display.Weight = FormatWeight(latest.WeightKg, profile.UnitSystem)
	return s
}

// BuildHistory returns one row per entry in log order. A nil profile shows
// weights in pounds, matching a profile that is not metric.
func BuildHistory(profile *domain.UserProfile, entries []domain.WeightEntry) []HistoryItem {
	unit := domain.Imperial
	if profile != nil {
		unit = profile.UnitSystem
	}
	out := make([]HistoryItem, 0, len(entries))
	for _, e := range entries {
		c := domain.Categorize(e.BMI)
		out = append(out, HistoryItem{
			WeightEntry:   e,
			Category:      c,
			Color:         c.Color(),
			DisplayWeight: FormatWeight(e.WeightKg, unit),
		})
	}
	return out
}

// Summary builds the summary from the tracker's current state.
func (t *Tracker) Summary() Summary {
	return BuildSummary(t.Profile(), t.Entries())
}

// History builds the history list from the tracker's current state.
func (t *Tracker) History() []HistoryItem {
	return BuildHistory(t.Profile(), t.Entries())
}

// FormatWeight renders a canonical weight in the given unit system.
func FormatWeight(kg float64, unit domain.UnitSystem) string {
	if unit == domain.Metric {
		return formatNumber(kg) + " kg"
	}
	return formatNumber(domain.KgToLbs(kg)) + " lbs"
}

// FormatHeight renders a canonical height in the given unit system.
func FormatHeight(m float64, unit domain.UnitSystem) string {
	if unit == domain.Metric {
		return fmt.Sprintf("%d cm", int(math.Round(m*100)))
	}
	return domain.FormatFeetInches(domain.MetersToFeetInches(m))
}

func formatRange(r domain.WeightRange, unit domain.UnitSystem) string {
	if unit == domain.Metric {
		return formatNumber(r.MinKg) + "–" + formatNumber(r.MaxKg) + " kg"
	}
	return formatNumber(domain.KgToLbs(r.MinKg)) + "–" + formatNumber(domain.KgToLbs(r.MaxKg)) + " lbs"
}

// formatNumber prints the shortest representation, so 70 stays "70" and
// 70.5 stays "70.5".
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
