package domain

import (
	"math"
	"time"
)

// Height bounds accepted at the input boundary, exclusive on both ends.
const (
	MinHeightMeters = 0.51
	MaxHeightMeters = 3.00
)

// UnitSystem is the user's display preference. It never changes the units
// values are stored in.
type UnitSystem string

const (
	Metric   UnitSystem = "metric"
	Imperial UnitSystem = "imperial"
)

// Valid reports whether u is a known unit system.
func (u UnitSystem) Valid() bool {
	return u == Metric || u == Imperial
}

// WeightUnit returns the mass unit entries are entered and shown in.
func (u UnitSystem) WeightUnit() Unit {
	if u == Imperial {
		return Pounds
	}
	return Kilograms
}

// Gender is optional profile data, unused by any computation.
type Gender string

const (
	Male   Gender = "male"
	Female Gender = "female"
)

// WeightEntry is a single weight measurement. BMI is computed against the
// height in effect when the entry was created and is never recomputed.
type WeightEntry struct {
	ID       string    `json:"id"`
	Date     time.Time `json:"date"`
	WeightKg float64   `json:"weightKg"`
	BMI      float64   `json:"bmi"`
}

// UserProfile holds the user's height and display preference. A missing
// profile means onboarding has not been completed.
type UserProfile struct {
	HeightMeters float64    `json:"heightMeters"`
	UnitSystem   UnitSystem `json:"unitSystem"`
	Age          *int       `json:"age,omitempty"`
	Gender       *Gender    `json:"gender,omitempty"`
}

// Validate checks the profile against the input boundary rules.
func (p UserProfile) Validate() error {
	if math.IsNaN(p.HeightMeters) || p.HeightMeters <= MinHeightMeters || p.HeightMeters >= MaxHeightMeters {
		return &ValidationError{Field: "heightMeters", Reason: "must be between 0.51 and 3.00 meters"}
	}
	if !p.UnitSystem.Valid() {
		return &ValidationError{Field: "unitSystem", Reason: `must be "metric" or "imperial"`}
	}
	if p.Age != nil && *p.Age <= 0 {
		return &ValidationError{Field: "age", Reason: "must be > 0"}
	}
	if p.Gender != nil && *p.Gender != Male && *p.Gender != Female {
		return &ValidationError{Field: "gender", Reason: `must be "male" or "female"`}
	}
	return nil
}

// Clone returns a deep copy of p.
func (p UserProfile) Clone() UserProfile {
	out := p
	if p.Age != nil {
		a := *p.Age
		out.Age = &a
	}
	if p.Gender != nil {
		g := *p.Gender
		out.Gender = &g
	}
	return out
}

// ProfileFromCentimeters builds a profile from a height entered in
// centimeters, the way the settings form collects it.
func ProfileFromCentimeters(cm float64, unit UnitSystem) UserProfile {
	return UserProfile{HeightMeters: cm / 100, UnitSystem: unit}
}

// ValidateWeight checks a weight given in kilograms.
func ValidateWeight(kg float64) error {
	if math.IsNaN(kg) || math.IsInf(kg, 0) || kg <= 0 {
		return &ValidationError{Field: "weightKg", Reason: "must be > 0"}
	}
	return nil
}
