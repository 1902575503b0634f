package domain_test

import (
	"errors"
	"math"
	"testing"

	"scaleshift/internal/domain"
)

func TestUserProfile_Validate(t *testing.T) {
	age := 30
	badAge := 0
	gender := domain.Female
	badGender := domain.Gender("other")

	tests := []struct {
		name    string
		profile domain.UserProfile
		field   string
	}{
		{"valid metric", domain.UserProfile{HeightMeters: 1.75, UnitSystem: domain.Metric}, ""},
		{"valid imperial with extras", domain.UserProfile{HeightMeters: 1.6, UnitSystem: domain.Imperial, Age: &age, Gender: &gender}, ""},
		{"lower bound excluded", domain.UserProfile{HeightMeters: 0.51, UnitSystem: domain.Metric}, "heightMeters"},
		{"upper bound excluded", domain.UserProfile{HeightMeters: 3.0, UnitSystem: domain.Metric}, "heightMeters"},
		{"zero height", domain.UserProfile{UnitSystem: domain.Metric}, "heightMeters"},
		{"nan height", domain.UserProfile{HeightMeters: math.NaN(), UnitSystem: domain.Metric}, "heightMeters"},
		{"unknown unit system", domain.UserProfile{HeightMeters: 1.75, UnitSystem: "si"}, "unitSystem"},
		{"non-positive age", domain.UserProfile{HeightMeters: 1.75, UnitSystem: domain.Metric, Age: &badAge}, "age"},
		{"unknown gender", domain.UserProfile{HeightMeters: 1.75, UnitSystem: domain.Metric, Gender: &badGender}, "gender"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.profile.Validate()
			if tc.field == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			var ve *domain.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if ve.Field != tc.field {
				t.Errorf("expected field %q, got %q", tc.field, ve.Field)
			}
		})
	}
}

func TestUserProfile_Clone(t *testing.T) {
	age := 40
	p := domain.UserProfile{HeightMeters: 1.8, UnitSystem: domain.Metric, Age: &age}
	c := p.Clone()
	*c.Age = 41
	if *p.Age != 40 {
		t.Fatal("clone shares age pointer")
	}
}

func TestProfileFromCentimeters(t *testing.T) {
	p := domain.ProfileFromCentimeters(175, domain.Imperial)
	if !almostEqual(p.HeightMeters, 1.75, 1e-9) || p.UnitSystem != domain.Imperial {
		t.Fatalf("unexpected profile %+v", p)
	}
	if p.UnitSystem.WeightUnit() != domain.Pounds {
		t.Fatal("imperial should enter weight in pounds")
	}
}

func TestValidateWeight(t *testing.T) {
	for _, kg := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		if err := domain.ValidateWeight(kg); !domain.IsValidation(err) {
			t.Errorf("ValidateWeight(%v) = %v; want ValidationError", kg, err)
		}
	}
	if err := domain.ValidateWeight(70.5); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestStorageErrorsUnwrap(t *testing.T) {
	cause := errors.New("disk gone")
	err := error(&domain.StorageIOError{Op: "get", Key: "entries", Err: cause})
	if !errors.Is(err, cause) || !domain.IsStorage(err) {
		t.Fatal("StorageIOError should unwrap to its cause")
	}
	err = &domain.StorageCorruptionError{Key: "profile", Err: cause}
	if !errors.Is(err, cause) || !domain.IsStorage(err) {
		t.Fatal("StorageCorruptionError should unwrap to its cause")
	}
}
