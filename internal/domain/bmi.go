package domain

// Category is a BMI health classification.
type Category string

const (
	Underweight Category = "Underweight"
	Normal      Category = "Normal"
	Overweight  Category = "Overweight"
	Obese       Category = "Obese"
)

// Category thresholds. A boundary value belongs to the upper category.
const (
	normalFloor     = 18.5
	overweightFloor = 25.0
	obeseFloor      = 30.0
)

// Healthy range factors. The upper factor is 24.9, not overweightFloor.
const (
	healthyMinFactor = 18.5
	healthyMaxFactor = 24.9
)

// WeightRange is an inclusive weight interval in kilograms.
type WeightRange struct {
	MinKg float64 `json:"minKg"`
	MaxKg float64 `json:"maxKg"`
}

// CalculateBMI returns weightKg / heightMeters², rounded to one decimal.
// Callers must pass a positive height.
func CalculateBMI(weightKg, heightMeters float64) float64 {
	return Round1(weightKg / (heightMeters * heightMeters))
}

// Categorize classifies a BMI value.
func Categorize(bmi float64) Category {
	switch {
	case bmi < normalFloor:
		return Underweight
	case bmi < overweightFloor:
		return Normal
	case bmi < obeseFloor:
		return Overweight
	default:
		return Obese
	}
}

// Color returns the display color token for c.
func (c Category) Color() string {
	switch c {
	case Underweight:
		return "#2196F3"
	case Normal:
		return "#4CAF50"
	case Overweight:
		return "#FF9800"
	case Obese:
		return "#F44336"
	}
	return ""
}

// HealthyWeightRange returns the weight range considered healthy for a height.
func HealthyWeightRange(heightMeters float64) WeightRange {
	h2 := heightMeters * heightMeters
	return WeightRange{
		MinKg: Round1(healthyMinFactor * h2),
		MaxKg: Round1(healthyMaxFactor * h2),
	}
}
