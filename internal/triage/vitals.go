package triage

import "math"

// Vitals is one synthetic sensor reading. In production these values would
// come from the Arduino bench at the triage station; until that integration
// lands they are sampled from plausible ranges.
type Vitals struct {
	Temperature float64 `json:"temperature"`
	HeartRate   int     `json:"heart_rate"`
	Systolic    int     `json:"systolic"`
	Diastolic   int     `json:"diastolic"`
}

// Rand is the random capability the triage core needs. *math/rand.Rand
// satisfies it; tests supply fixed sequences.
type Rand interface {
	Intn(n int) int
	Float64() float64
}

// SimulateVitals draws one reading. Called at most once per session.
func SimulateVitals(r Rand) Vitals {
	temp := 36.0 + r.Float64()*(39.5-36.0)
	return Vitals{
		Temperature: math.Round(temp*10) / 10,
		HeartRate:   60 + r.Intn(61),  // [60, 120]
		Systolic:    90 + r.Intn(71),  // [90, 160]
		Diastolic:   60 + r.Intn(41),  // [60, 100]
	}
}
