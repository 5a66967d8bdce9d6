// ABOUTME: Readiness scoring from daily biometric inputs.
// ABOUTME: Pure and total; missing inputs are defaulted pessimistically, never skipped.
package readiness

import (
	"math"

	"github.com/harperreed/coach/internal/models"
)

// Saturation points: an input at or above its ceiling contributes a
// full 1.0 norm. Values come from the scoring contract, not tunables.
const (
	hrvCeiling   = 100.0 // ms RMSSD
	sleepCeiling = 480.0 // minutes
	jumpCeiling  = 50.0  // cm
	worstSorenss = 10
)

// Inputs are the raw values feeding one score. Nil means the input was
// not recorded for that day.
type Inputs struct {
	HRVRMSSD     *float64
	SleepMinutes *int
	Soreness     *int
	JumpHeightCM *float64
}

// Breakdown exposes the normalized components and the defaulted raw
// values, for dashboards that show why a score is what it is.
type Breakdown struct {
	Score     int
	HRV       float64
	SleepMin  int
	Soreness  int
	JumpCM    float64
	NormHRV   float64
	NormSleep float64
	NormSore  float64
	NormJump  float64
}

// InputsFromSnapshot builds scoring inputs from a stored snapshot.
// A nil snapshot scores as all-missing.
func InputsFromSnapshot(s *models.MetricSnapshot) Inputs {
	if s == nil {
		return Inputs{}
	}
	return Inputs{
		HRVRMSSD:     s.HRVRMSSD,
		SleepMinutes: s.SleepMinutes,
		Soreness:     s.SorenessScore,
		JumpHeightCM: s.JumpHeightCM,
	}
}

// Score maps biometric inputs to a 0-100 readiness value.
//
// Each input is clamped and normalized to [0,1], then equal-weighted.
// A missing input contributes 0, except soreness which defaults to the
// worst case (10, norm 0) rather than an average. The bias is
// deliberate: unknown data must never overstate readiness.
func Score(in Inputs) int {
	return Explain(in).Score
}

// Explain computes the score along with its component breakdown.
func Explain(in Inputs) Breakdown {
	var b Breakdown

	if in.HRVRMSSD != nil {
		b.HRV = *in.HRVRMSSD
	}
	if in.SleepMinutes != nil {
		b.SleepMin = *in.SleepMinutes
	}
	b.Soreness = worstSorenss
	if in.Soreness != nil {
		b.Soreness = *in.Soreness
	}
	if in.JumpHeightCM != nil {
		b.JumpCM = *in.JumpHeightCM
	}

	b.NormHRV = clamp01(b.HRV / hrvCeiling)
	b.NormSleep = clamp01(float64(b.SleepMin) / sleepCeiling)
	b.NormSore = clamp01(float64(worstSorenss-b.Soreness) / 9.0)
	b.NormJump = clamp01(b.JumpCM / jumpCeiling)

	composite := b.NormHRV*0.25 + b.NormSleep*0.25 + b.NormSore*0.25 + b.NormJump*0.25
	b.Score = int(math.Round(100 * composite))
	return b
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
