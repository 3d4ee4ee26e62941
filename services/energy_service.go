package services

import (
	"math"
	"strings"

	"github.com/TaNiShK1911/NutriVision-App/models"
)

// activityMultipliers maps normalized activity tiers to their TDEE
// multiplier. This is the single source of truth for the five tiers.
var activityMultipliers = map[string]float64{
	"sedentary":         1.2,
	"lightly_active":    1.375,
	"moderately_active": 1.55,
	"very_active":       1.725,
	"super_active":      1.9,
}

const sedentaryMultiplier = 1.2

// ComputeBMR applies the Mifflin-St Jeor formula. The "other" offset of -78
// is the midpoint between the male (+5) and female (-161) adjustments; it is
// a modeling approximation, not a published constant. Inputs are assumed
// already validated by UserProfile.Validate, so there is no checking here.
func ComputeBMR(gender string, weightKg, heightCm float64, age int) float64 {
	base := 10*weightKg + 6.25*heightCm - 5*float64(age)
	switch gender {
	case models.GenderMale:
		return base + 5
	case models.GenderFemale:
		return base - 161
	default:
		return base - 78
	}
}

// NormalizeActivityLevel folds case and collapses whitespace runs to
// underscores, so "Lightly Active" matches the lightly_active tier.
func NormalizeActivityLevel(level string) string {
	return strings.Join(strings.Fields(strings.ToLower(level)), "_")
}

// ComputeTDEE scales bmr by the activity tier multiplier, rounded to the
// nearest kcal. An unrecognized tier falls back to sedentary rather than
// failing.
func ComputeTDEE(bmr float64, activityLevel string) int {
	mult, ok := activityMultipliers[NormalizeActivityLevel(activityLevel)]
	if !ok {
		mult = sedentaryMultiplier
	}
	return int(math.Round(bmr * mult))
}
