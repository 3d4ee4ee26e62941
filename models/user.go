package models

// Gender values accepted on a profile.
const (
	GenderMale   = "male"
	GenderFemale = "female"
	GenderOther  = "other"
)

// Goal values accepted on a profile.
const (
	GoalLose     = "lose"
	GoalMaintain = "maintain"
	GoalGain     = "gain"
)

// UserProfile is the single biometric profile of this single-user system.
// BMR and TDEE are derived from the other five fields and always recomputed
// together; they are never set independently. Absence of a profile is a valid
// state ("no profile yet").
type UserProfile struct {
	WeightKg      float64 `json:"weight_kg"`
	HeightCm      float64 `json:"height_cm"`
	Age           int     `json:"age"`
	Gender        string  `json:"gender"`
	ActivityLevel string  `json:"activity_level"`
	Goal          string  `json:"goal"`
	BMR           float64 `json:"bmr"`
	TDEE          int     `json:"tdee"`
}

// Validate checks the user-supplied biometric fields. Sanity ranges keep
// garbage input out of the energy calculations, which assume sanitized
// values. Activity level is not checked here: an unrecognized tier falls
// back to sedentary in the TDEE lookup instead of failing.
func (p *UserProfile) Validate() error {
	if p.WeightKg <= 0 {
		return &ValidationError{Field: "weight_kg", Reason: "must be positive"}
	}
	if p.WeightKg < 10 || p.WeightKg > 400 {
		return &ValidationError{Field: "weight_kg", Reason: "out of plausible range"}
	}
	if p.HeightCm <= 0 {
		return &ValidationError{Field: "height_cm", Reason: "must be positive"}
	}
	if p.HeightCm < 50 || p.HeightCm > 250 {
		return &ValidationError{Field: "height_cm", Reason: "out of plausible range"}
	}
	if p.Age <= 0 {
		return &ValidationError{Field: "age", Reason: "must be positive"}
	}
	if p.Age > 130 {
		return &ValidationError{Field: "age", Reason: "out of plausible range"}
	}
	switch p.Gender {
	case GenderMale, GenderFemale, GenderOther:
	default:
		return &ValidationError{Field: "gender", Reason: "must be male, female or other"}
	}
	switch p.Goal {
	case GoalLose, GoalMaintain, GoalGain:
	default:
		return &ValidationError{Field: "goal", Reason: "must be lose, maintain or gain"}
	}
	return nil
}
