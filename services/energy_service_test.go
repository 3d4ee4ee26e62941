package services

import (
	"math"
	"testing"
)

func TestComputeBMR(t *testing.T) {
	tests := []struct {
		name     string
		gender   string
		weightKg float64
		heightCm float64
		age      int
		want     float64
	}{
		{"male", "male", 80, 180, 25, 1805},
		{"female", "female", 65, 165, 30, 1370.25},
		{"other uses midpoint offset", "other", 75, 175, 28, 1625.75},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeBMR(tt.gender, tt.weightKg, tt.heightCm, tt.age)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("ComputeBMR(%s, %v, %v, %d) = %v, want %v",
					tt.gender, tt.weightKg, tt.heightCm, tt.age, got, tt.want)
			}
		})
	}
}

func TestComputeTDEE(t *testing.T) {
	tests := []struct {
		name     string
		bmr      float64
		activity string
		want     int
	}{
		{"sedentary", 1800, "sedentary", 2160},
		{"unknown tier defaults to sedentary", 1800, "couch_surfing", 2160},
		{"empty tier defaults to sedentary", 1800, "", 2160},
		{"lightly active", 1800, "lightly_active", 2475},
		{"case and space insensitive", 1800, "Lightly Active", 2475},
		{"extra whitespace", 1800, "  VERY  ACTIVE ", 3105},
		{"moderately active rounds", 1805, "moderately_active", 2798},
		{"super active", 1800, "super_active", 3420},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeTDEE(tt.bmr, tt.activity)
			if got != tt.want {
				t.Errorf("ComputeTDEE(%v, %q) = %d, want %d", tt.bmr, tt.activity, got, tt.want)
			}
		})
	}
}

func TestEnergyComputationIsDeterministic(t *testing.T) {
	for i := 0; i < 3; i++ {
		bmr := ComputeBMR("female", 65, 165, 30)
		tdee := ComputeTDEE(bmr, "moderately_active")
		if bmr != 1370.25 {
			t.Fatalf("run %d: bmr = %v, want 1370.25", i, bmr)
		}
		if want := 2124; tdee != want {
			t.Fatalf("run %d: tdee = %d, want %d", i, tdee, want)
		}
	}
}

func TestNormalizeActivityLevel(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"sedentary", "sedentary"},
		{"Lightly Active", "lightly_active"},
		{" SUPER  active ", "super_active"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizeActivityLevel(tt.in); got != tt.want {
			t.Errorf("NormalizeActivityLevel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
