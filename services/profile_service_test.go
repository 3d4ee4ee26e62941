package services

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/TaNiShK1911/NutriVision-App/models"
	"github.com/TaNiShK1911/NutriVision-App/storage"
)

func validProfile() *models.UserProfile {
	p := &models.UserProfile{
		WeightKg:      80,
		HeightCm:      180,
		Age:           25,
		Gender:        models.GenderMale,
		ActivityLevel: "sedentary",
		Goal:          models.GoalMaintain,
	}
	p.BMR = ComputeBMR(p.Gender, p.WeightKg, p.HeightCm, p.Age)
	p.TDEE = ComputeTDEE(p.BMR, p.ActivityLevel)
	return p
}

func TestLoadAbsentProfile(t *testing.T) {
	svc := NewProfileService(storage.NewMemStore())

	p, err := svc.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if p != nil {
		t.Errorf("Load of empty store = %v, want nil (no profile yet)", p)
	}
}

func TestLoadMalformedProfileIsAbsentNotFatal(t *testing.T) {
	store := storage.NewMemStore()
	if err := store.Set(context.Background(), storage.KeyProfile, []byte("{broken")); err != nil {
		t.Fatalf("seed: %v", err)
	}

	svc := NewProfileService(store)
	p, err := svc.Load(context.Background())
	if err != nil {
		t.Fatalf("Load of malformed blob errored: %v", err)
	}
	if p != nil {
		t.Errorf("Load of malformed blob = %v, want nil", p)
	}
}

func TestReplaceThenLoadRoundTrip(t *testing.T) {
	svc := NewProfileService(storage.NewMemStore())
	want := validProfile()

	if err := svc.Replace(context.Background(), want); err != nil {
		t.Fatalf("Replace: %v", err)
	}
	got, err := svc.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("round trip mismatch:\ngot  %+v\nwant %+v", got, want)
	}
}

func TestReplaceRejectsInvalidProfiles(t *testing.T) {
	svc := NewProfileService(storage.NewMemStore())

	tests := []struct {
		name   string
		mutate func(*models.UserProfile)
	}{
		{"non-positive weight", func(p *models.UserProfile) { p.WeightKg = 0 }},
		{"implausible weight", func(p *models.UserProfile) { p.WeightKg = 900 }},
		{"non-positive height", func(p *models.UserProfile) { p.HeightCm = -170 }},
		{"non-positive age", func(p *models.UserProfile) { p.Age = 0 }},
		{"implausible age", func(p *models.UserProfile) { p.Age = 200 }},
		{"unknown gender", func(p *models.UserProfile) { p.Gender = "robot" }},
		{"unknown goal", func(p *models.UserProfile) { p.Goal = "bulk" }},
		{"stale tdee", func(p *models.UserProfile) { p.TDEE += 100 }},
		{"stale bmr", func(p *models.UserProfile) { p.BMR += 1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validProfile()
			tt.mutate(p)
			err := svc.Replace(context.Background(), p)
			var verr *models.ValidationError
			if !errors.As(err, &verr) {
				t.Errorf("Replace = %v, want a ValidationError", err)
			}
		})
	}
}

func TestReplacePersistFailurePropagates(t *testing.T) {
	svc := NewProfileService(failingStore{Store: storage.NewMemStore()})

	err := svc.Replace(context.Background(), validProfile())
	var perr *models.PersistenceError
	if !errors.As(err, &perr) {
		t.Errorf("Replace with failing store = %v, want a PersistenceError", err)
	}
}
