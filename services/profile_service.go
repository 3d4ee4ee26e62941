package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/TaNiShK1911/NutriVision-App/models"
	"github.com/TaNiShK1911/NutriVision-App/storage"
)

// ProfileService owns the single current profile: loaded once at startup,
// replaced wholesale on every edit (no partial patch), persisted immediately.
type ProfileService struct {
	store storage.Store
}

func NewProfileService(store storage.Store) *ProfileService {
	return &ProfileService{store: store}
}

// Load returns (nil, nil) when no profile exists yet — a valid state, not an
// error. A malformed stored blob is logged and treated as absent; it must
// never crash the process.
func (s *ProfileService) Load(ctx context.Context) (*models.UserProfile, error) {
	blob, err := s.store.Get(ctx, storage.KeyProfile)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	var p models.UserProfile
	if err := json.Unmarshal(blob, &p); err != nil {
		log.Printf("profile store: discarding malformed stored profile: %v", err)
		return nil, nil
	}
	return &p, nil
}

// Replace validates and persists the profile. Recomputing BMR/TDEE is the
// caller's job; Replace rejects a profile whose derived fields disagree with
// a fresh recomputation so the invariant cannot rot in storage. A write
// failure surfaces as a PersistenceError — the user's save must be confirmed
// or explicitly fail, never silently dropped.
func (s *ProfileService) Replace(ctx context.Context, p *models.UserProfile) error {
	if err := p.Validate(); err != nil {
		return err
	}
	bmr := ComputeBMR(p.Gender, p.WeightKg, p.HeightCm, p.Age)
	tdee := ComputeTDEE(bmr, p.ActivityLevel)
	if p.BMR != bmr || p.TDEE != tdee {
		return &models.ValidationError{Field: "bmr/tdee", Reason: "inconsistent with profile fields"}
	}
	blob, err := json.Marshal(p)
	if err != nil {
		return &models.PersistenceError{Op: "encode profile", Err: err}
	}
	if err := s.store.Set(ctx, storage.KeyProfile, blob); err != nil {
		return &models.PersistenceError{Op: "write profile", Err: err}
	}
	return nil
}
