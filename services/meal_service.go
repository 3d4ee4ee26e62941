// services/meal_service.go
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"strconv"
	"sync"
	"time"

	"github.com/TaNiShK1911/NutriVision-App/models"
	"github.com/TaNiShK1911/NutriVision-App/storage"
)

// Macro totals are a fixed-ratio decomposition of total calories: 30%
// protein and 45% carbs at 4 kcal/g, 25% fat at 9 kcal/g. A known
// simplification carried over deliberately; no per-food macro data exists.
const (
	proteinCalorieShare = 0.30
	carbCalorieShare    = 0.45
	fatCalorieShare     = 0.25
	kcalPerGramProtein  = 4
	kcalPerGramCarb     = 4
	kcalPerGramFat      = 9
)

// MealService owns the meal ledger: an insertion-ordered collection loaded
// from the durable store at startup and rewritten in full on every mutation.
// The mutex makes each mutation an atomic read-modify-write so interleaved
// calls cannot lose updates.
type MealService struct {
	store storage.Store
	hub   *EventHub // optional; nil disables event publishing

	mu      sync.Mutex
	entries []models.MealLogEntry
	lastID  int64
}

// NewMealService loads the persisted collection. A malformed stored blob is
// logged and treated as empty rather than crashing startup.
func NewMealService(ctx context.Context, store storage.Store, hub *EventHub) (*MealService, error) {
	s := &MealService{store: store, hub: hub}
	blob, err := store.Get(ctx, storage.KeyMealEntries)
	if errors.Is(err, storage.ErrNotFound) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load meal entries: %w", err)
	}
	if err := json.Unmarshal(blob, &s.entries); err != nil {
		log.Printf("meal ledger: discarding malformed stored collection: %v", err)
		s.entries = nil
	}
	return s, nil
}

// Today returns the current calendar date in the ledger's date format.
func Today() string {
	return time.Now().Format("2006-01-02")
}

// nextID returns a nanosecond-timestamp id, bumped past the previous one so
// ids stay unique and monotonic within the session.
func (s *MealService) nextID() string {
	id := time.Now().UnixNano()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return strconv.FormatInt(id, 10)
}

// Append stores entry under a freshly generated id and persists the full
// collection before returning. On a persist failure the in-memory append is
// rolled back, so the ledger never diverges from the durable copy.
func (s *MealService) Append(ctx context.Context, entry models.MealLogEntry) (models.MealLogEntry, error) {
	if entry.Calories <= 0 {
		return models.MealLogEntry{}, &models.ValidationError{Field: "calories", Reason: "must be positive"}
	}
	if entry.Quantity <= 0 {
		return models.MealLogEntry{}, &models.ValidationError{Field: "quantity", Reason: "must be positive"}
	}
	if entry.Date == "" {
		return models.MealLogEntry{}, &models.ValidationError{Field: "date", Reason: "required"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entry.ID = s.nextID()
	s.entries = append(s.entries, entry)
	if err := s.persistLocked(ctx); err != nil {
		s.entries = s.entries[:len(s.entries)-1]
		return models.MealLogEntry{}, err
	}
	s.publishSummaryLocked(entry.Date)
	return entry, nil
}

// Remove deletes the entry with the given id and persists. An absent id is a
// no-op, not an error.
func (s *MealService) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, e := range s.entries {
		if e.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}
	removed := s.entries[idx]
	s.entries = append(s.entries[:idx:idx], s.entries[idx+1:]...)
	if err := s.persistLocked(ctx); err != nil {
		rest := append([]models.MealLogEntry{removed}, s.entries[idx:]...)
		s.entries = append(s.entries[:idx], rest...)
		return err
	}
	s.publishSummaryLocked(removed.Date)
	return nil
}

// EntriesForDate filters by exact date match, preserving insertion order.
func (s *MealService) EntriesForDate(date string) []models.MealLogEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.entriesForDateLocked(date)
}

func (s *MealService) entriesForDateLocked(date string) []models.MealLogEntry {
	var out []models.MealLogEntry
	for _, e := range s.entries {
		if e.Date == date {
			out = append(out, e)
		}
	}
	return out
}

// SummaryForDate recomputes the day's totals from the ledger. It holds no
// state of its own, so repeated calls without mutation are identical.
func (s *MealService) SummaryForDate(date string) models.DailySummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.summaryForDateLocked(date)
}

func (s *MealService) summaryForDateLocked(date string) models.DailySummary {
	meals := s.entriesForDateLocked(date)
	var total float64
	for _, e := range meals {
		total += e.Calories
	}
	return models.DailySummary{
		Date:          date,
		TotalCalories: total,
		TotalProtein:  int(math.Round(total * proteinCalorieShare / kcalPerGramProtein)),
		TotalCarbs:    int(math.Round(total * carbCalorieShare / kcalPerGramCarb)),
		TotalFats:     int(math.Round(total * fatCalorieShare / kcalPerGramFat)),
		Meals:         meals,
	}
}

func (s *MealService) persistLocked(ctx context.Context) error {
	blob, err := json.Marshal(s.entries)
	if err != nil {
		return &models.PersistenceError{Op: "encode meal entries", Err: err}
	}
	if err := s.store.Set(ctx, storage.KeyMealEntries, blob); err != nil {
		// One retry before reporting; the mutation must not be dropped
		// silently.
		log.Printf("meal ledger: persist failed, retrying once: %v", err)
		if err = s.store.Set(ctx, storage.KeyMealEntries, blob); err != nil {
			return &models.PersistenceError{Op: "write meal entries", Err: err}
		}
	}
	return nil
}

func (s *MealService) publishSummaryLocked(date string) {
	if s.hub == nil {
		return
	}
	s.hub.Publish(Event{Type: "summary_updated", Payload: s.summaryForDateLocked(date)})
}
