package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/TaNiShK1911/NutriVision-App/config"
	"github.com/TaNiShK1911/NutriVision-App/models"
)

// AdviceRequest carries the coaching context in the wire shape the coaching
// backend expects. The derived fields are computed at build time and kept off
// the wire; the backend recomputes them itself.
type AdviceRequest struct {
	TDEE               int     `json:"user_tdee"`
	CaloriesBeforeMeal int     `json:"calories_consumed_so_far"`
	FoodLabel          string  `json:"detected_food_label"`
	FoodCalories       float64 `json:"detected_food_calories"`
	Goal               string  `json:"user_goal"`

	CaloriesRemaining  int     `json:"-"`
	PercentageConsumed float64 `json:"-"`
}

// BuildAdviceRequest packages the coaching context for the most recent meal.
// Callers only invoke coaching after at least one meal is logged for the day;
// an empty day is a legitimate "no advice yet" state upstream, not an input
// to this function.
func BuildAdviceRequest(profile *models.UserProfile, caloriesBeforeLastMeal int, lastMeal models.MealLogEntry) (AdviceRequest, error) {
	if profile == nil {
		return AdviceRequest{}, &models.ValidationError{Field: "profile", Reason: "no profile saved yet"}
	}
	if profile.TDEE <= 0 {
		return AdviceRequest{}, &models.ValidationError{Field: "tdee", Reason: "must be positive"}
	}
	if lastMeal.ID == "" || lastMeal.Calories <= 0 {
		return AdviceRequest{}, &models.ValidationError{Field: "last_meal", Reason: "missing or empty"}
	}

	currentTotal := float64(caloriesBeforeLastMeal) + lastMeal.Calories
	req := AdviceRequest{
		TDEE:               profile.TDEE,
		CaloriesBeforeMeal: caloriesBeforeLastMeal,
		FoodLabel:          lastMeal.FoodLabel,
		FoodCalories:       lastMeal.Calories,
		Goal:               profile.Goal,
	}
	req.CaloriesRemaining = profile.TDEE - int(math.Round(currentTotal))
	req.PercentageConsumed = currentTotal / float64(profile.TDEE) * 100
	return req, nil
}

// AdviceClientState tracks the most recent request's lifecycle.
type AdviceClientState int32

const (
	AdviceIdle AdviceClientState = iota
	AdviceRequesting
	AdviceSucceeded
	AdviceFailed
)

func (s AdviceClientState) String() string {
	switch s {
	case AdviceIdle:
		return "idle"
	case AdviceRequesting:
		return "requesting"
	case AdviceSucceeded:
		return "succeeded"
	case AdviceFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// AdviceResult is what callers always get back. Source is "coach" when the
// backend answered and "fallback" when the tip was generated locally.
type AdviceResult struct {
	Tip    string `json:"coaching_tip"`
	Source string `json:"source"`
}

// AdviceClient talks to the coaching backend. Its contract: RequestAdvice
// never returns an error. Coaching is a non-critical enhancement, so any
// failure — timeout, transport error, bad status, malformed payload —
// degrades to a deterministic local tip instead of blocking the caller.
type AdviceClient struct {
	client  *http.Client
	baseURL string
	state   atomic.Int32
}

func NewAdviceClient() *AdviceClient {
	return &AdviceClient{
		client:  &http.Client{Timeout: config.GetenvSeconds("ADVICE_TIMEOUT_SECONDS", 20*time.Second)},
		baseURL: config.Getenv("ADVICE_SERVER_URL", "http://localhost:5001"),
	}
}

func (a *AdviceClient) State() AdviceClientState {
	return AdviceClientState(a.state.Load())
}

// Extra attempts after a 429; the backend rate-limits bursts.
const adviceRetries = 2

var adviceRetryBackoff = 2 * time.Second

// RequestAdvice resolves with a coaching tip, real or fallback, never an
// error.
func (a *AdviceClient) RequestAdvice(ctx context.Context, req AdviceRequest) AdviceResult {
	a.state.Store(int32(AdviceRequesting))
	tip, err := a.fetchTip(ctx, req)
	if err != nil {
		a.state.Store(int32(AdviceFailed))
		log.Printf("advice client: falling back to local tip: %v", err)
		return AdviceResult{Tip: FallbackTip(req), Source: "fallback"}
	}
	a.state.Store(int32(AdviceSucceeded))
	return AdviceResult{Tip: tip, Source: "coach"}
}

func (a *AdviceClient) fetchTip(ctx context.Context, req AdviceRequest) (string, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return "", err
	}

	backoff := adviceRetryBackoff
	for attempt := 0; ; attempt++ {
		tip, retryable, err := a.once(ctx, body)
		if err == nil {
			return tip, nil
		}
		if !retryable || attempt >= adviceRetries {
			return "", err
		}
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
	}
}

func (a *AdviceClient) once(ctx context.Context, body []byte) (tip string, retryable bool, err error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/coaching", bytes.NewReader(body))
	if err != nil {
		return "", false, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(httpReq)
	if err != nil {
		return "", false, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", false, err
	}
	if resp.StatusCode == http.StatusTooManyRequests {
		return "", true, fmt.Errorf("coaching api rate limited (429)")
	}
	if resp.StatusCode != http.StatusOK {
		return "", false, fmt.Errorf("coaching api error %d: %s", resp.StatusCode, preview(raw))
	}

	var out struct {
		CoachingTip string `json:"coaching_tip"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", false, fmt.Errorf("decode coaching response: %w", err)
	}
	if strings.TrimSpace(out.CoachingTip) == "" {
		return "", false, fmt.Errorf("empty coaching tip in response")
	}
	return out.CoachingTip, false, nil
}

// FallbackTip is the deterministic local tip used whenever the coaching
// backend cannot answer. Every variant names the logged food so the message
// still reflects what just happened.
func FallbackTip(req AdviceRequest) string {
	food := FormatLabel(req.FoodLabel)
	remaining := req.CaloriesRemaining
	switch {
	case remaining < 0:
		return fmt.Sprintf("You've logged %s and gone over your daily target by %d kcal. Balance it out with lighter choices and keep hydrated.", food, -remaining)
	case remaining < 300:
		return fmt.Sprintf("You've logged %s. Only %d kcal left today, so aim for something light and veggie-heavy to finish strong.", food, remaining)
	case remaining < 600:
		return fmt.Sprintf("You've logged %s. With %d kcal remaining, a balanced meal with protein, veggies, and some carbs will fit well.", food, remaining)
	default:
		return fmt.Sprintf("You've logged %s and still have %d kcal left today. Keep tracking your meals!", food, remaining)
	}
}
