package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/TaNiShK1911/NutriVision-App/models"
	"github.com/TaNiShK1911/NutriVision-App/services"
	"github.com/TaNiShK1911/NutriVision-App/storage"

	"github.com/gin-gonic/gin"
)

func coachingTestRouter(t *testing.T, store storage.Store) (*gin.Engine, *services.ProfileService, *services.MealService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	profiles := services.NewProfileService(store)
	meals, err := services.NewMealService(context.Background(), store, nil)
	if err != nil {
		t.Fatalf("NewMealService: %v", err)
	}

	// advice backend deliberately unreachable: the endpoint must still 200
	t.Setenv("ADVICE_SERVER_URL", "http://127.0.0.1:1")
	t.Setenv("ADVICE_TIMEOUT_SECONDS", "1")
	cc := NewCoachingController(profiles, meals, services.NewAdviceClient())

	r := gin.New()
	r.POST("/coaching/tip", cc.GetCoachingTip)
	return r, profiles, meals
}

func postCoachingTip(r *gin.Engine) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/coaching/tip", nil)
	r.ServeHTTP(w, req)
	return w
}

func seedProfile(t *testing.T, profiles *services.ProfileService) {
	t.Helper()
	p := &models.UserProfile{
		WeightKg:      80,
		HeightCm:      180,
		Age:           25,
		Gender:        models.GenderMale,
		ActivityLevel: "moderately_active",
		Goal:          models.GoalLose,
	}
	p.BMR = services.ComputeBMR(p.Gender, p.WeightKg, p.HeightCm, p.Age)
	p.TDEE = services.ComputeTDEE(p.BMR, p.ActivityLevel)
	if err := profiles.Replace(context.Background(), p); err != nil {
		t.Fatalf("seed profile: %v", err)
	}
}

func TestCoachingTipWithoutProfile(t *testing.T) {
	r, _, _ := coachingTestRouter(t, storage.NewMemStore())

	if w := postCoachingTip(r); w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404 when no profile exists", w.Code)
	}
}

func TestCoachingTipWithoutMeals(t *testing.T) {
	r, profiles, _ := coachingTestRouter(t, storage.NewMemStore())
	seedProfile(t, profiles)

	if w := postCoachingTip(r); w.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409 when no meals are logged today", w.Code)
	}
}

func TestCoachingTipDegradesToFallback(t *testing.T) {
	r, profiles, meals := coachingTestRouter(t, storage.NewMemStore())
	seedProfile(t, profiles)

	if _, err := meals.Append(context.Background(), models.MealLogEntry{
		Date:      services.Today(),
		Time:      "12:30",
		FoodLabel: "hamburger",
		Calories:  295,
		Quantity:  1,
		Unit:      "sandwich",
	}); err != nil {
		t.Fatalf("seed meal: %v", err)
	}

	w := postCoachingTip(r)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 even with the advice backend down", w.Code)
	}

	var body struct {
		CoachingTip string `json:"coaching_tip"`
		Source      string `json:"source"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Source != "fallback" {
		t.Errorf("source = %q, want fallback", body.Source)
	}
	if !strings.Contains(body.CoachingTip, "Hamburger") {
		t.Errorf("tip %q does not name the logged food", body.CoachingTip)
	}
}
