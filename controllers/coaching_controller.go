package controllers

import (
	"math"
	"net/http"

	"github.com/TaNiShK1911/NutriVision-App/services"

	"github.com/gin-gonic/gin"
)

type CoachingController struct {
	Profiles *services.ProfileService
	Meals    *services.MealService
	Advice   *services.AdviceClient
}

func NewCoachingController(profiles *services.ProfileService, meals *services.MealService, advice *services.AdviceClient) *CoachingController {
	return &CoachingController{Profiles: profiles, Meals: meals, Advice: advice}
}

// POST /coaching/tip — coaching for the most recent meal of the day. An
// empty day is a 409, not an advice failure: with nothing logged there is
// nothing to coach about. Once a request is built, the response is always
// 200 — the advice client degrades to a local tip on any backend failure.
func (cc *CoachingController) GetCoachingTip(c *gin.Context) {
	profile, err := cc.Profiles.Load(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if profile == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no profile yet"})
		return
	}

	meals := cc.Meals.EntriesForDate(services.Today())
	if len(meals) == 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "no meals logged yet"})
		return
	}
	last := meals[len(meals)-1]
	var before float64
	for _, m := range meals[:len(meals)-1] {
		before += m.Calories
	}

	req, err := services.BuildAdviceRequest(profile, int(math.Round(before)), last)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	res := cc.Advice.RequestAdvice(c.Request.Context(), req)
	c.JSON(http.StatusOK, gin.H{
		"coaching_tip": res.Tip,
		"source":       res.Source,
		"metadata": gin.H{
			"calories_remaining":  req.CaloriesRemaining,
			"percentage_consumed": math.Round(req.PercentageConsumed*10) / 10,
		},
	})
}
