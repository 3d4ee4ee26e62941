package controllers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/TaNiShK1911/NutriVision-App/models"
	"github.com/TaNiShK1911/NutriVision-App/services"
	"github.com/TaNiShK1911/NutriVision-App/utils"

	"github.com/gin-gonic/gin"
)

type MealController struct {
	Meals      *services.MealService
	Table      *services.NutritionTable
	Classifier services.Classifier
}

func NewMealController(meals *services.MealService, table *services.NutritionTable, classifier services.Classifier) *MealController {
	return &MealController{Meals: meals, Table: table, Classifier: classifier}
}

// POST /meals — log a meal from either a known label or an image. When only
// an image is given, a classification failure blocks logging outright; a
// fabricated label would corrupt the ledger.
func (mc *MealController) LogMeal(c *gin.Context) {
	var body struct {
		FoodLabel   string `json:"food_label"`
		ImageBase64 string `json:"image_base64"`
		Quantity    int    `json:"quantity"`
		StorePhoto  bool   `json:"store_photo"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if body.Quantity <= 0 {
		body.Quantity = 1
	}

	label := body.FoodLabel
	if label == "" {
		if body.ImageBase64 == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "food_label or image_base64 is required"})
			return
		}
		image, err := decodeImage(body.ImageBase64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		pred, err := mc.Classifier.Predict(c.Request.Context(), image)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		label = pred.Label
	}

	fact := mc.Table.Resolve(label)
	now := time.Now()
	entry := models.MealLogEntry{
		Date:      now.Format("2006-01-02"),
		Time:      now.Format("15:04"),
		FoodLabel: services.NormalizeLabel(label),
		Calories:  fact.Calories * float64(body.Quantity),
		Quantity:  body.Quantity,
		Unit:      fact.Unit,
	}

	// Photo storage is best-effort: a failed upload never blocks the log.
	if body.StorePhoto && body.ImageBase64 != "" {
		if url, err := utils.UploadMealPhoto(body.ImageBase64); err != nil {
			log.Printf("meal photo upload skipped: %v", err)
		} else {
			entry.PhotoURL = url
		}
	}

	stored, err := mc.Meals.Append(c.Request.Context(), entry)
	if err != nil {
		var verr *models.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": verr.Error()})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"entry":   stored,
		"summary": mc.Meals.SummaryForDate(stored.Date),
	})
}

// GET /meals?date=YYYY-MM-DD (defaults to today)
func (mc *MealController) ListMeals(c *gin.Context) {
	date := c.DefaultQuery("date", services.Today())
	c.JSON(http.StatusOK, gin.H{"date": date, "meals": mc.Meals.EntriesForDate(date)})
}

// DELETE /meals/:id — deleting an unknown id is still a 204; the end state
// is the same either way.
func (mc *MealController) DeleteMeal(c *gin.Context) {
	if err := mc.Meals.Remove(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// GET /summary?date=YYYY-MM-DD (defaults to today)
func (mc *MealController) GetSummary(c *gin.Context) {
	date := c.DefaultQuery("date", services.Today())
	c.JSON(http.StatusOK, mc.Meals.SummaryForDate(date))
}
