package controllers

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"

	"github.com/TaNiShK1911/NutriVision-App/services"

	"github.com/gin-gonic/gin"
)

type FoodController struct {
	Classifier services.Classifier
	Table      *services.NutritionTable
}

func NewFoodController(classifier services.Classifier, table *services.NutritionTable) *FoodController {
	return &FoodController{Classifier: classifier, Table: table}
}

// POST /food/classify  { "image_base64": "..." }
// Classification failure propagates as 502; there is no fallback label.
func (fc *FoodController) ClassifyFood(c *gin.Context) {
	var req struct {
		ImageBase64 string `json:"image_base64" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	image, err := decodeImage(req.ImageBase64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pred, err := fc.Classifier.Predict(c.Request.Context(), image)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	fact := fc.Table.Resolve(pred.Label)
	c.JSON(http.StatusOK, gin.H{
		"label":        pred.Label,
		"display_name": services.FormatLabel(pred.Label),
		"confidence":   pred.Confidence,
		"calories":     fact.Calories,
		"unit":         fact.Unit,
	})
}

// GET /food/labels
func (fc *FoodController) ListLabels(c *gin.Context) {
	labels := fc.Table.Labels()
	c.JSON(http.StatusOK, gin.H{"labels": labels, "count": len(labels)})
}

// decodeImage accepts raw base64 or a data URI.
func decodeImage(s string) ([]byte, error) {
	if strings.HasPrefix(s, "data:") {
		idx := strings.Index(s, ",")
		if idx < 0 {
			return nil, fmt.Errorf("invalid data URI")
		}
		s = s[idx+1:]
	}
	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid base64 image: %w", err)
	}
	return data, nil
}
