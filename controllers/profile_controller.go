package controllers

import (
	"errors"
	"math"
	"net/http"

	"github.com/TaNiShK1911/NutriVision-App/models"
	"github.com/TaNiShK1911/NutriVision-App/services"
	"github.com/TaNiShK1911/NutriVision-App/utils"

	"github.com/gin-gonic/gin"
)

type ProfileController struct {
	Profiles *services.ProfileService
}

func NewProfileController(ps *services.ProfileService) *ProfileController {
	return &ProfileController{Profiles: ps}
}

// GET /profile
func (pc *ProfileController) GetProfile(c *gin.Context) {
	p, err := pc.Profiles.Load(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if p == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no profile yet"})
		return
	}
	c.JSON(http.StatusOK, profileResponse(p))
}

// PUT /profile replaces the profile wholesale. BMR and TDEE are recomputed
// here from the submitted fields, never taken from the client.
func (pc *ProfileController) UpdateProfile(c *gin.Context) {
	var body struct {
		WeightKg      float64 `json:"weight_kg"`
		HeightCm      float64 `json:"height_cm"`
		Age           int     `json:"age"`
		Gender        string  `json:"gender"`
		ActivityLevel string  `json:"activity_level"`
		Goal          string  `json:"goal"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	p := &models.UserProfile{
		WeightKg:      body.WeightKg,
		HeightCm:      body.HeightCm,
		Age:           body.Age,
		Gender:        body.Gender,
		ActivityLevel: body.ActivityLevel,
		Goal:          body.Goal,
	}
	p.BMR = services.ComputeBMR(p.Gender, p.WeightKg, p.HeightCm, p.Age)
	p.TDEE = services.ComputeTDEE(p.BMR, p.ActivityLevel)

	if err := pc.Profiles.Replace(c.Request.Context(), p); err != nil {
		var verr *models.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": verr.Error()})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, profileResponse(p))
}

func profileResponse(p *models.UserProfile) gin.H {
	resp := gin.H{"profile": p}
	if bmi, err := utils.BMI(p.HeightCm, p.WeightKg); err == nil {
		resp["bmi"] = math.Round(bmi*10) / 10
		resp["bmi_category"] = utils.BMICategory(bmi)
	}
	return resp
}
