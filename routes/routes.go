package routes

import (
	"github.com/TaNiShK1911/NutriVision-App/controllers"

	"github.com/gin-gonic/gin"
)

func SetupRouter(
	pc *controllers.ProfileController,
	fc *controllers.FoodController,
	mc *controllers.MealController,
	cc *controllers.CoachingController,
	rc *controllers.RealtimeController,
) *gin.Engine {
	r := gin.Default()

	r.GET("/health", controllers.Health)

	r.GET("/profile", pc.GetProfile)
	r.PUT("/profile", pc.UpdateProfile)

	food := r.Group("/food")
	{
		food.POST("/classify", fc.ClassifyFood)
		food.GET("/labels", fc.ListLabels)
	}

	r.POST("/meals", mc.LogMeal)
	r.GET("/meals", mc.ListMeals)
	r.DELETE("/meals/:id", mc.DeleteMeal)
	r.GET("/summary", mc.GetSummary)

	r.POST("/coaching/tip", cc.GetCoachingTip)

	r.GET("/ws", rc.SummaryWS)

	return r
}
