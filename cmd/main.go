package main

import (
	"context"
	"log"
	"net/http"

	"github.com/TaNiShK1911/NutriVision-App/config"
	"github.com/TaNiShK1911/NutriVision-App/controllers"
	"github.com/TaNiShK1911/NutriVision-App/routes"
	"github.com/TaNiShK1911/NutriVision-App/services"
	"github.com/TaNiShK1911/NutriVision-App/storage"
	"github.com/TaNiShK1911/NutriVision-App/utils"

	"github.com/rs/cors"
)

func main() {
	config.LoadEnv()
	config.InitDB()
	utils.InitS3()

	ctx := context.Background()
	store := storage.NewGormStore(config.DB)

	table, err := services.NewNutritionTable()
	if err != nil {
		log.Fatalf("nutrition table: %v", err)
	}

	hub := services.NewEventHub()
	meals, err := services.NewMealService(ctx, store, hub)
	if err != nil {
		log.Fatalf("meal ledger: %v", err)
	}
	profiles := services.NewProfileService(store)

	classifier, err := services.NewClassifier(ctx)
	if err != nil {
		log.Fatalf("classifier: %v", err)
	}
	advice := services.NewAdviceClient()

	r := routes.SetupRouter(
		controllers.NewProfileController(profiles),
		controllers.NewFoodController(classifier, table),
		controllers.NewMealController(meals, table, classifier),
		controllers.NewCoachingController(profiles, meals, advice),
		controllers.NewRealtimeController(hub),
	)

	// The mobile app calls cross-origin.
	handler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders: []string{"*"},
	}).Handler(r)

	port := config.Getenv("PORT", "8080")
	log.Printf("nutrivision core listening on :%s", port)
	log.Fatal(http.ListenAndServe(":"+port, handler))
}
