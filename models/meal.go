package models

// MealLogEntry is one logged meal. Created exactly once with a freshly
// generated id, immutable thereafter; deletion by id is the only mutation
// path, and only the meal ledger touches the collection.
type MealLogEntry struct {
	ID        string  `json:"id"`
	Date      string  `json:"date"` // YYYY-MM-DD
	Time      string  `json:"time"` // HH:MM
	FoodLabel string  `json:"food_label"`
	Calories  float64 `json:"calories"` // already scaled by quantity
	Quantity  int     `json:"quantity"`
	Unit      string  `json:"unit"`
	PhotoURL  string  `json:"photo_url,omitempty"`
}

// DailySummary is a projection over one day's entries, recomputed on demand
// from the ledger and never stored, so it cannot go stale. Macro totals are a
// fixed-ratio estimate; no per-food macro data exists in this system.
type DailySummary struct {
	Date          string         `json:"date"`
	TotalCalories float64        `json:"total_calories"`
	TotalProtein  int            `json:"total_protein_g"`
	TotalCarbs    int            `json:"total_carbs_g"`
	TotalFats     int            `json:"total_fats_g"`
	Meals         []MealLogEntry `json:"meals"`
}
