package models

// FoodNutritionFact is one row of the static nutrition table: the calories
// for a single serving unit of a recognized food label. The table is loaded
// once and never mutated at runtime.
type FoodNutritionFact struct {
	Label    string  `json:"label" yaml:"label"`
	Calories float64 `json:"calories" yaml:"calories"`
	Unit     string  `json:"unit" yaml:"unit"`
}
