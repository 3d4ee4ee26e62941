package services

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"

	"github.com/TaNiShK1911/NutriVision-App/models"

	"gopkg.in/yaml.v3"
)

//go:embed nutrition.yaml
var nutritionYAML []byte

// FallbackFact is substituted for labels missing from the table. A miss is
// not an error: classification must never fail a meal log because nutrition
// data is missing.
var FallbackFact = models.FoodNutritionFact{Calories: 250, Unit: "serving (est)"}

// NutritionTable is the static food-label lookup, loaded once from the
// embedded YAML document and never mutated afterwards.
type NutritionTable struct {
	facts map[string]models.FoodNutritionFact
}

type nutritionFile struct {
	Foods []models.FoodNutritionFact `yaml:"foods"`
}

func NewNutritionTable() (*NutritionTable, error) {
	var file nutritionFile
	if err := yaml.Unmarshal(nutritionYAML, &file); err != nil {
		return nil, fmt.Errorf("parse nutrition table: %w", err)
	}
	if len(file.Foods) == 0 {
		return nil, fmt.Errorf("nutrition table is empty")
	}
	facts := make(map[string]models.FoodNutritionFact, len(file.Foods))
	for _, f := range file.Foods {
		facts[NormalizeLabel(f.Label)] = f
	}
	return &NutritionTable{facts: facts}, nil
}

// NormalizeLabel lower-cases a label and collapses whitespace runs to
// underscores, matching the classifier's label vocabulary.
func NormalizeLabel(label string) string {
	return strings.Join(strings.Fields(strings.ToLower(label)), "_")
}

// FormatLabel turns a classifier label into a display name:
// "chicken_quesadilla" becomes "Chicken Quesadilla".
func FormatLabel(label string) string {
	parts := strings.Split(label, "_")
	for i, p := range parts {
		if p == "" {
			continue
		}
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, " ")
}

// Resolve looks up a label, returning the estimated-serving fallback fact on
// a miss. Pure and deterministic.
func (t *NutritionTable) Resolve(label string) models.FoodNutritionFact {
	key := NormalizeLabel(label)
	if f, ok := t.facts[key]; ok {
		return f
	}
	f := FallbackFact
	f.Label = key
	return f
}

// Labels returns the known label vocabulary, sorted.
func (t *NutritionTable) Labels() []string {
	out := make([]string, 0, len(t.facts))
	for k := range t.facts {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
