package usecase

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/gvanmetre/BiteBook/internal/domain/entity"
)

// FilterCriteria is the optional predicate set applied to a recipe list.
// Every field is independent; set fields are AND-combined. Nil numeric
// bounds mean "no bound".
type FilterCriteria struct {
	CreatorName    string
	IngredientTags string
	NameContains   string
	TypeTags       string

	CaloriesMax *float64
	CaloriesMin *float64
	FatMax      *float64
	FatMin      *float64
	CarbsMax    *float64
	CarbsMin    *float64
	ProteinMax  *float64
	ProteinMin  *float64
}

// ParseFilterCriteria builds criteria from request query values. Numeric
// bounds that are absent or do not parse as finite numbers are dropped
// silently; a malformed bound is never an error.
func ParseFilterCriteria(values url.Values) FilterCriteria {
	return FilterCriteria{
		CreatorName:    values.Get("creator"),
		IngredientTags: values.Get("ingredient"),
		NameContains:   values.Get("name"),
		TypeTags:       values.Get("type"),
		CaloriesMax:    parseBound(values.Get("caloriesLessThan")),
		CaloriesMin:    parseBound(values.Get("caloriesGreaterThan")),
		FatMax:         parseBound(values.Get("fatLessThan")),
		FatMin:         parseBound(values.Get("fatGreaterThan")),
		CarbsMax:       parseBound(values.Get("carbsLessThan")),
		CarbsMin:       parseBound(values.Get("carbsGreaterThan")),
		ProteinMax:     parseBound(values.Get("proteinLessThan")),
		ProteinMin:     parseBound(values.Get("proteinGreaterThan")),
	}
}

func parseBound(raw string) *float64 {
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// splitTags splits a comma-separated tag list into trimmed, lower-cased
// tokens, dropping empties.
func splitTags(raw string) []string {
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.ToLower(strings.TrimSpace(p)); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// FilterRecipes returns the recipes matching every set criterion, preserving
// the input order. The engine itself performs no reordering.
func FilterRecipes(recipes []*entity.Recipe, c FilterCriteria) []*entity.Recipe {
	out := make([]*entity.Recipe, 0, len(recipes))
	ingredientTags := splitTags(c.IngredientTags)
	typeTags := splitTags(c.TypeTags)
	for _, r := range recipes {
		if matchesCriteria(r, c, ingredientTags, typeTags) {
			out = append(out, r)
		}
	}
	return out
}

func matchesCriteria(r *entity.Recipe, c FilterCriteria, ingredientTags, typeTags []string) bool {
	if c.CreatorName != "" &&
		!strings.Contains(strings.ToLower(r.CreatorName), strings.ToLower(c.CreatorName)) {
		return false
	}
	if c.NameContains != "" &&
		!strings.Contains(strings.ToLower(r.Name), strings.ToLower(c.NameContains)) {
		return false
	}
	// Every ingredient tag must match at least one ingredient name.
	for _, tag := range ingredientTags {
		if !anyIngredientContains(r.Ingredients, tag) {
			return false
		}
	}
	// Every type tag must match the recipe's single type field. With more
	// than one tag this only passes when the type string contains them all;
	// that quirk is intentional and kept.
	recipeType := strings.ToLower(r.Type)
	for _, tag := range typeTags {
		if !strings.Contains(recipeType, tag) {
			return false
		}
	}
	if !withinBounds(r.Calories, c.CaloriesMin, c.CaloriesMax) {
		return false
	}
	if !withinBounds(r.Fat, c.FatMin, c.FatMax) {
		return false
	}
	if !withinBounds(r.Carbs, c.CarbsMin, c.CarbsMax) {
		return false
	}
	if !withinBounds(r.Protein, c.ProteinMin, c.ProteinMax) {
		return false
	}
	return true
}

func anyIngredientContains(ingredients []entity.Ingredient, tag string) bool {
	for _, ing := range ingredients {
		if strings.Contains(strings.ToLower(ing.Name), tag) {
			return true
		}
	}
	return false
}

func withinBounds(v float64, min, max *float64) bool {
	if min != nil && v < *min {
		return false
	}
	if max != nil && v > *max {
		return false
	}
	return true
}
