package usecase

import (
	"sort"
	"strings"
	"time"

	"github.com/gvanmetre/BiteBook/internal/domain/entity"
)

// SortMode selects the presentation-layer ordering of a recipe card list.
type SortMode string

const (
	SortAlphabetical SortMode = "alpha"
	SortMostLiked    SortMode = "likes"
	SortMostRecent   SortMode = "recent"
)

// ParseSortMode maps a query parameter to a sort mode, defaulting to
// most-recent.
func ParseSortMode(raw string) SortMode {
	switch SortMode(raw) {
	case SortAlphabetical, SortMostLiked:
		return SortMode(raw)
	default:
		return SortMostRecent
	}
}

// RecipeCard is the display metadata one rendered result card carries.
type RecipeCard struct {
	ID        string
	Name      string
	Type      string
	Creator   string
	Image     string
	Calories  float64
	LikeCount int
	CreatedAt time.Time
}

// CardsFromRecipes projects recipes onto their card representation,
// preserving order.
func CardsFromRecipes(recipes []*entity.Recipe) []RecipeCard {
	cards := make([]RecipeCard, len(recipes))
	for i, r := range recipes {
		cards[i] = RecipeCard{
			ID:        r.ID,
			Name:      r.Name,
			Type:      r.Type,
			Creator:   r.CreatorName,
			Image:     r.Image,
			Calories:  r.Calories,
			LikeCount: r.LikeCount(),
			CreatedAt: r.CreatedAt,
		}
	}
	return cards
}

// SortCards reorders cards in place. The sort is stable: cards with equal
// keys keep their relative input order.
func SortCards(cards []RecipeCard, mode SortMode) {
	switch mode {
	case SortAlphabetical:
		sort.SliceStable(cards, func(i, j int) bool {
			return strings.ToLower(cards[i].Name) < strings.ToLower(cards[j].Name)
		})
	case SortMostLiked:
		sort.SliceStable(cards, func(i, j int) bool {
			return cards[i].LikeCount > cards[j].LikeCount
		})
	default: // most recent
		sort.SliceStable(cards, func(i, j int) bool {
			return cards[i].CreatedAt.After(cards[j].CreatedAt)
		})
	}
}
