package entity_test

import (
	"testing"

	"github.com/gvanmetre/BiteBook/internal/domain/entity"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeIngredientName(t *testing.T) {
	cases := map[string]string{
		" OLIVE oil ":    "Olive Oil",
		"egg":            "Egg",
		"BROWN SUGAR":    "Brown Sugar",
		"all-purpose flour": "All-purpose Flour",
		"  milk":          "Milk",
		"":                "",
	}
	for in, want := range cases {
		assert.Equal(t, want, entity.NormalizeIngredientName(in))
	}
}

func TestNormalizeIngredientNameIsIdempotent(t *testing.T) {
	once := entity.NormalizeIngredientName(" OLIVE oil ")
	assert.Equal(t, once, entity.NormalizeIngredientName(once))
}

func TestNormalizeIngredients(t *testing.T) {
	ingredients := []entity.Ingredient{
		{Name: "olive OIL", Amount: 2, Unit: "tbsp"},
		{Name: " Salt", Amount: 1, Unit: "tsp"},
	}
	normalized := entity.NormalizeIngredients(ingredients)
	assert.Equal(t, "Olive Oil", normalized[0].Name)
	assert.Equal(t, "Salt", normalized[1].Name)
}

func TestRecipeLikeCountDerivedFromSet(t *testing.T) {
	r := &entity.Recipe{Likes: []string{"u1", "u2", "u3"}}
	assert.Equal(t, 3, r.LikeCount())
	assert.True(t, r.LikedBy("u2"))
	assert.False(t, r.LikedBy("u4"))

	r.Likes = nil
	assert.Equal(t, 0, r.LikeCount())
	assert.False(t, r.LikedBy("u1"))
}

func TestRecipeCommentByID(t *testing.T) {
	r := &entity.Recipe{Comments: []entity.Comment{
		{ID: "c1", Text: "first"},
		{ID: "c2", Text: "second"},
	}}

	c := r.CommentByID("c2")
	assert.NotNil(t, c)
	assert.Equal(t, "second", c.Text)

	// The returned pointer addresses the embedded element.
	c.Text = "edited"
	assert.Equal(t, "edited", r.Comments[1].Text)

	assert.Nil(t, r.CommentByID("missing"))
}
