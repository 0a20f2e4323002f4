package entity

import (
	"strings"
	"time"
	"unicode"
)

// Ingredient is a single entry in a recipe's ingredient list.
type Ingredient struct {
	Name   string  `bson:"name" json:"name"`
	Amount float64 `bson:"amount" json:"amount"`
	Unit   string  `bson:"unit" json:"unit"`
}

// Comment is embedded in its parent recipe and addressable by ID within it.
type Comment struct {
	ID        string    `bson:"_id" json:"_id"`
	UserID    string    `bson:"user_id" json:"user_id"`
	Username  string    `bson:"username" json:"username"`
	AvatarURL string    `bson:"avatar_url,omitempty" json:"avatar_url,omitempty"`
	Text      string    `bson:"text" json:"text"`
	Likes     []string  `bson:"likes" json:"likes"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// LikeCount is always derived from the like set, never stored.
func (c *Comment) LikeCount() int {
	return len(c.Likes)
}

// Recipe represents a recipe document with embedded ingredients and comments.
type Recipe struct {
	ID        string `bson:"_id,omitempty" json:"id"`
	Name      string `bson:"name" json:"name"`
	Type      string `bson:"type" json:"type"`
	CreatorID string `bson:"creator_id" json:"creator_id"`
	// CreatorName is populated by a $lookup on reads; it is not stored.
	CreatorName string `bson:"creator_name,omitempty" json:"creator,omitempty"`
	Image       string `bson:"image" json:"image"`

	Ingredients  []Ingredient `bson:"ingredients" json:"ingredients"`
	Instructions string       `bson:"instructions" json:"instructions"`
	Servings     *float64     `bson:"servings,omitempty" json:"servings,omitempty"`
	ServingSize  string       `bson:"serving_size" json:"serving_size"`

	Calories float64 `bson:"calories" json:"calories"`
	Carbs    float64 `bson:"carbs" json:"carbs"`
	Fat      float64 `bson:"fat" json:"fat"`
	Protein  float64 `bson:"protein" json:"protein"`

	Fiber        *float64 `bson:"fiber,omitempty" json:"fiber,omitempty"`
	Sugar        *float64 `bson:"sugar,omitempty" json:"sugar,omitempty"`
	SaturatedFat *float64 `bson:"saturated_fat,omitempty" json:"saturated_fat,omitempty"`
	TransFat     *float64 `bson:"trans_fat,omitempty" json:"trans_fat,omitempty"`
	Sodium       *float64 `bson:"sodium,omitempty" json:"sodium,omitempty"`
	Potassium    *float64 `bson:"potassium,omitempty" json:"potassium,omitempty"`
	Cholesterol  *float64 `bson:"cholesterol,omitempty" json:"cholesterol,omitempty"`
	Calcium      *float64 `bson:"calcium,omitempty" json:"calcium,omitempty"`
	Iron         *float64 `bson:"iron,omitempty" json:"iron,omitempty"`

	Public bool `bson:"public" json:"public"`
	// Likes is a set of user IDs. The like count is always len(Likes);
	// no denormalized counter is stored.
	Likes    []string  `bson:"likes" json:"likes"`
	Comments []Comment `bson:"comments" json:"comments"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// LikeCount is always derived from the like set, never stored.
func (r *Recipe) LikeCount() int {
	return len(r.Likes)
}

// LikedBy reports whether the given user is in the recipe's like set.
func (r *Recipe) LikedBy(userID string) bool {
	for _, id := range r.Likes {
		if id == userID {
			return true
		}
	}
	return false
}

// CommentByID returns the embedded comment with the given ID, or nil.
func (r *Recipe) CommentByID(commentID string) *Comment {
	for i := range r.Comments {
		if r.Comments[i].ID == commentID {
			return &r.Comments[i]
		}
	}
	return nil
}

// NormalizeIngredientName canonicalizes an ingredient name: surrounding
// whitespace is trimmed, the name is lower-cased, and the first letter of
// each word is upper-cased. The transformation is idempotent.
func NormalizeIngredientName(name string) string {
	lowered := strings.ToLower(strings.TrimSpace(name))
	runes := []rune(lowered)
	startOfWord := true
	for i, r := range runes {
		if unicode.IsSpace(r) {
			startOfWord = true
			continue
		}
		if startOfWord {
			runes[i] = unicode.ToUpper(r)
			startOfWord = false
		}
	}
	return string(runes)
}

// NormalizeIngredients applies NormalizeIngredientName to every ingredient.
func NormalizeIngredients(ingredients []Ingredient) []Ingredient {
	for i := range ingredients {
		ingredients[i].Name = NormalizeIngredientName(ingredients[i].Name)
	}
	return ingredients
}
