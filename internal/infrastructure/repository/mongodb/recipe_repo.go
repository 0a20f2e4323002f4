package mongodb

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/gvanmetre/BiteBook/internal/domain/contract"
	"github.com/gvanmetre/BiteBook/internal/domain/entity"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// RecipeRepository is the MongoDB implementation of IRecipeRepository.
// Recipes embed their ingredients and comments; the creator's username is
// resolved with a $lookup on reads and never stored on the recipe.
type RecipeRepository struct {
	collection *mongo.Collection
}

var _ contract.IRecipeRepository = (*RecipeRepository)(nil)

// NewRecipeRepository creates and returns a new RecipeRepository instance.
func NewRecipeRepository(db *mongo.Database) *RecipeRepository {
	return &RecipeRepository{
		collection: db.Collection("recipes"),
	}
}

// creatorLookupStages resolves creator_name from the users collection.
func creatorLookupStages() []bson.D {
	return []bson.D{
		{{Key: "$lookup", Value: bson.M{
			"from":         "users",
			"localField":   "creator_id",
			"foreignField": "_id",
			"as":           "creatorDetails",
		}}},
		{{Key: "$unwind", Value: bson.M{
			"path":                       "$creatorDetails",
			"preserveNullAndEmptyArrays": true,
		}}},
		{{Key: "$addFields", Value: bson.M{
			"creator_name": "$creatorDetails.username",
		}}},
		{{Key: "$project", Value: bson.M{"creatorDetails": 0}}},
	}
}

// aggregateRecipes runs the shared match + sort + creator lookup pipeline.
func (r *RecipeRepository) aggregateRecipes(ctx context.Context, filter bson.M) ([]*entity.Recipe, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: filter}},
		bson.D{{Key: "$sort", Value: bson.M{"created_at": -1}}},
	}
	for _, stage := range creatorLookupStages() {
		pipeline = append(pipeline, stage)
	}
	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve recipes: %w", err)
	}
	defer cursor.Close(ctx)

	var recipes []*entity.Recipe
	if err := cursor.All(ctx, &recipes); err != nil {
		return nil, fmt.Errorf("failed to decode recipes: %w", err)
	}
	return recipes, nil
}

// CreateRecipe inserts a new recipe document.
func (r *RecipeRepository) CreateRecipe(ctx context.Context, recipe *entity.Recipe) error {
	now := time.Now().UTC()
	recipe.CreatedAt = now
	recipe.UpdatedAt = now
	// creator_name is lookup-populated; never persist it.
	creatorName := recipe.CreatorName
	recipe.CreatorName = ""
	_, err := r.collection.InsertOne(ctx, recipe)
	recipe.CreatorName = creatorName
	if err != nil {
		return fmt.Errorf("failed to insert recipe: %w", err)
	}
	return nil
}

// GetRecipeByID retrieves one recipe with its creator name resolved.
func (r *RecipeRepository) GetRecipeByID(ctx context.Context, recipeID string) (*entity.Recipe, error) {
	recipes, err := r.aggregateRecipes(ctx, bson.M{"_id": recipeID})
	if err != nil {
		return nil, err
	}
	if len(recipes) == 0 {
		return nil, fmt.Errorf("recipe: %w", entity.ErrNotFound)
	}
	return recipes[0], nil
}

func (r *RecipeRepository) ListPublic(ctx context.Context) ([]*entity.Recipe, error) {
	return r.aggregateRecipes(ctx, bson.M{"public": true})
}

func (r *RecipeRepository) ListByCreator(ctx context.Context, creatorID string) ([]*entity.Recipe, error) {
	return r.aggregateRecipes(ctx, bson.M{"creator_id": creatorID})
}

func (r *RecipeRepository) ListPublicByCreator(ctx context.Context, creatorID string) ([]*entity.Recipe, error) {
	return r.aggregateRecipes(ctx, bson.M{"creator_id": creatorID, "public": true})
}

func (r *RecipeRepository) ListByIDs(ctx context.Context, ids []string) ([]*entity.Recipe, error) {
	if len(ids) == 0 {
		return []*entity.Recipe{}, nil
	}
	return r.aggregateRecipes(ctx, bson.M{"_id": bson.M{"$in": ids}})
}

func (r *RecipeRepository) ListLikedBy(ctx context.Context, userID string) ([]*entity.Recipe, error) {
	return r.aggregateRecipes(ctx, bson.M{"likes": userID, "public": true})
}

// UpdateRecipe writes the editable fields only. Likes and comments are
// updated through their own atomic operations and are never clobbered by a
// stale full-document write.
func (r *RecipeRepository) UpdateRecipe(ctx context.Context, recipe *entity.Recipe) error {
	update := bson.M{"$set": bson.M{
		"name":          recipe.Name,
		"type":          recipe.Type,
		"image":         recipe.Image,
		"ingredients":   recipe.Ingredients,
		"instructions":  recipe.Instructions,
		"servings":      recipe.Servings,
		"serving_size":  recipe.ServingSize,
		"calories":      recipe.Calories,
		"carbs":         recipe.Carbs,
		"fat":           recipe.Fat,
		"protein":       recipe.Protein,
		"fiber":         recipe.Fiber,
		"sugar":         recipe.Sugar,
		"saturated_fat": recipe.SaturatedFat,
		"trans_fat":     recipe.TransFat,
		"sodium":        recipe.Sodium,
		"potassium":     recipe.Potassium,
		"cholesterol":   recipe.Cholesterol,
		"calcium":       recipe.Calcium,
		"iron":          recipe.Iron,
		"public":        recipe.Public,
		"updated_at":    time.Now().UTC(),
	}}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": recipe.ID}, update)
	if err != nil {
		return fmt.Errorf("failed to update recipe: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("recipe: %w", entity.ErrNotFound)
	}
	return nil
}

func (r *RecipeRepository) DeleteRecipe(ctx context.Context, recipeID string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": recipeID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("recipe: %w", entity.ErrNotFound)
	}
	return nil
}

// DeleteByCreator removes all recipes owned by the user and returns the
// deleted IDs so callers can clean up shared references.
func (r *RecipeRepository) DeleteByCreator(ctx context.Context, creatorID string) ([]string, error) {
	filter := bson.M{"creator_id": creatorID}
	opts := options.Find().SetProjection(bson.M{"_id": 1})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []struct {
		ID string `bson:"_id"`
	}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	ids := make([]string, len(docs))
	for i, d := range docs {
		ids[i] = d.ID
	}
	if len(ids) == 0 {
		return ids, nil
	}
	if _, err := r.collection.DeleteMany(ctx, filter); err != nil {
		return nil, fmt.Errorf("failed to delete recipes: %w", err)
	}
	return ids, nil
}

// AddLike adds the user to the like set with $addToSet, so concurrent
// toggles cannot produce duplicates. Returns false when already present.
func (r *RecipeRepository) AddLike(ctx context.Context, recipeID, userID string) (bool, error) {
	update := bson.M{"$addToSet": bson.M{"likes": userID}}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": recipeID}, update)
	if err != nil {
		return false, err
	}
	if result.MatchedCount == 0 {
		return false, fmt.Errorf("recipe: %w", entity.ErrNotFound)
	}
	return result.ModifiedCount == 1, nil
}

// RemoveLike pulls the user from the like set; false when absent.
func (r *RecipeRepository) RemoveLike(ctx context.Context, recipeID, userID string) (bool, error) {
	update := bson.M{"$pull": bson.M{"likes": userID}}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": recipeID}, update)
	if err != nil {
		return false, err
	}
	if result.MatchedCount == 0 {
		return false, fmt.Errorf("recipe: %w", entity.ErrNotFound)
	}
	return result.ModifiedCount == 1, nil
}

// CountLikes returns the current like set size.
func (r *RecipeRepository) CountLikes(ctx context.Context, recipeID string) (int, error) {
	opts := options.FindOne().SetProjection(bson.M{"likes": 1})
	var doc struct {
		Likes []string `bson:"likes"`
	}
	err := r.collection.FindOne(ctx, bson.M{"_id": recipeID}, opts).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return 0, fmt.Errorf("recipe: %w", entity.ErrNotFound)
		}
		return 0, err
	}
	return len(doc.Likes), nil
}

func (r *RecipeRepository) AddComment(ctx context.Context, recipeID string, comment *entity.Comment) error {
	update := bson.M{"$push": bson.M{"comments": comment}}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": recipeID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("recipe: %w", entity.ErrNotFound)
	}
	return nil
}

func (r *RecipeRepository) UpdateCommentText(ctx context.Context, recipeID, commentID, text string) error {
	filter := bson.M{"_id": recipeID, "comments._id": commentID}
	update := bson.M{"$set": bson.M{"comments.$.text": text}}
	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("comment: %w", entity.ErrNotFound)
	}
	return nil
}

func (r *RecipeRepository) RemoveComment(ctx context.Context, recipeID, commentID string) error {
	filter := bson.M{"_id": recipeID}
	update := bson.M{"$pull": bson.M{"comments": bson.M{"_id": commentID}}}
	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("recipe: %w", entity.ErrNotFound)
	}
	if result.ModifiedCount == 0 {
		return fmt.Errorf("comment: %w", entity.ErrNotFound)
	}
	return nil
}

// AddCommentLike mirrors AddLike scoped to one embedded comment.
func (r *RecipeRepository) AddCommentLike(ctx context.Context, recipeID, commentID, userID string) (bool, error) {
	filter := bson.M{"_id": recipeID, "comments._id": commentID}
	update := bson.M{"$addToSet": bson.M{"comments.$.likes": userID}}
	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, err
	}
	if result.MatchedCount == 0 {
		return false, fmt.Errorf("comment: %w", entity.ErrNotFound)
	}
	return result.ModifiedCount == 1, nil
}

func (r *RecipeRepository) RemoveCommentLike(ctx context.Context, recipeID, commentID, userID string) (bool, error) {
	filter := bson.M{"_id": recipeID, "comments._id": commentID}
	update := bson.M{"$pull": bson.M{"comments.$.likes": userID}}
	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, err
	}
	if result.MatchedCount == 0 {
		return false, fmt.Errorf("comment: %w", entity.ErrNotFound)
	}
	return result.ModifiedCount == 1, nil
}

func (r *RecipeRepository) CountCommentLikes(ctx context.Context, recipeID, commentID string) (int, error) {
	filter := bson.M{"_id": recipeID, "comments._id": commentID}
	opts := options.FindOne().SetProjection(bson.M{"comments.$": 1})
	var doc struct {
		Comments []entity.Comment `bson:"comments"`
	}
	err := r.collection.FindOne(ctx, filter, opts).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return 0, fmt.Errorf("comment: %w", entity.ErrNotFound)
		}
		return 0, err
	}
	if len(doc.Comments) == 0 {
		return 0, fmt.Errorf("comment: %w", entity.ErrNotFound)
	}
	return len(doc.Comments[0].Likes), nil
}

// CommentsByAuthor unwinds every recipe's comments and keeps the ones the
// user wrote, newest first, joined with the parent recipe's name.
func (r *RecipeRepository) CommentsByAuthor(ctx context.Context, userID string) ([]*contract.AuthoredComment, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"comments.user_id": userID}}},
		bson.D{{Key: "$unwind", Value: "$comments"}},
		bson.D{{Key: "$match", Value: bson.M{"comments.user_id": userID}}},
		bson.D{{Key: "$sort", Value: bson.M{"comments.created_at": -1}}},
		bson.D{{Key: "$project", Value: bson.M{
			"_id":         0,
			"comment_id":  "$comments._id",
			"text":        "$comments.text",
			"recipe_id":   "$_id",
			"recipe_name": "$name",
			"created_at":  "$comments.created_at",
		}}},
	}
	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve comments: %w", err)
	}
	defer cursor.Close(ctx)

	var comments []*contract.AuthoredComment
	if err := cursor.All(ctx, &comments); err != nil {
		return nil, fmt.Errorf("failed to decode comments: %w", err)
	}
	return comments, nil
}

func (r *RecipeRepository) distinctStrings(ctx context.Context, field string) ([]string, error) {
	values, err := r.collection.Distinct(ctx, field, bson.M{"public": true})
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (r *RecipeRepository) DistinctPublicIngredients(ctx context.Context) ([]string, error) {
	return r.distinctStrings(ctx, "ingredients.name")
}

func (r *RecipeRepository) DistinctPublicTypes(ctx context.Context) ([]string, error) {
	return r.distinctStrings(ctx, "type")
}
