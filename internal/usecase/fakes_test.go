package usecase_test

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/gvanmetre/BiteBook/internal/domain/contract"
	"github.com/gvanmetre/BiteBook/internal/domain/entity"
	"github.com/gvanmetre/BiteBook/internal/usecase"
)

// ---- recipe repository fake -------------------------------------------------

type fakeRecipeRepo struct {
	recipes map[string]*entity.Recipe
	order   []string
	users   *fakeUserRepo
}

var _ contract.IRecipeRepository = (*fakeRecipeRepo)(nil)

func newFakeRecipeRepo(users *fakeUserRepo) *fakeRecipeRepo {
	return &fakeRecipeRepo{recipes: map[string]*entity.Recipe{}, users: users}
}

func (f *fakeRecipeRepo) get(id string) (*entity.Recipe, error) {
	r, ok := f.recipes[id]
	if !ok {
		return nil, fmt.Errorf("recipe: %w", entity.ErrNotFound)
	}
	return r, nil
}

func (f *fakeRecipeRepo) withCreatorName(r *entity.Recipe) *entity.Recipe {
	clone := *r
	clone.Comments = append([]entity.Comment{}, r.Comments...)
	clone.Likes = append([]string{}, r.Likes...)
	if f.users != nil {
		if u, ok := f.users.byID[r.CreatorID]; ok {
			clone.CreatorName = u.Username
		}
	}
	return &clone
}

func (f *fakeRecipeRepo) CreateRecipe(ctx context.Context, recipe *entity.Recipe) error {
	now := time.Now().UTC()
	if recipe.CreatedAt.IsZero() {
		recipe.CreatedAt = now
	}
	recipe.UpdatedAt = now
	f.recipes[recipe.ID] = recipe
	f.order = append(f.order, recipe.ID)
	return nil
}

func (f *fakeRecipeRepo) GetRecipeByID(ctx context.Context, recipeID string) (*entity.Recipe, error) {
	r, err := f.get(recipeID)
	if err != nil {
		return nil, err
	}
	return f.withCreatorName(r), nil
}

func (f *fakeRecipeRepo) list(match func(*entity.Recipe) bool) []*entity.Recipe {
	var out []*entity.Recipe
	for _, id := range f.order {
		r := f.recipes[id]
		if match(r) {
			out = append(out, f.withCreatorName(r))
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (f *fakeRecipeRepo) ListPublic(ctx context.Context) ([]*entity.Recipe, error) {
	return f.list(func(r *entity.Recipe) bool { return r.Public }), nil
}

func (f *fakeRecipeRepo) ListByCreator(ctx context.Context, creatorID string) ([]*entity.Recipe, error) {
	return f.list(func(r *entity.Recipe) bool { return r.CreatorID == creatorID }), nil
}

func (f *fakeRecipeRepo) ListPublicByCreator(ctx context.Context, creatorID string) ([]*entity.Recipe, error) {
	return f.list(func(r *entity.Recipe) bool { return r.CreatorID == creatorID && r.Public }), nil
}

func (f *fakeRecipeRepo) ListByIDs(ctx context.Context, ids []string) ([]*entity.Recipe, error) {
	wanted := map[string]bool{}
	for _, id := range ids {
		wanted[id] = true
	}
	return f.list(func(r *entity.Recipe) bool { return wanted[r.ID] }), nil
}

func (f *fakeRecipeRepo) ListLikedBy(ctx context.Context, userID string) ([]*entity.Recipe, error) {
	return f.list(func(r *entity.Recipe) bool { return r.Public && r.LikedBy(userID) }), nil
}

func (f *fakeRecipeRepo) UpdateRecipe(ctx context.Context, recipe *entity.Recipe) error {
	stored, err := f.get(recipe.ID)
	if err != nil {
		return err
	}
	likes, comments := stored.Likes, stored.Comments
	*stored = *recipe
	stored.CreatorName = ""
	stored.Likes = likes
	stored.Comments = comments
	stored.UpdatedAt = time.Now().UTC()
	return nil
}

func (f *fakeRecipeRepo) DeleteRecipe(ctx context.Context, recipeID string) error {
	if _, err := f.get(recipeID); err != nil {
		return err
	}
	delete(f.recipes, recipeID)
	return nil
}

func (f *fakeRecipeRepo) DeleteByCreator(ctx context.Context, creatorID string) ([]string, error) {
	var ids []string
	for id, r := range f.recipes {
		if r.CreatorID == creatorID {
			ids = append(ids, id)
		}
	}
	for _, id := range ids {
		delete(f.recipes, id)
	}
	return ids, nil
}

func (f *fakeRecipeRepo) AddLike(ctx context.Context, recipeID, userID string) (bool, error) {
	r, err := f.get(recipeID)
	if err != nil {
		return false, err
	}
	if r.LikedBy(userID) {
		return false, nil
	}
	r.Likes = append(r.Likes, userID)
	return true, nil
}

func (f *fakeRecipeRepo) RemoveLike(ctx context.Context, recipeID, userID string) (bool, error) {
	r, err := f.get(recipeID)
	if err != nil {
		return false, err
	}
	for i, id := range r.Likes {
		if id == userID {
			r.Likes = append(r.Likes[:i], r.Likes[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRecipeRepo) CountLikes(ctx context.Context, recipeID string) (int, error) {
	r, err := f.get(recipeID)
	if err != nil {
		return 0, err
	}
	return len(r.Likes), nil
}

func (f *fakeRecipeRepo) AddComment(ctx context.Context, recipeID string, comment *entity.Comment) error {
	r, err := f.get(recipeID)
	if err != nil {
		return err
	}
	r.Comments = append(r.Comments, *comment)
	return nil
}

func (f *fakeRecipeRepo) findComment(recipeID, commentID string) (*entity.Recipe, *entity.Comment, error) {
	r, err := f.get(recipeID)
	if err != nil {
		return nil, nil, err
	}
	c := r.CommentByID(commentID)
	if c == nil {
		return nil, nil, fmt.Errorf("comment: %w", entity.ErrNotFound)
	}
	return r, c, nil
}

func (f *fakeRecipeRepo) UpdateCommentText(ctx context.Context, recipeID, commentID, text string) error {
	_, c, err := f.findComment(recipeID, commentID)
	if err != nil {
		return err
	}
	c.Text = text
	return nil
}

func (f *fakeRecipeRepo) RemoveComment(ctx context.Context, recipeID, commentID string) error {
	r, _, err := f.findComment(recipeID, commentID)
	if err != nil {
		return err
	}
	for i := range r.Comments {
		if r.Comments[i].ID == commentID {
			r.Comments = append(r.Comments[:i], r.Comments[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeRecipeRepo) AddCommentLike(ctx context.Context, recipeID, commentID, userID string) (bool, error) {
	_, c, err := f.findComment(recipeID, commentID)
	if err != nil {
		return false, err
	}
	for _, id := range c.Likes {
		if id == userID {
			return false, nil
		}
	}
	c.Likes = append(c.Likes, userID)
	return true, nil
}

func (f *fakeRecipeRepo) RemoveCommentLike(ctx context.Context, recipeID, commentID, userID string) (bool, error) {
	_, c, err := f.findComment(recipeID, commentID)
	if err != nil {
		return false, err
	}
	for i, id := range c.Likes {
		if id == userID {
			c.Likes = append(c.Likes[:i], c.Likes[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRecipeRepo) CountCommentLikes(ctx context.Context, recipeID, commentID string) (int, error) {
	_, c, err := f.findComment(recipeID, commentID)
	if err != nil {
		return 0, err
	}
	return len(c.Likes), nil
}

func (f *fakeRecipeRepo) CommentsByAuthor(ctx context.Context, userID string) ([]*contract.AuthoredComment, error) {
	var out []*contract.AuthoredComment
	for _, id := range f.order {
		r, ok := f.recipes[id]
		if !ok {
			continue
		}
		for _, c := range r.Comments {
			if c.UserID == userID {
				out = append(out, &contract.AuthoredComment{
					CommentID:  c.ID,
					Text:       c.Text,
					RecipeID:   r.ID,
					RecipeName: r.Name,
					CreatedAt:  c.CreatedAt,
				})
			}
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeRecipeRepo) DistinctPublicIngredients(ctx context.Context) ([]string, error) {
	seen := map[string]bool{}
	for _, r := range f.recipes {
		if !r.Public {
			continue
		}
		for _, ing := range r.Ingredients {
			seen[ing.Name] = true
		}
	}
	var out []string
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out, nil
}

func (f *fakeRecipeRepo) DistinctPublicTypes(ctx context.Context) ([]string, error) {
	seen := map[string]bool{}
	for _, r := range f.recipes {
		if r.Public {
			seen[r.Type] = true
		}
	}
	var out []string
	for t := range seen {
		out = append(out, t)
	}
	sort.Strings(out)
	return out, nil
}

// ---- user repository fake ---------------------------------------------------

type fakeUserRepo struct {
	byID map[string]*entity.User
}

var _ contract.IUserRepository = (*fakeUserRepo)(nil)

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: map[string]*entity.User{}}
}

func (f *fakeUserRepo) CreateUser(ctx context.Context, user *entity.User) error {
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now
	f.byID[user.ID] = user
	return nil
}

func (f *fakeUserRepo) GetUserByID(ctx context.Context, id string) (*entity.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, fmt.Errorf("user: %w", entity.ErrNotFound)
	}
	return u, nil
}

func (f *fakeUserRepo) GetUserByUsername(ctx context.Context, username string) (*entity.User, error) {
	for _, u := range f.byID {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, fmt.Errorf("user: %w", entity.ErrNotFound)
}

func (f *fakeUserRepo) GetUserByEmail(ctx context.Context, email string) (*entity.User, error) {
	for _, u := range f.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, fmt.Errorf("user: %w", entity.ErrNotFound)
}

func (f *fakeUserRepo) UpdateUser(ctx context.Context, user *entity.User) (*entity.User, error) {
	if _, ok := f.byID[user.ID]; !ok {
		return nil, fmt.Errorf("user: %w", entity.ErrNotFound)
	}
	user.UpdatedAt = time.Now().UTC()
	f.byID[user.ID] = user
	return user, nil
}

func (f *fakeUserRepo) UpdateUserPassword(ctx context.Context, id string, hashedPassword string) error {
	u, ok := f.byID[id]
	if !ok {
		return fmt.Errorf("user: %w", entity.ErrNotFound)
	}
	u.PasswordHash = hashedPassword
	return nil
}

func (f *fakeUserRepo) DeleteUser(ctx context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return fmt.Errorf("user: %w", entity.ErrNotFound)
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeUserRepo) ListUsers(ctx context.Context) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range f.byID {
		out = append(out, u)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

func (f *fakeUserRepo) AddSharedRecipe(ctx context.Context, userID, recipeID string) error {
	u, ok := f.byID[userID]
	if !ok {
		return fmt.Errorf("user: %w", entity.ErrNotFound)
	}
	for _, id := range u.SharedRecipeIDs {
		if id == recipeID {
			return nil
		}
	}
	u.SharedRecipeIDs = append(u.SharedRecipeIDs, recipeID)
	return nil
}

func (f *fakeUserRepo) RemoveSharedRecipeFromAll(ctx context.Context, recipeID string) error {
	for _, u := range f.byID {
		for i, id := range u.SharedRecipeIDs {
			if id == recipeID {
				u.SharedRecipeIDs = append(u.SharedRecipeIDs[:i], u.SharedRecipeIDs[i+1:]...)
				break
			}
		}
	}
	return nil
}

// ---- token repository fake --------------------------------------------------

type fakeTokenRepo struct {
	tokens map[string]*entity.Token
}

var _ contract.ITokenRepository = (*fakeTokenRepo)(nil)

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{tokens: map[string]*entity.Token{}}
}

func (f *fakeTokenRepo) CreateToken(ctx context.Context, token *entity.Token) error {
	if token.CreatedAt.IsZero() {
		token.CreatedAt = time.Now().UTC()
	}
	f.tokens[token.ID] = token
	return nil
}

func (f *fakeTokenRepo) GetTokenByID(ctx context.Context, id string) (*entity.Token, error) {
	t, ok := f.tokens[id]
	if !ok {
		return nil, fmt.Errorf("token: %w", entity.ErrNotFound)
	}
	return t, nil
}

func (f *fakeTokenRepo) GetTokenByUserID(ctx context.Context, userID string) (*entity.Token, error) {
	for _, t := range f.tokens {
		if t.UserID == userID {
			return t, nil
		}
	}
	return nil, fmt.Errorf("token: %w", entity.ErrNotFound)
}

func (f *fakeTokenRepo) GetTokenByVerifier(ctx context.Context, verifier string) (*entity.Token, error) {
	for _, t := range f.tokens {
		if t.Verifier == verifier {
			return t, nil
		}
	}
	return nil, fmt.Errorf("token: %w", entity.ErrNotFound)
}

func (f *fakeTokenRepo) UpdateToken(ctx context.Context, tokenID string, tokenHash string, expiry time.Time) error {
	t, ok := f.tokens[tokenID]
	if !ok {
		return fmt.Errorf("token: %w", entity.ErrNotFound)
	}
	t.TokenHash = tokenHash
	t.ExpiresAt = expiry
	return nil
}

func (f *fakeTokenRepo) RevokeToken(ctx context.Context, id string) error {
	t, ok := f.tokens[id]
	if !ok {
		return fmt.Errorf("token: %w", entity.ErrNotFound)
	}
	t.Revoke = true
	return nil
}

func (f *fakeTokenRepo) RevokeAllTokensForUser(ctx context.Context, userID string, tokenType entity.TokenType) error {
	for _, t := range f.tokens {
		if t.UserID == userID && t.TokenType == tokenType {
			t.Revoke = true
		}
	}
	return nil
}

// ---- service fakes ----------------------------------------------------------

type fakeHasher struct{}

func (fakeHasher) HashPassword(password string) (string, error) { return "h:" + password, nil }
func (fakeHasher) ComparePasswordHash(password, hashedPassword string) error {
	if "h:"+password != hashedPassword {
		return fmt.Errorf("password verification failed")
	}
	return nil
}
func (fakeHasher) HashString(s string) string    { return "s:" + s }
func (fakeHasher) CheckHash(s, hash string) bool { return "s:"+s == hash }

type fakeUUIDGen struct{ n int }

func (g *fakeUUIDGen) NewUUID() string {
	g.n++
	return fmt.Sprintf("uuid-%d", g.n)
}

type fakeRandomGen struct{ n int }

func (g *fakeRandomGen) GenerateRandomToken(size int) (string, error) {
	g.n++
	return fmt.Sprintf("rand-%d-%d", size, g.n), nil
}

type fakeLogger struct{}

func (fakeLogger) Debugf(format string, args ...interface{}) {}
func (fakeLogger) Infof(format string, args ...interface{})  {}
func (fakeLogger) Warnf(format string, args ...interface{})  {}
func (fakeLogger) Errorf(format string, args ...interface{}) {}
func (fakeLogger) Fatalf(format string, args ...interface{}) {}

type fakeConfig struct {
	sendActivationEmail bool
}

func (c fakeConfig) GetAppBaseURL() string                          { return "http://localhost:8080" }
func (c fakeConfig) GetSendActivationEmail() bool                   { return c.sendActivationEmail }
func (c fakeConfig) GetEmailVerificationTokenExpiry() time.Duration { return 24 * time.Hour }
func (c fakeConfig) GetSessionTokenExpiry() time.Duration           { return 168 * time.Hour }
func (c fakeConfig) GetImagesDir() string                           { return "./public/images" }
func (c fakeConfig) GetMaxUploadBytes() int64                       { return 1 << 20 }

type fakeValidator struct{}

func (fakeValidator) ValidateEmail(email string) error {
	if !strings.Contains(email, "@") {
		return fmt.Errorf("email address is not valid")
	}
	return nil
}

func (fakeValidator) ValidatePasswordStrength(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters long")
	}
	return nil
}

type fakeJWT struct{}

var _ usecase.JWTService = (*fakeJWT)(nil)

func (fakeJWT) GenerateSessionToken(userID string, admin bool) (string, error) {
	return fmt.Sprintf("tok:%s:%t", userID, admin), nil
}

func (fakeJWT) ParseSessionToken(token string) (*usecase.SessionClaims, error) {
	rest, ok := strings.CutPrefix(token, "tok:")
	if !ok {
		return nil, fmt.Errorf("invalid session token")
	}
	parts := strings.Split(rest, ":")
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid session token")
	}
	return &usecase.SessionClaims{UserID: parts[0], Admin: parts[1] == "true"}, nil
}

type fakeMailService struct {
	sent []string
}

func (m *fakeMailService) SendEmail(ctx context.Context, to, subject, body string) error {
	m.sent = append(m.sent, to+"|"+subject+"|"+body)
	return nil
}
