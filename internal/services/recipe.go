package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/foodgramapp/foodgram-backend/internal/apierr"
	"github.com/foodgramapp/foodgram-backend/internal/logger"
	"github.com/foodgramapp/foodgram-backend/internal/repos"
	"github.com/foodgramapp/foodgram-backend/internal/requestdata"
	"github.com/foodgramapp/foodgram-backend/internal/types"
)

const (
	minCookingTime = 1
	maxCookingTime = 720
)

// IngredientLineInput is one submitted (ingredient, amount) pair.
type IngredientLineInput struct {
	IngredientID uuid.UUID `json:"id"`
	Amount       int       `json:"amount"`
}

// RecipeInput is the complete desired state of a recipe. Updates are
// wholesale: callers always submit the full tag set and line set, never a
// patch.
type RecipeInput struct {
	Name        string                `json:"name"`
	Text        string                `json:"text"`
	Image       string                `json:"image"`
	CookingTime int                   `json:"cooking_time"`
	TagIDs      []uuid.UUID           `json:"tags"`
	Ingredients []IngredientLineInput `json:"ingredients"`
}

// RecipeListParams narrows the recipe listing; the favorited/in-cart
// filters apply to the requesting user.
type RecipeListParams struct {
	AuthorID         *uuid.UUID
	IsFavorited      bool
	IsInShoppingCart bool
	TagSlugs         []string
	Limit            int
	Offset           int
}

type RecipeService interface {
	Create(ctx context.Context, input RecipeInput) (*types.RecipeView, error)
	Update(ctx context.Context, recipeID uuid.UUID, input RecipeInput) (*types.RecipeView, error)
	Delete(ctx context.Context, recipeID uuid.UUID) error
	GetByID(ctx context.Context, recipeID uuid.UUID) (*types.RecipeView, error)
	List(ctx context.Context, params RecipeListParams) ([]types.RecipeView, error)
}

type recipeService struct {
	db             *gorm.DB
	log            *logger.Logger
	recipeRepo     repos.RecipeRepo
	lineRepo       repos.IngredientLineRepo
	tagRepo        repos.TagRepo
	ingredientRepo repos.IngredientRepo
	favoriteRepo   repos.FavoriteRepo
	cartRepo       repos.ShoppingCartRepo
	followRepo     repos.FollowRepo
}

func NewRecipeService(
	db *gorm.DB,
	log *logger.Logger,
	recipeRepo repos.RecipeRepo,
	lineRepo repos.IngredientLineRepo,
	tagRepo repos.TagRepo,
	ingredientRepo repos.IngredientRepo,
	favoriteRepo repos.FavoriteRepo,
	cartRepo repos.ShoppingCartRepo,
	followRepo repos.FollowRepo,
) RecipeService {
	serviceLog := log.With("service", "RecipeService")
	return &recipeService{
		db:             db,
		log:            serviceLog,
		recipeRepo:     recipeRepo,
		lineRepo:       lineRepo,
		tagRepo:        tagRepo,
		ingredientRepo: ingredientRepo,
		favoriteRepo:   favoriteRepo,
		cartRepo:       cartRepo,
		followRepo:     followRepo,
	}
}

// validateInput enforces the submission rules shared by create and update.
// Tag and ingredient existence is checked inside the caller's transaction.
func (rs *recipeService) validateInput(ctx context.Context, tx *gorm.DB, input RecipeInput) ([]*types.Tag, error) {
	if input.Name == "" {
		return nil, apierr.Validation("name", "name is required")
	}
	if input.Text == "" {
		return nil, apierr.Validation("text", "text is required")
	}
	if input.CookingTime < minCookingTime || input.CookingTime > maxCookingTime {
		return nil, apierr.Validation("cooking_time", "cooking time must be between 1 and 720 minutes")
	}

	if len(input.Ingredients) == 0 {
		return nil, apierr.Validation("ingredients", "at least one ingredient is required")
	}
	seenIngredients := make(map[uuid.UUID]struct{}, len(input.Ingredients))
	ingredientIDs := make([]uuid.UUID, 0, len(input.Ingredients))
	for _, line := range input.Ingredients {
		if _, dup := seenIngredients[line.IngredientID]; dup {
			return nil, apierr.Validation("ingredients", "ingredients must be unique")
		}
		seenIngredients[line.IngredientID] = struct{}{}
		ingredientIDs = append(ingredientIDs, line.IngredientID)
		if line.Amount < 1 {
			return nil, apierr.Validation("ingredients", "amount must be a positive integer")
		}
	}
	found, err := rs.ingredientRepo.GetByIDs(ctx, tx, ingredientIDs)
	if err != nil {
		return nil, fmt.Errorf("load ingredients: %w", err)
	}
	if len(found) != len(ingredientIDs) {
		return nil, apierr.Validation("ingredients", "ingredient does not exist")
	}

	if len(input.TagIDs) == 0 {
		return nil, apierr.Validation("tags", "at least one tag is required")
	}
	seenTags := make(map[uuid.UUID]struct{}, len(input.TagIDs))
	for _, tagID := range input.TagIDs {
		if _, dup := seenTags[tagID]; dup {
			return nil, apierr.Validation("tags", "tags must be unique")
		}
		seenTags[tagID] = struct{}{}
	}
	tags, err := rs.tagRepo.GetByIDs(ctx, tx, input.TagIDs)
	if err != nil {
		return nil, fmt.Errorf("load tags: %w", err)
	}
	if len(tags) != len(input.TagIDs) {
		return nil, apierr.Validation("tags", "tag does not exist")
	}
	return tags, nil
}

func linesFromInput(recipeID uuid.UUID, input RecipeInput) []*types.IngredientLine {
	lines := make([]*types.IngredientLine, 0, len(input.Ingredients))
	for _, in := range input.Ingredients {
		lines = append(lines, &types.IngredientLine{
			ID:           uuid.New(),
			RecipeID:     recipeID,
			IngredientID: in.IngredientID,
			Amount:       in.Amount,
		})
	}
	return lines
}

// Create validates and atomically persists the recipe, its tag set and its
// ingredient lines. The author is taken from the authenticated caller,
// never from the payload.
func (rs *recipeService) Create(ctx context.Context, input RecipeInput) (*types.RecipeView, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		return nil, apierr.Unauthorized("not authenticated")
	}

	recipe := &types.Recipe{
		ID:          uuid.New(),
		AuthorID:    rd.UserID,
		Name:        input.Name,
		Text:        input.Text,
		Image:       input.Image,
		CookingTime: input.CookingTime,
	}

	if err := rs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tags, err := rs.validateInput(ctx, tx, input)
		if err != nil {
			return err
		}
		if _, err := rs.recipeRepo.Create(ctx, tx, recipe); err != nil {
			return fmt.Errorf("create recipe: %w", err)
		}
		if err := rs.recipeRepo.ReplaceTags(ctx, tx, recipe, tags); err != nil {
			return fmt.Errorf("set recipe tags: %w", err)
		}
		if _, err := rs.lineRepo.BulkCreate(ctx, tx, linesFromInput(recipe.ID, input)); err != nil {
			return fmt.Errorf("create ingredient lines: %w", err)
		}
		return nil
	}); err != nil {
		return nil, err
	}

	return rs.GetByID(ctx, recipe.ID)
}

// Update replaces the recipe's scalar fields and fully replaces its tag set
// and line set. Clear-then-set, not a diff: this keeps update semantics
// trivially predictable at the cost of always rewriting the line set.
func (rs *recipeService) Update(ctx context.Context, recipeID uuid.UUID, input RecipeInput) (*types.RecipeView, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		return nil, apierr.Unauthorized("not authenticated")
	}

	if err := rs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		recipe, err := rs.recipeRepo.GetByID(ctx, tx, recipeID)
		if err != nil {
			if isNotFound(err) {
				return apierr.NotFound("recipe not found")
			}
			return fmt.Errorf("load recipe: %w", err)
		}
		if recipe.AuthorID != rd.UserID {
			return apierr.Forbidden("only the author may modify this recipe")
		}

		tags, err := rs.validateInput(ctx, tx, input)
		if err != nil {
			return err
		}

		recipe.Name = input.Name
		recipe.Text = input.Text
		recipe.Image = input.Image
		recipe.CookingTime = input.CookingTime
		if err := rs.recipeRepo.Save(ctx, tx, recipe); err != nil {
			return fmt.Errorf("save recipe: %w", err)
		}
		if err := rs.recipeRepo.ReplaceTags(ctx, tx, recipe, tags); err != nil {
			return fmt.Errorf("replace recipe tags: %w", err)
		}
		if err := rs.lineRepo.DeleteByRecipeID(ctx, tx, recipeID); err != nil {
			return fmt.Errorf("clear ingredient lines: %w", err)
		}
		if _, err := rs.lineRepo.BulkCreate(ctx, tx, linesFromInput(recipeID, input)); err != nil {
			return fmt.Errorf("recreate ingredient lines: %w", err)
		}
		return nil
	}); err != nil {
		return nil, err
	}

	return rs.GetByID(ctx, recipeID)
}

func (rs *recipeService) Delete(ctx context.Context, recipeID uuid.UUID) error {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		return apierr.Unauthorized("not authenticated")
	}

	return rs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		recipe, err := rs.recipeRepo.GetByID(ctx, tx, recipeID)
		if err != nil {
			if isNotFound(err) {
				return apierr.NotFound("recipe not found")
			}
			return fmt.Errorf("load recipe: %w", err)
		}
		if recipe.AuthorID != rd.UserID {
			return apierr.Forbidden("only the author may delete this recipe")
		}

		// Child rows go first so the delete also works on stores without
		// enforced FK cascades.
		if err := rs.lineRepo.DeleteByRecipeID(ctx, tx, recipeID); err != nil {
			return fmt.Errorf("delete ingredient lines: %w", err)
		}
		if err := rs.favoriteRepo.DeleteByRecipeID(ctx, tx, recipeID); err != nil {
			return fmt.Errorf("delete favorites: %w", err)
		}
		if err := rs.cartRepo.DeleteByRecipeID(ctx, tx, recipeID); err != nil {
			return fmt.Errorf("delete shopping cart rows: %w", err)
		}
		if err := rs.recipeRepo.ReplaceTags(ctx, tx, recipe, []*types.Tag{}); err != nil {
			return fmt.Errorf("clear recipe tags: %w", err)
		}
		if _, err := rs.recipeRepo.Delete(ctx, tx, recipeID); err != nil {
			return fmt.Errorf("delete recipe: %w", err)
		}
		return nil
	})
}

func (rs *recipeService) GetByID(ctx context.Context, recipeID uuid.UUID) (*types.RecipeView, error) {
	recipe, err := rs.recipeRepo.GetHydratedByID(ctx, nil, recipeID)
	if err != nil {
		if isNotFound(err) {
			return nil, apierr.NotFound("recipe not found")
		}
		return nil, fmt.Errorf("load recipe: %w", err)
	}
	view, err := rs.buildView(ctx, recipe)
	if err != nil {
		return nil, err
	}
	return &view, nil
}

func (rs *recipeService) List(ctx context.Context, params RecipeListParams) ([]types.RecipeView, error) {
	rd := requestdata.GetRequestData(ctx)

	filter := repos.RecipeFilter{
		AuthorID: params.AuthorID,
		TagSlugs: params.TagSlugs,
		Limit:    params.Limit,
		Offset:   params.Offset,
	}
	if rd != nil {
		if params.IsFavorited {
			filter.FavoritedBy = &rd.UserID
		}
		if params.IsInShoppingCart {
			filter.InCartOf = &rd.UserID
		}
	}

	recipes, err := rs.recipeRepo.List(ctx, nil, filter)
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}

	views := make([]types.RecipeView, 0, len(recipes))
	for _, recipe := range recipes {
		view, err := rs.buildView(ctx, recipe)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}

// buildView projects the aggregate with the viewer-dependent flags.
func (rs *recipeService) buildView(ctx context.Context, recipe *types.Recipe) (types.RecipeView, error) {
	var favorited, inCart, authorSubscribed bool
	if rd := requestdata.GetRequestData(ctx); rd != nil {
		var err error
		favorited, err = rs.favoriteRepo.Exists(ctx, nil, rd.UserID, recipe.ID)
		if err != nil {
			return types.RecipeView{}, fmt.Errorf("check favorite: %w", err)
		}
		inCart, err = rs.cartRepo.Exists(ctx, nil, rd.UserID, recipe.ID)
		if err != nil {
			return types.RecipeView{}, fmt.Errorf("check shopping cart: %w", err)
		}
		authorSubscribed, err = rs.followRepo.Exists(ctx, nil, rd.UserID, recipe.AuthorID)
		if err != nil {
			return types.RecipeView{}, fmt.Errorf("check subscription: %w", err)
		}
	}
	return types.NewRecipeView(recipe, authorSubscribed, favorited, inCart), nil
}
