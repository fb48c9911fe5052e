package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/foodgramapp/foodgram-backend/internal/logger"
	"github.com/foodgramapp/foodgram-backend/internal/types"
)

// RecipeFilter narrows recipe listings. Nil fields are ignored.
type RecipeFilter struct {
	AuthorID    *uuid.UUID
	FavoritedBy *uuid.UUID
	InCartOf    *uuid.UUID
	TagSlugs    []string
	Limit       int
	Offset      int
}

type RecipeRepo interface {
	Create(ctx context.Context, tx *gorm.DB, recipe *types.Recipe) (*types.Recipe, error)
	Save(ctx context.Context, tx *gorm.DB, recipe *types.Recipe) error
	GetByID(ctx context.Context, tx *gorm.DB, recipeID uuid.UUID) (*types.Recipe, error)
	GetHydratedByID(ctx context.Context, tx *gorm.DB, recipeID uuid.UUID) (*types.Recipe, error)
	List(ctx context.Context, tx *gorm.DB, filter RecipeFilter) ([]*types.Recipe, error)
	ListByAuthor(ctx context.Context, tx *gorm.DB, authorID uuid.UUID, limit int) ([]*types.Recipe, error)
	CountByAuthor(ctx context.Context, tx *gorm.DB, authorID uuid.UUID) (int64, error)
	ReplaceTags(ctx context.Context, tx *gorm.DB, recipe *types.Recipe, tags []*types.Tag) error
	Delete(ctx context.Context, tx *gorm.DB, recipeID uuid.UUID) (int64, error)
}

type recipeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRecipeRepo(db *gorm.DB, baseLog *logger.Logger) RecipeRepo {
	repoLog := baseLog.With("repo", "RecipeRepo")
	return &recipeRepo{db: db, log: repoLog}
}

func (rr *recipeRepo) Create(ctx context.Context, tx *gorm.DB, recipe *types.Recipe) (*types.Recipe, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	// Associations are written explicitly by the service transaction.
	if err := transaction.WithContext(ctx).
		Omit("Tags", "Lines", "Author").
		Create(recipe).Error; err != nil {
		return nil, err
	}
	return recipe, nil
}

func (rr *recipeRepo) Save(ctx context.Context, tx *gorm.DB, recipe *types.Recipe) error {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	return transaction.WithContext(ctx).
		Model(&types.Recipe{}).
		Where("id = ?", recipe.ID).
		Updates(map[string]interface{}{
			"name":         recipe.Name,
			"text":         recipe.Text,
			"image":        recipe.Image,
			"cooking_time": recipe.CookingTime,
		}).Error
}

func (rr *recipeRepo) GetByID(ctx context.Context, tx *gorm.DB, recipeID uuid.UUID) (*types.Recipe, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	var recipe types.Recipe
	if err := transaction.WithContext(ctx).
		Where("id = ?", recipeID).
		First(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (rr *recipeRepo) GetHydratedByID(ctx context.Context, tx *gorm.DB, recipeID uuid.UUID) (*types.Recipe, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	var recipe types.Recipe
	if err := transaction.WithContext(ctx).
		Preload("Author").
		Preload("Tags").
		Preload("Lines.Ingredient").
		Where("id = ?", recipeID).
		First(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (rr *recipeRepo) List(ctx context.Context, tx *gorm.DB, filter RecipeFilter) ([]*types.Recipe, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	query := transaction.WithContext(ctx).
		Model(&types.Recipe{}).
		Preload("Author").
		Preload("Tags").
		Preload("Lines.Ingredient").
		Order("created_at DESC")

	if filter.AuthorID != nil {
		query = query.Where("author_id = ?", *filter.AuthorID)
	}
	if filter.FavoritedBy != nil {
		query = query.Where(
			"id IN (?)",
			transaction.Model(&types.Favorite{}).Select("recipe_id").Where("user_id = ?", *filter.FavoritedBy),
		)
	}
	if filter.InCartOf != nil {
		query = query.Where(
			"id IN (?)",
			transaction.Model(&types.ShoppingCart{}).Select("recipe_id").Where("user_id = ?", *filter.InCartOf),
		)
	}
	if len(filter.TagSlugs) > 0 {
		query = query.Where(
			"id IN (?)",
			transaction.Table("recipe_tag").
				Select("recipe_tag.recipe_id").
				Joins("JOIN tag ON tag.id = recipe_tag.tag_id").
				Where("tag.slug IN ?", filter.TagSlugs),
		)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var results []*types.Recipe
	if err := query.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// ListByAuthor returns the author's recipes newest-first; truncation
// happens after ordering.
func (rr *recipeRepo) ListByAuthor(ctx context.Context, tx *gorm.DB, authorID uuid.UUID, limit int) ([]*types.Recipe, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	query := transaction.WithContext(ctx).
		Where("author_id = ?", authorID).
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var results []*types.Recipe
	if err := query.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (rr *recipeRepo) CountByAuthor(ctx context.Context, tx *gorm.DB, authorID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Recipe{}).
		Where("author_id = ?", authorID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ReplaceTags swaps the full tag set for the recipe (clear-then-set).
func (rr *recipeRepo) ReplaceTags(ctx context.Context, tx *gorm.DB, recipe *types.Recipe, tags []*types.Tag) error {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	assoc := transaction.WithContext(ctx).
		Model(recipe).
		Association("Tags")
	if len(tags) == 0 {
		return assoc.Clear()
	}
	return assoc.Replace(tags)
}

func (rr *recipeRepo) Delete(ctx context.Context, tx *gorm.DB, recipeID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	result := transaction.WithContext(ctx).
		Where("id = ?", recipeID).
		Delete(&types.Recipe{})
	return result.RowsAffected, result.Error
}
