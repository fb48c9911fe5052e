package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/foodgramapp/foodgram-backend/internal/logger"
	"github.com/foodgramapp/foodgram-backend/internal/types"
)

type IngredientLineRepo interface {
	BulkCreate(ctx context.Context, tx *gorm.DB, lines []*types.IngredientLine) ([]*types.IngredientLine, error)
	GetByRecipeID(ctx context.Context, tx *gorm.DB, recipeID uuid.UUID) ([]*types.IngredientLine, error)
	DeleteByRecipeID(ctx context.Context, tx *gorm.DB, recipeID uuid.UUID) error
	AggregateForUserCart(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]types.ShoppingListItem, error)
}

type ingredientLineRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewIngredientLineRepo(db *gorm.DB, baseLog *logger.Logger) IngredientLineRepo {
	repoLog := baseLog.With("repo", "IngredientLineRepo")
	return &ingredientLineRepo{db: db, log: repoLog}
}

func (lr *ingredientLineRepo) BulkCreate(ctx context.Context, tx *gorm.DB, lines []*types.IngredientLine) ([]*types.IngredientLine, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}

	if len(lines) == 0 {
		return []*types.IngredientLine{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&lines).Error; err != nil {
		return nil, err
	}
	return lines, nil
}

func (lr *ingredientLineRepo) GetByRecipeID(ctx context.Context, tx *gorm.DB, recipeID uuid.UUID) ([]*types.IngredientLine, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}

	var results []*types.IngredientLine
	if err := transaction.WithContext(ctx).
		Preload("Ingredient").
		Where("recipe_id = ?", recipeID).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (lr *ingredientLineRepo) DeleteByRecipeID(ctx context.Context, tx *gorm.DB, recipeID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}

	return transaction.WithContext(ctx).
		Where("recipe_id = ?", recipeID).
		Delete(&types.IngredientLine{}).Error
}

// AggregateForUserCart sums line amounts across every recipe in the user's
// shopping cart, grouped by (ingredient name, unit). Grouping is by the
// display pair rather than ingredient id because the report is
// presentation-oriented. Ordered ascending by name for determinism.
func (lr *ingredientLineRepo) AggregateForUserCart(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]types.ShoppingListItem, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}

	var items []types.ShoppingListItem
	err := transaction.WithContext(ctx).
		Model(&types.IngredientLine{}).
		Select("ingredient.name AS name, ingredient.measurement_unit AS measurement_unit, SUM(ingredient_line.amount) AS amount").
		Joins("JOIN ingredient ON ingredient.id = ingredient_line.ingredient_id").
		Joins("JOIN shopping_cart ON shopping_cart.recipe_id = ingredient_line.recipe_id").
		Where("shopping_cart.user_id = ?", userID).
		Group("ingredient.name, ingredient.measurement_unit").
		Order("ingredient.name ASC").
		Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
