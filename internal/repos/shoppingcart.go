package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/foodgramapp/foodgram-backend/internal/logger"
	"github.com/foodgramapp/foodgram-backend/internal/types"
)

type ShoppingCartRepo interface {
	Exists(ctx context.Context, tx *gorm.DB, userID, recipeID uuid.UUID) (bool, error)
	Create(ctx context.Context, tx *gorm.DB, row *types.ShoppingCart) error
	Delete(ctx context.Context, tx *gorm.DB, userID, recipeID uuid.UUID) (int64, error)
	DeleteByRecipeID(ctx context.Context, tx *gorm.DB, recipeID uuid.UUID) error
}

type shoppingCartRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewShoppingCartRepo(db *gorm.DB, baseLog *logger.Logger) ShoppingCartRepo {
	repoLog := baseLog.With("repo", "ShoppingCartRepo")
	return &shoppingCartRepo{db: db, log: repoLog}
}

func (cr *shoppingCartRepo) Exists(ctx context.Context, tx *gorm.DB, userID, recipeID uuid.UUID) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.ShoppingCart{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (cr *shoppingCartRepo) Create(ctx context.Context, tx *gorm.DB, row *types.ShoppingCart) error {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	return transaction.WithContext(ctx).Create(row).Error
}

func (cr *shoppingCartRepo) Delete(ctx context.Context, tx *gorm.DB, userID, recipeID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	result := transaction.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&types.ShoppingCart{})
	return result.RowsAffected, result.Error
}

func (cr *shoppingCartRepo) DeleteByRecipeID(ctx context.Context, tx *gorm.DB, recipeID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	return transaction.WithContext(ctx).
		Where("recipe_id = ?", recipeID).
		Delete(&types.ShoppingCart{}).Error
}
