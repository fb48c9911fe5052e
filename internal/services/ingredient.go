package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/foodgramapp/foodgram-backend/internal/apierr"
	"github.com/foodgramapp/foodgram-backend/internal/cache"
	"github.com/foodgramapp/foodgram-backend/internal/logger"
	"github.com/foodgramapp/foodgram-backend/internal/repos"
	"github.com/foodgramapp/foodgram-backend/internal/types"
)

const (
	ingredientCatalogKey = "ingredient_catalog"
	ingredientCacheTTL   = 2 * time.Hour
)

type IngredientService interface {
	Create(ctx context.Context, ingredients []*types.Ingredient) ([]*types.Ingredient, error)
	GetByID(ctx context.Context, ingredientID uuid.UUID) (*types.Ingredient, error)
	List(ctx context.Context, namePrefix string) ([]*types.Ingredient, error)
}

type ingredientService struct {
	db             *gorm.DB
	log            *logger.Logger
	ingredientRepo repos.IngredientRepo
	catalogCache   *cache.Cache
}

func NewIngredientService(db *gorm.DB, log *logger.Logger, ingredientRepo repos.IngredientRepo, catalogCache *cache.Cache) IngredientService {
	serviceLog := log.With("service", "IngredientService")
	return &ingredientService{
		db:             db,
		log:            serviceLog,
		ingredientRepo: ingredientRepo,
		catalogCache:   catalogCache,
	}
}

func (is *ingredientService) Create(ctx context.Context, ingredients []*types.Ingredient) ([]*types.Ingredient, error) {
	for _, ing := range ingredients {
		ing.Name = strings.TrimSpace(ing.Name)
		ing.MeasurementUnit = strings.TrimSpace(ing.MeasurementUnit)
		if ing.Name == "" {
			return nil, apierr.Validation("name", "name is required")
		}
		if ing.MeasurementUnit == "" {
			return nil, apierr.Validation("measurement_unit", "measurement unit is required")
		}
		ing.ID = uuid.New()
	}

	if err := is.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := is.ingredientRepo.Create(ctx, tx, ingredients); err != nil {
			return fmt.Errorf("create ingredients: %w", err)
		}
		return nil
	}); err != nil {
		return nil, err
	}

	is.catalogCache.Delete(ctx, ingredientCatalogKey)
	return ingredients, nil
}

func (is *ingredientService) GetByID(ctx context.Context, ingredientID uuid.UUID) (*types.Ingredient, error) {
	ingredient, err := is.ingredientRepo.GetByID(ctx, nil, ingredientID)
	if err != nil {
		if isNotFound(err) {
			return nil, apierr.NotFound("ingredient not found")
		}
		return nil, fmt.Errorf("load ingredient: %w", err)
	}
	return ingredient, nil
}

// List serves the unfiltered catalog from redis when available; prefix
// queries always go to the database.
func (is *ingredientService) List(ctx context.Context, namePrefix string) ([]*types.Ingredient, error) {
	if namePrefix == "" {
		if cached, ok := is.catalogCache.Get(ctx, ingredientCatalogKey); ok {
			var results []*types.Ingredient
			if err := json.Unmarshal([]byte(cached), &results); err == nil {
				return results, nil
			}
			is.catalogCache.Delete(ctx, ingredientCatalogKey)
		}
	}

	results, err := is.ingredientRepo.List(ctx, nil, namePrefix)
	if err != nil {
		return nil, fmt.Errorf("list ingredients: %w", err)
	}

	if namePrefix == "" {
		if raw, err := json.Marshal(results); err == nil {
			is.catalogCache.Set(ctx, ingredientCatalogKey, string(raw), ingredientCacheTTL)
		}
	}
	return results, nil
}
