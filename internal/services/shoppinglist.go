package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/foodgramapp/foodgram-backend/internal/logger"
	"github.com/foodgramapp/foodgram-backend/internal/repos"
	"github.com/foodgramapp/foodgram-backend/internal/types"
)

const shoppingListHeader = "Shopping list:\n\n"

// ShoppingListFilename is the attachment name served by the download
// endpoint.
const ShoppingListFilename = "shopping_cart.txt"

type ShoppingListService interface {
	Build(ctx context.Context, userID uuid.UUID) ([]types.ShoppingListItem, error)
	Render(items []types.ShoppingListItem) string
}

type shoppingListService struct {
	db       *gorm.DB
	log      *logger.Logger
	lineRepo repos.IngredientLineRepo
}

func NewShoppingListService(db *gorm.DB, log *logger.Logger, lineRepo repos.IngredientLineRepo) ShoppingListService {
	serviceLog := log.With("service", "ShoppingListService")
	return &shoppingListService{db: db, log: serviceLog, lineRepo: lineRepo}
}

// Build aggregates every ingredient line of every recipe in the user's
// cart. An empty cart yields zero groups, which is not an error.
func (ss *shoppingListService) Build(ctx context.Context, userID uuid.UUID) ([]types.ShoppingListItem, error) {
	items, err := ss.lineRepo.AggregateForUserCart(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("aggregate shopping cart: %w", err)
	}
	return items, nil
}

// Render produces the plain-text report: the header followed by one
// "<name> - <amount> <unit>" line per group.
func (ss *shoppingListService) Render(items []types.ShoppingListItem) string {
	var b strings.Builder
	b.WriteString(shoppingListHeader)
	for i, item := range items {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s - %d %s", item.Name, item.Amount, item.MeasurementUnit)
	}
	return b.String()
}
