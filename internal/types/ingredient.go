package types

import (
	"time"

	"github.com/google/uuid"
)

// Ingredient is immutable reference data; recipes point at it through
// IngredientLine rows.
type Ingredient struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name            string    `gorm:"not null;index;column:name" json:"name"`
	MeasurementUnit string    `gorm:"not null;column:measurement_unit" json:"measurement_unit"`
	CreatedAt       time.Time `gorm:"not null" json:"-"`
}

func (Ingredient) TableName() string { return "ingredient" }
