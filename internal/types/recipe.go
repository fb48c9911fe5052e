package types

import (
	"time"

	"github.com/google/uuid"
)

type Recipe struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	AuthorID    uuid.UUID `gorm:"type:uuid;not null;index" json:"author_id"`
	Author      *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:AuthorID;references:ID" json:"author,omitempty"`
	Name        string    `gorm:"not null;column:name" json:"name"`
	Text        string    `gorm:"not null;column:text" json:"text"`
	Image       string    `gorm:"column:image" json:"image"`
	CookingTime int       `gorm:"not null;column:cooking_time" json:"cooking_time"`

	Tags  []*Tag            `gorm:"many2many:recipe_tag;constraint:OnDelete:CASCADE" json:"tags,omitempty"`
	Lines []*IngredientLine `gorm:"foreignKey:RecipeID;references:ID" json:"lines,omitempty"`

	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Recipe) TableName() string { return "recipe" }

// IngredientLine links one recipe to one ingredient with a positive amount.
// A recipe cannot list the same ingredient twice.
type IngredientLine struct {
	ID           uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	RecipeID     uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex:uniq_recipe_ingredient" json:"recipe_id"`
	Recipe       *Recipe     `gorm:"constraint:OnDelete:CASCADE;foreignKey:RecipeID;references:ID" json:"-"`
	IngredientID uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex:uniq_recipe_ingredient" json:"ingredient_id"`
	Ingredient   *Ingredient `gorm:"constraint:OnDelete:CASCADE;foreignKey:IngredientID;references:ID" json:"ingredient,omitempty"`
	Amount       int         `gorm:"not null;column:amount" json:"amount"`
}

func (IngredientLine) TableName() string { return "ingredient_line" }
