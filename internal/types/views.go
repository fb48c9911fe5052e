package types

import "github.com/google/uuid"

// Read-side projections. These are built by plain functions composed over
// the aggregates rather than by layered serializers, so each endpoint
// shapes its payload explicitly.

type UserView struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	IsSubscribed bool      `json:"is_subscribed"`
}

func NewUserView(u *User, isSubscribed bool) UserView {
	return UserView{
		ID:           u.ID,
		Email:        u.Email,
		Username:     u.Username,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		IsSubscribed: isSubscribed,
	}
}

// RecipeShort is the compact recipe projection used inside follow payloads.
type RecipeShort struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Image       string    `json:"image"`
	CookingTime int       `json:"cooking_time"`
}

func NewRecipeShort(r *Recipe) RecipeShort {
	return RecipeShort{ID: r.ID, Name: r.Name, Image: r.Image, CookingTime: r.CookingTime}
}

type RecipeIngredientView struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	MeasurementUnit string    `json:"measurement_unit"`
	Amount          int       `json:"amount"`
}

type RecipeView struct {
	ID                uuid.UUID              `json:"id"`
	Tags              []*Tag                 `json:"tags"`
	Author            UserView               `json:"author"`
	Ingredients       []RecipeIngredientView `json:"ingredients"`
	IsFavorited       bool                   `json:"is_favorited"`
	IsInShoppingCart  bool                   `json:"is_in_shopping_cart"`
	Name              string                 `json:"name"`
	Image             string                 `json:"image"`
	Text              string                 `json:"text"`
	CookingTime       int                    `json:"cooking_time"`
}

// NewRecipeView projects a hydrated recipe aggregate. The recipe must have
// Author, Tags and Lines (with Ingredient) preloaded.
func NewRecipeView(r *Recipe, authorSubscribed, favorited, inCart bool) RecipeView {
	view := RecipeView{
		ID:               r.ID,
		Tags:             r.Tags,
		Ingredients:      make([]RecipeIngredientView, 0, len(r.Lines)),
		IsFavorited:      favorited,
		IsInShoppingCart: inCart,
		Name:             r.Name,
		Image:            r.Image,
		Text:             r.Text,
		CookingTime:      r.CookingTime,
	}
	if view.Tags == nil {
		view.Tags = []*Tag{}
	}
	if r.Author != nil {
		view.Author = NewUserView(r.Author, authorSubscribed)
	}
	for _, line := range r.Lines {
		iv := RecipeIngredientView{ID: line.IngredientID, Amount: line.Amount}
		if line.Ingredient != nil {
			iv.Name = line.Ingredient.Name
			iv.MeasurementUnit = line.Ingredient.MeasurementUnit
		}
		view.Ingredients = append(view.Ingredients, iv)
	}
	return view
}

// FollowView extends the user projection with the author's recipes.
type FollowView struct {
	UserView
	Recipes      []RecipeShort `json:"recipes"`
	RecipesCount int64         `json:"recipes_count"`
}

func NewFollowView(uv UserView, recipes []*Recipe, count int64) FollowView {
	shorts := make([]RecipeShort, 0, len(recipes))
	for _, r := range recipes {
		shorts = append(shorts, NewRecipeShort(r))
	}
	return FollowView{UserView: uv, Recipes: shorts, RecipesCount: count}
}

// ShoppingListItem is one aggregated group of the shopping-list report.
type ShoppingListItem struct {
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Amount          int64  `json:"amount"`
}
