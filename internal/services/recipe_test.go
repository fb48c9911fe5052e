package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/foodgramapp/foodgram-backend/internal/apierr"
	"github.com/foodgramapp/foodgram-backend/internal/types"
)

func wantAPIError(t *testing.T, err error, status int) *apierr.Error {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with status %d, got nil", status)
	}
	apiErr := apierr.From(err)
	if apiErr == nil {
		t.Fatalf("expected apierr, got %T: %v", err, err)
	}
	if apiErr.Status != status {
		t.Fatalf("expected status %d, got %d (%v)", status, apiErr.Status, apiErr)
	}
	return apiErr
}

func validRecipeInput(tags []*types.Tag, lines ...IngredientLineInput) RecipeInput {
	tagIDs := make([]uuid.UUID, 0, len(tags))
	for _, tag := range tags {
		tagIDs = append(tagIDs, tag.ID)
	}
	return RecipeInput{
		Name:        "Borscht",
		Text:        "Simmer until done.",
		Image:       "data:image/png;base64,aGkh",
		CookingTime: 90,
		TagIDs:      tagIDs,
		Ingredients: lines,
	}
}

func TestCreateRecipePersistsLinesAndTags(t *testing.T) {
	env := newTestEnv(t)
	author := env.seedUser(t, "chef")
	dinner := env.seedTag(t, "dinner")
	soup := env.seedTag(t, "soup")
	beet := env.seedIngredient(t, "beet", "g")
	onion := env.seedIngredient(t, "onion", "pcs")

	input := validRecipeInput(
		[]*types.Tag{dinner, soup},
		IngredientLineInput{IngredientID: beet.ID, Amount: 300},
		IngredientLineInput{IngredientID: onion.ID, Amount: 2},
	)

	view, err := env.recipes.Create(ctxFor(author), input)
	if err != nil {
		t.Fatalf("create recipe: %v", err)
	}
	if view.Author.ID != author.ID {
		t.Fatalf("author mismatch: want %s, got %s", author.ID, view.Author.ID)
	}
	if view.CookingTime != 90 {
		t.Fatalf("cooking time mismatch: got %d", view.CookingTime)
	}
	if len(view.Tags) != 2 {
		t.Fatalf("expected 2 tags, got %d", len(view.Tags))
	}
	if len(view.Ingredients) != 2 {
		t.Fatalf("expected 2 ingredient lines, got %d", len(view.Ingredients))
	}
	amounts := map[uuid.UUID]int{}
	for _, line := range view.Ingredients {
		amounts[line.ID] = line.Amount
	}
	if amounts[beet.ID] != 300 || amounts[onion.ID] != 2 {
		t.Fatalf("line amounts mismatch: %v", amounts)
	}
}

func TestCreateRecipeValidation(t *testing.T) {
	env := newTestEnv(t)
	author := env.seedUser(t, "chef")
	tag := env.seedTag(t, "lunch")
	flour := env.seedIngredient(t, "flour", "g")
	ctx := ctxFor(author)

	cases := []struct {
		name  string
		tweak func(*RecipeInput)
	}{
		{"zero cooking time", func(in *RecipeInput) { in.CookingTime = 0 }},
		{"cooking time above cap", func(in *RecipeInput) { in.CookingTime = 721 }},
		{"zero amount", func(in *RecipeInput) { in.Ingredients[0].Amount = 0 }},
		{"negative amount", func(in *RecipeInput) { in.Ingredients[0].Amount = -5 }},
		{"empty name", func(in *RecipeInput) { in.Name = "" }},
		{"empty text", func(in *RecipeInput) { in.Text = "" }},
		{"no ingredients", func(in *RecipeInput) { in.Ingredients = nil }},
		{"no tags", func(in *RecipeInput) { in.TagIDs = nil }},
		{"duplicate ingredient", func(in *RecipeInput) {
			in.Ingredients = append(in.Ingredients, IngredientLineInput{IngredientID: flour.ID, Amount: 10})
		}},
		{"duplicate tag", func(in *RecipeInput) { in.TagIDs = append(in.TagIDs, tag.ID) }},
		{"unknown ingredient", func(in *RecipeInput) { in.Ingredients[0].IngredientID = uuid.New() }},
		{"unknown tag", func(in *RecipeInput) { in.TagIDs[0] = uuid.New() }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := validRecipeInput([]*types.Tag{tag}, IngredientLineInput{IngredientID: flour.ID, Amount: 100})
			tc.tweak(&input)
			_, err := env.recipes.Create(ctx, input)
			wantAPIError(t, err, 400)
		})
	}

	// The boundary values themselves are accepted.
	for _, minutes := range []int{1, 720} {
		input := validRecipeInput([]*types.Tag{tag}, IngredientLineInput{IngredientID: flour.ID, Amount: 1})
		input.CookingTime = minutes
		input.Name = "boundary"
		if _, err := env.recipes.Create(ctx, input); err != nil {
			t.Fatalf("cooking time %d should be accepted: %v", minutes, err)
		}
	}
}

func TestCreateRecipeFailedValidationLeavesNoRows(t *testing.T) {
	env := newTestEnv(t)
	author := env.seedUser(t, "chef")
	tag := env.seedTag(t, "lunch")

	input := validRecipeInput([]*types.Tag{tag}, IngredientLineInput{IngredientID: uuid.New(), Amount: 5})
	if _, err := env.recipes.Create(ctxFor(author), input); err == nil {
		t.Fatal("expected validation error")
	}

	var recipeCount, lineCount int64
	if err := env.db.Model(&types.Recipe{}).Count(&recipeCount).Error; err != nil {
		t.Fatalf("count recipes: %v", err)
	}
	if err := env.db.Model(&types.IngredientLine{}).Count(&lineCount).Error; err != nil {
		t.Fatalf("count lines: %v", err)
	}
	if recipeCount != 0 || lineCount != 0 {
		t.Fatalf("expected empty tables, got %d recipes and %d lines", recipeCount, lineCount)
	}
}

func TestUpdateRecipeReplacesLineAndTagSets(t *testing.T) {
	env := newTestEnv(t)
	author := env.seedUser(t, "chef")
	dinner := env.seedTag(t, "dinner")
	soup := env.seedTag(t, "soup")
	beet := env.seedIngredient(t, "beet", "g")
	onion := env.seedIngredient(t, "onion", "pcs")
	carrot := env.seedIngredient(t, "carrot", "g")
	ctx := ctxFor(author)

	created, err := env.recipes.Create(ctx, validRecipeInput(
		[]*types.Tag{dinner},
		IngredientLineInput{IngredientID: beet.ID, Amount: 300},
		IngredientLineInput{IngredientID: onion.ID, Amount: 2},
	))
	if err != nil {
		t.Fatalf("create recipe: %v", err)
	}

	updated, err := env.recipes.Update(ctx, created.ID, validRecipeInput(
		[]*types.Tag{soup},
		IngredientLineInput{IngredientID: onion.ID, Amount: 1},
		IngredientLineInput{IngredientID: carrot.ID, Amount: 150},
	))
	if err != nil {
		t.Fatalf("update recipe: %v", err)
	}

	if len(updated.Tags) != 1 || updated.Tags[0].ID != soup.ID {
		t.Fatalf("expected only the new tag, got %v", updated.Tags)
	}
	got := map[uuid.UUID]int{}
	for _, line := range updated.Ingredients {
		got[line.ID] = line.Amount
	}
	if len(got) != 2 || got[onion.ID] != 1 || got[carrot.ID] != 150 {
		t.Fatalf("expected exactly the new line set, got %v", got)
	}
	if _, stale := got[beet.ID]; stale {
		t.Fatal("old line survived the update")
	}

	var lineCount int64
	if err := env.db.Model(&types.IngredientLine{}).Where("recipe_id = ?", created.ID).Count(&lineCount).Error; err != nil {
		t.Fatalf("count lines: %v", err)
	}
	if lineCount != 2 {
		t.Fatalf("expected 2 stored lines, got %d", lineCount)
	}
}

func TestUpdateRecipeForeignAuthorForbidden(t *testing.T) {
	env := newTestEnv(t)
	author := env.seedUser(t, "chef")
	intruder := env.seedUser(t, "intruder")
	tag := env.seedTag(t, "dinner")
	flour := env.seedIngredient(t, "flour", "g")

	created, err := env.recipes.Create(ctxFor(author), validRecipeInput(
		[]*types.Tag{tag}, IngredientLineInput{IngredientID: flour.ID, Amount: 100},
	))
	if err != nil {
		t.Fatalf("create recipe: %v", err)
	}

	_, err = env.recipes.Update(ctxFor(intruder), created.ID, validRecipeInput(
		[]*types.Tag{tag}, IngredientLineInput{IngredientID: flour.ID, Amount: 1},
	))
	wantAPIError(t, err, 403)

	err = env.recipes.Delete(ctxFor(intruder), created.ID)
	wantAPIError(t, err, 403)
}

func TestDeleteRecipeRemovesChildRows(t *testing.T) {
	env := newTestEnv(t)
	author := env.seedUser(t, "chef")
	fan := env.seedUser(t, "fan")
	tag := env.seedTag(t, "dinner")
	flour := env.seedIngredient(t, "flour", "g")

	created, err := env.recipes.Create(ctxFor(author), validRecipeInput(
		[]*types.Tag{tag}, IngredientLineInput{IngredientID: flour.ID, Amount: 100},
	))
	if err != nil {
		t.Fatalf("create recipe: %v", err)
	}
	if _, err := env.relations.AddFavorite(ctxFor(fan), created.ID); err != nil {
		t.Fatalf("add favorite: %v", err)
	}
	if _, err := env.relations.AddToCart(ctxFor(fan), created.ID); err != nil {
		t.Fatalf("add to cart: %v", err)
	}

	if err := env.recipes.Delete(ctxFor(author), created.ID); err != nil {
		t.Fatalf("delete recipe: %v", err)
	}

	_, err = env.recipes.GetByID(context.Background(), created.ID)
	wantAPIError(t, err, 404)

	for table, model := range map[string]interface{}{
		"ingredient_line": &types.IngredientLine{},
		"favorite":        &types.Favorite{},
		"shopping_cart":   &types.ShoppingCart{},
	} {
		var n int64
		if err := env.db.Model(model).Where("recipe_id = ?", created.ID).Count(&n).Error; err != nil {
			t.Fatalf("count %s: %v", table, err)
		}
		if n != 0 {
			t.Fatalf("expected no %s rows after delete, got %d", table, n)
		}
	}
}

func TestListRecipesFilters(t *testing.T) {
	env := newTestEnv(t)
	author := env.seedUser(t, "chef")
	other := env.seedUser(t, "other")
	dinner := env.seedTag(t, "dinner")
	breakfast := env.seedTag(t, "breakfast")
	flour := env.seedIngredient(t, "flour", "g")

	mkRecipe := func(u *types.User, name string, tag *types.Tag) *types.RecipeView {
		in := validRecipeInput([]*types.Tag{tag}, IngredientLineInput{IngredientID: flour.ID, Amount: 10})
		in.Name = name
		view, err := env.recipes.Create(ctxFor(u), in)
		if err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
		time.Sleep(2 * time.Millisecond)
		return view
	}
	pancakes := mkRecipe(author, "pancakes", breakfast)
	mkRecipe(author, "stew", dinner)
	mkRecipe(other, "toast", breakfast)

	byAuthor, err := env.recipes.List(context.Background(), RecipeListParams{AuthorID: &author.ID, Limit: 20})
	if err != nil {
		t.Fatalf("list by author: %v", err)
	}
	if len(byAuthor) != 2 {
		t.Fatalf("expected 2 recipes by author, got %d", len(byAuthor))
	}

	byTag, err := env.recipes.List(context.Background(), RecipeListParams{TagSlugs: []string{"breakfast"}, Limit: 20})
	if err != nil {
		t.Fatalf("list by tag: %v", err)
	}
	if len(byTag) != 2 {
		t.Fatalf("expected 2 breakfast recipes, got %d", len(byTag))
	}

	if _, err := env.relations.AddFavorite(ctxFor(other), pancakes.ID); err != nil {
		t.Fatalf("add favorite: %v", err)
	}
	favorites, err := env.recipes.List(ctxFor(other), RecipeListParams{IsFavorited: true, Limit: 20})
	if err != nil {
		t.Fatalf("list favorites: %v", err)
	}
	if len(favorites) != 1 || favorites[0].ID != pancakes.ID {
		t.Fatalf("expected only the favorited recipe, got %v", favorites)
	}
	if !favorites[0].IsFavorited {
		t.Fatal("is_favorited flag not set for the viewer")
	}
}
