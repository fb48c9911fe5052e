package services

import (
	"testing"

	"github.com/google/uuid"

	"github.com/foodgramapp/foodgram-backend/internal/types"
)

func TestFavoriteLifecycle(t *testing.T) {
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
	ctx := ctxFor(fan)

	short, err := env.relations.AddFavorite(ctx, created.ID)
	if err != nil {
		t.Fatalf("add favorite: %v", err)
	}
	if short.ID != created.ID || short.Name != created.Name {
		t.Fatalf("short projection mismatch: %+v", short)
	}

	_, err = env.relations.AddFavorite(ctx, created.ID)
	apiErr := wantAPIError(t, err, 400)
	if apiErr.Code != "conflict" {
		t.Fatalf("expected conflict code, got %q", apiErr.Code)
	}

	if err := env.relations.RemoveFavorite(ctx, created.ID); err != nil {
		t.Fatalf("remove favorite: %v", err)
	}
	err = env.relations.RemoveFavorite(ctx, created.ID)
	wantAPIError(t, err, 404)
}

func TestShoppingCartLifecycle(t *testing.T) {
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
	ctx := ctxFor(fan)

	if _, err := env.relations.AddToCart(ctx, created.ID); err != nil {
		t.Fatalf("add to cart: %v", err)
	}
	_, err = env.relations.AddToCart(ctx, created.ID)
	wantAPIError(t, err, 400)

	if err := env.relations.RemoveFromCart(ctx, created.ID); err != nil {
		t.Fatalf("remove from cart: %v", err)
	}
	err = env.relations.RemoveFromCart(ctx, created.ID)
	wantAPIError(t, err, 404)
}

func TestRelationsOnUnknownRecipe(t *testing.T) {
	env := newTestEnv(t)
	fan := env.seedUser(t, "fan")
	ctx := ctxFor(fan)
	missing := uuid.New()

	if _, err := env.relations.AddFavorite(ctx, missing); err == nil {
		t.Fatal("expected not found")
	} else {
		wantAPIError(t, err, 404)
	}
	if _, err := env.relations.AddToCart(ctx, missing); err == nil {
		t.Fatal("expected not found")
	} else {
		wantAPIError(t, err, 404)
	}
}

func TestFollowLifecycle(t *testing.T) {
	env := newTestEnv(t)
	author := env.seedUser(t, "chef")
	reader := env.seedUser(t, "reader")
	ctx := ctxFor(reader)

	err := env.relations.FollowAuthor(ctx, reader.ID)
	apiErr := wantAPIError(t, err, 400)
	if apiErr.Field != "author" {
		t.Fatalf("expected self-follow rejection on the author field, got %+v", apiErr)
	}

	if err := env.relations.FollowAuthor(ctx, author.ID); err != nil {
		t.Fatalf("follow: %v", err)
	}
	err = env.relations.FollowAuthor(ctx, author.ID)
	wantAPIError(t, err, 400)

	if err := env.relations.UnfollowAuthor(ctx, author.ID); err != nil {
		t.Fatalf("unfollow: %v", err)
	}
	err = env.relations.UnfollowAuthor(ctx, author.ID)
	wantAPIError(t, err, 404)

	err = env.relations.FollowAuthor(ctx, uuid.New())
	wantAPIError(t, err, 404)
}
