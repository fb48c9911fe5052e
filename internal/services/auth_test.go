package services

import (
	"testing"
	"time"

	"github.com/foodgramapp/foodgram-backend/internal/repos"
	"github.com/foodgramapp/foodgram-backend/internal/requestdata"
	"github.com/foodgramapp/foodgram-backend/internal/types"
)

func newAuthService(t *testing.T, env *testEnv) AuthService {
	t.Helper()
	log := newTestLogger(t)
	return NewAuthService(
		env.db, log,
		env.userRepo, repos.NewUserTokenRepo(env.db, log),
		"test-secret", time.Hour,
	)
}

func registrationInput() *types.User {
	return &types.User{
		Email:     "Chef@Example.com ",
		Username:  "chef",
		FirstName: "Julia",
		LastName:  "Child",
		Password:  "s3cret-pw",
	}
}

func TestRegisterNormalizesAndHashes(t *testing.T) {
	env := newTestEnv(t)
	auth := newAuthService(t, env)

	user, err := auth.Register(t.Context(), registrationInput())
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Email != "chef@example.com" {
		t.Fatalf("email should be lowercased and trimmed, got %q", user.Email)
	}
	if user.Password == "s3cret-pw" {
		t.Fatal("password stored in plaintext")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	auth := newAuthService(t, env)

	if _, err := auth.Register(t.Context(), registrationInput()); err != nil {
		t.Fatalf("first register: %v", err)
	}
	dup := registrationInput()
	dup.Username = "otherchef"
	_, err := auth.Register(t.Context(), dup)
	apiErr := wantAPIError(t, err, 400)
	if apiErr.Code != "conflict" {
		t.Fatalf("expected conflict, got %q", apiErr.Code)
	}
}

func TestRegisterMissingFields(t *testing.T) {
	env := newTestEnv(t)
	auth := newAuthService(t, env)

	for _, tc := range []struct {
		name  string
		tweak func(*types.User)
	}{
		{"email", func(u *types.User) { u.Email = "" }},
		{"username", func(u *types.User) { u.Username = "" }},
		{"password", func(u *types.User) { u.Password = "" }},
		{"first name", func(u *types.User) { u.FirstName = "" }},
		{"last name", func(u *types.User) { u.LastName = "" }},
	} {
		t.Run(tc.name, func(t *testing.T) {
			input := registrationInput()
			tc.tweak(input)
			_, err := auth.Register(t.Context(), input)
			wantAPIError(t, err, 400)
		})
	}
}

func TestLoginTokenRoundTrip(t *testing.T) {
	env := newTestEnv(t)
	auth := newAuthService(t, env)
	ctx := t.Context()

	registered, err := auth.Register(ctx, registrationInput())
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	token, ttl, err := auth.Login(ctx, "chef@example.com", "s3cret-pw")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if token == "" || ttl != time.Hour {
		t.Fatalf("unexpected login result: token=%q ttl=%v", token, ttl)
	}

	authedCtx, err := auth.SetContextFromToken(ctx, token)
	if err != nil {
		t.Fatalf("validate token: %v", err)
	}
	rd := requestdata.GetRequestData(authedCtx)
	if rd == nil || rd.UserID != registered.ID {
		t.Fatalf("context identity mismatch: %+v", rd)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	env := newTestEnv(t)
	auth := newAuthService(t, env)
	ctx := t.Context()

	if _, err := auth.Register(ctx, registrationInput()); err != nil {
		t.Fatalf("register: %v", err)
	}
	_, _, err := auth.Login(ctx, "chef@example.com", "wrong")
	wantAPIError(t, err, 401)

	_, _, err = auth.Login(ctx, "nobody@example.com", "s3cret-pw")
	wantAPIError(t, err, 401)
}

func TestLogoutRevokesToken(t *testing.T) {
	env := newTestEnv(t)
	auth := newAuthService(t, env)
	ctx := t.Context()

	if _, err := auth.Register(ctx, registrationInput()); err != nil {
		t.Fatalf("register: %v", err)
	}
	token, _, err := auth.Login(ctx, "chef@example.com", "s3cret-pw")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	authedCtx, err := auth.SetContextFromToken(ctx, token)
	if err != nil {
		t.Fatalf("validate token: %v", err)
	}

	if err := auth.Logout(authedCtx); err != nil {
		t.Fatalf("logout: %v", err)
	}

	// The signature is still valid but the session row is gone.
	_, err = auth.SetContextFromToken(ctx, token)
	wantAPIError(t, err, 401)

	err = auth.Logout(authedCtx)
	wantAPIError(t, err, 401)
}

func TestSetContextFromGarbageToken(t *testing.T) {
	env := newTestEnv(t)
	auth := newAuthService(t, env)
	_, err := auth.SetContextFromToken(t.Context(), "not-a-jwt")
	wantAPIError(t, err, 401)
}
