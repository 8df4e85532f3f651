package services

import (
	"context"
	"errors"
	"testing"

	"phonebook-server/models"
	"phonebook-server/storage/memstore"
	apierrors "phonebook-server/utils/errors"
)

func TestTokenCodecRoundTrip(t *testing.T) {
	codec := NewTokenCodec("test-secret")
	user := models.User{Username: "alice"}
	users := memstore.NewUserStore()
	created, err := users.Insert(context.Background(), user)
	if err != nil {
		t.Fatalf("insert user: %v", err)
	}

	token, err := codec.Issue(created)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	claims, err := codec.Verify(token)
	if err != nil {
		t.Fatalf("verify token: %v", err)
	}
	if claims.Username != "alice" {
		t.Errorf("claims username = %q, want alice", claims.Username)
	}
	if claims.UserID != created.ID {
		t.Errorf("claims user id = %v, want %v", claims.UserID, created.ID)
	}
}

func TestTokenCodecRejectsBadTokens(t *testing.T) {
	codec := NewTokenCodec("test-secret")
	other := NewTokenCodec("other-secret")
	user := models.User{Username: "alice"}
	users := memstore.NewUserStore()
	created, err := users.Insert(context.Background(), user)
	if err != nil {
		t.Fatalf("insert user: %v", err)
	}

	foreign, err := other.Issue(created)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	for name, token := range map[string]string{
		"malformed":    "not-a-token",
		"empty":        "",
		"wrong secret": foreign,
	} {
		if _, err := codec.Verify(token); !errors.Is(err, apierrors.ErrInvalidToken) {
			t.Errorf("%s: Verify error = %v, want ErrInvalidToken", name, err)
		}
	}
}

func TestCurrentUser(t *testing.T) {
	ctx := context.Background()
	persons := memstore.NewPersonStore()
	users := memstore.NewUserStore()
	userService := NewUserService(users, persons)
	codec := NewTokenCodec("test-secret")
	authService := NewAuthService(codec, userService)

	resolved, err := userService.Create(ctx, "alice")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	token, err := codec.Issue(resolved.User)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	t.Run("no header is anonymous", func(t *testing.T) {
		current, err := authService.CurrentUser(ctx, "")
		if err != nil || current != nil {
			t.Fatalf("CurrentUser = (%v, %v), want (nil, nil)", current, err)
		}
	})

	t.Run("non-bearer scheme is anonymous", func(t *testing.T) {
		current, err := authService.CurrentUser(ctx, "Token "+token)
		if err != nil || current != nil {
			t.Fatalf("CurrentUser = (%v, %v), want (nil, nil)", current, err)
		}
	})

	t.Run("valid token resolves user", func(t *testing.T) {
		current, err := authService.CurrentUser(ctx, "Bearer "+token)
		if err != nil {
			t.Fatalf("CurrentUser: %v", err)
		}
		if current == nil || current.User.Username != "alice" {
			t.Fatalf("CurrentUser = %+v, want alice", current)
		}
	})

	t.Run("prefix match is case-insensitive", func(t *testing.T) {
		current, err := authService.CurrentUser(ctx, "bearer "+token)
		if err != nil || current == nil {
			t.Fatalf("CurrentUser = (%v, %v), want user", current, err)
		}
	})

	t.Run("garbage token fails the request", func(t *testing.T) {
		_, err := authService.CurrentUser(ctx, "Bearer garbage")
		if !errors.Is(err, apierrors.ErrInvalidToken) {
			t.Fatalf("CurrentUser error = %v, want ErrInvalidToken", err)
		}
	})

	t.Run("token for missing user is invalid", func(t *testing.T) {
		ghost := models.User{Username: "ghost"}
		orphanStore := memstore.NewUserStore()
		inserted, err := orphanStore.Insert(ctx, ghost)
		if err != nil {
			t.Fatalf("insert ghost: %v", err)
		}
		ghostToken, err := codec.Issue(inserted)
		if err != nil {
			t.Fatalf("issue ghost token: %v", err)
		}
		if _, err := authService.CurrentUser(ctx, "Bearer "+ghostToken); !errors.Is(err, apierrors.ErrInvalidToken) {
			t.Fatalf("CurrentUser error = %v, want ErrInvalidToken", err)
		}
	})
}
