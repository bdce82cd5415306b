package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"snapvault/internal/domain/user"
	"snapvault/internal/repository"
	apperrors "snapvault/pkg/errors"
)

func TestUserRepository_DuplicateUsername(t *testing.T) {
	repo := repository.NewUserRepository(newTestDB(t))
	ctx := context.Background()

	first := &user.User{Username: "alice", PasswordHash: "x", CreatedAt: time.Now()}
	if err := repo.Create(ctx, first); err != nil {
		t.Fatalf("first create: %v", err)
	}

	second := &user.User{Username: "alice", PasswordHash: "y", CreatedAt: time.Now()}
	err := repo.Create(ctx, second)
	if !errors.Is(err, apperrors.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestUserRepository_GetByUsername(t *testing.T) {
	repo := repository.NewUserRepository(newTestDB(t))
	ctx := context.Background()

	created := &user.User{Username: "bob", PasswordHash: "h", CreatedAt: time.Now()}
	if err := repo.Create(ctx, created); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := repo.GetByUsername(ctx, "bob")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ID != created.ID || got.PasswordHash != "h" {
		t.Errorf("got %+v, want id=%d hash=h", got, created.ID)
	}

	_, err = repo.GetByUsername(ctx, "nobody")
	if !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
