package sqlite_test

import (
	"context"
	"errors"
	"testing"

	"github.com/example/praxis/internal/adapters/sqlite"
	"github.com/example/praxis/internal/apperr"
	"github.com/example/praxis/internal/core/theme"
	"github.com/example/praxis/internal/ports/secondary"
)

func TestProfileRepository_CreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewProfileRepository(db)
	ctx := context.Background()

	if _, err := repo.GetByUserID(ctx, testUser); !errors.Is(err, apperr.ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}

	err := repo.Create(ctx, &secondary.ProfileRecord{
		UserID:     testUser,
		FullName:   "Helena Prado",
		Email:      "helena@example.com",
		AvatarData: `{"color":"#8B9474"}`,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := repo.GetByUserID(ctx, testUser)
	if err != nil {
		t.Fatalf("GetByUserID failed: %v", err)
	}
	if got.AvatarType != "initials" {
		t.Errorf("expected default avatar type, got %s", got.AvatarType)
	}
	if got.SubscriptionActive {
		t.Error("expected inactive subscription")
	}
}

func TestProfileRepository_UpdateAndAvatar(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewProfileRepository(db)
	ctx := context.Background()
	seedProfile(t, db, testUser)

	got, _ := repo.GetByUserID(ctx, testUser)
	got.OABNumber = "123456/SP"
	got.City = "Campinas"
	if err := repo.Update(ctx, got); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if err := repo.UpdateAvatar(ctx, testUser, "predefined", `{"url":"/avatars/a.png"}`); err != nil {
		t.Fatalf("UpdateAvatar failed: %v", err)
	}

	got, _ = repo.GetByUserID(ctx, testUser)
	if got.OABNumber != "123456/SP" || got.City != "Campinas" {
		t.Errorf("update not applied: %+v", got)
	}
	if got.AvatarType != "predefined" {
		t.Errorf("expected predefined avatar, got %s", got.AvatarType)
	}

	if err := repo.UpdateAvatar(ctx, otherUser, "icon", "{}"); !errors.Is(err, apperr.ErrProfileNotFound) {
		t.Errorf("expected ErrProfileNotFound, got %v", err)
	}
}

func TestProfileRepository_ThemeStore(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewProfileRepository(db)
	ctx := context.Background()

	if _, err := repo.LoadTheme(ctx, testUser); !errors.Is(err, apperr.ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}
	if err := repo.SaveTheme(ctx, testUser, theme.Defaults()); !errors.Is(err, apperr.ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound on save, got %v", err)
	}

	seedProfile(t, db, testUser)
	s, err := repo.LoadTheme(ctx, testUser)
	if err != nil {
		t.Fatalf("LoadTheme failed: %v", err)
	}
	if s != nil {
		t.Errorf("expected nil settings for a fresh profile, got %+v", s)
	}

	want := theme.Defaults().WithHeaderColor("#3B82F6")
	if err := repo.SaveTheme(ctx, testUser, want); err != nil {
		t.Fatalf("SaveTheme failed: %v", err)
	}
	s, err = repo.LoadTheme(ctx, testUser)
	if err != nil {
		t.Fatalf("LoadTheme failed: %v", err)
	}
	if s == nil || *s != want {
		t.Errorf("expected %+v, got %+v", want, s)
	}
}
