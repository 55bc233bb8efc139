package sqlite_test

import (
	"context"
	"errors"
	"testing"

	"github.com/example/praxis/internal/adapters/sqlite"
	"github.com/example/praxis/internal/apperr"
	"github.com/example/praxis/internal/ports/secondary"
)

func TestCaseRepository_CreateGetUpdate(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewCaseRepository(db)
	ctx := context.Background()
	seedClient(t, db, "CLIENT-001", testUser, "")

	id, err := repo.GetNextID(ctx)
	if err != nil {
		t.Fatalf("GetNextID failed: %v", err)
	}
	if id != "CASE-001" {
		t.Errorf("expected CASE-001, got %s", id)
	}

	err = repo.Create(ctx, &secondary.CaseRecord{
		ID: id, UserID: testUser, ClientID: "CLIENT-001",
		Category: "social-security", Subcategory: "retirement",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := repo.GetByID(ctx, testUser, id)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Status != "open" {
		t.Errorf("expected status 'open', got '%s'", got.Status)
	}
	if got.Description != "" {
		t.Errorf("expected empty description, got '%s'", got.Description)
	}

	got.Description = "Aposentadoria por idade"
	got.Subcategory = ""
	if err := repo.Update(ctx, got); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	got, _ = repo.GetByID(ctx, testUser, id)
	if got.Description != "Aposentadoria por idade" || got.Subcategory != "" {
		t.Errorf("update not applied: %+v", got)
	}
}

func TestCaseRepository_UpdateStatus(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewCaseRepository(db)
	ctx := context.Background()
	seedClient(t, db, "CLIENT-001", testUser, "")
	seedCase(t, db, "CASE-001", testUser, "CLIENT-001", "open")

	if err := repo.UpdateStatus(ctx, testUser, "CASE-001", "completed"); err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}
	got, _ := repo.GetByID(ctx, testUser, "CASE-001")
	if got.CompletedAt == "" {
		t.Error("expected completed_at to be set")
	}

	if err := repo.UpdateStatus(ctx, testUser, "CASE-001", "open"); err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}
	got, _ = repo.GetByID(ctx, testUser, "CASE-001")
	if got.CompletedAt != "" {
		t.Errorf("expected completed_at cleared, got %s", got.CompletedAt)
	}

	if err := repo.UpdateStatus(ctx, otherUser, "CASE-001", "completed"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("expected ErrNotFound for another user, got %v", err)
	}
}

func TestCaseRepository_ListAndCount(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewCaseRepository(db)
	ctx := context.Background()
	seedClient(t, db, "CLIENT-001", testUser, "")
	seedClient(t, db, "CLIENT-002", testUser, "")
	seedCase(t, db, "CASE-001", testUser, "CLIENT-001", "open")
	seedCase(t, db, "CASE-002", testUser, "CLIENT-001", "completed")
	seedCase(t, db, "CASE-003", testUser, "CLIENT-002", "open")

	byClient, err := repo.List(ctx, secondary.CaseFilters{UserID: testUser, ClientID: "CLIENT-001"})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(byClient) != 2 {
		t.Errorf("expected 2 cases for CLIENT-001, got %d", len(byClient))
	}

	open, _ := repo.List(ctx, secondary.CaseFilters{UserID: testUser, Status: "open"})
	if len(open) != 2 {
		t.Errorf("expected 2 open cases, got %d", len(open))
	}

	counts, err := repo.CountByStatus(ctx, testUser)
	if err != nil {
		t.Fatalf("CountByStatus failed: %v", err)
	}
	if counts["open"] != 2 || counts["completed"] != 1 {
		t.Errorf("unexpected counts: %v", counts)
	}

	ok, _ := repo.ClientExists(ctx, testUser, "CLIENT-002")
	if !ok {
		t.Error("expected CLIENT-002 to exist")
	}
	ok, _ = repo.ClientExists(ctx, otherUser, "CLIENT-002")
	if ok {
		t.Error("expected CLIENT-002 hidden from another user")
	}
}
