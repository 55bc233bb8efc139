package sqlite_test

import (
	"context"
	"errors"
	"testing"

	"github.com/example/praxis/internal/adapters/sqlite"
	"github.com/example/praxis/internal/apperr"
	"github.com/example/praxis/internal/ports/secondary"
)

func TestTemplateRepository_GetByOrdem(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewTemplateRepository(db)
	ctx := context.Background()

	if _, err := repo.GetByOrdem(ctx, testUser, "1.1"); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	seedTemplate(t, db, "TPL-001", testUser, "1.1")
	got, err := repo.GetByOrdem(ctx, testUser, "1.1")
	if err != nil {
		t.Fatalf("GetByOrdem failed: %v", err)
	}
	if got.ID != "TPL-001" {
		t.Errorf("expected TPL-001, got %s", got.ID)
	}
}

func TestTemplateRepository_Files(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewTemplateRepository(db)
	ctx := context.Background()
	seedTemplate(t, db, "TPL-001", testUser, "1.1")
	seedTemplate(t, db, "TPL-002", testUser, "1.2")

	for i, tpl := range []string{"TPL-001", "TPL-001", "TPL-002"} {
		id, err := repo.GetNextFileID(ctx)
		if err != nil {
			t.Fatalf("GetNextFileID failed: %v", err)
		}
		err = repo.AddFile(ctx, &secondary.TemplateFileRecord{
			ID: id, TemplateID: tpl, UserID: testUser, FileName: "modelo.pdf",
			StoragePath: "templates/x.pdf", MimeType: "application/pdf", Size: int64(100 * (i + 1)),
		})
		if err != nil {
			t.Fatalf("AddFile failed: %v", err)
		}
	}

	files, err := repo.ListFiles(ctx, testUser, "TPL-001")
	if err != nil {
		t.Fatalf("ListFiles failed: %v", err)
	}
	if len(files) != 2 {
		t.Errorf("expected 2 files for TPL-001, got %d", len(files))
	}

	all, _ := repo.ListFiles(ctx, testUser, "")
	if len(all) != 3 {
		t.Errorf("expected 3 files overall, got %d", len(all))
	}
	if all[2].ID != "TFILE-003" {
		t.Errorf("expected sequential file IDs, got %s", all[2].ID)
	}

	if err := repo.Delete(ctx, testUser, "TPL-001"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := repo.GetFile(ctx, testUser, "TFILE-001"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("expected files to cascade, got %v", err)
	}
}

func TestTemplateRepository_DeleteAll(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewTemplateRepository(db)
	ctx := context.Background()
	seedTemplate(t, db, "TPL-001", testUser, "1.1")
	seedTemplate(t, db, "TPL-002", testUser, "1.2")
	seedTemplate(t, db, "TPL-003", otherUser, "1.1")

	n, err := repo.DeleteAll(ctx, testUser)
	if err != nil {
		t.Fatalf("DeleteAll failed: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 deleted, got %d", n)
	}

	remaining, _ := repo.Count(ctx, otherUser)
	if remaining != 1 {
		t.Errorf("expected other user's template kept, got %d", remaining)
	}

	list, _ := repo.List(ctx, testUser)
	if len(list) != 0 {
		t.Errorf("expected no templates, got %d", len(list))
	}
}
