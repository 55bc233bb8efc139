package sqlite_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/example/praxis/internal/adapters/sqlite"
	"github.com/example/praxis/internal/apperr"
	"github.com/example/praxis/internal/ports/secondary"
)

// createTestTask is a helper that creates a task with a generated ID.
func createTestTask(t *testing.T, repo *sqlite.TaskRepository, ctx context.Context, title, due string) *secondary.TaskRecord {
	t.Helper()

	nextID, err := repo.GetNextID(ctx)
	if err != nil {
		t.Fatalf("GetNextID failed: %v", err)
	}

	task := &secondary.TaskRecord{ID: nextID, UserID: testUser, Title: title, DueDate: due}
	if err := repo.Create(ctx, task); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	return task
}

func TestTaskRepository_Create(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewTaskRepository(db)
	ctx := context.Background()
	seedClient(t, db, "CLIENT-001", testUser, "")
	seedCase(t, db, "CASE-001", testUser, "CLIENT-001", "open")

	due := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC).Format(time.RFC3339)
	task := &secondary.TaskRecord{
		ID:          "TASK-001",
		UserID:      testUser,
		CaseID:      "CASE-001",
		ClientID:    "CLIENT-001",
		Title:       "Protocolar petição",
		Description: "Prazo fatal",
		DueDate:     due,
	}
	if err := repo.Create(ctx, task); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := repo.GetByID(ctx, testUser, "TASK-001")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Status != "in-progress" {
		t.Errorf("expected status 'in-progress', got '%s'", got.Status)
	}
	if got.DueDate != due {
		t.Errorf("expected due date %s, got %s", due, got.DueDate)
	}
	if got.CaseID != "CASE-001" {
		t.Errorf("expected case 'CASE-001', got '%s'", got.CaseID)
	}
}

func TestTaskRepository_ListOrdersByDueDate(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewTaskRepository(db)
	ctx := context.Background()

	later := createTestTask(t, repo, ctx, "Later", "2026-05-01T12:00:00Z")
	undated := createTestTask(t, repo, ctx, "Undated", "")
	sooner := createTestTask(t, repo, ctx, "Sooner", "2026-04-01T12:00:00Z")

	got, err := repo.List(ctx, secondary.TaskFilters{UserID: testUser})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	want := []string{sooner.ID, later.ID, undated.ID}
	if len(got) != len(want) {
		t.Fatalf("expected %d tasks, got %d", len(want), len(got))
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("position %d: expected %s, got %s", i, id, got[i].ID)
		}
	}
}

func TestTaskRepository_UpdateStatus(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewTaskRepository(db)
	ctx := context.Background()
	task := createTestTask(t, repo, ctx, "Task", "")

	if err := repo.UpdateStatus(ctx, testUser, task.ID, "completed"); err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}
	got, _ := repo.GetByID(ctx, testUser, task.ID)
	if got.Status != "completed" || got.CompletedAt == "" {
		t.Errorf("expected completed with timestamp, got %+v", got)
	}

	counts, _ := repo.CountByStatus(ctx, testUser)
	if counts["completed"] != 1 {
		t.Errorf("expected 1 completed task, got %v", counts)
	}
}

func TestTaskRepository_DeleteCaseNullsReference(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewTaskRepository(db)
	ctx := context.Background()
	seedClient(t, db, "CLIENT-001", testUser, "")
	seedCase(t, db, "CASE-001", testUser, "CLIENT-001", "open")

	if err := repo.Create(ctx, &secondary.TaskRecord{ID: "TASK-001", UserID: testUser, CaseID: "CASE-001", Title: "T"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := db.Exec("DELETE FROM cases WHERE id = 'CASE-001'"); err != nil {
		t.Fatalf("delete case: %v", err)
	}

	got, err := repo.GetByID(ctx, testUser, "TASK-001")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.CaseID != "" {
		t.Errorf("expected case reference cleared, got %s", got.CaseID)
	}
}

func TestTaskRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewTaskRepository(db)
	ctx := context.Background()
	task := createTestTask(t, repo, ctx, "Task", "")

	if err := repo.Delete(ctx, otherUser, task.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("expected ErrNotFound for another user, got %v", err)
	}
	if err := repo.Delete(ctx, testUser, task.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := repo.GetByID(ctx, testUser, task.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestCreate_DuplicateIDIsReportedAsTaken(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	tasks := sqlite.NewTaskRepository(db)
	payments := sqlite.NewPaymentRepository(db)

	first := createTestTask(t, tasks, ctx, "Protocolar petição", "")
	err := tasks.Create(ctx, &secondary.TaskRecord{ID: first.ID, UserID: otherUser, Title: "Outra"})
	if !errors.Is(err, apperr.ErrIDTaken) {
		t.Errorf("expected ErrIDTaken for task, got %v", err)
	}

	pay := &secondary.PaymentRecord{ID: "PAY-001", UserID: testUser, AmountCents: 100}
	if err := payments.Create(ctx, pay); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := payments.Create(ctx, pay); !errors.Is(err, apperr.ErrIDTaken) {
		t.Errorf("expected ErrIDTaken for payment, got %v", err)
	}

	// A foreign key failure is not an ID collision.
	err = tasks.Create(ctx, &secondary.TaskRecord{ID: "TASK-999", UserID: testUser, Title: "x", CaseID: "CASE-404"})
	if err == nil || errors.Is(err, apperr.ErrIDTaken) {
		t.Errorf("expected a plain create error, got %v", err)
	}
}
