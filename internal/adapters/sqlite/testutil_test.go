// Package sqlite_test contains integration tests for SQLite repositories.
//
// # Schema Protection
//
// This file is the SINGLE POINT where the database schema is loaded for tests.
// All test setup functions use db.GetSchemaSQL() so tests run against the
// authoritative schema. Do not hardcode CREATE TABLE statements in test
// files; use setupTestDB() and the seed* helpers.
package sqlite_test

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/praxis/internal/db"
)

const (
	testUser  = "user-1"
	otherUser = "user-2"
)

// setupTestDB creates an in-memory database with the authoritative schema.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	// Every connection to :memory: is a separate database.
	testDB.SetMaxOpenConns(1)

	if _, err := testDB.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("failed to enable foreign keys: %v", err)
	}
	if _, err := testDB.Exec(db.GetSchemaSQL()); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// seedClient inserts a test client owned by userID and returns its ID.
func seedClient(t *testing.T, db *sql.DB, id, userID, name string) string {
	t.Helper()
	if id == "" {
		id = "CLIENT-001"
	}
	if userID == "" {
		userID = testUser
	}
	if name == "" {
		name = "Test Client"
	}
	_, err := db.Exec("INSERT INTO clients (id, user_id, name, category, status) VALUES (?, ?, ?, 'civil', 'active')", id, userID, name)
	if err != nil {
		t.Fatalf("failed to seed client: %v", err)
	}
	return id
}

// seedCase inserts a test case for a client and returns its ID.
func seedCase(t *testing.T, db *sql.DB, id, userID, clientID, status string) string {
	t.Helper()
	if id == "" {
		id = "CASE-001"
	}
	if userID == "" {
		userID = testUser
	}
	if status == "" {
		status = "open"
	}
	_, err := db.Exec("INSERT INTO cases (id, user_id, client_id, category, status) VALUES (?, ?, ?, 'civil', ?)", id, userID, clientID, status)
	if err != nil {
		t.Fatalf("failed to seed case: %v", err)
	}
	return id
}

// seedProfile inserts a bare profile row for userID.
func seedProfile(t *testing.T, db *sql.DB, userID string) {
	t.Helper()
	_, err := db.Exec("INSERT INTO user_profiles (user_id, full_name, email) VALUES (?, 'Test User', 'test@example.com')", userID)
	if err != nil {
		t.Fatalf("failed to seed profile: %v", err)
	}
}

// seedTemplate inserts a petition template and returns its ID.
func seedTemplate(t *testing.T, db *sql.DB, id, userID, ordem string) string {
	t.Helper()
	_, err := db.Exec(
		"INSERT INTO petition_templates (id, user_id, tema, subtema, titulo, ordem) VALUES (?, ?, 'PETIÇÃO GERAL', 'Geral', 'Modelo', ?)",
		id, userID, ordem,
	)
	if err != nil {
		t.Fatalf("failed to seed template: %v", err)
	}
	return id
}
