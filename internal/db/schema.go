package db

import (
	"database/sql"
	"fmt"
)

// SchemaSQL is the complete schema for fresh installs. It reflects the
// state after every migration.
//
// This is the single source of truth for the database schema. Repository
// tests build their in-memory databases from GetSchemaSQL(), so a column
// referenced by code but missing here fails immediately with "no such column".
//
// When adding new columns or tables:
//  1. Add a migration in migrations.go
//  2. Update SchemaSQL here
const SchemaSQL = `
CREATE TABLE IF NOT EXISTS clients (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	name TEXT NOT NULL,
	cpf TEXT,
	category TEXT NOT NULL CHECK(category IN ('social-security', 'criminal', 'civil', 'labor', 'administrative')),
	phone TEXT,
	email TEXT,
	birth_date TEXT,
	gender TEXT,
	marital_status TEXT,
	nationality TEXT NOT NULL DEFAULT '',
	profession TEXT NOT NULL DEFAULT '',
	rg_number TEXT NOT NULL DEFAULT '',
	rg_issuer TEXT NOT NULL DEFAULT '',
	address_street TEXT NOT NULL DEFAULT '',
	address_number TEXT NOT NULL DEFAULT '',
	address_neighborhood TEXT NOT NULL DEFAULT '',
	address_city TEXT NOT NULL DEFAULT '',
	address_state TEXT NOT NULL DEFAULT '',
	address_zip TEXT NOT NULL DEFAULT '',
	respondent_name TEXT NOT NULL DEFAULT '',
	respondent_address TEXT NOT NULL DEFAULT '',
	respondent_cpf TEXT NOT NULL DEFAULT '',
	status TEXT NOT NULL CHECK(status IN ('active', 'inactive', 'pending')) DEFAULT 'active',
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_clients_user ON clients(user_id);
CREATE INDEX IF NOT EXISTS idx_clients_status ON clients(status);

CREATE TABLE IF NOT EXISTS cases (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	client_id TEXT NOT NULL,
	category TEXT NOT NULL,
	subcategory TEXT,
	description TEXT,
	status TEXT NOT NULL CHECK(status IN ('open', 'completed')) DEFAULT 'open',
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	completed_at DATETIME,
	FOREIGN KEY (client_id) REFERENCES clients(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_cases_user ON cases(user_id);
CREATE INDEX IF NOT EXISTS idx_cases_client ON cases(client_id);
CREATE INDEX IF NOT EXISTS idx_cases_status ON cases(status);

CREATE TABLE IF NOT EXISTS tasks (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	case_id TEXT,
	client_id TEXT,
	title TEXT NOT NULL,
	description TEXT,
	due_date DATETIME,
	status TEXT NOT NULL CHECK(status IN ('in-progress', 'delayed', 'completed')) DEFAULT 'in-progress',
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	completed_at DATETIME,
	FOREIGN KEY (case_id) REFERENCES cases(id) ON DELETE SET NULL,
	FOREIGN KEY (client_id) REFERENCES clients(id) ON DELETE SET NULL
);

CREATE INDEX IF NOT EXISTS idx_tasks_user ON tasks(user_id);
CREATE INDEX IF NOT EXISTS idx_tasks_status ON tasks(status);
CREATE INDEX IF NOT EXISTS idx_tasks_case ON tasks(case_id);

CREATE TABLE IF NOT EXISTS judicial_processes (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	client_id TEXT NOT NULL,
	process_number TEXT NOT NULL,
	tribunal TEXT,
	description TEXT,
	registration_date TEXT,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	UNIQUE (user_id, process_number),
	FOREIGN KEY (client_id) REFERENCES clients(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_processes_user ON judicial_processes(user_id);
CREATE INDEX IF NOT EXISTS idx_processes_tribunal ON judicial_processes(tribunal);

CREATE TABLE IF NOT EXISTS user_profiles (
	user_id TEXT PRIMARY KEY,
	full_name TEXT NOT NULL DEFAULT '',
	email TEXT NOT NULL DEFAULT '',
	cpf TEXT,
	phone TEXT,
	oab_number TEXT,
	state TEXT NOT NULL DEFAULT '',
	city TEXT NOT NULL DEFAULT '',
	avatar_type TEXT NOT NULL DEFAULT 'initials',
	avatar_data TEXT NOT NULL DEFAULT '{}',
	theme_settings TEXT,
	subscription_active INTEGER NOT NULL DEFAULT 0,
	approved_by_admin INTEGER NOT NULL DEFAULT 0,
	approval_date DATETIME,
	next_payment DATETIME,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS petition_templates (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	tema TEXT NOT NULL,
	subtema TEXT NOT NULL,
	titulo TEXT NOT NULL,
	ordem TEXT NOT NULL,
	descricao TEXT,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_templates_user ON petition_templates(user_id);
CREATE INDEX IF NOT EXISTS idx_templates_ordem ON petition_templates(user_id, ordem);

CREATE TABLE IF NOT EXISTS template_files (
	id TEXT PRIMARY KEY,
	template_id TEXT NOT NULL,
	user_id TEXT NOT NULL,
	file_name TEXT NOT NULL,
	storage_path TEXT NOT NULL,
	mime_type TEXT NOT NULL,
	size INTEGER NOT NULL DEFAULT 0,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (template_id) REFERENCES petition_templates(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_template_files_template ON template_files(template_id);

CREATE TABLE IF NOT EXISTS uploaded_icons (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	name TEXT NOT NULL,
	storage_path TEXT NOT NULL,
	url TEXT NOT NULL,
	size INTEGER NOT NULL DEFAULT 0,
	mime_type TEXT NOT NULL,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_icons_user ON uploaded_icons(user_id);

CREATE TABLE IF NOT EXISTS payments (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	amount_cents INTEGER NOT NULL,
	status TEXT NOT NULL CHECK(status IN ('pending', 'confirmed', 'paid', 'cancelled', 'failed')) DEFAULT 'pending',
	method TEXT,
	subscription_id TEXT,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_payments_user_status ON payments(user_id, status);
`

// InitSchema creates the schema on a fresh database or migrates an
// existing one.
func InitSchema(db *sql.DB) error {
	var tableCount int
	err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'").Scan(&tableCount)
	if err != nil {
		return err
	}

	if tableCount > 0 {
		return RunMigrations(db)
	}

	var existing int
	err = db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name IN ('clients', 'cases', 'tasks')").Scan(&existing)
	if err != nil {
		return err
	}
	if existing > 0 {
		// Tables from before versioning: migrate forward.
		return RunMigrations(db)
	}

	// Completely fresh install: create the modern schema directly and mark
	// every migration as applied.
	if _, err := db.Exec(SchemaSQL); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	if err := createVersionTable(db); err != nil {
		return err
	}
	for _, m := range migrations {
		if _, err := db.Exec("INSERT INTO schema_version (version) VALUES (?)", m.Version); err != nil {
			return err
		}
	}
	return nil
}

// GetSchemaSQL returns the authoritative schema SQL for use by tests.
// Tests should use this instead of hardcoding their own schema to prevent drift.
func GetSchemaSQL() string {
	return SchemaSQL
}
