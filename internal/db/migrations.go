package db

import (
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/example/praxis/internal/logger"
)

// Migration represents a database migration
type Migration struct {
	Version int
	Name    string
	Up      func(*sql.Tx) error
}

// migrations is the list of all migrations in order
var migrations = []Migration{
	{
		Version: 1,
		Name:    "create_clients_cases_tasks",
		Up:      migrationV1,
	},
	{
		Version: 2,
		Name:    "add_judicial_processes_and_profiles",
		Up:      migrationV2,
	},
	{
		Version: 3,
		Name:    "add_petition_templates",
		Up:      migrationV3,
	},
	{
		Version: 4,
		Name:    "add_uploaded_icons_and_payments",
		Up:      migrationV4,
	},
	{
		Version: 5,
		Name:    "add_theme_settings_to_profiles",
		Up:      migrationV5,
	},
}

func createVersionTable(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create schema_version table: %w", err)
	}
	return nil
}

// RunMigrations executes all pending migrations, each in its own transaction.
func RunMigrations(db *sql.DB) error {
	if err := createVersionTable(db); err != nil {
		return err
	}

	var currentVersion int
	err := db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("failed to get current schema version: %w", err)
	}

	log := logger.Named("db")
	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		log.Info("running migration", zap.Int("version", migration.Version), zap.String("name", migration.Name))

		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("failed to begin transaction for migration %d: %w", migration.Version, err)
		}

		if err := migration.Up(tx); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", migration.Version, err)
		}

		if _, err := tx.Exec("INSERT INTO schema_version (version) VALUES (?)", migration.Version); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to record migration %d: %w", migration.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, err)
		}
	}

	return nil
}

// CurrentVersion returns the highest applied migration.
func CurrentVersion(db *sql.DB) (int, error) {
	var v int
	err := db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&v)
	return v, err
}

func execAll(tx *sql.Tx, stmts ...string) error {
	for _, s := range stmts {
		if _, err := tx.Exec(s); err != nil {
			return err
		}
	}
	return nil
}

// migrationV1 creates the first tables: clients, cases and tasks.
func migrationV1(tx *sql.Tx) error {
	return execAll(tx,
		`CREATE TABLE IF NOT EXISTS clients (
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
		)`,
		`CREATE INDEX IF NOT EXISTS idx_clients_user ON clients(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_clients_status ON clients(status)`,
		`CREATE TABLE IF NOT EXISTS cases (
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
		)`,
		`CREATE INDEX IF NOT EXISTS idx_cases_user ON cases(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_cases_client ON cases(client_id)`,
		`CREATE INDEX IF NOT EXISTS idx_cases_status ON cases(status)`,
		`CREATE TABLE IF NOT EXISTS tasks (
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
		)`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_user ON tasks(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_status ON tasks(status)`,
		`CREATE INDEX IF NOT EXISTS idx_tasks_case ON tasks(case_id)`,
	)
}

// migrationV2 adds judicial processes and user profiles (without theme settings).
func migrationV2(tx *sql.Tx) error {
	return execAll(tx,
		`CREATE TABLE IF NOT EXISTS judicial_processes (
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
		)`,
		`CREATE INDEX IF NOT EXISTS idx_processes_user ON judicial_processes(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_processes_tribunal ON judicial_processes(tribunal)`,
		`CREATE TABLE IF NOT EXISTS user_profiles (
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
			subscription_active INTEGER NOT NULL DEFAULT 0,
			approved_by_admin INTEGER NOT NULL DEFAULT 0,
			approval_date DATETIME,
			next_payment DATETIME,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
	)
}

// migrationV3 adds petition templates and their files.
func migrationV3(tx *sql.Tx) error {
	return execAll(tx,
		`CREATE TABLE IF NOT EXISTS petition_templates (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			tema TEXT NOT NULL,
			subtema TEXT NOT NULL,
			titulo TEXT NOT NULL,
			ordem TEXT NOT NULL,
			descricao TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_templates_user ON petition_templates(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_templates_ordem ON petition_templates(user_id, ordem)`,
		`CREATE TABLE IF NOT EXISTS template_files (
			id TEXT PRIMARY KEY,
			template_id TEXT NOT NULL,
			user_id TEXT NOT NULL,
			file_name TEXT NOT NULL,
			storage_path TEXT NOT NULL,
			mime_type TEXT NOT NULL,
			size INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (template_id) REFERENCES petition_templates(id) ON DELETE CASCADE
		)`,
		`CREATE INDEX IF NOT EXISTS idx_template_files_template ON template_files(template_id)`,
	)
}

// migrationV4 adds uploaded avatar icons and subscription payments.
func migrationV4(tx *sql.Tx) error {
	return execAll(tx,
		`CREATE TABLE IF NOT EXISTS uploaded_icons (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			name TEXT NOT NULL,
			storage_path TEXT NOT NULL,
			url TEXT NOT NULL,
			size INTEGER NOT NULL DEFAULT 0,
			mime_type TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_icons_user ON uploaded_icons(user_id)`,
		`CREATE TABLE IF NOT EXISTS payments (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			amount_cents INTEGER NOT NULL,
			status TEXT NOT NULL CHECK(status IN ('pending', 'confirmed', 'paid', 'cancelled', 'failed')) DEFAULT 'pending',
			method TEXT,
			subscription_id TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_payments_user_status ON payments(user_id, status)`,
	)
}

// migrationV5 stores theme settings on the profile row.
func migrationV5(tx *sql.Tx) error {
	var n int
	err := tx.QueryRow("SELECT COUNT(*) FROM pragma_table_info('user_profiles') WHERE name = 'theme_settings'").Scan(&n)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	_, err = tx.Exec(`ALTER TABLE user_profiles ADD COLUMN theme_settings TEXT`)
	return err
}
