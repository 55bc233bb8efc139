package db

import (
	"database/sql"
	"fmt"
	"time"
)

// SeedFixtures populates the database with demo data for userID: a few
// clients with cases, tasks, a registered process and a petition template.
func SeedFixtures(database *sql.DB, userID string) error {
	now := time.Now().UTC()
	ts := now.Format(time.RFC3339)

	tx, err := database.Begin()
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	defer tx.Rollback()

	clients := []struct{ id, name, cpf, category, phone, email string }{
		{"CLIENT-001", "Maria Aparecida Souza", "529.982.247-25", "social-security", "(11) 98765-4321", "maria.souza@example.com"},
		{"CLIENT-002", "João Batista Lima", "111.444.777-35", "criminal", "(21) 3456-7890", ""},
		{"CLIENT-003", "Ana Clara Ribeiro", "", "labor", "", "ana.ribeiro@example.com"},
	}
	for _, c := range clients {
		if _, err := tx.Exec(
			`INSERT INTO clients (id, user_id, name, cpf, category, phone, email, nationality, status, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, 'brasileira', 'active', ?, ?)`,
			c.id, userID, c.name, nullIfEmpty(c.cpf), c.category, nullIfEmpty(c.phone), nullIfEmpty(c.email), ts, ts,
		); err != nil {
			return fmt.Errorf("seed clients: %w", err)
		}
	}

	cases := []struct{ id, clientID, category, subcategory, desc, status string }{
		{"CASE-001", "CLIENT-001", "social-security", "retirement", "Aposentadoria por idade", "open"},
		{"CASE-002", "CLIENT-001", "social-security", "disability", "BPC/LOAS", "completed"},
		{"CASE-003", "CLIENT-002", "criminal", "fraud", "Defesa em ação penal", "open"},
	}
	for _, c := range cases {
		var completedAt any
		if c.status == "completed" {
			completedAt = ts
		}
		if _, err := tx.Exec(
			`INSERT INTO cases (id, user_id, client_id, category, subcategory, description, status, created_at, updated_at, completed_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			c.id, userID, c.clientID, c.category, c.subcategory, c.desc, c.status, ts, ts, completedAt,
		); err != nil {
			return fmt.Errorf("seed cases: %w", err)
		}
	}

	tasks := []struct {
		id, caseID, clientID, title, status string
		due                                 time.Time
	}{
		{"TASK-001", "CASE-001", "CLIENT-001", "Protocolar requerimento no INSS", "in-progress", now.AddDate(0, 0, 7)},
		{"TASK-002", "CASE-003", "CLIENT-002", "Apresentar resposta à acusação", "in-progress", now.AddDate(0, 0, -2)},
		{"TASK-003", "CASE-002", "CLIENT-001", "Arquivar documentos", "completed", now.AddDate(0, 0, -10)},
	}
	for _, t := range tasks {
		if _, err := tx.Exec(
			`INSERT INTO tasks (id, user_id, case_id, client_id, title, due_date, status, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			t.id, userID, t.caseID, t.clientID, t.title, t.due.Format(time.RFC3339), t.status, ts, ts,
		); err != nil {
			return fmt.Errorf("seed tasks: %w", err)
		}
	}

	if _, err := tx.Exec(
		`INSERT INTO judicial_processes (id, user_id, client_id, process_number, tribunal, description, registration_date, created_at, updated_at)
		 VALUES ('PROC-001', ?, 'CLIENT-002', '12345674720238260100', '8.26', 'Ação penal', ?, ?, ?)`,
		userID, now.Format("2006-01-02"), ts, ts,
	); err != nil {
		return fmt.Errorf("seed processes: %w", err)
	}

	if _, err := tx.Exec(
		`INSERT INTO petition_templates (id, user_id, tema, subtema, titulo, ordem, descricao, created_at, updated_at)
		 VALUES ('TPL-001', ?, 'PETIÇÃO GERAL', 'Geral', 'Petição inicial – GERAL – Contra PESSOA FÍSICA', '1.1', 'Modelo base', ?, ?)`,
		userID, ts, ts,
	); err != nil {
		return fmt.Errorf("seed templates: %w", err)
	}

	if _, err := tx.Exec(
		`INSERT INTO user_profiles (user_id, full_name, email, state, city, created_at, updated_at)
		 VALUES (?, 'Dra. Helena Prado', 'helena@example.com', 'SP', 'São Paulo', ?, ?)
		 ON CONFLICT(user_id) DO NOTHING`,
		userID, ts, ts,
	); err != nil {
		return fmt.Errorf("seed profile: %w", err)
	}

	if _, err := tx.Exec(
		`INSERT INTO payments (id, user_id, amount_cents, status, method, created_at, updated_at)
		 VALUES ('PAY-001', ?, 9900, 'paid', 'pix', ?, ?)`,
		userID, now.AddDate(0, -1, 0).Format(time.RFC3339), ts,
	); err != nil {
		return fmt.Errorf("seed payments: %w", err)
	}

	return tx.Commit()
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
