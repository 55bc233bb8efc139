package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/example/praxis/internal/apperr"
	"github.com/example/praxis/internal/core/theme"
	"github.com/example/praxis/internal/ports/secondary"
)

// ProfileRepository implements secondary.ProfileRepository and
// secondary.ProfileStore with SQLite.
type ProfileRepository struct {
	db *sql.DB
}

// NewProfileRepository creates a new SQLite profile repository.
func NewProfileRepository(db *sql.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

var (
	_ secondary.ProfileRepository = (*ProfileRepository)(nil)
	_ secondary.ProfileStore      = (*ProfileRepository)(nil)
)

const profileSelectCols = `user_id, full_name, email, cpf, phone, oab_number, state, city, avatar_type, avatar_data,
	theme_settings, subscription_active, approved_by_admin, approval_date, next_payment, created_at, updated_at`

func scanProfile(s scanner) (*secondary.ProfileRecord, error) {
	var (
		cpf, phone, oab, themeJSON sql.NullString
		approvalDate, nextPayment  sql.NullTime
		createdAt, updatedAt       time.Time
	)

	r := &secondary.ProfileRecord{}
	err := s.Scan(&r.UserID, &r.FullName, &r.Email, &cpf, &phone, &oab, &r.State, &r.City, &r.AvatarType, &r.AvatarData,
		&themeJSON, &r.SubscriptionActive, &r.ApprovedByAdmin, &approvalDate, &nextPayment, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	r.CPF = cpf.String
	r.Phone = phone.String
	r.OABNumber = oab.String
	r.ThemeSettings = themeJSON.String
	r.ApprovalDate = formatNullTime(approvalDate)
	r.NextPayment = formatNullTime(nextPayment)
	r.CreatedAt = createdAt.Format(time.RFC3339)
	r.UpdatedAt = updatedAt.Format(time.RFC3339)
	return r, nil
}

// Create persists a new profile.
func (r *ProfileRepository) Create(ctx context.Context, p *secondary.ProfileRecord) error {
	avatarType := p.AvatarType
	if avatarType == "" {
		avatarType = "initials"
	}
	avatarData := p.AvatarData
	if avatarData == "" {
		avatarData = "{}"
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO user_profiles (user_id, full_name, email, cpf, phone, oab_number, state, city, avatar_type, avatar_data, theme_settings)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.UserID, p.FullName, p.Email, nullString(p.CPF), nullString(p.Phone), nullString(p.OABNumber),
		p.State, p.City, avatarType, avatarData, nullString(p.ThemeSettings),
	)
	if err != nil {
		return fmt.Errorf("failed to create profile: %w", err)
	}
	return nil
}

// GetByUserID retrieves a profile; missing rows return apperr.ErrProfileNotFound.
func (r *ProfileRepository) GetByUserID(ctx context.Context, userID string) (*secondary.ProfileRecord, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+profileSelectCols+" FROM user_profiles WHERE user_id = ?", userID)

	record, err := scanProfile(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user %s: %w", userID, apperr.ErrProfileNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return record, nil
}

// Update updates the editable profile fields.
func (r *ProfileRepository) Update(ctx context.Context, p *secondary.ProfileRecord) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE user_profiles SET full_name = ?, email = ?, cpf = ?, phone = ?, oab_number = ?, state = ?, city = ?,
			updated_at = CURRENT_TIMESTAMP
		 WHERE user_id = ?`,
		p.FullName, p.Email, nullString(p.CPF), nullString(p.Phone), nullString(p.OABNumber), p.State, p.City, p.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	return requireProfile(result, p.UserID)
}

// UpdateAvatar replaces the avatar type and JSON payload.
func (r *ProfileRepository) UpdateAvatar(ctx context.Context, userID, avatarType, avatarData string) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE user_profiles SET avatar_type = ?, avatar_data = ?, updated_at = CURRENT_TIMESTAMP WHERE user_id = ?",
		avatarType, avatarData, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to update avatar: %w", err)
	}
	return requireProfile(result, userID)
}

// LoadTheme returns the stored theme settings, nil when the profile has none.
func (r *ProfileRepository) LoadTheme(ctx context.Context, userID string) (*theme.Settings, error) {
	var raw sql.NullString
	err := r.db.QueryRowContext(ctx, "SELECT theme_settings FROM user_profiles WHERE user_id = ?", userID).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user %s: %w", userID, apperr.ErrProfileNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load theme: %w", err)
	}
	if !raw.Valid || raw.String == "" {
		return nil, nil
	}

	var s theme.Settings
	if err := json.Unmarshal([]byte(raw.String), &s); err != nil {
		return nil, fmt.Errorf("failed to decode theme settings: %w", err)
	}
	return &s, nil
}

// SaveTheme overwrites the stored theme settings.
func (r *ProfileRepository) SaveTheme(ctx context.Context, userID string, s theme.Settings) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode theme settings: %w", err)
	}
	result, err := r.db.ExecContext(ctx,
		"UPDATE user_profiles SET theme_settings = ?, updated_at = CURRENT_TIMESTAMP WHERE user_id = ?",
		string(data), userID,
	)
	if err != nil {
		return fmt.Errorf("failed to save theme: %w", err)
	}
	return requireProfile(result, userID)
}

func requireProfile(result sql.Result, userID string) error {
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("user %s: %w", userID, apperr.ErrProfileNotFound)
	}
	return nil
}
