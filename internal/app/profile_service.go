package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/example/praxis/internal/apperr"
	"github.com/example/praxis/internal/core/profile"
	"github.com/example/praxis/internal/ctxutil"
	"github.com/example/praxis/internal/logger"
	"github.com/example/praxis/internal/ports/primary"
	"github.com/example/praxis/internal/ports/secondary"
	"github.com/example/praxis/internal/validation"
)

const iconBucket = "icons"

// ProfileServiceImpl implements the ProfileService interface.
type ProfileServiceImpl struct {
	profileRepo secondary.ProfileRepository
	iconRepo    secondary.IconRepository
	storage     secondary.FileStorage
}

// NewProfileService creates a new ProfileService with injected dependencies.
func NewProfileService(profileRepo secondary.ProfileRepository, iconRepo secondary.IconRepository, storage secondary.FileStorage) *ProfileServiceImpl {
	return &ProfileServiceImpl{
		profileRepo: profileRepo,
		iconRepo:    iconRepo,
		storage:     storage,
	}
}

var _ primary.ProfileService = (*ProfileServiceImpl)(nil)

// GetProfile returns the user's profile, creating it on first access with
// an initials avatar.
func (s *ProfileServiceImpl) GetProfile(ctx context.Context) (*primary.Profile, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	record, err := s.getOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	return recordToProfile(record), nil
}

func (s *ProfileServiceImpl) getOrCreate(ctx context.Context, userID string) (*secondary.ProfileRecord, error) {
	record, err := s.profileRepo.GetByUserID(ctx, userID)
	if err == nil {
		return record, nil
	}
	if !errors.Is(err, apperr.ErrProfileNotFound) {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	avatarType, avatarData := profile.DefaultAvatar()
	data, err := json.Marshal(avatarData)
	if err != nil {
		return nil, fmt.Errorf("failed to encode avatar: %w", err)
	}
	if err := s.profileRepo.Create(ctx, &secondary.ProfileRecord{
		UserID:     userID,
		Email:      ctxutil.ActorEmailFromContext(ctx),
		AvatarType: string(avatarType),
		AvatarData: string(data),
	}); err != nil {
		return nil, err
	}
	logger.From(ctx).Info("profile created", logger.UserID(userID))

	return s.profileRepo.GetByUserID(ctx, userID)
}

// UpdateProfile validates and saves the editable profile fields. CPF and
// phone are optional but must be valid when given; both are stored masked.
func (s *ProfileServiceImpl) UpdateProfile(ctx context.Context, req primary.UpdateProfileRequest) (*primary.Profile, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	fields := map[string]string{}
	if r := validation.ValidateRequired(req.FullName, "Nome completo"); !r.IsValid {
		fields["fullName"] = r.Error
	}
	if req.CPF != "" {
		if r := validation.ValidateCPF(req.CPF); !r.IsValid {
			fields["cpf"] = r.Error
		}
	}
	if req.Phone != "" {
		if r := validation.ValidatePhone(req.Phone); !r.IsValid {
			fields["phone"] = r.Error
		}
	}
	if len(fields) > 0 {
		logger.From(ctx).Debug("profile validation failed", logger.UserID(userID), zap.Int("fields", len(fields)))
		return nil, apperr.NewValidation(fields)
	}

	record, err := s.getOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	record.FullName = strings.TrimSpace(req.FullName)
	record.CPF = ""
	if req.CPF != "" {
		record.CPF = validation.FormatCPF(req.CPF)
	}
	record.Phone = ""
	if req.Phone != "" {
		record.Phone = validation.FormatPhone(req.Phone)
	}
	record.State = strings.ToUpper(strings.TrimSpace(req.State))
	record.City = strings.TrimSpace(req.City)
	record.OABNumber = validation.FormatOAB(req.OABNumber, record.State)

	if err := s.profileRepo.Update(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	updated, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return recordToProfile(updated), nil
}

// ChangeAvatar replaces the avatar. An uploaded avatar must reference one of
// the user's icons; its URL is filled in from the icon.
func (s *ProfileServiceImpl) ChangeAvatar(ctx context.Context, req primary.ChangeAvatarRequest) (*primary.Profile, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	avatarType := profile.AvatarType(req.Type)
	data := req.Data
	own := false
	if avatarType == profile.AvatarUploaded && data.UploadedIconID != "" {
		icon, err := s.iconRepo.GetByID(ctx, userID, data.UploadedIconID)
		switch {
		case err == nil:
			own = true
			data.URL = icon.URL
		case !apperr.IsNotFound(err):
			return nil, fmt.Errorf("failed to look up icon: %w", err)
		}
	}
	if r := profile.CanChangeAvatar(profile.AvatarChangeContext{
		Type:            avatarType,
		Data:            data,
		UploadedIconOwn: own,
	}); !r.Allowed {
		return nil, apperr.Guard(r.Reason)
	}
	if avatarType == profile.AvatarInitials && data.Color == "" {
		data.Color = profile.DefaultAvatarColor
	}

	if _, err := s.getOrCreate(ctx, userID); err != nil {
		return nil, err
	}
	if err := s.setAvatar(ctx, userID, avatarType, data); err != nil {
		return nil, err
	}
	updated, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return recordToProfile(updated), nil
}

func (s *ProfileServiceImpl) setAvatar(ctx context.Context, userID string, t profile.AvatarType, data profile.AvatarData) error {
	encoded, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to encode avatar: %w", err)
	}
	if err := s.profileRepo.UpdateAvatar(ctx, userID, string(t), string(encoded)); err != nil {
		return fmt.Errorf("failed to update avatar: %w", err)
	}
	return nil
}

// AvatarPalette returns the avatar background colors.
func (s *ProfileServiceImpl) AvatarPalette() []profile.NamedColor {
	return profile.Palette
}

// UploadIcon stores an image as an avatar icon.
func (s *ProfileServiceImpl) UploadIcon(ctx context.Context, req primary.UploadIconRequest) (*primary.UploadedIcon, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	detected, body, err := sniff(req.Content)
	if err != nil {
		return nil, apperr.Field("file", err.Error())
	}
	if r := profile.CanUploadIcon(profile.UploadIconContext{DetectedMIME: detected}); !r.Allowed {
		return nil, apperr.Guard(r.Reason)
	}

	// One byte past the cap is enough to tell an oversized image apart.
	storagePath, size, err := s.storage.Save(ctx, iconBucket, req.FileName, io.LimitReader(body, profile.MaxIconBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to store icon: %w", err)
	}
	if r := profile.CanUploadIcon(profile.UploadIconContext{DetectedMIME: detected, Size: size}); !r.Allowed {
		s.removeStored(ctx, storagePath)
		return nil, apperr.Guard(r.Reason)
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = req.FileName
	}
	record := &secondary.IconRecord{
		UserID:      userID,
		Name:        name,
		StoragePath: storagePath,
		URL:         s.storage.URL(storagePath),
		Size:        size,
		MimeType:    detected,
	}
	nextID, err := insertWithNextID(ctx, s.iconRepo.GetNextID, func(id string) error {
		record.ID = id
		return s.iconRepo.Create(ctx, record)
	})
	if err != nil {
		s.removeStored(ctx, storagePath)
		return nil, fmt.Errorf("failed to save icon: %w", err)
	}

	created, err := s.iconRepo.GetByID(ctx, userID, nextID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch uploaded icon: %w", err)
	}
	return recordToIcon(created), nil
}

// ListIcons lists the user's uploaded icons, newest first.
func (s *ProfileServiceImpl) ListIcons(ctx context.Context) ([]*primary.UploadedIcon, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	records, err := s.iconRepo.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list icons: %w", err)
	}
	out := make([]*primary.UploadedIcon, len(records))
	for i, r := range records {
		out[i] = recordToIcon(r)
	}
	return out, nil
}

// DeleteIcon deletes an uploaded icon and its stored image. A profile whose
// avatar shows the icon falls back to the default avatar.
func (s *ProfileServiceImpl) DeleteIcon(ctx context.Context, iconID string) error {
	userID, err := requireUser(ctx)
	if err != nil {
		return err
	}
	icon, err := s.iconRepo.GetByID(ctx, userID, iconID)
	if err != nil {
		return err
	}
	if err := s.iconRepo.Delete(ctx, userID, iconID); err != nil {
		return fmt.Errorf("failed to delete icon: %w", err)
	}
	s.removeStored(ctx, icon.StoragePath)

	record, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperr.ErrProfileNotFound) {
			return nil
		}
		return err
	}
	if avatar := decodeAvatar(record); avatar.Type == string(profile.AvatarUploaded) && avatar.Data.UploadedIconID == iconID {
		t, data := profile.DefaultAvatar()
		return s.setAvatar(ctx, userID, t, data)
	}
	return nil
}

func (s *ProfileServiceImpl) removeStored(ctx context.Context, storagePath string) {
	if err := s.storage.Delete(ctx, storagePath); err != nil {
		logger.From(ctx).Warn("failed to delete stored icon",
			zap.String("path", storagePath),
			zap.Error(err))
	}
}

func decodeAvatar(r *secondary.ProfileRecord) primary.Avatar {
	a := primary.Avatar{Type: r.AvatarType}
	if r.AvatarData != "" {
		// Unreadable payloads render as an avatar without data.
		_ = json.Unmarshal([]byte(r.AvatarData), &a.Data)
	}
	return a
}

func recordToProfile(r *secondary.ProfileRecord) *primary.Profile {
	return &primary.Profile{
		UserID:             r.UserID,
		FullName:           r.FullName,
		Email:              r.Email,
		Initials:           validation.Initials(r.FullName, r.Email),
		CPF:                r.CPF,
		Phone:              r.Phone,
		OABNumber:          r.OABNumber,
		State:              r.State,
		City:               r.City,
		Avatar:             decodeAvatar(r),
		SubscriptionActive: r.SubscriptionActive,
		ApprovedByAdmin:    r.ApprovedByAdmin,
		ApprovalDate:       r.ApprovalDate,
		NextPayment:        r.NextPayment,
	}
}

func recordToIcon(r *secondary.IconRecord) *primary.UploadedIcon {
	return &primary.UploadedIcon{
		ID:        r.ID,
		Name:      r.Name,
		URL:       r.URL,
		Size:      r.Size,
		MimeType:  r.MimeType,
		CreatedAt: r.CreatedAt,
	}
}
