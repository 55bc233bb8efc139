package primary

import (
	"context"
	"io"

	"github.com/example/praxis/internal/core/profile"
)

// ProfileService defines the primary port for user profiles and avatars.
type ProfileService interface {
	// GetProfile returns the user's profile, creating it on first access.
	GetProfile(ctx context.Context) (*Profile, error)

	// UpdateProfile validates and saves the editable profile fields.
	UpdateProfile(ctx context.Context, req UpdateProfileRequest) (*Profile, error)

	// ChangeAvatar replaces the avatar.
	ChangeAvatar(ctx context.Context, req ChangeAvatarRequest) (*Profile, error)

	// AvatarPalette returns the avatar background colors.
	AvatarPalette() []profile.NamedColor

	// UploadIcon stores an image as an avatar icon.
	UploadIcon(ctx context.Context, req UploadIconRequest) (*UploadedIcon, error)

	// ListIcons lists the user's uploaded icons.
	ListIcons(ctx context.Context) ([]*UploadedIcon, error)

	// DeleteIcon deletes an uploaded icon and its stored image.
	DeleteIcon(ctx context.Context, iconID string) error
}

// UpdateProfileRequest contains the editable profile fields.
type UpdateProfileRequest struct {
	FullName  string `json:"fullName"`
	CPF       string `json:"cpf,omitempty"`
	Phone     string `json:"phone,omitempty"`
	OABNumber string `json:"oabNumber,omitempty"`
	State     string `json:"state,omitempty"`
	City      string `json:"city,omitempty"`
}

// ChangeAvatarRequest contains a new avatar.
type ChangeAvatarRequest struct {
	Type string             `json:"type"`
	Data profile.AvatarData `json:"data"`
}

// UploadIconRequest contains an avatar image upload.
type UploadIconRequest struct {
	Name     string
	FileName string
	Content  io.Reader
}

// Avatar is the avatar of a profile.
type Avatar struct {
	Type string             `json:"type"`
	Data profile.AvatarData `json:"data"`
}

// Profile represents a user profile at the port boundary.
type Profile struct {
	UserID             string `json:"userId"`
	FullName           string `json:"fullName"`
	Email              string `json:"email"`
	Initials           string `json:"initials"`
	CPF                string `json:"cpf,omitempty"`
	Phone              string `json:"phone,omitempty"`
	OABNumber          string `json:"oabNumber,omitempty"`
	State              string `json:"state,omitempty"`
	City               string `json:"city,omitempty"`
	Avatar             Avatar `json:"avatar"`
	SubscriptionActive bool   `json:"subscriptionActive"`
	ApprovedByAdmin    bool   `json:"approvedByAdmin"`
	ApprovalDate       string `json:"approvalDate,omitempty"`
	NextPayment        string `json:"nextPayment,omitempty"`
}

// UploadedIcon represents an uploaded avatar icon at the port boundary.
type UploadedIcon struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	URL       string `json:"url"`
	Size      int64  `json:"size"`
	MimeType  string `json:"mimeType"`
	CreatedAt string `json:"createdAt"`
}
