// Package profile contains the pure business logic for user profiles and
// avatars.
package profile

import (
	"fmt"
	"strings"

	"github.com/example/praxis/internal/core/theme"
)

// AvatarType selects how the avatar is drawn.
type AvatarType string

const (
	AvatarInitials   AvatarType = "initials"
	AvatarIcon       AvatarType = "icon"
	AvatarPredefined AvatarType = "predefined"
	AvatarUploaded   AvatarType = "uploaded"
)

// DefaultAvatarColor is the background of a new initials avatar.
const DefaultAvatarColor = "#8B9474"

// MaxIconBytes caps uploaded avatar images.
const MaxIconBytes = 5 << 20

// AvatarData is the type-specific avatar payload.
type AvatarData struct {
	Color          string `json:"color,omitempty"`
	Character      string `json:"character,omitempty"`
	URL            string `json:"url,omitempty"`
	Icon           string `json:"icon,omitempty"`
	UploadedIconID string `json:"uploadedIconId,omitempty"`
}

// DefaultAvatar is the avatar of a newly created profile.
func DefaultAvatar() (AvatarType, AvatarData) {
	return AvatarInitials, AvatarData{Color: DefaultAvatarColor}
}

// NamedColor is a palette entry.
type NamedColor struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Palette lists the avatar background colors offered to users.
var Palette = []NamedColor{
	{"Verde Oliva", "#8B9474"},
	{"Laranja Claro", "#F5A65B"},
	{"Verde Médio", "#6CAE75"},
	{"Azul", "#3B82F6"},
	{"Roxo", "#8B5CF6"},
	{"Rosa", "#EC4899"},
	{"Vermelho", "#EF4444"},
	{"Amarelo", "#F59E0B"},
	{"Turquesa", "#06B6D4"},
	{"Verde Escuro", "#059669"},
	{"Indigo", "#6366F1"},
	{"Púrpura", "#9333EA"},
	{"Coral", "#F97316"},
	{"Esmeralda", "#10B981"},
	{"Ciano", "#0891B2"},
	{"Lime", "#84CC16"},
	{"Âmbar", "#F59E0B"},
	{"Teal", "#14B8A6"},
	{"Violeta", "#7C3AED"},
	{"Fúcsia", "#D946EF"},
}

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string
}

// Error converts the guard result to an error if not allowed.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return fmt.Errorf("%s", r.Reason)
}

// AvatarChangeContext describes a requested avatar change.
type AvatarChangeContext struct {
	Type            AvatarType
	Data            AvatarData
	UploadedIconOwn bool // the referenced uploaded icon belongs to the user
}

// CanChangeAvatar evaluates an avatar change.
// Rules:
// - initials: color must be a valid hex color when set
// - icon: an icon name is required
// - predefined: a url is required
// - uploaded: the uploaded icon must exist and belong to the user
func CanChangeAvatar(ctx AvatarChangeContext) GuardResult {
	switch ctx.Type {
	case AvatarInitials:
		if ctx.Data.Color != "" {
			if _, err := theme.NormalizeHex(ctx.Data.Color); err != nil {
				return GuardResult{Reason: err.Error()}
			}
		}
	case AvatarIcon:
		if strings.TrimSpace(ctx.Data.Icon) == "" {
			return GuardResult{Reason: "icon avatar requires an icon name"}
		}
	case AvatarPredefined:
		if strings.TrimSpace(ctx.Data.URL) == "" {
			return GuardResult{Reason: "predefined avatar requires a url"}
		}
	case AvatarUploaded:
		if ctx.Data.UploadedIconID == "" || !ctx.UploadedIconOwn {
			return GuardResult{Reason: fmt.Sprintf("uploaded icon %q not found", ctx.Data.UploadedIconID)}
		}
	default:
		return GuardResult{Reason: fmt.Sprintf("unknown avatar type %q", ctx.Type)}
	}
	return GuardResult{Allowed: true}
}

// UploadIconContext describes an uploaded avatar image.
type UploadIconContext struct {
	DetectedMIME string
	Size         int64
}

// CanUploadIcon evaluates whether an image may be stored as an avatar icon.
// Rules:
// - Content must be an image
// - Size must not exceed MaxIconBytes
func CanUploadIcon(ctx UploadIconContext) GuardResult {
	if !strings.HasPrefix(ctx.DetectedMIME, "image/") {
		return GuardResult{Reason: "Por favor, selecione apenas arquivos de imagem"}
	}
	if ctx.Size > MaxIconBytes {
		return GuardResult{Reason: fmt.Sprintf("image too large (%d bytes, max %d)", ctx.Size, MaxIconBytes)}
	}
	return GuardResult{Allowed: true}
}

// GenerateIconID generates an uploaded icon ID from the current max number.
func GenerateIconID(currentMax int) string {
	return fmt.Sprintf("ICON-%03d", currentMax+1)
}
