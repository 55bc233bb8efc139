package primary

import (
	"context"

	"github.com/example/praxis/internal/core/theme"
)

// ThemeService defines the primary port for theme settings.
//
// Settings live in two places: the local store on this machine and the
// remote profile row. Loads prefer the remote row, saves always write local
// first and then remote. Last write wins.
type ThemeService interface {
	// LoadTheme resolves the current settings.
	LoadTheme(ctx context.Context) (*ThemeState, error)

	// SaveTheme writes complete settings locally and, for a known user, remotely.
	SaveTheme(ctx context.Context, s theme.Settings) (*SaveResult, error)

	// SetHeaderColor sets the header color and its derived text class.
	SetHeaderColor(ctx context.Context, hex string) (*SaveResult, error)

	// SetAvatarColor sets the avatar background color.
	SetAvatarColor(ctx context.Context, hex string) (*SaveResult, error)

	// SetTextColor overrides the header text class.
	SetTextColor(ctx context.Context, class string) (*SaveResult, error)

	// SetMainColor sets the page background color.
	SetMainColor(ctx context.Context, hex string) (*SaveResult, error)

	// SetButtonColor sets the button color.
	SetButtonColor(ctx context.Context, hex string) (*SaveResult, error)

	// SetCaseStatusColor sets one case status color.
	SetCaseStatusColor(ctx context.Context, status, hex string) (*SaveResult, error)

	// SetTaskStatusColor sets one task status color.
	SetTaskStatusColor(ctx context.Context, status, hex string) (*SaveResult, error)

	// SetStatusView stores the dashboard status view locally.
	SetStatusView(ctx context.Context, view string) error

	// CheckConsistency compares remote and local settings and, when they
	// differ, overwrites local with remote.
	CheckConsistency(ctx context.Context) (*ConsistencyReport, error)

	// ClearCache removes every locally cached theme key.
	ClearCache(ctx context.Context) error

	// ResetToGlobalDefaults writes the global default palette locally.
	ResetToGlobalDefaults(ctx context.Context) error

	// Derive computes the colors derived from a hex color.
	Derive(hex string) (*DerivedColors, error)
}

// Theme sources.
const (
	SourceRemote   = "remote"
	SourceLocal    = "local"
	SourceFallback = "fallback"
)

// ThemeState is the resolved theme.
type ThemeState struct {
	Settings     theme.Settings `json:"settings"`
	StatusView   string         `json:"statusView"`
	Source       string         `json:"source"`
	FromFallback bool           `json:"fromFallback"`
	Warning      string         `json:"warning,omitempty"`
}

// SaveResult reports where settings were written.
type SaveResult struct {
	Settings theme.Settings `json:"settings"`
	Synced   bool           `json:"synced"`
	Warning  string         `json:"warning,omitempty"`
}

// ConsistencyReport is the outcome of a consistency check.
type ConsistencyReport struct {
	Consistent bool           `json:"consistent"`
	Remote     theme.Settings `json:"remote"`
	Local      theme.Settings `json:"local"`
}

// DerivedColors are the values computed from a color.
type DerivedColors struct {
	Hex             string `json:"hex"`
	HSL             string `json:"hsl"`
	IsLight         bool   `json:"isLight"`
	TextColor       string `json:"textColor"`
	HeaderTextClass string `json:"headerTextClass"`
}
