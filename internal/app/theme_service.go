package app

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/example/praxis/internal/apperr"
	"github.com/example/praxis/internal/core/theme"
	"github.com/example/praxis/internal/ctxutil"
	"github.com/example/praxis/internal/logger"
	"github.com/example/praxis/internal/ports/primary"
	"github.com/example/praxis/internal/ports/secondary"
)

// Local store keys.
const (
	keyHeaderColor      = "praxis-header-color"
	keyAvatarColor      = "praxis-avatar-color"
	keyTextColor        = "praxis-text-color"
	keyMainColor        = "praxis-main-color"
	keyButtonColor      = "praxis-button-color"
	keyCaseStatusColors = "praxis-case-status-colors"
	keyTaskStatusColors = "praxis-task-status-colors"
	keyStatusView       = "praxis-status-view"
	keyLegacySettings   = "theme-settings"
)

var themeKeys = []string{
	keyHeaderColor, keyAvatarColor, keyTextColor, keyMainColor, keyButtonColor,
	keyCaseStatusColors, keyTaskStatusColors, keyStatusView, keyLegacySettings,
}

// DefaultThemeCacheTTL is how long remote settings are reused before the
// profile row is read again.
const DefaultThemeCacheTTL = 5 * time.Minute

// ThemeServiceImpl implements the ThemeService interface.
type ThemeServiceImpl struct {
	remote secondary.ProfileStore
	local  secondary.LocalStore
	cache  *cache.Cache
}

// NewThemeService creates a new ThemeService. A non-positive ttl uses
// DefaultThemeCacheTTL.
func NewThemeService(remote secondary.ProfileStore, local secondary.LocalStore, ttl time.Duration) *ThemeServiceImpl {
	if ttl <= 0 {
		ttl = DefaultThemeCacheTTL
	}
	return &ThemeServiceImpl{
		remote: remote,
		local:  local,
		cache:  cache.New(ttl, 2*ttl),
	}
}

var _ primary.ThemeService = (*ThemeServiceImpl)(nil)

func cacheKey(userID string) string { return "theme:" + userID }

// localNamespace prefixes every local key with the owning user. Requests
// without a user share the anonymous namespace.
func localNamespace(userID string) string {
	if userID == "" {
		return "anonymous/"
	}
	return "user/" + userID + "/"
}

func localKey(userID, key string) string { return localNamespace(userID) + key }

// userStore is the slice of the local store that belongs to one user.
type userStore struct {
	userID string
	store  secondary.LocalStore
}

func (u userStore) Get(key string) (string, bool, error) {
	return u.store.Get(localKey(u.userID, key))
}

func (u userStore) Set(key, value string) error {
	return u.store.Set(localKey(u.userID, key), value)
}

func (u userStore) Remove(keys ...string) error {
	scoped := make([]string, len(keys))
	for i, k := range keys {
		scoped[i] = localKey(u.userID, k)
	}
	return u.store.Remove(scoped...)
}

func (s *ThemeServiceImpl) localFor(userID string) userStore {
	return userStore{userID: userID, store: s.local}
}

// LoadTheme resolves the current settings. Without a user only the local
// store is read. Remote settings win when present and are copied to the
// local store; a failing remote falls back to local.
func (s *ThemeServiceImpl) LoadTheme(ctx context.Context) (*primary.ThemeState, error) {
	userID := ctxutil.ActorFromContext(ctx)
	local := s.localFor(userID)
	view := statusView(local)
	if userID == "" {
		return localState(local, view, primary.SourceLocal, ""), nil
	}

	if cached, ok := s.cache.Get(cacheKey(userID)); ok {
		return &primary.ThemeState{Settings: cached.(theme.Settings), StatusView: view, Source: primary.SourceRemote}, nil
	}

	remote, err := s.remote.LoadTheme(ctx, userID)
	switch {
	case err != nil && !apperr.IsNotFound(err):
		logger.From(ctx).Warn("remote theme unavailable, using local settings",
			logger.UserID(userID),
			zap.Error(err))
		state := localState(local, view, primary.SourceFallback, err.Error())
		state.FromFallback = true
		return state, nil
	case err == nil && remote != nil && !remote.IsZero():
		settings := remote.WithDefaults()
		if err := writeLocal(local, settings); err != nil {
			logger.From(ctx).Warn("failed to cache theme locally", logger.UserID(userID), zap.Error(err))
		}
		s.cache.SetDefault(cacheKey(userID), settings)
		return &primary.ThemeState{Settings: settings, StatusView: view, Source: primary.SourceRemote}, nil
	default:
		return localState(local, view, primary.SourceLocal, ""), nil
	}
}

// SaveTheme writes complete settings locally first and then, for a known
// user, to the profile row. A failed remote write keeps the local write and
// is reported as a warning.
func (s *ThemeServiceImpl) SaveTheme(ctx context.Context, settings theme.Settings) (*primary.SaveResult, error) {
	settings, err := normalizeSettings(settings.WithDefaults())
	if err != nil {
		return nil, err
	}
	userID := ctxutil.ActorFromContext(ctx)
	if err := writeLocal(s.localFor(userID), settings); err != nil {
		return nil, fmt.Errorf("failed to save theme locally: %w", err)
	}
	if userID == "" {
		return &primary.SaveResult{Settings: settings}, nil
	}
	if err := s.remote.SaveTheme(ctx, userID, settings); err != nil {
		s.cache.Delete(cacheKey(userID))
		logger.From(ctx).Warn("theme saved locally only",
			logger.UserID(userID),
			zap.Error(err))
		return &primary.SaveResult{Settings: settings, Warning: err.Error()}, nil
	}
	s.cache.SetDefault(cacheKey(userID), settings)
	return &primary.SaveResult{Settings: settings, Synced: true}, nil
}

// SetHeaderColor sets the header color and derives its text class.
func (s *ThemeServiceImpl) SetHeaderColor(ctx context.Context, hex string) (*primary.SaveResult, error) {
	return s.update(ctx, "headerColor", hex, func(st theme.Settings, h string) (theme.Settings, error) {
		return st.WithHeaderColor(h), nil
	})
}

// SetAvatarColor sets the avatar background color.
func (s *ThemeServiceImpl) SetAvatarColor(ctx context.Context, hex string) (*primary.SaveResult, error) {
	return s.update(ctx, "avatarColor", hex, func(st theme.Settings, h string) (theme.Settings, error) {
		st.AvatarColor = h
		return st, nil
	})
}

// SetMainColor sets the page background color.
func (s *ThemeServiceImpl) SetMainColor(ctx context.Context, hex string) (*primary.SaveResult, error) {
	return s.update(ctx, "mainColor", hex, func(st theme.Settings, h string) (theme.Settings, error) {
		st.MainColor = h
		return st, nil
	})
}

// SetButtonColor sets the button color.
func (s *ThemeServiceImpl) SetButtonColor(ctx context.Context, hex string) (*primary.SaveResult, error) {
	return s.update(ctx, "buttonColor", hex, func(st theme.Settings, h string) (theme.Settings, error) {
		st.ButtonColor = h
		return st, nil
	})
}

// SetCaseStatusColor sets one case status color.
func (s *ThemeServiceImpl) SetCaseStatusColor(ctx context.Context, status, hex string) (*primary.SaveResult, error) {
	return s.update(ctx, "color", hex, func(st theme.Settings, h string) (theme.Settings, error) {
		out, err := st.WithCaseStatusColor(status, h)
		if err != nil {
			return st, apperr.Field("status", err.Error())
		}
		return out, nil
	})
}

// SetTaskStatusColor sets one task status color.
func (s *ThemeServiceImpl) SetTaskStatusColor(ctx context.Context, status, hex string) (*primary.SaveResult, error) {
	return s.update(ctx, "color", hex, func(st theme.Settings, h string) (theme.Settings, error) {
		out, err := st.WithTaskStatusColor(status, h)
		if err != nil {
			return st, apperr.Field("status", err.Error())
		}
		return out, nil
	})
}

// SetTextColor overrides the header text class.
func (s *ThemeServiceImpl) SetTextColor(ctx context.Context, class string) (*primary.SaveResult, error) {
	class = strings.TrimSpace(class)
	if class == "" {
		return nil, apperr.Field("textColor", "text color is required")
	}
	state, err := s.LoadTheme(ctx)
	if err != nil {
		return nil, err
	}
	settings := state.Settings
	settings.TextColor = class
	return s.SaveTheme(ctx, settings)
}

func (s *ThemeServiceImpl) update(ctx context.Context, field, hex string, apply func(theme.Settings, string) (theme.Settings, error)) (*primary.SaveResult, error) {
	h, err := theme.NormalizeHex(hex)
	if err != nil {
		return nil, apperr.Field(field, err.Error())
	}
	state, err := s.LoadTheme(ctx)
	if err != nil {
		return nil, err
	}
	settings, err := apply(state.Settings, h)
	if err != nil {
		return nil, err
	}
	return s.SaveTheme(ctx, settings)
}

// SetStatusView stores the dashboard status view locally.
func (s *ThemeServiceImpl) SetStatusView(ctx context.Context, view string) error {
	if !theme.ValidView(view) {
		return apperr.Field("statusView", fmt.Sprintf("unknown status view %q", view))
	}
	return s.localFor(ctxutil.ActorFromContext(ctx)).Set(keyStatusView, view)
}

// CheckConsistency compares the profile row with the local store and, when
// they differ, overwrites local with the profile row. A profile without
// stored settings, or no profile at all, leaves local as the authority.
func (s *ThemeServiceImpl) CheckConsistency(ctx context.Context) (*primary.ConsistencyReport, error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	store := s.localFor(userID)
	local := readLocal(store)

	stored, err := s.remote.LoadTheme(ctx, userID)
	if err != nil && !apperr.IsNotFound(err) {
		return nil, fmt.Errorf("failed to load remote theme: %w", err)
	}
	remote := local
	if err == nil && stored != nil && !stored.IsZero() {
		remote = stored.WithDefaults()
	}

	report := &primary.ConsistencyReport{Consistent: remote == local, Remote: remote, Local: local}
	if report.Consistent {
		return report, nil
	}

	logger.From(ctx).Warn("local theme out of sync, restoring from profile", logger.UserID(userID))
	if err := writeLocal(store, remote); err != nil {
		return nil, fmt.Errorf("failed to restore local theme: %w", err)
	}
	s.cache.Delete(cacheKey(userID))
	return report, nil
}

// ClearCache removes the user's locally cached theme keys and drops the
// in-process copy.
func (s *ThemeServiceImpl) ClearCache(ctx context.Context) error {
	userID := ctxutil.ActorFromContext(ctx)
	if err := s.localFor(userID).Remove(themeKeys...); err != nil {
		return fmt.Errorf("failed to clear local theme: %w", err)
	}
	s.cache.Delete(cacheKey(userID))
	return nil
}

// ResetToGlobalDefaults writes the global default palette locally.
func (s *ThemeServiceImpl) ResetToGlobalDefaults(ctx context.Context) error {
	userID := ctxutil.ActorFromContext(ctx)
	local := s.localFor(userID)
	settings, view := theme.GlobalDefaults()
	if err := writeLocal(local, settings); err != nil {
		return fmt.Errorf("failed to reset theme: %w", err)
	}
	if err := local.Set(keyStatusView, view); err != nil {
		return fmt.Errorf("failed to reset status view: %w", err)
	}
	s.cache.Delete(cacheKey(userID))
	return nil
}

// Derive computes the colors derived from a hex color.
func (s *ThemeServiceImpl) Derive(hex string) (*primary.DerivedColors, error) {
	h, err := theme.NormalizeHex(hex)
	if err != nil {
		return nil, apperr.Field("color", err.Error())
	}
	return &primary.DerivedColors{
		Hex:             h,
		HSL:             theme.HexToHSL(h),
		IsLight:         theme.IsLightColor(h),
		TextColor:       theme.TextColorFor(h),
		HeaderTextClass: theme.HeaderTextClass(h),
	}, nil
}

func localState(local userStore, view, source, warning string) *primary.ThemeState {
	return &primary.ThemeState{
		Settings:   readLocal(local),
		StatusView: view,
		Source:     source,
		Warning:    warning,
	}
}

func statusView(local userStore) string {
	v, ok, err := local.Get(keyStatusView)
	if err != nil || !ok || !theme.ValidView(v) {
		return theme.ViewCases
	}
	return v
}

// readLocal assembles settings key by key. Missing keys, unreadable JSON
// and store errors all fall back to defaults.
func readLocal(local userStore) theme.Settings {
	get := func(key string) string {
		v, ok, err := local.Get(key)
		if err != nil || !ok {
			return ""
		}
		return v
	}

	var settings theme.Settings
	settings.HeaderColor = get(keyHeaderColor)
	settings.AvatarColor = get(keyAvatarColor)
	settings.TextColor = get(keyTextColor)
	settings.MainColor = get(keyMainColor)
	settings.ButtonColor = get(keyButtonColor)
	if raw := get(keyCaseStatusColors); raw != "" {
		var c theme.CaseStatusColors
		if json.Unmarshal([]byte(raw), &c) == nil {
			settings.CaseStatusColors = c
		}
	}
	if raw := get(keyTaskStatusColors); raw != "" {
		var c theme.TaskStatusColors
		if json.Unmarshal([]byte(raw), &c) == nil {
			settings.TaskStatusColors = c
		}
	}
	return settings.WithDefaults()
}

func writeLocal(local userStore, settings theme.Settings) error {
	caseColors, err := json.Marshal(settings.CaseStatusColors)
	if err != nil {
		return err
	}
	taskColors, err := json.Marshal(settings.TaskStatusColors)
	if err != nil {
		return err
	}
	pairs := [][2]string{
		{keyHeaderColor, settings.HeaderColor},
		{keyAvatarColor, settings.AvatarColor},
		{keyTextColor, settings.TextColor},
		{keyMainColor, settings.MainColor},
		{keyButtonColor, settings.ButtonColor},
		{keyCaseStatusColors, string(caseColors)},
		{keyTaskStatusColors, string(taskColors)},
	}
	for _, p := range pairs {
		if err := local.Set(p[0], p[1]); err != nil {
			return err
		}
	}
	return nil
}

// normalizeSettings validates every color field and rewrites it as
// upper-case #RRGGBB.
func normalizeSettings(st theme.Settings) (theme.Settings, error) {
	fields := []struct {
		name string
		v    *string
	}{
		{"headerColor", &st.HeaderColor},
		{"avatarColor", &st.AvatarColor},
		{"mainColor", &st.MainColor},
		{"buttonColor", &st.ButtonColor},
		{"caseStatusColors.open", &st.CaseStatusColors.Open},
		{"caseStatusColors.completed", &st.CaseStatusColors.Completed},
		{"taskStatusColors.in-progress", &st.TaskStatusColors.InProgress},
		{"taskStatusColors.delayed", &st.TaskStatusColors.Delayed},
		{"taskStatusColors.completed", &st.TaskStatusColors.Completed},
	}
	errs := map[string]string{}
	for _, f := range fields {
		h, err := theme.NormalizeHex(*f.v)
		if err != nil {
			errs[f.name] = err.Error()
			continue
		}
		*f.v = h
	}
	if len(errs) > 0 {
		return st, apperr.NewValidation(errs)
	}
	return st, nil
}
