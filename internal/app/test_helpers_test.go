package app

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/example/praxis/internal/apperr"
	"github.com/example/praxis/internal/core/theme"
	"github.com/example/praxis/internal/ctxutil"
	"github.com/example/praxis/internal/ports/secondary"
)

const testUserID = "user-1"

func userCtx() context.Context {
	ctx := ctxutil.WithActorID(context.Background(), testUserID)
	return ctxutil.WithActorEmail(ctx, "ana@example.com")
}

// pdfBytes is the smallest content sniffed as application/pdf.
var pdfBytes = []byte("%PDF-1.4\n1 0 obj\n<<>>\nendobj\ntrailer\n<<>>\n%%EOF\n")

// pngBytes is a PNG signature followed by an IHDR chunk header.
var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

// ============================================================================
// mockFileStorage
// ============================================================================

var _ secondary.FileStorage = (*mockFileStorage)(nil)

type mockFileStorage struct {
	files   map[string][]byte
	n       int
	saveErr error
}

func newMockFileStorage() *mockFileStorage {
	return &mockFileStorage{files: make(map[string][]byte)}
}

func (m *mockFileStorage) Save(ctx context.Context, bucket, fileName string, r io.Reader) (string, int64, error) {
	if m.saveErr != nil {
		return "", 0, m.saveErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", 0, err
	}
	m.n++
	p := fmt.Sprintf("%s/%d-%s", bucket, m.n, fileName)
	m.files[p] = data
	return p, int64(len(data)), nil
}

func (m *mockFileStorage) Open(ctx context.Context, p string) (io.ReadCloser, error) {
	data, ok := m.files[p]
	if !ok {
		return nil, fmt.Errorf("%s: %w", p, apperr.ErrNotFound)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (m *mockFileStorage) Delete(ctx context.Context, p string) error {
	delete(m.files, p)
	return nil
}

func (m *mockFileStorage) URL(p string) string {
	return "/files/" + p
}

// ============================================================================
// mockLocalStore
// ============================================================================

var _ secondary.LocalStore = (*mockLocalStore)(nil)

type mockLocalStore struct {
	values map[string]string
	setErr error
}

func newMockLocalStore() *mockLocalStore {
	return &mockLocalStore{values: make(map[string]string)}
}

func (m *mockLocalStore) Get(key string) (string, bool, error) {
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *mockLocalStore) Set(key, value string) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.values[key] = value
	return nil
}

func (m *mockLocalStore) Remove(keys ...string) error {
	for _, k := range keys {
		delete(m.values, k)
	}
	return nil
}

// ============================================================================
// mockProfileStore
// ============================================================================

var _ secondary.ProfileStore = (*mockProfileStore)(nil)

type mockProfileStore struct {
	settings  map[string]*theme.Settings
	loadErr   error
	saveErr   error
	loadCalls int
}

func newMockProfileStore() *mockProfileStore {
	return &mockProfileStore{settings: make(map[string]*theme.Settings)}
}

func (m *mockProfileStore) LoadTheme(ctx context.Context, userID string) (*theme.Settings, error) {
	m.loadCalls++
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	s, ok := m.settings[userID]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", userID, apperr.ErrProfileNotFound)
	}
	return s, nil
}

func (m *mockProfileStore) SaveTheme(ctx context.Context, userID string, s theme.Settings) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.settings[userID] = &s
	return nil
}

// nextID mimics the repositories' PREFIX-NNN numbering.
func nextID(prefix string, n int) string {
	return fmt.Sprintf("%s-%03d", prefix, n+1)
}

func notFound(entity, id string) error {
	return fmt.Errorf("%s %s %w", strings.ToLower(entity), id, apperr.ErrNotFound)
}
