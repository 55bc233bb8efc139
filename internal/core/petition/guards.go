package petition

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Accepted template file types.
const (
	MIMEPDF  = "application/pdf"
	MIMEDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// AllThemes is the theme filter value that matches every template.
const AllThemes = "Todos"

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

// CreateTemplateContext carries the required template fields.
type CreateTemplateContext struct {
	Tema    string
	Subtema string
	Titulo  string
	Ordem   string
}

// CanCreateTemplate evaluates whether a template can be created.
// Rules:
// - Tema, subtema, titulo and ordem are all required
func CanCreateTemplate(ctx CreateTemplateContext) GuardResult {
	fields := []struct{ value, msg string }{
		{ctx.Tema, "Tema é obrigatório"},
		{ctx.Subtema, "Subtema é obrigatório"},
		{ctx.Titulo, "Título é obrigatório"},
		{ctx.Ordem, "Ordem é obrigatória"},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return GuardResult{Reason: f.msg}
		}
	}
	return GuardResult{Allowed: true}
}

// AttachFileContext describes an uploaded template file.
type AttachFileContext struct {
	FileName     string
	DetectedMIME string // sniffed from content
}

// CanAttachFile evaluates whether a file may be attached to a template.
// Rules:
// - Extension must be .pdf or .docx
// - Sniffed content must match the extension
func CanAttachFile(ctx AttachFileContext) GuardResult {
	const reason = "Apenas arquivos PDF e DOCX são permitidos"

	var want string
	switch strings.ToLower(filepath.Ext(ctx.FileName)) {
	case ".pdf":
		want = MIMEPDF
	case ".docx":
		want = MIMEDOCX
	default:
		return GuardResult{Reason: reason}
	}

	if ctx.DetectedMIME != want {
		return GuardResult{Reason: fmt.Sprintf("%s: %s content is %s", reason, ctx.FileName, ctx.DetectedMIME)}
	}
	return GuardResult{Allowed: true}
}

// Fold lower-cases s and strips diacritics so "Petição" matches "peticao".
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(out)
}

// Matches reports whether a template with the given fields passes the
// search term and theme filter. The term is matched against titulo, tema
// and subtema ignoring case and accents.
func Matches(titulo, tema, subtema, term, temaFilter string) bool {
	if temaFilter != "" && temaFilter != AllThemes && tema != temaFilter {
		return false
	}
	if term == "" {
		return true
	}
	needle := Fold(term)
	for _, field := range []string{titulo, tema, subtema} {
		if strings.Contains(Fold(field), needle) {
			return true
		}
	}
	return false
}

// GenerateTemplateID generates a template ID from the current max number.
func GenerateTemplateID(currentMax int) string {
	return fmt.Sprintf("TPL-%03d", currentMax+1)
}

// GenerateFileID generates a template file ID from the current max number.
func GenerateFileID(currentMax int) string {
	return fmt.Sprintf("TFILE-%03d", currentMax+1)
}
