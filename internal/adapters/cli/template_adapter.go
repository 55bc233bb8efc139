package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/example/praxis/internal/ports/primary"
)

// TemplateAdapter translates CLI operations to TemplateService calls.
type TemplateAdapter struct {
	service primary.TemplateService
	out     io.Writer
}

// NewTemplateAdapter creates a new TemplateAdapter with the given service.
func NewTemplateAdapter(service primary.TemplateService, out io.Writer) *TemplateAdapter {
	return &TemplateAdapter{service: service, out: out}
}

// List prints templates with their file counts and total size.
func (a *TemplateAdapter) List(ctx context.Context, filters primary.TemplateFilters) ([]*primary.Template, error) {
	templates, err := a.service.ListTemplates(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}
	if len(templates) == 0 {
		fmt.Fprintln(a.out, "No templates found.")
		return templates, nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tORDEM\tTEMA\tTITULO\tFILES\tSIZE")
	fmt.Fprintln(w, "--\t-----\t----\t------\t-----\t----")
	for _, t := range templates {
		var size int64
		for _, f := range t.Files {
			size += f.Size
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\n",
			t.ID, t.Ordem, t.Tema, t.Titulo, len(t.Files), humanize.IBytes(uint64(size)))
	}
	w.Flush()
	return templates, nil
}

// Show prints a template and its files.
func (a *TemplateAdapter) Show(ctx context.Context, templateID string) (*primary.Template, error) {
	t, err := a.service.GetTemplate(ctx, templateID)
	if err != nil {
		return nil, fmt.Errorf("failed to get template: %w", err)
	}
	fmt.Fprintf(a.out, "\nTemplate: %s (%s)\n", t.ID, t.Ordem)
	fmt.Fprintf(a.out, "Tema:    %s / %s\n", t.Tema, t.Subtema)
	fmt.Fprintf(a.out, "Titulo:  %s\n", t.Titulo)
	if t.Descricao != "" {
		fmt.Fprintf(a.out, "Descrição: %s\n", t.Descricao)
	}
	if len(t.Files) == 0 {
		fmt.Fprintln(a.out, "Files:   none")
	} else {
		fmt.Fprintln(a.out, "Files:")
		for _, f := range t.Files {
			fmt.Fprintf(a.out, "  %s  %s  %s  %s\n", f.ID, f.FileName, humanize.IBytes(uint64(f.Size)), faint.Sprint(f.MimeType))
		}
	}
	fmt.Fprintln(a.out)
	return t, nil
}

// Attach uploads a local file to a template, or to the template of a
// catalog item when catalogItem is set.
func (a *TemplateAdapter) Attach(ctx context.Context, templateID, catalogItem, path string) (*primary.TemplateFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	name := filepath.Base(path)
	var file *primary.TemplateFile
	if catalogItem != "" {
		file, err = a.service.UploadToCatalogItem(ctx, catalogItem, name, f)
	} else {
		file, err = a.service.AttachFile(ctx, primary.AttachFileRequest{TemplateID: templateID, FileName: name, Content: f})
	}
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(a.out, "✓ Attached %s to %s (%s)\n", file.FileName, file.TemplateID, humanize.IBytes(uint64(file.Size)))
	return file, nil
}

// Download copies a stored file to dest, or into dir when dest is a directory.
func (a *TemplateAdapter) Download(ctx context.Context, fileID, dest string) (string, error) {
	meta, rc, err := a.service.OpenFile(ctx, fileID)
	if err != nil {
		return "", err
	}
	defer rc.Close()

	if info, err := os.Stat(dest); err == nil && info.IsDir() {
		dest = filepath.Join(dest, meta.FileName)
	}
	out, err := os.Create(dest)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", dest, err)
	}
	n, err := io.Copy(out, rc)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return "", fmt.Errorf("failed to write %s: %w", dest, err)
	}
	fmt.Fprintf(a.out, "✓ Saved %s (%s)\n", dest, humanize.IBytes(uint64(n)))
	return dest, nil
}

// Catalog prints the numbered petition catalog.
func (a *TemplateAdapter) Catalog() {
	for _, c := range a.service.Catalog() {
		fmt.Fprintln(a.out, blue.Sprint(c.Title))
		for _, item := range c.Items {
			fmt.Fprintf(a.out, "  %-6s %s\n", item.ID, item.Title)
		}
	}
}
