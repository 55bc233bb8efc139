package httpapi

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/example/praxis/internal/ports/primary"
)

func (a *api) mountTemplates(r chi.Router) {
	r.Get("/temas", a.listTemas)
	r.Get("/catalog", a.catalog)
	r.Post("/catalog/{itemId}/files", a.uploadToCatalogItem)

	r.Route("/templates", func(r chi.Router) {
		r.Get("/", a.listTemplates)
		r.Post("/", a.createTemplate)
		r.Delete("/", a.clearTemplates)
		r.Get("/{id}", a.getTemplate)
		r.Delete("/{id}", a.deleteTemplate)
		r.Post("/{id}/files", a.attachFile)
	})
	r.Get("/template-files/{id}", a.downloadFile)
	r.Delete("/template-files/{id}", a.deleteFile)
}

func (a *api) mountProfile(r chi.Router) {
	r.Get("/profile", a.getProfile)
	r.Put("/profile", a.updateProfile)
	r.Put("/profile/avatar", a.changeAvatar)
	r.Get("/avatar-palette", a.avatarPalette)
	r.Get("/icons", a.listIcons)
	r.Post("/icons", a.uploadIcon)
	r.Delete("/icons/{id}", a.deleteIcon)
}

// formFile opens the "file" part of a multipart upload. The caller closes it.
func (a *api) formFile(w http.ResponseWriter, r *http.Request) (multipart.File, *multipart.FileHeader, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, a.maxUpload)
	file, header, err := r.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			a.writeError(w, r, err)
			return nil, nil, false
		}
		badRequest(w, "Envie o arquivo no campo \"file\"")
		return nil, nil, false
	}
	return file, header, true
}

// Templates

func (a *api) listTemas(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.Templates.Temas())
}

func (a *api) catalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.Templates.Catalog())
}

func (a *api) listTemplates(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	templates, err := a.Templates.ListTemplates(r.Context(), primary.TemplateFilters{
		Search: q.Get("search"),
		Tema:   q.Get("tema"),
	})
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, templates)
}

func (a *api) createTemplate(w http.ResponseWriter, r *http.Request) {
	var req primary.CreateTemplateRequest
	if !decode(w, r, &req) {
		return
	}
	tpl, err := a.Templates.CreateTemplate(r.Context(), req)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, tpl)
}

func (a *api) getTemplate(w http.ResponseWriter, r *http.Request) {
	tpl, err := a.Templates.GetTemplate(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tpl)
}

func (a *api) deleteTemplate(w http.ResponseWriter, r *http.Request) {
	a.noContent(w, r, a.Templates.DeleteTemplate(r.Context(), chi.URLParam(r, "id")))
}

func (a *api) clearTemplates(w http.ResponseWriter, r *http.Request) {
	n, err := a.Templates.ClearTemplates(r.Context())
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"deleted": n})
}

func (a *api) attachFile(w http.ResponseWriter, r *http.Request) {
	file, header, ok := a.formFile(w, r)
	if !ok {
		return
	}
	defer file.Close()

	f, err := a.Templates.AttachFile(r.Context(), primary.AttachFileRequest{
		TemplateID: chi.URLParam(r, "id"),
		FileName:   header.Filename,
		Content:    file,
	})
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, f)
}

func (a *api) uploadToCatalogItem(w http.ResponseWriter, r *http.Request) {
	file, header, ok := a.formFile(w, r)
	if !ok {
		return
	}
	defer file.Close()

	f, err := a.Templates.UploadToCatalogItem(r.Context(), chi.URLParam(r, "itemId"), header.Filename, file)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, f)
}

func (a *api) downloadFile(w http.ResponseWriter, r *http.Request) {
	meta, rc, err := a.Templates.OpenFile(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", meta.MimeType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", meta.FileName))
	if meta.Size > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(meta.Size, 10))
	}
	_, _ = io.Copy(w, rc)
}

func (a *api) deleteFile(w http.ResponseWriter, r *http.Request) {
	a.noContent(w, r, a.Templates.DeleteFile(r.Context(), chi.URLParam(r, "id")))
}

// Profile

func (a *api) getProfile(w http.ResponseWriter, r *http.Request) {
	p, err := a.Profiles.GetProfile(r.Context())
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (a *api) updateProfile(w http.ResponseWriter, r *http.Request) {
	var req primary.UpdateProfileRequest
	if !decode(w, r, &req) {
		return
	}
	p, err := a.Profiles.UpdateProfile(r.Context(), req)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (a *api) changeAvatar(w http.ResponseWriter, r *http.Request) {
	var req primary.ChangeAvatarRequest
	if !decode(w, r, &req) {
		return
	}
	p, err := a.Profiles.ChangeAvatar(r.Context(), req)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (a *api) avatarPalette(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, a.Profiles.AvatarPalette())
}

func (a *api) listIcons(w http.ResponseWriter, r *http.Request) {
	icons, err := a.Profiles.ListIcons(r.Context())
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, icons)
}

func (a *api) uploadIcon(w http.ResponseWriter, r *http.Request) {
	file, header, ok := a.formFile(w, r)
	if !ok {
		return
	}
	defer file.Close()

	icon, err := a.Profiles.UploadIcon(r.Context(), primary.UploadIconRequest{
		Name:     r.FormValue("name"),
		FileName: header.Filename,
		Content:  file,
	})
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, icon)
}

func (a *api) deleteIcon(w http.ResponseWriter, r *http.Request) {
	a.noContent(w, r, a.Profiles.DeleteIcon(r.Context(), chi.URLParam(r, "id")))
}
