package httpapi

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/example/praxis/internal/core/theme"
	"github.com/example/praxis/internal/ports/primary"
)

type colorBody struct {
	Value string `json:"value"`
}

func (a *api) mountTheme(r chi.Router) {
	r.Route("/theme", func(r chi.Router) {
		r.Get("/", a.loadTheme)
		r.Put("/", a.saveTheme)
		r.Put("/header-color", a.setColor(a.Theme.SetHeaderColor))
		r.Put("/avatar-color", a.setColor(a.Theme.SetAvatarColor))
		r.Put("/text-color", a.setColor(a.Theme.SetTextColor))
		r.Put("/main-color", a.setColor(a.Theme.SetMainColor))
		r.Put("/button-color", a.setColor(a.Theme.SetButtonColor))
		r.Put("/case-status/{status}", a.setStatusColor(a.Theme.SetCaseStatusColor))
		r.Put("/task-status/{status}", a.setStatusColor(a.Theme.SetTaskStatusColor))
		r.Put("/status-view", a.setStatusView)
		r.Post("/check", a.checkTheme)
		r.Post("/reset", a.resetTheme)
		r.Delete("/cache", a.clearThemeCache)
		r.Get("/derive", a.deriveColor)
	})
}

func (a *api) mountBilling(r chi.Router) {
	r.Get("/invoices", a.listInvoices)
	r.Get("/invoices/{id}/receipt", a.receipt)
	r.Post("/payments", a.createPayment)

	r.With(a.requireAdmin).Post("/admin/users/{userId}/confirm-payment", a.confirmPayment)
}

// Theme

func (a *api) loadTheme(w http.ResponseWriter, r *http.Request) {
	state, err := a.Theme.LoadTheme(r.Context())
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (a *api) saveTheme(w http.ResponseWriter, r *http.Request) {
	var s theme.Settings
	if !decode(w, r, &s) {
		return
	}
	res, err := a.Theme.SaveTheme(r.Context(), s)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (a *api) setColor(set func(context.Context, string) (*primary.SaveResult, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body colorBody
		if !decode(w, r, &body) {
			return
		}
		res, err := set(r.Context(), body.Value)
		if err != nil {
			a.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, res)
	}
}

func (a *api) setStatusColor(set func(context.Context, string, string) (*primary.SaveResult, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body colorBody
		if !decode(w, r, &body) {
			return
		}
		res, err := set(r.Context(), chi.URLParam(r, "status"), body.Value)
		if err != nil {
			a.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, res)
	}
}

func (a *api) setStatusView(w http.ResponseWriter, r *http.Request) {
	var body colorBody
	if !decode(w, r, &body) {
		return
	}
	a.noContent(w, r, a.Theme.SetStatusView(r.Context(), body.Value))
}

func (a *api) checkTheme(w http.ResponseWriter, r *http.Request) {
	report, err := a.Theme.CheckConsistency(r.Context())
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (a *api) resetTheme(w http.ResponseWriter, r *http.Request) {
	a.noContent(w, r, a.Theme.ResetToGlobalDefaults(r.Context()))
}

func (a *api) clearThemeCache(w http.ResponseWriter, r *http.Request) {
	a.noContent(w, r, a.Theme.ClearCache(r.Context()))
}

func (a *api) deriveColor(w http.ResponseWriter, r *http.Request) {
	d, err := a.Theme.Derive(r.URL.Query().Get("hex"))
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// Billing

func (a *api) listInvoices(w http.ResponseWriter, r *http.Request) {
	invoices, err := a.Billing.ListInvoices(r.Context())
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, invoices)
}

func (a *api) receipt(w http.ResponseWriter, r *http.Request) {
	receipt, err := a.Billing.GetReceipt(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, receipt)
}

func (a *api) createPayment(w http.ResponseWriter, r *http.Request) {
	var req primary.CreatePaymentRequest
	if !decode(w, r, &req) {
		return
	}
	inv, err := a.Billing.CreatePayment(r.Context(), req)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, inv)
}

func (a *api) confirmPayment(w http.ResponseWriter, r *http.Request) {
	inv, err := a.Billing.ConfirmLatestPending(r.Context(), chi.URLParam(r, "userId"))
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, inv)
}
