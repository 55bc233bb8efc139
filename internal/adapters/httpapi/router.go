// Package httpapi is the JSON HTTP surface of praxis. Handlers translate
// requests into primary port calls and map service errors to status codes.
package httpapi

import (
	"net/http"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/example/praxis/internal/metrics"
	"github.com/example/praxis/internal/ports/primary"
	"github.com/example/praxis/internal/validation"
	"github.com/example/praxis/internal/version"
)

// Services are the primary ports served by the API.
type Services struct {
	Clients   primary.ClientService
	Cases     primary.CaseService
	Tasks     primary.TaskService
	Processes primary.JudicialProcessService
	Templates primary.TemplateService
	Profiles  primary.ProfileService
	Theme     primary.ThemeService
	Billing   primary.BillingService
	Dashboard primary.DashboardService
	Account   primary.AccountService
	Tracker   *validation.Tracker
}

// Options configure the router.
type Options struct {
	Tokens *TokenIssuer

	// Metrics, when set, instruments requests and serves /metrics.
	Metrics *metrics.Metrics

	// FilesDir, when set, serves uploaded avatar icons under /files/icons/.
	FilesDir string

	// MaxUploadBytes bounds multipart uploads. Default 20 MiB.
	MaxUploadBytes int64
}

type api struct {
	Services
	tokens    *TokenIssuer
	metrics   *metrics.Metrics
	maxUpload int64
}

// NewRouter builds the HTTP handler.
func NewRouter(svc Services, opts Options) http.Handler {
	a := &api{
		Services:  svc,
		tokens:    opts.Tokens,
		metrics:   opts.Metrics,
		maxUpload: opts.MaxUploadBytes,
	}
	if a.maxUpload <= 0 {
		a.maxUpload = 20 << 20
	}

	r := chi.NewRouter()
	r.Use(a.requestScope)
	r.Use(middleware.CleanPath)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "version": version.Get()})
	})
	if a.metrics != nil {
		r.Handle("/metrics", a.metrics.Handler())
	}
	if opts.FilesDir != "" {
		icons := http.Dir(filepath.Join(opts.FilesDir, "icons"))
		r.Handle("/files/icons/*", http.StripPrefix("/files/icons/", http.FileServer(icons)))
	}

	r.Route("/api", func(r chi.Router) {
		r.Post("/validate", a.validateField)

		r.Group(func(r chi.Router) {
			r.Use(a.authenticate)
			a.mountRecords(r)
			a.mountTemplates(r)
			a.mountProfile(r)
			a.mountTheme(r)
			a.mountBilling(r)
		})
	})

	return r
}

func (a *api) mountRecords(r chi.Router) {
	r.Route("/clients", func(r chi.Router) {
		r.Get("/", a.listClients)
		r.Post("/", a.createClient)
		r.Get("/{id}", a.getClient)
		r.Put("/{id}", a.updateClient)
		r.Put("/{id}/status", a.setClientStatus)
		r.Delete("/{id}", a.deleteClient)
	})

	r.Get("/case-categories", a.caseCategories)
	r.Route("/cases", func(r chi.Router) {
		r.Get("/", a.listCases)
		r.Post("/", a.createCase)
		r.Get("/{id}", a.getCase)
		r.Patch("/{id}", a.updateCase)
		r.Post("/{id}/toggle", a.toggleCase)
		r.Post("/{id}/complete", a.completeCase)
		r.Post("/{id}/reopen", a.reopenCase)
		r.Delete("/{id}", a.deleteCase)
	})

	r.Route("/tasks", func(r chi.Router) {
		r.Get("/", a.listTasks)
		r.Post("/", a.createTask)
		r.Post("/mark-overdue", a.markOverdue)
		r.Get("/{id}", a.getTask)
		r.Patch("/{id}", a.updateTask)
		r.Post("/{id}/complete", a.completeTask)
		r.Post("/{id}/resume", a.resumeTask)
		r.Delete("/{id}", a.deleteTask)
	})

	r.Get("/tribunals", a.listTribunals)
	r.Route("/processes", func(r chi.Router) {
		r.Get("/", a.listProcesses)
		r.Post("/", a.registerProcess)
		r.Get("/{id}", a.getProcess)
		r.Delete("/{id}", a.deleteProcess)
	})

	r.Get("/dashboard", a.dashboard)
	r.Get("/debug/counts", a.debugCounts)
	r.Get("/debug/validation", a.debugValidation)
}
