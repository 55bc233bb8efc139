// Package wire provides dependency injection for praxis.
// It creates singleton services with lazy initialization.
package wire

import (
	"database/sql"
	"io"
	"net/http"
	"os"
	"sync"

	"go.uber.org/zap"

	cliadapter "github.com/example/praxis/internal/adapters/cli"
	"github.com/example/praxis/internal/adapters/filesystem"
	"github.com/example/praxis/internal/adapters/httpapi"
	"github.com/example/praxis/internal/adapters/sqlite"
	"github.com/example/praxis/internal/app"
	"github.com/example/praxis/internal/config"
	"github.com/example/praxis/internal/db"
	"github.com/example/praxis/internal/logger"
	"github.com/example/praxis/internal/metrics"
	"github.com/example/praxis/internal/ports/primary"
	"github.com/example/praxis/internal/validation"
)

const filesURL = "/files"

var (
	cfg      *config.Config
	database *sql.DB
	services httpapi.Services
	once     sync.Once
	cfgOnce  sync.Once
)

// Config returns the configuration loaded from the working directory.
func Config() *config.Config {
	cfgOnce.Do(func() {
		dir, err := os.Getwd()
		if err != nil {
			dir = "."
		}
		loaded, err := config.LoadConfig(dir)
		if err != nil {
			logger.L().Fatal("failed to load config", zap.Error(err))
		}
		cfg = loaded
	})
	return cfg
}

// DB returns the shared database connection.
func DB() *sql.DB {
	once.Do(initServices)
	return database
}

// Services returns every primary port.
func Services() httpapi.Services {
	once.Do(initServices)
	return services
}

// ClientService returns the singleton ClientService instance.
func ClientService() primary.ClientService { return Services().Clients }

// CaseService returns the singleton CaseService instance.
func CaseService() primary.CaseService { return Services().Cases }

// TaskService returns the singleton TaskService instance.
func TaskService() primary.TaskService { return Services().Tasks }

// JudicialProcessService returns the singleton JudicialProcessService instance.
func JudicialProcessService() primary.JudicialProcessService { return Services().Processes }

// TemplateService returns the singleton TemplateService instance.
func TemplateService() primary.TemplateService { return Services().Templates }

// ProfileService returns the singleton ProfileService instance.
func ProfileService() primary.ProfileService { return Services().Profiles }

// ThemeService returns the singleton ThemeService instance.
func ThemeService() primary.ThemeService { return Services().Theme }

// BillingService returns the singleton BillingService instance.
func BillingService() primary.BillingService { return Services().Billing }

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	c := Config()
	log := logger.Named("wire")

	db.SetPath(c.Storage.DatabasePath)
	conn, err := db.GetDB()
	if err != nil {
		log.Fatal("failed to initialize database", zap.Error(err))
	}
	database = conn

	storage, err := filesystem.NewFileStorage(c.Storage.FilesDir, filesURL)
	if err != nil {
		log.Fatal("failed to initialize file storage", zap.Error(err))
	}
	local := filesystem.NewLocalStore(c.Storage.LocalStore)
	tracker := validation.NewTracker(logger.Named("validation"))

	// Create repository adapters (secondary ports) - sqlite adapters with injected DB
	clientRepo := sqlite.NewClientRepository(database)
	caseRepo := sqlite.NewCaseRepository(database)
	taskRepo := sqlite.NewTaskRepository(database)
	processRepo := sqlite.NewJudicialProcessRepository(database)
	profileRepo := sqlite.NewProfileRepository(database)

	// Create services (primary ports implementation)
	services = httpapi.Services{
		Clients:   app.NewClientService(clientRepo, tracker),
		Cases:     app.NewCaseService(caseRepo),
		Tasks:     app.NewTaskService(taskRepo),
		Processes: app.NewJudicialProcessService(processRepo, tracker),
		Templates: app.NewTemplateService(sqlite.NewTemplateRepository(database), storage),
		Profiles:  app.NewProfileService(profileRepo, sqlite.NewIconRepository(database), storage),
		Theme:     app.NewThemeService(profileRepo, local, c.Theme.CacheTTL),
		Billing:   app.NewBillingService(sqlite.NewPaymentRepository(database), profileRepo),
		Dashboard: app.NewDashboardService(clientRepo, caseRepo, taskRepo, processRepo),
		Account:   app.NewAccountService(sqlite.NewCountRepository(database)),
		Tracker:   tracker,
	}
}

// Tokens returns a token issuer built from the auth configuration.
func Tokens() (*httpapi.TokenIssuer, error) {
	c := Config()
	return httpapi.NewTokenIssuer(c.Auth.JWTSecret, c.Auth.Issuer, c.Auth.TokenTTL)
}

// Server builds the HTTP server for praxis serve.
func Server() (*httpapi.Server, error) {
	c := Config()
	tokens, err := Tokens()
	if err != nil {
		return nil, err
	}

	opts := httpapi.Options{
		Tokens:         tokens,
		FilesDir:       c.Storage.FilesDir,
		MaxUploadBytes: c.Storage.MaxUploadMB << 20,
	}
	if c.Server.Metrics {
		opts.Metrics = metrics.New()
	}

	var handler http.Handler = httpapi.NewRouter(Services(), opts)
	return httpapi.NewServer(c.Server.Addr, handler, c.Server.ReadTimeout, c.Server.WriteTimeout), nil
}

// ClientAdapter returns a new ClientAdapter writing to out.
// Each call creates a new adapter (adapters are stateless translators).
func ClientAdapter(out io.Writer) *cliadapter.ClientAdapter {
	return cliadapter.NewClientAdapter(ClientService(), out)
}

// MatterAdapter returns a new MatterAdapter writing to out.
func MatterAdapter(out io.Writer) *cliadapter.MatterAdapter {
	s := Services()
	return cliadapter.NewMatterAdapter(s.Cases, s.Tasks, s.Processes, out)
}

// TemplateAdapter returns a new TemplateAdapter writing to out.
func TemplateAdapter(out io.Writer) *cliadapter.TemplateAdapter {
	return cliadapter.NewTemplateAdapter(TemplateService(), out)
}

// AccountAdapter returns a new AccountAdapter writing to out.
func AccountAdapter(out io.Writer) *cliadapter.AccountAdapter {
	s := Services()
	return cliadapter.NewAccountAdapter(s.Billing, s.Dashboard, s.Account, out)
}
