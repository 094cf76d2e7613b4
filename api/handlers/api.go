package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/linesmerrill/medireminder-api/api"
	"github.com/linesmerrill/medireminder-api/auth"
	"github.com/linesmerrill/medireminder-api/config"
	"github.com/linesmerrill/medireminder-api/databases"
	"github.com/linesmerrill/medireminder-api/gateway"
	"github.com/linesmerrill/medireminder-api/models"
	"github.com/linesmerrill/medireminder-api/storage"
)

// App stores the router and the storage connections, so they can be reused
type App struct {
	Router   *mux.Router
	Config   config.Config
	Provider *databases.Provider
	Uploader storage.Uploader
	Metrics  *api.MetricsCollector

	now func() time.Time
}

// New creates a new mux router and all the routes
func (a *App) New(ctx context.Context) (*mux.Router, error) {
	passwords, err := auth.NewPasswords(a.Config.PasswordHashing)
	if err != nil {
		return nil, err
	}
	if a.Metrics == nil {
		a.Metrics = api.NewMetricsCollector()
	}

	adminTable, err := databases.OpenTable[models.Admin](ctx, a.Provider, a.Config.AdminsTable)
	if err != nil {
		return nil, err
	}
	medicamentTable, err := databases.OpenTable[models.Medicament](ctx, a.Provider, a.Config.MedicamentsTable)
	if err != nil {
		return nil, err
	}
	recommendationTable, err := databases.OpenTable[models.Recommendation](ctx, a.Provider, a.Config.RecommendationsTable)
	if err != nil {
		return nil, err
	}
	reminderTable, err := databases.OpenTable[models.Reminder](ctx, a.Provider, a.Config.RemindersTable,
		databases.Index{Field: "user_id", Name: a.Config.RemindersUserIndex})
	if err != nil {
		return nil, err
	}

	hooks := gateway.QueryHooks{Context: api.WithQueryTimeout, Done: api.RecordQuery}

	admins := gateway.NewAdmins(adminTable, passwords)
	admins.Hooks = hooks
	admin := NewAdmin(admins, auth.NewTokens(a.Config.JWTSecret, a.Config.TokenTTL))

	medicaments := gateway.New[models.Medicament](gateway.Schema{Entity: "medicament", BatchKey: "medicaments"}, medicamentTable)
	medicaments.Hooks = hooks
	med := Medicament{
		Resource: Resource[models.Medicament, *models.Medicament]{G: medicaments},
		Uploader: a.Uploader,
		now:      a.now,
	}

	recommendations := gateway.New[models.Recommendation](gateway.Schema{Entity: "recommendation"}, recommendationTable)
	recommendations.Hooks = hooks
	rec := Resource[models.Recommendation, *models.Recommendation]{G: recommendations}

	reminders := gateway.New[models.Reminder](gateway.Schema{Entity: "reminder", ForeignKey: "user_id"}, reminderTable)
	reminders.Hooks = hooks
	rem := Resource[models.Reminder, *models.Reminder]{G: reminders}
	m := MetricsHandler{Metrics: a.Metrics}

	timeout := a.Config.RequestTimeout
	if timeout <= 0 {
		timeout = api.DefaultQueryTimeout
	}

	r := mux.NewRouter()
	r.Use(api.AccessLogMiddleware, api.MetricsMiddleware(a.Metrics), api.TimeoutMiddleware(timeout), api.Middleware)

	r.Methods(http.MethodOptions).HandlerFunc(api.PreflightHandler)

	// healthchex
	r.HandleFunc("/health", api.HealthCheckHandler).Methods(http.MethodGet)

	apiCreate := r.PathPrefix("/api/v1").Subrouter()

	apiCreate.HandleFunc("/metrics", m.GetMetricsHandler).Methods(http.MethodGet)

	apiCreate.HandleFunc("/admins/authenticate", admin.AuthenticateHandler).Methods(http.MethodPost)
	admin.register(apiCreate, "/admins")

	apiCreate.HandleFunc("/medicaments/batch", med.CreateManyHandler).Methods(http.MethodPost)
	apiCreate.HandleFunc("/medicaments/image", med.UploadImageHandler).Methods(http.MethodPost)
	med.register(apiCreate, "/medicaments")

	rec.register(apiCreate, "/recommendations")

	apiCreate.HandleFunc("/reminders/user", rem.ReadByHandler).Methods(http.MethodGet)
	rem.register(apiCreate, "/reminders")

	return r, nil
}

// Initialize is invoked by main to connect with the storage services and create a router
func (a *App) Initialize(ctx context.Context) error {
	provider, err := databases.NewProvider(ctx, &a.Config)
	if err != nil {
		// if we fail to connect to the database, then kill the pod
		zap.S().With(err).Error("failed to open the document store")
		return err
	}
	a.Provider = provider
	zap.S().Infow("medireminder-api has connected to the document store", "driver", provider.Driver())

	uploader, err := storage.New(ctx, &a.Config)
	if err != nil {
		zap.S().With(err).Error("failed to create the object store client")
		return err
	}
	a.Uploader = uploader

	api.SetQueryTimeout(a.Config.RequestTimeout)

	a.Router, err = a.New(ctx)
	if err != nil {
		zap.S().With(err).Error("failed to create the router")
		return err
	}
	return nil
}
