package ui

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"gocmmi/app"
	"gocmmi/internal"
	"gocmmi/ports"
)

// Config holds UI application configuration
type Config struct {
	Port        string
	CORSOrigins []string
}

// App wires the HTTP API over the application services
type App struct {
	router      *chi.Mux
	config      Config
	catalog     ports.CatalogRepository
	projects    ports.ProjectRepository
	assessments *app.AssessmentService
	portfolio   *app.PortfolioService
	logger      *internal.Logger
}

// NewApp creates the HTTP application and mounts all routes
func NewApp(config Config, catalog ports.CatalogRepository, projects ports.ProjectRepository,
	assessments *app.AssessmentService, portfolio *app.PortfolioService, logger *internal.Logger) *App {

	a := &App{
		router:      chi.NewRouter(),
		config:      config,
		catalog:     catalog,
		projects:    projects,
		assessments: assessments,
		portfolio:   portfolio,
		logger:      logger,
	}

	a.setupMiddleware()
	a.setupRoutes()

	return a
}

// setupMiddleware configures HTTP middleware
func (a *App) setupMiddleware() {
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))
	a.router.Use(corsMiddleware(a.config.CORSOrigins))
}

// setupRoutes configures the application routes
func (a *App) setupRoutes() {
	a.router.Get("/health", a.handleHealth)

	// Catalog (read-only model)
	a.router.Get("/api/model/kpas", a.handleModelKPAs)
	a.router.Get("/api/model/questions", a.handleModelQuestions)
	a.router.Get("/api/model/rules", a.handleModelRules)

	// Projects
	a.router.Post("/api/projects", a.handleProjectCreate)
	a.router.Get("/api/projects", a.handleProjectList)
	a.router.Get("/api/projects/{id}", a.handleProjectGet)
	a.router.Patch("/api/projects/{id}", a.handleProjectRename)
	a.router.Delete("/api/projects/{id}", a.handleProjectDelete)
	a.router.Get("/api/projects/{id}/assessments", a.handleProjectAssessments)
	a.router.Post("/api/projects/{id}/assessments", a.handleProjectAssessmentCreate)
	a.router.Get("/api/projects/{id}/stats", a.handleProjectStats)

	// Assessments
	a.router.Get("/api/assessments", a.handleAssessmentList)
	a.router.Post("/api/assessments", a.handleAssessmentCreate)
	a.router.Get("/api/assessments/{id}", a.handleAssessmentGet)
	a.router.Post("/api/assessments/{id}/answers", a.handleAssessmentAnswers)
	a.router.Post("/api/assessments/{id}/diagnose", a.handleAssessmentDiagnose)
	a.router.Get("/api/assessments/{id}/report", a.handleAssessmentReport)
	a.router.Get("/api/assessments/{id}/report/export", a.handleReportExport)
	a.router.Get("/api/assessments/{id}/report/html", a.handleReportHTML)
}

// Router exposes the configured handler, mainly for tests
func (a *App) Router() http.Handler {
	return a.router
}

// Start runs the HTTP server (blocking)
func (a *App) Start() error {
	a.logger.Info("API listening on :%s", a.config.Port)
	return http.ListenAndServe(":"+a.config.Port, a.router)
}

func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
