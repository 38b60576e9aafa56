// Package ui serves rendered audit reports as HTML. It is a read-only
// consumer of stored reports: it never mutates them.
package ui

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"fairlens/domain/core"
	"fairlens/internal"
	"fairlens/internal/render"
	"fairlens/ports"
)

// App represents the report UI application
type App struct {
	router     *chi.Mux
	repository ports.ReportRepositoryPort
	logger     *internal.Logger
}

// NewApp creates the UI application over a report repository
func NewApp(repository ports.ReportRepositoryPort, logger *internal.Logger) *App {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	app := &App{
		router:     chi.NewRouter(),
		repository: repository,
		logger:     logger,
	}
	app.routes()
	return app
}

func (a *App) routes() {
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)

	a.router.Get("/", a.handleIndex)
	a.router.Get("/reports/{id}", a.handleReport)
	a.router.Get("/reports/{id}/raw", a.handleReportRaw)
}

// Run starts the UI server on the given port
func (a *App) Run(port string) error {
	a.logger.Info("report UI listening on :%s", port)
	return http.ListenAndServe(":"+port, a.router)
}

// Handler exposes the router for tests
func (a *App) Handler() http.Handler {
	return a.router
}

func (a *App) handleIndex(w http.ResponseWriter, r *http.Request) {
	stored, err := a.repository.List(r.Context(), 50)
	if err != nil {
		a.logger.Error("list reports failed: %v", err)
		http.Error(w, "failed to list reports", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, "<html><head><title>Audit Reports</title></head><body><h1>Audit Reports</h1><ul>")
	for _, sr := range stored {
		fmt.Fprintf(w, `<li><a href="/reports/%s">%s</a> (%d rows, label %s)</li>`,
			sr.Report.ID, sr.Report.CreatedAt, sr.Report.Metadata.DatasetRows, sr.Report.Metadata.LabelColumn)
	}
	fmt.Fprint(w, "</ul></body></html>")
}

// handleReport renders the stored report's markdown form as HTML
func (a *App) handleReport(w http.ResponseWriter, r *http.Request) {
	stored, ok := a.lookup(w, r)
	if !ok {
		return
	}

	md := render.Markdown(stored.Report)

	p := parser.NewWithExtensions(parser.CommonExtensions | parser.Tables)
	doc := p.Parse([]byte(md))
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	body := markdown.Render(doc, renderer)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, "<html><head><title>Audit Report %s</title></head><body>%s</body></html>", stored.Report.ID, body)
}

// handleReportRaw returns the byte-stable plain-text rendering
func (a *App) handleReportRaw(w http.ResponseWriter, r *http.Request) {
	stored, ok := a.lookup(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, stored.Rendered)
}

func (a *App) lookup(w http.ResponseWriter, r *http.Request) (*ports.StoredReport, bool) {
	id, err := core.ParseReportID(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return nil, false
	}
	stored, err := a.repository.Get(r.Context(), id)
	if err != nil {
		http.Error(w, "report not found", http.StatusNotFound)
		return nil, false
	}
	return stored, true
}
