// Package dashboard serves a read-only view of seen projects over HTTP.
package dashboard

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"alphahunter/internal/domain"
	"alphahunter/internal/ports"
	"alphahunter/internal/scoring"
	"alphahunter/pkg/slug"
)

//go:embed templates/*.html
var templateFS embed.FS

// Config holds the listener address and the database location reported by
// the health endpoint.
type Config struct {
	Host   string
	Port   int
	DBPath string
}

// Server renders the seen-project listing. It never writes to the store.
type Server struct {
	echo   *echo.Echo
	store  ports.SeenStore
	config Config
	logger *slog.Logger
}

// NewServer wires templates, middleware, and routes.
func NewServer(store ports.SeenStore, cfg Config, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Host == "" {
		cfg.Host = "127.0.0.1"
	}
	if cfg.Port == 0 {
		cfg.Port = 8000
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = &renderer{templates: template.Must(template.ParseFS(templateFS, "templates/*.html"))}

	e.Use(middleware.Recover())
	e.Use(requestLogger(logger))

	s := &Server{echo: e, store: store, config: cfg, logger: logger}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.echo.GET("/", s.handleIndex)
	s.echo.GET("/project/:slug", s.handleProject)
	s.echo.GET("/healthz", s.handleHealthz)
}

func requestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			logger.Info("http request",
				"method", c.Request().Method,
				"uri", c.Request().RequestURI,
				"status", c.Response().Status,
				"duration", time.Since(start),
			)
			return err
		}
	}
}

type renderer struct {
	templates *template.Template
}

func (r *renderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}

// projectView is the template-facing projection of one seen project.
type projectView struct {
	Name       string
	Slug       string
	Score      int
	ScoreClass string
	Action     string
	Investors  string
	Source     string
	SourceURL  string
	Frequency  string
	Discovered string
}

func viewFrom(p domain.SeenProject) projectView {
	view := projectView{
		Name:       p.ProjectName,
		Slug:       slug.Make(p.ProjectName),
		Score:      p.LastScore,
		ScoreClass: "score-" + strings.ToLower(string(scoring.PriorityFor(p.LastScore))),
		Action:     orNA(p.Action),
		Investors:  p.DisplayInvestors(),
		Source:     orNA(p.Source),
		Frequency:  orNA(p.Frequency),
		Discovered: orNA(p.Timestamp),
	}
	if strings.HasPrefix(p.Source, "http://") || strings.HasPrefix(p.Source, "https://") {
		view.SourceURL = p.Source
	}
	return view
}

func orNA(value string) string {
	if strings.TrimSpace(value) == "" {
		return "N/A"
	}
	return value
}

func (s *Server) handleIndex(c echo.Context) error {
	views, err := s.listViews(c.Request().Context())
	if err != nil {
		return fmt.Errorf("list projects: %w", err)
	}
	return c.Render(http.StatusOK, "index.html", map[string]interface{}{
		"Projects": views,
	})
}

func (s *Server) handleProject(c echo.Context) error {
	requested := c.Param("slug")

	views, err := s.listViews(c.Request().Context())
	if err != nil {
		return fmt.Errorf("list projects: %w", err)
	}
	for _, view := range views {
		if slug.Match(view.Name, requested) {
			return c.Render(http.StatusOK, "project.html", view)
		}
	}

	return echo.NewHTTPError(http.StatusNotFound, fmt.Sprintf("project %s not found", requested))
}

// HealthResponse is the body of GET /healthz.
type HealthResponse struct {
	Status   string `json:"status"`
	DBExists bool   `json:"db_exists"`
}

func (s *Server) handleHealthz(c echo.Context) error {
	exists := false
	if s.config.DBPath != "" {
		if _, err := os.Stat(s.config.DBPath); err == nil {
			exists = true
		}
	}
	return c.JSON(http.StatusOK, HealthResponse{Status: "ok", DBExists: exists})
}

// listViews reads the store newest-first. A nil store renders as an empty
// dashboard rather than an error.
func (s *Server) listViews(ctx context.Context) ([]projectView, error) {
	if s.store == nil {
		return nil, nil
	}

	projects, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]projectView, 0, len(projects))
	for _, project := range projects {
		views = append(views, viewFrom(project))
	}
	return views, nil
}

// Start serves HTTP until Shutdown or a listener failure.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.logger.Info("dashboard listening", "addr", addr)
	return s.echo.Start(addr)
}

// Shutdown stops the listener gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
