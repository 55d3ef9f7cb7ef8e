package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"visrender/internal/artifacts"
	"visrender/internal/charts"
	"visrender/internal/config"
	"visrender/internal/logger"
	"visrender/internal/pages"
	"visrender/internal/storage"
)

// Server holds the HTTP handlers and the components they call into
type Server struct {
	Config   *config.Config
	Storage  storage.StorageClient
	Renderer charts.ImageRenderer
	Pages    pages.PageBuilder
	Writer   *artifacts.Writer
	log      *logger.Logger
}

// Route binds a handler to a path and its allowed methods
type Route struct {
	Name        string
	Methods     []string
	Pattern     string
	HandlerFunc http.HandlerFunc
}

// NewServer wires the renderers configured in cfg on top of store
func NewServer(cfg *config.Config, store storage.StorageClient) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if store == nil {
		return nil, fmt.Errorf("storage client is required")
	}

	pageBuilder, err := pages.NewPageBuilder(cfg.HTMLRenderer)
	if err != nil {
		return nil, fmt.Errorf("failed to create page builder: %w", err)
	}

	return &Server{
		Config:   cfg,
		Storage:  store,
		Renderer: charts.NewGoChartRenderer(cfg.ChartWidth, cfg.ChartHeight),
		Pages:    pageBuilder,
		Writer:   artifacts.NewWriter(store),
		log:      logger.Component("server"),
	}, nil
}

func (s *Server) routes() []Route {
	return []Route{
		{"Render", []string{http.MethodPost}, "/render", s.HandleRender},
		{"RenderHTML", []string{http.MethodPost}, "/render-html", s.HandleRenderHTML},
		{"Image", []string{http.MethodGet, http.MethodHead}, "/images/{filename}", s.HandleImage},
		{"Health", []string{http.MethodGet}, "/health", s.HandleHealth},
	}
}

// SetupRoutes configures HTTP routes for the server
func (s *Server) SetupRoutes() *mux.Router {
	router := mux.NewRouter()
	routes := s.routes()

	for _, route := range routes {
		var handler http.Handler
		handler = route.HandlerFunc
		handler = RequestLogger(handler, route.Name)

		router.
			Methods(route.Methods...).
			Path(route.Pattern).
			Name(route.Name).
			Handler(handler)
	}

	// Registered after every method route, so a path that exists answers
	// other methods with 405 instead of falling through to 404
	allowed := make(map[string][]string)
	var patterns []string
	for _, route := range routes {
		if _, ok := allowed[route.Pattern]; !ok {
			patterns = append(patterns, route.Pattern)
		}
		allowed[route.Pattern] = append(allowed[route.Pattern], route.Methods...)
	}
	for _, pattern := range patterns {
		router.
			Path(pattern).
			Handler(RequestLogger(s.methodNotAllowed(allowed[pattern]), "MethodNotAllowed"))
	}
	return router
}

func (s *Server) methodNotAllowed(methods []string) http.HandlerFunc {
	allow := strings.Join(methods, ", ")
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Allow", allow)
		s.writeError(w, http.StatusMethodNotAllowed, "method "+r.Method+" not allowed")
	}
}

// Close cleans up server resources
func (s *Server) Close() error {
	return s.Storage.Close()
}
