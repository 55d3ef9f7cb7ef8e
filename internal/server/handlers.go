package server

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"visrender/internal/artifacts"
	"visrender/internal/charts"
	"visrender/internal/config"
	"visrender/internal/logger"
	"visrender/internal/storage"
)

const (
	imagesPath        = "/images/"
	imageCacheControl = "public, max-age=3600"
	healthProbeName   = ".health-probe"
)

// HandleRender renders the posted chart options to a PNG and replies with its URL
func (s *Server) HandleRender(w http.ResponseWriter, r *http.Request) {
	opts, ok := s.readOptions(w, r)
	if !ok {
		return
	}

	ctx := r.Context()
	image, err := s.Renderer.RenderPNG(ctx, opts)
	if err == nil {
		var name string
		name, err = s.Writer.Save(ctx, artifacts.ExtPNG, image)
		if err == nil {
			s.log.Info("Chart image rendered", logger.Fields{"file": name, "bytes": len(image)})
			s.writeSuccess(w, s.artifactURL(r, name))
			return
		}
	}

	s.log.Error("Failed to render chart", err)
	s.writeError(w, http.StatusInternalServerError, "failed to render chart: "+err.Error())
}

// HandleRenderHTML builds an HTML page for the posted chart options and replies with its URL
func (s *Server) HandleRenderHTML(w http.ResponseWriter, r *http.Request) {
	opts, ok := s.readOptions(w, r)
	if !ok {
		return
	}

	ctx := r.Context()
	page, err := s.Pages.BuildHTML(ctx, opts)
	if err == nil {
		var name string
		name, err = s.Writer.Save(ctx, artifacts.ExtHTML, []byte(page))
		if err == nil {
			s.log.Info("Chart page rendered", logger.Fields{"file": name, "bytes": len(page)})
			s.writeSuccess(w, s.artifactURL(r, name))
			return
		}
	}

	s.log.Error("Failed to render HTML chart", err)
	s.writeError(w, http.StatusInternalServerError, "failed to render HTML chart: "+err.Error())
}

// readOptions reads and validates the request body. On failure the error
// response has already been written.
func (s *Server) readOptions(w http.ResponseWriter, r *http.Request) (charts.Options, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.Config.MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.log.Warn("Request body too large", logger.Fields{"limit": tooLarge.Limit})
			s.writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return nil, false
		}
		s.writeError(w, http.StatusBadRequest, "failed to read request body: "+err.Error())
		return nil, false
	}

	opts, err := charts.ParseOptions(body)
	if err != nil {
		s.log.Debug("Rejected chart options", logger.Fields{"error": err.Error()})
		s.writeError(w, http.StatusBadRequest, err.Error())
		return nil, false
	}
	return opts, true
}

// artifactURL builds the absolute URL of a stored artifact from the request
// scheme and host
func (s *Server) artifactURL(r *http.Request, name string) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	host := r.Host

	if s.Config.TrustProxy {
		if proto := firstValue(r.Header.Get("X-Forwarded-Proto")); proto != "" {
			scheme = proto
		}
		if fwdHost := firstValue(r.Header.Get("X-Forwarded-Host")); fwdHost != "" {
			host = fwdHost
		}
	}

	u := url.URL{Scheme: scheme, Host: host, Path: imagesPath + name}
	return u.String()
}

// firstValue returns the first entry of a comma separated header value
func firstValue(v string) string {
	if i := strings.IndexByte(v, ','); i >= 0 {
		v = v[:i]
	}
	return strings.TrimSpace(v)
}

// HandleImage serves a stored artifact by name
func (s *Server) HandleImage(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["filename"]
	if err := storage.ValidateName(name); err != nil {
		http.Error(w, "Invalid file name", http.StatusBadRequest)
		return
	}
	if storage.IsHidden(name) {
		http.Error(w, "File not found", http.StatusNotFound)
		return
	}

	data, err := s.Storage.GetFile(r.Context(), name)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			http.Error(w, "File not found", http.StatusNotFound)
		case errors.Is(err, storage.ErrInvalidName):
			http.Error(w, "Invalid file name", http.StatusBadRequest)
		default:
			s.log.Error("Failed to read artifact", err, logger.Fields{"file": name})
			http.Error(w, "Failed to read file", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", storage.GetContentType(name))
	w.Header().Set("Cache-Control", imageCacheControl)
	http.ServeContent(w, r, name, time.Time{}, bytes.NewReader(data))
}

// HandleHealth provides health check endpoint
func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	status := "healthy"
	code := http.StatusOK
	storageCheck := "ok"
	if _, err := s.Storage.FileExists(r.Context(), healthProbeName); err != nil {
		s.log.Warn("Storage health check failed", logger.Fields{"error": err.Error()})
		status = "degraded"
		code = http.StatusServiceUnavailable
		storageCheck = "error"
	}

	health := map[string]interface{}{
		"status":    status,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"version":   config.GetVersion(),
		"checks": map[string]string{
			"storage": storageCheck,
		},
	}
	s.writeJSON(w, code, health)
}
