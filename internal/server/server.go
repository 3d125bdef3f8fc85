package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/31Joojo/portfolio/internal/config"
	"github.com/31Joojo/portfolio/internal/logging"
	"github.com/31Joojo/portfolio/internal/page"
	"github.com/31Joojo/portfolio/internal/stats"
	"github.com/31Joojo/portfolio/internal/surface"
)

// Server is the HTTP + WebSocket surface of the dashboard. It serves the
// rendered pages, a small read-only JSON API over the same content, and a
// live instruction stream per page.
type Server struct {
	cfg      Config
	router   chi.Router
	upgrader websocket.Upgrader
	logger   logging.Logger
	html     *surface.HTML
}

// NewServer creates a Server. Zero-value Config fields get production
// defaults; tests inject their own.
func NewServer(cfg Config) (*Server, error) {
	if cfg.App == nil {
		cfg.App = config.Default()
	}
	if cfg.Pages == nil {
		reg := page.Default()
		cfg.Pages = reg
		if cfg.Nav == nil {
			cfg.Nav = reg.Entries()
		}
	}
	if cfg.Nav == nil {
		cfg.Nav = page.Default().Entries()
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.NewStdoutLogger("Server")
	}
	if cfg.Stats == nil {
		cfg.Stats = stats.Nop{}
	}

	s := &Server{
		cfg:    cfg,
		router: chi.NewRouter(),
		logger: cfg.Logger,
		html:   surface.NewHTML(cfg.App, cfg.Logger),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// Pages are public read-only content.
				return true
			},
		},
	}

	s.routes()
	return s, nil
}

func (s *Server) routes() {
	r := s.router

	if s.cfg.App.Server.EnableCompression {
		r.Use(middleware.Compress(5, "text/html", "application/json"))
	}

	r.Get("/", s.handleRoot)
	r.Get("/pages/{page}", s.handlePage)
	r.Get("/api/pages", s.handleListPages)
	r.Get("/api/pages/{page}", s.handleGetPage)
	r.Get("/ws/pages/{page}", s.handlePageWS)
	r.Get("/healthz", s.handleHealthz)
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	fields := []logging.Field{
		{Key: "method", Value: r.Method},
		{Key: "path", Value: r.URL.Path},
	}
	if q := r.URL.Query(); len(q) > 0 {
		fields = append(fields, logging.Field{Key: "query", Value: q.Encode()})
	}
	s.logger.Info("http_request", fields...)

	s.router.ServeHTTP(w, r)
}

// HTTPServer creates an *http.Server listening on the configured port.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf(":%d", s.cfg.App.Server.Port),
		Handler:      s,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0, // allow the websocket stream
	}
}

// Close releases the stats recorder.
func (s *Server) Close() {
	if s.cfg.Stats != nil {
		if err := s.cfg.Stats.Close(); err != nil {
			s.logger.Warn("closing stats recorder", logging.Field{Key: "error", Value: err.Error()})
		}
	}
}

// ─── JSON helpers ──────────────────────────────────────────────────────

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeHTMLNotice(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	fmt.Fprintf(w, "<!DOCTYPE html><html><body><p>%s</p></body></html>\n", msg)
}

// ─── HTML handlers ─────────────────────────────────────────────────────

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	s.servePage(w, r, "home")
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	s.servePage(w, r, chi.URLParam(r, "page"))
}

func (s *Server) servePage(w http.ResponseWriter, r *http.Request, id string) {
	p, err := s.cfg.Pages.Render(s.cfg.App, id)
	if err != nil {
		if errors.Is(err, page.ErrUnknownPage) {
			s.logger.Warn("page not found", logging.Field{Key: "page", Value: id})
			writeHTMLNotice(w, http.StatusNotFound, "This page does not exist.")
			return
		}
		// A failing page must not take the rest of the dashboard with it.
		s.logger.Error("rendering page", logging.Field{Key: "page", Value: id}, logging.Field{Key: "error", Value: err.Error()})
		writeHTMLNotice(w, http.StatusInternalServerError, "This page failed to render.")
		return
	}

	s.recordView(r, id)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.html.Document(w, id, s.cfg.Nav, p); err != nil {
		s.logger.Error("writing page", logging.Field{Key: "page", Value: id}, logging.Field{Key: "error", Value: err.Error()})
	}
}

func (s *Server) recordView(r *http.Request, id string) {
	if err := s.cfg.Stats.Record(r.Context(), id, r.RemoteAddr); err != nil {
		s.logger.Warn("recording page view", logging.Field{Key: "error", Value: err.Error()})
	}
}

// ─── JSON API ──────────────────────────────────────────────────────────

type pageInfo struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

func (s *Server) handleListPages(w http.ResponseWriter, r *http.Request) {
	infos := make([]pageInfo, 0, len(s.cfg.Nav))
	for _, e := range s.cfg.Nav {
		infos = append(infos, pageInfo{ID: e.ID, Title: e.Title})
	}
	s.logger.Info("listed pages", logging.Field{Key: "count", Value: len(infos)})
	writeJSON(w, http.StatusOK, infos)
}

func (s *Server) handleGetPage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "page")

	p, err := s.cfg.Pages.Render(s.cfg.App, id)
	if err != nil {
		if errors.Is(err, page.ErrUnknownPage) {
			writeError(w, http.StatusNotFound, "page not found")
			return
		}
		s.logger.Error("rendering page", logging.Field{Key: "page", Value: id}, logging.Field{Key: "error", Value: err.Error()})
		writeError(w, http.StatusInternalServerError, "render failed")
		return
	}

	s.recordView(r, id)
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ─── WebSocket ─────────────────────────────────────────────────────────

// handlePageWS streams a page as one JSON frame per instruction followed by
// a done frame. The display surface on the other end paints frames as they
// arrive.
func (s *Server) handlePageWS(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "page")

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("upgrading to websocket", logging.Field{Key: "error", Value: err.Error()})
		return
	}
	defer conn.Close()

	viewerID := uuid.New().String()

	p, err := s.cfg.Pages.Render(s.cfg.App, id)
	if err != nil {
		_ = conn.WriteJSON(map[string]string{"error": err.Error()})
		s.logger.Warn("rendering page for stream", logging.Field{Key: "page", Value: id}, logging.Field{Key: "error", Value: err.Error()})
		return
	}

	if err := s.cfg.Stats.Record(r.Context(), id, viewerID); err != nil {
		s.logger.Warn("recording page view", logging.Field{Key: "error", Value: err.Error()})
	}

	for _, in := range p {
		raw, err := page.MarshalInstruction(in)
		if err != nil {
			s.logger.Error("marshaling instruction", logging.Field{Key: "page", Value: id}, logging.Field{Key: "error", Value: err.Error()})
			return
		}
		if err := conn.WriteMessage(websocket.TextMessage, raw); err != nil {
			// Client went away mid-stream.
			return
		}
	}

	_ = conn.WriteJSON(map[string]string{"type": "done", "viewer": viewerID})
	s.logger.Info("streamed page",
		logging.Field{Key: "page", Value: id},
		logging.Field{Key: "viewer", Value: viewerID},
		logging.Field{Key: "instructions", Value: len(p)})
}
