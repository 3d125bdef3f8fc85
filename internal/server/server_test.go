package server_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/gorilla/websocket"

	"github.com/31Joojo/portfolio/internal/config"
	"github.com/31Joojo/portfolio/internal/page"
	"github.com/31Joojo/portfolio/internal/server"
	"github.com/31Joojo/portfolio/internal/stats"
	"github.com/31Joojo/portfolio/internal/testutil"
)

func newTestServer(t *testing.T, cfg server.Config) *server.Server {
	t.Helper()

	if cfg.Logger == nil {
		cfg.Logger = &testutil.DummyLogger{}
	}

	s, err := server.NewServer(cfg)
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	t.Cleanup(s.Close)
	return s
}

func doGet(t *testing.T, s http.Handler, path string, header map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("GET", path, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(v); err != nil {
		t.Fatalf("decode JSON response: %v (body: %s)", err, rec.Body.String())
	}
}

// ─── HTML pages ────────────────────────────────────────────────────────

func TestServer_RootServesHome(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, server.Config{})

	rec := doGet(t, s, "/", nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q", ct)
	}

	doc, err := goquery.NewDocumentFromReader(rec.Body)
	if err != nil {
		t.Fatalf("parsing response: %v", err)
	}
	if got := doc.Find("h1").First().Text(); got != "Welcome to my portfolio !" {
		t.Errorf("h1 = %q", got)
	}
}

func TestServer_NamedPage(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, server.Config{})

	rec := doGet(t, s, "/pages/music", nil)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Analysis of my personal listening data") {
		t.Error("music page title missing")
	}
}

func TestServer_UnknownPage404(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, server.Config{})

	rec := doGet(t, s, "/pages/nope", nil)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "does not exist") {
		t.Errorf("expected a not-found notice, got %s", rec.Body.String())
	}
}

// failingSource renders one page that always errors, next to the real ones.
type failingSource struct {
	inner server.PageSource
}

func (f *failingSource) Render(cfg *config.Config, id string) (page.Page, error) {
	if id == "broken" {
		return nil, &page.RenderError{PageID: id, Err: errors.New("synthetic failure")}
	}
	return f.inner.Render(cfg, id)
}

func TestServer_FailingPageLeavesOthersAlone(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, server.Config{
		Pages: &failingSource{inner: page.Default()},
	})

	rec := doGet(t, s, "/pages/broken", nil)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "failed to render") {
		t.Errorf("expected a generic failure notice, got %s", rec.Body.String())
	}

	// Other pages are unaffected.
	rec = doGet(t, s, "/pages/home", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("healthy page affected by failing one: %d", rec.Code)
	}
}

// ─── Compression ───────────────────────────────────────────────────────

func TestServer_CompressionToggle(t *testing.T) {
	t.Parallel()

	header := map[string]string{"Accept-Encoding": "gzip"}

	cfgOn, err := config.Parse("[server]\nenableCompression = true\n")
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	on := newTestServer(t, server.Config{App: cfgOn})
	rec := doGet(t, on, "/", header)
	if rec.Header().Get("Content-Encoding") != "gzip" {
		t.Error("expected gzip encoding with compression enabled")
	}

	off := newTestServer(t, server.Config{})
	rec = doGet(t, off, "/", header)
	if rec.Header().Get("Content-Encoding") == "gzip" {
		t.Error("compression applied despite default enableCompression = false")
	}
}

// ─── JSON API ──────────────────────────────────────────────────────────

func TestServer_ListPages(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, server.Config{})

	rec := doGet(t, s, "/api/pages", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var infos []struct {
		ID    string `json:"id"`
		Title string `json:"title"`
	}
	decodeJSON(t, rec, &infos)

	if len(infos) != 3 {
		t.Fatalf("expected 3 pages, got %d", len(infos))
	}
	if infos[0].ID != "home" || infos[0].Title != "Home page" {
		t.Errorf("first page = %+v", infos[0])
	}
}

func TestServer_GetPageJSON(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, server.Config{})

	rec := doGet(t, s, "/api/pages/home", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var envs []map[string]any
	decodeJSON(t, rec, &envs)

	if len(envs) != 6 {
		t.Fatalf("expected 6 instructions, got %d", len(envs))
	}
	if envs[0]["type"] != "title" || envs[0]["text"] != "Welcome to my portfolio !" {
		t.Errorf("first instruction = %v", envs[0])
	}
	last, _ := envs[5]["markup"].(string)
	if !strings.Contains(last, "https://github.com/31Joojo") {
		t.Errorf("last instruction missing GitHub URL: %v", envs[5])
	}
}

func TestServer_GetPageJSON_NotFound(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, server.Config{})

	rec := doGet(t, s, "/api/pages/nope", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestServer_Healthz(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, server.Config{})

	rec := doGet(t, s, "/healthz", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

// ─── Usage stats ───────────────────────────────────────────────────────

func TestServer_RecordsViewsWhenEnabled(t *testing.T) {
	t.Parallel()

	rec, err := stats.Open(t.TempDir(), &testutil.DummyLogger{})
	if err != nil {
		t.Fatalf("stats.Open: %v", err)
	}
	s := newTestServer(t, server.Config{Stats: rec})

	doGet(t, s, "/", nil)
	doGet(t, s, "/pages/music", nil)
	doGet(t, s, "/pages/nope", nil) // 404s are not views

	views, err := rec.PageViews(context.Background())
	if err != nil {
		t.Fatalf("PageViews: %v", err)
	}
	if views["home"] != 1 || views["music"] != 1 {
		t.Errorf("views = %v", views)
	}
	if views["nope"] != 0 {
		t.Errorf("404 recorded as a view: %v", views)
	}
}

// ─── WebSocket stream ──────────────────────────────────────────────────

func TestServer_PageStream(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, server.Config{})

	ts := httptest.NewServer(s)
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws/pages/home"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dialing websocket: %v", err)
	}
	defer conn.Close()

	var frames []map[string]any
	for {
		var frame map[string]any
		if err := conn.ReadJSON(&frame); err != nil {
			t.Fatalf("reading frame %d: %v", len(frames), err)
		}
		frames = append(frames, frame)
		if frame["type"] == "done" {
			break
		}
	}

	// 6 instructions plus the done frame.
	if len(frames) != 7 {
		t.Fatalf("expected 7 frames, got %d", len(frames))
	}
	if frames[0]["type"] != "title" {
		t.Errorf("first frame = %v", frames[0])
	}
	if viewer, _ := frames[6]["viewer"].(string); viewer == "" {
		t.Error("done frame missing viewer id")
	}
}

func TestServer_PageStream_UnknownPage(t *testing.T) {
	t.Parallel()
	s := newTestServer(t, server.Config{})

	ts := httptest.NewServer(s)
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws/pages/nope"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dialing websocket: %v", err)
	}
	defer conn.Close()

	var frame map[string]any
	if err := conn.ReadJSON(&frame); err != nil {
		t.Fatalf("reading error frame: %v", err)
	}
	if _, ok := frame["error"]; !ok {
		t.Errorf("expected an error frame, got %v", frame)
	}
}

// ─── Listener config ───────────────────────────────────────────────────

func TestServer_HTTPServerUsesConfiguredPort(t *testing.T) {
	t.Parallel()

	cfg, err := config.Parse("[server]\nport = 9000\n")
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	s := newTestServer(t, server.Config{App: cfg})

	if addr := s.HTTPServer().Addr; addr != ":9000" {
		t.Errorf("Addr = %q, want :9000", addr)
	}
}
