package handlers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"storefront/internal/catalog"
	"storefront/internal/config"
	"storefront/internal/security"
	"storefront/internal/services"
	"storefront/internal/session"
	"storefront/internal/ui"
)

const testSecret = "0123456789abcdef0123456789abcdef"

// fakeCatalogAPI stands in for the remote catalog API and counts the
// calls it receives.
type fakeCatalogAPI struct {
	mu          sync.Mutex
	deals       string
	dealsStatus int
	products    string
	login       string
	loginStatus int
	analytics   string
	down        bool
	calls       atomic.Int32
	clicks      atomic.Int32
	lastQuery   string
}

func newFakeCatalogAPI() *fakeCatalogAPI {
	return &fakeCatalogAPI{
		deals:       `[{"id":"1","name":"Watch","category":"Watches","price":40,"originalPrice":100,"image":"w.jpg","affiliateLink":"https://shop.example/w","isFlash":true}]`,
		dealsStatus: http.StatusOK,
		products:    `[{"id":"2","name":"Bag","category":"Fashion","price":25,"image":"b.jpg","affiliateLink":"https://shop.example/b"}]`,
		login:       `{"success":true,"message":"ok"}`,
		loginStatus: http.StatusOK,
		analytics:   `{"totalClicks":42,"revenue":1234.5}`,
	}
}

func (f *fakeCatalogAPI) update(fn func(*fakeCatalogAPI)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fn(f)
}

func (f *fakeCatalogAPI) query() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastQuery
}

func (f *fakeCatalogAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.calls.Add(1)
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.down {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	switch r.URL.Path {
	case "/api/flash_deals":
		w.WriteHeader(f.dealsStatus)
		_, _ = io.WriteString(w, f.deals)
	case "/api/products":
		f.lastQuery = r.URL.Query().Get("category")
		_, _ = io.WriteString(w, f.products)
	case "/api/track_click":
		f.clicks.Add(1)
		_, _ = io.WriteString(w, `{"status":"ok"}`)
	case "/api/admin_login":
		w.WriteHeader(f.loginStatus)
		_, _ = io.WriteString(w, f.login)
	case "/api/analytics":
		_, _ = io.WriteString(w, f.analytics)
	default:
		http.NotFound(w, r)
	}
}

type testEnv struct {
	api        *fakeCatalogAPI
	storefront *services.Storefront
	sessions   *session.Store
	sse        *SSEHandlers
	apiH       *APIHandlers
	cookies    []*http.Cookie

	// stopStreams ends long-lived streams the way server shutdown does.
	stopStreams context.CancelFunc
}

func testStorefrontConfig() config.StorefrontConfig {
	return config.StorefrontConfig{
		AdminCode:         "112233",
		ParticleCount:     20,
		ScrollThreshold:   50,
		CountdownInterval: 10 * time.Millisecond,
		ToastDuration:     2800 * time.Millisecond,
	}
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	api := newFakeCatalogAPI()
	upstream := httptest.NewServer(api)
	t.Cleanup(upstream.Close)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	client := catalog.NewClient(upstream.URL+"/api", upstream.Client(), logger)
	storefront := services.NewStorefront(client, logger)
	sessions := session.NewStore(testSecret, false)
	limiter := security.NewLoginLimiter(3, time.Minute)

	streams, stopStreams := context.WithCancel(context.Background())
	t.Cleanup(stopStreams)

	return &testEnv{
		api:         api,
		storefront:  storefront,
		sessions:    sessions,
		sse:         NewSSEHandlers(streams, storefront, sessions, limiter, testStorefrontConfig(), logger),
		apiH:        NewAPIHandlers(storefront, sessions, logger),
		stopStreams: stopStreams,
	}
}

// do serves one request and carries the session cookie over to the next.
func (e *testEnv) do(handler http.HandlerFunc, method, target string, signals any) *httptest.ResponseRecorder {
	var body io.Reader
	if signals != nil {
		raw, _ := json.Marshal(signals)
		body = strings.NewReader(string(raw))
	}
	r := httptest.NewRequest(method, target, body)
	if signals != nil {
		r.Header.Set("Content-Type", "application/json")
	}
	for _, c := range e.cookies {
		r.AddCookie(c)
	}

	w := httptest.NewRecorder()
	handler(w, r)

	if cookies := w.Result().Cookies(); len(cookies) > 0 {
		e.cookies = cookies
	}
	return w
}

func (e *testEnv) state() ui.State {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range e.cookies {
		r.AddCookie(c)
	}
	return e.sessions.Load(r)
}

func (e *testEnv) login(t *testing.T) {
	t.Helper()
	e.do(e.sse.HandleAdminOpen, http.MethodPost, "/sse/admin/open", nil)
	e.do(e.sse.HandleAdminLogin, http.MethodPost, "/sse/admin/login", map[string]string{"adminEmail": "admin@example.com"})
	if !e.state().IsAdmin() {
		t.Fatal("expected admin session after login")
	}
}

func assertContains(t *testing.T, body string, want ...string) {
	t.Helper()
	for _, s := range want {
		if !strings.Contains(body, s) {
			t.Errorf("expected response to contain %q\nbody:\n%s", s, body)
		}
	}
}

func assertNotContains(t *testing.T, body string, unwanted ...string) {
	t.Helper()
	for _, s := range unwanted {
		if strings.Contains(body, s) {
			t.Errorf("expected response not to contain %q\nbody:\n%s", s, body)
		}
	}
}
