package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albapepper/courtside/internal/api/handler"
	"github.com/albapepper/courtside/internal/config"
	"github.com/albapepper/courtside/internal/store"
)

// fakePlans records which plan lookups reached it.
type fakePlans struct {
	calls int
}

func (f *fakePlans) List(ctx context.Context, fl store.PlanFilter) ([]store.GamePlan, error) {
	f.calls++
	return []store.GamePlan{{PlanID: 1, TeamID: 2, PlanName: "Zone", Status: "draft"}}, nil
}

func (f *fakePlans) Get(ctx context.Context, id int64) (*store.GamePlan, error) {
	f.calls++
	return &store.GamePlan{PlanID: id}, nil
}

func (f *fakePlans) Create(ctx context.Context, in store.GamePlanInput) (int64, error) {
	f.calls++
	return 1, nil
}

func (f *fakePlans) Update(ctx context.Context, id int64, in store.GamePlanPatch) error {
	f.calls++
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		CORSAllowOrigins: []string{"http://localhost:8501"},
		RecentGamesLimit: 25,
	}
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestPersonaAliasSharesCanonicalHandler(t *testing.T) {
	plans := &fakePlans{}
	r := NewRouter(handler.New(handler.Stores{Plans: plans}, testConfig()), testConfig())

	for _, path := range []string{"/api/strategy/game-plans", "/api/coach/game-plans"} {
		w := get(t, r, path)
		require.Equal(t, http.StatusOK, w.Code, path)

		var body map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.EqualValues(t, 1, body["total_count"], path)
	}
	assert.Equal(t, 2, plans.calls)
}

func TestPersonaAliasOnlyExposesItsSubset(t *testing.T) {
	r := NewRouter(handler.New(handler.Stores{Plans: &fakePlans{}}, testConfig()), testConfig())

	// Superfans get no game plans.
	w := get(t, r, "/api/superfan/game-plans")
	assert.Equal(t, http.StatusNotFound, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Resource not found", body["error"])
}

func TestRouteGroupsCoverEveryPrefix(t *testing.T) {
	var prefixes []string
	for _, g := range routeGroups {
		prefixes = append(prefixes, g.prefix)
		assert.NotEmpty(t, g.sets, g.prefix)
	}
	assert.ElementsMatch(t, []string{
		"/basketball", "/analytics", "/strategy", "/system", "/auth",
		"/superfan", "/coach", "/gm", "/data-engineer",
	}, prefixes)
}

func TestMetaEndpoints(t *testing.T) {
	r := NewRouter(handler.New(handler.Stores{}, testConfig()), testConfig())

	w := get(t, r, "/health")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Process-Time"))

	w = get(t, r, "/metrics")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "courtside_http_requests_total")
}

func TestMethodNotAllowedEnvelope(t *testing.T) {
	r := NewRouter(handler.New(handler.Stores{}, testConfig()), testConfig())

	req := httptest.NewRequest(http.MethodDelete, "/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.JSONEq(t, `{"error":"Method not allowed"}`, w.Body.String())
}

func TestRateLimitMiddleware(t *testing.T) {
	mw := RateLimitMiddleware(2, time.Minute)
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	h := mw(ok)

	send := func(addr string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = addr
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		return w.Code
	}

	// Burst is half the window allowance.
	assert.Equal(t, http.StatusOK, send("10.0.0.1:1234"))
	assert.Equal(t, http.StatusTooManyRequests, send("10.0.0.1:1234"))
	assert.Equal(t, http.StatusOK, send("10.0.0.2:1234"))
}

func TestIPLimiterEvictsIdleVisitors(t *testing.T) {
	l := newIPLimiter(10, time.Second)
	start := time.Now()
	l.getLimiter("a", start)
	l.getLimiter("b", start)
	require.Len(t, l.visitors, 2)

	l.getLimiter("c", start.Add(10*time.Second))
	assert.Len(t, l.visitors, 1)
	assert.Contains(t, l.visitors, "c")
}

func TestRecovererReturnsGenericError(t *testing.T) {
	h := Recoverer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("nil map write in lineup builder")
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Internal server error"}`, w.Body.String())
}
