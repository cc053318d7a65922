package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"github.com/ashtonrjacobs/Recipe-Finder/internal/chunker"
	"github.com/ashtonrjacobs/Recipe-Finder/internal/domain"
	"github.com/ashtonrjacobs/Recipe-Finder/internal/service"
)

func newTestRouter(t *testing.T, svc Service, cfg RouterConfig) http.Handler {
	t.Helper()
	h, err := NewHandler(svc, chunker.NewIngredientChunker())
	if err != nil {
		t.Fatalf("NewHandler() error = %v", err)
	}
	return NewRouter(h, cfg)
}

func availableFinder(t *testing.T) *service.Finder {
	t.Helper()
	engine, err := service.Build([]domain.Recipe{
		{ID: 0, Name: "pasta", Ingredients: domain.TextIngredients("tomato, basil, olive oil")},
		{ID: 1, Name: "salad", Ingredients: domain.ListIngredients([]string{"lettuce", "tomato", "cucumber"})},
	}, service.Options{})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return service.NewFinder(engine)
}

func do(t *testing.T, h http.Handler, method, target, contentType, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestSearch_JSON(t *testing.T) {
	h := newTestRouter(t, availableFinder(t), RouterConfig{})
	rr := do(t, h, http.MethodPost, "/search", "application/json", `{"ingredients": "Tomato, Basil"}`)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rr.Code, rr.Body.String())
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	var got []domain.MatchView
	if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := []domain.MatchView{
		{RecipeName: "pasta", Ingredients: "tomato, basil, olive oil", Similarity: 0.71},
		{RecipeName: "salad", Ingredients: "lettuce, tomato, cucumber", Similarity: 0.41},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d results, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("result %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestSearch_NotFoundIsEmptyArray(t *testing.T) {
	tests := []struct {
		name string
		svc  Service
		body string
	}{
		{"unknown ingredient", availableFinder(t), `{"ingredients": "chocolate"}`},
		{"empty query", availableFinder(t), `{"ingredients": ""}`},
		{"no dataset", service.Unavailable(errors.New("missing")), `{"ingredients": "tomato"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := do(t, newTestRouter(t, tt.svc, RouterConfig{}), http.MethodPost, "/search", "application/json", tt.body)
			if rr.Code != http.StatusOK || strings.TrimSpace(rr.Body.String()) != "[]" {
				t.Errorf("status = %d, body = %q; want 200 []", rr.Code, rr.Body.String())
			}
		})
	}
}

func TestSearch_BadRequests(t *testing.T) {
	h := newTestRouter(t, availableFinder(t), RouterConfig{})
	tests := []struct {
		name, body, code string
	}{
		{"malformed json", `{"ingredients":`, "INVALID_JSON"},
		{"wrong type", `{"ingredients": 3}`, "INVALID_JSON"},
		{"too long", `{"ingredients": "` + strings.Repeat("a", 5000) + `"}`, "VALIDATION_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := do(t, h, http.MethodPost, "/search", "application/json", tt.body)
			if rr.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rr.Code)
			}
			var body errorResponse
			if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body.Error.Code != tt.code || body.RequestID == "" {
				t.Errorf("error body = %+v", body)
			}
		})
	}
}

func TestIndex_FormFlow(t *testing.T) {
	h := newTestRouter(t, availableFinder(t), RouterConfig{})

	rr := do(t, h, http.MethodGet, "/", "", "")
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), `name="ingredients"`) {
		t.Fatalf("GET / status = %d", rr.Code)
	}
	if strings.Contains(rr.Body.String(), "could not be loaded") {
		t.Error("GET / shows the unavailable notice with a loaded dataset")
	}

	form := url.Values{"ingredients": {"tomato, basil"}}.Encode()
	rr = do(t, h, http.MethodPost, "/", "application/x-www-form-urlencoded", form)
	body := rr.Body.String()
	for _, want := range []string{"Found 2 recipe(s)", "<h2>pasta</h2>", "<li>olive oil</li>", "Similarity: 0.71", `value="tomato, basil"`} {
		if !strings.Contains(body, want) {
			t.Errorf("POST / body missing %q", want)
		}
	}

	form = url.Values{"ingredients": {"chocolate"}}.Encode()
	rr = do(t, h, http.MethodPost, "/", "application/x-www-form-urlencoded", form)
	if !strings.Contains(rr.Body.String(), "No recipes found with the given ingredients.") {
		t.Error("POST / with unknown ingredient did not render the not-found message")
	}
}

func TestIndex_EscapesQuery(t *testing.T) {
	h := newTestRouter(t, availableFinder(t), RouterConfig{})
	form := url.Values{"ingredients": {`"><script>alert(1)</script>`}}.Encode()
	rr := do(t, h, http.MethodPost, "/", "application/x-www-form-urlencoded", form)
	if strings.Contains(rr.Body.String(), "<script>alert(1)</script>") {
		t.Error("query echoed unescaped")
	}
}

func TestIndex_Degraded(t *testing.T) {
	h := newTestRouter(t, service.Unavailable(errors.New("missing")), RouterConfig{})
	rr := do(t, h, http.MethodGet, "/", "", "")
	if !strings.Contains(rr.Body.String(), "could not be loaded") {
		t.Error("degraded page lacks the unavailable notice")
	}
}

func TestHealth(t *testing.T) {
	tests := []struct {
		name       string
		svc        Service
		wantStatus string
		wantLoaded bool
	}{
		{"ok", availableFinder(t), "ok", true},
		{"degraded", service.Unavailable(errors.New("unable to load dataset")), "degraded", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := do(t, newTestRouter(t, tt.svc, RouterConfig{}), http.MethodGet, "/api/v1/health", "", "")
			if rr.Code != http.StatusOK {
				t.Fatalf("status = %d", rr.Code)
			}
			var got HealthResponse
			if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
				t.Fatal(err)
			}
			if got.Status != tt.wantStatus || got.DatasetLoaded != tt.wantLoaded {
				t.Errorf("health = %+v", got)
			}
			if !tt.wantLoaded && got.Error == "" {
				t.Error("degraded health lacks the load error")
			}
		})
	}
}

func TestStats(t *testing.T) {
	rr := do(t, newTestRouter(t, availableFinder(t), RouterConfig{}), http.MethodGet, "/api/v1/stats", "", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	var got StatsResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got.Recipes != 2 || got.Vocabulary != 6 || got.TopK != 5 {
		t.Errorf("stats = %+v", got)
	}
	if len(got.CommonIngredients) == 0 || got.CommonIngredients[0].Term != "tomato" || got.CommonIngredients[0].Recipes != 2 {
		t.Errorf("common ingredients = %+v", got.CommonIngredients)
	}

	rr = do(t, newTestRouter(t, service.Unavailable(errors.New("x")), RouterConfig{}), http.MethodGet, "/api/v1/stats", "", "")
	if rr.Code != http.StatusServiceUnavailable {
		t.Errorf("degraded stats status = %d, want 503", rr.Code)
	}
}

func TestScriptAndMetrics(t *testing.T) {
	h := newTestRouter(t, availableFinder(t), RouterConfig{})
	do(t, h, http.MethodPost, "/search", "application/json", `{"ingredients": "tomato"}`)

	rr := do(t, h, http.MethodGet, "/static/script.js", "", "")
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), "/search") {
		t.Errorf("script status = %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/javascript") {
		t.Errorf("script Content-Type = %q", ct)
	}

	rr = do(t, h, http.MethodGet, "/metrics", "", "")
	body := rr.Body.String()
	if rr.Code != http.StatusOK || !strings.Contains(body, `api_requests_total{method="POST",route="/search",status_code="200"}`) {
		t.Errorf("metrics missing the /search request counter")
	}
	if !strings.Contains(body, "recipe_queries_total") {
		t.Error("metrics missing recipe_queries_total")
	}
}

func TestRequestID(t *testing.T) {
	h := newTestRouter(t, availableFinder(t), RouterConfig{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if got := rr.Header().Get("X-Request-ID"); got != "abc-123" {
		t.Errorf("X-Request-ID = %q, want abc-123", got)
	}

	rr = do(t, h, http.MethodGet, "/api/v1/health", "", "")
	if len(rr.Header().Get("X-Request-ID")) != 36 {
		t.Errorf("generated X-Request-ID = %q, want a UUID", rr.Header().Get("X-Request-ID"))
	}
}

func TestRateLimit(t *testing.T) {
	h := newTestRouter(t, availableFinder(t), RouterConfig{RateLimitPerMinute: 2})
	for i := 0; i < 2; i++ {
		if rr := do(t, h, http.MethodGet, "/", "", ""); rr.Code != http.StatusOK {
			t.Fatalf("request %d status = %d", i, rr.Code)
		}
	}
	rr := do(t, h, http.MethodGet, "/", "", "")
	if rr.Code != http.StatusTooManyRequests {
		t.Errorf("third request status = %d, want 429", rr.Code)
	}
	if rr := do(t, h, http.MethodGet, "/api/v1/health", "", ""); rr.Code != http.StatusOK {
		t.Errorf("health was rate limited: %d", rr.Code)
	}
}
