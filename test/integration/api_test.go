package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/SluberskiHomeLab/panelcss/internal/api"
	"github.com/SluberskiHomeLab/panelcss/internal/buildcfg"
	"github.com/SluberskiHomeLab/panelcss/internal/store"
)

func newRouter(t *testing.T) http.Handler {
	t.Helper()

	st := store.NewMemoryStore()
	handler := api.NewHandler(st)
	logger := zaptest.NewLogger(t)
	return api.NewRouter(handler, logger)
}

func performRequest(t *testing.T, handler http.Handler, method, target string, body []byte, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, target, reader)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestIntegrationFlow(t *testing.T) {
	handler := newRouter(t)

	rec := performRequest(t, handler, http.MethodGet, "/api/health", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from health, got %d", rec.Code)
	}

	update := buildcfg.Config{
		Content: []string{"./app/**/*.{html,ts}"},
		Theme: buildcfg.Theme{Extend: buildcfg.Extend{Colors: map[string]buildcfg.Palette{
			"panel": {
				"950": "#0b1220",
				"900": "#0f172a",
			},
		}}},
		Plugins: []string{"forms"},
	}
	payload, _ := json.Marshal(update)
	rec = performRequest(t, handler, http.MethodPut, "/api/config", payload, map[string]string{"Content-Type": "application/json"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from config update, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = performRequest(t, handler, http.MethodGet, "/api/tokens", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from tokens, got %d", rec.Code)
	}
	var tokens struct {
		Tokens []buildcfg.Token `json:"tokens"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&tokens); err != nil {
		t.Fatalf("decode tokens: %v", err)
	}
	values := map[string]string{}
	for _, token := range tokens.Tokens {
		values[token.Name] = token.Value
	}
	if values["panel-950"] != "#0b1220" || values["panel-900"] != "#0f172a" {
		t.Fatalf("expected updated panel tokens, got %v", values)
	}

	rec = performRequest(t, handler, http.MethodGet, "/api/coverage?path=app/pages/index.html", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from coverage, got %d", rec.Code)
	}
	var coverage struct {
		Covered bool `json:"covered"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&coverage); err != nil {
		t.Fatalf("decode coverage: %v", err)
	}
	if !coverage.Covered {
		t.Fatalf("expected app/pages/index.html to be covered after update")
	}

	invalid := buildcfg.Config{
		Content: []string{"./app/**/*.html"},
		Theme: buildcfg.Theme{Extend: buildcfg.Extend{Colors: map[string]buildcfg.Palette{
			"panel": {"950": "#nothex"},
		}}},
		Plugins: []string{},
	}
	payload, _ = json.Marshal(invalid)
	rec = performRequest(t, handler, http.MethodPost, "/api/config/validate", payload, map[string]string{"Content-Type": "application/json"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from validate, got %d", rec.Code)
	}
	var verdict struct {
		Valid bool `json:"valid"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&verdict); err != nil {
		t.Fatalf("decode verdict: %v", err)
	}
	if verdict.Valid {
		t.Fatalf("expected invalid verdict for malformed color")
	}
}
