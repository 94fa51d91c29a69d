package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"planfairy/internal/domain"
	"planfairy/internal/generate"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeCompleter struct {
	html   string
	err    error
	called bool
	system string
	user   string
}

func (f *fakeCompleter) Complete(_ context.Context, system, user string) (string, error) {
	f.called = true
	f.system = system
	f.user = user
	return f.html, f.err
}

func newTestRouter(completer Completer) *gin.Engine {
	cfg := DefaultConfig()
	cfg.APIKey = "test-key"
	return NewRouter(NewHandler(cfg, completer))
}

func planBody(t *testing.T, req generate.Request) *strings.Reader {
	t.Helper()
	data, err := json.Marshal(req)
	require.NoError(t, err)
	return strings.NewReader(string(data))
}

func dailyRequest() generate.Request {
	return generate.Request{
		PlanType: domain.PlanDaily,
		Form:     &domain.PlanForm{Type: domain.PlanDaily, Topic: "Causes of the American Revolution"},
	}
}

func TestPreflightAllowsAnyOrigin(t *testing.T) {
	router := newTestRouter(&fakeCompleter{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/v1/plan", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "POST, OPTIONS", w.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "Content-Type, Authorization", w.Header().Get("Access-Control-Allow-Headers"))
}

func TestRejectsNonPostMethods(t *testing.T) {
	router := newTestRouter(&fakeCompleter{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/plan", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Equal(t, "Method Not Allowed", w.Body.String())
}

func TestMissingAPIKeyFailsBeforeUpstream(t *testing.T) {
	completer := &fakeCompleter{html: "<h1>unused</h1>"}
	router := NewRouter(NewHandler(DefaultConfig(), completer))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/plan", planBody(t, dailyRequest()))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.False(t, completer.called)
}

func TestMissingPlanTypeOrFormIsBadRequest(t *testing.T) {
	completer := &fakeCompleter{}
	router := newTestRouter(completer)

	for name, body := range map[string]string{
		"no plan type": `{"form":{"type":"daily"}}`,
		"no form":      `{"planType":"daily"}`,
		"not json":     `planType=daily`,
	} {
		t.Run(name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/v1/plan", strings.NewReader(body))
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), "Missing planType or form")
			assert.False(t, completer.called)
		})
	}
}

func TestGeneratePlanReturnsFragment(t *testing.T) {
	completer := &fakeCompleter{html: "<h1>Daily Plan</h1><p>done</p>"}
	router := newTestRouter(completer)

	body := dailyRequest()
	body.FilesText = []generate.FileText{{Name: "notes.txt", Text: "primary sources"}}
	body.CustomInstructions = "emphasize discussion"

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/v1/plan", planBody(t, body)))

	require.Equal(t, http.StatusOK, w.Code)

	var resp generate.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "<h1>Daily Plan</h1><p>done</p>", resp.HTML)

	assert.Contains(t, completer.system, "Day, Date, Topic, Key Activities, Assessment/Exit, Materials, Notes, Attachments")
	assert.Contains(t, completer.system, "Extra user directives:\nemphasize discussion")
	assert.Contains(t, completer.user, "Plan type: DAILY")
	assert.Contains(t, completer.user, "Causes of the American Revolution")
	assert.Contains(t, completer.user, "[notes.txt]\nprimary sources")
}

func TestGeneratePlanWrapsPlainTextReply(t *testing.T) {
	completer := &fakeCompleter{html: "Monday: warm-up\nTuesday: review"}
	router := newTestRouter(completer)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/v1/plan", planBody(t, dailyRequest())))

	require.Equal(t, http.StatusOK, w.Code)

	var resp generate.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, strings.HasPrefix(resp.HTML, "<h1>Generated Plan</h1>"))
	assert.Contains(t, resp.HTML, "Monday: warm-up<br/>Tuesday: review")
}

func TestGeneratePlanPassesUpstreamErrorThrough(t *testing.T) {
	completer := &fakeCompleter{err: &UpstreamError{Status: http.StatusTooManyRequests, Body: "rate limited"}}
	router := newTestRouter(completer)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/v1/plan", planBody(t, dailyRequest())))

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "rate limited", w.Body.String())
}

func TestUserPromptWithoutFiles(t *testing.T) {
	prompt, err := UserPrompt(dailyRequest())
	require.NoError(t, err)
	assert.Contains(t, prompt, "(no file text)")
	assert.Contains(t, prompt, "Return ONLY the HTML snippet.")
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/planserver.yaml"
	require.NoError(t, os.WriteFile(path, []byte("listen: \":9999\"\nmodel: gpt-4o\napi_key: from-file\n"), 0o644))

	t.Setenv("PLANSERVER_MODEL", "gpt-4o-mini")
	t.Setenv("PLANSERVER_UPSTREAM_URL", "http://upstream.example/")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, ":9999", cfg.Listen)
	assert.Equal(t, "from-file", cfg.APIKey)
	assert.Equal(t, "gpt-4o-mini", cfg.Model)
	assert.Equal(t, "http://upstream.example", cfg.UpstreamURL)
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir() + "/absent.yaml")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Listen, cfg.Listen)
	assert.Equal(t, "gpt-4o-mini", cfg.Model)
}
