package generate

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"planfairy/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHTTPTestServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()

	var srv *httptest.Server
	func() {
		defer func() {
			if r := recover(); r != nil {
				t.Skipf("skipping HTTP test: local listener unavailable (%v)", r)
			}
		}()
		srv = httptest.NewServer(handler)
	}()
	return srv
}

func testConfig(url string) Config {
	cfg := DefaultConfig()
	cfg.Enabled = true
	cfg.Endpoint = url
	cfg.MaxRetries = 0
	return cfg
}

func TestClientGeneratePlan(t *testing.T) {
	srv := newHTTPTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/plan", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)

		var req Request
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, domain.PlanDaily, req.PlanType)
		assert.Equal(t, "Causes of the American Revolution", req.Form.Topic)

		json.NewEncoder(w).Encode(Response{HTML: "<h1>Daily Plan</h1><p>ok</p>"})
	})
	defer srv.Close()

	client := NewClient(testConfig(srv.URL), NoopObserver{})
	resp, err := client.GeneratePlan(context.Background(), Request{
		PlanType: domain.PlanDaily,
		Form:     &domain.PlanForm{Type: domain.PlanDaily, Topic: "Causes of the American Revolution"},
	})
	require.NoError(t, err)
	assert.Equal(t, "<h1>Daily Plan</h1><p>ok</p>", resp.HTML)
}

func TestClientWrapsMarkupFreeResponse(t *testing.T) {
	srv := newHTTPTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(Response{HTML: "just some prose\nwith two lines"})
	})
	defer srv.Close()

	client := NewClient(testConfig(srv.URL), NoopObserver{})
	resp, err := client.GeneratePlan(context.Background(), Request{PlanType: domain.PlanDaily, Form: &domain.PlanForm{}})
	require.NoError(t, err)
	assert.Equal(t, "<h1>Generated Plan</h1><p>just some prose<br/>with two lines</p>", resp.HTML)
}

func TestClientSurfacesUpstreamStatusAndBody(t *testing.T) {
	srv := newHTTPTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("model overloaded"))
	})
	defer srv.Close()

	client := NewClient(testConfig(srv.URL), NoopObserver{})
	_, err := client.GeneratePlan(context.Background(), Request{PlanType: domain.PlanDaily, Form: &domain.PlanForm{}})
	require.Error(t, err)

	var up *UpstreamError
	require.ErrorAs(t, err, &up)
	assert.Equal(t, http.StatusBadGateway, up.Status)
	assert.Equal(t, "model overloaded", up.Body)
}

func TestClientDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	srv := newHTTPTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte("Missing planType or form"))
	})
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.MaxRetries = 3
	client := NewClient(cfg, NoopObserver{})

	_, err := client.GeneratePlan(context.Background(), Request{PlanType: domain.PlanDaily, Form: &domain.PlanForm{}})
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestClientRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := newHTTPTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(Response{HTML: "<h1>Plan</h1>"})
	})
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.MaxRetries = 1
	client := NewClient(cfg, NoopObserver{})

	resp, err := client.GeneratePlan(context.Background(), Request{PlanType: domain.PlanDaily, Form: &domain.PlanForm{}})
	require.NoError(t, err)
	assert.Equal(t, "<h1>Plan</h1>", resp.HTML)
	assert.Equal(t, int32(2), calls.Load())
}

func TestClientTimeout(t *testing.T) {
	srv := newHTTPTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		json.NewEncoder(w).Encode(Response{HTML: "<h1>late</h1>"})
	})
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.TimeoutMs = 50
	client := NewClient(cfg, NoopObserver{})

	_, err := client.GeneratePlan(context.Background(), Request{PlanType: domain.PlanDaily, Form: &domain.PlanForm{}})
	assert.True(t, errors.Is(err, ErrTimeout))
}

func TestEnsureMarkup(t *testing.T) {
	assert.Equal(t, "<h1>x</h1>", EnsureMarkup("<h1>x</h1>"))
	assert.Equal(t, "<h1>Generated Plan</h1><p>plain</p>", EnsureMarkup("plain"))
}
