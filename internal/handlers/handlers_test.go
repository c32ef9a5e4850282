package handlers

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/jjenkins/rimun/internal/service"
)

// fakeAPI serves canned responses per path and remembers the last query seen
type fakeAPI struct {
	mu        sync.Mutex
	responses map[string]cannedResponse
	queries   map[string]url.Values
}

type cannedResponse struct {
	status int
	body   string
}

func newFakeAPI(t *testing.T, responses map[string]cannedResponse) (*fakeAPI, *service.RimunClient) {
	t.Helper()
	f := &fakeAPI{responses: responses, queries: map[string]url.Values{}}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.queries[r.URL.Path] = r.URL.Query()
		f.mu.Unlock()

		res, ok := f.responses[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.WriteHeader(res.status)
		io.WriteString(w, res.body)
	}))
	t.Cleanup(srv.Close)
	return f, service.NewRimunClient(srv.URL)
}

func (f *fakeAPI) query(path string) url.Values {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.queries[path]
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func get(t *testing.T, api RimunAPI, target string) (int, string, http.Header) {
	t.Helper()
	app := NewApp(api, discardLogger())
	res, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil), -1)
	if err != nil {
		t.Fatalf("GET %s: %v", target, err)
	}
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("reading body: %v", err)
	}
	return res.StatusCode, string(body), res.Header
}

const delegatesJSON = `[
	{"person_id": 7, "name": "Ada", "surname": "Lovelace", "full_name": "Ada Lovelace",
	 "country_code": "GB", "country_name": "United Kingdom", "session_id": 3, "session_edition": 2025,
	 "committee_name": "Security Council", "status_application": "accepted", "status_housing": "none",
	 "housing_is_available": false, "created_at": "2025-01-01T00:00:00Z", "updated_at": "2025-01-02T00:00:00Z"}
]`

func TestHomeHandler(t *testing.T) {
	_, api := newFakeAPI(t, map[string]cannedResponse{
		"/health": {http.StatusOK, `{"status":"ok"}`},
		"/forums": {http.StatusOK, `[{"id":1,"acronym":"GA","name":"General Assembly","created_at":"x","updated_at":"y"}]`},
	})

	status, body, header := get(t, api, "/")
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", status, body)
	}
	if !strings.Contains(body, "General Assembly") {
		t.Error("forum missing from home page")
	}
	if _, err := uuid.Parse(header.Get("X-Request-ID")); err != nil {
		t.Errorf("expected uuid request id, got %q", header.Get("X-Request-ID"))
	}
}

func TestHomeHandler_UnhealthyAPI(t *testing.T) {
	_, api := newFakeAPI(t, map[string]cannedResponse{
		"/health": {http.StatusServiceUnavailable, "db down"},
		"/forums": {http.StatusOK, `[]`},
	})

	status, body, _ := get(t, api, "/")
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if !strings.Contains(body, "unreachable") || !strings.Contains(body, "db down") {
		t.Errorf("health failure not shown: %s", body)
	}
}

func TestDelegatesHandler_PassesFilters(t *testing.T) {
	fake, api := newFakeAPI(t, map[string]cannedResponse{
		"/delegates": {http.StatusOK, delegatesJSON},
	})

	status, body, _ := get(t, api, "/delegates?session_id=3&country_code=GB&is_ambassador=true&status_housing=")
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", status, body)
	}
	if !strings.Contains(body, "Ada Lovelace") || !strings.Contains(body, `href="/delegates/7"`) {
		t.Errorf("delegate missing from page: %s", body)
	}

	q := fake.query("/delegates")
	want := url.Values{
		"limit":         {"50"},
		"offset":        {"0"},
		"session_id":    {"3"},
		"country_code":  {"GB"},
		"is_ambassador": {"true"},
	}
	if len(q) != len(want) {
		t.Errorf("upstream query = %v, want %v", q, want)
	}
	for k, v := range want {
		if q.Get(k) != v[0] {
			t.Errorf("upstream %s = %q, want %q", k, q.Get(k), v[0])
		}
	}
}

func TestDelegatesHandler_BadFilter(t *testing.T) {
	_, api := newFakeAPI(t, nil)

	for _, target := range []string{
		"/delegates?session_id=three",
		"/delegates?limit=-1",
		"/delegates?is_ambassador=maybe",
		"/delegates?updated_since=yesterday",
	} {
		status, _, _ := get(t, api, target)
		if status != http.StatusBadRequest {
			t.Errorf("GET %s: expected 400, got %d", target, status)
		}
	}
}

func TestDelegateDetailHandler(t *testing.T) {
	_, api := newFakeAPI(t, map[string]cannedResponse{
		"/delegates/7":   {http.StatusOK, strings.Trim(strings.TrimSpace(delegatesJSON), "[]")},
		"/delegates/8":   {http.StatusOK, `{}`},
		"/delegates/999": {http.StatusNotFound, "not found"},
	})

	status, body, _ := get(t, api, "/delegates/7")
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", status, body)
	}
	if !strings.Contains(body, "Security Council") {
		t.Error("committee missing from detail page")
	}

	for _, target := range []string{"/delegates/8", "/delegates/999"} {
		if status, _, _ := get(t, api, target); status != http.StatusNotFound {
			t.Errorf("GET %s: expected 404, got %d", target, status)
		}
	}

	if status, _, _ := get(t, api, "/delegates/abc"); status != http.StatusBadRequest {
		t.Errorf("expected 400 for non-numeric id, got %d", status)
	}
}

func TestListingHandlers(t *testing.T) {
	fake, api := newFakeAPI(t, map[string]cannedResponse{
		"/committees": {http.StatusOK, `[{"id":1,"forum_id":1,"name":"Human Rights Council","created_at":"x","updated_at":"y"}]`},
		"/sessions":   {http.StatusOK, `[{"id":3,"edition":2025,"is_active":true,"created_at":"x","updated_at":"y"}]`},
		"/posts":      {http.StatusOK, `[{"id":1,"title":"Registration open","created_at":"x","updated_at":"y"}]`},
	})

	tests := []struct {
		target string
		want   string
	}{
		{"/committees?limit=1", "Human Rights Council"},
		{"/sessions?active=true", "2025"},
		{"/posts", "Registration open"},
	}
	for _, tt := range tests {
		status, body, _ := get(t, api, tt.target)
		if status != http.StatusOK {
			t.Errorf("GET %s: expected 200, got %d", tt.target, status)
			continue
		}
		if !strings.Contains(body, tt.want) {
			t.Errorf("GET %s: body missing %q", tt.target, tt.want)
		}
	}

	if got := fake.query("/committees").Get("limit"); got != "1" {
		t.Errorf("committees limit = %q, want 1", got)
	}
	if got := fake.query("/sessions").Get("active"); got != "true" {
		t.Errorf("sessions active = %q, want true", got)
	}
}

func TestUpstreamFailureIsBadGateway(t *testing.T) {
	_, api := newFakeAPI(t, map[string]cannedResponse{
		"/committees": {http.StatusInternalServerError, "boom"},
		"/posts":      {http.StatusOK, "not json"},
	})

	for _, target := range []string{"/committees", "/posts"} {
		status, body, _ := get(t, api, target)
		if status != http.StatusBadGateway {
			t.Errorf("GET %s: expected 502, got %d", target, status)
		}
		if !strings.Contains(body, "Error 502") {
			t.Errorf("GET %s: error page not rendered", target)
		}
	}
}
