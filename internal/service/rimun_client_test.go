package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"reflect"
	"strings"
	"sync"
	"testing"

	"github.com/jjenkins/rimun/internal/model"
)

// recorder captures the requests seen by a test server
type recorder struct {
	mu       sync.Mutex
	requests []*http.Request
}

func (r *recorder) last(t *testing.T) *http.Request {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.requests) == 0 {
		t.Fatal("no request reached the server")
	}
	return r.requests[len(r.requests)-1]
}

func newTestServer(t *testing.T, status int, body string) (*RimunClient, *recorder) {
	t.Helper()
	rec := &recorder{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.mu.Lock()
		rec.requests = append(rec.requests, r)
		rec.mu.Unlock()
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return NewRimunClient(srv.URL), rec
}

func queryKeys(t *testing.T, r *http.Request) url.Values {
	t.Helper()
	values, err := url.ParseQuery(r.URL.RawQuery)
	if err != nil {
		t.Fatalf("invalid query %q: %v", r.URL.RawQuery, err)
	}
	return values
}

func TestDelegates_Defaults(t *testing.T) {
	client, rec := newTestServer(t, http.StatusOK, "[]")

	delegates, err := client.Delegates(context.Background(), model.ListDelegatesParams{})
	if err != nil {
		t.Fatalf("Delegates returned error: %v", err)
	}
	if len(delegates) != 0 {
		t.Errorf("expected no delegates, got %d", len(delegates))
	}

	req := rec.last(t)
	if req.Method != http.MethodGet {
		t.Errorf("expected GET, got %s", req.Method)
	}
	if req.URL.Path != "/delegates" {
		t.Errorf("expected path /delegates, got %s", req.URL.Path)
	}
	if req.URL.RawQuery != "limit=50&offset=0" {
		t.Errorf("expected query limit=50&offset=0, got %q", req.URL.RawQuery)
	}
}

func TestDelegates_Filters(t *testing.T) {
	client, rec := newTestServer(t, http.StatusOK, "[]")

	_, err := client.Delegates(context.Background(), model.ListDelegatesParams{
		SessionID: Ptr(int64(3)),
		Limit:     Ptr(10),
	})
	if err != nil {
		t.Fatalf("Delegates returned error: %v", err)
	}

	q := queryKeys(t, rec.last(t))
	want := url.Values{
		"session_id": {"3"},
		"limit":      {"10"},
		"offset":     {"0"},
	}
	if !reflect.DeepEqual(q, want) {
		t.Errorf("query = %v, want %v", q, want)
	}
}

func TestDelegates_AllFilters(t *testing.T) {
	client, rec := newTestServer(t, http.StatusOK, "[]")

	_, err := client.Delegates(context.Background(), model.ListDelegatesParams{
		SessionID:         Ptr(int64(1)),
		DelegationID:      Ptr(int64(2)),
		CommitteeID:       Ptr(int64(3)),
		CountryCode:       Ptr("IT"),
		SchoolID:          Ptr(int64(4)),
		StatusApplication: Ptr("accepted"),
		StatusHousing:     Ptr(""),
		IsAmbassador:      Ptr(false),
		Offset:            Ptr(100),
	})
	if err != nil {
		t.Fatalf("Delegates returned error: %v", err)
	}

	q := queryKeys(t, rec.last(t))
	if _, ok := q["status_housing"]; ok {
		t.Error("empty status_housing should not be sent")
	}
	if _, ok := q["updated_since"]; ok {
		t.Error("unset updated_since should not be sent")
	}
	for key, want := range map[string]string{
		"session_id":         "1",
		"delegation_id":      "2",
		"committee_id":       "3",
		"country_code":       "IT",
		"school_id":          "4",
		"status_application": "accepted",
		"is_ambassador":      "false",
		"limit":              "50",
		"offset":             "100",
	} {
		if got := q.Get(key); got != want {
			t.Errorf("%s = %q, want %q", key, got, want)
		}
	}
}

func TestDelegateByID_HTTPError(t *testing.T) {
	client, _ := newTestServer(t, http.StatusNotFound, "not found")

	d, err := client.DelegateByID(context.Background(), 999)
	if err == nil {
		t.Fatal("expected error for 404 response")
	}
	if d != nil {
		t.Errorf("expected nil delegate, got %+v", d)
	}

	msg := err.Error()
	for _, want := range []string{"/delegates/999", "404", "not found"} {
		if !strings.Contains(msg, want) {
			t.Errorf("error %q does not contain %q", msg, want)
		}
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T", err)
	}
	if apiErr.StatusCode != http.StatusNotFound || apiErr.Path != "/delegates/999" || apiErr.Body != "not found" {
		t.Errorf("unexpected APIError fields: %+v", apiErr)
	}
	if !IsNotFound(err) {
		t.Error("IsNotFound should be true for a 404")
	}
}

func TestDelegateByID_EmptyRecord(t *testing.T) {
	for _, body := range []string{"{}", " { } ", "null"} {
		client, _ := newTestServer(t, http.StatusOK, body)

		d, err := client.DelegateByID(context.Background(), 12)
		if !errors.Is(err, ErrDelegateNotFound) {
			t.Errorf("body %q: expected ErrDelegateNotFound, got %v", body, err)
		}
		if d != nil {
			t.Errorf("body %q: expected nil delegate", body)
		}
	}
}

func TestDelegateByID_Found(t *testing.T) {
	body := `{
		"person_id": 12, "name": "Ada", "surname": "Lovelace", "full_name": "Ada Lovelace",
		"country_code": "GB", "country_name": "United Kingdom",
		"session_id": 3, "session_edition": 2025,
		"committee_id": null, "school_id": 7, "school_name": "Liceo Tasso",
		"status_application": "accepted", "status_housing": "not-required",
		"is_ambassador": true, "housing_is_available": false, "housing_n_guests": null,
		"updated_at": "2025-02-01T10:00:00Z", "created_at": "2025-01-01T10:00:00Z"
	}`
	client, rec := newTestServer(t, http.StatusOK, body)

	d, err := client.DelegateByID(context.Background(), 12)
	if err != nil {
		t.Fatalf("DelegateByID returned error: %v", err)
	}
	if rec.last(t).URL.Path != "/delegates/12" {
		t.Errorf("unexpected path %s", rec.last(t).URL.Path)
	}
	if d.PersonID != 12 || d.FullName != "Ada Lovelace" {
		t.Errorf("unexpected delegate %+v", d)
	}
	if d.CommitteeID != nil {
		t.Errorf("expected nil committee id, got %v", *d.CommitteeID)
	}
	if d.SchoolID == nil || *d.SchoolID != 7 {
		t.Errorf("expected school id 7, got %v", d.SchoolID)
	}
	if d.IsAmbassador == nil || !*d.IsAmbassador {
		t.Error("expected ambassador flag set")
	}
}

func TestForums_Unchanged(t *testing.T) {
	body := `[
		{"id": 1, "acronym": "GA", "name": "General Assembly", "description": null, "image_path": "/img/ga.png",
		 "created_at": "2024-01-01T00:00:00Z", "updated_at": "2024-06-01T00:00:00Z"},
		{"id": 2, "acronym": "SC", "name": "Security Council", "description": "Fifteen members", "image_path": null,
		 "created_at": "2024-01-02T00:00:00Z", "updated_at": "2024-06-02T00:00:00Z"}
	]`
	client, rec := newTestServer(t, http.StatusOK, body)

	forums, err := client.Forums(context.Background())
	if err != nil {
		t.Fatalf("Forums returned error: %v", err)
	}
	if rec.last(t).URL.Path != "/forums" || rec.last(t).URL.RawQuery != "" {
		t.Errorf("unexpected request %s", rec.last(t).URL)
	}

	// re-encoding the typed result must give back the same document
	got, err := json.Marshal(forums)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var gotDoc, wantDoc any
	json.Unmarshal(got, &gotDoc)
	json.Unmarshal([]byte(body), &wantDoc)
	if !reflect.DeepEqual(gotDoc, wantDoc) {
		t.Errorf("forums changed in transit:\n got  %s\n want %s", got, body)
	}
}

func TestGetJSON_DecodeError(t *testing.T) {
	client, _ := newTestServer(t, http.StatusOK, "<html>oops</html>")

	_, err := client.Forums(context.Background())
	if err == nil {
		t.Fatal("expected error for non-JSON body")
	}

	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("expected *DecodeError, got %T: %v", err, err)
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		t.Error("decode failure must not be reported as an APIError")
	}
	var syntaxErr *json.SyntaxError
	if !errors.As(err, &syntaxErr) {
		t.Errorf("expected underlying *json.SyntaxError, got %v", decodeErr.Err)
	}
}

func TestGetJSON_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	baseURL := srv.URL
	srv.Close()

	_, err := NewRimunClient(baseURL).Health(context.Background())
	if err == nil {
		t.Fatal("expected error against a closed server")
	}

	var urlErr *url.Error
	if !errors.As(err, &urlErr) {
		t.Errorf("expected transport *url.Error, got %T", err)
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		t.Error("transport failure must not be reported as an APIError")
	}
}

func TestGetJSON_ContextCancelled(t *testing.T) {
	client, _ := newTestServer(t, http.StatusOK, `{"status":"ok"}`)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := client.Health(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestHealth(t *testing.T) {
	client, rec := newTestServer(t, http.StatusOK, `{"status":"ok"}`)

	h, err := client.Health(context.Background())
	if err != nil {
		t.Fatalf("Health returned error: %v", err)
	}
	if h.Status != "ok" {
		t.Errorf("expected status ok, got %q", h.Status)
	}
	if rec.last(t).URL.Path != "/health" {
		t.Errorf("unexpected path %s", rec.last(t).URL.Path)
	}
}

func TestListingQueries(t *testing.T) {
	tests := []struct {
		name     string
		call     func(c *RimunClient) error
		path     string
		rawQuery string
	}{
		{
			name: "committees defaults",
			call: func(c *RimunClient) error {
				_, err := c.Committees(context.Background(), model.PageParams{})
				return err
			},
			path:     "/committees",
			rawQuery: "limit=50&offset=0",
		},
		{
			name: "committees page",
			call: func(c *RimunClient) error {
				_, err := c.Committees(context.Background(), model.PageParams{Limit: Ptr(5), Offset: Ptr(10)})
				return err
			},
			path:     "/committees",
			rawQuery: "limit=5&offset=10",
		},
		{
			name: "sessions without active flag",
			call: func(c *RimunClient) error {
				_, err := c.Sessions(context.Background(), model.ListSessionsParams{})
				return err
			},
			path:     "/sessions",
			rawQuery: "limit=50&offset=0",
		},
		{
			name: "sessions active",
			call: func(c *RimunClient) error {
				_, err := c.Sessions(context.Background(), model.ListSessionsParams{Active: Ptr(true)})
				return err
			},
			path:     "/sessions",
			rawQuery: "active=true&limit=50&offset=0",
		},
		{
			name: "sessions inactive",
			call: func(c *RimunClient) error {
				_, err := c.Sessions(context.Background(), model.ListSessionsParams{Active: Ptr(false), Limit: Ptr(1)})
				return err
			},
			path:     "/sessions",
			rawQuery: "active=false&limit=1&offset=0",
		},
		{
			name: "posts defaults",
			call: func(c *RimunClient) error {
				_, err := c.Posts(context.Background(), model.PageParams{})
				return err
			},
			path:     "/posts",
			rawQuery: "limit=50&offset=0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, rec := newTestServer(t, http.StatusOK, "[]")
			if err := tt.call(client); err != nil {
				t.Fatalf("call returned error: %v", err)
			}
			req := rec.last(t)
			if req.URL.Path != tt.path {
				t.Errorf("path = %s, want %s", req.URL.Path, tt.path)
			}
			if req.URL.RawQuery != tt.rawQuery {
				t.Errorf("query = %q, want %q", req.URL.RawQuery, tt.rawQuery)
			}
		})
	}
}

func TestNewRimunClient_TrimsTrailingSlash(t *testing.T) {
	c := NewRimunClient("http://example.org:8081/")
	if c.BaseURL() != "http://example.org:8081" {
		t.Errorf("unexpected base URL %q", c.BaseURL())
	}
}

func TestConcurrentCalls(t *testing.T) {
	client, _ := newTestServer(t, http.StatusOK, `{"status":"ok"}`)

	var wg sync.WaitGroup
	errs := make(chan error, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := client.Health(context.Background()); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("concurrent call failed: %v", err)
	}
}
