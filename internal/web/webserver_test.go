package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"formdesk/internal/entries"
)

func newTestServer(t *testing.T) (*WebServer, *entries.FileStore) {
	t.Helper()
	store, err := entries.NewFileStore(filepath.Join(t.TempDir(), "user_data.json"))
	if err != nil {
		t.Fatalf("init store: %v", err)
	}
	return NewWebServer(store, 8081), store
}

type failingStore struct{}

func (failingStore) Load() ([]entries.Record, error) { return nil, errors.New("disk gone") }
func (failingStore) Save([]entries.Record) error     { return errors.New("disk gone") }
func (failingStore) Add(string, string, string) (entries.Record, error) {
	return entries.Record{}, errors.New("disk gone")
}

func postForm(h http.Handler, values url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/submit", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestRootShowsEmptyState(t *testing.T) {
	ws, _ := newTestServer(t)
	rr := httptest.NewRecorder()
	ws.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("handler returned wrong status code: got %v want %v", rr.Code, http.StatusOK)
	}
	body := rr.Body.String()
	for _, want := range []string{"Simple Form Data App", "Submit your information below:", "Submitted Entries", "No entries yet."} {
		if !strings.Contains(body, want) {
			t.Errorf("page is missing %q", want)
		}
	}
}

func TestUnknownPathIsNotFound(t *testing.T) {
	ws, _ := newTestServer(t)
	rr := httptest.NewRecorder()
	ws.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/nope", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("got %v want 404", rr.Code)
	}
}

func TestSubmitStoresEntry(t *testing.T) {
	ws, store := newTestServer(t)
	rr := postForm(ws.Handler(), url.Values{
		"name":    {"John Doe"},
		"email":   {"john@example.com"},
		"message": {"Hello world"},
	})

	if rr.Code != http.StatusOK {
		t.Fatalf("handler returned wrong status code: got %v want %v", rr.Code, http.StatusOK)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "Thank you John Doe! Your entry has been saved.") {
		t.Fatalf("confirmation missing:\n%s", body)
	}
	if strings.Contains(body, "No entries yet.") {
		t.Fatalf("entries list should not be empty after submit")
	}

	recs, err := store.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(recs) != 1 || recs[0].ID != 1 || recs[0].Message != "Hello world" {
		t.Fatalf("unexpected store: %+v", recs)
	}
}

func TestSubmitMissingFields(t *testing.T) {
	ws, store := newTestServer(t)
	rr := postForm(ws.Handler(), url.Values{"name": {"John"}, "email": {""}, "message": {"hi"}})

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("got %v want 400", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "Please fill in all fields.") {
		t.Fatalf("validation message missing")
	}
	if !strings.Contains(rr.Body.String(), `value="John"`) {
		t.Fatalf("form values should be kept on error")
	}
	recs, _ := store.Load()
	if len(recs) != 0 {
		t.Fatalf("nothing should be stored, got %+v", recs)
	}
}

func TestSubmitWhitespaceOnlyFieldIsMissing(t *testing.T) {
	ws, store := newTestServer(t)
	rr := postForm(ws.Handler(), url.Values{"name": {"John"}, "email": {"john@example.com"}, "message": {"   "}})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("got %v want 400", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "Please fill in all fields.") {
		t.Fatalf("validation message missing")
	}
	recs, _ := store.Load()
	if len(recs) != 0 {
		t.Fatalf("nothing should be stored, got %+v", recs)
	}
}

func TestSubmitRejectsGet(t *testing.T) {
	ws, _ := newTestServer(t)
	rr := httptest.NewRecorder()
	ws.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/submit", nil))
	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("got %v want 405", rr.Code)
	}
}

func TestSubmitStoreFailure(t *testing.T) {
	ws := NewWebServer(failingStore{}, 8081)
	rr := postForm(ws.Handler(), url.Values{"name": {"a"}, "email": {"b"}, "message": {"c"}})
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("got %v want 500", rr.Code)
	}
}

func TestAPIEntriesCreateAndList(t *testing.T) {
	ws, _ := newTestServer(t)
	h := ws.Handler()

	for _, name := range []string{"User 1", "User 2"} {
		body := `{"name":"` + name + `","email":"u@test.com","message":"m"}`
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/entries", strings.NewReader(body)))
		if rr.Code != http.StatusCreated {
			t.Fatalf("create %s: got %v want 201", name, rr.Code)
		}
	}

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/entries", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("list: got %v", rr.Code)
	}
	var recs []entries.Record
	if err := json.Unmarshal(rr.Body.Bytes(), &recs); err != nil {
		t.Fatalf("Failed to parse JSON response: %v", err)
	}
	if len(recs) != 2 || recs[0].ID != 1 || recs[1].ID != 2 || recs[1].Name != "User 2" {
		t.Fatalf("unexpected list: %+v", recs)
	}
}

func TestAPIEntriesEmptyListIsArray(t *testing.T) {
	ws, _ := newTestServer(t)
	rr := httptest.NewRecorder()
	ws.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/entries", nil))
	if strings.TrimSpace(rr.Body.String()) != "[]" {
		t.Fatalf("want [], got %q", rr.Body.String())
	}
}

func TestAPIEntriesValidation(t *testing.T) {
	ws, _ := newTestServer(t)
	h := ws.Handler()

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/entries", strings.NewReader(`{"name":"a"}`)))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("missing fields: got %v want 400", rr.Code)
	}

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/entries", strings.NewReader(`{oops`)))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("bad json: got %v want 400", rr.Code)
	}
}

func TestStatsEndpoint(t *testing.T) {
	ws, store := newTestServer(t)
	if _, err := store.Add("a", "a@x.io", "m"); err != nil {
		t.Fatalf("add: %v", err)
	}
	rr := httptest.NewRecorder()
	ws.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/stats", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("got %v", rr.Code)
	}
	var resp struct {
		Summary struct {
			TotalEntries int `json:"total_entries"`
		} `json:"summary"`
		Daily struct {
			TotalEntries int `json:"total_entries"`
		} `json:"daily"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to parse JSON response: %v", err)
	}
	if resp.Summary.TotalEntries != 1 || resp.Daily.TotalEntries != 1 {
		t.Fatalf("unexpected stats: %+v", resp)
	}

	rr = httptest.NewRecorder()
	ws.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/stats?date=bad", nil))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("bad date: got %v want 400", rr.Code)
	}
}

func TestStatusReportsDegradedStore(t *testing.T) {
	ws := NewWebServer(failingStore{}, 8081)
	rr := httptest.NewRecorder()
	ws.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/status", nil))

	var response map[string]interface{}
	if err := json.Unmarshal(rr.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse JSON response: %v", err)
	}
	if response["status"] != "degraded" {
		t.Fatalf("expected degraded status, got %v", response["status"])
	}
}
