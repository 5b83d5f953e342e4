package fetch_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/reoring/zodforge/fetch"
)

func TestFetch_JSONDocument(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"name": "id", "type": "string", "validations": [{"type": "uuid"}]}]`))
	}))
	defer srv.Close()

	fields, err := fetch.New().Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if len(fields) != 1 || fields[0].Name != "id" {
		t.Fatalf("unexpected fields: %+v", fields)
	}
}

func TestFetch_YAMLByContentType(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write([]byte("fields:\n  - name: title\n    type: string\n"))
	}))
	defer srv.Close()

	fields, err := fetch.New().Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if len(fields) != 1 || fields[0].Name != "title" {
		t.Fatalf("unexpected fields: %+v", fields)
	}
}

func TestFetch_YAMLByURLSuffix(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("- name: id\n  type: string\n"))
	}))
	defer srv.Close()

	fields, err := fetch.New().Fetch(context.Background(), srv.URL+"/doc.yaml")
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if len(fields) != 1 || fields[0].Name != "id" {
		t.Fatalf("unexpected fields: %+v", fields)
	}
}

func TestFetch_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	if _, err := fetch.New().Fetch(context.Background(), srv.URL); err == nil {
		t.Fatalf("expected status error")
	}
}

type staticDoer struct{ resp *http.Response }

func (d staticDoer) Do(*http.Request) (*http.Response, error) { return d.resp, nil }

func TestFetch_InjectedTransport(t *testing.T) {
	rec := httptest.NewRecorder()
	rec.Header().Set("Content-Type", "application/json")
	_, _ = rec.WriteString(`[{"name": "n", "type": "number"}]`)

	c := fetch.New(fetch.WithHTTPClient(staticDoer{resp: rec.Result()}))
	fields, err := c.Fetch(context.Background(), "http://example.invalid/schema")
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if len(fields) != 1 || fields[0].Type != "number" {
		t.Fatalf("unexpected fields: %+v", fields)
	}
}
