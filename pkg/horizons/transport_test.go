package horizons

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestHTTPTransport_Fetch(t *testing.T) {
	var gotQuery map[string][]string
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		gotUA = r.Header.Get("User-Agent")
		w.Write([]byte("response body"))
	}))
	defer srv.Close()

	tr := NewHTTPTransport(WithBaseURL(srv.URL))
	body, err := tr.Fetch(context.Background(), []Param{
		{Key: keyFormat, Value: "text"},
		{Key: keyCommand, Value: "'500@399'"},
	})
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if body != "response body" {
		t.Errorf("body = %q", body)
	}
	if got := gotQuery[keyCommand]; len(got) != 1 || got[0] != "'500@399'" {
		t.Errorf("COMMAND query = %v", got)
	}
	if gotUA == "" {
		t.Error("User-Agent header not set")
	}
}

func TestHTTPTransport_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	tr := NewHTTPTransport(WithBaseURL(srv.URL))
	if _, err := tr.Fetch(context.Background(), nil); err == nil {
		t.Fatal("expected error for 503 response")
	}
}

func TestHTTPTransport_ContextCancel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	tr := NewHTTPTransport(WithBaseURL(srv.URL))
	if _, err := tr.Fetch(ctx, nil); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}

func TestHTTPTransport_Defaults(t *testing.T) {
	tr := NewHTTPTransport()
	if tr.BaseURL() != DefaultBaseURL {
		t.Errorf("BaseURL = %q", tr.BaseURL())
	}

	custom := &http.Client{Timeout: 5 * time.Second}
	tr = NewHTTPTransport(WithHTTPClient(custom))
	if tr.client != custom {
		t.Error("custom client not applied")
	}
}
