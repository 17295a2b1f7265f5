package fetcher

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestGetSendsUserAgent(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.UserAgent()
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	c := New(&Config{UserAgent: "seolens-test/1.0"})
	resp, err := c.Get(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if gotUA != "seolens-test/1.0" {
		t.Errorf("User-Agent = %q", gotUA)
	}
	if resp.StatusCode != http.StatusOK || string(resp.Body) != "ok" {
		t.Errorf("resp = %d %q", resp.StatusCode, resp.Body)
	}
	if resp.FinalURL != srv.URL {
		t.Errorf("FinalURL = %q, want %q", resp.FinalURL, srv.URL)
	}
}

func TestDefaultConfigUserAgent(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.UserAgent()
	}))
	defer srv.Close()

	c := New(nil)
	if _, err := c.Get(context.Background(), srv.URL); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !strings.Contains(gotUA, "Chrome") {
		t.Errorf("default User-Agent = %q, want a browser string", gotUA)
	}
}

func TestBodyLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(strings.Repeat("x", 1000)))
	}))
	defer srv.Close()

	c := New(&Config{MaxBodySize: 100})
	resp, err := c.Get(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(resp.Body) != 100 {
		t.Errorf("body length = %d, want capped at 100", len(resp.Body))
	}
}

func TestRedirectBehavior(t *testing.T) {
	dest := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("landed"))
	}))
	defer dest.Close()
	src := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, dest.URL, http.StatusFound)
	}))
	defer src.Close()

	follower := New(&Config{FollowRedirects: true})
	resp, err := follower.Get(context.Background(), src.URL)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if resp.StatusCode != http.StatusOK || resp.FinalURL != dest.URL {
		t.Errorf("follower got %d at %q", resp.StatusCode, resp.FinalURL)
	}

	staying := New(&Config{FollowRedirects: false})
	resp, err = staying.Get(context.Background(), src.URL)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if resp.StatusCode != http.StatusFound {
		t.Errorf("non-follower got %d, want 302", resp.StatusCode)
	}
	if loc := resp.Header("Location"); loc != dest.URL {
		t.Errorf("Location = %q, want %q", loc, dest.URL)
	}
}

func TestHeadHasEmptyBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodHead {
			t.Errorf("method = %s, want HEAD", r.Method)
		}
	}))
	defer srv.Close()

	resp, err := New(nil).Head(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Head: %v", err)
	}
	if len(resp.Body) != 0 {
		t.Errorf("HEAD body length = %d, want 0", len(resp.Body))
	}
}

func TestResponseHeaderNil(t *testing.T) {
	var r *Response
	if got := r.Header("Content-Type"); got != "" {
		t.Errorf("nil receiver Header = %q, want empty", got)
	}
}
