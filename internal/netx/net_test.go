package netx

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestJoinURL(t *testing.T) {
	tests := []struct {
		base, path, want string
	}{
		{"http://h/api", "/auth/login", "http://h/api/auth/login"},
		{"http://h/api/", "/auth/login", "http://h/api/auth/login"},
		{"http://h/api/", "auth/login", "http://h/api/auth/login"},
		{"http://h/api", "credentials/list", "http://h/api/credentials/list"},
	}
	for _, tc := range tests {
		if got := JoinURL(tc.base, tc.path); got != tc.want {
			t.Fatalf("JoinURL(%q,%q) = %q, want %q", tc.base, tc.path, got, tc.want)
		}
	}
}

func TestPathSegment_EscapesSlashes(t *testing.T) {
	if got := PathSegment("../users/profile"); strings.Contains(got, "/") {
		t.Fatalf("segment not escaped: %q", got)
	}
	if got := PathSegment("0xabc123"); got != "0xabc123" {
		t.Fatalf("plain hash altered: %q", got)
	}
}

func TestValidateBaseURL(t *testing.T) {
	for _, ok := range []string{"http://127.0.0.1:5000/api", "https://id.example.com"} {
		if err := ValidateBaseURL(ok); err != nil {
			t.Fatalf("expected %q to be valid: %v", ok, err)
		}
	}
	for _, bad := range []string{"", "127.0.0.1:5000", "ftp://h/x", "http://"} {
		if err := ValidateBaseURL(bad); err == nil {
			t.Fatalf("expected %q to be rejected", bad)
		}
	}
}

func TestReadBody(t *testing.T) {
	t.Run("small body", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"ok":true}`))
		}))
		defer ts.Close()

		resp, err := http.Get(ts.URL)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		b, err := ReadBody(resp)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(b) != `{"ok":true}` {
			t.Fatalf("body = %q", b)
		}
	})

	t.Run("oversized body", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(strings.Repeat("x", MaxBodyBytes+10)))
		}))
		defer ts.Close()

		resp, err := http.Get(ts.URL)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if _, err := ReadBody(resp); !errors.Is(err, ErrBodyTooLarge) {
			t.Fatalf("want ErrBodyTooLarge, got %v", err)
		}
	})
}

func TestIsTimeout(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer ts.Close()

	c := &http.Client{Timeout: 20 * time.Millisecond}
	_, err := c.Get(ts.URL)
	if err == nil {
		t.Fatalf("expected timeout error")
	}
	if !IsTimeout(err) {
		t.Fatalf("IsTimeout(%v) = false", err)
	}
	if IsTimeout(context.Canceled) {
		t.Fatalf("context.Canceled is not a timeout")
	}
}
