package tools

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/netip"
	"strings"
	"testing"
	"time"

	"localaichat/internal/domain"
)

func TestClockDescribesCalendarBoundaries(t *testing.T) {
	clock := NewClock("UTC")
	clock.now = func() time.Time {
		return time.Date(2024, time.February, 10, 14, 30, 0, 0, time.UTC)
	}

	result, err := clock.Call(context.Background(), "what day is it?")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	values, ok := result.(map[string]any)
	if !ok {
		t.Fatalf("expected map result, got %T", result)
	}
	text := values[domain.ToolContextKey].(string)
	for _, expected := range []string{
		"2024-02-10 14:30:00 (Saturday)",
		"2024-02-10 00:00:00 to 2024-02-10 23:59:59",
		"2024-02-01 to 2024-02-29",
		"2024-01-01 to 2024-12-31",
	} {
		if !strings.Contains(text, expected) {
			t.Errorf("expected context to contain %q, got %q", expected, text)
		}
	}
	if values["timezone"] != "UTC" {
		t.Errorf("expected timezone UTC, got %v", values["timezone"])
	}
}

func TestClockUnknownZoneFallsBackToUTC(t *testing.T) {
	clock := NewClock("Nowhere/Invalid")
	if clock.location != time.UTC {
		t.Errorf("expected UTC, got %v", clock.location)
	}
}

func TestWebpageExtractsText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, `<html><head><title>Release notes</title><style>p{color:red}</style></head>
<body><script>track()</script><h1>Version 2</h1><p>Faster   streaming.</p><ul><li>Bug fixes</li></ul></body></html>`)
	}))
	defer server.Close()

	tool := NewWebpage(server.Client(), 0)
	result, err := tool.Call(context.Background(), "Summarize "+server.URL+"/notes.")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	values := result.(map[string]any)
	if values["title"] != "Release notes" {
		t.Errorf("expected title Release notes, got %v", values["title"])
	}
	if values["url"] != server.URL+"/notes" {
		t.Errorf("expected trailing punctuation trimmed, got %v", values["url"])
	}
	text := values[domain.ToolContextKey].(string)
	if text != "Version 2\nFaster streaming.\nBug fixes" {
		t.Errorf("expected extracted text, got %q", text)
	}
	if strings.Contains(text, "track()") || strings.Contains(text, "color") {
		t.Error("expected scripts and styles to be removed")
	}
}

func TestWebpageTruncates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, "<p>%s</p>", strings.Repeat("a", 100))
	}))
	defer server.Close()

	result, err := NewWebpage(server.Client(), 10).Call(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if text := result.(map[string]any)[domain.ToolContextKey].(string); len(text) != 10 {
		t.Errorf("expected 10 characters, got %d", len(text))
	}
}

func TestWebpageWithoutURL(t *testing.T) {
	result, err := NewWebpage(nil, 0).Call(context.Background(), "no link here")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, ok := result.(string); !ok {
		t.Errorf("expected string context, got %T", result)
	}
}

func TestWebpageErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	if _, err := NewWebpage(server.Client(), 0).Call(context.Background(), server.URL); err == nil {
		t.Error("expected error for 404 page")
	}
}

func TestWebpageRefusesLoopback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("expected loopback server not to be reached")
	}))
	defer server.Close()

	_, err := NewWebpage(nil, 0).Call(context.Background(), "read "+server.URL)
	if !errors.Is(err, ErrBlockedAddress) {
		t.Errorf("expected ErrBlockedAddress, got %v", err)
	}
}

func TestIsPublic(t *testing.T) {
	tests := []struct {
		addr     string
		expected bool
	}{
		{"93.184.216.34", true},
		{"2606:2800:220:1:248:1893:25c8:1946", true},
		{"127.0.0.1", false},
		{"::1", false},
		{"10.1.2.3", false},
		{"172.16.0.1", false},
		{"192.168.1.1", false},
		{"169.254.169.254", false},
		{"100.64.0.1", false},
		{"0.0.0.0", false},
		{"::ffff:127.0.0.1", false},
		{"fd00::1", false},
		{"fe80::1", false},
	}

	for _, tt := range tests {
		if got := isPublic(netip.MustParseAddr(tt.addr)); got != tt.expected {
			t.Errorf("expected isPublic(%s) %v, got %v", tt.addr, tt.expected, got)
		}
	}
}

func TestWebpageAllowedHosts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<p>internal docs</p>")
	}))
	defer server.Close()

	// server.URL uses 127.0.0.1, which is not "localhost"
	denied := NewWebpage(server.Client(), 0, "localhost")
	if _, err := denied.Call(context.Background(), server.URL); !errors.Is(err, ErrHostNotAllowed) {
		t.Errorf("expected ErrHostNotAllowed, got %v", err)
	}

	allowed := NewWebpage(server.Client(), 0, "127.0.0.1")
	if _, err := allowed.Call(context.Background(), server.URL); err != nil {
		t.Errorf("expected allowlisted host to be fetched, got %v", err)
	}
}

func TestWebpageAllowedHostsCoverRedirects(t *testing.T) {
	target := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("expected redirect target not to be reached")
	}))
	defer target.Close()
	origin := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, strings.Replace(target.URL, "127.0.0.1", "localhost", 1), http.StatusFound)
	}))
	defer origin.Close()

	tool := NewWebpage(origin.Client(), 0, "127.0.0.1")
	if _, err := tool.Call(context.Background(), origin.URL); !errors.Is(err, ErrHostNotAllowed) {
		t.Errorf("expected ErrHostNotAllowed for redirect, got %v", err)
	}
}
