package clipboard

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// portalServer fakes the on-device socket server with an in-memory
// clipboard.
func portalServer(t *testing.T) (*httptest.Server, *string) {
	t.Helper()
	var content string
	mux := http.NewServeMux()
	mux.HandleFunc("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/clipboard/get", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"status": "success", "data": content})
	})
	mux.HandleFunc("/clipboard/set", func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			Text string `json:"text"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		content = payload.Text
		json.NewEncoder(w).Encode(map[string]string{"status": "success"})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, &content
}

func transportFor(srv *httptest.Server) *httpTransport {
	tr := newHTTPTransport(0)
	tr.baseURL = srv.URL
	return tr
}

func TestHTTPTransport_RoundTrip(t *testing.T) {
	srv, _ := portalServer(t)
	tr := transportFor(srv)
	ctx := context.Background()

	cases := []string{
		"Hello, World!",
		"Hello 🌍! Testing emojis: 🚀 💻 ✨ 🎉",
		"Line 1\nLine 2\nLine 3\tTabbed",
		`It's a "test" with 'quotes'`,
		`Path: C:\Users\Test`,
		"",
	}

	for _, text := range cases {
		if err := tr.Set(ctx, text); err != nil {
			t.Fatalf("Set(%q) error = %v", text, err)
		}
		got, ok, err := tr.Get(ctx)
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if !ok {
			t.Fatalf("Get() ok = false after Set(%q)", text)
		}
		if got != text {
			t.Errorf("round trip = %q, want %q", got, text)
		}
	}
}

func TestHTTPTransport_GetNoContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"status": "empty"})
	}))
	defer srv.Close()

	text, ok, err := transportFor(srv).Get(context.Background())
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if ok || text != "" {
		t.Errorf("Get() = (%q, %v), want (\"\", false)", text, ok)
	}
}

func TestHTTPTransport_GetServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, _, err := transportFor(srv).Get(context.Background())
	if err == nil {
		t.Fatal("Get() expected error for 500 response")
	}
	if !strings.Contains(err.Error(), "HTTP GET failed") {
		t.Errorf("Get() error = %v, want method-qualified message", err)
	}
}

func TestHTTPTransport_GetMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	_, _, err := transportFor(srv).Get(context.Background())
	if err == nil {
		t.Fatal("Get() expected error for malformed body")
	}
}

func TestHTTPTransport_SetSuccessSubstring(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{"structured success", `{"status": "success"}`, false},
		{"case-insensitive", "SUCCESS: clipboard updated", false},
		{"plain text", "operation was a Success", false},
		{"no marker", `{"status": "ok"}`, true},
		{"empty body", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if ct := r.Header.Get("Content-Type"); ct != "application/json" {
					t.Errorf("Content-Type = %q, want application/json", ct)
				}
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			err := transportFor(srv).Set(context.Background(), "text")
			if (err != nil) != tt.wantErr {
				t.Errorf("Set() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestHTTPTransport_SetServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "denied", http.StatusForbidden)
	}))
	defer srv.Close()

	err := transportFor(srv).Set(context.Background(), "text")
	if err == nil {
		t.Fatal("Set() expected error for 403 response")
	}
	if !strings.Contains(err.Error(), "HTTP SET failed") {
		t.Errorf("Set() error = %v, want method-qualified message", err)
	}
}

func TestHTTPTransport_Ping(t *testing.T) {
	t.Run("200 is available", func(t *testing.T) {
		srv, _ := portalServer(t)
		if err := transportFor(srv).Ping(context.Background()); err != nil {
			t.Errorf("Ping() error = %v", err)
		}
	})

	t.Run("non-200 is unavailable", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		}))
		defer srv.Close()
		if err := transportFor(srv).Ping(context.Background()); err == nil {
			t.Error("Ping() expected error for 204 response")
		}
	})

	t.Run("refused connection is unavailable", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close()
		if err := transportFor(srv).Ping(context.Background()); err == nil {
			t.Error("Ping() expected error for closed server")
		}
	})
}
