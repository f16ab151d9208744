package updater

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// withRelease points the checker at a test server for one test.
func withRelease(t *testing.T, handler http.HandlerFunc) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	prevEndpoint, prevClient := releaseEndpoint, httpClient
	releaseEndpoint, httpClient = srv.URL, srv.Client()
	t.Cleanup(func() { releaseEndpoint, httpClient = prevEndpoint, prevClient })
}

// --- isNewer ---

func TestIsNewer(t *testing.T) {
	tests := []struct {
		name    string
		current string
		latest  string
		want    bool
	}{
		{"newer patch", "0.2.0", "0.2.1", true},
		{"newer minor", "0.2.0", "0.3.0", true},
		{"same version", "0.2.0", "0.2.0", false},
		{"older version", "0.3.0", "0.2.0", false},
		{"empty latest", "0.2.0", "", false},
		{"dev current", "dev", "0.2.0", false},
		{"two part latest", "0.2.0", "0.3", true},
		{"minor jump", "0.9.0", "0.10.0", true},
		{"pre-release suffix", "1.0.0", "1.0.1-rc1", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isNewer(tt.current, tt.latest); got != tt.want {
				t.Errorf("isNewer(%q, %q) = %v, want %v", tt.current, tt.latest, got, tt.want)
			}
		})
	}
}

func TestParseIntSafe(t *testing.T) {
	for in, want := range map[string]int{"0": 0, "12": 12, "3-rc1": 3, "abc": 0, "": 0} {
		if got := parseIntSafe(in); got != want {
			t.Errorf("parseIntSafe(%q) = %d, want %d", in, got, want)
		}
	}
}

// --- Check ---

func TestCheck_UpdateAvailable(t *testing.T) {
	withRelease(t, func(w http.ResponseWriter, r *http.Request) {
		if ua := r.Header.Get("User-Agent"); ua != "navigate/v0.1.0" {
			t.Errorf("User-Agent = %q", ua)
		}
		_, _ = w.Write([]byte(`{"tag_name":"v0.2.0","html_url":"https://example.com/r/0.2.0"}`))
	})

	res, err := Check(context.Background(), "v0.1.0")
	if err != nil {
		t.Fatal(err)
	}
	if !res.UpdateAvailable || res.LatestVersion != "0.2.0" || res.CurrentVersion != "0.1.0" {
		t.Errorf("result = %+v", res)
	}
	if !strings.Contains(res.String(), "0.2.0 is available") {
		t.Errorf("String() = %q", res.String())
	}
}

func TestCheck_UpToDate(t *testing.T) {
	withRelease(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"tag_name":"v0.2.0"}`))
	})

	res, err := Check(context.Background(), "0.2.0")
	if err != nil {
		t.Fatal(err)
	}
	if res.UpdateAvailable || res.String() != "navigate 0.2.0 is up to date." {
		t.Errorf("result = %+v / %q", res, res.String())
	}
}

func TestCheck_Failures(t *testing.T) {
	withRelease(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusForbidden)
	})
	res, err := Check(context.Background(), "0.1.0")
	if err == nil || !strings.Contains(err.Error(), "403") {
		t.Errorf("err = %v", err)
	}
	if res.String() != "Could not determine the latest release." {
		t.Errorf("String() = %q", res.String())
	}

	withRelease(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	})
	if _, err := Check(context.Background(), "0.1.0"); err == nil {
		t.Error("expected parse error")
	}
}
