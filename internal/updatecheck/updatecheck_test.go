// Copyright (c) 2026 Nitrokit Team
// Nitrokit - developer automation toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

package updatecheck

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func TestCleanVersion(t *testing.T) {
	cases := map[string]string{"v1.2.3": "1.2.3", "1.2.3": "1.2.3", "vv1.0.0": "v1.0.0", " v2.0.0 ": "2.0.0"}
	for in, want := range cases {
		if got := CleanVersion(in); got != want {
			t.Errorf("CleanVersion(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestIsNewer(t *testing.T) {
	if !IsNewer("v1.2.3", "v1.10.0") {
		t.Error("1.10.0 is newer than 1.2.3")
	}
	if IsNewer("1.2.3", "v1.2.3") {
		t.Error("equal versions are not newer")
	}
	if IsNewer("2.0.0", "1.9.9") {
		t.Error("older release is not newer")
	}
	if IsNewer("dev", "1.0.0") {
		t.Error("unparsable current must not report an update")
	}
}

func newServer(t *testing.T, tag string, hits *int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(hits, 1)
		if ua := r.Header.Get("User-Agent"); ua != "nitrokit" {
			t.Errorf("user agent: %q", ua)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"tag_name":"` + tag + `","name":"Nitrokit ` + tag + `","html_url":"https://github.com/mustafagenc/nitrokit/releases/tag/` + tag + `"}`))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestCheck_UsesCacheInterval(t *testing.T) {
	var hits int32
	srv := newServer(t, "v1.3.0", &hits)
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	c := NewChecker(t.TempDir())
	c.URL = srv.URL
	c.Now = func() time.Time { return now }

	res, err := c.Check(context.Background(), "1.2.0", false)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if res.Status != UpdateAvailable || res.Latest.TagName != "v1.3.0" {
		t.Fatalf("unexpected result: %+v", res)
	}
	if _, err := os.Stat(filepath.Join(c.CacheDir, CacheFile)); err != nil {
		t.Fatalf("cache not written: %v", err)
	}

	now = now.Add(23 * time.Hour)
	res, _ = c.Check(context.Background(), "1.2.0", false)
	if res.Status != Skipped || atomic.LoadInt32(&hits) != 1 {
		t.Fatalf("fresh cache must skip, status=%v hits=%d", res.Status, hits)
	}

	res, _ = c.Check(context.Background(), "v1.3.0", true)
	if res.Status != UpToDate {
		t.Fatalf("forced check: %+v", res)
	}

	now = now.Add(25 * time.Hour)
	res, _ = c.Check(context.Background(), "2.0.0", false)
	if res.Status != Development || atomic.LoadInt32(&hits) != 3 {
		t.Fatalf("stale cache must fetch again, status=%v hits=%d", res.Status, hits)
	}
}

func TestLatest_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusForbidden)
	}))
	defer srv.Close()
	c := NewChecker(t.TempDir())
	c.URL = srv.URL
	if _, err := c.Check(context.Background(), "1.0.0", true); err == nil {
		t.Fatal("expected an error for a 403")
	}
	if !c.Due() {
		t.Fatal("a failed fetch must not write the cache")
	}
}

func TestDue_CorruptCache(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, CacheFile), []byte("{"), 0o644); err != nil {
		t.Fatal(err)
	}
	if !NewChecker(dir).Due() {
		t.Fatal("corrupt cache must be due")
	}
}
