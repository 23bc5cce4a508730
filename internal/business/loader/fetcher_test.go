package loader

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestHTTPFetcher(t *testing.T) {
	var gotUser, gotKey string
	var gotAuth bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser, gotKey, gotAuth = r.BasicAuth()
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte("payload"))
	}))
	defer srv.Close()

	f := NewHTTPFetcher(nil, 5*time.Second).WithBasicAuth("alice", "secret")
	body, err := f.Fetch(context.Background(), srv.URL+"/data.zip")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	data, _ := io.ReadAll(body)
	body.Close()
	if string(data) != "payload" {
		t.Errorf("body = %q", data)
	}
	if !gotAuth || gotUser != "alice" || gotKey != "secret" {
		t.Errorf("basic auth = %v %q %q", gotAuth, gotUser, gotKey)
	}

	if _, err := f.Fetch(context.Background(), srv.URL+"/missing"); err == nil {
		t.Errorf("expected error for 404")
	}

	plain := NewHTTPFetcher(srv.Client(), 0)
	body, err = plain.Fetch(context.Background(), srv.URL+"/data.zip")
	if err != nil {
		t.Fatalf("Fetch without auth: %v", err)
	}
	body.Close()
	if gotAuth {
		t.Errorf("unexpected basic auth on plain fetcher")
	}
}

func TestKaggleFileURL(t *testing.T) {
	got, err := KaggleFileURL(KaggleBaseURL+"/", "goldenoakresearch/us-household-income-stats-geo-locations", "kaggle_income.csv")
	if err != nil {
		t.Fatalf("KaggleFileURL: %v", err)
	}
	want := "https://www.kaggle.com/api/v1/datasets/download/goldenoakresearch/us-household-income-stats-geo-locations/kaggle_income.csv"
	if got != want {
		t.Errorf("KaggleFileURL = %q, want %q", got, want)
	}

	for _, bad := range []string{"", "owner", "owner/", "/name", "a/b/c"} {
		if _, err := KaggleFileURL(KaggleBaseURL, bad, "f.csv"); err == nil {
			t.Errorf("KaggleFileURL(%q) should fail", bad)
		}
	}
	if _, err := KaggleFileURL(KaggleBaseURL, "a/b", ""); err == nil {
		t.Errorf("empty file should fail")
	}
}
