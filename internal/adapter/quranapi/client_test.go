package quranapi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

func TestGetAyahText(t *testing.T) {
	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.URL.Path != "/ayah/1:1" {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, `{"code":200,"data":{"text":"بِسْمِ اللَّهِ الرَّحْمَٰنِ الرَّحِيمِ"}}`)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)

	text, err := client.GetAyahText(context.Background(), 1, 1)
	if err != nil {
		t.Fatalf("GetAyahText() error = %v", err)
	}
	if text == "" {
		t.Fatal("expected non-empty ayah text")
	}

	// Second call is served from the cache.
	again, err := client.GetAyahText(context.Background(), 1, 1)
	if err != nil {
		t.Fatalf("GetAyahText() second call error = %v", err)
	}
	if again != text {
		t.Errorf("cached text differs: %q vs %q", again, text)
	}
	if hits.Load() != 1 {
		t.Errorf("upstream hits = %d, want 1", hits.Load())
	}
}

func TestGetAyahText_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)

	if _, err := client.GetAyahText(context.Background(), 2, 255); err == nil {
		t.Fatal("expected an error from a failing upstream")
	}
}
