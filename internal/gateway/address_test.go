package gateway

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"careline-backend/internal/domain"
)

func TestAddressSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/addrlink/addrLinkApi.do" {
			t.Errorf("path = %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("confmKey") != "test-key" || q.Get("keyword") != "Teheran-ro" {
			t.Errorf("unexpected query: %v", q)
		}
		_, _ = w.Write([]byte(`{
			"results": {
				"common": {"errorCode": "0", "errorMessage": "ok"},
				"juso": [
					{"roadAddr": "12 Teheran-ro", "jibunAddr": "Yeoksam-dong 12", "zipNo": "06234", "bdNm": "Care Tower"}
				]
			}
		}`))
	}))
	defer srv.Close()

	client := NewAddressClient(srv.URL, "test-key")
	out, err := client.Search(context.Background(), "Teheran-ro")
	if err != nil {
		t.Fatalf("search error: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("got %d results, want 1", len(out))
	}
	if out[0].RoadAddress != "12 Teheran-ro" || out[0].ZipCode != "06234" {
		t.Fatalf("unexpected candidate: %+v", out[0])
	}
}

func TestAddressSearchNoMatchIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"results": {"common": {"errorCode": "0"}, "juso": []}}`))
	}))
	defer srv.Close()

	client := NewAddressClient(srv.URL, "test-key")
	out, err := client.Search(context.Background(), "nowhere")
	if err != nil {
		t.Fatalf("search error: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("expected empty result, got %v", out)
	}
}

func TestAddressSearchEmptyKeyword(t *testing.T) {
	client := NewAddressClient("http://example.invalid", "test-key")
	if _, err := client.Search(context.Background(), "  "); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestAddressSearchUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"results": {"common": {"errorCode": "E0001", "errorMessage": "invalid key"}}}`))
	}))
	defer srv.Close()

	client := NewAddressClient(srv.URL, "bad-key")
	if _, err := client.Search(context.Background(), "Teheran-ro"); !domain.IsUpstream(err) {
		t.Fatalf("expected upstream error, got %v", err)
	}
}
