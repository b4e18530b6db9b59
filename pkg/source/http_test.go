package source

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestHTTPFetchDecodesRecords(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ua := r.Header.Get("User-Agent"); ua != "fetchlist-test" {
			t.Errorf("unexpected user agent %q", ua)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":1,"listId":2,"name":"Item 1"},{"id":2,"listId":2,"name":null}]`))
	}))
	defer srv.Close()

	src := NewHTTP(srv.URL, WithUserAgent("fetchlist-test"), WithTimeout(time.Second))
	records, err := src.Fetch(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(records) != 2 || records[0].GroupID != 2 || records[1].Name != nil {
		t.Fatalf("unexpected records %+v", records)
	}
}

func TestHTTPFetchUnsuccessfulStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := NewHTTP(srv.URL).Fetch(context.Background())
	var ure *UnsuccessfulResponseError
	if !errors.As(err, &ure) {
		t.Fatalf("expected UnsuccessfulResponseError, got %v", err)
	}
	if ure.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("status = %d", ure.StatusCode)
	}
	if !errors.Is(err, ErrFetch) {
		t.Fatal("unsuccessful response should match ErrFetch")
	}
}

func TestHTTPFetchMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"oops":`))
	}))
	defer srv.Close()

	_, err := NewHTTP(srv.URL).Fetch(context.Background())
	var te *TransportError
	if !errors.As(err, &te) {
		t.Fatalf("expected TransportError, got %v", err)
	}
}

func TestHTTPFetchUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewHTTP(url, WithTimeout(time.Second)).Fetch(context.Background())
	var te *TransportError
	if !errors.As(err, &te) || !errors.Is(err, ErrFetch) {
		t.Fatalf("expected transport error, got %v", err)
	}
}
