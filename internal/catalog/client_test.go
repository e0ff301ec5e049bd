package catalog_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/karavil/cinema-booking-api/internal/catalog"
)

func TestHTTPClientGetByID(t *testing.T) {
	t.Run("decodes a movie and sends the api key header", func(t *testing.T) {
		var gotHeader string

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotHeader = r.Header.Get("X-Apikey")

			if r.URL.Path != "/v1/movies/tt0050986" {
				t.Errorf("unexpected path %s", r.URL.Path)
			}

			json.NewEncoder(w).Encode(testMovie)
		}))
		defer srv.Close()

		client := catalog.NewHTTPClient(srv.URL, "X-Apikey", "secret")

		got, err := client.GetByID(context.Background(), "tt0050986")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if gotHeader != "secret" {
			t.Errorf("api key header = %q, want %q", gotHeader, "secret")
		}

		if diff := cmp.Diff(&testMovie, got); diff != "" {
			t.Errorf("movie mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("returns absent for 404", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer srv.Close()

		client := catalog.NewHTTPClient(srv.URL, "X-Apikey", "secret")

		got, err := client.GetByID(context.Background(), "unknown")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != nil {
			t.Errorf("expected absent movie, got %+v", got)
		}
	})

	t.Run("classifies 5xx as transient", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		client := catalog.NewHTTPClient(srv.URL, "X-Apikey", "secret")

		_, err := client.GetByID(context.Background(), "tt0050986")
		if !errors.Is(err, catalog.ErrCatalogUnavailable) {
			t.Errorf("expected catalog.ErrCatalogUnavailable, got %v", err)
		}
	})

	t.Run("classifies connection failures as transient", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close() // refuse connections

		client := catalog.NewHTTPClient(srv.URL, "X-Apikey", "secret")

		_, err := client.GetByID(context.Background(), "tt0050986")
		if !errors.Is(err, catalog.ErrCatalogUnavailable) {
			t.Errorf("expected catalog.ErrCatalogUnavailable, got %v", err)
		}
	})

	t.Run("other client errors are not transient", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}))
		defer srv.Close()

		client := catalog.NewHTTPClient(srv.URL, "X-Apikey", "wrong")

		_, err := client.GetByID(context.Background(), "tt0050986")
		if err == nil || errors.Is(err, catalog.ErrCatalogUnavailable) {
			t.Errorf("expected a non-transient error, got %v", err)
		}
	})
}

func TestHTTPClientGetAll(t *testing.T) {
	movies := []catalog.Movie{testMovie, {ID: "tt0060827", Title: "Persona", Year: "1966"}}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/movies" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}

		json.NewEncoder(w).Encode(movies)
	}))
	defer srv.Close()

	client := catalog.NewHTTPClient(srv.URL, "X-Apikey", "secret")

	got, err := client.GetAll(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if diff := cmp.Diff(movies, got); diff != "" {
		t.Errorf("movies mismatch (-want +got):\n%s", diff)
	}
}
