package geocode

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGeocodeFirstResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("q"); got != "Moraine Lake, AB" {
			t.Errorf("query q = %q", got)
		}
		if got := r.URL.Query().Get("key"); got != "k123" {
			t.Errorf("query key = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"results":[
			{"latitude":51.3217,"longitude":-116.1860,"formatted_address":"Moraine Lake, Improvement District No. 9, AB, Canada"},
			{"latitude":0,"longitude":0,"formatted_address":"somewhere else"}
		]}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "k123")
	got, err := c.Geocode(context.Background(), "Moraine Lake, AB")
	if err != nil {
		t.Fatalf("Geocode: %v", err)
	}
	if got.Latitude != 51.3217 || got.Longitude != -116.1860 {
		t.Fatalf("coordinates = %v", got)
	}
	if got.FormattedAddress == "" {
		t.Fatal("formatted address missing")
	}
}

func TestGeocodeNoResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results":[]}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL, "").Geocode(context.Background(), "not a place")
	if !errors.Is(err, ErrNoResult) {
		t.Fatalf("err = %v, want ErrNoResult", err)
	}
}

func TestGeocodeProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := New(srv.URL, "").Geocode(context.Background(), "anywhere")
	if err == nil || errors.Is(err, ErrNoResult) {
		t.Fatalf("err = %v, want upstream failure", err)
	}
}
