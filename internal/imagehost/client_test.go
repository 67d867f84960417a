package imagehost

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestUpload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/upload" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		f, hdr, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("form file: %v", err)
		}
		defer f.Close()
		b, _ := io.ReadAll(f)
		if string(b) != "fake image bytes" || hdr.Filename != "camp.jpg" {
			t.Errorf("file content %q name %q", b, hdr.Filename)
		}
		if r.FormValue("api_key") != "key9" {
			t.Errorf("api_key = %q", r.FormValue("api_key"))
		}
		w.Write([]byte(`{"secure_url":"https://img.example/c/camp.jpg","public_id":"c/camp"}`))
	}))
	defer srv.Close()

	up, err := New(srv.URL, "key9").Upload(context.Background(), "camp.jpg", strings.NewReader("fake image bytes"))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if up.SecureURL != "https://img.example/c/camp.jpg" || up.PublicID != "c/camp" {
		t.Fatalf("upload = %+v", up)
	}
}

func TestUploadRejectsIncompleteResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	if _, err := New(srv.URL, "").Upload(context.Background(), "x.png", strings.NewReader("x")); err == nil {
		t.Fatal("expected error on empty upload response")
	}
}

func TestDestroy(t *testing.T) {
	var gotID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/destroy" {
			t.Errorf("path = %q", r.URL.Path)
		}
		gotID = r.URL.Query().Get("public_id")
	}))
	defer srv.Close()

	if err := New(srv.URL, "").Destroy(context.Background(), "c/camp"); err != nil {
		t.Fatalf("Destroy: %v", err)
	}
	if gotID != "c/camp" {
		t.Fatalf("public_id = %q", gotID)
	}
}
