package gcs

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"
)

type roundTripFunc func(*http.Request) *http.Response

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req), nil
}

func staticTokenSource() *tokenSource {
	return &tokenSource{fetch: func(context.Context) (string, time.Time, error) {
		return "token", time.Now().Add(time.Hour), nil
	}}
}

func TestUploadObjectSuccess(t *testing.T) {
	t.Parallel()

	var gotURL, gotAuth, gotContentType string
	client := &Client{
		defaultBucket: "homecraft-media",
		publicHost:    "https://storage.googleapis.com",
		tokenSource:   staticTokenSource(),
		httpClient: &http.Client{Transport: roundTripFunc(func(req *http.Request) *http.Response {
			gotURL = req.URL.String()
			gotAuth = req.Header.Get("Authorization")
			gotContentType = req.Header.Get("Content-Type")
			return &http.Response{
				StatusCode: http.StatusOK,
				Body:       io.NopCloser(strings.NewReader(`{"name":"reviews/abc.png"}`)),
				Header:     http.Header{},
			}
		})},
	}

	publicURL, err := client.UploadObject(context.Background(), "", "reviews/abc.png", "image/png", strings.NewReader("img-bytes"))
	if err != nil {
		t.Fatalf("UploadObject: %v", err)
	}
	if publicURL != "https://storage.googleapis.com/homecraft-media/reviews/abc.png" {
		t.Fatalf("unexpected public url %s", publicURL)
	}
	if !strings.Contains(gotURL, "/upload/storage/v1/b/homecraft-media/o") {
		t.Fatalf("unexpected upload url %s", gotURL)
	}
	if gotAuth != "Bearer token" {
		t.Fatalf("unexpected auth %s", gotAuth)
	}
	if gotContentType != "image/png" {
		t.Fatalf("unexpected content type %s", gotContentType)
	}
}

func TestUploadObjectFailureStatus(t *testing.T) {
	t.Parallel()

	client := &Client{
		defaultBucket: "homecraft-media",
		publicHost:    "https://storage.googleapis.com",
		tokenSource:   staticTokenSource(),
		httpClient: &http.Client{Transport: roundTripFunc(func(req *http.Request) *http.Response {
			return &http.Response{
				StatusCode: http.StatusForbidden,
				Status:     "403 Forbidden",
				Body:       io.NopCloser(strings.NewReader("denied")),
				Header:     http.Header{},
			}
		})},
	}

	if _, err := client.UploadObject(context.Background(), "", "reviews/abc.png", "image/png", strings.NewReader("x")); err == nil {
		t.Fatal("expected error for 403 upload")
	}
}

func TestUploadObjectValidation(t *testing.T) {
	t.Parallel()

	client := &Client{tokenSource: staticTokenSource(), httpClient: &http.Client{}}
	if _, err := client.UploadObject(context.Background(), "", "object", "image/png", strings.NewReader("x")); err == nil {
		t.Fatal("expected error without a bucket")
	}

	client.defaultBucket = "homecraft-media"
	if _, err := client.UploadObject(context.Background(), "", "", "image/png", strings.NewReader("x")); err == nil {
		t.Fatal("expected error without an object name")
	}
}

func TestDeleteObjectSuccess(t *testing.T) {
	t.Parallel()

	client := &Client{
		defaultBucket: "homecraft-media",
		tokenSource:   staticTokenSource(),
		httpClient: &http.Client{Transport: roundTripFunc(func(req *http.Request) *http.Response {
			if req.Method != http.MethodDelete {
				t.Fatalf("expected DELETE, got %s", req.Method)
			}
			if req.Header.Get("Authorization") != "Bearer token" {
				t.Fatalf("unexpected auth %s", req.Header.Get("Authorization"))
			}
			return &http.Response{
				StatusCode: http.StatusNoContent,
				Body:       io.NopCloser(strings.NewReader("")),
				Header:     http.Header{},
			}
		})},
	}

	if err := client.DeleteObject(context.Background(), "homecraft-media", "reviews/file.png"); err != nil {
		t.Fatalf("DeleteObject: %v", err)
	}
}

func TestDeleteObjectNotFound(t *testing.T) {
	t.Parallel()

	client := &Client{
		defaultBucket: "homecraft-media",
		tokenSource:   staticTokenSource(),
		httpClient: &http.Client{Transport: roundTripFunc(func(req *http.Request) *http.Response {
			return &http.Response{
				StatusCode: http.StatusNotFound,
				Body:       io.NopCloser(strings.NewReader("")),
				Header:     http.Header{},
			}
		})},
	}

	if err := client.DeleteObject(context.Background(), "homecraft-media", "reviews/file.png"); err != nil {
		t.Fatalf("DeleteObject not found should succeed: %v", err)
	}
}

func TestPublicURLUsesConfiguredHost(t *testing.T) {
	t.Parallel()

	client := &Client{defaultBucket: "homecraft-media", publicHost: "https://cdn.homecraft.example"}
	got := client.PublicURL("", "resumes/cv.pdf")
	if got != "https://cdn.homecraft.example/homecraft-media/resumes/cv.pdf" {
		t.Fatalf("unexpected public url %s", got)
	}
}
