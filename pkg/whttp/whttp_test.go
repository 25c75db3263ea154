package whttp

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSendHTTPRequestTitleCapture(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><head><title>  A Shop\nPage  </title></head><body>hi</body></html>"))
	}))
	defer srv.Close()

	res, err := SendHTTPRequest(&WHTTPReq{Method: "GET", URL: srv.URL}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.HTTPTitle != "A ShopPage" {
		t.Errorf("title = %q", res.HTTPTitle)
	}
	if res.ResponseLength == 0 {
		t.Error("response length not recorded")
	}
}

func TestSendHTTPRequestTruncatedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Promise more bytes than we send to force a read error client-side
		w.Header().Set("Content-Length", "1000")
		w.Write([]byte("short"))
	}))
	defer srv.Close()

	if _, err := SendHTTPRequest(&WHTTPReq{Method: "GET", URL: srv.URL}, nil); err == nil {
		t.Fatal("expected a read error on a truncated body")
	}
}
