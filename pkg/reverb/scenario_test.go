package reverb_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Ondrosctots/reverbgrd/pkg/discovery"
	"github.com/Ondrosctots/reverbgrd/pkg/report"
	"github.com/Ondrosctots/reverbgrd/pkg/reverb"
	"github.com/Ondrosctots/reverbgrd/pkg/whttp"
)

// Full pass over a real HTTP surface: the shop-scoped endpoint finds one
// listing, the live flag call returns 201.
func TestScanAndFlagScenario(t *testing.T) {
	var flagCalls []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == "GET" && r.URL.Path == "/shops/gilmars-shop-5/listings":
			w.Write([]byte(`{"listings":[{"id":111,"title":"Fender Stratocaster","shop":{"slug":"gilmars-shop-5","name":"Gilmars Shop"}}]}`))
		case r.Method == "POST" && r.URL.Path == "/listings/111/flags":
			flagCalls = append(flagCalls, r.URL.Path)
			w.WriteHeader(http.StatusCreated)
		default:
			w.Write([]byte(`{"listings":[]}`))
		}
	}))
	defer srv.Close()

	client := &reverb.Client{BaseURL: srv.URL, Token: "tok", HTTP: whttp.GetDefaultClient()}
	target := reverb.ShopTarget{Slug: "gilmars-shop-5"}

	listings := discovery.Discover(client, target, discovery.Options{})
	if len(listings) != 1 || listings[0].ID != "111" {
		t.Fatalf("discovery returned %v", listings)
	}

	outcomes := report.Run(context.Background(), client, listings, report.Options{Mode: report.Live})
	if len(outcomes) != 1 {
		t.Fatalf("expected 1 outcome, got %v", outcomes)
	}
	o := outcomes[0]
	if o.ListingID != "111" || o.Result != report.Succeeded || o.StatusCode != 201 {
		t.Fatalf("unexpected outcome: %+v", o)
	}
	if len(flagCalls) != 1 {
		t.Fatalf("expected exactly one flag call, got %v", flagCalls)
	}
}

// When every strategy comes back empty, the verified set is empty and no
// action call may ever be issued.
func TestNoMatchScenario(t *testing.T) {
	var postCalls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == "POST" {
			postCalls++
		}
		w.Write([]byte(`{"listings":[]}`))
	}))
	defer srv.Close()

	client := &reverb.Client{BaseURL: srv.URL, Token: "tok", HTTP: whttp.GetDefaultClient()}

	listings := discovery.Discover(client, reverb.ShopTarget{Slug: "ghost-shop"}, discovery.Options{})
	if len(listings) != 0 {
		t.Fatalf("expected discovery failure, got %v", listings)
	}
	if postCalls != 0 {
		t.Fatalf("no action calls may happen without verified listings, saw %d", postCalls)
	}
}
