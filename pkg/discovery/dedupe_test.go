package discovery

import (
	"testing"

	"github.com/Ondrosctots/reverbgrd/pkg/reverb"
)

func TestDedupe(t *testing.T) {
	in := []reverb.Listing{
		{ID: "1", Title: "first"},
		{ID: "2", Title: "second"},
		{ID: "1", Title: "duplicate of first"},
		{ID: "3", Title: "third"},
		{ID: "2", Title: "duplicate of second"},
	}

	got := Dedupe(in)
	if len(got) != 3 {
		t.Fatalf("expected 3 unique listings, got %d: %v", len(got), got)
	}

	// First-seen instance wins
	if got[0].Title != "first" || got[1].Title != "second" {
		t.Errorf("first-seen instance did not win: %v", got)
	}
}

func TestDedupeEmpty(t *testing.T) {
	if got := Dedupe(nil); got != nil {
		t.Fatalf("expected nil for empty input, got %v", got)
	}
	if got := Dedupe([]reverb.Listing{}); got != nil {
		t.Fatalf("expected nil for empty slice, got %v", got)
	}
}
