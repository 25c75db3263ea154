package report

import (
	"context"
	"errors"
	"testing"

	"github.com/Ondrosctots/reverbgrd/pkg/reverb"
)

// fakeFlagger returns a canned status per listing id and records calls.
type fakeFlagger struct {
	status map[string]int
	fail   map[string]bool
	calls  []string
	cancel context.CancelFunc // when set, cancels the run after the first call
}

func (f *fakeFlagger) FlagListing(ctx context.Context, id string) (int, error) {
	f.calls = append(f.calls, id)
	if f.cancel != nil {
		f.cancel()
	}
	if f.fail[id] {
		return 0, errors.New("connection reset")
	}
	return f.status[id], nil
}

func listings(ids ...string) []reverb.Listing {
	var ls []reverb.Listing
	for _, id := range ids {
		ls = append(ls, reverb.Listing{ID: id, Title: "listing " + id})
	}
	return ls
}

func TestDryRunIssuesNoCalls(t *testing.T) {
	api := &fakeFlagger{}

	outcomes := Run(context.Background(), api, listings("3", "1", "2"), Options{Mode: DryRun})

	if len(api.calls) != 0 {
		t.Fatalf("dry-run issued %d live calls: %v", len(api.calls), api.calls)
	}
	if len(outcomes) != 3 {
		t.Fatalf("expected 3 outcomes, got %d", len(outcomes))
	}
	for _, o := range outcomes {
		if o.Result != Previewed {
			t.Errorf("listing %s: result = %s, expected PREVIEWED", o.ListingID, o.Result)
		}
		if o.StatusCode != 0 {
			t.Errorf("listing %s: status code %d in dry-run", o.ListingID, o.StatusCode)
		}
	}
}

func TestRunProcessesInStableIDOrder(t *testing.T) {
	api := &fakeFlagger{status: map[string]int{"1": 201, "2": 201, "3": 201}}

	outcomes := Run(context.Background(), api, listings("3", "1", "2"), Options{Mode: Live})

	for i, expected := range []string{"1", "2", "3"} {
		if outcomes[i].ListingID != expected {
			t.Fatalf("outcome order not id-sorted: %v", outcomes)
		}
		if api.calls[i] != expected {
			t.Fatalf("call order not id-sorted: %v", api.calls)
		}
	}
}

func TestPartialFailureContinuation(t *testing.T) {
	api := &fakeFlagger{status: map[string]int{"1": 201, "2": 403, "3": 204}}

	outcomes := Run(context.Background(), api, listings("1", "2", "3"), Options{Mode: Live})

	if len(outcomes) != 3 {
		t.Fatalf("a per-item failure short-circuited the batch: %v", outcomes)
	}

	expected := []Result{Succeeded, Forbidden, Succeeded}
	forbidden := 0
	for i, o := range outcomes {
		if o.Result != expected[i] {
			t.Errorf("listing %s: result = %s, expected %s", o.ListingID, o.Result, expected[i])
		}
		if o.Result == Forbidden {
			forbidden++
		}
	}
	if forbidden != 1 {
		t.Errorf("expected exactly one FORBIDDEN, got %d", forbidden)
	}
}

func TestStatusClassification(t *testing.T) {
	tests := []struct {
		status   int
		fail     bool
		expected Result
	}{
		{200, false, Succeeded},
		{201, false, Succeeded},
		{204, false, Succeeded},
		{404, false, NotFound},
		{403, false, Forbidden},
		{500, false, Failed},
		{429, false, Failed},
		{0, true, Failed},
	}

	for _, tc := range tests {
		api := &fakeFlagger{
			status: map[string]int{"1": tc.status},
			fail:   map[string]bool{"1": tc.fail},
		}
		outcomes := Run(context.Background(), api, listings("1"), Options{Mode: Live})
		if outcomes[0].Result != tc.expected {
			t.Errorf("status %d (fail=%v): result = %s, expected %s", tc.status, tc.fail, outcomes[0].Result, tc.expected)
		}
		if tc.fail && outcomes[0].StatusCode != 0 {
			t.Errorf("transport failure must leave status code 0, got %d", outcomes[0].StatusCode)
		}
	}
}

func TestCancellationYieldsPartialResults(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	api := &fakeFlagger{status: map[string]int{"1": 201, "2": 201, "3": 201}, cancel: cancel}

	outcomes := Run(ctx, api, listings("1", "2", "3"), Options{Mode: Live})

	if len(api.calls) != 1 {
		t.Fatalf("expected the run to stop after the first item, calls: %v", api.calls)
	}
	if len(outcomes) != 1 || outcomes[0].ListingID != "1" {
		t.Fatalf("partial outcomes lost on cancellation: %v", outcomes)
	}
}

func TestFromIDs(t *testing.T) {
	got := FromIDs([]string{"111", "", "222"})
	if len(got) != 2 || got[0].ID != "111" || got[1].ID != "222" {
		t.Fatalf("unexpected listings: %v", got)
	}
}

func TestSummarize(t *testing.T) {
	outcomes := []Outcome{
		{Result: Succeeded}, {Result: Succeeded},
		{Result: NotFound},
		{Result: Forbidden},
		{Result: Failed},
		{Result: Previewed},
	}

	s := Summarize(outcomes)
	if s.Succeeded != 2 || s.NotFound != 1 || s.Forbidden != 1 || s.Failed != 1 || s.Previewed != 1 {
		t.Fatalf("wrong counts: %+v", s)
	}
}
