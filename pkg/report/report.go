// Package report drives the bulk moderation action over a verified listing
// set: previewing in dry-run mode or flagging live, pacing requests with a
// fixed delay, and classifying each per-listing outcome without ever aborting
// the batch.
package report

import (
	"context"
	"sort"
	"time"

	"github.com/Ondrosctots/reverbgrd/internal/utils"
	"github.com/Ondrosctots/reverbgrd/pkg/reverb"
)

type Mode int

const (
	DryRun Mode = iota
	Live
)

func (m Mode) String() string {
	if m == Live {
		return "LIVE"
	}
	return "DRY_RUN"
}

type Result string

const (
	Previewed Result = "PREVIEWED"
	Succeeded Result = "SUCCEEDED"
	NotFound  Result = "NOT_FOUND"
	Forbidden Result = "FORBIDDEN"
	Failed    Result = "FAILED"
)

// Outcome records what happened to one listing. StatusCode is 0 when no
// HTTP status was available (dry-run, or transport-level failure).
type Outcome struct {
	ListingID  string
	Title      string
	Mode       Mode
	Result     Result
	StatusCode int
}

// Flagger submits the moderation flag for one listing id and reports the
// HTTP status. *reverb.Client satisfies this.
type Flagger interface {
	FlagListing(ctx context.Context, id string) (int, error)
}

type Options struct {
	Mode Mode
	// Delay is the fixed pacing sleep between items.
	Delay time.Duration
}

// Run processes every listing in id order and returns one Outcome per
// listing processed. No per-item failure stops the batch. Cancelling ctx
// stops between items and returns the partial outcomes collected so far.
func Run(ctx context.Context, api Flagger, listings []reverb.Listing, opts Options) []Outcome {
	sorted := make([]reverb.Listing, len(listings))
	copy(sorted, listings)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	var outcomes []Outcome
	for i, l := range sorted {
		select {
		case <-ctx.Done():
			utils.Log.Warn("run interrupted, returning partial results")
			return outcomes
		default:
		}

		outcomes = append(outcomes, flagOne(ctx, api, l, opts.Mode))

		if i < len(sorted)-1 && opts.Delay > 0 {
			select {
			case <-ctx.Done():
				utils.Log.Warn("run interrupted, returning partial results")
				return outcomes
			case <-time.After(opts.Delay):
			}
		}
	}

	return outcomes
}

func flagOne(ctx context.Context, api Flagger, l reverb.Listing, mode Mode) Outcome {
	out := Outcome{ListingID: l.ID, Title: l.Title, Mode: mode}

	if mode == DryRun {
		out.Result = Previewed
		return out
	}

	status, err := api.FlagListing(ctx, l.ID)
	if err != nil {
		utils.Log.Warn("flagging listing ", l.ID, " failed: ", err)
		out.Result = Failed
		return out
	}

	out.StatusCode = status
	switch status {
	case 200, 201, 204:
		out.Result = Succeeded
	case 404:
		// Already removed, or hidden from this caller.
		out.Result = NotFound
	case 403:
		out.Result = Forbidden
	default:
		out.Result = Failed
	}
	return out
}

// FromIDs wraps manually supplied listing ids so they can feed straight into
// Run. Seed ids bypass discovery and verification entirely; trusting them is
// the operator's call.
func FromIDs(ids []string) []reverb.Listing {
	listings := make([]reverb.Listing, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		listings = append(listings, reverb.Listing{ID: id})
	}
	return listings
}

// Summary aggregates outcome counts for rendering.
type Summary struct {
	Previewed int
	Succeeded int
	NotFound  int
	Forbidden int
	Failed    int
}

func Summarize(outcomes []Outcome) Summary {
	var s Summary
	for _, o := range outcomes {
		switch o.Result {
		case Previewed:
			s.Previewed++
		case Succeeded:
			s.Succeeded++
		case NotFound:
			s.NotFound++
		case Forbidden:
			s.Forbidden++
		case Failed:
			s.Failed++
		}
	}
	return s
}
