// Package discovery locates every listing belonging to a target shop by
// trying a prioritized catalog of query strategies against the listings API,
// verifying shop membership of each candidate, and deduplicating the result.
package discovery

import (
	"time"

	"github.com/Ondrosctots/reverbgrd/internal/utils"
	"github.com/Ondrosctots/reverbgrd/pkg/reverb"
)

// Searcher runs one page of one strategy. *reverb.Client satisfies this.
type Searcher interface {
	SearchPage(s reverb.Strategy, target reverb.ShopTarget, page int) ([]reverb.Listing, error)
}

type Options struct {
	// Catalog overrides the strategy list; nil means reverb.Strategies.
	Catalog []reverb.Strategy
	// Delay is the pacing sleep between discovery requests.
	Delay time.Duration
	// MaxBarren abandons discovery after this many consecutive strategies
	// whose pages yielded zero verified listings. 0 means try the whole
	// catalog.
	MaxBarren int
}

// Discover tries each strategy in catalog order and returns the verified,
// deduplicated listings of the first strategy that yields any. An empty
// result means discovery exhausted the catalog, which is a reported
// condition, not an error: the backend may legitimately hide listings from
// this caller. Result ordering is not guaranteed.
func Discover(api Searcher, target reverb.ShopTarget, opts Options) []reverb.Listing {
	catalog := opts.Catalog
	if catalog == nil {
		catalog = reverb.Strategies
	}

	barren := 0
	paced := false
	for _, strat := range catalog {
		accepted := runStrategy(api, strat, target, opts.Delay, &paced)
		if len(accepted) > 0 {
			// First strategy with results wins; skipping the rest trades
			// completeness for call volume.
			utils.Log.Debug("strategy ", strat.Name, " accepted ", len(accepted), " listings")
			return Dedupe(accepted)
		}

		barren++
		if opts.MaxBarren > 0 && barren >= opts.MaxBarren {
			utils.Log.Warn("abandoning discovery after ", barren, " strategies without a match")
			break
		}
	}

	return nil
}

// runStrategy paginates one strategy until a short page. A failed request
// makes the whole strategy produce nothing: listings accepted from earlier
// pages are discarded, because a truncated set must not win over a fallback
// strategy that could still see the full one. paced tracks whether any
// request has gone out yet, so every request after the first is delayed, the
// first page of a follow-up strategy included.
func runStrategy(api Searcher, strat reverb.Strategy, target reverb.ShopTarget, delay time.Duration, paced *bool) []reverb.Listing {
	var accepted []reverb.Listing

	for page := 1; ; page++ {
		if *paced && delay > 0 {
			time.Sleep(delay)
		}
		*paced = true

		items, err := api.SearchPage(strat, target, page)
		if err != nil {
			utils.Log.Warn("strategy ", strat.Name, " page ", page, " failed: ", err, "; strategy produced nothing")
			return nil
		}

		for _, item := range items {
			if Accept(item, target, strat.Tier) {
				accepted = append(accepted, item)
			}
		}

		// A page shorter than requested is the last one.
		if len(items) < strat.PageSize {
			break
		}
	}

	return accepted
}
