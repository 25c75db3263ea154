package reverb

import (
	"net/url"
	"strconv"
)

// Tier selects which membership check applies to a strategy's results.
// Shop-scoped endpoints get the exact check; global search endpoints return
// unrelated shops whose text happens to contain the slug, so their results
// go through the looser but still target-anchored substring check.
type Tier int

const (
	TierExact Tier = iota
	TierFuzzy
)

// RequestSpec is a strategy's description of one page request, relative to
// the API base. Pure data; the client composes and sends it.
type RequestSpec struct {
	Path  string
	Query url.Values
}

// Strategy describes one way of querying the listings surface for a shop's
// listings. Strategies are stateless and reusable across runs.
type Strategy struct {
	Name         string
	Tier         Tier
	PageSize     int
	BuildRequest func(target ShopTarget, page int) RequestSpec
}

// Strategies is the discovery catalog, ordered most shop-scoped first and
// most permissive last. Adding a strategy means appending a descriptor here;
// the engine and verifier need no changes.
var Strategies = []Strategy{
	{
		Name:     "shop-listings",
		Tier:     TierExact,
		PageSize: 50,
		BuildRequest: func(target ShopTarget, page int) RequestSpec {
			return RequestSpec{
				Path:  "/shops/" + url.PathEscape(target.Slug) + "/listings",
				Query: url.Values{"page": {strconv.Itoa(page)}},
			}
		},
	},
	{
		Name:     "shop-name-search",
		Tier:     TierExact,
		PageSize: 50,
		BuildRequest: func(target ShopTarget, page int) RequestSpec {
			return RequestSpec{
				Path: "/listings",
				Query: url.Values{
					"shop_name": {target.Slug},
					"page":      {strconv.Itoa(page)},
				},
			}
		},
	},
	{
		Name:     "keyword-search",
		Tier:     TierFuzzy,
		PageSize: 50,
		BuildRequest: func(target ShopTarget, page int) RequestSpec {
			return RequestSpec{
				Path: "/listings",
				Query: url.Values{
					"query": {target.Slug},
					"page":  {strconv.Itoa(page)},
				},
			}
		},
	},
	{
		// Listings can be hidden from a caller whose locale doesn't match
		// the seller's shipping regions; the override surfaces them.
		Name:     "all-regions-search",
		Tier:     TierFuzzy,
		PageSize: 50,
		BuildRequest: func(target ShopTarget, page int) RequestSpec {
			return RequestSpec{
				Path: "/listings/all",
				Query: url.Values{
					"query":    {target.Slug},
					"ships_to": {"EVERYWHERE"},
					"page":     {strconv.Itoa(page)},
				},
			}
		},
	},
}
