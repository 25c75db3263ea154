package discovery

import (
	"strings"

	"github.com/Ondrosctots/reverbgrd/pkg/reverb"
)

// Accept decides whether a candidate listing genuinely belongs to the target
// shop. Exact-tier strategies already scope by shop, so equality merely
// guards against API inconsistency. Fuzzy-tier strategies search globally and
// substring-match unrelated shops, so their candidates must still anchor the
// slug inside the candidate's own shop identity. Note the substring check can
// admit false positives when the slug is a common word; that looseness is
// deliberate, exact slugs drift and a stricter rule loses reachability.
func Accept(candidate reverb.Listing, target reverb.ShopTarget, tier reverb.Tier) bool {
	slug := strings.ToLower(target.Slug)
	if slug == "" {
		return false
	}

	if tier == reverb.TierExact {
		return strings.ToLower(candidate.ShopSlug) == slug
	}

	return strings.Contains(strings.ToLower(candidate.ShopSlug), slug) ||
		strings.Contains(strings.ToLower(candidate.ShopName), slug)
}
