package discovery

import "github.com/Ondrosctots/reverbgrd/pkg/reverb"

// Dedupe collapses listings to one entry per id, first seen wins. Titles and
// shop fields are assumed consistent across duplicates, so no field merging
// happens.
func Dedupe(listings []reverb.Listing) []reverb.Listing {
	if len(listings) == 0 {
		return nil
	}

	seen := make(map[string]bool, len(listings))
	unique := make([]reverb.Listing, 0, len(listings))
	for _, l := range listings {
		if seen[l.ID] {
			continue
		}
		seen[l.ID] = true
		unique = append(unique, l)
	}
	return unique
}
