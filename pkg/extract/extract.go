// Package extract pulls listing ids straight out of a shop page's HTML.
// It's the fallback seed source for when the API hides a shop's listings
// from the caller entirely.
package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/Ondrosctots/reverbgrd/internal/utils"
	"github.com/Ondrosctots/reverbgrd/pkg/whttp"
)

var itemHrefRe = regexp.MustCompile(`/item/(\d+)`)

// ListingIDs extracts listing ids from shop page HTML. Listing cards carry a
// data-listing-id attribute; when a page variant omits those, ids are pulled
// from /item/<id> links instead. Returned ids are unique, in document order.
func ListingIDs(html string) []string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}

	seen := make(map[string]bool)
	var ids []string
	add := func(id string) {
		if id != "" && !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}

	doc.Find("[data-listing-id]").Each(func(_ int, s *goquery.Selection) {
		id, _ := s.Attr("data-listing-id")
		add(id)
	})

	if len(ids) == 0 {
		doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
			href, _ := s.Attr("href")
			if m := itemHrefRe.FindStringSubmatch(href); m != nil {
				add(m[1])
			}
		})
	}

	return ids
}

// FetchListingIDs downloads a shop page and extracts its listing ids.
func FetchListingIDs(pageURL string) ([]string, error) {
	res, err := whttp.SendHTTPRequest(&whttp.WHTTPReq{
		Method: "GET",
		URL:    pageURL,
	}, nil)
	if err != nil {
		return nil, err
	}

	// The page title is the quickest way to spot having been served a login
	// wall or an error page instead of the shop.
	if res.HTTPTitle != "" {
		utils.Log.Info("Shop page: \"", res.HTTPTitle, "\" (", res.ResponseLength, " chars)")
	}

	return ListingIDs(res.BodyString), nil
}
