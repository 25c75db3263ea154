package reverb

import (
	"context"
	"fmt"
	"strconv"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/tidwall/gjson"

	"github.com/Ondrosctots/reverbgrd/pkg/whttp"
)

const (
	APIBase = "https://api.reverb.com/api"

	FlagReason      = "scam"
	FlagDescription = "Reporting fraudulent listings identified via shop scan."
)

// ShopTarget identifies the storefront under investigation for one run.
type ShopTarget struct {
	Slug string
}

// Listing is a single marketplace item as returned by a search endpoint.
// Fields the response omitted are empty strings, never an error.
type Listing struct {
	ID       string
	Title    string
	ShopSlug string
	ShopName string
}

// Client talks to the marketplace listings API with hal+json content
// negotiation and a caller-supplied bearer credential.
type Client struct {
	BaseURL string
	Token   string
	HTTP    *retryablehttp.Client
}

func NewClient(token string) *Client {
	return &Client{
		BaseURL: APIBase,
		Token:   token,
		HTTP:    whttp.GetDefaultClient(),
	}
}

func (c *Client) headers() []whttp.WHTTPHeader {
	return []whttp.WHTTPHeader{
		{Name: "Authorization", Value: "Bearer " + c.Token},
		{Name: "Content-Type", Value: "application/hal+json"},
		{Name: "Accept", Value: "application/hal+json"},
		{Name: "Accept-Version", Value: "3.0"},
	}
}

// SearchPage runs one page of a discovery strategy and returns the parsed
// candidates. A non-200 status is an error; the caller decides whether that
// kills the strategy or the run.
func (c *Client) SearchPage(s Strategy, target ShopTarget, page int) ([]Listing, error) {
	spec := s.BuildRequest(target, page)
	spec.Query.Set("per_page", strconv.Itoa(s.PageSize))

	res, err := whttp.SendHTTPRequest(
		&whttp.WHTTPReq{
			Method:  "GET",
			URL:     c.BaseURL + spec.Path + "?" + spec.Query.Encode(),
			Headers: c.headers(),
		}, c.HTTP)
	if err != nil {
		return nil, err
	}

	if res.StatusCode != 200 {
		return nil, fmt.Errorf("%s page %d: status %d", s.Name, page, res.StatusCode)
	}

	return parseListings(res.BodyString), nil
}

// FlagListing submits the moderation flag for a listing id and returns the
// HTTP status code. A transport failure returns 0 and the error; any status
// the server produced is reported as-is for the caller to classify.
func (c *Client) FlagListing(ctx context.Context, id string) (int, error) {
	payload := fmt.Sprintf(`{"reason":%q,"description":%q}`, FlagReason, FlagDescription)

	res, err := whttp.SendHTTPRequest(
		&whttp.WHTTPReq{
			Method:  "POST",
			URL:     c.BaseURL + "/listings/" + id + "/flags",
			Body:    payload,
			Headers: c.headers(),
			Context: ctx,
		}, c.HTTP)
	if err != nil {
		return 0, err
	}

	return res.StatusCode, nil
}

// parseListings is the parse-with-defaults boundary over the hypermedia
// response. The body shape is informal: fields are nested, optional or
// occasionally missing, so each one degrades to "" instead of failing the
// page. Items without an id are dropped.
func parseListings(body string) []Listing {
	var listings []Listing

	gjson.Get(body, "listings").ForEach(func(_, item gjson.Result) bool {
		id := item.Get("id").String()
		if id == "" {
			return true
		}

		slug := item.Get("shop.slug").String()
		if slug == "" {
			slug = item.Get("shop_slug").String()
		}
		name := item.Get("shop.name").String()
		if name == "" {
			name = item.Get("shop_name").String()
		}

		listings = append(listings, Listing{
			ID:       id,
			Title:    item.Get("title").String(),
			ShopSlug: slug,
			ShopName: name,
		})
		return true
	})

	return listings
}
