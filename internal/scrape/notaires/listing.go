package notaires

import (
	"fmt"
	"net/url"
	"strings"

	"notary-crawler/internal/config"
	"notary-crawler/internal/scrape/util"

	"github.com/PuerkitoBio/goquery"
)

// Results page selectors.
const (
	selCard     = "article.notary-card.notary-card--notary"
	selCardLink = "a.arrow-link"
)

// ListingURL builds the search results URL for one page index.
func ListingURL(site config.Site, page int) string {
	return fmt.Sprintf("%s%s?location=%s&lat=%s&lon=%s&page=%d",
		strings.TrimRight(site.BaseURL, "/"),
		site.ListingPath,
		url.QueryEscape(site.City),
		url.QueryEscape(site.Lat),
		url.QueryEscape(site.Lon),
		page,
	)
}

// DetailLinks returns the detail page URL of every listing card on a results
// page, query strings dropped and resolved against base. Cards without a
// usable link are skipped and reported in skipped.
func DetailLinks(doc *goquery.Document, base string) (links []string, skipped int) {
	if doc == nil {
		return nil, 0
	}
	doc.Find(selCard).Each(func(_ int, card *goquery.Selection) {
		href, ok := card.Find(selCardLink).First().Attr("href")
		href = util.StripQuery(strings.TrimSpace(href))
		if !ok || href == "" {
			skipped++
			return
		}
		abs, err := util.Resolve(base, href)
		if err != nil {
			skipped++
			return
		}
		links = append(links, abs)
	})
	return links, skipped
}
