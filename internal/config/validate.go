package config

import (
	"fmt"
	"net/url"
	"strings"
)

type Validation struct {
	Errors   []string
	Warnings []string
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeAndValidate trims string fields, lowercases the error policy and
// strips a trailing slash from the base URL, then checks the result.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	var out = cfg
	var res Validation

	out.Site.BaseURL = strings.TrimRight(strings.TrimSpace(out.Site.BaseURL), "/")
	out.Site.ListingPath = strings.TrimSpace(out.Site.ListingPath)
	out.Site.City = strings.TrimSpace(out.Site.City)
	out.Site.Lat = strings.TrimSpace(out.Site.Lat)
	out.Site.Lon = strings.TrimSpace(out.Site.Lon)
	out.Crawl.OnFetchError = strings.ToLower(strings.TrimSpace(out.Crawl.OnFetchError))
	out.Output.CSVPath = strings.TrimSpace(out.Output.CSVPath)
	out.Archive.DBPath = strings.TrimSpace(out.Archive.DBPath)

	// site
	u, err := url.Parse(out.Site.BaseURL)
	if out.Site.BaseURL == "" || err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		res.addErr("site.base_url must be an absolute http(s) URL, got %q", out.Site.BaseURL)
	}
	if out.Site.ListingPath == "" {
		res.addErr("site.listing_path is required")
	} else if !strings.HasPrefix(out.Site.ListingPath, "/") {
		res.addErr("site.listing_path must start with '/', got %q", out.Site.ListingPath)
	}
	if out.Site.City == "" {
		res.addWarn("site.city is empty; the directory may return an unfiltered listing.")
	}
	if out.Site.PageNb < 0 {
		res.addErr("site.page_nb must be >= 0")
	} else if out.Site.PageNb > 100 {
		res.addWarn("site.page_nb is %d; pages past the end of the directory return no cards.", out.Site.PageNb)
	}

	// crawl
	if out.Crawl.Concurrency < 1 {
		res.addErr("crawl.concurrency must be >= 1")
	} else if out.Crawl.Concurrency > 64 {
		res.addWarn("crawl.concurrency is very high (%d) and may get the crawler blocked.", out.Crawl.Concurrency)
	}
	switch out.Crawl.OnFetchError {
	case OnErrorAbort, OnErrorSkip:
	default:
		res.addErr("crawl.on_fetch_error must be %q or %q, got %q", OnErrorAbort, OnErrorSkip, out.Crawl.OnFetchError)
	}
	if out.Crawl.TimeoutSeconds < 0 {
		res.addErr("crawl.timeout_seconds must be >= 0")
	}

	// output
	if out.Output.CSVPath == "" {
		res.addErr("output.csv_path is required")
	}
	if out.Archive.Enabled && out.Archive.DBPath == "" {
		res.addErr("archive.db_path is required when archive.enabled=true")
	}

	return out, res
}
