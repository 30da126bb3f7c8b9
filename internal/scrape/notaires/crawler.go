package notaires

import (
	"context"
	"fmt"
	"io"

	"notary-crawler/internal/config"
	"notary-crawler/internal/domain"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

type Stats struct {
	Pages   int // listing pages crawled
	Links   int // detail links found
	Fetched int // detail pages turned into records
	Skipped int // pages dropped under the skip policy
}

type Result struct {
	Notaries []domain.Notary // completion order, not deterministic
	Stats    Stats
}

type Option func(*Crawler)

// WithProgress registers fn to be called once per listing page.
func WithProgress(fn func(done, total int)) Option {
	return func(c *Crawler) { c.progress = fn }
}

// Crawler walks listing pages [0, page_nb] in order and fetches each page's
// detail links through a bounded task group.
type Crawler struct {
	site        config.Site
	concurrency int
	skipErrors  bool
	fetcher     Fetcher
	log         logrus.FieldLogger
	progress    func(done, total int)
}

func New(cfg config.Config, f Fetcher, log logrus.FieldLogger, opts ...Option) *Crawler {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	c := &Crawler{
		site:        cfg.Site,
		concurrency: max(cfg.Crawl.Concurrency, 1),
		skipErrors:  cfg.Crawl.OnFetchError == config.OnErrorSkip,
		fetcher:     f,
		log:         log,
		progress:    func(int, int) {},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Run crawls every listing page. Under the abort policy the first fetch
// failure ends the run with that error and no records. A canceled ctx ends
// the run with ctx.Err() under either policy.
func (c *Crawler) Run(ctx context.Context) (Result, error) {
	var res Result
	total := c.site.PageNb + 1

	for page := 0; page <= c.site.PageNb; page++ {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		notaries, err := c.crawlPage(ctx, page, &res.Stats)
		if err != nil {
			return Result{}, fmt.Errorf("crawl page %d: %w", page, err)
		}
		res.Notaries = append(res.Notaries, notaries...)
		res.Stats.Pages++
		c.progress(page+1, total)
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	c.log.WithFields(logrus.Fields{
		"pages":   res.Stats.Pages,
		"links":   res.Stats.Links,
		"fetched": res.Stats.Fetched,
		"skipped": res.Stats.Skipped,
	}).Info("[crawl] done")
	return res, nil
}

func (c *Crawler) crawlPage(ctx context.Context, page int, st *Stats) ([]domain.Notary, error) {
	listURL := ListingURL(c.site, page)

	doc, err := c.fetcher.Fetch(ctx, listURL)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if !c.skipErrors {
			return nil, err
		}
		st.Skipped++
		c.log.WithFields(logrus.Fields{"page": page, "url": listURL, "err": err}).Warn("[crawl] listing page skipped")
		return nil, nil
	}

	links, bad := DetailLinks(doc, c.site.BaseURL)
	if bad > 0 {
		c.log.WithFields(logrus.Fields{"page": page, "cards": bad}).Debug("[crawl] cards without detail link")
	}
	st.Links += len(links)
	c.log.WithFields(logrus.Fields{"page": page, "links": len(links)}).Debug("[crawl] listing page parsed")

	return c.fetchDetails(ctx, links, st)
}

type detailResult struct {
	URL    string
	Notary domain.Notary
	Err    error
}

func (c *Crawler) fetchDetails(ctx context.Context, links []string, st *Stats) ([]domain.Notary, error) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)

	// sized to the batch so senders never block on the collector
	results := make(chan detailResult, len(links))

	for _, link := range links {
		g.Go(func() error {
			doc, err := c.fetcher.Fetch(gctx, link)
			if err != nil {
				results <- detailResult{URL: link, Err: err}
				// cancellation is never a skippable fetch failure
				if c.skipErrors && ctx.Err() == nil {
					return nil
				}
				return err
			}
			results <- detailResult{URL: link, Notary: Extract(doc)}
			return nil
		})
	}

	err := g.Wait()
	close(results)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if err != nil {
		return nil, err
	}

	out := make([]domain.Notary, 0, len(links))
	for r := range results {
		if r.Err != nil {
			st.Skipped++
			c.log.WithFields(logrus.Fields{"url": r.URL, "err": r.Err}).Warn("[crawl] detail page skipped")
			continue
		}
		st.Fetched++
		out = append(out, r.Notary)
	}
	return out, nil
}
