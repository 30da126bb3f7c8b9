package scrape

import (
	"context"
	"fmt"
	"io"
	"time"

	"notary-crawler/internal/config"
	"notary-crawler/internal/dedup"
	"notary-crawler/internal/domain"
	"notary-crawler/internal/export"
	"notary-crawler/internal/scrape/notaires"
	"notary-crawler/internal/store"

	"github.com/sirupsen/logrus"
)

type Summary struct {
	Candidates int // records before dedup
	Kept       int // canonical records after dedup
	Rows       int // data rows left in the CSV
	Stats      notaires.Stats
	RunID      int64 // 0 when the archive is disabled
	CSVPath    string
	Elapsed    time.Duration
}

type Options struct {
	Fetcher  notaires.Fetcher       // nil builds an HTTP client from cfg
	Progress func(done, total int) // one call per listing page
}

// RunOnce crawls the directory, deduplicates, writes the CSV and archives
// the run. Nothing is written when the crawl fails.
func RunOnce(ctx context.Context, cfg config.Config, log logrus.FieldLogger, opts Options) (Summary, error) {
	started := time.Now()
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}

	cfg, v := config.NormalizeAndValidate(cfg)
	if !v.OK() {
		return Summary{}, config.Validate(cfg)
	}

	f := opts.Fetcher
	if f == nil {
		f = notaires.NewClient(cfg.Crawl.UserAgent, time.Duration(cfg.Crawl.TimeoutSeconds)*time.Second)
	}
	var copts []notaires.Option
	if opts.Progress != nil {
		copts = append(copts, notaires.WithProgress(opts.Progress))
	}

	res, err := notaires.New(cfg, f, log, copts...).Run(ctx)
	if err != nil {
		return Summary{}, err
	}

	canonical := dedup.Dedupe(res.Notaries, dedup.Options{CaseInsensitive: cfg.Dedup.CaseInsensitive})

	rows, err := export.Export(cfg.Output.CSVPath, canonical)
	if err != nil {
		return Summary{}, fmt.Errorf("export %s: %w", cfg.Output.CSVPath, err)
	}
	log.WithFields(logrus.Fields{"path": cfg.Output.CSVPath, "rows": rows}).Info("[export] csv written")

	sum := Summary{
		Candidates: len(res.Notaries),
		Kept:       len(canonical),
		Rows:       rows,
		Stats:      res.Stats,
		CSVPath:    cfg.Output.CSVPath,
	}

	if cfg.Archive.Enabled {
		id, err := archive(ctx, cfg, sum, started, canonical)
		if err != nil {
			return sum, fmt.Errorf("archive run: %w", err)
		}
		sum.RunID = id
		log.WithFields(logrus.Fields{"run_id": id, "db": cfg.Archive.DBPath}).Info("[archive] run saved")
	}

	sum.Elapsed = time.Since(started)
	return sum, nil
}

func archive(ctx context.Context, cfg config.Config, sum Summary, started time.Time, canonical []domain.Notary) (int64, error) {
	db, err := store.Open(cfg.Archive.DBPath)
	if err != nil {
		return 0, err
	}
	defer db.Close()

	return store.SaveRun(ctx, db.Pool, store.Run{
		StartedAt:  started,
		FinishedAt: time.Now(),
		City:       cfg.Site.City,
		Pages:      sum.Stats.Pages,
		Candidates: sum.Candidates,
		Kept:       sum.Kept,
		Skipped:    sum.Stats.Skipped,
		CSVPath:    sum.CSVPath,
	}, canonical)
}
