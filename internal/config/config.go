// internal/config/config.go
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const (
	OnErrorAbort = "abort"
	OnErrorSkip  = "skip"
)

type Site struct {
	BaseURL     string `yaml:"base_url"`
	ListingPath string `yaml:"listing_path"`
	City        string `yaml:"city"`
	Lat         string `yaml:"lat"`
	Lon         string `yaml:"lon"`
	PageNb      int    `yaml:"page_nb"` // last page index, inclusive
}

type Config struct {
	Site Site `yaml:"site"`

	Crawl struct {
		Concurrency    int    `yaml:"concurrency"`
		OnFetchError   string `yaml:"on_fetch_error"` // abort | skip
		UserAgent      string `yaml:"user_agent"`
		TimeoutSeconds int    `yaml:"timeout_seconds"` // 0 = transport default
	} `yaml:"crawl"`

	Dedup struct {
		CaseInsensitive bool `yaml:"case_insensitive"`
	} `yaml:"dedup"`

	Output struct {
		CSVPath string `yaml:"csv_path"`
	} `yaml:"output"`

	Archive struct {
		Enabled bool   `yaml:"enabled"`
		DBPath  string `yaml:"db_path"`
	} `yaml:"archive"`
}

// Default targets the notaires.fr directory for Lyon.
func Default() Config {
	var cfg Config
	cfg.Site = Site{
		BaseURL:     "https://www.notaires.fr",
		ListingPath: "/fr/directory/notaries",
		City:        "lyon",
		Lat:         "45.758",
		Lon:         "4.835",
		PageNb:      10,
	}
	cfg.Crawl.Concurrency = 8
	cfg.Crawl.OnFetchError = OnErrorAbort
	cfg.Crawl.UserAgent = "notary-crawler/1.0 (+local)"
	cfg.Output.CSVPath = "notaries.csv"
	cfg.Archive.Enabled = true
	cfg.Archive.DBPath = "notaries.db"
	return cfg
}

// Load reads path on top of Default, so a partial file keeps the defaults
// for anything it leaves out.
func Load(path string) (Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}
