package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Validate(Default()); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestLoadKeepsDefaultsForMissingKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	body := `
site:
  city: paris
  lat: "48.857"
  lon: "2.352"
  page_nb: 3
crawl:
  on_fetch_error: skip
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Site.City != "paris" || cfg.Site.PageNb != 3 {
		t.Fatalf("site not loaded: %+v", cfg.Site)
	}
	if cfg.Site.BaseURL != "https://www.notaires.fr" {
		t.Fatalf("base_url default lost: %q", cfg.Site.BaseURL)
	}
	if cfg.Crawl.Concurrency != 8 || cfg.Crawl.OnFetchError != OnErrorSkip {
		t.Fatalf("crawl not merged: %+v", cfg.Crawl)
	}
	if !cfg.Archive.Enabled {
		t.Fatalf("archive default lost")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestNormalizeAndValidate(t *testing.T) {
	cfg := Default()
	cfg.Site.BaseURL = " https://www.notaires.fr/ "
	cfg.Crawl.OnFetchError = " SKIP "

	out, v := NormalizeAndValidate(cfg)
	if !v.OK() {
		t.Fatalf("unexpected errors: %v", v.Errors)
	}
	if out.Site.BaseURL != "https://www.notaires.fr" {
		t.Fatalf("base_url not normalized: %q", out.Site.BaseURL)
	}
	if out.Crawl.OnFetchError != OnErrorSkip {
		t.Fatalf("policy not normalized: %q", out.Crawl.OnFetchError)
	}
}

func TestValidateCollectsAllErrors(t *testing.T) {
	cfg := Default()
	cfg.Site.BaseURL = "notaires.fr"
	cfg.Site.PageNb = -1
	cfg.Crawl.Concurrency = 0
	cfg.Crawl.OnFetchError = "retry"
	cfg.Output.CSVPath = ""
	cfg.Archive.DBPath = ""

	_, v := NormalizeAndValidate(cfg)
	if len(v.Errors) != 6 {
		t.Fatalf("want 6 errors, got %d: %v", len(v.Errors), v.Errors)
	}

	err := Validate(cfg)
	if err == nil || !strings.Contains(err.Error(), "crawl.on_fetch_error") {
		t.Fatalf("Validate err = %v", err)
	}
}

func TestValidateWarnings(t *testing.T) {
	cfg := Default()
	cfg.Crawl.Concurrency = 200
	cfg.Site.City = ""

	_, v := NormalizeAndValidate(cfg)
	if !v.OK() {
		t.Fatalf("warnings must not fail validation: %v", v.Errors)
	}
	if len(v.Warnings) != 2 {
		t.Fatalf("want 2 warnings, got %v", v.Warnings)
	}
}

func TestEnsureUserConfigWritesDefaultOnce(t *testing.T) {
	dir := t.TempDir()

	path, err := EnsureUserConfig(dir)
	if err != nil {
		t.Fatalf("EnsureUserConfig: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load bootstrapped: %v", err)
	}
	if cfg.Site.City != "lyon" {
		t.Fatalf("unexpected city %q", cfg.Site.City)
	}

	cfg.Site.City = "marseille"
	if err := SaveAtomic(path, cfg); err != nil {
		t.Fatalf("SaveAtomic: %v", err)
	}
	if _, err := os.Stat(path + ".bak"); err != nil {
		t.Fatalf("backup not kept: %v", err)
	}

	again, err := EnsureUserConfig(dir)
	if err != nil || again != path {
		t.Fatalf("second EnsureUserConfig = %q, %v", again, err)
	}
	cfg, _ = Load(path)
	if cfg.Site.City != "marseille" {
		t.Fatalf("existing config overwritten: %q", cfg.Site.City)
	}
}

func TestSaveAtomicRejectsInvalid(t *testing.T) {
	cfg := Default()
	cfg.Crawl.Concurrency = 0
	if err := SaveAtomic(filepath.Join(t.TempDir(), "config.yml"), cfg); err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestOverlayEnv(t *testing.T) {
	env := map[string]string{
		"NOTARIES_CITY":    "bordeaux",
		"NOTARIES_PAGE_NB": "2",
		"NOTARIES_OUTPUT":  "bordeaux.csv",
	}
	cfg := Default()
	if err := OverlayEnv(&cfg, func(k string) string { return env[k] }); err != nil {
		t.Fatalf("OverlayEnv: %v", err)
	}
	if cfg.Site.City != "bordeaux" || cfg.Site.PageNb != 2 || cfg.Output.CSVPath != "bordeaux.csv" {
		t.Fatalf("overlay not applied: %+v %+v", cfg.Site, cfg.Output)
	}
	if cfg.Site.Lat != "45.758" {
		t.Fatalf("unset var overrode lat: %q", cfg.Site.Lat)
	}

	env["NOTARIES_PAGE_NB"] = "ten"
	if err := OverlayEnv(&cfg, func(k string) string { return env[k] }); err == nil {
		t.Fatalf("expected error for bad page_nb")
	}
}
