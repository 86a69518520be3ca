package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultSites(t *testing.T) {
	sites := DefaultSites()

	nike, ok := sites["nike"]
	if !ok {
		t.Fatal("missing built-in 'nike' profile")
	}
	if nike.Flow != FlowSearch {
		t.Errorf("nike flow: expected %q, got %q", FlowSearch, nike.Flow)
	}
	if nike.Selectors.Price == "" || nike.Selectors.ResultCard == "" {
		t.Error("nike profile is missing result selectors")
	}
	if len(nike.Selectors.SearchInputs) == 0 {
		t.Error("nike profile needs at least one search input selector")
	}

	sauce, ok := sites["saucedemo"]
	if !ok {
		t.Fatal("missing built-in 'saucedemo' profile")
	}
	if sauce.Flow != FlowCatalog {
		t.Errorf("saucedemo flow: expected %q, got %q", FlowCatalog, sauce.Flow)
	}
	if sauce.Login == nil || sauce.Login.Username == "" {
		t.Error("saucedemo profile should carry demo login credentials")
	}
}

func TestTimeoutDefaults(t *testing.T) {
	s := &SiteConfig{}
	if got := s.NavTimeout(); got != 20*time.Second {
		t.Errorf("NavTimeout default: expected 20s, got %v", got)
	}
	if got := s.ActionTimeout(); got != 10*time.Second {
		t.Errorf("ActionTimeout default: expected 10s, got %v", got)
	}

	s = &SiteConfig{NavTimeoutMs: 5000, ActionTimeoutMs: 1500}
	if got := s.NavTimeout(); got != 5*time.Second {
		t.Errorf("NavTimeout override: expected 5s, got %v", got)
	}
	if got := s.ActionTimeout(); got != 1500*time.Millisecond {
		t.Errorf("ActionTimeout override: expected 1.5s, got %v", got)
	}
}

func TestLoadSitesMissingFileKeepsDefaults(t *testing.T) {
	sites, err := LoadSites(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("LoadSites on missing file should not error: %v", err)
	}
	if _, ok := sites["nike"]; !ok {
		t.Error("defaults should survive a missing config file")
	}
}

func TestLoadSitesOverride(t *testing.T) {
	const yaml = `
sites:
  bookshop:
    base_url: https://books.example.com/
    flow: search
    nav_timeout_ms: 30000
    selectors:
      search_inputs:
        - "input#search"
      results_wait: ".book"
      result_card: ".book"
      titles:
        - ".book-title"
      price: ".book-price"
  nike:
    base_url: https://nike.example.com/
    flow: search
    selectors:
      result_card: ".card"
      price: ".price"
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatalf("Failed to write temp config: %v", err)
	}

	sites, err := LoadSites(path)
	if err != nil {
		t.Fatalf("LoadSites failed: %v", err)
	}

	book, ok := sites["bookshop"]
	if !ok {
		t.Fatal("new profile from file not loaded")
	}
	if book.BaseURL != "https://books.example.com/" {
		t.Errorf("bookshop base_url wrong: got '%s'", book.BaseURL)
	}
	if book.NavTimeout() != 30*time.Second {
		t.Errorf("bookshop nav timeout wrong: got %v", book.NavTimeout())
	}

	// File entries replace built-ins wholesale.
	nike := sites["nike"]
	if nike.BaseURL != "https://nike.example.com/" {
		t.Errorf("nike override not applied: got '%s'", nike.BaseURL)
	}
	if nike.Selectors.ResultCard != ".card" {
		t.Errorf("nike override selectors not applied: got '%s'", nike.Selectors.ResultCard)
	}

	// Untouched built-ins stay available.
	if _, ok := sites["saucedemo"]; !ok {
		t.Error("saucedemo default should still be present")
	}
}

func TestGetAppConfigDefaults(t *testing.T) {
	t.Setenv("DB_PATH", "")
	t.Setenv("CONFIG_PATH", "")

	cfg, err := GetAppConfig()
	if err != nil {
		t.Fatalf("GetAppConfig failed: %v", err)
	}
	if cfg.DBPath != "./local-data/lookups.db" {
		t.Errorf("DBPath default wrong: got '%s'", cfg.DBPath)
	}
	if cfg.ConfigPath != "config.yaml" {
		t.Errorf("ConfigPath default wrong: got '%s'", cfg.ConfigPath)
	}

	t.Setenv("DB_PATH", "/tmp/x.db")
	cfg, _ = GetAppConfig()
	if cfg.DBPath != "/tmp/x.db" {
		t.Errorf("DB_PATH env not honored: got '%s'", cfg.DBPath)
	}
}
