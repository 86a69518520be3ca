package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Flow kinds for a site profile.
const (
	FlowSearch  = "search"  // type a query into the site search box
	FlowCatalog = "catalog" // scan a fixed catalog page for a named item
)

// Default timeouts, in milliseconds. Site profiles can override both.
const (
	defaultNavTimeoutMs    = 20000
	defaultActionTimeoutMs = 10000
)

// AppConfig holds infrastructure config from standard env vars.
type AppConfig struct {
	DBPath     string
	ConfigPath string // Path to the YAML site-profile file
}

// SiteConfig holds everything needed to drive one storefront.
type SiteConfig struct {
	BaseURL         string    `yaml:"base_url"`
	Flow            string    `yaml:"flow"`
	NavTimeoutMs    int       `yaml:"nav_timeout_ms"`
	ActionTimeoutMs int       `yaml:"action_timeout_ms"`
	Login           *Login    `yaml:"login,omitempty"`
	Selectors       Selectors `yaml:"selectors"`
}

// Login describes a demo-store login form. Only catalog sites that
// gate their inventory behind a login need it.
type Login struct {
	UsernameInput string `yaml:"username_input"`
	PasswordInput string `yaml:"password_input"`
	SubmitButton  string `yaml:"submit_button"`
	Username      string `yaml:"username"`
	Password      string `yaml:"password"`
}

// Selectors are the CSS hooks for one storefront's markup. Fallback
// chains (cookie buttons, search inputs, titles) are tried in order.
type Selectors struct {
	CookieButtons []string `yaml:"cookie_buttons"`
	SearchOpen    string   `yaml:"search_open"`
	SearchInputs  []string `yaml:"search_inputs"`
	ResultsWait   string   `yaml:"results_wait"`
	ResultCard    string   `yaml:"result_card"`
	Titles        []string `yaml:"titles"`
	Price         string   `yaml:"price"`
	Link          string   `yaml:"link"`
}

// NavTimeout is the navigation deadline for the profile.
func (s *SiteConfig) NavTimeout() time.Duration {
	if s.NavTimeoutMs <= 0 {
		return defaultNavTimeoutMs * time.Millisecond
	}
	return time.Duration(s.NavTimeoutMs) * time.Millisecond
}

// ActionTimeout is the deadline for individual interactions (clicks,
// element waits).
func (s *SiteConfig) ActionTimeout() time.Duration {
	if s.ActionTimeoutMs <= 0 {
		return defaultActionTimeoutMs * time.Millisecond
	}
	return time.Duration(s.ActionTimeoutMs) * time.Millisecond
}

// GetAppConfig reads basic infrastructure settings from environment variables.
func GetAppConfig() (AppConfig, error) {
	dbPath := os.Getenv("DB_PATH")
	configPath := os.Getenv("CONFIG_PATH")

	// Set defaults if not provided
	if dbPath == "" {
		dbPath = "./local-data/lookups.db"
	}
	if configPath == "" {
		configPath = "config.yaml"
	}

	return AppConfig{
		DBPath:     dbPath,
		ConfigPath: configPath,
	}, nil
}

type sitesFile struct {
	Sites map[string]*SiteConfig `yaml:"sites"`
}

// LoadSites returns the built-in site profiles merged with any profiles
// from the YAML file at path. A missing file is fine; the built-ins
// cover the two reference storefronts.
func LoadSites(path string) (map[string]*SiteConfig, error) {
	sites := DefaultSites()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return sites, nil
		}
		return nil, fmt.Errorf("failed to read config file at '%s': %w", path, err)
	}

	var f sitesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}
	for name, site := range f.Sites {
		sites[name] = site
	}
	return sites, nil
}

// DefaultSites returns the built-in profiles: the Nike search flow and
// the SauceDemo catalog flow.
func DefaultSites() map[string]*SiteConfig {
	return map[string]*SiteConfig{
		"nike": {
			BaseURL: "https://www.nike.com/",
			Flow:    FlowSearch,
			Selectors: Selectors{
				CookieButtons: []string{
					"button[data-testid='dialog-accept-button']",
					"#hf_cookie_text_cookieAccept",
					"#onetrust-accept-btn-handler",
				},
				SearchOpen: "button[aria-label='Open Search Modal']",
				SearchInputs: []string{
					"input[type='search']",
					"input[aria-label='Search Products']",
					"#gn-search-input",
				},
				ResultsWait: "[data-testid='product-card']",
				ResultCard:  "[data-testid='product-card']",
				Titles: []string{
					"[data-testid='product-card__title']",
					"h3",
					"h2",
				},
				Price: "[data-testid='product-price']",
				Link:  "a[data-testid='product-card__link-overlay']",
			},
		},
		"saucedemo": {
			BaseURL: "https://www.saucedemo.com/",
			Flow:    FlowCatalog,
			Login: &Login{
				UsernameInput: "#user-name",
				PasswordInput: "#password",
				SubmitButton:  "#login-button",
				Username:      "standard_user",
				Password:      "secret_sauce",
			},
			Selectors: Selectors{
				ResultsWait: ".inventory_list",
				ResultCard:  ".inventory_item",
				Titles:      []string{".inventory_item_name"},
				Price:       ".inventory_item_price",
				Link:        "a",
			},
		},
	}
}
