package lookup

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/input"

	"github.com/illydh/robo-driver/internal/browser"
	"github.com/illydh/robo-driver/internal/config"
	"github.com/illydh/robo-driver/internal/models"
)

// Logs go to stderr so stdout carries nothing but the success line.
var logger = log.New(os.Stderr, "LOOKUP: ", log.LstdFlags|log.Lshortfile)

// ErrNoResults reports that the page loaded but no entry matched the
// query with a visible price.
var ErrNoResults = errors.New("no matching result with a visible price")

const (
	clickAttempts  = 3
	clickBaseDelay = 500 * time.Millisecond
	clickMaxDelay  = 4 * time.Second

	// Deadline for probing optional elements (banners, selector
	// fallbacks). Kept short so absent elements fail fast.
	probeTimeout = 2 * time.Second
)

// Search drives the site's search box with the query and returns the
// first result that carries a price.
func Search(b *rod.Browser, siteName string, site *config.SiteConfig, query string) (*models.Product, error) {
	page, err := browser.NewPage(b)
	if err != nil {
		return nil, err
	}
	defer page.Close()

	if err := navigate(page, site); err != nil {
		return nil, err
	}
	dismissBanners(page, site)

	box, err := openSearch(page, site)
	if err != nil {
		return nil, err
	}

	logger.Printf("Submitting query: %s", query)
	if err := rod.Try(func() {
		box.MustInput(query)
		box.MustType(input.Enter)
	}); err != nil {
		return nil, fmt.Errorf("failed to submit query: %w", err)
	}

	action := site.ActionTimeout()
	if err := rod.Try(func() {
		page.Timeout(action).MustWaitElementsMoreThan(site.Selectors.ResultCard, 0)
		page.Timeout(action).MustElement(site.Selectors.Price)
	}); err != nil {
		return nil, fmt.Errorf("search results never appeared: %w", err)
	}

	html, err := page.HTML()
	if err != nil {
		return nil, fmt.Errorf("failed to read results page: %w", err)
	}

	product, err := firstPricedResult(html, site.Selectors)
	if err != nil {
		return nil, err
	}
	product.Query = query
	product.Site = siteName
	return product, nil
}

// Find scans the site's catalog page for an entry named name and
// returns its displayed price.
func Find(b *rod.Browser, siteName string, site *config.SiteConfig, name string) (*models.Product, error) {
	page, err := browser.NewPage(b)
	if err != nil {
		return nil, err
	}
	defer page.Close()

	if err := navigate(page, site); err != nil {
		return nil, err
	}
	dismissBanners(page, site)

	if site.Login != nil {
		if err := login(page, site); err != nil {
			return nil, err
		}
	}

	if err := rod.Try(func() {
		page.Timeout(site.ActionTimeout()).MustElement(site.Selectors.ResultsWait)
	}); err != nil {
		return nil, fmt.Errorf("catalog never appeared: %w", err)
	}

	html, err := page.HTML()
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog page: %w", err)
	}

	product, err := findByName(html, site.Selectors, name)
	if err != nil {
		return nil, err
	}
	product.Query = name
	product.Site = siteName
	return product, nil
}

func navigate(page *rod.Page, site *config.SiteConfig) error {
	logger.Printf("Navigating to: %s", site.BaseURL)
	nav := site.NavTimeout()
	if err := rod.Try(func() {
		page.Timeout(nav).MustNavigate(site.BaseURL)
		page.Timeout(nav).MustWaitStable()
	}); err != nil {
		return fmt.Errorf("navigation to %s failed: %w", site.BaseURL, err)
	}
	return nil
}

// dismissBanners clicks through cookie and consent overlays when
// present. A missing banner is not an error.
func dismissBanners(page *rod.Page, site *config.SiteConfig) {
	for _, sel := range site.Selectors.CookieButtons {
		err := rod.Try(func() {
			page.Timeout(probeTimeout).MustElement(sel).MustClick()
			page.Timeout(site.ActionTimeout()).MustWaitStable()
		})
		if err != nil {
			continue
		}
		logger.Printf("Dismissed banner: %s", sel)
	}
}

// openSearch reveals the site's search box and returns the input to
// type into. The toggle click is best-effort since some storefronts
// keep the input permanently visible.
func openSearch(page *rod.Page, site *config.SiteConfig) (*rod.Element, error) {
	sel := site.Selectors

	if sel.SearchOpen != "" {
		if err := clickWithRetry(page, sel.SearchOpen); err != nil {
			logger.Printf("Search toggle not clickable (continuing): %v", err)
		}
	}

	for _, s := range sel.SearchInputs {
		var el *rod.Element
		err := rod.Try(func() {
			el = page.Timeout(probeTimeout).MustElement(s)
			el.MustWaitVisible()
		})
		if err == nil {
			return el, nil
		}
	}
	return nil, fmt.Errorf("could not find a search input on %s", site.BaseURL)
}

// login fills the demo-store login form and submits it.
func login(page *rod.Page, site *config.SiteConfig) error {
	l := site.Login
	action := site.ActionTimeout()

	if err := rod.Try(func() {
		page.Timeout(action).MustElement(l.UsernameInput).MustInput(l.Username)
		page.Timeout(action).MustElement(l.PasswordInput).MustInput(l.Password)
	}); err != nil {
		return fmt.Errorf("login form not usable: %w", err)
	}
	if err := clickWithRetry(page, l.SubmitButton); err != nil {
		return fmt.Errorf("login failed: %w", err)
	}
	_ = rod.Try(func() {
		page.Timeout(action).MustWaitStable()
	})
	return nil
}

// clickWithRetry clicks the element behind sel, retrying transient
// failures with exponential backoff (500ms, 1s, 2s, capped at 4s).
func clickWithRetry(page *rod.Page, sel string) error {
	delay := clickBaseDelay
	var lastErr error
	for attempt := 0; attempt < clickAttempts; attempt++ {
		if attempt > 0 {
			time.Sleep(delay)
			delay *= 2
			if delay > clickMaxDelay {
				delay = clickMaxDelay
			}
		}
		lastErr = rod.Try(func() {
			el := page.Timeout(probeTimeout).MustElement(sel)
			el.MustWaitVisible()
			el.MustClick()
		})
		if lastErr == nil {
			return nil
		}
	}
	return fmt.Errorf("click %s failed after %d attempts: %w", sel, clickAttempts, lastErr)
}
