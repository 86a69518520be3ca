package lookup

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/illydh/robo-driver/internal/config"
	"github.com/illydh/robo-driver/internal/models"
)

// firstPricedResult returns the first result card that contains a
// visible price node. Unpriced cards ("Coming Soon", "See Price in
// Bag" regions without a price element) are skipped.
func firstPricedResult(html string, sel config.Selectors) (*models.Product, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	var product *models.Product
	doc.Find(sel.ResultCard).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		price := strings.TrimSpace(s.Find(sel.Price).First().Text())
		if price == "" {
			return true
		}
		title := cardTitle(s, sel.Titles)
		if title == "" {
			return true
		}
		product = &models.Product{
			Name:       title,
			Price:      price,
			PriceValue: parsePrice(price),
		}
		if sel.Link != "" {
			product.URL, _ = s.Find(sel.Link).First().Attr("href")
		}
		return false
	})

	if product == nil {
		return nil, ErrNoResults
	}
	return product, nil
}

// findByName scans catalog entries for one whose title equals name
// (case-insensitive) and carries a price.
func findByName(html string, sel config.Selectors, name string) (*models.Product, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	var product *models.Product
	doc.Find(sel.ResultCard).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		title := cardTitle(s, sel.Titles)
		if !strings.EqualFold(title, name) {
			return true
		}
		price := strings.TrimSpace(s.Find(sel.Price).First().Text())
		if price == "" {
			return true
		}
		product = &models.Product{
			Name:       title,
			Price:      price,
			PriceValue: parsePrice(price),
		}
		if sel.Link != "" {
			product.URL, _ = s.Find(sel.Link).First().Attr("href")
		}
		return false
	})

	if product == nil {
		return nil, ErrNoResults
	}
	return product, nil
}

// cardTitle tries each title selector in order and returns the first
// non-empty text.
func cardTitle(s *goquery.Selection, titles []string) string {
	for _, t := range titles {
		if txt := strings.TrimSpace(s.Find(t).First().Text()); txt != "" {
			return txt
		}
	}
	return ""
}

var rePrice = regexp.MustCompile(`[^\d\.]+`)

func parsePrice(priceStr string) float64 {
	val := rePrice.ReplaceAllString(priceStr, "")
	price, _ := strconv.ParseFloat(val, 64)
	return price
}
