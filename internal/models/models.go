package models

import "fmt"

// Product holds the name and displayed price extracted for one lookup.
// Price keeps the text exactly as the storefront renders it ("$29.99",
// "$220"); PriceValue is the parsed numeric value for storage.
type Product struct {
	Query      string
	Site       string
	Name       string
	Price      string
	PriceValue float64
	URL        string
}

// FoundMessage is the success line for a direct catalog lookup.
func (p *Product) FoundMessage() string {
	return fmt.Sprintf("Success! Product %q found at price: %s", p.Name, p.Price)
}

// FirstResultMessage is the success line for a search-flow lookup.
func (p *Product) FirstResultMessage() string {
	return fmt.Sprintf("Success! First result for %q is %q priced at %s", p.Query, p.Name, p.Price)
}
