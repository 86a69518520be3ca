package cmd

import (
	"fmt"
	"log"
	"strings"

	"github.com/spf13/cobra"

	"github.com/illydh/robo-driver/internal/browser"
	"github.com/illydh/robo-driver/internal/lookup"
)

var lookupCmd = &cobra.Command{
	Use:   "lookup [query]",
	Short: "Search a storefront and report its first priced result",
	Long: `Opens the site's search box, submits the query, and prints the name and
displayed price of the first search result that carries a price.

Examples:
  robo-driver lookup "pegasus"
  robo-driver lookup --site nike "Men's Pegasus"`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		query := strings.Join(args, " ")
		if err := runLookup(query); err != nil {
			log.Fatalf("Lookup failed: %v", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(lookupCmd)
}

func runLookup(query string) error {
	name, site, err := resolveSite("nike")
	if err != nil {
		return err
	}

	b, err := browser.Launch(!headed)
	if err != nil {
		return err
	}
	defer b.MustClose()

	product, err := lookup.Search(b, name, site, query)
	if err != nil {
		return err
	}

	fmt.Println(product.FirstResultMessage())
	recordLookup(product)
	return nil
}
