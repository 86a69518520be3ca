package cmd

import (
	"fmt"
	"log"
	"strings"

	"github.com/spf13/cobra"

	"github.com/illydh/robo-driver/internal/browser"
	"github.com/illydh/robo-driver/internal/lookup"
)

var findCmd = &cobra.Command{
	Use:   "find [product name]",
	Short: "Look up a named product on a catalog page",
	Long: `Navigates straight to the site's catalog (logging in first when the
profile requires it), locates the entry with the given name, and prints
its displayed price.

Examples:
  robo-driver find "Sauce Labs Backpack"
  robo-driver find --site saucedemo "Sauce Labs Bike Light"`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		name := strings.Join(args, " ")
		if err := runFind(name); err != nil {
			log.Fatalf("Lookup failed: %v", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(findCmd)
}

func runFind(productName string) error {
	name, site, err := resolveSite("saucedemo")
	if err != nil {
		return err
	}

	b, err := browser.Launch(!headed)
	if err != nil {
		return err
	}
	defer b.MustClose()

	product, err := lookup.Find(b, name, site, productName)
	if err != nil {
		return err
	}

	fmt.Println(product.FoundMessage())
	recordLookup(product)
	return nil
}
