package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/illydh/robo-driver/internal/config"
	"github.com/illydh/robo-driver/internal/db"
	"github.com/illydh/robo-driver/internal/models"
)

var (
	headed     bool
	configFile string
	siteName   string
)

var rootCmd = &cobra.Command{
	Use:   "robo-driver",
	Short: "Drive a real browser to look up a product's price",
	Long: `robo-driver launches a Chromium instance, performs one lookup against a
configured storefront, and prints the product name and its displayed price.

Site profiles (selectors, timeouts, login) are built in for the reference
storefronts and can be overridden with a YAML file (--config or CONFIG_PATH).`,
}

// Execute runs the root command. Cobra already printed the error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&headed, "headed", false, "Run the browser with a visible window")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Path to a site-profile YAML file")
	rootCmd.PersistentFlags().StringVar(&siteName, "site", "", "Site profile to use")
}

// resolveSite picks the site profile: --site wins, then the command's
// default profile.
func resolveSite(fallback string) (string, *config.SiteConfig, error) {
	name := siteName
	if name == "" {
		name = fallback
	}

	appCfg, err := config.GetAppConfig()
	if err != nil {
		return "", nil, err
	}
	path := configFile
	if path == "" {
		path = appCfg.ConfigPath
	}

	sites, err := config.LoadSites(path)
	if err != nil {
		return "", nil, err
	}
	site, ok := sites[name]
	if !ok {
		return "", nil, fmt.Errorf("unknown site profile %q", name)
	}
	return name, site, nil
}

// recordLookup saves the result to the history store. Storage problems
// never fail a lookup that already succeeded.
func recordLookup(product *models.Product) {
	appCfg, err := config.GetAppConfig()
	if err != nil {
		return
	}
	database, err := db.Connect(appCfg.DBPath)
	if err != nil {
		log.Printf("Warning: history store unavailable: %v", err)
		return
	}
	defer database.Close()

	if err := db.SaveLookup(database, product); err != nil {
		log.Printf("Warning: failed to record lookup: %v", err)
	}
}
