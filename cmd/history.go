package cmd

import (
	"fmt"
	"log"
	"strings"

	"github.com/spf13/cobra"

	"github.com/illydh/robo-driver/internal/config"
	"github.com/illydh/robo-driver/internal/db"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List or clear recorded lookups",
	Long: `Shows past successful lookups, or removes them.

Examples:
  robo-driver history
  robo-driver history clear "pegasus"
  robo-driver history clear all`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runHistory(args); err != nil {
			log.Fatalf("History command failed: %v", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
}

func runHistory(args []string) error {
	appCfg, err := config.GetAppConfig()
	if err != nil {
		return err
	}
	database, err := db.Connect(appCfg.DBPath)
	if err != nil {
		return err
	}
	defer database.Close()

	if len(args) > 0 && strings.ToLower(args[0]) == "clear" {
		if len(args) < 2 {
			return fmt.Errorf("usage: robo-driver history clear \"query text\" (or 'all')")
		}
		target := strings.TrimSpace(strings.Join(args[1:], " "))

		var affected int64
		if strings.ToLower(target) == "all" {
			affected, err = db.ClearAllHistory(database)
		} else {
			affected, err = db.ClearHistory(database, target)
		}
		if err != nil {
			return err
		}
		fmt.Printf("Done. Removed %d entry(s).\n", affected)
		return nil
	}

	entries, err := db.ListHistory(database)
	if err != nil {
		return err
	}

	fmt.Println("Lookup History")
	fmt.Println("------------------------------------")
	if len(entries) == 0 {
		fmt.Println("No history found.")
		return nil
	}
	for _, e := range entries {
		fmt.Printf("[%s] %s: %q -> %q at %s\n",
			e.LookedUpAt.Format("2006-01-02 15:04"), e.Site, e.Query, e.Name, e.Price)
	}
	return nil
}
