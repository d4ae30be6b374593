package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/heiner/snpedia-23andme/internal/cache"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect the local page archive",
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print archive page and index counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := cache.Open(cacheConfig(cmd))
		if err != nil {
			return err
		}
		defer store.Close()

		pages, indexed, err := store.Stats()
		if err != nil {
			return err
		}
		fmt.Printf("archived pages: %d\n", pages)
		fmt.Printf("indexed rsids:  %d\n", indexed)
		return nil
	},
}

var cacheGetCmd = &cobra.Command{
	Use:   "get [rsid]",
	Short: "Print one archived page as raw wikitext",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := cache.Open(cacheConfig(cmd))
		if err != nil {
			return err
		}
		defer store.Close()

		body, ok, err := store.Get(args[0])
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%s is not in the archive", args[0])
		}
		fmt.Fprint(os.Stdout, body)
		return nil
	},
}

func init() {
	cacheCmd.PersistentFlags().String("cache", "", "page archive path (default snpedia-archive.db)")
	cacheCmd.AddCommand(cacheStatsCmd)
	cacheCmd.AddCommand(cacheGetCmd)
	rootCmd.AddCommand(cacheCmd)
}
