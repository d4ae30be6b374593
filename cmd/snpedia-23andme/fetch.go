package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/heiner/snpedia-23andme/internal/cache"
	"github.com/heiner/snpedia-23andme/internal/snpedia"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch [rsids...]",
	Short: "Prefetch SNPedia pages into the local archive",
	Long: `Fetch downloads the SNPedia page for each given rsid and stores it in the
archive, so a later report run needs no network access for those SNPs.
Already-archived pages are skipped.`,
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 60s)")
	fetchCmd.Flags().Duration("delay", 0, "pause between consecutive page fetches (default 100ms)")
	fetchCmd.Flags().String("cache", "", "page archive path (default snpedia-archive.db)")
	fetchCmd.Flags().String("base", "", "SNPedia API base URL")

	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("provide one or more rsids (e.g. rs1234)")
	}

	ctx := cmd.Context()
	fetchCfg := fetchConfig(cmd)

	store, err := cache.Open(cacheConfig(cmd))
	if err != nil {
		return err
	}
	defer store.Close()

	client := snpedia.NewClient(fetchCfg)

	var fetched, skipped, failed int
	for i, rsid := range args {
		if _, ok, err := store.Get(rsid); err != nil {
			return err
		} else if ok {
			fmt.Fprintf(os.Stdout, "skipped: %s (already archived)\n", rsid)
			skipped++
			continue
		}

		if i > 0 && fetchCfg.FetchDelay > 0 {
			time.Sleep(fetchCfg.FetchDelay)
		}

		page, err := client.FetchPage(ctx, rsid)
		if err != nil {
			fmt.Fprintf(os.Stdout, "failed:  %s (%v)\n", rsid, err)
			failed++
			continue
		}
		if err := store.Put(rsid, page); err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "fetched: %s\n", rsid)
		fetched++
	}

	fmt.Fprintf(os.Stdout, "\nFetch summary: %d fetched, %d skipped, %d failed (total: %d)\n",
		fetched, skipped, failed, len(args))
	if failed > 0 {
		return fmt.Errorf("%d page(s) failed to fetch", failed)
	}
	return nil
}
