package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/heiner/snpedia-23andme/internal/cache"
	"github.com/heiner/snpedia-23andme/internal/genome"
	"github.com/heiner/snpedia-23andme/internal/report"
	"github.com/heiner/snpedia-23andme/internal/snpedia"
	"github.com/heiner/snpedia-23andme/pkg/types"
)

const (
	defaultTimeout   = 60 * time.Second
	defaultDelay     = 100 * time.Millisecond
	defaultUserAgent = "snpedia-23andme/0.1"
)

var reportCmd = &cobra.Command{
	Use:   "report [genome-file]",
	Short: "Print the magnitude-sorted genotype report for a raw-data file",
	Long: `Report parses a 23andMe raw-data export, resolves each SNP known to
SNPedia to its page (archive first, network on miss), extracts the magnitude
for the observed genotype, and prints the entries sorted by magnitude
descending. SNPs whose fetch fails are reported with an unknown magnitude;
they never fail the run.`,
	Args: cobra.ExactArgs(1),
	RunE: runReport,
}

func init() {
	reportCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 60s)")
	reportCmd.Flags().Duration("delay", 0, "pause between consecutive page fetches (default 100ms)")
	reportCmd.Flags().String("cache", "", "page archive path (default snpedia-archive.db)")
	reportCmd.Flags().String("base", "", "SNPedia API base URL")
	reportCmd.Flags().String("out", "", "also write the sorted entries to this YAML file")

	rootCmd.AddCommand(reportCmd)
}

// fetchConfig assembles the fetch settings from flags, config file, and defaults.
func fetchConfig(cmd *cobra.Command) types.FetchConfig {
	timeout, _ := cmd.Flags().GetDuration("timeout")
	if timeout == 0 {
		timeout = viper.GetDuration("fetch.timeout")
	}
	if timeout == 0 {
		timeout = defaultTimeout
	}
	delay, _ := cmd.Flags().GetDuration("delay")
	if delay == 0 {
		delay = viper.GetDuration("fetch.fetch_delay")
	}
	if delay == 0 {
		delay = defaultDelay
	}
	base, _ := cmd.Flags().GetString("base")
	if base == "" {
		base = viper.GetString("fetch.api_base")
	}
	return types.FetchConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   timeout,
			UserAgent: defaultUserAgent,
		},
		APIBase:    base,
		FetchDelay: delay,
	}
}

// cacheConfig assembles the archive settings from flags and config file.
func cacheConfig(cmd *cobra.Command) types.CacheConfig {
	path, _ := cmd.Flags().GetString("cache")
	if path == "" {
		path = viper.GetString("cache.path")
	}
	return types.CacheConfig{Path: path}
}

func runReport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	fetchCfg := fetchConfig(cmd)

	store, err := cache.Open(cacheConfig(cmd))
	if err != nil {
		return err
	}
	defer store.Close()

	client := snpedia.NewClient(fetchCfg)

	interest, err := loadIndex(ctx, store, client)
	if err != nil {
		return err
	}

	snps, err := genome.Parse(args[0], os.Stderr)
	if err != nil {
		return err
	}

	src := &report.CachingSource{
		Store:   store,
		Fetcher: client,
		Delay:   fetchCfg.FetchDelay,
	}

	entries, _, err := report.Build(ctx, snps, src, interest, os.Stderr)
	if err != nil {
		return err
	}

	report.Sort(entries)
	report.Render(entries, os.Stdout)

	if out, _ := cmd.Flags().GetString("out"); out != "" {
		if err := report.WriteYAML(entries, out); err != nil {
			// Best effort: the report already printed.
			fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		}
	}
	return nil
}

// loadIndex returns the set of rsids SNPedia has pages for, fetching and
// archiving the category listing on first use. Without a cached copy a
// failed fetch is fatal: the interest set is unknowable and blind page
// requests for every rsid in the export would hammer the wiki.
func loadIndex(ctx context.Context, store *cache.Store, client *snpedia.Client) (map[string]struct{}, error) {
	interest, err := store.Index()
	if err != nil {
		return nil, err
	}
	if len(interest) > 0 {
		return interest, nil
	}

	fmt.Fprint(os.Stderr, "Get list of SNPs on SNPedia ... ")
	rsids, err := client.FetchIndex(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed")
		return nil, fmt.Errorf("fetching SNP index: %w", err)
	}
	fmt.Fprintln(os.Stderr, "done")

	if err := store.PutIndex(rsids); err != nil {
		return nil, err
	}

	interest = make(map[string]struct{}, len(rsids))
	for _, rsid := range rsids {
		interest[rsid] = struct{}{}
	}
	return interest, nil
}
