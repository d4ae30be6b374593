// Package report resolves genotypes against SNPedia pages and renders the
// final magnitude-sorted listing.
package report

import (
	"context"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/heiner/snpedia-23andme/internal/snpedia"
	"github.com/heiner/snpedia-23andme/internal/wikitext"
	"github.com/heiner/snpedia-23andme/pkg/types"
)

// PageSource yields the annotation page for one rsid.
type PageSource interface {
	Page(ctx context.Context, rsid string) (string, error)
}

// PageStore is the cache surface the resolver needs.
type PageStore interface {
	Get(rsid string) (string, bool, error)
	Put(rsid, body string) error
}

// Fetcher is the network surface the resolver needs.
type Fetcher interface {
	FetchPage(ctx context.Context, rsid string) (string, error)
}

// CachingSource is a cache-aside PageSource: the store is consulted first,
// and fresh fetches are written through before being returned. Delay, when
// set, is slept before each network fetch to keep load on SNPedia low.
type CachingSource struct {
	Store   PageStore
	Fetcher Fetcher
	Delay   time.Duration
}

// Page implements PageSource.
func (c *CachingSource) Page(ctx context.Context, rsid string) (string, error) {
	body, ok, err := c.Store.Get(rsid)
	if err != nil {
		return "", err
	}
	if ok {
		return body, nil
	}

	if c.Delay > 0 {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(c.Delay):
		}
	}

	body, err = c.Fetcher.FetchPage(ctx, rsid)
	if err != nil {
		return "", err
	}
	if err := c.Store.Put(rsid, body); err != nil {
		return "", err
	}
	return body, nil
}

// Summary holds the outcome counts of a report run.
type Summary struct {
	// Resolved counts entries with a known magnitude.
	Resolved int
	// Unknown counts entries whose page had no usable magnitude.
	Unknown int
	// Failed counts entries whose page fetch failed.
	Failed int
	// Skipped counts input SNPs that are not on SNPedia at all.
	Skipped int
}

// Total returns the number of input SNPs considered.
func (s Summary) Total() int {
	return s.Resolved + s.Unknown + s.Failed + s.Skipped
}

// Build resolves every SNP of interest to a report entry. SNPs absent from
// the interest index are skipped; a fetch failure demotes that one SNP to
// unknown magnitude and the run continues. rsids are processed in ascending
// order so fetch order and warnings are deterministic.
func Build(ctx context.Context, snps map[string]types.SNP, src PageSource, interest map[string]struct{}, w io.Writer) ([]types.Entry, Summary, error) {
	rsids := make([]string, 0, len(snps))
	for rsid := range snps {
		rsids = append(rsids, rsid)
	}
	sort.Strings(rsids)

	var entries []types.Entry
	var summary Summary

	for _, rsid := range rsids {
		if err := ctx.Err(); err != nil {
			return entries, summary, err
		}

		if _, ok := interest[rsid]; !ok {
			summary.Skipped++
			continue
		}
		snp := snps[rsid]

		entry := types.Entry{
			RSID:     rsid,
			Genotype: snp.Genotype,
			Link:     snpedia.PageLink(rsid),
		}

		page, err := src.Page(ctx, rsid)
		if err != nil {
			fmt.Fprintf(w, "warning: %v; magnitude unknown\n", err)
			summary.Failed++
			entries = append(entries, entry)
			continue
		}

		ann, ok := wikitext.Extract(page, snp.Genotype)
		entry.Magnitude = ann.Magnitude
		entry.Summary = ann.Summary
		if ok {
			summary.Resolved++
		} else {
			summary.Unknown++
		}
		entries = append(entries, entry)
	}

	fmt.Fprintf(w, "resolved: %d, unknown: %d, failed: %d, not on snpedia: %d (total: %d)\n",
		summary.Resolved, summary.Unknown, summary.Failed, summary.Skipped, summary.Total())

	return entries, summary, nil
}

// Sort orders entries by magnitude descending. Entries without a magnitude
// sort strictly last; ties, including among unknowns, break by ascending
// rsid so output is deterministic.
func Sort(entries []types.Entry) {
	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		switch {
		case a.Known() != b.Known():
			return a.Known()
		case a.Known() && *a.Magnitude != *b.Magnitude:
			return *a.Magnitude > *b.Magnitude
		default:
			return a.RSID < b.RSID
		}
	})
}
