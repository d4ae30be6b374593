// Package snpedia talks to the SNPedia MediaWiki: raw page fetches and the
// category listing of every SNP the wiki knows about.
package snpedia

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/heiner/snpedia-23andme/pkg/types"
)

// DefaultAPIBase is the bot-facing SNPedia endpoint.
const DefaultAPIBase = "https://bots.snpedia.com"

// snpCategory is the wiki category containing one page per known SNP.
const snpCategory = "Category:Is_a_snp"

// Client fetches pages and the SNP index from SNPedia.
type Client struct {
	HTTP      *http.Client
	Base      string
	UserAgent string
}

// NewClient builds a Client from the fetch configuration.
func NewClient(cfg types.FetchConfig) *Client {
	base := cfg.APIBase
	if base == "" {
		base = DefaultAPIBase
	}
	return &Client{
		HTTP:      &http.Client{Timeout: cfg.Timeout},
		Base:      base,
		UserAgent: cfg.UserAgent,
	}
}

// FetchPage retrieves the raw wikitext for one rsid, templates expanded.
// A transport failure or non-200 status is an error for that rsid only;
// callers treat it as "magnitude unknown" and continue. One attempt, no
// retries.
func (c *Client) FetchPage(ctx context.Context, rsid string) (string, error) {
	u := fmt.Sprintf("%s/index.php?title=%s&action=raw&templates=expand",
		c.Base, url.QueryEscape(pageTitle(rsid)))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.UserAgent)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching %s: %w", rsid, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetching %s: HTTP %d", rsid, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading page %s: %w", rsid, err)
	}
	return string(body), nil
}

// categoryResponse is the MediaWiki list=categorymembers JSON shape.
type categoryResponse struct {
	Continue struct {
		CMContinue string `json:"cmcontinue"`
	} `json:"continue"`
	Query struct {
		CategoryMembers []struct {
			Title string `json:"title"`
		} `json:"categorymembers"`
	} `json:"query"`
}

// FetchIndex lists every rsid on SNPedia by walking the Is_a_snp category,
// following MediaWiki continuation until the listing is exhausted. Titles
// are lowercased to match genome-file rsids.
func (c *Client) FetchIndex(ctx context.Context) ([]string, error) {
	var rsids []string
	cont := ""
	for {
		u := fmt.Sprintf("%s/api.php?action=query&list=categorymembers&cmtitle=%s&cmnamespace=0&cmlimit=500&format=json",
			c.Base, url.QueryEscape(snpCategory))
		if cont != "" {
			u += "&cmcontinue=" + url.QueryEscape(cont)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return nil, fmt.Errorf("creating request: %w", err)
		}
		req.Header.Set("User-Agent", c.UserAgent)

		resp, err := c.HTTP.Do(req)
		if err != nil {
			return nil, fmt.Errorf("listing SNP category: %w", err)
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, fmt.Errorf("listing SNP category: HTTP %d", resp.StatusCode)
		}

		var page categoryResponse
		err = json.NewDecoder(resp.Body).Decode(&page)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("parsing category response: %w", err)
		}

		for _, m := range page.Query.CategoryMembers {
			rsids = append(rsids, strings.ToLower(m.Title))
		}

		if page.Continue.CMContinue == "" {
			return rsids, nil
		}
		cont = page.Continue.CMContinue
	}
}

// PageLink returns the human-readable SNPedia URL for an rsid.
func PageLink(rsid string) string {
	return "https://www.snpedia.com/index.php/" + pageTitle(rsid)
}

// pageTitle capitalizes an rsid the way MediaWiki titles do ("rs123" -> "Rs123").
func pageTitle(rsid string) string {
	if rsid == "" {
		return rsid
	}
	return strings.ToUpper(rsid[:1]) + rsid[1:]
}
