package snpedia

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/heiner/snpedia-23andme/pkg/types"
)

func testClient(ts *httptest.Server) *Client {
	return &Client{
		HTTP:      ts.Client(),
		Base:      ts.URL,
		UserAgent: "snpedia-23andme-test/0.1",
	}
}

func TestFetchPage(t *testing.T) {
	const wikitext = "== (A;G) ==\n{{genotype|magnitude=2.5}}\n"

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("title"); got != "Rs123" {
			t.Errorf("title = %q, want Rs123", got)
		}
		if got := r.URL.Query().Get("action"); got != "raw" {
			t.Errorf("action = %q, want raw", got)
		}
		if got := r.Header.Get("User-Agent"); !strings.HasPrefix(got, "snpedia-23andme-test") {
			t.Errorf("User-Agent = %q", got)
		}
		fmt.Fprint(w, wikitext)
	}))
	defer ts.Close()

	got, err := testClient(ts).FetchPage(context.Background(), "rs123")
	if err != nil {
		t.Fatalf("FetchPage() error = %v", err)
	}
	if got != wikitext {
		t.Errorf("FetchPage() = %q, want %q", got, wikitext)
	}
}

func TestFetchPageNotFound(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "no such page", http.StatusNotFound)
	}))
	defer ts.Close()

	_, err := testClient(ts).FetchPage(context.Background(), "rs999")
	if err == nil {
		t.Fatal("FetchPage() expected error for HTTP 404")
	}
	if !strings.Contains(err.Error(), "rs999") {
		t.Errorf("error %q should name the rsid", err)
	}
}

func TestFetchPageSingleAttempt(t *testing.T) {
	calls := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	_, err := testClient(ts).FetchPage(context.Background(), "rs123")
	if err == nil {
		t.Fatal("FetchPage() expected error")
	}
	if calls != 1 {
		t.Errorf("server called %d times, want exactly 1 (no retries)", calls)
	}
}

func TestFetchIndexFollowsContinuation(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("cmtitle"); got != "Category:Is_a_snp" {
			t.Errorf("cmtitle = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("cmcontinue") == "" {
			fmt.Fprint(w, `{
				"continue": {"cmcontinue": "page|2"},
				"query": {"categorymembers": [{"title": "Rs1"}, {"title": "Rs2"}]}
			}`)
			return
		}
		fmt.Fprint(w, `{"query": {"categorymembers": [{"title": "Rs3"}]}}`)
	}))
	defer ts.Close()

	got, err := testClient(ts).FetchIndex(context.Background())
	if err != nil {
		t.Fatalf("FetchIndex() error = %v", err)
	}
	want := []string{"rs1", "rs2", "rs3"}
	if len(got) != len(want) {
		t.Fatalf("FetchIndex() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("FetchIndex()[%d] = %q, want %q (titles must be lowercased)", i, got[i], want[i])
		}
	}
}

func TestFetchIndexServerError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer ts.Close()

	_, err := testClient(ts).FetchIndex(context.Background())
	if err == nil {
		t.Fatal("FetchIndex() expected error for HTTP 500")
	}
}

func TestPageLink(t *testing.T) {
	if got, want := PageLink("rs123"), "https://www.snpedia.com/index.php/Rs123"; got != want {
		t.Errorf("PageLink(rs123) = %q, want %q", got, want)
	}
}

func TestNewClientDefaults(t *testing.T) {
	c := NewClient(types.FetchConfig{})
	if c.Base != DefaultAPIBase {
		t.Errorf("Base = %q, want %q", c.Base, DefaultAPIBase)
	}
}
