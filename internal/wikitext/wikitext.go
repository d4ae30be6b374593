// Package wikitext extracts genotype magnitudes from SNPedia page markup.
// Pure text parsing: no network or disk access, so it can be tested against
// literal fixtures.
package wikitext

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/heiner/snpedia-23andme/pkg/types"
)

var (
	orientationSemanticRe = regexp.MustCompile(`(?i)\[\[\s*Orientation\s*::\s*([a-z]+)\s*\]\]`)
	orientationFieldRe    = regexp.MustCompile(`(?i)\|\s*orientation\s*=\s*([a-z]+)`)

	magnitudeFieldRe    = regexp.MustCompile(`(?i)\|\s*magnitude\s*=\s*([0-9]+(?:\.[0-9]+)?)`)
	magnitudeSemanticRe = regexp.MustCompile(`(?i)\[\[\s*Magnitude\s*::\s*([0-9]+(?:\.[0-9]+)?)\s*\]\]`)
	summaryFieldRe      = regexp.MustCompile(`(?i)\|\s*summary\s*=\s*([^|}\n]*)`)

	// Generic section starters, used to decide where a matched subsection ends.
	anyHeadingRe      = regexp.MustCompile(`(?m)^=+[^=\n]+=+[ \t]*$`)
	anyGenotypeLinkRe = regexp.MustCompile(`\[\[[^\[\]|]*\(\s*[A-Za-z-]\s*(?:;\s*[A-Za-z-]\s*)?\)\s*(?:\|[^\]]*)?\]\]`)
)

// Orientation reports the strand the page's genotypes are written on:
// "plus", "minus", or "" when the page does not say.
func Orientation(page string) string {
	if m := orientationSemanticRe.FindStringSubmatch(page); m != nil {
		return strings.ToLower(m[1])
	}
	if m := orientationFieldRe.FindStringSubmatch(page); m != nil {
		return strings.ToLower(m[1])
	}
	return ""
}

// Extract locates the subsection of page whose allele pair matches gt and
// parses its magnitude. Matching is order-insensitive ({A,G} matches both
// "(A;G)" and "(G;A)"), case-insensitive, and tolerant of extra whitespace.
// Pages written minus-strand have the observed genotype complemented before
// matching. Returns ok=false when no subsection or no magnitude field
// matches; the summary, when present, is returned either way.
func Extract(page string, gt types.Genotype) (types.Annotation, bool) {
	if Orientation(page) == "minus" {
		gt = gt.Complement()
	}

	start, end := findSection(page, gt)
	if start < 0 {
		return types.Annotation{}, false
	}
	section := page[start:end]

	var ann types.Annotation
	if m := summaryFieldRe.FindStringSubmatch(section); m != nil {
		ann.Summary = strings.TrimSpace(m[1])
	}

	var raw string
	if m := magnitudeFieldRe.FindStringSubmatch(section); m != nil {
		raw = m[1]
	} else if m := magnitudeSemanticRe.FindStringSubmatch(section); m != nil {
		raw = m[1]
	}
	if raw == "" {
		return ann, false
	}

	mag, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return ann, false
	}
	ann.Magnitude = &mag
	return ann, true
}

// findSection returns the bounds of the genotype-specific subsection: from
// the end of the matched heading or genotype link to the next heading or
// genotype link. Returns (-1, -1) when the page has no match.
func findSection(page string, gt types.Genotype) (int, int) {
	best := -1
	bestEnd := -1
	for _, re := range sectionPatterns(gt) {
		loc := re.FindStringIndex(page)
		if loc == nil {
			continue
		}
		if best < 0 || loc[0] < best {
			best = loc[0]
			bestEnd = loc[1]
		}
	}
	if best < 0 {
		return -1, -1
	}

	end := len(page)
	rest := page[bestEnd:]
	if loc := anyHeadingRe.FindStringIndex(rest); loc != nil && bestEnd+loc[0] < end {
		end = bestEnd + loc[0]
	}
	if loc := anyGenotypeLinkRe.FindStringIndex(rest); loc != nil && bestEnd+loc[0] < end {
		end = bestEnd + loc[0]
	}
	return bestEnd, end
}

// sectionPatterns builds the heading and genotype-link patterns for every
// allele ordering of gt. Genotypes other than one or two symbols have no
// page representation and yield nothing.
func sectionPatterns(gt types.Genotype) []*regexp.Regexp {
	alleles := []rune(string(gt))

	var pairs []string
	switch len(alleles) {
	case 1:
		pairs = []string{regexp.QuoteMeta(string(alleles[0]))}
	case 2:
		a := regexp.QuoteMeta(string(alleles[0]))
		b := regexp.QuoteMeta(string(alleles[1]))
		pairs = []string{a + `\s*;\s*` + b}
		if a != b {
			pairs = append(pairs, b+`\s*;\s*`+a)
		}
	default:
		return nil
	}

	var patterns []*regexp.Regexp
	for _, p := range pairs {
		inner := `\(\s*` + p + `\s*\)`
		patterns = append(patterns,
			regexp.MustCompile(`(?im)^=+[^=\n]*`+inner+`[^=\n]*=+[ \t]*$`),
			regexp.MustCompile(`(?i)\[\[[^\[\]|]*`+inner+`\s*(?:\|[^\]]*)?\]\]`),
		)
	}
	return patterns
}
