package report

import (
	"fmt"
	"io"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/heiner/snpedia-23andme/pkg/types"
)

// unknownMark is printed in place of a magnitude that could not be resolved.
const unknownMark = "-"

// Render writes entries as plain-text lines: rsid, genotype, magnitude (or a
// placeholder), and the summary when one exists.
func Render(entries []types.Entry, w io.Writer) {
	for _, e := range entries {
		mag := unknownMark
		if e.Known() {
			mag = fmt.Sprintf("%g", *e.Magnitude)
		}
		if e.Summary != "" {
			fmt.Fprintf(w, "%-12s %-4s %6s  %s\n", e.RSID, e.Genotype, mag, e.Summary)
		} else {
			fmt.Fprintf(w, "%-12s %-4s %6s\n", e.RSID, e.Genotype, mag)
		}
	}
}

// WriteYAML exports entries to path for machine consumption.
func WriteYAML(entries []types.Entry, path string) error {
	data, err := yaml.Marshal(entries)
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}
