package genome

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/heiner/snpedia-23andme/pkg/types"
)

func TestParseReader(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		want     map[string]types.SNP
		warnings int
	}{
		{
			name:  "single record",
			input: "rs123\t1\t1000\tAG\n",
			want: map[string]types.SNP{
				"rs123": {RSID: "rs123", Chromosome: "1", Position: 1000, Genotype: "AG"},
			},
		},
		{
			name: "comments and blank lines skipped",
			input: "# This data file generated by 23andMe\n" +
				"#rsid\tchromosome\tposition\tgenotype\n" +
				"\n" +
				"rs123\t1\t1000\tAG\n",
			want: map[string]types.SNP{
				"rs123": {RSID: "rs123", Chromosome: "1", Position: 1000, Genotype: "AG"},
			},
		},
		{
			name:  "space separated fields accepted",
			input: "rs123  1  1000  AG\n",
			want: map[string]types.SNP{
				"rs123": {RSID: "rs123", Chromosome: "1", Position: 1000, Genotype: "AG"},
			},
		},
		{
			name: "malformed line skipped with warning",
			input: "rs1\t1\t100\tAA\n" +
				"rs2\t1\t200\n" + // missing genotype field
				"rs3\t1\t300\tCT\n",
			want: map[string]types.SNP{
				"rs1": {RSID: "rs1", Chromosome: "1", Position: 100, Genotype: "AA"},
				"rs3": {RSID: "rs3", Chromosome: "1", Position: 300, Genotype: "CT"},
			},
			warnings: 1,
		},
		{
			name:     "bad position skipped with warning",
			input:    "rs1\t1\tabc\tAA\n",
			want:     map[string]types.SNP{},
			warnings: 1,
		},
		{
			name: "duplicate rsid last occurrence wins",
			input: "rs1\t1\t100\tAA\n" +
				"rs1\t1\t100\tAG\n",
			want: map[string]types.SNP{
				"rs1": {RSID: "rs1", Chromosome: "1", Position: 100, Genotype: "AG"},
			},
		},
		{
			name:  "rsid lowercased and genotype normalized",
			input: "Rs123\tX\t1000\tag\n",
			want: map[string]types.SNP{
				"rs123": {RSID: "rs123", Chromosome: "X", Position: 1000, Genotype: "AG"},
			},
		},
		{
			name:  "no-call genotype kept",
			input: "rs9\tMT\t42\t--\n",
			want: map[string]types.SNP{
				"rs9": {RSID: "rs9", Chromosome: "MT", Position: 42, Genotype: "--"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var warnings bytes.Buffer
			got, err := ParseReader(strings.NewReader(tt.input), "test-input", &warnings)
			if err != nil {
				t.Fatalf("ParseReader() error = %v", err)
			}
			if len(got) != len(tt.want) {
				t.Errorf("ParseReader() returned %d SNPs, want %d", len(got), len(tt.want))
			}
			for rsid, want := range tt.want {
				if got[rsid] != want {
					t.Errorf("ParseReader()[%q] = %+v, want %+v", rsid, got[rsid], want)
				}
			}
			if n := strings.Count(warnings.String(), "warning:"); n != tt.warnings {
				t.Errorf("got %d warnings, want %d; output: %q", n, tt.warnings, warnings.String())
			}
		})
	}
}

func TestParseMissingFile(t *testing.T) {
	var warnings bytes.Buffer
	_, err := Parse(filepath.Join(t.TempDir(), "does-not-exist.txt"), &warnings)
	if err == nil {
		t.Fatal("Parse() expected error for missing file")
	}
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "genome.txt")
	content := "# header\nrs123\t1\t1000\tAG\nrs456\t2\t2000\tCC\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	var warnings bytes.Buffer
	got, err := Parse(path, &warnings)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Parse() returned %d SNPs, want 2", len(got))
	}
	if got["rs456"].Genotype != "CC" {
		t.Errorf("rs456 genotype = %q, want CC", got["rs456"].Genotype)
	}
}
