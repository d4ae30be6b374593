package types

import "strings"

// Genotype is the pair of alleles observed at one SNP, normalized to
// uppercase with separators stripped (e.g. "AG"). 23andMe no-calls appear
// as "--" and indels as "I"/"D"; both pass through normalization unchanged.
type Genotype string

// NewGenotype normalizes a raw genotype field: uppercase, with whitespace,
// parentheses, and semicolons removed, so "(a;g)" and "AG" compare equal.
func NewGenotype(raw string) Genotype {
	var b strings.Builder
	for _, r := range raw {
		switch r {
		case ' ', '\t', '(', ')', ';', ',':
			continue
		}
		b.WriteRune(r)
	}
	return Genotype(strings.ToUpper(b.String()))
}

// complements maps each base to its opposite-strand counterpart.
var complements = map[rune]rune{
	'A': 'T',
	'T': 'A',
	'C': 'G',
	'G': 'C',
}

// Complement returns the genotype read from the opposite strand. Symbols
// without a complement (indel markers, no-call dashes) pass through.
func (g Genotype) Complement() Genotype {
	return Genotype(strings.Map(func(r rune) rune {
		if c, ok := complements[r]; ok {
			return c
		}
		return r
	}, string(g)))
}

func (g Genotype) String() string { return string(g) }

// SNP is one recognized record from a 23andMe raw-data export.
type SNP struct {
	// RSID is the dbSNP accession (e.g. "rs123"), lowercased.
	RSID string `json:"rsid" yaml:"rsid"`

	// Chromosome as reported by the export (1-22, X, Y, MT).
	Chromosome string `json:"chromosome" yaml:"chromosome"`

	// Position is the 1-based coordinate on the chromosome.
	Position int64 `json:"position" yaml:"position"`

	// Genotype is the observed allele pair.
	Genotype Genotype `json:"genotype" yaml:"genotype"`
}
