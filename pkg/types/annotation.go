package types

// Annotation is the genotype-specific information extracted from a SNPedia
// page: the magnitude score and the short summary shown in genotype tables.
type Annotation struct {
	// Magnitude is SNPedia's subjective interest score for the genotype.
	// Nil when the page lists the genotype without a published magnitude.
	Magnitude *float64 `json:"magnitude" yaml:"magnitude"`

	// Summary is the one-line description for the genotype, if any.
	Summary string `json:"summary,omitempty" yaml:"summary,omitempty"`
}

// Entry is one row of the final report: a SNP from the genome file joined
// with whatever annotation could be resolved for its genotype.
type Entry struct {
	// RSID is the SNP accession.
	RSID string `json:"rsid" yaml:"rsid"`

	// Genotype is the observed allele pair.
	Genotype Genotype `json:"genotype" yaml:"genotype"`

	// Magnitude is the resolved score; nil means unknown (fetch failed,
	// page had no matching genotype, or no magnitude was published).
	Magnitude *float64 `json:"magnitude" yaml:"magnitude"`

	// Summary is the genotype description, when the page provides one.
	Summary string `json:"summary,omitempty" yaml:"summary,omitempty"`

	// Link is the human-readable SNPedia page URL for the SNP.
	Link string `json:"link" yaml:"link"`
}

// Known reports whether a magnitude was resolved for the entry.
func (e Entry) Known() bool { return e.Magnitude != nil }
