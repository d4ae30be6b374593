// Package genome reads 23andMe raw-data exports into a per-SNP genotype map.
package genome

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/heiner/snpedia-23andme/pkg/types"
)

// fieldsPerRecord is the 23andMe layout: rsid, chromosome, position, genotype.
const fieldsPerRecord = 4

// Parse reads the raw-data file at path and returns a mapping from rsid to
// SNP for every well-formed record. Malformed lines are reported on w and
// skipped. Only a failure to read the file itself is an error.
func Parse(path string, w io.Writer) (map[string]types.SNP, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening genome file: %w", err)
	}
	defer f.Close()
	return ParseReader(f, path, w)
}

// ParseReader is Parse over an arbitrary reader; name is used in warnings.
//
// Lines starting with '#' and blank lines are skipped. Fields are separated
// by any run of whitespace (real exports use tabs). When the same rsid
// appears more than once the last occurrence wins.
func ParseReader(r io.Reader, name string, w io.Writer) (map[string]types.SNP, error) {
	snps := make(map[string]types.SNP)

	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) != fieldsPerRecord {
			fmt.Fprintf(w, "warning: %s:%d: expected %d fields, got %d; line skipped\n",
				name, lineNo, fieldsPerRecord, len(fields))
			continue
		}

		gt := types.NewGenotype(fields[3])
		if gt == "" {
			fmt.Fprintf(w, "warning: %s:%d: empty genotype; line skipped\n", name, lineNo)
			continue
		}

		pos, err := strconv.ParseInt(fields[2], 10, 64)
		if err != nil {
			fmt.Fprintf(w, "warning: %s:%d: bad position %q; line skipped\n", name, lineNo, fields[2])
			continue
		}

		rsid := strings.ToLower(fields[0])
		snps[rsid] = types.SNP{
			RSID:       rsid,
			Chromosome: fields[1],
			Position:   pos,
			Genotype:   gt,
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}

	return snps, nil
}
