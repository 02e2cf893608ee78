package dashboard

import (
	"fmt"
	"io"
	"strings"

	"github.com/ppiankov/lexaudit/internal/model"
)

const histogramWidth = 30

// Fprint writes the digest as a console table
func (d Digest) Fprint(w io.Writer) {
	fmt.Fprintf(w, "  Documents:     %d\n", d.Documents)
	fmt.Fprintf(w, "  Average risk:  %.1f/100\n\n", d.AverageRisk)

	fmt.Fprintf(w, "  Risk distribution\n")
	peak := 0
	for _, b := range d.Histogram {
		if b.Count > peak {
			peak = b.Count
		}
	}
	for _, b := range d.Histogram {
		bar := 0
		if peak > 0 {
			bar = b.Count * histogramWidth / peak
		}
		fmt.Fprintf(w, "    %-7s %-9s %3d %s\n", b.Range, b.Label, b.Count, strings.Repeat("█", bar))
	}

	if len(d.TopClauses) > 0 {
		fmt.Fprintf(w, "\n  Most frequent findings\n")
		for i, c := range d.TopClauses {
			fmt.Fprintf(w, "    %d. %s (%d)\n", i+1, c.Clause, c.Count)
		}
	}

	if len(d.RiskByType) > 0 {
		fmt.Fprintf(w, "\n  Average risk by contract type\n")
		for _, t := range model.ContractTypes() {
			if avg, ok := d.RiskByType[t]; ok {
				fmt.Fprintf(w, "    %-11s %.1f\n", t, avg)
			}
		}
	}

	if d.Documents > 0 {
		fmt.Fprintf(w, "\n  Compliance: %d pass, %d warn, %d fail\n",
			d.ComplianceCount[model.StatusPass], d.ComplianceCount[model.StatusWarn], d.ComplianceCount[model.StatusFail])
	}
}
