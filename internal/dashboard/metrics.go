// Package dashboard aggregates verification results from a batch run
package dashboard

import (
	"sort"

	"github.com/ppiankov/lexaudit/internal/model"
)

// TopClauseLimit is how many finding clauses the digest ranks
const TopClauseLimit = 5

// Digest summarizes a set of verification results
type Digest struct {
	RunID           string                         `json:"run_id,omitempty"`
	Documents       int                            `json:"documents"`
	AverageRisk     float64                        `json:"average_risk"`
	Histogram       []Bucket                       `json:"histogram"`
	TopClauses      []ClauseCount                  `json:"top_clauses"`
	RiskByType      map[model.ContractType]float64 `json:"risk_by_type"`
	ComplianceCount map[model.CheckStatus]int      `json:"compliance_counts"`
}

// Bucket counts documents whose score falls in one risk band
type Bucket struct {
	Range string `json:"range"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

// ClauseCount is how many findings name a clause
type ClauseCount struct {
	Clause string `json:"clause"`
	Count  int    `json:"count"`
}

// Build aggregates results. Nil entries are skipped.
func Build(results []*model.VerificationResult) Digest {
	bands := model.RiskBands()
	d := Digest{
		Histogram:       make([]Bucket, len(bands)),
		TopClauses:      []ClauseCount{},
		RiskByType:      make(map[model.ContractType]float64),
		ComplianceCount: make(map[model.CheckStatus]int),
	}
	for i, b := range bands {
		d.Histogram[i] = Bucket{Range: b.Range(), Label: b.Label}
	}

	var total float64
	typeTotals := make(map[model.ContractType]float64)
	typeCounts := make(map[model.ContractType]int)
	clauseCounts := make(map[string]int)
	var clauseOrder []string

	for _, r := range results {
		if r == nil {
			continue
		}
		d.Documents++
		total += r.RiskScore

		band := model.BandFor(r.RiskScore)
		for i := range d.Histogram {
			if d.Histogram[i].Label == band.Label {
				d.Histogram[i].Count++
				break
			}
		}

		typeTotals[r.ContractType] += r.RiskScore
		typeCounts[r.ContractType]++

		d.ComplianceCount[r.Compliance.OverallStatus]++

		for _, f := range r.Findings {
			if _, ok := clauseCounts[f.Clause]; !ok {
				clauseOrder = append(clauseOrder, f.Clause)
			}
			clauseCounts[f.Clause]++
		}
	}

	if d.Documents > 0 {
		d.AverageRisk = total / float64(d.Documents)
	}
	for t, sum := range typeTotals {
		d.RiskByType[t] = sum / float64(typeCounts[t])
	}

	for _, c := range clauseOrder {
		d.TopClauses = append(d.TopClauses, ClauseCount{Clause: c, Count: clauseCounts[c]})
	}
	// stable keeps first-occurrence order among ties
	sort.SliceStable(d.TopClauses, func(i, j int) bool {
		return d.TopClauses[i].Count > d.TopClauses[j].Count
	})
	if len(d.TopClauses) > TopClauseLimit {
		d.TopClauses = d.TopClauses[:TopClauseLimit]
	}

	return d
}
