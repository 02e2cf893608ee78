package model

// CheckStatus is the outcome of a single compliance gate
type CheckStatus string

const (
	StatusPass CheckStatus = "pass"
	StatusWarn CheckStatus = "warn"
	StatusFail CheckStatus = "fail"
)

// ComplianceCheck is one statutory check result
type ComplianceCheck struct {
	Category string      `json:"category"`           // GST, TDS, Companies Act, ...
	Status   CheckStatus `json:"status"`             // pass, warn, fail
	Message  string      `json:"message"`            // Human-readable explanation
	Citation string      `json:"citation,omitempty"` // Statute reference, empty for passes
}

// ComplianceResult groups the checks of one jurisdiction
type ComplianceResult struct {
	Jurisdiction  string            `json:"jurisdiction"`
	Checks        []ComplianceCheck `json:"checks"`
	OverallStatus CheckStatus       `json:"overall_status"`
}

// NewComplianceResult builds a result and derives its overall status
func NewComplianceResult(jurisdiction string, checks []ComplianceCheck) ComplianceResult {
	if checks == nil {
		checks = []ComplianceCheck{}
	}
	return ComplianceResult{
		Jurisdiction:  jurisdiction,
		Checks:        checks,
		OverallStatus: OverallStatus(checks),
	}
}

// OverallStatus is fail if any check fails, else warn if any warns, else pass
func OverallStatus(checks []ComplianceCheck) CheckStatus {
	status := StatusPass
	for _, c := range checks {
		switch c.Status {
		case StatusFail:
			return StatusFail
		case StatusWarn:
			status = StatusWarn
		}
	}
	return status
}

// Count returns how many checks have the given status
func (r ComplianceResult) Count(status CheckStatus) int {
	n := 0
	for _, c := range r.Checks {
		if c.Status == status {
			n++
		}
	}
	return n
}
