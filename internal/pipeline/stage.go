package pipeline

// Stage is a step of one verification run
type Stage int

const (
	StageReceived Stage = iota
	StageClassified
	StageClausesChecked
	StageRisksAnalyzed
	StageComplianceChecked
	StageScored
	StageComposed
	StageDone
)

var stageNames = [...]string{
	"received",
	"classified",
	"clauses_checked",
	"risks_analyzed",
	"compliance_checked",
	"scored",
	"composed",
	"done",
}

func (s Stage) String() string {
	if s < 0 || int(s) >= len(stageNames) {
		return "unknown"
	}
	return stageNames[s]
}
