package sim

import (
	"math/rand"
	"time"
)

// CycleStatus is the outcome of one cycle attempt.
type CycleStatus string

const (
	// StatusComplete marks a cycle that produced a good part.
	StatusComplete CycleStatus = "Complete"
	// StatusError marks an aborted cycle. Error cycles are a domain
	// concept, not a software fault: they produce a valid record and
	// do not count toward the part target.
	StatusError CycleStatus = "Error"
)

// ErrorCodeNone is the sentinel error code on Complete records.
const ErrorCodeNone = "N/A"

// errorCodes is the fixed set of machine fault codes an Error cycle
// may carry.
var errorCodes = []string{
	"E001", "E002", "E003", "E004", "E005",
	"E006", "E007", "E008", "E009", "E010",
}

// randomErrorCode draws one code uniformly from the fixed set.
func randomErrorCode(rng *rand.Rand) string {
	return errorCodes[rng.Intn(len(errorCodes))]
}

// ProductionRecord is one row of the generated event log: a single
// completed or failed cycle. Immutable once appended to the sink.
type ProductionRecord struct {
	Timestamp        time.Time
	MachineID        string
	ProductID        string
	LotNumber        string
	CycleTimeSeconds float64 // rounded to 2 decimals
	Status           CycleStatus
	ErrorCode        string // ErrorCodeNone unless Status is Error
	OperatorID       string
}
