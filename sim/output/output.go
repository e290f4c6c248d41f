// Package output persists the generated event log. Sinks consume the
// already time-ordered record sequence; they perform no simulation
// logic of their own.
package output

import (
	"fmt"

	"github.com/shopfloor-sim/shopfloor-sim/sim"
)

// Timestamps are written without sub-second precision.
const timestampLayout = "2006-01-02 15:04:05"

// columns is the fixed output schema, one row per emitted record.
var columns = []string{
	"Timestamp", "Machine_ID", "Product_ID", "Lot_Number",
	"Cycle_Time_Seconds", "Status", "Error_Code", "Operator_ID",
}

// Supported sink formats.
const (
	FormatCSV    = "csv"
	FormatSQLite = "sqlite"
)

// Writer persists a complete run. Implementations must not leave a
// partial artifact behind on error.
type Writer interface {
	// Write persists the records under the given run id.
	Write(runID string, records []sim.ProductionRecord) error
}

// NewWriter returns the sink for the requested format, targeting path.
func NewWriter(format, path string) (Writer, error) {
	switch format {
	case FormatCSV:
		return &CSVWriter{Path: path}, nil
	case FormatSQLite:
		return &SQLiteWriter{Path: path}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q (expected %q or %q)", format, FormatCSV, FormatSQLite)
	}
}
