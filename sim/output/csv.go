package output

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/shopfloor-sim/shopfloor-sim/sim"
)

// CSVWriter writes the event log as comma-delimited text with a header
// row. The file is staged under a temporary name and renamed into
// place, so a failed write leaves no partial artifact.
type CSVWriter struct {
	Path string
}

// Write persists the records to w.Path.
func (w *CSVWriter) Write(runID string, records []sim.ProductionRecord) error {
	dir := filepath.Dir(w.Path)
	tmp, err := os.CreateTemp(dir, filepath.Base(w.Path)+".tmp*")
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer func() {
		tmp.Close()
		os.Remove(tmp.Name()) // no-op after successful rename
	}()

	cw := csv.NewWriter(tmp)
	if err := cw.Write(columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, r := range records {
		row := []string{
			r.Timestamp.Format(timestampLayout),
			r.MachineID,
			r.ProductID,
			r.LotNumber,
			strconv.FormatFloat(r.CycleTimeSeconds, 'f', 2, 64),
			string(r.Status),
			r.ErrorCode,
			r.OperatorID,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write record: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush output: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close output: %w", err)
	}
	if err := os.Rename(tmp.Name(), w.Path); err != nil {
		return fmt.Errorf("finalize output: %w", err)
	}
	return nil
}
