// Tracks run-wide aggregates for the end-of-run summary.

package sim

import (
	"fmt"
	"sort"
	"time"
)

// Metrics aggregates statistics about the generated event log for
// final reporting.
type Metrics struct {
	RecordsEmitted  int // all cycle attempts, Complete and Error
	PartsCompleted  int
	ErrorCycles     int
	LotsMinted      int
	ShiftsSimulated int

	MachineRecords map[string]int // machine id -> record count

	FirstEvent time.Time
	LastEvent  time.Time
}

// NewMetrics returns zeroed metrics.
func NewMetrics() *Metrics {
	return &Metrics{MachineRecords: make(map[string]int)}
}

// observe folds one emitted record into the aggregates.
func (m *Metrics) observe(r ProductionRecord) {
	m.RecordsEmitted++
	m.MachineRecords[r.MachineID]++
	if r.Status == StatusComplete {
		m.PartsCompleted++
	} else {
		m.ErrorCycles++
	}
	if m.FirstEvent.IsZero() || r.Timestamp.Before(m.FirstEvent) {
		m.FirstEvent = r.Timestamp
	}
	if r.Timestamp.After(m.LastEvent) {
		m.LastEvent = r.Timestamp
	}
}

// Print displays the aggregates at the end of a run.
func (m *Metrics) Print() {
	fmt.Println("=== Generation Metrics ===")
	fmt.Printf("Records Emitted   : %d\n", m.RecordsEmitted)
	fmt.Printf("Parts Completed   : %d\n", m.PartsCompleted)
	fmt.Printf("Error Cycles      : %d\n", m.ErrorCycles)
	fmt.Printf("Lots Minted       : %d\n", m.LotsMinted)
	fmt.Printf("Shifts Simulated  : %d\n", m.ShiftsSimulated)
	if m.RecordsEmitted > 0 {
		fmt.Printf("Error Rate        : %.2f%%\n", 100*float64(m.ErrorCycles)/float64(m.RecordsEmitted))
		fmt.Printf("Simulated Span    : %s -> %s\n",
			m.FirstEvent.Format("2006-01-02 15:04:05"), m.LastEvent.Format("2006-01-02 15:04:05"))
	}

	ids := make([]string, 0, len(m.MachineRecords))
	for id := range m.MachineRecords {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		fmt.Printf("  %s records       : %d\n", id, m.MachineRecords[id])
	}
}
