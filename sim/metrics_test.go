package sim

import (
	"testing"
	"time"
)

func TestMetrics_ObserveAggregates(t *testing.T) {
	m := NewMetrics()
	t0 := time.Date(2025, 8, 1, 8, 0, 0, 0, time.UTC)

	m.observe(ProductionRecord{MachineID: "M001", Status: StatusComplete, Timestamp: t0.Add(time.Minute)})
	m.observe(ProductionRecord{MachineID: "M001", Status: StatusError, Timestamp: t0})
	m.observe(ProductionRecord{MachineID: "M002", Status: StatusComplete, Timestamp: t0.Add(2 * time.Minute)})

	if m.RecordsEmitted != 3 {
		t.Errorf("records: got %d, want 3", m.RecordsEmitted)
	}
	if m.PartsCompleted != 2 || m.ErrorCycles != 1 {
		t.Errorf("completed/errors: got %d/%d, want 2/1", m.PartsCompleted, m.ErrorCycles)
	}
	if m.MachineRecords["M001"] != 2 || m.MachineRecords["M002"] != 1 {
		t.Errorf("per-machine counts: got %v", m.MachineRecords)
	}
	if !m.FirstEvent.Equal(t0) {
		t.Errorf("first event: got %v, want %v", m.FirstEvent, t0)
	}
	if !m.LastEvent.Equal(t0.Add(2 * time.Minute)) {
		t.Errorf("last event: got %v, want %v", m.LastEvent, t0.Add(2*time.Minute))
	}
}
