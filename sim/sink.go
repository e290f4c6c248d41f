package sim

import "sort"

// RecordSink accumulates production records in emission order, which
// interleaves machines and shifts. The final artifact is produced from
// Sorted, never from the raw emission order.
type RecordSink struct {
	records []ProductionRecord
}

// NewRecordSink returns an empty sink.
func NewRecordSink() *RecordSink {
	return &RecordSink{records: make([]ProductionRecord, 0)}
}

// Record appends one production record.
func (s *RecordSink) Record(r ProductionRecord) {
	s.records = append(s.records, r)
}

// Len returns the number of accumulated records.
func (s *RecordSink) Len() int {
	return len(s.records)
}

// Sorted returns a copy of the records ordered by timestamp ascending,
// stable on ties.
func (s *RecordSink) Sorted() []ProductionRecord {
	out := make([]ProductionRecord, len(s.records))
	copy(out, s.records)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.Before(out[j].Timestamp)
	})
	return out
}
