// Package sim provides the discrete-event production simulator that
// synthesizes a plausible manufacturing-line event log.
//
// # Reading Guide
//
// Start with these three files to understand the simulation kernel:
//   - record.go: the ProductionRecord emitted once per cycle attempt
//   - calendar.go: per-day shift instantiation and break/lunch windows
//   - simulator.go: the event clock, per-machine availability tracking,
//     and cycle outcome generation
//
// # Architecture
//
// The simulator advances a single simulated clock across repeating
// shift days. Each tick moves the clock to the nearest upcoming event
// among machine next-available instants, break-window starts, and the
// shift end. Machines becoming available attempt one cycle each,
// producing a Complete or Error record, until the configured part
// target is reached.
//
// Randomness is drawn exclusively from a seed-partitioned RNG
// (rng.go), so a run is fully reproducible from its seed and
// configuration. Emitted records accumulate in a RecordSink (sink.go)
// and are handed to the sim/output sinks already time-ordered.
package sim
