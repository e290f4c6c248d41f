// sim/simulator.go
package sim

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
)

// Aborted cycles draw their duration from this fixed range, independent
// of machine and operator parameters.
const (
	errorCycleMinSeconds = 30.0
	errorCycleMaxSeconds = 90.0
)

// Simulator is the core object that holds simulation time, per-run
// state, and the event loop. It is single-threaded and fully
// synchronous: machines are "parallel" only logically, processed in a
// fixed iteration order at each clock advance.
type Simulator struct {
	// Clock is the single simulated time cursor. Each tick advances it
	// to the nearest upcoming event among machine availability, break
	// starts, and the shift end.
	Clock    time.Time
	Machines []Machine
	Lots     *LotManager
	Sink     *RecordSink
	Metrics  *Metrics

	cfg      *Config
	rng      *PartitionedRNG
	startDay time.Time

	// partsProduced counts Complete outcomes only; reaching the order
	// target is the run's termination signal.
	partsProduced int

	// busyUntil carries each machine's in-flight cycle end across shift
	// boundaries so a startup delay cannot make a machine available
	// while its last cycle of the previous shift is still running.
	busyUntil map[string]time.Time

	// derived from config: fractions and seconds, not percents
	errorProb   float64
	operatorEff float64
	handlingSec float64
	resumeSec   float64
	variation   float64
}

// NewSimulator validates the configuration, builds the machine
// registry, and returns a simulator ready to Run. The SimulationKey
// seeds every random draw: same key and config, same output.
func NewSimulator(cfg *Config, key SimulationKey, startDay time.Time) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	machines, err := BuildMachines(cfg.WorkCell, cfg.MachineEfficiencies, cfg.Order.BaseCycleTimeSeconds)
	if err != nil {
		return nil, err
	}

	anyActive := false
	for _, def := range cfg.Shifts.ShiftSchedule {
		if def.ActiveMachines > 0 {
			anyActive = true
			break
		}
	}
	if !anyActive {
		return nil, fmt.Errorf("no shift has active machines, part target is unreachable")
	}
	if cfg.Order.ErrorPercentage >= 100 {
		return nil, fmt.Errorf("order.error_percentage %v leaves no completable cycles", cfg.Order.ErrorPercentage)
	}

	return &Simulator{
		Machines:  machines,
		Lots:      NewLotManager(),
		Sink:      NewRecordSink(),
		Metrics:   NewMetrics(),
		cfg:       cfg,
		rng:       NewPartitionedRNG(key),
		busyUntil: make(map[string]time.Time, len(machines)),
		startDay:  time.Date(startDay.Year(), startDay.Month(), startDay.Day(), 0, 0, 0, 0, time.UTC),

		errorProb:   cfg.Order.ErrorPercentage / 100.0,
		operatorEff: cfg.Operators.DefaultOperatorEfficiency / 100.0,
		handlingSec: cfg.Operators.BaseHandlingTimeSeconds,
		resumeSec:   cfg.Operators.ResumeDelaySeconds,
		variation:   cfg.Operators.OperatorEfficiencyVariationPercentage / 100.0,
	}, nil
}

// PartsProduced returns the count of Complete outcomes so far.
func (s *Simulator) PartsProduced() int {
	return s.partsProduced
}

// Run advances the simulated clock across repeating shift days until
// the order's part target is reached, emitting one record per cycle
// attempt into the Sink.
func (s *Simulator) Run() error {
	schedule := s.cfg.Shifts.ShiftSchedule
	startTOD, err := parseClock(schedule[0].StartTime)
	if err != nil {
		return err
	}
	s.Clock = startTOD.at(s.startDay)
	target := s.cfg.Order.TotalParts

	logrus.Infof("starting generation: %d parts across %d machines, %d shifts/day",
		target, len(s.Machines), len(schedule))

	for s.partsProduced < target {
		for _, def := range schedule {
			day := dayOf(s.Clock)
			shift, err := InstantiateShift(def, day, s.cfg.Shifts)
			if err != nil {
				return err
			}
			if shift.Start.Before(s.Clock) {
				// This shift already ran today; it belongs to tomorrow.
				shift, err = InstantiateShift(def, day.AddDate(0, 0, 1), s.cfg.Shifts)
				if err != nil {
					return err
				}
			}
			s.runShift(shift)
			if s.partsProduced >= target {
				break
			}
		}
	}

	logrus.Infof("generation complete: %d parts, %d records", s.partsProduced, s.Sink.Len())
	return nil
}

// runShift simulates one shift: lot rollover, operator assignment,
// startup delays, then the event clock loop driving cycle outcomes.
func (s *Simulator) runShift(shift ShiftInstance) {
	target := s.cfg.Order.TotalParts
	s.Metrics.ShiftsSimulated++
	s.Clock = shift.Start

	if downtime, rolled := s.Lots.MaybeRoll(shift.End, s.rng.ForSubsystem(SubsystemLot)); rolled {
		// Changeover downtime advances the clock but is attributed to
		// no machine and produces no record.
		s.Clock = s.Clock.Add(downtime)
		s.Metrics.LotsMinted++
		logrus.Debugf("lot %s active from %s", s.Lots.Current(), s.Clock.Format(time.DateTime))
	}

	shiftRNG := s.rng.ForSubsystem(SubsystemShift)
	active := s.sampleActive(shiftRNG, shift.ActiveMachines)

	// Operators are re-drawn independently for every active machine at
	// the start of every shift, with replacement across shifts.
	operators := make(map[string]string, len(active))
	for _, m := range active {
		operators[m.ID] = fmt.Sprintf("OP%d", 1000+shiftRNG.Intn(9000))
	}

	// Availability tracking: active machines come up after a random
	// startup delay, inactive machines are parked until shift end.
	delayRange := s.cfg.Shifts.ShiftStartupDelaySeconds
	nextAvailable := make(map[string]time.Time, len(s.Machines))
	resumePending := make(map[string]bool, len(active))
	for _, m := range s.Machines {
		if _, ok := operators[m.ID]; ok {
			delay := uniform(shiftRNG, delayRange[0], delayRange[1])
			avail := shift.Start.Add(secondsDuration(delay))
			if carry, ok := s.busyUntil[m.ID]; ok && carry.After(avail) {
				avail = carry
			}
			nextAvailable[m.ID] = avail
		} else {
			nextAvailable[m.ID] = shift.End
		}
	}

	logrus.Debugf("shift %s %s..%s: %d active machines",
		shift.Name, shift.Start.Format(time.DateTime), shift.End.Format(time.DateTime), len(active))

	outcomeRNG := s.rng.ForSubsystem(SubsystemOutcome)
	for s.Clock.Before(shift.End) && s.partsProduced < target {
		// Min-scan over the small machine set; no heap needed.
		next := shift.End
		for _, m := range active {
			if t := nextAvailable[m.ID]; t.Before(next) {
				next = t
			}
		}
		for _, w := range shift.Breaks {
			if w.Start.After(s.Clock) && w.Start.Before(next) {
				next = w.Start
			}
		}
		if next.After(s.Clock) {
			s.Clock = next
		}
		if !s.Clock.Before(shift.End) {
			break
		}

		for _, m := range active {
			if nextAvailable[m.ID].After(s.Clock) {
				continue
			}
			if s.partsProduced >= target {
				break
			}

			if w, ok := breakAt(shift.Breaks, s.Clock); ok {
				// Skipped for the rest of the window; restart lag owed
				// on the way out.
				nextAvailable[m.ID] = w.End
				resumePending[m.ID] = true
				continue
			}
			if resumePending[m.ID] {
				// Restart lag after a break, applied exactly once per
				// break exit.
				delay := uniform(outcomeRNG, 0.8*s.resumeSec, 1.2*s.resumeSec)
				nextAvailable[m.ID] = s.Clock.Add(secondsDuration(delay))
				resumePending[m.ID] = false
				continue
			}

			s.runCycle(m, operators[m.ID], nextAvailable, outcomeRNG)
		}
	}

	s.Clock = shift.End
}

// runCycle decides one cycle's outcome and duration, emits its record,
// and advances the machine's next-available instant.
func (s *Simulator) runCycle(m Machine, operator string, nextAvailable map[string]time.Time, rng *rand.Rand) {
	status := StatusComplete
	code := ErrorCodeNone
	var duration float64
	if rng.Float64() < s.errorProb {
		status = StatusError
		code = randomErrorCode(rng)
		duration = uniform(rng, errorCycleMinSeconds, errorCycleMaxSeconds)
	} else {
		factor := uniform(rng, 1-s.variation, 1+s.variation)
		handling := (s.handlingSec / s.operatorEff) * factor
		duration = m.CycleTime + handling
		s.partsProduced++
	}
	// The rounded duration is what the record carries; advancing by the
	// same value keeps per-machine record intervals disjoint.
	duration = math.Round(duration*100) / 100

	rec := ProductionRecord{
		Timestamp:        s.Clock,
		MachineID:        m.ID,
		ProductID:        s.cfg.Order.ProductID,
		LotNumber:        s.Lots.Current(),
		CycleTimeSeconds: duration,
		Status:           status,
		ErrorCode:        code,
		OperatorID:       operator,
	}
	s.Sink.Record(rec)
	s.Metrics.observe(rec)
	end := s.Clock.Add(secondsDuration(duration))
	nextAvailable[m.ID] = end
	s.busyUntil[m.ID] = end
}

// sampleActive selects n machines uniformly without replacement,
// returned in registry order so per-tick iteration stays deterministic.
func (s *Simulator) sampleActive(rng *rand.Rand, n int) []Machine {
	if n >= len(s.Machines) {
		if n > len(s.Machines) {
			logrus.Warnf("active_machines %d exceeds machine_count %d, clamping", n, len(s.Machines))
		}
		out := make([]Machine, len(s.Machines))
		copy(out, s.Machines)
		return out
	}
	idx := rng.Perm(len(s.Machines))[:n]
	sort.Ints(idx)
	out := make([]Machine, 0, n)
	for _, i := range idx {
		out = append(out, s.Machines[i])
	}
	return out
}

func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func secondsDuration(seconds float64) time.Duration {
	return time.Duration(seconds * float64(time.Second))
}
