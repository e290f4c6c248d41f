package sim

import (
	"fmt"
	"math/rand"
	"time"
)

// Lot changeover downtime bounds, in minutes.
const (
	lotChangeMinMinutes = 10
	lotChangeMaxMinutes = 15
)

// LotManager mints lot identifiers at defined boundaries: the first
// shift of the run, and once per calendar day when a shift's end
// crosses midnight. Lot ids embed the shift-end date and a strictly
// increasing sequence number.
type LotManager struct {
	current     string
	seq         int
	lastRollDay time.Time // date of the shift end that triggered the last roll
}

// NewLotManager returns a manager with no lot minted yet.
func NewLotManager() *LotManager {
	return &LotManager{seq: 1}
}

// Current returns the active lot id, or "" before the first roll.
func (lm *LotManager) Current() string {
	return lm.current
}

// Minted returns how many lots have been minted so far.
func (lm *LotManager) Minted() int {
	return lm.seq - 1
}

// MaybeRoll mints a new lot id when no lot exists yet or when the
// shift's end instant falls at hour 0 (midnight rollover), at most
// once per calendar day. It returns the changeover downtime to add to
// the simulated clock; the downtime is attributed to no machine and
// produces no record.
func (lm *LotManager) MaybeRoll(shiftEnd time.Time, rng *rand.Rand) (time.Duration, bool) {
	endDay := time.Date(shiftEnd.Year(), shiftEnd.Month(), shiftEnd.Day(), 0, 0, 0, 0, shiftEnd.Location())
	if lm.current != "" {
		if shiftEnd.Hour() != 0 || endDay.Equal(lm.lastRollDay) {
			return 0, false
		}
	}

	lm.current = fmt.Sprintf("MI%sA%02d", shiftEnd.Format("060102"), lm.seq)
	lm.seq++
	lm.lastRollDay = endDay

	downtime := uniform(rng, lotChangeMinMinutes, lotChangeMaxMinutes)
	return time.Duration(downtime * float64(time.Minute)), true
}
