package sim

import (
	"fmt"
	"strconv"
	"unicode"
)

// Machine is one production machine in the work cell. Immutable for
// the run's duration.
type Machine struct {
	ID         string
	Efficiency float64 // fraction in (0, 1]
	CycleTime  float64 // effective seconds per cycle, base / efficiency
}

// BuildMachines derives the ordered machine set from the first machine
// id (letter prefix + zero-padded number) and a count. Each machine's
// effective cycle time is the base cycle time divided by its
// efficiency; overrides and the default efficiency are in percent.
func BuildMachines(wc WorkCellConfig, overrides map[string]float64, baseCycleSeconds float64) ([]Machine, error) {
	prefix, startNum, width, err := splitMachineID(wc.FirstMachineID)
	if err != nil {
		return nil, err
	}

	machines := make([]Machine, 0, wc.MachineCount)
	for i := 0; i < wc.MachineCount; i++ {
		id := fmt.Sprintf("%s%0*d", prefix, width, startNum+i)
		pct := wc.DefaultMachineEfficiency
		if override, ok := overrides[id]; ok {
			pct = override
		}
		eff := pct / 100.0
		machines = append(machines, Machine{
			ID:         id,
			Efficiency: eff,
			CycleTime:  baseCycleSeconds / eff,
		})
	}
	return machines, nil
}

// splitMachineID separates a machine id like "M001" into its letter
// prefix, numeric suffix, and the suffix's zero-pad width.
func splitMachineID(id string) (prefix string, num, width int, err error) {
	split := len(id)
	for i, r := range id {
		if unicode.IsDigit(r) {
			split = i
			break
		}
	}
	if split == 0 || split == len(id) {
		return "", 0, 0, fmt.Errorf("first_machine_id %q must be a letter prefix followed by digits", id)
	}
	num, err = strconv.Atoi(id[split:])
	if err != nil {
		return "", 0, 0, fmt.Errorf("first_machine_id %q has a malformed numeric suffix: %w", id, err)
	}
	return id[:split], num, len(id) - split, nil
}
