package ports

import (
	"context"

	"spacetime/domain/events"
	"spacetime/domain/result"
)

// BatteryOptions configures one full run of the interaction test
// battery.
type BatteryOptions struct {
	Delta        float64 // spatial threshold
	Tau          float64 // temporal threshold
	K            int     // nearest-neighbor count for the Jacquez test
	Permutations int
	Keep         bool // retain permutation distributions

	// Mantel distance transforms, applied as (d + con)^pow.
	Scon, Spow, Tcon, Tpow float64

	Seed int64
}

// BatteryPort runs the complete space-time interaction test battery
// over one event set.
type BatteryPort interface {
	Run(ctx context.Context, set *events.EventSet, opts BatteryOptions) (*result.BatteryReport, error)
}
