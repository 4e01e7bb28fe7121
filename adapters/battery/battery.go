// Package battery orchestrates the full space-time interaction test
// suite over one event set.
package battery

import (
	"context"
	"fmt"

	"github.com/montanaflynn/stats"
	"golang.org/x/sync/errgroup"

	"spacetime/adapters/stats/interaction"
	"spacetime/domain/core"
	"spacetime/domain/events"
	"spacetime/domain/result"
	"spacetime/ports"
)

// InteractionBattery runs every test in the suite, each on its own
// named seeded stream so results are reproducible per test and the
// tests can execute concurrently without sharing generator state.
type InteractionBattery struct {
	rng ports.RNGPort
}

// New creates a battery around a stream factory.
func New(rng ports.RNGPort) *InteractionBattery {
	return &InteractionBattery{rng: rng}
}

// Run executes the five tests and assembles a report. Zero-valued
// Mantel transform parameters are replaced with the conventional
// reciprocal transform (con 1, pow -1).
func (b *InteractionBattery) Run(ctx context.Context, set *events.EventSet, opts ports.BatteryOptions) (*result.BatteryReport, error) {
	if set == nil {
		return nil, fmt.Errorf("nil event set")
	}
	if opts.Scon == 0 && opts.Spow == 0 && opts.Tcon == 0 && opts.Tpow == 0 {
		opts.Scon, opts.Spow, opts.Tcon, opts.Tpow = 1.0, -1.0, 1.0, -1.0
	}

	report := &result.BatteryReport{
		RunID:        core.RunID(core.NewID()),
		DatasetHash:  set.Hash(),
		N:            set.N(),
		Delta:        opts.Delta,
		Tau:          opts.Tau,
		K:            opts.K,
		Permutations: opts.Permutations,
		Seed:         opts.Seed,
		StartedAt:    core.Now(),
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		stream, err := b.rng.SeededStream(ctx, "knox", opts.Seed)
		if err != nil {
			return err
		}
		res, err := interaction.Knox(set, opts.Delta, opts.Tau, opts.Permutations, opts.Keep, stream)
		if err != nil {
			return fmt.Errorf("knox: %w", err)
		}
		report.Knox = res
		return nil
	})
	g.Go(func() error {
		stream, err := b.rng.SeededStream(ctx, "local-knox", opts.Seed)
		if err != nil {
			return err
		}
		res, err := interaction.KnoxLocal(set, opts.Delta, opts.Tau, opts.Permutations, opts.Keep, stream)
		if err != nil {
			return fmt.Errorf("local knox: %w", err)
		}
		report.LocalKnox = res
		return nil
	})
	g.Go(func() error {
		stream, err := b.rng.SeededStream(ctx, "mantel", opts.Seed)
		if err != nil {
			return err
		}
		res, err := interaction.Mantel(set, opts.Permutations, opts.Scon, opts.Spow, opts.Tcon, opts.Tpow, stream)
		if err != nil {
			return fmt.Errorf("mantel: %w", err)
		}
		report.Mantel = res
		return nil
	})
	g.Go(func() error {
		stream, err := b.rng.SeededStream(ctx, "jacquez", opts.Seed)
		if err != nil {
			return err
		}
		res, err := interaction.Jacquez(set, opts.K, opts.Permutations, stream)
		if err != nil {
			return fmt.Errorf("jacquez: %w", err)
		}
		report.Jacquez = res
		return nil
	})
	g.Go(func() error {
		stream, err := b.rng.SeededStream(ctx, "modified-knox", opts.Seed)
		if err != nil {
			return err
		}
		res, err := interaction.ModifiedKnox(set, opts.Delta, opts.Tau, opts.Permutations, opts.Keep, stream)
		if err != nil {
			return fmt.Errorf("modified knox: %w", err)
		}
		report.ModifiedKnox = res
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if opts.Keep {
		report.KnoxNull = summarize(report.Knox.Sim)
		report.ModifiedNull = summarize(report.ModifiedKnox.Sim)
	}
	report.FinishedAt = core.Now()
	return report, nil
}

// summarize describes a permutation null distribution. A nil result
// means the distribution was empty.
func summarize(dist []float64) *result.NullSummary {
	if len(dist) == 0 {
		return nil
	}
	mean, err := stats.Mean(dist)
	if err != nil {
		return nil
	}
	// The remaining moments cannot fail once Mean has succeeded.
	sd, _ := stats.StandardDeviation(dist)
	lo, _ := stats.Min(dist)
	hi, _ := stats.Max(dist)
	p95, _ := stats.Percentile(dist, 95)
	p99, _ := stats.Percentile(dist, 99)
	return &result.NullSummary{
		Mean:         mean,
		StdDev:       sd,
		Min:          lo,
		Max:          hi,
		Percentile95: p95,
		Percentile99: p99,
	}
}
