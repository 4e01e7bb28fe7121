package battery

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spacetime/adapters/rng"
	"spacetime/internal/testkit"
	"spacetime/ports"
)

func defaultOpts() ports.BatteryOptions {
	return ports.BatteryOptions{
		Delta:        1.5,
		Tau:          1.5,
		K:            2,
		Permutations: 19,
		Keep:         true,
		Seed:         7,
	}
}

func TestBatteryRunsAllTests(t *testing.T) {
	set := testkit.LineEvents(10)
	rep, err := New(rng.New()).Run(context.Background(), set, defaultOpts())
	require.NoError(t, err)

	require.NotNil(t, rep.Knox)
	require.NotNil(t, rep.LocalKnox)
	require.NotNil(t, rep.Mantel)
	require.NotNil(t, rep.Jacquez)
	require.NotNil(t, rep.ModifiedKnox)

	assert.Equal(t, 10, rep.N)
	assert.NotEmpty(t, string(rep.RunID))
	assert.Equal(t, set.Hash(), rep.DatasetHash)
	assert.False(t, rep.StartedAt.IsZero())
	assert.False(t, rep.FinishedAt.IsZero())
}

func TestBatteryInternalConsistency(t *testing.T) {
	set := testkit.LineEvents(10)
	rep, err := New(rng.New()).Run(context.Background(), set, defaultOpts())
	require.NoError(t, err)

	// Local statistics attribute each pair to both endpoints.
	sum := 0
	for _, v := range rep.LocalKnox.NSTi {
		sum += v
	}
	assert.Equal(t, 2*rep.Knox.NST, sum)

	// Global fields agree between the two Knox variants.
	assert.Equal(t, rep.Knox.NST, rep.LocalKnox.NST)
	assert.Equal(t, rep.Knox.NS, rep.LocalKnox.NS)

	assert.InDelta(t, float64(rep.Knox.Pairs), rep.Knox.Observed.Total(), 1e-9)
	assert.LessOrEqual(t, rep.Jacquez.Stat, rep.N*rep.Jacquez.K)
}

func TestBatteryNullSummaries(t *testing.T) {
	set := testkit.LineEvents(10)
	rep, err := New(rng.New()).Run(context.Background(), set, defaultOpts())
	require.NoError(t, err)

	require.NotNil(t, rep.KnoxNull)
	require.NotNil(t, rep.ModifiedNull)
	assert.GreaterOrEqual(t, rep.KnoxNull.Max, rep.KnoxNull.Min)
	assert.GreaterOrEqual(t, rep.KnoxNull.Percentile99, rep.KnoxNull.Percentile95)
}

func TestBatteryClusteredSignal(t *testing.T) {
	// Three clusters tight in both space and time: every within-cluster
	// pair is a space-time pair and clusters sit far apart, so NST is
	// exactly 3 * C(4,2) and the permutation p-value is small.
	set := testkit.ClusteredEvents(rand.New(rand.NewSource(2)), 3, 4, 5)
	opts := defaultOpts()
	opts.Delta = 10
	opts.Tau = 10
	opts.Permutations = 99

	rep, err := New(rng.New()).Run(context.Background(), set, opts)
	require.NoError(t, err)
	assert.Equal(t, 18, rep.Knox.NST)
	assert.Equal(t, 18, rep.Knox.NS)
	assert.Equal(t, 18, rep.Knox.NT)
	assert.Less(t, rep.Knox.PSim, 0.5)
	assert.Less(t, rep.Knox.PPoisson, 0.01)
}

func TestBatteryDeterministic(t *testing.T) {
	set := testkit.UniformEvents(rand.New(rand.NewSource(4)), 12, 50, 50)
	opts := defaultOpts()
	opts.Delta = 15
	opts.Tau = 15

	a, err := New(rng.New()).Run(context.Background(), set, opts)
	require.NoError(t, err)
	b, err := New(rng.New()).Run(context.Background(), set, opts)
	require.NoError(t, err)

	assert.Equal(t, a.Knox.PSim, b.Knox.PSim)
	assert.Equal(t, a.LocalKnox.PSims, b.LocalKnox.PSims)
	assert.Equal(t, a.Mantel.PSim, b.Mantel.PSim)
	assert.Equal(t, a.Jacquez.PSim, b.Jacquez.PSim)
	assert.Equal(t, a.ModifiedKnox.PSim, b.ModifiedKnox.PSim)
}

func TestBatteryMantelTransformDefaults(t *testing.T) {
	set := testkit.LineEvents(8)
	opts := defaultOpts()
	opts.Scon, opts.Spow, opts.Tcon, opts.Tpow = 0, 0, 0, 0

	rep, err := New(rng.New()).Run(context.Background(), set, opts)
	require.NoError(t, err)
	require.NotNil(t, rep.Mantel)
	// The reciprocal default keeps the statistic finite even though a
	// literal (d+0)^0 transform would flatten both vectors.
	assert.False(t, rep.Mantel.Stat != rep.Mantel.Stat) // NaN check
}

func TestBatteryNilSet(t *testing.T) {
	_, err := New(rng.New()).Run(context.Background(), nil, defaultOpts())
	assert.Error(t, err)
}

func TestBatteryPropagatesParameterErrors(t *testing.T) {
	set := testkit.LineEvents(8)
	opts := defaultOpts()
	opts.Delta = -1
	_, err := New(rng.New()).Run(context.Background(), set, opts)
	assert.Error(t, err)
}
