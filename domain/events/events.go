// Package events holds the immutable point-event set that every
// space-time interaction test consumes.
package events

import (
	"fmt"

	"spacetime/domain/core"
)

// EventSet is an immutable collection of n point events, each with a
// 2-D spatial coordinate and a 1-D temporal coordinate. Row i of the
// spatial and temporal arrays refers to the same event.
type EventSet struct {
	space [][]float64
	times []float64
	hash  core.DatasetHash
}

// New validates and copies the supplied coordinates. It requires at
// least two events, equal array lengths, and two spatial dimensions
// per row.
func New(space [][]float64, times []float64) (*EventSet, error) {
	if len(space) != len(times) {
		return nil, core.NewLengthMismatchError(len(space), len(times))
	}
	if len(space) < 2 {
		return nil, fmt.Errorf("%w: got %d", core.ErrInsufficientEvents, len(space))
	}
	s := make([][]float64, len(space))
	for i, row := range space {
		if len(row) != 2 {
			return nil, fmt.Errorf("%w: row %d has %d dimensions, want 2", core.ErrRaggedCoordinates, i, len(row))
		}
		s[i] = []float64{row[0], row[1]}
	}
	t := make([]float64, len(times))
	copy(t, times)
	return &EventSet{
		space: s,
		times: t,
		hash:  core.ComputeDatasetHash(s, t),
	}, nil
}

// N returns the number of events.
func (e *EventSet) N() int {
	return len(e.times)
}

// Space returns a copy of the n-by-2 spatial coordinates.
func (e *EventSet) Space() [][]float64 {
	out := make([][]float64, len(e.space))
	for i, row := range e.space {
		out[i] = []float64{row[0], row[1]}
	}
	return out
}

// Times returns a copy of the temporal coordinates.
func (e *EventSet) Times() []float64 {
	out := make([]float64, len(e.times))
	copy(out, e.times)
	return out
}

// TimeColumn returns the temporal coordinates as an n-by-1 matrix, the
// shape the neighbor search and distance-matrix code expects.
func (e *EventSet) TimeColumn() [][]float64 {
	out := make([][]float64, len(e.times))
	for i, v := range e.times {
		out[i] = []float64{v}
	}
	return out
}

// Hash returns the dataset fingerprint computed at construction.
func (e *EventSet) Hash() core.DatasetHash {
	return e.hash
}
