package core

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"math"
)

// Hash represents a cryptographic hash
type Hash string

// NewHash creates a new hash from data
func NewHash(data []byte) Hash {
	sum := sha256.Sum256(data)
	return Hash(hex.EncodeToString(sum[:]))
}

// String returns the string representation
func (h Hash) String() string {
	return string(h)
}

// IsEmpty checks if the hash is empty
func (h Hash) IsEmpty() bool {
	return h == ""
}

// Equals checks if two hashes are equal
func (h Hash) Equals(other Hash) bool {
	return h == other
}

// DatasetHash fingerprints a coordinate set so reports can state which
// data a run was computed against.
type DatasetHash Hash

func (h DatasetHash) String() string { return Hash(h).String() }

// ComputeDatasetHash hashes spatial and temporal coordinates in order.
// Row order matters: two datasets with the same events in a different
// order hash differently, matching the index-based test semantics.
func ComputeDatasetHash(space [][]float64, times []float64) DatasetHash {
	buf := make([]byte, 8)
	hasher := sha256.New()
	write := func(v float64) {
		binary.BigEndian.PutUint64(buf, math.Float64bits(v))
		hasher.Write(buf)
	}
	for _, row := range space {
		for _, v := range row {
			write(v)
		}
	}
	for _, v := range times {
		write(v)
	}
	return DatasetHash(hex.EncodeToString(hasher.Sum(nil)))
}
