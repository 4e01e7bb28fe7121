package result

import (
	"spacetime/domain/core"
)

// NullSummary describes a permutation null distribution.
type NullSummary struct {
	Mean         float64 `json:"mean"`
	StdDev       float64 `json:"std_dev"`
	Min          float64 `json:"min"`
	Max          float64 `json:"max"`
	Percentile95 float64 `json:"percentile_95"`
	Percentile99 float64 `json:"percentile_99"`
}

// BatteryReport bundles the outputs of one full test-battery run over
// a single event set.
type BatteryReport struct {
	RunID       core.RunID       `json:"run_id"`
	DatasetHash core.DatasetHash `json:"dataset_hash"`
	N           int              `json:"n"`

	Delta        float64 `json:"delta"`
	Tau          float64 `json:"tau"`
	K            int     `json:"k"`
	Permutations int     `json:"permutations"`
	Seed         int64   `json:"seed"`

	Knox         *KnoxResult         `json:"knox,omitempty"`
	LocalKnox    *LocalKnoxResult    `json:"local_knox,omitempty"`
	Mantel       *MantelResult       `json:"mantel,omitempty"`
	Jacquez      *JacquezResult      `json:"jacquez,omitempty"`
	ModifiedKnox *ModifiedKnoxResult `json:"modified_knox,omitempty"`
	KnoxNull     *NullSummary        `json:"knox_null,omitempty"`
	ModifiedNull *NullSummary        `json:"modified_knox_null,omitempty"`

	StartedAt  core.Timestamp `json:"started_at"`
	FinishedAt core.Timestamp `json:"finished_at"`
}
