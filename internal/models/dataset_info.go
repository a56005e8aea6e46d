package models

import "time"

// DatasetInfo describes a dataset stored in the database
type DatasetInfo struct {
	Name        string    `json:"name" db:"name"`
	Source      string    `json:"source" db:"source"` // Imported file
	RecordCount int       `json:"record_count" db:"record_count"`
	ImportedAt  time.Time `json:"imported_at" db:"imported_at"`
}

// DatasetSummary describes a loaded dataset
type DatasetSummary struct {
	Name          string     `json:"name"`
	Records       int        `json:"records"`
	Times         []int      `json:"times"`
	Population    int        `json:"population"` // Animals in the first frame
	WeightMin     float64    `json:"weight_min"`
	WeightMax     float64    `json:"weight_max"`
	Environment   [4]float64 `json:"environment"` // min x, min y, max x, max y
	Granularities []int      `json:"granularities"`
	NumClusters   int        `json:"num_clusters"`
	Features      []string   `json:"features"`
}
