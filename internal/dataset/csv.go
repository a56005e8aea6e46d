package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/jengzang/movetank-go/internal/models"
)

// Required columns of the flat dataset layout
const (
	ColumnAnimalID = "animal_id"
	ColumnTime     = "time"
)

// LoadCSV reads a dataset file from disk
func LoadCSV(path string) ([]models.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()

	records, err := ParseCSV(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return records, nil
}

// ParseCSV parses the flat movement layout: one row per animal and time step
// Empty or non-numeric cells are treated as absent; rows without a usable
// time or position are skipped
func ParseCSV(r io.Reader) ([]models.Record, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmpty
		}
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		header[i] = name
		columns[name] = i
	}
	for _, required := range []string{ColumnAnimalID, ColumnTime, models.FeatureX, models.FeatureY} {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("missing required column %q", required)
		}
	}

	var records []models.Record
	skipped := 0
	line := 1
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("failed to read line %d: %w", line, err)
		}

		rec, ok := parseRow(header, row)
		if !ok {
			skipped++
			continue
		}
		records = append(records, rec)
	}

	if skipped > 0 {
		log.Printf("[Dataset] Skipped %d malformed rows", skipped)
	}
	if len(records) == 0 {
		return nil, ErrEmpty
	}
	return records, nil
}

// parseRow converts one csv row into a record
func parseRow(header, row []string) (models.Record, bool) {
	rec := models.Record{}
	var hasTime, hasX, hasY bool

	for i, name := range header {
		if i >= len(row) {
			break
		}
		cell := strings.TrimSpace(row[i])

		if name == ColumnAnimalID {
			rec.AnimalID = cell
			continue
		}

		v, ok := parseNumber(cell)
		if !ok {
			continue
		}

		switch {
		case name == ColumnTime:
			rec.Time = int(v)
			hasTime = true
		case name == models.FeatureX:
			rec.X = v
			hasX = true
		case name == models.FeatureY:
			rec.Y = v
			hasY = true
		case name == models.FeatureDirection:
			rec.Direction = v
		case name == models.FeatureAverageSpeed:
			rec.AverageSpeed = v
		case name == models.FeatureAverageAcceleration:
			rec.AverageAcceleration = v
		case strings.HasPrefix(name, models.ClusterPrefix):
			k, err := strconv.Atoi(strings.TrimPrefix(name, models.ClusterPrefix))
			if err != nil {
				continue
			}
			if rec.Clusters == nil {
				rec.Clusters = make(map[int]int)
			}
			rec.Clusters[k] = int(v)
		case strings.HasPrefix(name, models.WeightPrefix):
			if rec.Weights == nil {
				rec.Weights = make(map[string]float64)
			}
			rec.Weights[strings.TrimPrefix(name, models.WeightPrefix)] = v
		default:
			if rec.Features == nil {
				rec.Features = make(map[string]float64)
			}
			rec.Features[name] = v
		}
	}

	if rec.AnimalID == "" || !hasTime || !hasX || !hasY {
		return rec, false
	}
	return rec, true
}

// parseNumber parses a numeric cell, rejecting empty, NaN and infinite values
func parseNumber(cell string) (float64, bool) {
	if cell == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
