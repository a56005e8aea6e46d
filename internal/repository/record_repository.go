package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/jengzang/movetank-go/internal/database"
	"github.com/jengzang/movetank-go/internal/models"
)

// RecordRepository handles database operations for movement records
type RecordRepository struct {
	db *sql.DB
}

// NewRecordRepository creates a new record repository
func NewRecordRepository(db *sql.DB) *RecordRepository {
	return &RecordRepository{db: db}
}

// ReplaceDataset stores the records of a dataset, replacing any earlier import
func (r *RecordRepository) ReplaceDataset(ctx context.Context, name, source string, records []models.Record) error {
	return database.Transaction(r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM records WHERE dataset = ?", name); err != nil {
			return fmt.Errorf("failed to clear dataset %s: %w", name, err)
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO datasets (name, source, record_count, imported_at) VALUES (?, ?, ?, ?)
			ON CONFLICT(name) DO UPDATE SET source = excluded.source,
				record_count = excluded.record_count, imported_at = excluded.imported_at`,
			name, source, len(records), time.Now().UTC()); err != nil {
			return fmt.Errorf("failed to register dataset %s: %w", name, err)
		}

		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO records (dataset, animal_id, time, x, y, direction, average_speed,
				average_acceleration, clusters, weights, features)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("failed to prepare insert: %w", err)
		}
		defer stmt.Close()

		for i := range records {
			rec := &records[i]
			clusters, err := json.Marshal(rec.Clusters)
			if err != nil {
				return fmt.Errorf("failed to encode clusters of %s: %w", rec.AnimalID, err)
			}
			weights, err := json.Marshal(finite(rec.Weights))
			if err != nil {
				return fmt.Errorf("failed to encode weights of %s: %w", rec.AnimalID, err)
			}
			features, err := json.Marshal(finite(rec.Features))
			if err != nil {
				return fmt.Errorf("failed to encode features of %s: %w", rec.AnimalID, err)
			}

			if _, err := stmt.ExecContext(ctx, name, rec.AnimalID, rec.Time, rec.X, rec.Y, rec.Direction,
				rec.AverageSpeed, rec.AverageAcceleration, string(clusters), string(weights), string(features)); err != nil {
				return fmt.Errorf("failed to insert record %s@%d: %w", rec.AnimalID, rec.Time, err)
			}
		}
		return nil
	})
}

// LoadDataset reads every record of a dataset ordered by time and insertion
func (r *RecordRepository) LoadDataset(ctx context.Context, name string) ([]models.Record, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT animal_id, time, x, y, direction, average_speed, average_acceleration,
			clusters, weights, features
		FROM records WHERE dataset = ? ORDER BY time, id`, name)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer rows.Close()

	var records []models.Record
	for rows.Next() {
		var rec models.Record
		var clusters, weights, features string
		if err := rows.Scan(&rec.AnimalID, &rec.Time, &rec.X, &rec.Y, &rec.Direction,
			&rec.AverageSpeed, &rec.AverageAcceleration, &clusters, &weights, &features); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		if err := json.Unmarshal([]byte(clusters), &rec.Clusters); err != nil {
			return nil, fmt.Errorf("failed to decode clusters of %s: %w", rec.AnimalID, err)
		}
		if err := json.Unmarshal([]byte(weights), &rec.Weights); err != nil {
			return nil, fmt.Errorf("failed to decode weights of %s: %w", rec.AnimalID, err)
		}
		if err := json.Unmarshal([]byte(features), &rec.Features); err != nil {
			return nil, fmt.Errorf("failed to decode features of %s: %w", rec.AnimalID, err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read records: %w", err)
	}
	return records, nil
}

// ListDatasets returns the stored datasets by name
func (r *RecordRepository) ListDatasets(ctx context.Context) ([]models.DatasetInfo, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT name, source, record_count, imported_at FROM datasets ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to query datasets: %w", err)
	}
	defer rows.Close()

	var infos []models.DatasetInfo
	for rows.Next() {
		var info models.DatasetInfo
		if err := rows.Scan(&info.Name, &info.Source, &info.RecordCount, &info.ImportedAt); err != nil {
			return nil, fmt.Errorf("failed to scan dataset: %w", err)
		}
		infos = append(infos, info)
	}
	return infos, rows.Err()
}

// finite drops values JSON cannot carry
func finite(values map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(values))
	for k, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		out[k] = v
	}
	return out
}
