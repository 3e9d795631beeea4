// Package catalogstore keeps the coefficient reference tables in a sqlite
// file, for deployments that ship the dataset as a single .db instead of the
// embedded JSON. The store is written only by cmd/catalogtool; at runtime it
// is a read-only input resource loaded once into a catalog.Catalog.
package catalogstore

import (
	"database/sql"
	"errors"
	"fmt"

	"irrigation-plan-service/internal/catalog"
	"irrigation-plan-service/internal/domain"
)

// Initialize the sqlite reference schema.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createCropsQuery := `
	CREATE TABLE IF NOT EXISTS crop_coefficients (
		crop_name TEXT PRIMARY KEY,
		kc_initial REAL NOT NULL,
		kc_mid REAL NOT NULL,
		kc_end REAL NOT NULL,
		source_type TEXT NOT NULL,
		source_title TEXT NOT NULL,
		source_url TEXT NOT NULL,
		source_table TEXT NOT NULL
	);
	`

	createPlantsQuery := `
	CREATE TABLE IF NOT EXISTS plant_coefficients (
		profile_name TEXT PRIMARY KEY,
		kc_value REAL NOT NULL,
		source_type TEXT NOT NULL,
		source_title TEXT NOT NULL,
		source_url TEXT NOT NULL,
		source_table TEXT NOT NULL
	);
	`

	for i, stmt := range []string{createCropsQuery, createPlantsQuery} {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// Seed populates the reference tables from a loaded catalog.
func Seed(db *sql.DB, cat *catalog.Catalog) error {
	if db == nil {
		return errors.New("seed catalog: DB is nil")
	}
	if cat == nil {
		return errors.New("seed catalog: catalog is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed catalog: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	cropQuery := `
	INSERT OR REPLACE INTO crop_coefficients (
		crop_name, kc_initial, kc_mid, kc_end,
		source_type, source_title, source_url, source_table
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?);
	`
	cropStmt, err := tx.Prepare(cropQuery)
	if err != nil {
		return fmt.Errorf("seed catalog: prepare crop insert: %w", err)
	}
	defer cropStmt.Close()

	for _, rec := range cat.CropRecords() {
		if _, err := cropStmt.Exec(rec.Name, rec.Initial, rec.Mid, rec.End,
			rec.Source.Type, rec.Source.Title, rec.Source.URL, rec.Source.Table); err != nil {
			return fmt.Errorf("seed catalog: insert crop %q: %w", rec.Name, err)
		}
	}

	plantQuery := `
	INSERT OR REPLACE INTO plant_coefficients (
		profile_name, kc_value,
		source_type, source_title, source_url, source_table
	)
	VALUES (?, ?, ?, ?, ?, ?);
	`
	plantStmt, err := tx.Prepare(plantQuery)
	if err != nil {
		return fmt.Errorf("seed catalog: prepare plant insert: %w", err)
	}
	defer plantStmt.Close()

	for _, rec := range cat.PlantRecords() {
		if _, err := plantStmt.Exec(rec.Name, rec.Kc,
			rec.Source.Type, rec.Source.Title, rec.Source.URL, rec.Source.Table); err != nil {
			return fmt.Errorf("seed catalog: insert plant profile %q: %w", rec.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed catalog: commit tx: %w", err)
	}

	return nil
}

// LoadCatalog reads the reference tables into an immutable catalog. The
// catalog's load-time contract (stage set, Kc sanity range) applies to rows
// the same way it applies to the embedded dataset.
func LoadCatalog(db *sql.DB) (*catalog.Catalog, error) {
	if db == nil {
		return nil, errors.New("load catalog: DB is nil")
	}

	crops, err := loadCrops(db)
	if err != nil {
		return nil, err
	}
	plants, err := loadPlants(db)
	if err != nil {
		return nil, err
	}

	cat, err := catalog.New(crops, plants)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return cat, nil
}

func loadCrops(db *sql.DB) ([]catalog.CropRecord, error) {
	query := `
	SELECT
		crop_name, kc_initial, kc_mid, kc_end,
		source_type, source_title, source_url, source_table
	FROM crop_coefficients
	ORDER BY crop_name;
	`
	rows, err := db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("load catalog: query crop_coefficients: %w", err)
	}
	defer rows.Close()

	var crops []catalog.CropRecord
	for rows.Next() {
		var rec catalog.CropRecord
		var src domain.CoefficientSource
		if err := rows.Scan(&rec.Name, &rec.Initial, &rec.Mid, &rec.End,
			&src.Type, &src.Title, &src.URL, &src.Table); err != nil {
			return nil, fmt.Errorf("load catalog: scan crop row: %w", err)
		}
		rec.Source = src
		crops = append(crops, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load catalog: crop row iteration: %w", err)
	}
	return crops, nil
}

func loadPlants(db *sql.DB) ([]catalog.PlantRecord, error) {
	query := `
	SELECT
		profile_name, kc_value,
		source_type, source_title, source_url, source_table
	FROM plant_coefficients
	ORDER BY profile_name;
	`
	rows, err := db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("load catalog: query plant_coefficients: %w", err)
	}
	defer rows.Close()

	var plants []catalog.PlantRecord
	for rows.Next() {
		var rec catalog.PlantRecord
		var src domain.CoefficientSource
		if err := rows.Scan(&rec.Name, &rec.Kc,
			&src.Type, &src.Title, &src.URL, &src.Table); err != nil {
			return nil, fmt.Errorf("load catalog: scan plant row: %w", err)
		}
		rec.Source = src
		plants = append(plants, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load catalog: plant row iteration: %w", err)
	}
	return plants, nil
}
