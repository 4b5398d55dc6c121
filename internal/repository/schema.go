package repository

import (
	"context"
	"fmt"

	"github.com/joseph-ayodele/blueparser/internal/common"
)

const drawingsDDL = `
CREATE TABLE IF NOT EXISTS drawings (
	id             TEXT PRIMARY KEY,
	source         TEXT NOT NULL,
	drawing_number TEXT,
	title          TEXT,
	drawing_type   TEXT NOT NULL,
	discipline     TEXT NOT NULL,
	scale          TEXT,
	date           TEXT,
	confidence     DOUBLE PRECISION NOT NULL,
	is_valid       BOOLEAN NOT NULL,
	result_json    TEXT NOT NULL,
	created_at     TEXT NOT NULL
)`

const specificationsSQLiteDDL = `
CREATE TABLE IF NOT EXISTS specifications (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	drawing_id TEXT NOT NULL REFERENCES drawings(id) ON DELETE CASCADE,
	spec_type  TEXT NOT NULL,
	value      TEXT NOT NULL,
	unit       TEXT,
	context    TEXT
)`

const specificationsPostgresDDL = `
CREATE TABLE IF NOT EXISTS specifications (
	id         BIGSERIAL PRIMARY KEY,
	drawing_id TEXT NOT NULL REFERENCES drawings(id) ON DELETE CASCADE,
	spec_type  TEXT NOT NULL,
	value      TEXT NOT NULL,
	unit       TEXT,
	context    TEXT
)`

const specificationsIndexDDL = `CREATE INDEX IF NOT EXISTS specifications_drawing_id_idx ON specifications (drawing_id)`

// Migrate creates the drawings and specifications tables when missing.
func (db *DB) Migrate(ctx context.Context) error {
	specs := specificationsSQLiteDDL
	if db.driver == common.DriverPostgres {
		specs = specificationsPostgresDDL
	}
	for _, stmt := range []string{drawingsDDL, specs, specificationsIndexDDL} {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
