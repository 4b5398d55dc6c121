package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/blueparser/constants"
	"github.com/joseph-ayodele/blueparser/internal/common"
	"github.com/joseph-ayodele/blueparser/internal/entity"
)

// MaxContextLen bounds the stored specification context in runes.
const MaxContextLen = 500

type DrawingRepository interface {
	Save(ctx context.Context, source string, result *entity.ParseResult) (*entity.Drawing, error)
	Get(ctx context.Context, id uuid.UUID) (*entity.Drawing, error)
	List(ctx context.Context, limit int) ([]*entity.Drawing, error)
	Specifications(ctx context.Context, drawingID uuid.UUID) ([]entity.Specification, error)
}

type drawingRepository struct {
	db     *DB
	logger *slog.Logger
	now    func() time.Time
}

func NewDrawingRepository(db *DB, logger *slog.Logger) DrawingRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &drawingRepository{
		db:     db,
		logger: logger,
		now:    time.Now,
	}
}

// Save stores the drawing row and its specifications in one transaction.
func (r *drawingRepository) Save(ctx context.Context, source string, result *entity.ParseResult) (*entity.Drawing, error) {
	if result == nil {
		return nil, fmt.Errorf("save drawing: %w", common.ErrInvalidInput)
	}
	body, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("encode result: %w", err)
	}

	d := &entity.Drawing{
		ID:          uuid.New(),
		Source:      source,
		DrawingType: result.Classification.DrawingType,
		Discipline:  result.Classification.Discipline,
		Confidence:  result.Classification.Confidence,
		IsValid:     result.Validation != nil && result.Validation.IsValid,
		CreatedAt:   r.now().UTC().Truncate(time.Second),
		Result:      body,
	}
	if tb := result.UniversalData.TitleBlock; tb != nil {
		d.DrawingNumber = tb.DrawingNumber
		d.Title = tb.DrawingTitle
		d.Scale = tb.Scale
		d.Date = tb.Date
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: begin: %v", common.ErrDatabase, err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, r.db.rebind(`INSERT INTO drawings
		(id, source, drawing_number, title, drawing_type, discipline, scale, date, confidence, is_valid, result_json, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`),
		d.ID.String(), d.Source, d.DrawingNumber, d.Title, string(d.DrawingType), string(d.Discipline),
		d.Scale, d.Date, d.Confidence, d.IsValid, string(body), d.CreatedAt.Format(time.RFC3339))
	if err != nil {
		r.logger.Error("failed to insert drawing", "source", source, "error", err)
		return nil, fmt.Errorf("%w: insert drawing: %v", common.ErrDatabase, err)
	}

	insertSpec := r.db.rebind(`INSERT INTO specifications (drawing_id, spec_type, value, unit, context) VALUES (?, ?, ?, ?, ?)`)
	for _, s := range result.UniversalData.Specification {
		var unit *string
		if s.Unit != "" {
			unit = &s.Unit
		}
		if _, err := tx.ExecContext(ctx, insertSpec, d.ID.String(), s.Type, s.Value, unit, truncate(s.Context, MaxContextLen)); err != nil {
			r.logger.Error("failed to insert specification", "drawing_id", d.ID, "error", err)
			return nil, fmt.Errorf("%w: insert specification: %v", common.ErrDatabase, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("%w: commit: %v", common.ErrDatabase, err)
	}
	r.logger.Debug("saved drawing", "drawing_id", d.ID, "source", source, "specifications", len(result.UniversalData.Specification))
	return d, nil
}

const drawingColumns = `id, source, drawing_number, title, drawing_type, discipline, scale, date, confidence, is_valid, result_json, created_at`

func (r *drawingRepository) Get(ctx context.Context, id uuid.UUID) (*entity.Drawing, error) {
	row := r.db.QueryRowContext(ctx, r.db.rebind(`SELECT `+drawingColumns+` FROM drawings WHERE id = ?`), id.String())
	d, err := scanDrawing(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("drawing %s: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: get drawing: %v", common.ErrDatabase, err)
	}
	return d, nil
}

// List returns the most recent drawings first. A non-positive limit returns all rows.
func (r *drawingRepository) List(ctx context.Context, limit int) ([]*entity.Drawing, error) {
	query := `SELECT ` + drawingColumns + ` FROM drawings ORDER BY created_at DESC, id`
	var args []any
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := r.db.QueryContext(ctx, r.db.rebind(query), args...)
	if err != nil {
		r.logger.Error("failed to list drawings", "error", err)
		return nil, fmt.Errorf("%w: list drawings: %v", common.ErrDatabase, err)
	}
	defer rows.Close()

	var out []*entity.Drawing
	for rows.Next() {
		d, err := scanDrawing(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scan drawing: %v", common.ErrDatabase, err)
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list drawings: %v", common.ErrDatabase, err)
	}
	return out, nil
}

func (r *drawingRepository) Specifications(ctx context.Context, drawingID uuid.UUID) ([]entity.Specification, error) {
	rows, err := r.db.QueryContext(ctx,
		r.db.rebind(`SELECT spec_type, value, unit, context FROM specifications WHERE drawing_id = ? ORDER BY id`),
		drawingID.String())
	if err != nil {
		return nil, fmt.Errorf("%w: list specifications: %v", common.ErrDatabase, err)
	}
	defer rows.Close()

	out := []entity.Specification{}
	for rows.Next() {
		var (
			s             entity.Specification
			unit, excerpt sql.NullString
		)
		if err := rows.Scan(&s.Type, &s.Value, &unit, &excerpt); err != nil {
			return nil, fmt.Errorf("%w: scan specification: %v", common.ErrDatabase, err)
		}
		s.Unit = unit.String
		s.Context = excerpt.String
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list specifications: %v", common.ErrDatabase, err)
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanDrawing(s scanner) (*entity.Drawing, error) {
	var (
		d                                    entity.Drawing
		id, drawingType, discipline, created string
		number, title, scale, date           sql.NullString
		result                               string
	)
	if err := s.Scan(&id, &d.Source, &number, &title, &drawingType, &discipline, &scale, &date,
		&d.Confidence, &d.IsValid, &result, &created); err != nil {
		return nil, err
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("drawing id %q: %w", id, err)
	}
	d.ID = parsed
	d.DrawingType = constants.DrawingType(drawingType)
	d.Discipline = constants.Discipline(discipline)
	d.DrawingNumber = nullable(number)
	d.Title = nullable(title)
	d.Scale = nullable(scale)
	d.Date = nullable(date)
	d.Result = []byte(result)
	if d.CreatedAt, err = time.Parse(time.RFC3339, created); err != nil {
		return nil, fmt.Errorf("created_at %q: %w", created, err)
	}
	return &d, nil
}

func nullable(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
