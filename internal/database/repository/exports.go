package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Export is a CSV file produced by a download run.
type Export struct {
	ID         string
	Filename   string
	Path       string
	StartDate  string
	EndDate    string
	Indicators []string
	Rows       int
	Columns    int
	CreatedAt  time.Time
}

// ExportRepo records exports.
type ExportRepo struct {
	db *sql.DB
}

func NewExportRepo(db *sql.DB) *ExportRepo { return &ExportRepo{db: db} }

// Record stores e. Re-exporting the same filename replaces the earlier
// record. A missing ID is generated.
func (r *ExportRepo) Record(ctx context.Context, e Export) (Export, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC().Truncate(time.Second)
	}
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO exports(id, filename, path, start_date, end_date, indicators, row_count, col_count, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(filename) DO UPDATE SET
	 path=excluded.path,
	 start_date=excluded.start_date,
	 end_date=excluded.end_date,
	 indicators=excluded.indicators,
	 row_count=excluded.row_count,
	 col_count=excluded.col_count,
	 created_at=excluded.created_at;
	`, e.ID, e.Filename, e.Path, e.StartDate, e.EndDate, strings.Join(e.Indicators, "\n"), e.Rows, e.Columns, e.CreatedAt)
	if err != nil {
		return Export{}, err
	}
	got, err := r.ByFilename(ctx, e.Filename)
	if err != nil {
		return Export{}, err
	}
	return *got, nil
}

const exportColumns = `id, filename, path, start_date, end_date, indicators, row_count, col_count, created_at`

func scanExport(row interface{ Scan(...any) error }) (Export, error) {
	var e Export
	var indicators string
	if err := row.Scan(&e.ID, &e.Filename, &e.Path, &e.StartDate, &e.EndDate, &indicators, &e.Rows, &e.Columns, &e.CreatedAt); err != nil {
		return Export{}, err
	}
	if indicators != "" {
		e.Indicators = strings.Split(indicators, "\n")
	}
	return e, nil
}

// ByFilename returns nil when no export has that name.
func (r *ExportRepo) ByFilename(ctx context.Context, filename string) (*Export, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+exportColumns+` FROM exports WHERE filename = ?`, filename)
	e, err := scanExport(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

// List returns exports newest first.
func (r *ExportRepo) List(ctx context.Context) ([]Export, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+exportColumns+` FROM exports ORDER BY created_at DESC, filename`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Export
	for rows.Next() {
		e, err := scanExport(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *ExportRepo) Delete(ctx context.Context, filename string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM exports WHERE filename = ?`, filename)
	return err
}
