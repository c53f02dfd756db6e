package snapshot

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/de-tools/boutique-reports/pkg/models/store"
	"github.com/de-tools/boutique-reports/pkg/store/duckdb"
)

const defaultListLimit = 20

// Store archives fetched reports. It is written to after a report is
// shown and never consulted to answer a request.
type Store interface {
	Save(ctx context.Context, snapshot store.ReportSnapshot) error
	// SaveAll writes every snapshot or none of them.
	SaveAll(ctx context.Context, snapshots []store.ReportSnapshot) error
	List(ctx context.Context, reportType string, limit int) ([]store.ReportSnapshot, error)
}

type snapshotStore struct {
	db *sql.DB
}

func NewStore(db *sql.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &snapshotStore{db: db}, nil
}

func (s *snapshotStore) Save(ctx context.Context, snapshot store.ReportSnapshot) error {
	columns, err := json.Marshal(snapshot.Columns)
	if err != nil {
		return fmt.Errorf("marshal columns: %w", err)
	}

	query := `
		INSERT INTO report_snapshots (
			id, report_type, filters, summary, columns, rows, row_count, fetched_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	args := []any{
		snapshot.ID,
		snapshot.ReportType,
		nullableJSON(snapshot.Filters),
		snapshot.Summary,
		string(columns),
		nullableJSON(snapshot.Rows),
		snapshot.RowCount,
		snapshot.FetchedAt,
	}

	if tx := duckdb.GetTransaction(ctx); tx != nil {
		_, err = tx.ExecContext(ctx, query, args...)
	} else {
		_, err = s.db.ExecContext(ctx, query, args...)
	}
	if err != nil {
		return fmt.Errorf("insert snapshot: %w", err)
	}
	return nil
}

func (s *snapshotStore) SaveAll(ctx context.Context, snapshots []store.ReportSnapshot) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	ctxWithTx := duckdb.WithTransaction(ctx, tx)
	for _, snap := range snapshots {
		if err := s.Save(ctxWithTx, snap); err != nil {
			_ = tx.Rollback()
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit snapshots: %w", err)
	}
	return nil
}

// List returns the newest snapshots first. An empty reportType lists all.
func (s *snapshotStore) List(ctx context.Context, reportType string, limit int) ([]store.ReportSnapshot, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}

	query := `
		SELECT id, report_type, CAST(filters AS VARCHAR), summary, CAST(columns AS VARCHAR),
			CAST(rows AS VARCHAR), row_count, fetched_at
		FROM report_snapshots
		WHERE (? = '' OR report_type = ?)
		ORDER BY fetched_at DESC
		LIMIT ?`

	rows, err := s.db.QueryContext(ctx, query, reportType, reportType, limit)
	if err != nil {
		return nil, fmt.Errorf("query snapshots: %w", err)
	}
	defer rows.Close()

	var out []store.ReportSnapshot
	for rows.Next() {
		var (
			snap             store.ReportSnapshot
			filters, records sql.NullString
			columns          sql.NullString
		)
		err := rows.Scan(
			&snap.ID,
			&snap.ReportType,
			&filters,
			&snap.Summary,
			&columns,
			&records,
			&snap.RowCount,
			&snap.FetchedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}

		if filters.Valid {
			snap.Filters = json.RawMessage(filters.String)
		}
		if records.Valid {
			snap.Rows = json.RawMessage(records.String)
		}
		if columns.Valid {
			if err := json.Unmarshal([]byte(columns.String), &snap.Columns); err != nil {
				return nil, fmt.Errorf("unmarshal columns: %w", err)
			}
		}
		out = append(out, snap)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate snapshots: %w", err)
	}
	return out, nil
}

func nullableJSON(raw json.RawMessage) any {
	if len(raw) == 0 {
		return nil
	}
	return string(raw)
}
