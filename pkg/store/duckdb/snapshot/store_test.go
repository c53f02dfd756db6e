package snapshot

import (
	"context"
	"encoding/json"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/de-tools/boutique-reports/pkg/models/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStore(t *testing.T) {
	t.Run("nil db", func(t *testing.T) {
		s, err := NewStore(nil)
		assert.Error(t, err)
		assert.Nil(t, s)
	})
}

func TestStore_Save(t *testing.T) {
	// Given a sqlmock DB expecting one insert
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	fetchedAt := time.Date(2025, 3, 15, 18, 0, 0, 0, time.UTC)
	snap := store.ReportSnapshot{
		ID:         "snap-1",
		ReportType: "stock_bajo",
		Summary:    "2 productos con stock bajo",
		Columns:    []string{"producto", "estado"},
		Rows:       json.RawMessage(`[{"producto":"Blusa","estado":"BAJO"}]`),
		RowCount:   1,
		FetchedAt:  fetchedAt,
	}

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO report_snapshots")).
		WithArgs("snap-1", "stock_bajo", nil, "2 productos con stock bajo",
			`["producto","estado"]`, `[{"producto":"Blusa","estado":"BAJO"}]`, 1, fetchedAt).
		WillReturnResult(sqlmock.NewResult(1, 1))

	s, err := NewStore(db)
	require.NoError(t, err)

	// When
	err = s.Save(context.Background(), snap)

	// Then
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_SaveAll(t *testing.T) {
	fetchedAt := time.Date(2025, 3, 15, 18, 0, 0, 0, time.UTC)
	snaps := []store.ReportSnapshot{
		{ID: "a", ReportType: "ventas", Columns: []string{}, FetchedAt: fetchedAt},
		{ID: "b", ReportType: "morosidad", Columns: []string{}, FetchedAt: fetchedAt},
	}

	t.Run("commits every snapshot", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO report_snapshots")).
			WithArgs("a", "ventas", nil, "", "[]", nil, 0, fetchedAt).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO report_snapshots")).
			WithArgs("b", "morosidad", nil, "", "[]", nil, 0, fetchedAt).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()

		s, err := NewStore(db)
		require.NoError(t, err)

		require.NoError(t, s.SaveAll(context.Background(), snaps))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back on failure", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO report_snapshots")).
			WillReturnError(assert.AnError)
		mock.ExpectRollback()

		s, err := NewStore(db)
		require.NoError(t, err)

		err = s.SaveAll(context.Background(), snaps)
		assert.ErrorIs(t, err, assert.AnError)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestStore_List(t *testing.T) {
	// Given one archived row
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	fetchedAt := time.Date(2025, 3, 15, 18, 0, 0, 0, time.UTC)
	cols := []string{"id", "report_type", "filters", "summary", "columns", "rows", "row_count", "fetched_at"}
	mock.ExpectQuery(regexp.QuoteMeta("FROM report_snapshots")).
		WithArgs("pagos", "pagos", 5).
		WillReturnRows(sqlmock.NewRows(cols).AddRow(
			"snap-2", "pagos", `{"metodo_pago":"efectivo"}`, "Pagos", `["método_pago"]`,
			`[{"método_pago":"qr"}]`, 1, fetchedAt,
		))

	s, err := NewStore(db)
	require.NoError(t, err)

	// When
	got, err := s.List(context.Background(), "pagos", 5)

	// Then
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "snap-2", got[0].ID)
	assert.Equal(t, []string{"método_pago"}, got[0].Columns)
	assert.JSONEq(t, `{"metodo_pago":"efectivo"}`, string(got[0].Filters))
	assert.Equal(t, fetchedAt, got[0].FetchedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_List_DefaultLimit(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("FROM report_snapshots")).
		WithArgs("", "", defaultListLimit).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	s, err := NewStore(db)
	require.NoError(t, err)

	got, err := s.List(context.Background(), "", 0)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}
