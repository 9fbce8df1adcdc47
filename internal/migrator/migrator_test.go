package migrator

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"testing/fstest"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"officeBooker/internal/lib/errs"
	"officeBooker/internal/lib/logger/handlers/slogdiscard"
)

var testScripts = fstest.MapFS{
	"0001_bookings.sql": {Data: []byte("-- +migrate Up\nCREATE TABLE bookings (id INT);\n-- +migrate Down\nDROP TABLE bookings;\n")},
	"0002_index.sql":    {Data: []byte("-- +migrate Up\nCREATE INDEX idx ON bookings (id);\n-- +migrate Down\nDROP INDEX idx;\n")},
}

func newMockMigrator(t *testing.T, fsys fstest.MapFS) (*Migrator, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = db.Close()
	})

	return New(db, fsys, slogdiscard.NewDiscardLogger()), mock
}

func expectBootstrap(mock sqlmock.Sqlmock, appliedDesc ...string) {
	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS migrations`).WillReturnResult(sqlmock.NewResult(0, 0))

	rows := sqlmock.NewRows([]string{"version"})
	for _, v := range appliedDesc {
		rows.AddRow(v)
	}
	mock.ExpectQuery(`SELECT version FROM migrations ORDER BY id DESC`).WillReturnRows(rows)
}

func TestUpAppliesPendingInOrder(t *testing.T) {
	t.Parallel()

	m, mock := newMockMigrator(t, testScripts)

	expectBootstrap(mock)

	mock.ExpectBegin()
	mock.ExpectExec(`CREATE TABLE bookings`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`INSERT INTO migrations`).WithArgs("0001_bookings").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	mock.ExpectBegin()
	mock.ExpectExec(`CREATE INDEX idx`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`INSERT INTO migrations`).WithArgs("0002_index").WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	applied, err := m.Up(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"0001_bookings", "0002_index"}, applied)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpIsNoOpWhenEverythingApplied(t *testing.T) {
	t.Parallel()

	m, mock := newMockMigrator(t, testScripts)

	expectBootstrap(mock, "0002_index", "0001_bookings")

	applied, err := m.Up(context.Background())
	require.NoError(t, err)
	assert.Empty(t, applied)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpSkipsAppliedVersions(t *testing.T) {
	t.Parallel()

	m, mock := newMockMigrator(t, testScripts)

	expectBootstrap(mock, "0001_bookings")

	mock.ExpectBegin()
	mock.ExpectExec(`CREATE INDEX idx`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`INSERT INTO migrations`).WithArgs("0002_index").WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	applied, err := m.Up(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"0002_index"}, applied)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpMalformedScriptRunsNoSQL(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"0001_broken.sql": {Data: []byte("-- +migrate Up\nCREATE TABLE broken (id INT);\n")},
	}
	m, mock := newMockMigrator(t, fsys)

	expectBootstrap(mock)

	applied, err := m.Up(context.Background())

	var fileErr *errs.MigrationFileError
	require.ErrorAs(t, err, &fileErr)
	assert.Empty(t, applied)
	// no Begin/Exec expected: the migrations table is untouched
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpHaltsOnFailureKeepingEarlierVersions(t *testing.T) {
	t.Parallel()

	m, mock := newMockMigrator(t, testScripts)

	expectBootstrap(mock)

	mock.ExpectBegin()
	mock.ExpectExec(`CREATE TABLE bookings`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`INSERT INTO migrations`).WithArgs("0001_bookings").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	mock.ExpectBegin()
	mock.ExpectExec(`CREATE INDEX idx`).WillReturnError(errors.New("syntax error"))
	mock.ExpectRollback()

	applied, err := m.Up(context.Background())

	var storageErr *errs.StorageError
	require.ErrorAs(t, err, &storageErr)
	assert.Contains(t, err.Error(), "0002_index")
	assert.Equal(t, []string{"0001_bookings"}, applied)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDownRollsBackMostRecentFirst(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name  string
		steps int
		want  []string
	}{
		{name: "default one step", steps: 0, want: []string{"0002_index"}},
		{name: "two steps", steps: 2, want: []string{"0002_index", "0001_bookings"}},
		{name: "more steps than applied", steps: 10, want: []string{"0002_index", "0001_bookings"}},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			m, mock := newMockMigrator(t, testScripts)

			expectBootstrap(mock, "0002_index", "0001_bookings")

			downSQL := map[string]string{
				"0002_index":    `DROP INDEX idx`,
				"0001_bookings": `DROP TABLE bookings`,
			}
			for _, v := range tc.want {
				mock.ExpectBegin()
				mock.ExpectExec(downSQL[v]).WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectExec(`DELETE FROM migrations WHERE version`).WithArgs(v).WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectCommit()
			}

			rolled, err := m.Down(context.Background(), tc.steps)
			require.NoError(t, err)
			assert.Equal(t, tc.want, rolled)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestDownFollowsApplicationOrderNotVersionOrder(t *testing.T) {
	t.Parallel()

	m, mock := newMockMigrator(t, testScripts)

	// 0001 was applied after 0002
	expectBootstrap(mock, "0001_bookings", "0002_index")

	mock.ExpectBegin()
	mock.ExpectExec(`DROP TABLE bookings`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`DELETE FROM migrations`).WithArgs("0001_bookings").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	rolled, err := m.Down(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"0001_bookings"}, rolled)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDownWithNothingApplied(t *testing.T) {
	t.Parallel()

	m, mock := newMockMigrator(t, testScripts)

	expectBootstrap(mock)

	rolled, err := m.Down(context.Background(), 3)
	require.NoError(t, err)
	assert.Empty(t, rolled)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDownMissingScript(t *testing.T) {
	t.Parallel()

	m, mock := newMockMigrator(t, testScripts)

	expectBootstrap(mock, "0003_gone")

	_, err := m.Down(context.Background(), 1)

	var fileErr *errs.MigrationFileError
	require.ErrorAs(t, err, &fileErr)
	assert.Equal(t, "0003_gone.sql", fileErr.Path)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpDownUpRoundTrip(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"0001_bookings.sql": testScripts["0001_bookings.sql"],
	}
	m, mock := newMockMigrator(t, fsys)

	expectUp := func() {
		mock.ExpectBegin()
		mock.ExpectExec(`CREATE TABLE bookings`).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(`INSERT INTO migrations`).WithArgs("0001_bookings").WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()
	}

	expectBootstrap(mock)
	expectUp()

	expectBootstrap(mock, "0001_bookings")
	mock.ExpectBegin()
	mock.ExpectExec(`DROP TABLE bookings`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`DELETE FROM migrations`).WithArgs("0001_bookings").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	expectBootstrap(mock)
	expectUp()

	ctx := context.Background()

	first, err := m.Up(ctx)
	require.NoError(t, err)

	rolled, err := m.Down(ctx, 1)
	require.NoError(t, err)

	second, err := m.Up(ctx)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, first, rolled)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStatus(t *testing.T) {
	t.Parallel()

	m, mock := newMockMigrator(t, testScripts)
	appliedAt := time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC)

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS migrations`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT version, applied_at FROM migrations ORDER BY id ASC`).
		WillReturnRows(sqlmock.NewRows([]string{"version", "applied_at"}).
			AddRow("0001_bookings", appliedAt).
			AddRow("0000_orphan", appliedAt))

	statuses, err := m.Status(context.Background())
	require.NoError(t, err)
	require.Len(t, statuses, 3)

	assert.Equal(t, "0001_bookings", statuses[0].Version)
	assert.True(t, statuses[0].Applied)
	require.NotNil(t, statuses[0].AppliedAt)
	assert.Equal(t, appliedAt, *statuses[0].AppliedAt)

	assert.Equal(t, "0002_index", statuses[1].Version)
	assert.False(t, statuses[1].Applied)
	assert.Nil(t, statuses[1].AppliedAt)

	assert.Equal(t, "0000_orphan", statuses[2].Version)
	assert.True(t, statuses[2].Applied)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureTableFailure(t *testing.T) {
	t.Parallel()

	m, mock := newMockMigrator(t, testScripts)

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS migrations`).WillReturnError(sql.ErrConnDone)

	_, err := m.Up(context.Background())
	assert.ErrorIs(t, err, errs.ErrSystem)
	assert.ErrorIs(t, err, sql.ErrConnDone)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestParseDirection(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"up", "down", "status"} {
		d, err := ParseDirection(s)
		require.NoError(t, err)
		assert.Equal(t, Direction(s), d)
	}

	_, err := ParseDirection("sideways")
	var validationErr *errs.ValidationError
	assert.ErrorAs(t, err, &validationErr)
}
