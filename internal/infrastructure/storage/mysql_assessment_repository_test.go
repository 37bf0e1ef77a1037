package storage

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jknair0/beforeeach"
	"github.com/stretchr/testify/require"

	"asbestos-screen/internal/domain/entity"
)

var (
	repo *MySQLAssessmentRepository
	mock sqlmock.Sqlmock
)

func setUp() {
	var db *sql.DB
	db, mock, _ = sqlmock.New()
	repo = NewMySQLAssessmentRepository(db)
}

func tearDown() {
	repo.db.Close()
}

var it = beforeeach.Create(setUp, tearDown)

var columns = []string{"id", "status", "confidence", "message", "features", "recommendations", "created_at"}

func TestMySQL_Save(t *testing.T) {
	it(func() {
		a := &entity.RiskAssessment{
			ID:               "a-1",
			Status:           entity.StatusDanger,
			Confidence:       91,
			Message:          "Fibrous texture",
			DetectedFeatures: []string{"fibers"},
			Timestamp:        time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC),
		}

		mock.ExpectExec("INSERT INTO assessments").
			WithArgs("a-1", int64(7), "danger", 91, "Fibrous texture", `["fibers"]`, `[]`, sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(1, 1))

		require.NoError(t, repo.Save(context.Background(), 7, a))
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestMySQL_SaveRejectsInvalid(t *testing.T) {
	it(func() {
		err := repo.Save(context.Background(), 7, &entity.RiskAssessment{ID: "x", Status: "unknown"})
		require.ErrorIs(t, err, entity.ErrInvalidAssessment)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestMySQL_Get(t *testing.T) {
	it(func() {
		created := time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC)
		mock.ExpectQuery("SELECT (.+) FROM assessments WHERE id = ?").
			WithArgs("a-1").
			WillReturnRows(sqlmock.NewRows(columns).
				AddRow("a-1", "uncertain", 55, "Needs a closer look", []byte(`["cracks"]`), []byte(`["Avoid sanding"]`), created))

		a, err := repo.Get(context.Background(), "a-1")
		require.NoError(t, err)
		require.Equal(t, entity.StatusUncertain, a.Status)
		require.Equal(t, 55, a.Confidence)
		require.Equal(t, []string{"cracks"}, a.DetectedFeatures)
		require.Equal(t, []string{"Avoid sanding"}, a.Recommendations)
		require.True(t, created.Equal(a.Timestamp))
	})
}

func TestMySQL_GetNotFound(t *testing.T) {
	it(func() {
		mock.ExpectQuery("SELECT (.+) FROM assessments WHERE id = ?").
			WithArgs("missing").
			WillReturnRows(sqlmock.NewRows(columns))

		_, err := repo.Get(context.Background(), "missing")
		require.ErrorIs(t, err, ErrNotFound)
	})
}

func TestMySQL_ListByUser(t *testing.T) {
	it(func() {
		testCases := []struct {
			name  string
			limit int
			args  []driver.Value
			err   error
			ids   []string
		}{
			{name: "Unlimited", limit: 0, args: []driver.Value{int64(7)}, ids: []string{"b", "a"}},
			{name: "Limited", limit: 1, args: []driver.Value{int64(7), int64(1)}, ids: []string{"b"}},
			{name: "Query error", limit: 0, args: []driver.Value{int64(7)}, err: fmt.Errorf("test query error")},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				now := time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC)
				q := mock.ExpectQuery("SELECT (.+) FROM assessments WHERE user_id = ?").WithArgs(tc.args...)
				if tc.err != nil {
					q.WillReturnError(tc.err)
				} else {
					rows := sqlmock.NewRows(columns)
					for i, id := range tc.ids {
						rows.AddRow(id, "safe", 80, "", []byte(`[]`), []byte(`[]`), now.Add(-time.Duration(i)*time.Hour))
					}
					q.WillReturnRows(rows)
				}

				list, err := repo.ListByUser(context.Background(), 7, tc.limit)
				if tc.err != nil {
					require.Error(t, err)
					return
				}
				require.NoError(t, err)
				got := make([]string, 0, len(list))
				for _, a := range list {
					got = append(got, a.ID)
				}
				require.Equal(t, tc.ids, got)
			})
		}
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestMySQL_Delete(t *testing.T) {
	it(func() {
		mock.ExpectExec("DELETE FROM assessments WHERE id = ?").WithArgs("a-1").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("DELETE FROM assessments WHERE id = ?").WithArgs("a-2").
			WillReturnResult(sqlmock.NewResult(0, 0))

		require.NoError(t, repo.Delete(context.Background(), "a-1"))
		require.ErrorIs(t, repo.Delete(context.Background(), "a-2"), ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestMySQL_Migrate(t *testing.T) {
	it(func() {
		mock.ExpectExec("CREATE TABLE IF NOT EXISTS assessments").WillReturnResult(sqlmock.NewResult(0, 0))
		require.NoError(t, repo.Migrate(context.Background()))
	})
}
