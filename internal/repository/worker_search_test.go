package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func TestWorkerSearchQueryNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   WorkerSearchQuery
		want WorkerSearchQuery
	}{
		{
			name: "zero values fall back to defaults",
			in:   WorkerSearchQuery{},
			want: WorkerSearchQuery{Page: 1, Limit: 10, SortBy: "first_name", SortOrder: "ASC"},
		},
		{
			name: "allowed values pass through",
			in:   WorkerSearchQuery{Page: 3, Limit: 50, SortBy: "rating", SortOrder: "desc"},
			want: WorkerSearchQuery{Page: 3, Limit: 50, SortBy: "rating", SortOrder: "DESC"},
		},
		{
			name: "off-menu limit clamps to default",
			in:   WorkerSearchQuery{Page: 1, Limit: 37, SortBy: "age", SortOrder: "ASC"},
			want: WorkerSearchQuery{Page: 1, Limit: 10, SortBy: "age", SortOrder: "ASC"},
		},
		{
			name: "unknown sort column is rejected",
			in:   WorkerSearchQuery{Page: 1, Limit: 20, SortBy: "pin_hash", SortOrder: "ASC"},
			want: WorkerSearchQuery{Page: 1, Limit: 20, SortBy: "first_name", SortOrder: "ASC"},
		},
		{
			name: "garbage order becomes ASC",
			in:   WorkerSearchQuery{Page: 1, Limit: 10, SortBy: "surname", SortOrder: "; DROP TABLE workers"},
			want: WorkerSearchQuery{Page: 1, Limit: 10, SortBy: "surname", SortOrder: "ASC"},
		},
		{
			name: "negative page clamps to 1",
			in:   WorkerSearchQuery{Page: -4, Limit: 20, SortBy: "age", SortOrder: "DESC"},
			want: WorkerSearchQuery{Page: 1, Limit: 20, SortBy: "age", SortOrder: "DESC"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := tt.in
			q.Normalize()
			if q != tt.want {
				t.Errorf("Normalize() = %+v, want %+v", q, tt.want)
			}
		})
	}
}

var searchResultColumns = []string{
	"id", "first_name", "surname", "age", "gender",
	"profile_photo_url", "bio", "area_name", "avg_rating", "rating_count",
}

// Rating sort must pin workers without accepted ratings to the end for both
// directions; MySQL has no NULLS LAST, so the IS NULL term carries that.
func TestSearchRatingSortUnratedLast(t *testing.T) {
	tests := []struct {
		name      string
		sortOrder string
		wantOrder string
	}{
		{"descending", "DESC", `ORDER BY \(avg_rating IS NULL\) ASC, avg_rating DESC, w.first_name ASC`},
		{"ascending", "ASC", `ORDER BY \(avg_rating IS NULL\) ASC, avg_rating ASC, w.first_name ASC`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			mock.ExpectQuery(`SELECT COUNT\(\*\) FROM workers w WHERE 1=1`).
				WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
			mock.ExpectQuery(tt.wantOrder).
				WithArgs(10, 0).
				WillReturnRows(sqlmock.NewRows(searchResultColumns).
					AddRow(1, "Thabo", "Mokoena", 30, "male", nil, nil, "Soweto", 4.5, 2).
					AddRow(2, "Lindiwe", "Dlamini", 25, "female", nil, nil, "Soweto", nil, 0))

			repo := NewWorkerRepo(db)
			rows, total, err := repo.Search(context.Background(),
				WorkerSearchQuery{SortBy: "rating", SortOrder: tt.sortOrder})
			require.NoError(t, err)
			require.EqualValues(t, 2, total)
			require.Len(t, rows, 2)

			// The unranked worker came back last with a nil average.
			require.NotNil(t, rows[0].AvgRating)
			require.Nil(t, rows[1].AvgRating)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

// The skill filter rides along as an EXISTS subquery and the column sort
// never interpolates raw input.
func TestSearchSkillFilterAndColumnSort(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM workers w WHERE EXISTS \(SELECT 1 FROM worker_skills ws WHERE ws.worker_id = w.id AND ws.skill_id = \?\)`).
		WithArgs(uint64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`ORDER BY w.age DESC LIMIT \? OFFSET \?`).
		WithArgs(uint64(3), 20, 20).
		WillReturnRows(sqlmock.NewRows(searchResultColumns).
			AddRow(1, "Thabo", "Mokoena", 30, "male", nil, nil, "Soweto", nil, 0))

	repo := NewWorkerRepo(db)
	rows, total, err := repo.Search(context.Background(),
		WorkerSearchQuery{SkillID: 3, Page: 2, Limit: 20, SortBy: "age", SortOrder: "DESC"})
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Len(t, rows, 1)
	require.NoError(t, mock.ExpectationsWereMet())
}
