package repository

import (
	"fmt"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fragmentMatcher accepts a query when it contains every newline-separated
// fragment of the expectation, ignoring whitespace differences.
var fragmentMatcher = sqlmock.QueryMatcherFunc(func(expected, actual string) error {
	got := strings.Join(strings.Fields(actual), " ")
	for _, frag := range strings.Split(expected, "\n") {
		frag = strings.Join(strings.Fields(frag), " ")
		if frag != "" && !strings.Contains(got, frag) {
			return fmt.Errorf("query %q does not contain %q", got, frag)
		}
	}
	return nil
})

func sqlHas(fragments ...string) string {
	return strings.Join(fragments, "\n")
}

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(fragmentMatcher))
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return sqlx.NewDb(db, "postgres"), mock
}
