package sqlerr

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/deppfellow/fyyur/internal/errs"
	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleError_PostgresForeignKey(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:           "23503",
		Severity:       "ERROR",
		Message:        `insert or update on table "shows" violates foreign key constraint`,
		TableName:      "shows",
		ColumnName:     "venue_id",
		ConstraintName: "shows_venue_id_fkey",
	}

	err := HandleError(fmt.Errorf("insert show: %w", pgErr))

	httpErr, ok := errs.AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "SHOW_NOT_FOUND", httpErr.Code)
	assert.Equal(t, "The referenced Venue does not exist", httpErr.Message)
}

func TestHandleError_PostgresUnique(t *testing.T) {
	err := HandleError(&pgconn.PgError{
		Code:           "23505",
		TableName:      "venues",
		ConstraintName: "venues_name_key",
	})

	httpErr, ok := errs.AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, "VENUE_ALREADY_EXISTS", httpErr.Code)
	assert.Equal(t, "A Venue with this Name already exists", httpErr.Message)
}

func TestHandleError_PostgresNotNull(t *testing.T) {
	err := HandleError(&pgconn.PgError{
		Code:       "23502",
		TableName:  "artists",
		ColumnName: "city",
	})

	httpErr, ok := errs.AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, "The City is required", httpErr.Message)
	require.Len(t, httpErr.Errors, 1)
	assert.Equal(t, "city", httpErr.Errors[0].Field)
}

func TestHandleError_SQLiteMessages(t *testing.T) {
	fk := HandleError(errors.New("constraint failed: FOREIGN KEY constraint failed (787)"))
	httpErr, ok := errs.AsHTTPError(fk)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "The referenced record does not exist", httpErr.Message)

	nn := HandleError(errors.New("NOT NULL constraint failed: venues.name"))
	httpErr, ok = errs.AsHTTPError(nn)
	require.True(t, ok)
	assert.Equal(t, "VENUE_REQUIRED", httpErr.Code)
	assert.Equal(t, "The Name is required", httpErr.Message)
}

func TestHandleError_MySQL(t *testing.T) {
	err := HandleError(&mysql.MySQLError{Number: 1452, Message: "Cannot add or update a child row"})

	assert.True(t, errs.IsStatus(err, http.StatusBadRequest))
	assert.Equal(t, ForeignKeyViolation, ErrCode(&mysql.MySQLError{Number: 1452}))
	assert.Equal(t, UniqueViolation, ErrCode(&mysql.MySQLError{Number: 1062}))
}

func TestHandleError_NoRowsAndFallbacks(t *testing.T) {
	assert.True(t, errs.IsStatus(HandleError(sql.ErrNoRows), http.StatusNotFound))
	assert.True(t, errs.IsStatus(HandleError(errors.New("boom")), http.StatusInternalServerError))

	already := errs.NewNotFoundError("Venue not found", true, nil)
	assert.Same(t, already, HandleError(already))
}

func TestMapCode(t *testing.T) {
	assert.Equal(t, UniqueViolation, MapCode("23505"))
	assert.Equal(t, ConnectionFailure, MapCode("08006"))
	assert.Equal(t, Other, MapCode("XX000"))
	assert.Equal(t, SeverityFatal, MapSeverity("fatal"))
}
