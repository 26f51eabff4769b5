package errors

import (
	stdErrors "errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDumpExtractsPostgresDetails(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "products_pkey", TableName: "products", Message: "duplicate key value"}
	err := Wrap(CodeStorage, pgErr, "insert product")

	d := Dump(err)
	assert.Equal(t, CodeStorage, d.Code)
	assert.Equal(t, "23505", d.PGCode)
	assert.Equal(t, "products", d.PGTable)
	require.Len(t, d.Chain, 2)

	fields := d.Fields()
	assert.Equal(t, "products_pkey", fields["pg_constraint"])
	_, hasDetail := fields["pg_detail"]
	assert.False(t, hasDetail)
}

func TestDumpPlainError(t *testing.T) {
	d := Dump(stdErrors.New("disk full"))
	assert.Empty(t, d.Code)
	assert.Empty(t, d.PGCode)
	assert.Equal(t, "disk full", d.TopMessage)
	assert.Equal(t, ErrorDump{}, Dump(nil))
}
