package postgres

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type Base struct {
	ID      string `db:"id"`
	Version int    `db:"version"`
}

type row struct {
	Base
	Name     string  `db:"name"`
	Note     *string `db:"note"`
	internal string
	Skipped  string `db:"-"`
}

func TestColumns(t *testing.T) {
	assert.Equal(t, []string{"id", "version", "name", "note"}, Columns[row]())
	assert.Equal(t, []string{"id", "version", "name", "note"}, Columns[*row]())
}

func TestValues(t *testing.T) {
	note := "n"
	r := row{Base: Base{ID: "a", Version: 2}, Name: "x", Note: &note, internal: "i", Skipped: "s"}
	assert.Equal(t, []any{"a", 2, "x", &note}, Values(r))
	assert.Equal(t, []any{"a", 2, "x", &note}, Values(&r))
}

func TestOmit(t *testing.T) {
	assert.Equal(t, []string{"name", "note"}, Omit(Columns[row](), "id", "version"))
}

func TestSchemaCoversTables(t *testing.T) {
	for _, table := range []string{
		TableUsers, TableSalesMetrics, TableCustomerMetrics, TableInventoryItems,
		TableAuditLog, TableIdempotencyKeys,
	} {
		assert.True(t, strings.Contains(Schema(), "CREATE TABLE IF NOT EXISTS "+table+" "), table)
	}
}

func TestStatementTimeoutSQL(t *testing.T) {
	assert.Equal(t, "SET LOCAL statement_timeout = '1500ms'", statementTimeoutSQL(1500*time.Millisecond))
}
