package postgres

import (
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

// The uuid foreign key columns are exposed to the app as plain strings.
// Comparing or coalescing them against a text literal without a cast makes
// Postgres coerce the literal to uuid and reject the statement at parse
// time, so every read of these columns must cast them to text first.
func TestProductQueriesCastUUIDColumnsToText(t *testing.T) {
	assert.Contains(t, productColumns, "COALESCE(category_id::text, '')")
	assert.Contains(t, productColumns, "COALESCE(supplier_id::text, '')")
	assert.NotContains(t, productColumns, "COALESCE(category_id, '')")
	assert.NotContains(t, productColumns, "COALESCE(supplier_id, '')")

	assert.Contains(t, searchProductsQuery, "category_id::text = $2")
}

func pgError(code string) error {
	return &pgconn.PgError{Code: code, Message: "test"}
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(pgError("23505")))
	assert.True(t, isUniqueViolation(fmt.Errorf("insert: %w", pgError("23505"))))
	assert.False(t, isUniqueViolation(pgError("23503")))
	assert.False(t, isUniqueViolation(fmt.Errorf("plain error")))
}

func TestIsForeignKeyViolation(t *testing.T) {
	assert.True(t, isForeignKeyViolation(pgError("23503")))
	assert.True(t, isForeignKeyViolation(fmt.Errorf("delete: %w", pgError("23503"))))
	assert.False(t, isForeignKeyViolation(pgError("23505")))
}

func TestIsLockTimeout(t *testing.T) {
	assert.True(t, isLockTimeout(pgError("55P03")))
	assert.False(t, isLockTimeout(pgError("40P01")))
}
