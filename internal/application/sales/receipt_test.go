package sales_test

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stratera/pos-api/internal/application/sales"
)

var receiptPattern = regexp.MustCompile(`^RCP-\d{8}-\d{4}$`)

func TestGenerateReceiptNumber_Format(t *testing.T) {
	now := time.Date(2024, 3, 15, 14, 30, 0, 0, time.UTC)

	for i := 0; i < 100; i++ {
		rcp := sales.GenerateReceiptNumber(now)
		require.Regexp(t, receiptPattern, rcp)
		assert.Equal(t, "RCP-20240315-", rcp[:13], "date segment must match the sale date")
	}
}

func TestGenerateReceiptNumber_SuffixRange(t *testing.T) {
	now := time.Now()
	for i := 0; i < 200; i++ {
		rcp := sales.GenerateReceiptNumber(now)
		suffix := rcp[len(rcp)-4:]
		assert.GreaterOrEqual(t, suffix, "1000", "suffix stays in 1000..9999")
		assert.LessOrEqual(t, suffix, "9999")
	}
}
