package sales

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

// GenerateReceiptNumber returns a human-readable receipt identifier of the
// form RCP-<YYYYMMDD>-<4-digit-random>. The 4-digit suffix can collide under
// load; uniqueness is enforced by the sales table unique index and the
// checkout engine regenerates on collision.
func GenerateReceiptNumber(now time.Time) string {
	n, err := rand.Int(rand.Reader, big.NewInt(9000))
	if err != nil {
		// crypto/rand failing is effectively fatal elsewhere; fall back to
		// the clock so checkout can still proceed.
		n = big.NewInt(now.UnixNano() % 9000)
	}
	return fmt.Sprintf("RCP-%s-%04d", now.Format("20060102"), n.Int64()+1000)
}
