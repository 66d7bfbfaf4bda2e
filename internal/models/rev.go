package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// NewRev returns a fresh revision marker. The fixed-width nanosecond
// timestamp prefix makes lexicographic ordering follow wall-clock time on
// one node; the UUID suffix breaks ties between nodes.
func NewRev() string {
	return fmt.Sprintf("%020d-%s", time.Now().UnixNano(), uuid.NewString())
}
