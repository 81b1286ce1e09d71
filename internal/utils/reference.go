package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// NewReferenceCode generates a citizen-facing tracking token for a
// change request. The timestamp keeps codes roughly sortable; the
// random suffix makes them unguessable enough to hand out.
func NewReferenceCode() string {
	suffix := make([]byte, 4)
	if _, err := rand.Read(suffix); err != nil {
		// crypto/rand failing means the process is in serious trouble;
		// fall back to the clock rather than refusing the submission.
		return fmt.Sprintf("REQ%d%04d", time.Now().UnixNano(), time.Now().Nanosecond()%10000)
	}
	return fmt.Sprintf("REQ%d%s", time.Now().UnixNano(), hex.EncodeToString(suffix))
}
