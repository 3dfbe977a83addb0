package booking

import (
	"crypto/rand"
	"fmt"
	"io"
	"time"
)

// randReader is swapped in tests.
var randReader io.Reader = rand.Reader

// NewTrackingID mints SDC-YYYYMMDD-XXXXXX from the UTC date of now and three random bytes.
func NewTrackingID(now time.Time) (string, error) {
	var b [3]byte
	if _, err := io.ReadFull(randReader, b[:]); err != nil {
		return "", fmt.Errorf("failed to generate tracking id: %w", err)
	}
	return fmt.Sprintf("SDC-%s-%02X%02X%02X", now.UTC().Format("20060102"), b[0], b[1], b[2]), nil
}
