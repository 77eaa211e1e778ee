package hashutil

import (
	"crypto/sha256"
	"fmt"
	"time"
)

// BatchID derives a 7-character hex ID for one submission run of a task.
// Runs started at different instants get different IDs.
func BatchID(taskID string, at time.Time) string {
	return FromSeed(taskID + "\x00" + fmt.Sprintf("%d", at.UnixNano()))
}

// FromSeed creates a deterministic 7-character hex ID from a seed string.
func FromSeed(seed string) string {
	hash := sha256.Sum256([]byte(seed))
	return fmt.Sprintf("%x", hash[:4])[:7]
}
