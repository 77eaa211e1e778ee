package hashutil

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var hexPattern = regexp.MustCompile(`^[0-9a-f]{7}$`)

func TestBatchIDFormat(t *testing.T) {
	id := BatchID("12345", time.Date(2019, 6, 24, 9, 0, 0, 0, time.UTC))
	assert.Regexp(t, hexPattern, id)
}

func TestBatchIDDiffersPerInstant(t *testing.T) {
	at := time.Date(2019, 6, 24, 9, 0, 0, 0, time.UTC)
	assert.NotEqual(t, BatchID("12345", at), BatchID("12345", at.Add(time.Nanosecond)))
}

func TestBatchIDDiffersPerTask(t *testing.T) {
	at := time.Date(2019, 6, 24, 9, 0, 0, 0, time.UTC)
	assert.NotEqual(t, BatchID("12345", at), BatchID("67890", at))
}

func TestFromSeedDeterministic(t *testing.T) {
	assert.Equal(t, FromSeed("fixed-seed"), FromSeed("fixed-seed"))
	assert.Regexp(t, hexPattern, FromSeed("fixed-seed"))
}
