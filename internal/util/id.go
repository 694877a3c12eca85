package util

import (
	"math/rand"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

// GeneratedIDPrefix tags ids of AI-generated questions.
const GeneratedIDPrefix = "LGS-TR-GEN"

// NewQuestionID generates a unique question id of the form
// {prefix}-{timestamp}-{random8}. The random suffix comes from a ULID's
// entropy so concurrent generators in one process stay collision-free.
func NewQuestionID(prefix string) string {
	now := time.Now()
	entropy := ulid.Monotonic(rand.New(rand.NewSource(now.UnixNano())), 0)
	id := ulid.MustNew(ulid.Timestamp(now), entropy).String()
	suffix := strings.ToLower(id[len(id)-8:])
	return prefix + "-" + now.Format("20060102150405") + "-" + suffix
}
