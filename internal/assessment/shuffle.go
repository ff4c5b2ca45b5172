package assessment

import (
	"encoding/binary"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/blake2b"
)

// DeriveSeed hashes subject, skill and attempt start time into the
// per-attempt shuffle seed. The same inputs always reproduce the same
// seed; two distinct attempts collide with negligible probability.
func DeriveSeed(subjectID, skillID uuid.UUID, startedAt time.Time) uint64 {
	var buf [40]byte
	copy(buf[0:16], subjectID[:])
	copy(buf[16:32], skillID[:])
	binary.BigEndian.PutUint64(buf[32:40], uint64(startedAt.UnixNano()))

	sum := blake2b.Sum256(buf[:])
	return binary.BigEndian.Uint64(sum[:8])
}

// questionSeed folds one question's id into the attempt seed so every
// question gets its own stable permutation.
func questionSeed(attemptSeed uint64, questionID uuid.UUID) int64 {
	var buf [24]byte
	binary.BigEndian.PutUint64(buf[0:8], attemptSeed)
	copy(buf[8:24], questionID[:])

	sum := blake2b.Sum256(buf[:])
	return int64(binary.BigEndian.Uint64(sum[:8]))
}

// ShuffledOptions returns the question's options in the display order for
// this attempt. Idempotent per (attempt, question): re-rendering never
// reorders. The correct answer stays identified by text, so no answer key
// survives the permutation.
func ShuffledOptions(attemptSeed uint64, q Question) []string {
	out := make([]string, len(q.Options))
	copy(out, q.Options)

	rng := rand.New(rand.NewSource(questionSeed(attemptSeed, q.ID)))
	rng.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}
