package similarity

import (
	"math"

	"github.com/google/uuid"
)

type Set map[uuid.UUID]struct{}

func NewSet(ids ...uuid.UUID) Set {
	s := make(Set, len(ids))
	for _, id := range ids {
		if id == uuid.Nil {
			continue
		}
		s[id] = struct{}{}
	}
	return s
}

// Jaccard returns |A∩B| / |A∪B|. Two empty sets compare as 0.
func Jaccard(a, b Set) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}

	inter := 0
	for id := range a {
		if _, ok := b[id]; ok {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

// Coverage returns the fraction of required present in have. An empty
// required set is vacuously covered.
func Coverage(required, have Set) float64 {
	if len(required) == 0 {
		return 1
	}

	inter := 0
	for id := range required {
		if _, ok := have[id]; ok {
			inter++
		}
	}
	return float64(inter) / float64(len(required))
}

type Vector map[string]float64

func Cosine(a, b Vector) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for term, wa := range a {
		normA += wa * wa
		if wb, ok := b[term]; ok {
			dot += wa * wb
		}
	}
	for _, wb := range b {
		normB += wb * wb
	}

	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
