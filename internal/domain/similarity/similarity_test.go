package similarity

import (
	"math"
	"testing"

	"github.com/google/uuid"
)

func TestJaccard_Identity(t *testing.T) {
	a := NewSet(uuid.New(), uuid.New(), uuid.New())
	if got := Jaccard(a, a); got != 1.0 {
		t.Fatalf("expected jaccard(A,A)=1.0, got %v", got)
	}
}

func TestJaccard_BothEmpty(t *testing.T) {
	if got := Jaccard(Set{}, Set{}); got != 0.0 {
		t.Fatalf("expected jaccard(∅,∅)=0.0, got %v", got)
	}
}

func TestJaccard_PartialOverlap(t *testing.T) {
	shared := uuid.New()
	a := NewSet(shared, uuid.New())
	b := NewSet(shared, uuid.New())

	got := Jaccard(a, b)
	if math.Abs(got-1.0/3.0) > 1e-9 {
		t.Fatalf("expected 1/3, got %v", got)
	}
}

func TestCoverage_EmptyRequired(t *testing.T) {
	if got := Coverage(Set{}, NewSet(uuid.New())); got != 1.0 {
		t.Fatalf("expected coverage(∅,·)=1.0, got %v", got)
	}
	if got := Coverage(Set{}, Set{}); got != 1.0 {
		t.Fatalf("expected coverage(∅,∅)=1.0, got %v", got)
	}
}

func TestCoverage_Half(t *testing.T) {
	covered := uuid.New()
	required := NewSet(covered, uuid.New())
	have := NewSet(covered, uuid.New(), uuid.New())

	if got := Coverage(required, have); got != 0.5 {
		t.Fatalf("expected 0.5, got %v", got)
	}
}

func TestCosine_ZeroNorm(t *testing.T) {
	if got := Cosine(Vector{}, Vector{"go": 1}); got != 0.0 {
		t.Fatalf("expected 0.0 for empty vector, got %v", got)
	}
	if got := Cosine(Vector{"go": 0}, Vector{"go": 1}); got != 0.0 {
		t.Fatalf("expected 0.0 for zero-norm vector, got %v", got)
	}
}

func TestCosine_Parallel(t *testing.T) {
	a := Vector{"go": 1, "postgres": 2}
	b := Vector{"go": 2, "postgres": 4}

	if got := Cosine(a, b); math.Abs(got-1.0) > 1e-9 {
		t.Fatalf("expected 1.0 for parallel vectors, got %v", got)
	}
}

func TestCosine_Orthogonal(t *testing.T) {
	a := Vector{"go": 1}
	b := Vector{"rust": 1}

	if got := Cosine(a, b); got != 0.0 {
		t.Fatalf("expected 0.0 for disjoint vectors, got %v", got)
	}
}

func TestTextSimilarity_EmptyText(t *testing.T) {
	if got := TextSimilarity("", "backend engineer"); got != 0.0 {
		t.Fatalf("expected 0.0 for empty text, got %v", got)
	}
	if got := TextSimilarity("backend engineer", "   "); got != 0.0 {
		t.Fatalf("expected 0.0 for blank text, got %v", got)
	}
}

func TestTextSimilarity_RelatedTextsScoreHigher(t *testing.T) {
	profile := "senior backend engineer building distributed systems in go and postgresql"
	related := "backend engineer role working on go services with postgresql storage"
	unrelated := "graphic designer producing print layouts and brand illustrations"

	relScore := TextSimilarity(profile, related)
	unrelScore := TextSimilarity(profile, unrelated)

	if relScore <= unrelScore {
		t.Fatalf("expected related text to score higher: related=%v unrelated=%v", relScore, unrelScore)
	}
	if relScore <= 0 || relScore > 1 {
		t.Fatalf("expected related score in (0,1], got %v", relScore)
	}
}

func TestTokenize_DropsStopwordsAndShortTokens(t *testing.T) {
	got := Tokenize("We are looking for a Go engineer with C# and k8s")
	for _, tok := range got {
		if tok == "we" || tok == "a" || tok == "for" {
			t.Fatalf("stopword leaked through: %q", tok)
		}
	}

	found := map[string]bool{}
	for _, tok := range got {
		found[tok] = true
	}
	if !found["go"] || !found["engineer"] || !found["c#"] {
		t.Fatalf("expected go/engineer/c# in tokens, got %v", got)
	}
}
