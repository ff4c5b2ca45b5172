package similarity

import (
	"math"
	"strings"
	"unicode"
)

var stopwords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {}, "be": {},
	"by": {}, "for": {}, "from": {}, "in": {}, "is": {}, "it": {}, "of": {},
	"on": {}, "or": {}, "the": {}, "to": {}, "with": {}, "we": {}, "you": {},
	"our": {}, "your": {}, "will": {}, "this": {}, "that": {},
}

func Tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '+' && r != '#'
	})

	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) < 2 {
			continue
		}
		if _, ok := stopwords[f]; ok {
			continue
		}
		out = append(out, f)
	}
	return out
}

func termFrequency(tokens []string) Vector {
	if len(tokens) == 0 {
		return Vector{}
	}
	tf := make(Vector, len(tokens))
	for _, t := range tokens {
		tf[t]++
	}
	for t := range tf {
		tf[t] /= float64(len(tokens))
	}
	return tf
}

// TextSimilarity vectorizes both texts with TF-IDF weights computed over
// the two-document corpus and returns their cosine similarity. Either
// text being empty yields 0.
func TextSimilarity(a, b string) float64 {
	tokA := Tokenize(a)
	tokB := Tokenize(b)
	if len(tokA) == 0 || len(tokB) == 0 {
		return 0
	}

	tfA := termFrequency(tokA)
	tfB := termFrequency(tokB)

	idf := func(term string) float64 {
		df := 0
		if _, ok := tfA[term]; ok {
			df++
		}
		if _, ok := tfB[term]; ok {
			df++
		}
		return math.Log(1 + 2/float64(df))
	}

	vecA := make(Vector, len(tfA))
	for t, w := range tfA {
		vecA[t] = w * idf(t)
	}
	vecB := make(Vector, len(tfB))
	for t, w := range tfB {
		vecB[t] = w * idf(t)
	}

	return Cosine(vecA, vecB)
}
