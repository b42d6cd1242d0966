package textsim

import "math"

// TermFrequency counts tokens and divides each count by the largest count
// in the sequence. An empty sequence yields an empty map.
func TermFrequency(tokens []string) map[string]float64 {
	tf := make(map[string]float64, len(tokens))
	for _, t := range tokens {
		tf[t]++
	}

	peak := 1.0
	for _, c := range tf {
		if c > peak {
			peak = c
		}
	}
	for t, c := range tf {
		tf[t] = c / peak
	}
	return tf
}

// Vectorize returns a dense vector of length vocab.Len() holding
// normalizedTF × idf per slot. Tokens missing from vocab are ignored.
func Vectorize(tokens []string, vocab *Vocabulary, idf IDF) []float64 {
	vec := make([]float64, vocab.Len())
	for t, tfv := range TermFrequency(tokens) {
		i, ok := vocab.Index(t)
		if !ok {
			continue
		}
		vec[i] = tfv * idf[t]
	}
	return vec
}

// Cosine returns dot(a,b) / (|a||b|), or 0 when either norm is zero.
// Slots beyond the shorter vector count toward its norm only.
func Cosine(a, b []float64) float64 {
	var dot, na, nb float64
	for i := range a {
		na += a[i] * a[i]
		if i < len(b) {
			dot += a[i] * b[i]
		}
	}
	for i := range b {
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
