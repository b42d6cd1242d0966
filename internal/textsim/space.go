package textsim

import "math"

// Vocabulary maps each distinct token to a dense index in first-seen order.
type Vocabulary struct {
	index map[string]int
	terms []string
}

// BuildVocabulary assigns indices to every distinct token across docs,
// in the order tokens are first encountered.
func BuildVocabulary(docs [][]string) *Vocabulary {
	v := &Vocabulary{index: make(map[string]int)}
	for _, tokens := range docs {
		for _, t := range tokens {
			if _, ok := v.index[t]; !ok {
				v.index[t] = len(v.terms)
				v.terms = append(v.terms, t)
			}
		}
	}
	return v
}

// Index returns the slot for term.
func (v *Vocabulary) Index(term string) (int, bool) {
	i, ok := v.index[term]
	return i, ok
}

// Len returns the number of distinct terms.
func (v *Vocabulary) Len() int { return len(v.terms) }

// Terms returns the terms in index order.
func (v *Vocabulary) Terms() []string {
	out := make([]string, len(v.terms))
	copy(out, v.terms)
	return out
}

// IDF holds smoothed inverse document frequencies keyed by term.
type IDF map[string]float64

// InverseDocumentFrequency computes idf = ln((N+1)/(df+1)) + 1 for every term
// in docs, where N is len(docs) and df counts documents containing the term.
// The result is always > 0.
func InverseDocumentFrequency(docs [][]string) IDF {
	df := make(map[string]int)
	for _, tokens := range docs {
		seen := make(map[string]bool, len(tokens))
		for _, t := range tokens {
			if !seen[t] {
				seen[t] = true
				df[t]++
			}
		}
	}

	n := float64(len(docs))
	idf := make(IDF, len(df))
	for t, c := range df {
		idf[t] = math.Log((n+1)/(float64(c)+1)) + 1
	}
	return idf
}

// Space is a vocabulary plus IDF weights built over one fixed corpus.
type Space struct {
	Vocab *Vocabulary
	IDF   IDF
}

// NewSpace builds the vector space for docs.
func NewSpace(docs [][]string) *Space {
	return &Space{
		Vocab: BuildVocabulary(docs),
		IDF:   InverseDocumentFrequency(docs),
	}
}

// Vectorize projects tokens into this space.
func (s *Space) Vectorize(tokens []string) []float64 {
	return Vectorize(tokens, s.Vocab, s.IDF)
}
