package textsim

import "sort"

// Match is the similarity of one corpus document to the query.
type Match struct {
	Index int     // position in the corpus slice
	Score float64 // cosine similarity in [0, 1]
}

// Rank scores query against every document in corpus and returns all
// matches sorted by descending score. Ties keep corpus order.
//
// The vector space is rebuilt per call from the corpus plus the query, so
// vocabulary indices are never reused across queries.
func Rank(query []string, corpus [][]string) []Match {
	docs := make([][]string, 0, len(corpus)+1)
	docs = append(docs, corpus...)
	docs = append(docs, query)
	space := NewSpace(docs)

	qv := space.Vectorize(query)
	matches := make([]Match, len(corpus))
	for i, doc := range corpus {
		matches[i] = Match{Index: i, Score: Cosine(qv, space.Vectorize(doc))}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	return matches
}

// TopK returns the first k matches. k <= 0 or k > len(matches) returns all.
func TopK(matches []Match, k int) []Match {
	if k <= 0 || k > len(matches) {
		k = len(matches)
	}
	out := make([]Match, k)
	copy(out, matches[:k])
	return out
}
