// Package retrieval ranks library cases against a free-text clinical note.
package retrieval

import (
	"log/slog"

	"github.com/abhisek/dxtutor/internal/caselib"
	"github.com/abhisek/dxtutor/internal/textsim"
)

// DefaultK is the number of cases returned when no limit is configured.
const DefaultK = 3

// Hit is one retrieved case.
type Hit struct {
	Rank       int          `json:"rank"` // 1-based
	Case       caselib.Case `json:"case"`
	Similarity float64      `json:"similarity"`
}

// Retriever scores notes against a fixed case library. Case tokens are
// computed once; the vector space is rebuilt for every note.
type Retriever struct {
	lib    *caselib.Library
	cases  []caselib.Case
	tokens [][]string
	logger *slog.Logger
}

// New creates a Retriever over lib. A nil logger uses slog.Default().
func New(lib *caselib.Library, logger *slog.Logger) *Retriever {
	if logger == nil {
		logger = slog.Default()
	}
	cases := lib.Cases()
	tokens := make([][]string, len(cases))
	for i, c := range cases {
		tokens[i] = textsim.Tokenize(c.Text)
	}
	return &Retriever{lib: lib, cases: cases, tokens: tokens, logger: logger}
}

// Library returns the underlying case library.
func (r *Retriever) Library() *caselib.Library { return r.lib }

// Retrieve returns the k most similar cases to note, best first. Ties keep
// library order. k <= 0 returns every case.
func (r *Retriever) Retrieve(note string, k int) []Hit {
	query := textsim.Tokenize(note)
	matches := textsim.TopK(textsim.Rank(query, r.tokens), k)

	hits := make([]Hit, len(matches))
	for i, m := range matches {
		hits[i] = Hit{Rank: i + 1, Case: r.cases[m.Index], Similarity: m.Score}
	}

	if len(hits) > 0 {
		r.logger.Debug("retrieved cases",
			"query_tokens", len(query),
			"top_case", hits[0].Case.ID,
			"top_similarity", hits[0].Similarity)
	}
	return hits
}

// Best returns the top hit when its similarity is above zero.
func (r *Retriever) Best(note string) (Hit, bool) {
	hits := r.Retrieve(note, 1)
	if len(hits) == 0 || hits[0].Similarity <= 0 {
		return Hit{}, false
	}
	return hits[0], true
}
