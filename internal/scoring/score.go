// Package scoring compares learner-selected clinical features with the
// features expected for a diagnosis.
package scoring

import "sort"

// Result is the overlap between a selected and an expected feature set.
type Result struct {
	Overlap   int      `json:"overlap"`
	Precision float64  `json:"precision"`
	Recall    float64  `json:"recall"`
	F1        float64  `json:"f1"`
	Missing   []string `json:"missing"` // expected but not selected, sorted
	Extra     []string `json:"extra"`   // selected but not expected, sorted
}

// Set is an unordered collection of feature ids.
type Set map[string]struct{}

// NewSet builds a Set from ids, ignoring duplicates and empty strings.
func NewSet(ids []string) Set {
	s := make(Set, len(ids))
	for _, id := range ids {
		if id != "" {
			s[id] = struct{}{}
		}
	}
	return s
}

// Has reports whether id is in the set.
func (s Set) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Sorted returns the ids in lexicographic order.
func (s Set) Sorted() []string {
	out := make([]string, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Score computes overlap, precision, recall and F1 of selected against
// expected. Empty sets give 0 rather than NaN.
func Score(selected, expected []string) Result {
	sel := NewSet(selected)
	exp := NewSet(expected)

	r := Result{Missing: []string{}, Extra: []string{}}
	for _, id := range sel.Sorted() {
		if exp.Has(id) {
			r.Overlap++
		} else {
			r.Extra = append(r.Extra, id)
		}
	}
	for _, id := range exp.Sorted() {
		if !sel.Has(id) {
			r.Missing = append(r.Missing, id)
		}
	}

	if len(sel) > 0 {
		r.Precision = float64(r.Overlap) / float64(len(sel))
	}
	if len(exp) > 0 {
		r.Recall = float64(r.Overlap) / float64(len(exp))
	}
	if r.Precision+r.Recall > 0 {
		r.F1 = 2 * r.Precision * r.Recall / (r.Precision + r.Recall)
	}
	return r
}

// Jaccard returns |a ∩ b| / |a ∪ b|, or 0 when both sets are empty.
func Jaccard(a, b []string) float64 {
	sa := NewSet(a)
	sb := NewSet(b)

	inter := 0
	for id := range sa {
		if sb.Has(id) {
			inter++
		}
	}
	union := len(sa) + len(sb) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}
