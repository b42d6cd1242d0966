package scoring

import "sort"

// FeatureSource exposes the diagnoses and their expected features.
// *taxonomy.Graph satisfies it.
type FeatureSource interface {
	DiagnosisIDs() []string
	FeatureIDs(diagnosisID string) []string
}

// Confusables maps a gold diagnosis id to a curated look-alike diagnosis.
type Confusables map[string]string

// Alternative is the outcome of a confusable-diagnosis search.
type Alternative struct {
	DiagnosisID string  `json:"diagnosis_id,omitempty"`
	Jaccard     float64 `json:"jaccard"`
	Fallback    bool    `json:"fallback"` // true when taken from the curated table
}

// Found reports whether an alternative was identified.
func (a Alternative) Found() bool { return a.DiagnosisID != "" }

// FindConfusableAlternative returns the diagnosis other than gold whose
// expected features best match selected by Jaccard similarity. Candidates
// are visited in lexicographic id order and the first maximum wins. When
// no candidate overlaps at all, the curated fallback for gold is used; if
// there is none the result is empty.
func FindConfusableAlternative(src FeatureSource, selected []string, gold string, fallback Confusables) Alternative {
	ids := src.DiagnosisIDs()
	sort.Strings(ids)

	var best Alternative
	for _, id := range ids {
		if id == gold {
			continue
		}
		score := Jaccard(selected, src.FeatureIDs(id))
		if score > best.Jaccard {
			best = Alternative{DiagnosisID: id, Jaccard: score}
		}
	}
	if best.Found() {
		return best
	}

	if alt, ok := fallback[gold]; ok && alt != "" && alt != gold {
		return Alternative{DiagnosisID: alt, Fallback: true}
	}
	return Alternative{}
}
