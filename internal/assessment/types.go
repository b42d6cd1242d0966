package assessment

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/abhisek/dxtutor/internal/retrieval"
	"github.com/abhisek/dxtutor/internal/scoring"
	"github.com/abhisek/dxtutor/internal/taxonomy"
)

// DefaultMinJustification is the minimum justification length in characters.
const DefaultMinJustification = 20

// Submission is one learner answer for a scenario, case or free-text note.
type Submission struct {
	StudentID string `json:"student_id"`
	// ScenarioID names a scenario or a case from the library. Optional when
	// Note is given.
	ScenarioID    string   `json:"scenario_id,omitempty"`
	Note          string   `json:"note,omitempty"`
	Diagnosis     string   `json:"diagnosis"`
	Features      []string `json:"features"`
	Justification string   `json:"justification"`
}

// Validate checks the learner input against the taxonomy before scoring.
// Every problem found is reported; the result unpacks with ValidationErrors.
func (s Submission) Validate(g *taxonomy.Graph, minJustification int) error {
	var errs []error
	add := func(field, format string, args ...any) {
		errs = append(errs, &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	switch {
	case strings.TrimSpace(s.Diagnosis) == "":
		add("diagnosis", "select a diagnosis")
	case g != nil:
		if _, ok := g.Diagnosis(s.Diagnosis); !ok {
			add("diagnosis", "unknown diagnosis %q", s.Diagnosis)
		}
	}

	if len(s.Features) == 0 {
		add("features", "select at least one feature")
	} else if g != nil {
		var unknown []string
		for _, f := range s.Features {
			if _, ok := g.Feature(f); !ok {
				unknown = append(unknown, f)
			}
		}
		if len(unknown) > 0 {
			add("features", "unknown features %s", strings.Join(unknown, ", "))
		}
	}

	if n := utf8.RuneCountInString(strings.TrimSpace(s.Justification)); n < minJustification {
		if n == 0 {
			add("justification", "write a justification")
		} else {
			add("justification", "justification is %d characters, need at least %d", n, minJustification)
		}
	}

	return errors.Join(errs...)
}

// GoldSource records how the gold diagnosis of an attempt was resolved.
type GoldSource string

const (
	GoldFromScenario  GoldSource = "scenario"
	GoldFromCase      GoldSource = "case"
	GoldFromRetrieval GoldSource = "retrieval"
)

// Gold is a resolved answer key.
type Gold struct {
	DiagnosisID string
	Source      GoldSource
	// CaseID is the scenario, case or top retrieved case the gold came from.
	CaseID string
	// Similarity is set when the gold came from retrieval.
	Similarity float64
}

// Record is one assessed attempt. Created once per submission and appended to
// the attempt log; never modified afterwards.
type Record struct {
	ID               string     `json:"id"`
	Timestamp        time.Time  `json:"timestamp"`
	StudentID        string     `json:"student_id"`
	CaseID           string     `json:"case_id"`
	StudentDiagnosis string     `json:"student_diagnosis"`
	GoldDiagnosis    string     `json:"gold_diagnosis"`
	GoldSource       GoldSource `json:"gold_source"`
	DiagnosisCorrect bool       `json:"diagnosis_correct"`
	Precision        float64    `json:"precision"`
	Recall           float64    `json:"recall"`
	F1               float64    `json:"f1"`
	SelectedFeatures []string   `json:"selected_features"`
	MissingFeatures  []string   `json:"missing_features"`
	ExtraFeatures    []string   `json:"extra_features"`
	ConfusableDx     string     `json:"confusable_dx"`
	Justification    string     `json:"justification"`
}

// Feedback is what the learner sees after submitting.
type Feedback struct {
	Record      Record                 `json:"record"`
	Score       scoring.Result         `json:"score"`
	Alternative scoring.Alternative    `json:"alternative"`
	Gold        taxonomy.Highlight     `json:"gold"`
	Expected    []taxonomy.FeatureNode `json:"expected_features"`
	Hits        []retrieval.Hit        `json:"similar_cases,omitempty"`
}
