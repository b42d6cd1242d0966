// Package caselib holds the immutable reference cases used for retrieval
// and the scenario notes learners are assessed on.
package caselib

import (
	"fmt"
	"slices"
	"strings"
)

// Case is a reference document with a known diagnosis.
type Case struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Text        string `json:"text"`
	DiagnosisID string `json:"diagnosis_id"`
}

// Scenario is a learner-facing clinical note. GoldDiagnosisID is the
// curated answer key; it may be empty, in which case the gold diagnosis
// is resolved by retrieval.
type Scenario struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Note            string `json:"note"`
	GoldDiagnosisID string `json:"gold_diagnosis_id,omitempty"`
}

// Library is an ordered, read-only collection of cases and scenarios.
type Library struct {
	cases     []Case
	scenarios []Scenario
	caseIdx   map[string]int
	scenIdx   map[string]int
}

// New validates cases and scenarios and builds a Library. At least one
// case is required.
func New(cases []Case, scenarios []Scenario) (*Library, error) {
	var errs []string
	if len(cases) == 0 {
		errs = append(errs, "case library is empty")
	}

	l := &Library{
		cases:     slices.Clone(cases),
		scenarios: slices.Clone(scenarios),
		caseIdx:   make(map[string]int, len(cases)),
		scenIdx:   make(map[string]int, len(scenarios)),
	}

	for i, c := range l.cases {
		switch {
		case c.ID == "":
			errs = append(errs, fmt.Sprintf("case %d has empty ID", i))
			continue
		case strings.TrimSpace(c.Text) == "":
			errs = append(errs, fmt.Sprintf("case %q has empty text", c.ID))
		case c.DiagnosisID == "":
			errs = append(errs, fmt.Sprintf("case %q has no diagnosis", c.ID))
		}
		if _, dup := l.caseIdx[c.ID]; dup {
			errs = append(errs, fmt.Sprintf("duplicate case ID: %q", c.ID))
		}
		l.caseIdx[c.ID] = i
	}

	for i, s := range l.scenarios {
		switch {
		case s.ID == "":
			errs = append(errs, fmt.Sprintf("scenario %d has empty ID", i))
			continue
		case strings.TrimSpace(s.Note) == "":
			errs = append(errs, fmt.Sprintf("scenario %q has empty note", s.ID))
		}
		if _, dup := l.scenIdx[s.ID]; dup {
			errs = append(errs, fmt.Sprintf("duplicate scenario ID: %q", s.ID))
		}
		if _, clash := l.caseIdx[s.ID]; clash {
			errs = append(errs, fmt.Sprintf("scenario ID %q collides with a case ID", s.ID))
		}
		l.scenIdx[s.ID] = i
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("case library validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return l, nil
}

// Cases returns all cases in library order.
func (l *Library) Cases() []Case { return slices.Clone(l.cases) }

// Len returns the number of cases.
func (l *Library) Len() int { return len(l.cases) }

// Case returns the case with the given id.
func (l *Library) Case(id string) (Case, bool) {
	i, ok := l.caseIdx[id]
	if !ok {
		return Case{}, false
	}
	return l.cases[i], true
}

// Scenarios returns all scenarios in declaration order.
func (l *Library) Scenarios() []Scenario { return slices.Clone(l.scenarios) }

// Scenario returns the scenario with the given id.
func (l *Library) Scenario(id string) (Scenario, bool) {
	i, ok := l.scenIdx[id]
	if !ok {
		return Scenario{}, false
	}
	return l.scenarios[i], true
}

// Texts returns the case texts in library order.
func (l *Library) Texts() []string {
	out := make([]string, len(l.cases))
	for i, c := range l.cases {
		out[i] = c.Text
	}
	return out
}
