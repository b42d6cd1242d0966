// Package dataset is the typed initialization contract for the tutor's
// static knowledge: the diagnosis taxonomy, the case library, scenario
// notes and curated confusable pairs. Everything is validated once, up
// front, so the rest of the program can treat it as read-only.
package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/abhisek/dxtutor/internal/caselib"
	"github.com/abhisek/dxtutor/internal/scoring"
	"github.com/abhisek/dxtutor/internal/taxonomy"
	"golang.org/x/mod/semver"
)

// SupportedMajor is the data format major version this build understands.
const SupportedMajor = "v1"

// File is the on-disk JSON form of a dataset.
type File struct {
	Version     string                   `json:"version"`
	Diagnoses   []taxonomy.DiagnosisNode `json:"diagnoses"`
	Features    []taxonomy.FeatureNode   `json:"features"`
	Edges       []taxonomy.Edge          `json:"edges"`
	Cases       []caselib.Case           `json:"cases"`
	Scenarios   []caselib.Scenario       `json:"scenarios,omitempty"`
	Confusables scoring.Confusables      `json:"confusables,omitempty"`
}

// Dataset is the validated, immutable knowledge the tutor runs on.
type Dataset struct {
	Version     string
	Graph       *taxonomy.Graph
	Library     *caselib.Library
	Confusables scoring.Confusables
}

// Default returns the built-in ICOP demo dataset.
func Default() (*Dataset, error) {
	return Build(SeedFile())
}

// SeedFile returns the built-in data in file form.
func SeedFile() File {
	conf := make(scoring.Confusables, len(seedConfusables))
	for k, v := range seedConfusables {
		conf[k] = v
	}
	return File{
		Version:     seedVersion,
		Diagnoses:   append([]taxonomy.DiagnosisNode(nil), seedDiagnoses...),
		Features:    append([]taxonomy.FeatureNode(nil), seedFeatures...),
		Edges:       append([]taxonomy.Edge(nil), seedEdges...),
		Cases:       append([]caselib.Case(nil), seedCases...),
		Scenarios:   append([]caselib.Scenario(nil), seedScenarios...),
		Confusables: conf,
	}
}

// Load reads a JSON dataset from path, validates it against the dataset
// schema, and builds it.
func Load(path string) (*Dataset, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}
	return Parse(raw)
}

// Parse validates raw JSON against the dataset schema and builds it.
func Parse(raw []byte) (*Dataset, error) {
	if err := validateSchema(raw); err != nil {
		return nil, err
	}
	var f File
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("decode dataset: %w", err)
	}
	return Build(f)
}

// Build validates f and constructs the graph and library. Every
// cross-reference problem is reported in one error.
func Build(f File) (*Dataset, error) {
	if err := checkVersion(f.Version); err != nil {
		return nil, err
	}

	graph, err := taxonomy.New(f.Diagnoses, f.Features, f.Edges)
	if err != nil {
		return nil, err
	}
	lib, err := caselib.New(f.Cases, f.Scenarios)
	if err != nil {
		return nil, err
	}

	var errs []string
	isDx := func(id string) bool {
		_, ok := graph.Diagnosis(id)
		return ok
	}
	for _, c := range f.Cases {
		if !isDx(c.DiagnosisID) {
			errs = append(errs, fmt.Sprintf("case %q references unknown diagnosis %q", c.ID, c.DiagnosisID))
		}
	}
	for _, s := range f.Scenarios {
		if s.GoldDiagnosisID != "" && !isDx(s.GoldDiagnosisID) {
			errs = append(errs, fmt.Sprintf("scenario %q references unknown diagnosis %q", s.ID, s.GoldDiagnosisID))
		}
	}
	for gold, alt := range f.Confusables {
		if !isDx(gold) {
			errs = append(errs, fmt.Sprintf("confusable pair keyed by unknown diagnosis %q", gold))
		}
		if !isDx(alt) {
			errs = append(errs, fmt.Sprintf("confusable pair for %q references unknown diagnosis %q", gold, alt))
		}
		if gold == alt {
			errs = append(errs, fmt.Sprintf("confusable pair for %q points at itself", gold))
		}
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("dataset validation failed:\n  %s", strings.Join(errs, "\n  "))
	}

	conf := make(scoring.Confusables, len(f.Confusables))
	for k, v := range f.Confusables {
		conf[k] = v
	}
	return &Dataset{
		Version:     f.Version,
		Graph:       graph,
		Library:     lib,
		Confusables: conf,
	}, nil
}

func checkVersion(v string) error {
	if !semver.IsValid(v) {
		return fmt.Errorf("dataset version %q is not a valid semantic version (want e.g. %s.0.0)", v, SupportedMajor)
	}
	if major := semver.Major(v); major != SupportedMajor {
		return fmt.Errorf("dataset version %s is not supported (want %s.x.y)", v, SupportedMajor)
	}
	return nil
}
