package caselib

import (
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	lib, err := New(
		[]Case{
			{ID: "c1", Title: "One", Text: "jaw pain", DiagnosisID: "d1"},
			{ID: "c2", Title: "Two", Text: "clicking", DiagnosisID: "d2"},
		},
		[]Scenario{{ID: "s1", Title: "S", Note: "note", GoldDiagnosisID: "d1"}},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lib.Len() != 2 {
		t.Errorf("Len() = %d, want 2", lib.Len())
	}
	if c, ok := lib.Case("c2"); !ok || c.DiagnosisID != "d2" {
		t.Errorf("Case(c2) = %+v, %v", c, ok)
	}
	if _, ok := lib.Case("missing"); ok {
		t.Error("Case(missing) reported present")
	}
	if s, ok := lib.Scenario("s1"); !ok || s.GoldDiagnosisID != "d1" {
		t.Errorf("Scenario(s1) = %+v, %v", s, ok)
	}
	texts := lib.Texts()
	if len(texts) != 2 || texts[0] != "jaw pain" || texts[1] != "clicking" {
		t.Errorf("Texts() = %v", texts)
	}
}

func TestNew_Rejects(t *testing.T) {
	tests := []struct {
		name      string
		cases     []Case
		scenarios []Scenario
		wantErr   string
	}{
		{"empty", nil, nil, "empty"},
		{"duplicate case", []Case{{ID: "c", Text: "a", DiagnosisID: "d"}, {ID: "c", Text: "b", DiagnosisID: "d"}}, nil, "duplicate case ID"},
		{"blank text", []Case{{ID: "c", Text: "  ", DiagnosisID: "d"}}, nil, "empty text"},
		{"no diagnosis", []Case{{ID: "c", Text: "a"}}, nil, "no diagnosis"},
		{"blank note", []Case{{ID: "c", Text: "a", DiagnosisID: "d"}}, []Scenario{{ID: "s"}}, "empty note"},
		{"id clash", []Case{{ID: "c", Text: "a", DiagnosisID: "d"}}, []Scenario{{ID: "c", Note: "n"}}, "collides"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.cases, tt.scenarios)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error should mention %q, got: %v", tt.wantErr, err)
			}
		})
	}
}
