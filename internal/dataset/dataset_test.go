package dataset

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/abhisek/dxtutor/internal/caselib"
)

func TestDefault(t *testing.T) {
	ds, err := Default()
	if err != nil {
		t.Fatalf("built-in dataset failed to build: %v", err)
	}
	if got := len(ds.Graph.Diagnoses()); got != 5 {
		t.Errorf("got %d diagnoses, want 5", got)
	}
	if got := len(ds.Graph.Features()); got != 11 {
		t.Errorf("got %d features, want 11", got)
	}
	if got := ds.Library.Len(); got != 7 {
		t.Errorf("got %d cases, want 7", got)
	}
	if got := len(ds.Library.Scenarios()); got != 3 {
		t.Errorf("got %d scenarios, want 3", got)
	}
	if got := ds.Confusables[DxDiscDisplacement]; got != DxArthralgia {
		t.Errorf("confusable for disc = %q, want %q", got, DxArthralgia)
	}
}

func TestDefault_Hierarchy(t *testing.T) {
	ds, err := Default()
	if err != nil {
		t.Fatal(err)
	}
	chain := ds.Graph.AncestorChain(DxDiscDisplacement)
	if len(chain) != 2 || chain[0].ID != DxTMD || chain[1].ID != DxMusculoskeletal {
		t.Errorf("AncestorChain(disc) = %v, want [tmd msk]", chain)
	}
	if got := ds.Graph.AncestorChain(DxMusculoskeletal); len(got) != 0 {
		t.Errorf("AncestorChain(root) = %v, want empty", got)
	}
	if got := ds.Graph.AssociatedFeatures(DxTMD); len(got) != 0 {
		t.Errorf("AssociatedFeatures(tmd) = %v, want empty", got)
	}
	if got := len(ds.Graph.AssociatedFeatures(DxDiscDisplacement)); got != 6 {
		t.Errorf("len(AssociatedFeatures(disc)) = %d, want 6", got)
	}
}

func TestParse_RoundTripOfSeed(t *testing.T) {
	raw, err := json.Marshal(SeedFile())
	if err != nil {
		t.Fatal(err)
	}
	ds, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse(seed) failed: %v", err)
	}
	if ds.Version != "v1.0.0" {
		t.Errorf("Version = %q, want v1.0.0", ds.Version)
	}
	if ds.Library.Len() != 7 {
		t.Errorf("Library.Len() = %d, want 7", ds.Library.Len())
	}
}

func TestLoad(t *testing.T) {
	raw, err := json.Marshal(SeedFile())
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "data.json")
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err != nil {
		t.Fatalf("Load: %v", err)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestParse_SchemaRejects(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", `{`},
		{"missing cases", `{"version":"v1.0.0","diagnoses":[{"id":"a","label":"A"}],"edges":[]}`},
		{"bad relation", `{"version":"v1.0.0","diagnoses":[{"id":"a","label":"A"}],
			"edges":[{"id":"e","source":"a","target":"a","relation":"causes"}],
			"cases":[{"id":"c","text":"t","diagnosis_id":"a"}]}`},
		{"empty case text", `{"version":"v1.0.0","diagnoses":[{"id":"a","label":"A"}],"edges":[],
			"cases":[{"id":"c","text":"","diagnosis_id":"a"}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.raw)); err == nil {
				t.Fatal("expected error, got nil")
			}
		})
	}
}

func TestBuild_Version(t *testing.T) {
	tests := []struct {
		version string
		wantErr string
	}{
		{"", "not a valid semantic version"},
		{"1.0.0", "not a valid semantic version"},
		{"v2.0.0", "not supported"},
		{"v1.4.2", ""},
	}
	for _, tt := range tests {
		f := SeedFile()
		f.Version = tt.version
		_, err := Build(f)
		if tt.wantErr == "" {
			if err != nil {
				t.Errorf("version %q: unexpected error: %v", tt.version, err)
			}
			continue
		}
		if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
			t.Errorf("version %q: error = %v, want mention of %q", tt.version, err, tt.wantErr)
		}
	}
}

func TestBuild_CrossReferences(t *testing.T) {
	f := SeedFile()
	f.Cases = append(f.Cases, caselib.Case{ID: "case_x", Text: "text", DiagnosisID: "ghost"})
	f.Scenarios = append(f.Scenarios, caselib.Scenario{ID: "demo_x", Note: "note", GoldDiagnosisID: "phantom"})
	f.Confusables["icop_l3_myalgia"] = "nowhere"

	_, err := Build(f)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	for _, want := range []string{"ghost", "phantom", "nowhere"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error should mention %q, got: %v", want, err)
		}
	}
}

func TestSeedFile_IsACopy(t *testing.T) {
	f := SeedFile()
	f.Cases[0].Text = "mutated"
	f.Confusables[DxMyalgia] = DxDiscDisplacement
	g := SeedFile()
	if g.Cases[0].Text == "mutated" || g.Confusables[DxMyalgia] != DxArthralgia {
		t.Error("SeedFile shares state between calls")
	}
}
