package retrieval

import (
	"reflect"
	"testing"

	"github.com/abhisek/dxtutor/internal/caselib"
	"github.com/abhisek/dxtutor/internal/dataset"
)

func newTestRetriever(t *testing.T) *Retriever {
	t.Helper()
	ds, err := dataset.Default()
	if err != nil {
		t.Fatalf("load dataset: %v", err)
	}
	return New(ds.Library, nil)
}

func TestRetrieve_ClickingNoteFindsDiscDisplacement(t *testing.T) {
	r := newTestRetriever(t)
	hits := r.Retrieve("jaw clicks a lot when opening", DefaultK)

	if len(hits) != DefaultK {
		t.Fatalf("got %d hits, want %d", len(hits), DefaultK)
	}
	top := hits[0]
	if top.Case.DiagnosisID != dataset.DxDiscDisplacement {
		t.Errorf("top diagnosis = %q, want %q", top.Case.DiagnosisID, dataset.DxDiscDisplacement)
	}
	if top.Case.ID != "case_002" {
		t.Errorf("top case = %q, want case_002", top.Case.ID)
	}
	if top.Similarity <= 0 {
		t.Errorf("top similarity = %v, want > 0", top.Similarity)
	}
	for i, h := range hits {
		if h.Rank != i+1 {
			t.Errorf("hit %d has rank %d", i, h.Rank)
		}
		if i > 0 && h.Similarity > hits[i-1].Similarity {
			t.Errorf("hits not sorted at %d", i)
		}
	}
}

func TestRetrieve_MyalgiaNote(t *testing.T) {
	r := newTestRetriever(t)
	best, ok := r.Best("morning stiffness and muscle tenderness when chewing")
	if !ok {
		t.Fatal("expected a match")
	}
	if best.Case.ID != "case_001" {
		t.Errorf("best case = %q, want case_001", best.Case.ID)
	}
}

func TestRetrieve_KBounds(t *testing.T) {
	r := newTestRetriever(t)
	if got := len(r.Retrieve("jaw pain", 0)); got != 7 {
		t.Errorf("k=0 returned %d hits, want 7", got)
	}
	if got := len(r.Retrieve("jaw pain", 100)); got != 7 {
		t.Errorf("k=100 returned %d hits, want 7", got)
	}
	if got := len(r.Retrieve("jaw pain", 1)); got != 1 {
		t.Errorf("k=1 returned %d hits, want 1", got)
	}
}

func TestRetrieve_EmptyNote(t *testing.T) {
	r := newTestRetriever(t)
	hits := r.Retrieve("", 3)
	for i, h := range hits {
		if h.Similarity != 0 {
			t.Errorf("hit %d similarity = %v, want 0", i, h.Similarity)
		}
	}
	if hits[0].Case.ID != "case_001" {
		t.Errorf("zero-score ties should keep library order, got %q first", hits[0].Case.ID)
	}
	if _, ok := r.Best(""); ok {
		t.Error("Best(\"\") should report no match")
	}
	if _, ok := r.Best("xyz qqq"); ok {
		t.Error("Best on out-of-vocabulary note should report no match")
	}
}

func TestRetrieve_Deterministic(t *testing.T) {
	r := newTestRetriever(t)
	note := "Clicking and locking of the jaw joint"
	a := r.Retrieve(note, 0)
	b := r.Retrieve(note, 0)
	if !reflect.DeepEqual(a, b) {
		t.Error("Retrieve is not deterministic")
	}
}

func TestRetrieve_SingleCaseLibrary(t *testing.T) {
	lib, err := caselib.New([]caselib.Case{{ID: "only", Text: "jaw pain", DiagnosisID: "d"}}, nil)
	if err != nil {
		t.Fatal(err)
	}
	hits := New(lib, nil).Retrieve("jaw pain", 3)
	if len(hits) != 1 || hits[0].Case.ID != "only" {
		t.Errorf("hits = %+v", hits)
	}
}
