package textsim

import (
	"reflect"
	"testing"
)

func TestRank_OrdersByScore(t *testing.T) {
	corpus := [][]string{
		Tokenize("Unilateral jaw pain. Worse with chewing. Morning stiffness."),
		Tokenize("Clicking in TMJ with opening and chewing. Joint noise prominent."),
		Tokenize("Preauricular pain with palpation."),
	}
	matches := Rank(Tokenize("joint clicking on opening"), corpus)

	if len(matches) != 3 {
		t.Fatalf("got %d matches, want 3", len(matches))
	}
	if matches[0].Index != 1 {
		t.Errorf("top match index = %d, want 1", matches[0].Index)
	}
	for i := 1; i < len(matches); i++ {
		if matches[i].Score > matches[i-1].Score {
			t.Errorf("matches not descending at %d: %v > %v", i, matches[i].Score, matches[i-1].Score)
		}
	}
}

func TestRank_TiesKeepCorpusOrder(t *testing.T) {
	corpus := [][]string{
		Tokenize("jaw pain"),
		Tokenize("clicking noise"),
		Tokenize("jaw pain"),
	}
	matches := Rank(Tokenize("jaw pain"), corpus)
	if matches[0].Index != 0 || matches[1].Index != 2 || matches[2].Index != 1 {
		t.Errorf("order = %v, want indices 0, 2, 1", matches)
	}
	if matches[0].Score != matches[1].Score {
		t.Errorf("identical documents scored differently: %v vs %v", matches[0].Score, matches[1].Score)
	}
}

func TestRank_EmptyQueryScoresZero(t *testing.T) {
	corpus := [][]string{Tokenize("jaw pain"), Tokenize("clicking noise")}
	matches := Rank(nil, corpus)
	for i, m := range matches {
		if m.Index != i || m.Score != 0 {
			t.Errorf("match %d = %+v, want index %d score 0", i, m, i)
		}
	}
}

func TestRank_Deterministic(t *testing.T) {
	corpus := [][]string{
		Tokenize("Joint noise plus limited opening, pain near TMJ."),
		Tokenize("Clicking in TMJ with opening and chewing."),
		Tokenize("Worse with chewing. Morning stiffness."),
	}
	q := Tokenize("jaw clicks a lot when opening")
	a := Rank(q, corpus)
	b := Rank(q, corpus)
	if !reflect.DeepEqual(a, b) {
		t.Errorf("Rank not deterministic:\n%v\n%v", a, b)
	}
}

func TestTopK(t *testing.T) {
	matches := []Match{{0, 0.9}, {1, 0.5}, {2, 0.1}}
	tests := []struct {
		k    int
		want int
	}{
		{0, 3},
		{-1, 3},
		{1, 1},
		{3, 3},
		{10, 3},
	}
	for _, tt := range tests {
		if got := TopK(matches, tt.k); len(got) != tt.want {
			t.Errorf("TopK(k=%d) returned %d, want %d", tt.k, len(got), tt.want)
		}
	}
}
