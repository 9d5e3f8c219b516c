package consistency

import (
	"testing"

	"github.com/jpricey/santorini-core/internal/gods"
)

func loadState(t *testing.T, fen string) *gods.GameState {
	t.Helper()
	state, err := gods.LoadPosition(fen)
	if err != nil {
		t.Fatalf("LoadPosition(%q): %v", fen, err)
	}
	return state
}

func TestCorpusPositionsSatisfyAllLaws(t *testing.T) {
	for _, line := range Corpus {
		state := loadState(t, line)
		for _, v := range Check(state) {
			t.Errorf("%s: %v", line, v)
		}
	}
}

func TestCheckFlagsHashDrift(t *testing.T) {
	state := loadState(t, Corpus[0])
	state.Board.Hash ^= 0xDEADBEEF

	violations := Check(state)
	found := false
	for _, v := range violations {
		if v.Check == "representation" {
			found = true
		}
	}
	if !found {
		t.Errorf("a corrupted hash should fail the representation check, got %v", violations)
	}
}

func TestViolationErrorMessage(t *testing.T) {
	v := Violation{Check: "duplicate-poststate", Detail: "moves collide"}
	if v.Error() != "duplicate-poststate: moves collide" {
		t.Errorf("unexpected message %q", v.Error())
	}
}
