package search

import (
	"testing"

	"github.com/jpricey/santorini-core/internal/board"
	"github.com/jpricey/santorini-core/internal/gods"
	"github.com/jpricey/santorini-core/internal/nnue"
	"github.com/jpricey/santorini-core/internal/transposition"
)

func mustLoad(t *testing.T, fen string) *gods.GameState {
	t.Helper()
	state, err := gods.LoadPosition(fen)
	if err != nil {
		t.Fatalf("LoadPosition(%q): %v", fen, err)
	}
	return state
}

func newTestSearcher() *Searcher {
	return NewSearcher(transposition.New(4), nnue.NewEvaluator(1))
}

func TestSearchFindsWinInOne(t *testing.T) {
	// C3 at height 2 beside C4 at height 3.
	state := mustLoad(t, "0000000000002000030000000 1 mortal:C3,A1 mortal:A5,E5")

	var depths []int
	result := newTestSearcher().Search(state, DepthTerminator{MaxDepth: 3}, func(r Result) {
		depths = append(depths, r.Depth)
	})

	if result.Score != WinScore-1 {
		t.Errorf("score = %d, want %d", result.Score, WinScore-1)
	}
	if !result.BestMove.IsWinning() {
		t.Errorf("best move %s is not flagged winning", result.BestMove)
	}
	if result.BestMove.From() != board.C3 || result.BestMove.To() != board.C4 {
		t.Errorf("best move = %s, want C3>C4", result.BestMove)
	}
	for i := 1; i < len(depths); i++ {
		if depths[i] <= depths[i-1] {
			t.Errorf("callback depths not monotone: %v", depths)
		}
	}
}

func TestSearchStartingPositionIsFinite(t *testing.T) {
	state := mustLoad(t, "0000000000000000000000000 1 mortal:B2,D4 mortal:C3,C4")

	result := newTestSearcher().Search(state, DepthTerminator{MaxDepth: 2}, nil)

	if result.BestMove == board.NullMove {
		t.Fatal("expected a best move from the starting position")
	}
	if isMateScore(result.Score) {
		t.Errorf("score %d should not be a forced-outcome score at depth 2", result.Score)
	}
	if result.Depth != 2 {
		t.Errorf("depth terminator should stop after depth 2, got %d", result.Depth)
	}
	if result.Nodes == 0 {
		t.Error("node count should be nonzero")
	}
}

func TestSearchSmotheredLossHasNoMove(t *testing.T) {
	// Both P1 workers boxed in by domes: no legal move exists.
	state := mustLoad(t, "0404044044000000000000000 1 mortal:A1,E1 mortal:A5,E5")

	result := newTestSearcher().Search(state, DepthTerminator{MaxDepth: 4}, nil)

	if result.BestMove != board.NullMove {
		t.Errorf("smothered position should yield no best move, got %s", result.BestMove)
	}
}

func TestSearchIsDeterministic(t *testing.T) {
	const fen = "0000000000000000000000000 1 mortal:B2,D4 mortal:C3,C4"

	first := newTestSearcher().Search(mustLoad(t, fen), DepthTerminator{MaxDepth: 3}, nil)
	second := newTestSearcher().Search(mustLoad(t, fen), DepthTerminator{MaxDepth: 3}, nil)

	if first.BestMove != second.BestMove {
		t.Errorf("best moves differ across identical searches: %s vs %s", first.BestMove, second.BestMove)
	}
	if first.Score != second.Score {
		t.Errorf("scores differ across identical searches: %d vs %d", first.Score, second.Score)
	}
}

func TestSearchPlacementPhase(t *testing.T) {
	state := &gods.GameState{Gods: [2]*gods.StaticGod{&gods.Mortal, &gods.Mortal}}
	state.Board.CurrentPlayer = board.PlayerOne
	state.Board.RecalculateInternals(state.BaseHash())

	result := newTestSearcher().Search(state, DepthTerminator{MaxDepth: 2}, nil)

	if result.BestMove == board.NullMove {
		t.Fatal("expected a placement move on an empty board")
	}
	if result.BestMove.To() >= board.BoardSize {
		t.Errorf("placement destination %v out of range", result.BestMove.To())
	}
	if state.Board.Workers[board.PlayerOne].IsNotEmpty() {
		t.Error("search should not mutate the input state")
	}
}

func TestSearchHydraFinalPlacementHandsTurnToOpponent(t *testing.T) {
	// Hydra places three workers to Mortal's two, so with Hydra seated
	// as Player One the alternation runs P1,P2,P1,P2,P1 and Player One
	// places last. The movement phase must then open with Player Two —
	// here Mortal's C4 worker at height 2 has two winning climbs (B3
	// and D5 are both at height 3), at most one of which the final
	// placement can occupy, so a correct handoff scores the position
	// as a forced loss for Player One.
	state := mustLoad(t, "0000000000030000020000030 1 hydra:A1,A2 mortal:C4,E1")

	result := newTestSearcher().Search(state, DepthTerminator{MaxDepth: 3}, nil)

	if result.BestMove == board.NullMove {
		t.Fatal("expected a placement move to be reported")
	}
	if !isMateScore(result.Score) || result.Score >= 0 {
		t.Errorf("score = %d, want a forced loss: the opponent must move first after the final placement", result.Score)
	}
}

func TestSearchRespectsNodeTerminator(t *testing.T) {
	state := mustLoad(t, "0000000000000000000000000 1 mortal:B2,D4 mortal:C3,C4")

	s := newTestSearcher()
	s.Search(state, NodeTerminator{MaxNodes: 500}, nil)

	// The terminator is polled every 1024 nodes, so allow slack, but a
	// runaway search would be orders of magnitude past this.
	if s.Nodes() > 100_000 {
		t.Errorf("node terminator ignored: searched %d nodes", s.Nodes())
	}
}

func TestMateScoreTTAdjustmentRoundTrips(t *testing.T) {
	for _, ply := range []int{0, 1, 5, 40} {
		for _, score := range []int{0, 137, -512, mateIn(3), -mateIn(7)} {
			stored := adjustScoreToTT(score, ply)
			if got := adjustScoreFromTT(stored, ply); got != score {
				t.Errorf("round trip at ply %d: %d -> %d -> %d", ply, score, stored, got)
			}
		}
	}
}

func TestMateInPrefersShorterWins(t *testing.T) {
	if mateIn(1) <= mateIn(3) {
		t.Error("a win in fewer plies must outrank a win in more")
	}
	if !isMateScore(mateIn(10)) || !isMateScore(-mateIn(10)) {
		t.Error("mate scores should be classified as forced outcomes")
	}
	if isMateScore(500) {
		t.Error("an ordinary heuristic score is not a forced outcome")
	}
}
