package transposition

import (
	"testing"

	"github.com/jpricey/santorini-core/internal/board"
)

func TestStoreThenProbeRoundTrips(t *testing.T) {
	tt := New(1)
	hash := board.HashType(0xABCD1234)

	tt.Store(hash, 5, 120, 80, Exact, board.NewMove(board.A1, board.A2, board.B1, 0, false))

	e, ok := tt.Probe(hash)
	if !ok {
		t.Fatal("expected a hit after Store")
	}
	if e.Depth != 5 || e.Score != 120 || e.StaticEval != 80 || e.Bound != Exact {
		t.Errorf("probed entry = %+v, want depth=5 score=120 staticEval=80 bound=Exact", e)
	}
}

func TestProbeMissOnDifferentHash(t *testing.T) {
	tt := New(1)
	tt.Store(board.HashType(1), 3, 0, 0, Exact, board.NullMove)

	if _, ok := tt.Probe(board.HashType(2)); ok {
		t.Error("expected a miss for a hash that was never stored")
	}
}

func TestStoreReplacesShallowerSameAgeEntry(t *testing.T) {
	tt := New(1)
	hash := board.HashType(42)

	tt.Store(hash, 2, 10, 10, Exact, board.NullMove)
	tt.Store(hash, 8, 99, 99, Exact, board.NullMove)

	e, ok := tt.Probe(hash)
	if !ok || e.Depth != 8 || e.Score != 99 {
		t.Errorf("deeper same-key store should overwrite: got %+v", e)
	}
}

func TestNewSearchAgesOutStaleEntriesForHashFull(t *testing.T) {
	tt := New(1)
	// HashFull is in thousandths of the 2000 sampled slots, so a single
	// entry truncates to 0; ten entries register as 5.
	for h := 1; h <= 10; h++ {
		tt.Store(board.HashType(h), 1, 0, 0, Exact, board.NullMove)
	}

	before := tt.HashFull()
	if before == 0 {
		t.Fatal("expected nonzero occupancy right after storing entries")
	}

	tt.NewSearch()
	after := tt.HashFull()
	if after >= before {
		t.Errorf("HashFull after NewSearch = %d, want less than %d (entry is now stale)", after, before)
	}
}

func TestClearEmptiesTable(t *testing.T) {
	tt := New(1)
	tt.Store(board.HashType(7), 4, 0, 0, Exact, board.NullMove)
	tt.Clear()

	if _, ok := tt.Probe(board.HashType(7)); ok {
		t.Error("expected a miss after Clear")
	}
	if hf := tt.HashFull(); hf != 0 {
		t.Errorf("HashFull after Clear = %d, want 0", hf)
	}
}

func TestHitRateTracksProbes(t *testing.T) {
	tt := New(1)
	tt.Store(board.HashType(9), 1, 0, 0, Exact, board.NullMove)

	tt.Probe(board.HashType(9))
	tt.Probe(board.HashType(10))

	if rate := tt.HitRate(); rate <= 0 || rate >= 100 {
		t.Errorf("HitRate = %f, want strictly between 0 and 100 after one hit and one miss", rate)
	}
}
