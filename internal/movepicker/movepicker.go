// Package movepicker orders ScoredMoves for the searcher: TT move
// first, then the winning move (if any, cutting off immediately),
// then improving/check moves, then everything else — all staged
// behind the sentinel scores gods' Generate already attaches, refined
// by killer and history tables.
package movepicker

import (
	"github.com/jpricey/santorini-core/internal/board"
	"github.com/jpricey/santorini-core/internal/gods"
)

// MaxPly bounds the killer-move table; a fixed ceiling beats a
// growable slice in the search's hot path.
const MaxPly = 128

// Move-ordering priority bands, highest first.
const (
	ttMoveScore  = 10_000_000
	killerScore1 = 900_000
	killerScore2 = 800_000
)

// Orderer accumulates killer and history tables across one search,
// reused node to node rather than reallocated.
type Orderer struct {
	killers [MaxPly][2]board.Move
	history map[historyKey]int
}

type historyKey struct {
	god  board.GodName
	hist uint32
}

// NewOrderer returns an Orderer with empty killer slots and history.
func NewOrderer() *Orderer {
	o := &Orderer{history: make(map[historyKey]int)}
	for i := range o.killers {
		o.killers[i][0] = board.NullMove
		o.killers[i][1] = board.NullMove
	}
	return o
}

// Clear resets killers and halves history between searches, keeping
// recent trends without unbounded growth.
func (o *Orderer) Clear() {
	for i := range o.killers {
		o.killers[i][0] = board.NullMove
		o.killers[i][1] = board.NullMove
	}
	for k, v := range o.history {
		v /= 2
		if v == 0 {
			delete(o.history, k)
			continue
		}
		o.history[k] = v
	}
}

// Entry pairs a move with its current ordering score, the unit this
// package sorts by (distinct from board.ScoredMove's pre-evaluator
// sentinel, which already contributes to Score via scoreMove below).
type Entry struct {
	Move  board.ScoredMove
	Score int
}

// Order scores and returns moves sorted best-first. ttMove is
// board.NullMove if the node had no TT hit. god identifies the acting
// god, used as the history table's namespace since history indices
// are only comparable within one god's encoding.
func (o *Orderer) Order(state *gods.GameState, god *gods.StaticGod, moves []board.ScoredMove, ply int, ttMove board.Move) []Entry {
	entries := make([]Entry, len(moves))
	for i, sm := range moves {
		entries[i] = Entry{Move: sm, Score: o.scoreMove(state, god, sm, ply, ttMove)}
	}
	selectionSort(entries)
	return entries
}

func (o *Orderer) scoreMove(state *gods.GameState, god *gods.StaticGod, sm board.ScoredMove, ply int, ttMove board.Move) int {
	if sm.Action == ttMove {
		return ttMoveScore
	}
	if sm.Action.IsWinning() {
		return ttMoveScore - 1
	}

	base := int(sm.Score) * 1000

	if ply < MaxPly {
		if o.killers[ply][0] == sm.Action {
			return killerScore1
		}
		if o.killers[ply][1] == sm.Action {
			return killerScore2
		}
	}

	key := historyKey{god: god.Name, hist: god.HistoryIndex(state, sm.Action)}
	return base + o.history[key]
}

// selectionSort is a plain selection sort, fine at the list sizes (a
// node produces well under 200 moves).
func selectionSort(entries []Entry) {
	n := len(entries)
	for i := 0; i < n-1; i++ {
		best := i
		for j := i + 1; j < n; j++ {
			if entries[j].Score > entries[best].Score {
				best = j
			}
		}
		if best != i {
			entries[i], entries[best] = entries[best], entries[i]
		}
	}
}

// UpdateKillers records m as a killer at ply, shifting the previous
// first killer down, unless m is already the first killer.
func (o *Orderer) UpdateKillers(m board.Move, ply int) {
	if ply >= MaxPly || o.killers[ply][0] == m {
		return
	}
	o.killers[ply][1] = o.killers[ply][0]
	o.killers[ply][0] = m
}

// UpdateHistory rewards or penalizes a move's history score by
// depth^2, with an overflow-guard rescale.
func (o *Orderer) UpdateHistory(state *gods.GameState, god *gods.StaticGod, m board.Move, depth int, isGood bool) {
	key := historyKey{god: god.Name, hist: god.HistoryIndex(state, m)}
	bonus := depth * depth
	if isGood {
		o.history[key] += bonus
		if o.history[key] > 400_000 {
			for k, v := range o.history {
				o.history[k] = v / 2
			}
		}
	} else {
		o.history[key] -= bonus
		if o.history[key] < -400_000 {
			o.history[key] = -400_000
		}
	}
}
