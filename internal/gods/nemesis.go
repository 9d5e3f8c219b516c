package gods

import (
	"fmt"

	"github.com/jpricey/santorini-core/internal/board"
)

const (
	nemesisBaseHashP1 board.HashType = 0x656D65736973010A
	nemesisBaseHashP2 board.HashType = 0x656D65736973020A
)

func init() {
	Register(&Nemesis)
}

// Nemesis moves and builds like Mortal; afterward she may optionally
// swap the position of one of her own workers with one opponent
// worker. This implementation models the single-swap case only —
// see DESIGN.md for why the two-worker variant is out of scope here,
// the same way the consistency checker already carries a documented
// exemption list for gods whose full rule surface isn't implemented.
var Nemesis = StaticGod{
	Name:         board.Nemesis,
	Generate:     nemesisGenerate,
	Apply:        nemesisApply,
	BlockerBoard: nemesisBlockerBoard,
	HistoryIndex: mortalHistoryIndex,
	Stringify:    nemesisStringify,
	ParseGodData: func(s string) (board.GodData, error) {
		if s != "" {
			return 0, fmt.Errorf("nemesis takes no god data, got %q", s)
		}
		return 0, nil
	},
	StringifyGodData: func(board.GodData) string { return "" },
	BaseHashP1:       nemesisBaseHashP1,
	BaseHashP2:       nemesisBaseHashP2,
	Placement:        board.PlacementStandard,
}

const (
	nemesisSwapBit       = board.Move(1) << 15
	nemesisSwapOwnOffset = 16
	nemesisSwapOppOffset = 21
)

func nemesisGenerate(state *GameState, player board.Player, flags MoveGenFlags, keySquares board.BitBoard) []board.ScoredMove {
	b := newBuilder(flags)

	plain := mortalGenerate(state, player, flags, keySquares)
	for _, sm := range plain {
		if sm.Action.IsWinning() {
			b.pushWinning(sm.Action)
			if b.stop() {
				return b.out
			}
			continue
		}
		b.out = append(b.out, sm)

		st := &state.Board
		opponent := player.Other()
		ownAfterMove := st.Workers[player].Without(sm.Action.From()).With(sm.Action.To())
		occupiedAfter := ownAfterMove | st.Workers[opponent]
		wind := activeWind(state)

		ownAfterMove.ForEach(func(ownSq board.Square) {
			st.Workers[opponent].ForEach(func(oppSq board.Square) {
				// A swap relocates the just-moved worker when it is the
				// one swapped, so the check flag is recomputed from its
				// final square rather than inherited from the plain move.
				finalSq := sm.Action.To()
				if ownSq == finalSq {
					finalSq = oppSq
				}
				isCheck := false
				if flags.Has(IncludeScore) || flags.Has(GenerateThreatsOnly) {
					isCheck = threatensWinAfter(state, finalSq, sm.Action.Build(), 1, wind, occupiedAfter)
				}
				if flags.Has(GenerateThreatsOnly) && !isCheck {
					return
				}
				payload := sm.Action.Payload() | nemesisSwapBit |
					board.Move(ownSq)<<nemesisSwapOwnOffset | board.Move(oppSq)<<nemesisSwapOppOffset
				swapMove := board.NewMove(sm.Action.From(), sm.Action.To(), sm.Action.Build(), payload, isCheck)
				b.push(swapMove, sm.Score)
			})
		})
	}

	return b.out
}

func nemesisHasSwap(m board.Move) bool { return m.Payload()&nemesisSwapBit != 0 }

func nemesisSwapSquares(m board.Move) (own, opp board.Square) {
	own = board.Square((m.Payload() >> nemesisSwapOwnOffset) & board.PositionMask)
	opp = board.Square((m.Payload() >> nemesisSwapOppOffset) & board.PositionMask)
	return
}

func nemesisApply(state *GameState, player board.Player, move board.Move, otherGod *StaticGod) {
	restoreClimbAfterMove(state, player)
	st := &state.Board
	opponent := player.Other()

	if move.IsWinning() {
		st.WorkerXor(player, board.AsMask(move.From()).With(move.To()))
		st.SetWinner(player)
		return
	}

	st.WorkerXor(player, board.AsMask(move.From()).With(move.To()))
	st.BuildUp(move.Build())

	if nemesisHasSwap(move) {
		own, opp := nemesisSwapSquares(move)
		st.WorkerXor(player, board.AsMask(own).With(opp))
		st.OppoWorkerXor(otherGod.TracksFemaleWorker, opponent, board.AsMask(opp).With(own))
	}
}

func nemesisBlockerBoard(move board.Move) board.BitBoard {
	blockers := move.MoveMask()
	if nemesisHasSwap(move) {
		own, opp := nemesisSwapSquares(move)
		blockers = blockers.With(own).With(opp)
	}
	return blockers
}

func nemesisStringify(move board.Move) string {
	base := move.String()
	if !nemesisHasSwap(move) {
		return base
	}
	own, opp := nemesisSwapSquares(move)
	return fmt.Sprintf("%s(%s<>%s)", base, own, opp)
}
