// Package consistency implements the cross-generator consistency
// checker: a test harness (not a production component) that validates
// a god's move generator against the invariants every generator must
// satisfy — deduplication, win
// detection, blocker-board correctness, check-flag correctness, and
// respect for whichever opponent power is in play.
package consistency

import (
	"fmt"

	"github.com/jpricey/santorini-core/internal/board"
	"github.com/jpricey/santorini-core/internal/gods"
)

// Violation is one failed property at one position.
type Violation struct {
	Check  string
	Detail string
}

func (v Violation) Error() string { return fmt.Sprintf("%s: %s", v.Check, v.Detail) }

// exemptGenerators lists gods exempt from the stricter checks
// because their effect functions make an exact equivalent
// intractable. Hydra's worker rearrangements can reach one board
// through distinct moves, Nemesis's swap combinatorics defeat the
// blocker analysis, and a Hermes both-workers move where one worker
// stays put reaches the same board as the single-worker form of the
// same slide, under a different encoding.
var exemptGenerators = map[board.GodName]bool{
	board.Hydra:   true,
	board.Nemesis: true,
	board.Hermes:  true,
}

// Check runs every applicable move-generation law against state, for
// whichever player is to move. It never mutates state.
func Check(state *gods.GameState) []Violation {
	var out []Violation
	player := state.Board.CurrentPlayer
	god := state.God(player)
	oppGod := state.Opponent(player)

	if err := state.Board.RepresentationErr(state.BaseHash()); err != nil {
		out = append(out, Violation{"representation", err.Error()})
	}

	allMoves := gods.GenerateRespectingOpponent(state, player, gods.IncludeScore, board.Empty)
	mateMoves := gods.GenerateRespectingOpponent(state, player, gods.MateOnly, board.Empty)

	allPostStates := make(map[board.HashType]bool, len(allMoves))
	for _, sm := range allMoves {
		child := state.NextState(player, sm.Action)
		allPostStates[child.Board.Hash] = true
	}

	for _, sm := range mateMoves {
		if !sm.Action.IsWinning() {
			out = append(out, Violation{"mate-only-flagged-winning",
				fmt.Sprintf("move %s returned under MateOnly is not flagged IsWinning", sm.Action)})
		}
		child := state.NextState(player, sm.Action)
		if w := child.Board.GetWinner(); w == nil || *w != player {
			out = append(out, Violation{"winning-move-sets-winner",
				fmt.Sprintf("applying %s did not set %v as winner", sm.Action, player)})
		}
		if !allPostStates[child.Board.Hash] {
			out = append(out, Violation{"mate-subset-of-all",
				fmt.Sprintf("winning move %s reaches a poststate absent from the unrestricted move list", sm.Action)})
		}
	}

	if !exemptGenerators[god.Name] {
		out = append(out, checkNoDuplicatePoststates(state, player, allMoves)...)
		out = append(out, checkBlockersReduceThreats(state, player, oppGod, allMoves)...)
	}

	out = append(out, checkFlaggedMovesThreatenAfterPass(state, player, allMoves)...)
	out = append(out, checkAthenaClimbRestriction(state, player, allMoves)...)
	out = append(out, checkPersephoneMandatoryClimb(state, player, oppGod, allMoves)...)

	return out
}

func checkNoDuplicatePoststates(state *gods.GameState, player board.Player, allMoves []board.ScoredMove) []Violation {
	var out []Violation
	seen := make(map[board.HashType]board.Move, len(allMoves))
	for _, sm := range allMoves {
		child := state.NextState(player, sm.Action)
		if prior, ok := seen[child.Board.Hash]; ok {
			out = append(out, Violation{"duplicate-poststate",
				fmt.Sprintf("moves %s and %s both reach hash %016x", prior, sm.Action, child.Board.Hash)})
			continue
		}
		seen[child.Board.Hash] = sm.Action
	}
	return out
}

// checkBlockersReduceThreats verifies the blocker law: for every
// move w that would win for the opponent if it were their turn,
// each of our moves whose from/to squares intersect the threats' own
// from/to squares must, once applied, eliminate at least one of the
// original winning replies as-encoded. (Counting threats before and
// after would falsely fire when the blocking move's own build raises
// an unrelated square to level 3 and hands the opponent a fresh
// threat; the law is about refuting an existing one.)
//
// Pan as the opponent is skipped: a fall win's destination can sit
// at any height, so building on it does not refute the fall.
func checkBlockersReduceThreats(state *gods.GameState, player board.Player, oppGod *gods.StaticGod, allMoves []board.ScoredMove) []Violation {
	var out []Violation

	if oppGod.Name == board.Pan || exemptGenerators[oppGod.Name] {
		return nil
	}

	hypotheticalOppWins := gods.GenerateRespectingOpponent(state, player.Other(), gods.MateOnly, board.Empty)
	if len(hypotheticalOppWins) == 0 {
		return nil
	}

	// Interact on the threats' own from/to footprint rather than the
	// full blocker-board union: a god may declare extra squares (a push
	// landing, a jumped-over path) whose occupation refutes the threat
	// but whose mere build does not, and those would be false
	// violations here.
	var keySquares board.BitBoard
	for _, w := range hypotheticalOppWins {
		keySquares |= board.AsMask(w.Action.From()).With(w.Action.To())
	}

	for _, sm := range allMoves {
		if (sm.Action.MoveMask() & keySquares).IsEmpty() {
			continue
		}
		child := state.NextState(player, sm.Action)
		if child.Board.GetWinner() != nil {
			continue
		}
		after := gods.GenerateRespectingOpponent(&child, player.Other(), gods.MateOnly, board.Empty)
		remaining := make(map[board.Move]bool, len(after))
		for _, w := range after {
			remaining[w.Action] = true
		}
		eliminated := false
		for _, w := range hypotheticalOppWins {
			if !remaining[w.Action] {
				eliminated = true
				break
			}
		}
		if !eliminated {
			out = append(out, Violation{"blocker-reduces-threats",
				fmt.Sprintf("move %s intersects the opponent's blocker union but refuted none of %d threats", sm.Action, len(hypotheticalOppWins))})
		}
	}
	return out
}

// checkFlaggedMovesThreatenAfterPass verifies the check law: every
// move flagged IsCheck must leave the mover with a winning reply
// after a simulated opponent pass. Skipped entirely when either god
// uses a wind direction — wind check detection is conservative and a
// known false-positive source.
func checkFlaggedMovesThreatenAfterPass(state *gods.GameState, player board.Player, allMoves []board.ScoredMove) []Violation {
	if state.God(player).UsesWindDirection || state.Opponent(player).UsesWindDirection {
		return nil
	}
	var out []Violation
	for _, sm := range allMoves {
		if !sm.Action.IsCheck() {
			continue
		}
		child := state.NextState(player, sm.Action)
		if child.Board.GetWinner() != nil {
			continue
		}
		passed := child.Copy()
		passed.Board.FlipCurrentPlayer()
		mateNext := gods.GenerateRespectingOpponent(&passed, player, gods.MateOnly, board.Empty)
		if len(mateNext) == 0 {
			out = append(out, Violation{"check-flag-unconfirmed",
				fmt.Sprintf("move %s is flagged IsCheck but no winning reply exists after a pass", sm.Action)})
		}
	}
	return out
}

// checkAthenaClimbRestriction verifies no generated move climbs while
// the mover's climb-permission bit is cleared.
func checkAthenaClimbRestriction(state *gods.GameState, player board.Player, allMoves []board.ScoredMove) []Violation {
	var out []Violation
	if state.Board.GetWorkerCanClimb(player) {
		return nil
	}
	for _, sm := range allMoves {
		if sm.Action.IsWinning() {
			continue
		}
		if state.Board.GetHeight(sm.Action.To()) > state.Board.GetHeight(sm.Action.From()) {
			out = append(out, Violation{"athena-climb-restriction",
				fmt.Sprintf("move %s climbs while player %v is climb-restricted", sm.Action, player)})
		}
	}
	return out
}

// checkPersephoneMandatoryClimb verifies the mandatory-climb rule
// directly against the god's raw (unwrapped) generator output:
// GenerateRespectingOpponent should narrow to climbing-only moves
// whenever the raw generator offers at least one.
func checkPersephoneMandatoryClimb(state *gods.GameState, player board.Player, oppGod *gods.StaticGod, wrapped []board.ScoredMove) []Violation {
	if oppGod.Name != board.Persephone {
		return nil
	}
	raw := state.God(player).Generate(state, player, gods.IncludeScore, board.Empty)
	hasClimb := false
	for _, sm := range raw {
		if sm.Action.IsWinning() || state.Board.GetHeight(sm.Action.To()) > state.Board.GetHeight(sm.Action.From()) {
			hasClimb = true
			break
		}
	}
	if !hasClimb {
		return nil
	}
	for _, sm := range wrapped {
		if !sm.Action.IsWinning() && state.Board.GetHeight(sm.Action.To()) <= state.Board.GetHeight(sm.Action.From()) {
			return []Violation{{"persephone-mandatory-climb",
				fmt.Sprintf("move %s is non-climbing despite a climbing move being available", sm.Action)}}
		}
	}
	return nil
}
