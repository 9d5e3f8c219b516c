package gods

import (
	"fmt"
	"strconv"

	"github.com/jpricey/santorini-core/internal/board"
)

const (
	morpheusBaseHashP1 board.HashType = 0x727068657573310A
	morpheusBaseHashP2 board.HashType = 0x727068657573320A
)

func init() {
	Register(&Morpheus)
}

// morpheusTokenMask is where god_data stores the accumulated,
// unspent build-token count (0..morpheusMaxTokens).
const (
	morpheusTokenMask  board.GodData = 0xF
	morpheusMaxTokens                = 15
)

// Morpheus moves like Mortal, but her build tokens accumulate: each
// turn her saved count increases by one, and she spends one or more
// of them to raise a single adjacent square by that many levels,
// capped at height 4.
//
// Simplification: the full rule also lets her spread a turn's spend
// across any mix of her 8 neighbor squares, or spend nothing at all;
// this implementation models a spend of at least one token,
// concentrated on one square. See DESIGN.md.
var Morpheus = StaticGod{
	Name:         board.Morpheus,
	Generate:     morpheusGenerate,
	Apply:        morpheusApply,
	BlockerBoard: mortalBlockerBoard,
	HistoryIndex: mortalHistoryIndex,
	Stringify:    morpheusStringify,
	ParseGodData: func(s string) (board.GodData, error) {
		if s == "" {
			return 0, nil
		}
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 || n > morpheusMaxTokens {
			return 0, fmt.Errorf("invalid morpheus token count %q", s)
		}
		return board.GodData(n), nil
	},
	StringifyGodData: func(data board.GodData) string {
		return strconv.Itoa(int(data & morpheusTokenMask))
	},
	BaseHashP1: morpheusBaseHashP1,
	BaseHashP2: morpheusBaseHashP2,
	Placement:  board.PlacementStandard,
}

// morpheusSpendOffset is where, in the payload, the number of tokens
// spent on this turn's build is packed (build square itself uses the
// normal bits 10..14 shared field).
const morpheusSpendOffset = 15

func morpheusGenerate(state *GameState, player board.Player, flags MoveGenFlags, keySquares board.BitBoard) []board.ScoredMove {
	b := newBuilder(flags)
	st := &state.Board
	available := int((st.GodData[player] & morpheusTokenMask) + 1)
	if available > morpheusMaxTokens {
		available = morpheusMaxTokens
	}

	st.Workers[player].ForEach(func(from board.Square) {
		if b.stop() {
			return
		}
		fromHeight := st.GetHeight(from)
		destinations := climbNeighbors(state, player, from, fromHeight)

		destinations.ForEach(func(to board.Square) {
			if b.stop() {
				return
			}
			toHeight := st.GetHeight(to)
			isImproving := toHeight > fromHeight

			if isWinningClimb(fromHeight, toHeight) {
				b.pushWinning(board.NewWinningMove(from, to, 0))
				return
			}

			builds := unblockedBuildSquares(state, player, from, to)
			builds = narrowBuilds(flags, builds, keySquares, board.AsMask(from).With(to))
			postOccupied := st.Workers[player].Without(from).With(to) | st.Workers[player.Other()]
			wind := activeWind(state)

			builds.ForEach(func(build board.Square) {
				buildHeight := st.GetHeight(build)
				maxSpend := 4 - buildHeight
				if maxSpend > available {
					maxSpend = available
				}
				for spend := 1; spend <= maxSpend; spend++ {
					isCheck := false
					if flags.Has(IncludeScore) || flags.Has(GenerateThreatsOnly) {
						isCheck = threatensWinAfter(state, to, build, spend, wind, postOccupied)
					}
					if flags.Has(GenerateThreatsOnly) && !isCheck {
						continue
					}
					payload := board.Move(spend) << morpheusSpendOffset
					b.push(board.NewMove(from, to, build, payload, isCheck), sentinelFor(isImproving, isCheck))
				}
			})
		})
	})

	return b.out
}

func morpheusSpend(m board.Move) int {
	return int((m.Payload() >> morpheusSpendOffset) & 0xF)
}

func morpheusApply(state *GameState, player board.Player, move board.Move, otherGod *StaticGod) {
	restoreClimbAfterMove(state, player)
	st := &state.Board

	if move.IsWinning() {
		st.WorkerXor(player, board.AsMask(move.From()).With(move.To()))
		st.SetWinner(player)
		return
	}

	st.WorkerXor(player, board.AsMask(move.From()).With(move.To()))

	spend := morpheusSpend(move)
	if spend <= 0 {
		spend = 1
	}
	remaining := spend
	for remaining >= 2 {
		st.DoubleBuildUp(move.Build())
		remaining -= 2
	}
	if remaining == 1 {
		st.BuildUp(move.Build())
	}

	available := int((st.GodData[player] & morpheusTokenMask) + 1)
	leftover := board.GodData(available - spend)
	st.SetGodData(player, (st.GodData[player] &^ morpheusTokenMask) | leftover)
}

func morpheusStringify(move board.Move) string {
	return fmt.Sprintf("%s*%d", move.String(), morpheusSpend(move))
}
