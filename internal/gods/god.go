// Package gods implements the uniform move-generation contract shared
// by every asymmetric god power, plus a representative subset of the
// ~40 powers in full: Mortal, Athena, Minotaur, Hermes,
// Apollo, Nemesis, Hydra, Morpheus, Persephone, Aeolus, and Pan.
package gods

import "github.com/jpricey/santorini-core/internal/board"

// MoveGenFlags narrows what Generate produces for a given call site.
type MoveGenFlags uint8

const (
	// StopOnMate returns as soon as one winning move is found.
	StopOnMate MoveGenFlags = 1 << iota
	// MateOnly returns only winning moves.
	MateOnly
	// IncludeScore attaches heuristic sentinel scores to each move.
	IncludeScore
	// InteractWithKeySquares restricts output to moves that touch the
	// supplied key-square set (blocking a threatened opponent win).
	InteractWithKeySquares
	// GenerateThreatsOnly returns only moves that leave the mover
	// threatening a win next turn (quiescence's forcing-move set).
	GenerateThreatsOnly
)

// Has reports whether f is set in flags.
func (flags MoveGenFlags) Has(f MoveGenFlags) bool { return flags&f != 0 }

// StaticGod is the constant, per-god function-pointer record
//. Every god power this engine
// knows about is exactly one package-level *StaticGod value; nothing
// dynamically registers or subclasses a god. Flat, static dispatch
// tables beat interface hierarchies when the set of implementations
// is closed.
type StaticGod struct {
	Name board.GodName

	// Generate produces every legal move for player from board,
	// subject to flags. keySquares is consulted only when flags has
	// InteractWithKeySquares set; it may be board.Empty otherwise.
	Generate func(state *GameState, player board.Player, flags MoveGenFlags, keySquares board.BitBoard) []board.ScoredMove

	// Apply mutates state in place to the post-move position. otherGod
	// is the opponent's StaticGod, needed for oppo_worker_xor-style
	// hooks (e.g. a female-worker tracker).
	Apply func(state *GameState, player board.Player, move board.Move, otherGod *StaticGod)

	// BlockerBoard is the set of squares whose occupation by the
	// opponent would make move unmakeable as given.
	BlockerBoard func(move board.Move) board.BitBoard

	// HistoryIndex packs move into a compact key for the move-ordering
	// history table.
	HistoryIndex func(state *GameState, move board.Move) uint32

	// Stringify renders move in this god's textual convention
	Stringify func(move board.Move) string

	// ParseGodData parses this god's god_data sub-string from a FEN
	// spec into the packed board.GodData register.
	ParseGodData func(s string) (board.GodData, error)

	// StringifyGodData is ParseGodData's inverse.
	StringifyGodData func(data board.GodData) string

	// BaseHashP1, BaseHashP2 seed BoardState.Hash so that two
	// identical boards under different matchups never collide
	BaseHashP1, BaseHashP2 board.HashType

	// Placement is the starting-placement convention this god uses.
	Placement board.PlacementType

	// HasOpponentClimbRestriction marks Athena: after this god's
	// worker moves up, the opponent's climbing moves are suppressed
	// for one turn.
	HasOpponentClimbRestriction bool

	// UsesWindDirection marks Aeolus: god_data stores an active wind
	// direction that prunes one neighbor direction for both players.
	UsesWindDirection bool

	// TracksFemaleWorker marks gods (Selene-style) whose god_data
	// records which of their workers is the "female" one, consulted
	// by BoardState.OppoWorkerXor/OppoWorkerKill.
	TracksFemaleWorker bool
}

// GameState is a BoardState bound to the two StaticGod powers playing
// it. It owns its BoardState exclusively
// and is cloned by value for search recursion.
type GameState struct {
	Board board.BoardState
	Gods  [2]*StaticGod
}

// God returns the StaticGod acting for player.
func (g *GameState) God(player board.Player) *StaticGod { return g.Gods[player] }

// Opponent returns the StaticGod acting for the player other than
// player.
func (g *GameState) Opponent(player board.Player) *StaticGod { return g.Gods[player.Other()] }

// Copy returns a value copy of g; the two StaticGod pointers are
// shared (they are immutable static records) while the BoardState is
// duplicated.
func (g GameState) Copy() GameState {
	return GameState{Board: g.Board.Copy(), Gods: g.Gods}
}

// NextState applies move for player and returns the resulting clone,
// leaving g untouched.
func (g *GameState) NextState(player board.Player, move board.Move) GameState {
	next := g.Copy()
	acting := next.God(player)
	acting.Apply(&next, player, move, next.Opponent(player))
	next.Board.CurrentPlayer = player.Other()
	next.Board.Hash ^= board.ZobristPlayerTwo
	return next
}

// BaseHash returns the zobrist base this game's matchup folds into
// every hash, combining both gods' per-player identity constants.
func (g *GameState) BaseHash() board.HashType {
	return g.Gods[board.PlayerOne].BaseHashP1 ^ g.Gods[board.PlayerTwo].BaseHashP2
}

// PartialActionKind classifies one UI-granularity step of a move.
type PartialActionKind uint8

const (
	// SelectWorker picks the acting worker on its current square.
	SelectWorker PartialActionKind = iota
	// MoveTo relocates the selected worker.
	MoveTo
	// BuildAt raises the named square by one level.
	BuildAt
)

// PartialAction is one step of the sequence a UI walks a user through
// to enter a move interactively.
type PartialAction struct {
	Kind   PartialActionKind
	Square board.Square
}

// InteractiveActions decomposes move into its common three-step
// shape: select the acting worker, move it, build. Winning moves
// carry no build step. God-specific payload squares (a push target, a
// second worker, a wind pick) are surfaced through Stringify; the
// richer per-god interactive flows belong to the UI, an external
// collaborator.
func InteractiveActions(m board.Move) []PartialAction {
	if m == board.NullMove {
		return nil
	}
	out := []PartialAction{
		{Kind: SelectWorker, Square: m.From()},
		{Kind: MoveTo, Square: m.To()},
	}
	if !m.IsWinning() && m.Build() != board.NoSquare {
		out = append(out, PartialAction{Kind: BuildAt, Square: m.Build()})
	}
	return out
}

// registry maps every known god name to its static record. Gods
// without a generator implementation in this package are simply absent;
// callers needing to validate a matchup for an unimplemented god
// consult board.BannedMatchups instead.
var registry = map[board.GodName]*StaticGod{}

// Register installs g into the registry keyed by its name. Called
// from each god's init().
func Register(g *StaticGod) { registry[g.Name] = g }

// Lookup returns the StaticGod for name, or nil if this engine does
// not implement that god's generator.
func Lookup(name board.GodName) *StaticGod { return registry[name] }
