// Package search implements the iterative-deepening negamax
// alpha-beta searcher: transposition table, move
// ordering via internal/movepicker, reverse futility pruning,
// null-move pruning, internal iterative reduction, late move
// reduction, check extension, quiescence, and a placement-phase
// search that runs before either side has all its workers on the
// board.
package search

import (
	"sync/atomic"

	"github.com/jpricey/santorini-core/internal/board"
	"github.com/jpricey/santorini-core/internal/gods"
	"github.com/jpricey/santorini-core/internal/movepicker"
	"github.com/jpricey/santorini-core/internal/nnue"
	"github.com/jpricey/santorini-core/internal/transposition"
)

// Infinity bounds the root alpha-beta window. WinScore is the base
// mate score; a forced win n plies away is reported as WinScore-n so
// shorter wins outrank longer ones and longer losses outrank shorter
// ones.
const (
	Infinity = 32000
	WinScore = 30000

	// mateBuffer is the score margin above which a value is treated as
	// a forced-outcome (mate) score rather than a heuristic one.
	mateBuffer = 1000

	// maxQPly bounds quiescence recursion, independent of the root's requested depth.
	maxQPly = 32

	// maxRootDepth is a hard ceiling on iterative deepening so a
	// terminator that never fires cannot loop forever.
	maxRootDepth = 256
)

func mateIn(ply int) int { return WinScore - ply }

func isMateScore(score int) bool {
	return score >= WinScore-mateBuffer || score <= -(WinScore-mateBuffer)
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// adjustScoreToTT/FromTT convert between a ply-relative mate score and
// a ply-independent one so the same TT entry stays meaningful from
// whatever ply it is probed at.
func adjustScoreToTT(score, ply int) int {
	switch {
	case score >= WinScore-mateBuffer:
		return score + ply
	case score <= -(WinScore - mateBuffer):
		return score - ply
	default:
		return score
	}
}

func adjustScoreFromTT(score, ply int) int {
	switch {
	case score >= WinScore-mateBuffer:
		return score - ply
	case score <= -(WinScore - mateBuffer):
		return score + ply
	default:
		return score
	}
}

// Result is one iterative-deepening improvement, delivered to the
// root callback.
type Result struct {
	BestMove Move
	Score    int
	Depth    int
	Nodes    uint64
}

// Move is either a placement (a bare destination square, encoded as a
// board.Move whose To() is the placed square) or an ordinary
// board.Move, unified so the root callback has one return shape
// regardless of which phase the game is in.
type Move = board.Move

// Callback receives each depth's improved result. May be nil.
type Callback func(Result)

// Searcher owns one search's mutable state: node counter, killer and
// history tables, and the TT/evaluator it was constructed with. Not
// safe for concurrent use; a game's search is one logical thread.
type Searcher struct {
	tt      *transposition.Table
	orderer *movepicker.Orderer
	eval    *nnue.Evaluator

	nodes      uint64
	term       Terminator
	manualStop atomic.Bool

	rootMove      Move
	rootMoveFound bool
}

// NewSearcher returns a Searcher bound to tt and eval, both owned by
// the caller and expected to outlive one or more Search calls.
func NewSearcher(tt *transposition.Table, eval *nnue.Evaluator) *Searcher {
	return &Searcher{tt: tt, orderer: movepicker.NewOrderer(), eval: eval}
}

// Stop requests the current (or next) Search call to return its best
// move so far at the next node boundary.
func (s *Searcher) Stop() { s.manualStop.Store(true) }

// Nodes returns the node count of the in-progress or most recent
// search.
func (s *Searcher) Nodes() uint64 { return s.nodes }

func (s *Searcher) reset() {
	s.nodes = 0
	s.manualStop.Store(false)
	s.orderer.Clear()
	s.rootMove = board.NullMove
}

func (s *Searcher) shouldStop() bool {
	if s.manualStop.Load() {
		return true
	}
	if s.term != nil && s.nodes&1023 == 0 {
		return s.term.ShouldStop(s.nodes)
	}
	return false
}

// Search runs iterative deepening from state until term fires, a
// forced outcome is found and confirmed within its reported mate
// distance, or maxRootDepth is reached. callback, if non-nil, is
// invoked once per completed depth with the current best move
func (s *Searcher) Search(state *gods.GameState, term Terminator, callback Callback) Result {
	s.reset()
	s.term = term
	s.tt.NewSearch()

	placements := [2]board.PlacementType{
		state.God(board.PlayerOne).Placement,
		state.God(board.PlayerTwo).Placement,
	}

	best := Result{BestMove: board.NullMove}

	for depth := 1; depth <= maxRootDepth; depth++ {
		if term != nil && term.ShouldStop(s.nodes) {
			break
		}

		s.rootMoveFound = false
		var score int
		if state.Board.AnyPlacementPhase(placements) {
			score = s.negamaxPlacement(state, depth, 0, -Infinity, Infinity, placements)
		} else {
			score = s.negamax(state, depth, 0, -Infinity, Infinity, false)
		}

		if s.rootMoveFound {
			best = Result{BestMove: s.rootMove, Score: score, Depth: depth, Nodes: s.nodes}
			if callback != nil {
				callback(best)
			}
		}

		if s.manualStop.Load() && !s.rootMoveFound {
			break
		}

		if isMateScore(score) {
			mateDistance := WinScore - absInt(score)
			if depth > mateDistance {
				break
			}
		}

		if s.manualStop.Load() {
			break
		}

		if dt, ok := term.(DepthTerminator); ok && depth >= dt.MaxDepth {
			break
		}
	}

	return best
}

// negamax is the interior movement-phase search. prevWasNull disables
// back-to-back null moves.
func (s *Searcher) negamax(state *gods.GameState, depth, ply int, alpha, beta int, prevWasNull bool) int {
	s.nodes++
	if s.shouldStop() {
		return 0
	}

	player := state.Board.CurrentPlayer

	if w := state.Board.GetWinner(); w != nil {
		if *w == player {
			return mateIn(ply)
		}
		return -mateIn(ply)
	}

	if depth <= 0 {
		return s.quiescence(state, ply, alpha, beta)
	}

	// Mate-distance pruning.
	if a := -mateIn(ply); a > alpha {
		alpha = a
	}
	if b := mateIn(ply + 1); b < beta {
		beta = b
	}
	if alpha >= beta {
		return alpha
	}

	isRoot := ply == 0
	isPV := beta-alpha > 1

	ttMove := board.Move(board.NullMove)
	var ttStaticEval int
	haveTTEval := false
	if entry, found := s.tt.Probe(state.Board.Hash); found {
		ttMove = entry.BestMove
		ttStaticEval = int(entry.StaticEval)
		haveTTEval = true
		if int(entry.Depth) >= depth && !isRoot {
			score := adjustScoreFromTT(int(entry.Score), ply)
			switch entry.Bound {
			case transposition.Exact:
				return score
			case transposition.LowerBound:
				if score > alpha {
					alpha = score
				}
			case transposition.UpperBound:
				if score < beta {
					beta = score
				}
			}
			if alpha >= beta {
				return score
			}
		}
	} else if !isRoot && !isPV && depth >= 4 {
		// Internal Iterative Reduction.
		depth--
	}

	god := state.God(player)
	oppGod := state.Opponent(player)

	oppThreats := gods.GenerateRespectingOpponent(state, player.Other(), gods.MateOnly, board.Empty)
	inCheck := len(oppThreats) > 0
	var keySquares board.BitBoard
	if inCheck {
		for _, m := range oppThreats {
			keySquares |= oppGod.BlockerBoard(m.Action)
		}
	}

	genFlags := gods.IncludeScore
	if inCheck {
		genFlags |= gods.InteractWithKeySquares
	}
	moves := gods.GenerateRespectingOpponent(state, player, genFlags, keySquares)

	if len(moves) == 0 {
		if inCheck {
			return -mateIn(ply + 1)
		}
		return -mateIn(ply)
	}

	staticEval := 0
	if haveTTEval {
		staticEval = ttStaticEval
	} else {
		staticEval = s.eval.Evaluate(&state.Board, player)
	}

	if !isRoot && !isPV && !inCheck {
		// Reverse Futility Pruning.
		if depth <= 8 {
			margin := 80 * depth
			if staticEval-margin >= beta {
				return beta
			}
		}

		// Null-Move Pruning.
		if depth > 3 && !prevWasNull && staticEval >= beta {
			reduction := 3 + depth/4
			nullDepth := depth - 1 - reduction
			child := state.Copy()
			child.Board.FlipCurrentPlayer()
			nullScore := -s.negamax(&child, nullDepth, ply+1, -beta, -beta+1, true)
			if nullScore >= beta {
				return beta
			}
		}
	}

	ordered := s.orderer.Order(state, god, moves, ply, ttMove)

	bestScore := -Infinity
	bestMove := board.NullMove
	bound := transposition.UpperBound

	for i, entry := range ordered {
		if s.shouldStop() {
			break
		}
		move := entry.Move.Action

		child := state.NextState(player, move)

		childDepth := depth - 1
		if move.IsCheck() {
			// Check-extension: don't decrement depth for a forced
			// response line.
			childDepth = depth
		}

		var score int
		if i == 0 {
			score = -s.negamax(&child, childDepth, ply+1, -beta, -alpha, false)
		} else {
			reduction := 0
			if childDepth >= 3 && i >= 3 && !inCheck && !move.IsCheck() {
				reduction = 1
				if i >= 8 {
					reduction = 2
				}
			}
			score = -s.negamax(&child, childDepth-reduction, ply+1, -alpha-1, -alpha, false)
			if score > alpha && (reduction > 0 || isPV) {
				score = -s.negamax(&child, childDepth, ply+1, -beta, -alpha, false)
			}
		}

		if s.shouldStop() {
			break
		}

		if score > bestScore {
			bestScore = score
			bestMove = move
			if score > alpha {
				alpha = score
				bound = transposition.Exact
				if isRoot {
					s.rootMove = move
					s.rootMoveFound = true
				}
			}
		}

		if score >= beta {
			if !s.shouldStop() {
				s.tt.Store(state.Board.Hash, depth, int16(adjustScoreToTT(score, ply)), int16(staticEval), transposition.LowerBound, move)
			}
			if !move.IsWinning() {
				s.orderer.UpdateKillers(move, ply)
				s.orderer.UpdateHistory(state, god, move, depth, true)
			}
			return score
		}
	}

	if !s.shouldStop() {
		s.tt.Store(state.Board.Hash, depth, int16(adjustScoreToTT(bestScore, ply)), int16(staticEval), bound, bestMove)
		s.maybeStorePermutations(state, depth, bestScore, staticEval, bound, bestMove, ply)
	}

	return bestScore
}

// maybeStorePermutations also inserts the TT entry under the hash of
// every dihedral image of state's board, when the game is early
// enough that the symmetry classes are still likely to be hit again
//. flipGodData is nil: no
// representative god's god_data carries spatial information that
// needs remapping under a board symmetry (Aeolus's wind direction
// would, but is deliberately left unmapped here — see DESIGN.md).
func (s *Searcher) maybeStorePermutations(state *gods.GameState, depth, score, staticEval int, bound transposition.Bound, bestMove board.Move, ply int) {
	builtSquares := 0
	for _, layer := range state.Board.HeightMap {
		builtSquares += layer.PopCount()
	}
	if builtSquares > 1 {
		return
	}
	images := state.Board.GetAllPermutations(false, state.BaseHash(), nil)
	for _, img := range images {
		s.tt.Store(img.Hash, depth, int16(adjustScoreToTT(score, ply)), int16(staticEval), bound, bestMove)
	}
}

// quiescence extends search along forcing lines only: it is a no-op
// (returns the static eval, fail-soft-capped at beta) unless the
// opponent currently threatens to win.
func (s *Searcher) quiescence(state *gods.GameState, ply int, alpha, beta int) int {
	s.nodes++
	if s.shouldStop() {
		return 0
	}

	player := state.Board.CurrentPlayer
	if w := state.Board.GetWinner(); w != nil {
		if *w == player {
			return mateIn(ply)
		}
		return -mateIn(ply)
	}

	god := state.God(player)
	oppGod := state.Opponent(player)
	standPat := s.eval.Evaluate(&state.Board, player)

	oppThreats := gods.GenerateRespectingOpponent(state, player.Other(), gods.MateOnly, board.Empty)
	if len(oppThreats) == 0 {
		if standPat >= beta {
			return beta
		}
		return standPat
	}

	if ply >= maxQPly {
		return standPat
	}

	var keySquares board.BitBoard
	for _, m := range oppThreats {
		keySquares |= oppGod.BlockerBoard(m.Action)
	}

	moves := gods.GenerateRespectingOpponent(state, player, gods.IncludeScore|gods.InteractWithKeySquares, keySquares)
	if len(moves) == 0 {
		return -mateIn(ply + 1)
	}

	best := standPat
	if best > alpha {
		alpha = best
	}
	if alpha >= beta {
		return beta
	}

	ordered := s.orderer.Order(state, god, moves, ply, board.NullMove)
	for _, entry := range ordered {
		if s.shouldStop() {
			break
		}
		child := state.NextState(player, entry.Move.Action)
		score := -s.quiescence(&child, ply+1, -beta, -alpha)
		if score > best {
			best = score
		}
		if score > alpha {
			alpha = score
		}
		if alpha >= beta {
			break
		}
	}

	return best
}

// nextPlacementPlayer returns the next player who still needs to place
// a worker, cycling from cur.Other(). ok is false once both sides have
// placed their full complement (the movement phase begins).
func nextPlacementPlayer(b *board.BoardState, cur board.Player, placements [2]board.PlacementType) (board.Player, bool) {
	p := cur.Other()
	for i := 0; i < 2; i++ {
		if b.IsPlacementPhase(p, placements[p.Index()]) {
			return p, true
		}
		p = p.Other()
	}
	return cur, false
}

// negamaxPlacement enumerates placement squares one worker at a time:
// same negamax shape, no quiescence, no TT (placement nodes are rare
// enough, and a placement "move" isn't one of a god's own Move
// encodings).
func (s *Searcher) negamaxPlacement(state *gods.GameState, depth, ply int, alpha, beta int, placements [2]board.PlacementType) int {
	s.nodes++
	if s.shouldStop() {
		return 0
	}

	player := state.Board.CurrentPlayer
	ownPlacement := placements[player.Index()]
	oppPlacement := placements[player.Other().Index()]
	squares := state.Board.GeneratePlacements(player, ownPlacement, oppPlacement)
	if len(squares) == 0 {
		return 0
	}

	if depth <= 0 {
		return s.eval.Evaluate(&state.Board, player)
	}

	bestScore := -Infinity
	isRoot := ply == 0

	for _, sq := range squares {
		if s.shouldStop() {
			break
		}

		child := state.Copy()
		child.Board.ApplyPlacement(player, sq, ownPlacement == board.PlacementFemaleWorker)

		next, stillPlacing := nextPlacementPlayer(&child.Board, player, placements)
		var score int
		if !stillPlacing {
			// The movement phase opens with whoever did not place last.
			// With asymmetric worker counts (Hydra's three) that is not
			// always Player Two, so flip away from the placer rather
			// than resetting to a fixed side.
			if child.Board.CurrentPlayer != player.Other() {
				child.Board.FlipCurrentPlayer()
			}
			score = -s.negamax(&child, depth-1, ply+1, -beta, -alpha, false)
		} else {
			if next != player {
				child.Board.FlipCurrentPlayer()
			}
			score = -s.negamaxPlacement(&child, depth-1, ply+1, -beta, -alpha, placements)
		}

		if s.shouldStop() {
			break
		}

		if score > bestScore {
			bestScore = score
			if score > alpha {
				alpha = score
				if isRoot {
					s.rootMove = board.NewMove(board.NoSquare, sq, board.NoSquare, 0, false)
					s.rootMoveFound = true
				}
			}
		}
		if alpha >= beta {
			break
		}
	}

	return bestScore
}
