package board

import "fmt"

// Move is the packed 32-bit encoding of a single action for whichever
// god produced it. Only the low 30 bits are
// god-specific; bits 30/31 are universal:
//
//	bits  0.. 4: primary worker source square (god convention)
//	bits  5.. 9: primary worker destination square (god convention)
//	bits 10..14: primary build square (god convention)
//	bits 15..29: god-specific payload (secondary builds, domes, swap
//	             targets, flip directions, wind direction, ...)
//	bit      30: IsCheck — applying this move leaves the mover
//	             threatening an immediate win next turn
//	bit      31: IsWinning — applying this move sets the winner
//
// The low 30 bits are opaque outside the god that produced them; only
// that god's accessor methods (in internal/gods) know how to unpack
// them. Packing into a single integer (rather than a struct per move)
// keeps move lists cache-friendly and lets two moves compare by plain
// integer equality.
type Move uint32

const (
	PositionWidth     = 5
	PositionMask Move = (1 << PositionWidth) - 1

	FromOffset  = 0
	ToOffset    = PositionWidth
	BuildOffset = 2 * PositionWidth

	IsCheckBit   Move = 1 << 30
	IsWinningBit Move = 1 << 31

	// PayloadMask covers the god-specific bits 0..29, i.e. everything
	// except the universal check/winning flags.
	PayloadMask Move = (1 << 30) - 1
)

// NullMove is the sentinel "no move" value.
const NullMove Move = 0xFFFFFFFF

// NewMove packs the three universal fields shared by most gods'
// ordinary (non-winning) moves: a worker move from/to, plus a build
// square. God-specific bits from bit 15 up are ORed in by the caller.
func NewMove(from, to, build Square, payload Move, isCheck bool) Move {
	m := Move(from)<<FromOffset | Move(to)<<ToOffset | Move(build)<<BuildOffset | payload
	if isCheck {
		m |= IsCheckBit
	}
	return m
}

// NewWinningMove packs a winning worker move. Winning moves never
// carry a build, and a winning position is terminal, so no check bit
// is meaningful either.
func NewWinningMove(from, to Square, payload Move) Move {
	return Move(from)<<FromOffset | Move(to)<<ToOffset | Move(NoSquare)<<BuildOffset | payload | IsWinningBit
}

func sqField(m Move, offset uint) Square {
	return Square((m >> offset) & PositionMask)
}

// From returns the primary worker's source square.
func (m Move) From() Square { return sqField(m, FromOffset) }

// To returns the primary worker's destination square.
func (m Move) To() Square { return sqField(m, ToOffset) }

// Build returns the primary build square (NoSquare for winning moves
// and for gods whose primary action is not move+build).
func (m Move) Build() Square { return sqField(m, BuildOffset) }

// IsWinning reports whether applying m immediately sets the winner.
func (m Move) IsWinning() bool { return m&IsWinningBit != 0 }

// IsCheck reports whether m leaves the mover threatening an immediate
// win next turn.
func (m Move) IsCheck() bool { return m&IsCheckBit != 0 }

// Payload returns the god-specific bits (0..29), useful for a god's
// own accessor methods to build on top of.
func (m Move) Payload() Move { return m & PayloadMask }

// MoveMask is the from/to squares as a BitBoard, the most common
// shape of a blocker board.
func (m Move) MoveMask() BitBoard {
	return AsMask(m.From()).With(m.To())
}

func (m Move) String() string {
	if m == NullMove {
		return "NULL"
	}
	if m.IsWinning() {
		return fmt.Sprintf("%s>%s#", m.From(), m.To())
	}
	build := m.Build()
	if build == NoSquare {
		return fmt.Sprintf("%s>%s", m.From(), m.To())
	}
	return fmt.Sprintf("%s>%s^%s", m.From(), m.To(), build)
}

// MoveScore is the 16-bit heuristic attached to a ScoredMove during
// move generation, before the evaluator scores the concrete
// resulting position.
type MoveScore int16

// Sentinel scores used to classify a move before the evaluator has
// run; the move-picker sorts on these first. Ordering (low to high):
// non-improver < improver < check < winning.
const (
	NonImproverSentinelScore MoveScore = 0
	ImproverSentinelScore    MoveScore = 1000
	CheckSentinelScore       MoveScore = 2000
	WinningSentinelScore     MoveScore = 30000
)

// ScoredMove pairs a Move with its current heuristic score.
type ScoredMove struct {
	Action Move
	Score  MoveScore
}

// NewScoredMove wraps a move with an explicit score.
func NewScoredMove(m Move, score MoveScore) ScoredMove {
	return ScoredMove{Action: m, Score: score}
}

// NewWinningScoredMove wraps a winning move with the winning
// sentinel score. Winning moves sit at the front of ScoredMove slices
// and the move-picker consumes them first explicitly.
func NewWinningScoredMove(m Move) ScoredMove {
	return ScoredMove{Action: m, Score: WinningSentinelScore}
}
