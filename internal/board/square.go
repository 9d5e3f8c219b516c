package board

import "fmt"

// Square identifies one of the 25 cells of the grid. Column = sq % 5,
// row = sq / 5. A1 is square 0 (bottom-left in conventional board
// orientation), E5 is square 24.
type Square uint8

// NoSquare is the sentinel "absent" value used by optional 5-bit move
// fields.
const NoSquare Square = 25

// BoardWidth and BoardSize describe the fixed 5x5 grid.
const (
	BoardWidth = 5
	BoardSize  = 25
)

// Square constants, named the way chess engines in the pack name
// theirs (file-letter + rank-number), useful for literal test
// positions and move strings.
const (
	A1 Square = iota
	B1
	C1
	D1
	E1
	A2
	B2
	C2
	D2
	E2
	A3
	B3
	C3
	D3
	E3
	A4
	B4
	C4
	D4
	E4
	A5
	B5
	C5
	D5
	E5
)

// File returns the column (0=A .. 4=E).
func (sq Square) File() int {
	return int(sq) % BoardWidth
}

// Rank returns the row (0=rank 1 .. 4=rank 5).
func (sq Square) Rank() int {
	return int(sq) / BoardWidth
}

// NewSquare builds a square from 0-indexed file/rank.
func NewSquare(file, rank int) Square {
	return Square(rank*BoardWidth + file)
}

// IsValid reports whether sq is one of the 25 real board squares.
func (sq Square) IsValid() bool {
	return sq < BoardSize
}

func (sq Square) String() string {
	if !sq.IsValid() {
		return "-"
	}
	return fmt.Sprintf("%c%d", 'A'+sq.File(), sq.Rank()+1)
}

// ParseSquare parses algebraic notation such as "C3" into a Square.
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return NoSquare, fmt.Errorf("invalid square %q", s)
	}
	file := int(s[0]|0x20) - 'a'
	rank := int(s[1] - '1')
	if file < 0 || file >= BoardWidth || rank < 0 || rank >= BoardWidth {
		return NoSquare, fmt.Errorf("invalid square %q", s)
	}
	return NewSquare(file, rank), nil
}

// Direction identifies one of the 8 king-step directions. Direction 0
// means "no direction" and is used as the neutral wind state.
type Direction uint8

const (
	DirNone Direction = iota
	DirN
	DirNE
	DirE
	DirSE
	DirS
	DirSW
	DirW
	DirNW
)

// NumDirections is the count of real (non-DirNone) directions.
const NumDirections = 8

var directionDelta = [9][2]int{
	DirNone: {0, 0},
	DirN:    {0, 1},
	DirNE:   {1, 1},
	DirE:    {1, 0},
	DirSE:   {1, -1},
	DirS:    {0, -1},
	DirSW:   {-1, -1},
	DirW:    {-1, 0},
	DirNW:   {-1, 1},
}

// step returns the square one king-step from sq in direction d, or
// NoSquare if that would leave the board.
func step(sq Square, d Direction) Square {
	if !sq.IsValid() || d == DirNone {
		return NoSquare
	}
	delta := directionDelta[d]
	f := sq.File() + delta[0]
	r := sq.Rank() + delta[1]
	if f < 0 || f >= BoardWidth || r < 0 || r >= BoardWidth {
		return NoSquare
	}
	return NewSquare(f, r)
}

// NeighborMap[sq] is the BitBoard of up-to-8 king-neighbors of sq.
var NeighborMap [BoardSize]BitBoard

// WindAwareNeighbor[windDir][sq] is NeighborMap[sq] with the single
// neighbor in windDir removed (windDir == DirNone leaves it
// unchanged). Consulted by worker movement whenever an Aeolus wind
// is active (internal/gods).
var WindAwareNeighbor [9][BoardSize]BitBoard

// Push[from][over] is the square "behind" over as seen from from, when
// from/over/target are three colinear adjacent squares — i.e. the
// square a worker displaced by Minotaur lands on. NoSquare if from and
// over are not adjacent, or the push would leave the board.
var Push [BoardSize][BoardSize]Square

// Between[from][to] is the square between from and to when they are
// exactly two king-steps apart along one of the 8 directions, else
// NoSquare.
var Between [BoardSize][BoardSize]Square

func init() {
	for sq := Square(0); sq < BoardSize; sq++ {
		var nb BitBoard
		for d := DirN; d <= DirNW; d++ {
			if n := step(sq, d); n != NoSquare {
				nb = nb.With(n)
			}
		}
		NeighborMap[sq] = nb
	}

	for from := Square(0); from < BoardSize; from++ {
		Push[from] = [BoardSize]Square{}
		Between[from] = [BoardSize]Square{}
		for i := range Push[from] {
			Push[from][i] = NoSquare
			Between[from][i] = NoSquare
		}
		for d := DirN; d <= DirNW; d++ {
			over := step(from, d)
			if over == NoSquare {
				continue
			}
			Push[from][over] = step(over, d)

			between := over
			twoAway := step(over, d)
			if twoAway != NoSquare {
				Between[from][twoAway] = between
			}
		}
	}

	for wind := DirNone; wind <= DirNW; wind++ {
		for sq := Square(0); sq < BoardSize; sq++ {
			mask := NeighborMap[sq]
			if wind != DirNone {
				if blocked := step(sq, wind); blocked != NoSquare {
					mask = mask.Without(blocked)
				}
			}
			WindAwareNeighbor[wind][sq] = mask
		}
	}
}
