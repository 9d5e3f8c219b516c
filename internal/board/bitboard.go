package board

import "math/bits"

// BitBoard is a 32-bit set of squares (bits 0..24) plus seven reserved
// high bits used for auxiliary per-height-layer state:
// bits 25..29 must stay clear (a shift-by-one helper would otherwise
// spill into them), bits 30..31 carry winner flags on height layer 0
// and per-player "may not climb" restriction flags on height layer 1.
type BitBoard uint32

const (
	// MainSectionMask is the 25 real board squares.
	MainSectionMask BitBoard = (1 << BoardSize) - 1
	// OffSectionMask is every bit outside the 25 real squares,
	// including the reserved-clear region and the two auxiliary bits.
	OffSectionMask BitBoard = ^MainSectionMask

	Empty BitBoard = 0
)

// AsMask returns the singleton BitBoard containing sq.
func AsMask(sq Square) BitBoard {
	if !sq.IsValid() {
		return Empty
	}
	return 1 << BitBoard(sq)
}

// With returns b with sq added.
func (b BitBoard) With(sq Square) BitBoard { return b | AsMask(sq) }

// Without returns b with sq removed.
func (b BitBoard) Without(sq Square) BitBoard { return b &^ AsMask(sq) }

// Has reports whether sq is a member of b.
func (b BitBoard) Has(sq Square) bool { return b&AsMask(sq) != 0 }

// IsEmpty reports whether the main 25-bit section of b has no members.
func (b BitBoard) IsEmpty() bool { return b&MainSectionMask == 0 }

// IsNotEmpty is the complement of IsEmpty.
func (b BitBoard) IsNotEmpty() bool { return !b.IsEmpty() }

// PopCount returns the number of member squares (main section only).
func (b BitBoard) PopCount() int {
	return bits.OnesCount32(uint32(b & MainSectionMask))
}

// LSB returns the lowest-indexed member square, or NoSquare if empty.
func (b BitBoard) LSB() Square {
	m := uint32(b & MainSectionMask)
	if m == 0 {
		return NoSquare
	}
	return Square(bits.TrailingZeros32(m))
}

// PopLSB removes and returns the lowest-indexed member square.
func (b *BitBoard) PopLSB() Square {
	sq := b.LSB()
	if sq != NoSquare {
		*b &^= AsMask(sq)
	}
	return sq
}

// ForEach calls f once per member square, lowest square first.
func (b BitBoard) ForEach(f func(Square)) {
	for v := b & MainSectionMask; v != 0; {
		sq := v.LSB()
		v &^= AsMask(sq)
		f(sq)
	}
}

// Squares materializes b's member squares into a slice.
func (b BitBoard) Squares() []Square {
	out := make([]Square, 0, b.PopCount())
	b.ForEach(func(sq Square) { out = append(out, sq) })
	return out
}

// flipLookup is shared by FlipHorizontal/FlipVertical/Transpose: each
// entry maps a source square to its destination square under the
// named symmetry.
var (
	flipHorizontalLookup [BoardSize]Square
	flipVerticalLookup   [BoardSize]Square
	transposeLookup      [BoardSize]Square
)

func init() {
	for sq := Square(0); sq < BoardSize; sq++ {
		f, r := sq.File(), sq.Rank()
		flipHorizontalLookup[sq] = NewSquare(BoardWidth-1-f, r)
		flipVerticalLookup[sq] = NewSquare(f, BoardWidth-1-r)
		transposeLookup[sq] = NewSquare(r, f)
	}
}

func (b BitBoard) remap(lookup *[BoardSize]Square) BitBoard {
	var out BitBoard
	(b & MainSectionMask).ForEach(func(sq Square) {
		out = out.With(lookup[sq])
	})
	return out
}

// FlipHorizontal mirrors the board left-right (reflects files).
func (b BitBoard) FlipHorizontal() BitBoard { return b.remap(&flipHorizontalLookup) }

// FlipVertical mirrors the board top-bottom (reflects ranks).
func (b BitBoard) FlipVertical() BitBoard { return b.remap(&flipVerticalLookup) }

// Transpose reflects the board across the A1-E5 diagonal.
func (b BitBoard) Transpose() BitBoard { return b.remap(&transposeLookup) }

func (b BitBoard) String() string {
	out := make([]byte, 0, 35)
	for row := BoardWidth - 1; row >= 0; row-- {
		for col := 0; col < BoardWidth; col++ {
			if b.Has(NewSquare(col, row)) {
				out = append(out, '1')
			} else {
				out = append(out, '.')
			}
		}
		out = append(out, '\n')
	}
	return string(out)
}
