package board

import "fmt"

// GodData is a god's 32-bit per-player scratch register: tokens
// placed, power-used flags, wind direction, build tokens, a tracked
// "female worker" square, etc. Its bits mean nothing to BoardState —
// only the owning god's implementation interprets them.
type GodData = uint32

// climbMaskOffset is the bit offset, within height_map[1], of the
// two-player climb-restriction flag pair. The pair is held inverted
// relative to an "opponent may climb" reading: both bits default
// clear (a zero-valued board lets both players climb), and a bit is
// set for the player who is not allowed to climb next turn (Athena's
// effect). See DESIGN.md.
const climbMaskOffset = 30

// winnerMaskOffset is the bit offset, within height_map[0], of the two
// winner flags.
const winnerMaskOffset = 30

var playerToWinnerBit = [2]BitBoard{
	PlayerOne: 1 << winnerMaskOffset,
	PlayerTwo: 1 << (winnerMaskOffset + 1),
}

var playerToClimbBit = [2]BitBoard{
	PlayerOne: 1 << climbMaskOffset,
	PlayerTwo: 1 << (climbMaskOffset + 1),
}

// winnerLookup maps the raw 2-bit winner field to an optional player.
// Index 0b00 -> none, 0b01 -> PlayerOne, 0b10 -> PlayerTwo, 0b11 ->
// invalid (never produced by set_winner, since only one bit is ever
// set at a time).
var winnerLookup = [4]*Player{
	0b00: nil,
	0b01: playerPtr(PlayerOne),
	0b10: playerPtr(PlayerTwo),
	0b11: nil,
}

func playerPtr(p Player) *Player { return &p }

// BoardState is the process-private mutable view of a position. It
// owns everything the search mutates during a
// recursive negamax walk: height map, worker positions, per-player god
// scratch data, the incrementally-maintained zobrist hash, and the
// current player to move.
type BoardState struct {
	CurrentPlayer Player

	// HeightMap[L][s] is set iff square s has height >= L+1.
	// Invariant: HeightMap[L] is a superset of HeightMap[L+1].
	HeightMap [4]BitBoard

	// Workers[p] is the set of squares occupied by player p's
	// workers. Invariant: Workers[0] and Workers[1] are disjoint, and
	// neither intersects a domed square.
	Workers [2]BitBoard

	GodData [2]GodData

	Hash HashType

	// HeightLookup[s] denormalizes HeightMap into an O(1) 0..4 height
	// per square, redundant with HeightMap by construction.
	HeightLookup [BoardSize]uint8
}

// NewBasicState returns the conventional Mortal-vs-Mortal starting
// layout: P1 on C2/D2, P2 on B4/D4 opposite.
func NewBasicState() BoardState {
	var b BoardState
	b.Workers[PlayerOne] = AsMask(C2).With(D2)
	b.Workers[PlayerTwo] = AsMask(B4).With(D4)
	return b
}

// BaseHash is the per-matchup zobrist seed, XOR-folded into every
// hash so two identical boards under different god pairs never
// collide.
type BaseHash = HashType

// RecalculateInternals recomputes Hash and HeightLookup from scratch.
// Called after bulk edits (FEN parsing, dihedral permutation, test
// fixture construction) where incremental XOR maintenance wasn't
// used.
func (b *BoardState) RecalculateInternals(base BaseHash) {
	b.Hash = b.computeHashFromScratch(base)
	for sq := Square(0); sq < BoardSize; sq++ {
		b.HeightLookup[sq] = uint8(b.calculateHeight(AsMask(sq)))
	}
}

func (b *BoardState) computeHashFromScratch(base BaseHash) HashType {
	h := base
	for level := 0; level < 4; level++ {
		(b.HeightMap[level] & MainSectionMask).ForEach(func(sq Square) {
			h ^= ZobristHeight[level][sq]
		})
	}
	// Fold in the two auxiliary bit groups explicitly; they live
	// outside MainSectionMask so the loop above skips them.
	for bit := winnerMaskOffset; bit < winnerMaskOffset+2; bit++ {
		if b.HeightMap[0]&(1<<bit) != 0 {
			h ^= ZobristHeight[0][bit]
		}
	}
	for bit := climbMaskOffset; bit < climbMaskOffset+2; bit++ {
		if b.HeightMap[1]&(1<<bit) != 0 {
			h ^= ZobristHeight[1][bit]
		}
	}
	for p := 0; p < 2; p++ {
		(b.Workers[p] & MainSectionMask).ForEach(func(sq Square) {
			h ^= ZobristWorker[p][sq]
		})
	}
	for p := 0; p < 2; p++ {
		data := b.GodData[p]
		for data != 0 {
			bit := trailingZeros32(data)
			data &= data - 1
			h ^= ZobristData[p][bit]
		}
	}
	if b.CurrentPlayer == PlayerTwo {
		h ^= ZobristPlayerTwo
	}
	return h
}

func trailingZeros32(v uint32) int {
	n := 0
	for v&1 == 0 {
		v >>= 1
		n++
	}
	return n
}

func (b *BoardState) calculateHeight(mask BitBoard) int {
	count := 0
	for level := 0; level < 4; level++ {
		if b.HeightMap[level]&mask != 0 {
			count++
		}
	}
	return count
}

// FlipCurrentPlayer toggles whose turn it is, without applying a move
// (used by the search's null-move pruning).
func (b *BoardState) FlipCurrentPlayer() {
	b.CurrentPlayer = b.CurrentPlayer.Other()
	b.Hash ^= ZobristPlayerTwo
}

// GetHeight returns the 0..4 height of sq.
func (b *BoardState) GetHeight(sq Square) int {
	return int(b.HeightLookup[sq])
}

// GetWinner returns the winning player, if any.
func (b *BoardState) GetWinner() *Player {
	bits := (b.HeightMap[0] >> winnerMaskOffset) & 0b11
	return winnerLookup[bits]
}

// SetWinner marks player as having won.
func (b *BoardState) SetWinner(player Player) {
	b.HeightMap[0] ^= playerToWinnerBit[player]
	b.Hash ^= ZobristHeight[0][winnerMaskOffset+int(player)]
}

// UnsetWinner reverses SetWinner, used when the search unwinds a
// cloned winning position (or, with make/unmake boards, to undo).
func (b *BoardState) UnsetWinner(player Player) {
	b.HeightMap[0] ^= playerToWinnerBit[player]
	b.Hash ^= ZobristHeight[0][winnerMaskOffset+int(player)]
}

// GetWorkerCanClimb reports whether player may make a climbing move
// next turn (Athena's restriction sets the inverted bit for the
// opponent).
func (b *BoardState) GetWorkerCanClimb(player Player) bool {
	return b.HeightMap[1]&playerToClimbBit[player] == 0
}

// FlipWorkerCanClimb toggles player's climb-permission bit iff
// changed is true (a no-op otherwise).
func (b *BoardState) FlipWorkerCanClimb(player Player, changed bool) {
	if !changed {
		return
	}
	b.HeightMap[1] ^= playerToClimbBit[player]
	bit := climbMaskOffset + int(player)
	b.Hash ^= ZobristHeight[1][bit]
}

// ExactlyLevel0 is the set of squares at height exactly 0.
func (b *BoardState) ExactlyLevel0() BitBoard { return MainSectionMask &^ b.HeightMap[0] }

// ExactlyLevelN returns the set of squares at height exactly n (0..4).
func (b *BoardState) ExactlyLevelN(n int) BitBoard {
	if n == 0 {
		return b.ExactlyLevel0()
	}
	return b.HeightMap[n-1] &^ b.HeightMap[n]
}

// AtLeastLevelN returns the set of squares at height >= n.
func (b *BoardState) AtLeastLevelN(n int) BitBoard {
	if n == 0 {
		return MainSectionMask
	}
	return b.HeightMap[n-1]
}

// WorkerXor toggles the given worker bits for player, maintaining the
// hash incrementally.
func (b *BoardState) WorkerXor(player Player, xor BitBoard) {
	b.Workers[player] ^= xor
	(xor & MainSectionMask).ForEach(func(sq Square) {
		b.Hash ^= ZobristWorker[player][sq]
	})
}

// OppoWorkerXor toggles opponent worker bits, routing through the
// opposing god's female-worker bookkeeping when otherTracksFemale is
// set, so gods that track a specific worker keep their god_data
// pointing at it after a displacement.
func (b *BoardState) OppoWorkerXor(otherTracksFemale bool, player Player, xor BitBoard) {
	if otherTracksFemale && b.GodData[player]&uint32(xor) != 0 {
		b.DeltaGodData(player, uint32(xor))
	}
	b.WorkerXor(player, xor)
}

// OppoWorkerKill removes a killed opponent worker (Minotaur push onto
// a dome-adjacent trap is handled by the god itself; this variant is
// for gods that remove an opponent worker outright, which none of the
// gods in this repository does).
func (b *BoardState) OppoWorkerKill(otherTracksFemale bool, player Player, xor BitBoard) {
	if otherTracksFemale && b.GodData[player]&uint32(xor) != 0 {
		b.SetGodData(player, 0)
	}
	b.WorkerXor(player, xor)
}

// BuildUp raises build_position by one level. Undefined if the square
// is already at height 4 (domed); callers must only offer legal
// builds.
func (b *BoardState) BuildUp(sq Square) {
	mask := AsMask(sq)
	h := b.GetHeight(sq)
	b.HeightMap[h] ^= mask
	b.Hash ^= ZobristHeight[h][sq]
	b.HeightLookup[sq]++
}

// DoubleBuildUp raises build_position by two levels in one step
// (Morpheus spending two accumulated tokens on the same square).
func (b *BoardState) DoubleBuildUp(sq Square) {
	mask := AsMask(sq)
	h := b.GetHeight(sq)
	b.HeightMap[h] ^= mask
	b.HeightMap[h+1] ^= mask
	b.Hash ^= ZobristHeight[h][sq]
	b.Hash ^= ZobristHeight[h+1][sq]
	b.HeightLookup[sq] += 2
}

// DomeUp forces build_position to height 4 regardless of its current
// height.
func (b *BoardState) DomeUp(sq Square) {
	mask := AsMask(sq)
	h := b.GetHeight(sq)
	for level := h; level < 4; level++ {
		b.HeightMap[level] ^= mask
		b.Hash ^= ZobristHeight[level][sq]
	}
	b.HeightLookup[sq] = 4
}

// Unbuild is the inverse of BuildUp.
func (b *BoardState) Unbuild(sq Square) {
	mask := AsMask(sq)
	h := b.GetHeight(sq) - 1
	b.HeightMap[h] ^= mask
	b.Hash ^= ZobristHeight[h][sq]
	b.HeightLookup[sq]--
}

// DoubleUnbuild is the inverse of DoubleBuildUp.
func (b *BoardState) DoubleUnbuild(sq Square) {
	mask := AsMask(sq)
	h := b.GetHeight(sq) - 1
	b.HeightMap[h] ^= mask
	b.Hash ^= ZobristHeight[h][sq]
	h--
	b.HeightMap[h] ^= mask
	b.Hash ^= ZobristHeight[h][sq]
	b.HeightLookup[sq] -= 2
}

// Undome is the inverse of DomeUp; finalHeight is the height to
// restore sq to.
func (b *BoardState) Undome(sq Square, finalHeight int) {
	mask := AsMask(sq)
	for level := finalHeight; level < 4; level++ {
		b.HeightMap[level] ^= mask
		b.Hash ^= ZobristHeight[level][sq]
	}
	b.HeightLookup[sq] = uint8(finalHeight)
}

// SetGodData overwrites player's god-data register, XORing the hash
// for every bit that actually changed.
func (b *BoardState) SetGodData(player Player, data GodData) {
	b.DeltaGodData(player, b.GodData[player]^data)
}

// DeltaGodData XORs delta into player's god-data register, keeping
// the hash in sync.
func (b *BoardState) DeltaGodData(player Player, delta GodData) {
	b.GodData[player] ^= delta
	for delta != 0 {
		bit := trailingZeros32(delta)
		delta &= delta - 1
		b.Hash ^= ZobristData[player][bit]
	}
}

// GetWorkerAt returns the player occupying sq, if any.
func (b *BoardState) GetWorkerAt(sq Square) *Player {
	mask := AsMask(sq)
	if b.Workers[PlayerOne]&mask != 0 {
		return playerPtr(PlayerOne)
	}
	if b.Workers[PlayerTwo]&mask != 0 {
		return playerPtr(PlayerTwo)
	}
	return nil
}

// GetPositionsForPlayer lists player's worker squares.
func (b *BoardState) GetPositionsForPlayer(player Player) []Square {
	return (b.Workers[player] & MainSectionMask).Squares()
}

// Copy returns a value copy of b. BoardState is a small, flat struct,
// cheap enough that the search clones on recursion rather than
// maintaining make/unmake undo data.
func (b BoardState) Copy() BoardState { return b }

// RepresentationErr checks structural invariants only (no worker on a
// dome, height monotonicity, no stray bits in reserved regions, hash
// matches recomputation); PlayableErr covers the reachability side.
func (b *BoardState) RepresentationErr(base BaseHash) error {
	for p := Player(0); p < 2; p++ {
		if (b.Workers[p] & b.HeightMap[3]).IsNotEmpty() {
			return fmt.Errorf("player %v has a worker on a dome", p)
		}
		if (b.Workers[p] & OffSectionMask).IsNotEmpty() {
			return fmt.Errorf("player %v has unexpected worker bits outside the main section", p)
		}
	}

	for level := 1; level < 4; level++ {
		stray := b.HeightMap[level] & OffSectionMask
		if level == 1 {
			stray &^= playerToClimbBit[PlayerOne] | playerToClimbBit[PlayerTwo]
		}
		if stray.IsNotEmpty() {
			return fmt.Errorf("unexpected bits in height map upper section: %d", level)
		}
		height := b.HeightMap[level] & MainSectionMask
		lower := b.HeightMap[level-1] & MainSectionMask
		if (height &^ lower).IsNotEmpty() {
			return fmt.Errorf("board has corrupted height-monotonicity state at level %d", level)
		}
	}

	if want := b.computeHashFromScratch(base); b.Hash != want {
		return fmt.Errorf("hash mismatch: stored %016x, recomputed %016x", b.Hash, want)
	}

	return nil
}

// GetAllPermutations returns the dihedral images of b.
// If includeSelf is false, b itself is omitted and only the other 7
// images are returned.
func (b *BoardState) GetAllPermutations(includeSelf bool, base BaseHash, flipGodData func(op string, player Player, data GodData) GodData) []BoardState {
	horz := b.flipHorizontalClone(flipGodData)
	vert := b.flipVerticalClone(flipGodData)
	hv := horz.flipVerticalClone(flipGodData)
	trans := b.transposeClone(flipGodData)
	th := trans.flipHorizontalClone(flipGodData)
	tv := trans.flipVerticalClone(flipGodData)
	tvh := th.flipVerticalClone(flipGodData)

	var out []BoardState
	if includeSelf {
		out = append(out, *b)
	}
	out = append(out, horz, vert, hv, trans, th, tv, tvh)

	for i := range out {
		out[i].RecalculateInternals(base)
	}
	return out
}

func (b *BoardState) flipHorizontalClone(flipGodData func(op string, player Player, data GodData) GodData) BoardState {
	c := *b
	for level := range c.HeightMap {
		c.HeightMap[level] = c.HeightMap[level].FlipHorizontal() | (b.HeightMap[level] & OffSectionMask)
	}
	for p := range c.Workers {
		c.Workers[p] = c.Workers[p].FlipHorizontal()
	}
	if flipGodData != nil {
		for p := Player(0); p < 2; p++ {
			c.GodData[p] = flipGodData("horizontal", p, c.GodData[p])
		}
	}
	return c
}

func (b *BoardState) flipVerticalClone(flipGodData func(op string, player Player, data GodData) GodData) BoardState {
	c := *b
	for level := range c.HeightMap {
		c.HeightMap[level] = c.HeightMap[level].FlipVertical() | (b.HeightMap[level] & OffSectionMask)
	}
	for p := range c.Workers {
		c.Workers[p] = c.Workers[p].FlipVertical()
	}
	if flipGodData != nil {
		for p := Player(0); p < 2; p++ {
			c.GodData[p] = flipGodData("vertical", p, c.GodData[p])
		}
	}
	return c
}

func (b *BoardState) transposeClone(flipGodData func(op string, player Player, data GodData) GodData) BoardState {
	c := *b
	for level := range c.HeightMap {
		c.HeightMap[level] = c.HeightMap[level].Transpose() | (b.HeightMap[level] & OffSectionMask)
	}
	for p := range c.Workers {
		c.Workers[p] = c.Workers[p].Transpose()
	}
	if flipGodData != nil {
		for p := Player(0); p < 2; p++ {
			c.GodData[p] = flipGodData("transpose", p, c.GodData[p])
		}
	}
	return c
}

// PrintToConsole renders the board as ASCII, height digit plus worker
// marker per square, with no color-terminal dependency.
func (b *BoardState) PrintToConsole() string {
	out := ""
	if w := b.GetWinner(); w != nil {
		out += fmt.Sprintf("Player %v wins!\n", *w)
	} else {
		out += fmt.Sprintf("Player %v to play\n", b.CurrentPlayer)
	}
	for row := BoardWidth - 1; row >= 0; row-- {
		out += fmt.Sprintf("%d ", row+1)
		for col := 0; col < BoardWidth; col++ {
			sq := NewSquare(col, row)
			ch := byte('.')
			if p := b.GetWorkerAt(sq); p != nil {
				if *p == PlayerOne {
					ch = 'X'
				} else {
					ch = 'O'
				}
			}
			out += fmt.Sprintf("%d%c ", b.GetHeight(sq), ch)
		}
		out += "\n"
	}
	out += "   A  B  C  D  E\n"
	return out
}
