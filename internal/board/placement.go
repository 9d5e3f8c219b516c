package board

// RequiredWorkers returns how many workers a god of the given
// placement convention puts on the board before the movement phase
// begins.
func RequiredWorkers(p PlacementType) int {
	switch p {
	case PlacementThreeWorkers:
		return 3
	default:
		return 2
	}
}

// perimeterSquares is every square on the board's outer ring,
// precomputed once for PlacementPerimeterOpposite.
var perimeterSquares BitBoard

func init() {
	for sq := Square(0); sq < BoardSize; sq++ {
		f, r := sq.File(), sq.Rank()
		if f == 0 || f == BoardWidth-1 || r == 0 || r == BoardWidth-1 {
			perimeterSquares = perimeterSquares.With(sq)
		}
	}
}

// IsPlacementPhase reports whether player still has fewer workers on
// board than their god's convention requires.
func (b *BoardState) IsPlacementPhase(player Player, placement PlacementType) bool {
	return b.Workers[player].PopCount() < RequiredWorkers(placement)
}

// AnyPlacementPhase reports whether either side is still placing,
// i.e. the overall game has not yet entered the movement phase.
func (b *BoardState) AnyPlacementPhase(placements [2]PlacementType) bool {
	return b.IsPlacementPhase(PlayerOne, placements[0]) || b.IsPlacementPhase(PlayerTwo, placements[1])
}

// GeneratePlacements lists the legal placement squares for player,
// given their own and the opponent's placement conventions. Squares
// occupied by either player's existing workers are never legal; when
// player's own god is PlacementPerimeterOpposite, candidates are
// further restricted to the perimeter ring, and once the opponent has
// already placed at least one perimeter worker, to the half of the
// ring NOT containing that worker's file/rank quadrant (an opposite-
// side placement convention, e.g. Circe/Atlas-style starts).
func (b *BoardState) GeneratePlacements(player Player, own, opponent PlacementType) []Square {
	occupied := b.Workers[PlayerOne] | b.Workers[PlayerTwo]
	candidates := MainSectionMask &^ occupied

	if own == PlacementPerimeterOpposite {
		candidates &= perimeterSquares
		if oppoWorkers := b.Workers[player.Other()] & perimeterSquares; oppoWorkers.IsNotEmpty() {
			candidates &= oppositeHalf(oppoWorkers)
		}
	}

	return candidates.Squares()
}

// oppositeHalf returns the perimeter squares on the far side of the
// board from any square in ref, splitting along whichever axis (file
// or rank) ref's squares are more extreme on.
func oppositeHalf(ref BitBoard) BitBoard {
	var out BitBoard
	refSquares := ref.Squares()
	if len(refSquares) == 0 {
		return perimeterSquares
	}
	avgFile, avgRank := 0, 0
	for _, sq := range refSquares {
		avgFile += sq.File()
		avgRank += sq.Rank()
	}
	avgFile /= len(refSquares)
	avgRank /= len(refSquares)

	mid := (BoardWidth - 1)
	perimeterSquares.ForEach(func(sq Square) {
		df := sq.File()*2 - mid
		dr := sq.Rank()*2 - mid
		rf := avgFile*2 - mid
		rr := avgRank*2 - mid
		// Keep squares on the opposite side along whichever axis the
		// reference worker set is more displaced on.
		if abs(rf) >= abs(rr) {
			if (df < 0) != (rf < 0) || rf == 0 {
				out = out.With(sq)
			}
		} else {
			if (dr < 0) != (rr < 0) || rr == 0 {
				out = out.With(sq)
			}
		}
	})
	if out.IsEmpty() {
		return perimeterSquares
	}
	return out
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// ApplyPlacement puts one of player's workers on sq, maintaining the
// hash incrementally. If tracksFemale is set (the PlacementFemaleWorker
// convention) and this is player's first placement, sq is also marked
// in GodData as the tracked worker's square.
func (b *BoardState) ApplyPlacement(player Player, sq Square, tracksFemale bool) {
	wasEmpty := b.Workers[player].IsEmpty()
	b.WorkerXor(player, AsMask(sq))
	if tracksFemale && wasEmpty {
		b.SetGodData(player, GodData(AsMask(sq)))
	}
}
