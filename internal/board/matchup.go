package board

import "fmt"

// GodName enumerates every god power the matchup/validation layer
// knows about. Move generation is only implemented for a subset (see
// internal/gods); the remaining names exist because the playability
// checks reference them even without a generator behind them.
type GodName uint8

const (
	Mortal GodName = iota
	Athena
	Minotaur
	Hermes
	Apollo
	Nemesis
	Hydra
	Morpheus
	Persephone
	Aeolus
	Pan
	// Named only for validation/banned-matchup purposes; no move
	// generator exists for these yet.
	Selene
	Europa
	Hippolyta
	Eros
	Castor
	Harpies
	Hypnus
	Artemis
)

var godNameStrings = map[GodName]string{
	Mortal:     "mortal",
	Athena:     "athena",
	Minotaur:   "minotaur",
	Hermes:     "hermes",
	Apollo:     "apollo",
	Nemesis:    "nemesis",
	Hydra:      "hydra",
	Morpheus:   "morpheus",
	Persephone: "persephone",
	Aeolus:     "aeolus",
	Pan:        "pan",
	Selene:     "selene",
	Europa:     "europa",
	Hippolyta:  "hippolyta",
	Eros:       "eros",
	Castor:     "castor",
	Harpies:    "harpies",
	Hypnus:     "hypnus",
	Artemis:    "artemis",
}

func (g GodName) String() string {
	if s, ok := godNameStrings[g]; ok {
		return s
	}
	return fmt.Sprintf("god(%d)", g)
}

// ParseGodName parses the lowercase name used in FEN god specs.
func ParseGodName(s string) (GodName, error) {
	for g, name := range godNameStrings {
		if name == s {
			return g, nil
		}
	}
	return Mortal, fmt.Errorf("unknown god name %q", s)
}

// PlacementType controls how a god's workers are placed before the
// movement phase begins.
type PlacementType uint8

const (
	// PlacementStandard places exactly two workers per side.
	PlacementStandard PlacementType = iota
	// PlacementThreeWorkers places three workers per side (Hydra's
	// starting count before it can grow further during play).
	PlacementThreeWorkers
	// PlacementFemaleWorker places two workers, one of which is
	// tracked in god_data as the "female" worker (Selene-style).
	PlacementFemaleWorker
	// PlacementPerimeterOpposite constrains placements to perimeter
	// squares on opposite sides of the board.
	PlacementPerimeterOpposite
)

// Matchup identifies an ordered pair of gods for a game.
type Matchup struct {
	God1, God2 GodName
}

func NewMatchup(g1, g2 GodName) Matchup {
	return Matchup{God1: g1, God2: g2}
}

// BannedReason classifies why a matchup is rejected by playable_err.
type BannedReason uint8

const (
	BannedGame   BannedReason = iota // the game's own rules ban this matchup
	BannedEngine                     // this engine doesn't implement it yet
)

// BannedMatchups lists matchup pairs PlayableErr rejects outright.
// Kept intentionally small since most named gods have no generator
// in this engine yet.
var BannedMatchups = map[Matchup]BannedReason{
	{God1: Hypnus, God2: Hydra}:   BannedEngine,
	{God1: Hydra, God2: Hypnus}:   BannedEngine,
	{God1: Hypnus, God2: Artemis}: BannedGame,
	{God1: Artemis, God2: Hypnus}: BannedGame,
}

// MaxWorkers returns the per-god worker-count ceiling PlayableErr
// enforces: Hermes, Eros, and Castor cap at two, Hydra may grow to
// eleven, everyone else at four.
func MaxWorkers(god GodName) int {
	switch god {
	case Hermes, Eros, Castor:
		return 2
	case Hydra:
		return 11
	default:
		return 4
	}
}

// PlayableErr is the playability half of state validation: it
// rejects structurally valid states that cannot legally arise — a
// banned matchup, a god-specific worker-count violation, or a
// placement phase whose alternation is out of order. Callers run it
// at state-entry boundaries; the search assumes playable input.
func (b *BoardState) PlayableErr(god1, god2 GodName, placements [2]PlacementType) error {
	if _, banned := BannedMatchups[Matchup{God1: god1, God2: god2}]; banned {
		return fmt.Errorf("banned matchup %v vs %v", god1, god2)
	}

	gods := [2]GodName{god1, god2}
	for p := PlayerOne; p <= PlayerTwo; p++ {
		count := b.Workers[p].PopCount()
		if max := MaxWorkers(gods[p]); count > max {
			return fmt.Errorf("player %v has %d workers, %v allows at most %d", p, count, gods[p], max)
		}
		if gods[p] != Hydra && !b.IsPlacementPhase(p, placements[p.Index()]) && count != RequiredWorkers(placements[p.Index()]) {
			return fmt.Errorf("player %v has %d workers, %v plays with exactly %d", p, count, gods[p], RequiredWorkers(placements[p.Index()]))
		}
	}

	if b.AnyPlacementPhase(placements) {
		c1 := b.Workers[PlayerOne].PopCount()
		c2 := b.Workers[PlayerTwo].PopCount()
		if diff := c1 - c2; diff < -1 || diff > 1 {
			return fmt.Errorf("placement counts %d/%d are out of alternation order", c1, c2)
		}
	}

	return nil
}
