package gods

import (
	"fmt"
	"strings"

	"github.com/jpricey/santorini-core/internal/board"
)

// peekGodNames extracts just the two god names from a position string
// without decoding god_data, so LoadPosition can resolve each side's
// StaticGod (and therefore its ParseGodData/BaseHash) before handing
// the string to board.ParsePosition for the real parse.
func peekGodNames(s string) (board.GodName, board.GodName, error) {
	fields := strings.Fields(s)
	if len(fields) != 4 {
		return 0, 0, fmt.Errorf("position string needs 4 space-separated fields, got %d", len(fields))
	}
	name := func(field string) (board.GodName, error) {
		nameAndData, _, ok := strings.Cut(field, ":")
		if !ok {
			return 0, fmt.Errorf("missing ':' in god spec %q", field)
		}
		if open := strings.IndexByte(nameAndData, '['); open >= 0 {
			nameAndData = nameAndData[:open]
		}
		return board.ParseGodName(nameAndData)
	}
	g1, err := name(fields[2])
	if err != nil {
		return 0, 0, fmt.Errorf("god1 spec: %w", err)
	}
	g2, err := name(fields[3])
	if err != nil {
		return 0, 0, fmt.Errorf("god2 spec: %w", err)
	}
	return g1, g2, nil
}

// LoadPosition parses a FEN-like position string into a
// GameState bound to whichever two StaticGods the string names,
// resolving each god's BaseHash and ParseGodData before delegating the
// real parse to board.ParsePosition (which has no way to look a god up
// itself without an import cycle on this package).
func LoadPosition(s string) (*GameState, error) {
	name1, name2, err := peekGodNames(s)
	if err != nil {
		return nil, err
	}
	god1 := Lookup(name1)
	if god1 == nil {
		return nil, fmt.Errorf("god %q has no generator implementation", name1)
	}
	god2 := Lookup(name2)
	if god2 == nil {
		return nil, fmt.Errorf("god %q has no generator implementation", name2)
	}

	base := god1.BaseHashP1 ^ god2.BaseHashP2
	fen, err := board.ParsePosition(s, base, god1.ParseGodData, god2.ParseGodData)
	if err != nil {
		return nil, err
	}

	placements := [2]board.PlacementType{god1.Placement, god2.Placement}
	if err := fen.Board.PlayableErr(name1, name2, placements); err != nil {
		return nil, err
	}

	return &GameState{Board: fen.Board, Gods: [2]*StaticGod{god1, god2}}, nil
}

// StringifyPosition is LoadPosition's inverse.
func StringifyPosition(state *GameState) string {
	god1, god2 := state.Gods[board.PlayerOne], state.Gods[board.PlayerTwo]
	return board.StringifyPosition(&state.Board, god1.Name, god2.Name, god1.StringifyGodData, god2.StringifyGodData)
}
