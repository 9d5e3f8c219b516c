package board

import (
	"fmt"
	"strconv"
	"strings"
)

// FenState is the parsed result of a position string:
// the board itself plus the two god names/placement data needed to
// look up their StaticGod records (internal/gods does that lookup;
// this package only knows the board-level shape).
type FenState struct {
	Board   BoardState
	God1    GodName
	God2    GodName
	Data1   string
	Data2   string
}

// ParseGodDataFn parses a god-specific god_data sub-string into the
// packed register, the same shape as gods.StaticGod.ParseGodData.
// Declared here (rather than importing internal/gods, which would
// create an import cycle with internal/board) so ParsePosition can be
// handed the two gods' parsers by its caller.
type ParseGodDataFn func(s string) (GodData, error)

// StringifyGodDataFn is ParseGodDataFn's inverse, used by StringifyPosition.
type StringifyGodDataFn func(data GodData) string

// ParsePosition parses a FEN-like position string:
// `<heights> <next_player> <god1_spec> <god2_spec>`, each
// god spec `name[god_data]:sq,sq,...` with worker squares in
// algebraic notation. parseData1/parseData2 decode each side's
// god_data sub-string; pass nil if a god takes none.
func ParsePosition(s string, base BaseHash, parseData1, parseData2 ParseGodDataFn) (*FenState, error) {
	fields := strings.Fields(s)
	if len(fields) != 4 {
		return nil, fmt.Errorf("position string needs 4 space-separated fields, got %d", len(fields))
	}

	var b BoardState
	if err := parseHeights(&b, fields[0]); err != nil {
		return nil, err
	}

	switch fields[1] {
	case "1", "p1", "P1":
		b.CurrentPlayer = PlayerOne
	case "2", "p2", "P2":
		b.CurrentPlayer = PlayerTwo
	default:
		return nil, fmt.Errorf("invalid next-player field %q", fields[1])
	}

	god1, data1raw, squares1, err := parseGodSpec(fields[2])
	if err != nil {
		return nil, fmt.Errorf("god1 spec: %w", err)
	}
	god2, data2raw, squares2, err := parseGodSpec(fields[3])
	if err != nil {
		return nil, fmt.Errorf("god2 spec: %w", err)
	}

	for _, sq := range squares1 {
		b.Workers[PlayerOne] = b.Workers[PlayerOne].With(sq)
	}
	for _, sq := range squares2 {
		b.Workers[PlayerTwo] = b.Workers[PlayerTwo].With(sq)
	}
	if (b.Workers[PlayerOne] & b.Workers[PlayerTwo]).IsNotEmpty() {
		return nil, fmt.Errorf("player workers overlap")
	}

	if parseData1 != nil {
		data, err := parseData1(data1raw)
		if err != nil {
			return nil, fmt.Errorf("god1 data: %w", err)
		}
		b.GodData[PlayerOne] = data
	} else if data1raw != "" {
		return nil, fmt.Errorf("god1 %q takes no god data, got %q", god1, data1raw)
	}
	if parseData2 != nil {
		data, err := parseData2(data2raw)
		if err != nil {
			return nil, fmt.Errorf("god2 data: %w", err)
		}
		b.GodData[PlayerTwo] = data
	} else if data2raw != "" {
		return nil, fmt.Errorf("god2 %q takes no god data, got %q", god2, data2raw)
	}

	b.RecalculateInternals(base)

	return &FenState{Board: b, God1: god1, God2: god2, Data1: data1raw, Data2: data2raw}, nil
}

// parseHeights decodes the 25-digit heights field (row-major, rank 1
// first, per square.go's A1=0..E5=24 convention) into HeightMap.
func parseHeights(b *BoardState, field string) error {
	if len(field) != BoardSize {
		return fmt.Errorf("heights field must be %d digits, got %d", BoardSize, len(field))
	}
	for i := 0; i < BoardSize; i++ {
		c := field[i]
		if c < '0' || c > '4' {
			return fmt.Errorf("invalid height digit %q at square %d", c, i)
		}
		height := int(c - '0')
		sq := Square(i)
		for level := 0; level < height; level++ {
			b.HeightMap[level] = b.HeightMap[level].With(sq)
		}
	}
	return nil
}

// parseGodSpec decodes one `name[god_data]:sq,sq,...` component.
func parseGodSpec(spec string) (GodName, string, []Square, error) {
	nameAndData, sqPart, ok := strings.Cut(spec, ":")
	if !ok {
		return 0, "", nil, fmt.Errorf("missing ':' in god spec %q", spec)
	}

	name := nameAndData
	data := ""
	if open := strings.IndexByte(nameAndData, '['); open >= 0 {
		if !strings.HasSuffix(nameAndData, "]") {
			return 0, "", nil, fmt.Errorf("unterminated god_data in %q", nameAndData)
		}
		name = nameAndData[:open]
		data = nameAndData[open+1 : len(nameAndData)-1]
	}

	god, err := ParseGodName(name)
	if err != nil {
		return 0, "", nil, err
	}

	var squares []Square
	if sqPart != "" {
		for _, tok := range strings.Split(sqPart, ",") {
			sq, err := ParseSquare(tok)
			if err != nil {
				return 0, "", nil, err
			}
			squares = append(squares, sq)
		}
	}

	return god, data, squares, nil
}

// StringifyPosition is ParsePosition's inverse.
func StringifyPosition(b *BoardState, god1, god2 GodName, stringifyData1, stringifyData2 StringifyGodDataFn) string {
	var heights strings.Builder
	for sq := Square(0); sq < BoardSize; sq++ {
		heights.WriteString(strconv.Itoa(b.GetHeight(sq)))
	}

	player := "1"
	if b.CurrentPlayer == PlayerTwo {
		player = "2"
	}

	god1Spec := godSpec(god1, stringifyData1, b.GodData[PlayerOne], b.Workers[PlayerOne])
	god2Spec := godSpec(god2, stringifyData2, b.GodData[PlayerTwo], b.Workers[PlayerTwo])

	return fmt.Sprintf("%s %s %s %s", heights.String(), player, god1Spec, god2Spec)
}

func godSpec(god GodName, stringifyData StringifyGodDataFn, data GodData, workers BitBoard) string {
	name := god.String()
	if stringifyData != nil {
		if s := stringifyData(data); s != "" {
			name = fmt.Sprintf("%s[%s]", name, s)
		}
	}
	squares := workers.Squares()
	tokens := make([]string, len(squares))
	for i, sq := range squares {
		tokens[i] = sq.String()
	}
	return fmt.Sprintf("%s:%s", name, strings.Join(tokens, ","))
}
