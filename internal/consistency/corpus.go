package consistency

import (
	"bytes"
	"io"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// corpusArchive is the bundled regression corpus, zstd-compressed,
// one position per line. The decompressed lines, in order:
//
//	Scenario 1: Mortal vs Mortal starting position.
//	  0000000000000000000000000 1 mortal:B2,D2 mortal:B4,D4
//	Scenario 2: forced win in 1 — C3 at height 2 beside C4 at 3.
//	  0000000000002000030000000 1 mortal:C3,A1 mortal:A5,E5
//	Scenario 3: Athena climb about to restrict the opponent.
//	  0000000000000000000000000 1 athena:B2,D2 mortal:B4,D4
//	Scenario 4: Minotaur with a pushable neighbor.
//	  0000000000000000000000000 1 minotaur:B2,D2 mortal:C2,D4
//	Scenario 5: Pan on B3 at height 3 with a winning fall.
//	  0000000000030000000000000 1 pan:B3,E1 mortal:A5,E5
//	Scenario 6: smothered loss — both P1 workers boxed in by domes.
//	  0404044044000000000000000 1 mortal:A1,E1 mortal:A5,E5
//
// Regenerate with CompressCorpus when adding lines; the round-trip
// test in corpus_test.go keeps the two formats honest.
var corpusArchive = []byte{
	0x28, 0xb5, 0x2f, 0xfd, 0x64, 0x43, 0x00, 0x1d, 0x03, 0x00, 0xe2, 0xc3,
	0x0d, 0x11, 0xa0, 0x6f, 0x18, 0xe6, 0x38, 0x19, 0x55, 0x03, 0xe6, 0xd4,
	0x2d, 0xd5, 0x85, 0xf3, 0xc7, 0x1d, 0x05, 0x3b, 0x8c, 0xab, 0xed, 0x53,
	0xe0, 0xcb, 0x66, 0x34, 0xeb, 0xd3, 0x08, 0xdb, 0x7b, 0xb8, 0x18, 0x7d,
	0x40, 0xd4, 0x12, 0x63, 0xb6, 0x51, 0x33, 0xf0, 0xb4, 0xce, 0x69, 0xf9,
	0x14, 0xf7, 0x74, 0xc6, 0x17, 0x46, 0x10, 0x01, 0x11, 0x00, 0x59, 0x91,
	0x81, 0x58, 0x00, 0x74, 0x02, 0x79, 0x70, 0x49, 0x06, 0x61, 0x80, 0x30,
	0xd0, 0xb5, 0xad, 0xe4, 0x70, 0xc1, 0x05, 0x20, 0x7c, 0x03, 0x83, 0x6e,
	0x91, 0x59, 0x0d, 0x73, 0x59, 0xc1, 0x14, 0xd7, 0x60, 0x16, 0x15, 0x04,
	0x42, 0x83, 0xac, 0x47, 0x38,
}

// Corpus is the bundled regression corpus, decompressed once at
// package load. RunCorpus exercises these positions (and any larger
// generated set the caller appends) through Check.
var Corpus = mustLoadCorpus()

func mustLoadCorpus() []string {
	lines, err := DecompressCorpus(corpusArchive)
	if err != nil {
		panic("consistency: corrupt bundled corpus: " + err.Error())
	}
	return lines
}

// CompressCorpus zstd-compresses lines (one position per line), the
// stored shape of the bundled corpus archive above and of any
// regression corpus grown by an external fuzzing run.
func CompressCorpus(lines []string) ([]byte, error) {
	var buf bytes.Buffer
	w, err := zstd.NewWriter(&buf)
	if err != nil {
		return nil, err
	}
	for _, line := range lines {
		if _, err := w.Write([]byte(line + "\n")); err != nil {
			w.Close()
			return nil, err
		}
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecompressCorpus is CompressCorpus's inverse.
func DecompressCorpus(data []byte) ([]string, error) {
	r, err := zstd.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer r.Close()

	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	trimmed := strings.TrimRight(string(raw), "\n")
	if trimmed == "" {
		return nil, nil
	}
	return strings.Split(trimmed, "\n"), nil
}
