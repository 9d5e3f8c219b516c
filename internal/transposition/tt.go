// Package transposition implements the search's two-bucket, Zobrist-
// keyed transposition table.
package transposition

import "github.com/jpricey/santorini-core/internal/board"

// Bound classifies how a stored score relates to the window it was
// computed under.
type Bound uint8

const (
	Exact Bound = iota
	LowerBound
	UpperBound
)

// Entry is one stored search result.
type Entry struct {
	Key       board.HashType
	BestMove  board.Move
	Score     int16
	StaticEval int16
	Depth     int8
	Bound     Bound
	Age       uint8
}

func (e *Entry) occupied() bool { return e.Depth > 0 || e.Key != 0 }

// bucket holds the two entries that may live at one table slot
type bucket struct {
	entries [2]Entry
}

// Table is the two-bucket, age-aware transposition table. Sized in
// megabytes, rounded down to a power of two for a mask-based index.
type Table struct {
	buckets []bucket
	mask    uint64
	age     uint8

	probes uint64
	hits   uint64
}

// New returns a Table sized to approximately sizeMB megabytes.
func New(sizeMB int) *Table {
	const bucketSize = 2 * 24 // two Entry values, approximate packed size
	numBuckets := (uint64(sizeMB) * 1024 * 1024) / bucketSize
	numBuckets = roundDownToPowerOf2(numBuckets)
	if numBuckets == 0 {
		numBuckets = 1
	}
	return &Table{
		buckets: make([]bucket, numBuckets),
		mask:    numBuckets - 1,
	}
}

func roundDownToPowerOf2(n uint64) uint64 {
	if n == 0 {
		return 0
	}
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n |= n >> 32
	return (n + 1) >> 1
}

func (t *Table) index(hash board.HashType) uint64 {
	return uint64(hash) & t.mask
}

// Probe looks up hash, checking both bucket slots. Only a full
// 64-bit hash match is accepted.
func (t *Table) Probe(hash board.HashType) (Entry, bool) {
	t.probes++
	b := &t.buckets[t.index(hash)]
	for i := range b.entries {
		if b.entries[i].occupied() && b.entries[i].Key == hash {
			t.hits++
			return b.entries[i], true
		}
	}
	return Entry{}, false
}

// Store inserts or replaces an entry for hash. Replacement picks the
// bucket slot with the oldest age, tie-broken by shallower depth
func (t *Table) Store(hash board.HashType, depth int, score, staticEval int16, bound Bound, bestMove board.Move) {
	b := &t.buckets[t.index(hash)]

	for i := range b.entries {
		if b.entries[i].occupied() && b.entries[i].Key == hash {
			if b.entries[i].Age != t.age || depth >= int(b.entries[i].Depth) {
				t.fill(&b.entries[i], hash, depth, score, staticEval, bound, bestMove)
			}
			return
		}
	}

	victim := &b.entries[0]
	for i := 1; i < len(b.entries); i++ {
		if t.worseThan(&b.entries[i], victim) {
			victim = &b.entries[i]
		}
	}
	t.fill(victim, hash, depth, score, staticEval, bound, bestMove)
}

func (t *Table) worseThan(candidate, current *Entry) bool {
	if candidate.Age != current.Age {
		return candidate.Age < current.Age
	}
	return candidate.Depth < current.Depth
}

func (t *Table) fill(e *Entry, hash board.HashType, depth int, score, staticEval int16, bound Bound, bestMove board.Move) {
	e.Key = hash
	e.BestMove = bestMove
	e.Score = score
	e.StaticEval = staticEval
	e.Depth = int8(depth)
	e.Bound = bound
	e.Age = t.age
}

// NewSearch bumps the age tag at each root search start so entries
// from earlier searches are preferentially evicted. The tag counts
// searches only; it does not distinguish god matchups.
func (t *Table) NewSearch() { t.age++ }

// Clear empties the table.
func (t *Table) Clear() {
	for i := range t.buckets {
		t.buckets[i] = bucket{}
	}
	t.age = 0
	t.probes = 0
	t.hits = 0
}

// HashFull samples the first 1000 slots and returns parts-per-
// thousand occupancy from the current search generation.
func (t *Table) HashFull() int {
	sample := 1000
	if uint64(sample) > uint64(len(t.buckets)) {
		sample = len(t.buckets)
	}
	used := 0
	for i := 0; i < sample; i++ {
		for _, e := range t.buckets[i].entries {
			if e.occupied() && e.Age == t.age {
				used++
			}
		}
	}
	return (used * 1000) / (sample * 2)
}

// HitRate returns the probe hit percentage, for CLI diagnostics.
func (t *Table) HitRate() float64 {
	if t.probes == 0 {
		return 0
	}
	return float64(t.hits) / float64(t.probes) * 100
}
