// Command santorini-analyze is a minimal CLI driving the search over
// one FEN-like position string: stdlib flag for options, log for
// diagnostics.
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/jpricey/santorini-core/internal/gods"
	"github.com/jpricey/santorini-core/internal/nnue"
	"github.com/jpricey/santorini-core/internal/search"
	"github.com/jpricey/santorini-core/internal/transposition"
)

var (
	position = flag.String("position", "", "FEN-like position string: '<heights> <player> <god1> <god2>'")
	depth    = flag.Int("depth", 0, "stop after this root depth (0: use -movetime instead)")
	movetime = flag.Duration("movetime", 5*time.Second, "wall-clock search budget, used when -depth is 0")
	hashMB   = flag.Int("hash", 64, "transposition table size in MB")
	seed     = flag.Int64("seed", 1, "evaluator weight seed")
)

func main() {
	flag.Parse()

	if *position == "" {
		log.Fatal("santorini-analyze: -position is required")
	}

	state, err := gods.LoadPosition(*position)
	if err != nil {
		log.Fatalf("santorini-analyze: %v", err)
	}

	tt := transposition.New(*hashMB)
	eval := nnue.NewEvaluator(*seed)
	searcher := search.NewSearcher(tt, eval)

	var term search.Terminator
	if *depth > 0 {
		term = search.DepthTerminator{MaxDepth: *depth}
	} else {
		term = search.NewTimeTerminator(time.Now().Add(*movetime))
	}

	start := time.Now()
	result := searcher.Search(state, term, func(r search.Result) {
		fmt.Printf("depth %d  score %d  nodes %s  %s\n",
			r.Depth, r.Score, humanize.Comma(int64(r.Nodes)), r.BestMove)
	})

	elapsed := time.Since(start)
	fmt.Printf("bestmove %s  score %d  depth %d  nodes %s  time %s  hashfull %d/1000\n",
		result.BestMove, result.Score, result.Depth,
		humanize.Comma(int64(result.Nodes)), humanize.RelTime(start, start.Add(elapsed), "", ""),
		tt.HashFull())
}
