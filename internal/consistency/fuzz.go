package consistency

import (
	"context"
	"sync"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/sync/errgroup"

	"github.com/jpricey/santorini-core/internal/gods"
)

// Report pairs a fuzz corpus entry with whatever Check found wrong
// about it.
type Report struct {
	Position   string
	Violations []Violation
}

// RunCorpus fans Check out over states using a bounded worker pool
//. describe renders a position to a string
// used both for reporting and to xxhash-dedupe repeated FENs so a
// corpus run never re-verifies the same position twice. workers <= 0
// behaves as 1.
func RunCorpus(ctx context.Context, states []*gods.GameState, describe func(*gods.GameState) string, workers int) ([]Report, error) {
	if workers <= 0 {
		workers = 1
	}

	var (
		mu      sync.Mutex
		reports []Report
		seenMu  sync.Mutex
		seen    = make(map[uint64]bool, len(states))
	)

	g, gctx := errgroup.WithContext(ctx)
	sem := make(chan struct{}, workers)

	for _, st := range states {
		st := st
		sem <- struct{}{}

		g.Go(func() error {
			defer func() { <-sem }()

			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			label := describe(st)
			key := xxhash.Sum64String(label)

			seenMu.Lock()
			if seen[key] {
				seenMu.Unlock()
				return nil
			}
			seen[key] = true
			seenMu.Unlock()

			violations := Check(st)
			if len(violations) > 0 {
				mu.Lock()
				reports = append(reports, Report{Position: label, Violations: violations})
				mu.Unlock()
			}

			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
				return nil
			}
		})
	}

	if err := g.Wait(); err != nil {
		return reports, err
	}
	return reports, nil
}
