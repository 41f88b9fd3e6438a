// Package simulate models the cost of the uncached answer path.
package simulate

import (
	"context"
	"math/rand"
	"time"
)

// Simulator produces randomized delays of base plus uniform jitter,
// standing in for expensive retrieval work.
type Simulator struct {
	BaseMS   int
	JitterMS int
}

// Delay returns the next simulated processing time.
func (s Simulator) Delay() time.Duration {
	ms := s.BaseMS
	if s.JitterMS > 0 {
		ms += rand.Intn(s.JitterMS + 1)
	}
	return time.Duration(ms) * time.Millisecond
}

// Sleep suspends the calling goroutine for Delay, returning early with the
// context's error if it is cancelled first. Only this goroutine blocks;
// other in-flight requests proceed.
func (s Simulator) Sleep(ctx context.Context) error {
	t := time.NewTimer(s.Delay())
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
