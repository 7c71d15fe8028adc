// Package background hosts long-running maintenance goroutines that are
// started from main and stopped via a close-once channel during shutdown.
package background

import (
	"context"
	"log"
	"sync"
	"time"
)

// Sweeper purges expired state; the auth service's session sweep satisfies it.
type Sweeper interface {
	SweepExpired(ctx context.Context) (int64, error)
}

// StartSessionSweeper launches a goroutine that periodically deletes expired
// session rows. Closing stopChan stops the loop; the returned WaitGroup lets
// the caller wait for the final sweep to finish.
//
// Sweeping is housekeeping only: expired sessions are already rejected at
// lookup, the sweeper just keeps the table small.
func StartSessionSweeper(sweeper Sweeper, interval time.Duration, stopChan <-chan struct{}) *sync.WaitGroup {
	var wg sync.WaitGroup
	wg.Add(1)

	go func() {
		defer wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		log.Printf("Session sweeper started (interval %s)", interval)
		for {
			select {
			case <-stopChan:
				log.Println("Session sweeper stopping")
				return
			case <-ticker.C:
				sweep(sweeper)
			}
		}
	}()

	return &wg
}

func sweep(sweeper Sweeper) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	n, err := sweeper.SweepExpired(ctx)
	if err != nil {
		log.Printf("Session sweep failed: %v", err)
		return
	}
	if n > 0 {
		log.Printf("Session sweep removed %d expired sessions", n)
	}
}
