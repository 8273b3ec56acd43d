package onboarding

import (
	"context"
	"log"
	"time"
)

// retry runs f up to attempts times with exponential backoff, giving up
// early when the context is cancelled.
func retry(ctx context.Context, attempts int, sleep time.Duration, f func() error) error {
	var err error
	for i := 0; i < attempts; i++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		err = f()
		if err == nil {
			return nil
		}

		if i < attempts-1 {
			log.Printf("Attempt %d failed: %v. Retrying in %v...", i+1, err, sleep)
			select {
			case <-time.After(sleep):
			case <-ctx.Done():
				return ctx.Err()
			}
			// Exponential backoff
			sleep = sleep * 2
		}
	}
	return err
}
