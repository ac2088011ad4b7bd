package llm

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"
)

// Throttled caps the outbound call rate of a Completer. Callers block in
// Complete until a token is free or their context ends.
type Throttled struct {
	next    Completer
	limiter *rate.Limiter
}

// Throttle allows perMinute calls per minute with a burst of one.
func Throttle(next Completer, perMinute int) *Throttled {
	if perMinute <= 0 {
		perMinute = 1
	}
	return &Throttled{
		next:    next,
		limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), 1),
	}
}

func (t *Throttled) Provider() string { return t.next.Provider() }

func (t *Throttled) Complete(ctx context.Context, system, prompt string) (string, error) {
	if err := t.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("llm: throttled: %w", err)
	}
	return t.next.Complete(ctx, system, prompt)
}
