package gate

import "context"

// DefaultAttempts bounds how many times a transient failure is tried.
const DefaultAttempts = 3

// Retry calls fn up to attempts times, starting over only after Transient errors.
// The attempt number passed to fn starts at 1. The last error is returned.
func Retry(ctx context.Context, attempts int, fn func(ctx context.Context, attempt int) error) error {
	if attempts <= 0 {
		attempts = 1
	}

	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctxErr := ctx.Err(); ctxErr != nil {
			if err != nil {
				return err
			}
			return ctxErr
		}
		if err = fn(ctx, attempt); err == nil {
			return nil
		}
		if Classify(err) != Transient {
			return err
		}
	}
	return err
}
