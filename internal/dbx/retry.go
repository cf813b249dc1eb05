package dbx

import (
	"context"
	"database/sql"
	"time"

	"github.com/sethvargo/go-retry"
)

// newTxBackoff is a seam for tests.
var newTxBackoff = func() retry.Backoff {
	b := retry.NewExponential(20 * time.Millisecond)
	b = retry.WithJitterPercent(25, b)
	return retry.WithMaxRetries(3, b)
}

// InTxRetry runs fn through InTx and replays the whole transaction when the
// store reports a serialization failure. Any other error, including business
// rejections returned by fn, is returned after the first attempt.
//
// fn may run more than once, so it must not leak state between attempts.
func InTxRetry[T any](ctx context.Context, db *sql.DB, opts *sql.TxOptions, fn func(ctx context.Context, tx DBTX) (T, error)) (T, error) {
	var result T
	err := retry.Do(ctx, newTxBackoff(), func(ctx context.Context) error {
		r, err := InTx(ctx, db, opts, fn)
		if err != nil {
			if IsSerializationFailure(err) {
				return retry.RetryableError(err)
			}
			return err
		}
		result = r
		return nil
	})
	return result, err
}

// WithTxRetry is InTxRetry for units of work that produce no value.
func WithTxRetry(ctx context.Context, db *sql.DB, opts *sql.TxOptions, fn func(ctx context.Context, tx DBTX) error) error {
	_, err := InTxRetry(ctx, db, opts, func(ctx context.Context, tx DBTX) (struct{}, error) {
		return struct{}{}, fn(ctx, tx)
	})
	return err
}
