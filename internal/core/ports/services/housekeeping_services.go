package services

import (
	"context"
	"time"
)

// HousekeepingSvcFacade holds the periodic maintenance jobs.
type HousekeepingSvcFacade interface {
	// WarnStaleDrawers logs openings left open longer than maxAge and returns how many there were.
	WarnStaleDrawers(ctx context.Context, maxAge time.Duration) (int, error)

	// PurgeDeletedRecords removes sales and withdrawals soft deleted longer than retention ago.
	PurgeDeletedRecords(ctx context.Context, retention time.Duration) (int64, error)
}
