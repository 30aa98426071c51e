package combination

import (
	"context"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/sync/semaphore"
)

const defaultLockStripes = 64

// pairLocks serializes generation per pair. Different pairs may share a stripe.
type pairLocks struct {
	stripes []*semaphore.Weighted
}

func newPairLocks(n int) *pairLocks {
	if n <= 0 {
		n = defaultLockStripes
	}
	stripes := make([]*semaphore.Weighted, n)
	for i := range stripes {
		stripes[i] = semaphore.NewWeighted(1)
	}
	return &pairLocks{stripes: stripes}
}

// lock waits for the stripe of key until ctx is done.
func (l *pairLocks) lock(ctx context.Context, key string) (unlock func(), err error) {
	stripe := l.stripes[xxhash.Sum64String(key)%uint64(len(l.stripes))]
	if err := stripe.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	return func() { stripe.Release(1) }, nil
}
