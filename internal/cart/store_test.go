package cart_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jivuma/internal/cart"
	"jivuma/internal/domain"
)

// fakeRepo records saves in memory and can be primed for Load or made
// to fail.
type fakeRepo struct {
	saved   [][]domain.Entry
	loadOut []domain.Entry
	loadErr error
	saveErr error
}

func (r *fakeRepo) Save(entries []domain.Entry) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	cp := make([]domain.Entry, len(entries))
	copy(cp, entries)
	r.saved = append(r.saved, cp)
	return nil
}

func (r *fakeRepo) Load() ([]domain.Entry, error) {
	return r.loadOut, r.loadErr
}

func (r *fakeRepo) last() []domain.Entry {
	if len(r.saved) == 0 {
		return nil
	}
	return r.saved[len(r.saved)-1]
}

func product(id int64, price int64) domain.Product {
	return domain.Product{ID: id, Name: "spice", Price: decimal.NewFromInt(price)}
}

func TestAddDeduplicates(t *testing.T) {
	repo := &fakeRepo{}
	s := cart.NewStore(repo)

	p := product(1, 200)
	s.Add(p)
	s.Add(p)

	snap := s.Snapshot()
	require.Len(t, snap.Entries, 1)
	assert.Equal(t, 2, snap.Entries[0].Quantity)
}

func TestAddPreservesInsertionOrder(t *testing.T) {
	s := cart.NewStore(&fakeRepo{})

	s.Add(product(3, 100))
	s.Add(product(1, 100))
	s.Add(product(3, 100))
	s.Add(product(2, 100))

	snap := s.Snapshot()
	require.Len(t, snap.Entries, 3)
	assert.Equal(t, int64(3), snap.Entries[0].ID)
	assert.Equal(t, int64(1), snap.Entries[1].ID)
	assert.Equal(t, int64(2), snap.Entries[2].ID)
}

func TestSetQuantity(t *testing.T) {
	s := cart.NewStore(&fakeRepo{})
	s.Add(product(1, 200))

	s.SetQuantity(1, 7)
	require.Len(t, s.Snapshot().Entries, 1)
	assert.Equal(t, 7, s.Snapshot().Entries[0].Quantity)

	// Zero or negative removes the line.
	s.SetQuantity(1, 0)
	assert.Empty(t, s.Snapshot().Entries)

	s.Add(product(1, 200))
	s.SetQuantity(1, -3)
	assert.Empty(t, s.Snapshot().Entries)
}

func TestSetQuantityMissingIDIsNoop(t *testing.T) {
	s := cart.NewStore(&fakeRepo{})
	s.Add(product(1, 200))

	s.SetQuantity(99, 5)

	snap := s.Snapshot()
	require.Len(t, snap.Entries, 1)
	assert.Equal(t, int64(1), snap.Entries[0].ID)
	assert.Equal(t, 1, snap.Entries[0].Quantity)
}

func TestRemoveAbsentIsNoop(t *testing.T) {
	s := cart.NewStore(&fakeRepo{})
	s.Add(product(1, 200))

	s.Remove(42)
	require.Len(t, s.Snapshot().Entries, 1)

	s.Remove(1)
	assert.Empty(t, s.Snapshot().Entries)
}

func TestClearPersistsEmptySnapshot(t *testing.T) {
	repo := &fakeRepo{}
	s := cart.NewStore(repo)
	s.Add(product(1, 200))
	s.Add(product(2, 100))

	s.Clear()

	assert.Empty(t, s.Snapshot().Entries)
	require.NotNil(t, repo.last())
	assert.Empty(t, repo.last())
}

func TestEveryMutationPersists(t *testing.T) {
	repo := &fakeRepo{}
	s := cart.NewStore(repo)

	s.Add(product(1, 200))
	s.SetQuantity(1, 3)
	s.Remove(1)
	s.Clear()

	assert.Len(t, repo.saved, 4)
}

func TestPersistFailureKeepsInMemoryState(t *testing.T) {
	repo := &fakeRepo{saveErr: errors.New("disk full")}
	s := cart.NewStore(repo)

	s.Add(product(1, 200))

	// The write failed but the cart is still usable.
	require.Len(t, s.Snapshot().Entries, 1)
	assert.Empty(t, repo.saved)
}

func TestHydrateRestoresSavedEntries(t *testing.T) {
	saved := []domain.Entry{
		{Product: product(1, 200), Quantity: 2},
		{Product: product(2, 100), Quantity: 1},
	}
	repo := &fakeRepo{loadOut: saved}
	s := cart.NewStore(repo)

	s.Hydrate()

	snap := s.Snapshot()
	require.Len(t, snap.Entries, 2)
	assert.Equal(t, int64(1), snap.Entries[0].ID)
	assert.Equal(t, 2, snap.Entries[0].Quantity)
	// Hydrate is the restore path: it must not write back.
	assert.Empty(t, repo.saved)
}

func TestHydrateDropsInvalidEntries(t *testing.T) {
	bad := decimal.NewFromInt(500) // above list price
	saved := []domain.Entry{
		{Product: product(1, 200), Quantity: 2},
		{Product: product(2, 100), Quantity: 0},  // quantity floor
		{Product: product(0, 100), Quantity: 1},  // bad id
		{Product: product(1, 200), Quantity: 5},  // duplicate id
		{Product: domain.Product{ID: 3, Name: "x", Price: decimal.NewFromInt(200), DiscountPrice: &bad}, Quantity: 1},
	}
	repo := &fakeRepo{loadOut: saved}
	s := cart.NewStore(repo)

	s.Hydrate()

	snap := s.Snapshot()
	require.Len(t, snap.Entries, 1)
	assert.Equal(t, int64(1), snap.Entries[0].ID)
}

func TestHydrateLoadErrorYieldsEmptyCart(t *testing.T) {
	repo := &fakeRepo{loadErr: errors.New("corrupt slot")}
	s := cart.NewStore(repo)

	s.Hydrate()

	assert.Empty(t, s.Snapshot().Entries)
}

func TestSubscribeNotifiesAfterMutation(t *testing.T) {
	s := cart.NewStore(&fakeRepo{})

	var got []cart.State
	unsubscribe := s.Subscribe(func(st cart.State) { got = append(got, st) })

	s.Add(product(1, 200))
	s.SetQuantity(1, 4)
	require.Len(t, got, 2)
	assert.Equal(t, 4, got[1].Entries[0].Quantity)

	unsubscribe()
	s.Clear()
	assert.Len(t, got, 2)
}

// The store is shared across request goroutines; overlapping commands
// must serialize instead of racing on the entry list. Run with -race.
func TestConcurrentDispatch(t *testing.T) {
	s := cart.NewStore(&fakeRepo{})

	const perGoroutine = 100
	var wg sync.WaitGroup
	for g := 0; g < 2; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perGoroutine; i++ {
				s.Add(product(1, 200))
				s.SetQuantity(99, i+1) // absent id: exercises the path without changing counts
				s.Add(product(2, 100))
				_ = s.Snapshot()
			}
		}()
	}
	wg.Wait()

	snap := s.Snapshot()
	require.Len(t, snap.Entries, 2)
	assert.Equal(t, int64(1), snap.Entries[0].ID)
	assert.Equal(t, 2*perGoroutine, snap.Entries[0].Quantity)
	assert.Equal(t, 2*perGoroutine, snap.Entries[1].Quantity)
}

func TestSnapshotIsACopy(t *testing.T) {
	s := cart.NewStore(&fakeRepo{})
	s.Add(product(1, 200))

	snap := s.Snapshot()
	snap.Entries[0].Quantity = 99

	assert.Equal(t, 1, s.Snapshot().Entries[0].Quantity)
}
