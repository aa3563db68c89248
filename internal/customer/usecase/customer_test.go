package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"

	"favorites-api/internal/customer/domain"
	"favorites-api/internal/customer/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ repository.CustomerRepository = (*memoryStore)(nil)

func TestAddCustomer_EmptyStore(t *testing.T) {
	store := newMemoryStore()
	sut := NewDbAddCustomer(store, store)

	customer, err := sut.Add(context.Background(), domain.AddCustomerParams{Name: "Bruno", Email: "b@x.com"})

	require.NoError(t, err)
	assert.NotEmpty(t, customer.ID)
	assert.Equal(t, "Bruno", customer.Name)
	assert.Equal(t, "b@x.com", customer.Email)
	assert.NotNil(t, customer.FavoriteProducts)
	assert.Empty(t, customer.FavoriteProducts)
	assert.Equal(t, []string{"LoadByEmail", "Add"}, store.calls)
}

func TestAddCustomer_DuplicateEmail(t *testing.T) {
	store := newMemoryStore()
	store.seed(domain.Customer{ID: "c1", Name: "Bruno", Email: "b@x.com"})
	sut := NewDbAddCustomer(store, store)

	for _, name := range []string{"Bruno", "Someone Else", ""} {
		customer, err := sut.Add(context.Background(), domain.AddCustomerParams{Name: name, Email: "b@x.com"})

		assert.ErrorIs(t, err, domain.ErrCustomerAlreadyExists)
		assert.Nil(t, customer)
	}
	assert.Equal(t, 1, store.count())
	assert.NotContains(t, store.calls, "Add")
}

func TestAddCustomer_StoreErrorPassesThrough(t *testing.T) {
	store := newMemoryStore()
	store.err = errStoreDown
	sut := NewDbAddCustomer(store, store)

	customer, err := sut.Add(context.Background(), domain.AddCustomerParams{Name: "Bruno", Email: "b@x.com"})

	assert.Same(t, errStoreDown, err)
	assert.Nil(t, customer)
}

// barrierStore lets every LoadByEmail call finish its read before any of
// them returns, reproducing two interleaved signups.
type barrierStore struct {
	*memoryStore
	wg *sync.WaitGroup
}

func (b *barrierStore) LoadByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	c, err := b.memoryStore.LoadByEmail(ctx, email)
	b.wg.Done()
	b.wg.Wait()
	return c, err
}

func TestAddCustomer_ConcurrentSignupsCanBothSucceed(t *testing.T) {
	store := newMemoryStore()
	wg := &sync.WaitGroup{}
	wg.Add(2)
	sut := NewDbAddCustomer(store, &barrierStore{memoryStore: store, wg: wg})

	var done sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		done.Add(1)
		go func(i int) {
			defer done.Done()
			_, errs[i] = sut.Add(context.Background(), domain.AddCustomerParams{Name: "Bruno", Email: "b@x.com"})
		}(i)
	}
	done.Wait()

	// Known limitation: the email check and the insert are not atomic.
	assert.NoError(t, errs[0])
	assert.NoError(t, errs[1])
	assert.Equal(t, 2, store.count())
}

func TestGetCustomer_IdempotentLookup(t *testing.T) {
	store := newMemoryStore()
	store.seed(domain.Customer{ID: "c1", Name: "Bruno", Email: "b@x.com"})
	sut := NewDbGetCustomer(store)

	first, err := sut.GetCustomerByID(context.Background(), "c1")
	require.NoError(t, err)
	second, err := sut.GetCustomerByID(context.Background(), "c1")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestGetCustomer_NotFoundIsNil(t *testing.T) {
	sut := NewDbGetCustomer(newMemoryStore())

	customer, err := sut.GetCustomerByID(context.Background(), "missing")

	assert.NoError(t, err)
	assert.Nil(t, customer)
}

func TestUpdateCustomer(t *testing.T) {
	store := newMemoryStore()
	store.seed(domain.Customer{ID: "c1", Name: "Bruno", Email: "b@x.com"})
	store.seed(domain.Customer{ID: "c2", Name: "Ana", Email: "a@x.com"})
	sut := NewDbUpdateCustomer(store)

	updated, err := sut.UpdateCustomer(context.Background(), domain.UpdateCustomerParams{ID: "c1", Name: "Bruno M", Email: "bm@x.com"})
	require.NoError(t, err)
	assert.Equal(t, "Bruno M", updated.Name)
	assert.Equal(t, "bm@x.com", updated.Email)

	missing, err := sut.UpdateCustomer(context.Background(), domain.UpdateCustomerParams{ID: "nope", Name: "x", Email: "x@x.com"})
	assert.NoError(t, err)
	assert.Nil(t, missing)

	// Email uniqueness is not re-checked on update.
	clash, err := sut.UpdateCustomer(context.Background(), domain.UpdateCustomerParams{ID: "c1", Name: "Bruno", Email: "a@x.com"})
	assert.NoError(t, err)
	assert.Equal(t, "a@x.com", clash.Email)
}

func TestDeleteCustomer(t *testing.T) {
	store := newMemoryStore()
	store.seed(domain.Customer{ID: "c1", Name: "Bruno", Email: "b@x.com"})
	sut := NewDbDeleteCustomer(store)

	deleted, err := sut.DeleteCustomerByID(context.Background(), "c1")
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = sut.DeleteCustomerByID(context.Background(), "c1")
	assert.NoError(t, err)
	assert.False(t, deleted)
}

func TestDeleteCustomer_StoreError(t *testing.T) {
	store := newMemoryStore()
	store.err = errStoreDown
	sut := NewDbDeleteCustomer(store)

	deleted, err := sut.DeleteCustomerByID(context.Background(), "c1")

	assert.True(t, errors.Is(err, errStoreDown))
	assert.False(t, deleted)
}
