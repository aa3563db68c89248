package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"favorites-api/internal/customer/domain"
)

var errStoreDown = domain.StoreFailure("failed to reach store", errors.New("connection refused"))

// memoryStore implements repository.CustomerRepository in memory.
type memoryStore struct {
	m         sync.Mutex
	seq       int
	customers map[string]*domain.Customer
	err       error

	// calls records the store operations in order
	calls []string
}

func newMemoryStore() *memoryStore {
	return &memoryStore{customers: make(map[string]*domain.Customer)}
}

func (s *memoryStore) record(call string) {
	s.calls = append(s.calls, call)
}

func (s *memoryStore) seed(c domain.Customer) *domain.Customer {
	s.m.Lock()
	defer s.m.Unlock()
	if c.FavoriteProducts == nil {
		c.FavoriteProducts = []domain.Product{}
	}
	s.customers[c.ID] = &c
	return copyCustomer(&c)
}

func (s *memoryStore) Add(_ context.Context, params domain.AddCustomerParams) (*domain.Customer, error) {
	s.m.Lock()
	defer s.m.Unlock()
	s.record("Add")
	if s.err != nil {
		return nil, s.err
	}
	s.seq++
	c := &domain.Customer{
		ID:               fmt.Sprintf("customer-%d", s.seq),
		Name:             params.Name,
		Email:            params.Email,
		FavoriteProducts: []domain.Product{},
	}
	s.customers[c.ID] = c
	return copyCustomer(c), nil
}

func (s *memoryStore) LoadByEmail(_ context.Context, email string) (*domain.Customer, error) {
	s.m.Lock()
	defer s.m.Unlock()
	s.record("LoadByEmail")
	if s.err != nil {
		return nil, s.err
	}
	for _, c := range s.customers {
		if c.Email == email {
			return copyCustomer(c), nil
		}
	}
	return nil, nil
}

func (s *memoryStore) LoadByID(_ context.Context, id string) (*domain.Customer, error) {
	s.m.Lock()
	defer s.m.Unlock()
	s.record("LoadByID")
	if s.err != nil {
		return nil, s.err
	}
	if c, ok := s.customers[id]; ok {
		return copyCustomer(c), nil
	}
	return nil, nil
}

func (s *memoryStore) LoadByToken(_ context.Context, token string) (*domain.Customer, error) {
	s.m.Lock()
	defer s.m.Unlock()
	s.record("LoadByToken")
	if s.err != nil {
		return nil, s.err
	}
	for _, c := range s.customers {
		if c.AccessToken != "" && c.AccessToken == token {
			return copyCustomer(c), nil
		}
	}
	return nil, nil
}

func (s *memoryStore) UpdateAccessToken(_ context.Context, customerID, token string) error {
	s.m.Lock()
	defer s.m.Unlock()
	s.record("UpdateAccessToken")
	if s.err != nil {
		return s.err
	}
	if c, ok := s.customers[customerID]; ok {
		c.AccessToken = token
	}
	return nil
}

func (s *memoryStore) UpdateCustomer(_ context.Context, params domain.UpdateCustomerParams) (*domain.Customer, error) {
	s.m.Lock()
	defer s.m.Unlock()
	s.record("UpdateCustomer")
	if s.err != nil {
		return nil, s.err
	}
	c, ok := s.customers[params.ID]
	if !ok {
		return nil, nil
	}
	c.Name = params.Name
	c.Email = params.Email
	return copyCustomer(c), nil
}

func (s *memoryStore) DeleteByID(_ context.Context, id string) (bool, error) {
	s.m.Lock()
	defer s.m.Unlock()
	s.record("DeleteByID")
	if s.err != nil {
		return false, s.err
	}
	if _, ok := s.customers[id]; !ok {
		return false, nil
	}
	delete(s.customers, id)
	return true, nil
}

func (s *memoryStore) FindFavoriteProduct(_ context.Context, productID, customerID string) (*domain.Product, error) {
	s.m.Lock()
	defer s.m.Unlock()
	s.record("FindFavoriteProduct")
	if s.err != nil {
		return nil, s.err
	}
	c, ok := s.customers[customerID]
	if !ok {
		return nil, nil
	}
	for _, p := range c.FavoriteProducts {
		if p.ID == productID {
			p := p
			return &p, nil
		}
	}
	return nil, nil
}

func (s *memoryStore) AddFavoriteProduct(_ context.Context, product domain.Product, customerID string) (*domain.Customer, error) {
	s.m.Lock()
	defer s.m.Unlock()
	s.record("AddFavoriteProduct")
	if s.err != nil {
		return nil, s.err
	}
	c, ok := s.customers[customerID]
	if !ok {
		return nil, nil
	}
	c.FavoriteProducts = append(c.FavoriteProducts, product)
	return copyCustomer(c), nil
}

func (s *memoryStore) RemoveFavoriteProduct(_ context.Context, productID, customerID string) (*domain.Customer, error) {
	s.m.Lock()
	defer s.m.Unlock()
	s.record("RemoveFavoriteProduct")
	if s.err != nil {
		return nil, s.err
	}
	c, ok := s.customers[customerID]
	if !ok {
		return nil, nil
	}
	kept := []domain.Product{}
	for _, p := range c.FavoriteProducts {
		if p.ID != productID {
			kept = append(kept, p)
		}
	}
	c.FavoriteProducts = kept
	return copyCustomer(c), nil
}

func (s *memoryStore) get(id string) *domain.Customer {
	s.m.Lock()
	defer s.m.Unlock()
	if c, ok := s.customers[id]; ok {
		return copyCustomer(c)
	}
	return nil
}

func (s *memoryStore) count() int {
	s.m.Lock()
	defer s.m.Unlock()
	return len(s.customers)
}

func copyCustomer(c *domain.Customer) *domain.Customer {
	cp := *c
	cp.FavoriteProducts = append([]domain.Product{}, c.FavoriteProducts...)
	return &cp
}

// mockCatalog implements ProductGetter and ProductLister.
type mockCatalog struct {
	products map[string]domain.Product
	page     *domain.ProductPage
	err      error

	requestedPage int
	getCalls      int
}

func (m *mockCatalog) GetProductByID(_ context.Context, productID string) (*domain.Product, error) {
	m.getCalls++
	if m.err != nil {
		return nil, m.err
	}
	p, ok := m.products[productID]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (m *mockCatalog) ListProducts(_ context.Context, page int) (*domain.ProductPage, error) {
	m.requestedPage = page
	if m.err != nil {
		return nil, m.err
	}
	return m.page, nil
}

// mockCrypto implements Encrypter and Decrypter with a fixed prefix scheme.
type mockCrypto struct {
	encryptErr error
	minted     int
}

func (m *mockCrypto) Encrypt(value string) (string, error) {
	if m.encryptErr != nil {
		return "", m.encryptErr
	}
	m.minted++
	return fmt.Sprintf("token-%d.%s", m.minted, value), nil
}

func (m *mockCrypto) Decrypt(token string) (string, error) {
	dot := strings.LastIndex(token, ".")
	if !strings.HasPrefix(token, "token-") || dot < 0 {
		return "", errors.New("invalid signature")
	}
	return token[dot+1:], nil
}
