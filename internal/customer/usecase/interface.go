package usecase

import (
	"context"

	"favorites-api/internal/customer/domain"
)

// AddCustomer registers a customer. Fails with domain.ErrCustomerAlreadyExists
// when the email is taken.
type AddCustomer interface {
	Add(ctx context.Context, params domain.AddCustomerParams) (*domain.Customer, error)
}

// Authentication mints and stores a fresh access token for the customer with
// the given email. Returns "" when no such customer exists.
type Authentication interface {
	Auth(ctx context.Context, email string) (string, error)
}

type GetCustomer interface {
	GetCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error)
}

type UpdateCustomer interface {
	UpdateCustomer(ctx context.Context, params domain.UpdateCustomerParams) (*domain.Customer, error)
}

type DeleteCustomer interface {
	DeleteCustomerByID(ctx context.Context, customerID string) (bool, error)
}

// LoadCustomerByToken resolves a bearer token to its customer. Invalid tokens
// and tokens no customer holds both yield (nil, nil).
type LoadCustomerByToken interface {
	LoadCustomer(ctx context.Context, accessToken string) (*domain.Customer, error)
}

type AddFavoriteProduct interface {
	AddFavoriteProductToCustomer(ctx context.Context, productID, customerID string) (*domain.Customer, error)
}

type RemoveFavoriteProduct interface {
	RemoveFavoriteProductFromCustomer(ctx context.Context, productID, customerID string) (*domain.Customer, error)
}

type GetProduct interface {
	GetProductByID(ctx context.Context, productID string) (*domain.Product, error)
}

type ListProducts interface {
	ListProducts(ctx context.Context, page int) (*domain.ProductPage, error)
}
