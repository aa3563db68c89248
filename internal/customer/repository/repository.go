package repository

import (
	"context"

	"favorites-api/internal/customer/domain"
)

// Each capability is its own interface so a use case depends only on the
// store operations it calls. Lookups return (nil, nil) when nothing matches.

// CustomerAdder inserts a customer and returns the stored record with its id.
type CustomerAdder interface {
	Add(ctx context.Context, params domain.AddCustomerParams) (*domain.Customer, error)
}

type CustomerByEmailLoader interface {
	LoadByEmail(ctx context.Context, email string) (*domain.Customer, error)
}

type CustomerByIDLoader interface {
	LoadByID(ctx context.Context, id string) (*domain.Customer, error)
}

// CustomerByTokenLoader finds the customer whose stored access token equals token.
type CustomerByTokenLoader interface {
	LoadByToken(ctx context.Context, token string) (*domain.Customer, error)
}

type AccessTokenUpdater interface {
	UpdateAccessToken(ctx context.Context, customerID, token string) error
}

// CustomerUpdater overwrites name and email. Returns nil when the id is unknown.
type CustomerUpdater interface {
	UpdateCustomer(ctx context.Context, params domain.UpdateCustomerParams) (*domain.Customer, error)
}

// CustomerDeleter reports whether a record existed and was removed.
type CustomerDeleter interface {
	DeleteByID(ctx context.Context, id string) (bool, error)
}

// FavoriteProductFinder returns the favorited snapshot of productID, if any.
type FavoriteProductFinder interface {
	FindFavoriteProduct(ctx context.Context, productID, customerID string) (*domain.Product, error)
}

// FavoriteProductAdder appends product to the favorites and returns the updated customer.
type FavoriteProductAdder interface {
	AddFavoriteProduct(ctx context.Context, product domain.Product, customerID string) (*domain.Customer, error)
}

// FavoriteProductRemover removes productID from the favorites. Removing an
// entry that is not present is a no-op.
type FavoriteProductRemover interface {
	RemoveFavoriteProduct(ctx context.Context, productID, customerID string) (*domain.Customer, error)
}

// CustomerRepository is implemented by every customer store.
type CustomerRepository interface {
	CustomerAdder
	CustomerByEmailLoader
	CustomerByIDLoader
	CustomerByTokenLoader
	AccessTokenUpdater
	CustomerUpdater
	CustomerDeleter
	FavoriteProductFinder
	FavoriteProductAdder
	FavoriteProductRemover
}

// ErrorLogRepository records unexpected server errors for later inspection.
type ErrorLogRepository interface {
	LogError(ctx context.Context, stack string) error
}
