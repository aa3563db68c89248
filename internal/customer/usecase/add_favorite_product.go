package usecase

import (
	"context"

	"favorites-api/internal/customer/domain"
	"favorites-api/internal/customer/repository"
)

type dbAddFavoriteProduct struct {
	products     ProductGetter
	addFavorite  repository.FavoriteProductAdder
	findFavorite repository.FavoriteProductFinder
}

func NewDbAddFavoriteProduct(products ProductGetter, addFavorite repository.FavoriteProductAdder, findFavorite repository.FavoriteProductFinder) AddFavoriteProduct {
	return &dbAddFavoriteProduct{
		products:     products,
		addFavorite:  addFavorite,
		findFavorite: findFavorite,
	}
}

// AddFavoriteProductToCustomer confirms the product exists in the catalog
// before checking for a duplicate, then appends the catalog snapshot. The
// duplicate check and the append are separate store calls.
func (u *dbAddFavoriteProduct) AddFavoriteProductToCustomer(ctx context.Context, productID, customerID string) (*domain.Customer, error) {
	product, err := u.products.GetProductByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}

	favorited, err := u.findFavorite.FindFavoriteProduct(ctx, productID, customerID)
	if err != nil {
		return nil, err
	}
	if favorited != nil {
		return nil, domain.ErrProductAlreadyFavorited
	}

	return u.addFavorite.AddFavoriteProduct(ctx, *product, customerID)
}
