package usecase

import (
	"context"

	"favorites-api/internal/customer/domain"
	"favorites-api/internal/customer/repository"
)

type dbRemoveFavoriteProduct struct {
	removeFavorite repository.FavoriteProductRemover
	findFavorite   repository.FavoriteProductFinder
}

func NewDbRemoveFavoriteProduct(removeFavorite repository.FavoriteProductRemover, findFavorite repository.FavoriteProductFinder) RemoveFavoriteProduct {
	return &dbRemoveFavoriteProduct{
		removeFavorite: removeFavorite,
		findFavorite:   findFavorite,
	}
}

// RemoveFavoriteProductFromCustomer fails with domain.ErrProductNotFound when
// the product is not among the customer's favorites.
func (u *dbRemoveFavoriteProduct) RemoveFavoriteProductFromCustomer(ctx context.Context, productID, customerID string) (*domain.Customer, error) {
	favorited, err := u.findFavorite.FindFavoriteProduct(ctx, productID, customerID)
	if err != nil {
		return nil, err
	}
	if favorited == nil {
		return nil, domain.ErrProductNotFound
	}

	return u.removeFavorite.RemoveFavoriteProduct(ctx, productID, customerID)
}
