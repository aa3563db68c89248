package usecase

import (
	"context"

	"favorites-api/internal/customer/repository"
)

type dbDeleteCustomer struct {
	deleteRepo repository.CustomerDeleter
}

func NewDbDeleteCustomer(deleteRepo repository.CustomerDeleter) DeleteCustomer {
	return &dbDeleteCustomer{deleteRepo: deleteRepo}
}

func (u *dbDeleteCustomer) DeleteCustomerByID(ctx context.Context, customerID string) (bool, error) {
	return u.deleteRepo.DeleteByID(ctx, customerID)
}
