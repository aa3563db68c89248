package usecase

import (
	"context"

	"favorites-api/internal/customer/domain"
	"favorites-api/internal/customer/repository"
)

type dbUpdateCustomer struct {
	updateRepo repository.CustomerUpdater
}

func NewDbUpdateCustomer(updateRepo repository.CustomerUpdater) UpdateCustomer {
	return &dbUpdateCustomer{updateRepo: updateRepo}
}

// UpdateCustomer does not check the new email against other customers.
func (u *dbUpdateCustomer) UpdateCustomer(ctx context.Context, params domain.UpdateCustomerParams) (*domain.Customer, error) {
	return u.updateRepo.UpdateCustomer(ctx, params)
}
