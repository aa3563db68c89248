package usecase

import (
	"context"

	"favorites-api/internal/customer/domain"
	"favorites-api/internal/customer/repository"
)

type dbGetCustomer struct {
	loadByIDRepo repository.CustomerByIDLoader
}

func NewDbGetCustomer(loadByIDRepo repository.CustomerByIDLoader) GetCustomer {
	return &dbGetCustomer{loadByIDRepo: loadByIDRepo}
}

func (u *dbGetCustomer) GetCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	return u.loadByIDRepo.LoadByID(ctx, customerID)
}
