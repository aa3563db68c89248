package usecase

import (
	"context"

	"favorites-api/internal/customer/domain"
	"favorites-api/internal/customer/repository"
)

type dbAddCustomer struct {
	addCustomerRepo repository.CustomerAdder
	loadByEmailRepo repository.CustomerByEmailLoader
}

func NewDbAddCustomer(addCustomerRepo repository.CustomerAdder, loadByEmailRepo repository.CustomerByEmailLoader) AddCustomer {
	return &dbAddCustomer{
		addCustomerRepo: addCustomerRepo,
		loadByEmailRepo: loadByEmailRepo,
	}
}

// Add checks the email and inserts in two separate store calls. Concurrent
// signups with the same email can both pass the check.
func (u *dbAddCustomer) Add(ctx context.Context, params domain.AddCustomerParams) (*domain.Customer, error) {
	existing, err := u.loadByEmailRepo.LoadByEmail(ctx, params.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrCustomerAlreadyExists
	}

	customer, err := u.addCustomerRepo.Add(ctx, params)
	if err != nil {
		return nil, err
	}
	if customer.FavoriteProducts == nil {
		customer.FavoriteProducts = []domain.Product{}
	}
	return customer, nil
}
