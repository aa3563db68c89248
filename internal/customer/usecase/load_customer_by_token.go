package usecase

import (
	"context"

	"favorites-api/internal/customer/domain"
	"favorites-api/internal/customer/repository"
)

type dbLoadCustomerByToken struct {
	decrypter       Decrypter
	loadByTokenRepo repository.CustomerByTokenLoader
}

func NewDbLoadCustomerByToken(decrypter Decrypter, loadByTokenRepo repository.CustomerByTokenLoader) LoadCustomerByToken {
	return &dbLoadCustomerByToken{
		decrypter:       decrypter,
		loadByTokenRepo: loadByTokenRepo,
	}
}

// LoadCustomer requires both a valid signature and a stored token match.
// A verification failure means "not authenticated" and is not returned as an
// error; store failures are.
func (u *dbLoadCustomerByToken) LoadCustomer(ctx context.Context, accessToken string) (*domain.Customer, error) {
	subject, err := u.decrypter.Decrypt(accessToken)
	if err != nil || subject == "" {
		return nil, nil
	}

	return u.loadByTokenRepo.LoadByToken(ctx, accessToken)
}
