package usecase

import (
	"context"

	"favorites-api/internal/customer/repository"
)

type dbAuthentication struct {
	loadByEmailRepo    repository.CustomerByEmailLoader
	encrypter          Encrypter
	updateAccessTokens repository.AccessTokenUpdater
}

func NewDbAuthentication(loadByEmailRepo repository.CustomerByEmailLoader, encrypter Encrypter, updateAccessTokens repository.AccessTokenUpdater) Authentication {
	return &dbAuthentication{
		loadByEmailRepo:    loadByEmailRepo,
		encrypter:          encrypter,
		updateAccessTokens: updateAccessTokens,
	}
}

// Auth replaces any previously stored token, so older tokens stop resolving.
func (u *dbAuthentication) Auth(ctx context.Context, email string) (string, error) {
	customer, err := u.loadByEmailRepo.LoadByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if customer == nil {
		return "", nil
	}

	accessToken, err := u.encrypter.Encrypt(customer.ID)
	if err != nil {
		return "", err
	}

	if err := u.updateAccessTokens.UpdateAccessToken(ctx, customer.ID, accessToken); err != nil {
		return "", err
	}
	return accessToken, nil
}
