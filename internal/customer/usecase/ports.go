package usecase

import (
	"context"

	"favorites-api/internal/customer/domain"
)

// Encrypter mints an opaque token bound to value.
type Encrypter interface {
	Encrypt(value string) (string, error)
}

// Decrypter verifies a token and returns the value it was bound to. It fails
// for tokens with an invalid signature.
type Decrypter interface {
	Decrypt(token string) (string, error)
}

// ProductGetter fetches a catalog product. Returns (nil, nil) when the catalog
// does not know the id.
type ProductGetter interface {
	GetProductByID(ctx context.Context, productID string) (*domain.Product, error)
}

type ProductLister interface {
	ListProducts(ctx context.Context, page int) (*domain.ProductPage, error)
}
