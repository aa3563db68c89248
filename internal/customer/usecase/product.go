package usecase

import (
	"context"

	"favorites-api/internal/customer/domain"
)

type httpGetProduct struct {
	products ProductGetter
}

func NewHttpGetProduct(products ProductGetter) GetProduct {
	return &httpGetProduct{products: products}
}

func (u *httpGetProduct) GetProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	return u.products.GetProductByID(ctx, productID)
}

type httpListProducts struct {
	products ProductLister
}

func NewHttpListProducts(products ProductLister) ListProducts {
	return &httpListProducts{products: products}
}

func (u *httpListProducts) ListProducts(ctx context.Context, page int) (*domain.ProductPage, error) {
	if page < 1 {
		page = 1
	}
	return u.products.ListProducts(ctx, page)
}
