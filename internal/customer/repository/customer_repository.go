package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"favorites-api/internal/customer/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// customerRepository implements CustomerRepository on postgres through gorm.
// Favorites live in a jsonb column on the customer row.
type customerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository creates a new instance of customerRepository
func NewCustomerRepository(db *gorm.DB) CustomerRepository {
	return &customerRepository{
		db: db,
	}
}

func (r *customerRepository) Add(ctx context.Context, params domain.AddCustomerParams) (*domain.Customer, error) {
	now := time.Now()
	customer := &domain.Customer{
		ID:               uuid.New().String(),
		Name:             params.Name,
		Email:            params.Email,
		FavoriteProducts: []domain.Product{},
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := r.db.WithContext(ctx).Create(customer).Error; err != nil {
		return nil, domain.StoreFailure("failed to add customer", err)
	}
	return customer, nil
}

func (r *customerRepository) LoadByEmail(ctx context.Context, email string) (*domain.Customer, error) {
	return r.first(ctx, "failed to load customer by email", "email = ?", email)
}

func (r *customerRepository) LoadByID(ctx context.Context, id string) (*domain.Customer, error) {
	return r.first(ctx, "failed to load customer by id", "id = ?", id)
}

func (r *customerRepository) LoadByToken(ctx context.Context, token string) (*domain.Customer, error) {
	return r.first(ctx, "failed to load customer by token", "access_token = ?", token)
}

func (r *customerRepository) UpdateAccessToken(ctx context.Context, customerID, token string) error {
	err := r.db.WithContext(ctx).Model(&domain.Customer{}).Where("id = ?", customerID).
		Updates(map[string]interface{}{
			"access_token": token,
			"updated_at":   time.Now(),
		}).Error
	if err != nil {
		return domain.StoreFailure("failed to update access token", err)
	}
	return nil
}

func (r *customerRepository) UpdateCustomer(ctx context.Context, params domain.UpdateCustomerParams) (*domain.Customer, error) {
	return r.updateAndReload(ctx, "failed to update customer", params.ID, map[string]interface{}{
		"name":       params.Name,
		"email":      params.Email,
		"updated_at": time.Now(),
	})
}

func (r *customerRepository) DeleteByID(ctx context.Context, id string) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&domain.Customer{}, "id = ?", id)
	if result.Error != nil {
		return false, domain.StoreFailure("failed to delete customer", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *customerRepository) FindFavoriteProduct(ctx context.Context, productID, customerID string) (*domain.Product, error) {
	filter, err := json.Marshal([]map[string]string{{"id": productID}})
	if err != nil {
		return nil, err
	}

	customer, err := r.first(ctx, "failed to find favorite product",
		"id = ? AND favorite_products @> ?::jsonb", customerID, string(filter))
	if err != nil || customer == nil {
		return nil, err
	}

	return customer.FavoriteProduct(productID), nil
}

func (r *customerRepository) AddFavoriteProduct(ctx context.Context, product domain.Product, customerID string) (*domain.Customer, error) {
	snapshot, err := json.Marshal([]domain.Product{product})
	if err != nil {
		return nil, err
	}

	return r.updateAndReload(ctx, "failed to add favorite product", customerID, map[string]interface{}{
		"favorite_products": gorm.Expr("favorite_products || ?::jsonb", string(snapshot)),
		"updated_at":        time.Now(),
	})
}

// RemoveFavoriteProduct rebuilds the jsonb array without productID, keeping
// the element order.
func (r *customerRepository) RemoveFavoriteProduct(ctx context.Context, productID, customerID string) (*domain.Customer, error) {
	return r.updateAndReload(ctx, "failed to remove favorite product", customerID, map[string]interface{}{
		"favorite_products": gorm.Expr(`COALESCE((
			SELECT jsonb_agg(t.elem ORDER BY t.pos)
			FROM jsonb_array_elements(favorite_products) WITH ORDINALITY AS t(elem, pos)
			WHERE t.elem->>'id' <> ?), '[]'::jsonb)`, productID),
		"updated_at": time.Now(),
	})
}

func (r *customerRepository) first(ctx context.Context, op string, query string, args ...interface{}) (*domain.Customer, error) {
	var customer domain.Customer
	err := r.db.WithContext(ctx).Where(query, args...).First(&customer).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, domain.StoreFailure(op, err)
	}
	if customer.FavoriteProducts == nil {
		customer.FavoriteProducts = []domain.Product{}
	}
	return &customer, nil
}

func (r *customerRepository) updateAndReload(ctx context.Context, op, id string, updates map[string]interface{}) (*domain.Customer, error) {
	result := r.db.WithContext(ctx).Model(&domain.Customer{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, domain.StoreFailure(op, result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return r.first(ctx, op, "id = ?", id)
}
