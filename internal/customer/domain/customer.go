package domain

import "time"

// Customer is the persisted customer record. FavoriteProducts holds by-value
// snapshots of catalog products in insertion order.
type Customer struct {
	ID               string    `json:"id" gorm:"primaryKey"`
	Name             string    `json:"name" gorm:"not null"`
	Email            string    `json:"email" gorm:"index;not null"`
	AccessToken      string    `json:"-" gorm:"index"` // Never return the token with the customer
	FavoriteProducts []Product `json:"favorite_products" gorm:"type:jsonb;serializer:json;not null"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type AddCustomerParams struct {
	Name  string
	Email string
}

type UpdateCustomerParams struct {
	ID    string
	Name  string
	Email string
}

// FavoriteProduct returns the stored snapshot of productID, or nil when the
// product is not in the favorite list.
func (c *Customer) FavoriteProduct(productID string) *Product {
	for i := range c.FavoriteProducts {
		if c.FavoriteProducts[i].ID == productID {
			return &c.FavoriteProducts[i]
		}
	}
	return nil
}
