package domain

// Product is owned by the remote catalog. A copy is embedded into a customer's
// favorites when favorited; the copy is not refreshed afterwards.
type Product struct {
	ID          string  `json:"id" bson:"id"`
	Title       string  `json:"title" bson:"title"`
	Brand       string  `json:"brand" bson:"brand"`
	Image       string  `json:"image" bson:"image"`
	Price       float64 `json:"price" bson:"price"`
	ReviewScore float64 `json:"review_score" bson:"reviewScore"`
}

// ProductPage is one page of the catalog listing.
type ProductPage struct {
	Items []Product `json:"items"`
	Page  int       `json:"page"`
	Size  int       `json:"size"`
}
