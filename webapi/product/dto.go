package product

// CreateProductInput is the request body of POST /products.
type CreateProductInput struct {
	Name        string `json:"name" validate:"required,max=200"`
	Description string `json:"description" validate:"max=2000"`
	Category    string `json:"category" validate:"max=100"`
	PriceCents  int64  `json:"price_cents" validate:"gte=0"`
}

// UpdateProductInput carries the fields to change; absent fields are kept.
type UpdateProductInput struct {
	Name        *string `json:"name" validate:"omitnil,min=1,max=200"`
	Description *string `json:"description" validate:"omitnil,max=2000"`
	Category    *string `json:"category" validate:"omitnil,max=100"`
	PriceCents  *int64  `json:"price_cents" validate:"omitnil,gte=0"`
}

// CleanupResult reports how one deletion listener settled.
type CleanupResult struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// DeleteProductResponse is the payload of DELETE /products/:id.
type DeleteProductResponse struct {
	ProductID string          `json:"product_id"`
	Cleanup   []CleanupResult `json:"cleanup"`
}
