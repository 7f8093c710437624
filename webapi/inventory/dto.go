package inventory

// CreateInventoryInput is the request body of POST /inventories/:productId.
type CreateInventoryInput struct {
	Quantity int    `json:"quantity" validate:"gte=0"`
	Location string `json:"location" validate:"max=100"`
}

// UpdateInventoryInput overwrites the set fields of a stock record.
type UpdateInventoryInput struct {
	Quantity *int    `json:"quantity" validate:"omitnil,gte=0"`
	Location *string `json:"location" validate:"omitnil,max=100"`
}

// AdjustQuantityInput adds Delta, which may be negative, to the stock.
type AdjustQuantityInput struct {
	Delta int `json:"delta" validate:"required"`
}
