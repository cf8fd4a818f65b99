package request

// AdjustStockRequest represents a manual stock adjustment request
type AdjustStockRequest struct {
	ProductID         string  `json:"product_id" binding:"required,uuid"`
	WarehouseID       *string `json:"warehouse_id" binding:"omitempty,uuid"`
	Quantity          int     `json:"quantity" binding:"required,min=1"`
	Type              string  `json:"type" binding:"required,oneof=IN OUT"`
	Reason            string  `json:"reason" binding:"required"`
	ReferenceDocument string  `json:"reference_document"`
	BatchNumber       *string `json:"batch_number"`
}

// CreateWarehouseRequest represents a warehouse creation request
type CreateWarehouseRequest struct {
	Name    string  `json:"name" binding:"required,min=2,max=255"`
	Address *string `json:"address"`
	Type    string  `json:"type" binding:"omitempty,oneof=MAIN STORE SCRAP VIRTUAL"`
}
