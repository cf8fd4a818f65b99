package request

// PurchaseItemRequest represents one received line of a purchase request
type PurchaseItemRequest struct {
	ProductID   string  `json:"product_id" binding:"required,uuid"`
	Quantity    int     `json:"quantity" binding:"required,min=1"`
	UnitCost    string  `json:"unit_cost" binding:"required"`
	BatchNumber *string `json:"batch_number"`
}

// CreatePurchaseRequest represents a purchase recording request
type CreatePurchaseRequest struct {
	SupplierID  string                `json:"supplier_id" binding:"required,uuid"`
	WarehouseID *string               `json:"warehouse_id" binding:"omitempty,uuid"`
	Date        *string               `json:"date"` // RFC 3339, defaults to now
	Items       []PurchaseItemRequest `json:"items" binding:"required,min=1,dive"`
}

// CreateSupplierRequest represents a supplier creation request
type CreateSupplierRequest struct {
	Name      string  `json:"name" binding:"required,min=2,max=255"`
	Email     *string `json:"email" binding:"omitempty,email"`
	Phone     *string `json:"phone" binding:"omitempty,min=5,max=20"`
	GSTNumber *string `json:"gst_number" binding:"omitempty,len=15"`
	Address   *string `json:"address"`
}
