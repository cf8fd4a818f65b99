package request

// CreateProductRequest represents a product creation request
type CreateProductRequest struct {
	Name          string  `json:"name" binding:"required,min=2,max=255"`
	SKU           *string `json:"sku" binding:"omitempty,max=100"`
	HSNCode       *string `json:"hsn_code" binding:"omitempty,max=20"`
	Description   *string `json:"description"`
	Category      *string `json:"category" binding:"omitempty,max=100"`
	UOM           string  `json:"uom" binding:"omitempty,max=20"`
	Price         string  `json:"price" binding:"required"`
	TaxRate       string  `json:"tax_rate"` // fraction, e.g. "0.18"
	MinStockLevel int     `json:"min_stock_level" binding:"omitempty,min=0"`
	MaxStockLevel *int    `json:"max_stock_level" binding:"omitempty,min=0"`
}

// UpdateProductRequest represents a product update request
type UpdateProductRequest struct {
	Name          *string `json:"name" binding:"omitempty,min=2,max=255"`
	HSNCode       *string `json:"hsn_code" binding:"omitempty,max=20"`
	Description   *string `json:"description"`
	Category      *string `json:"category" binding:"omitempty,max=100"`
	UOM           *string `json:"uom" binding:"omitempty,max=20"`
	Price         *string `json:"price"`
	TaxRate       *string `json:"tax_rate"`
	MinStockLevel *int    `json:"min_stock_level" binding:"omitempty,min=0"`
	MaxStockLevel *int    `json:"max_stock_level" binding:"omitempty,min=0"`
	IsActive      *bool   `json:"is_active"`
}
