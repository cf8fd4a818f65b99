package request

// QuotationItemRequest represents one line of a quotation creation request
type QuotationItemRequest struct {
	ProductID string  `json:"product_id" binding:"required,uuid"`
	Quantity  int     `json:"quantity" binding:"required,min=1"`
	UnitPrice *string `json:"unit_price"`
}

// CreateQuotationRequest represents a quotation creation request
type CreateQuotationRequest struct {
	CustomerID     *string                `json:"customer_id" binding:"omitempty,uuid"`
	CustomerName   string                 `json:"customer_name"`
	CustomerMobile *string                `json:"customer_mobile"`
	PlaceOfSupply  string                 `json:"place_of_supply" binding:"omitempty,len=2"`
	ValidUntil     *string                `json:"valid_until"` // RFC 3339, defaults to 30 days out
	Items          []QuotationItemRequest `json:"items" binding:"required,min=1,dive"`
}

// ConvertQuotationRequest represents a quotation conversion request
type ConvertQuotationRequest struct {
	WarehouseID *string `json:"warehouse_id" binding:"omitempty,uuid"`
}
