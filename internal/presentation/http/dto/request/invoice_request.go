package request

// InvoiceItemRequest represents one line of an invoice creation request
type InvoiceItemRequest struct {
	ProductID string  `json:"product_id" binding:"required,uuid"`
	Quantity  int     `json:"quantity" binding:"required,min=1"`
	UnitPrice *string `json:"unit_price"` // overrides the catalog price when set
}

// CreateInvoiceRequest represents an invoice creation request
type CreateInvoiceRequest struct {
	CustomerID     *string              `json:"customer_id" binding:"omitempty,uuid"`
	CustomerName   string               `json:"customer_name"` // walk-in sales only
	CustomerMobile *string              `json:"customer_mobile"`
	PlaceOfSupply  string               `json:"place_of_supply" binding:"omitempty,len=2"`
	InvoiceType    string               `json:"invoice_type" binding:"omitempty,oneof=B2B B2C EXPORT"`
	WarehouseID    *string              `json:"warehouse_id" binding:"omitempty,uuid"`
	Items          []InvoiceItemRequest `json:"items" binding:"required,min=1,dive"`
}

// RecordPaymentRequest represents a payment recording request
type RecordPaymentRequest struct {
	InvoiceID string  `json:"invoice_id" binding:"required,uuid"`
	Amount    string  `json:"amount" binding:"required"`
	Mode      string  `json:"mode" binding:"required,oneof=CASH UPI BANK CHEQUE"`
	Reference *string `json:"reference"`
	Notes     *string `json:"notes"`
	PaidAt    *string `json:"paid_at"` // RFC 3339, defaults to now
}
