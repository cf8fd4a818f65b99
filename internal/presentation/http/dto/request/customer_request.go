package request

// CreateCustomerRequest represents a customer creation request
type CreateCustomerRequest struct {
	Name        string  `json:"name" binding:"required,min=2,max=255"`
	Email       *string `json:"email" binding:"omitempty,email"`
	Phone       string  `json:"phone" binding:"required,min=5,max=20"`
	GSTNumber   *string `json:"gst_number" binding:"omitempty,len=15"`
	Address     *string `json:"address"`
	State       string  `json:"state"`
	StateCode   string  `json:"state_code" binding:"omitempty,len=2"`
	CreditLimit string  `json:"credit_limit"` // decimal string, "0" or empty means unlimited
	Notes       *string `json:"notes"`
}

// UpdateCustomerRequest represents a customer update request
type UpdateCustomerRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=2,max=255"`
	Email       *string `json:"email" binding:"omitempty,email"`
	Phone       *string `json:"phone" binding:"omitempty,min=5,max=20"`
	GSTNumber   *string `json:"gst_number" binding:"omitempty,len=15"`
	Address     *string `json:"address"`
	State       *string `json:"state"`
	StateCode   *string `json:"state_code" binding:"omitempty,len=2"`
	CreditLimit *string `json:"credit_limit"`
	Notes       *string `json:"notes"`
}
