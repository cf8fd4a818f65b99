package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// PaymentMode is how a payment was made.
type PaymentMode string

const (
	PaymentModeCash   PaymentMode = "CASH"
	PaymentModeUPI    PaymentMode = "UPI"
	PaymentModeBank   PaymentMode = "BANK"
	PaymentModeCheque PaymentMode = "CHEQUE"
)

// Valid reports whether m is a known payment mode.
func (m PaymentMode) Valid() bool {
	switch m {
	case PaymentModeCash, PaymentModeUPI, PaymentModeBank, PaymentModeCheque:
		return true
	}
	return false
}

func (m PaymentMode) String() string {
	return string(m)
}

func (m PaymentMode) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(m))
}

func (m *PaymentMode) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*m = PaymentMode(str)
	return nil
}

func (m PaymentMode) Value() (driver.Value, error) {
	return string(m), nil
}

func (m *PaymentMode) Scan(value interface{}) error {
	if value == nil {
		*m = PaymentModeCash
		return nil
	}
	switch v := value.(type) {
	case string:
		*m = PaymentMode(v)
	case []byte:
		*m = PaymentMode(string(v))
	}
	return nil
}
