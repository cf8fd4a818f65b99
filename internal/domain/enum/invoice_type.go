package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// InvoiceType classifies an invoice for GST reporting.
type InvoiceType string

const (
	InvoiceTypeB2B    InvoiceType = "B2B"
	InvoiceTypeB2C    InvoiceType = "B2C"
	InvoiceTypeExport InvoiceType = "EXPORT"
)

// Valid reports whether t is a known invoice type.
func (t InvoiceType) Valid() bool {
	switch t {
	case InvoiceTypeB2B, InvoiceTypeB2C, InvoiceTypeExport:
		return true
	}
	return false
}

func (t InvoiceType) String() string {
	return string(t)
}

func (t InvoiceType) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(t))
}

func (t *InvoiceType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*t = InvoiceType(str)
	return nil
}

func (t InvoiceType) Value() (driver.Value, error) {
	return string(t), nil
}

func (t *InvoiceType) Scan(value interface{}) error {
	if value == nil {
		*t = InvoiceTypeB2C
		return nil
	}
	switch v := value.(type) {
	case string:
		*t = InvoiceType(v)
	case []byte:
		*t = InvoiceType(string(v))
	}
	return nil
}
