package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// QuotationStatus represents the lifecycle of a quotation.
// CONVERTED is terminal: a quotation converts to exactly one invoice, once.
type QuotationStatus string

const (
	QuotationStatusOpen      QuotationStatus = "OPEN"
	QuotationStatusConverted QuotationStatus = "CONVERTED"
)

func (s QuotationStatus) String() string {
	return string(s)
}

func (s QuotationStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(s))
}

func (s *QuotationStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*s = QuotationStatus(str)
	return nil
}

func (s QuotationStatus) Value() (driver.Value, error) {
	return string(s), nil
}

func (s *QuotationStatus) Scan(value interface{}) error {
	if value == nil {
		*s = QuotationStatusOpen
		return nil
	}
	switch v := value.(type) {
	case string:
		*s = QuotationStatus(v)
	case []byte:
		*s = QuotationStatus(string(v))
	}
	return nil
}
