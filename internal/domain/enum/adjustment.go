package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// AdjustmentType is the direction of a stock movement.
type AdjustmentType string

const (
	AdjustmentTypeIn  AdjustmentType = "IN"
	AdjustmentTypeOut AdjustmentType = "OUT"
)

// Valid reports whether t is a known adjustment type.
func (t AdjustmentType) Valid() bool {
	return t == AdjustmentTypeIn || t == AdjustmentTypeOut
}

func (t AdjustmentType) String() string {
	return string(t)
}

func (t AdjustmentType) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(t))
}

func (t *AdjustmentType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*t = AdjustmentType(str)
	return nil
}

func (t AdjustmentType) Value() (driver.Value, error) {
	return string(t), nil
}

func (t *AdjustmentType) Scan(value interface{}) error {
	if value == nil {
		*t = AdjustmentTypeIn
		return nil
	}
	switch v := value.(type) {
	case string:
		*t = AdjustmentType(v)
	case []byte:
		*t = AdjustmentType(string(v))
	}
	return nil
}

// AdjustmentReason records why a stock movement happened.
type AdjustmentReason string

const (
	AdjustmentReasonPurchase   AdjustmentReason = "PURCHASE"
	AdjustmentReasonSale       AdjustmentReason = "SALE"
	AdjustmentReasonManual     AdjustmentReason = "MANUAL"
	AdjustmentReasonReturn     AdjustmentReason = "RETURN"
	AdjustmentReasonProduction AdjustmentReason = "PRODUCTION"
	AdjustmentReasonTransfer   AdjustmentReason = "TRANSFER"
	AdjustmentReasonAdjustment AdjustmentReason = "ADJUSTMENT"
)

// Valid reports whether r is a known adjustment reason.
func (r AdjustmentReason) Valid() bool {
	switch r {
	case AdjustmentReasonPurchase, AdjustmentReasonSale, AdjustmentReasonManual,
		AdjustmentReasonReturn, AdjustmentReasonProduction, AdjustmentReasonTransfer,
		AdjustmentReasonAdjustment:
		return true
	}
	return false
}

func (r AdjustmentReason) String() string {
	return string(r)
}

func (r AdjustmentReason) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(r))
}

func (r *AdjustmentReason) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*r = AdjustmentReason(str)
	return nil
}

func (r AdjustmentReason) Value() (driver.Value, error) {
	return string(r), nil
}

func (r *AdjustmentReason) Scan(value interface{}) error {
	if value == nil {
		*r = AdjustmentReasonManual
		return nil
	}
	switch v := value.(type) {
	case string:
		*r = AdjustmentReason(v)
	case []byte:
		*r = AdjustmentReason(string(v))
	}
	return nil
}
