package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// WarehouseType categorizes a warehouse.
type WarehouseType string

const (
	WarehouseTypeMain    WarehouseType = "MAIN"
	WarehouseTypeStore   WarehouseType = "STORE"
	WarehouseTypeScrap   WarehouseType = "SCRAP"
	WarehouseTypeVirtual WarehouseType = "VIRTUAL"
)

func (t WarehouseType) String() string {
	return string(t)
}

func (t WarehouseType) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(t))
}

func (t *WarehouseType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*t = WarehouseType(str)
	return nil
}

func (t WarehouseType) Value() (driver.Value, error) {
	return string(t), nil
}

func (t *WarehouseType) Scan(value interface{}) error {
	if value == nil {
		*t = WarehouseTypeMain
		return nil
	}
	switch v := value.(type) {
	case string:
		*t = WarehouseType(v)
	case []byte:
		*t = WarehouseType(string(v))
	}
	return nil
}
