package models

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// JSONValue holds an arbitrary JSON document as stored in a jsonb column.
type JSONValue []byte

func (v JSONValue) Value() (driver.Value, error) {
	if len(v) == 0 {
		return nil, nil
	}
	return string(v), nil
}

func (v *JSONValue) Scan(src interface{}) error {
	if src == nil {
		*v = nil
		return nil
	}
	switch s := src.(type) {
	case []byte:
		*v = append((*v)[0:0], s...)
	case string:
		*v = JSONValue(s)
	default:
		return fmt.Errorf("unsupported source type %T for JSONValue", src)
	}
	return nil
}

func (v JSONValue) MarshalJSON() ([]byte, error) {
	if len(v) == 0 {
		return []byte("null"), nil
	}
	return v, nil
}

func (v *JSONValue) UnmarshalJSON(b []byte) error {
	*v = append((*v)[0:0], b...)
	return nil
}

// SystemSetting is an upsert-only key/value record; there is no delete.
type SystemSetting struct {
	Key       string    `json:"key" gorm:"type:varchar(255);primaryKey"`
	Value     JSONValue `json:"value" gorm:"type:jsonb;not null"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"not null"`
}
