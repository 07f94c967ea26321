package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
)

// StringSlice is stored as a JSON array in a text/CLOB column.
type StringSlice []string

// Value implements the driver.Valuer interface
func (s StringSlice) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	jsonData, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	// string, not []byte, so Oracle binds it as character data
	return string(jsonData), nil
}

// Scan implements the sql.Scanner interface
func (s *StringSlice) Scan(value interface{}) error {
	b, err := jsonBytes(value, "StringSlice")
	if err != nil {
		return err
	}
	if b == nil {
		*s = StringSlice{}
		return nil
	}
	return json.Unmarshal(b, s)
}

// IntSlice is stored as a JSON array in a text/CLOB column.
type IntSlice []int

// Value implements the driver.Valuer interface
func (s IntSlice) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	jsonData, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

// Scan implements the sql.Scanner interface
func (s *IntSlice) Scan(value interface{}) error {
	b, err := jsonBytes(value, "IntSlice")
	if err != nil {
		return err
	}
	if b == nil {
		*s = IntSlice{}
		return nil
	}
	return json.Unmarshal(b, s)
}

// jsonBytes normalises a scanned column value. NULL, "" and "null" all yield nil.
func jsonBytes(value interface{}, typeName string) ([]byte, error) {
	var b []byte
	switch v := value.(type) {
	case nil:
		return nil, nil
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return nil, errors.New(typeName + " Scan: unsupported type " + fmt.Sprintf("%T", value))
	}
	if len(b) == 0 || string(b) == "null" {
		return nil, nil
	}
	return b, nil
}
