// internal/models/common.go
package models

import (
	"database/sql/driver"
	"encoding/json"
)

// JSONB type for PostgreSQL (mock API persistence); also carries the
// free-form purchase details on local orders.
type JSONB map[string]interface{}

func (j JSONB) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

func (j *JSONB) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}

	return json.Unmarshal(bytes, j)
}

// Source tags which tier served an operation.
type Source string

const (
	SourceAPI   Source = "api"
	SourceLocal Source = "local"
)

// Enums
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "usuario"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pendiente"
	OrderStatusPaid      OrderStatus = "pagado"
	OrderStatusCancelled OrderStatus = "cancelado"
)
