// internal/models/order.go
package models

import "time"

// Order is the local-only record a checkout leaves behind. Items are a
// snapshot of the cart at purchase time.
type Order struct {
	ID              int         `json:"id" gorm:"primaryKey"`
	Items           []CartItem  `json:"items" gorm:"serializer:json"`
	Total           float64     `json:"total"`
	PurchaseDetails JSONB       `json:"datosCompra" gorm:"type:jsonb"`
	Timestamp       time.Time   `json:"fecha"`
	Status          OrderStatus `json:"estado" gorm:"type:varchar(20);default:'pendiente'"`
}
