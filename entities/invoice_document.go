package entities

import (
	"gorm.io/datatypes"
)

// InvoiceDocument stores one invoice record as a JSON document keyed by its invoice number.
type InvoiceDocument struct {
	InvoiceNumber string            `gorm:"type:varchar(255);primaryKey" json:"invoice_number"`
	Data          datatypes.JSONMap `gorm:"not null" json:"data"`

	Timestamp
}
