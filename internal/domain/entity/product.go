package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product producto del catálogo de una empresa.
type Product struct {
	ID          string
	CompanyID   string
	Name        string
	Description string
	Price       decimal.Decimal
	Unit        string
	Code        string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
