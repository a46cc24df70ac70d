package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto o SKU del catálogo de un seller.
// PurchasePrice es el costo unitario de compra usado por el libro mayor de bodega
// para valorizar movimientos; inicia en 0 si nunca se ha definido.
type Product struct {
	ID            string
	SellerID      string
	SKU           string // código único por seller
	Name          string
	Description   string
	SalePrice     decimal.Decimal
	PurchasePrice decimal.Decimal
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
