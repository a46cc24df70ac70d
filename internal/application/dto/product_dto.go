package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest body para POST /api/products.
type CreateProductRequest struct {
	SKU           string          `json:"sku"`
	Name          string          `json:"name"`
	Description   string          `json:"description,omitempty"`
	SalePrice     decimal.Decimal `json:"sale_price"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
}

// UpdateProductRequest body para PUT /api/products/:id (campos opcionales).
type UpdateProductRequest struct {
	Name          *string          `json:"name,omitempty"`
	Description   *string          `json:"description,omitempty"`
	SalePrice     *decimal.Decimal `json:"sale_price,omitempty"`
	PurchasePrice *decimal.Decimal `json:"purchase_price,omitempty"`
}

// ProductResponse representación pública de un producto.
type ProductResponse struct {
	ID            string          `json:"id"`
	SellerID      string          `json:"seller_id"`
	SKU           string          `json:"sku"`
	Name          string          `json:"name"`
	Description   string          `json:"description,omitempty"`
	SalePrice     decimal.Decimal `json:"sale_price"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ProductListResponse listado paginado de productos.
type ProductListResponse struct {
	Items      []ProductResponse `json:"items"`
	Pagination Pagination        `json:"pagination"`
}
