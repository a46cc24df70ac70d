package dto

import "time"

// CreateWarehouseRequest body para POST /api/warehouses.
type CreateWarehouseRequest struct {
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
}

// WarehouseResponse representación pública de una bodega.
type WarehouseResponse struct {
	ID        string    `json:"id"`
	SellerID  string    `json:"seller_id"`
	Name      string    `json:"name"`
	Address   string    `json:"address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// WarehouseListResponse listado paginado de bodegas.
type WarehouseListResponse struct {
	Items      []WarehouseResponse `json:"items"`
	Pagination Pagination          `json:"pagination"`
}
