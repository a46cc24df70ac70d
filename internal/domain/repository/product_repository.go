package repository

import "github.com/smontiel/sellerhub-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para productos.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	Update(product *entity.Product) error
	ListBySeller(sellerID string, limit, offset int) ([]*entity.Product, error)
}
