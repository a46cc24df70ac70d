package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/smontiel/sellerhub-api/internal/application/dto"
	"github.com/smontiel/sellerhub-api/internal/domain"
	"github.com/smontiel/sellerhub-api/internal/domain/entity"
	"github.com/smontiel/sellerhub-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos, acotados al seller efectivo.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// Create crea un producto. SKU y nombre son obligatorios; los precios no pueden
// ser negativos (PurchasePrice valoriza el libro mayor de bodega).
func (uc *ProductUseCase) Create(sellerID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.SKU == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.SalePrice.IsNegative() || in.PurchasePrice.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	product := &entity.Product{
		ID:            uuid.New().String(),
		SellerID:      sellerID,
		SKU:           in.SKU,
		Name:          in.Name,
		Description:   in.Description,
		SalePrice:     in.SalePrice,
		PurchasePrice: in.PurchasePrice,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID, verificando que pertenezca al seller.
func (uc *ProductUseCase) GetByID(sellerID, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil || product.SellerID != sellerID {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// Update actualiza campos del producto (parcial).
func (uc *ProductUseCase) Update(sellerID, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil || product.SellerID != sellerID {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.SalePrice != nil {
		if in.SalePrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.SalePrice = *in.SalePrice
	}
	if in.PurchasePrice != nil {
		if in.PurchasePrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.PurchasePrice = *in.PurchasePrice
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List lista productos del seller con paginación.
func (uc *ProductUseCase) List(sellerID string, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.ListBySeller(sellerID, page.Limit, page.Offset())
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items:      items,
		Pagination: dto.Pagination{Page: page.Page, Limit: page.Limit, Total: len(items)},
	}, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:            p.ID,
		SellerID:      p.SellerID,
		SKU:           p.SKU,
		Name:          p.Name,
		Description:   p.Description,
		SalePrice:     p.SalePrice,
		PurchasePrice: p.PurchasePrice,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
