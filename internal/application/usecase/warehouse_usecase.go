package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/smontiel/sellerhub-api/internal/application/dto"
	"github.com/smontiel/sellerhub-api/internal/domain"
	"github.com/smontiel/sellerhub-api/internal/domain/entity"
	"github.com/smontiel/sellerhub-api/internal/domain/repository"
)

// WarehouseUseCase casos de uso CRUD para bodegas, acotados al seller efectivo.
type WarehouseUseCase struct {
	repo repository.WarehouseRepository
}

// NewWarehouseUseCase construye el caso de uso.
func NewWarehouseUseCase(repo repository.WarehouseRepository) *WarehouseUseCase {
	return &WarehouseUseCase{repo: repo}
}

// Create crea una nueva bodega para el seller.
func (uc *WarehouseUseCase) Create(sellerID string, in dto.CreateWarehouseRequest) (*dto.WarehouseResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	warehouse := &entity.Warehouse{
		ID:        uuid.New().String(),
		SellerID:  sellerID,
		Name:      in.Name,
		Address:   in.Address,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(warehouse); err != nil {
		return nil, err
	}
	return toWarehouseResponse(warehouse), nil
}

// GetByID obtiene una bodega por ID, verificando que pertenezca al seller.
func (uc *WarehouseUseCase) GetByID(sellerID, id string) (*dto.WarehouseResponse, error) {
	warehouse, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if warehouse == nil || warehouse.SellerID != sellerID {
		return nil, domain.ErrNotFound
	}
	return toWarehouseResponse(warehouse), nil
}

// List lista bodegas del seller con paginación.
func (uc *WarehouseUseCase) List(sellerID string, page dto.PageRequest) (*dto.WarehouseListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.ListBySeller(sellerID, page.Limit, page.Offset())
	if err != nil {
		return nil, err
	}
	items := make([]dto.WarehouseResponse, 0, len(list))
	for _, w := range list {
		items = append(items, *toWarehouseResponse(w))
	}
	return &dto.WarehouseListResponse{
		Items:      items,
		Pagination: dto.Pagination{Page: page.Page, Limit: page.Limit, Total: len(items)},
	}, nil
}

func toWarehouseResponse(w *entity.Warehouse) *dto.WarehouseResponse {
	if w == nil {
		return nil
	}
	return &dto.WarehouseResponse{
		ID:        w.ID,
		SellerID:  w.SellerID,
		Name:      w.Name,
		Address:   w.Address,
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
}
