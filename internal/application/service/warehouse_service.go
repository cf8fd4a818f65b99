package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/nischayn/vyapari-api/internal/domain/entity"
	"github.com/nischayn/vyapari-api/internal/domain/enum"
	"github.com/nischayn/vyapari-api/internal/domain/repository"
	"github.com/nischayn/vyapari-api/pkg/apperror"
)

// WarehouseService handles stock location management
type WarehouseService struct {
	warehouseRepo repository.WarehouseRepository
}

// NewWarehouseService creates a new warehouse service
func NewWarehouseService(warehouseRepo repository.WarehouseRepository) *WarehouseService {
	return &WarehouseService{warehouseRepo: warehouseRepo}
}

// CreateWarehouseInput represents the input for creating a warehouse
type CreateWarehouseInput struct {
	Name    string
	Address *string
	Type    enum.WarehouseType
}

// CreateWarehouse creates a new warehouse
func (s *WarehouseService) CreateWarehouse(ctx context.Context, input *CreateWarehouseInput) (*entity.Warehouse, error) {
	existing, err := s.warehouseRepo.GetByName(ctx, input.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Warehouse name already exists")
	}

	warehouse := &entity.Warehouse{
		Name:     input.Name,
		Address:  input.Address,
		IsActive: true,
	}
	if input.Type != "" {
		warehouse.Type = input.Type
	}

	if err := s.warehouseRepo.Create(ctx, warehouse); err != nil {
		return nil, err
	}
	return warehouse, nil
}

// GetWarehouse retrieves a warehouse by ID
func (s *WarehouseService) GetWarehouse(ctx context.Context, id uuid.UUID) (*entity.Warehouse, error) {
	warehouse, err := s.warehouseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, apperror.NewNotFoundError("Warehouse")
	}
	return warehouse, nil
}

// ListWarehouses lists all warehouses
func (s *WarehouseService) ListWarehouses(ctx context.Context) ([]entity.Warehouse, error) {
	return s.warehouseRepo.List(ctx)
}

// DefaultWarehouse returns the Main warehouse every install is seeded with.
// Operations that omit a warehouse fall back to it.
func (s *WarehouseService) DefaultWarehouse(ctx context.Context) (*entity.Warehouse, error) {
	warehouse, err := s.warehouseRepo.GetByName(ctx, "Main")
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, apperror.NewNotFoundError("Default warehouse")
	}
	return warehouse, nil
}
