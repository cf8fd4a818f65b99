package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/nischayn/vyapari-api/internal/domain/entity"
	domainRepo "github.com/nischayn/vyapari-api/internal/domain/repository"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type customerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository creates a new customer repository
func NewCustomerRepository(db *gorm.DB) domainRepo.CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) Create(ctx context.Context, customer *entity.Customer) error {
	return dbFrom(ctx, r.db).Create(customer).Error
}

func (r *customerRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	var customer entity.Customer
	err := dbFrom(ctx, r.db).First(&customer, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &customer, err
}

func (r *customerRepository) Update(ctx context.Context, customer *entity.Customer) error {
	return dbFrom(ctx, r.db).Save(customer).Error
}

func (r *customerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return dbFrom(ctx, r.db).Delete(&entity.Customer{}, "id = ?", id).Error
}

func (r *customerRepository) List(ctx context.Context, params *domainRepo.CustomerFilterParams) ([]entity.Customer, int64, error) {
	var customers []entity.Customer
	var total int64

	query := dbFrom(ctx, r.db).Model(&entity.Customer{})

	if params.Search != "" {
		query = query.Where("name ILIKE ? OR phone ILIKE ? OR email ILIKE ?",
			"%"+params.Search+"%", "%"+params.Search+"%", "%"+params.Search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order("name ASC").
		Find(&customers).Error

	return customers, total, err
}

// IncreaseBalanceWithinLimit atomically adds amount to the outstanding balance,
// but only when the customer has no credit limit or the new balance stays
// within it.
// Uses: UPDATE customers SET outstanding_balance = outstanding_balance + ?
//
//	WHERE id = ? AND (credit_limit = 0 OR outstanding_balance + ? <= credit_limit)
func (r *customerRepository) IncreaseBalanceWithinLimit(ctx context.Context, id uuid.UUID, amount decimal.Decimal) (bool, error) {
	result := dbFrom(ctx, r.db).Model(&entity.Customer{}).
		Where("id = ? AND (credit_limit = 0 OR outstanding_balance + ? <= credit_limit)", id, amount).
		Update("outstanding_balance", gorm.Expr("outstanding_balance + ?", amount))

	if result.Error != nil {
		return false, result.Error
	}

	// If no rows were affected, the credit limit rejected the increment
	return result.RowsAffected > 0, nil
}

func (r *customerRepository) DecreaseBalance(ctx context.Context, id uuid.UUID, amount decimal.Decimal) error {
	return dbFrom(ctx, r.db).Model(&entity.Customer{}).
		Where("id = ?", id).
		Update("outstanding_balance", gorm.Expr("outstanding_balance - ?", amount)).Error
}
