package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/nischayn/vyapari-api/internal/domain/entity"
	domainRepo "github.com/nischayn/vyapari-api/internal/domain/repository"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type invoiceRepository struct {
	db *gorm.DB
}

// NewInvoiceRepository creates a new invoice repository
func NewInvoiceRepository(db *gorm.DB) domainRepo.InvoiceRepository {
	return &invoiceRepository{db: db}
}

func (r *invoiceRepository) Create(ctx context.Context, invoice *entity.Invoice) error {
	// gorm persists the Items association in the same insert batch
	return dbFrom(ctx, r.db).Create(invoice).Error
}

func (r *invoiceRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	var invoice entity.Invoice
	err := dbFrom(ctx, r.db).First(&invoice, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &invoice, err
}

func (r *invoiceRepository) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	var invoice entity.Invoice
	err := dbFrom(ctx, r.db).
		Preload("Items").
		First(&invoice, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &invoice, err
}

func (r *invoiceRepository) GetByInvoiceNo(ctx context.Context, invoiceNo string) (*entity.Invoice, error) {
	var invoice entity.Invoice
	err := dbFrom(ctx, r.db).
		Preload("Items").
		First(&invoice, "invoice_no = ?", invoiceNo).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &invoice, err
}

func (r *invoiceRepository) List(ctx context.Context, params *domainRepo.InvoiceFilterParams) ([]entity.Invoice, int64, error) {
	var invoices []entity.Invoice
	var total int64

	query := dbFrom(ctx, r.db).Model(&entity.Invoice{})

	if params.Search != "" {
		query = query.Where("invoice_no ILIKE ? OR customer_name ILIKE ?",
			"%"+params.Search+"%", "%"+params.Search+"%")
	}

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}

	if params.CustomerID != nil {
		query = query.Where("customer_id = ?", *params.CustomerID)
	}

	if params.StartDate != nil {
		query = query.Where("created_at >= ?", *params.StartDate)
	}

	if params.EndDate != nil {
		query = query.Where("created_at <= ?", *params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order("created_at DESC").
		Find(&invoices).Error

	return invoices, total, err
}

func (r *invoiceRepository) ListAllByCustomer(ctx context.Context, customerID uuid.UUID) ([]entity.Invoice, error) {
	var invoices []entity.Invoice
	err := dbFrom(ctx, r.db).
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&invoices).Error
	return invoices, err
}

func (r *invoiceRepository) ListByDateRange(ctx context.Context, start, end time.Time) ([]entity.Invoice, error) {
	var invoices []entity.Invoice
	err := dbFrom(ctx, r.db).
		Where("created_at >= ? AND created_at <= ?", start, end).
		Order("created_at ASC").
		Find(&invoices).Error
	return invoices, err
}

func (r *invoiceRepository) CountByCustomer(ctx context.Context, customerID uuid.UUID) (int64, error) {
	var count int64
	err := dbFrom(ctx, r.db).Model(&entity.Invoice{}).
		Where("customer_id = ?", customerID).
		Count(&count).Error
	return count, err
}

// ApplyPayment atomically adds amount to amount_paid and recomputes
// balance_due and status in the same statement, guarded by
// amount_paid + amount <= total. Returns false when the guard rejected the
// payment (overpayment), with no write performed.
func (r *invoiceRepository) ApplyPayment(ctx context.Context, id uuid.UUID, amount decimal.Decimal) (bool, error) {
	result := dbFrom(ctx, r.db).Model(&entity.Invoice{}).
		Where("id = ? AND amount_paid + ? <= total", id, amount).
		Updates(map[string]interface{}{
			"amount_paid": gorm.Expr("amount_paid + ?", amount),
			"balance_due": gorm.Expr("total - (amount_paid + ?)", amount),
			"status": gorm.Expr(
				"CASE WHEN amount_paid + ? >= total THEN 'PAID' WHEN amount_paid + ? > 0 THEN 'PARTIAL' ELSE 'UNPAID' END",
				amount, amount),
		})

	if result.Error != nil {
		return false, result.Error
	}

	// If no rows were affected, the payment would overpay the invoice
	return result.RowsAffected > 0, nil
}

func (r *invoiceRepository) SumTotalsByCustomer(ctx context.Context, customerID uuid.UUID) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := dbFrom(ctx, r.db).Model(&entity.Invoice{}).
		Where("customer_id = ?", customerID).
		Select("COALESCE(SUM(total), 0)").
		Scan(&total).Error
	return total, err
}
