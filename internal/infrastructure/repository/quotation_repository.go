package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/nischayn/vyapari-api/internal/domain/entity"
	"github.com/nischayn/vyapari-api/internal/domain/enum"
	domainRepo "github.com/nischayn/vyapari-api/internal/domain/repository"
	"gorm.io/gorm"
)

type quotationRepository struct {
	db *gorm.DB
}

// NewQuotationRepository creates a new quotation repository
func NewQuotationRepository(db *gorm.DB) domainRepo.QuotationRepository {
	return &quotationRepository{db: db}
}

func (r *quotationRepository) Create(ctx context.Context, quotation *entity.Quotation) error {
	return dbFrom(ctx, r.db).Create(quotation).Error
}

func (r *quotationRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Quotation, error) {
	var quotation entity.Quotation
	err := dbFrom(ctx, r.db).First(&quotation, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &quotation, err
}

func (r *quotationRepository) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Quotation, error) {
	var quotation entity.Quotation
	err := dbFrom(ctx, r.db).
		Preload("Items").
		First(&quotation, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &quotation, err
}

func (r *quotationRepository) List(ctx context.Context, params *domainRepo.QuotationFilterParams) ([]entity.Quotation, int64, error) {
	var quotations []entity.Quotation
	var total int64

	query := dbFrom(ctx, r.db).Model(&entity.Quotation{})

	if params.Search != "" {
		query = query.Where("quote_no ILIKE ? OR customer_name ILIKE ?",
			"%"+params.Search+"%", "%"+params.Search+"%")
	}

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}

	if params.CustomerID != nil {
		query = query.Where("customer_id = ?", *params.CustomerID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order("created_at DESC").
		Find(&quotations).Error

	return quotations, total, err
}

// MarkConverted atomically flips status OPEN -> CONVERTED. Returns false when
// the quotation was already converted (or missing), with no write performed.
// Uses: UPDATE quotations SET status = 'CONVERTED' WHERE id = ? AND status = 'OPEN'
func (r *quotationRepository) MarkConverted(ctx context.Context, id uuid.UUID) (bool, error) {
	result := dbFrom(ctx, r.db).Model(&entity.Quotation{}).
		Where("id = ? AND status = ?", id, enum.QuotationStatusOpen).
		Update("status", enum.QuotationStatusConverted)

	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *quotationRepository) SetConvertedInvoice(ctx context.Context, id, invoiceID uuid.UUID) error {
	return dbFrom(ctx, r.db).Model(&entity.Quotation{}).
		Where("id = ?", id).
		Update("converted_invoice_id", invoiceID).Error
}
