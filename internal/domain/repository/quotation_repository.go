package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/nischayn/vyapari-api/internal/domain/entity"
	"github.com/nischayn/vyapari-api/internal/domain/enum"
	"github.com/nischayn/vyapari-api/pkg/pagination"
)

// QuotationRepository defines the interface for quotation data operations.
type QuotationRepository interface {
	// Create persists the quotation together with its line items.
	Create(ctx context.Context, quotation *entity.Quotation) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Quotation, error)
	GetWithItems(ctx context.Context, id uuid.UUID) (*entity.Quotation, error)
	List(ctx context.Context, params *QuotationFilterParams) ([]entity.Quotation, int64, error)

	// MarkConverted atomically flips status OPEN -> CONVERTED. Returns false
	// when the quotation was already converted (or missing), with no write
	// performed. This is the idempotency guard for conversion.
	MarkConverted(ctx context.Context, id uuid.UUID) (bool, error)

	// SetConvertedInvoice stamps the invoice produced by the conversion.
	SetConvertedInvoice(ctx context.Context, id, invoiceID uuid.UUID) error
}

// QuotationFilterParams contains filtering parameters for quotation queries
type QuotationFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Status     *enum.QuotationStatus
	CustomerID *uuid.UUID
}
