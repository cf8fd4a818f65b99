package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/nischayn/vyapari-api/internal/domain/entity"
	"github.com/nischayn/vyapari-api/internal/domain/enum"
	"github.com/nischayn/vyapari-api/internal/domain/repository"
	"github.com/nischayn/vyapari-api/pkg/apperror"
	"github.com/nischayn/vyapari-api/pkg/gst"
	"github.com/nischayn/vyapari-api/pkg/logger"
	"github.com/nischayn/vyapari-api/pkg/pagination"
	"github.com/nischayn/vyapari-api/pkg/utils"
	"github.com/shopspring/decimal"
)

// QuotationService creates quotations and converts them to invoices. A
// quotation reserves nothing: stock and credit are only touched at
// conversion, with the same guards as a direct sale.
type QuotationService struct {
	quotationRepo   repository.QuotationRepository
	invoiceRepo     repository.InvoiceRepository
	customerRepo    repository.CustomerRepository
	productRepo     repository.ProductRepository
	stockRepo       repository.StockRepository
	warehouseRepo   repository.WarehouseRepository
	txr             repository.Transactor
	sellerStateCode string
}

// NewQuotationService creates a new quotation service
func NewQuotationService(
	quotationRepo repository.QuotationRepository,
	invoiceRepo repository.InvoiceRepository,
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
	stockRepo repository.StockRepository,
	warehouseRepo repository.WarehouseRepository,
	txr repository.Transactor,
	sellerStateCode string,
) *QuotationService {
	return &QuotationService{
		quotationRepo:   quotationRepo,
		invoiceRepo:     invoiceRepo,
		customerRepo:    customerRepo,
		productRepo:     productRepo,
		stockRepo:       stockRepo,
		warehouseRepo:   warehouseRepo,
		txr:             txr,
		sellerStateCode: sellerStateCode,
	}
}

// QuotationItemInput represents one line of a new quotation
type QuotationItemInput struct {
	ProductID uuid.UUID
	Quantity  int
	UnitPrice *decimal.Decimal
}

// CreateQuotationInput represents the input for creating a quotation
type CreateQuotationInput struct {
	CustomerID     *uuid.UUID
	CustomerName   string
	CustomerMobile *string
	PlaceOfSupply  string
	ValidUntil     *time.Time
	Items          []QuotationItemInput
}

// CreateQuotation creates a new quotation with the same tax computation as an
// invoice, but no stock or balance side effects.
func (s *QuotationService) CreateQuotation(ctx context.Context, input *CreateQuotationInput) (*entity.Quotation, error) {
	if len(input.Items) == 0 {
		return nil, apperror.NewBadRequestError("Quotation must have at least one item")
	}
	for _, item := range input.Items {
		if item.Quantity <= 0 {
			return nil, apperror.NewBadRequestError("Item quantity must be positive")
		}
		if item.UnitPrice != nil && item.UnitPrice.IsNegative() {
			return nil, apperror.NewBadRequestError("Item unit price cannot be negative")
		}
	}
	if input.PlaceOfSupply != "" && !gst.ValidStateCode(input.PlaceOfSupply) {
		return nil, apperror.NewBadRequestError("Invalid place of supply: " + input.PlaceOfSupply)
	}

	var customer *entity.Customer
	if input.CustomerID != nil {
		var err error
		customer, err = s.customerRepo.GetByID(ctx, *input.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			return nil, apperror.NewNotFoundError("Customer")
		}
	}

	ids := make([]uuid.UUID, 0, len(input.Items))
	for _, item := range input.Items {
		ids = append(ids, item.ProductID)
	}
	products, err := s.productRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	productsByID := make(map[uuid.UUID]*entity.Product, len(products))
	for i := range products {
		productsByID[products[i].ID] = &products[i]
	}
	for _, item := range input.Items {
		p, ok := productsByID[item.ProductID]
		if !ok {
			return nil, apperror.NewNotFoundError("Product")
		}
		if !p.IsActive {
			return nil, apperror.NewBadRequestError("Product is inactive: " + p.Name)
		}
	}

	placeOfSupply := input.PlaceOfSupply
	if placeOfSupply == "" {
		if customer != nil {
			placeOfSupply = customer.StateCode
		} else {
			placeOfSupply = s.sellerStateCode
		}
	}

	lines := make([]gst.LineItem, 0, len(input.Items))
	for _, item := range input.Items {
		p := productsByID[item.ProductID]
		price := p.Price
		if item.UnitPrice != nil {
			price = *item.UnitPrice
		}
		lines = append(lines, gst.LineItem{
			Quantity:  item.Quantity,
			UnitPrice: price,
			TaxRate:   p.TaxRate,
		})
	}
	breakdown := gst.Calculate(lines, s.sellerStateCode, placeOfSupply)

	validUntil := time.Now().AddDate(0, 0, 30)
	if input.ValidUntil != nil {
		validUntil = *input.ValidUntil
	}

	quotation := &entity.Quotation{
		QuoteNo:       utils.GenerateQuoteNo(),
		CustomerID:    input.CustomerID,
		PlaceOfSupply: placeOfSupply,
		Subtotal:      breakdown.Subtotal,
		Tax:           breakdown.Tax,
		CGST:          breakdown.CGST,
		SGST:          breakdown.SGST,
		IGST:          breakdown.IGST,
		Total:         breakdown.Total,
		ValidUntil:    validUntil,
		Status:        enum.QuotationStatusOpen,
	}

	if customer != nil {
		quotation.CustomerName = customer.Name
		quotation.CustomerEmail = customer.Email
		quotation.CustomerAddress = customer.Address
		phone := customer.Phone
		quotation.CustomerMobile = &phone
	} else {
		quotation.CustomerName = input.CustomerName
		quotation.CustomerMobile = input.CustomerMobile
	}

	for i, item := range input.Items {
		p := productsByID[item.ProductID]
		price := p.Price
		if item.UnitPrice != nil {
			price = *item.UnitPrice
		}
		quotation.Items = append(quotation.Items, entity.QuotationItem{
			ProductID:   item.ProductID,
			ProductName: p.Name,
			HSNCode:     p.HSNCode,
			Quantity:    item.Quantity,
			UnitPrice:   price,
			TaxRate:     p.TaxRate,
			TaxAmount:   breakdown.Lines[i].Tax,
		})
	}

	if err := s.quotationRepo.Create(ctx, quotation); err != nil {
		return nil, err
	}
	return quotation, nil
}

// GetQuotation retrieves a quotation with its items
func (s *QuotationService) GetQuotation(ctx context.Context, id uuid.UUID) (*entity.Quotation, error) {
	quotation, err := s.quotationRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if quotation == nil {
		return nil, apperror.NewNotFoundError("Quotation")
	}
	return quotation, nil
}

// ListQuotations lists quotations with filtering
func (s *QuotationService) ListQuotations(ctx context.Context, params *repository.QuotationFilterParams) (*pagination.PaginatedResult[entity.Quotation], error) {
	quotations, total, err := s.quotationRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(quotations, pag), nil
}

// ConvertInput represents the input for converting a quotation to an invoice
type ConvertInput struct {
	QuotationID uuid.UUID
	WarehouseID *uuid.UUID
}

// Convert turns an open quotation into an invoice. The snapshotted lines are
// billed exactly as quoted; current catalog prices are ignored. Stock and
// credit are checked with the same guards as a direct sale. The OPEN to
// CONVERTED status flip is the first write in the transaction, so a second
// conversion attempt, concurrent or not, finds nothing to flip and fails with
// no effect.
func (s *QuotationService) Convert(ctx context.Context, input *ConvertInput) (*entity.Invoice, error) {
	quotation, err := s.quotationRepo.GetWithItems(ctx, input.QuotationID)
	if err != nil {
		return nil, err
	}
	if quotation == nil {
		return nil, apperror.NewNotFoundError("Quotation")
	}
	if quotation.Status == enum.QuotationStatusConverted {
		return nil, apperror.NewAlreadyConvertedError(quotation.QuoteNo)
	}
	if time.Now().After(quotation.ValidUntil) {
		return nil, apperror.NewBadRequestError("Quotation " + quotation.QuoteNo + " has expired")
	}

	var customer *entity.Customer
	if quotation.CustomerID != nil {
		customer, err = s.customerRepo.GetByID(ctx, *quotation.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			return nil, apperror.NewNotFoundError("Customer")
		}
	}

	warehouseID, err := s.resolveWarehouse(ctx, input.WarehouseID)
	if err != nil {
		return nil, err
	}

	invoiceType := enum.InvoiceTypeB2C
	if customer != nil && customer.GSTNumber != nil {
		invoiceType = enum.InvoiceTypeB2B
	}

	invoice := &entity.Invoice{
		InvoiceNo:       utils.GenerateInvoiceNo(),
		CustomerID:      quotation.CustomerID,
		CustomerName:    quotation.CustomerName,
		CustomerEmail:   quotation.CustomerEmail,
		CustomerAddress: quotation.CustomerAddress,
		CustomerMobile:  quotation.CustomerMobile,
		PlaceOfSupply:   quotation.PlaceOfSupply,
		InvoiceType:     invoiceType,
		Subtotal:        quotation.Subtotal,
		Tax:             quotation.Tax,
		CGST:            quotation.CGST,
		SGST:            quotation.SGST,
		IGST:            quotation.IGST,
		Total:           quotation.Total,
		AmountPaid:      decimal.Zero,
		BalanceDue:      quotation.Total,
		Status:          enum.InvoiceStatusUnpaid,
	}
	if customer != nil {
		invoice.GSTIN = customer.GSTNumber
	}

	for _, item := range quotation.Items {
		invoice.Items = append(invoice.Items, entity.InvoiceItem{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			HSNCode:     item.HSNCode,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			TaxRate:     item.TaxRate,
			TaxAmount:   item.TaxAmount,
		})
	}

	err = s.txr.WithinTx(ctx, func(ctx context.Context) error {
		converted, err := s.quotationRepo.MarkConverted(ctx, quotation.ID)
		if err != nil {
			return err
		}
		if !converted {
			return apperror.NewAlreadyConvertedError(quotation.QuoteNo)
		}

		for _, item := range quotation.Items {
			adj := &entity.StockAdjustment{
				ProductID:         item.ProductID,
				WarehouseID:       warehouseID,
				Quantity:          -item.Quantity,
				Type:              enum.AdjustmentTypeOut,
				Reason:            enum.AdjustmentReasonSale,
				ReferenceDocument: invoice.InvoiceNo,
			}
			ok, err := s.stockRepo.ApplyAdjustment(ctx, adj)
			if err != nil {
				return err
			}
			if !ok {
				return apperror.NewInsufficientStockError(item.ProductName, item.Quantity)
			}
		}

		if customer != nil {
			ok, err := s.customerRepo.IncreaseBalanceWithinLimit(ctx, customer.ID, invoice.Total)
			if err != nil {
				return err
			}
			if !ok {
				attempted := customer.OutstandingBalance.Add(invoice.Total)
				return apperror.NewCreditLimitExceededError(attempted, customer.CreditLimit)
			}
		}

		if err := s.invoiceRepo.Create(ctx, invoice); err != nil {
			return err
		}
		return s.quotationRepo.SetConvertedInvoice(ctx, quotation.ID, invoice.ID)
	})
	if err != nil {
		return nil, err
	}

	logger.WithModule("quotation", "Convert").
		WithField("quote_no", quotation.QuoteNo).
		WithField("invoice_no", invoice.InvoiceNo).
		Info("quotation converted")

	return s.invoiceRepo.GetWithItems(ctx, invoice.ID)
}

func (s *QuotationService) resolveWarehouse(ctx context.Context, warehouseID *uuid.UUID) (uuid.UUID, error) {
	if warehouseID != nil {
		warehouse, err := s.warehouseRepo.GetByID(ctx, *warehouseID)
		if err != nil {
			return uuid.Nil, err
		}
		if warehouse == nil {
			return uuid.Nil, apperror.NewNotFoundError("Warehouse")
		}
		return warehouse.ID, nil
	}

	warehouse, err := s.warehouseRepo.GetByName(ctx, "Main")
	if err != nil {
		return uuid.Nil, err
	}
	if warehouse == nil {
		return uuid.Nil, apperror.NewNotFoundError("Default warehouse")
	}
	return warehouse.ID, nil
}
