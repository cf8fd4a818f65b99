package service

import (
	"context"

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

// InvoiceService creates and reads invoices. Creation is the busiest write
// path in the system: tax computation, stock deduction and the customer
// balance increment all happen inside one transaction, so an invoice either
// lands whole or leaves no trace.
type InvoiceService struct {
	invoiceRepo     repository.InvoiceRepository
	customerRepo    repository.CustomerRepository
	productRepo     repository.ProductRepository
	stockRepo       repository.StockRepository
	warehouseRepo   repository.WarehouseRepository
	txr             repository.Transactor
	sellerStateCode string
}

// NewInvoiceService creates a new invoice service
func NewInvoiceService(
	invoiceRepo repository.InvoiceRepository,
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
	stockRepo repository.StockRepository,
	warehouseRepo repository.WarehouseRepository,
	txr repository.Transactor,
	sellerStateCode string,
) *InvoiceService {
	return &InvoiceService{
		invoiceRepo:     invoiceRepo,
		customerRepo:    customerRepo,
		productRepo:     productRepo,
		stockRepo:       stockRepo,
		warehouseRepo:   warehouseRepo,
		txr:             txr,
		sellerStateCode: sellerStateCode,
	}
}

// InvoiceItemInput represents one line of a new invoice
type InvoiceItemInput struct {
	ProductID uuid.UUID
	Quantity  int
	// UnitPrice overrides the catalog price when set (negotiated price)
	UnitPrice *decimal.Decimal
}

// CreateInvoiceInput represents the input for creating an invoice
type CreateInvoiceInput struct {
	CustomerID *uuid.UUID // nil marks a walk-in sale

	// Walk-in details, ignored when CustomerID is set
	CustomerName   string
	CustomerMobile *string

	// PlaceOfSupply defaults to the customer's state code, or the seller's
	// own state for walk-ins
	PlaceOfSupply string
	InvoiceType   enum.InvoiceType
	WarehouseID   *uuid.UUID
	Items         []InvoiceItemInput
}

// CreateInvoice creates an invoice: computes the GST breakdown, deducts stock
// for every line and, for registered customers, increments the outstanding
// balance within the credit limit. Any failed guard aborts the whole
// transaction.
func (s *InvoiceService) CreateInvoice(ctx context.Context, input *CreateInvoiceInput) (*entity.Invoice, error) {
	if len(input.Items) == 0 {
		return nil, apperror.NewBadRequestError("Invoice must have at least one item")
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
	if input.InvoiceType != "" && !input.InvoiceType.Valid() {
		return nil, apperror.NewBadRequestError("Invalid invoice type")
	}

	// Resolve the customer before opening the transaction; the limit figures
	// are also needed to report a credit rejection precisely.
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

	warehouseID, err := s.resolveWarehouse(ctx, input.WarehouseID)
	if err != nil {
		return nil, err
	}

	placeOfSupply := input.PlaceOfSupply
	if placeOfSupply == "" {
		if customer != nil {
			placeOfSupply = customer.StateCode
		} else {
			placeOfSupply = s.sellerStateCode
		}
	}

	// Tax computation is pure; nothing here touches the database.
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

	invoiceType := input.InvoiceType
	if invoiceType == "" {
		invoiceType = enum.InvoiceTypeB2C
		if customer != nil && customer.GSTNumber != nil {
			invoiceType = enum.InvoiceTypeB2B
		}
	}

	invoice := &entity.Invoice{
		InvoiceNo:     utils.GenerateInvoiceNo(),
		CustomerID:    input.CustomerID,
		PlaceOfSupply: placeOfSupply,
		InvoiceType:   invoiceType,
		Subtotal:      breakdown.Subtotal,
		Tax:           breakdown.Tax,
		CGST:          breakdown.CGST,
		SGST:          breakdown.SGST,
		IGST:          breakdown.IGST,
		Total:         breakdown.Total,
		AmountPaid:    decimal.Zero,
		BalanceDue:    breakdown.Total,
		Status:        enum.InvoiceStatusUnpaid,
	}

	if customer != nil {
		invoice.CustomerName = customer.Name
		invoice.CustomerEmail = customer.Email
		invoice.CustomerAddress = customer.Address
		phone := customer.Phone
		invoice.CustomerMobile = &phone
		invoice.GSTIN = customer.GSTNumber
	} else {
		invoice.CustomerName = input.CustomerName
		invoice.CustomerMobile = input.CustomerMobile
	}

	for i, item := range input.Items {
		p := productsByID[item.ProductID]
		price := p.Price
		if item.UnitPrice != nil {
			price = *item.UnitPrice
		}
		invoice.Items = append(invoice.Items, entity.InvoiceItem{
			ProductID:   item.ProductID,
			ProductName: p.Name,
			HSNCode:     p.HSNCode,
			Quantity:    item.Quantity,
			UnitPrice:   price,
			TaxRate:     p.TaxRate,
			TaxAmount:   breakdown.Lines[i].Tax,
		})
	}

	err = s.txr.WithinTx(ctx, func(ctx context.Context) error {
		// Deduct stock line by line; the guarded update refuses to overdraw.
		for _, item := range input.Items {
			p := productsByID[item.ProductID]
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
				return apperror.NewInsufficientStockError(p.Name, item.Quantity)
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

		return s.invoiceRepo.Create(ctx, invoice)
	})
	if err != nil {
		return nil, err
	}

	logger.WithModule("invoice", "CreateInvoice").
		WithField("invoice_no", invoice.InvoiceNo).
		WithField("total", invoice.Total.StringFixed(2)).
		Info("invoice created")

	return s.invoiceRepo.GetWithItems(ctx, invoice.ID)
}

// GetInvoice retrieves an invoice with its items
func (s *InvoiceService) GetInvoice(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	invoice, err := s.invoiceRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	return invoice, nil
}

// ListInvoices lists invoices with filtering
func (s *InvoiceService) ListInvoices(ctx context.Context, params *repository.InvoiceFilterParams) (*pagination.PaginatedResult[entity.Invoice], error) {
	invoices, total, err := s.invoiceRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(invoices, pag), nil
}

func (s *InvoiceService) resolveWarehouse(ctx context.Context, warehouseID *uuid.UUID) (uuid.UUID, error) {
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
