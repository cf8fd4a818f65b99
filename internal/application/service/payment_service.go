package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/nischayn/vyapari-api/internal/domain/entity"
	"github.com/nischayn/vyapari-api/internal/domain/enum"
	"github.com/nischayn/vyapari-api/internal/domain/repository"
	"github.com/nischayn/vyapari-api/pkg/apperror"
	"github.com/nischayn/vyapari-api/pkg/logger"
	"github.com/nischayn/vyapari-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// PaymentService records payments against invoices. One transaction covers
// the payment row, the invoice update and the customer balance decrement, so
// the three can never drift apart.
type PaymentService struct {
	paymentRepo  repository.PaymentRepository
	invoiceRepo  repository.InvoiceRepository
	customerRepo repository.CustomerRepository
	txr          repository.Transactor
}

// NewPaymentService creates a new payment service
func NewPaymentService(
	paymentRepo repository.PaymentRepository,
	invoiceRepo repository.InvoiceRepository,
	customerRepo repository.CustomerRepository,
	txr repository.Transactor,
) *PaymentService {
	return &PaymentService{
		paymentRepo:  paymentRepo,
		invoiceRepo:  invoiceRepo,
		customerRepo: customerRepo,
		txr:          txr,
	}
}

// RecordPaymentInput represents the input for recording a payment
type RecordPaymentInput struct {
	InvoiceID uuid.UUID
	Amount    decimal.Decimal
	Mode      enum.PaymentMode
	Reference *string
	Notes     *string
	PaidAt    *time.Time
}

// RecordPayment applies a payment to an invoice. The invoice update is a
// single conditional statement guarded by amount_paid + amount <= total, so
// concurrent payments can never jointly overpay.
func (s *PaymentService) RecordPayment(ctx context.Context, input *RecordPaymentInput) (*entity.Payment, error) {
	if !input.Amount.IsPositive() {
		return nil, apperror.NewInvalidAmountError("Payment amount must be positive")
	}
	if !input.Mode.Valid() {
		return nil, apperror.NewBadRequestError("Invalid payment mode")
	}

	invoice, err := s.invoiceRepo.GetByID(ctx, input.InvoiceID)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	if invoice.Status == enum.InvoiceStatusPaid {
		return nil, apperror.NewInvalidAmountError("Invoice is already fully paid")
	}

	paidAt := time.Now()
	if input.PaidAt != nil {
		paidAt = *input.PaidAt
	}

	payment := &entity.Payment{
		InvoiceID:  input.InvoiceID,
		CustomerID: invoice.CustomerID,
		Amount:     input.Amount,
		Mode:       input.Mode,
		Reference:  input.Reference,
		Notes:      input.Notes,
		PaidAt:     paidAt,
	}

	err = s.txr.WithinTx(ctx, func(ctx context.Context) error {
		ok, err := s.invoiceRepo.ApplyPayment(ctx, input.InvoiceID, input.Amount)
		if err != nil {
			return err
		}
		if !ok {
			return apperror.NewInvalidAmountError("Payment exceeds the remaining balance due")
		}

		if invoice.CustomerID != nil {
			if err := s.customerRepo.DecreaseBalance(ctx, *invoice.CustomerID, input.Amount); err != nil {
				return err
			}
		}

		return s.paymentRepo.Create(ctx, payment)
	})
	if err != nil {
		return nil, err
	}

	logger.WithModule("payment", "RecordPayment").
		WithField("invoice_id", input.InvoiceID).
		WithField("amount", input.Amount.StringFixed(2)).
		Info("payment recorded")

	return payment, nil
}

// GetPayment retrieves a payment by ID
func (s *PaymentService) GetPayment(ctx context.Context, id uuid.UUID) (*entity.Payment, error) {
	payment, err := s.paymentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, apperror.NewNotFoundError("Payment")
	}
	return payment, nil
}

// ListPayments lists payments, newest first
func (s *PaymentService) ListPayments(ctx context.Context, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.Payment], error) {
	payments, total, err := s.paymentRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(payments, pag), nil
}

// ListInvoicePayments lists payments applied to one invoice
func (s *PaymentService) ListInvoicePayments(ctx context.Context, invoiceID uuid.UUID) ([]entity.Payment, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	return s.paymentRepo.ListByInvoice(ctx, invoiceID)
}
