package service

import (
	"context"
	"time"

	"github.com/nischayn/vyapari-api/internal/domain/entity"
	"github.com/nischayn/vyapari-api/internal/domain/enum"
	"github.com/nischayn/vyapari-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// ReportService produces read-only summaries over invoices and stock. It
// never writes; anything here can be recomputed from the ledgers.
type ReportService struct {
	invoiceRepo repository.InvoiceRepository
	productRepo repository.ProductRepository
}

// NewReportService creates a new report service
func NewReportService(invoiceRepo repository.InvoiceRepository, productRepo repository.ProductRepository) *ReportService {
	return &ReportService{
		invoiceRepo: invoiceRepo,
		productRepo: productRepo,
	}
}

// SalesSummary aggregates invoices over a period
type SalesSummary struct {
	From         time.Time       `json:"from"`
	To           time.Time       `json:"to"`
	InvoiceCount int             `json:"invoice_count"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	Tax          decimal.Decimal `json:"tax"`
	Total        decimal.Decimal `json:"total"`
	Collected    decimal.Decimal `json:"collected"`
	Outstanding  decimal.Decimal `json:"outstanding"`
}

// GetSalesSummary summarizes invoicing activity in [from, to]
func (s *ReportService) GetSalesSummary(ctx context.Context, from, to time.Time) (*SalesSummary, error) {
	invoices, err := s.invoiceRepo.ListByDateRange(ctx, from, to)
	if err != nil {
		return nil, err
	}

	summary := &SalesSummary{
		From:        from,
		To:          to,
		Subtotal:    decimal.Zero,
		Tax:         decimal.Zero,
		Total:       decimal.Zero,
		Collected:   decimal.Zero,
		Outstanding: decimal.Zero,
	}
	for _, inv := range invoices {
		summary.InvoiceCount++
		summary.Subtotal = summary.Subtotal.Add(inv.Subtotal)
		summary.Tax = summary.Tax.Add(inv.Tax)
		summary.Total = summary.Total.Add(inv.Total)
		summary.Collected = summary.Collected.Add(inv.AmountPaid)
		summary.Outstanding = summary.Outstanding.Add(inv.BalanceDue)
	}
	return summary, nil
}

// GSTBucket is the tax split for one invoice class
type GSTBucket struct {
	InvoiceCount int             `json:"invoice_count"`
	Taxable      decimal.Decimal `json:"taxable"`
	CGST         decimal.Decimal `json:"cgst"`
	SGST         decimal.Decimal `json:"sgst"`
	IGST         decimal.Decimal `json:"igst"`
}

// GSTSummary is the period tax report split by invoice class, the shape a
// GSTR filing draws from.
type GSTSummary struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
	B2B  GSTBucket `json:"b2b"`
	B2C  GSTBucket `json:"b2c"`
}

// GetGSTSummary aggregates the CGST/SGST/IGST figures for a period
func (s *ReportService) GetGSTSummary(ctx context.Context, from, to time.Time) (*GSTSummary, error) {
	invoices, err := s.invoiceRepo.ListByDateRange(ctx, from, to)
	if err != nil {
		return nil, err
	}

	summary := &GSTSummary{
		From: from,
		To:   to,
		B2B:  GSTBucket{Taxable: decimal.Zero, CGST: decimal.Zero, SGST: decimal.Zero, IGST: decimal.Zero},
		B2C:  GSTBucket{Taxable: decimal.Zero, CGST: decimal.Zero, SGST: decimal.Zero, IGST: decimal.Zero},
	}
	for _, inv := range invoices {
		bucket := &summary.B2C
		if inv.InvoiceType == enum.InvoiceTypeB2B {
			bucket = &summary.B2B
		}
		bucket.InvoiceCount++
		bucket.Taxable = bucket.Taxable.Add(inv.Subtotal)
		bucket.CGST = bucket.CGST.Add(inv.CGST)
		bucket.SGST = bucket.SGST.Add(inv.SGST)
		bucket.IGST = bucket.IGST.Add(inv.IGST)
	}
	return summary, nil
}

// GetLowStock returns products at or below their minimum stock level
func (s *ReportService) GetLowStock(ctx context.Context) ([]entity.Product, error) {
	return s.productRepo.GetLowStock(ctx)
}
