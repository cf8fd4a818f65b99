package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/nischayn/vyapari-api/internal/application/service"
	"github.com/nischayn/vyapari-api/internal/domain/enum"
	"github.com/nischayn/vyapari-api/internal/presentation/http/dto/request"
	"github.com/nischayn/vyapari-api/internal/presentation/http/dto/response"
)

// StockHandler handles stock-related HTTP requests
type StockHandler struct {
	stockService     *service.StockService
	warehouseService *service.WarehouseService
}

// NewStockHandler creates a new stock handler
func NewStockHandler(stockService *service.StockService, warehouseService *service.WarehouseService) *StockHandler {
	return &StockHandler{
		stockService:     stockService,
		warehouseService: warehouseService,
	}
}

// Adjust handles a manual stock adjustment
func (h *StockHandler) Adjust(c *gin.Context) {
	var req request.AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		response.BadRequest(c, "Invalid product ID")
		return
	}
	warehouseID, err := parseOptionalUUID(req.WarehouseID)
	if err != nil {
		response.BadRequest(c, "Invalid warehouse ID")
		return
	}

	adj, err := h.stockService.AdjustStock(c.Request.Context(), &service.AdjustStockInput{
		ProductID:         productID,
		WarehouseID:       warehouseID,
		Quantity:          req.Quantity,
		Type:              enum.AdjustmentType(req.Type),
		Reason:            enum.AdjustmentReason(req.Reason),
		ReferenceDocument: req.ReferenceDocument,
		BatchNumber:       req.BatchNumber,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Stock adjusted successfully", adj)
}

// History handles retrieving a product's adjustment history
func (h *StockHandler) History(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	page, err := h.stockService.History(c.Request.Context(), productID, offset, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Stock history retrieved successfully", page)
}

// Levels handles retrieving a product's current stock
func (h *StockHandler) Levels(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	var warehouseID *uuid.UUID
	if w := c.Query("warehouse_id"); w != "" {
		id, err := uuid.Parse(w)
		if err != nil {
			response.BadRequest(c, "Invalid warehouse ID")
			return
		}
		warehouseID = &id
	}

	current, err := h.stockService.CurrentStock(c.Request.Context(), productID, warehouseID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Stock level retrieved successfully", gin.H{
		"product_id":    productID,
		"current_stock": current,
	})
}

// Reconcile handles a stock reconciliation check for a product
func (h *StockHandler) Reconcile(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	rec, err := h.stockService.Reconcile(c.Request.Context(), productID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Stock reconciliation completed", rec)
}

// CreateWarehouse handles creating a warehouse
func (h *StockHandler) CreateWarehouse(c *gin.Context) {
	var req request.CreateWarehouseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	warehouse, err := h.warehouseService.CreateWarehouse(c.Request.Context(), &service.CreateWarehouseInput{
		Name:    req.Name,
		Address: req.Address,
		Type:    enum.WarehouseType(req.Type),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Warehouse created successfully", warehouse)
}

// ListWarehouses handles listing warehouses
func (h *StockHandler) ListWarehouses(c *gin.Context) {
	warehouses, err := h.warehouseService.ListWarehouses(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Warehouses retrieved successfully", warehouses)
}
