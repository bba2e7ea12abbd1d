package handlers

import (
	"net/http"

	"corptransit/internal/http/middleware"
	"corptransit/internal/repositories"
	"corptransit/internal/services"
	"corptransit/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func newInvoiceService(c *gin.Context) services.InvoiceService {
	return services.InvoiceService{
		Billing:     newBillingService(c),
		InvoiceRepo: repositories.InvoiceRepository{},
		TripRepo:    repositories.TripRepository{},
		RequestID:   middleware.GetRequestID(c),
	}
}

type generateInvoiceRequest struct {
	ClientID     string `json:"clientId" binding:"required,uuid"`
	VendorID     string `json:"vendorId" binding:"required,uuid"`
	BillingMonth string `json:"billingMonth"`
}

// POST /api/invoices/generate
func GenerateInvoice(c *gin.Context) {
	var req generateInvoiceRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	inv, err := newInvoiceService(c).GenerateForMonth(c.Request.Context(),
		uuid.MustParse(req.ClientID), uuid.MustParse(req.VendorID), req.BillingMonth)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, inv)
}

// GET /api/invoices?clientId=&vendorId=&status=
func GetInvoices(c *gin.Context) {
	clientID, ok := QueryUUID(c, "clientId")
	if !ok {
		return
	}
	vendorID, ok := QueryUUID(c, "vendorId")
	if !ok {
		return
	}
	invoices, err := repositories.InvoiceRepository{}.List(clientID, vendorID, c.Query("status"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"invoices": invoices})
}

// GET /api/invoices/:id
func GetInvoiceByID(c *gin.Context) {
	id, ok := ParamUUID(c, "id")
	if !ok {
		return
	}
	inv, err := repositories.InvoiceRepository{}.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, inv)
}

type invoiceStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// PUT /api/invoices/:id/status
func UpdateInvoiceStatus(c *gin.Context) {
	id, ok := ParamUUID(c, "id")
	if !ok {
		return
	}
	var req invoiceStatusRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	inv, err := newInvoiceService(c).ChangeStatus(id, req.Status)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, inv)
}

// DELETE /api/invoices/:id
func DeleteInvoice(c *gin.Context) {
	id, ok := ParamUUID(c, "id")
	if !ok {
		return
	}
	if err := (repositories.InvoiceRepository{}).Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	utils.LogEvent(middleware.GetRequestID(c), "invoices", "delete", "invoice="+id.String())
	c.JSON(http.StatusOK, gin.H{"message": "invoice deleted"})
}
