package handlers

import (
	"net/http"
	"strings"

	"corptransit/internal/domain"
	"corptransit/internal/domain/models"
	"corptransit/internal/http/middleware"
	"corptransit/internal/repositories"
	"corptransit/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type vendorPayload struct {
	Name               string           `json:"name" binding:"required"`
	Code               string           `json:"code" binding:"required"`
	ClientID           string           `json:"clientId" binding:"required,uuid"`
	ServiceType        string           `json:"serviceType"`
	Address            string           `json:"address"`
	ContactEmail       string           `json:"contactEmail"`
	ContactPhone       string           `json:"contactPhone"`
	ContactPerson      string           `json:"contactPerson"`
	BankAccountDetails string           `json:"bankAccountDetails"`
	TaxID              string           `json:"taxId"`
	GSTNumber          string           `json:"gstNumber"`
	ServiceRating      *decimal.Decimal `json:"serviceRating"`
	Active             *bool            `json:"active"`
}

// GET /api/vendors?clientId=&q=
func GetVendors(c *gin.Context) {
	clientID, ok := QueryUUID(c, "clientId")
	if !ok {
		return
	}
	limit, offset := pagination(c)
	vendors, err := repositories.VendorRepository{}.List(clientID, c.Query("q"), limit, offset)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"vendors": vendors})
}

// GET /api/vendors/:id
func GetVendorByID(c *gin.Context) {
	id, ok := ParamUUID(c, "id")
	if !ok {
		return
	}
	vendor, err := repositories.VendorRepository{}.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, vendor)
}

// POST /api/vendors
func CreateVendor(c *gin.Context) {
	var req vendorPayload
	if !BindJSONOrError(c, &req) {
		return
	}
	repo := repositories.VendorRepository{}

	code := strings.TrimSpace(req.Code)
	exists, err := repo.ExistsByCode(code)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if exists {
		RespondDomainError(c, domain.ConflictError{Resource: "vendor", Msg: "code already in use"})
		return
	}

	vendor := models.Vendor{
		ID:                 uuid.New(),
		Name:               strings.TrimSpace(req.Name),
		Code:               code,
		ClientID:           uuid.MustParse(req.ClientID),
		ServiceType:        strings.TrimSpace(req.ServiceType),
		Address:            strings.TrimSpace(req.Address),
		ContactEmail:       strings.TrimSpace(req.ContactEmail),
		ContactPhone:       strings.TrimSpace(req.ContactPhone),
		ContactPerson:      strings.TrimSpace(req.ContactPerson),
		BankAccountDetails: strings.TrimSpace(req.BankAccountDetails),
		TaxID:              strings.TrimSpace(req.TaxID),
		GSTNumber:          strings.TrimSpace(req.GSTNumber),
		Active:             true,
	}
	if req.ServiceRating != nil {
		vendor.ServiceRating = *req.ServiceRating
	}
	if req.Active != nil {
		vendor.Active = *req.Active
	}
	if err := repo.Insert(vendor); err != nil {
		RespondDomainError(c, err)
		return
	}
	utils.LogEvent(middleware.GetRequestID(c), "vendors", "create", "vendor="+vendor.ID.String())
	c.JSON(http.StatusCreated, vendor)
}

// PUT /api/vendors/:id
func UpdateVendor(c *gin.Context) {
	id, ok := ParamUUID(c, "id")
	if !ok {
		return
	}
	var req vendorPayload
	if !BindJSONOrError(c, &req) {
		return
	}
	repo := repositories.VendorRepository{}
	vendor, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	vendor.Name = strings.TrimSpace(req.Name)
	vendor.Code = strings.TrimSpace(req.Code)
	vendor.ServiceType = strings.TrimSpace(req.ServiceType)
	vendor.Address = strings.TrimSpace(req.Address)
	vendor.ContactEmail = strings.TrimSpace(req.ContactEmail)
	vendor.ContactPhone = strings.TrimSpace(req.ContactPhone)
	vendor.ContactPerson = strings.TrimSpace(req.ContactPerson)
	vendor.BankAccountDetails = strings.TrimSpace(req.BankAccountDetails)
	vendor.TaxID = strings.TrimSpace(req.TaxID)
	vendor.GSTNumber = strings.TrimSpace(req.GSTNumber)
	if req.ServiceRating != nil {
		vendor.ServiceRating = *req.ServiceRating
	}
	if req.Active != nil {
		vendor.Active = *req.Active
	}
	if err := repo.Update(vendor); err != nil {
		RespondDomainError(c, err)
		return
	}
	utils.LogEvent(middleware.GetRequestID(c), "vendors", "update", "vendor="+vendor.ID.String())
	c.JSON(http.StatusOK, vendor)
}

// DELETE /api/vendors/:id
func DeleteVendor(c *gin.Context) {
	id, ok := ParamUUID(c, "id")
	if !ok {
		return
	}
	if err := (repositories.VendorRepository{}).Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	utils.LogEvent(middleware.GetRequestID(c), "vendors", "delete", "vendor="+id.String())
	c.JSON(http.StatusOK, gin.H{"message": "vendor deleted"})
}
