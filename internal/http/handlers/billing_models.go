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

type billingModelPayload struct {
	ClientID  string `json:"clientId" binding:"required,uuid"`
	VendorID  string `json:"vendorId" binding:"required,uuid"`
	ModelType string `json:"modelType" binding:"required"`

	RatePerTrip decimal.Decimal `json:"ratePerTrip"`
	RatePerKm   decimal.Decimal `json:"ratePerKm"`

	PackageMonthlyRate   decimal.Decimal `json:"packageMonthlyRate"`
	PackageTripsIncluded int             `json:"packageTripsIncluded"`
	PackageKmsIncluded   decimal.Decimal `json:"packageKmsIncluded"`

	ExtraTripRate decimal.Decimal `json:"extraTripRate"`
	ExtraKmRate   decimal.Decimal `json:"extraKmRate"`
	ExtraHourRate decimal.Decimal `json:"extraHourRate"`

	PeakHourMultiplier decimal.Decimal `json:"peakHourMultiplier"`
	StandardTripKm     decimal.Decimal `json:"standardTripKm"`
	StandardTripHours  decimal.Decimal `json:"standardTripHours"`

	Active *bool `json:"active"`
}

// GET /api/billing-models?clientId=
func GetBillingModels(c *gin.Context) {
	clientID, ok := QueryUUID(c, "clientId")
	if !ok {
		return
	}
	repo := repositories.BillingModelRepository{}
	var (
		list []models.BillingModel
		err  error
	)
	if clientID != uuid.Nil {
		list, err = repo.ListByClient(clientID)
	} else {
		list, err = repo.ListActive()
	}
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"billingModels": list})
}

// GET /api/billing-models/:id
func GetBillingModelByID(c *gin.Context) {
	id, ok := ParamUUID(c, "id")
	if !ok {
		return
	}
	model, err := repositories.BillingModelRepository{}.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, model)
}

// GET /api/billing-models/client/:clientId/vendor/:vendorId
func GetBillingModelByPair(c *gin.Context) {
	clientID, ok := ParamUUID(c, "clientId")
	if !ok {
		return
	}
	vendorID, ok := ParamUUID(c, "vendorId")
	if !ok {
		return
	}
	model, err := repositories.BillingModelRepository{}.GetByPair(clientID, vendorID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, model)
}

// POST /api/billing-models
func CreateBillingModel(c *gin.Context) {
	var req billingModelPayload
	if !BindJSONOrError(c, &req) {
		return
	}
	modelType := strings.ToUpper(strings.TrimSpace(req.ModelType))
	if !models.KnownModelType(modelType) {
		RespondDomainError(c, domain.UnknownModelError{ModelType: modelType})
		return
	}

	repo := repositories.BillingModelRepository{}
	clientID := uuid.MustParse(req.ClientID)
	vendorID := uuid.MustParse(req.VendorID)

	exists, err := repo.ExistsByPair(clientID, vendorID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if exists {
		RespondDomainError(c, domain.ConflictError{Resource: "billing model", Msg: "a model already exists for this client/vendor pair"})
		return
	}

	model := models.BillingModel{
		ID:                   uuid.New(),
		ClientID:             clientID,
		VendorID:             vendorID,
		ModelType:            modelType,
		RatePerTrip:          req.RatePerTrip,
		RatePerKm:            req.RatePerKm,
		PackageMonthlyRate:   req.PackageMonthlyRate,
		PackageTripsIncluded: req.PackageTripsIncluded,
		PackageKmsIncluded:   req.PackageKmsIncluded,
		ExtraTripRate:        req.ExtraTripRate,
		ExtraKmRate:          req.ExtraKmRate,
		ExtraHourRate:        req.ExtraHourRate,
		PeakHourMultiplier:   req.PeakHourMultiplier,
		StandardTripKm:       req.StandardTripKm,
		StandardTripHours:    req.StandardTripHours,
		Active:               true,
	}
	if req.Active != nil {
		model.Active = *req.Active
	}
	if err := repo.Insert(model); err != nil {
		RespondDomainError(c, err)
		return
	}
	utils.LogEvent(middleware.GetRequestID(c), "billing_models", "create", "model="+model.ID.String())
	c.JSON(http.StatusCreated, model)
}

// PUT /api/billing-models/:id
func UpdateBillingModel(c *gin.Context) {
	id, ok := ParamUUID(c, "id")
	if !ok {
		return
	}
	var req billingModelPayload
	if !BindJSONOrError(c, &req) {
		return
	}
	modelType := strings.ToUpper(strings.TrimSpace(req.ModelType))
	if !models.KnownModelType(modelType) {
		RespondDomainError(c, domain.UnknownModelError{ModelType: modelType})
		return
	}

	repo := repositories.BillingModelRepository{}
	model, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	model.ModelType = modelType
	model.RatePerTrip = req.RatePerTrip
	model.RatePerKm = req.RatePerKm
	model.PackageMonthlyRate = req.PackageMonthlyRate
	model.PackageTripsIncluded = req.PackageTripsIncluded
	model.PackageKmsIncluded = req.PackageKmsIncluded
	model.ExtraTripRate = req.ExtraTripRate
	model.ExtraKmRate = req.ExtraKmRate
	model.ExtraHourRate = req.ExtraHourRate
	model.PeakHourMultiplier = req.PeakHourMultiplier
	model.StandardTripKm = req.StandardTripKm
	model.StandardTripHours = req.StandardTripHours
	if req.Active != nil {
		model.Active = *req.Active
	}
	if err := repo.Update(model); err != nil {
		RespondDomainError(c, err)
		return
	}
	utils.LogEvent(middleware.GetRequestID(c), "billing_models", "update", "model="+model.ID.String())
	c.JSON(http.StatusOK, model)
}

// DELETE /api/billing-models/:id
func DeleteBillingModel(c *gin.Context) {
	id, ok := ParamUUID(c, "id")
	if !ok {
		return
	}
	if err := (repositories.BillingModelRepository{}).Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	utils.LogEvent(middleware.GetRequestID(c), "billing_models", "delete", "model="+id.String())
	c.JSON(http.StatusOK, gin.H{"message": "billing model deleted"})
}
