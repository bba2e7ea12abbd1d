package handlers

import (
	"net/http"

	intconfig "corptransit/internal/config"
	"corptransit/internal/http/middleware"
	"corptransit/internal/repositories"
	"corptransit/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// newBillingService wires the billing engine against the local database, or
// against remote services when their base URLs are configured.
func newBillingService(c *gin.Context) services.BillingService {
	svc := services.BillingService{
		Trips:       services.RepoTripSource{TripRepo: repositories.TripRepository{}},
		Models:      services.RepoBillingModelSource{ModelRepo: repositories.BillingModelRepository{}},
		StrictTrips: intconfig.Cfg.StrictTripFetch,
		RequestID:   middleware.GetRequestID(c),
	}
	if intconfig.Cfg.TripServiceURL != "" {
		svc.Trips = services.HTTPTripSource{BaseURL: intconfig.Cfg.TripServiceURL}
	}
	if intconfig.Cfg.BillingServiceURL != "" {
		svc.Models = services.HTTPBillingModelSource{BaseURL: intconfig.Cfg.BillingServiceURL}
	}
	return svc
}

type calculateBillingRequest struct {
	ClientID     string `json:"clientId" binding:"required,uuid"`
	VendorID     string `json:"vendorId" binding:"required,uuid"`
	BillingMonth string `json:"billingMonth"`
}

// POST /api/billing/calculate
func CalculateBilling(c *gin.Context) {
	var req calculateBillingRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	res, err := newBillingService(c).Calculate(c.Request.Context(),
		uuid.MustParse(req.ClientID), uuid.MustParse(req.VendorID), req.BillingMonth)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// GET /api/billing/calculate/client/:clientId/vendor/:vendorId?month=YYYY-MM
func CalculateBillingByPair(c *gin.Context) {
	clientID, ok := ParamUUID(c, "clientId")
	if !ok {
		return
	}
	vendorID, ok := ParamUUID(c, "vendorId")
	if !ok {
		return
	}
	res, err := newBillingService(c).Calculate(c.Request.Context(), clientID, vendorID, c.Query("month"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
