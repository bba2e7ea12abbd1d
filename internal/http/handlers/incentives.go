package handlers

import (
	"net/http"
	"time"

	"corptransit/internal/http/middleware"
	"corptransit/internal/repositories"
	"corptransit/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

func newIncentiveService(c *gin.Context) services.IncentiveService {
	return services.IncentiveService{
		TripRepo:   repositories.TripRepository{},
		ModelRepo:  repositories.BillingModelRepository{},
		VendorRepo: repositories.VendorRepository{},
		RequestID:  middleware.GetRequestID(c),
	}
}

type employeeTripIncentiveRequest struct {
	DurationHours decimal.Decimal `json:"durationHours" binding:"required"`
	StandardHours decimal.Decimal `json:"standardHours" binding:"required"`
	DistanceKm    decimal.Decimal `json:"distanceKm"`
	StandardKm    decimal.Decimal `json:"standardKm"`
	TripStartTime time.Time       `json:"tripStartTime" binding:"required"`
}

// POST /api/incentives/employee/trip
func CalculateEmployeeTripIncentive(c *gin.Context) {
	var req employeeTripIncentiveRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	amount := services.EmployeeTripIncentive(
		req.DurationHours, req.StandardHours, req.DistanceKm, req.StandardKm, req.TripStartTime)
	c.JSON(http.StatusOK, gin.H{"incentive": amount})
}

type monthlyEmployeeIncentiveRequest struct {
	TotalExtraHours    decimal.Decimal `json:"totalExtraHours"`
	LateNightTripCount int             `json:"lateNightTripCount"`
	WeekendTripCount   int             `json:"weekendTripCount"`
}

// POST /api/incentives/employee/monthly
func CalculateMonthlyEmployeeIncentive(c *gin.Context) {
	var req monthlyEmployeeIncentiveRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	res := services.MonthlyEmployeeIncentive(req.TotalExtraHours, req.LateNightTripCount, req.WeekendTripCount)
	c.JSON(http.StatusOK, res)
}

type vendorIncentiveRequest struct {
	TotalExtraKm        decimal.Decimal `json:"totalExtraKm"`
	TotalTripsCompleted int             `json:"totalTripsCompleted"`
	ServiceRating       decimal.Decimal `json:"serviceRating"`
}

// POST /api/incentives/vendor
func CalculateVendorIncentive(c *gin.Context) {
	var req vendorIncentiveRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	res := services.VendorIncentive(req.TotalExtraKm, req.TotalTripsCompleted, req.ServiceRating)
	c.JSON(http.StatusOK, res)
}

// GET /api/incentives/employee/:employeeId?month=YYYY-MM
func GetEmployeeMonthlyIncentive(c *gin.Context) {
	employeeID, ok := ParamUUID(c, "employeeId")
	if !ok {
		return
	}
	res, err := newIncentiveService(c).EmployeeMonthly(c.Request.Context(), employeeID, c.Query("month"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// GET /api/incentives/vendor/:vendorId?month=YYYY-MM
func GetVendorMonthlyIncentive(c *gin.Context) {
	vendorID, ok := ParamUUID(c, "vendorId")
	if !ok {
		return
	}
	res, err := newIncentiveService(c).VendorMonthly(c.Request.Context(), vendorID, c.Query("month"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
