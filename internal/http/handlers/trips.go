package handlers

import (
	"net/http"
	"strings"
	"time"

	"corptransit/internal/domain/models"
	"corptransit/internal/http/middleware"
	"corptransit/internal/repositories"
	"corptransit/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type tripPayload struct {
	ClientID       string           `json:"clientId" binding:"required,uuid"`
	VendorID       string           `json:"vendorId" binding:"required,uuid"`
	EmployeeID     string           `json:"employeeId" binding:"required,uuid"`
	VehicleNumber  string           `json:"vehicleNumber" binding:"required"`
	DriverName     string           `json:"driverName"`
	DriverPhone    string           `json:"driverPhone"`
	TripStartTime  time.Time        `json:"tripStartTime" binding:"required"`
	PickupLocation string           `json:"pickupLocation" binding:"required"`
	DropLocation   string           `json:"dropLocation"`
	DistanceKm     *decimal.Decimal `json:"distanceKm"`
	DurationHours  *decimal.Decimal `json:"durationHours"`
	TripType       string           `json:"tripType"`
	Notes          string           `json:"notes"`
}

// GET /api/trips?clientId=|vendorId=|employeeId=
func GetTrips(c *gin.Context) {
	clientID, ok := QueryUUID(c, "clientId")
	if !ok {
		return
	}
	vendorID, ok := QueryUUID(c, "vendorId")
	if !ok {
		return
	}
	employeeID, ok := QueryUUID(c, "employeeId")
	if !ok {
		return
	}

	repo := repositories.TripRepository{}
	var (
		trips []models.Trip
		err   error
	)
	switch {
	case clientID != uuid.Nil:
		trips, err = repo.ListByClient(clientID)
	case vendorID != uuid.Nil:
		trips, err = repo.ListByVendor(vendorID)
	case employeeID != uuid.Nil:
		trips, err = repo.ListByEmployee(employeeID)
	default:
		RespondError(c, http.StatusBadRequest, "one of clientId, vendorId or employeeId is required", nil)
		return
	}
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"trips": trips})
}

// GET /api/trips/:id
func GetTripByID(c *gin.Context) {
	id, ok := ParamUUID(c, "id")
	if !ok {
		return
	}
	trip, err := repositories.TripRepository{}.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, trip)
}

// GET /api/trips/client/:clientId/vendor/:vendorId?month=YYYY-MM
func GetTripsByPair(c *gin.Context) {
	clientID, ok := ParamUUID(c, "clientId")
	if !ok {
		return
	}
	vendorID, ok := ParamUUID(c, "vendorId")
	if !ok {
		return
	}
	start, end, label, err := utils.MonthWindow(c.Query("month"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	trips, err := repositories.TripRepository{}.ListByPairBetween(clientID, vendorID, start, end)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"month": label, "trips": trips})
}

// GET /api/trips/unbilled/client/:clientId
func GetUnbilledTrips(c *gin.Context) {
	clientID, ok := ParamUUID(c, "clientId")
	if !ok {
		return
	}
	trips, err := repositories.TripRepository{}.ListUnbilledByClient(clientID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"trips": trips})
}

// GET /api/trips/count/client/:clientId?month=YYYY-MM
func GetTripCountByMonth(c *gin.Context) {
	clientID, ok := ParamUUID(c, "clientId")
	if !ok {
		return
	}
	start, end, label, err := utils.MonthWindow(c.Query("month"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	count, err := repositories.TripRepository{}.CountByClientMonth(clientID, start, end)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"month": label, "count": count})
}

// POST /api/trips
func CreateTrip(c *gin.Context) {
	var req tripPayload
	if !BindJSONOrError(c, &req) {
		return
	}

	trip := models.Trip{
		ID:             uuid.New(),
		ClientID:       uuid.MustParse(req.ClientID),
		VendorID:       uuid.MustParse(req.VendorID),
		EmployeeID:     uuid.MustParse(req.EmployeeID),
		VehicleNumber:  strings.TrimSpace(req.VehicleNumber),
		DriverName:     strings.TrimSpace(req.DriverName),
		DriverPhone:    strings.TrimSpace(req.DriverPhone),
		TripStartTime:  req.TripStartTime,
		PickupLocation: strings.TrimSpace(req.PickupLocation),
		DropLocation:   strings.TrimSpace(req.DropLocation),
		TripType:       strings.TrimSpace(req.TripType),
		Status:         models.TripScheduled,
		Notes:          strings.TrimSpace(req.Notes),
	}
	if req.DistanceKm != nil {
		trip.DistanceKm = *req.DistanceKm
	}
	if req.DurationHours != nil {
		trip.DurationHours = *req.DurationHours
	}
	if err := (repositories.TripRepository{}).Insert(trip); err != nil {
		RespondDomainError(c, err)
		return
	}
	utils.LogEvent(middleware.GetRequestID(c), "trips", "create", "trip="+trip.ID.String())
	c.JSON(http.StatusCreated, trip)
}

// PUT /api/trips/:id
func UpdateTrip(c *gin.Context) {
	id, ok := ParamUUID(c, "id")
	if !ok {
		return
	}
	var req tripPayload
	if !BindJSONOrError(c, &req) {
		return
	}
	repo := repositories.TripRepository{}
	trip, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	trip.VehicleNumber = strings.TrimSpace(req.VehicleNumber)
	trip.DriverName = strings.TrimSpace(req.DriverName)
	trip.DriverPhone = strings.TrimSpace(req.DriverPhone)
	trip.TripStartTime = req.TripStartTime
	trip.PickupLocation = strings.TrimSpace(req.PickupLocation)
	trip.DropLocation = strings.TrimSpace(req.DropLocation)
	trip.TripType = strings.TrimSpace(req.TripType)
	trip.Notes = strings.TrimSpace(req.Notes)
	if req.DistanceKm != nil {
		trip.DistanceKm = *req.DistanceKm
	}
	if req.DurationHours != nil {
		trip.DurationHours = *req.DurationHours
	}
	if err := repo.Update(trip); err != nil {
		RespondDomainError(c, err)
		return
	}
	utils.LogEvent(middleware.GetRequestID(c), "trips", "update", "trip="+trip.ID.String())
	c.JSON(http.StatusOK, trip)
}

type completeTripRequest struct {
	TripEndTime   time.Time        `json:"tripEndTime" binding:"required"`
	DistanceKm    decimal.Decimal  `json:"distanceKm" binding:"required"`
	DurationHours *decimal.Decimal `json:"durationHours"`
	DropLocation  string           `json:"dropLocation"`
}

// PUT /api/trips/:id/complete — marks the trip COMPLETED. Duration defaults
// to the elapsed time between start and end, rounded to 2dp hours.
func CompleteTrip(c *gin.Context) {
	id, ok := ParamUUID(c, "id")
	if !ok {
		return
	}
	var req completeTripRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	repo := repositories.TripRepository{}
	trip, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if req.TripEndTime.Before(trip.TripStartTime) {
		RespondError(c, http.StatusBadRequest, "tripEndTime is before the trip start", nil)
		return
	}

	duration := decimal.NewFromFloat(req.TripEndTime.Sub(trip.TripStartTime).Hours()).Round(2)
	if req.DurationHours != nil {
		duration = *req.DurationHours
	}
	if err := repo.MarkCompleted(id, req.TripEndTime, req.DistanceKm, duration, req.DropLocation); err != nil {
		RespondDomainError(c, err)
		return
	}
	trip, err = repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	utils.LogEvent(middleware.GetRequestID(c), "trips", "complete", "trip="+id.String())
	c.JSON(http.StatusOK, trip)
}

type cancelTripRequest struct {
	Reason string `json:"reason"`
}

// PUT /api/trips/:id/cancel
func CancelTrip(c *gin.Context) {
	id, ok := ParamUUID(c, "id")
	if !ok {
		return
	}
	var req cancelTripRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	repo := repositories.TripRepository{}
	if err := repo.MarkCancelled(id, req.Reason); err != nil {
		RespondDomainError(c, err)
		return
	}
	trip, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	utils.LogEvent(middleware.GetRequestID(c), "trips", "cancel", "trip="+id.String())
	c.JSON(http.StatusOK, trip)
}

// DELETE /api/trips/:id
func DeleteTrip(c *gin.Context) {
	id, ok := ParamUUID(c, "id")
	if !ok {
		return
	}
	if err := (repositories.TripRepository{}).Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	utils.LogEvent(middleware.GetRequestID(c), "trips", "delete", "trip="+id.String())
	c.JSON(http.StatusOK, gin.H{"message": "trip deleted"})
}
