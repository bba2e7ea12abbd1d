package services

import (
	"context"
	"fmt"
	"time"

	"corptransit/internal/domain"
	"corptransit/internal/domain/models"
	"corptransit/internal/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var taxRate = decimal.NewFromFloat(0.18)

// TripCharge is the per-trip line of a billing breakdown. Extra columns are
// filled only by the models that price trips individually.
type TripCharge struct {
	TripID        uuid.UUID       `json:"tripId"`
	StartTime     time.Time       `json:"tripStartTime"`
	DistanceKm    decimal.Decimal `json:"distanceKm"`
	DurationHours decimal.Decimal `json:"durationHours"`
	ExtraKm       decimal.Decimal `json:"extraKm"`
	ExtraHours    decimal.Decimal `json:"extraHours"`
	Charge        decimal.Decimal `json:"charge"`
}

type BillingResult struct {
	ClientID     uuid.UUID `json:"clientId"`
	VendorID     uuid.UUID `json:"vendorId"`
	BillingMonth string    `json:"billingMonth"`
	PeriodStart  time.Time `json:"periodStart"`
	PeriodEnd    time.Time `json:"periodEnd"`
	ModelType    string    `json:"modelType"`

	TripCount       int             `json:"tripCount"`
	TotalDistanceKm decimal.Decimal `json:"totalDistanceKm"`
	TotalHours      decimal.Decimal `json:"totalHours"`

	PackageCost          decimal.Decimal `json:"packageCost"`
	TripCharges          decimal.Decimal `json:"tripCharges"`
	DistanceCharges      decimal.Decimal `json:"distanceCharges"`
	ExtraTripCharges     decimal.Decimal `json:"extraTripCharges"`
	ExtraKmCharges       decimal.Decimal `json:"extraKmCharges"`
	ExtraHourCharges     decimal.Decimal `json:"extraHourCharges"`
	ExtraDistanceCharges decimal.Decimal `json:"extraDistanceCharges"`

	ExtraTrips int             `json:"extraTrips"`
	ExtraKm    decimal.Decimal `json:"extraKm"`
	ExtraHours decimal.Decimal `json:"extraHours"`

	TotalCost  decimal.Decimal `json:"totalCost"`
	TaxAmount  decimal.Decimal `json:"taxAmount"`
	GrandTotal decimal.Decimal `json:"grandTotal"`

	Trips []TripCharge `json:"trips"`
	Notes string       `json:"notes"`
}

// BillingService computes a month's billing for a client/vendor pair. The
// calculation itself is pure; all state comes in through the two sources.
type BillingService struct {
	Trips       TripSource
	Models      BillingModelSource
	StrictTrips bool
	RequestID   string
}

// Calculate prices the pair's completed trips for a month ("YYYY-MM", empty
// means the current month). A trip-source failure yields an empty trip list
// unless StrictTrips is set; a model-source failure always fails the call.
func (s BillingService) Calculate(ctx context.Context, clientID, vendorID uuid.UUID, month string) (BillingResult, error) {
	var res BillingResult
	if clientID == uuid.Nil {
		return res, domain.ValidationError{Field: "clientId", Msg: "required"}
	}
	if vendorID == uuid.Nil {
		return res, domain.ValidationError{Field: "vendorId", Msg: "required"}
	}
	start, end, label, err := utils.MonthWindow(month)
	if err != nil {
		return res, domain.ValidationError{Field: "billingMonth", Msg: err.Error(), Err: err}
	}

	trips, err := s.Trips.FetchTrips(ctx, clientID, vendorID, start, end)
	if err != nil {
		if s.StrictTrips {
			return res, domain.InternalError{Msg: "trip fetch failed", Err: err}
		}
		utils.LogEvent(s.RequestID, "billing", "trip_fetch_soft_fail", err.Error())
		trips = nil
	}

	model, err := s.Models.FetchModel(ctx, clientID, vendorID)
	if err != nil {
		if domain.IsNotFound(err) {
			return res, domain.ConfigurationError{
				Msg: fmt.Sprintf("no billing model configured for client %s and vendor %s", clientID, vendorID),
				Err: err,
			}
		}
		return res, domain.ConfigurationError{Msg: "billing model fetch failed", Err: err}
	}
	if !models.KnownModelType(model.ModelType) {
		return res, domain.UnknownModelError{ModelType: model.ModelType}
	}

	res = BillingResult{
		ClientID:     clientID,
		VendorID:     vendorID,
		BillingMonth: label,
		PeriodStart:  start,
		PeriodEnd:    end,
		ModelType:    model.ModelType,
		TripCount:    len(trips),
	}
	for _, t := range trips {
		res.TotalDistanceKm = res.TotalDistanceKm.Add(t.DistanceKm)
		res.TotalHours = res.TotalHours.Add(t.DurationHours)
	}

	switch model.ModelType {
	case models.ModelTrip:
		s.applyTripModel(&res, model, trips)
	case models.ModelPackage:
		s.applyPackageModel(&res, model, trips)
	case models.ModelHybrid:
		s.applyHybridModel(&res, model, trips)
	}

	res.TaxAmount = utils.Round2(res.TotalCost.Mul(taxRate))
	res.GrandTotal = utils.Round2(res.TotalCost.Add(res.TaxAmount))

	utils.LogEvent(s.RequestID, "billing", "calculate",
		fmt.Sprintf("client=%s vendor=%s month=%s model=%s trips=%d grand_total=%s",
			clientID, vendorID, label, model.ModelType, len(trips), utils.FormatAmount(res.GrandTotal)))
	return res, nil
}

// applyTripModel prices every trip at ratePerTrip plus distance at ratePerKm,
// with per-trip overage beyond the standard km and hour limits.
func (s BillingService) applyTripModel(res *BillingResult, m models.BillingModel, trips []TripRecord) {
	res.TripCharges = m.RatePerTrip.Mul(decimal.NewFromInt(int64(len(trips))))
	res.DistanceCharges = m.RatePerKm.Mul(res.TotalDistanceKm)

	for _, t := range trips {
		line := TripCharge{
			TripID:        t.ID,
			StartTime:     t.StartTime,
			DistanceKm:    t.DistanceKm,
			DurationHours: t.DurationHours,
			Charge:        m.RatePerTrip.Add(t.DistanceKm.Mul(m.RatePerKm)),
		}
		if t.DistanceKm.GreaterThan(m.StandardTripKm) {
			line.ExtraKm = t.DistanceKm.Sub(m.StandardTripKm)
			extra := line.ExtraKm.Mul(m.ExtraKmRate)
			res.ExtraKm = res.ExtraKm.Add(line.ExtraKm)
			res.ExtraKmCharges = res.ExtraKmCharges.Add(extra)
			line.Charge = line.Charge.Add(extra)
		}
		if t.DurationHours.GreaterThan(m.StandardTripHours) {
			line.ExtraHours = t.DurationHours.Sub(m.StandardTripHours)
			extra := line.ExtraHours.Mul(m.ExtraHourRate)
			res.ExtraHours = res.ExtraHours.Add(line.ExtraHours)
			res.ExtraHourCharges = res.ExtraHourCharges.Add(extra)
			line.Charge = line.Charge.Add(extra)
		}
		res.Trips = append(res.Trips, line)
	}

	res.TotalCost = res.TripCharges.
		Add(res.DistanceCharges).
		Add(res.ExtraKmCharges).
		Add(res.ExtraHourCharges)
	res.Notes = fmt.Sprintf("Trip-based: %d trips @ %s + %s km @ %s; extra km charges %s, extra hour charges %s",
		len(trips), utils.FormatAmount(m.RatePerTrip),
		res.TotalDistanceKm, utils.FormatAmount(m.RatePerKm),
		utils.FormatAmount(res.ExtraKmCharges), utils.FormatAmount(res.ExtraHourCharges))
}

// applyPackageModel charges the flat monthly rate plus aggregate trip and km
// overage. Per-trip extras are deliberately not computed.
func (s BillingService) applyPackageModel(res *BillingResult, m models.BillingModel, trips []TripRecord) {
	res.PackageCost = m.PackageMonthlyRate

	if extra := len(trips) - m.PackageTripsIncluded; extra > 0 {
		res.ExtraTrips = extra
		res.ExtraTripCharges = m.ExtraTripRate.Mul(decimal.NewFromInt(int64(extra)))
	}
	if overKm := res.TotalDistanceKm.Sub(m.PackageKmsIncluded); overKm.IsPositive() {
		res.ExtraKm = overKm
		res.ExtraKmCharges = overKm.Mul(m.ExtraKmRate)
	}

	for _, t := range trips {
		res.Trips = append(res.Trips, TripCharge{
			TripID:        t.ID,
			StartTime:     t.StartTime,
			DistanceKm:    t.DistanceKm,
			DurationHours: t.DurationHours,
		})
	}

	res.TotalCost = res.PackageCost.Add(res.ExtraTripCharges).Add(res.ExtraKmCharges)
	res.Notes = fmt.Sprintf("Package: monthly rate %s (%d trips / %s km included); %d extra trips, %s extra km",
		utils.FormatAmount(m.PackageMonthlyRate), m.PackageTripsIncluded, m.PackageKmsIncluded,
		res.ExtraTrips, res.ExtraKm)
}

// applyHybridModel covers the first packageTripsIncluded trips with the
// monthly rate; trips beyond the allotment are priced individually in source
// order.
func (s BillingService) applyHybridModel(res *BillingResult, m models.BillingModel, trips []TripRecord) {
	res.PackageCost = m.PackageMonthlyRate

	for i, t := range trips {
		line := TripCharge{
			TripID:        t.ID,
			StartTime:     t.StartTime,
			DistanceKm:    t.DistanceKm,
			DurationHours: t.DurationHours,
		}
		if i >= m.PackageTripsIncluded {
			res.ExtraTrips++
			distCharge := t.DistanceKm.Mul(m.RatePerKm)
			res.ExtraTripCharges = res.ExtraTripCharges.Add(m.RatePerTrip)
			res.ExtraDistanceCharges = res.ExtraDistanceCharges.Add(distCharge)
			line.Charge = m.RatePerTrip.Add(distCharge)
		}
		res.Trips = append(res.Trips, line)
	}

	res.TotalCost = res.PackageCost.Add(res.ExtraTripCharges).Add(res.ExtraDistanceCharges)
	res.Notes = fmt.Sprintf("Hybrid: monthly rate %s covers first %d trips; %d beyond allotment billed per trip",
		utils.FormatAmount(m.PackageMonthlyRate), m.PackageTripsIncluded, res.ExtraTrips)
}
