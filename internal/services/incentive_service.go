package services

import (
	"context"
	"fmt"
	"time"

	"corptransit/internal/domain"
	"corptransit/internal/repositories"
	"corptransit/internal/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Fixed business rules, not configuration.
const (
	extraHourIncentiveRate = 250
	lateNightBonus         = 150
	weekendBonus           = 200
	extraKmBonusRate       = 5
	topRatingBonus         = 5000
	goodRatingBonus        = 2000
	volumeBonusPerTrip     = 50
	volumeTripThreshold    = 100
)

var (
	topRatingFloor  = decimal.NewFromFloat(4.5)
	goodRatingFloor = decimal.NewFromFloat(4.0)
)

type EmployeeIncentiveResult struct {
	ExtraHourIncentive decimal.Decimal `json:"extraHourIncentive"`
	LateNightIncentive decimal.Decimal `json:"lateNightIncentive"`
	WeekendIncentive   decimal.Decimal `json:"weekendIncentive"`
	Total              decimal.Decimal `json:"total"`
}

type VendorIncentiveResult struct {
	ExtraKmBonus decimal.Decimal `json:"extraKmBonus"`
	RatingBonus  decimal.Decimal `json:"ratingBonus"`
	VolumeBonus  decimal.Decimal `json:"volumeBonus"`
	Total        decimal.Decimal `json:"total"`
}

// EmployeeTripIncentive is the per-trip employee incentive: overtime beyond
// the standard hours, a late-night flat bonus for trips starting between
// 18:00 and 06:59 (hour 6 itself still counts as night), and a weekend flat
// bonus. The distance parameters are accepted but take no part in the
// per-trip amount.
func EmployeeTripIncentive(durationHours, standardHours, distanceKm, standardKm decimal.Decimal, start time.Time) decimal.Decimal {
	_ = distanceKm
	_ = standardKm

	amount := decimal.Zero
	if extra := durationHours.Sub(standardHours); extra.IsPositive() {
		amount = amount.Add(extra.Mul(decimal.NewFromInt(extraHourIncentiveRate)))
	}
	if IsLateNight(start) {
		amount = amount.Add(decimal.NewFromInt(lateNightBonus))
	}
	if IsWeekend(start) {
		amount = amount.Add(decimal.NewFromInt(weekendBonus))
	}
	return amount
}

// MonthlyEmployeeIncentive applies the monthly employee formula to
// pre-aggregated counts.
func MonthlyEmployeeIncentive(totalExtraHours decimal.Decimal, lateNightTrips, weekendTrips int) EmployeeIncentiveResult {
	res := EmployeeIncentiveResult{
		ExtraHourIncentive: totalExtraHours.Mul(decimal.NewFromInt(extraHourIncentiveRate)),
		LateNightIncentive: decimal.NewFromInt(int64(lateNightTrips) * lateNightBonus),
		WeekendIncentive:   decimal.NewFromInt(int64(weekendTrips) * weekendBonus),
	}
	res.Total = res.ExtraHourIncentive.Add(res.LateNightIncentive).Add(res.WeekendIncentive)
	return res
}

// VendorIncentive applies the vendor bonus formula: per-km overage bonus, a
// service-rating tier bonus, and a volume bonus past the trip threshold.
func VendorIncentive(totalExtraKm decimal.Decimal, tripsCompleted int, serviceRating decimal.Decimal) VendorIncentiveResult {
	res := VendorIncentiveResult{
		ExtraKmBonus: totalExtraKm.Mul(decimal.NewFromInt(extraKmBonusRate)),
	}
	switch {
	case serviceRating.GreaterThanOrEqual(topRatingFloor):
		res.RatingBonus = decimal.NewFromInt(topRatingBonus)
	case serviceRating.GreaterThanOrEqual(goodRatingFloor):
		res.RatingBonus = decimal.NewFromInt(goodRatingBonus)
	default:
		res.RatingBonus = decimal.Zero
	}
	if extra := tripsCompleted - volumeTripThreshold; extra > 0 {
		res.VolumeBonus = decimal.NewFromInt(int64(extra) * volumeBonusPerTrip)
	}
	res.Total = res.ExtraKmBonus.Add(res.RatingBonus).Add(res.VolumeBonus)
	return res
}

// IsLateNight reports whether a trip start falls in the night band. Both
// boundary hours are inclusive: 18:00 onward and anything up to 06:59.
func IsLateNight(start time.Time) bool {
	h := start.Hour()
	return h >= 18 || h <= 6
}

func IsWeekend(start time.Time) bool {
	wd := start.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// IncentiveService aggregates a month's trips into the monthly incentive
// formulas. Extra hours and km are measured against the billing model of the
// trip's client/vendor pair; trips for a pair with no model contribute no
// overage.
type IncentiveService struct {
	TripRepo   repositories.TripRepository
	ModelRepo  repositories.BillingModelRepository
	VendorRepo repositories.VendorRepository
	RequestID  string
}

type EmployeeMonthlyIncentive struct {
	EmployeeID     uuid.UUID               `json:"employeeId"`
	Month          string                  `json:"month"`
	TripCount      int                     `json:"tripCount"`
	TotalExtraHrs  decimal.Decimal         `json:"totalExtraHours"`
	LateNightTrips int                     `json:"lateNightTrips"`
	WeekendTrips   int                     `json:"weekendTrips"`
	Incentive      EmployeeIncentiveResult `json:"incentive"`
}

type VendorMonthlyIncentive struct {
	VendorID       uuid.UUID             `json:"vendorId"`
	Month          string                `json:"month"`
	TripsCompleted int                   `json:"tripsCompleted"`
	TotalExtraKm   decimal.Decimal       `json:"totalExtraKm"`
	ServiceRating  decimal.Decimal       `json:"serviceRating"`
	Incentive      VendorIncentiveResult `json:"incentive"`
}

func (s IncentiveService) EmployeeMonthly(ctx context.Context, employeeID uuid.UUID, month string) (EmployeeMonthlyIncentive, error) {
	var out EmployeeMonthlyIncentive
	if employeeID == uuid.Nil {
		return out, domain.ValidationError{Field: "employeeId", Msg: "required"}
	}
	start, end, label, err := utils.MonthWindow(month)
	if err != nil {
		return out, domain.ValidationError{Field: "month", Msg: err.Error(), Err: err}
	}

	trips, err := s.TripRepo.ListByEmployeeBetween(employeeID, start, end)
	if err != nil {
		return out, err
	}

	out.EmployeeID = employeeID
	out.Month = label
	out.TripCount = len(trips)

	standards := newPairStandards(s.ModelRepo)
	for _, t := range trips {
		if std, ok := standards.hoursFor(t.ClientID, t.VendorID); ok {
			if extra := t.DurationHours.Sub(std); extra.IsPositive() {
				out.TotalExtraHrs = out.TotalExtraHrs.Add(extra)
			}
		}
		if IsLateNight(t.TripStartTime) {
			out.LateNightTrips++
		}
		if IsWeekend(t.TripStartTime) {
			out.WeekendTrips++
		}
	}

	out.Incentive = MonthlyEmployeeIncentive(out.TotalExtraHrs, out.LateNightTrips, out.WeekendTrips)
	utils.LogEvent(s.RequestID, "incentives", "employee_monthly",
		fmt.Sprintf("employee=%s month=%s trips=%d total=%s",
			employeeID, label, len(trips), utils.FormatAmount(out.Incentive.Total)))
	return out, nil
}

func (s IncentiveService) VendorMonthly(ctx context.Context, vendorID uuid.UUID, month string) (VendorMonthlyIncentive, error) {
	var out VendorMonthlyIncentive
	if vendorID == uuid.Nil {
		return out, domain.ValidationError{Field: "vendorId", Msg: "required"}
	}
	start, end, label, err := utils.MonthWindow(month)
	if err != nil {
		return out, domain.ValidationError{Field: "month", Msg: err.Error(), Err: err}
	}

	vendor, err := s.VendorRepo.GetByID(vendorID)
	if err != nil {
		return out, err
	}
	trips, err := s.TripRepo.ListByVendorBetween(vendorID, start, end)
	if err != nil {
		return out, err
	}

	out.VendorID = vendorID
	out.Month = label
	out.TripsCompleted = len(trips)
	out.ServiceRating = vendor.ServiceRating

	standards := newPairStandards(s.ModelRepo)
	for _, t := range trips {
		if std, ok := standards.kmFor(t.ClientID, t.VendorID); ok {
			if extra := t.DistanceKm.Sub(std); extra.IsPositive() {
				out.TotalExtraKm = out.TotalExtraKm.Add(extra)
			}
		}
	}

	out.Incentive = VendorIncentive(out.TotalExtraKm, out.TripsCompleted, vendor.ServiceRating)
	utils.LogEvent(s.RequestID, "incentives", "vendor_monthly",
		fmt.Sprintf("vendor=%s month=%s trips=%d total=%s",
			vendorID, label, len(trips), utils.FormatAmount(out.Incentive.Total)))
	return out, nil
}

// pairStandards caches billing-model standards per client/vendor pair for a
// single aggregation pass. A missing model is cached too, so each pair is
// looked up at most once.
type pairStandards struct {
	repo   repositories.BillingModelRepository
	hours  map[string]decimal.Decimal
	km     map[string]decimal.Decimal
	misses map[string]bool
}

func newPairStandards(repo repositories.BillingModelRepository) *pairStandards {
	return &pairStandards{
		repo:   repo,
		hours:  map[string]decimal.Decimal{},
		km:     map[string]decimal.Decimal{},
		misses: map[string]bool{},
	}
}

func (p *pairStandards) load(clientID, vendorID uuid.UUID) (string, bool) {
	key := clientID.String() + "/" + vendorID.String()
	if p.misses[key] {
		return key, false
	}
	if _, ok := p.hours[key]; ok {
		return key, true
	}
	m, err := p.repo.GetByPair(clientID, vendorID)
	if err != nil {
		p.misses[key] = true
		return key, false
	}
	p.hours[key] = m.StandardTripHours
	p.km[key] = m.StandardTripKm
	return key, true
}

func (p *pairStandards) hoursFor(clientID, vendorID uuid.UUID) (decimal.Decimal, bool) {
	key, ok := p.load(clientID, vendorID)
	if !ok {
		return decimal.Zero, false
	}
	return p.hours[key], true
}

func (p *pairStandards) kmFor(clientID, vendorID uuid.UUID) (decimal.Decimal, bool) {
	key, ok := p.load(clientID, vendorID)
	if !ok {
		return decimal.Zero, false
	}
	return p.km[key], true
}
