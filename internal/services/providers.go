package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"corptransit/internal/domain"
	"corptransit/internal/domain/models"
	"corptransit/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TripRecord is the slice of a trip the billing and incentive formulas read.
type TripRecord struct {
	ID            uuid.UUID       `json:"id"`
	DistanceKm    decimal.Decimal `json:"distanceKm"`
	DurationHours decimal.Decimal `json:"durationHours"`
	StartTime     time.Time       `json:"tripStartTime"`
}

// TripSource feeds completed trips for a client/vendor pair in a
// half-open [start, end) window, in source order.
type TripSource interface {
	FetchTrips(ctx context.Context, clientID, vendorID uuid.UUID, start, end time.Time) ([]TripRecord, error)
}

// BillingModelSource resolves the active billing model for a pair.
type BillingModelSource interface {
	FetchModel(ctx context.Context, clientID, vendorID uuid.UUID) (models.BillingModel, error)
}

// RepoTripSource reads trips straight from the local trips table.
type RepoTripSource struct {
	TripRepo repositories.TripRepository
}

func (s RepoTripSource) FetchTrips(ctx context.Context, clientID, vendorID uuid.UUID, start, end time.Time) ([]TripRecord, error) {
	trips, err := s.TripRepo.ListByPairBetween(clientID, vendorID, start, end)
	if err != nil {
		return nil, err
	}
	out := make([]TripRecord, 0, len(trips))
	for _, t := range trips {
		out = append(out, TripRecord{
			ID:            t.ID,
			DistanceKm:    t.DistanceKm,
			DurationHours: t.DurationHours,
			StartTime:     t.TripStartTime,
		})
	}
	return out, nil
}

// RepoBillingModelSource reads the active model from the local table.
type RepoBillingModelSource struct {
	ModelRepo repositories.BillingModelRepository
}

func (s RepoBillingModelSource) FetchModel(ctx context.Context, clientID, vendorID uuid.UUID) (models.BillingModel, error) {
	return s.ModelRepo.GetByPair(clientID, vendorID)
}

// HTTPTripSource fetches trips from a remote trip service when the
// deployment splits trip data out of this process.
type HTTPTripSource struct {
	BaseURL string
	Client  *http.Client
}

func (s HTTPTripSource) FetchTrips(ctx context.Context, clientID, vendorID uuid.UUID, start, end time.Time) ([]TripRecord, error) {
	u := fmt.Sprintf("%s/api/trips/client/%s/vendor/%s?start=%s&end=%s",
		s.BaseURL, clientID, vendorID,
		url.QueryEscape(start.Format(time.RFC3339)),
		url.QueryEscape(end.Format(time.RFC3339)))

	var trips []TripRecord
	if err := s.getJSON(ctx, u, &trips); err != nil {
		return nil, err
	}
	return trips, nil
}

func (s HTTPTripSource) getJSON(ctx context.Context, u string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	resp, err := s.client().Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("trip service responded %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (s HTTPTripSource) client() *http.Client {
	if s.Client != nil {
		return s.Client
	}
	return &http.Client{Timeout: 10 * time.Second}
}

// HTTPBillingModelSource fetches the pair's model from a remote billing
// configuration service. A 404 maps to a missing-model not-found error so
// the engine surfaces it as a configuration problem, same as the local path.
type HTTPBillingModelSource struct {
	BaseURL string
	Client  *http.Client
}

func (s HTTPBillingModelSource) FetchModel(ctx context.Context, clientID, vendorID uuid.UUID) (models.BillingModel, error) {
	var m models.BillingModel
	u := fmt.Sprintf("%s/api/billing-models/client/%s/vendor/%s", s.BaseURL, clientID, vendorID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return m, err
	}
	resp, err := s.client().Do(req)
	if err != nil {
		return m, err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return m, domain.NotFoundError{Resource: "billing model"}
	}
	if resp.StatusCode != http.StatusOK {
		return m, fmt.Errorf("billing model service responded %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(&m); err != nil {
		return m, err
	}
	return m, nil
}

func (s HTTPBillingModelSource) client() *http.Client {
	if s.Client != nil {
		return s.Client
	}
	return &http.Client{Timeout: 10 * time.Second}
}
